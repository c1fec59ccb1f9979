package reconcile

import (
	"context"

	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/malsync"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/kasuboski/animez/pkg/title"
	"go.uber.org/zap"
)

// Engine reconciles canonical media against the episodes of one provider
type Engine struct {
	adapter    provider.Adapter
	strategies []Strategy
}

// Option configures an Engine
type Option func(*Engine)

// WithStrategies replaces the default strategies. They are tried in the given order for every slug.
func WithStrategies(strategies ...Strategy) Option {
	return func(e *Engine) {
		e.strategies = strategies
	}
}

// New creates an engine that tries the cross reference index first and then a direct provider search
func New(adapter provider.Adapter, index malsync.ClientInterface, opts ...Option) *Engine {
	e := &Engine{
		adapter: adapter,
		strategies: []Strategy{
			CrossReference(NewResolver(index, adapter)),
			DirectSearch(adapter),
		},
	}

	for _, opt := range opts {
		opt(e)
	}

	return e
}

// Provider returns the identity of the provider the engine reconciles against
func (e *Engine) Provider() provider.Identity {
	return e.adapter.Identity()
}

// Slugs returns the normalized titles to search for, romaji first. Duplicates and empty slugs are dropped.
func Slugs(t media.Title) []string {
	romaji, english := t.Romaji, t.English
	if romaji == "" {
		romaji = english
	}
	if english == "" {
		english = romaji
	}

	slugs := make([]string, 0, 2)
	for _, s := range []string{title.Normalize(romaji), title.Normalize(english)} {
		if s == "" || (len(slugs) > 0 && slugs[0] == s) {
			continue
		}
		slugs = append(slugs, s)
	}
	return slugs
}

// Find runs every strategy for every slug and returns the first listing that has episodes
func (e *Engine) Find(ctx context.Context, canonical media.CanonicalMedia, audio media.AudioTrack) *provider.Listing {
	log := logger.FromCtx(ctx).With(zap.String("provider", e.adapter.Identity().Name), zap.String("mediaId", canonical.ID))

	for _, slug := range Slugs(canonical.Title) {
		q := Query{Slug: slug, MalID: canonical.MalID, Audio: audio}
		for _, s := range e.strategies {
			listing := s.Find(ctx, q)
			if listing.HasEpisodes() {
				log.Debugw("found listing", zap.String("strategy", s.Name()), zap.String("slug", slug), zap.String("listingId", listing.ID))
				return listing
			}
			log.Debugw("strategy found nothing", zap.String("strategy", s.Name()), zap.String("slug", slug))
		}
	}

	return nil
}

// Reconcile returns the normalized episodes of canonical on the provider for the requested track.
// An empty result means the provider has no matching title and is not an error.
func (e *Engine) Reconcile(ctx context.Context, canonical media.CanonicalMedia, audio media.AudioTrack) []media.NormalizedEpisode {
	listing := e.Find(ctx, canonical, audio)
	if listing == nil {
		logger.FromCtx(ctx).Infow("no provider listing found", zap.String("provider", e.adapter.Identity().Name), zap.String("mediaId", canonical.ID))
		return []media.NormalizedEpisode{}
	}

	episodes := Normalize(e.adapter.Identity().Variant, listing, audio)
	return Finalize(episodes, canonical)
}
