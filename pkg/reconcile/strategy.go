package reconcile

import (
	"context"

	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/kasuboski/animez/pkg/title"
	"go.uber.org/zap"
)

// Query is what a strategy searches with for one title slug
type Query struct {
	Slug  string
	MalID int
	Audio media.AudioTrack
}

// Strategy is one way of locating a provider listing. A nil listing means the strategy found nothing.
type Strategy interface {
	Name() string
	Find(ctx context.Context, q Query) *provider.Listing
}

type crossReferenceStrategy struct {
	resolver Resolver
}

// CrossReference resolves listings through the cross reference index
func CrossReference(resolver Resolver) Strategy {
	return crossReferenceStrategy{resolver: resolver}
}

func (s crossReferenceStrategy) Name() string { return "cross-reference" }

func (s crossReferenceStrategy) Find(ctx context.Context, q Query) *provider.Listing {
	return s.resolver.Resolve(ctx, q.MalID, q.Slug, q.Audio)
}

type searchStrategy struct {
	adapter provider.Adapter
}

// DirectSearch searches the provider and fetches the result most similar to the slug
func DirectSearch(adapter provider.Adapter) Strategy {
	return searchStrategy{adapter: adapter}
}

func (s searchStrategy) Name() string { return "search" }

func (s searchStrategy) Find(ctx context.Context, q Query) *provider.Listing {
	log := logger.FromCtx(ctx).With(zap.String("provider", s.adapter.Identity().Name), zap.String("slug", q.Slug))

	results, err := s.adapter.Search(ctx, q.Slug)
	if err != nil {
		log.Warnw("provider search failed", zap.Error(err))
		return nil
	}
	if len(results) == 0 {
		return nil
	}

	titles := make([]string, len(results))
	for i, r := range results {
		titles[i] = title.Normalize(r.Title.String())
	}

	best, score := title.BestMatch(q.Slug, titles)
	match := results[best]
	log.Debugw("best search match", zap.String("id", match.ID), zap.String("title", match.Title.String()), zap.Float64("score", score))

	listing, err := s.adapter.FetchInfo(ctx, match.ID)
	if err != nil {
		log.Warnw("failed to fetch searched listing", zap.String("id", match.ID), zap.Error(err))
		return nil
	}

	return listing
}
