package manager

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/kasuboski/animez/pkg/anify"
	"github.com/kasuboski/animez/pkg/anilist"
	"github.com/kasuboski/animez/pkg/cache"
	"github.com/kasuboski/animez/pkg/filler"
	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/malsync"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/kasuboski/animez/pkg/reconcile"
	"github.com/samber/lo"
	"go.uber.org/zap"
)

type AniListClientInterface anilist.ClientInterface
type AnifyClientInterface anify.ClientInterface
type MalSyncClientInterface malsync.ClientInterface
type FillerClientInterface filler.ClientInterface

var (
	// ErrValidation wraps every error caused by bad caller input
	ErrValidation = errors.New("validation failed")
	// ErrUnsupported is returned when the active provider cannot serve a request
	ErrUnsupported = errors.New("unsupported")
	ErrNotFound    = errors.New("not found")
)

type infoKey struct {
	id     string
	audio  media.AudioTrack
	filler bool
}

type MediaManager struct {
	metadata AniListClientInterface
	recent   AnifyClientInterface
	adapter  provider.Adapter
	engine   *reconcile.Engine
	filler   filler.Enricher
	cache    *cache.Cache[infoKey, media.AnimeInfo]
}

type Option func(*MediaManager)

// WithCacheTTL caches anime info for ttl. Zero disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(m *MediaManager) {
		if ttl <= 0 {
			m.cache = nil
			return
		}
		m.cache = cache.New[infoKey, media.AnimeInfo](ttl)
	}
}

// WithEngine replaces the reconciliation engine built from the adapter
func WithEngine(e *reconcile.Engine) Option {
	return func(m *MediaManager) {
		m.engine = e
	}
}

func New(metadata AniListClientInterface, recent AnifyClientInterface, adapter provider.Adapter, index MalSyncClientInterface, fillerClient FillerClientInterface, opts ...Option) MediaManager {
	m := MediaManager{
		metadata: metadata,
		recent:   recent,
		adapter:  adapter,
		engine:   reconcile.New(adapter, index),
		filler:   filler.NewEnricher(fillerClient),
	}

	for _, opt := range opts {
		opt(&m)
	}

	return m
}

// Provider is the identity of the provider episodes are reconciled against
func (m MediaManager) Provider() provider.Identity {
	return m.adapter.Identity()
}

// FetchAnimeInfo returns the canonical media of an AniList id with its episodes on the active provider.
// Failing to fetch metadata is an error, finding no episodes is not.
func (m MediaManager) FetchAnimeInfo(ctx context.Context, id string, audio media.AudioTrack, withFiller bool) (*media.AnimeInfo, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, fmt.Errorf("%w: id is required", ErrValidation)
	}
	if n, err := strconv.Atoi(id); err != nil || n <= 0 {
		return nil, fmt.Errorf("%w: id %q is not an anilist id", ErrValidation, id)
	}

	audio, err := media.ParseAudioTrack(string(audio))
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	log := logger.FromCtx(ctx).With(zap.String("id", id), zap.String("audio", string(audio)))

	key := infoKey{id: id, audio: audio, filler: withFiller}
	if m.cache != nil {
		if info, ok := m.cache.Get(key); ok {
			log.Debug("anime info served from cache")
			info.Episodes = slices.Clone(info.Episodes)
			return &info, nil
		}
	}

	canonical, err := m.metadata.FetchMedia(ctx, id)
	if err != nil {
		if errors.Is(err, anilist.ErrNotFound) {
			return nil, fmt.Errorf("%w: %w", ErrNotFound, err)
		}
		log.Errorw("failed to fetch anime metadata", zap.Error(err))
		return nil, fmt.Errorf("failed to fetch anime info: %w", err)
	}

	source := "feed"
	episodes := m.feedEpisodes(ctx, canonical, audio)
	if len(episodes) == 0 {
		source = "provider"
		episodes = m.engine.Reconcile(ctx, canonical, audio)
	}
	if withFiller && canonical.MalID != 0 {
		episodes = m.filler.Apply(ctx, episodes, canonical.MalID)
	}

	log.Debugw("reconciled episodes", zap.String("provider", m.adapter.Identity().Name), zap.String("source", source), zap.Int("episodes", len(episodes)))

	info := media.AnimeInfo{CanonicalMedia: canonical, Episodes: episodes}
	if m.cache != nil {
		m.cache.Set(key, media.AnimeInfo{CanonicalMedia: canonical, Episodes: slices.Clone(episodes)})
	}

	return &info, nil
}

// useFeed reports whether the recent feed is asked for the episode list before the provider is searched.
// The feed only carries sub episode ids of gogoanime and zoro, and only keeps recent titles current.
func (m MediaManager) useFeed(canonical media.CanonicalMedia, audio media.AudioTrack, now time.Time) bool {
	if m.recent == nil || audio != media.TrackSub {
		return false
	}
	if !lo.Contains(anify.RecentProviders, m.adapter.Identity().Name) {
		return false
	}
	if canonical.Status == media.StatusOngoing {
		return true
	}
	return canonical.ReleaseDate >= feedFirstYear && canonical.ReleaseDate <= now.Year()+1
}

const feedFirstYear = 2000

// feedEpisodes is the finalized episode list of the recent feed, empty when the feed is not used or fails
func (m MediaManager) feedEpisodes(ctx context.Context, canonical media.CanonicalMedia, audio media.AudioTrack) []media.NormalizedEpisode {
	if !m.useFeed(canonical, audio, time.Now()) {
		return nil
	}

	episodes, err := m.recent.Episodes(ctx, canonical.ID, m.adapter.Identity().Name)
	if err != nil {
		logger.FromCtx(ctx).Warnw("recent feed episodes unavailable, searching the provider", zap.String("mediaId", canonical.ID), zap.Error(err))
		return nil
	}
	if len(episodes) == 0 {
		return nil
	}
	return reconcile.Finalize(episodes, canonical)
}

// FetchEpisodes returns only the reconciled episodes of an AniList id
func (m MediaManager) FetchEpisodes(ctx context.Context, id string, audio media.AudioTrack) ([]media.NormalizedEpisode, error) {
	info, err := m.FetchAnimeInfo(ctx, id, audio, false)
	if err != nil {
		return nil, err
	}
	return info.Episodes, nil
}

// FetchEpisodeServers lists the streaming servers of an episode on the active provider
func (m MediaManager) FetchEpisodeServers(ctx context.Context, episodeID string) ([]provider.Server, error) {
	if strings.TrimSpace(episodeID) == "" {
		return nil, fmt.Errorf("%w: episode id is required", ErrValidation)
	}

	fetcher, ok := m.adapter.(provider.ServerFetcher)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not list episode servers", ErrUnsupported, m.adapter.Identity().Name)
	}

	servers, err := fetcher.FetchEpisodeServers(ctx, episodeID)
	if err != nil {
		return nil, wrapProviderError("failed to fetch episode servers", err)
	}
	return servers, nil
}

// FetchEpisodeSources resolves the playable sources of an episode. An empty server selects the provider default.
func (m MediaManager) FetchEpisodeSources(ctx context.Context, episodeID string, server string) (*provider.Source, error) {
	if strings.TrimSpace(episodeID) == "" {
		return nil, fmt.Errorf("%w: episode id is required", ErrValidation)
	}

	streamingServer, err := provider.ParseStreamingServer(server)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	fetcher, ok := m.adapter.(provider.SourceFetcher)
	if !ok {
		return nil, fmt.Errorf("%w: %s does not resolve episode sources", ErrUnsupported, m.adapter.Identity().Name)
	}

	source, err := fetcher.FetchEpisodeSources(ctx, episodeID, streamingServer)
	if err != nil {
		return nil, wrapProviderError("failed to fetch episode sources", err)
	}
	return source, nil
}

// Search finds anime by title. When the metadata source is unavailable the recent feed's catalog is searched instead.
func (m MediaManager) Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	log := logger.FromCtx(ctx)
	if strings.TrimSpace(query) == "" {
		log.Debug("search query is empty")
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("%w: query is empty", ErrValidation)
	}

	page, err := m.metadata.Search(ctx, query, params)
	if err == nil {
		return page, nil
	}

	if !mhttp.IsUnavailable(err) || m.recent == nil {
		log.Errorw("search failed", zap.String("query", query), zap.Error(err))
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("search failed: %w", err)
	}

	log.Warnw("metadata search unavailable, falling back to recent feed catalog", zap.Error(err))
	page, err = m.recent.Search(ctx, query, params)
	if err != nil {
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("search failed: %w", err)
	}
	return page, nil
}

// AdvancedSearch finds anime by filter. When the metadata source is unavailable a filter with a query
// searches the recent feed's catalog instead.
func (m MediaManager) AdvancedSearch(ctx context.Context, filter anilist.Filter, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	log := logger.FromCtx(ctx)
	filter.Query = strings.TrimSpace(filter.Query)

	page, err := m.metadata.AdvancedSearch(ctx, filter, params)
	if err == nil {
		return page, nil
	}
	if errors.Is(err, anilist.ErrInvalidGenre) {
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	if !mhttp.IsUnavailable(err) || m.recent == nil || filter.Query == "" {
		log.Errorw("advanced search failed", zap.String("query", filter.Query), zap.Error(err))
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("advanced search failed: %w", err)
	}

	log.Warnw("metadata advanced search unavailable, falling back to recent feed catalog", zap.Error(err))
	page, err = m.recent.Search(ctx, filter.Query, params)
	if err != nil {
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("advanced search failed: %w", err)
	}
	return page, nil
}

// Trending lists the anime trending right now
func (m MediaManager) Trending(ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	page, err := m.metadata.Trending(ctx, params)
	if err != nil {
		logger.FromCtx(ctx).Errorw("failed to fetch trending anime", zap.Error(err))
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("failed to fetch trending anime: %w", err)
	}
	return page, nil
}

// Popular lists the most popular anime
func (m MediaManager) Popular(ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	page, err := m.metadata.Popular(ctx, params)
	if err != nil {
		logger.FromCtx(ctx).Errorw("failed to fetch popular anime", zap.Error(err))
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("failed to fetch popular anime: %w", err)
	}
	return page, nil
}

// RecentEpisodes lists recently released episodes with episode ids for providerName
func (m MediaManager) RecentEpisodes(ctx context.Context, providerName string, params pagination.Params) (pagination.Page[media.RecentEpisode], error) {
	if m.recent == nil {
		return pagination.Page[media.RecentEpisode]{}, fmt.Errorf("%w: recent episodes are not configured", ErrUnsupported)
	}

	name, err := anify.ParseRecentProvider(providerName)
	if err != nil {
		return pagination.Page[media.RecentEpisode]{}, fmt.Errorf("%w: %w", ErrValidation, err)
	}

	page, err := m.recent.RecentEpisodes(ctx, name, params)
	if err != nil {
		logger.FromCtx(ctx).Errorw("failed to fetch recent episodes", zap.String("provider", name), zap.Error(err))
		return pagination.Page[media.RecentEpisode]{}, err
	}
	return page, nil
}

func wrapProviderError(msg string, err error) error {
	if errors.Is(err, provider.ErrNotFound) {
		return fmt.Errorf("%s: %w: %w", msg, ErrNotFound, err)
	}
	return fmt.Errorf("%s: %w", msg, err)
}
