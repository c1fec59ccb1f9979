package reconcile

import (
	"context"
	"sort"
	"strings"

	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/malsync"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/kasuboski/animez/pkg/title"
	"go.uber.org/zap"
)

// candidate is a cross reference entry scored against the title being reconciled
type candidate struct {
	entry malsync.Entry
	score float64
}

// Resolver finds the listing of a title on the active provider through the cross reference index
type Resolver struct {
	index   malsync.ClientInterface
	adapter provider.Adapter
}

func NewResolver(index malsync.ClientInterface, adapter provider.Adapter) Resolver {
	return Resolver{index: index, adapter: adapter}
}

// Resolve returns the provider listing for malID or nil when the index has no usable entry.
// Lookup failures are logged and reported as no match.
func (r Resolver) Resolve(ctx context.Context, malID int, slug string, audio media.AudioTrack) *provider.Listing {
	identity := r.adapter.Identity()
	log := logger.FromCtx(ctx).With(zap.String("provider", identity.Name), zap.Int("malId", malID))

	if malID == 0 || r.index == nil || identity.SkipCrossReference {
		return nil
	}

	anime, err := r.index.GetAnime(ctx, malID)
	if err != nil {
		log.Warnw("cross reference lookup failed", zap.Error(err))
		return nil
	}

	entry, ok := pickEntry(rankEntries(anime.Entries(), slug), identity, audio)
	if !ok {
		log.Debugw("no cross reference entry for provider", zap.String("slug", slug))
		return nil
	}

	id := idFromURL(entry.URL)
	if id == "" {
		log.Debugw("cross reference entry has no id", zap.String("url", entry.URL))
		return nil
	}

	listing, err := r.adapter.FetchInfo(ctx, id)
	if err != nil {
		log.Warnw("failed to fetch cross referenced listing", zap.String("id", id), zap.Error(err))
		return nil
	}

	log.Debugw("resolved through cross reference", zap.String("id", id), zap.String("title", entry.Title))
	return listing
}

// rankEntries scores every entry against slug, best first. Equal scores keep encounter order.
func rankEntries(entries []malsync.Entry, slug string) []candidate {
	candidates := make([]candidate, 0, len(entries))
	for _, e := range entries {
		candidates = append(candidates, candidate{
			entry: e,
			score: title.Similarity(slug, title.Normalize(e.Title)),
		})
	}

	sort.SliceStable(candidates, func(i, j int) bool {
		return candidates[i].score > candidates[j].score
	})
	return candidates
}

// pickEntry returns the first candidate listed on the provider that matches the requested track
func pickEntry(candidates []candidate, identity provider.Identity, audio media.AudioTrack) (malsync.Entry, bool) {
	for _, c := range candidates {
		if !strings.EqualFold(c.entry.Page, identity.Name) {
			continue
		}

		if identity.DubInTitle {
			isDub := strings.Contains(strings.ToLower(c.entry.Title), "dub")
			if isDub != (audio == media.TrackDub) {
				continue
			}
		}

		return c.entry, true
	}

	return malsync.Entry{}, false
}

func idFromURL(u string) string {
	u = strings.TrimRight(u, "/")
	if i := strings.LastIndex(u, "/"); i >= 0 {
		return u[i+1:]
	}
	return u
}
