package reconcile

import (
	"math"
	"regexp"
	"sort"
	"strings"

	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/samber/lo"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	digitsPattern = regexp.MustCompile(`[0-9]+`)
	camelBoundary = regexp.MustCompile(`(\p{Ll})(\p{Lu})`)
)

// Normalize converts the raw episodes of a listing into normalized episodes using the rule of the provider variant
func Normalize(variant provider.Variant, listing *provider.Listing, audio media.AudioTrack) []media.NormalizedEpisode {
	if listing == nil {
		return []media.NormalizedEpisode{}
	}

	switch variant {
	case provider.VariantSuffixedID:
		return normalizeSuffixedID(listing, audio)
	case provider.VariantDualField:
		return normalizeDualField(listing, audio)
	case provider.VariantGroupedByKey:
		return normalizeGroupedByKey(listing, audio)
	default:
		return normalizeGeneric(listing, audio)
	}
}

// normalizeSuffixedID rewrites the shared "$both" id marker to the requested track
func normalizeSuffixedID(listing *provider.Listing, audio media.AudioTrack) []media.NormalizedEpisode {
	both := media.TrackBoth.Marker()
	rewrite := listing.Track == media.TrackBoth && audio != media.TrackBoth

	return lo.Map(listing.Episodes, func(raw provider.RawEpisode, _ int) media.NormalizedEpisode {
		id := raw.ID
		if rewrite && strings.HasSuffix(id, both) {
			id = strings.TrimSuffix(id, both) + audio.Marker()
		}
		return fromRaw(raw, id, "")
	})
}

// normalizeDualField picks the sub or dub id of every episode, dropping episodes without one
func normalizeDualField(listing *provider.Listing, audio media.AudioTrack) []media.NormalizedEpisode {
	episodes := lo.Map(listing.Episodes, func(raw provider.RawEpisode, _ int) media.NormalizedEpisode {
		id := raw.ID
		if audio == media.TrackDub {
			id = raw.DubID
		}
		return fromRaw(raw, id, "")
	})

	return lo.Filter(episodes, func(ep media.NormalizedEpisode, _ int) bool {
		return ep.ID != ""
	})
}

// normalizeGroupedByKey keeps the groups whose key names the requested track and flattens them season by season
func normalizeGroupedByKey(listing *provider.Listing, audio media.AudioTrack) []media.NormalizedEpisode {
	groups := lo.Filter(listing.Groups, func(g provider.EpisodeGroup, _ int) bool {
		key := strings.ToLower(g.Key)
		if audio == media.TrackBoth {
			return strings.Contains(key, string(media.TrackSub)) || strings.Contains(key, string(media.TrackDub))
		}
		return strings.Contains(key, string(audio))
	})

	sort.SliceStable(groups, func(i, j int) bool {
		return groups[i].Season() < groups[j].Season()
	})

	return lo.FlatMap(groups, func(g provider.EpisodeGroup, _ int) []media.NormalizedEpisode {
		label := AudioLabel(g.Key)
		return lo.Map(g.Episodes, func(raw provider.RawEpisode, _ int) media.NormalizedEpisode {
			return fromRaw(raw, raw.ID, label)
		})
	})
}

// normalizeGeneric passes episodes through unless the listing is fixed to the other track
func normalizeGeneric(listing *provider.Listing, audio media.AudioTrack) []media.NormalizedEpisode {
	fixed := listing.Track
	if fixed != "" && fixed != media.TrackBoth && audio != media.TrackBoth && fixed != audio {
		return []media.NormalizedEpisode{}
	}

	return lo.Map(listing.Episodes, func(raw provider.RawEpisode, _ int) media.NormalizedEpisode {
		return fromRaw(raw, raw.ID, "")
	})
}

// AudioLabel turns a group key such as "Season1Dub" or "english dub" into a readable label
func AudioLabel(key string) string {
	s := digitsPattern.ReplaceAllString(key, " ")
	s = camelBoundary.ReplaceAllString(s, "$1 $2")

	words := lo.Filter(strings.Fields(s), func(w string, _ int) bool {
		return !strings.EqualFold(w, "season")
	})

	return cases.Title(language.English).String(strings.Join(words, " "))
}

func fromRaw(raw provider.RawEpisode, id, label string) media.NormalizedEpisode {
	number := 0
	if raw.Number > 0 && raw.Number == math.Trunc(raw.Number) {
		number = int(raw.Number)
	}

	return media.NormalizedEpisode{
		ID:          id,
		Number:      number,
		Title:       raw.Title,
		Description: raw.Description,
		Type:        label,
		Image:       raw.Image,
		ImageHash:   raw.ImageHash,
		URL:         raw.URL,
	}
}

// Finalize drops repeated ids, makes the episode numbers strictly increasing and
// fills in missing images from the canonical media
func Finalize(episodes []media.NormalizedEpisode, canonical media.CanonicalMedia) []media.NormalizedEpisode {
	episodes = lo.UniqBy(episodes, func(ep media.NormalizedEpisode) string {
		return ep.ID
	})

	if !strictlyIncreasing(episodes) {
		for i := range episodes {
			episodes[i].Number = i + 1
		}
	}

	for i := range episodes {
		if episodes[i].Image == "" {
			episodes[i].Image = canonical.Image
		}
		if episodes[i].ImageHash == "" {
			episodes[i].ImageHash = canonical.ImageHash
		}
	}

	return episodes
}

func strictlyIncreasing(episodes []media.NormalizedEpisode) bool {
	prev := 0
	for _, ep := range episodes {
		if ep.Number <= prev {
			return false
		}
		prev = ep.Number
	}
	return true
}
