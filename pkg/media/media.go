package media

import (
	"errors"
	"fmt"
	"hash/fnv"
	"strconv"
	"strings"
)

// MediaStatus is the airing status of a title
type MediaStatus string

const (
	StatusOngoing     MediaStatus = "Ongoing"
	StatusCompleted   MediaStatus = "Completed"
	StatusNotYetAired MediaStatus = "Not yet aired"
	StatusCancelled   MediaStatus = "Cancelled"
	StatusHiatus      MediaStatus = "Hiatus"
	StatusUnknown     MediaStatus = "Unknown"
)

// AudioTrack is the audio variant of an episode
type AudioTrack string

const (
	TrackSub  AudioTrack = "sub"
	TrackDub  AudioTrack = "dub"
	TrackBoth AudioTrack = "both"
)

var ErrInvalidTrack = errors.New("invalid audio track")

// ParseAudioTrack parses a user supplied track name. Matching is case-insensitive.
func ParseAudioTrack(s string) (AudioTrack, error) {
	switch AudioTrack(strings.ToLower(strings.TrimSpace(s))) {
	case TrackSub:
		return TrackSub, nil
	case TrackDub:
		return TrackDub, nil
	case TrackBoth:
		return TrackBoth, nil
	}

	return "", fmt.Errorf("%w: %q must be one of sub, dub or both", ErrInvalidTrack, s)
}

// TrackFromDub maps the common dub flag onto a track
func TrackFromDub(dub bool) AudioTrack {
	if dub {
		return TrackDub
	}
	return TrackSub
}

// Marker is the token providers use for the track inside episode ids, e.g. "$dub"
func (t AudioTrack) Marker() string {
	return "$" + string(t)
}

// Title holds the known variants of a title
type Title struct {
	Romaji        string `json:"romaji,omitempty" yaml:"romaji,omitempty"`
	English       string `json:"english,omitempty" yaml:"english,omitempty"`
	Native        string `json:"native,omitempty" yaml:"native,omitempty"`
	UserPreferred string `json:"userPreferred,omitempty" yaml:"userPreferred,omitempty"`
}

// Preferred returns the first non-empty title, english first
func (t Title) Preferred() string {
	for _, s := range []string{t.English, t.Romaji, t.UserPreferred, t.Native} {
		if s != "" {
			return s
		}
	}
	return ""
}

type AiringEpisode struct {
	Episode  int   `json:"episode" yaml:"episode"`
	AiringAt int64 `json:"airingAt" yaml:"airingAt"`
}

// CanonicalMedia is the authoritative metadata record for a title. It is never mutated by reconciliation.
type CanonicalMedia struct {
	ID                string         `json:"id" yaml:"id"`
	MalID             int            `json:"malId,omitempty" yaml:"malId,omitempty"`
	Title             Title          `json:"title" yaml:"title"`
	Status            MediaStatus    `json:"status" yaml:"status"`
	ReleaseDate       int            `json:"releaseDate,omitempty" yaml:"releaseDate,omitempty"`
	Season            string         `json:"season,omitempty" yaml:"season,omitempty"`
	Format            string         `json:"type,omitempty" yaml:"type,omitempty"`
	Description       string         `json:"description,omitempty" yaml:"description,omitempty"`
	Genres            []string       `json:"genres,omitempty" yaml:"genres,omitempty"`
	Image             string         `json:"image,omitempty" yaml:"image,omitempty"`
	ImageHash         string         `json:"imageHash,omitempty" yaml:"imageHash,omitempty"`
	Cover             string         `json:"cover,omitempty" yaml:"cover,omitempty"`
	CoverHash         string         `json:"coverHash,omitempty" yaml:"coverHash,omitempty"`
	Color             string         `json:"color,omitempty" yaml:"color,omitempty"`
	Rating            int            `json:"rating,omitempty" yaml:"rating,omitempty"`
	Popularity        int            `json:"popularity,omitempty" yaml:"popularity,omitempty"`
	TotalEpisodes     int            `json:"totalEpisodes,omitempty" yaml:"totalEpisodes,omitempty"`
	CurrentEpisode    int            `json:"currentEpisode,omitempty" yaml:"currentEpisode,omitempty"`
	NextAiringEpisode *AiringEpisode `json:"nextAiringEpisode,omitempty" yaml:"nextAiringEpisode,omitempty"`
}

// NormalizedEpisode is the provider independent episode shape
type NormalizedEpisode struct {
	ID          string `json:"id" yaml:"id"`
	Number      int    `json:"number" yaml:"number"`
	Title       string `json:"title,omitempty" yaml:"title,omitempty"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Type        string `json:"type,omitempty" yaml:"type,omitempty"`
	IsFiller    *bool  `json:"isFiller,omitempty" yaml:"isFiller,omitempty"`
	Image       string `json:"image,omitempty" yaml:"image,omitempty"`
	ImageHash   string `json:"imageHash,omitempty" yaml:"imageHash,omitempty"`
	URL         string `json:"url,omitempty" yaml:"url,omitempty"`
}

// AnimeInfo is canonical media together with its reconciled episodes
type AnimeInfo struct {
	CanonicalMedia `yaml:",inline"`
	Episodes       []NormalizedEpisode `json:"episodes" yaml:"episodes"`
}

// RecentEpisode is a newly released episode of a title on one provider
type RecentEpisode struct {
	ID            string   `json:"id" yaml:"id"`
	MalID         int      `json:"malId,omitempty" yaml:"malId,omitempty"`
	Title         Title    `json:"title" yaml:"title"`
	Image         string   `json:"image,omitempty" yaml:"image,omitempty"`
	ImageHash     string   `json:"imageHash,omitempty" yaml:"imageHash,omitempty"`
	Rating        int      `json:"rating,omitempty" yaml:"rating,omitempty"`
	Color         string   `json:"color,omitempty" yaml:"color,omitempty"`
	EpisodeID     string   `json:"episodeId" yaml:"episodeId"`
	EpisodeTitle  string   `json:"episodeTitle" yaml:"episodeTitle"`
	EpisodeNumber int      `json:"episodeNumber" yaml:"episodeNumber"`
	Genres        []string `json:"genres,omitempty" yaml:"genres,omitempty"`
	Format        string   `json:"type,omitempty" yaml:"type,omitempty"`
}

// ImageHash returns a stable short digest of an image url. Empty urls hash to "".
func ImageHash(url string) string {
	if url == "" {
		return ""
	}
	h := fnv.New64a()
	h.Write([]byte(url))
	return strconv.FormatUint(h.Sum64(), 16)
}
