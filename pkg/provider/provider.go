package provider

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/kasuboski/animez/pkg/media"
)

// Variant is how a provider encodes the audio track in its episode listings
type Variant int

const (
	// VariantGeneric listings optionally declare one fixed track for every episode
	VariantGeneric Variant = iota
	// VariantSuffixedID listings share one id for both tracks with a trailing marker such as "$both"
	VariantSuffixedID
	// VariantDualField episodes carry separate sub and dub ids
	VariantDualField
	// VariantGroupedByKey episodes are grouped under keys naming the track and season
	VariantGroupedByKey
)

func (v Variant) String() string {
	switch v {
	case VariantSuffixedID:
		return "suffixed-id"
	case VariantDualField:
		return "dual-field"
	case VariantGroupedByKey:
		return "grouped-by-key"
	default:
		return "generic"
	}
}

// Identity describes a provider to the reconciliation engine
type Identity struct {
	// Name is matched case-insensitively against cross reference site names
	Name    string
	Variant Variant
	// DubInTitle providers list dubs as separate titles marked with "dub"
	DubInTitle bool
	// SkipCrossReference providers are never resolved through the cross reference index
	SkipCrossReference bool
}

// Adapter is the contract every content provider exposes to the engine
type Adapter interface {
	Identity() Identity
	Search(ctx context.Context, query string) ([]SearchResult, error)
	FetchInfo(ctx context.Context, id string) (*Listing, error)
}

// ServerFetcher is implemented by adapters that can list the streaming servers of an episode
type ServerFetcher interface {
	FetchEpisodeServers(ctx context.Context, episodeID string) ([]Server, error)
}

// SourceFetcher is implemented by adapters that can resolve playable sources of an episode
type SourceFetcher interface {
	FetchEpisodeSources(ctx context.Context, episodeID string, server StreamingServer) (*Source, error)
}

var ErrNotFound = errors.New("not found")

// Title is a provider title which is either a plain string or a romaji/english/native object
type Title struct {
	Text    string
	Romaji  string
	English string
	Native  string
}

// String returns the plain title, falling back to english then romaji then native
func (t Title) String() string {
	for _, s := range []string{t.Text, t.English, t.Romaji, t.Native} {
		if s != "" {
			return s
		}
	}
	return ""
}

func (t *Title) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}

	if b[0] == '"' {
		return json.Unmarshal(b, &t.Text)
	}

	var obj struct {
		Romaji  string `json:"romaji"`
		English string `json:"english"`
		Native  string `json:"native"`
	}
	if err := json.Unmarshal(b, &obj); err != nil {
		return fmt.Errorf("failed to decode title: %w", err)
	}

	t.Romaji, t.English, t.Native = obj.Romaji, obj.English, obj.Native
	return nil
}

func (t Title) MarshalJSON() ([]byte, error) {
	if t.Romaji == "" && t.English == "" && t.Native == "" {
		return json.Marshal(t.Text)
	}
	return json.Marshal(map[string]string{
		"romaji":  t.Romaji,
		"english": t.English,
		"native":  t.Native,
	})
}

// SearchResult is one hit from a provider search
type SearchResult struct {
	ID       string           `json:"id"`
	Title    Title            `json:"title"`
	URL      string           `json:"url,omitempty"`
	Image    string           `json:"image,omitempty"`
	SubOrDub media.AudioTrack `json:"subOrDub,omitempty"`
}
