package provider

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/kasuboski/animez/pkg/media"
)

// RawEpisode is a provider episode before normalization
type RawEpisode struct {
	ID           string  `json:"id"`
	DubID        string  `json:"dubId,omitempty"`
	Number       float64 `json:"number,omitempty"`
	SeasonNumber int     `json:"season_number,omitempty"`
	Title        string  `json:"title,omitempty"`
	Description  string  `json:"description,omitempty"`
	Image        string  `json:"image,omitempty"`
	ImageHash    string  `json:"imageHash,omitempty"`
	URL          string  `json:"url,omitempty"`
}

// EpisodeGroup is a named group of episodes, e.g. "Season1Dub"
type EpisodeGroup struct {
	Key      string       `json:"key"`
	Episodes []RawEpisode `json:"episodes"`
}

// Season is the season ordinal of the group taken from its first episode
func (g EpisodeGroup) Season() int {
	if len(g.Episodes) == 0 {
		return 0
	}
	return g.Episodes[0].SeasonNumber
}

// Listing is a provider local representation of a title.
// Providers either fill Episodes or, for grouped providers, Groups in the order the provider returned them.
type Listing struct {
	ID       string           `json:"id"`
	Title    Title            `json:"title"`
	URL      string           `json:"url,omitempty"`
	Image    string           `json:"image,omitempty"`
	Track    media.AudioTrack `json:"subOrDub,omitempty"`
	Episodes []RawEpisode     `json:"episodes,omitempty"`
	Groups   []EpisodeGroup   `json:"-"`
}

// HasEpisodes reports whether the listing carries at least one raw episode
func (l *Listing) HasEpisodes() bool {
	if l == nil {
		return false
	}
	if len(l.Episodes) > 0 {
		return true
	}
	for _, g := range l.Groups {
		if len(g.Episodes) > 0 {
			return true
		}
	}
	return false
}

// UnmarshalJSON accepts episodes either as an array or as an object of named groups
func (l *Listing) UnmarshalJSON(b []byte) error {
	type alias Listing
	aux := struct {
		*alias
		Episodes json.RawMessage `json:"episodes"`
	}{alias: (*alias)(l)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	raw := bytes.TrimSpace(aux.Episodes)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return nil
	}

	if raw[0] == '[' {
		return json.Unmarshal(raw, &l.Episodes)
	}

	groups := make([]EpisodeGroup, 0)
	err := DecodeOrderedObject(raw, func(key string, value json.RawMessage) error {
		var episodes []RawEpisode
		if err := json.Unmarshal(value, &episodes); err != nil {
			return fmt.Errorf("failed to decode episode group %q: %w", key, err)
		}
		groups = append(groups, EpisodeGroup{Key: key, Episodes: episodes})
		return nil
	})
	if err != nil {
		return err
	}

	l.Groups = groups
	return nil
}

// DecodeOrderedObject calls fn for every member of a JSON object in document order
func DecodeOrderedObject(b []byte, fn func(key string, value json.RawMessage) error) error {
	dec := json.NewDecoder(bytes.NewReader(b))

	tok, err := dec.Token()
	if err != nil {
		return err
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return fmt.Errorf("expected object, got %v", tok)
	}

	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return err
		}

		key, ok := tok.(string)
		if !ok {
			return fmt.Errorf("expected object key, got %v", tok)
		}

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return err
		}

		if err := fn(key, value); err != nil {
			return err
		}
	}

	_, err = dec.Token()
	return err
}
