package malsync

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/provider"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_client.go github.com/kasuboski/animez/pkg/malsync ClientInterface

const DefaultURL = "https://api.malsync.moe"

// ClientInterface looks up the listings of a MAL title on other sites
type ClientInterface interface {
	GetAnime(ctx context.Context, malID int) (*Anime, error)
}

// Entry is one listing of a title on a site
type Entry struct {
	Page  string `json:"page"`
	URL   string `json:"url"`
	Title string `json:"title"`
}

// Site groups the entries a single site has for a title
type Site struct {
	Name    string
	Entries []Entry
}

// Anime is the cross reference record of a MAL id.
// Sites and their entries keep the order the index returned them in.
type Anime struct {
	ID    int    `json:"id"`
	Title string `json:"title"`
	Sites []Site `json:"-"`
}

// Entries flattens the entries of every site in encounter order
func (a *Anime) Entries() []Entry {
	if a == nil {
		return nil
	}

	entries := make([]Entry, 0)
	for _, s := range a.Sites {
		entries = append(entries, s.Entries...)
	}
	return entries
}

func (a *Anime) UnmarshalJSON(b []byte) error {
	type alias Anime
	aux := struct {
		*alias
		Sites json.RawMessage `json:"Sites"`
	}{alias: (*alias)(a)}

	if err := json.Unmarshal(b, &aux); err != nil {
		return err
	}

	if len(aux.Sites) == 0 || string(aux.Sites) == "null" {
		return nil
	}

	// Sites is an object of site name to an object of listing key to entry
	return provider.DecodeOrderedObject(aux.Sites, func(site string, value json.RawMessage) error {
		s := Site{Name: site}
		err := provider.DecodeOrderedObject(value, func(_ string, entry json.RawMessage) error {
			var e Entry
			if err := json.Unmarshal(entry, &e); err != nil {
				return fmt.Errorf("failed to decode %s entry: %w", site, err)
			}
			if e.Page == "" {
				e.Page = site
			}
			s.Entries = append(s.Entries, e)
			return nil
		})
		if err != nil {
			return err
		}

		a.Sites = append(a.Sites, s)
		return nil
	})
}

type Client struct {
	baseURL string
	http    mhttp.HTTPClient
}

func New(baseURL string, client mhttp.HTTPClient) Client {
	if baseURL == "" {
		baseURL = DefaultURL
	}
	return Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    client,
	}
}

// GetAnime fetches the cross reference record for a MAL id
func (c Client) GetAnime(ctx context.Context, malID int) (*Anime, error) {
	if malID <= 0 {
		return nil, fmt.Errorf("invalid mal id %d", malID)
	}

	anime := new(Anime)
	err := mhttp.GetJSON(ctx, c.http, fmt.Sprintf("%s/mal/anime/%d", c.baseURL, malID), anime)
	if err != nil {
		return nil, err
	}

	return anime, nil
}
