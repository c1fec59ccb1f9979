package anify

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/kasuboski/animez/pkg/anilist"
	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/kasuboski/animez/pkg/provider"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_client.go github.com/kasuboski/animez/pkg/anify ClientInterface

const DefaultURL = "https://api.anify.tv"

var ErrUnsupportedProvider = errors.New("unsupported recent episodes provider")

// RecentProviders are the providers the recent feed carries episode ids for
var RecentProviders = []string{provider.Gogoanime.Name, provider.Zoro.Name}

// ClientInterface is the recent episodes feed, a fallback search and a source of provider episode lists
type ClientInterface interface {
	RecentEpisodes(ctx context.Context, providerName string, params pagination.Params) (pagination.Page[media.RecentEpisode], error)
	Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[media.CanonicalMedia], error)
	Episodes(ctx context.Context, anilistID string, providerName string) ([]media.NormalizedEpisode, error)
}

// ParseRecentProvider validates a provider name for the recent feed. Empty selects gogoanime.
func ParseRecentProvider(name string) (string, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return provider.Gogoanime.Name, nil
	}
	for _, p := range RecentProviders {
		if p == name {
			return p, nil
		}
	}
	return "", fmt.Errorf("%w %q, expected one of %s", ErrUnsupportedProvider, name, strings.Join(RecentProviders, ", "))
}

// ID is an identifier the feed sends either as a string or a number
type ID string

func (id *ID) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) == 0 || bytes.Equal(b, []byte("null")) {
		return nil
	}
	if b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("invalid id %s", b)
	}
	*id = ID(n.String())
	return nil
}

type Mapping struct {
	ID           ID     `json:"id"`
	ProviderID   string `json:"providerId"`
	ProviderType string `json:"providerType"`
}

type Episode struct {
	ID          string  `json:"id"`
	Number      float64 `json:"number"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Image       string  `json:"img"`
}

// ToNormalized maps a feed episode onto a normalized episode
func (e Episode) ToNormalized() media.NormalizedEpisode {
	return media.NormalizedEpisode{
		ID:          e.ID,
		Number:      int(e.Number),
		Title:       e.Title,
		Description: e.Description,
		Image:       e.Image,
		ImageHash:   media.ImageHash(e.Image),
	}
}

type ProviderEpisodes struct {
	ProviderID string    `json:"providerId"`
	Episodes   []Episode `json:"episodes"`
}

type Episodes struct {
	Latest struct {
		LatestTitle *string `json:"latestTitle"`
	} `json:"latest"`
	Data []ProviderEpisodes `json:"data"`
}

// Item is one title of the feed
type Item struct {
	ID             ID          `json:"id"`
	Title          media.Title `json:"title"`
	CoverImage     string      `json:"coverImage"`
	BannerImage    string      `json:"bannerImage"`
	AverageScore   float64     `json:"averageScore"`
	Color          string      `json:"color"`
	CurrentEpisode float64     `json:"currentEpisode"`
	TotalEpisodes  float64     `json:"totalEpisodes"`
	Genres         []string    `json:"genres"`
	Format         string      `json:"format"`
	Status         string      `json:"status"`
	Description    string      `json:"description"`
	Year           int         `json:"year"`
	Mappings       []Mapping   `json:"mappings"`
	Episodes       Episodes    `json:"episodes"`
}

// MalID is the id of the META mapping from mal, 0 when there is none
func (i Item) MalID() int {
	for _, m := range i.Mappings {
		if m.ProviderType == "META" && m.ProviderID == "mal" {
			id, err := strconv.Atoi(string(m.ID))
			if err != nil {
				return 0
			}
			return id
		}
	}
	return 0
}

// LatestEpisodeID is the id of the last episode the named provider lists, "" when the provider has none.
// The feed lists episodes oldest first.
func (i Item) LatestEpisodeID(providerName string) string {
	for _, p := range i.Episodes.Data {
		if !strings.EqualFold(p.ProviderID, providerName) {
			continue
		}
		if len(p.Episodes) == 0 {
			return ""
		}
		return p.Episodes[len(p.Episodes)-1].ID
	}
	return ""
}

func (i Item) image() string {
	if i.CoverImage != "" {
		return i.CoverImage
	}
	return i.BannerImage
}

// ToRecentEpisode maps a feed item onto a recent episode for the named provider
func (i Item) ToRecentEpisode(providerName string) media.RecentEpisode {
	current := int(i.CurrentEpisode)

	title := fmt.Sprintf("Episode %d", current)
	if latest := i.Episodes.Latest.LatestTitle; latest != nil {
		title = *latest
	}

	image := i.image()
	return media.RecentEpisode{
		ID:            string(i.ID),
		MalID:         i.MalID(),
		Title:         i.Title,
		Image:         image,
		ImageHash:     media.ImageHash(image),
		Rating:        int(i.AverageScore),
		Color:         i.Color,
		EpisodeID:     i.LatestEpisodeID(providerName),
		EpisodeTitle:  title,
		EpisodeNumber: current,
		Genres:        i.Genres,
		Format:        i.Format,
	}
}

// ToCanonical maps a feed item onto canonical media
func (i Item) ToCanonical() media.CanonicalMedia {
	image := i.image()
	return media.CanonicalMedia{
		ID:             string(i.ID),
		MalID:          i.MalID(),
		Title:          i.Title,
		Status:         anilist.ParseStatus(i.Status),
		ReleaseDate:    i.Year,
		Format:         i.Format,
		Description:    i.Description,
		Genres:         i.Genres,
		Image:          image,
		ImageHash:      media.ImageHash(image),
		Cover:          i.BannerImage,
		CoverHash:      media.ImageHash(i.BannerImage),
		Color:          i.Color,
		Rating:         int(i.AverageScore),
		TotalEpisodes:  int(i.TotalEpisodes),
		CurrentEpisode: int(i.CurrentEpisode),
	}
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

// RecentEpisodes lists recently released episodes with the episode ids of providerName
func (c Client) RecentEpisodes(ctx context.Context, providerName string, params pagination.Params) (pagination.Page[media.RecentEpisode], error) {
	name, err := ParseRecentProvider(providerName)
	if err != nil {
		return pagination.Page[media.RecentEpisode]{}, err
	}
	params = params.WithDefaults()

	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("perPage", strconv.Itoa(params.PerPage))
	q.Set("type", "anime")

	var items []Item
	if err := mhttp.GetJSON(ctx, c.http, c.baseURL+"/recent?"+q.Encode(), &items); err != nil {
		return pagination.Page[media.RecentEpisode]{}, fmt.Errorf("failed to fetch recent episodes: %w", err)
	}

	results := make([]media.RecentEpisode, 0, len(items))
	for _, item := range items {
		results = append(results, item.ToRecentEpisode(name))
	}

	return pagination.Page[media.RecentEpisode]{
		Meta:    params.BuildMeta(len(results), len(results) == params.PerPage),
		Results: results,
	}, nil
}

// Search looks titles up in the feed's own catalog
func (c Client) Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	params = params.WithDefaults()

	q := url.Values{}
	q.Set("page", strconv.Itoa(params.Page))
	q.Set("perPage", strconv.Itoa(params.PerPage))

	var items []Item
	u := fmt.Sprintf("%s/search/anime/%s?%s", c.baseURL, url.PathEscape(query), q.Encode())
	if err := mhttp.GetJSON(ctx, c.http, u, &items); err != nil {
		return pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("failed to search: %w", err)
	}

	results := make([]media.CanonicalMedia, 0, len(items))
	for _, item := range items {
		results = append(results, item.ToCanonical())
	}

	return pagination.Page[media.CanonicalMedia]{
		Meta:    params.BuildMeta(len(results), len(results) == params.PerPage),
		Results: results,
	}, nil
}

// Episodes lists the episodes the feed has for an AniList id on providerName, oldest first
func (c Client) Episodes(ctx context.Context, anilistID string, providerName string) ([]media.NormalizedEpisode, error) {
	name, err := ParseRecentProvider(providerName)
	if err != nil {
		return nil, err
	}

	var lists []ProviderEpisodes
	u := fmt.Sprintf("%s/episodes/%s", c.baseURL, url.PathEscape(strings.TrimSpace(anilistID)))
	if err := mhttp.GetJSON(ctx, c.http, u, &lists); err != nil {
		return nil, fmt.Errorf("failed to fetch episodes: %w", err)
	}

	for _, l := range lists {
		if !strings.EqualFold(l.ProviderID, name) {
			continue
		}
		episodes := make([]media.NormalizedEpisode, 0, len(l.Episodes))
		for _, ep := range l.Episodes {
			if ep.ID == "" {
				continue
			}
			episodes = append(episodes, ep.ToNormalized())
		}
		return episodes, nil
	}

	return []media.NormalizedEpisode{}, nil
}
