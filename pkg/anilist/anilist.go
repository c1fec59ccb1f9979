package anilist

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/oapi-codegen/nullable"
	"github.com/samber/lo"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_client.go github.com/kasuboski/animez/pkg/anilist ClientInterface

const DefaultURL = "https://graphql.anilist.co"

var (
	ErrNotFound     = errors.New("media not found")
	ErrInvalidGenre = errors.New("invalid genre")
)

// Genres are the genres advanced search filters by
var Genres = []string{
	"Action",
	"Adventure",
	"Cars",
	"Comedy",
	"Drama",
	"Fantasy",
	"Horror",
	"Mahou Shoujo",
	"Mecha",
	"Music",
	"Mystery",
	"Psychological",
	"Romance",
	"Sci-Fi",
	"Slice of Life",
	"Sports",
	"Supernatural",
	"Thriller",
}

// DefaultAdvancedSort orders advanced search results when the caller gives no sort
var DefaultAdvancedSort = []string{"POPULARITY_DESC", "SCORE_DESC"}

// ClientInterface is the metadata source canonical media is read from
type ClientInterface interface {
	FetchMedia(ctx context.Context, id string) (media.CanonicalMedia, error)
	Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[media.CanonicalMedia], error)
	AdvancedSearch(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[media.CanonicalMedia], error)
	Trending(ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error)
	Popular(ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error)
}

// Filter narrows an advanced search. Zero fields do not filter.
type Filter struct {
	Query  string
	Format string
	Sort   []string
	Genres []string
	ID     int
	Year   int
	Status string
	Season string
}

// ValidateGenres returns ErrInvalidGenre for the first genre that is not one of Genres
func ValidateGenres(genres []string) error {
	for _, g := range genres {
		if !lo.Contains(Genres, g) {
			return fmt.Errorf("%w: %q", ErrInvalidGenre, g)
		}
	}
	return nil
}

func (f Filter) variables(params pagination.Params) map[string]any {
	vars := map[string]any{
		"page":    params.Page,
		"perPage": params.PerPage,
		"sort":    DefaultAdvancedSort,
	}
	if f.Query != "" {
		vars["search"] = f.Query
	}
	if f.Format != "" {
		vars["format"] = strings.ToUpper(f.Format)
	}
	if len(f.Sort) > 0 {
		vars["sort"] = f.Sort
	}
	if len(f.Genres) > 0 {
		vars["genres"] = f.Genres
	}
	if f.ID > 0 {
		vars["id"] = f.ID
	}
	if f.Year > 0 {
		vars["year"] = fmt.Sprintf("%d%%", f.Year)
	}
	if f.Status != "" {
		vars["status"] = strings.ToUpper(f.Status)
	}
	if f.Season != "" {
		vars["season"] = strings.ToUpper(f.Season)
	}
	return vars
}

const mediaFields = `
  id
  idMal
  title { romaji english native userPreferred }
  status
  season
  seasonYear
  format
  description
  genres
  coverImage { extraLarge large medium color }
  bannerImage
  averageScore
  popularity
  episodes
  nextAiringEpisode { episode airingAt }
`

const detailQuery = `query ($id: Int) {
  Media(id: $id, type: ANIME) {` + mediaFields + `}
}`

const pageInfoFields = `pageInfo { total currentPage lastPage hasNextPage }`

const searchQuery = `query ($search: String, $page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    ` + pageInfoFields + `
    media(search: $search, type: ANIME) {` + mediaFields + `}
  }
}`

const advancedQuery = `query ($page: Int, $perPage: Int, $search: String, $format: MediaFormat, $sort: [MediaSort], $genres: [String], $id: Int, $year: String, $status: MediaStatus, $season: MediaSeason) {
  Page(page: $page, perPage: $perPage) {
    ` + pageInfoFields + `
    media(type: ANIME, search: $search, format: $format, sort: $sort, genre_in: $genres, id: $id, startDate_like: $year, status: $status, season: $season) {` + mediaFields + `}
  }
}`

const trendingQuery = `query ($page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    ` + pageInfoFields + `
    media(type: ANIME, sort: [TRENDING_DESC, POPULARITY_DESC]) {` + mediaFields + `}
  }
}`

const popularQuery = `query ($page: Int, $perPage: Int) {
  Page(page: $page, perPage: $perPage) {
    ` + pageInfoFields + `
    media(type: ANIME, sort: [POPULARITY_DESC]) {` + mediaFields + `}
  }
}`

type graphQLRequest struct {
	Query     string         `json:"query"`
	Variables map[string]any `json:"variables"`
}

type graphQLError struct {
	Message string `json:"message"`
	Status  int    `json:"status"`
}

type graphQLResponse[T any] struct {
	Data   T              `json:"data"`
	Errors []graphQLError `json:"errors"`
}

type CoverImage struct {
	ExtraLarge string `json:"extraLarge"`
	Large      string `json:"large"`
	Medium     string `json:"medium"`
	Color      string `json:"color"`
}

// Preferred returns the largest available cover
func (c CoverImage) Preferred() string {
	for _, s := range []string{c.ExtraLarge, c.Large, c.Medium} {
		if s != "" {
			return s
		}
	}
	return ""
}

// Media is an AniList media record. Fields AniList may send as null are nullable.
type Media struct {
	ID                int                                     `json:"id"`
	IDMal             nullable.Nullable[int]                  `json:"idMal"`
	Title             media.Title                             `json:"title"`
	Status            string                                  `json:"status"`
	Season            nullable.Nullable[string]               `json:"season"`
	SeasonYear        nullable.Nullable[int]                  `json:"seasonYear"`
	Format            string                                  `json:"format"`
	Description       nullable.Nullable[string]               `json:"description"`
	Genres            []string                                `json:"genres"`
	CoverImage        CoverImage                              `json:"coverImage"`
	BannerImage       nullable.Nullable[string]               `json:"bannerImage"`
	AverageScore      nullable.Nullable[int]                  `json:"averageScore"`
	Popularity        nullable.Nullable[int]                  `json:"popularity"`
	Episodes          nullable.Nullable[int]                  `json:"episodes"`
	NextAiringEpisode nullable.Nullable[media.AiringEpisode] `json:"nextAiringEpisode"`
}

type PageInfo struct {
	Total       int  `json:"total"`
	CurrentPage int  `json:"currentPage"`
	LastPage    int  `json:"lastPage"`
	HasNextPage bool `json:"hasNextPage"`
}

type Client struct {
	url  string
	http mhttp.HTTPClient
}

func New(url string, client mhttp.HTTPClient) Client {
	if url == "" {
		url = DefaultURL
	}
	return Client{url: url, http: client}
}

// FetchMedia returns the canonical media for an AniList id
func (c Client) FetchMedia(ctx context.Context, id string) (media.CanonicalMedia, error) {
	anilistID, err := strconv.Atoi(strings.TrimSpace(id))
	if err != nil || anilistID <= 0 {
		return media.CanonicalMedia{}, fmt.Errorf("invalid anilist id %q", id)
	}

	var res graphQLResponse[struct {
		Media *Media `json:"Media"`
	}]
	err = c.query(ctx, detailQuery, map[string]any{"id": anilistID}, &res)
	if err != nil {
		if mhttp.IsNotFound(err) {
			return media.CanonicalMedia{}, fmt.Errorf("%w: %d", ErrNotFound, anilistID)
		}
		return media.CanonicalMedia{}, err
	}

	if res.Data.Media == nil {
		if err := responseError(res.Errors); err != nil {
			return media.CanonicalMedia{}, err
		}
		return media.CanonicalMedia{}, fmt.Errorf("%w: %d", ErrNotFound, anilistID)
	}

	return ToCanonical(*res.Data.Media), nil
}

// Search finds anime by title
func (c Client) Search(ctx context.Context, query string, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	params = params.WithDefaults()
	return c.page(ctx, searchQuery, map[string]any{
		"search":  query,
		"page":    params.Page,
		"perPage": params.PerPage,
	}, params)
}

// AdvancedSearch finds anime matching every set field of filter
func (c Client) AdvancedSearch(ctx context.Context, filter Filter, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	if err := ValidateGenres(filter.Genres); err != nil {
		return pagination.Page[media.CanonicalMedia]{}, err
	}
	params = params.WithDefaults()
	return c.page(ctx, advancedQuery, filter.variables(params), params)
}

// Trending lists the anime trending right now
func (c Client) Trending(ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	params = params.WithDefaults()
	return c.page(ctx, trendingQuery, map[string]any{"page": params.Page, "perPage": params.PerPage}, params)
}

// Popular lists the most popular anime of all time
func (c Client) Popular(ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	params = params.WithDefaults()
	return c.page(ctx, popularQuery, map[string]any{"page": params.Page, "perPage": params.PerPage}, params)
}

func (c Client) page(ctx context.Context, query string, variables map[string]any, params pagination.Params) (pagination.Page[media.CanonicalMedia], error) {
	var res graphQLResponse[struct {
		Page struct {
			PageInfo PageInfo `json:"pageInfo"`
			Media    []Media  `json:"media"`
		} `json:"Page"`
	}]
	if err := c.query(ctx, query, variables, &res); err != nil {
		return pagination.Page[media.CanonicalMedia]{}, err
	}
	if err := responseError(res.Errors); err != nil && len(res.Data.Page.Media) == 0 {
		return pagination.Page[media.CanonicalMedia]{}, err
	}

	results := make([]media.CanonicalMedia, 0, len(res.Data.Page.Media))
	for _, m := range res.Data.Page.Media {
		results = append(results, ToCanonical(m))
	}

	info := res.Data.Page.PageInfo
	meta := params.BuildMeta(info.Total, info.HasNextPage)
	if info.LastPage > 0 {
		meta.TotalPages = info.LastPage
	}

	return pagination.Page[media.CanonicalMedia]{Meta: meta, Results: results}, nil
}

func (c Client) query(ctx context.Context, query string, variables map[string]any, out any) error {
	return mhttp.PostJSON(ctx, c.http, c.url, graphQLRequest{Query: query, Variables: variables}, out)
}

func responseError(errs []graphQLError) error {
	if len(errs) == 0 {
		return nil
	}
	msgs := make([]string, len(errs))
	for i, e := range errs {
		msgs[i] = e.Message
	}
	return fmt.Errorf("anilist: %s", strings.Join(msgs, "; "))
}

// ToCanonical maps an AniList media record onto canonical media
func ToCanonical(m Media) media.CanonicalMedia {
	image := m.CoverImage.Preferred()
	cover := valueOr(m.BannerImage, "")

	c := media.CanonicalMedia{
		ID:          strconv.Itoa(m.ID),
		MalID:       valueOr(m.IDMal, 0),
		Title:       m.Title,
		Status:      ParseStatus(m.Status),
		ReleaseDate: valueOr(m.SeasonYear, 0),
		Season:      valueOr(m.Season, ""),
		Format:      m.Format,
		Description: StripHTML(valueOr(m.Description, "")),
		Genres:      m.Genres,
		Image:       image,
		ImageHash:   media.ImageHash(image),
		Cover:       cover,
		CoverHash:   media.ImageHash(cover),
		Color:       m.CoverImage.Color,
		Rating:      valueOr(m.AverageScore, 0),
		Popularity:  valueOr(m.Popularity, 0),
	}

	episodes := valueOr(m.Episodes, 0)
	if next, err := m.NextAiringEpisode.Get(); err == nil {
		c.NextAiringEpisode = &next
		aired := next.Episode - 1

		c.CurrentEpisode = aired
		if aired <= 0 {
			c.CurrentEpisode = episodes
		}
		if episodes == 0 {
			episodes = aired
		}
	} else {
		c.CurrentEpisode = episodes
	}
	c.TotalEpisodes = episodes

	return c
}

// ParseStatus maps an AniList media status onto a media status
func ParseStatus(s string) media.MediaStatus {
	switch s {
	case "RELEASING":
		return media.StatusOngoing
	case "FINISHED":
		return media.StatusCompleted
	case "NOT_YET_RELEASED":
		return media.StatusNotYetAired
	case "CANCELLED":
		return media.StatusCancelled
	case "HIATUS":
		return media.StatusHiatus
	default:
		return media.StatusUnknown
	}
}

// StripHTML returns the text content of an html fragment with line breaks kept
func StripHTML(s string) string {
	if s == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(s))
	if err != nil {
		return s
	}
	doc.Find("br").ReplaceWithHtml("\n")

	return strings.TrimSpace(doc.Text())
}

func valueOr[T any](n nullable.Nullable[T], def T) T {
	v, err := n.Get()
	if err != nil {
		return def
	}
	return v
}
