package anilist

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const narutoMedia = `{
  "id": 20,
  "idMal": 20,
  "title": {"romaji": "NARUTO", "english": "Naruto", "native": "ナルト", "userPreferred": "NARUTO"},
  "status": "FINISHED",
  "season": "FALL",
  "seasonYear": 2002,
  "format": "TV",
  "description": "Naruto Uzumaki wants to be the best ninja.<br><br>\n<i>(Source: Anime News Network)</i>",
  "genres": ["Action", "Adventure"],
  "coverImage": {"extraLarge": null, "large": "https://img/large.jpg", "medium": "https://img/medium.jpg", "color": "#e4a15d"},
  "bannerImage": "https://img/banner.jpg",
  "averageScore": 79,
  "popularity": 500000,
  "episodes": 220,
  "nextAiringEpisode": null
}`

func graphQLServer(t *testing.T, handle func(req graphQLRequest) (int, string)) *httptest.Server {
	t.Helper()

	return httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, r *http.Request) {
		var req graphQLRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))

		status, body := handle(req)
		rw.WriteHeader(status)
		rw.Write([]byte(body))
	}))
}

func TestClient_FetchMedia(t *testing.T) {
	server := graphQLServer(t, func(req graphQLRequest) (int, string) {
		assert.Contains(t, req.Query, "Media(id: $id, type: ANIME)")
		switch req.Variables["id"] {
		case float64(20):
			return http.StatusOK, `{"data":{"Media":` + narutoMedia + `}}`
		case float64(21):
			return http.StatusOK, `{"data":{"Media":null},"errors":[{"message":"Internal Server Error","status":500}]}`
		default:
			return http.StatusNotFound, `{"data":{"Media":null},"errors":[{"message":"Not Found.","status":404}]}`
		}
	})
	defer server.Close()

	c := New(server.URL, server.Client())
	ctx := context.Background()

	t.Run("maps media", func(t *testing.T) {
		m, err := c.FetchMedia(ctx, "20")
		require.NoError(t, err)

		assert.Equal(t, "20", m.ID)
		assert.Equal(t, 20, m.MalID)
		assert.Equal(t, "NARUTO", m.Title.Romaji)
		assert.Equal(t, "Naruto", m.Title.English)
		assert.Equal(t, media.StatusCompleted, m.Status)
		assert.Equal(t, 2002, m.ReleaseDate)
		assert.Equal(t, "FALL", m.Season)
		assert.Equal(t, "TV", m.Format)
		assert.Equal(t, "https://img/large.jpg", m.Image)
		assert.Equal(t, media.ImageHash("https://img/large.jpg"), m.ImageHash)
		assert.Equal(t, "https://img/banner.jpg", m.Cover)
		assert.Equal(t, "#e4a15d", m.Color)
		assert.Equal(t, 79, m.Rating)
		assert.Equal(t, 220, m.TotalEpisodes)
		assert.Equal(t, 220, m.CurrentEpisode)
		assert.Nil(t, m.NextAiringEpisode)
		assert.NotContains(t, m.Description, "<")
		assert.True(t, strings.HasPrefix(m.Description, "Naruto Uzumaki wants to be the best ninja."))
		assert.Contains(t, m.Description, "(Source: Anime News Network)")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := c.FetchMedia(ctx, "99")
		assert.True(t, errors.Is(err, ErrNotFound))
	})

	t.Run("graphql error", func(t *testing.T) {
		_, err := c.FetchMedia(ctx, "21")
		assert.ErrorContains(t, err, "Internal Server Error")
	})

	t.Run("invalid id", func(t *testing.T) {
		_, err := c.FetchMedia(ctx, "naruto")
		assert.ErrorContains(t, err, "invalid anilist id")
	})
}

func TestClient_Search(t *testing.T) {
	server := graphQLServer(t, func(req graphQLRequest) (int, string) {
		assert.Equal(t, "naruto", req.Variables["search"])
		assert.Equal(t, float64(2), req.Variables["page"])
		assert.Equal(t, float64(pagination.DefaultPerPage), req.Variables["perPage"])
		return http.StatusOK, `{"data":{"Page":{"pageInfo":{"total":41,"currentPage":2,"lastPage":3,"hasNextPage":true},"media":[` + narutoMedia + `]}}}`
	})
	defer server.Close()

	page, err := New(server.URL, server.Client()).Search(context.Background(), "naruto", pagination.Params{Page: 2})
	require.NoError(t, err)

	assert.Equal(t, pagination.Meta{Page: 2, PerPage: pagination.DefaultPerPage, TotalItems: 41, TotalPages: 3, HasNextPage: true}, page.Meta)
	require.Len(t, page.Results, 1)
	assert.Equal(t, "20", page.Results[0].ID)
}

func TestClient_Search_rateLimited(t *testing.T) {
	var calls int
	server := graphQLServer(t, func(req graphQLRequest) (int, string) {
		calls++
		return http.StatusTooManyRequests, `{"errors":[{"message":"Too Many Requests.","status":429}]}`
	})
	defer server.Close()

	client := mhttp.NewRateLimitedHTTPClient(mhttp.WithHTTPClient(server.Client()), mhttp.WithBaseBackoff(time.Millisecond))
	_, err := New(server.URL, client).Search(context.Background(), "naruto", pagination.Params{})
	require.Error(t, err)
	assert.True(t, mhttp.IsUnavailable(err))
	assert.Equal(t, mhttp.DefaultMaxRetries, calls)
}

func TestClient_AdvancedSearch(t *testing.T) {
	ctx := context.Background()
	page := `{"data":{"Page":{"pageInfo":{"total":1,"currentPage":1,"lastPage":1,"hasNextPage":false},"media":[` + narutoMedia + `]}}}`

	t.Run("sends every set filter", func(t *testing.T) {
		server := graphQLServer(t, func(req graphQLRequest) (int, string) {
			assert.Contains(t, req.Query, "genre_in: $genres")
			assert.Equal(t, "naruto", req.Variables["search"])
			assert.Equal(t, "TV", req.Variables["format"])
			assert.Equal(t, []any{"Action", "Comedy"}, req.Variables["genres"])
			assert.Equal(t, "2002%", req.Variables["year"])
			assert.Equal(t, "FINISHED", req.Variables["status"])
			assert.Equal(t, "FALL", req.Variables["season"])
			assert.Equal(t, []any{"SCORE_DESC"}, req.Variables["sort"])
			assert.NotContains(t, req.Variables, "id")
			return http.StatusOK, page
		})
		defer server.Close()

		filter := Filter{
			Query:  "naruto",
			Format: "tv",
			Sort:   []string{"SCORE_DESC"},
			Genres: []string{"Action", "Comedy"},
			Year:   2002,
			Status: "finished",
			Season: "fall",
		}
		got, err := New(server.URL, server.Client()).AdvancedSearch(ctx, filter, pagination.Params{})
		require.NoError(t, err)
		require.Len(t, got.Results, 1)
		assert.Equal(t, "20", got.Results[0].ID)
	})

	t.Run("default sort and no filters", func(t *testing.T) {
		server := graphQLServer(t, func(req graphQLRequest) (int, string) {
			assert.Equal(t, []any{"POPULARITY_DESC", "SCORE_DESC"}, req.Variables["sort"])
			assert.NotContains(t, req.Variables, "search")
			assert.NotContains(t, req.Variables, "genres")
			return http.StatusOK, page
		})
		defer server.Close()

		_, err := New(server.URL, server.Client()).AdvancedSearch(ctx, Filter{}, pagination.Params{})
		require.NoError(t, err)
	})

	t.Run("invalid genre is not sent", func(t *testing.T) {
		server := graphQLServer(t, func(req graphQLRequest) (int, string) {
			t.Error("unexpected request")
			return http.StatusOK, page
		})
		defer server.Close()

		_, err := New(server.URL, server.Client()).AdvancedSearch(ctx, Filter{Genres: []string{"Action", "Isekai"}}, pagination.Params{})
		assert.ErrorIs(t, err, ErrInvalidGenre)
		assert.ErrorContains(t, err, "Isekai")
	})

	t.Run("server error", func(t *testing.T) {
		server := graphQLServer(t, func(req graphQLRequest) (int, string) {
			return http.StatusInternalServerError, `{}`
		})
		defer server.Close()

		_, err := New(server.URL, server.Client()).AdvancedSearch(ctx, Filter{Query: "naruto"}, pagination.Params{})
		assert.True(t, mhttp.IsUnavailable(err))
	})
}

func TestClient_TrendingPopular(t *testing.T) {
	server := graphQLServer(t, func(req graphQLRequest) (int, string) {
		assert.Equal(t, float64(3), req.Variables["page"])
		assert.Equal(t, float64(10), req.Variables["perPage"])
		return http.StatusOK, `{"data":{"Page":{"pageInfo":{"total":5000,"currentPage":3,"lastPage":500,"hasNextPage":true},"media":[` + narutoMedia + `]}}}`
	})
	defer server.Close()

	c := New(server.URL, server.Client())
	params := pagination.Params{Page: 3, PerPage: 10}

	tests := []struct {
		name  string
		fetch func() (pagination.Page[media.CanonicalMedia], error)
	}{
		{name: "trending", fetch: func() (pagination.Page[media.CanonicalMedia], error) { return c.Trending(context.Background(), params) }},
		{name: "popular", fetch: func() (pagination.Page[media.CanonicalMedia], error) { return c.Popular(context.Background(), params) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			page, err := tt.fetch()
			require.NoError(t, err)
			assert.Equal(t, pagination.Meta{Page: 3, PerPage: 10, TotalItems: 5000, TotalPages: 500, HasNextPage: true}, page.Meta)
			require.Len(t, page.Results, 1)
			assert.Equal(t, media.StatusCompleted, page.Results[0].Status)
		})
	}
}

func TestValidateGenres(t *testing.T) {
	assert.NoError(t, ValidateGenres(nil))
	assert.NoError(t, ValidateGenres([]string{"Slice of Life", "Sci-Fi"}))
	assert.ErrorIs(t, ValidateGenres([]string{"slice of life"}), ErrInvalidGenre)
}

func TestToCanonical_Airing(t *testing.T) {
	var m Media
	require.NoError(t, json.Unmarshal([]byte(`{
		"id": 1,
		"status": "RELEASING",
		"episodes": null,
		"idMal": null,
		"nextAiringEpisode": {"episode": 13, "airingAt": 1700000000}
	}`), &m))

	c := ToCanonical(m)
	assert.Equal(t, media.StatusOngoing, c.Status)
	assert.Equal(t, 0, c.MalID)
	assert.Equal(t, 12, c.TotalEpisodes)
	assert.Equal(t, 12, c.CurrentEpisode)
	require.NotNil(t, c.NextAiringEpisode)
	assert.Equal(t, 13, c.NextAiringEpisode.Episode)
	assert.Equal(t, int64(1700000000), c.NextAiringEpisode.AiringAt)
	assert.Empty(t, c.Image)
	assert.Empty(t, c.ImageHash)
}

func TestParseStatus(t *testing.T) {
	tests := map[string]media.MediaStatus{
		"RELEASING":        media.StatusOngoing,
		"FINISHED":         media.StatusCompleted,
		"NOT_YET_RELEASED": media.StatusNotYetAired,
		"CANCELLED":        media.StatusCancelled,
		"HIATUS":           media.StatusHiatus,
		"":                 media.StatusUnknown,
		"SOMETHING":        media.StatusUnknown,
	}

	for in, want := range tests {
		t.Run(in, func(t *testing.T) {
			assert.Equal(t, want, ParseStatus(in))
		})
	}
}

func TestCoverImage_Preferred(t *testing.T) {
	assert.Equal(t, "xl", CoverImage{ExtraLarge: "xl", Large: "l", Medium: "m"}.Preferred())
	assert.Equal(t, "l", CoverImage{Large: "l", Medium: "m"}.Preferred())
	assert.Equal(t, "m", CoverImage{Medium: "m"}.Preferred())
	assert.Equal(t, "", CoverImage{}.Preferred())
}

func TestStripHTML(t *testing.T) {
	assert.Equal(t, "", StripHTML(""))
	assert.Equal(t, "plain", StripHTML("plain"))
	assert.Equal(t, "line one\nline two", StripHTML("line one<br>line two"))
	assert.Equal(t, "bold and italic", StripHTML("<b>bold</b> and <i>italic</i>"))
}
