package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kasuboski/animez/pkg/anilist"
	anifyMocks "github.com/kasuboski/animez/pkg/anify/mocks"
	anilistMocks "github.com/kasuboski/animez/pkg/anilist/mocks"
	"github.com/kasuboski/animez/pkg/manager"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/kasuboski/animez/pkg/provider"
	providerMocks "github.com/kasuboski/animez/pkg/provider/mocks"
	"github.com/kasuboski/animez/pkg/reconcile"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
	"go.uber.org/zap"
)

type fixedStrategy struct {
	listing *provider.Listing
	queries []reconcile.Query
}

func (s *fixedStrategy) Name() string { return "fixed" }

func (s *fixedStrategy) Find(_ context.Context, q reconcile.Query) *provider.Listing {
	s.queries = append(s.queries, q)
	return s.listing
}

type serversAdapter struct {
	*providerMocks.MockAdapter
	*providerMocks.MockServerFetcher
}

type testServer struct {
	anilist  *anilistMocks.MockClientInterface
	anify    *anifyMocks.MockClientInterface
	adapter  *providerMocks.MockAdapter
	servers  *providerMocks.MockServerFetcher
	strategy *fixedStrategy
	handler  http.Handler
}

func newTestServer(t *testing.T) *testServer {
	t.Helper()
	ctrl := gomock.NewController(t)

	ts := &testServer{
		anilist:  anilistMocks.NewMockClientInterface(ctrl),
		anify:    anifyMocks.NewMockClientInterface(ctrl),
		adapter:  providerMocks.NewMockAdapter(ctrl),
		servers:  providerMocks.NewMockServerFetcher(ctrl),
		strategy: &fixedStrategy{},
	}
	ts.adapter.EXPECT().Identity().Return(provider.Gogoanime).AnyTimes()

	adapter := serversAdapter{MockAdapter: ts.adapter, MockServerFetcher: ts.servers}
	engine := reconcile.New(adapter, nil, reconcile.WithStrategies(ts.strategy))
	m := manager.New(ts.anilist, ts.anify, adapter, nil, nil, manager.WithEngine(engine))

	ts.handler = New(zap.NewNop().Sugar(), m).Router()
	return ts
}

func (ts *testServer) get(t *testing.T, target string) (*httptest.ResponseRecorder, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, target, nil)
	rr := httptest.NewRecorder()
	ts.handler.ServeHTTP(rr, req)

	var body map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	return rr, body
}

func TestServer_Healthz(t *testing.T) {
	t.Run("healthz", func(t *testing.T) {
		s := Server{baseLogger: zap.NewNop().Sugar()}

		req, err := http.NewRequest("GET", "/healthz", nil)
		assert.NoError(t, err)

		rr := httptest.NewRecorder()

		handler := s.Healthz()
		handler.ServeHTTP(rr, req)

		assert.Equal(t, http.StatusOK, rr.Code)

		assert.Equal(t, "application/json", rr.Header().Get("content-type"))

		var response GenericResponse
		err = json.Unmarshal(rr.Body.Bytes(), &response)

		assert.NoError(t, err)
		assert.Equal(t, "ok", response.Response)
	})

	t.Run("request id", func(t *testing.T) {
		ts := newTestServer(t)

		rr, _ := ts.get(t, "/healthz")
		assert.NotEmpty(t, rr.Header().Get(requestIDHeader))

		req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
		req.Header.Set(requestIDHeader, "abc")
		rr = httptest.NewRecorder()
		ts.handler.ServeHTTP(rr, req)
		assert.Equal(t, "abc", rr.Header().Get(requestIDHeader))
	})
}

func TestServer_GetAnimeInfo(t *testing.T) {
	canonical := media.CanonicalMedia{
		ID:     "21",
		Title:  media.Title{Romaji: "One Piece", English: "One Piece"},
		Status: media.StatusOngoing,
		Image:  "https://img/21.jpg",
	}

	t.Run("ok", func(t *testing.T) {
		ts := newTestServer(t)
		ts.strategy.listing = &provider.Listing{
			ID:       "one-piece-dub",
			Episodes: []provider.RawEpisode{{ID: "one-piece-dub-episode-1", Number: 1}, {ID: "one-piece-dub-episode-2", Number: 2}},
		}
		ts.anilist.EXPECT().FetchMedia(gomock.Any(), "21").Return(canonical, nil)

		rr, body := ts.get(t, "/api/v1/anime/21?dub=true")
		require.Equal(t, http.StatusOK, rr.Code)

		response := body["response"].(map[string]any)
		assert.Equal(t, "21", response["id"])
		episodes := response["episodes"].([]any)
		require.Len(t, episodes, 2)
		assert.Equal(t, "one-piece-dub-episode-1", episodes[0].(map[string]any)["id"])

		require.Len(t, ts.strategy.queries, 1)
		assert.Equal(t, media.TrackDub, ts.strategy.queries[0].Audio)
	})

	t.Run("invalid dub", func(t *testing.T) {
		ts := newTestServer(t)

		rr, body := ts.get(t, "/api/v1/anime/21?dub=maybe")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, body["error"], "invalid dub parameter")
	})

	t.Run("not found", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().FetchMedia(gomock.Any(), "404").Return(media.CanonicalMedia{}, fmt.Errorf("%w: 404", anilist.ErrNotFound))

		rr, _ := ts.get(t, "/api/v1/anime/404")
		assert.Equal(t, http.StatusNotFound, rr.Code)
	})

	t.Run("non numeric id", func(t *testing.T) {
		ts := newTestServer(t)

		rr, body := ts.get(t, "/api/v1/anime/abc")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, body["error"], "not an anilist id")

		rr, _ = ts.get(t, "/api/v1/anime/abc/episodes")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("ongoing sub title comes from the recent feed", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().FetchMedia(gomock.Any(), "21").Return(canonical, nil)
		ts.anify.EXPECT().Episodes(gomock.Any(), "21", "gogoanime").Return([]media.NormalizedEpisode{{ID: "one-piece-episode-1", Number: 1}}, nil)

		rr, body := ts.get(t, "/api/v1/anime/21")
		require.Equal(t, http.StatusOK, rr.Code)

		episodes := body["response"].(map[string]any)["episodes"].([]any)
		require.Len(t, episodes, 1)
		assert.Equal(t, "https://img/21.jpg", episodes[0].(map[string]any)["image"])
		assert.Empty(t, ts.strategy.queries)
	})

	t.Run("metadata failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().FetchMedia(gomock.Any(), "21").Return(media.CanonicalMedia{}, errors.New("connection reset"))

		rr, body := ts.get(t, "/api/v1/anime/21")
		assert.Equal(t, http.StatusBadGateway, rr.Code)
		assert.Contains(t, body["error"], "connection reset")
	})
}

func TestServer_ListEpisodes(t *testing.T) {
	t.Run("invalid audio", func(t *testing.T) {
		ts := newTestServer(t)

		rr, _ := ts.get(t, "/api/v1/anime/21/episodes?audio=raw")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("no listing", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().FetchMedia(gomock.Any(), "21").Return(media.CanonicalMedia{ID: "21", Title: media.Title{Romaji: "One Piece"}}, nil)

		rr, body := ts.get(t, "/api/v1/anime/21/episodes")
		assert.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, []any{}, body["response"])
	})
}

func TestServer_Episodes(t *testing.T) {
	t.Run("servers", func(t *testing.T) {
		ts := newTestServer(t)
		ts.servers.EXPECT().FetchEpisodeServers(gomock.Any(), "one-piece-episode-1").Return([]provider.Server{{Name: "gogocdn", URL: "https://gogo/1"}}, nil)

		rr, body := ts.get(t, "/api/v1/episodes/one-piece-episode-1/servers")
		require.Equal(t, http.StatusOK, rr.Code)
		servers := body["response"].([]any)
		assert.Equal(t, "gogocdn", servers[0].(map[string]any)["name"])
	})

	t.Run("sources unsupported", func(t *testing.T) {
		ts := newTestServer(t)

		rr, _ := ts.get(t, "/api/v1/episodes/one-piece-episode-1/sources")
		assert.Equal(t, http.StatusNotImplemented, rr.Code)
	})

	t.Run("sources bad server", func(t *testing.T) {
		ts := newTestServer(t)

		rr, _ := ts.get(t, "/api/v1/episodes/one-piece-episode-1/sources?server=nope")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}

func TestServer_SearchAnime(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ts := newTestServer(t)
		params := pagination.Params{Page: 2, PerPage: 10}
		ts.anilist.EXPECT().Search(gomock.Any(), "naruto", params).Return(pagination.Page[media.CanonicalMedia]{
			Meta:    params.BuildMeta(11, false),
			Results: []media.CanonicalMedia{{ID: "20"}},
		}, nil)

		rr, body := ts.get(t, "/api/v1/anime/search?query=naruto&page=2&perPage=10")
		require.Equal(t, http.StatusOK, rr.Code)

		response := body["response"].(map[string]any)
		assert.Equal(t, float64(2), response["meta"].(map[string]any)["totalPages"])
	})

	t.Run("empty query", func(t *testing.T) {
		ts := newTestServer(t)

		rr, _ := ts.get(t, "/api/v1/anime/search")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})

	t.Run("invalid page", func(t *testing.T) {
		ts := newTestServer(t)

		rr, body := ts.get(t, "/api/v1/anime/search?query=naruto&page=two")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, body["error"], "invalid page")
	})
}

func TestServer_AdvancedSearch(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ts := newTestServer(t)
		filter := anilist.Filter{
			Query:  "naruto",
			Format: "TV",
			Sort:   []string{"SCORE_DESC", "POPULARITY_DESC"},
			Genres: []string{"Action", "Slice of Life", "Comedy"},
			Year:   2002,
			Status: "FINISHED",
			Season: "FALL",
		}
		params := pagination.Params{Page: 1, PerPage: pagination.DefaultPerPage}
		ts.anilist.EXPECT().AdvancedSearch(gomock.Any(), filter, params).Return(pagination.Page[media.CanonicalMedia]{
			Meta:    params.BuildMeta(1, false),
			Results: []media.CanonicalMedia{{ID: "20"}},
		}, nil)

		rr, body := ts.get(t, "/api/v1/anime/advanced-search?query=naruto&format=TV&sort=SCORE_DESC,POPULARITY_DESC&genres=Action,Slice%20of%20Life&genres=Comedy&year=2002&status=FINISHED&season=FALL")
		require.Equal(t, http.StatusOK, rr.Code)
		results := body["response"].(map[string]any)["results"].([]any)
		assert.Equal(t, "20", results[0].(map[string]any)["id"])
	})

	t.Run("invalid genre", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().AdvancedSearch(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(pagination.Page[media.CanonicalMedia]{}, fmt.Errorf("%w: %q", anilist.ErrInvalidGenre, "Isekai"))

		rr, body := ts.get(t, "/api/v1/anime/advanced-search?genres=Isekai")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, body["error"], "Isekai")
	})

	t.Run("invalid year", func(t *testing.T) {
		ts := newTestServer(t)

		rr, body := ts.get(t, "/api/v1/anime/advanced-search?year=soon")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
		assert.Contains(t, body["error"], "invalid year")
	})
}

func TestServer_TrendingPopular(t *testing.T) {
	params := pagination.Params{Page: 2, PerPage: 5}
	page := pagination.Page[media.CanonicalMedia]{Meta: params.BuildMeta(50, true), Results: []media.CanonicalMedia{{ID: "21"}}}

	t.Run("trending", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().Trending(gomock.Any(), params).Return(page, nil)

		rr, body := ts.get(t, "/api/v1/anime/trending?page=2&perPage=5")
		require.Equal(t, http.StatusOK, rr.Code)
		assert.Equal(t, true, body["response"].(map[string]any)["meta"].(map[string]any)["hasNextPage"])
	})

	t.Run("popular", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().Popular(gomock.Any(), params).Return(page, nil)

		rr, _ := ts.get(t, "/api/v1/anime/popular?page=2&perPage=5")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("upstream failure", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anilist.EXPECT().Popular(gomock.Any(), gomock.Any()).Return(pagination.Page[media.CanonicalMedia]{}, errors.New("boom"))

		rr, _ := ts.get(t, "/api/v1/anime/popular")
		assert.Equal(t, http.StatusBadGateway, rr.Code)
	})
}

func TestParseFilter(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/?sort=&genres=%20Action%20,,Drama&id=20", nil)
	filter, err := ParseFilter(req)
	require.NoError(t, err)
	assert.Nil(t, filter.Sort)
	assert.Equal(t, []string{"Action", "Drama"}, filter.Genres)
	assert.Equal(t, 20, filter.ID)

	_, err = ParseFilter(httptest.NewRequest(http.MethodGet, "/?id=x", nil))
	assert.ErrorContains(t, err, "invalid id")
}

func TestServer_RecentEpisodes(t *testing.T) {
	t.Run("ok", func(t *testing.T) {
		ts := newTestServer(t)
		ts.anify.EXPECT().RecentEpisodes(gomock.Any(), "gogoanime", pagination.Params{Page: 1, PerPage: pagination.DefaultPerPage}).
			Return(pagination.Page[media.RecentEpisode]{Results: []media.RecentEpisode{{ID: "21", EpisodeID: "one-piece-episode-1100"}}}, nil)

		rr, _ := ts.get(t, "/api/v1/recent")
		assert.Equal(t, http.StatusOK, rr.Code)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		ts := newTestServer(t)

		rr, _ := ts.get(t, "/api/v1/recent?provider=crunchyroll")
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
