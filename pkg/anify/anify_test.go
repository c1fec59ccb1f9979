package anify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const recentFeed = `[
  {
    "id": "21",
    "title": {"romaji": "ONE PIECE", "english": "One Piece", "native": "ワンピース"},
    "coverImage": "https://img/op.jpg",
    "bannerImage": "https://img/op-banner.jpg",
    "averageScore": 87.4,
    "currentEpisode": 1100,
    "genres": ["Action"],
    "format": "TV",
    "mappings": [
      {"id": "one-piece", "providerId": "gogoanime", "providerType": "ANIME"},
      {"id": "21", "providerId": "mal", "providerType": "META"}
    ],
    "episodes": {
      "latest": {"latestTitle": "The Last Stand"},
      "data": [
        {"providerId": "zoro", "episodes": [{"id": "one-piece-100$episode$1"}, {"id": "one-piece-100$episode$2"}]},
        {"providerId": "Gogoanime", "episodes": [{"id": "one-piece-episode-1099"}, {"id": "one-piece-episode-1100"}]}
      ]
    }
  },
  {
    "id": 1535,
    "title": {"romaji": "Death Note"},
    "coverImage": null,
    "bannerImage": "https://img/dn-banner.jpg",
    "currentEpisode": 37,
    "mappings": [{"id": 1535, "providerId": "mal", "providerType": "META"}],
    "episodes": {"latest": {"latestTitle": null}, "data": []}
  }
]`

func TestClient_RecentEpisodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/recent", req.URL.Path)
		assert.Equal(t, "2", req.URL.Query().Get("page"))
		assert.Equal(t, "25", req.URL.Query().Get("perPage"))
		assert.Equal(t, "anime", req.URL.Query().Get("type"))
		rw.Write([]byte(recentFeed))
	}))
	defer server.Close()

	c := New(server.URL, server.Client())

	t.Run("gogoanime", func(t *testing.T) {
		page, err := c.RecentEpisodes(context.Background(), "gogoanime", pagination.Params{Page: 2, PerPage: 25})
		require.NoError(t, err)
		require.Len(t, page.Results, 2)

		op := page.Results[0]
		assert.Equal(t, "21", op.ID)
		assert.Equal(t, 21, op.MalID)
		assert.Equal(t, "one-piece-episode-1100", op.EpisodeID)
		assert.Equal(t, "The Last Stand", op.EpisodeTitle)
		assert.Equal(t, 1100, op.EpisodeNumber)
		assert.Equal(t, 87, op.Rating)
		assert.Equal(t, "https://img/op.jpg", op.Image)
		assert.Equal(t, media.ImageHash("https://img/op.jpg"), op.ImageHash)

		dn := page.Results[1]
		assert.Equal(t, "1535", dn.ID)
		assert.Equal(t, 1535, dn.MalID)
		assert.Equal(t, "", dn.EpisodeID)
		assert.Equal(t, "Episode 37", dn.EpisodeTitle)
		assert.Equal(t, "https://img/dn-banner.jpg", dn.Image)
	})

	t.Run("zoro takes the last zoro episode", func(t *testing.T) {
		page, err := c.RecentEpisodes(context.Background(), "Zoro", pagination.Params{Page: 2, PerPage: 25})
		require.NoError(t, err)
		assert.Equal(t, "one-piece-100$episode$2", page.Results[0].EpisodeID)
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := c.RecentEpisodes(context.Background(), "crunchyroll", pagination.Params{})
		assert.True(t, errors.Is(err, ErrUnsupportedProvider))
	})
}

func TestClient_Search(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		assert.Equal(t, "/search/anime/death note", req.URL.Path)
		rw.Write([]byte(`[{"id":"1535","title":{"romaji":"Death Note"},"status":"FINISHED","totalEpisodes":37,"year":2006}]`))
	}))
	defer server.Close()

	page, err := New(server.URL, server.Client()).Search(context.Background(), "death note", pagination.Params{})
	require.NoError(t, err)
	require.Len(t, page.Results, 1)

	m := page.Results[0]
	assert.Equal(t, "1535", m.ID)
	assert.Equal(t, media.StatusCompleted, m.Status)
	assert.Equal(t, 37, m.TotalEpisodes)
	assert.Equal(t, 2006, m.ReleaseDate)
	assert.False(t, page.Meta.HasNextPage)
}

func TestClient_Episodes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(rw http.ResponseWriter, req *http.Request) {
		switch req.URL.Path {
		case "/episodes/21":
			rw.Write([]byte(`[
  {"providerId": "gogoanime", "episodes": [
    {"id": "one-piece-episode-1", "number": 1, "title": "I'm Luffy!", "img": "https://img/op-1.jpg", "description": "Luffy sets sail"},
    {"id": "", "number": 2},
    {"id": "one-piece-episode-3", "number": 3}
  ]},
  {"providerId": "zoro", "episodes": []}
]`))
		case "/episodes/99":
			rw.WriteHeader(http.StatusBadGateway)
		default:
			rw.Write([]byte(`[]`))
		}
	}))
	defer server.Close()

	c := New(server.URL, server.Client())

	t.Run("episodes of the provider", func(t *testing.T) {
		episodes, err := c.Episodes(context.Background(), "21", "Gogoanime")
		require.NoError(t, err)
		require.Len(t, episodes, 2)
		assert.Equal(t, media.NormalizedEpisode{
			ID:          "one-piece-episode-1",
			Number:      1,
			Title:       "I'm Luffy!",
			Description: "Luffy sets sail",
			Image:       "https://img/op-1.jpg",
			ImageHash:   media.ImageHash("https://img/op-1.jpg"),
		}, episodes[0])
		assert.Equal(t, 3, episodes[1].Number)
	})

	t.Run("provider without episodes", func(t *testing.T) {
		episodes, err := c.Episodes(context.Background(), "21", "zoro")
		require.NoError(t, err)
		assert.Empty(t, episodes)
	})

	t.Run("unknown id", func(t *testing.T) {
		episodes, err := c.Episodes(context.Background(), "5", "zoro")
		require.NoError(t, err)
		assert.Empty(t, episodes)
	})

	t.Run("upstream failure", func(t *testing.T) {
		_, err := c.Episodes(context.Background(), "99", "zoro")
		assert.ErrorContains(t, err, "failed to fetch episodes")
	})

	t.Run("unsupported provider", func(t *testing.T) {
		_, err := c.Episodes(context.Background(), "21", "crunchyroll")
		assert.ErrorIs(t, err, ErrUnsupportedProvider)
	})
}

func TestParseRecentProvider(t *testing.T) {
	p, err := ParseRecentProvider("")
	require.NoError(t, err)
	assert.Equal(t, "gogoanime", p)

	p, err = ParseRecentProvider(" ZORO ")
	require.NoError(t, err)
	assert.Equal(t, "zoro", p)

	_, err = ParseRecentProvider("9anime")
	assert.ErrorIs(t, err, ErrUnsupportedProvider)
}

func TestID_UnmarshalJSON(t *testing.T) {
	var ids []ID
	require.NoError(t, json.Unmarshal([]byte(`["a", 12, null]`), &ids))
	assert.Equal(t, []ID{"a", "12", ""}, ids)

	var id ID
	assert.Error(t, json.Unmarshal([]byte(`true`), &id))
}
