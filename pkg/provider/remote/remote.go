package remote

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/provider"
)

// Adapter reaches a provider through an HTTP API that serves scraped provider data as JSON.
// Routes live under {base}/anime/{provider}.
type Adapter struct {
	identity provider.Identity
	baseURL  string
	http     mhttp.HTTPClient
}

var (
	_ provider.Adapter       = Adapter{}
	_ provider.ServerFetcher = Adapter{}
	_ provider.SourceFetcher = Adapter{}
)

func New(baseURL string, identity provider.Identity, client mhttp.HTTPClient) (Adapter, error) {
	if baseURL == "" {
		return Adapter{}, fmt.Errorf("base url is required")
	}
	if identity.Name == "" {
		return Adapter{}, fmt.Errorf("provider name is required")
	}

	return Adapter{
		identity: identity,
		baseURL:  strings.TrimRight(baseURL, "/"),
		http:     client,
	}, nil
}

type searchResponse struct {
	CurrentPage int                     `json:"currentPage"`
	HasNextPage bool                    `json:"hasNextPage"`
	Results     []provider.SearchResult `json:"results"`
}

func (a Adapter) Identity() provider.Identity {
	return a.identity
}

func (a Adapter) Search(ctx context.Context, query string) ([]provider.SearchResult, error) {
	var res searchResponse
	if err := a.get(ctx, "/"+url.PathEscape(query), &res); err != nil {
		return nil, fmt.Errorf("failed to search %s: %w", a.identity.Name, err)
	}
	return res.Results, nil
}

func (a Adapter) FetchInfo(ctx context.Context, id string) (*provider.Listing, error) {
	listing := new(provider.Listing)
	if err := a.get(ctx, "/info?id="+url.QueryEscape(id), listing); err != nil {
		return nil, fmt.Errorf("failed to fetch %s info for %s: %w", a.identity.Name, id, err)
	}
	return listing, nil
}

func (a Adapter) FetchEpisodeServers(ctx context.Context, episodeID string) ([]provider.Server, error) {
	var servers []provider.Server
	if err := a.get(ctx, "/servers/"+url.PathEscape(episodeID), &servers); err != nil {
		return nil, fmt.Errorf("failed to fetch %s servers for %s: %w", a.identity.Name, episodeID, err)
	}
	return servers, nil
}

func (a Adapter) FetchEpisodeSources(ctx context.Context, episodeID string, server provider.StreamingServer) (*provider.Source, error) {
	path := "/watch/" + url.PathEscape(episodeID)
	if server != "" {
		path += "?server=" + url.QueryEscape(string(server))
	}

	source := new(provider.Source)
	if err := a.get(ctx, path, source); err != nil {
		return nil, fmt.Errorf("failed to fetch %s sources for %s: %w", a.identity.Name, episodeID, err)
	}
	return source, nil
}

func (a Adapter) get(ctx context.Context, path string, out any) error {
	u := fmt.Sprintf("%s/anime/%s%s", a.baseURL, a.identity.Name, path)

	err := mhttp.GetJSON(ctx, a.http, u, out)
	if mhttp.IsNotFound(err) {
		return fmt.Errorf("%w: %w", provider.ErrNotFound, err)
	}
	return err
}
