package cmd

import (
	"fmt"
	"net/http"

	"github.com/kasuboski/animez/config"
	"github.com/kasuboski/animez/pkg/anify"
	"github.com/kasuboski/animez/pkg/anilist"
	"github.com/kasuboski/animez/pkg/filler"
	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/malsync"
	"github.com/kasuboski/animez/pkg/manager"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/kasuboski/animez/pkg/provider/remote"
	"github.com/spf13/viper"
)

func loadConfig() (config.Config, error) {
	cfg, err := config.New(viper.GetViper())
	if err != nil {
		return cfg, fmt.Errorf("failed to read configurations: %w", err)
	}
	return cfg, cfg.Validate()
}

func newHTTPClient(cfg config.HTTP) *mhttp.RateLimitedClient {
	opts := []mhttp.ClientOption{
		mhttp.WithHTTPClient(&http.Client{Timeout: cfg.Timeout}),
		mhttp.WithMaxRetries(cfg.MaxRetries),
		mhttp.WithBaseBackoff(cfg.BaseBackoff),
	}
	if cfg.UserAgent != "" {
		opts = append(opts, mhttp.WithUserAgent(cfg.UserAgent))
	}
	return mhttp.NewRateLimitedHTTPClient(opts...)
}

// newRegistry registers a remote adapter for every known provider served by the provider API at baseURL
func newRegistry(baseURL string, client mhttp.HTTPClient) (provider.Registry, error) {
	names := provider.KnownNames()
	adapters := make([]provider.Adapter, 0, len(names))
	for _, name := range names {
		identity, _ := provider.LookupIdentity(name)
		a, err := remote.New(baseURL, identity, client)
		if err != nil {
			return provider.Registry{}, err
		}
		adapters = append(adapters, a)
	}
	return provider.NewRegistry(adapters...)
}

// newManager wires every collaborator client into a media manager for the configured provider
func newManager(cfg config.Config, opts ...manager.Option) (manager.MediaManager, error) {
	client := newHTTPClient(cfg.HTTP)

	registry, err := newRegistry(cfg.Provider.URL, client)
	if err != nil {
		return manager.MediaManager{}, fmt.Errorf("failed to create providers: %w", err)
	}

	adapter, err := registry.Get(cfg.Provider.Name)
	if err != nil {
		return manager.MediaManager{}, err
	}

	return manager.New(
		anilist.New(cfg.AniList.URL, client),
		anify.New(cfg.Anify.URL, client),
		adapter,
		malsync.New(cfg.MalSync.URL, client),
		filler.New(cfg.Filler.URL, client),
		opts...,
	), nil
}
