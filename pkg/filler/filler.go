package filler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/media"
	"go.uber.org/zap"
)

//go:generate go run go.uber.org/mock/mockgen -package mocks -destination mocks/mock_client.go github.com/kasuboski/animez/pkg/filler ClientInterface

const DefaultURL = "https://raw.githubusercontent.com/saikou-app/mal-id-filler-list/main/fillers"

// Flag is a loosely typed filler marker. Booleans, numbers and strings are accepted.
type Flag bool

func (f *Flag) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	switch {
	case len(b) == 0, bytes.Equal(b, []byte("null")):
		*f = false
	case b[0] == '"':
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		v, err := strconv.ParseBool(strings.TrimSpace(s))
		if err != nil {
			// any other non empty string marks a filler
			v = strings.TrimSpace(s) != ""
		}
		*f = Flag(v)
	case bytes.Equal(b, []byte("true")):
		*f = true
	case bytes.Equal(b, []byte("false")):
		*f = false
	default:
		n, err := strconv.ParseFloat(string(b), 64)
		if err != nil {
			return fmt.Errorf("invalid filler flag %s", b)
		}
		*f = n != 0
	}
	return nil
}

type Episode struct {
	Filler Flag `json:"filler-bool"`
}

// Dataset is the filler list of one title. Episodes is nil when the dataset has none.
type Dataset struct {
	Episodes []Episode `json:"episodes"`
}

type ClientInterface interface {
	GetDataset(ctx context.Context, malID int) (*Dataset, error)
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

// GetDataset fetches the filler dataset of a MAL id
func (c Client) GetDataset(ctx context.Context, malID int) (*Dataset, error) {
	if malID <= 0 {
		return nil, fmt.Errorf("invalid mal id %d", malID)
	}

	ds := new(Dataset)
	if err := mhttp.GetJSON(ctx, c.http, fmt.Sprintf("%s/%d.json", c.baseURL, malID), ds); err != nil {
		return nil, err
	}
	return ds, nil
}

// Enricher marks filler episodes from a filler dataset
type Enricher struct {
	client ClientInterface
}

func NewEnricher(client ClientInterface) Enricher {
	return Enricher{client: client}
}

// Apply sets IsFiller on every episode by position: episode i takes dataset entry i.
// Episodes past the end of the dataset are marked as not filler.
// When the dataset cannot be fetched or has no episodes the input is returned unchanged.
func (e Enricher) Apply(ctx context.Context, episodes []media.NormalizedEpisode, malID int) []media.NormalizedEpisode {
	if e.client == nil {
		return episodes
	}

	log := logger.FromCtx(ctx).With(zap.Int("malId", malID))

	ds, err := e.client.GetDataset(ctx, malID)
	if err != nil {
		if mhttp.IsNotFound(err) {
			log.Debugw("no filler dataset")
		} else {
			log.Warnw("failed to fetch filler dataset", zap.Error(err))
		}
		return episodes
	}
	if ds == nil || ds.Episodes == nil {
		return episodes
	}

	if len(ds.Episodes) != len(episodes) {
		log.Debugw("filler dataset length differs from episode list", zap.Int("dataset", len(ds.Episodes)), zap.Int("episodes", len(episodes)))
	}

	out := make([]media.NormalizedEpisode, len(episodes))
	for i, ep := range episodes {
		filler := false
		if i < len(ds.Episodes) {
			filler = bool(ds.Episodes[i].Filler)
		}
		ep.IsFiller = &filler
		out[i] = ep
	}
	return out
}
