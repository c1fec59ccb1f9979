package provider

import (
	"fmt"
	"strings"
)

// Known providers and how their listings encode audio tracks
var (
	Gogoanime   = Identity{Name: "gogoanime", Variant: VariantGeneric, DubInTitle: true}
	Zoro        = Identity{Name: "zoro", Variant: VariantSuffixedID}
	NineAnime   = Identity{Name: "9anime", Variant: VariantDualField}
	Crunchyroll = Identity{Name: "crunchyroll", Variant: VariantGroupedByKey, SkipCrossReference: true}
	Bilibili    = Identity{Name: "bilibili", Variant: VariantGeneric, SkipCrossReference: true}
	AnimePahe   = Identity{Name: "animepahe", Variant: VariantGeneric}
	AnimeKai    = Identity{Name: "animekai", Variant: VariantSuffixedID}
)

var known = []Identity{Gogoanime, Zoro, NineAnime, Crunchyroll, Bilibili, AnimePahe, AnimeKai}

// LookupIdentity returns the identity of a known provider by name
func LookupIdentity(name string) (Identity, bool) {
	name = strings.ToLower(strings.TrimSpace(name))
	for _, id := range known {
		if id.Name == name {
			return id, true
		}
	}
	return Identity{}, false
}

// KnownNames lists the names of every known provider
func KnownNames() []string {
	names := make([]string, 0, len(known))
	for _, id := range known {
		names = append(names, id.Name)
	}
	return names
}

// StreamingServer is a host that serves episode video
type StreamingServer string

const (
	ServerAsianLoad    StreamingServer = "asianload"
	ServerGogoCDN      StreamingServer = "gogocdn"
	ServerStreamSB     StreamingServer = "streamsb"
	ServerMixDrop      StreamingServer = "mixdrop"
	ServerMp4Upload    StreamingServer = "mp4upload"
	ServerUpCloud      StreamingServer = "upcloud"
	ServerVidCloud     StreamingServer = "vidcloud"
	ServerStreamTape   StreamingServer = "streamtape"
	ServerVidStreaming StreamingServer = "vidstreaming"
	ServerMegaCloud    StreamingServer = "megacloud"
	ServerStreamWish   StreamingServer = "streamwish"
)

var streamingServers = []StreamingServer{
	ServerAsianLoad, ServerGogoCDN, ServerStreamSB, ServerMixDrop, ServerMp4Upload, ServerUpCloud,
	ServerVidCloud, ServerStreamTape, ServerVidStreaming, ServerMegaCloud, ServerStreamWish,
}

// ParseStreamingServer validates a server name. An empty name selects the provider default.
func ParseStreamingServer(s string) (StreamingServer, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", nil
	}
	for _, server := range streamingServers {
		if string(server) == s {
			return server, nil
		}
	}
	return "", fmt.Errorf("unsupported streaming server %q", s)
}

// Server is a streaming server offering an episode
type Server struct {
	Name string `json:"name" yaml:"name"`
	URL  string `json:"url" yaml:"url"`
}

type Video struct {
	URL     string `json:"url" yaml:"url"`
	Quality string `json:"quality,omitempty" yaml:"quality,omitempty"`
	IsM3U8  bool   `json:"isM3U8" yaml:"isM3U8"`
}

type Subtitle struct {
	URL  string `json:"url" yaml:"url"`
	Lang string `json:"lang" yaml:"lang"`
}

// Source is the resolved playable media of an episode
type Source struct {
	Headers   map[string]string `json:"headers,omitempty" yaml:"headers,omitempty"`
	Sources   []Video           `json:"sources" yaml:"sources"`
	Subtitles []Subtitle        `json:"subtitles,omitempty" yaml:"subtitles,omitempty"`
	Download  string            `json:"download,omitempty" yaml:"download,omitempty"`
}
