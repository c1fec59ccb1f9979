package config

import (
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

type Config struct {
	AniList  Upstream `json:"anilist" yaml:"anilist" mapstructure:"anilist"`
	MalSync  Upstream `json:"malsync" yaml:"malsync" mapstructure:"malsync"`
	Filler   Upstream `json:"filler" yaml:"filler" mapstructure:"filler"`
	Anify    Upstream `json:"anify" yaml:"anify" mapstructure:"anify"`
	Provider Provider `json:"provider" yaml:"provider" mapstructure:"provider"`
	HTTP     HTTP     `json:"http" yaml:"http" mapstructure:"http"`
	Server   Server   `json:"server" yaml:"server" mapstructure:"server"`
	Cache    Cache    `json:"cache" yaml:"cache" mapstructure:"cache"`
}

// Upstream is a collaborator reached over HTTP
type Upstream struct {
	URL string `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
}

// Provider selects the content provider episodes are reconciled against
type Provider struct {
	Name string `json:"name" yaml:"name" mapstructure:"name" validate:"required"`
	URL  string `json:"url" yaml:"url" mapstructure:"url" validate:"required,url"`
}

// HTTP configures the transport shared by every upstream client
type HTTP struct {
	Timeout     time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout" validate:"gte=0"`
	MaxRetries  int           `json:"maxRetries" yaml:"maxRetries" mapstructure:"maxRetries" validate:"gte=0"`
	BaseBackoff time.Duration `json:"backoff" yaml:"backoff" mapstructure:"backoff" validate:"gte=0"`
	UserAgent   string        `json:"userAgent" yaml:"userAgent" mapstructure:"userAgent"`
}

type Server struct {
	Port int `json:"port" yaml:"port" mapstructure:"port" validate:"gte=0,lte=65535"`
}

// Cache configures the anime info cache. A zero TTL disables it.
type Cache struct {
	TTL         time.Duration `json:"ttl" yaml:"ttl" mapstructure:"ttl" validate:"gte=0"`
	PrunePeriod time.Duration `json:"prunePeriod" yaml:"prunePeriod" mapstructure:"prunePeriod" validate:"gte=0"`
}

type ConfigUnmarshaler interface {
	ReadInConfig() error
	Unmarshal(any, ...viper.DecoderConfigOption) error
	ConfigFileUsed() string
}

// New reads a new configuration
func New(cu ConfigUnmarshaler) (Config, error) {
	var c Config

	if cu.ConfigFileUsed() != "" {
		err := cu.ReadInConfig()
		if err != nil {
			return c, err
		}
	}

	err := cu.Unmarshal(&c)
	return c, err
}

// Validate checks that every upstream is reachable by url and a provider is selected
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}
	return nil
}
