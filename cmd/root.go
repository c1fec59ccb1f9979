package cmd

import (
	"os"
	"strings"
	"time"

	"github.com/kasuboski/animez/pkg/anify"
	"github.com/kasuboski/animez/pkg/anilist"
	"github.com/kasuboski/animez/pkg/filler"
	mhttp "github.com/kasuboski/animez/pkg/http"
	"github.com/kasuboski/animez/pkg/malsync"
	"github.com/kasuboski/animez/pkg/provider"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var cfgFile string

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "animez",
	Short: "animez cli",
	Long:  `animez reconciles anime metadata with the episode listings of streaming providers`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file")
}

const (
	defaultCacheTTL    = time.Minute * 10
	defaultPrunePeriod = time.Minute * 5
	defaultHTTPTimeout = time.Second * 15
)

func initConfig() {
	viper.SetConfigFile(cfgFile)

	viper.SetEnvPrefix("ANIMEZ")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", ""))
	viper.AutomaticEnv()

	viper.SetDefault("anilist.url", anilist.DefaultURL)
	viper.SetDefault("malsync.url", malsync.DefaultURL)
	viper.SetDefault("filler.url", filler.DefaultURL)
	viper.SetDefault("anify.url", anify.DefaultURL)

	viper.SetDefault("provider.name", provider.Gogoanime.Name)
	viper.SetDefault("provider.url", "http://localhost:3000")

	viper.SetDefault("http.timeout", defaultHTTPTimeout)
	viper.SetDefault("http.maxRetries", mhttp.DefaultMaxRetries)
	viper.SetDefault("http.backoff", mhttp.DefaultBaseBackoff)
	viper.SetDefault("http.userAgent", mhttp.DefaultUserAgent)

	viper.SetDefault("server.port", 8080)

	viper.SetDefault("cache.ttl", defaultCacheTTL)
	viper.SetDefault("cache.prunePeriod", defaultPrunePeriod)
}
