package cmd

import (
	"context"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/manager"
	"github.com/kasuboski/animez/pkg/media"
	"github.com/kasuboski/animez/pkg/pagination"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var (
	page    int
	perPage int
)

// searchCmd searches anime metadata by title
var searchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Search anime by title",
	Long:  `Search anime metadata by title`,
	Args:  cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		log := logger.Get()
		ctx = logger.WithCtx(ctx, log)

		format, err := parseOutputFormat(output)
		if err != nil {
			log.Fatal(err)
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalw("invalid configuration", zap.Error(err))
		}

		m, err := newManager(cfg)
		if err != nil {
			log.Fatalw("failed to create manager", zap.Error(err))
		}

		params := pagination.Params{Page: page, PerPage: perPage}.WithDefaults()
		result, err := m.Search(ctx, strings.Join(args, " "), params)
		if err != nil {
			log.Fatalw("search failed", zap.Error(err))
		}

		err = write(cmd.OutOrStdout(), format, result, func(style table.Style) string {
			return renderSearch(result, style)
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}

// recentCmd lists recently released episodes
var recentCmd = &cobra.Command{
	Use:   "recent",
	Short: "List recently released episodes",
	Long:  `List recently released episodes with the episode ids of a provider`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		ctx, cancel := context.WithCancel(context.Background())
		defer cancel()

		log := logger.Get()
		ctx = logger.WithCtx(ctx, log)

		format, err := parseOutputFormat(output)
		if err != nil {
			log.Fatal(err)
		}

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalw("invalid configuration", zap.Error(err))
		}

		m, err := newManager(cfg)
		if err != nil {
			log.Fatalw("failed to create manager", zap.Error(err))
		}

		params := pagination.Params{Page: page, PerPage: perPage}.WithDefaults()
		result, err := m.RecentEpisodes(ctx, recentProvider, params)
		if err != nil {
			log.Fatalw("failed to list recent episodes", zap.Error(err))
		}

		err = write(cmd.OutOrStdout(), format, result, func(style table.Style) string {
			return renderRecent(result, style)
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}

// chartCmd lists a chart of anime metadata, trending or popular
func chartCmd(use, short string, fetch func(m manager.MediaManager, ctx context.Context, params pagination.Params) (pagination.Page[media.CanonicalMedia], error)) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			ctx, cancel := context.WithCancel(context.Background())
			defer cancel()

			log := logger.Get()
			ctx = logger.WithCtx(ctx, log)

			format, err := parseOutputFormat(output)
			if err != nil {
				log.Fatal(err)
			}

			cfg, err := loadConfig()
			if err != nil {
				log.Fatalw("invalid configuration", zap.Error(err))
			}

			m, err := newManager(cfg)
			if err != nil {
				log.Fatalw("failed to create manager", zap.Error(err))
			}

			params := pagination.Params{Page: page, PerPage: perPage}.WithDefaults()
			result, err := fetch(m, ctx, params)
			if err != nil {
				log.Fatalw("failed to list "+use+" anime", zap.Error(err))
			}

			err = write(cmd.OutOrStdout(), format, result, func(style table.Style) string {
				return renderSearch(result, style)
			})
			if err != nil {
				log.Fatal(err)
			}
		},
	}
}

var (
	trendingCmd = chartCmd("trending", "List trending anime", manager.MediaManager.Trending)
	popularCmd  = chartCmd("popular", "List the most popular anime", manager.MediaManager.Popular)
)

var recentProvider string

func init() {
	for _, c := range []*cobra.Command{searchCmd, recentCmd, trendingCmd, popularCmd} {
		c.Flags().IntVar(&page, "page", 1, "page to fetch")
		c.Flags().IntVar(&perPage, "per-page", pagination.DefaultPerPage, "results per page")
		c.Flags().StringVarP(&output, "output", "o", string(formatTable), "output format: table, json or yaml")
		rootCmd.AddCommand(c)
	}
	recentCmd.Flags().StringVar(&recentProvider, "provider", "gogoanime", "recent episode provider: gogoanime or zoro")
}
