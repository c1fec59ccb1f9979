package cmd

import (
	"context"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/media"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

var (
	audio      string
	withFiller bool
	output     string
)

// infoCmd reconciles an anilist id against the configured provider
var infoCmd = &cobra.Command{
	Use:   "info <anilist id>",
	Short: "Show anime info with reconciled episodes",
	Long:  `Fetch metadata for an anilist id and reconcile its episodes against the configured provider`,
	Args:  cobra.ExactArgs(1),
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

		info, err := m.FetchAnimeInfo(ctx, args[0], media.AudioTrack(audio), withFiller)
		if err != nil {
			log.Fatalw("failed to fetch anime info", zap.Error(err))
		}

		now := time.Now()
		err = write(cmd.OutOrStdout(), format, info, func(style table.Style) string {
			return renderInfo(info, now, style)
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}

// episodesCmd lists only the reconciled episodes
var episodesCmd = &cobra.Command{
	Use:   "episodes <anilist id>",
	Short: "List reconciled episodes of an anime",
	Long:  `List the episodes of an anilist id on the configured provider`,
	Args:  cobra.ExactArgs(1),
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

		episodes, err := m.FetchEpisodes(ctx, args[0], media.AudioTrack(audio))
		if err != nil {
			log.Fatalw("failed to fetch episodes", zap.Error(err))
		}

		err = write(cmd.OutOrStdout(), format, episodes, func(style table.Style) string {
			return renderEpisodes(episodes, style)
		})
		if err != nil {
			log.Fatal(err)
		}
	},
}

func init() {
	infoCmd.Flags().StringVar(&audio, "audio", string(media.TrackSub), "audio track: sub, dub or both")
	infoCmd.Flags().BoolVar(&withFiller, "filler", false, "mark filler episodes")
	infoCmd.Flags().StringVarP(&output, "output", "o", string(formatTable), "output format: table, json or yaml")

	episodesCmd.Flags().StringVar(&audio, "audio", string(media.TrackSub), "audio track: sub, dub or both")
	episodesCmd.Flags().StringVarP(&output, "output", "o", string(formatTable), "output format: table, json or yaml")

	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(episodesCmd)
}
