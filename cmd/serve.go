package cmd

import (
	"context"
	"os"
	"os/signal"

	"github.com/kasuboski/animez/pkg/logger"
	"github.com/kasuboski/animez/pkg/manager"
	"github.com/kasuboski/animez/server"
	"go.uber.org/zap"

	"github.com/spf13/cobra"
)

// serveCmd represents the serve command
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "start the anime server",
	Long:  `start the anime server`,
	Run: func(cmd *cobra.Command, args []string) {
		log := logger.Get()

		cfg, err := loadConfig()
		if err != nil {
			log.Fatalw("invalid configuration", zap.Error(err))
		}

		m, err := newManager(cfg, manager.WithCacheTTL(cfg.Cache.TTL))
		if err != nil {
			log.Fatalw("failed to create manager", zap.Error(err))
		}

		ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
		defer stop()
		ctx = logger.WithCtx(ctx, log)

		go m.RunCachePruning(ctx, cfg.Cache.PrunePeriod)

		server := server.New(log, m)
		if err := server.Serve(ctx, cfg.Server.Port); err != nil {
			log.Error(err)
		}
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
