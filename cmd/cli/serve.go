package main

import (
	"fmt"
	"net/http"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/httpapi"
	"github.com/hamed0406/healthprobe/internal/httpapi/middleware"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/notify"
	"github.com/hamed0406/healthprobe/internal/registry"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Serve the probe endpoints over HTTP",
		RunE: func(cmd *cobra.Command, args []string) error {
			if rootFlags.configFile == "" {
				return fmt.Errorf("--config is required")
			}
			cfg, err := config.Load(rootFlags.configFile)
			if err != nil {
				return err
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			logger, err := logging.New(cfg.Logging)
			if err != nil {
				return err
			}
			defer logger.Sync()

			reg := registry.New(logger)
			if err := reg.RegisterEndpoints("endpoints", cfg.CheckSet(), nil); err != nil {
				return err
			}

			var notifier *notify.Throttled
			if slack := notify.NewSlack(cfg.Notify.SlackWebhook); slack != nil {
				notifier = notify.NewThrottled(slack, cfg.Notify.Cooldown.Std())
			}

			api := httpapi.NewServer(logger, reg, notifier)
			keys := middleware.Keys{Public: cfg.Server.PublicAPIKeys, Admin: cfg.Server.AdminAPIKeys}
			router := api.Router(keys, cfg.Server.AllowedOrigins,
				cfg.Server.PublicRPM, cfg.Server.PublicBurst,
				cfg.Server.AdminRPM, cfg.Server.AdminBurst)

			logger.Info("api_listen", zap.String("addr", cfg.Server.Addr))
			return http.ListenAndServe(cfg.Server.Addr, router)
		},
	}
}
