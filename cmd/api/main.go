package main

import (
	"log"
	"net/http"
	"os"

	"go.uber.org/zap"

	"github.com/hamed0406/healthprobe/internal/config"
	"github.com/hamed0406/healthprobe/internal/httpapi"
	"github.com/hamed0406/healthprobe/internal/httpapi/middleware"
	"github.com/hamed0406/healthprobe/internal/logging"
	"github.com/hamed0406/healthprobe/internal/notify"
	"github.com/hamed0406/healthprobe/internal/registry"
)

func main() {
	var cfg config.Config
	if path := os.Getenv("CONFIG_FILE"); path != "" {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			log.Fatal(err)
		}
	} else {
		cfg = config.FromEnv()
	}
	if err := cfg.Validate(); err != nil {
		log.Fatal(err)
	}

	logger, err := logging.New(cfg.Logging)
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	reg := registry.New(logger)
	if err := reg.RegisterEndpoints("endpoints", cfg.CheckSet(), nil); err != nil {
		log.Fatal(err)
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
	if err := http.ListenAndServe(cfg.Server.Addr, router); err != nil {
		log.Fatal(err)
	}
}
