// cmd/preflight/main.go
package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/hamed0406/healthprobe/internal/config"
)

func main() {
	fail := func(msg string) {
		fmt.Fprintln(os.Stderr, "✖", msg)
		os.Exit(1)
	}
	warn := func(msg string) { fmt.Fprintln(os.Stderr, "⚠", msg) }
	ok := func(msg string) { fmt.Println("✔", msg) }

	path := strings.TrimSpace(os.Getenv("CONFIG_FILE"))

	var cfg config.Config
	if path == "" {
		warn("CONFIG_FILE empty — falling back to env-only configuration (HEALTH_TARGETS).")
		cfg = config.FromEnv()
	} else {
		var err error
		cfg, err = config.Load(path)
		if err != nil {
			fail("config load failed: " + err.Error())
		}
		ok("loaded " + path)
	}

	if err := cfg.Validate(); err != nil {
		fail(err.Error())
	}
	ok(fmt.Sprintf("%d endpoint(s) declared", len(cfg.Endpoints)))

	if len(cfg.Server.AdminAPIKeys) == 0 {
		warn("no admin API keys — admin routes will be open (dev mode).")
	}
	if len(cfg.Server.PublicAPIKeys) == 0 {
		warn("no public API keys — read routes will be open (dev mode).")
	}
	for _, set := range [][]string{cfg.Server.AdminAPIKeys, cfg.Server.PublicAPIKeys} {
		for _, k := range set {
			if strings.Contains(k, " ") {
				warn("API key contains spaces; check your comma-separated lists")
			}
		}
	}

	if len(cfg.Server.AllowedOrigins) == 0 {
		warn("no allowed origins — CORS falls back to allow-all.")
	}
	if cfg.Notify.SlackWebhook == "" {
		warn("no Slack webhook — failures will only be logged.")
	} else {
		ok("Slack notifications configured")
	}

	ok("preflight passed")
}
