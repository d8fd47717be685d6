package config

import (
	"net/http"
	"os"
	"path/filepath"
	"testing"
	"time"
)

const sampleYAML = `
server:
  addr: ":9090"
  public_api_keys: [pub_a, pub_b]
  admin_api_keys: [adm_x]
logging:
  dir: ./_testlogs
  level: debug
defaults:
  method: HEAD
  timeout: 5s
  status_range: {min: 200, max: 399}
endpoints:
  - url: https://example.com/health
  - url: https://api.example.com/status
    method: POST
    timeout: 1s
    status_code: 204
    content: "ok"
    headers:
      - {name: X-Token, value: one}
      - {name: X-Token, value: two}
notify:
  slack_webhook: https://hooks.slack.invalid/T000
  cooldown: 5m
`

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "healthprobe.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_ParsesAndDefaults(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Server.Addr != ":9090" || cfg.Logging.Dir != "./_testlogs" {
		t.Fatalf("addr/logdir wrong: %+v", cfg)
	}
	if len(cfg.Server.PublicAPIKeys) != 2 || cfg.Server.PublicAPIKeys[0] != "pub_a" {
		t.Fatalf("public keys wrong: %+v", cfg.Server.PublicAPIKeys)
	}
	if cfg.Notify.Cooldown.Std() != 5*time.Minute {
		t.Fatalf("cooldown wrong: %v", cfg.Notify.Cooldown)
	}
	// unset values fall back to defaults
	if cfg.Server.PublicRPM == 0 || cfg.Server.AdminBurst == 0 {
		t.Fatalf("rate limit defaults missing: %+v", cfg.Server)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("ADDR", ":7070")
	t.Setenv("ADMIN_API_KEYS", "env_adm")
	t.Setenv("SLACK_WEBHOOK", "https://hooks.slack.invalid/env")

	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.Addr != ":7070" {
		t.Fatalf("env ADDR should win, got %s", cfg.Server.Addr)
	}
	if len(cfg.Server.AdminAPIKeys) != 1 || cfg.Server.AdminAPIKeys[0] != "env_adm" {
		t.Fatalf("env admin keys should win: %+v", cfg.Server.AdminAPIKeys)
	}
	if cfg.Notify.SlackWebhook != "https://hooks.slack.invalid/env" {
		t.Fatalf("env webhook should win: %s", cfg.Notify.SlackWebhook)
	}
}

func TestCheckSet_Mapping(t *testing.T) {
	cfg, err := Load(writeConfig(t, sampleYAML))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	set := cfg.CheckSet()
	if set.Len() != 2 {
		t.Fatalf("want 2 targets, got %d", set.Len())
	}

	// first endpoint inherits the declared defaults
	first := set.Target(0)
	if first.Method != http.MethodHead || first.Timeout != 5*time.Second {
		t.Fatalf("defaults not applied: %+v", first)
	}
	if first.Status.Min != 200 || first.Status.Max != 399 {
		t.Fatalf("default range wrong: %v", first.Status)
	}

	// second endpoint overrides everything
	second := set.Target(1)
	if second.Method != http.MethodPost || second.Timeout != 1*time.Second {
		t.Fatalf("overrides not applied: %+v", second)
	}
	if second.Status.Min != 204 || second.Status.Max != 204 {
		t.Fatalf("single status code wrong: %v", second.Status)
	}
	if len(second.Content) != 1 {
		t.Fatalf("want literal content check, got %d", len(second.Content))
	}
	if len(second.Headers) != 2 || second.Headers[0].Value != "one" {
		t.Fatalf("headers wrong: %+v", second.Headers)
	}
}

func TestFromEnv_Targets(t *testing.T) {
	t.Setenv("HEALTH_TARGETS", "https://a.example.com, https://b.example.com")
	cfg := FromEnv()
	if len(cfg.Endpoints) != 2 || cfg.Endpoints[1].URL != "https://b.example.com" {
		t.Fatalf("targets wrong: %+v", cfg.Endpoints)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestValidate_Rejects(t *testing.T) {
	var cfg Config
	cfg.fillDefaults()
	if err := cfg.Validate(); err == nil {
		t.Fatal("empty endpoint list must be rejected")
	}

	cfg.Endpoints = []EndpointConfig{{URL: "not-a-url"}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("relative url must be rejected")
	}

	cfg.Endpoints = []EndpointConfig{{
		URL:         "https://example.com",
		StatusRange: &RangeConfig{Min: 300, Max: 200},
	}}
	if err := cfg.Validate(); err == nil {
		t.Fatal("inverted status range must be rejected")
	}
}
