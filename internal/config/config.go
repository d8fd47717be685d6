package config

import (
	"fmt"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/hamed0406/healthprobe/internal/endpoint"
)

type Config struct {
	Server    ServerConfig     `yaml:"server"`
	Logging   LoggingConfig    `yaml:"logging"`
	Defaults  DefaultsConfig   `yaml:"defaults"`
	Endpoints []EndpointConfig `yaml:"endpoints"`
	Notify    NotifyConfig     `yaml:"notify"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"` // API bind address, e.g. "127.0.0.1:8080" or ":8080"
	PublicAPIKeys  []string `yaml:"public_api_keys"`
	AdminAPIKeys   []string `yaml:"admin_api_keys"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	PublicRPM      int      `yaml:"public_rpm"`
	PublicBurst    int      `yaml:"public_burst"`
	AdminRPM       int      `yaml:"admin_rpm"`
	AdminBurst     int      `yaml:"admin_burst"`
}

type LoggingConfig struct {
	Dir     string `yaml:"dir"`
	Level   string `yaml:"level"`   // debug|info|warn|error; default info
	Console bool   `yaml:"console"` // also mirror to stderr
}

// DefaultsConfig is the check-wide fallback applied to endpoints that do
// not override a field themselves.
type DefaultsConfig struct {
	Method      string       `yaml:"method"`
	Timeout     Duration     `yaml:"timeout"`
	StatusCode  int          `yaml:"status_code"`
	StatusRange *RangeConfig `yaml:"status_range"`
	Content     *string      `yaml:"content"`
}

type RangeConfig struct {
	Min int `yaml:"min"`
	Max int `yaml:"max"`
}

type EndpointConfig struct {
	URL         string         `yaml:"url"`
	Method      string         `yaml:"method"`
	Timeout     Duration       `yaml:"timeout"`
	StatusCode  int            `yaml:"status_code"`
	StatusRange *RangeConfig   `yaml:"status_range"`
	Content     *string        `yaml:"content"`
	Headers     []HeaderConfig `yaml:"headers"`
}

type HeaderConfig struct {
	Name  string `yaml:"name"`
	Value string `yaml:"value"`
}

type NotifyConfig struct {
	SlackWebhook string   `yaml:"slack_webhook"`
	Cooldown     Duration `yaml:"cooldown"`
}

// Load reads a YAML config file and applies environment overrides on top.
func Load(path string) (Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := yaml.Unmarshal(raw, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg, nil
}

// FromEnv builds a config without a file: bind address, log dir, keys, and
// a comma-separated HEALTH_TARGETS list of URLs checked with defaults.
func FromEnv() Config {
	var cfg Config
	for _, u := range splitList(os.Getenv("HEALTH_TARGETS")) {
		cfg.Endpoints = append(cfg.Endpoints, EndpointConfig{URL: u})
	}
	cfg.applyEnv()
	cfg.fillDefaults()
	return cfg
}

func (c *Config) applyEnv() {
	if v := os.Getenv("ADDR"); v != "" {
		c.Server.Addr = v
	}
	if v := os.Getenv("LOG_DIR"); v != "" {
		c.Logging.Dir = v
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		c.Logging.Level = v
	}
	if v := splitList(os.Getenv("PUBLIC_API_KEYS")); len(v) > 0 {
		c.Server.PublicAPIKeys = v
	}
	if v := splitList(os.Getenv("ADMIN_API_KEYS")); len(v) > 0 {
		c.Server.AdminAPIKeys = v
	}
	if v := splitList(os.Getenv("ALLOWED_ORIGINS")); len(v) > 0 {
		c.Server.AllowedOrigins = v
	}
	if v := os.Getenv("SLACK_WEBHOOK"); v != "" {
		c.Notify.SlackWebhook = v
	}
	if v := os.Getenv("CHECK_TIMEOUT_MS"); v != "" {
		if ms, err := strconv.Atoi(v); err == nil && ms > 0 {
			c.Defaults.Timeout = Duration(time.Duration(ms) * time.Millisecond)
		}
	}
}

func (c *Config) fillDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = "127.0.0.1:8080"
	}
	if c.Logging.Dir == "" {
		c.Logging.Dir = "logs"
	}
	if c.Server.PublicRPM == 0 {
		c.Server.PublicRPM = 120
	}
	if c.Server.PublicBurst == 0 {
		c.Server.PublicBurst = 60
	}
	if c.Server.AdminRPM == 0 {
		c.Server.AdminRPM = 60
	}
	if c.Server.AdminBurst == 0 {
		c.Server.AdminBurst = 30
	}
	if c.Notify.Cooldown == 0 {
		c.Notify.Cooldown = Duration(10 * time.Minute)
	}
}

// Validate reports configuration problems that would make the probe useless
// at runtime. It does not reach the network.
func (c *Config) Validate() error {
	if len(c.Endpoints) == 0 {
		return fmt.Errorf("config: no endpoints declared")
	}
	for i, ep := range c.Endpoints {
		if ep.URL == "" {
			return fmt.Errorf("config: endpoint #%d has no url", i)
		}
		u, err := url.Parse(ep.URL)
		if err != nil || u.Scheme == "" || u.Host == "" {
			return fmt.Errorf("config: endpoint #%d has invalid url %q", i, ep.URL)
		}
		if ep.StatusRange != nil && ep.StatusRange.Min > ep.StatusRange.Max {
			return fmt.Errorf("config: endpoint #%d status_range min > max", i)
		}
	}
	if c.Defaults.StatusRange != nil && c.Defaults.StatusRange.Min > c.Defaults.StatusRange.Max {
		return fmt.Errorf("config: defaults status_range min > max")
	}
	return nil
}

// CheckSet translates the declared endpoints into an evaluable check-set.
func (c *Config) CheckSet() *endpoint.CheckSet {
	set := endpoint.New()

	if c.Defaults.Method != "" {
		set.UseMethod(c.Defaults.Method)
	}
	if c.Defaults.Timeout > 0 {
		set.UseTimeout(c.Defaults.Timeout.Std())
	}
	if c.Defaults.StatusRange != nil {
		set.ExpectStatusRange(c.Defaults.StatusRange.Min, c.Defaults.StatusRange.Max)
	} else if c.Defaults.StatusCode != 0 {
		set.ExpectStatus(c.Defaults.StatusCode)
	}
	if c.Defaults.Content != nil {
		set.ExpectContent(*c.Defaults.Content)
	}

	for _, ep := range c.Endpoints {
		var opts []endpoint.TargetOption
		if ep.Method != "" {
			opts = append(opts, endpoint.WithMethod(ep.Method))
		}
		if ep.Timeout > 0 {
			opts = append(opts, endpoint.WithTimeout(ep.Timeout.Std()))
		}
		if ep.StatusRange != nil {
			opts = append(opts, endpoint.WithExpectedStatusRange(ep.StatusRange.Min, ep.StatusRange.Max))
		} else if ep.StatusCode != 0 {
			opts = append(opts, endpoint.WithExpectedStatus(ep.StatusCode))
		}
		if ep.Content != nil {
			opts = append(opts, endpoint.WithExpectedContent(*ep.Content))
		}
		for _, h := range ep.Headers {
			opts = append(opts, endpoint.WithHeader(h.Name, h.Value))
		}
		set.AddTarget(ep.URL, opts...)
	}

	return set
}

func splitList(v string) []string {
	if v == "" {
		return nil
	}
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
