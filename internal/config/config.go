package config

import (
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"
)

// Transport selects how the MCP server is exposed.
type Transport string

const (
	TransportStdio          Transport = "stdio"
	TransportSSE            Transport = "sse"
	TransportStreamableHTTP Transport = "streamable-http"
)

// Defaults applied when no config file is present or a field is unset.
const (
	DefaultHost            = "localhost"
	DefaultPort            = 8315
	DefaultUpstreamBaseURL = "https://api.hosting.example.com/v1"
	DefaultTimeoutSeconds  = 30
)

// Config is the process configuration, loaded once at startup.
// Credentials are intentionally absent: they come from the environment
// only (see upstream.CredentialsFromEnv) so they never end up in a
// config file checked into version control.
type Config struct {
	Host      string    `yaml:"host"`
	Port      int       `yaml:"port"`
	Transport Transport `yaml:"transport"`
	LogLevel  string    `yaml:"logLevel"`
	Upstream  Upstream  `yaml:"upstream"`
}

// Upstream configures the connection to the hosting API.
type Upstream struct {
	BaseURL        string `yaml:"baseURL"`
	TimeoutSeconds int    `yaml:"timeoutSeconds"`
}

// Default returns the configuration used when no file is supplied.
func Default() Config {
	return Config{
		Host:      DefaultHost,
		Port:      DefaultPort,
		Transport: TransportStdio,
		LogLevel:  "info",
		Upstream: Upstream{
			BaseURL:        DefaultUpstreamBaseURL,
			TimeoutSeconds: DefaultTimeoutSeconds,
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults. An
// empty path returns the defaults unchanged. Unset fields keep their
// default values; invalid values fail loading rather than degrading at
// request time.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("reading config file %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parsing config file %s: %w", path, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("config file %s: %w", path, err)
	}
	return cfg, nil
}

// Validate rejects configurations the server cannot serve with.
func (c Config) Validate() error {
	switch c.Transport {
	case TransportStdio, TransportSSE, TransportStreamableHTTP:
	default:
		return fmt.Errorf("unknown transport %q (expected %s, %s, or %s)", c.Transport, TransportStdio, TransportSSE, TransportStreamableHTTP)
	}
	if c.Port <= 0 || c.Port > 65535 {
		return fmt.Errorf("invalid port %d", c.Port)
	}
	if c.Upstream.BaseURL == "" {
		return fmt.Errorf("upstream baseURL must not be empty")
	}
	if c.Upstream.TimeoutSeconds <= 0 {
		return fmt.Errorf("upstream timeoutSeconds must be positive, got %d", c.Upstream.TimeoutSeconds)
	}
	return nil
}

// UpstreamTimeout returns the configured upstream timeout as a
// duration.
func (c Config) UpstreamTimeout() time.Duration {
	return time.Duration(c.Upstream.TimeoutSeconds) * time.Second
}
