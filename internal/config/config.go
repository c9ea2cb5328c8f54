// Package config loads ticklist configuration from three layers:
// compiled-in defaults, an optional YAML file, and TICKLIST_*
// environment variables, each layer overriding the one before it.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the full configuration for both binaries. The server reads
// only the Server section; the CLI reads only the Client section.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Client ClientConfig `yaml:"client"`
}

// ServerConfig configures the todo server.
type ServerConfig struct {
	// Listen is the address the HTTP server binds to.
	Listen string `yaml:"listen"`

	// ShutdownTimeout bounds how long a graceful shutdown waits for
	// in-flight requests.
	ShutdownTimeout Duration `yaml:"shutdown_timeout"`

	// SeedFile optionally names a JSON file of items loaded into the
	// store at startup.
	SeedFile string `yaml:"seed_file"`
}

// ClientConfig configures the CLI's view of the server.
type ClientConfig struct {
	// BaseURL is the server the client talks to.
	BaseURL string `yaml:"base_url"`

	// Timeout bounds each individual HTTP request.
	Timeout Duration `yaml:"timeout"`

	// Locale selects the display sort collation, e.g. "de" or "en-US".
	// Empty means the locale-neutral default.
	Locale string `yaml:"locale"`

	Retry RetryConfig `yaml:"retry"`
}

// RetryConfig bounds how transient failures are retried.
type RetryConfig struct {
	// Attempts is the total attempt budget per retryable request.
	Attempts int `yaml:"attempts"`

	// Backoff is the delay before the first retry; it doubles on each
	// further retry.
	Backoff Duration `yaml:"backoff"`
}

// Duration wraps time.Duration so YAML values read and write as
// strings like "750ms" or "5s".
type Duration time.Duration

func (d *Duration) UnmarshalYAML(node *yaml.Node) error {
	var raw string
	if err := node.Decode(&raw); err != nil {
		return err
	}
	parsed, err := time.ParseDuration(raw)
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", raw, err)
	}
	*d = Duration(parsed)
	return nil
}

func (d Duration) MarshalYAML() (any, error) {
	return time.Duration(d).String(), nil
}

// Std returns the wrapped standard-library duration.
func (d Duration) Std() time.Duration {
	return time.Duration(d)
}

// Default returns the compiled-in configuration.
func Default() Config {
	return Config{
		Server: ServerConfig{
			Listen:          ":8080",
			ShutdownTimeout: Duration(10 * time.Second),
		},
		Client: ClientConfig{
			BaseURL: "http://127.0.0.1:8080",
			Timeout: Duration(5 * time.Second),
			Retry: RetryConfig{
				Attempts: 3,
				Backoff:  Duration(100 * time.Millisecond),
			},
		},
	}
}

// Load reads the configuration at path and applies environment
// overrides. A missing file is not an error: defaults plus environment
// still apply, so both binaries run with no config at all.
func Load(path string) (Config, error) {
	cfg := Default()

	raw, err := os.ReadFile(path)
	switch {
	case err == nil:
		if err := yaml.Unmarshal(raw, &cfg); err != nil {
			return cfg, fmt.Errorf("parse %s: %w", path, err)
		}
	case errors.Is(err, fs.ErrNotExist):
	default:
		return cfg, err
	}

	if err := cfg.applyEnv(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// applyEnv overlays TICKLIST_* environment variables:
//
//	TICKLIST_LISTEN            server.listen
//	TICKLIST_SHUTDOWN_TIMEOUT  server.shutdown_timeout
//	TICKLIST_SEED_FILE         server.seed_file
//	TICKLIST_BASE_URL          client.base_url
//	TICKLIST_TIMEOUT           client.timeout
//	TICKLIST_LOCALE            client.locale
//	TICKLIST_RETRY_ATTEMPTS    client.retry.attempts
//	TICKLIST_RETRY_BACKOFF     client.retry.backoff
func (c *Config) applyEnv() error {
	c.Server.Listen = getenv("TICKLIST_LISTEN", c.Server.Listen)
	c.Server.SeedFile = getenv("TICKLIST_SEED_FILE", c.Server.SeedFile)
	c.Client.BaseURL = getenv("TICKLIST_BASE_URL", c.Client.BaseURL)
	c.Client.Locale = getenv("TICKLIST_LOCALE", c.Client.Locale)

	var err error
	if c.Server.ShutdownTimeout, err = envDuration("TICKLIST_SHUTDOWN_TIMEOUT", c.Server.ShutdownTimeout); err != nil {
		return err
	}
	if c.Client.Timeout, err = envDuration("TICKLIST_TIMEOUT", c.Client.Timeout); err != nil {
		return err
	}
	if c.Client.Retry.Backoff, err = envDuration("TICKLIST_RETRY_BACKOFF", c.Client.Retry.Backoff); err != nil {
		return err
	}

	if v := os.Getenv("TICKLIST_RETRY_ATTEMPTS"); v != "" {
		n, aerr := strconv.Atoi(v)
		if aerr != nil || n < 1 {
			return fmt.Errorf("TICKLIST_RETRY_ATTEMPTS: need a positive integer, got %q", v)
		}
		c.Client.Retry.Attempts = n
	}
	return nil
}

func getenv(k, def string) string {
	if v := os.Getenv(k); v != "" {
		return v
	}
	return def
}

func envDuration(k string, def Duration) (Duration, error) {
	v := os.Getenv(k)
	if v == "" {
		return def, nil
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		return def, fmt.Errorf("%s: %w", k, err)
	}
	return Duration(d), nil
}
