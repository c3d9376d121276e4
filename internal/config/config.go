// Package config loads hypersearch settings from defaults, an optional
// TOML or YAML file, a .env file and HYPERSEARCH_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/f4ah6o/hypersearch-go/internal/fetcher"
	"github.com/f4ah6o/hypersearch-go/internal/search"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	// DefaultFile is read from the working directory when no path is given.
	DefaultFile = "hypersearch.toml"
	// DefaultEnvFile is read from the working directory when present.
	DefaultEnvFile = ".env"

	envPrefix = "HYPERSEARCH_"
)

// ErrInvalidConfig is returned when a setting is out of range.
var ErrInvalidConfig = errors.New("invalid config")

// SearchConfig configures the web search endpoint.
type SearchConfig struct {
	// Endpoint is the URL of an HTML results page taking a q parameter.
	Endpoint string `toml:"endpoint" yaml:"endpoint"`
	// Selector is the CSS selector of result links on that page.
	Selector  string        `toml:"selector" yaml:"selector"`
	UserAgent string        `toml:"user_agent" yaml:"user_agent"`
	Timeout   time.Duration `toml:"timeout" yaml:"timeout"`
}

// Config holds every setting of the tool.
type Config struct {
	MaxResults      int      `toml:"max_results" yaml:"max_results"`
	LocalMaxResults int      `toml:"local_max_results" yaml:"local_max_results"`
	Root            string   `toml:"root" yaml:"root"`
	SkipDirs        []string `toml:"skip_dirs" yaml:"skip_dirs"`
	SaveDir         string   `toml:"save_dir" yaml:"save_dir"`
	Color           bool     `toml:"color" yaml:"color"`
	Animation       bool     `toml:"animation" yaml:"animation"`
	LogLevel        string   `toml:"log_level" yaml:"log_level"`

	Search SearchConfig `toml:"search" yaml:"search"`

	// Popularity adds to or replaces entries of the built-in popularity table.
	Popularity map[string]float64 `toml:"popularity" yaml:"popularity"`
}

// Default returns the built-in settings.
func Default() *Config {
	return &Config{
		MaxResults:      search.DefaultWebResults,
		LocalMaxResults: search.DefaultLocalResults,
		Root:            ".",
		SaveDir:         ".",
		Color:           true,
		Animation:       true,
		LogLevel:        "warn",
		Search: SearchConfig{
			Endpoint:  fetcher.DefaultEndpoint,
			Selector:  fetcher.DefaultSelector,
			UserAgent: fetcher.DefaultUserAgent,
			Timeout:   fetcher.DefaultTimeout,
		},
	}
}

// LoadOptions tells Load where to look.
type LoadOptions struct {
	// Path is an explicit config file. It must exist when set.
	Path string
	// EnvFile is a dotenv file. Missing files are ignored.
	EnvFile string
}

// Load builds the configuration: defaults, then the config file, then the
// .env file, then the process environment. The result is not validated;
// callers apply their own overrides and then call Validate.
func Load(opts LoadOptions) (*Config, error) {
	cfg := Default()

	path := opts.Path
	if path == "" {
		if _, err := os.Stat(DefaultFile); err == nil {
			path = DefaultFile
		}
	}
	if path != "" {
		if err := cfg.decodeFile(path); err != nil {
			return nil, err
		}
		logrus.WithField("path", path).Debug("Loaded config file")
	}

	envFile := opts.EnvFile
	if envFile == "" {
		envFile = DefaultEnvFile
	}
	dotenv, err := readEnvFile(envFile)
	if err != nil {
		return nil, err
	}

	if err := cfg.applyEnv(envLookup(dotenv)); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) decodeFile(path string) error {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if _, err := toml.DecodeFile(path, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	case ".yaml", ".yml":
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("failed to read %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, c); err != nil {
			return fmt.Errorf("failed to parse %s: %w", path, err)
		}
	default:
		return fmt.Errorf("%w: unsupported config file type %q", ErrInvalidConfig, ext)
	}
	return nil
}

func readEnvFile(path string) (map[string]string, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		return nil, nil
	}
	values, err := godotenv.Read(path)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return values, nil
}

// envLookup prefers the process environment over dotenv values.
func envLookup(dotenv map[string]string) func(string) (string, bool) {
	return func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := dotenv[key]
		return v, ok
	}
}

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(name string, dst *string) {
		if v, ok := lookup(envPrefix + name); ok && v != "" {
			*dst = v
		}
	}
	integer := func(name string, dst *int) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, name, err)
		}
		*dst = n
		return nil
	}
	boolean := func(name string, dst *bool) error {
		v, ok := lookup(envPrefix + name)
		if !ok || v == "" {
			return nil
		}
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fmt.Errorf("%w: %s%s: %v", ErrInvalidConfig, envPrefix, name, err)
		}
		*dst = b
		return nil
	}

	str("ROOT", &c.Root)
	str("SAVE_DIR", &c.SaveDir)
	str("LOG_LEVEL", &c.LogLevel)
	str("SEARCH_ENDPOINT", &c.Search.Endpoint)
	str("SEARCH_SELECTOR", &c.Search.Selector)
	str("USER_AGENT", &c.Search.UserAgent)

	if v, ok := lookup(envPrefix + "SKIP_DIRS"); ok && v != "" {
		c.SkipDirs = splitList(v)
	}

	if err := integer("MAX_RESULTS", &c.MaxResults); err != nil {
		return err
	}
	if err := integer("LOCAL_MAX_RESULTS", &c.LocalMaxResults); err != nil {
		return err
	}
	if err := boolean("COLOR", &c.Color); err != nil {
		return err
	}
	if err := boolean("ANIMATION", &c.Animation); err != nil {
		return err
	}

	if v, ok := lookup(envPrefix + "TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%w: %sTIMEOUT: %v", ErrInvalidConfig, envPrefix, err)
		}
		c.Search.Timeout = d
	}

	// https://no-color.org
	if _, ok := lookup("NO_COLOR"); ok {
		c.Color = false
	}
	return nil
}

// Validate checks that every setting is usable.
func (c *Config) Validate() error {
	if c.MaxResults <= 0 {
		return fmt.Errorf("%w: max_results must be positive, got %d", ErrInvalidConfig, c.MaxResults)
	}
	if c.LocalMaxResults <= 0 {
		return fmt.Errorf("%w: local_max_results must be positive, got %d", ErrInvalidConfig, c.LocalMaxResults)
	}
	if c.Search.Endpoint == "" {
		return fmt.Errorf("%w: search endpoint is empty", ErrInvalidConfig)
	}
	if c.Search.Timeout <= 0 {
		return fmt.Errorf("%w: search timeout must be positive, got %s", ErrInvalidConfig, c.Search.Timeout)
	}
	if _, err := logrus.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	for domain, visits := range c.Popularity {
		if visits < 0 {
			return fmt.Errorf("%w: popularity of %s must not be negative", ErrInvalidConfig, domain)
		}
	}
	return nil
}

// splitList splits a comma-separated list, dropping blank items.
func splitList(s string) []string {
	var result []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}
