// Package config loads the service configuration from a .env file, an
// optional YAML file and the process environment, in increasing precedence.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"time"

	"github.com/caarlos0/env/v9"
	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/DJSquale/gpt-langchain-agent/providers/ai/openai"
	"github.com/DJSquale/gpt-langchain-agent/providers/observability/slogobs"
	"github.com/DJSquale/gpt-langchain-agent/providers/search/serpapi"
	"github.com/DJSquale/gpt-langchain-agent/providers/tool/scrape"
)

// DefaultEnvFile is read by Load when no file is given.
const DefaultEnvFile = ".env"

var (
	// ErrMissingAPIKey is returned by RequireAPIKey.
	ErrMissingAPIKey = errors.New("config: OPENAI_API_KEY is required")
	// ErrMissingSerpAPIKey is returned by RequireSerpAPIKey.
	ErrMissingSerpAPIKey = errors.New("config: SERPAPI_API_KEY is required")
)

// Config is built once at startup and passed explicitly.
type Config struct {
	OpenAIAPIKey      string  `yaml:"openai-api-key" env:"OPENAI_API_KEY"`
	OpenAIBaseURL     string  `yaml:"openai-base-url" env:"OPENAI_API_BASE_URL"`
	OpenAIModel       string  `yaml:"openai-model" env:"OPENAI_MODEL"`
	OpenAITemperature float32 `yaml:"openai-temperature" env:"OPENAI_TEMPERATURE"`

	SerpAPIKey     string `yaml:"serpapi-api-key" env:"SERPAPI_API_KEY"`
	SerpAPIBaseURL string `yaml:"serpapi-base-url" env:"SERPAPI_BASE_URL"`

	Addr          string        `yaml:"addr" env:"ADDR"`
	MaxIterations int           `yaml:"agent-max-iterations" env:"AGENT_MAX_ITERATIONS"`
	ScrapeFormat  string        `yaml:"scrape-format" env:"SCRAPE_FORMAT"`
	FetchTimeout  time.Duration `yaml:"fetch-timeout" env:"FETCH_TIMEOUT"`

	LogLevel  string `yaml:"log-level" env:"LOG_LEVEL"`
	LogFormat string `yaml:"log-format" env:"LOG_FORMAT"`

	// ConfigFile is the YAML file that was merged, if any.
	ConfigFile string `yaml:"-" env:"CONFIG_FILE"`
}

// Default returns the configuration used when nothing overrides it.
func Default() Config {
	return Config{
		OpenAIBaseURL:  openai.DefaultBaseURL,
		OpenAIModel:    openai.DefaultModel,
		SerpAPIBaseURL: serpapi.DefaultBaseURL,
		Addr:           ":8000",
		MaxIterations:  10,
		ScrapeFormat:   string(scrape.FormatText),
		LogLevel:       "info",
		LogFormat:      string(slogobs.FormatCompact),
	}
}

// Load reads envFiles (DefaultEnvFile when none are given) into the process
// environment without overriding existing variables, merges the YAML file
// named by CONFIG_FILE, then applies the environment. Missing env files are
// ignored.
func Load(envFiles ...string) (Config, error) {
	if len(envFiles) == 0 {
		envFiles = []string{DefaultEnvFile}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("load %s: %w", f, err)
		}
	}

	cfg := Default()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := cfg.mergeYAML(path); err != nil {
			return Config{}, err
		}
	}

	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse environment: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func (c *Config) mergeYAML(path string) error {
	content, err := os.ReadFile(path) // #nosec G304 -- path comes from the operator's environment
	if err != nil {
		return fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(content, c); err != nil {
		return fmt.Errorf("parse config file %s: %w", path, err)
	}
	c.ConfigFile = path
	return nil
}

// Validate checks values that would otherwise fail later at first use.
func (c Config) Validate() error {
	if _, err := scrape.ParseFormat(c.ScrapeFormat); err != nil {
		return fmt.Errorf("SCRAPE_FORMAT: %w", err)
	}
	if _, err := slogobs.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("LOG_LEVEL: %w", err)
	}
	if c.MaxIterations < 1 {
		return fmt.Errorf("AGENT_MAX_ITERATIONS must be positive, got %d", c.MaxIterations)
	}
	if c.FetchTimeout < 0 {
		return fmt.Errorf("FETCH_TIMEOUT must not be negative, got %s", c.FetchTimeout)
	}
	if c.Addr == "" {
		return errors.New("ADDR must not be empty")
	}
	return nil
}

// RequireAPIKey reports ErrMissingAPIKey when no OpenAI key is configured.
// Only commands that talk to the model need it.
func (c Config) RequireAPIKey() error {
	if c.OpenAIAPIKey == "" {
		return ErrMissingAPIKey
	}
	return nil
}

// RequireSerpAPIKey reports ErrMissingSerpAPIKey when no SerpAPI key is
// configured. `serve` runs without one and answers /fetchCode with 500.
func (c Config) RequireSerpAPIKey() error {
	if c.SerpAPIKey == "" {
		return ErrMissingSerpAPIKey
	}
	return nil
}

// Format returns the parsed scrape format. Call after Validate.
func (c Config) Format() scrape.Format {
	f, _ := scrape.ParseFormat(c.ScrapeFormat)
	return f
}
