// ABOUTME: Centralized configuration for the voice command router
// ABOUTME: Loads an optional YAML file, then environment variables, with validation and defaults
package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

const (
	// DefaultModel is the chat model used for intent classification
	DefaultModel = "gpt-3.5-turbo"
	// DefaultMaxTokens bounds the oracle answer
	DefaultMaxTokens = 100
	// DefaultTimeout bounds a single oracle call
	DefaultTimeout = 30 * time.Second
)

// Config holds all configuration for the router.
// Built once at process start and passed into the components that need it.
type Config struct {
	// Oracle settings
	OpenAIKey     string        `yaml:"openai_api_key"`
	OpenAIBaseURL string        `yaml:"openai_base_url"`
	Model         string        `yaml:"model"`
	Temperature   float32       `yaml:"temperature"`
	MaxTokens     int           `yaml:"max_tokens"`
	Timeout       time.Duration `yaml:"timeout"`

	// Block advisor settings
	AdvisorMaxRetries int           `yaml:"advisor_max_retries"`
	AdvisorRetryDelay time.Duration `yaml:"advisor_retry_delay"`

	// Catalog settings
	DBPath string `yaml:"db_path"`
}

// Default returns a Config with every default applied
func Default() *Config {
	return &Config{
		Model:             DefaultModel,
		Temperature:       0,
		MaxTokens:         DefaultMaxTokens,
		Timeout:           DefaultTimeout,
		AdvisorMaxRetries: 2,
		AdvisorRetryDelay: time.Second,
	}
}

// Load reads configuration. The file named by AIVIX_CONFIG (if any) is applied
// over the defaults and environment variables are applied over the file.
func Load() (*Config, error) {
	cfg := Default()

	if path := os.Getenv("AIVIX_CONFIG"); path != "" {
		if err := cfg.loadFile(path); err != nil {
			return nil, err
		}
	}

	cfg.OpenAIKey = getEnv("OPENAI_API_KEY", cfg.OpenAIKey)
	cfg.OpenAIBaseURL = getEnv("OPENAI_BASE_URL", cfg.OpenAIBaseURL)
	cfg.Model = getEnv("LLM_MODEL", cfg.Model)
	cfg.Temperature = getEnvFloat32("LLM_TEMPERATURE", cfg.Temperature)
	cfg.MaxTokens = getEnvInt("LLM_MAX_TOKENS", cfg.MaxTokens)
	cfg.Timeout = getEnvDuration("LLM_TIMEOUT", cfg.Timeout)
	cfg.AdvisorMaxRetries = getEnvInt("ADVISOR_MAX_RETRIES", cfg.AdvisorMaxRetries)
	cfg.AdvisorRetryDelay = getEnvDuration("ADVISOR_RETRY_DELAY", cfg.AdvisorRetryDelay)
	cfg.DBPath = getEnv("AIVIX_DB_PATH", cfg.DBPath)

	return cfg, cfg.Validate()
}

// loadFile expands env vars in the YAML file and decodes it over c
func (c *Config) loadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading config: %w", err)
	}

	expanded := os.ExpandEnv(string(data))
	if err := yaml.Unmarshal([]byte(expanded), c); err != nil {
		return fmt.Errorf("parsing config: %w", err)
	}
	return nil
}

func (c *Config) Validate() error {
	if c.Model == "" {
		return fmt.Errorf("LLM_MODEL must not be empty")
	}
	if c.Temperature < 0 || c.Temperature > 2 {
		return fmt.Errorf("LLM_TEMPERATURE must be 0-2, got %f", c.Temperature)
	}
	if c.MaxTokens <= 0 {
		return fmt.Errorf("LLM_MAX_TOKENS must be positive, got %d", c.MaxTokens)
	}
	if c.Timeout <= 0 {
		return fmt.Errorf("LLM_TIMEOUT must be positive, got %v", c.Timeout)
	}
	if c.AdvisorMaxRetries < 0 || c.AdvisorMaxRetries > 10 {
		return fmt.Errorf("ADVISOR_MAX_RETRIES must be 0-10, got %d", c.AdvisorMaxRetries)
	}
	return nil
}

// Helper functions
func getEnv(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvFloat32(key string, defaultVal float32) float32 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 32); err == nil {
			return float32(f)
		}
	}
	return defaultVal
}

func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return defaultVal
}
