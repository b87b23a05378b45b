package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/joseph-ayodele/tourpack/constants"
)

// Config holds all application configuration
type Config struct {
	Batch     BatchConfig     `yaml:"batch"`
	Documents DocumentsConfig `yaml:"documents"`
	LLM       LLMConfig       `yaml:"llm"`
	Database  DatabaseConfig  `yaml:"database"`
}

// BatchConfig holds batch processing configuration
type BatchConfig struct {
	Strategy constants.Strategy `yaml:"strategy"`
	Workers  int                `yaml:"workers"`
}

// DocumentsConfig holds document-to-text configuration
type DocumentsConfig struct {
	Pdftotext  string `yaml:"pdftotext"`
	MaxFileMB  int    `yaml:"max_file_mb"`
	SkipHidden bool   `yaml:"skip_hidden"`
}

// LLMConfig holds generative model configuration
type LLMConfig struct {
	Provider      string        `yaml:"provider"`
	Model         string        `yaml:"model"`
	APIKey        string        `yaml:"api_key"`
	BaseURL       string        `yaml:"base_url"`
	Temperature   float32       `yaml:"temperature"`
	Timeout       time.Duration `yaml:"timeout"`
	LenientValues bool          `yaml:"lenient_values"`
	Project       string        `yaml:"project"`
	Region        string        `yaml:"region"`
}

// DatabaseConfig holds the optional SQL dataset table configuration
type DatabaseConfig struct {
	Driver          string        `yaml:"driver"` // "postgres" | "sqlite"
	DSN             string        `yaml:"dsn"`
	Table           string        `yaml:"table"`
	MaxConns        int32         `yaml:"max_conns"`
	MinConns        int32         `yaml:"min_conns"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time"`
	DialTimeout     time.Duration `yaml:"dial_timeout"`
}

// DefaultConfig returns the built-in defaults before file and environment overrides.
func DefaultConfig() *Config {
	return &Config{
		Batch: BatchConfig{
			Strategy: constants.StrategyRules,
			Workers:  1,
		},
		Documents: DocumentsConfig{
			Pdftotext:  "pdftotext",
			MaxFileMB:  50,
			SkipHidden: true,
		},
		LLM: LLMConfig{
			Provider:      constants.ProviderOpenAI,
			Temperature:   0.0,
			Timeout:       45 * time.Second,
			LenientValues: true,
		},
		Database: DatabaseConfig{
			Table:           "tour_packages",
			MaxConns:        10,
			MinConns:        1,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 5 * time.Minute,
			DialTimeout:     3 * time.Second,
		},
	}
}

// LoadConfig builds configuration from defaults, an optional YAML file, then environment variables.
// Environment variables win over the file.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	cfg.applyEnv()
	cfg.applyProviderDefaults()
	return cfg, nil
}

func (c *Config) applyEnv() {
	c.Batch.Strategy = constants.Strategy(getEnv("STRATEGY", string(c.Batch.Strategy)))
	c.Batch.Workers = getEnvAsInt("WORKERS", c.Batch.Workers)

	c.Documents.Pdftotext = getEnv("PDFTOTEXT", c.Documents.Pdftotext)
	c.Documents.MaxFileMB = getEnvAsInt("MAX_FILE_MB", c.Documents.MaxFileMB)

	c.LLM.Provider = strings.ToLower(getEnv("LLM_PROVIDER", c.LLM.Provider))
	c.LLM.Model = getEnv("LLM_MODEL", c.LLM.Model)
	c.LLM.BaseURL = getEnv("LLM_BASE_URL", c.LLM.BaseURL)
	c.LLM.Temperature = getEnvAsFloat32("LLM_TEMPERATURE", c.LLM.Temperature)
	c.LLM.Timeout = getEnvAsDuration("LLM_TIMEOUT", c.LLM.Timeout)
	c.LLM.Project = getEnv("VERTEX_PROJECT", c.LLM.Project)
	c.LLM.Region = getEnv("VERTEX_REGION", c.LLM.Region)
	c.LLM.APIKey = getEnv("LLM_API_KEY", c.LLM.APIKey)

	c.Database.Driver = getEnv("DB_DRIVER", c.Database.Driver)
	c.Database.DSN = getEnv("DB_URL", c.Database.DSN)
	c.Database.Table = getEnv("DB_TABLE", c.Database.Table)
	c.Database.MaxConns = getEnvAsInt32("DB_MAX_CONNS", c.Database.MaxConns)
	c.Database.MinConns = getEnvAsInt32("DB_MIN_CONNS", c.Database.MinConns)
	c.Database.DialTimeout = getEnvAsDuration("DB_DIAL_TIMEOUT", c.Database.DialTimeout)
}

func (c *Config) applyProviderDefaults() {
	switch c.LLM.Provider {
	case constants.ProviderOpenAI:
		c.LLM.APIKey = getEnv("OPENAI_API_KEY", c.LLM.APIKey)
		if c.LLM.Model == "" {
			c.LLM.Model = getEnv("OPENAI_MODEL", "gpt-4o-mini")
		}
	case constants.ProviderGemini:
		c.LLM.APIKey = getEnv("GEMINI_API_KEY", c.LLM.APIKey)
		if c.LLM.Model == "" {
			c.LLM.Model = getEnv("GEMINI_MODEL", "gemini-1.5-flash")
		}
	case constants.ProviderVertex:
		if c.LLM.Region == "" {
			c.LLM.Region = "us-central1"
		}
		if c.LLM.Model == "" {
			c.LLM.Model = getEnv("VERTEX_MODEL", "gemini-1.5-pro")
		}
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsInt32(key string, defaultValue int32) int32 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 32); err == nil {
			return int32(intVal)
		}
	}
	return defaultValue
}

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	v := NewValidator()
	v.Field("strategy", string(c.Batch.Strategy), OneOf(string(constants.StrategyRules), string(constants.StrategyLLM)))
	v.Field("workers", c.Batch.Workers, Positive)

	if c.Batch.Strategy == constants.StrategyLLM {
		v.Field("llm.provider", c.LLM.Provider, OneOf(constants.ProviderOpenAI, constants.ProviderGemini, constants.ProviderVertex))
		switch c.LLM.Provider {
		case constants.ProviderOpenAI, constants.ProviderGemini:
			v.Field("llm.api_key", c.LLM.APIKey, Required)
		case constants.ProviderVertex:
			v.Field("llm.project", c.LLM.Project, Required)
			v.Field("llm.region", c.LLM.Region, Required)
		}
	}
	if c.Database.Driver != "" {
		v.Field("database.driver", c.Database.Driver, OneOf("postgres", "sqlite"))
		v.Field("database.dsn", c.Database.DSN, Required)
		v.Field("database.table", c.Database.Table, Required, Identifier)
	}

	if v.HasErrors() {
		return NewAppError("CONFIG_ERROR", v.ErrorMessage(), ErrInvalidInput)
	}
	return nil
}
