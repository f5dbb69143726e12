// Package config loads service configuration from an optional YAML file
// with environment-variable overrides. Credentials only ever come from the
// environment.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server ServerConfig `yaml:"server"`
	Store  StoreConfig  `yaml:"store"`
	LLM    LLMConfig    `yaml:"llm"`
	Log    LogConfig    `yaml:"log"`
}

// ServerConfig configures the HTTP listener.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// StoreConfig selects and configures the structured-data backend.
type StoreConfig struct {
	Backend      string `yaml:"backend"` // "sqlite" or "snapshot"
	SQLitePath   string `yaml:"sqlite_path"`
	SnapshotPath string `yaml:"snapshot_path"`
}

// LLMConfig holds provider endpoints. API keys are environment-only and are
// filled in by Load.
type LLMConfig struct {
	GeminiBaseURL string `yaml:"gemini_base_url"`
	GeminiAPIKey  string `yaml:"-"`
	OpenAIBaseURL string `yaml:"openai_base_url"`
	OpenAIModel   string `yaml:"openai_model"`
	OpenAIAPIKey  string `yaml:"-"`
}

// LogConfig configures the zap logger.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, console
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server: ServerConfig{Addr: ":8080"},
		Store: StoreConfig{
			Backend:      "snapshot",
			SQLitePath:   "./data/college.db",
			SnapshotPath: "./data/college_local.json",
		},
		Log: LogConfig{Level: "info", Format: "console"},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// path is non-empty the file must exist), then environment overrides.
func Load(path string) (*Config, error) {
	cfg := Default()

	if path != "" {
		raw, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading config: %w", err)
		}
		if err := yaml.Unmarshal(raw, cfg); err != nil {
			return nil, fmt.Errorf("parsing config: %w", err)
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

// applyEnv overlays environment variables on top of file values.
func (c *Config) applyEnv() {
	setIfEnv(&c.Server.Addr, "COLLEGEBOT_ADDR")
	setIfEnv(&c.Store.Backend, "COLLEGEBOT_STORE")
	setIfEnv(&c.Store.SQLitePath, "COLLEGEBOT_SQLITE_PATH")
	setIfEnv(&c.Store.SnapshotPath, "COLLEGEBOT_SNAPSHOT_PATH")
	setIfEnv(&c.Log.Level, "COLLEGEBOT_LOG_LEVEL")
	setIfEnv(&c.LLM.GeminiAPIKey, "GEMINI_API_KEY")
	setIfEnv(&c.LLM.OpenAIAPIKey, "OPENAI_API_KEY")
}

func setIfEnv(dst *string, key string) {
	if v := os.Getenv(key); v != "" {
		*dst = v
	}
}
