package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env/v11"
	"github.com/saltpay/stencil/internal/store"
	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

const DefaultPageSize = store.MaxPageSize

type SlackConfig struct {
	Channel string `yaml:"channel,omitempty" env:"STENCIL_SLACK_CHANNEL"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"STENCIL_LOG_LEVEL"`
	File  string `yaml:"file,omitempty" env:"STENCIL_LOG_FILE"`
}

type Config struct {
	WorkspaceFile string      `yaml:"workspace_file" env:"STENCIL_WORKSPACE"`
	DataDir       string      `yaml:"data_dir" env:"STENCIL_DATA_DIR"`
	Locale        string      `yaml:"locale" env:"STENCIL_LOCALE"`
	PageSize      int         `yaml:"page_size" env:"STENCIL_PAGE_SIZE"`
	BaseURL       string      `yaml:"base_url,omitempty" env:"STENCIL_BASE_URL"`
	CopyURL       bool        `yaml:"copy_url" env:"STENCIL_COPY_URL"`
	Slack         SlackConfig `yaml:"slack,omitempty"`
	Log           LogConfig   `yaml:"log"`
}

// Load reads filename, applies STENCIL_* environment overrides and validates
// the result. Relative paths are resolved against the config file's directory.
func Load(filename string) (*Config, error) {
	data, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if err := env.Parse(&cfg); err != nil {
		return nil, fmt.Errorf("failed to read environment: %w", err)
	}

	if err := cfg.validate(filename); err != nil {
		return nil, err
	}

	base := filepath.Dir(filename)
	cfg.WorkspaceFile = resolve(base, cfg.WorkspaceFile)
	cfg.DataDir = resolve(base, cfg.DataDir)
	cfg.Log.File = resolve(base, cfg.Log.File)

	return &cfg, nil
}

func (c *Config) validate(filename string) error {
	if c.WorkspaceFile == "" {
		return fmt.Errorf("workspace_file is required in %s", filename)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required in %s", filename)
	}

	if c.Locale == "" {
		c.Locale = "en-US"
	} else if _, err := language.Parse(c.Locale); err != nil {
		return fmt.Errorf("invalid locale %q in %s: %w", c.Locale, filename, err)
	}

	switch {
	case c.PageSize == 0:
		c.PageSize = DefaultPageSize
	case c.PageSize < 0:
		return fmt.Errorf("page_size must be positive in %s, got %d", filename, c.PageSize)
	case c.PageSize > store.MaxPageSize:
		return fmt.Errorf("page_size must be at most %d in %s, got %d", store.MaxPageSize, filename, c.PageSize)
	}

	if c.Log.Level == "" {
		c.Log.Level = "info"
	}

	return nil
}

// Save writes cfg to filename, creating its directory if needed.
func Save(filename string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("failed to create directory for %s: %w", filename, err)
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(filename, data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", filename, err)
	}

	return nil
}

func resolve(base, path string) string {
	if path == "" || filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(base, path)
}
