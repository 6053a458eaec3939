package config

import "fmt"

// ConfigTemplate is the default configuration template. Paths are relative to
// the config file.
// Use fmt.Sprintf(ConfigTemplate, locale) to fill in the locale.
const ConfigTemplate = `workspace_file: ` + WorkspaceFileName + `
data_dir: ` + DataDirName + `
locale: %s
page_size: 100
base_url: https://docs.example.com
copy_url: false

# slack:
#   channel: "#templates"

log:
  level: info
  file: ` + LogFileName + `
`

// DefaultConfigContent returns the default config content with the given locale.
func DefaultConfigContent(locale string) string {
	if locale == "" {
		locale = "en-US"
	}
	return fmt.Sprintf(ConfigTemplate, locale)
}

// DefaultConfig returns a Config struct with default values.
func DefaultConfig(locale string) *Config {
	if locale == "" {
		locale = "en-US"
	}
	return &Config{
		WorkspaceFile: WorkspaceFileName,
		DataDir:       DataDirName,
		Locale:        locale,
		PageSize:      DefaultPageSize,
		BaseURL:       "https://docs.example.com",
		Log: LogConfig{
			Level: "info",
			File:  LogFileName,
		},
	}
}
