// Package config loads and validates application configuration from
// environment variables and an optional config file.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Environment variable naming an optional config file.
const FileEnv = "PARKTRACKER_CONFIG"

// Config holds all configuration values for the tracker.
// Values are populated by Load.
type Config struct {
	// DataPath is the canonical store file. Defaults to "data/tracker.json".
	DataPath string

	// ImportSource is the default park listing for import-parks and the
	// agent. A local path or an http(s) URL. Defaults to "data/parks.json".
	ImportSource string

	// ImportTimeout bounds a remote listing fetch. Defaults to 15s.
	ImportTimeout time.Duration

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	LLM LLMConfig
}

// LLMConfig configures the optional text-completion backend.
type LLMConfig struct {
	// Provider is "openai" (any OpenAI-compatible endpoint) or "gemini".
	Provider string

	// APIKey falls back to OPENAI_API_KEY or GEMINI_API_KEY for the chosen
	// provider. Empty means model delegation is unavailable.
	APIKey string

	Model   string
	BaseURL string

	// Timeout bounds one completion request. Defaults to 20s.
	Timeout time.Duration
}

var defaultModels = map[string]string{
	"openai": "gpt-4o-mini",
	"gemini": "gemini-2.0-flash",
}

// Load reads configuration from the environment and, when path (or
// PARKTRACKER_CONFIG) names one, a YAML, JSON or TOML file. Environment
// variables win over the file. A config file that does not exist is ignored.
func Load(path string) (Config, error) {
	v := viper.New()
	v.SetDefault("DATA_PATH", "data/tracker.json")
	v.SetDefault("IMPORT_SOURCE", "data/parks.json")
	v.SetDefault("IMPORT_TIMEOUT", "15s")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LLM_PROVIDER", "openai")
	v.SetDefault("LLM_BASE_URL", "https://api.openai.com/v1")
	v.SetDefault("LLM_TIMEOUT", "20s")
	v.AutomaticEnv()

	if path == "" {
		path = os.Getenv(FileEnv)
	}
	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return Config{}, fmt.Errorf("config.Load: read %s: %w", path, err)
		}
	}

	cfg := Config{
		DataPath:     v.GetString("DATA_PATH"),
		ImportSource: v.GetString("IMPORT_SOURCE"),
		LogLevel:     strings.ToLower(v.GetString("LOG_LEVEL")),
		LLM: LLMConfig{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("LLM_PROVIDER"))),
			APIKey:   v.GetString("LLM_API_KEY"),
			Model:    v.GetString("LLM_MODEL"),
			BaseURL:  v.GetString("LLM_BASE_URL"),
		},
	}

	var problems []string
	var err error
	if cfg.ImportTimeout, err = duration(v, "IMPORT_TIMEOUT"); err != nil {
		problems = append(problems, err.Error())
	}
	if cfg.LLM.Timeout, err = duration(v, "LLM_TIMEOUT"); err != nil {
		problems = append(problems, err.Error())
	}

	fallbackModel, ok := defaultModels[cfg.LLM.Provider]
	if !ok {
		problems = append(problems, fmt.Sprintf("LLM_PROVIDER: unknown provider %q (want openai or gemini)", cfg.LLM.Provider))
	}
	if cfg.LLM.Model == "" {
		cfg.LLM.Model = fallbackModel
	}
	if cfg.LLM.APIKey == "" && ok {
		cfg.LLM.APIKey = v.GetString(strings.ToUpper(cfg.LLM.Provider) + "_API_KEY")
	}

	if len(problems) > 0 {
		return Config{}, fmt.Errorf("invalid configuration: %s", strings.Join(problems, "; "))
	}
	return cfg, nil
}

func duration(v *viper.Viper, key string) (time.Duration, error) {
	raw := strings.TrimSpace(v.GetString(key))
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, fmt.Errorf("%s: %q is not a positive duration", key, raw)
	}
	return d, nil
}
