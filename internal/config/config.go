package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	envPrefix  = "PT"
	configName = "config"
	configType = "toml"
	configDir  = ".parceltrack"

	DefaultBaseURL = "https://info.sweettracker.co.kr/api/v1"
)

type Config struct {
	API      APIConfig
	Log      LogConfig
	HomeDir  string `validate:"required"`
	Defaults string `validate:"required"`
	Secrets  string `validate:"required"`
}

type APIConfig struct {
	BaseURL string        `validate:"required,url"`
	Key     string        `validate:"omitempty,printascii"`
	Timeout time.Duration `validate:"gte=0"`
}

type LogConfig struct {
	Level  string `validate:"omitempty,oneof=trace debug info warn error fatal panic disabled"`
	Format string `validate:"oneof=console json"`
}

// Load reads .env from the working directory, then ~/.parceltrack/config.toml,
// then PT_* environment variables. The returned viper instance carries the
// merged settings for adapters that read their own keys.
func Load() (Config, *viper.Viper, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return Config{}, nil, fmt.Errorf("load .env: %w", err)
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return Config{}, nil, fmt.Errorf("resolve home directory: %w", err)
	}
	baseDir := filepath.Join(homeDir, configDir)

	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)
	v.AddConfigPath(baseDir)
	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("api.base_url", DefaultBaseURL)
	v.SetDefault("api.key", "")
	v.SetDefault("api.timeout", 30*time.Second)
	v.SetDefault("log.level", "warn")
	v.SetDefault("log.format", "console")
	v.SetDefault("defaults.path", filepath.Join(baseDir, "defaults.toml"))
	v.SetDefault("secrets.path", filepath.Join(baseDir, "secrets"))

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, nil, fmt.Errorf("read config file: %w", err)
		}
	}

	cfg := Config{
		API: APIConfig{
			BaseURL: strings.TrimSpace(v.GetString("api.base_url")),
			Key:     strings.TrimSpace(v.GetString("api.key")),
			Timeout: v.GetDuration("api.timeout"),
		},
		Log: LogConfig{
			Level:  strings.ToLower(strings.TrimSpace(v.GetString("log.level"))),
			Format: strings.ToLower(strings.TrimSpace(v.GetString("log.format"))),
		},
		HomeDir:  baseDir,
		Defaults: v.GetString("defaults.path"),
		Secrets:  v.GetString("secrets.path"),
	}

	if err := validator.New().Struct(cfg); err != nil {
		return Config{}, nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return cfg, v, nil
}
