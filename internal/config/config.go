// Package config loads the service configuration from an optional .env file,
// an optional YAML file and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"
)

// Backend names
const (
	BackendGoogleSheets = "googlesheets"
	BackendExcel        = "excel"
	BackendNone         = "none"
)

var (
	ErrUnknownBackend   = errors.New("unknown backend")
	ErrMissingExcelFile = errors.New("excel file is required for the excel backend")
	ErrUnknownLogFormat = errors.New("unknown log format")
)

type Config struct {
	Store    StoreConfig    `mapstructure:"store"`
	Profiles ProfilesConfig `mapstructure:"profiles"`
	Google   GoogleConfig   `mapstructure:"google"`
	Excel    ExcelConfig    `mapstructure:"excel"`
	Server   ServerConfig   `mapstructure:"server"`
	Log      LogConfig      `mapstructure:"log"`
}

type StoreConfig struct {
	Backend string `mapstructure:"backend"`
}

type ProfilesConfig struct {
	Backend string `mapstructure:"backend"`
}

type GoogleConfig struct {
	Credentials   string `mapstructure:"credentials"`
	DocumentID    string `mapstructure:"document_id"`
	ListName      string `mapstructure:"list_name"`
	AppName       string `mapstructure:"app_name"`
	ProfilesSheet string `mapstructure:"profiles_sheet"`
}

type ExcelConfig struct {
	File          string `mapstructure:"file"`
	Sheet         string `mapstructure:"sheet"`
	ProfilesSheet string `mapstructure:"profiles_sheet"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`

	// TrustedProxies may set X-Forwarded-For; empty trusts none
	TrustedProxies []string `mapstructure:"trusted_proxies"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

var envBindings = map[string]string{
	"store.backend":          "STORE_BACKEND",
	"profiles.backend":       "PROFILES_BACKEND",
	"google.credentials":     "GOOGLE_CREDENTIALS",
	"google.document_id":     "GOOGLE_DOCUMENT_ID",
	"google.list_name":       "GOOGLE_LIST_NAME",
	"google.app_name":        "GOOGLE_APP_NAME",
	"google.profiles_sheet":  "GOOGLE_PROFILES_SHEET",
	"excel.file":             "EXCEL_FILE",
	"excel.sheet":            "EXCEL_SHEET",
	"excel.profiles_sheet":   "EXCEL_PROFILES_SHEET",
	"server.address":         "SERVER_ADDRESS",
	"server.trusted_proxies": "SERVER_TRUSTED_PROXIES",
	"log.level":              "LOG_LEVEL",
	"log.format":             "LOG_FORMAT",
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("store.backend", BackendGoogleSheets)
	v.SetDefault("profiles.backend", BackendNone)
	v.SetDefault("google.list_name", "Requests")
	v.SetDefault("google.app_name", "cityvizor")
	v.SetDefault("google.profiles_sheet", "Profiles")
	v.SetDefault("excel.sheet", "Requests")
	v.SetDefault("excel.profiles_sheet", "Profiles")
	v.SetDefault("server.address", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// LoadConfig reads .env from the working directory, then the YAML file at
// path (skipped when path is empty), then the environment. Environment
// variables win over the file, the file wins over defaults.
func LoadConfig(path string) (cfg Config, err error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Warn().Err(err).Msg("cannot parse .env file")
	}

	v := viper.New()
	setDefaults(v)

	if path != "" {
		v.SetConfigFile(path)
		if err = v.ReadInConfig(); err != nil {
			return cfg, fmt.Errorf("failed to read config file %s: %w", path, err)
		}
	}

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, env := range envBindings {
		if err = v.BindEnv(key, env); err != nil {
			return cfg, fmt.Errorf("failed to bind %s: %w", env, err)
		}
	}

	if err = v.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("failed to decode config: %w", err)
	}

	return cfg, cfg.Validate()
}

// Validate checks backend names and the settings they depend on
func (c Config) Validate() error {
	switch c.Store.Backend {
	case BackendGoogleSheets:
	case BackendExcel:
		if strings.TrimSpace(c.Excel.File) == "" {
			return ErrMissingExcelFile
		}
	default:
		return fmt.Errorf("store: %w %q", ErrUnknownBackend, c.Store.Backend)
	}

	switch c.Profiles.Backend {
	case BackendNone, BackendGoogleSheets:
	case BackendExcel:
		if strings.TrimSpace(c.Excel.File) == "" {
			return ErrMissingExcelFile
		}
	default:
		return fmt.Errorf("profiles: %w %q", ErrUnknownBackend, c.Profiles.Backend)
	}

	switch c.Log.Format {
	case "json", "console":
	default:
		return fmt.Errorf("%w %q", ErrUnknownLogFormat, c.Log.Format)
	}

	return nil
}
