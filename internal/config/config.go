package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"photocat/internal/domain"
)

const (
	DefaultDBPath   = "photo_db.pdb"
	DefaultLogLevel = "warn"
	DefaultWorkers  = 4
	EnvPrefix       = "PHOTOCAT"
)

// Store kinds
const (
	StoreAuto   = "auto"
	StoreFile   = "file"
	StoreSQLite = "sqlite"
)

// DBPath returns the catalog path from PHOTOCAT_DB env var,
// falling back to DefaultDBPath.
func DBPath() string {
	if env := os.Getenv("PHOTOCAT_DB"); env != "" {
		return NormalizeDBPath(env)
	}
	return DefaultDBPath
}

// NormalizeDBPath appends the .pdb extension when the file name has no dot
func NormalizeDBPath(path string) string {
	if path == "" {
		return DefaultDBPath
	}
	if !strings.Contains(filepath.Base(path), ".") {
		return path + ".pdb"
	}
	return path
}

// Config holds the settings shared by the CLI and the MCP server
type Config struct {
	DB              string   `mapstructure:"db"`
	Store           string   `mapstructure:"store"`
	LogLevel        string   `mapstructure:"log_level"`
	Workers         int      `mapstructure:"workers"`
	ImageExtensions []string `mapstructure:"image_extensions"`
	Viewer          string   `mapstructure:"viewer"`
}

// New returns a viper instance with defaults, search paths and env binding set up
func New() *viper.Viper {
	v := viper.New()
	v.SetConfigName("photocat")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if dir, err := os.UserConfigDir(); err == nil {
		v.AddConfigPath(filepath.Join(dir, "photocat"))
	}

	v.SetDefault("db", DBPath())
	v.SetDefault("store", StoreAuto)
	v.SetDefault("log_level", DefaultLogLevel)
	v.SetDefault("workers", DefaultWorkers)
	v.SetDefault("image_extensions", domain.DefaultImageExtensions)
	v.SetDefault("viewer", "")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads the config file, if any, and decodes the settings.
// An explicitly named file must exist; the search paths may come up empty.
func Load(v *viper.Viper, file string) (*Config, error) {
	if file != "" {
		v.SetConfigFile(file)
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if file != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to decode config: %w", err)
	}
	cfg.DB = NormalizeDBPath(cfg.DB)
	cfg.Store = strings.ToLower(strings.TrimSpace(cfg.Store))
	cfg.LogLevel = strings.ToLower(strings.TrimSpace(cfg.LogLevel))

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return &cfg, nil
}

// Validate checks the decoded settings
func (c *Config) Validate() error {
	if c.Workers < 1 {
		return fmt.Errorf("workers must be at least 1, got %d", c.Workers)
	}
	switch c.Store {
	case StoreAuto, StoreFile, StoreSQLite:
	default:
		return fmt.Errorf("unknown store %q (want auto, file or sqlite)", c.Store)
	}
	if len(c.ImageExtensions) == 0 {
		return errors.New("image_extensions must not be empty")
	}
	if _, err := zerolog.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// StoreKind resolves "auto" from the catalog file extension
func (c *Config) StoreKind() string {
	if c.Store != StoreAuto && c.Store != "" {
		return c.Store
	}
	switch strings.ToLower(filepath.Ext(c.DB)) {
	case ".db", ".sqlite", ".sqlite3":
		return StoreSQLite
	}
	return StoreFile
}
