package config

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"
	"github.com/misterclayt0n/formcoach/internal/filter"
	"github.com/misterclayt0n/formcoach/internal/motion"
)

const (
	// DatabaseURLEnv overrides the configured connection string.
	DatabaseURLEnv = "FORMCOACH_DATABASE_URL"
	devDatabaseURL = "file:./local.db?cache=shared&mode=rwc"
)

type Config struct {
	DB       DBConfig       `toml:"database"`
	Tracking TrackingConfig `toml:"tracking"`
	User     UserConfig     `toml:"user"`
	Log      LogConfig      `toml:"log"`
	// CatalogFile is an optional TOML file with extra exercise definitions.
	CatalogFile string `toml:"catalog_file"`
}

type DBConfig struct {
	ConnectionString string `toml:"connection_string"` // The entire DB connection string.
}

type TrackingConfig struct {
	MinCutoff         float64 `toml:"min_cutoff"`
	Beta              float64 `toml:"beta"`
	DCutoff           float64 `toml:"d_cutoff"`
	DisableSmoothing  bool    `toml:"disable_smoothing"`
	MovementThreshold float64 `toml:"movement_threshold"`
	MaxFPS            int     `toml:"max_fps"`
}

type UserConfig struct {
	WeightKg float64 `toml:"weight_kg"`
}

type LogConfig struct {
	Level string `toml:"level"`
	JSON  bool   `toml:"json"`
	File  string `toml:"file"`
}

func Default() *Config {
	return &Config{
		Tracking: TrackingConfig{
			MinCutoff:         filter.DefaultMinCutoff,
			Beta:              filter.DefaultBeta,
			DCutoff:           filter.DefaultDCutoff,
			MovementThreshold: motion.DefaultMovementThreshold,
			MaxFPS:            15,
		},
		Log: LogConfig{Level: "warn"},
	}
}

// Returns the path to the config file.
func GetConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}

	dir := filepath.Join(home, ".config", "formcoach")
	return filepath.Join(dir, "config.toml"), nil
}

// Reads the configuration from the config file, falling back to defaults when it does not exist.
func LoadConfig() (*Config, error) {
	path, err := GetConfigPath()
	if err != nil {
		return nil, err
	}
	return LoadFrom(path)
}

// LoadFrom reads the config at path and applies environment overrides.
// Keys missing from the file keep their default values.
func LoadFrom(path string) (*Config, error) {
	cfg := Default()
	if _, err := toml.DecodeFile(path, cfg); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, err
	}

	// A missing .env is fine, the variables may come from the environment.
	_ = godotenv.Load()

	if url := os.Getenv(DatabaseURLEnv); url != "" {
		cfg.DB.ConnectionString = url
	}

	// Check for a DEV_MODE environment variable.
	if os.Getenv("DEV_MODE") == "true" {
		cfg.DB.ConnectionString = devDatabaseURL
	}

	return cfg, nil
}

// Save writes cfg to path, creating the parent directory if needed.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}

	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	return toml.NewEncoder(f).Encode(cfg)
}
