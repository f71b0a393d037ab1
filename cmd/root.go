package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/misterclayt0n/formcoach/internal/catalog"
	"github.com/misterclayt0n/formcoach/internal/config"
	"github.com/misterclayt0n/formcoach/internal/logging"
	"github.com/misterclayt0n/formcoach/internal/storage"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	cfg      *config.Config
	logLevel string
)

var rootCmd = &cobra.Command{
	Use:   "formcoach",
	Short: "Pose-based exercise tracking: rep counting and form feedback from landmark recordings",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.LoadConfig()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.Log.Level
		if logLevel != "" {
			level = logLevel
		}
		logging.Setup(logging.SetupParams{
			LogFileName:   cfg.Log.File,
			LogToStderr:   logLevel != "",
			LogLevel:      level,
			LogFormatJSON: cfg.Log.JSON,
		})
		return nil
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (trace, debug, info, warn, error)")
}

func openStorage() (*storage.Storage, error) {
	st, err := storage.NewStorage(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to open storage: %w", err)
	}
	return st, nil
}

// loadCatalog returns the built-in exercises plus the ones imported into the user catalog.
func loadCatalog() (*catalog.Catalog, error) {
	c := catalog.Default()

	path, err := userCatalogPath()
	if err != nil {
		return nil, err
	}
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) && cfg.CatalogFile == "" {
		return c, nil
	}

	n, err := c.LoadTOML(path)
	if err != nil {
		return nil, fmt.Errorf("failed to load exercise catalog: %w", err)
	}
	logrus.WithFields(logrus.Fields{"path": path, "exercises": n}).Debug("user exercise catalog loaded")
	return c, nil
}

func userCatalogPath() (string, error) {
	if cfg.CatalogFile != "" {
		return cfg.CatalogFile, nil
	}
	path, err := config.GetConfigPath()
	if err != nil {
		return "", err
	}
	return filepath.Join(filepath.Dir(path), "exercises.toml"), nil
}

// weightKg is the body weight used for calorie estimates: the profile's, then the config's.
func weightKg(st *storage.Storage) float64 {
	if st != nil {
		if p, err := st.Profile(); err == nil && p.WeightKg > 0 {
			return p.WeightKg
		}
	}
	return cfg.User.WeightKg
}
