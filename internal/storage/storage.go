package storage

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/misterclayt0n/formcoach/internal/config"
	"github.com/sirupsen/logrus"
	_ "github.com/tursodatabase/libsql-client-go/libsql"
	_ "modernc.org/sqlite"
)

// Timestamps are stored in UTC with a fixed width so they sort as text.
const timeLayout = "2006-01-02T15:04:05.000000000Z07:00"

type Storage struct {
	DB *sql.DB
}

func formatTime(t time.Time) string {
	return t.UTC().Format(timeLayout)
}

func parseTime(s string) time.Time {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		// Rows imported from older dumps may use plain RFC3339.
		t, _ = time.Parse(time.RFC3339Nano, s)
	}
	return t
}

// driverFor picks the database/sql driver for a connection string: remote libsql
// URLs go to the libsql client, everything else is a local SQLite file.
func driverFor(url string) string {
	for _, prefix := range []string{"libsql://", "https://", "http://", "wss://", "ws://"} {
		if strings.HasPrefix(url, prefix) {
			return "libsql"
		}
	}
	return "sqlite"
}

// Open connects to url and brings the schema up to date.
func Open(url string) (*Storage, error) {
	driver := driverFor(url)
	db, err := sql.Open(driver, url)
	if err != nil {
		return nil, fmt.Errorf("failed to open db %s: %w", url, err)
	}

	if driver == "sqlite" {
		// A single connection keeps SQLite from reporting SQLITE_BUSY between our own statements.
		db.SetMaxOpenConns(1)
	}

	st := &Storage{DB: db}
	if err := st.MigrateUp(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	logrus.WithField("driver", driver).Debug("database ready")
	return st, nil
}

// NewStorage opens the database configured in cfg, defaulting to a file in the config directory.
func NewStorage(cfg *config.Config) (*Storage, error) {
	url := cfg.DB.ConnectionString
	if url == "" {
		path, err := DefaultDBPath()
		if err != nil {
			return nil, err
		}
		url = path
	}
	return Open(url)
}

// DefaultDBPath returns ~/.config/formcoach/formcoach.db, creating the directory.
func DefaultDBPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	dir := filepath.Join(home, ".config", "formcoach")
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", err
	}
	return filepath.Join(dir, "formcoach.db"), nil
}

func (s *Storage) Close() error {
	return s.DB.Close()
}
