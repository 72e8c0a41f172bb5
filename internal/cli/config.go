package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// defaultDatabase is used when neither flag nor config names one.
const defaultDatabase = "resegmentaciones.db"

// Config holds the CLI defaults read from a yaml file. Flags win over
// config values.
type Config struct {
	// Database is the path to the adjustments SQLite database.
	Database string `yaml:"database"`

	// PageSize is the default page size for the view command.
	// 0 means "all" (a single unbounded page).
	PageSize int `yaml:"page_size"`
}

// loadConfig reads a config file. A missing file at the default location
// is not an error; a missing file named explicitly is.
func loadConfig(path string, explicit bool) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) && !explicit {
		return cfg, nil
	}
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.PageSize < 0 {
		return cfg, fmt.Errorf("config %s: page_size must not be negative", path)
	}
	return cfg, nil
}

// applyConfig resolves the database path from flag → config → default.
func (o *RootOptions) applyConfig() error {
	path := o.Config
	explicit := path != ""
	if !explicit {
		home, err := os.UserHomeDir()
		if err != nil {
			// No home directory: skip config, flags and defaults apply.
			home = ""
		}
		path = filepath.Join(home, ".bonos.yaml")
	}

	cfg, err := loadConfig(path, explicit)
	if err != nil {
		return err
	}

	if o.Database == "" {
		o.Database = cfg.Database
	}
	if o.Database == "" {
		o.Database = defaultDatabase
	}
	o.configPageSize = cfg.PageSize
	return nil
}
