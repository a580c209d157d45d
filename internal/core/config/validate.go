package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/hay-kot/criterio"

	"github.com/colonyops/todo/internal/core/styles"
)

// Validate checks that the configuration is valid. Field problems are
// reported together as criterio.FieldErrors.
func (c *Config) Validate() error {
	var errs criterio.FieldErrorsBuilder

	if c.DataDir == "" {
		errs = errs.Append("data_dir", fmt.Errorf("data directory cannot be empty"))
	}
	if !c.Backend.IsValid() {
		errs = errs.Append("backend", fmt.Errorf("unknown backend %q (want %s or %s)", c.Backend, BackendSQLite, BackendCSV))
	}
	if _, ok := styles.GetTheme(c.Theme); !ok {
		errs = errs.Append("theme", fmt.Errorf("unknown theme %q", c.Theme))
	}
	if c.SQLite.MaxOpenConns < 1 {
		errs = errs.Append("sqlite.max_open_conns", fmt.Errorf("must be at least 1"))
	}
	if c.SQLite.MaxIdleConns < 0 {
		errs = errs.Append("sqlite.max_idle_conns", fmt.Errorf("cannot be negative"))
	}
	if c.SQLite.BusyTimeout < 0 {
		errs = errs.Append("sqlite.busy_timeout", fmt.Errorf("cannot be negative"))
	}

	return errs.ToError()
}

// ValidateDeep runs Validate and then checks the filesystem: the config
// file and the store locations must be usable. An empty configPath skips
// the config file check.
func (c *Config) ValidateDeep(configPath string) error {
	if err := c.Validate(); err != nil {
		return err
	}

	return criterio.ValidateStruct(
		validateConfigFile(configPath),
		criterio.Run("data_dir", c.DataDir, isDirectoryOrNotExist),
		criterio.Run("csv.path", c.CSV.Path, isFileOrNotExist),
		criterio.Run("sqlite.dsn", c.SQLite.DSN, isDSNUsable),
	)
}

func validateConfigFile(configPath string) error {
	if configPath == "" {
		return nil
	}

	info, err := os.Stat(configPath)
	if os.IsNotExist(err) {
		return nil // not found is fine, using defaults
	}
	if err != nil {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("cannot access: %w", err))
	}
	if info.IsDir() {
		return criterio.NewFieldErrors("config_file", fmt.Errorf("%s is a directory, not a file", configPath))
	}
	return nil
}

// isDirectoryOrNotExist validates that a path is a directory or doesn't exist.
func isDirectoryOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil // will be created
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("exists but is not a directory")
	}
	return nil
}

// isFileOrNotExist validates that a path is a regular file or doesn't exist
// and that its parent is not a file.
func isFileOrNotExist(path string) error {
	if path == "" {
		return nil
	}
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return isDirectoryOrNotExist(filepath.Dir(path))
	}
	if err != nil {
		return fmt.Errorf("cannot access: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("exists but is a directory")
	}
	return nil
}

func isDSNUsable(dsn string) error {
	if strings.HasPrefix(dsn, "file:") {
		return nil
	}
	return isFileOrNotExist(dsn)
}
