// Package paths decides where polycore keeps its config.yaml and its tally
// database.
//
// The config directory comes from the --config-dir flag, then
// POLYCORE_CONFIG_DIR, then the platform's config home. The data directory
// comes from the --data-dir flag, then data_dir in config.yaml, then
// POLYCORE_DATA_DIR, then .polycore-db under the working directory. A
// relative data_dir in config.yaml is taken relative to the config
// directory, so the file means the same thing from any working directory.
package paths

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
)

const appName = "polycore"

// DefaultDataDirName is the data directory created under the working
// directory when nothing else names one.
const DefaultDataDirName = ".polycore-db"

// Environment variable names for directory overrides.
const (
	EnvConfigDir = "POLYCORE_CONFIG_DIR"
	EnvDataDir   = "POLYCORE_DATA_DIR"
)

// Dirs is a resolved pair of absolute directories.
type Dirs struct {
	Config string
	Data   string
}

// Resolver resolves Dirs against an environment. The zero value is not
// usable; NewResolver returns one bound to the running process.
type Resolver struct {
	GOOS          string
	Getenv        func(string) string
	Getwd         func() (string, error)
	UserHomeDir   func() (string, error)
	UserConfigDir func() (string, error)
}

// NewResolver returns a Resolver reading the process environment.
func NewResolver() *Resolver {
	return &Resolver{
		GOOS:          runtime.GOOS,
		Getenv:        os.Getenv,
		Getwd:         os.Getwd,
		UserHomeDir:   os.UserHomeDir,
		UserConfigDir: os.UserConfigDir,
	}
}

// Resolve returns both directories. configured is called once with the
// resolved config directory and returns the data_dir value found there
// ("" when unset); its error aborts resolution. It runs even when dataFlag
// is set, so the caller can load the rest of its configuration in the same
// step.
func (r *Resolver) Resolve(configFlag, dataFlag string, configured func(configDir string) (string, error)) (Dirs, error) {
	configDir, err := r.ConfigDir(configFlag)
	if err != nil {
		return Dirs{}, err
	}

	var fromConfig string
	if configured != nil {
		if fromConfig, err = configured(configDir); err != nil {
			return Dirs{}, err
		}
	}

	dataDir, err := r.dataDir(dataFlag, configDir, fromConfig)
	if err != nil {
		return Dirs{}, err
	}
	return Dirs{Config: configDir, Data: dataDir}, nil
}

// ConfigDir resolves the config directory alone.
func (r *Resolver) ConfigDir(flag string) (string, error) {
	if flag != "" {
		return filepath.Abs(flag)
	}
	if env := r.Getenv(EnvConfigDir); env != "" {
		return filepath.Abs(env)
	}
	return r.platformConfigDir()
}

func (r *Resolver) dataDir(flag, configDir, fromConfig string) (string, error) {
	switch {
	case flag != "":
		return filepath.Abs(flag)
	case fromConfig != "":
		if filepath.IsAbs(fromConfig) {
			return filepath.Clean(fromConfig), nil
		}
		return filepath.Join(configDir, fromConfig), nil
	}
	if env := r.Getenv(EnvDataDir); env != "" {
		return filepath.Abs(env)
	}
	cwd, err := r.Getwd()
	if err != nil {
		return "", fmt.Errorf("working directory: %w", err)
	}
	return filepath.Join(cwd, DefaultDataDirName), nil
}

// platformConfigDir is $XDG_CONFIG_HOME/polycore (or ~/.config/polycore) on
// Linux and os.UserConfigDir()/polycore elsewhere.
func (r *Resolver) platformConfigDir() (string, error) {
	if r.GOOS == "linux" {
		if xdg := r.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			return filepath.Join(xdg, appName), nil
		}
		home, err := r.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home directory: %w", err)
		}
		return filepath.Join(home, ".config", appName), nil
	}
	base, err := r.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("user config directory: %w", err)
	}
	return filepath.Join(base, appName), nil
}
