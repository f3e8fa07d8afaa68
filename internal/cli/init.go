package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/mesh-intelligence/polycore/internal/sqlite"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

// configFile holds the structure written to config.yaml.
type configFile struct {
	Backend   string `yaml:"backend"`
	DataDir   string `yaml:"data_dir,omitempty"`
	Stability string `yaml:"stability"`
	NaNPolicy string `yaml:"nan_policy"`
	LogLevel  string `yaml:"log_level"`
}

func newInitCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Initialize polycore configuration and storage",
		Long:  "Create the configuration directory with a default config.yaml, then create the tally database.",
		Args:  cobra.NoArgs,
		RunE:  runInit,
	}
}

func runInit(cmd *cobra.Command, args []string) error {
	s, err := loadSession()
	if err != nil {
		return err
	}
	defer s.close()

	if err := os.MkdirAll(s.configDir, 0o755); err != nil {
		return systemError("create config directory: %w", err)
	}
	configPath := filepath.Join(s.configDir, configFileExt)
	// Only an explicit --data-dir is recorded in config.yaml.
	var pinned string
	if flags.dataDir != "" {
		pinned = s.cfg.DataDir
	}
	written, err := writeConfigIfMissing(configPath, s.cfg, pinned)
	if err != nil {
		return systemError("write config: %w", err)
	}

	store := sqlite.NewBackend(s.logger)
	if err := store.Attach(s.cfg); err != nil {
		return systemError("initialize storage: %w", err)
	}
	if err := store.Detach(); err != nil {
		return systemError("finalize storage: %w", err)
	}

	out := cmd.OutOrStdout()
	if written {
		fmt.Fprintf(out, "wrote %s\n", configPath)
	}
	fmt.Fprintf(out, "polycore initialized (data: %s)\n", s.cfg.DataDir)
	return nil
}

// writeConfigIfMissing creates config.yaml from cfg if the file does not
// exist, recording dataDir when it is non-empty. It reports whether a file
// was written.
func writeConfigIfMissing(path string, cfg types.Config, dataDir string) (bool, error) {
	if _, err := os.Stat(path); err == nil {
		return false, nil
	}

	data, err := yaml.Marshal(&configFile{
		Backend:   cfg.Backend,
		DataDir:   dataDir,
		Stability: cfg.Stability,
		NaNPolicy: cfg.NaNPolicy,
		LogLevel:  cfg.LogLevel,
	})
	if err != nil {
		return false, fmt.Errorf("marshal config: %w", err)
	}
	return true, os.WriteFile(path, data, 0o644)
}
