package cli

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/spf13/viper"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/polycore/internal/paths"
	"github.com/mesh-intelligence/polycore/pkg/types"
)

const (
	configFileName = "config"
	configFileType = "yaml"
	configFileExt  = "config.yaml"

	cfgKeyBackend   = "backend"
	cfgKeyDataDir   = "data_dir"
	cfgKeyStability = "stability"
	cfgKeyNaNPolicy = "nan_policy"
	cfgKeyLogLevel  = "log_level"

	envPrefix = "POLYCORE"
)

// session is the resolved configuration and logger for one command run.
type session struct {
	configDir string
	cfg       types.Config
	logger    *zap.Logger
}

// close flushes the logger. Sync reports an error on console descriptors
// such as stderr, which is not worth surfacing after a command finishes.
func (s *session) close() {
	_ = s.logger.Sync()
}

// loadConfig reads config.yaml from configDir using Viper. A missing file is
// not an error; defaults apply. Stability, NaN policy and log level can also
// come from POLYCORE_STABILITY, POLYCORE_NAN_POLICY and POLYCORE_LOG_LEVEL.
func loadConfig(configDir string) (*viper.Viper, error) {
	v := viper.New()
	v.SetDefault(cfgKeyBackend, types.BackendSQLite)
	v.SetDefault(cfgKeyStability, types.StabilityStable)
	v.SetDefault(cfgKeyNaNPolicy, types.NaNPolicyError)
	v.SetDefault(cfgKeyLogLevel, types.LogLevelInfo)
	v.SetConfigName(configFileName)
	v.SetConfigType(configFileType)
	v.AddConfigPath(configDir)

	v.SetEnvPrefix(envPrefix)
	for _, key := range []string{cfgKeyStability, cfgKeyNaNPolicy, cfgKeyLogLevel} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("bind env %s: %w", key, err)
		}
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return v, nil
		}
		return nil, fmt.Errorf("read config: %w", err)
	}
	return v, nil
}

// loadSession resolves directories, reads config.yaml, validates it and
// builds the logger.
func loadSession() (*session, error) {
	var v *viper.Viper
	dirs, err := paths.NewResolver().Resolve(flags.configDir, flags.dataDir, func(configDir string) (string, error) {
		var err error
		if v, err = loadConfig(configDir); err != nil {
			return "", err
		}
		return v.GetString(cfgKeyDataDir), nil
	})
	if err != nil {
		return nil, systemError("resolve directories: %w", err)
	}
	configDir, dataDir := dirs.Config, dirs.Data

	cfg := types.Config{
		Backend:   v.GetString(cfgKeyBackend),
		DataDir:   dataDir,
		Stability: v.GetString(cfgKeyStability),
		NaNPolicy: v.GetString(cfgKeyNaNPolicy),
		LogLevel:  v.GetString(cfgKeyLogLevel),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", filepath.Join(configDir, configFileExt), err)
	}

	logger, err := newLogger(cfg.LogLevel, flags.verbose)
	if err != nil {
		return nil, systemError("build logger: %w", err)
	}
	logger.Debug("config loaded",
		zap.String("config_dir", configDir),
		zap.String("data_dir", dataDir),
		zap.String("stability", cfg.Stability),
		zap.String("nan_policy", cfg.NaNPolicy))

	return &session{configDir: configDir, cfg: cfg, logger: logger}, nil
}
