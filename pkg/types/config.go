package types

import "errors"

// Config holds backend selection and ordering defaults for the polycore CLI
// and store.
type Config struct {
	Backend   string `json:"backend" yaml:"backend"`
	DataDir   string `json:"data_dir" yaml:"data_dir"`
	Stability string `json:"stability,omitempty" yaml:"stability,omitempty"`
	NaNPolicy string `json:"nan_policy,omitempty" yaml:"nan_policy,omitempty"`
	LogLevel  string `json:"log_level,omitempty" yaml:"log_level,omitempty"`
}

// Supported backend names.
const (
	BackendSQLite = "sqlite"
)

// Sort stability values.
const (
	StabilityStable   = "stable"
	StabilityUnstable = "unstable"
)

// NaN policies for partial-order sorts. NaNPolicyError refuses to resolve
// incomparable pairs.
const (
	NaNPolicyError = "error"
	NaNPolicyLast  = "last"
	NaNPolicyFirst = "first"
)

// Log levels accepted by the CLI.
const (
	LogLevelDebug = "debug"
	LogLevelInfo  = "info"
	LogLevelWarn  = "warn"
	LogLevelError = "error"
)

// Config validation errors.
var (
	ErrBackendEmpty     = errors.New("backend must not be empty")
	ErrBackendUnknown   = errors.New("unknown backend")
	ErrStabilityUnknown = errors.New("unknown sort stability")
	ErrNaNPolicyUnknown = errors.New("unknown NaN policy")
	ErrLogLevelUnknown  = errors.New("unknown log level")
)

var knownBackends = map[string]bool{
	BackendSQLite: true,
}

var knownStabilities = map[string]bool{
	StabilityStable:   true,
	StabilityUnstable: true,
}

var knownNaNPolicies = map[string]bool{
	NaNPolicyError: true,
	NaNPolicyLast:  true,
	NaNPolicyFirst: true,
}

var knownLogLevels = map[string]bool{
	LogLevelDebug: true,
	LogLevelInfo:  true,
	LogLevelWarn:  true,
	LogLevelError: true,
}

// Validate checks that the Config is well-formed. Empty optional fields are
// accepted and resolved by the caller's defaults. It returns a sentinel error
// from this package on failure.
func (c Config) Validate() error {
	if c.Backend == "" {
		return ErrBackendEmpty
	}
	if !knownBackends[c.Backend] {
		return ErrBackendUnknown
	}
	if c.Stability != "" && !knownStabilities[c.Stability] {
		return ErrStabilityUnknown
	}
	if c.NaNPolicy != "" && !knownNaNPolicies[c.NaNPolicy] {
		return ErrNaNPolicyUnknown
	}
	if c.LogLevel != "" && !knownLogLevels[c.LogLevel] {
		return ErrLogLevelUnknown
	}
	return nil
}
