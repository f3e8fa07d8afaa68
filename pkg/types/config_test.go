package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		config  Config
		wantErr error
	}{
		{
			name:    "empty backend returns ErrBackendEmpty",
			config:  Config{Backend: "", DataDir: "/tmp/data"},
			wantErr: ErrBackendEmpty,
		},
		{
			name:    "unknown backend returns ErrBackendUnknown",
			config:  Config{Backend: "postgres", DataDir: "/tmp/data"},
			wantErr: ErrBackendUnknown,
		},
		{
			name:   "valid sqlite config",
			config: Config{Backend: "sqlite", DataDir: "/tmp/data"},
		},
		{
			name:   "sqlite with empty DataDir is valid at config level",
			config: Config{Backend: "sqlite"},
		},
		{
			name:   "all optional fields set",
			config: Config{Backend: "sqlite", Stability: StabilityUnstable, NaNPolicy: NaNPolicyLast, LogLevel: LogLevelDebug},
		},
		{
			name:    "unknown stability",
			config:  Config{Backend: "sqlite", Stability: "sorted"},
			wantErr: ErrStabilityUnknown,
		},
		{
			name:    "unknown NaN policy",
			config:  Config{Backend: "sqlite", NaNPolicy: "skip"},
			wantErr: ErrNaNPolicyUnknown,
		},
		{
			name:    "unknown log level",
			config:  Config{Backend: "sqlite", LogLevel: "trace"},
			wantErr: ErrLogLevelUnknown,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.config.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}
