package config

import (
	"os"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	origArgs := os.Args
	t.Cleanup(func() { os.Args = origArgs })

	tests := []struct {
		name     string
		args     []string
		base     Config
		expected Config
		wantErr  bool
	}{
		{
			name: "all flags",
			args: []string{"cmd",
				"-primary-region", "us-west-1", "-secondary-region", "eu-north-1",
				"-pool", "pool", "-primary-topic", "arn:p", "-secondary-topic", "arn:s",
				"-prefix", "/app", "-call-timeout", "4s", "-max-attempts", "6",
				"-deadline=2m", "-concurrency", "3", "-aws-endpoint", "http://localhost:4566",
				"-log-level", "debug",
			},
			expected: Config{
				PrimaryRegion:     "us-west-1",
				SecondaryRegion:   "eu-north-1",
				UserPoolID:        "pool",
				PrimaryTopicARN:   "arn:p",
				SecondaryTopicARN: "arn:s",
				ParameterPrefix:   "/app",
				CallTimeout:       4 * time.Second,
				MaxAttempts:       6,
				RunDeadline:       2 * time.Minute,
				NotifyConcurrency: 3,
				AWSBaseEndpoint:   "http://localhost:4566",
				LogLevel:          "debug",
			},
		},
		{
			name:     "unknown flags and secrets are ignored",
			args:     []string{"cmd", "-once", "-client-secret", "x", "-pool", "p"},
			base:     Config{ClientSecret: "kept"},
			expected: Config{UserPoolID: "p", ClientSecret: "kept"},
		},
		{
			name:    "invalid duration",
			args:    []string{"cmd", "-call-timeout", "fast"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			os.Args = tt.args

			config := tt.base
			err := parseFlags(&config)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Empty(t, cmp.Diff(tt.expected, config))
		})
	}
}
