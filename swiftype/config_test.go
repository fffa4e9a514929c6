package swiftype

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("SWIFTYPE_API_KEY", "env-key")
	t.Setenv("SWIFTYPE_PLATFORM_CLIENT_ID", "client-id")
	t.Setenv("SWIFTYPE_PLATFORM_CLIENT_SECRET", "client-secret")
	t.Setenv("SWIFTYPE_HOST", "search.internal:8080")
	t.Setenv("SWIFTYPE_PROTOCOL", "http")
	t.Setenv("SWIFTYPE_TIMEOUT", "15s")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)

	assert.Equal(t, "env-key", cfg.APIKey)
	assert.Equal(t, "client-id", cfg.PlatformClientID)
	assert.Equal(t, "client-secret", cfg.PlatformClientSecret)
	assert.Equal(t, 15*time.Second, cfg.Timeout)

	u, err := cfg.BaseURL()
	require.NoError(t, err)
	assert.Equal(t, "http://search.internal:8080/api/v1/", u.String())
}

func TestConfigFromEnvInvalid(t *testing.T) {
	t.Setenv("SWIFTYPE_TIMEOUT", "soon")

	_, err := ConfigFromEnv()
	require.Error(t, err)
}

func TestResolveCredentials(t *testing.T) {
	tests := []struct {
		name    string
		layers  []credentials
		want    credentials
		wantErr bool
	}{
		{
			name:   "first non-empty layer wins",
			layers: []credentials{{}, {apiKey: "client"}, {apiKey: "default"}},
			want:   credentials{apiKey: "client"},
		},
		{
			name:   "token preferred within a layer",
			layers: []credentials{{apiKey: "k", accessToken: "t"}},
			want:   credentials{accessToken: "t"},
		},
		{
			name:   "call layer key beats client token",
			layers: []credentials{{apiKey: "call"}, {accessToken: "client"}},
			want:   credentials{apiKey: "call"},
		},
		{
			name:    "nothing configured",
			layers:  []credentials{{}, {}, {}},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := resolveCredentials(tt.layers...)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrNoCredentials)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}
