package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestGetEnvDurationOrDefault(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{"unset", "", 30 * time.Minute},
		{"with unit", "45m", 45 * time.Minute},
		{"compound", "168h", 168 * time.Hour},
		{"bare number is rejected", "7", 30 * time.Minute},
		{"garbage is rejected", "soon", 30 * time.Minute},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if tt.value != "" {
				t.Setenv("TEST_TTL", tt.value)
			}
			require.Equal(t, tt.want, getEnvDurationOrDefault("TEST_TTL", 30*time.Minute))
		})
	}
}

func TestLoadConfig_Defaults(t *testing.T) {
	cfg := LoadConfig()

	require.Equal(t, 30*time.Minute, cfg.AccessTokenTTL)
	require.Equal(t, 7*24*time.Hour, cfg.RefreshTokenTTL)
	require.Equal(t, "adminapi", cfg.Issuer)
	require.Equal(t, []string{"http://localhost:3000"}, cfg.AllowedOrigins)
	require.Equal(t, 8080, cfg.Port)
}

func TestSplitOrigins(t *testing.T) {
	require.Equal(t,
		[]string{"http://a.example", "http://b.example"},
		splitOrigins(" http://a.example , http://b.example ,"))
}
