package api

import (
	"testing"

	"github.com/stretchr/testify/require"
	"go.temporal.io/sdk/client"
)

func TestLoadConfigDefaults(t *testing.T) {
	for _, key := range []string{"PORT", "POSTGRES_DSN", "TEMPORAL_ADDRESS", "TEMPORAL_NAMESPACE", "TEMPORAL_DISABLED"} {
		t.Setenv(key, "")
	}

	cfg := LoadConfig()
	require.Equal(t, "8080", cfg.Port)
	require.Empty(t, cfg.PostgresDSN)
	require.Equal(t, client.DefaultHostPort, cfg.TemporalAddress)
	require.Equal(t, client.DefaultNamespace, cfg.TemporalNamespace)
	require.False(t, cfg.TemporalDisabled)
}

func TestLoadConfigTemporalDisabled(t *testing.T) {
	for _, value := range []string{"1", "true", "YES"} {
		t.Setenv("TEMPORAL_DISABLED", value)
		require.True(t, LoadConfig().TemporalDisabled, value)
	}
	t.Setenv("TEMPORAL_DISABLED", "0")
	require.False(t, LoadConfig().TemporalDisabled)
}
