package config_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marishandmade/storefront/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "data/storefront-v4.json", cfg.SnapshotPath)
	assert.Equal(t, "migrations", cfg.MigrationsPath)
	assert.Equal(t, 2*time.Second, cfg.SimulatedPaymentDelay)
	assert.False(t, cfg.SupabaseConfigured())
	assert.False(t, cfg.EmailJSConfigured())
}

func TestLoad_FromEnvironment(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("SNAPSHOT_PATH", "/tmp/store.json")
	t.Setenv("SIMULATED_PAYMENT_DELAY", "500ms")

	cfg, err := config.Load()
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.Port)
	assert.Equal(t, "/tmp/store.json", cfg.SnapshotPath)
	assert.Equal(t, 500*time.Millisecond, cfg.SimulatedPaymentDelay)
}

func TestSupabaseConfigured(t *testing.T) {
	tests := []struct {
		name string
		url  string
		key  string
		want bool
	}{
		{name: "both_present", url: "https://proj.supabase.co", key: "anon", want: true},
		{name: "missing_key", url: "https://proj.supabase.co", key: "", want: false},
		{name: "missing_url", url: "", key: "anon", want: false},
		{name: "neither", url: "", key: "", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Config{SupabaseURL: tt.url, SupabaseAnonKey: tt.key}
			assert.Equal(t, tt.want, cfg.SupabaseConfigured())
		})
	}
}

func TestEmailJSConfigured(t *testing.T) {
	cfg := config.Config{
		EmailJSServiceID:  "service_1",
		EmailJSTemplateID: "template_1",
		EmailJSPublicKey:  "key",
	}
	assert.True(t, cfg.EmailJSConfigured())

	cfg.EmailJSPublicKey = ""
	assert.False(t, cfg.EmailJSConfigured())
}
