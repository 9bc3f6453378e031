package config_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"
	"time"

	"storefront-seeder/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "seed.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("SEED_RANDOM_SEED", "")
	cfg, err := config.Load("")
	require.NoError(t, err)

	assert.Equal(t, 0.12, cfg.Customers.LoyalShare)
	assert.Equal(t, 0.38, cfg.Customers.EngagedShare)
	assert.Len(t, cfg.Customers.YearlyTargets, 4)
	assert.Equal(t, 100, cfg.Persistence.BatchSize)
	assert.Equal(t, 50*time.Millisecond, cfg.Customers.CreationDelay)

	start, err := cfg.StartDate()
	require.NoError(t, err)
	assert.Equal(t, time.January, start.Month())
	assert.Equal(t, 2022, start.Year())
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	t.Setenv("SEED_RANDOM_SEED", "")
	path := writeConfig(t, `
run:
  start_date: 2023-01-01
  end_date: 2023-03-31
  seed: 1234
customers:
  yearly_targets:
    - {min: 200, max: 200}
  creation_delay: 0s
persistence:
  batch_size: 25
`)
	cfg, err := config.Load(path)
	require.NoError(t, err)

	assert.Equal(t, int64(1234), cfg.Run.Seed)
	assert.Equal(t, []config.TargetRange{{Min: 200, Max: 200}}, cfg.Customers.YearlyTargets)
	assert.Equal(t, time.Duration(0), cfg.Customers.CreationDelay)
	assert.Equal(t, 25, cfg.Persistence.BatchSize)
	assert.Equal(t, "customer", cfg.Customers.Role, "unset fields keep their defaults")
}

func TestLoad_SeedFromEnvironment(t *testing.T) {
	t.Setenv("SEED_RANDOM_SEED", "77")
	cfg, err := config.Load("")
	require.NoError(t, err)
	assert.Equal(t, int64(77), cfg.Run.Seed)

	t.Setenv("SEED_RANDOM_SEED", "abc")
	_, err = config.Load("")
	assert.ErrorIs(t, err, config.ErrInvalidConfig)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(c *config.Config)
	}{
		{"end before start", func(c *config.Config) { c.Run.EndDate = "2021-12-31" }},
		{"bad date", func(c *config.Config) { c.Run.StartDate = "01/01/2022" }},
		{"shares above one", func(c *config.Config) { c.Customers.LoyalShare = 0.7; c.Customers.EngagedShare = 0.5 }},
		{"negative share", func(c *config.Config) { c.Customers.LoyalShare = -0.1 }},
		{"no years", func(c *config.Config) { c.Customers.YearlyTargets = nil }},
		{"inverted range", func(c *config.Config) { c.Customers.YearlyTargets[0] = config.TargetRange{Min: 10, Max: 5} }},
		{"zero batch", func(c *config.Config) { c.Persistence.BatchSize = 0 }},
		{"no role", func(c *config.Config) { c.Customers.Role = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := config.Default()
			tt.mutate(cfg)
			assert.ErrorIs(t, cfg.Validate(), config.ErrInvalidConfig)
		})
	}

	assert.NoError(t, config.Default().Validate())
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := config.Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestSchema_UsesYAMLNames(t *testing.T) {
	raw, err := json.Marshal(config.Schema())
	require.NoError(t, err)
	assert.Contains(t, string(raw), "yearly_targets")
	assert.Contains(t, string(raw), "batch_size")
	assert.NotContains(t, string(raw), "YearlyTargets")
}

func TestSchema_DurationsAreStrings(t *testing.T) {
	s := config.Schema()
	customers, ok := s.Properties.Get("customers")
	require.True(t, ok)
	delay, ok := customers.Properties.Get("creation_delay")
	require.True(t, ok)
	assert.Equal(t, "string", delay.Type)

	persistence, ok := s.Properties.Get("persistence")
	require.True(t, ok)
	delay, ok = persistence.Properties.Get("cleanup_delay")
	require.True(t, ok)
	assert.Equal(t, "string", delay.Type)
}
