package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFiles(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, body := range files {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
	}
	return dir
}

func TestDiscoverMigrations_Sorted(t *testing.T) {
	dir := writeFiles(t, map[string]string{
		"002_branches.sql": "SELECT 2;",
		"001_schema.sql":   "SELECT 1;",
		"README.md":        "not a migration",
	})

	got, err := discoverMigrations(dir)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "001", got[0].version)
	assert.Equal(t, "002_branches.sql", got[1].filename)
	assert.Len(t, got[0].checksum, 64)
	assert.NotEqual(t, got[0].checksum, got[1].checksum)
}

func TestDiscoverMigrations_Rejects(t *testing.T) {
	_, err := discoverMigrations(writeFiles(t, map[string]string{
		"001_a.sql": "SELECT 1;",
		"001_b.sql": "SELECT 1;",
	}))
	assert.ErrorContains(t, err, "duplicate version 001")

	_, err = discoverMigrations(writeFiles(t, map[string]string{"schema.sql": ""}))
	assert.ErrorContains(t, err, "invalid migration filename")

	_, err = discoverMigrations(filepath.Join(t.TempDir(), "missing"))
	assert.Error(t, err)
}
