package configutil

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

type testConfig struct {
	BaseUrl     string `json:"base_url"`
	Concurrency int    `json:"concurrency"`
}

func TestReadConfigMergesLocal(t *testing.T) {
	dir := t.TempDir()
	err := os.WriteFile(filepath.Join(dir, "config.json5"), []byte(`{
		// trailing commas and comments are fine
		base_url: "https://student.lpnu.ua",
		concurrency: 2,
	}`), 0600)
	require.NoError(t, err)
	err = os.WriteFile(filepath.Join(dir, "config.local.json5"), []byte(`{concurrency: 8}`), 0600)
	require.NoError(t, err)

	cfg, err := ReadConfig[testConfig](filepath.Join(dir, "config.json5"))
	require.NoError(t, err)
	require.Equal(t, "https://student.lpnu.ua", cfg.BaseUrl)
	require.Equal(t, 8, cfg.Concurrency)
}

func TestReadConfigMissing(t *testing.T) {
	_, err := ReadConfig[testConfig](filepath.Join(t.TempDir(), "config.json5"))
	require.ErrorIs(t, err, os.ErrNotExist)
}

func TestReadConfigEmptyFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json5")
	require.NoError(t, os.WriteFile(path, nil, 0600))

	cfg, err := ReadConfig[testConfig](path)
	require.NoError(t, err)
	require.Equal(t, testConfig{}, cfg)
}
