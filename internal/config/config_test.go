package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetEnv_KeyValue(t *testing.T) {
	t.Setenv("xyz", "abc")

	result := getEnv("xyz", "development")

	expected := "abc"

	if result != expected {
		t.Errorf(`getEnv("xyz", "development") = %q; expected: %q`, result, expected)
	}
}

func TestGetEnv_FallbackValue(t *testing.T) {
	// set test env var to empty to trigger fallback
	t.Setenv("xyz", "")

	result := getEnv("xyz", "development")

	expected := "development"

	if result != expected {
		t.Errorf(`getEnv("xyz", "development") = %q; expected: %q`, result, expected)
	}
}

func TestLoadEnv_MissingFileIsFine(t *testing.T) {
	err := loadEnv(filepath.Join(t.TempDir(), "does-not-exist.env"))
	require.NoError(t, err)
}

func TestLoadSites_NoFileConfigured(t *testing.T) {
	prev := AppConfig.WordPress.SitesFile
	AppConfig.WordPress.SitesFile = ""
	defer func() { AppConfig.WordPress.SitesFile = prev }()

	sites, err := LoadSites()
	require.NoError(t, err)
	assert.Nil(t, sites)
}

func TestLoadSites_ParsesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	body := `[
		{"id":"main","url":"https://example.com","username":"admin","appPassword":"xxxx yyyy"},
		{"id":"blog","url":"https://blog.example.com","username":"editor","appPassword":"zzzz","authMethod":"app-password"}
	]`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	prev := AppConfig.WordPress.SitesFile
	AppConfig.WordPress.SitesFile = path
	defer func() { AppConfig.WordPress.SitesFile = prev }()

	sites, err := LoadSites()
	require.NoError(t, err)
	require.Len(t, sites, 2)
	assert.Equal(t, "main", sites[0].ID)
	assert.Equal(t, "https://blog.example.com", sites[1].URL)
}

func TestLoadSites_RejectsEntryWithoutID(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sites.json")
	require.NoError(t, os.WriteFile(path, []byte(`[{"url":"https://example.com"}]`), 0o600))

	prev := AppConfig.WordPress.SitesFile
	AppConfig.WordPress.SitesFile = path
	defer func() { AppConfig.WordPress.SitesFile = prev }()

	_, err := LoadSites()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "needs id and url")
}
