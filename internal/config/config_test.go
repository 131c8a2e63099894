package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, FileName)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Empty(t, cfg.Input)
	assert.Empty(t, cfg.Output)
	assert.False(t, cfg.Strict)
}

func TestLoadValidConfig(t *testing.T) {
	dir := t.TempDir()
	path := writeConfig(t, dir, `{
		"input": "docs/openapi/discovery_api.openapi.json",
		"output": "lib/api/generated",
		"serviceClass": "DiscoveryGeneratedApi",
		"source": "docs/openapi/discovery_api.openapi.json",
		"strict": true
	}`)

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "docs/openapi/discovery_api.openapi.json"), cfg.Input)
	assert.Equal(t, filepath.Join(dir, "lib/api/generated"), cfg.Output)
	assert.Equal(t, "DiscoveryGeneratedApi", cfg.ServiceClass)
	assert.Equal(t, "docs/openapi/discovery_api.openapi.json", cfg.Source, "source is a label, not resolved")
	assert.True(t, cfg.Strict)
	assert.NoError(t, cfg.Validate())
}

func TestLoadAbsolutePathsKept(t *testing.T) {
	dir := t.TempDir()
	abs := filepath.Join(t.TempDir(), "api.json")
	path := writeConfig(t, dir, `{"input": "`+filepath.ToSlash(abs)+`"}`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.ToSlash(abs), filepath.ToSlash(cfg.Input))
	assert.Empty(t, cfg.Output)
}

func TestLoadRejectsUnknownMembers(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{"input": "a.json", "outdir": "x"}`)
	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoadInvalidJSON(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{"input": `)
	_, err := Load(path)
	assert.ErrorContains(t, err, "failed to parse config file")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), FileName))
	assert.ErrorContains(t, err, "failed to read config file")
}

func TestLoadDefersFieldValidation(t *testing.T) {
	path := writeConfig(t, t.TempDir(), `{"input": "api.json", "output": "out", "serviceClass": "my-api"}`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.ErrorContains(t, cfg.Validate(), "not a valid Dart class name")

	cfg.ServiceClass = "MyApi"
	assert.NoError(t, cfg.Validate())
}

func TestDiscover(t *testing.T) {
	dir := t.TempDir()
	assert.Equal(t, "", Discover(dir))

	path := writeConfig(t, dir, `{}`)
	assert.Equal(t, path, Discover(dir))
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name string
		cfg  Config
		want error
	}{
		{"missing input", Config{Output: "out"}, ErrMissingInput},
		{"missing output", Config{Input: "api.json"}, ErrMissingOutput},
		{"ok", Config{Input: "api.json", Output: "out"}, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.want == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.want)
		})
	}

	same := Config{Input: "api.json", Output: "./api.json"}
	assert.ErrorContains(t, same.Validate(), "not the input document")
}

func TestValidateDetailed(t *testing.T) {
	r := (&Config{Input: "api.yaml", Output: "out"}).ValidateDetailed()
	assert.True(t, r.IsValid())
	require.Len(t, r.Warnings, 1)
	assert.Contains(t, r.Warnings[0], `".yaml"`)

	r = (&Config{ServiceClass: "1Api"}).ValidateDetailed()
	assert.False(t, r.IsValid())
}
