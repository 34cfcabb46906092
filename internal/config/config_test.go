package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("OUTPUT_DIR", "")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "output", cfg.OutputDir)
}

func TestLoad_EnvFile(t *testing.T) {
	// godotenv never overrides a variable that is set, even to ""
	for _, key := range []string{"LOG_LEVEL", "OUTPUT_DIR", "NOTION_API_KEY", "NOTION_PARENT_PAGE_ID"} {
		t.Setenv(key, "")
		require.NoError(t, os.Unsetenv(key))
	}

	envFile := filepath.Join(t.TempDir(), ".env")
	content := "LOG_LEVEL=debug\nOUTPUT_DIR=md\nNOTION_API_KEY=secret\nNOTION_PARENT_PAGE_ID=parent\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0644))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.LogLevel)
	assert.Equal(t, "md", cfg.OutputDir)
	assert.Equal(t, "secret", cfg.NotionAPIKey)
	assert.Equal(t, "parent", cfg.NotionParentPageID)
}

func TestLoad_EnvironmentWins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "error")

	envFile := filepath.Join(t.TempDir(), ".env")
	require.NoError(t, os.WriteFile(envFile, []byte("LOG_LEVEL=debug\n"), 0644))

	cfg, err := Load(envFile)
	require.NoError(t, err)
	assert.Equal(t, "error", cfg.LogLevel)
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name        string
		cfg         Config
		withNotion  bool
		expectError bool
	}{
		{
			name: "Markdown only",
			cfg:  Config{OutputDir: "output"},
		},
		{
			name:        "Missing output directory",
			cfg:         Config{},
			expectError: true,
		},
		{
			name:       "Notion configured",
			cfg:        Config{OutputDir: "output", NotionAPIKey: "key", NotionParentPageID: "page"},
			withNotion: true,
		},
		{
			name:        "Missing API key",
			cfg:         Config{OutputDir: "output", NotionParentPageID: "page"},
			withNotion:  true,
			expectError: true,
		},
		{
			name:        "Missing parent page ID",
			cfg:         Config{OutputDir: "output", NotionAPIKey: "key"},
			withNotion:  true,
			expectError: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate(tt.withNotion)
			if tt.expectError {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
