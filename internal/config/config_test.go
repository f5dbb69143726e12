package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":8080", cfg.Server.Addr)
	require.Equal(t, "snapshot", cfg.Store.Backend)
	require.Equal(t, "info", cfg.Log.Level)
	require.Equal(t, "console", cfg.Log.Format)
}

func TestLoad_YAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
server:
  addr: ":9090"
store:
  backend: sqlite
  sqlite_path: /tmp/test.db
log:
  level: debug
  format: json
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, ":9090", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "/tmp/test.db", cfg.Store.SQLitePath)
	require.Equal(t, "debug", cfg.Log.Level)
	require.Equal(t, "json", cfg.Log.Format)
	// Unset fields keep their defaults.
	require.Equal(t, "./data/college_local.json", cfg.Store.SnapshotPath)
}

func TestLoad_MissingFileErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("COLLEGEBOT_ADDR", ":7070")
	t.Setenv("COLLEGEBOT_STORE", "sqlite")
	t.Setenv("GEMINI_API_KEY", "g-key")
	t.Setenv("OPENAI_API_KEY", "o-key")

	cfg, err := Load("")
	require.NoError(t, err)
	require.Equal(t, ":7070", cfg.Server.Addr)
	require.Equal(t, "sqlite", cfg.Store.Backend)
	require.Equal(t, "g-key", cfg.LLM.GeminiAPIKey)
	require.Equal(t, "o-key", cfg.LLM.OpenAIAPIKey)
}

// Credentials never come from the file, only from the environment.
func TestLoad_KeysIgnoredInYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `
llm:
  gemini_base_url: http://localhost:1234
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("GEMINI_API_KEY", "")

	cfg, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, "http://localhost:1234", cfg.LLM.GeminiBaseURL)
	require.Empty(t, cfg.LLM.GeminiAPIKey)
}
