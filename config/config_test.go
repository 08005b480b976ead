package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spreadview.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoadConfigurationDefaults(t *testing.T) {
	cfg, err := LoadConfiguration("")
	require.NoError(t, err)
	require.Equal(t, Default(), cfg)
}

func TestLoadConfigurationOverrides(t *testing.T) {
	path := writeConfig(t, `
version: 1
repository:
  timeout: 5s
  user_agent: islandora-bot
server:
  addr: ":9000"
logging:
  level: debug
`)
	cfg, err := LoadConfiguration(path)
	require.NoError(t, err)
	require.Equal(t, 5*time.Second, cfg.Repository.Timeout)
	require.Equal(t, "islandora-bot", cfg.Repository.UserAgent)
	require.Equal(t, ":9000", cfg.Server.Addr)
	require.Equal(t, "debug", cfg.Logging.Level)
	// untouched sections keep their defaults
	require.Equal(t, "markdown", cfg.Export.Format)
	require.Equal(t, 60*time.Second, cfg.Server.WriteTimeout)
}

func TestLoadConfigurationRejectsUnknownKeys(t *testing.T) {
	path := writeConfig(t, "version: 1\nbogus: true\n")
	_, err := LoadConfiguration(path)
	require.ErrorContains(t, err, "failed to decode")
}

func TestLoadConfigurationValidates(t *testing.T) {
	// version: 2 will fail validation (validate:"eq=1").
	_, err := LoadConfiguration(writeConfig(t, "version: 2\n"))
	require.ErrorContains(t, err, "not valid")

	_, err = LoadConfiguration(writeConfig(t, "version: 1\nlogging:\n  level: loud\n"))
	require.ErrorContains(t, err, "not valid")

	_, err = LoadConfiguration(writeConfig(t, "version: 1\nexport:\n  format: docx\n"))
	require.ErrorContains(t, err, "not valid")
}

func TestLoadConfigurationMissingFile(t *testing.T) {
	_, err := LoadConfiguration(filepath.Join(t.TempDir(), "absent.yaml"))
	require.ErrorContains(t, err, "failed to read")
}

func TestPrepareNone(t *testing.T) {
	conf := LoggingConfig{Level: "none"}
	log := conf.Prepare()
	require.False(t, log.Core().Enabled(0))
}
