package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	for _, k := range []string{"SIP_BACKEND_URL", "SIP_LISTEN_ADDR", "SIP_PRICES_CSV", "SIP_PRICES_SOURCE", "LOG_LEVEL", "TELEGRAM_BOT_TOKEN", "TELEGRAM_CHAT_ID"} {
		t.Setenv(k, "")
	}
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "http://127.0.0.1:5000", cfg.Backend.BaseURL)
	assert.Equal(t, ":5000", cfg.Server.ListenAddr)
	assert.Equal(t, "csv", cfg.Prices.Source)
	assert.Equal(t, "nifty50_closing_prices.csv", cfg.Prices.CSVPath)
	assert.Equal(t, "1y", cfg.Prices.Range)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "console", cfg.Log.Format)
	assert.False(t, cfg.TelegramEnabled())
	assert.NoError(t, cfg.Validate())
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_FileAndEnvOverride(t *testing.T) {
	path := writeConfig(t, `
backend:
  base_url: http://planner.local:8080/
prices:
  source: yahoo
  symbols: [RELIANCE.NS, TCS.NS, INFY.NS]
schedule:
  refresh_cron: "0 0 18 * * 1-5"
log:
  level: debug
`)
	t.Setenv("LOG_LEVEL", "")
	t.Setenv("SIP_BACKEND_URL", "")
	t.Setenv("SIP_PRICES_SOURCE", "")
	t.Setenv("SQLITE_PATH", "/tmp/sip.db")
	t.Setenv("SIP_LISTEN_ADDR", ":9090")

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "http://planner.local:8080", cfg.Backend.BaseURL, "trailing slash is trimmed")
	assert.Equal(t, "yahoo", cfg.Prices.Source)
	assert.Len(t, cfg.Prices.Symbols, 3)
	assert.Equal(t, "0 0 18 * * 1-5", cfg.Schedule.RefreshCron)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, "/tmp/sip.db", cfg.Database.SQLitePath)
	assert.Equal(t, ":9090", cfg.Server.ListenAddr)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_BadYAML(t *testing.T) {
	_, err := Load(writeConfig(t, "backend: [unterminated"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "none.yaml"))
	require.NoError(t, err)

	cfg.Backend.BaseURL = "ftp://nope"
	assert.Error(t, cfg.Validate())

	cfg.Backend.BaseURL = "https://ok"
	cfg.Prices.Source = "parquet"
	assert.Error(t, cfg.ValidateServer())

	cfg.Prices.Source = "yahoo"
	cfg.Prices.Symbols = []string{"ONE"}
	assert.Error(t, cfg.ValidateServer())

	cfg.Prices.Source = "csv"
	cfg.Telegram.BotToken = "token"
	assert.Error(t, cfg.ValidateServer(), "token without chat id")

	cfg.Telegram.ChatID = "42"
	assert.NoError(t, cfg.ValidateServer())
	assert.True(t, cfg.TelegramEnabled())
}
