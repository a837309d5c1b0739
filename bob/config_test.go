package bob

import (
	"fmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestValidateDefaultRuntimeConfig(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	require.NoError(t, structValidator.Struct(cfg))

	cfg.DiscordCustomStatus = strings.Repeat("a", 129)
	require.Error(t, structValidator.Struct(cfg))
}

func TestValidateDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	// token and application ID have no defaults
	require.Error(t, structValidator.Struct(cfg))

	cfg.Discord.Token = "token"
	cfg.Discord.ApplicationID = "12345"
	require.NoError(t, structValidator.Struct(cfg))

	cfg.DatabaseType = "mysql"
	assert.Error(t, structValidator.Struct(cfg))
}

func TestValidateConfig_WebhookServer(t *testing.T) {
	cfg := DefaultTestConfig(t)
	cfg.Discord.WebhookServer.Enabled = true
	cfg.Discord.WebhookServer.PublicKey = ""
	require.Error(t, structValidator.Struct(cfg))

	publicKey, _ := generateDiscordKey(t)
	cfg.Discord.WebhookServer.PublicKey = publicKey
	require.NoError(t, structValidator.Struct(cfg))
}

func TestValidateConfig_SessionMaxAge(t *testing.T) {
	cfg := DefaultTestConfig(t)
	cfg.API.SessionMaxAge = time.Minute
	require.Error(t, structValidator.Struct(cfg))

	cfg.API.SessionMaxAge = 48 * time.Hour
	require.Error(t, structValidator.Struct(cfg))
}

// DefaultTestConfig returns a config using a sqlite database in a temp
// directory, with quiet loggers.
func DefaultTestConfig(t testing.TB) *Config {
	t.Helper()
	tmpdir := t.TempDir()
	cfg := DefaultConfig()

	dbName := strings.ReplaceAll(t.Name(), "/", "_")
	cfg.DatabaseType = dbTypeSQLite
	cfg.Database = filepath.Join(tmpdir, fmt.Sprintf("%s.sqlite3", dbName))
	cfg.StartupTimeout = 5 * time.Second
	cfg.ShutdownTimeout = 10 * time.Second
	cfg.RuntimeConfigTTL = 0
	cfg.Development = true

	cfg.Discord.Token = fmt.Sprintf("token_%s", dbName)
	cfg.Discord.ApplicationID = "1234567890"
	cfg.API.CORS.AllowOrigins = []string{"*"}
	cfg.API.Secret = "aksdfjakjsfdajfefIJHShi sfEISHSIDF HSIHDF"
	cfg.API.Listen = "127.0.0.1:0"
	cfg.Discord.WebhookServer.Listen = "127.0.0.1:0"

	cfg.RandomAPI.RetryMax = 0
	cfg.RandomAPI.RetryWaitMin = time.Millisecond
	cfg.RandomAPI.RetryWaitMax = time.Millisecond
	cfg.RandomAPI.RequestsPerSecond = 1000
	cfg.RandomAPI.Burst = 100

	logLevel := slog.LevelWarn
	cfg.LogLevel.Set(logLevel)
	cfg.Discord.LogLevel.Set(logLevel)
	cfg.Discord.DiscordGoLogLevel.Set(logLevel)
	cfg.Discord.WebhookServer.LogLevel.Set(logLevel)
	cfg.DatabaseLogLevel.Set(logLevel)
	cfg.API.LogLevel.Set(logLevel)
	cfg.RandomAPI.LogLevel.Set(logLevel)

	return cfg
}
