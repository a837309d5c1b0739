package bob

import (
	"bytes"
	"encoding/json"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"strings"
	"testing"
)

func TestHashPassword(t *testing.T) {
	hash, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(hash, "$argon2id$v=19$"))

	ok, err := VerifyPassword(hash, "hunter2")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = VerifyPassword(hash, "hunter3")
	require.NoError(t, err)
	assert.False(t, ok)

	// salted, so hashes differ
	other, err := HashPassword("hunter2")
	require.NoError(t, err)
	assert.NotEqual(t, hash, other)

	_, err = VerifyPassword("plaintext", "hunter2")
	assert.Error(t, err)
	_, err = VerifyPassword("$argon2id$v=19$m=x$salt$hash", "hunter2")
	assert.Error(t, err)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "abc", truncate("abc", 5))
	assert.Equal(t, "ab", truncate("abc", 2))
	assert.Equal(t, "🎲🎲", truncate("🎲🎲🎲", 2))
	assert.Equal(t, "", truncate("abc", 0))
}

func TestGenerateRandomHexString(t *testing.T) {
	s, err := generateRandomHexString(16)
	require.NoError(t, err)
	assert.Len(t, s, 32)
	assert.Len(t, derive64ByteKey(s), 64)
}

func TestStructToSlogValue(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	cfg := DefaultRuntimeConfig()
	cfg.AdminUsername = "admin"
	cfg.AdminPassword = "secret-hash"
	logger.Info("config", "runtime_config", structToSlogValue(cfg))

	out := buf.String()
	assert.NotContains(t, out, "secret-hash")
	assert.NotContains(t, out, `"admin"`)
	assert.Contains(t, out, `"admin_password":"[redacted]"`)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	rc, ok := entry["runtime_config"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, DefaultDiscordCustomStatus, rc["discord_custom_status"])

	assert.Equal(t, slog.AnyValue(nil), structToSlogValue(nil))
	var nilCfg *RuntimeConfig
	assert.Equal(t, slog.AnyValue(nil), structToSlogValue(nilCfg))
	assert.Equal(t, slog.AnyValue(5), structToSlogValue(5))
}

func TestConfigLogValue(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewJSONHandler(buf, nil))

	cfg := DefaultTestConfig(t)
	logger.Info("config", "config", cfg)
	assert.NotContains(t, buf.String(), cfg.Discord.Token)
	assert.NotContains(t, buf.String(), cfg.API.Secret)
}

func TestOptionHelpers(t *testing.T) {
	options := commandOptions(
		[]*discordgo.ApplicationCommandInteractionDataOption{
			stringOption("name", "bob"),
			intOption("count", 3),
			idOption("user", discordgo.ApplicationCommandOptionUser, "123"),
		},
	)
	assert.Equal(t, "bob", optionString(options, "name"))
	assert.Empty(t, optionString(options, "missing"))

	n, ok := optionInt(options, "count")
	assert.True(t, ok)
	assert.Equal(t, int64(3), n)
	_, ok = optionInt(options, "missing")
	assert.False(t, ok)

	assert.Equal(t, "123", optionID(options, "user"))
	assert.Empty(t, optionID(options, "count"))
	assert.Empty(t, optionID(options, "missing"))
}

func TestDBLogLevel(t *testing.T) {
	var lvl DBLogLevel
	require.NoError(t, lvl.Scan("debug"))
	assert.Equal(t, DBLogLevelDebug, lvl)
	assert.Equal(t, slog.LevelDebug, lvl.Level())

	require.NoError(t, lvl.Scan([]byte("Warn")))
	assert.Equal(t, DBLogLevelWarn, lvl)

	assert.Error(t, lvl.Scan(42))
	assert.Error(t, lvl.Set("verbose"))

	v, err := DBLogLevelError.Value()
	require.NoError(t, err)
	assert.Equal(t, "ERROR", v)

	data, err := json.Marshal(DBLogLevelInfo)
	require.NoError(t, err)
	assert.Equal(t, `"INFO"`, string(data))
	require.NoError(t, json.Unmarshal([]byte(`"error"`), &lvl))
	assert.Equal(t, DBLogLevelError, lvl)
	assert.Error(t, json.Unmarshal([]byte(`"loud"`), &lvl))

	assert.Equal(t, slog.LevelInfo, DBLogLevel("nonsense").Level())
}

func TestRuntimeConfigUpdateValidate(t *testing.T) {
	status := strings.Repeat("s", 129)
	assert.Error(t, RuntimeConfigUpdate{DiscordCustomStatus: &status}.validate())

	channel := "not-a-number"
	assert.Error(t, RuntimeConfigUpdate{DiscordLogChannelID: &channel}.validate())

	empty := ""
	assert.Error(t, RuntimeConfigUpdate{DiscordErrorMessage: &empty}.validate())

	level := DBLogLevel("LOUD")
	assert.Error(t, RuntimeConfigUpdate{LogLevel: &level}.validate())

	channel = "1234"
	paused := true
	level = DBLogLevelDebug
	assert.NoError(
		t,
		RuntimeConfigUpdate{
			Paused:              &paused,
			DiscordLogChannelID: &channel,
			LogLevel:            &level,
		}.validate(),
	)

	// clearing a channel is allowed
	assert.NoError(t, RuntimeConfigUpdate{DiscordSuggestionChannelID: &empty}.validate())
}

func TestGetDiscordPresenceStatusUpdate(t *testing.T) {
	cfg := DefaultRuntimeConfig()
	status := getDiscordPresenceStatusUpdate(cfg)
	assert.False(t, status.AFK)
	assert.Equal(t, DefaultDiscordCustomStatus, status.Status)

	cfg.Paused = true
	status = getDiscordPresenceStatusUpdate(cfg)
	assert.True(t, status.AFK)
	assert.Equal(t, "dnd", status.Status)
}
