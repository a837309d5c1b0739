package bob

import (
	"context"
	"encoding/json"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestNewUser(t *testing.T) {
	d := discordgo.User{ID: "1", Username: "bob", GlobalName: "Bob"}
	u := NewUser(d)
	assert.Equal(t, "1", u.ID)
	assert.False(t, u.Bot)
	assert.False(t, u.Ignored)
	assert.NotZero(t, u.LastSeen)
	assert.Equal(t, "Bob", u.DisplayName())
	assert.Equal(t, "bob [1]", u.String())

	var content discordgo.User
	require.NoError(t, json.Unmarshal([]byte(u.Content), &content))
	assert.Equal(t, d.Username, content.Username)

	assert.False(t, u.userChangedDiscordUsername(d))
	d.GlobalName = "Robert"
	assert.True(t, u.userChangedDiscordUsername(d))

	u.GlobalName = ""
	assert.Equal(t, "bob", u.DisplayName())

	// bots are ignored from the start
	botUser := NewUser(discordgo.User{ID: "2", Username: "otherbot", Bot: true})
	assert.True(t, botUser.Bot)
	assert.True(t, botUser.Ignored)
}

func TestGetOrCreateUser(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	ctx := context.Background()
	d := discordgo.User{ID: "42", Username: "bob", GlobalName: "Bob"}

	u, created, err := b.writeDB.GetOrCreateUser(ctx, d)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, "Bob", u.GlobalName)

	u, created, err = b.writeDB.GetOrCreateUser(ctx, d)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, "42", u.ID)

	var count int64
	require.NoError(t, b.db.Model(&User{}).Where("id = ?", "42").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	assert.Nil(t, b.writeDB.GetUser("43"))
	assert.Nil(t, b.writeDB.ReloadUser("43"))
}

func TestUserGetStats(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	ctx := context.Background()

	u, _, err := b.writeDB.GetOrCreateUser(ctx, discordgo.User{ID: "42", Username: "bob"})
	require.NoError(t, err)
	other, _, err := b.writeDB.GetOrCreateUser(ctx, discordgo.User{ID: "43", Username: "alice"})
	require.NoError(t, err)

	logs := []InteractionLog{
		{InteractionID: "1", UserID: u.ID, Command: commandConvert},
		{InteractionID: "2", UserID: u.ID, Command: commandConvert},
		{InteractionID: "3", UserID: u.ID, Command: commandShip},
		{InteractionID: "4", UserID: other.ID, Command: commandFonts},
	}
	for _, l := range logs {
		_, err = b.writeDB.Create(ctx, &l)
		require.NoError(t, err)
	}
	for _, q := range []Quote{
		{GuildID: testGuildID, Content: "one", QuotedByID: u.ID, QuotedUserID: other.ID},
		{GuildID: testGuildID, Content: "two", QuotedByID: other.ID, QuotedUserID: u.ID},
	} {
		_, err = b.writeDB.Create(ctx, &q)
		require.NoError(t, err)
	}
	_, err = b.writeDB.Create(ctx, &UnitSuggestion{UserID: u.ID, Kind: "Length", Content: "furlong"})
	require.NoError(t, err)

	stats, err := u.getStats(ctx, b.db)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{commandConvert: 2, commandShip: 1}, stats.Commands)
	assert.Equal(t, int64(1), stats.Quotes)
	assert.Equal(t, int64(1), stats.UnitSuggestions)

	stats, err = other.getStats(ctx, b.db)
	require.NoError(t, err)
	assert.Equal(t, map[string]int{commandFonts: 1}, stats.Commands)
	assert.Equal(t, int64(1), stats.Quotes)
	assert.Zero(t, stats.UnitSuggestions)
}
