package bob

import (
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"slices"
	"testing"
)

func TestHeartLevelFor(t *testing.T) {
	tests := []struct {
		percent  int
		expected string
	}{
		{0, "💔 `0`"},
		{9, "💔 `0`"},
		{10, "❤️ `1`"},
		{34, "💓 `2`"},
		{35, "💗 `2`"},
		{64, "💕 `3`"},
		{65, "💞 `4`"},
		{89, "💖 `5`"},
		{90, "💘 `6`"},
		{100, "💘 `6`"},
	}
	for _, tc := range tests {
		t.Run(
			fmt.Sprintf("%d", tc.percent), func(t *testing.T) {
				assert.Equal(t, tc.expected, heartLevelFor(tc.percent))
			},
		)
	}

	assert.True(
		t,
		slices.IsSortedFunc(
			heartLevels, func(a, b heartLevel) int {
				return a.Min - b.Min
			},
		),
	)
}

func TestCommandShip(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.randIntN = func(n int) int {
		assert.Equal(t, 101, n)
		return 72
	}

	interaction := newCommandInteraction(
		t,
		newDiscordUser(t),
		commandShip,
		"",
		idOption("user1", discordgo.ApplicationCommandOptionUser, "111"),
		idOption("user2", discordgo.ApplicationCommandOptionUser, "222"),
	)
	handler := newStubInteractionHandler(t, b, interaction)
	b.handleInteraction(context.Background(), handler)

	responses := handler.Responses()
	require.Len(t, responses, 1)
	assert.Equal(t, "💞 `4` <@111> and <@222> are a **72%** match!", responses[0].Data.Content)
}
