package bob

import (
	"context"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"testing"
)

func TestConvertFont(t *testing.T) {
	tests := []struct {
		font     font
		input    string
		expected string
	}{
		{fontMedieval, "Bob", "B𝖔𝖇"},
		{fontFancy, "hi!", "𝓱𝓲!"},
		{fontSlashed, "ab", "a\u0337b\u0337"},
		{fontFlip, "bad", "pɐq"},
		{fontFlip, "Hey you", "noʎ ʎǝH"},
		{fontBoxed, "abc 123", "🄰🄱🄲 123"},
		{fontBoxed, "ABC", "ABC"},
		{fontSlashed, "Ab", "Ab\u0337"},
	}
	for _, tc := range tests {
		t.Run(
			string(tc.font)+"/"+tc.input, func(t *testing.T) {
				converted, err := convertFont(tc.font, tc.input)
				require.NoError(t, err)
				assert.Equal(t, tc.expected, converted)
			},
		)
	}

	_, err := convertFont("comic-sans", "hello")
	assert.ErrorContains(t, err, "unknown font")
}

func TestFontAlphabets(t *testing.T) {
	for f, alphabet := range fontAlphabets {
		assert.Len(t, alphabet, 26, string(f))
	}
	assert.Len(t, fontChoices(), len(fonts))
}

func TestCommandFonts(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)

	interaction := newCommandInteraction(
		t,
		newDiscordUser(t),
		commandFonts,
		"",
		stringOption("text", "Hello"),
		stringOption("font", string(fontFlip)),
	)
	handler := newStubInteractionHandler(t, b, interaction)
	b.handleInteraction(context.Background(), handler)

	responses := handler.Responses()
	require.Len(t, responses, 1)
	assert.Zero(t, responses[0].Data.Flags)
	assert.Equal(t, "ollǝH", responses[0].Data.Content)
}
