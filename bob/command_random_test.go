package bob

import (
	"bytes"
	"context"
	"fmt"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"image/png"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

// sequence returns a randIntN replacement yielding values in order,
// each taken modulo n
func sequence(values ...int) func(int) int {
	idx := 0
	return func(n int) int {
		v := values[idx%len(values)]
		idx++
		return v % n
	}
}

func runRandomCommand(
	t *testing.T,
	b *Bob,
	subcommand string,
	options ...*discordgo.ApplicationCommandInteractionDataOption,
) *stubInteractionHandler {
	t.Helper()
	interaction := newCommandInteraction(t, newDiscordUser(t), commandRandom, subcommand, options...)
	handler := newStubInteractionHandler(t, b, interaction)
	b.handleInteraction(context.Background(), handler)
	return handler
}

func singleContent(t *testing.T, handler *stubInteractionHandler) string {
	t.Helper()
	responses := handler.Responses()
	require.Len(t, responses, 1)
	require.NotNil(t, responses[0].Data)
	return responses[0].Data.Content
}

func TestCommandRandomDiceRoll(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.randIntN = sequence(19)

	handler := runRandomCommand(t, b, commandRandomDiceRoll, intOption("sides", 20))
	assert.Equal(t, "🎲 The 20 sided die landed on **20**", singleContent(t, handler))

	handler = runRandomCommand(t, b, commandRandomDiceRoll, intOption("sides", 0))
	assertEphemeral(t, handler.Responses()[0])
	assert.Contains(t, singleContent(t, handler), "*rift*")
}

func TestCommandRandomCoinToss(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)

	b.randIntN = sequence(0)
	assert.Equal(
		t,
		"🪙 The coin landed **heads**!",
		singleContent(t, runRandomCommand(t, b, commandRandomCoinToss)),
	)

	b.randIntN = sequence(1)
	assert.Equal(
		t,
		"🪙 The coin landed **tails**!",
		singleContent(t, runRandomCommand(t, b, commandRandomCoinToss)),
	)
}

func TestCommandRandomDate(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)

	// year offset, month index, day offset
	b.randIntN = sequence(4, 1, 27)
	handler := runRandomCommand(
		t,
		b,
		commandRandomDate,
		intOption("earliest-year", 2000),
		intOption("latest-year", 2010),
	)
	assert.Equal(t, ":calendar_spiral: February 28, 2004", singleContent(t, handler))

	tests := []struct {
		name     string
		earliest int
		latest   int
		expected string
	}{
		{"negative", -1, 5, "*rift*"},
		{"too many digits", 1, 123456789, "**8 digits or less**"},
		{"inverted", 2020, 1990, "**smaller**"},
	}
	for _, tc := range tests {
		t.Run(
			tc.name, func(t *testing.T) {
				h := runRandomCommand(
					t,
					b,
					commandRandomDate,
					intOption("earliest-year", tc.earliest),
					intOption("latest-year", tc.latest),
				)
				assert.Contains(t, singleContent(t, h), tc.expected)
			},
		)
	}
}

func TestCommandRandom8Ball(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.randIntN = sequence(1)

	handler := runRandomCommand(t, b, "8ball", stringOption("prompt", "will it rain?"))
	assert.Equal(t, "🎱 **'yes'** in response to will it rain?", singleContent(t, handler))

	handler = runRandomCommand(
		t,
		b,
		"8ball",
		stringOption("prompt", strings.Repeat("a", discordMaxMessageLength)),
	)
	assertEphemeral(t, handler.Responses()[0])
	assert.Contains(t, singleContent(t, handler), "The magic 8ball broke")
}

func TestCommandRandomChoose(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.randIntN = sequence(0, 1)

	handler := runRandomCommand(
		t,
		b,
		commandRandomChoose,
		stringOption("option1", "pizza"),
		stringOption("option2", "tacos"),
	)
	assert.Equal(t, "🤔 I choose **tacos**", singleContent(t, handler))

	// choices over the length limit are dropped
	handler = runRandomCommand(
		t,
		b,
		commandRandomChoose,
		stringOption("option1", strings.Repeat("x", chooseMaxChoiceLength+1)),
	)
	assertEphemeral(t, handler.Responses()[0])
	assert.Contains(t, singleContent(t, handler), "*cannot* decide")
}

func TestCommandRandomColor(t *testing.T) {
	t.Parallel()
	b, _ := newTestBob(t)
	b.randIntN = sequence(0xFF8800)

	handler := runRandomCommand(t, b, commandRandomColor)

	responses := handler.Responses()
	require.Len(t, responses, 1)
	assert.Equal(
		t,
		discordgo.InteractionResponseDeferredChannelMessageWithSource,
		responses[0].Type,
	)

	edits := handler.Edits()
	require.Len(t, edits, 1)
	edit := edits[0]
	require.NotNil(t, edit.Embeds)
	require.Len(t, *edit.Embeds, 1)
	embed := (*edit.Embeds)[0]
	assert.Equal(t, 0xFF8800, embed.Color)
	assert.Equal(t, "```#FF8800```", embed.Fields[0].Value)
	assert.Equal(t, "attachment://"+colorPreviewFilename, embed.Thumbnail.URL)

	require.Len(t, edit.Files, 1)
	assert.Equal(t, colorPreviewFilename, edit.Files[0].Name)
	data, err := io.ReadAll(edit.Files[0].Reader)
	require.NoError(t, err)
	img, err := png.Decode(bytes.NewReader(data))
	require.NoError(t, err)
	r, g, bl, _ := img.At(0, 0).RGBA()
	assert.Equal(t, uint32(0xFF), r>>8)
	assert.Equal(t, uint32(0x88), g>>8)
	assert.Equal(t, uint32(0x00), bl>>8)
}

// randomAPIServer serves canned responses for each /random API
func randomAPIServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc(
		"/quotes", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", contentTypeJSON)
			if r.URL.Query().Get("tags") == "nonsense" {
				_, _ = w.Write([]byte(`[]`))
				return
			}
			_, _ = w.Write(
				[]byte(`[{"content":"Stay hungry.","author":"Steve Jobs","tags":["wisdom"]}]`),
			)
		},
	)
	mux.HandleFunc(
		"/fact", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte("{\"text\":\"Honey `never` spoils.\"}"))
		},
	)
	mux.HandleFunc(
		"/dog", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"url":"https://example.com/dog.jpg"}`))
		},
	)
	mux.HandleFunc(
		"/advice", func(w http.ResponseWriter, _ *http.Request) {
			_, _ = w.Write([]byte(`{"slip":{"id":1,"advice":"Drink water."}}`))
		},
	)
	mux.HandleFunc(
		"/joke", func(w http.ResponseWriter, r *http.Request) {
			if r.Header.Get("Accept") != contentTypeTextPlain {
				w.WriteHeader(http.StatusNotAcceptable)
				return
			}
			_, _ = w.Write([]byte("I'm reading a book on anti-gravity.\n"))
		},
	)
	mux.HandleFunc(
		"/missing", func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusNotFound)
		},
	)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newRandomAPITestBob(t *testing.T) (*Bob, *httptest.Server) {
	t.Helper()
	srv := randomAPIServer(t)
	cfg := DefaultTestConfig(t)
	cfg.RandomAPI.QuoteURL = srv.URL + "/quotes"
	cfg.RandomAPI.FactURL = srv.URL + "/fact"
	cfg.RandomAPI.DogURL = srv.URL + "/dog"
	cfg.RandomAPI.AdviceURL = srv.URL + "/advice"
	cfg.RandomAPI.DadJokeURL = srv.URL + "/joke"
	b, _ := newTestBobWithConfig(t, cfg)
	b.randIntN = sequence(0)
	return b, srv
}

func TestCommandRandomAPIs(t *testing.T) {
	t.Parallel()
	b, _ := newRandomAPITestBob(t)

	tests := []struct {
		subcommand string
		options    []*discordgo.ApplicationCommandInteractionDataOption
		expected   string
	}{
		{
			commandRandomQuote,
			[]*discordgo.ApplicationCommandInteractionDataOption{stringOption("prompt", "wisdom")},
			"✍️ Stay hungry. - *Steve Jobs*",
		},
		{commandRandomFact, nil, "🤓 Honey never spoils."},
		{commandRandomDog, nil, "🐕[dog](https://example.com/dog.jpg)"},
		{commandRandomAdvice, nil, "🦉 *Drink water.*"},
		{commandRandomDadJoke, nil, "😉  *I'm reading a book on anti-gravity.*"},
	}
	for _, tc := range tests {
		t.Run(
			tc.subcommand, func(t *testing.T) {
				handler := runRandomCommand(t, b, tc.subcommand, tc.options...)
				assert.Equal(t, tc.expected, singleContent(t, handler))
			},
		)
	}
}

func TestCommandRandomQuote_UnknownPrompt(t *testing.T) {
	t.Parallel()
	b, _ := newRandomAPITestBob(t)

	handler := runRandomCommand(t, b, commandRandomQuote, stringOption("prompt", "nonsense"))
	assertEphemeral(t, handler.Responses()[0])
	assert.True(
		t,
		strings.HasPrefix(singleContent(t, handler), "❌ The prompt: nonsense was not recognized"),
	)
}

func TestCommandRandom_APIFailure(t *testing.T) {
	t.Parallel()
	b, srv := newRandomAPITestBob(t)
	b.config.RandomAPI.FactURL = srv.URL + "/missing"

	handler := runRandomCommand(t, b, commandRandomFact)
	assertEphemeral(t, handler.Responses()[0])
	assert.Equal(
		t,
		fmt.Sprintf(
			"❌ There was an issue getting a fact from the API (%s).\n"+
				"- This is out of Bob's control unfortunately.\n"+
				"- Please try again later.",
			apiHost(srv.URL),
		),
		singleContent(t, handler),
	)
}
