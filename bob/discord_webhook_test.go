package bob

import (
	"bytes"
	"context"
	"crypto/ed25519"
	"encoding/hex"
	"encoding/json"
	"github.com/bwmarrin/discordgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"sync"
	"testing"
	"time"
)

func signedRequest(
	t testing.TB,
	privateKey ed25519.PrivateKey,
	body []byte,
) *http.Request {
	t.Helper()
	timestamp := strconv.FormatInt(time.Now().Unix(), 10)
	signature := ed25519.Sign(privateKey, append([]byte(timestamp), body...))

	req := httptest.NewRequest(http.MethodPost, apiDiscordInteractions, bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-Signature-Ed25519", hex.EncodeToString(signature))
	req.Header.Set("X-Signature-Timestamp", timestamp)
	return req
}

func TestVerifyRequest(t *testing.T) {
	pubHex, privateKey := generateDiscordKey(t)
	pubBytes, err := hex.DecodeString(pubHex)
	require.NoError(t, err)
	publicKey := ed25519.PublicKey(pubBytes)
	body := []byte(`{"type":1}`)

	t.Run(
		"valid", func(t *testing.T) {
			req := signedRequest(t, privateKey, body)
			assert.True(t, verifyRequest(req, publicKey))

			// the body can still be read by the handler
			restored, readErr := io.ReadAll(req.Body)
			require.NoError(t, readErr)
			assert.Equal(t, body, restored)
		},
	)

	t.Run(
		"other key", func(t *testing.T) {
			_, otherKey := generateDiscordKey(t)
			req := signedRequest(t, otherKey, body)
			assert.False(t, verifyRequest(req, publicKey))
		},
	)

	t.Run(
		"tampered body", func(t *testing.T) {
			req := signedRequest(t, privateKey, body)
			req.Body = io.NopCloser(bytes.NewReader([]byte(`{"type":2}`)))
			assert.False(t, verifyRequest(req, publicKey))
		},
	)

	t.Run(
		"missing signature", func(t *testing.T) {
			req := signedRequest(t, privateKey, body)
			req.Header.Del("X-Signature-Ed25519")
			assert.False(t, verifyRequest(req, publicKey))
		},
	)

	t.Run(
		"missing timestamp", func(t *testing.T) {
			req := signedRequest(t, privateKey, body)
			req.Header.Del("X-Signature-Timestamp")
			assert.False(t, verifyRequest(req, publicKey))
		},
	)

	t.Run(
		"signature not hex", func(t *testing.T) {
			req := signedRequest(t, privateKey, body)
			req.Header.Set("X-Signature-Ed25519", "not-hex")
			assert.False(t, verifyRequest(req, publicKey))
		},
	)

	t.Run(
		"no key", func(t *testing.T) {
			req := signedRequest(t, privateKey, body)
			assert.False(t, verifyRequest(req, nil))
		},
	)
}

// newTestWebhookServer returns a bot with a webhook server using a new
// key pair. Interactions are answered through the mock session.
func newTestWebhookServer(t *testing.T) (
	*Bob,
	*DiscordWebhookServer,
	ed25519.PrivateKey,
) {
	t.Helper()
	pubHex, privateKey := generateDiscordKey(t)
	cfg := DefaultTestConfig(t)
	cfg.Discord.WebhookServer.Enabled = true
	cfg.Discord.WebhookServer.PublicKey = pubHex

	b, _ := newTestBobWithConfig(t, cfg)
	b.getInteractionHandlerFunc = func(
		_ context.Context,
		i *discordgo.InteractionCreate,
	) InteractionHandler {
		return GatewayHandler{
			session:     b.discord.session,
			interaction: i,
			config:      b.RuntimeConfig().CommandOptions,
			mu:          &sync.RWMutex{},
			logger:      newTestLogger(t),
		}
	}

	server, err := newWebhookServer(context.Background(), b, cfg.Discord.WebhookServer)
	require.NoError(t, err)
	return b, server, privateKey
}

func TestWebhookServer_Ping(t *testing.T) {
	t.Parallel()
	_, server, privateKey := newTestWebhookServer(t)

	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, signedRequest(t, privateKey, []byte(`{"id":"1","type":1}`)))
	require.Equal(t, http.StatusOK, w.Code)

	var resp discordgo.InteractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, discordgo.InteractionResponsePong, resp.Type)
}

func TestWebhookServer_InvalidSignature(t *testing.T) {
	t.Parallel()
	_, server, _ := newTestWebhookServer(t)
	_, otherKey := generateDiscordKey(t)

	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, signedRequest(t, otherKey, []byte(`{"id":"1","type":1}`)))
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestWebhookServer_InvalidBody(t *testing.T) {
	t.Parallel()
	_, server, privateKey := newTestWebhookServer(t)

	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, signedRequest(t, privateKey, []byte(`{"id":`)))
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebhookServer_Command(t *testing.T) {
	t.Parallel()
	b, server, privateKey := newTestWebhookServer(t)
	b.randIntN = func(int) int { return 1 }

	interaction := newCommandInteraction(t, newDiscordUser(t), commandRandom, commandRandomCoinToss)
	body, err := json.Marshal(interaction)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	server.engine.ServeHTTP(w, signedRequest(t, privateKey, body))
	require.Equal(t, http.StatusOK, w.Code)

	var resp discordgo.InteractionResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, discordgo.InteractionResponseChannelMessageWithSource, resp.Type)
	require.NotNil(t, resp.Data)
	assert.Equal(t, "🪙 The coin landed **tails**!", resp.Data.Content)

	var ilog InteractionLog
	require.NoError(t, b.db.Last(&ilog).Error)
	assert.Equal(t, discordInteractionReceiveMethodWebhook, ilog.Method)
	assert.Equal(t, commandRandom, ilog.Command)
}
