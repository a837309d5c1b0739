package bob

import (
	"context"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"
)

func newTestRandomAPI(t *testing.T, srv *httptest.Server) *RandomAPI {
	t.Helper()
	cfg := DefaultConfig().RandomAPI
	cfg.LogLevel.Set(slog.LevelWarn)
	cfg.RetryMax = 0
	cfg.RetryWaitMin = time.Millisecond
	cfg.RetryWaitMax = time.Millisecond
	cfg.RequestsPerSecond = 1000
	cfg.Burst = 100
	cfg.UserAgent = "BobTheBot-test"
	cfg.QuoteURL = srv.URL + "/quotes"
	cfg.FactURL = srv.URL + "/fact"
	cfg.DogURL = srv.URL + "/dog"
	cfg.AdviceURL = srv.URL + "/advice"
	cfg.DadJokeURL = srv.URL + "/joke"
	return newRandomAPI(cfg, srv.Client(), newTestLogger(t))
}

func TestRandomAPI(t *testing.T) {
	t.Parallel()
	srv := randomAPIServer(t)
	r := newTestRandomAPI(t, srv)
	ctx := context.Background()

	quote, err := r.Quote(ctx, "wisdom")
	require.NoError(t, err)
	assert.Equal(t, "Stay hungry.", quote.Content)
	assert.Equal(t, "Steve Jobs", quote.Author)
	assert.Equal(t, []string{"wisdom"}, quote.Tags)

	_, err = r.Quote(ctx, "nonsense")
	assert.ErrorIs(t, err, errQuotePromptNotFound)

	fact, err := r.Fact(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Honey never spoils.", fact)

	dog, err := r.Dog(ctx)
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/dog.jpg", dog)

	advice, err := r.Advice(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Drink water.", advice)

	joke, err := r.DadJoke(ctx)
	require.NoError(t, err)
	assert.Equal(t, "I'm reading a book on anti-gravity.", joke)
}

func TestRandomAPI_Status(t *testing.T) {
	t.Parallel()
	srv := randomAPIServer(t)
	r := newTestRandomAPI(t, srv)
	r.config.FactURL = srv.URL + "/missing"

	_, err := r.Fact(context.Background())
	assert.ErrorIs(t, err, errRandomAPIStatus)
	assert.ErrorContains(t, err, "404")
}

func TestRandomAPI_EmptyDog(t *testing.T) {
	t.Parallel()
	srv := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				_, _ = w.Write([]byte(`{}`))
			},
		),
	)
	t.Cleanup(srv.Close)
	r := newTestRandomAPI(t, srv)

	_, err := r.Dog(context.Background())
	assert.Error(t, err)
}

func TestRandomAPI_Retry(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "BobTheBot-test", r.Header.Get("User-Agent"))
				if calls.Add(1) == 1 {
					w.WriteHeader(http.StatusServiceUnavailable)
					return
				}
				_, _ = w.Write([]byte(`{"slip":{"advice":"Try again."}}`))
			},
		),
	)
	t.Cleanup(srv.Close)
	r := newTestRandomAPI(t, srv)
	r.client.RetryMax = 2

	advice, err := r.Advice(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "Try again.", advice)
	assert.Equal(t, int32(2), calls.Load())
}

func TestRandomAPI_CircuitBreaker(t *testing.T) {
	t.Parallel()
	var calls atomic.Int32
	srv := httptest.NewServer(
		http.HandlerFunc(
			func(w http.ResponseWriter, _ *http.Request) {
				calls.Add(1)
				w.WriteHeader(http.StatusInternalServerError)
			},
		),
	)
	t.Cleanup(srv.Close)
	r := newTestRandomAPI(t, srv)
	r.config.BreakerMaxFailures = 2
	r.config.BreakerTimeout = time.Hour
	ctx := context.Background()

	for range 2 {
		_, err := r.Fact(ctx)
		require.Error(t, err)
	}
	assert.Equal(t, int32(2), calls.Load())

	// open, so the server isn't called again
	_, err := r.Fact(ctx)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	assert.Equal(t, int32(2), calls.Load())

	// other hosts have their own breaker
	other := randomAPIServer(t)
	r.config.DogURL = other.URL + "/dog"
	_, err = r.Dog(ctx)
	assert.NoError(t, err)
}

func TestAPIHost(t *testing.T) {
	assert.Equal(t, "quotable.io", apiHost("https://api.quotable.io/quotes/random"))
	assert.Equal(t, "uselessfacts.jsph.pl", apiHost("https://uselessfacts.jsph.pl/random.json"))
	assert.Equal(t, "127.0.0.1", apiHost("http://127.0.0.1:8080/x"))
	assert.Equal(t, "not a url", apiHost("not a url"))
}
