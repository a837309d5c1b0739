package bob

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"github.com/hashicorp/go-retryablehttp"
	"github.com/lmittmann/tint"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
)

const (
	contentTypeJSON      = "application/json"
	contentTypeTextPlain = "text/plain"

	// randomAPIMaxBodySize caps how much of a response body is read
	randomAPIMaxBodySize = 1 << 20
)

var (
	errRandomAPIStatus = errors.New("unexpected response status")

	// errQuotePromptNotFound is returned when quotable has no quotes for
	// the requested tag
	errQuotePromptNotFound = errors.New("quote prompt not found")
)

// RandomAPI calls the third-party APIs used by the /random commands.
// Requests share a rate limiter, and each host gets its own circuit
// breaker, so one API being down doesn't hold up the others.
type RandomAPI struct {
	config   *RandomAPIConfig
	client   *retryablehttp.Client
	limiter  *rate.Limiter
	logger   *slog.Logger
	breakers map[string]*gobreaker.CircuitBreaker
	mu       sync.Mutex
}

func newRandomAPI(
	config *RandomAPIConfig,
	httpClient *http.Client,
	logger *slog.Logger,
) *RandomAPI {
	logger = logger.With(loggerNameKey, "randomapi")

	client := retryablehttp.NewClient()
	if httpClient != nil {
		client.HTTPClient = httpClient
	}
	client.RetryMax = config.RetryMax
	client.RetryWaitMin = config.RetryWaitMin
	client.RetryWaitMax = config.RetryWaitMax
	client.Logger = logger

	return &RandomAPI{
		config:   config,
		client:   client,
		limiter:  rate.NewLimiter(rate.Limit(config.RequestsPerSecond), config.Burst),
		logger:   logger,
		breakers: map[string]*gobreaker.CircuitBreaker{},
	}
}

// breaker returns the circuit breaker for the given host, creating it on
// first use.
func (r *RandomAPI) breaker(host string) *gobreaker.CircuitBreaker {
	r.mu.Lock()
	defer r.mu.Unlock()

	if cb, ok := r.breakers[host]; ok {
		return cb
	}
	maxFailures := r.config.BreakerMaxFailures
	cb := gobreaker.NewCircuitBreaker(
		gobreaker.Settings{
			Name:        host,
			MaxRequests: 1,
			Timeout:     r.config.BreakerTimeout,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
			OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
				r.logger.Warn(
					"circuit breaker state changed",
					"host", name,
					"from", from.String(),
					"to", to.String(),
				)
			},
		},
	)
	r.breakers[host] = cb
	return cb
}

// get fetches rawURL, returning the body of a 200 response.
func (r *RandomAPI) get(ctx context.Context, rawURL string, accept string) ([]byte, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url %q: %w", rawURL, err)
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	if err = r.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limited: %w", err)
	}

	logger := r.logger.With("url", rawURL)
	rv, err := r.breaker(u.Host).Execute(
		func() (interface{}, error) {
			req, reqErr := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
			if reqErr != nil {
				return nil, reqErr
			}
			req.Header.Set("Accept", accept)
			if r.config.UserAgent != "" {
				req.Header.Set("User-Agent", r.config.UserAgent)
			}

			resp, doErr := r.client.Do(req)
			if doErr != nil {
				return nil, doErr
			}
			defer func() {
				_ = resp.Body.Close()
			}()

			body, readErr := io.ReadAll(io.LimitReader(resp.Body, randomAPIMaxBodySize))
			if readErr != nil {
				return nil, readErr
			}
			if resp.StatusCode != http.StatusOK {
				return nil, fmt.Errorf("%w: %d", errRandomAPIStatus, resp.StatusCode)
			}
			return body, nil
		},
	)
	if err != nil {
		logger.ErrorContext(ctx, "request failed", tint.Err(err))
		return nil, err
	}
	logger.DebugContext(ctx, "request complete")
	return rv.([]byte), nil
}

func (r *RandomAPI) getJSON(ctx context.Context, rawURL string, v any) error {
	body, err := r.get(ctx, rawURL, contentTypeJSON)
	if err != nil {
		return err
	}
	if err = json.Unmarshal(body, v); err != nil {
		return fmt.Errorf("error decoding response: %w", err)
	}
	return nil
}

type randomQuote struct {
	Content string   `json:"content"`
	Author  string   `json:"author"`
	Tags    []string `json:"tags"`
}

// Quote returns a random quote, limited to the given tag if not empty.
func (r *RandomAPI) Quote(ctx context.Context, tag string) (randomQuote, error) {
	u, err := url.Parse(r.config.QuoteURL)
	if err != nil {
		return randomQuote{}, err
	}
	if tag != "" {
		q := u.Query()
		q.Set("tags", tag)
		u.RawQuery = q.Encode()
	}

	var quotes []randomQuote
	if err = r.getJSON(ctx, u.String(), &quotes); err != nil {
		return randomQuote{}, err
	}
	if len(quotes) == 0 {
		return randomQuote{}, fmt.Errorf("%w: %q", errQuotePromptNotFound, tag)
	}
	return quotes[0], nil
}

// Fact returns a random fact, with backticks removed so it can't break
// out of the reply's formatting.
func (r *RandomAPI) Fact(ctx context.Context) (string, error) {
	var rv struct {
		Text string `json:"text"`
	}
	if err := r.getJSON(ctx, r.config.FactURL, &rv); err != nil {
		return "", err
	}
	return strings.ReplaceAll(rv.Text, "`", ""), nil
}

// Dog returns the URL of a random dog image.
func (r *RandomAPI) Dog(ctx context.Context) (string, error) {
	var rv struct {
		URL string `json:"url"`
	}
	if err := r.getJSON(ctx, r.config.DogURL, &rv); err != nil {
		return "", err
	}
	if rv.URL == "" {
		return "", errors.New("no url in response")
	}
	return rv.URL, nil
}

func (r *RandomAPI) Advice(ctx context.Context) (string, error) {
	var rv struct {
		Slip struct {
			Advice string `json:"advice"`
		} `json:"slip"`
	}
	if err := r.getJSON(ctx, r.config.AdviceURL, &rv); err != nil {
		return "", err
	}
	return rv.Slip.Advice, nil
}

func (r *RandomAPI) DadJoke(ctx context.Context) (string, error) {
	body, err := r.get(ctx, r.config.DadJokeURL, contentTypeTextPlain)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(body)), nil
}

// apiHost returns the host of rawURL, for naming the API in failure
// replies.
func apiHost(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Host == "" {
		return rawURL
	}
	return strings.TrimPrefix(u.Hostname(), "api.")
}
