package client

import (
	"context"
	"net/http"
	"net/url"
	"time"

	"github.com/failsafe-go/failsafe-go"
	"github.com/failsafe-go/failsafe-go/circuitbreaker"
	"github.com/failsafe-go/failsafe-go/failsafehttp"
	"github.com/failsafe-go/failsafe-go/timeout"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/parser"
)

// Client defines the interface for querying the show metadata API
type Client interface {
	// SearchShows returns the shows matching query, in upstream order.
	SearchShows(ctx context.Context, query string) ([]models.ShowSummary, error)
	// GetEpisodes returns the episodes of a show, in air order.
	GetEpisodes(ctx context.Context, showID int) ([]models.EpisodeSummary, error)

	// Close releases idle upstream connections.
	Close() error
}

// client implements the Client interface
type client struct {
	httpClient    *http.Client
	baseTransport *http.Transport
	baseURL       string
	userAgent     string
	showParser    parser.Parser[models.ShowSummary]
	episodeParser parser.Parser[models.EpisodeSummary]
}

// NewClient creates a new client instance with proxy and circuit breaker configuration if provided
func NewClient(cfg *config.Config) Client {
	logger := config.GetLogger()
	requestTimeout := config.ParseDuration("client_timeout", cfg.ClientTimeout, 30*time.Second)

	// Clone DefaultTransport to preserve its settings (timeouts, connection pooling, HTTP/2, etc.)
	baseTransport := http.DefaultTransport.(*http.Transport).Clone()

	if cfg.ProxyConnectionString != "" {
		proxyURL, err := url.Parse(cfg.ProxyConnectionString)
		if err != nil {
			logger.Warn().Err(err).Str("proxy", cfg.ProxyConnectionString).Msg("Invalid proxy URL, continuing without proxy")
		} else {
			baseTransport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	transport := newTransport(cfg, baseTransport, requestTimeout)

	baseURL := cfg.TVMazeBaseURL
	if baseURL == "" {
		baseURL = config.DefaultTVMazeBaseURL
	}
	userAgent := cfg.UserAgent
	if userAgent == "" {
		userAgent = config.GetUserAgent()
	}

	return &client{
		httpClient: &http.Client{
			Timeout:   requestTimeout,
			Transport: transport,
		},
		baseTransport: baseTransport,
		baseURL:       baseURL,
		userAgent:     userAgent,
		showParser:    parser.NewShowParser(cfg.PlaceholderImageURL),
		episodeParser: parser.NewEpisodeParser(),
	}
}

// newTransport layers compression decoding under the failsafe policies: an
// optional circuit breaker outside a timeout on each round trip. The timeout
// covers the wait for response headers; http.Client.Timeout bounds the whole
// exchange including the body.
func newTransport(cfg *config.Config, base http.RoundTripper, limit time.Duration) http.RoundTripper {
	logger := config.GetLogger()

	policies := make([]failsafe.Policy[*http.Response], 0, 2)
	if cfg.CircuitBreaker.Enabled {
		policies = append(policies, newCircuitBreaker(cfg))
		logger.Info().
			Int("failure_threshold", cfg.CircuitBreaker.FailureThreshold).
			Str("delay", cfg.CircuitBreaker.Delay).
			Msg("Upstream circuit breaker enabled")
	}
	policies = append(policies, timeout.New[*http.Response](limit))

	// Wrap transport with compression support (gzip, brotli, zstd)
	return failsafehttp.NewRoundTripper(newCompressionTransport(base), policies...)
}

// newCircuitBreaker builds a breaker that counts transport errors and 5xx
// responses as failures. An open breaker fails requests without contacting upstream.
func newCircuitBreaker(cfg *config.Config) circuitbreaker.CircuitBreaker[*http.Response] {
	threshold := cfg.CircuitBreaker.FailureThreshold
	if threshold <= 0 {
		threshold = 5
	}
	delay := config.ParseDuration("circuit_breaker.delay", cfg.CircuitBreaker.Delay, 30*time.Second)

	return circuitbreaker.NewBuilder[*http.Response]().
		HandleIf(func(resp *http.Response, err error) bool {
			return err != nil || (resp != nil && resp.StatusCode >= http.StatusInternalServerError)
		}).
		WithFailureThreshold(uint(threshold)).
		WithDelay(delay).
		Build()
}

// Close releases idle upstream connections.
func (c *client) Close() error {
	c.baseTransport.CloseIdleConnections()
	return nil
}
