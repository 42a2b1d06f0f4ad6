package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/parser"
)

// maxDrainBytes bounds how much of an error body is read before closing, so the
// connection can be reused.
const maxDrainBytes = 4096

// fetchList performs one GET against the upstream API and decodes the JSON
// array body with p. Non-2xx statuses, transport errors and decode failures are
// returned as errors; nothing is retried.
func fetchList[T any](ctx context.Context, c *client, endpoint, rawURL string, p parser.Parser[T]) ([]T, error) {
	logger := config.GetLogger()
	start := time.Now()
	defer func() {
		metrics.UpstreamRequestDuration.WithLabelValues(endpoint).Observe(time.Since(start).Seconds())
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create %s request: %w", endpoint, err)
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "application/json")

	logger.Debug().Str("endpoint", endpoint).Str("url", rawURL).Msg("Requesting upstream")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.OutcomeNetwork).Inc()
		logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Upstream request failed")
		return nil, fmt.Errorf("%s request: %w", endpoint, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxDrainBytes))
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.OutcomeStatus).Inc()
		logger.Warn().Str("endpoint", endpoint).Int("status", resp.StatusCode).Msg("Upstream returned non-success status")
		return nil, &apperrors.ErrUpstreamStatus{Endpoint: endpoint, StatusCode: resp.StatusCode}
	}

	body, err := parser.NewUTF8Reader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.OutcomeMalformed).Inc()
		return nil, &apperrors.ErrMalformedResponse{Endpoint: endpoint, Err: err}
	}

	items, err := p.Parse(body)
	if err != nil {
		metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.OutcomeMalformed).Inc()
		logger.Warn().Err(err).Str("endpoint", endpoint).Msg("Upstream response malformed")
		return nil, &apperrors.ErrMalformedResponse{Endpoint: endpoint, Err: err}
	}

	metrics.UpstreamRequestsTotal.WithLabelValues(endpoint, metrics.OutcomeSuccess).Inc()
	logger.Debug().Str("endpoint", endpoint).Int("count", len(items)).Dur("elapsed", time.Since(start)).Msg("Upstream request completed")
	return items, nil
}
