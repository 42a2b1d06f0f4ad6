package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// EndpointSearch labels the show search endpoint in errors and metrics.
const EndpointSearch = "search"

// SearchShows issues one GET to /search/shows with the query URL-encoded as q.
// Callers are expected to reject blank queries before calling.
func (c *client) SearchShows(ctx context.Context, query string) ([]models.ShowSummary, error) {
	searchURL, err := c.buildSearchURL(query)
	if err != nil {
		return nil, err
	}
	return fetchList(ctx, c, EndpointSearch, searchURL, c.showParser)
}

func (c *client) buildSearchURL(query string) (string, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	baseURL.Path = strings.TrimRight(baseURL.Path, "/") + "/search/shows"
	params := baseURL.Query()
	params.Set("q", norm.NFC.String(query))
	baseURL.RawQuery = params.Encode()

	return baseURL.String(), nil
}
