package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/models"
)

// EndpointEpisodes labels the episode list endpoint in errors and metrics.
const EndpointEpisodes = "episodes"

// GetEpisodes issues one GET to /shows/{id}/episodes. A 404 is reported as
// apperrors.ErrNotFound for the show.
func (c *client) GetEpisodes(ctx context.Context, showID int) ([]models.EpisodeSummary, error) {
	if showID <= 0 {
		return nil, &apperrors.ErrInvalidShowID{Value: strconv.Itoa(showID)}
	}

	episodesURL, err := c.buildEpisodesURL(showID)
	if err != nil {
		return nil, err
	}

	episodes, err := fetchList(ctx, c, EndpointEpisodes, episodesURL, c.episodeParser)
	if err != nil {
		var statusErr *apperrors.ErrUpstreamStatus
		if errors.As(err, &statusErr) && statusErr.StatusCode == http.StatusNotFound {
			return nil, apperrors.NewShowNotFoundError(showID)
		}
		return nil, err
	}
	return episodes, nil
}

func (c *client) buildEpisodesURL(showID int) (string, error) {
	baseURL, err := url.Parse(c.baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid base URL: %w", err)
	}

	baseURL.Path = fmt.Sprintf("%s/shows/%d/episodes", strings.TrimRight(baseURL.Path, "/"), showID)
	return baseURL.String(), nil
}
