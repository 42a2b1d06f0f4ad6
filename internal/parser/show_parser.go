package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/samber/lo"
)

// ShowParser decodes the show search response into ShowSummary values
type ShowParser struct {
	placeholderImage string
}

// NewShowParser creates a new show parser. placeholderImage is used for shows
// whose upstream record has no image.
func NewShowParser(placeholderImage string) *ShowParser {
	if placeholderImage == "" {
		placeholderImage = config.DefaultPlaceholderImageURL
	}
	return &ShowParser{
		placeholderImage: placeholderImage,
	}
}

// Parse decodes a JSON array of search results, keeping the upstream order
func (p *ShowParser) Parse(body io.Reader) ([]models.ShowSummary, error) {
	logger := config.GetLogger()

	var results []models.SearchResult
	if err := json.NewDecoder(body).Decode(&results); err != nil {
		logger.Debug().Err(err).Msg("Failed to decode show search response")
		return nil, fmt.Errorf("decode search results: %w", err)
	}

	for i, result := range results {
		if result.Show == nil {
			return nil, fmt.Errorf("search result %d has no show record", i)
		}
	}

	shows := lo.Map(results, func(result models.SearchResult, _ int) models.ShowSummary {
		return p.toSummary(result.Show)
	})

	logger.Debug().Int("total_shows", len(shows)).Msg("Decoded show search response")
	return shows, nil
}

func (p *ShowParser) toSummary(show *models.ShowRecord) models.ShowSummary {
	image := p.placeholderImage
	if show.Image != nil && show.Image.Medium != "" {
		image = show.Image.Medium
	}
	return models.ShowSummary{
		ID:      show.ID,
		Name:    show.Name,
		Summary: show.Summary,
		Image:   image,
	}
}
