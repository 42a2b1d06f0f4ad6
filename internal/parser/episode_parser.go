package parser

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/samber/lo"
)

// EpisodeParser decodes the per-show episode list into EpisodeSummary values
type EpisodeParser struct{}

// NewEpisodeParser creates a new episode parser
func NewEpisodeParser() *EpisodeParser {
	return &EpisodeParser{}
}

// Parse decodes a JSON array of episode records verbatim, keeping air order
func (p *EpisodeParser) Parse(body io.Reader) ([]models.EpisodeSummary, error) {
	var records []models.EpisodeRecord
	if err := json.NewDecoder(body).Decode(&records); err != nil {
		return nil, fmt.Errorf("decode episodes: %w", err)
	}

	episodes := lo.Map(records, func(r models.EpisodeRecord, _ int) models.EpisodeSummary {
		return models.EpisodeSummary{
			ID:     r.ID,
			Name:   r.Name,
			Season: r.Season,
			Number: r.Number,
		}
	})

	logger := config.GetLogger()
	logger.Debug().Int("total_episodes", len(episodes)).Msg("Decoded episode list response")
	return episodes, nil
}
