package testutil

import (
	"encoding/json"
	"strconv"
)

// StrPtr is a helper for creating *string values in fixtures
func StrPtr(v string) *string {
	return &v
}

// SearchRowOptions describes one element of a generated show search response
type SearchRowOptions struct {
	ShowID  int
	Name    string
	Summary string
	Score   float64
	// MediumImage is the show.image.medium URL. When nil, show.image is null.
	MediumImage *string
	// OmitImage drops the show.image key entirely instead of sending null.
	OmitImage bool
}

// EpisodeRowOptions describes one element of a generated episode list response
type EpisodeRowOptions struct {
	ID     int
	Name   string
	Season int
	Number int
}

// GenerateSearchJSON builds a body shaped like the upstream /search/shows response,
// including fields the application ignores.
func GenerateSearchJSON(rows []SearchRowOptions) string {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		show := map[string]any{
			"id":       row.ShowID,
			"url":      "https://www.tvmaze.com/shows/" + strconv.Itoa(row.ShowID),
			"name":     row.Name,
			"type":     "Scripted",
			"language": "English",
			"genres":   []string{"Drama"},
			"summary":  row.Summary,
		}
		if !row.OmitImage {
			if row.MediumImage != nil {
				show["image"] = map[string]any{
					"medium":   *row.MediumImage,
					"original": *row.MediumImage + "?original",
				}
			} else {
				show["image"] = nil
			}
		}
		out = append(out, map[string]any{
			"score": row.Score,
			"show":  show,
		})
	}
	return mustJSON(out)
}

// GenerateEpisodesJSON builds a body shaped like the upstream /shows/{id}/episodes response.
func GenerateEpisodesJSON(rows []EpisodeRowOptions) string {
	out := make([]map[string]any, 0, len(rows))
	for _, row := range rows {
		out = append(out, map[string]any{
			"id":      row.ID,
			"url":     "https://www.tvmaze.com/episodes/" + strconv.Itoa(row.ID),
			"name":    row.Name,
			"season":  row.Season,
			"number":  row.Number,
			"type":    "regular",
			"airdate": "2008-01-20",
			"runtime": 60,
		})
	}
	return mustJSON(out)
}

func mustJSON(v any) string {
	b, err := json.Marshal(v)
	if err != nil {
		panic(err)
	}
	return string(b)
}
