package models

import "fmt"

// EpisodeSummary is the display-ready projection of an upstream episode record
type EpisodeSummary struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}

// Label returns the list-item text for the episode, e.g. "Pilot (Season 1, Episode 1)".
func (e EpisodeSummary) Label() string {
	return fmt.Sprintf("%s (Season %d, Episode %d)", e.Name, e.Season, e.Number)
}
