// Package view holds the state of one browsing session: the shows container,
// the episodes container and its visibility. Renderers read it, flows write it.
package view

import "github.com/Belphemur/ShowFinder/internal/models"

// Token orders the requests of one flow within a session. Tokens only grow.
type Token uint64

// State is the per-session view model. The zero value is an empty page with the
// episodes container hidden.
type State struct {
	Query           string                  `json:"query"`
	Shows           []models.ShowSummary    `json:"shows"`
	SelectedShowID  int                     `json:"selectedShowId,omitempty"`
	Episodes        []models.EpisodeSummary `json:"episodes"`
	EpisodesVisible bool                    `json:"episodesVisible"`
	SearchToken     Token                   `json:"searchToken"`
	EpisodeToken    Token                   `json:"episodeToken"`
}

// PopulateShows replaces the shows container with shows, in order.
func (s *State) PopulateShows(shows []models.ShowSummary) {
	s.Shows = append(make([]models.ShowSummary, 0, len(shows)), shows...)
}

// PopulateEpisodes replaces the episodes container with the episodes of showID
// and makes it visible.
func (s *State) PopulateEpisodes(showID int, episodes []models.EpisodeSummary) {
	s.SelectedShowID = showID
	s.Episodes = append(make([]models.EpisodeSummary, 0, len(episodes)), episodes...)
	s.EpisodesVisible = true
}

// HideEpisodes hides the episodes container. Its contents are kept.
func (s *State) HideEpisodes() {
	s.EpisodesVisible = false
}

// BeginSearch records query and issues the token for a new search. It also
// supersedes any episode request in flight, since its episodes belong to the
// previous results.
func (s *State) BeginSearch(query string) Token {
	s.Query = query
	s.SearchToken++
	s.EpisodeToken++
	return s.SearchToken
}

// BeginEpisodes issues the token for a new episode request.
func (s *State) BeginEpisodes() Token {
	s.EpisodeToken++
	return s.EpisodeToken
}

// IsCurrentSearch reports whether t belongs to the latest search.
func (s *State) IsCurrentSearch(t Token) bool {
	return t == s.SearchToken
}

// IsCurrentEpisodes reports whether t belongs to the latest episode request.
func (s *State) IsCurrentEpisodes(t Token) bool {
	return t == s.EpisodeToken
}
