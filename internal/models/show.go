package models

// ShowSummary is the display-ready projection of an upstream show record
type ShowSummary struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"` // May contain markup
	Image   string `json:"image"`
}
