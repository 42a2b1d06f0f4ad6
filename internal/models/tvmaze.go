package models

// SearchResult is a single element of the upstream show search response.
type SearchResult struct {
	Score float64     `json:"score"`
	Show  *ShowRecord `json:"show"`
}

// ShowRecord is the subset of the upstream show record used by the application.
type ShowRecord struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Summary string `json:"summary"`
	Image   *Image `json:"image"`
}

// Image holds the upstream image URLs. Either may be empty.
type Image struct {
	Medium   string `json:"medium"`
	Original string `json:"original"`
}

// EpisodeRecord is the subset of the upstream episode record used by the application.
type EpisodeRecord struct {
	ID     int    `json:"id"`
	Name   string `json:"name"`
	Season int    `json:"season"`
	Number int    `json:"number"`
}
