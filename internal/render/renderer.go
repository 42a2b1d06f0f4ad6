// Package render writes the page and its two containers as HTML.
package render

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/view"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static/app.css
var stylesheet []byte

// StylesheetPath is where the page expects Stylesheet to be served.
const StylesheetPath = "/static/app.css"

// Stylesheet returns the page stylesheet.
func Stylesheet() []byte {
	return stylesheet
}

// Container label values for metrics.RenderedItemsTotal.
const (
	ContainerShows    = "shows"
	ContainerEpisodes = "episodes"
)

// PageData is the input of the full page.
type PageData struct {
	State view.State
	// Error is shown in a banner above the containers when set.
	Error string
}

type episodesData struct {
	Episodes []models.EpisodeSummary
	Visible  bool
}

// Renderer renders containers from full data. Every call produces the whole
// container, never a patch.
type Renderer struct {
	tmpl        *template.Template
	summaryMode string
}

// New parses the embedded templates. summaryMode is one of the
// config.SummaryMode* values; anything else falls back to sanitize.
func New(summaryMode string) (*Renderer, error) {
	r := &Renderer{summaryMode: summaryMode}
	funcs := template.FuncMap{
		"summary": r.summaryHTML,
		"episodesOf": func(st view.State) episodesData {
			return episodesData{Episodes: st.Episodes, Visible: st.EpisodesVisible}
		},
	}
	tmpl, err := template.New("showfinder").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	r.tmpl = tmpl
	return r, nil
}

// summaryHTML applies the configured summary mode.
func (r *Renderer) summaryHTML(summary string) template.HTML {
	switch r.summaryMode {
	case config.SummaryModeRaw:
		return template.HTML(summary)
	case config.SummaryModeEscape:
		return template.HTML(template.HTMLEscapeString(SummaryText(summary)))
	default:
		return template.HTML(SanitizeSummary(summary))
	}
}

// Page writes the full page for data.
func (r *Renderer) Page(w io.Writer, data PageData) error {
	if err := r.tmpl.ExecuteTemplate(w, "page", data); err != nil {
		return fmt.Errorf("render page: %w", err)
	}
	metrics.RenderedItemsTotal.WithLabelValues(ContainerShows).Add(float64(len(data.State.Shows)))
	metrics.RenderedItemsTotal.WithLabelValues(ContainerEpisodes).Add(float64(len(data.State.Episodes)))
	return nil
}

// ShowsContainer writes the shows container: one card per show, in order.
func (r *Renderer) ShowsContainer(w io.Writer, shows []models.ShowSummary) error {
	if err := r.tmpl.ExecuteTemplate(w, "shows", shows); err != nil {
		return fmt.Errorf("render shows: %w", err)
	}
	metrics.RenderedItemsTotal.WithLabelValues(ContainerShows).Add(float64(len(shows)))
	return nil
}

// EpisodesContainer writes the episodes container with one list item per episode.
func (r *Renderer) EpisodesContainer(w io.Writer, episodes []models.EpisodeSummary, visible bool) error {
	if err := r.tmpl.ExecuteTemplate(w, "episodes", episodesData{Episodes: episodes, Visible: visible}); err != nil {
		return fmt.Errorf("render episodes: %w", err)
	}
	metrics.RenderedItemsTotal.WithLabelValues(ContainerEpisodes).Add(float64(len(episodes)))
	return nil
}
