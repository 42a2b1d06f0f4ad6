// Package web serves the HTML user interface and the JSON API.
package web

import (
	"bytes"
	"context"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	sentryhttp "github.com/getsentry/sentry-go/http"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/httputil"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/session"
)

// Handler serves the page, its container fragments and the JSON API.
type Handler struct {
	browser  services.ShowBrowser
	client   client.Client
	renderer *render.Renderer
	sessions *session.Manager
}

// NewHandler creates a Handler. The JSON API calls c directly and keeps no
// session state.
func NewHandler(browser services.ShowBrowser, c client.Client, renderer *render.Renderer, sessions *session.Manager) *Handler {
	return &Handler{
		browser:  browser,
		client:   c,
		renderer: renderer,
		sessions: sessions,
	}
}

// Router returns the HTTP routes with their middleware.
func (h *Handler) Router() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)
	if apperrors.ReportingEnabled() {
		r.Use(sentryhttp.New(sentryhttp.Options{Repanic: true}).Handle)
	}
	r.Use(securityHeaders)

	r.Get("/", h.index)
	r.Post("/search", h.search)
	r.Post("/shows/{id}/episodes", h.selectShow)

	r.Route("/fragments", func(r chi.Router) {
		r.Get("/shows", h.showsFragment)
		r.Get("/shows/{id}/episodes", h.episodesFragment)
	})

	r.Route("/api", func(r chi.Router) {
		r.Get("/search", h.apiSearch)
		r.Get("/shows/{id}/episodes", h.apiEpisodes)
	})

	r.Get(render.StylesheetPath, h.stylesheet)
	r.Get("/healthz", h.healthz)
	return r
}

// sessionID returns the session of r, starting a new one when the request
// carries none.
func (h *Handler) sessionID(w http.ResponseWriter, r *http.Request) (string, error) {
	if id, ok := session.FromRequest(r); ok {
		return id, nil
	}
	return h.newSession(r.Context(), w)
}

func (h *Handler) newSession(ctx context.Context, w http.ResponseWriter) (string, error) {
	id, err := h.browser.NewSession(ctx)
	if err != nil {
		return "", err
	}
	h.sessions.SetCookie(w, id)
	return id, nil
}

func parseShowID(r *http.Request) (int, error) {
	raw := chi.URLParam(r, "id")
	id, err := strconv.Atoi(raw)
	if err != nil || id <= 0 {
		return 0, &apperrors.ErrInvalidShowID{Value: raw}
	}
	return id, nil
}

// writeHTML buffers the rendering so a template failure never leaves a
// half-written page.
func writeHTML(w http.ResponseWriter, status int, render func(*bytes.Buffer) error) {
	var buf bytes.Buffer
	if err := render(&buf); err != nil {
		logger := config.GetLogger()
		logger.Error().Err(err).Msg("Failed to render HTML")
		http.Error(w, "failed to render page", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = w.Write(buf.Bytes())
}

func (h *Handler) stylesheet(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/css; charset=utf-8")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(render.Stylesheet())
}

func (h *Handler) healthz(w http.ResponseWriter, _ *http.Request) {
	httputil.WriteJSON(w, http.StatusOK, map[string]string{"health": "ok"})
}

func trimmedQuery(r *http.Request) string {
	return strings.TrimSpace(r.FormValue("q"))
}
