package web

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/view"
)

// index starts a fresh view on every load and drops the previous one.
func (h *Handler) index(w http.ResponseWriter, r *http.Request) {
	if oldID, ok := session.FromRequest(r); ok {
		if err := h.sessions.Delete(r.Context(), oldID); err != nil {
			logger := config.GetLogger()
			logger.Warn().Err(err).Str("session", oldID).Msg("Failed to drop previous session")
		}
	}
	if _, err := h.newSession(r.Context(), w); err != nil {
		h.renderPage(w, http.StatusInternalServerError, view.State{}, err)
		return
	}
	h.renderPage(w, http.StatusOK, view.State{}, nil)
}

func (h *Handler) search(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.renderPage(w, http.StatusInternalServerError, view.State{}, err)
		return
	}

	st, err := h.browser.Search(r.Context(), id, r.PostFormValue("q"))
	if errors.Is(err, apperrors.ErrEmptyQuery) {
		// An empty search leaves the page as it was.
		h.renderPage(w, http.StatusOK, st, nil)
		return
	}
	h.renderPage(w, statusFor(err), st, err)
}

func (h *Handler) selectShow(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.renderPage(w, http.StatusInternalServerError, view.State{}, err)
		return
	}

	showID, err := parseShowID(r)
	if err != nil {
		st, loadErr := h.browser.View(r.Context(), id)
		if loadErr != nil {
			err = loadErr
		}
		h.renderPage(w, statusFor(err), st, err)
		return
	}

	st, err := h.browser.SelectShow(r.Context(), id, showID)
	h.renderPage(w, statusFor(err), st, err)
}

func (h *Handler) renderPage(w http.ResponseWriter, status int, st view.State, err error) {
	data := render.PageData{State: st}
	if err != nil {
		data.Error = classifyError(err).Message
	}
	writeHTML(w, status, func(buf *bytes.Buffer) error {
		return h.renderer.Page(buf, data)
	})
}

func statusFor(err error) int {
	if err == nil {
		return http.StatusOK
	}
	return classifyError(err).Status
}
