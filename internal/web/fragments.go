package web

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
)

// showsFragment runs a search and returns only the shows container.
// An empty query answers 204 so the client keeps its container.
func (h *Handler) showsFragment(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.fragmentError(w, err)
		return
	}

	st, err := h.browser.Search(r.Context(), id, r.URL.Query().Get("q"))
	if errors.Is(err, apperrors.ErrEmptyQuery) {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	if err != nil {
		h.fragmentError(w, err)
		return
	}

	writeHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.ShowsContainer(buf, st.Shows)
	})
}

// episodesFragment loads the episodes of a show and returns only the
// episodes container.
func (h *Handler) episodesFragment(w http.ResponseWriter, r *http.Request) {
	id, err := h.sessionID(w, r)
	if err != nil {
		h.fragmentError(w, err)
		return
	}
	showID, err := parseShowID(r)
	if err != nil {
		h.fragmentError(w, err)
		return
	}

	st, err := h.browser.SelectShow(r.Context(), id, showID)
	if err != nil {
		h.fragmentError(w, err)
		return
	}

	writeHTML(w, http.StatusOK, func(buf *bytes.Buffer) error {
		return h.renderer.EpisodesContainer(buf, st.Episodes, st.EpisodesVisible)
	})
}

func (h *Handler) fragmentError(w http.ResponseWriter, err error) {
	info := classifyError(err)
	http.Error(w, info.Message, info.Status)
}
