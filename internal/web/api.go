package web

import (
	"net/http"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/httputil"
)

func (h *Handler) apiSearch(w http.ResponseWriter, r *http.Request) {
	query := trimmedQuery(r)
	if query == "" {
		h.apiError(w, r, apperrors.ErrEmptyQuery)
		return
	}

	shows, err := h.client.SearchShows(r.Context(), query)
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, shows)
}

func (h *Handler) apiEpisodes(w http.ResponseWriter, r *http.Request) {
	showID, err := parseShowID(r)
	if err != nil {
		h.apiError(w, r, err)
		return
	}

	episodes, err := h.client.GetEpisodes(r.Context(), showID)
	if err != nil {
		h.apiError(w, r, err)
		return
	}
	httputil.WriteJSON(w, http.StatusOK, episodes)
}

func (h *Handler) apiError(w http.ResponseWriter, r *http.Request, err error) {
	info := classifyError(err)
	if info.Status >= http.StatusInternalServerError {
		logger := config.GetLogger()
		logger.Error().Err(err).Str("path", r.URL.Path).Msg("API request failed")
		apperrors.Report(r.Context(), err)
	}
	httputil.WriteError(w, info.Status, info.Code, info.Message)
}
