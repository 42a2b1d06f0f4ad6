package services

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/client"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/metrics"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/view"
)

// Flow label values for metrics.StaleResponsesTotal.
const (
	FlowSearch   = "search"
	FlowEpisodes = "episodes"
)

// errStale aborts a session update whose response was superseded.
var errStale = errors.New("response superseded by a newer request")

// DefaultShowBrowser implements ShowBrowser on top of an upstream client and a
// session manager. The upstream call runs outside the session lock, so a
// session can have several requests in flight; tokens decide which response
// is applied.
type DefaultShowBrowser struct {
	client   client.Client
	sessions *session.Manager
}

// NewShowBrowser creates a ShowBrowser.
func NewShowBrowser(c client.Client, sessions *session.Manager) ShowBrowser {
	return &DefaultShowBrowser{client: c, sessions: sessions}
}

func (b *DefaultShowBrowser) NewSession(ctx context.Context) (string, error) {
	return b.sessions.New(ctx)
}

func (b *DefaultShowBrowser) View(ctx context.Context, sessionID string) (view.State, error) {
	return b.sessions.Load(ctx, sessionID)
}

// Search hides the episodes container, fetches the matching shows and
// replaces the shows container if no newer search started meanwhile.
func (b *DefaultShowBrowser) Search(ctx context.Context, sessionID, query string) (view.State, error) {
	logger := config.GetLogger()

	query = strings.TrimSpace(query)
	if query == "" {
		st, err := b.sessions.Load(ctx, sessionID)
		if err != nil {
			return view.State{}, err
		}
		return st, apperrors.ErrEmptyQuery
	}

	var token view.Token
	if _, err := b.sessions.Update(ctx, sessionID, func(st *view.State) error {
		st.HideEpisodes()
		token = st.BeginSearch(query)
		return nil
	}); err != nil {
		return view.State{}, err
	}

	shows, fetchErr := b.client.SearchShows(ctx, query)
	if fetchErr != nil {
		logger.Error().Err(fetchErr).Str("query", query).Msg("Show search failed")
		apperrors.Report(ctx, fetchErr)
		st, err := b.sessions.Load(ctx, sessionID)
		if err != nil {
			return view.State{}, err
		}
		return st, fetchErr
	}

	st, err := b.sessions.Update(ctx, sessionID, func(st *view.State) error {
		if !st.IsCurrentSearch(token) {
			return errStale
		}
		st.PopulateShows(shows)
		return nil
	})
	if errors.Is(err, errStale) {
		metrics.StaleResponsesTotal.WithLabelValues(FlowSearch).Inc()
		logger.Debug().Str("query", query).Uint64("token", uint64(token)).Msg("Discarding stale search response")
		return st, nil
	}
	if err != nil {
		return view.State{}, err
	}

	logger.Info().Str("query", query).Int("shows", len(shows)).Msg("Search completed")
	return st, nil
}

// SelectShow fetches the episodes of showID and replaces and reveals the
// episodes container if no newer selection started meanwhile.
func (b *DefaultShowBrowser) SelectShow(ctx context.Context, sessionID string, showID int) (view.State, error) {
	logger := config.GetLogger()

	if showID <= 0 {
		st, err := b.sessions.Load(ctx, sessionID)
		if err != nil {
			return view.State{}, err
		}
		return st, &apperrors.ErrInvalidShowID{Value: strconv.Itoa(showID)}
	}

	var token view.Token
	if _, err := b.sessions.Update(ctx, sessionID, func(st *view.State) error {
		token = st.BeginEpisodes()
		return nil
	}); err != nil {
		return view.State{}, err
	}

	episodes, fetchErr := b.client.GetEpisodes(ctx, showID)
	if fetchErr != nil {
		logger.Error().Err(fetchErr).Int("show_id", showID).Msg("Episode listing failed")
		apperrors.Report(ctx, fetchErr)
		st, err := b.sessions.Load(ctx, sessionID)
		if err != nil {
			return view.State{}, err
		}
		return st, fetchErr
	}

	st, err := b.sessions.Update(ctx, sessionID, func(st *view.State) error {
		if !st.IsCurrentEpisodes(token) {
			return errStale
		}
		st.PopulateEpisodes(showID, episodes)
		return nil
	})
	if errors.Is(err, errStale) {
		metrics.StaleResponsesTotal.WithLabelValues(FlowEpisodes).Inc()
		logger.Debug().Int("show_id", showID).Uint64("token", uint64(token)).Msg("Discarding stale episode response")
		return st, nil
	}
	if err != nil {
		return view.State{}, err
	}

	logger.Info().Int("show_id", showID).Int("episodes", len(episodes)).Msg("Episodes loaded")
	return st, nil
}
