package services

import (
	"context"

	"github.com/Belphemur/ShowFinder/internal/view"
)

// ShowBrowser drives the two user flows against a session's view state.
type ShowBrowser interface {
	// NewSession starts a session with an empty view.
	NewSession(ctx context.Context) (string, error)
	// View returns the current view of a session.
	View(ctx context.Context, sessionID string) (view.State, error)
	// Search runs the show search flow and returns the resulting view. On a
	// fetch error the view is returned with the shows container unchanged.
	Search(ctx context.Context, sessionID, query string) (view.State, error)
	// SelectShow runs the episode listing flow for showID.
	SelectShow(ctx context.Context, sessionID string, showID int) (view.State, error)
}
