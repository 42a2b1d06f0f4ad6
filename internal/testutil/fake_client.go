package testutil

import (
	"context"
	"sync"

	"github.com/Belphemur/ShowFinder/internal/models"
)

// FakeClient is an in-memory stand-in for the upstream client. Zero-value
// functions return empty results. Calls are recorded for assertions.
// This is a test helper and should not be used in production code.
type FakeClient struct {
	SearchShowsFunc func(ctx context.Context, query string) ([]models.ShowSummary, error)
	GetEpisodesFunc func(ctx context.Context, showID int) ([]models.EpisodeSummary, error)

	mu           sync.Mutex
	searchCalls  []string
	episodeCalls []int
}

func (f *FakeClient) SearchShows(ctx context.Context, query string) ([]models.ShowSummary, error) {
	f.mu.Lock()
	f.searchCalls = append(f.searchCalls, query)
	f.mu.Unlock()
	if f.SearchShowsFunc != nil {
		return f.SearchShowsFunc(ctx, query)
	}
	return []models.ShowSummary{}, nil
}

func (f *FakeClient) GetEpisodes(ctx context.Context, showID int) ([]models.EpisodeSummary, error) {
	f.mu.Lock()
	f.episodeCalls = append(f.episodeCalls, showID)
	f.mu.Unlock()
	if f.GetEpisodesFunc != nil {
		return f.GetEpisodesFunc(ctx, showID)
	}
	return []models.EpisodeSummary{}, nil
}

func (f *FakeClient) Close() error {
	return nil
}

// SearchCalls returns the queries passed to SearchShows, in call order.
func (f *FakeClient) SearchCalls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.searchCalls...)
}

// EpisodeCalls returns the show ids passed to GetEpisodes, in call order.
func (f *FakeClient) EpisodeCalls() []int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]int(nil), f.episodeCalls...)
}
