package session

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/store"
	"github.com/Belphemur/ShowFinder/internal/view"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()
	s, err := store.New("memory", store.ProviderConfig{Size: 100, TTL: time.Hour})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return NewManager(s, time.Hour)
}

func TestManager_NewStartsEmpty(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)

	id, err := m.New(ctx)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if id == "" {
		t.Fatal("Expected a session id")
	}

	st, err := m.Load(ctx, id)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Shows) != 0 || st.EpisodesVisible {
		t.Fatalf("Expected empty view, got %+v", st)
	}
}

func TestManager_UpdatePersists(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _ := m.New(ctx)

	_, err := m.Update(ctx, id, func(st *view.State) error {
		st.PopulateShows([]models.ShowSummary{{ID: 1, Name: "Girls"}})
		return nil
	})
	if err != nil {
		t.Fatalf("Update: %v", err)
	}

	st, _ := m.Load(ctx, id)
	if len(st.Shows) != 1 || st.Shows[0].Name != "Girls" {
		t.Fatalf("Expected persisted show, got %+v", st.Shows)
	}
}

func TestManager_UpdateErrorDoesNotSave(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _ := m.New(ctx)
	boom := errors.New("boom")

	_, err := m.Update(ctx, id, func(st *view.State) error {
		st.PopulateShows([]models.ShowSummary{{ID: 1}})
		return boom
	})
	if !errors.Is(err, boom) {
		t.Fatalf("Expected fn error, got %v", err)
	}

	st, _ := m.Load(ctx, id)
	if len(st.Shows) != 0 {
		t.Fatal("State should be unchanged when fn fails")
	}
}

func TestManager_UnknownSessionIsEmpty(t *testing.T) {
	m := newTestManager(t)
	st, err := m.Load(context.Background(), "0b5c8f59-4a39-4d5e-8a7e-6f3b8c1d2e4f")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Shows) != 0 {
		t.Fatalf("Expected empty view, got %+v", st)
	}
}

func TestManager_ConcurrentUpdatesAreSerialized(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _ := m.New(ctx)

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = m.Update(ctx, id, func(st *view.State) error {
				st.BeginSearch("q")
				return nil
			})
		}()
	}
	wg.Wait()

	st, _ := m.Load(ctx, id)
	if st.SearchToken != 50 {
		t.Fatalf("Expected 50 serialized token increments, got %d", st.SearchToken)
	}
}

func TestManager_Delete(t *testing.T) {
	ctx := context.Background()
	m := newTestManager(t)
	id, _ := m.New(ctx)
	_, _ = m.Update(ctx, id, func(st *view.State) error {
		st.BeginSearch("q")
		return nil
	})

	if err := m.Delete(ctx, id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	st, _ := m.Load(ctx, id)
	if st.SearchToken != 0 {
		t.Fatal("Expected empty view after Delete")
	}
}

func TestCookieRoundTrip(t *testing.T) {
	m := newTestManager(t)
	id, _ := m.New(context.Background())

	rec := httptest.NewRecorder()
	m.SetCookie(rec, id)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range rec.Result().Cookies() {
		req.AddCookie(c)
	}

	got, ok := FromRequest(req)
	if !ok || got != id {
		t.Fatalf("Expected session %s from cookie, got %q ok=%v", id, got, ok)
	}
}

func TestFromRequest_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		cookie *http.Cookie
	}{
		{"no cookie", nil},
		{"malformed id", &http.Cookie{Name: CookieName, Value: "not-a-uuid"}},
		{"empty id", &http.Cookie{Name: CookieName, Value: ""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tt.cookie != nil {
				req.AddCookie(tt.cookie)
			}
			if _, ok := FromRequest(req); ok {
				t.Fatal("Expected no session id")
			}
		})
	}
}
