package web

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/PuerkitoBio/goquery"

	"github.com/Belphemur/ShowFinder/internal/apperrors"
	"github.com/Belphemur/ShowFinder/internal/config"
	"github.com/Belphemur/ShowFinder/internal/httputil"
	"github.com/Belphemur/ShowFinder/internal/models"
	"github.com/Belphemur/ShowFinder/internal/render"
	"github.com/Belphemur/ShowFinder/internal/services"
	"github.com/Belphemur/ShowFinder/internal/session"
	"github.com/Belphemur/ShowFinder/internal/store"
	"github.com/Belphemur/ShowFinder/internal/testutil"
)

func newTestRouter(t *testing.T, fake *testutil.FakeClient) http.Handler {
	t.Helper()
	router, _ := newTestRouterWithSessions(t, fake)
	return router
}

func newTestRouterWithSessions(t *testing.T, fake *testutil.FakeClient) (http.Handler, *session.Manager) {
	t.Helper()
	s, err := store.New("memory", store.ProviderConfig{Size: 100, TTL: time.Hour})
	if err != nil {
		t.Fatalf("store.New: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	renderer, err := render.New(config.SummaryModeSanitize)
	if err != nil {
		t.Fatalf("render.New: %v", err)
	}
	sessions := session.NewManager(s, time.Hour)
	browser := services.NewShowBrowser(fake, sessions)
	return NewHandler(browser, fake, renderer, sessions).Router(), sessions
}

func girlsClient() *testutil.FakeClient {
	return &testutil.FakeClient{
		SearchShowsFunc: func(_ context.Context, _ string) ([]models.ShowSummary, error) {
			return []models.ShowSummary{
				{ID: 139, Name: "Girls", Summary: "<p>Four friends.</p>", Image: "https://static.tvmaze.com/139.jpg"},
				{ID: 23542, Name: "Good Girls", Image: config.DefaultPlaceholderImageURL},
			}, nil
		},
		GetEpisodesFunc: func(_ context.Context, showID int) ([]models.EpisodeSummary, error) {
			if showID == 404 {
				return nil, apperrors.NewShowNotFoundError(showID)
			}
			return []models.EpisodeSummary{
				{ID: 1, Name: "Pilot", Season: 1, Number: 1},
				{ID: 2, Name: "Vagina Panic", Season: 1, Number: 2},
			}, nil
		},
	}
}

// startSession loads the page and returns its session cookie.
func startSession(t *testing.T, router http.Handler) *http.Cookie {
	t.Helper()
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/", nil))
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			return c
		}
	}
	t.Fatal("Expected a session cookie from GET /")
	return nil
}

func postForm(t *testing.T, router http.Handler, cookie *http.Cookie, path string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func get(t *testing.T, router http.Handler, cookie *http.Cookie, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != nil {
		req.AddCookie(cookie)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func parseDoc(t *testing.T, rec *httptest.ResponseRecorder) *goquery.Document {
	t.Helper()
	doc, err := goquery.NewDocumentFromReader(rec.Body)
	if err != nil {
		t.Fatalf("parse HTML: %v", err)
	}
	return doc
}

// =============================================================================
// Page
// =============================================================================

func TestIndex_FreshPage(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	rec := get(t, router, nil, "/")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if doc.Find("#shows-list .card").Length() != 0 {
		t.Error("Expected empty shows container")
	}
	if _, hidden := doc.Find("#episodes-area").Attr("hidden"); !hidden {
		t.Error("Expected hidden episodes area")
	}
}

func TestIndex_DropsPreviousSession(t *testing.T) {
	router, sessions := newTestRouterWithSessions(t, girlsClient())
	old := startSession(t, router)
	postForm(t, router, old, "/search", url.Values{"q": {"girls"}})

	ctx := context.Background()
	if st, _ := sessions.Load(ctx, old.Value); len(st.Shows) != 2 {
		t.Fatalf("Expected the search to be stored, got %+v", st)
	}

	rec := get(t, router, old, "/")
	var fresh *http.Cookie
	for _, c := range rec.Result().Cookies() {
		if c.Name == session.CookieName {
			fresh = c
		}
	}
	if fresh == nil || fresh.Value == old.Value {
		t.Fatalf("Expected a new session cookie, got %+v", fresh)
	}

	st, err := sessions.Load(ctx, old.Value)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(st.Shows) != 0 || st.SearchToken != 0 {
		t.Errorf("Expected the previous session to be dropped, got %+v", st)
	}
}

func TestSearch_RendersCards(t *testing.T) {
	fake := girlsClient()
	router := newTestRouter(t, fake)
	cookie := startSession(t, router)

	rec := postForm(t, router, cookie, "/search", url.Values{"q": {"girls"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)

	cards := doc.Find("#shows-list .card")
	if cards.Length() != 2 {
		t.Fatalf("Expected 2 cards, got %d", cards.Length())
	}
	if id, _ := cards.First().Attr("data-show-id"); id != "139" {
		t.Errorf("Expected first card 139, got %q", id)
	}
	if src, _ := cards.Eq(1).Find("img").Attr("src"); src != config.DefaultPlaceholderImageURL {
		t.Errorf("Expected placeholder image, got %q", src)
	}
	if calls := fake.SearchCalls(); len(calls) != 1 || calls[0] != "girls" {
		t.Errorf("Expected one search for girls, got %v", calls)
	}
}

func TestSearch_EmptyQueryLeavesPage(t *testing.T) {
	fake := girlsClient()
	router := newTestRouter(t, fake)
	cookie := startSession(t, router)
	postForm(t, router, cookie, "/search", url.Values{"q": {"girls"}})

	rec := postForm(t, router, cookie, "/search", url.Values{"q": {""}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if doc.Find("#shows-list .card").Length() != 2 {
		t.Error("Expected previous results to stay")
	}
	if doc.Find("#error-banner").Length() != 0 {
		t.Error("Empty search should not show an error")
	}
	if calls := fake.SearchCalls(); len(calls) != 1 {
		t.Errorf("Expected no request for the empty search, got %v", calls)
	}
}

func TestSearch_UpstreamErrorShowsBanner(t *testing.T) {
	fake := girlsClient()
	router := newTestRouter(t, fake)
	cookie := startSession(t, router)
	postForm(t, router, cookie, "/search", url.Values{"q": {"girls"}})

	fake.SearchShowsFunc = func(_ context.Context, _ string) ([]models.ShowSummary, error) {
		return nil, &apperrors.ErrUpstreamStatus{Endpoint: "search", StatusCode: 500}
	}
	rec := postForm(t, router, cookie, "/search", url.Values{"q": {"boys"}})
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("Expected 502, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if doc.Find("#error-banner").Length() != 1 {
		t.Error("Expected an error banner")
	}
	if doc.Find("#shows-list .card").Length() != 2 {
		t.Error("Expected shows container unchanged after a failed search")
	}
}

func TestSelectShow_RevealsEpisodes(t *testing.T) {
	fake := girlsClient()
	router := newTestRouter(t, fake)
	cookie := startSession(t, router)
	postForm(t, router, cookie, "/search", url.Values{"q": {"girls"}})

	rec := postForm(t, router, cookie, "/shows/139/episodes", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)

	if _, hidden := doc.Find("#episodes-area").Attr("hidden"); hidden {
		t.Error("Expected visible episodes area")
	}
	items := doc.Find("#episodes-list li")
	if items.Length() != 2 {
		t.Fatalf("Expected 2 episodes, got %d", items.Length())
	}
	if got := items.First().Text(); got != "Pilot (Season 1, Episode 1)" {
		t.Errorf("Unexpected label %q", got)
	}
	if doc.Find("#shows-list .card").Length() != 2 {
		t.Error("Shows container should be kept when listing episodes")
	}
	if calls := fake.EpisodeCalls(); len(calls) != 1 || calls[0] != 139 {
		t.Errorf("Expected exactly one episode request for show 139, got %v", calls)
	}
}

func TestSelectShow_ThenSearchHidesEpisodes(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	cookie := startSession(t, router)
	postForm(t, router, cookie, "/shows/139/episodes", nil)

	rec := postForm(t, router, cookie, "/search", url.Values{"q": {"girls"}})
	doc := parseDoc(t, rec)
	if _, hidden := doc.Find("#episodes-area").Attr("hidden"); !hidden {
		t.Error("Expected a new search to hide the episodes area")
	}
}

func TestSelectShow_InvalidID(t *testing.T) {
	fake := girlsClient()
	router := newTestRouter(t, fake)
	cookie := startSession(t, router)

	rec := postForm(t, router, cookie, "/shows/abc/episodes", nil)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rec.Code)
	}
	if calls := fake.EpisodeCalls(); len(calls) != 0 {
		t.Errorf("Expected no upstream call, got %v", calls)
	}
}

func TestReloadStartsFreshView(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	cookie := startSession(t, router)
	postForm(t, router, cookie, "/search", url.Values{"q": {"girls"}})

	rec := get(t, router, cookie, "/")
	doc := parseDoc(t, rec)
	if doc.Find("#shows-list .card").Length() != 0 {
		t.Error("Expected reload to start with an empty view")
	}
	if v, _ := doc.Find("#search-query").Attr("value"); v != "" {
		t.Errorf("Expected empty search input after reload, got %q", v)
	}
}

func TestSearch_WithoutCookieStartsSession(t *testing.T) {
	router := newTestRouter(t, girlsClient())

	rec := postForm(t, router, nil, "/search", url.Values{"q": {"girls"}})
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	found := false
	for _, c := range rec.Result().Cookies() {
		found = found || c.Name == session.CookieName
	}
	if !found {
		t.Error("Expected a session cookie to be set")
	}
}

// =============================================================================
// Fragments
// =============================================================================

func TestShowsFragment(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	cookie := startSession(t, router)

	rec := get(t, router, cookie, "/fragments/shows?q=girls")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	body := rec.Body.String()
	if !strings.HasPrefix(body, `<div id="shows-list"`) {
		t.Errorf("Expected only the shows container, got %q", body[:min(len(body), 60)])
	}
	if strings.Contains(body, "<form id=\"search-form\"") {
		t.Error("Fragment should not contain the page layout")
	}
}

func TestShowsFragment_EmptyQuery(t *testing.T) {
	fake := girlsClient()
	router := newTestRouter(t, fake)
	cookie := startSession(t, router)

	rec := get(t, router, cookie, "/fragments/shows?q=")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("Expected 204, got %d", rec.Code)
	}
	if len(fake.SearchCalls()) != 0 {
		t.Error("Expected no upstream call")
	}
}

func TestEpisodesFragment(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	cookie := startSession(t, router)

	rec := get(t, router, cookie, "/fragments/shows/139/episodes")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	doc := parseDoc(t, rec)
	if doc.Find("#episodes-list li").Length() != 2 {
		t.Error("Expected 2 episodes in the fragment")
	}
}

func TestEpisodesFragment_NotFound(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	cookie := startSession(t, router)

	rec := get(t, router, cookie, "/fragments/shows/404/episodes")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("Expected 404, got %d", rec.Code)
	}
}

// =============================================================================
// JSON API
// =============================================================================

func TestAPISearch(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	rec := get(t, router, nil, "/api/search?q=girls")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Status string               `json:"status"`
		Data   []models.ShowSummary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Status != "ok" || len(body.Data) != 2 || body.Data[0].ID != 139 {
		t.Fatalf("Unexpected response %+v", body)
	}
}

func TestAPIErrors(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		wantStatus int
		wantCode   string
	}{
		{"empty query", "/api/search?q=%20", http.StatusBadRequest, "EMPTY_QUERY"},
		{"invalid id", "/api/shows/-3/episodes", http.StatusBadRequest, "INVALID_SHOW_ID"},
		{"unknown show", "/api/shows/404/episodes", http.StatusNotFound, "NOT_FOUND"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(t, girlsClient())
			rec := get(t, router, nil, tt.path)

			if rec.Code != tt.wantStatus {
				t.Fatalf("Expected %d, got %d", tt.wantStatus, rec.Code)
			}
			var body httputil.Response
			if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if body.Status != "error" || body.Error == nil || body.Error.Code != tt.wantCode {
				t.Fatalf("Unexpected envelope %+v", body)
			}
		})
	}
}

func TestAPIEpisodes(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	rec := get(t, router, nil, "/api/shows/139/episodes")

	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	var body struct {
		Data []models.EpisodeSummary `json:"data"`
	}
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(body.Data) != 2 || body.Data[1].Number != 2 {
		t.Fatalf("Unexpected episodes %+v", body.Data)
	}
}

// =============================================================================
// Infrastructure
// =============================================================================

func TestHealthz(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	rec := get(t, router, nil, "/healthz")
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
}

func TestStylesheet(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	rec := get(t, router, nil, render.StylesheetPath)
	if rec.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "text/css") {
		t.Errorf("Expected text/css, got %q", ct)
	}
	if !strings.Contains(rec.Body.String(), ".stretched-link::after") {
		t.Error("Expected the card-wide trigger rule")
	}
}

func TestSecurityHeaders(t *testing.T) {
	router := newTestRouter(t, girlsClient())
	rec := get(t, router, nil, "/")

	for _, h := range []string{"X-Content-Type-Options", "X-Frame-Options", "Content-Security-Policy"} {
		if rec.Header().Get(h) == "" {
			t.Errorf("Expected header %s", h)
		}
	}
}

func TestNewHTTPServer(t *testing.T) {
	srv := NewHTTPServer("localhost", 0, http.NotFoundHandler())
	if srv.Addr != "localhost:8080" {
		t.Errorf("Expected default port, got %s", srv.Addr)
	}
	if srv.ReadHeaderTimeout == 0 {
		t.Error("Expected a read header timeout")
	}
}
