// Package session maps browser sessions to their view state in a store.
package session

import (
	"context"
	"encoding/json"
	"fmt"
	"hash/fnv"
	"net/http"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Belphemur/ShowFinder/internal/store"
	"github.com/Belphemur/ShowFinder/internal/view"
)

// CookieName is the cookie carrying the session id.
const CookieName = "showfinder_session"

// lockStripes is the number of mutexes sessions are hashed onto.
const lockStripes = 64

// Manager loads and saves view.State per session id. Updates to one session
// are serialized within this process; across replicas sharing a Redis store
// the last write wins.
type Manager struct {
	store  store.Store
	ttl    time.Duration
	stripe [lockStripes]sync.Mutex
}

// NewManager creates a Manager backed by s. ttl sets the cookie lifetime and
// should match the store TTL.
func NewManager(s store.Store, ttl time.Duration) *Manager {
	return &Manager{store: s, ttl: ttl}
}

func (m *Manager) lock(id string) *sync.Mutex {
	h := fnv.New32a()
	_, _ = h.Write([]byte(id))
	return &m.stripe[h.Sum32()%lockStripes]
}

// New starts a session with an empty view and returns its id.
func (m *Manager) New(ctx context.Context) (string, error) {
	id := uuid.NewString()
	if err := m.save(ctx, id, &view.State{}); err != nil {
		return "", err
	}
	return id, nil
}

// Load returns the view state of id. An unknown or expired session yields an
// empty view.
func (m *Manager) Load(ctx context.Context, id string) (view.State, error) {
	mu := m.lock(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := m.load(ctx, id)
	if err != nil {
		return view.State{}, err
	}
	return *st, nil
}

// Update applies fn to the state of id and saves the result. Nothing is saved
// when fn returns an error. The returned state is the one after fn ran.
func (m *Manager) Update(ctx context.Context, id string, fn func(*view.State) error) (view.State, error) {
	mu := m.lock(id)
	mu.Lock()
	defer mu.Unlock()

	st, err := m.load(ctx, id)
	if err != nil {
		return view.State{}, err
	}
	if err := fn(st); err != nil {
		return *st, err
	}
	if err := m.save(ctx, id, st); err != nil {
		return view.State{}, err
	}
	return *st, nil
}

// Delete drops the session.
func (m *Manager) Delete(ctx context.Context, id string) error {
	return m.store.Delete(ctx, id)
}

func (m *Manager) load(ctx context.Context, id string) (*view.State, error) {
	raw, ok, err := m.store.Get(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	st := &view.State{}
	if !ok {
		return st, nil
	}
	if err := json.Unmarshal(raw, st); err != nil {
		return nil, fmt.Errorf("decode session %s: %w", id, err)
	}
	return st, nil
}

func (m *Manager) save(ctx context.Context, id string, st *view.State) error {
	raw, err := json.Marshal(st)
	if err != nil {
		return fmt.Errorf("encode session %s: %w", id, err)
	}
	if err := m.store.Set(ctx, id, raw); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// FromRequest returns the session id carried by r, if it is well formed.
func FromRequest(r *http.Request) (string, bool) {
	c, err := r.Cookie(CookieName)
	if err != nil {
		return "", false
	}
	if _, err := uuid.Parse(c.Value); err != nil {
		return "", false
	}
	return c.Value, true
}

// SetCookie writes the session cookie for id.
func (m *Manager) SetCookie(w http.ResponseWriter, id string) {
	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    id,
		Path:     "/",
		MaxAge:   int(m.ttl.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
