package store

import (
	"context"

	lru "github.com/hashicorp/golang-lru/v2/expirable"
)

func init() {
	Register("memory", newMemoryStore)
}

// memoryStore keeps entries in an expirable LRU. Get re-adds the entry so
// the TTL slides with activity.
type memoryStore struct {
	inner *lru.LRU[string, []byte]
}

func newMemoryStore(cfg ProviderConfig) (Store, error) {
	var onEvict lru.EvictCallback[string, []byte]
	if cfg.OnEvict != nil {
		onEvict = func(key string, value []byte) {
			cfg.OnEvict(key, value)
		}
	}
	return &memoryStore{
		inner: lru.NewLRU[string, []byte](cfg.Size, onEvict, cfg.TTL),
	}, nil
}

func (m *memoryStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	val, ok := m.inner.Get(key)
	if !ok {
		return nil, false, nil
	}
	m.inner.Add(key, val)
	return append([]byte(nil), val...), true, nil
}

func (m *memoryStore) Set(_ context.Context, key string, value []byte) error {
	m.inner.Add(key, append([]byte(nil), value...))
	return nil
}

func (m *memoryStore) Delete(_ context.Context, key string) error {
	m.inner.Remove(key)
	return nil
}

func (m *memoryStore) Len() int {
	return m.inner.Len()
}

func (m *memoryStore) Close() error {
	return nil
}
