package store

import "context"

// instrumentedStore records hit, miss and error metrics for the wrapped store.
type instrumentedStore struct {
	inner Store
	group string
}

func newInstrumentedStore(inner Store, group string) *instrumentedStore {
	registerEntriesCollector(group, inner.Len)
	return &instrumentedStore{inner: inner, group: group}
}

func (s *instrumentedStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	val, ok, err := s.inner.Get(ctx, key)
	switch {
	case err != nil:
		ErrorsTotal.WithLabelValues(s.group, "get").Inc()
	case ok:
		HitsTotal.WithLabelValues(s.group).Inc()
	default:
		MissesTotal.WithLabelValues(s.group).Inc()
	}
	return val, ok, err
}

func (s *instrumentedStore) Set(ctx context.Context, key string, value []byte) error {
	err := s.inner.Set(ctx, key, value)
	if err != nil {
		ErrorsTotal.WithLabelValues(s.group, "set").Inc()
	}
	return err
}

func (s *instrumentedStore) Delete(ctx context.Context, key string) error {
	err := s.inner.Delete(ctx, key)
	if err != nil {
		ErrorsTotal.WithLabelValues(s.group, "delete").Inc()
	}
	return err
}

func (s *instrumentedStore) Len() int {
	return s.inner.Len()
}

// Close unregisters the entries collector and closes the underlying store.
func (s *instrumentedStore) Close() error {
	unregisterEntriesCollector(s.group)
	return s.inner.Close()
}
