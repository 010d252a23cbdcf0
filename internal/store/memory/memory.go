// Package memory holds scan records in process memory. It backs tests and
// single-shot CLI runs that have no database configured.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/MOYARU/mas/internal/store"
)

type Store struct {
	platform store.Platform

	mu      sync.RWMutex
	records map[string]*store.ScanRecord
}

func NewStore(platform store.Platform) *Store {
	return &Store{
		platform: platform,
		records:  make(map[string]*store.ScanRecord),
	}
}

func (s *Store) Platform() store.Platform { return s.platform }

func (s *Store) FindByHash(_ context.Context, hash string) (*store.ScanRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rec, ok := s.records[hash]
	if !ok {
		return nil, store.ErrNotFound
	}
	cp := *rec
	cp.Platform = s.platform
	return &cp, nil
}

func (s *Store) Save(_ context.Context, hash string, rec *store.ScanRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.records[hash] = rec
	return nil
}

// RecentScans is the in-memory timestamp tracker.
type RecentScans struct {
	mu    sync.RWMutex
	times map[string]time.Time
	now   func() time.Time
}

func NewRecentScans() *RecentScans {
	return &RecentScans{times: make(map[string]time.Time), now: time.Now}
}

func (r *RecentScans) Timestamp(_ context.Context, hash string) (time.Time, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ts, ok := r.times[hash]
	if !ok {
		return time.Time{}, store.ErrNotFound
	}
	return ts, nil
}

func (r *RecentScans) Touch(_ context.Context, hash string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.times[hash] = r.now()
	return nil
}
