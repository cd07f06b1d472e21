package storage

import (
	"context"
	"maps"
	"slices"
	"sync"
)

// MemoryStore keeps records for the lifetime of the process
type MemoryStore struct {
	mu          sync.RWMutex
	initialized bool
	matches     map[string]MatchRecord
	order       []string // Insertion order, oldest first
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Init(_ context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.initialized = true
	s.matches = make(map[string]MatchRecord)
	s.order = nil
	return nil
}

func (s *MemoryStore) SaveMatch(_ context.Context, rec MatchRecord) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.initialized {
		return ErrNotInitialized
	}

	if _, ok := s.matches[rec.ID]; !ok {
		s.order = append(s.order, rec.ID)
	}
	rec.Scores = maps.Clone(rec.Scores)
	s.matches[rec.ID] = rec
	return nil
}

func (s *MemoryStore) GetMatch(_ context.Context, id string) (MatchRecord, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return MatchRecord{}, false, ErrNotInitialized
	}

	rec, ok := s.matches[id]
	rec.Scores = maps.Clone(rec.Scores)
	return rec, ok, nil
}

func (s *MemoryStore) ListMatches(_ context.Context, limit int) ([]MatchRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return nil, ErrNotInitialized
	}

	ids := slices.Clone(s.order)
	slices.Reverse(ids)
	if limit > 0 && len(ids) > limit {
		ids = ids[:limit]
	}
	out := make([]MatchRecord, 0, len(ids))
	for _, id := range ids {
		rec := s.matches[id]
		rec.Scores = maps.Clone(rec.Scores)
		out = append(out, rec)
	}
	return out, nil
}

func (s *MemoryStore) Wins(_ context.Context) (map[string]int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if !s.initialized {
		return nil, ErrNotInitialized
	}

	wins := make(map[string]int)
	for _, rec := range s.matches {
		if rec.Unfinished {
			continue
		}
		wins[rec.Winner]++
	}
	return wins, nil
}

func (s *MemoryStore) Close() error { return nil }
