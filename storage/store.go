// Package storage keeps a history of finished matches
package storage

import (
	"context"
	"errors"
	"time"
)

var ErrNotInitialized = errors.New("storage: store is not initialized")

// MatchRecord is the persisted outcome of one match
type MatchRecord struct {
	ID         string         `msgpack:"id"`
	Seed       uint64         `msgpack:"seed"`
	Started    time.Time      `msgpack:"started"`
	Duration   time.Duration  `msgpack:"duration"`
	Ticks      uint64         `msgpack:"ticks"`
	Winner     string         `msgpack:"winner"`
	Scores     map[string]int `msgpack:"scores"`
	Unfinished bool           `msgpack:"unfinished"` // Stopped by a tick limit or the user before game over
}

// Store persists match records
type Store interface {
	Init(ctx context.Context) error
	SaveMatch(ctx context.Context, rec MatchRecord) error
	GetMatch(ctx context.Context, id string) (MatchRecord, bool, error)
	// ListMatches returns the newest records first; limit <= 0 returns all
	ListMatches(ctx context.Context, limit int) ([]MatchRecord, error)
	// Wins counts finished matches per winner label, "No one" included
	Wins(ctx context.Context) (map[string]int, error)
	Close() error
}
