package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteStore keeps match history in a single database file
type SQLiteStore struct {
	path string

	mu sync.RWMutex
	db *sql.DB
}

func NewSQLiteStore(path string) *SQLiteStore {
	return &SQLiteStore{path: path}
}

func (s *SQLiteStore) Init(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.path == "" {
		return errors.New("sqlite path is required")
	}
	if s.db != nil {
		return nil
	}

	db, err := sql.Open("sqlite", s.path)
	if err != nil {
		return err
	}
	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return err
	}
	if err := createTables(ctx, db); err != nil {
		_ = db.Close()
		return err
	}

	s.db = db
	return nil
}

func (s *SQLiteStore) SaveMatch(ctx context.Context, rec MatchRecord) error {
	db, err := s.getDB()
	if err != nil {
		return err
	}
	scores, err := encodeScores(rec.Scores)
	if err != nil {
		return fmt.Errorf("encode scores %s: %w", rec.ID, err)
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO matches (id, seed, started_unix_ms, duration_ms, ticks, winner, scores, unfinished)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			seed = excluded.seed,
			started_unix_ms = excluded.started_unix_ms,
			duration_ms = excluded.duration_ms,
			ticks = excluded.ticks,
			winner = excluded.winner,
			scores = excluded.scores,
			unfinished = excluded.unfinished
	`, rec.ID, int64(rec.Seed), rec.Started.UnixMilli(), rec.Duration.Milliseconds(), int64(rec.Ticks), rec.Winner, scores, rec.Unfinished)
	return err
}

const selectMatch = `SELECT id, seed, started_unix_ms, duration_ms, ticks, winner, scores, unfinished FROM matches`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanMatch(row rowScanner) (MatchRecord, error) {
	var (
		rec       MatchRecord
		seed      int64
		startedMS int64
		durMS     int64
		ticks     int64
		scores    []byte
	)
	if err := row.Scan(&rec.ID, &seed, &startedMS, &durMS, &ticks, &rec.Winner, &scores, &rec.Unfinished); err != nil {
		return MatchRecord{}, err
	}
	decoded, err := decodeScores(scores)
	if err != nil {
		return MatchRecord{}, fmt.Errorf("decode scores %s: %w", rec.ID, err)
	}
	rec.Seed = uint64(seed)
	rec.Started = time.UnixMilli(startedMS)
	rec.Duration = time.Duration(durMS) * time.Millisecond
	rec.Ticks = uint64(ticks)
	rec.Scores = decoded
	return rec, nil
}

func (s *SQLiteStore) GetMatch(ctx context.Context, id string) (MatchRecord, bool, error) {
	db, err := s.getDB()
	if err != nil {
		return MatchRecord{}, false, err
	}

	rec, err := scanMatch(db.QueryRowContext(ctx, selectMatch+` WHERE id = ?`, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return MatchRecord{}, false, nil
		}
		return MatchRecord{}, false, err
	}
	return rec, true, nil
}

func (s *SQLiteStore) ListMatches(ctx context.Context, limit int) ([]MatchRecord, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}
	if limit <= 0 {
		limit = -1
	}

	rows, err := db.QueryContext(ctx, selectMatch+` ORDER BY started_unix_ms DESC, rowid DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []MatchRecord
	for rows.Next() {
		rec, err := scanMatch(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) Wins(ctx context.Context) (map[string]int, error) {
	db, err := s.getDB()
	if err != nil {
		return nil, err
	}

	rows, err := db.QueryContext(ctx, `SELECT winner, COUNT(*) FROM matches WHERE unfinished = 0 GROUP BY winner`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	wins := make(map[string]int)
	for rows.Next() {
		var (
			winner string
			n      int
		)
		if err := rows.Scan(&winner, &n); err != nil {
			return nil, err
		}
		wins[winner] = n
	}
	return wins, rows.Err()
}

func (s *SQLiteStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}

func (s *SQLiteStore) getDB() (*sql.DB, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.db == nil {
		return nil, ErrNotInitialized
	}
	return s.db, nil
}

func createTables(ctx context.Context, db *sql.DB) error {
	_, err := db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS matches (
			id TEXT PRIMARY KEY,
			seed INTEGER NOT NULL,
			started_unix_ms INTEGER NOT NULL,
			duration_ms INTEGER NOT NULL,
			ticks INTEGER NOT NULL,
			winner TEXT NOT NULL,
			scores BLOB NOT NULL,
			unfinished INTEGER NOT NULL DEFAULT 0
		);
		CREATE INDEX IF NOT EXISTS matches_started ON matches (started_unix_ms);
	`)
	if err != nil {
		return err
	}
	return addUnfinishedColumn(ctx, db)
}

// addUnfinishedColumn upgrades history files written before the column existed
func addUnfinishedColumn(ctx context.Context, db *sql.DB) error {
	var n int
	err := db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM pragma_table_info('matches') WHERE name = 'unfinished'`).Scan(&n)
	if err != nil || n > 0 {
		return err
	}
	_, err = db.ExecContext(ctx, `ALTER TABLE matches ADD COLUMN unfinished INTEGER NOT NULL DEFAULT 0`)
	return err
}
