// Package store keeps privacy-conscious site metrics in SQLite: page views
// keyed by a salted hash of the visitor IP, and which reveal sections were
// played.
package store

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// Visitor is one recorded page view. The raw IP is never stored.
type Visitor struct {
	ID        int       `json:"id"`
	HashedIP  string    `json:"hashed_ip"`
	UserAgent string    `json:"user_agent"`
	Path      string    `json:"path"`
	Timestamp time.Time `json:"timestamp"`
}

// RevealCount is how often a section's animation was started in one language.
type RevealCount struct {
	Section string `json:"section"`
	Lang    string `json:"lang"`
	Count   int64  `json:"count"`
}

type Stats struct {
	TotalVisitors    int64         `json:"total_visitors"`
	UniqueVisitors   int64         `json:"unique_visitors"`
	VisitorsToday    int64         `json:"visitors_today"`
	VisitorsThisWeek int64         `json:"visitors_this_week"`
	TotalReveals     int64         `json:"total_reveals"`
	Reveals          []RevealCount `json:"reveals"`
	RecentVisitors   []Visitor     `json:"recent_visitors"`
}

type Store struct {
	db   *sql.DB
	salt string
}

// Open opens (creating if needed) the database at path. ":memory:" gives a
// throwaway database, useful in tests.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, fmt.Errorf("create db dir: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	// tracking writes happen off the request goroutine; one connection keeps
	// them serialized and keeps ":memory:" a single database
	db.SetMaxOpenConns(1)

	salt, err := randomHex(32)
	if err != nil {
		db.Close()
		return nil, err
	}
	s := &Store{db: db, salt: salt}
	if err := s.ensureSchema(context.Background()); err != nil {
		db.Close()
		return nil, err
	}
	return s, nil
}

func (s *Store) Close() error { return s.db.Close() }

func (s *Store) ensureSchema(ctx context.Context) error {
	const ddl = `
PRAGMA busy_timeout = 5000;
CREATE TABLE IF NOT EXISTS visitors (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  hashed_ip TEXT NOT NULL,
  user_agent TEXT NOT NULL DEFAULT '',
  path TEXT NOT NULL DEFAULT '',
  ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_visitors_ts ON visitors(ts);
CREATE TABLE IF NOT EXISTS reveals (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  section TEXT NOT NULL,
  lang TEXT NOT NULL,
  ts INTEGER NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_reveals_section ON reveals(section, lang);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create tables: %w", err)
	}
	return nil
}

// HashIP hashes ip with the per-process salt, truncated to 16 hex chars.
// The same IP hashes the same way for the life of the process.
func (s *Store) HashIP(ip string) string {
	sum := sha256.Sum256([]byte(ip + s.salt))
	return hex.EncodeToString(sum[:])[:16]
}

func (s *Store) RecordVisit(ctx context.Context, hashedIP, userAgent, path string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO visitors (hashed_ip, user_agent, path, ts) VALUES (?, ?, ?, ?)`,
		hashedIP, userAgent, path, at.Unix())
	if err != nil {
		return fmt.Errorf("record visit: %w", err)
	}
	return nil
}

func (s *Store) RecordReveal(ctx context.Context, section, lang string, at time.Time) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO reveals (section, lang, ts) VALUES (?, ?, ?)`,
		section, lang, at.Unix())
	if err != nil {
		return fmt.Errorf("record reveal: %w", err)
	}
	return nil
}

// Stats summarises traffic as of now. "Today" is the current UTC day.
func (s *Store) Stats(ctx context.Context, now time.Time) (*Stats, error) {
	stats := &Stats{}
	now = now.UTC()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	weekStart := now.Add(-7 * 24 * time.Hour)

	counts := []struct {
		dst   *int64
		query string
		args  []any
	}{
		{&stats.TotalVisitors, `SELECT COUNT(*) FROM visitors`, nil},
		{&stats.UniqueVisitors, `SELECT COUNT(DISTINCT hashed_ip) FROM visitors`, nil},
		{&stats.VisitorsToday, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{dayStart.Unix()}},
		{&stats.VisitorsThisWeek, `SELECT COUNT(*) FROM visitors WHERE ts >= ?`, []any{weekStart.Unix()}},
		{&stats.TotalReveals, `SELECT COUNT(*) FROM reveals`, nil},
	}
	for _, c := range counts {
		if err := s.db.QueryRowContext(ctx, c.query, c.args...).Scan(c.dst); err != nil {
			return nil, fmt.Errorf("stats: %w", err)
		}
	}

	rows, err := s.db.QueryContext(ctx, `
SELECT section, lang, COUNT(*) AS n
FROM reveals
GROUP BY section, lang
ORDER BY n DESC, section, lang`)
	if err != nil {
		return nil, fmt.Errorf("reveal counts: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var rc RevealCount
		if err := rows.Scan(&rc.Section, &rc.Lang, &rc.Count); err != nil {
			return nil, fmt.Errorf("scan reveal count: %w", err)
		}
		stats.Reveals = append(stats.Reveals, rc)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("reveal counts: %w", err)
	}

	stats.RecentVisitors, err = s.RecentVisitors(ctx, 50)
	if err != nil {
		return nil, err
	}
	return stats, nil
}

// RecentVisitors returns up to limit visits, newest first.
func (s *Store) RecentVisitors(ctx context.Context, limit int) ([]Visitor, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := s.db.QueryContext(ctx, `
SELECT id, hashed_ip, user_agent, path, ts
FROM visitors
ORDER BY ts DESC, id DESC
LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent visitors: %w", err)
	}
	defer rows.Close()

	var visitors []Visitor
	for rows.Next() {
		var v Visitor
		var ts int64
		if err := rows.Scan(&v.ID, &v.HashedIP, &v.UserAgent, &v.Path, &ts); err != nil {
			return nil, fmt.Errorf("scan visitor: %w", err)
		}
		v.Timestamp = time.Unix(ts, 0).UTC()
		visitors = append(visitors, v)
	}
	return visitors, rows.Err()
}

// Cleanup deletes visits and reveal records older than before and returns
// how many rows went.
func (s *Store) Cleanup(ctx context.Context, before time.Time) (int64, error) {
	var total int64
	for _, table := range []string{"visitors", "reveals"} {
		res, err := s.db.ExecContext(ctx, `DELETE FROM `+table+` WHERE ts < ?`, before.Unix())
		if err != nil {
			return total, fmt.Errorf("cleanup %s: %w", table, err)
		}
		n, _ := res.RowsAffected()
		total += n
	}
	return total, nil
}

func randomHex(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate random bytes: %w", err)
	}
	return hex.EncodeToString(b), nil
}

// NewToken returns a random 64 hex char token, used for admin sessions.
func NewToken() (string, error) { return randomHex(32) }
