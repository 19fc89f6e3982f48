package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "data", "metrics.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestHashIP(t *testing.T) {
	t.Parallel()
	s := openTestStore(t)
	a := s.HashIP("203.0.113.7")
	if len(a) != 16 {
		t.Fatalf("hash length = %d, want 16", len(a))
	}
	if a != s.HashIP("203.0.113.7") {
		t.Fatal("hash is not stable within a process")
	}
	if a == s.HashIP("203.0.113.8") {
		t.Fatal("different IPs hashed the same")
	}
}

func TestStats(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Date(2026, 3, 10, 15, 0, 0, 0, time.UTC)

	visits := []struct {
		ip string
		at time.Time
	}{
		{"a", now.Add(-time.Hour)},
		{"a", now.Add(-2 * time.Hour)},
		{"b", now.Add(-3 * 24 * time.Hour)},
		{"c", now.Add(-30 * 24 * time.Hour)},
	}
	for _, v := range visits {
		if err := s.RecordVisit(ctx, s.HashIP(v.ip), "test-agent", "/", v.at); err != nil {
			t.Fatalf("record visit: %v", err)
		}
	}
	for _, r := range []struct{ section, lang string }{
		{"about", "en"}, {"about", "en"}, {"about", "ar"}, {"skills", "en"},
	} {
		if err := s.RecordReveal(ctx, r.section, r.lang, now); err != nil {
			t.Fatalf("record reveal: %v", err)
		}
	}

	stats, err := s.Stats(ctx, now)
	if err != nil {
		t.Fatalf("stats: %v", err)
	}
	if stats.TotalVisitors != 4 || stats.UniqueVisitors != 3 {
		t.Fatalf("totals = %d/%d, want 4/3", stats.TotalVisitors, stats.UniqueVisitors)
	}
	if stats.VisitorsToday != 2 || stats.VisitorsThisWeek != 3 {
		t.Fatalf("today/week = %d/%d, want 2/3", stats.VisitorsToday, stats.VisitorsThisWeek)
	}
	if stats.TotalReveals != 4 || len(stats.Reveals) != 3 {
		t.Fatalf("reveals = %d %+v", stats.TotalReveals, stats.Reveals)
	}
	if top := stats.Reveals[0]; top.Section != "about" || top.Lang != "en" || top.Count != 2 {
		t.Fatalf("top reveal = %+v", top)
	}
	if len(stats.RecentVisitors) != 4 || !stats.RecentVisitors[0].Timestamp.Equal(now.Add(-time.Hour)) {
		t.Fatalf("recent visitors not newest first: %+v", stats.RecentVisitors)
	}
}

func TestCleanup(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := openTestStore(t)
	now := time.Now()

	_ = s.RecordVisit(ctx, "old", "", "/", now.AddDate(-2, 0, 0))
	_ = s.RecordVisit(ctx, "new", "", "/", now)
	_ = s.RecordReveal(ctx, "about", "en", now.AddDate(-2, 0, 0))

	n, err := s.Cleanup(ctx, now.AddDate(-1, 0, 0))
	if err != nil {
		t.Fatalf("cleanup: %v", err)
	}
	if n != 2 {
		t.Fatalf("removed %d rows, want 2", n)
	}
	recent, err := s.RecentVisitors(ctx, 10)
	if err != nil {
		t.Fatalf("recent: %v", err)
	}
	if len(recent) != 1 || recent[0].HashedIP != "new" {
		t.Fatalf("remaining visitors = %+v", recent)
	}
}

func TestOpenMemory(t *testing.T) {
	t.Parallel()
	s, err := Open(":memory:")
	if err != nil {
		t.Fatalf("open memory store: %v", err)
	}
	defer s.Close()
	if err := s.RecordReveal(context.Background(), "skills", "ar", time.Now()); err != nil {
		t.Fatalf("record: %v", err)
	}
	stats, err := s.Stats(context.Background(), time.Now())
	if err != nil || stats.TotalReveals != 1 {
		t.Fatalf("stats = %+v, %v", stats, err)
	}
}

func TestNewToken(t *testing.T) {
	t.Parallel()
	a, err := NewToken()
	if err != nil {
		t.Fatalf("token: %v", err)
	}
	b, _ := NewToken()
	if len(a) != 64 || a == b {
		t.Fatalf("tokens %q %q", a, b)
	}
}
