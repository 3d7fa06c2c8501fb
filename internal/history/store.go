// Package history keeps a SQLite log of the searches that were run.
package history

import (
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"reposcout/internal/domain"
	"reposcout/internal/eventbus"
)

// Entry is one recorded search
type Entry struct {
	ID         int64
	Query      domain.Query
	TotalCount int
	Success    bool
	Message    string
	SearchedAt time.Time
}

// Store persists search history. Safe for concurrent use.
type Store struct {
	db  *sql.DB
	mu  sync.RWMutex
	now func() time.Time
}

// Open creates a store at path, creating the file and schema if needed.
// ":memory:" opens a private in-process database that lives until Close.
func Open(path string) (*Store, error) {
	if path != ":memory:" {
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("create history dir: %w", err)
			}
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	if path == ":memory:" {
		// each connection would see its own database
		db.SetMaxOpenConns(1)
		db.SetConnMaxLifetime(0)
		db.SetConnMaxIdleTime(0)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}
	if path != ":memory:" {
		if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
			db.Close()
			return nil, fmt.Errorf("enable WAL mode: %w", err)
		}
	}

	s := &Store{db: db, now: time.Now}
	if err := s.createTables(); err != nil {
		db.Close()
		return nil, fmt.Errorf("create tables: %w", err)
	}
	return s, nil
}

func (s *Store) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS searches (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		keyword TEXT NOT NULL,
		sort TEXT NOT NULL DEFAULT '',
		sort_order TEXT NOT NULL DEFAULT '',
		page INTEGER NOT NULL,
		per_page INTEGER NOT NULL,
		total_count INTEGER NOT NULL DEFAULT 0,
		success INTEGER NOT NULL,
		message TEXT NOT NULL DEFAULT '',
		searched_at DATETIME NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_searches_at ON searches(searched_at DESC);
	`
	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("execute schema: %w", err)
	}
	return nil
}

// Close closes the database connection
func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.db.Close()
}

// Record stores e. A zero SearchedAt is set to now.
func (s *Store) Record(e Entry) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if e.SearchedAt.IsZero() {
		e.SearchedAt = s.now()
	}
	res, err := s.db.Exec(`
		INSERT INTO searches (keyword, sort, sort_order, page, per_page, total_count, success, message, searched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		e.Query.Keyword, string(e.Query.Sort), string(e.Query.Order), e.Query.Page, e.Query.PerPage,
		e.TotalCount, e.Success, e.Message, e.SearchedAt.UTC(),
	)
	if err != nil {
		return 0, fmt.Errorf("insert search: %w", err)
	}
	id, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("last insert id: %w", err)
	}
	return id, nil
}

// Recent returns up to limit entries, newest first
func (s *Store) Recent(limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 20
	}
	rows, err := s.db.Query(`
		SELECT id, keyword, sort, sort_order, page, per_page, total_count, success, message, searched_at
		FROM searches
		ORDER BY searched_at DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("query searches: %w", err)
	}
	defer rows.Close()

	var out []Entry
	for rows.Next() {
		var (
			e           Entry
			sort, order string
		)
		if err := rows.Scan(&e.ID, &e.Query.Keyword, &sort, &order, &e.Query.Page, &e.Query.PerPage,
			&e.TotalCount, &e.Success, &e.Message, &e.SearchedAt); err != nil {
			return nil, fmt.Errorf("scan search: %w", err)
		}
		e.Query.Sort = domain.SortField(sort)
		e.Query.Order = domain.SortOrder(order)
		out = append(out, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate searches: %w", err)
	}
	return out, nil
}

// Clear deletes every entry and returns how many were removed
func (s *Store) Clear() (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := s.db.Exec(`DELETE FROM searches`)
	if err != nil {
		return 0, fmt.Errorf("delete searches: %w", err)
	}
	return res.RowsAffected()
}

// Subscribe records completed and failed searches published on bus.
// The returned function stops recording.
func (s *Store) Subscribe(bus eventbus.EventBus) func() {
	record := func(e Entry) {
		if _, err := s.Record(e); err != nil {
			slog.Error("failed to record search", "keyword", e.Query.Keyword, "err", err)
		}
	}
	unsubCompleted := bus.Subscribe(domain.EventSearchCompleted, func(ev eventbus.DomainEvent) {
		if e, ok := ev.(domain.SearchCompletedEvent); ok {
			record(Entry{Query: e.Query, TotalCount: e.TotalCount, Success: true})
		}
	})
	unsubFailed := bus.Subscribe(domain.EventSearchFailed, func(ev eventbus.DomainEvent) {
		if e, ok := ev.(domain.SearchFailedEvent); ok {
			record(Entry{Query: e.Query, Message: e.Message})
		}
	})
	return func() {
		unsubCompleted()
		unsubFailed()
	}
}
