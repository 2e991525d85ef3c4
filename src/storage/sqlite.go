// Blueprint for new Go projects
// Author: Christi Mahu – https://christimahu.dev
// Part of the dev repo: https://github.com/christimahu/dev/
// This file is part of a minimal idiomatic Go blueprint for creating new applications.
//
// sqlite.go - Store backed by a SQLite database file (pure Go driver).

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLite is a Store persisted in a SQLite database.
type SQLite struct {
	db *sql.DB
	mu sync.Mutex // serializes writes to avoid SQLITE_BUSY
}

// NewSQLite opens (or creates) the database at dbPath and makes sure the
// schema exists.
func NewSQLite(dbPath string) (*SQLite, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		return nil, fmt.Errorf("create database directory: %w", err)
	}

	dsn := dbPath + "?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)"
	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	db.SetMaxOpenConns(1)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database: %w", err)
	}

	s := &SQLite{db: db}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}
	return s, nil
}

func (s *SQLite) initSchema() error {
	query := `
	CREATE TABLE IF NOT EXISTS statements (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		text TEXT NOT NULL,
		search_text TEXT NOT NULL,
		in_response_to TEXT NOT NULL DEFAULT '',
		search_in_response_to TEXT NOT NULL DEFAULT '',
		conversation TEXT NOT NULL DEFAULT '',
		persona TEXT NOT NULL DEFAULT '',
		created_at INTEGER NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_statements_search_in_response_to
		ON statements(search_in_response_to);
	`
	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("create schema: %w", err)
	}
	return nil
}

// Add implements Store. All statements are written in one transaction.
func (s *SQLite) Add(ctx context.Context, statements ...Statement) error {
	if len(statements) == 0 {
		return nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO statements (text, search_text, in_response_to,
			search_in_response_to, conversation, persona, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	for _, st := range statements {
		_, err := stmt.ExecContext(ctx,
			st.Text, st.SearchText, st.InResponseTo,
			st.SearchInResponseTo, st.Conversation, st.Persona,
			st.CreatedAt.UnixNano(),
		)
		if err != nil {
			return fmt.Errorf("insert statement: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit statements: %w", err)
	}
	return nil
}

// Prompts implements Store.
func (s *SQLite) Prompts(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT search_in_response_to FROM statements
		WHERE search_in_response_to <> ''
		GROUP BY search_in_response_to
		ORDER BY MIN(id)`)
	if err != nil {
		return nil, fmt.Errorf("query prompts: %w", err)
	}
	defer rows.Close()

	var prompts []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan prompt row: %w", err)
		}
		prompts = append(prompts, p)
	}
	return prompts, rows.Err()
}

// Responses implements Store.
func (s *SQLite) Responses(ctx context.Context, searchPrompt string) ([]Statement, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT text, search_text, in_response_to, search_in_response_to,
		       conversation, persona, created_at
		FROM statements WHERE search_in_response_to = ?
		ORDER BY id`, searchPrompt)
	if err != nil {
		return nil, fmt.Errorf("query responses: %w", err)
	}
	defer rows.Close()

	var out []Statement
	for rows.Next() {
		var st Statement
		var createdAt int64
		err := rows.Scan(
			&st.Text, &st.SearchText, &st.InResponseTo, &st.SearchInResponseTo,
			&st.Conversation, &st.Persona, &createdAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan statement row: %w", err)
		}
		st.CreatedAt = time.Unix(0, createdAt)
		out = append(out, st)
	}
	return out, rows.Err()
}

// Count implements Store.
func (s *SQLite) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM statements`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count statements: %w", err)
	}
	return n, nil
}

// Close closes the database.
func (s *SQLite) Close() error {
	return s.db.Close()
}
