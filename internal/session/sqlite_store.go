package session

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

const schema = `CREATE TABLE IF NOT EXISTS session_tokens (
	name  TEXT PRIMARY KEY,
	value TEXT NOT NULL
)`

// SQLiteTokenStore is the terminal's durable local token storage.
type SQLiteTokenStore struct {
	db *sql.DB
}

// OpenSQLiteTokenStore opens (or creates) the token database at path.
func OpenSQLiteTokenStore(path string) (*SQLiteTokenStore, error) {
	db, err := sql.Open("sqlite3", path+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("open session db: %w", err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("create session schema: %w", err)
	}
	return &SQLiteTokenStore{db: db}, nil
}

func (s *SQLiteTokenStore) Load(ctx context.Context) (Tokens, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM session_tokens`)
	if err != nil {
		return Tokens{}, fmt.Errorf("load tokens: %w", err)
	}
	defer rows.Close()

	var tokens Tokens
	for rows.Next() {
		var name, value string
		if err := rows.Scan(&name, &value); err != nil {
			return Tokens{}, fmt.Errorf("scan token: %w", err)
		}
		switch name {
		case accessTokenKey:
			tokens.Access = value
		case refreshTokenKey:
			tokens.Refresh = value
		}
	}
	return tokens, rows.Err()
}

func (s *SQLiteTokenStore) Save(ctx context.Context, tokens Tokens) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin save tokens: %w", err)
	}
	defer tx.Rollback()

	const upsert = `INSERT INTO session_tokens (name, value) VALUES (?, ?)
		ON CONFLICT(name) DO UPDATE SET value = excluded.value`
	if _, err := tx.ExecContext(ctx, upsert, accessTokenKey, tokens.Access); err != nil {
		return fmt.Errorf("save access token: %w", err)
	}
	if _, err := tx.ExecContext(ctx, upsert, refreshTokenKey, tokens.Refresh); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return tx.Commit()
}

func (s *SQLiteTokenStore) Clear(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM session_tokens`); err != nil {
		return fmt.Errorf("clear tokens: %w", err)
	}
	return nil
}

func (s *SQLiteTokenStore) Close() error {
	return s.db.Close()
}
