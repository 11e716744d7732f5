package repository

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	stderrors "errors"
	"fmt"

	"github.com/golang-migrate/migrate/v4"
	"github.com/golang-migrate/migrate/v4/database/postgres"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	_ "github.com/lib/pq"

	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/config"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/errors"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/logging"
	"github.com/tm-acme-shop/acme-shop-pos-terminal/internal/models"
)

//go:embed migrations/*.sql
var migrationFiles embed.FS

var _ DraftRepository = (*PostgresDraftRepository)(nil)

// PostgresDraftRepository implements DraftRepository using PostgreSQL.
// The draft document is stored as JSONB; id, terminal and kind are columns
// for lookups.
type PostgresDraftRepository struct {
	db     *sql.DB
	logger *logging.LoggerV2
}

// OpenPostgres opens and pings the drafts database.
func OpenPostgres(ctx context.Context, cfg config.DatabaseConfig) (*sql.DB, error) {
	db, err := sql.Open("postgres", cfg.ConnectionString())
	if err != nil {
		return nil, err
	}

	db.SetMaxOpenConns(cfg.MaxOpenConns)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.MaxLifetime)

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// RunMigrations applies the embedded drafts schema.
func RunMigrations(db *sql.DB) error {
	source, err := iofs.New(migrationFiles, "migrations")
	if err != nil {
		return fmt.Errorf("could not open migrations: %w", err)
	}

	driver, err := postgres.WithInstance(db, &postgres.Config{
		MigrationsTable: "pos_schema_migrations",
	})
	if err != nil {
		return fmt.Errorf("could not create migration driver: %w", err)
	}

	m, err := migrate.NewWithInstance("iofs", source, "postgres", driver)
	if err != nil {
		return fmt.Errorf("could not create migrate instance: %w", err)
	}

	if err := m.Up(); err != nil && !stderrors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("could not run migrations: %w", err)
	}
	return nil
}

// NewPostgresDraftRepository creates a new PostgreSQL draft repository.
func NewPostgresDraftRepository(db *sql.DB, logger *logging.LoggerV2) *PostgresDraftRepository {
	return &PostgresDraftRepository{
		db:     db,
		logger: logger,
	}
}

// Create inserts a new draft.
func (r *PostgresDraftRepository) Create(ctx context.Context, draft *models.Draft) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO drafts (id, terminal_id, kind, body, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`

	_, err = r.db.ExecContext(ctx, query,
		draft.ID,
		draft.TerminalID,
		string(draft.Kind),
		body,
		draft.CreatedAt,
		draft.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to create draft", logging.Fields{
			"draft_id": draft.ID,
			"error":    err.Error(),
		})
		return err
	}

	r.logger.Info("Draft created", logging.Fields{"draft_id": draft.ID, "kind": draft.Kind})
	return nil
}

// GetByID retrieves a draft by its identifier.
func (r *PostgresDraftRepository) GetByID(ctx context.Context, id string) (*models.Draft, error) {
	r.logger.Debug("Fetching draft by ID", logging.Fields{"draft_id": id})

	var body []byte
	err := r.db.QueryRowContext(ctx, `SELECT body FROM drafts WHERE id = $1`, id).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, errors.ErrNotFound
	}
	if err != nil {
		r.logger.Error("Failed to fetch draft", logging.Fields{
			"draft_id": id,
			"error":    err.Error(),
		})
		return nil, err
	}

	var draft models.Draft
	if err := json.Unmarshal(body, &draft); err != nil {
		return nil, err
	}
	return &draft, nil
}

// Update replaces the stored draft document.
func (r *PostgresDraftRepository) Update(ctx context.Context, draft *models.Draft) error {
	body, err := json.Marshal(draft)
	if err != nil {
		return err
	}

	result, err := r.db.ExecContext(ctx,
		`UPDATE drafts SET body = $2, kind = $3, updated_at = $4 WHERE id = $1`,
		draft.ID, body, string(draft.Kind), draft.UpdatedAt,
	)
	if err != nil {
		r.logger.Error("Failed to update draft", logging.Fields{
			"draft_id": draft.ID,
			"error":    err.Error(),
		})
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.ErrNotFound
	}
	return nil
}

// Delete removes a draft.
func (r *PostgresDraftRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM drafts WHERE id = $1`, id)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.ErrNotFound
	}

	r.logger.Info("Draft deleted", logging.Fields{"draft_id": id})
	return nil
}

// ListByTerminal returns the terminal's drafts, most recently touched first.
func (r *PostgresDraftRepository) ListByTerminal(ctx context.Context, terminalID string) ([]*models.Draft, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT body FROM drafts WHERE terminal_id = $1 ORDER BY updated_at DESC`,
		terminalID,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	drafts := make([]*models.Draft, 0)
	for rows.Next() {
		var body []byte
		if err := rows.Scan(&body); err != nil {
			return nil, err
		}
		var draft models.Draft
		if err := json.Unmarshal(body, &draft); err != nil {
			return nil, err
		}
		drafts = append(drafts, &draft)
	}
	return drafts, rows.Err()
}
