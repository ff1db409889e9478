package draft

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres stores drafts in a single upsert table. It is the backend for
// deployments that already run postgres and do not want a redis dependency.
type Postgres struct {
	db *pgxpool.Pool
}

func NewPostgres(db *pgxpool.Pool) *Postgres {
	return &Postgres{db: db}
}

// EnsureSchema creates the drafts table if it does not exist yet.
func (p *Postgres) EnsureSchema(ctx context.Context) error {
	const q = `CREATE TABLE IF NOT EXISTS wizard_drafts (
	draft_key  TEXT PRIMARY KEY,
	value      JSONB NOT NULL,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`
	if _, err := p.db.Exec(ctx, q); err != nil {
		return fmt.Errorf("ensure wizard_drafts schema: %w", err)
	}
	return nil
}

func (p *Postgres) Save(ctx context.Context, key string, value any) error {
	b, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("encode draft: %w", err)
	}
	const q = `INSERT INTO wizard_drafts (draft_key, value, updated_at)
VALUES ($1, $2, now())
ON CONFLICT (draft_key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`
	if _, err := p.db.Exec(ctx, q, key, b); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (p *Postgres) Load(ctx context.Context, key string, dest any) error {
	const q = `SELECT value FROM wizard_drafts WHERE draft_key = $1`
	var b []byte
	err := p.db.QueryRow(ctx, q, key).Scan(&b)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("load draft: %w", err)
	}
	// corrupt entry reads as empty
	decode(b, dest)
	return nil
}

func (p *Postgres) Clear(ctx context.Context, key string) error {
	const q = `DELETE FROM wizard_drafts WHERE draft_key = $1`
	if _, err := p.db.Exec(ctx, q, key); err != nil {
		return fmt.Errorf("clear draft: %w", err)
	}
	return nil
}
