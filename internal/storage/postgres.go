package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresSlot stores the slot contents in a single row of the slots table.
// The schema is created by the migrations in migrations/.
type PostgresSlot struct {
	db  *pgxpool.Pool
	key string
}

func NewPostgresSlot(db *pgxpool.Pool, key string) *PostgresSlot {
	return &PostgresSlot{
		db:  db,
		key: key,
	}
}

func (s *PostgresSlot) Load(ctx context.Context) ([]byte, error) {
	var value []byte
	query := `SELECT value FROM slots WHERE key = $1;`
	err := s.db.QueryRow(ctx, query, s.key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to load slot row %s: %w", s.key, err)
	}
	return value, nil
}

func (s *PostgresSlot) Store(ctx context.Context, data []byte) error {
	query := `
		INSERT INTO slots (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW();
	`
	if _, err := s.db.Exec(ctx, query, s.key, data); err != nil {
		return fmt.Errorf("failed to store slot row %s: %w", s.key, err)
	}
	return nil
}
