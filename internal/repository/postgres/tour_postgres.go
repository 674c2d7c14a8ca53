package postgres

import (
	"bytes"
	"context"
	"database/sql"
	"errors"
	"fmt"

	"tourapi/internal/model"
	"tourapi/internal/repository"
)

// TourPostgres is a PostgreSQL implementation of repository.TourRepository.
// The whole dataset is one JSONB row in tour_snapshots, keyed by name.
type TourPostgres struct {
	db   *sql.DB
	name string
}

// NewTourPostgres creates a repository for the snapshot row called name.
func NewTourPostgres(db *sql.DB, name string) *TourPostgres {
	return &TourPostgres{db: db, name: name}
}

var _ repository.TourRepository = (*TourPostgres)(nil)

// Load reads the snapshot row and decodes it.
func (r *TourPostgres) Load(ctx context.Context) ([]model.Tour, error) {
	const q = `
		SELECT data
		FROM tour_snapshots
		WHERE name = $1
	`
	var data []byte
	if err := r.db.QueryRowContext(ctx, q, r.name).Scan(&data); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("select snapshot: %w", err)
	}
	return model.DecodeTours(bytes.NewReader(data))
}

// Save upserts the snapshot row with the encoded collection.
func (r *TourPostgres) Save(ctx context.Context, tours []model.Tour) error {
	data, err := model.EncodeTours(tours)
	if err != nil {
		return err
	}
	const q = `
		INSERT INTO tour_snapshots (name, data, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (name) DO UPDATE
		SET data = EXCLUDED.data, updated_at = EXCLUDED.updated_at
	`
	if _, err := r.db.ExecContext(ctx, q, r.name, data); err != nil {
		return fmt.Errorf("upsert snapshot: %w", err)
	}
	return nil
}

// Ping checks database connectivity.
func (r *TourPostgres) Ping(ctx context.Context) error {
	return r.db.PingContext(ctx)
}
