package repository

import (
	"context"
	"errors"

	"tourapi/internal/model"
)

// ErrNotFound is returned by Load when the backend holds no tours dataset yet.
var ErrNotFound = errors.New("tours dataset not found")

// TourRepository persists the tours collection as a whole.
// There is no per-record access: the dataset is read once and rewritten wholesale.
type TourRepository interface {
	// Load reads the full dataset.
	Load(ctx context.Context) ([]model.Tour, error)

	// Save replaces the stored dataset with tours.
	Save(ctx context.Context, tours []model.Tour) error

	// Ping reports whether the backend is reachable.
	Ping(ctx context.Context) error
}
