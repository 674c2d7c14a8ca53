package repository

import (
	"context"
	"errors"
	"fmt"
)

// Seed copies the dataset from src into dst when dst has none yet.
// It reports whether a copy was made.
func Seed(ctx context.Context, dst, src TourRepository) (bool, error) {
	_, err := dst.Load(ctx)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return false, err
	}

	tours, err := src.Load(ctx)
	if err != nil {
		return false, fmt.Errorf("load seed: %w", err)
	}
	if err := dst.Save(ctx, tours); err != nil {
		return false, fmt.Errorf("save seed: %w", err)
	}
	return true, nil
}
