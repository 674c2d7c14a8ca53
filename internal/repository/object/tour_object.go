package object

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"tourapi/internal/model"
	"tourapi/internal/repository"
	"tourapi/internal/storage"
)

// TourObject keeps the tours dataset as a single JSON object in a storage.Storage.
type TourObject struct {
	store storage.Storage
	key   string
}

// NewTourObject creates a repository reading and writing the object at key.
func NewTourObject(store storage.Storage, key string) *TourObject {
	return &TourObject{store: store, key: key}
}

var _ repository.TourRepository = (*TourObject)(nil)

// Load fetches and decodes the dataset object.
func (r *TourObject) Load(ctx context.Context) ([]model.Tour, error) {
	rc, _, err := r.store.Get(ctx, r.key)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotFound) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("get %s: %w", r.key, err)
	}
	defer rc.Close()

	return model.DecodeTours(rc)
}

// Save encodes the whole collection and overwrites the object.
func (r *TourObject) Save(ctx context.Context, tours []model.Tour) error {
	data, err := model.EncodeTours(tours)
	if err != nil {
		return err
	}
	_, err = r.store.Put(ctx, r.key, bytes.NewReader(data), storage.PutObjectOptions{
		Size:        int64(len(data)),
		ContentType: "application/json",
	})
	if err != nil {
		return fmt.Errorf("put %s: %w", r.key, err)
	}
	return nil
}

// Ping delegates to the underlying store.
func (r *TourObject) Ping(ctx context.Context) error {
	return r.store.Ping(ctx)
}
