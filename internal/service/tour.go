package service

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"

	"tourapi/internal/model"
	"tourapi/internal/repository"
)

var (
	ErrNotFound = errors.New("tour not found")
	ErrBodyNil  = errors.New("body is nil")
)

var tracer trace.Tracer = otel.Tracer("tourapi/internal/service")

// TourListResult is the service-level DTO for the tours collection.
type TourListResult struct {
	Items []model.Tour
	Total int
}

// TourService defines the use cases over the in-memory tours collection.
type TourService interface {
	// List returns every loaded tour and the collection length.
	List(ctx context.Context) *TourListResult

	// Get returns the first tour whose numeric id equals the coerced rawID.
	Get(ctx context.Context, rawID string) (model.Tour, error)

	// Create appends a tour built from body and rewrites the stored dataset.
	// - The new id is the id of the last tour plus one; body keys override it.
	//   A string last id is extended with "1" instead.
	// - A failed save is logged and does not fail the call.
	Create(ctx context.Context, body map[string]any) (model.Tour, error)

	// Update only checks rawID against the collection length.
	Update(ctx context.Context, rawID string) error

	// Delete only checks rawID against the collection length.
	Delete(ctx context.Context, rawID string) error
}

// tourService holds the collection loaded at startup.
// mu serializes handlers so they observe the collection one request at a time.
type tourService struct {
	mu    sync.RWMutex
	tours []model.Tour
	repo  repository.TourRepository
	log   *zap.Logger
}

// NewTourService loads the dataset from repo once and returns a service over it.
func NewTourService(ctx context.Context, repo repository.TourRepository, log *zap.Logger) (TourService, error) {
	if log == nil {
		log = zap.NewNop()
	}
	tours, err := repo.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load tours: %w", err)
	}
	log.Info("tours_loaded", zap.Int("count", len(tours)))
	return &tourService{tours: tours, repo: repo, log: log}, nil
}

func (s *tourService) List(ctx context.Context) *TourListResult {
	s.mu.RLock()
	defer s.mu.RUnlock()

	items := make([]model.Tour, len(s.tours))
	copy(items, s.tours)
	return &TourListResult{Items: items, Total: len(items)}
}

func (s *tourService) Get(ctx context.Context, rawID string) (model.Tour, error) {
	id := model.ParseID(rawID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, t := range s.tours {
		if tid, ok := t.ID(); ok && tid == id {
			return t, nil
		}
	}
	return nil, ErrNotFound
}

func (s *tourService) Create(ctx context.Context, body map[string]any) (model.Tour, error) {
	if body == nil {
		return nil, ErrBodyNil
	}
	ctx, span := tracer.Start(ctx, "TourService.Create")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	tour := model.Tour{"id": s.nextID()}
	for k, v := range body {
		tour[k] = v
	}
	s.tours = append(s.tours, tour)
	span.SetAttributes(attribute.Int("tours.count", len(s.tours)))

	if err := s.repo.Save(ctx, s.tours); err != nil {
		span.RecordError(err)
		s.log.Warn("tours_save_failed", zap.Error(err), zap.Int("count", len(s.tours)))
	}
	return tour, nil
}

// nextID must be called with mu held. It adds one to the last tour's id with
// the loose rules the dataset was written under: an empty collection starts at
// 0, a string id gets "1" appended, null counts as 0, a bool as 0 or 1, and a
// missing or structured id gives a null id.
func (s *tourService) nextID() any {
	if len(s.tours) == 0 {
		return float64(0)
	}
	last := s.tours[len(s.tours)-1]
	if id, ok := last.ID(); ok {
		return id + 1
	}
	v, present := last["id"]
	if !present {
		return nil
	}
	switch id := v.(type) {
	case nil:
		return float64(1)
	case string:
		return id + "1"
	case bool:
		if id {
			return float64(2)
		}
		return float64(1)
	}
	return nil
}

func (s *tourService) Update(ctx context.Context, rawID string) error {
	return s.checkRange(rawID)
}

func (s *tourService) Delete(ctx context.Context, rawID string) error {
	return s.checkRange(rawID)
}

// checkRange rejects ids above the collection length. NaN never compares
// greater, so non-numeric ids pass.
func (s *tourService) checkRange(rawID string) error {
	id := model.ParseID(rawID)

	s.mu.RLock()
	defer s.mu.RUnlock()

	if id > float64(len(s.tours)) {
		return ErrNotFound
	}
	return nil
}
