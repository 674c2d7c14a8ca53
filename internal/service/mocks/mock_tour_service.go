package mocks

import (
	"context"

	"tourapi/internal/model"
	"tourapi/internal/service"

	"github.com/stretchr/testify/mock"
)

type MockTourService struct {
	mock.Mock
}

func (m *MockTourService) List(ctx context.Context) *service.TourListResult {
	args := m.Called(ctx)
	return args.Get(0).(*service.TourListResult)
}

func (m *MockTourService) Get(ctx context.Context, rawID string) (model.Tour, error) {
	args := m.Called(ctx, rawID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Tour), args.Error(1)
}

func (m *MockTourService) Create(ctx context.Context, body map[string]any) (model.Tour, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(model.Tour), args.Error(1)
}

func (m *MockTourService) Update(ctx context.Context, rawID string) error {
	args := m.Called(ctx, rawID)
	return args.Error(0)
}

func (m *MockTourService) Delete(ctx context.Context, rawID string) error {
	args := m.Called(ctx, rawID)
	return args.Error(0)
}
