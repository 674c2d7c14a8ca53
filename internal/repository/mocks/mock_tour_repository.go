package mocks

import (
	"context"

	"tourapi/internal/model"

	"github.com/stretchr/testify/mock"
)

type MockTourRepository struct {
	mock.Mock
}

func (m *MockTourRepository) Load(ctx context.Context) ([]model.Tour, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Tour), args.Error(1)
}

func (m *MockTourRepository) Save(ctx context.Context, tours []model.Tour) error {
	args := m.Called(ctx, tours)
	return args.Error(0)
}

func (m *MockTourRepository) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}
