package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/luxonlabs/luxon-tms/internal/domain"
)

// MockLoadRepo is a mock implementation of port.LoadRepository.
type MockLoadRepo struct {
	mock.Mock
}

func (m *MockLoadRepo) Create(ctx context.Context, load *domain.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepo) GetByID(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error) {
	args := m.Called(ctx, userID, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}

func (m *MockLoadRepo) ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Load, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Load), args.Int(1), args.Error(2)
}

func (m *MockLoadRepo) UpdateStatus(ctx context.Context, load *domain.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepo) UpdateRate(ctx context.Context, load *domain.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}

func (m *MockLoadRepo) Delete(ctx context.Context, userID string, loadID uuid.UUID) error {
	args := m.Called(ctx, userID, loadID)
	return args.Error(0)
}
