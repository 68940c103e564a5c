package mocks

import (
	"context"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/service"
)

// MockLoadService is a mock implementation of service.LoadService.
type MockLoadService struct {
	mock.Mock
}

func (m *MockLoadService) Import(ctx context.Context, input service.LoadImportInput) (*service.LoadImportResult, error) {
	args := m.Called(ctx, input)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.LoadImportResult), args.Error(1)
}

func (m *MockLoadService) GetByID(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error) {
	args := m.Called(ctx, userID, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}

func (m *MockLoadService) List(ctx context.Context, userID string, offset, limit int) ([]domain.Load, int, error) {
	args := m.Called(ctx, userID, offset, limit)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Load), args.Int(1), args.Error(2)
}

func (m *MockLoadService) ListAll(ctx context.Context, userID string) ([]domain.Load, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Load), args.Error(1)
}

func (m *MockLoadService) UpdateStatus(ctx context.Context, userID string, loadID uuid.UUID, status domain.LoadStatus) (*domain.Load, error) {
	args := m.Called(ctx, userID, loadID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}

func (m *MockLoadService) UpdateRate(ctx context.Context, userID string, loadID uuid.UUID, postedRate, bookedRate float64) (*domain.Load, error) {
	args := m.Called(ctx, userID, loadID, postedRate, bookedRate)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}

func (m *MockLoadService) Delete(ctx context.Context, userID string, loadID uuid.UUID) error {
	args := m.Called(ctx, userID, loadID)
	return args.Error(0)
}

func (m *MockLoadService) SendInvoice(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error) {
	args := m.Called(ctx, userID, loadID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Load), args.Error(1)
}
