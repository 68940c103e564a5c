package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/luxonlabs/luxon-tms/internal/domain"
)

// MockEmailSender is a mock implementation of port.EmailSender.
type MockEmailSender struct {
	mock.Mock
}

func (m *MockEmailSender) SendInvoiceEmail(ctx context.Context, load *domain.Load) error {
	args := m.Called(ctx, load)
	return args.Error(0)
}
