package noop

import (
	"context"
	"log"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/port"
)

type noopSender struct{}

// NewNoopSender creates a no-op EmailSender that logs instead of sending.
func NewNoopSender() port.EmailSender {
	return &noopSender{}
}

func (s *noopSender) SendInvoiceEmail(_ context.Context, load *domain.Load) error {
	if load.InvoiceEmail == "" {
		return domain.ErrMissingInvoiceEmail
	}
	log.Printf("[NOOP EMAIL] Invoice for load %s to %s ($%.2f)",
		load.LoadNumber, load.InvoiceEmail, load.BookedRate)
	return nil
}
