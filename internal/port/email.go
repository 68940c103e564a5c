package port

import (
	"context"

	"github.com/luxonlabs/luxon-tms/internal/domain"
)

// EmailSender defines the contract for sending load-related emails.
type EmailSender interface {
	SendInvoiceEmail(ctx context.Context, load *domain.Load) error
}
