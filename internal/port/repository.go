package port

import (
	"context"

	"github.com/google/uuid"

	"github.com/luxonlabs/luxon-tms/internal/domain"
)

// LoadRepository defines the contract for load persistence.
// All query methods include userID so row access stays caller-scoped.
type LoadRepository interface {
	Create(ctx context.Context, load *domain.Load) error
	GetByID(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.Load, int, error)
	UpdateStatus(ctx context.Context, load *domain.Load) error
	UpdateRate(ctx context.Context, load *domain.Load) error
	Delete(ctx context.Context, userID string, loadID uuid.UUID) error
}

// FileMetaRepository defines the contract for file metadata persistence.
type FileMetaRepository interface {
	Create(ctx context.Context, meta *domain.FileMeta) error
	GetByID(ctx context.Context, userID string, fileID uuid.UUID) (*domain.FileMeta, error)
	ListByUser(ctx context.Context, userID string, offset, limit int) ([]domain.FileMeta, int, error)
	UpdateStatus(ctx context.Context, userID string, fileID uuid.UUID, status domain.FileStatus) error
	Delete(ctx context.Context, userID string, fileID uuid.UUID) error
}
