package service

import (
	"context"
	"fmt"
	"io"
	"log"
	"mime/multipart"

	"github.com/google/uuid"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/extract"
	"github.com/luxonlabs/luxon-tms/internal/port"
	"github.com/luxonlabs/luxon-tms/internal/rating"
)

// LoadImportInput is the DTO for rate-confirmation import requests.
type LoadImportInput struct {
	UserID string
	File   multipart.File
	Header *multipart.FileHeader
}

// LoadImportResult carries the persisted load plus extraction provenance.
type LoadImportResult struct {
	Load      domain.Load `json:"load"`
	ModelUsed string      `json:"model_used"`
	Contract  string      `json:"contract"`
}

// LoadService defines the load management contract.
type LoadService interface {
	Import(ctx context.Context, input LoadImportInput) (*LoadImportResult, error)
	GetByID(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error)
	List(ctx context.Context, userID string, offset, limit int) ([]domain.Load, int, error)
	ListAll(ctx context.Context, userID string) ([]domain.Load, error)
	UpdateStatus(ctx context.Context, userID string, loadID uuid.UUID, status domain.LoadStatus) (*domain.Load, error)
	UpdateRate(ctx context.Context, userID string, loadID uuid.UUID, postedRate, bookedRate float64) (*domain.Load, error)
	Delete(ctx context.Context, userID string, loadID uuid.UUID) error
	SendInvoice(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error)
}

type loadService struct {
	loadRepo port.LoadRepository
	files    FileService
	pipeline *extract.Pipeline
	email    port.EmailSender
}

// NewLoadService creates a new LoadService implementation.
func NewLoadService(
	loadRepo port.LoadRepository,
	files FileService,
	pipeline *extract.Pipeline,
	email port.EmailSender,
) LoadService {
	return &loadService{
		loadRepo: loadRepo,
		files:    files,
		pipeline: pipeline,
		email:    email,
	}
}

// Import stores the uploaded document, runs the extraction pipeline on it, and
// persists the resulting load. When persistence fails the extracted record is
// still returned alongside the error so the caller does not lose it.
func (s *loadService) Import(ctx context.Context, input LoadImportInput) (*LoadImportResult, error) {
	meta, err := s.files.Upload(ctx, FileUploadInput{
		UserID: input.UserID,
		File:   input.File,
		Header: input.Header,
	})
	if err != nil {
		return nil, err
	}

	if _, err := input.File.Seek(0, io.SeekStart); err != nil {
		return nil, fmt.Errorf("seeking file: %w", err)
	}
	data, err := io.ReadAll(input.File)
	if err != nil {
		return nil, fmt.Errorf("reading file: %w", err)
	}

	result, err := s.pipeline.Run(ctx, data, meta.ContentType)
	if err != nil {
		log.Printf("loadService.Import: extraction failed for file %s: %v", meta.ID, err)
		return nil, err
	}

	load := result.Load
	load.ID = uuid.New()
	load.UserID = input.UserID
	fileID := meta.ID
	load.FileID = &fileID
	load.Status = domain.LoadStatusBooked

	if err := s.loadRepo.Create(ctx, &load); err != nil {
		log.Printf("loadService.Import: persisting load %q failed: %v", load.LoadNumber, err)
		return &LoadImportResult{
			Load:      load,
			ModelUsed: result.ModelUsed,
			Contract:  string(s.pipeline.Contract()),
		}, fmt.Errorf("%w: %v", domain.ErrPersistenceFailure, err)
	}

	log.Printf("loadService.Import: imported load %q (%s) for user %s",
		load.LoadNumber, load.ID, input.UserID)

	return &LoadImportResult{
		Load:      load,
		ModelUsed: result.ModelUsed,
		Contract:  string(s.pipeline.Contract()),
	}, nil
}

func (s *loadService) GetByID(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error) {
	return s.loadRepo.GetByID(ctx, userID, loadID)
}

func (s *loadService) List(ctx context.Context, userID string, offset, limit int) ([]domain.Load, int, error) {
	return s.loadRepo.ListByUser(ctx, userID, offset, limit)
}

// ListAll returns every load for the user, newest first. Used by exports.
func (s *loadService) ListAll(ctx context.Context, userID string) ([]domain.Load, error) {
	const pageSize = 500
	var all []domain.Load
	for offset := 0; ; offset += pageSize {
		page, total, err := s.loadRepo.ListByUser(ctx, userID, offset, pageSize)
		if err != nil {
			return nil, err
		}
		all = append(all, page...)
		if len(all) >= total || len(page) == 0 {
			return all, nil
		}
	}
}

func (s *loadService) UpdateStatus(ctx context.Context, userID string, loadID uuid.UUID, status domain.LoadStatus) (*domain.Load, error) {
	if !domain.ValidLoadStatuses[status] {
		return nil, fmt.Errorf("%w: %s", domain.ErrInvalidLoadStatus, status)
	}

	load, err := s.loadRepo.GetByID(ctx, userID, loadID)
	if err != nil {
		return nil, err
	}

	load.Status = status
	if err := s.loadRepo.UpdateStatus(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

// UpdateRate changes the posted and booked rates and recomputes the per-mile
// rate from the stored mileage.
func (s *loadService) UpdateRate(ctx context.Context, userID string, loadID uuid.UUID, postedRate, bookedRate float64) (*domain.Load, error) {
	if postedRate < 0 || bookedRate < 0 {
		return nil, fmt.Errorf("%w: rates must be non-negative", domain.ErrInvalidInput)
	}

	load, err := s.loadRepo.GetByID(ctx, userID, loadID)
	if err != nil {
		return nil, err
	}

	load.PostedRate = postedRate
	load.BookedRate = bookedRate
	load.RatePerMile = rating.RatePerMile(load.Miles, bookedRate)
	if err := s.loadRepo.UpdateRate(ctx, load); err != nil {
		return nil, err
	}
	return load, nil
}

func (s *loadService) Delete(ctx context.Context, userID string, loadID uuid.UUID) error {
	return s.loadRepo.Delete(ctx, userID, loadID)
}

// SendInvoice emails the invoice for a load to its invoice address and marks
// the load invoiced.
func (s *loadService) SendInvoice(ctx context.Context, userID string, loadID uuid.UUID) (*domain.Load, error) {
	load, err := s.loadRepo.GetByID(ctx, userID, loadID)
	if err != nil {
		return nil, err
	}

	if err := s.email.SendInvoiceEmail(ctx, load); err != nil {
		return nil, err
	}

	load.Status = domain.LoadStatusInvoiced
	if err := s.loadRepo.UpdateStatus(ctx, load); err != nil {
		return nil, err
	}

	log.Printf("loadService.SendInvoice: invoiced load %q to %s", load.LoadNumber, load.InvoiceEmail)
	return load, nil
}
