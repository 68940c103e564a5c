package domain

import "errors"

var (
	ErrNotFound     = errors.New("resource not found")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")

	// Extraction pipeline failures (see internal/extract for the wrapping
	// types that carry diagnostics).
	ErrInvalidInput          = errors.New("no document payload supplied or payload not decodable")
	ErrExtractionUnavailable = errors.New("document-understanding model call failed")
	ErrMalformedExtraction   = errors.New("model output does not match the extraction contract")
	ErrPersistenceFailure    = errors.New("extracted load could not be persisted")

	ErrLoadNotFound        = errors.New("load not found")
	ErrInvalidLoadStatus   = errors.New("invalid load status")
	ErrMissingInvoiceEmail = errors.New("load has no invoice email on record")

	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file exceeds maximum allowed size")
	ErrUploadFailed        = errors.New("file upload to storage failed")
)
