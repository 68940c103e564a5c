package handler

import (
	"errors"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/extract"
	"github.com/luxonlabs/luxon-tms/internal/middleware"
)

// APIResponse is the standard envelope for all API responses.
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   *APIError   `json:"error,omitempty"`
	Meta    *PagMeta    `json:"meta,omitempty"`
}

// APIError holds error details in the response. Details carries structured
// diagnostics such as the raw model output for a malformed extraction or the
// unstored record for a persistence failure.
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// PagMeta holds pagination metadata.
type PagMeta struct {
	Total  int `json:"total"`
	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}

// RespondOK sends a 200 success response.
func RespondOK(c *gin.Context, data interface{}) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data})
}

// RespondCreated sends a 201 success response.
func RespondCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, APIResponse{Success: true, Data: data})
}

// RespondPaginated sends a 200 success response with pagination metadata.
func RespondPaginated(c *gin.Context, data interface{}, meta PagMeta) {
	c.JSON(http.StatusOK, APIResponse{Success: true, Data: data, Meta: &meta})
}

// RespondError sends an error response with the given status code.
func RespondError(c *gin.Context, status int, code, msg string) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg},
	})
}

// RespondErrorDetails sends an error response carrying structured diagnostics.
func RespondErrorDetails(c *gin.Context, status int, code, msg string, details interface{}) {
	c.JSON(status, APIResponse{
		Success: false,
		Error:   &APIError{Code: code, Message: msg, Details: details},
	})
}

// MapDomainError translates domain errors to HTTP status codes and error codes.
func MapDomainError(err error) (status int, code, msg string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound, "NOT_FOUND", "resource not found"
	case errors.Is(err, domain.ErrLoadNotFound):
		return http.StatusNotFound, "LOAD_NOT_FOUND", "load not found"
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusUnauthorized, "UNAUTHORIZED", "unauthorized"
	case errors.Is(err, domain.ErrForbidden):
		return http.StatusForbidden, "FORBIDDEN", "forbidden"
	case errors.Is(err, domain.ErrInvalidInput):
		return http.StatusBadRequest, "INVALID_INPUT", "no document payload supplied or payload not decodable"
	case errors.Is(err, domain.ErrExtractionUnavailable):
		return http.StatusBadGateway, "EXTRACTION_UNAVAILABLE", "document-understanding model is unavailable"
	case errors.Is(err, domain.ErrMalformedExtraction):
		return http.StatusUnprocessableEntity, "MALFORMED_EXTRACTION", "model output does not match the extraction contract"
	case errors.Is(err, domain.ErrPersistenceFailure):
		return http.StatusInternalServerError, "PERSISTENCE_FAILURE", "extracted load could not be persisted"
	case errors.Is(err, domain.ErrInvalidLoadStatus):
		return http.StatusBadRequest, "INVALID_LOAD_STATUS", "invalid load status; allowed: booked, in_transit, delivered, invoiced, paid"
	case errors.Is(err, domain.ErrMissingInvoiceEmail):
		return http.StatusBadRequest, "MISSING_INVOICE_EMAIL", "load has no invoice email on record"
	case errors.Is(err, domain.ErrUnsupportedFileType):
		return http.StatusBadRequest, "UNSUPPORTED_FILE_TYPE", "unsupported file type; allowed: pdf, jpg, png"
	case errors.Is(err, domain.ErrFileTooLarge):
		return http.StatusRequestEntityTooLarge, "FILE_TOO_LARGE", "file exceeds maximum allowed size"
	case errors.Is(err, domain.ErrUploadFailed):
		return http.StatusInternalServerError, "UPLOAD_FAILED", "file upload to storage failed"
	default:
		return http.StatusInternalServerError, "INTERNAL_ERROR", "an internal error occurred"
	}
}

// HandleError maps a domain error and sends the appropriate error response.
// Malformed extractions attach the verbatim model output so the operator can
// recover the load by hand.
func HandleError(c *gin.Context, err error) {
	status, code, msg := MapDomainError(err)
	if status >= 500 {
		requestID, _ := c.Get("request_id")
		log.Printf("[%s] internal error: %v", requestID, err)
	}

	var malformed *extract.MalformedError
	if errors.As(err, &malformed) {
		RespondErrorDetails(c, status, code, msg, gin.H{
			"reason":     malformed.Reason,
			"raw_output": malformed.Raw,
		})
		return
	}

	RespondError(c, status, code, msg)
}

// authUserID extracts the caller's user ID from the request context.
// Returns false if auth context is missing (error response already written).
func authUserID(c *gin.Context) (string, bool) {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		RespondError(c, http.StatusUnauthorized, "UNAUTHORIZED", "missing user context")
		return "", false
	}
	return userID, true
}
