package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/service"
)

// LoadHandler handles load management endpoints.
type LoadHandler struct {
	loadService service.LoadService
}

// NewLoadHandler creates a new LoadHandler.
func NewLoadHandler(loadService service.LoadService) *LoadHandler {
	return &LoadHandler{loadService: loadService}
}

// Import handles POST /api/v1/loads/import. The uploaded rate confirmation is
// stored, run through the extraction pipeline, and persisted as a load.
func (h *LoadHandler) Import(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "MISSING_FILE", "file field is required")
		return
	}
	defer func() { _ = file.Close() }()

	result, err := h.loadService.Import(c.Request.Context(), service.LoadImportInput{
		UserID: userID,
		File:   file,
		Header: header,
	})
	if err != nil {
		// A persistence failure still carries the extracted record; attach
		// it so the caller does not lose the extraction.
		if errors.Is(err, domain.ErrPersistenceFailure) && result != nil {
			status, code, msg := MapDomainError(err)
			RespondErrorDetails(c, status, code, msg, gin.H{"load": result.Load})
			return
		}
		HandleError(c, err)
		return
	}

	RespondCreated(c, result)
}

// List handles GET /api/v1/loads
func (h *LoadHandler) List(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	if limit <= 0 || limit > 100 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}

	loads, total, err := h.loadService.List(c.Request.Context(), userID, offset, limit)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondPaginated(c, loads, PagMeta{Total: total, Offset: offset, Limit: limit})
}

// GetByID handles GET /api/v1/loads/:id
func (h *LoadHandler) GetByID(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid load ID")
		return
	}

	load, err := h.loadService.GetByID(c.Request.Context(), userID, loadID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, load)
}

type updateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus handles PATCH /api/v1/loads/:id/status
func (h *LoadHandler) UpdateStatus(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid load ID")
		return
	}

	var req updateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "status field is required")
		return
	}

	load, err := h.loadService.UpdateStatus(c.Request.Context(), userID, loadID, domain.LoadStatus(req.Status))
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, load)
}

type updateRateRequest struct {
	PostedRate *float64 `json:"posted_rate" binding:"required"`
	BookedRate *float64 `json:"booked_rate" binding:"required"`
}

// UpdateRate handles PATCH /api/v1/loads/:id/rate
func (h *LoadHandler) UpdateRate(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid load ID")
		return
	}

	var req updateRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_REQUEST", "posted_rate and booked_rate fields are required")
		return
	}

	load, err := h.loadService.UpdateRate(c.Request.Context(), userID, loadID, *req.PostedRate, *req.BookedRate)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, load)
}

// Delete handles DELETE /api/v1/loads/:id
func (h *LoadHandler) Delete(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid load ID")
		return
	}

	if err := h.loadService.Delete(c.Request.Context(), userID, loadID); err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, gin.H{"message": "load deleted"})
}

// SendInvoice handles POST /api/v1/loads/:id/invoice
func (h *LoadHandler) SendInvoice(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	loadID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "INVALID_ID", "invalid load ID")
		return
	}

	load, err := h.loadService.SendInvoice(c.Request.Context(), userID, loadID)
	if err != nil {
		HandleError(c, err)
		return
	}

	RespondOK(c, load)
}
