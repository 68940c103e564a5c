package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/luxonlabs/luxon-tms/internal/csvexport"
	"github.com/luxonlabs/luxon-tms/internal/service"
	"github.com/luxonlabs/luxon-tms/internal/xlsxexport"
)

// ExportHandler streams load exports as CSV or XLSX downloads.
type ExportHandler struct {
	loadService service.LoadService
}

// NewExportHandler creates a new ExportHandler.
func NewExportHandler(loadService service.LoadService) *ExportHandler {
	return &ExportHandler{loadService: loadService}
}

// Export handles GET /api/v1/loads/export?format=csv|xlsx
func (h *ExportHandler) Export(c *gin.Context) {
	userID, ok := authUserID(c)
	if !ok {
		return
	}

	format := c.DefaultQuery("format", "csv")
	if format != "csv" && format != "xlsx" {
		RespondError(c, http.StatusBadRequest, "INVALID_FORMAT", "format must be csv or xlsx")
		return
	}

	loads, err := h.loadService.ListAll(c.Request.Context(), userID)
	if err != nil {
		HandleError(c, err)
		return
	}

	filename := csvexport.BuildFilename("loads", format)
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)

	if format == "xlsx" {
		c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
		c.Status(http.StatusOK)
		if err := xlsxexport.WriteLoads(c.Writer, loads); err != nil {
			// Headers already sent; nothing recoverable to report.
			_ = c.Error(err)
		}
		return
	}

	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Status(http.StatusOK)
	if _, err := c.Writer.Write(csvexport.BOM); err != nil {
		_ = c.Error(err)
		return
	}

	w := csvexport.NewWriter(c.Writer)
	if err := w.WriteHeader(); err != nil {
		_ = c.Error(err)
		return
	}
	if err := w.WriteLoads(loads); err != nil {
		_ = c.Error(err)
		return
	}
	w.Flush()
	if err := w.Error(); err != nil {
		_ = c.Error(err)
	}
}
