package handler_test

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/extract"
	"github.com/luxonlabs/luxon-tms/internal/handler"
	"github.com/luxonlabs/luxon-tms/internal/middleware"
	"github.com/luxonlabs/luxon-tms/internal/service"
	"github.com/luxonlabs/luxon-tms/mocks"
)

func setAuthContext(c *gin.Context, userID string) {
	c.Set(middleware.ContextKeyUserID, userID)
	c.Set(middleware.ContextKeyEmail, "user@test.example")
}

func multipartBody(t *testing.T) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	part, err := writer.CreateFormFile("file", "ratecon.pdf")
	assert.NoError(t, err)
	_, _ = part.Write([]byte("%PDF-1.4 test content"))
	writer.Close()
	return body, writer.FormDataContentType()
}

func TestLoadHandler_Import_Success(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	expected := &service.LoadImportResult{
		Load:      domain.Load{ID: uuid.New(), LoadNumber: "LD100", Status: domain.LoadStatusBooked},
		ModelUsed: "test-model",
		Contract:  "csv-v2",
	}
	mockSvc.On("Import", mock.Anything, mock.AnythingOfType("service.LoadImportInput")).
		Return(expected, nil)

	body, contentType := multipartBody(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/loads/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, "user-123")

	h.Import(c)

	assert.Equal(t, http.StatusCreated, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	mockSvc.AssertExpectations(t)
}

func TestLoadHandler_Import_NoFile(t *testing.T) {
	h := handler.NewLoadHandler(new(mocks.MockLoadService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/loads/import", nil)
	setAuthContext(c, "user-123")

	h.Import(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadHandler_Import_MalformedExtractionCarriesRawOutput(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	mockSvc.On("Import", mock.Anything, mock.Anything).
		Return(nil, extract.NewMalformedError("data line label not found in response", "sorry, I cannot help"))

	body, contentType := multipartBody(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/loads/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, "user-123")

	h.Import(c)

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "MALFORMED_EXTRACTION", resp.Error.Code)

	details := resp.Error.Details.(map[string]interface{})
	assert.Equal(t, "sorry, I cannot help", details["raw_output"])
}

func TestLoadHandler_Import_PersistenceFailureCarriesRecord(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	result := &service.LoadImportResult{
		Load: domain.Load{LoadNumber: "LD100"},
	}
	mockSvc.On("Import", mock.Anything, mock.Anything).
		Return(result, domain.ErrPersistenceFailure)

	body, contentType := multipartBody(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/loads/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, "user-123")

	h.Import(c)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "PERSISTENCE_FAILURE", resp.Error.Code)

	details := resp.Error.Details.(map[string]interface{})
	load := details["load"].(map[string]interface{})
	assert.Equal(t, "LD100", load["load_number"])
}

func TestLoadHandler_Import_ExtractionUnavailable(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	mockSvc.On("Import", mock.Anything, mock.Anything).
		Return(nil, domain.ErrExtractionUnavailable)

	body, contentType := multipartBody(t)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/loads/import", body)
	c.Request.Header.Set("Content-Type", contentType)
	setAuthContext(c, "user-123")

	h.Import(c)

	assert.Equal(t, http.StatusBadGateway, w.Code)
}

func TestLoadHandler_GetByID_NotFound(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	loadID := uuid.New()
	mockSvc.On("GetByID", mock.Anything, "user-123", loadID).
		Return(nil, domain.ErrLoadNotFound)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/loads/"+loadID.String(), nil)
	c.Params = gin.Params{{Key: "id", Value: loadID.String()}}
	setAuthContext(c, "user-123")

	h.GetByID(c)

	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestLoadHandler_GetByID_InvalidID(t *testing.T) {
	h := handler.NewLoadHandler(new(mocks.MockLoadService))

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/loads/not-a-uuid", nil)
	c.Params = gin.Params{{Key: "id", Value: "not-a-uuid"}}
	setAuthContext(c, "user-123")

	h.GetByID(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadHandler_UpdateStatus(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	loadID := uuid.New()
	updated := &domain.Load{ID: loadID, Status: domain.LoadStatusDelivered}
	mockSvc.On("UpdateStatus", mock.Anything, "user-123", loadID, domain.LoadStatusDelivered).
		Return(updated, nil)

	body := bytes.NewBufferString(`{"status":"delivered"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/loads/"+loadID.String()+"/status", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: loadID.String()}}
	setAuthContext(c, "user-123")

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLoadHandler_UpdateStatus_InvalidStatus(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	loadID := uuid.New()
	mockSvc.On("UpdateStatus", mock.Anything, "user-123", loadID, domain.LoadStatus("teleported")).
		Return(nil, domain.ErrInvalidLoadStatus)

	body := bytes.NewBufferString(`{"status":"teleported"}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/loads/"+loadID.String()+"/status", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: loadID.String()}}
	setAuthContext(c, "user-123")

	h.UpdateStatus(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLoadHandler_UpdateRate(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	loadID := uuid.New()
	rpm := 2.5
	updated := &domain.Load{ID: loadID, PostedRate: 1300, BookedRate: 1250, RatePerMile: &rpm}
	mockSvc.On("UpdateRate", mock.Anything, "user-123", loadID, float64(1300), float64(1250)).
		Return(updated, nil)

	body := bytes.NewBufferString(`{"posted_rate":1300,"booked_rate":1250}`)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPatch, "/api/v1/loads/"+loadID.String()+"/rate", body)
	c.Request.Header.Set("Content-Type", "application/json")
	c.Params = gin.Params{{Key: "id", Value: loadID.String()}}
	setAuthContext(c, "user-123")

	h.UpdateRate(c)

	assert.Equal(t, http.StatusOK, w.Code)
	mockSvc.AssertExpectations(t)
}

func TestLoadHandler_List(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	loads := []domain.Load{{LoadNumber: "LD1"}, {LoadNumber: "LD2"}}
	mockSvc.On("List", mock.Anything, "user-123", 0, 20).Return(loads, 2, nil)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodGet, "/api/v1/loads", nil)
	setAuthContext(c, "user-123")

	h.List(c)

	assert.Equal(t, http.StatusOK, w.Code)
	var resp handler.APIResponse
	assert.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	if assert.NotNil(t, resp.Meta) {
		assert.Equal(t, 2, resp.Meta.Total)
	}
}

func TestLoadHandler_SendInvoice_MissingEmail(t *testing.T) {
	mockSvc := new(mocks.MockLoadService)
	h := handler.NewLoadHandler(mockSvc)

	loadID := uuid.New()
	mockSvc.On("SendInvoice", mock.Anything, "user-123", loadID).
		Return(nil, domain.ErrMissingInvoiceEmail)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request, _ = http.NewRequest(http.MethodPost, "/api/v1/loads/"+loadID.String()+"/invoice", nil)
	c.Params = gin.Params{{Key: "id", Value: loadID.String()}}
	setAuthContext(c, "user-123")

	h.SendInvoice(c)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
