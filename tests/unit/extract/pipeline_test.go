package extract_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/extract"
	"github.com/luxonlabs/luxon-tms/internal/port"
	"github.com/luxonlabs/luxon-tms/mocks"
)

func newTestPipeline(t *testing.T, extractor port.DocumentExtractor, contract extract.ContractVersion) *extract.Pipeline {
	t.Helper()
	p, err := extract.NewPipeline(extractor, contract, 5*time.Second)
	assert.NoError(t, err)
	return p
}

func TestNewPipeline_RejectsUnknownContract(t *testing.T) {
	_, err := extract.NewPipeline(&mocks.MockDocumentExtractor{}, "csv-v9", 0)
	assert.Error(t, err)
}

func TestPipeline_Run_EmptyPayload(t *testing.T) {
	extractor := &mocks.MockDocumentExtractor{}
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), nil, "application/pdf")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	extractor.AssertNotCalled(t, "Extract")
}

func TestPipeline_Run_UnsupportedContentType(t *testing.T) {
	extractor := &mocks.MockDocumentExtractor{}
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), []byte("%PDF"), "text/html")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrInvalidInput))
	extractor.AssertNotCalled(t, "Extract")
}

func TestPipeline_Run_ExtractorFailureIsUnavailable(t *testing.T) {
	extractor := &mocks.MockDocumentExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(nil, errors.New("connection refused"))
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), []byte("%PDF"), "application/pdf")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrExtractionUnavailable))
}

func TestPipeline_Run_MalformedResponse(t *testing.T) {
	extractor := &mocks.MockDocumentExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{RawText: "sorry, no data found", ModelUsed: "m"}, nil)
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), []byte("%PDF"), "application/pdf")
	assert.Nil(t, result)
	assert.True(t, errors.Is(err, domain.ErrMalformedExtraction))
}

func TestPipeline_Run_FullExtraction(t *testing.T) {
	extractor := &mocks.MockDocumentExtractor{}
	extractor.On("Extract", mock.Anything, mock.MatchedBy(func(in port.ExtractInput) bool {
		return in.ContentType == "application/pdf" && in.Prompt != ""
	})).Return(&port.ExtractOutput{RawText: sampleDelimitedResponse, ModelUsed: "test-model"}, nil)
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), []byte("%PDF"), "application/pdf")
	assert.NoError(t, err)

	load := result.Load
	assert.Equal(t, "LD100", load.LoadNumber)
	assert.Equal(t, "2025-11-21", load.PickupDate)
	assert.Equal(t, "2025-11-22", load.DeliveryDate)
	assert.Equal(t, "Acme Logistics", load.BrokerCompany)
	assert.Equal(t, "Johnston", load.OriginCity)
	assert.Equal(t, "SC", load.OriginState)
	assert.Equal(t, "Charlotte", load.DestCity)
	assert.Equal(t, "NC", load.DestState)
	assert.Equal(t, domain.EquipmentVan, load.Equipment)
	assert.Equal(t, float64(180), load.Miles)
	assert.Equal(t, float64(0), load.PostedRate)
	assert.Equal(t, float64(650), load.BookedRate)
	assert.Equal(t, "invoices@acme.example", load.InvoiceEmail)

	if assert.NotNil(t, result.RatePerMile) {
		assert.Equal(t, 3.61, *result.RatePerMile)
	}
	assert.Equal(t, result.RatePerMile, load.RatePerMile)
	assert.Equal(t, "test-model", result.ModelUsed)
	assert.NotEmpty(t, result.RawLine)

	extractor.AssertExpectations(t)
}

func TestPipeline_Run_ReeferScenario(t *testing.T) {
	raw := "CSV LINE:\nLD100,2025-11-21,2025-11-24,Acme Brokers,Jane Doe,555-1212,,jane@acme.com,Johnston SC,Dallas TX,R,800,0,2000,Acme Shipper,Acme Receiver\n\nINVOICE EMAIL:\nbilling@acme.com"
	extractor := &mocks.MockDocumentExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{RawText: raw, ModelUsed: "m"}, nil)
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), []byte("%PDF"), "application/pdf")
	assert.NoError(t, err)

	load := result.Load
	assert.Equal(t, "LD100", load.LoadNumber)
	assert.Equal(t, domain.EquipmentReefer, load.Equipment)
	assert.Equal(t, float64(800), load.Miles)
	assert.Equal(t, float64(0), load.PostedRate)
	assert.Equal(t, float64(2000), load.BookedRate)
	assert.Equal(t, "billing@acme.com", load.InvoiceEmail)
	if assert.NotNil(t, result.RatePerMile) {
		assert.Equal(t, 2.50, *result.RatePerMile)
	}
}

func TestPipeline_Run_NoRatePerMileWithoutMiles(t *testing.T) {
	raw := "CSV LINE:\nLD5,,,,,,,,,,,,,900,,"
	extractor := &mocks.MockDocumentExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{RawText: raw, ModelUsed: "m"}, nil)
	p := newTestPipeline(t, extractor, extract.ContractCSVv2)

	result, err := p.Run(context.Background(), []byte("%PDF"), "application/pdf")
	assert.NoError(t, err)
	assert.Equal(t, float64(900), result.Load.BookedRate)
	assert.Nil(t, result.RatePerMile)
	assert.Nil(t, result.Load.RatePerMile)
}

func TestPipeline_Run_StructuredContract(t *testing.T) {
	raw := `{"load_number":"LD300","broker_name":"Beta Freight","rate":2000,"miles":1000,"pickup_city":"Dallas","pickup_state":"TX","delivery_city":"Atlanta","delivery_state":"GA","pickup_date":"11/21/2025"}`
	extractor := &mocks.MockDocumentExtractor{}
	extractor.On("Extract", mock.Anything, mock.Anything).
		Return(&port.ExtractOutput{RawText: raw, ModelUsed: "m"}, nil)
	p := newTestPipeline(t, extractor, extract.ContractJSONv1)

	result, err := p.Run(context.Background(), []byte("%PDF"), "application/pdf")
	assert.NoError(t, err)

	load := result.Load
	assert.Equal(t, "LD300", load.LoadNumber)
	assert.Equal(t, "Beta Freight", load.BrokerCompany)
	assert.Equal(t, "2025-11-21", load.PickupDate)
	assert.Equal(t, "Dallas", load.OriginCity)
	assert.Equal(t, "TX", load.OriginState)
	assert.Equal(t, "Atlanta", load.DestCity)
	assert.Equal(t, "GA", load.DestState)
	assert.Equal(t, float64(2000), load.BookedRate)
	if assert.NotNil(t, result.RatePerMile) {
		assert.Equal(t, 2.00, *result.RatePerMile)
	}
}
