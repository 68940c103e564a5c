package extract

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/luxonlabs/luxon-tms/internal/domain"
	"github.com/luxonlabs/luxon-tms/internal/normalize"
	"github.com/luxonlabs/luxon-tms/internal/port"
	"github.com/luxonlabs/luxon-tms/internal/rating"
)

// DefaultTimeout bounds a whole pipeline run, model call included. Exceeding
// it is a hard failure, never a partial result.
const DefaultTimeout = 60 * time.Second

// Result is the structured outcome of one successful pipeline run. Load
// carries the normalized canonical fields but no persistence metadata; the
// caller owns the record from here on.
type Result struct {
	Load        domain.Load
	RatePerMile *float64
	RawLine     string
	ModelUsed   string
	PromptUsed  string
}

// Pipeline orchestrates one document extraction: model call, response
// parsing, normalization, and derived metrics. It holds no mutable state, so
// any number of runs may proceed in parallel.
type Pipeline struct {
	extractor port.DocumentExtractor
	contract  ContractVersion
	timeout   time.Duration
}

// NewPipeline creates a Pipeline for the given provider and contract version.
// A non-positive timeout falls back to DefaultTimeout.
func NewPipeline(extractor port.DocumentExtractor, contract ContractVersion, timeout time.Duration) (*Pipeline, error) {
	if !ValidContracts[contract] {
		return nil, fmt.Errorf("unknown contract version: %s", contract)
	}
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return &Pipeline{extractor: extractor, contract: contract, timeout: timeout}, nil
}

// Contract returns the active contract version.
func (p *Pipeline) Contract() ContractVersion {
	return p.contract
}

// Run executes the pipeline on one document payload. Failure modes:
// domain.ErrInvalidInput for a missing or unsupported payload (no model call
// is attempted), domain.ErrExtractionUnavailable for transport/model
// failures including timeout, and a MalformedError (wrapping
// domain.ErrMalformedExtraction) when the response does not match the
// contract. Normalization itself never fails.
func (p *Pipeline) Run(ctx context.Context, fileBytes []byte, contentType string) (*Result, error) {
	if len(fileBytes) == 0 {
		return nil, fmt.Errorf("%w: empty payload", domain.ErrInvalidInput)
	}
	if _, ok := domain.AllowedContentTypes[contentType]; !ok {
		return nil, fmt.Errorf("%w: unsupported content type %q", domain.ErrInvalidInput, contentType)
	}

	prompt, err := BuildPrompt(p.contract)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	output, err := p.extractor.Extract(ctx, port.ExtractInput{
		FileBytes:   fileBytes,
		ContentType: contentType,
		Prompt:      prompt,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrExtractionUnavailable, err)
	}

	fields, err := p.parse(output.RawText)
	if err != nil {
		return nil, err
	}

	load := normalizeFields(fields)
	rpm := rating.RatePerMile(load.Miles, load.BookedRate)
	load.RatePerMile = rpm
	load.RawLine = fields.RawLine

	log.Printf("extract.Pipeline.Run: extracted load %q via %s (%s contract)",
		load.LoadNumber, output.ModelUsed, p.contract)

	return &Result{
		Load:        load,
		RatePerMile: rpm,
		RawLine:     fields.RawLine,
		ModelUsed:   output.ModelUsed,
		PromptUsed:  output.PromptUsed,
	}, nil
}

func (p *Pipeline) parse(raw string) (*Fields, error) {
	switch p.contract {
	case ContractJSONv1:
		return ParseStructured(raw)
	default:
		return ParseDelimited(raw)
	}
}

// normalizeFields converts raw fields into a canonical Load. Each conversion
// is total, so a cosmetic formatting mismatch can never fail the pipeline.
func normalizeFields(f *Fields) domain.Load {
	originCity, originState := normalize.Location(f.Origin)
	destCity, destState := normalize.Location(f.Destination)

	return domain.Load{
		LoadNumber:    f.LoadNumber,
		PickupDate:    normalize.Date(f.PickupDate),
		DeliveryDate:  normalize.Date(f.DeliveryDate),
		BrokerCompany: f.BrokerCompany,
		BrokerContact: f.BrokerContact,
		ContactPhone:  f.ContactPhone,
		PhoneExt:      f.PhoneExt,
		ContactEmail:  f.ContactEmail,
		InvoiceEmail:  f.InvoiceEmail,
		OriginCity:    originCity,
		OriginState:   originState,
		DestCity:      destCity,
		DestState:     destState,
		Equipment:     normalize.Equipment(f.Equipment),
		Miles:         normalize.Amount(f.Miles),
		PostedRate:    normalize.Amount(f.PostedRate),
		BookedRate:    normalize.Amount(f.BookedRate),
		Shipper:       f.Shipper,
		Receiver:      f.Receiver,
		BrokerMC:      f.BrokerMC,
		Commodity:     f.Commodity,
		Weight:        f.Weight,
		Notes:         f.Notes,
	}
}
