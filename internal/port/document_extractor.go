package port

import "context"

// ExtractInput carries the document payload sent to the
// document-understanding model.
type ExtractInput struct {
	FileBytes   []byte
	ContentType string
	Prompt      string
}

// ExtractOutput is the model's unprocessed answer. RawText is handed to the
// extraction-response parser untouched so it can be preserved verbatim in
// diagnostics.
type ExtractOutput struct {
	RawText    string
	ModelUsed  string
	PromptUsed string
}

// DocumentExtractor abstracts the outbound call to a document-understanding
// model provider. It is the single external dependency of the extraction
// pipeline.
type DocumentExtractor interface {
	Extract(ctx context.Context, input ExtractInput) (*ExtractOutput, error)
}
