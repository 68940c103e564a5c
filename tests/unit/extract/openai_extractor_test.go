package extract_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/luxonlabs/luxon-tms/internal/config"
	"github.com/luxonlabs/luxon-tms/internal/extract"
	openai "github.com/luxonlabs/luxon-tms/internal/extract/openai"
	"github.com/luxonlabs/luxon-tms/internal/port"
)

func newOpenAIExtractor(serverURL string) *openai.Extractor {
	cfg := &config.ExtractorProviderConfig{
		Provider:     "openai",
		APIKey:       "test-api-key",
		DefaultModel: "gpt-4o",
		TimeoutSecs:  30,
	}
	return openai.NewExtractorWithEndpoint(cfg, serverURL)
}

func TestOpenAIExtractor_Extract_PDF(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer test-api-key", r.Header.Get("Authorization"))

		var reqBody map[string]interface{}
		err := json.NewDecoder(r.Body).Decode(&reqBody)
		assert.NoError(t, err)
		assert.Equal(t, "gpt-4o", reqBody["model"])
		assert.Equal(t, float64(4096), reqBody["max_completion_tokens"])

		content := reqBody["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		assert.Len(t, content, 2)

		fileBlock := content[0].(map[string]interface{})
		assert.Equal(t, "file", fileBlock["type"])
		fileData := fileBlock["file"].(map[string]interface{})["file_data"].(string)
		assert.True(t, strings.HasPrefix(fileData, "data:application/pdf;base64,"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": "CSV LINE:\nLD100"},
					"finish_reason": "stop",
				},
			},
		})
	}))
	defer server.Close()

	e := newOpenAIExtractor(server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF-1.4"),
		ContentType: "application/pdf",
		Prompt:      "extract the load",
	})
	assert.NoError(t, err)
	assert.Equal(t, "CSV LINE:\nLD100", out.RawText)
	assert.Equal(t, "gpt-4o", out.ModelUsed)
}

func TestOpenAIExtractor_Extract_ImageUsesImageURL(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var reqBody map[string]interface{}
		_ = json.NewDecoder(r.Body).Decode(&reqBody)
		content := reqBody["messages"].([]interface{})[0].(map[string]interface{})["content"].([]interface{})
		imgBlock := content[0].(map[string]interface{})
		assert.Equal(t, "image_url", imgBlock["type"])
		url := imgBlock["image_url"].(map[string]interface{})["url"].(string)
		assert.True(t, strings.HasPrefix(url, "data:image/jpeg;base64,"))

		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{"message": map[string]interface{}{"content": "ok"}},
			},
		})
	}))
	defer server.Close()

	e := newOpenAIExtractor(server.URL)
	out, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte{0xFF, 0xD8, 0xFF},
		ContentType: "image/jpeg",
		Prompt:      "p",
	})
	assert.NoError(t, err)
	assert.Equal(t, "ok", out.RawText)
}

func TestOpenAIExtractor_Extract_RateLimited(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Retry-After", "5")
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	e := newOpenAIExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF"),
		ContentType: "application/pdf",
		Prompt:      "p",
	})

	var rateLimited *extract.RateLimitError
	if assert.True(t, errors.As(err, &rateLimited)) {
		assert.Equal(t, "openai", rateLimited.Provider)
	}
}

func TestOpenAIExtractor_Extract_TruncatedOutput(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"choices": []map[string]interface{}{
				{
					"message":       map[string]interface{}{"content": "partial"},
					"finish_reason": "length",
				},
			},
		})
	}))
	defer server.Close()

	e := newOpenAIExtractor(server.URL)
	_, err := e.Extract(context.Background(), port.ExtractInput{
		FileBytes:   []byte("%PDF"),
		ContentType: "application/pdf",
		Prompt:      "p",
	})
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "length")
}
