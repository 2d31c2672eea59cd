package enrich

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"medixscan/internal/core/corrector"
	perr "medixscan/internal/platform/errors"
)

const (
	defaultModel   = "gpt-4o-mini"
	defaultBaseURL = "https://api.openai.com/v1"

	// deterministic review, generous but bounded reply
	requestTemperature = 0.0
	requestMaxTokens   = 2000
	clientTimeout      = 30 * time.Second
)

const systemPrompt = `You review corrections for radiology report text. ` +
	`You receive the report and a JSON array of correction records with ` +
	`error, suggestion, recommendation, position [start, end), error_type ` +
	`and confidence. Remove wrong records, fix bad suggestions and add ` +
	`records the rules missed. Reply with ONLY the revised JSON array in ` +
	`the same schema.`

// OpenAI reviews correction records through the chat completions API
type OpenAI struct {
	httpc   *http.Client
	apiKey  string
	model   string
	baseURL string
}

// OpenAIOption customizes the client
type OpenAIOption func(*OpenAI)

// WithModel overrides the completion model
func WithModel(model string) OpenAIOption {
	return func(c *OpenAI) {
		if model != "" {
			c.model = model
		}
	}
}

// WithBaseURL overrides the API endpoint, mainly for tests
func WithBaseURL(u string) OpenAIOption {
	return func(c *OpenAI) {
		if u != "" {
			c.baseURL = strings.TrimRight(u, "/")
		}
	}
}

// WithHTTPClient overrides the transport, mainly for tests
func WithHTTPClient(h *http.Client) OpenAIOption {
	return func(c *OpenAI) {
		if h != nil {
			c.httpc = h
		}
	}
}

// NewOpenAI creates a client with the given API key
func NewOpenAI(apiKey string, opts ...OpenAIOption) *OpenAI {
	c := &OpenAI{
		httpc:   &http.Client{Timeout: clientTimeout},
		apiKey:  apiKey,
		model:   defaultModel,
		baseURL: defaultBaseURL,
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// Available reports whether the client holds an API key
func (c *OpenAI) Available() bool { return c.apiKey != "" }

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Messages    []chatMessage `json:"messages"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

// Enhance sends the report and current records for review and parses the
// revised record set out of the model reply
func (c *OpenAI) Enhance(ctx context.Context, text string, recs []corrector.Record) ([]corrector.Record, error) {
	current, err := json.Marshal(recs)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEnrichment, "encode corrections")
	}

	body, err := json.Marshal(chatRequest{
		Model:       c.model,
		Temperature: requestTemperature,
		MaxTokens:   requestMaxTokens,
		Messages: []chatMessage{
			{Role: "system", Content: systemPrompt},
			{Role: "user", Content: fmt.Sprintf("Report:\n%s\n\nCorrections:\n%s", text, current)},
		},
	})
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEnrichment, "encode request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat/completions", bytes.NewReader(body))
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEnrichment, "build request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+c.apiKey)

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEnrichment, "call completion API")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		snippet, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, perr.Enrichmentf("completion API status %d: %s", resp.StatusCode, snippet)
	}

	var cr chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&cr); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEnrichment, "decode response")
	}
	if len(cr.Choices) == 0 {
		return nil, perr.Enrichmentf("completion API returned no choices")
	}

	out, err := parseRecords(cr.Choices[0].Message.Content, len(text))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// parseRecords extracts the revised record array from a model reply,
// tolerating code fences, and drops records with unusable spans
func parseRecords(reply string, textLen int) ([]corrector.Record, error) {
	reply = strings.TrimSpace(reply)
	reply = strings.TrimPrefix(reply, "```json")
	reply = strings.TrimPrefix(reply, "```")
	reply = strings.TrimSuffix(reply, "```")
	reply = strings.TrimSpace(reply)

	var recs []corrector.Record
	if err := json.Unmarshal([]byte(reply), &recs); err != nil {
		return nil, perr.Wrap(err, perr.ErrorCodeEnrichment, "parse model reply")
	}

	out := recs[:0]
	for _, r := range recs {
		if r.Suggestion == "" || r.Error == "" {
			continue
		}
		if r.Position[0] < 0 || r.Position[1] > textLen || r.Position[0] >= r.Position[1] {
			continue
		}
		out = append(out, r)
	}
	return out, nil
}
