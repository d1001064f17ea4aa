package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/denotehq/denote/internal/metrics"
	"github.com/denotehq/denote/internal/types"
)

// GenerateOptions tunes a single generation call.
type GenerateOptions struct {
	// Temperature lowers randomness when set; nil uses the endpoint default.
	Temperature *float64
}

// GenerateClient sends single-turn prompts to a generateContent-style
// endpoint. This is the one call site where upstream failure propagates to
// the caller.
type GenerateClient struct {
	HTTPClient *http.Client
	// URL is the full generateContent endpoint for the configured model.
	URL string
	// APIKey resolves the key on demand so admin updates take effect
	// without a restart.
	APIKey func() string
}

// NewGenerateClient returns a GenerateClient with a timeout sized for slow
// model responses.
func NewGenerateClient(endpointURL string, apiKey func() string) *GenerateClient {
	return &GenerateClient{
		HTTPClient: &http.Client{Timeout: 120 * time.Second},
		URL:        endpointURL,
		APIKey:     apiKey,
	}
}

type generatePart struct {
	Text string `json:"text"`
}

type generateContent struct {
	Role  string         `json:"role,omitempty"`
	Parts []generatePart `json:"parts"`
}

type generateRequest struct {
	Contents         []generateContent `json:"contents"`
	GenerationConfig *generationConfig `json:"generationConfig,omitempty"`
}

type generationConfig struct {
	Temperature *float64 `json:"temperature,omitempty"`
}

type generateResponse struct {
	Candidates []struct {
		Content generateContent `json:"content"`
	} `json:"candidates"`
	UsageMetadata struct {
		TotalTokenCount int `json:"totalTokenCount"`
	} `json:"usageMetadata"`
}

// Generate sends a single-turn prompt and returns the first candidate's text
// plus the token count the endpoint reported (0 when absent). Transport
// errors, non-2xx statuses, unparsable bodies, and empty candidate lists all
// propagate as errors.
func (c *GenerateClient) Generate(ctx context.Context, prompt string, opts *GenerateOptions) (string, int, error) {
	reqBody := generateRequest{
		Contents: []generateContent{
			{Role: "user", Parts: []generatePart{{Text: prompt}}},
		},
	}
	if opts != nil && opts.Temperature != nil {
		reqBody.GenerationConfig = &generationConfig{Temperature: opts.Temperature}
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return "", 0, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.URL, bytes.NewReader(payload))
	if err != nil {
		return "", 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-goog-api-key", c.APIKey())

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		metrics.RecordAICall("error")
		return "", 0, types.UpstreamError(fmt.Sprintf("generative model call failed: %v", err), "ai.generate.transport")
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		metrics.RecordAICall("error")
		return "", 0, types.UpstreamError(fmt.Sprintf("failed to read model response: %v", err), "ai.generate.read")
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		metrics.RecordAICall("error")
		return "", 0, types.UpstreamError(fmt.Sprintf("generative model returned status %d", resp.StatusCode), "ai.generate.status")
	}

	var parsed generateResponse
	if err := json.Unmarshal(body, &parsed); err != nil {
		metrics.RecordAICall("error")
		return "", 0, types.UpstreamError(fmt.Sprintf("failed to parse model response: %v", err), "ai.generate.parse")
	}

	if len(parsed.Candidates) == 0 || len(parsed.Candidates[0].Content.Parts) == 0 {
		metrics.RecordAICall("error")
		return "", 0, types.UpstreamError("model response contained no candidates", "ai.generate.empty")
	}

	metrics.RecordAICall("ok")
	metrics.RecordAITokens(parsed.UsageMetadata.TotalTokenCount)

	return parsed.Candidates[0].Content.Parts[0].Text, parsed.UsageMetadata.TotalTokenCount, nil
}
