package gateway

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/denotehq/denote/internal/metrics"
	"go.uber.org/zap"
)

// Fixed number of results requested per query.
const searchResultCount = 3

// Fallback texts returned instead of errors; search failure is absorbed, not
// surfaced.
const (
	searchNoResultsText = "No relevant information found online."
	searchFailedText    = "Could not perform an online search at this time."
)

// SearchClient calls a Custom-Search-style JSON endpoint.
type SearchClient struct {
	HTTPClient *http.Client
	BaseURL    string
	EngineID   string
	// APIKey resolves the key on demand so admin updates take effect
	// without a restart.
	APIKey func() string
}

// NewSearchClient returns a SearchClient with a sane default timeout.
func NewSearchClient(baseURL, engineID string, apiKey func() string) *SearchClient {
	return &SearchClient{
		HTTPClient: &http.Client{Timeout: 15 * time.Second},
		BaseURL:    baseURL,
		EngineID:   engineID,
		APIKey:     apiKey,
	}
}

type searchItem struct {
	Title   string `json:"title"`
	Link    string `json:"link"`
	Snippet string `json:"snippet"`
}

type searchResponse struct {
	Items []searchItem `json:"items"`
}

// Search runs the query and returns a formatted block of results. On any
// failure, or when nothing is found, it returns a human-readable fallback
// string rather than an error.
func (c *SearchClient) Search(ctx context.Context, query string) string {
	formatted, err := c.search(ctx, query)
	if err != nil {
		zap.L().Warn("online search failed", zap.String("query", query), zap.Error(err))
		metrics.RecordSearchCall("error")
		return searchFailedText
	}
	metrics.RecordSearchCall("ok")
	return formatted
}

func (c *SearchClient) search(ctx context.Context, query string) (string, error) {
	key := c.APIKey()
	if key == "" {
		return "", fmt.Errorf("search API key not configured")
	}

	reqURL := fmt.Sprintf("%s?key=%s&cx=%s&q=%s&num=%d",
		c.BaseURL, url.QueryEscape(key), url.QueryEscape(c.EngineID),
		url.QueryEscape(query), searchResultCount)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", err
	}

	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("search endpoint returned status %d", resp.StatusCode)
	}

	var results searchResponse
	if err := json.Unmarshal(body, &results); err != nil {
		return "", fmt.Errorf("failed to parse search response: %w", err)
	}

	if len(results.Items) == 0 {
		return searchNoResultsText, nil
	}

	var b strings.Builder
	b.WriteString("Here is the latest information from the web:\n\n")
	for i, item := range results.Items {
		fmt.Fprintf(&b, "%d. %s\nSource: %s\nSnippet: %s\n\n", i+1, item.Title, item.Link, item.Snippet)
	}
	return b.String(), nil
}
