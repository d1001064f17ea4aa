package gateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func staticKey(key string) func() string {
	return func() string { return key }
}

// fakeGenerateServer returns a generateContent-style endpoint that replies
// with the given text and token count, capturing the last prompt it saw.
func fakeGenerateServer(t *testing.T, text string, tokens int, lastPrompt *string) *httptest.Server {
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var body struct {
			Contents []struct {
				Parts []struct {
					Text string `json:"text"`
				} `json:"parts"`
			} `json:"contents"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("Failed to decode generate request: %v", err)
		}
		if lastPrompt != nil && len(body.Contents) > 0 && len(body.Contents[0].Parts) > 0 {
			*lastPrompt = body.Contents[0].Parts[0].Text
		}

		resp := map[string]interface{}{
			"candidates": []map[string]interface{}{
				{"content": map[string]interface{}{
					"parts": []map[string]string{{"text": text}},
				}},
			},
			"usageMetadata": map[string]int{"totalTokenCount": tokens},
		}
		_ = json.NewEncoder(w).Encode(resp)
	}))
}

func TestGenerateParsesResponse(t *testing.T) {
	srv := fakeGenerateServer(t, "Hello there.", 42, nil)
	defer srv.Close()

	client := NewGenerateClient(srv.URL, staticKey("k"))
	text, tokens, err := client.Generate(context.Background(), "hi", nil)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	if text != "Hello there." {
		t.Errorf("Expected candidate text, got %q", text)
	}
	if tokens != 42 {
		t.Errorf("Expected 42 tokens, got %d", tokens)
	}
}

func TestGenerateUpstreamStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	client := NewGenerateClient(srv.URL, staticKey("k"))
	if _, _, err := client.Generate(context.Background(), "hi", nil); err == nil {
		t.Fatal("Expected error on non-2xx status")
	}
}

func TestGenerateEmptyCandidates(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"candidates":[]}`))
	}))
	defer srv.Close()

	client := NewGenerateClient(srv.URL, staticKey("k"))
	if _, _, err := client.Generate(context.Background(), "hi", nil); err == nil {
		t.Fatal("Expected error on empty candidate list")
	}
}

func TestSearchFormatsResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("num"); got != "3" {
			t.Errorf("Expected num=3, got %q", got)
		}
		_, _ = w.Write([]byte(`{"items":[
			{"title":"Go","link":"https://go.dev","snippet":"The Go language."},
			{"title":"Fiber","link":"https://gofiber.io","snippet":"Web framework."}
		]}`))
	}))
	defer srv.Close()

	client := NewSearchClient(srv.URL, "engine", staticKey("k"))
	result := client.Search(context.Background(), "golang")

	if !strings.HasPrefix(result, "Here is the latest information from the web:\n\n") {
		t.Errorf("Unexpected result prefix: %q", result)
	}
	if !strings.Contains(result, "1. Go\nSource: https://go.dev\nSnippet: The Go language.") {
		t.Errorf("Missing formatted first item: %q", result)
	}
	if !strings.Contains(result, "2. Fiber\n") {
		t.Errorf("Missing second item: %q", result)
	}
}

func TestSearchNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[]}`))
	}))
	defer srv.Close()

	client := NewSearchClient(srv.URL, "engine", staticKey("k"))
	if got := client.Search(context.Background(), "abc"); got != "No relevant information found online." {
		t.Errorf("Expected no-results fallback, got %q", got)
	}
}

func TestSearchFailureFallback(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer srv.Close()

	client := NewSearchClient(srv.URL, "engine", staticKey("k"))
	if got := client.Search(context.Background(), "abc"); got != "Could not perform an online search at this time." {
		t.Errorf("Expected failure fallback, got %q", got)
	}

	// Missing key is also absorbed into the fallback.
	client = NewSearchClient(srv.URL, "engine", staticKey(""))
	if got := client.Search(context.Background(), "abc"); got != "Could not perform an online search at this time." {
		t.Errorf("Expected failure fallback on missing key, got %q", got)
	}
}

func TestProcessUserPromptComposition(t *testing.T) {
	searchSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"items":[{"title":"T","link":"L","snippet":"S"}]}`))
	}))
	defer searchSrv.Close()

	var prompt string
	genSrv := fakeGenerateServer(t, "Answer.", 7, &prompt)
	defer genSrv.Close()

	gw := New(
		NewSearchClient(searchSrv.URL, "engine", staticKey("k")),
		NewGenerateClient(genSrv.URL, staticKey("k")),
	)

	result := gw.ProcessUserPrompt(context.Background(), PromptRequest{
		UserPrompt:   "what is new",
		SearchOnline: true,
	})

	if result.Text != "Answer." {
		t.Errorf("Expected model text, got %q", result.Text)
	}
	if result.APICalls != 1 || result.TokenCount != 7 {
		t.Errorf("Expected usage 1 call / 7 tokens, got %d / %d", result.APICalls, result.TokenCount)
	}

	if !strings.HasPrefix(prompt, "Based on the following context, please answer the user's request.") {
		t.Errorf("Unexpected prompt prefix: %q", prompt)
	}
	if !strings.Contains(prompt, "--- START OF ONLINE SEARCH RESULTS ---") ||
		!strings.Contains(prompt, "--- END OF ONLINE SEARCH RESULTS ---") {
		t.Errorf("Expected search result markers in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "User Request: what is new") {
		t.Errorf("Expected literal user request in prompt: %q", prompt)
	}
}

func TestProcessUserPromptSearchFailureStillGenerates(t *testing.T) {
	var prompt string
	genSrv := fakeGenerateServer(t, "Answer.", 0, &prompt)
	defer genSrv.Close()

	// Search endpoint is unreachable; the fallback text still becomes the
	// model's context block.
	gw := New(
		NewSearchClient("http://127.0.0.1:1", "engine", staticKey("k")),
		NewGenerateClient(genSrv.URL, staticKey("k")),
	)

	result := gw.ProcessUserPrompt(context.Background(), PromptRequest{
		UserPrompt:   "what is new",
		SearchOnline: true,
	})

	if result.Text != "Answer." {
		t.Errorf("Expected model text despite search failure, got %q", result.Text)
	}
	if !strings.Contains(prompt, "Could not perform an online search at this time.") {
		t.Errorf("Expected search fallback text in prompt: %q", prompt)
	}
	if !strings.Contains(prompt, "--- START OF ONLINE SEARCH RESULTS ---") {
		t.Errorf("Expected search markers in prompt: %q", prompt)
	}
}

func TestProcessUserPromptNoSearch(t *testing.T) {
	var prompt string
	genSrv := fakeGenerateServer(t, "Answer.", 0, &prompt)
	defer genSrv.Close()

	gw := New(
		NewSearchClient("http://127.0.0.1:1", "engine", staticKey("k")),
		NewGenerateClient(genSrv.URL, staticKey("k")),
	)

	gw.ProcessUserPrompt(context.Background(), PromptRequest{UserPrompt: "hello"})

	if strings.Contains(prompt, "ONLINE SEARCH RESULTS") {
		t.Errorf("Expected no search block without searchOnline: %q", prompt)
	}
}

func TestProcessUserPromptDegradesOnModelFailure(t *testing.T) {
	genSrv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer genSrv.Close()

	gw := New(
		NewSearchClient("http://127.0.0.1:1", "engine", staticKey("k")),
		NewGenerateClient(genSrv.URL, staticKey("k")),
	)

	// Both search and model are down; the caller still gets text.
	result := gw.ProcessUserPrompt(context.Background(), PromptRequest{UserPrompt: "hello", SearchOnline: true})

	if !strings.HasPrefix(result.Text, "I'm sorry, an error occurred while processing your request: ") {
		t.Errorf("Expected apologetic degraded text, got %q", result.Text)
	}
	if result.APICalls != 1 {
		t.Errorf("Failed call still counts as an attempt, got %d", result.APICalls)
	}
}
