package web

import (
	"strings"
	"testing"
)

func TestRenderIndex(t *testing.T) {
	var b strings.Builder
	if err := RenderIndex(&b, map[string]string{"Title": "DeNote"}); err != nil {
		t.Fatalf("RenderIndex failed: %v", err)
	}

	page := b.String()
	if !strings.Contains(page, "<title>DeNote</title>") {
		t.Error("Expected page title")
	}
	// Both partials are stitched in.
	if !strings.Contains(page, "<style>") {
		t.Error("Expected stylesheet partial")
	}
	if !strings.Contains(page, "<script>") {
		t.Error("Expected script partial")
	}
}
