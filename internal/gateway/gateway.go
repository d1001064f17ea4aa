// Package gateway wraps the external web-search and generative-model
// endpoints and composes chat prompts from optional search context plus the
// user's literal request.
package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/denotehq/denote/internal/types"
	"go.uber.org/zap"
)

// PromptRequest is the payload of one chat invocation.
type PromptRequest struct {
	UserPrompt   string
	SearchOnline bool
}

// PromptResult is the outcome of one chat invocation. Failures are carried
// as degraded Text, never as an error.
type PromptResult struct {
	Text       string
	APICalls   int
	TokenCount int
}

// Gateway is the single entry point the chat handler talks to.
type Gateway struct {
	Search   *SearchClient
	Generate *GenerateClient
}

// New returns a Gateway over the two clients.
func New(search *SearchClient, generate *GenerateClient) *Gateway {
	return &Gateway{Search: search, Generate: generate}
}

// ProcessUserPrompt optionally searches online, composes the final prompt,
// and calls the generative model exactly once. Any failure from either
// external call is converted into an apologetic text response here; this
// top level never returns an error to its caller.
func (g *Gateway) ProcessUserPrompt(ctx context.Context, req PromptRequest) PromptResult {
	searchContext := ""

	if req.SearchOnline {
		zap.L().Info("performing online search", zap.String("query", req.UserPrompt))
		results := g.Search.Search(ctx, req.UserPrompt)
		searchContext = "--- START OF ONLINE SEARCH RESULTS ---\n" + results + "\n--- END OF ONLINE SEARCH RESULTS ---\n\n"
	}

	finalPrompt := fmt.Sprintf(
		"Based on the following context, please answer the user's request.\n\nContext:\n%s\nUser Request: %s",
		searchContext, req.UserPrompt)

	text, tokens, err := g.Generate.Generate(ctx, finalPrompt, nil)
	if err != nil {
		zap.L().Error("failed to process user prompt", zap.Error(err))
		return PromptResult{
			Text:     fmt.Sprintf("I'm sorry, an error occurred while processing your request: %s", upstreamMessage(err)),
			APICalls: 1,
		}
	}

	return PromptResult{Text: text, APICalls: 1, TokenCount: tokens}
}

// upstreamMessage strips the CustomError envelope down to the message for
// user-facing degraded text.
func upstreamMessage(err error) string {
	var ce *types.CustomError
	if errors.As(err, &ce) {
		return ce.Message
	}
	return err.Error()
}
