// Package llm talks to the hosted text-generation endpoint and decodes its
// responses into an Envelope at the boundary.
package llm

import "context"

// Request is a single generation call.
type Request struct {
	Model       string
	System      string
	Prompt      string
	MaxTokens   int
	Temperature float32
}

// Model is the remote text-generation endpoint. Implementations return a
// *TransportError for every network, auth or quota failure.
type Model interface {
	Generate(ctx context.Context, req Request) (Envelope, error)
}
