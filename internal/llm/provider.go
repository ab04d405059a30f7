// Package llm abstracts the structured-text-generation providers behind a
// single Provider interface. Providers translate their SDK or HTTP errors
// into the shared taxonomy in errors.go; callers never see provider-specific
// error types.
package llm

import "context"

// Provider is the single shared handle to a generation service. It must be
// safe for concurrent use by multiple in-flight requests.
type Provider interface {
	// Complete sends a completion request and returns the response.
	Complete(ctx context.Context, req CompletionRequest) (*CompletionResponse, error)
	// Name returns the name of this provider.
	Name() string
}

var (
	_ Provider = (*OpenAIProvider)(nil)
	_ Provider = (*AnthropicProvider)(nil)
	_ Provider = (*OllamaProvider)(nil)
)
