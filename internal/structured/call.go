package structured

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"sync"

	"github.com/zapulam/ScratchAgentic/internal/llm"
)

// SchemaViolationError indicates the provider returned output that could
// not be parsed into the declared contract. It is terminal and always
// surfaced; the raw output is kept for diagnostics.
type SchemaViolationError struct {
	Contract  string
	RawOutput string
	Err       error
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("output does not satisfy contract %s: %v", e.Contract, e.Err)
}

func (e *SchemaViolationError) Unwrap() error { return e.Err }

// Usage accumulates token counts across the calls issued through one Caller.
type Usage struct {
	Calls        int
	InputTokens  int
	OutputTokens int
}

// Caller binds a provider handle and model settings for structured calls.
// Its lifecycle is owned by the top-level caller; orchestration components
// receive it by injection and share it freely across concurrent branches.
type Caller struct {
	provider    llm.Provider
	model       string
	maxTokens   int
	temperature float64

	mu    sync.Mutex
	usage Usage
}

// Option configures a Caller.
type Option func(*Caller)

// WithMaxTokens overrides the default per-call token ceiling.
func WithMaxTokens(n int) Option {
	return func(c *Caller) { c.maxTokens = n }
}

// WithTemperature overrides the default sampling temperature.
func WithTemperature(t float64) Option {
	return func(c *Caller) { c.temperature = t }
}

// NewCaller creates a Caller for the given provider and model.
func NewCaller(provider llm.Provider, model string, opts ...Option) *Caller {
	c := &Caller{
		provider:    provider,
		model:       model,
		maxTokens:   1024,
		temperature: 0.1,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Usage returns the cumulative token usage of all calls issued so far.
func (c *Caller) Usage() Usage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.usage
}

func (c *Caller) record(resp *llm.CompletionResponse) {
	c.mu.Lock()
	c.usage.Calls++
	c.usage.InputTokens += resp.InputTokens
	c.usage.OutputTokens += resp.OutputTokens
	c.mu.Unlock()
}

// Model returns the model the caller issues requests against.
func (c *Caller) Model() string { return c.model }

// Call issues one structured call and parses the response into T. The
// contract is rendered into the system prompt; the provider's JSON mode is
// requested where supported. Provider errors propagate unchanged; a
// response that cannot be parsed into T becomes a SchemaViolationError.
// Exactly one outbound request is made per invocation, with no retry and
// no caching.
func Call[T any](ctx context.Context, c *Caller, req Request) (T, error) {
	var zero T

	if err := req.Contract.Validate(); err != nil {
		return zero, fmt.Errorf("invalid contract: %w", err)
	}

	system := req.System
	if system != "" {
		system += "\n\n"
	}
	system += req.Contract.PromptBlock()

	resp, err := c.provider.Complete(ctx, llm.CompletionRequest{
		Model: c.model,
		Messages: []llm.Message{
			{Role: llm.RoleSystem, Content: system},
			{Role: llm.RoleUser, Content: req.User},
		},
		MaxTokens:   c.maxTokens,
		Temperature: c.temperature,
		JSONMode:    true,
	})
	if err != nil {
		return zero, err
	}
	c.record(resp)

	payload := extractJSON(resp.Content)

	var out T
	dec := json.NewDecoder(strings.NewReader(payload))
	if err := dec.Decode(&out); err != nil {
		return zero, &SchemaViolationError{
			Contract:  req.Contract.Name,
			RawOutput: resp.Content,
			Err:       err,
		}
	}

	return out, nil
}

// extractJSON locates the JSON object in a model response, tolerating
// markdown code fences and prose around it.
func extractJSON(content string) string {
	s := content
	if i := strings.Index(s, "```"); i >= 0 {
		s = s[i+3:]
		s = strings.TrimPrefix(s, "json")
		if j := strings.Index(s, "```"); j >= 0 {
			s = s[:j]
		}
	}
	start := strings.Index(s, "{")
	end := strings.LastIndex(s, "}")
	if start >= 0 && end > start {
		return s[start : end+1]
	}
	return strings.TrimSpace(s)
}
