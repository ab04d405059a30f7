package llm

import (
	"fmt"
	"strings"
)

// ServiceUnavailableError indicates a transient provider-side or network
// failure. Providers return it for rate limiting, overload, and 5xx
// responses. No retry happens at this layer; retry policy belongs to the
// caller.
type ServiceUnavailableError struct {
	Provider string
	Err      error
}

func (e *ServiceUnavailableError) Error() string {
	return fmt.Sprintf("%s: service unavailable: %v", e.Provider, e.Err)
}

func (e *ServiceUnavailableError) Unwrap() error { return e.Err }

// ContentPolicyError indicates the provider refused to produce output for
// policy reasons. It is terminal: never retried, never swallowed.
type ContentPolicyError struct {
	Provider          string
	FlaggedCategories []string
}

func (e *ContentPolicyError) Error() string {
	if len(e.FlaggedCategories) == 0 {
		return fmt.Sprintf("%s: request refused by content policy", e.Provider)
	}
	return fmt.Sprintf("%s: request refused by content policy (flagged: %s)",
		e.Provider, strings.Join(e.FlaggedCategories, ", "))
}
