// Package router classifies input into a closed category set with one
// structured call, then dispatches to the handler registered for that
// category. Low confidence and unsupported categories are rejected before
// any handler runs.
package router

import (
	"context"
	"fmt"

	"github.com/zapulam/ScratchAgentic/internal/chain"
)

// Category is the closed enumeration of request kinds. Adding a category
// means adding a constant here, listing it in Supported, and registering a
// handler for it; New refuses routers with incomplete coverage.
type Category string

const (
	CategoryNewEvent    Category = "new_event"
	CategoryModifyEvent Category = "modify_event"
	CategoryOther       Category = "other"
)

// Supported lists the categories that have handlers. CategoryOther is the
// catch-all and is never dispatched.
func Supported() []Category {
	return []Category{CategoryNewEvent, CategoryModifyEvent}
}

// IsSupported reports whether the category is dispatchable.
func (c Category) IsSupported() bool {
	for _, s := range Supported() {
		if c == s {
			return true
		}
	}
	return false
}

// Decision is the result of the classification call: the chosen category,
// the classifier's confidence, and a cleaned-up restatement of the request
// that handlers work from instead of the raw input.
type Decision struct {
	Category    Category
	Confidence  float64
	Description string
}

// Handler processes one supported category. Handlers never re-enter the
// router and never call each other.
type Handler[T any] func(ctx context.Context, d Decision) (T, error)

// Router dispatches classified input to category handlers.
type Router[T any] struct {
	classify func(ctx context.Context, input string) (Decision, error)
	handlers map[Category]Handler[T]
	policy   chain.Policy
}

// New builds a Router. The handler map must cover every supported category
// exactly, with no handler for the catch-all; anything else is a
// construction error so that missing coverage cannot surface at dispatch
// time.
func New[T any](
	classify func(ctx context.Context, input string) (Decision, error),
	handlers map[Category]Handler[T],
	policy chain.Policy,
) (*Router[T], error) {
	if classify == nil {
		return nil, fmt.Errorf("router needs a classify function")
	}
	for _, c := range Supported() {
		if handlers[c] == nil {
			return nil, fmt.Errorf("no handler registered for category %q", c)
		}
	}
	for c := range handlers {
		if !c.IsSupported() {
			return nil, fmt.Errorf("handler registered for unsupported category %q", c)
		}
	}
	return &Router[T]{classify: classify, handlers: handlers, policy: policy}, nil
}

// Route issues exactly one classification call and, when confidence clears
// the threshold and the category is supported, exactly one handler. In
// every other case it returns a rejected outcome without invoking any
// handler.
func (r *Router[T]) Route(ctx context.Context, input string) (chain.Outcome[T], error) {
	d, err := r.classify(ctx, input)
	if err != nil {
		return chain.Outcome[T]{}, err
	}

	if !r.policy.Admit(chain.Gate{Flag: true, Confidence: d.Confidence}) {
		return chain.Rejected[T](fmt.Sprintf("confidence %.2f below threshold", d.Confidence)), nil
	}

	handler, ok := r.handlers[d.Category]
	if !ok {
		return chain.Rejected[T](fmt.Sprintf("unsupported category %q", d.Category)), nil
	}

	result, err := handler(ctx, d)
	if err != nil {
		return chain.Outcome[T]{}, err
	}
	return chain.Done(result), nil
}
