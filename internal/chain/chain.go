// Package chain runs a fixed ordered sequence of structured calls behind a
// gate: the first call classifies the input, and no further call is issued
// unless the classification clears the admission policy.
package chain

import "context"

// DefaultThreshold is the inclusive lower confidence bound used when no
// explicit threshold is configured.
const DefaultThreshold = 0.7

// Gate is the pass/fail evidence produced by a chain's first stage: a
// boolean flag plus the classifier's confidence in it.
type Gate struct {
	Flag       bool
	Confidence float64
}

// Gated is implemented by first-stage results that embed a gate decision.
type Gated interface {
	Gate() Gate
}

// Policy decides whether a gate admits the rest of the chain.
// Threshold is an inclusive lower bound on confidence.
type Policy struct {
	Threshold float64
}

// DefaultPolicy returns a Policy with the default threshold.
func DefaultPolicy() Policy {
	return Policy{Threshold: DefaultThreshold}
}

// Admit reports whether the gate passes: the flag must be set and the
// confidence must reach the threshold.
func (p Policy) Admit(g Gate) bool {
	return g.Flag && g.Confidence >= p.Threshold
}

// Outcome is the terminal state of a gated flow: either Done with a value,
// or Rejected with a reason. Rejection is explicit control flow, distinct
// from both success and error.
type Outcome[T any] struct {
	value    T
	rejected bool
	reason   string
}

// Done wraps a completed flow's final value.
func Done[T any](v T) Outcome[T] {
	return Outcome[T]{value: v}
}

// Rejected marks a flow that stopped at its gate. No value is carried.
func Rejected[T any](reason string) Outcome[T] {
	return Outcome[T]{rejected: true, reason: reason}
}

// Rejected reports whether the flow stopped without running downstream stages.
func (o Outcome[T]) Rejected() bool { return o.rejected }

// Reason returns the rejection reason, empty for completed flows.
func (o Outcome[T]) Reason() string { return o.reason }

// Value returns the final result of a completed flow. For rejected flows it
// returns the zero value.
func (o Outcome[T]) Value() T { return o.value }

// Run executes a gate-checked chain. The classify stage is always issued;
// its gate is then checked against the policy, and only on admission does
// the rest of the chain run. On gate failure the remaining stages are never
// invoked, so no downstream structured calls are issued. Stages run
// strictly in order on the calling goroutine; each one blocks until its
// call resolves.
func Run[C Gated, T any](
	ctx context.Context,
	policy Policy,
	classify func(context.Context) (C, error),
	rest func(context.Context, C) (T, error),
) (Outcome[T], error) {
	first, err := classify(ctx)
	if err != nil {
		return Outcome[T]{}, err
	}

	if !policy.Admit(first.Gate()) {
		return Rejected[T]("gate check failed"), nil
	}

	final, err := rest(ctx, first)
	if err != nil {
		return Outcome[T]{}, err
	}
	return Done(final), nil
}
