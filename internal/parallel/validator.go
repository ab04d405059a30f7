// Package parallel fans a fixed set of independent checks out against the
// same input concurrently, then joins all branches into a single outcome.
package parallel

import (
	"context"
	"fmt"
	"sync"
)

// Verdict is one check's judgement of the input. Valid must already fold in
// any check-specific numeric threshold; Details carries diagnostic output
// (for example flagged risk categories) verbatim.
type Verdict struct {
	Valid   bool     `json:"valid"`
	Score   float64  `json:"score,omitempty"`
	Details []string `json:"details,omitempty"`
}

// Check is a named, self-contained validation branch.
type Check[In any] struct {
	Name string
	Run  func(ctx context.Context, in In) (Verdict, error)
}

// CheckResult pairs a check's name with its verdict, in registration order.
type CheckResult struct {
	Name    string  `json:"name"`
	Verdict Verdict `json:"verdict"`
}

// Outcome is the combined result of all checks. Valid is the AND of every
// branch verdict and does not depend on completion order.
type Outcome struct {
	Valid  bool          `json:"valid"`
	Checks []CheckResult `json:"checks"`
}

// Validate runs every check concurrently against the same input and waits
// for all branches to finish before combining. Branches are not cancelled
// when a sibling fails; each runs to completion, and if any branch errored
// the aggregate fails with the first error in registration order. Each
// branch owns its own result slot, so no state is shared between branches.
func Validate[In any](ctx context.Context, in In, checks []Check[In]) (Outcome, error) {
	if len(checks) == 0 {
		return Outcome{}, fmt.Errorf("no checks registered")
	}

	results := make([]Verdict, len(checks))
	errs := make([]error, len(checks))

	var wg sync.WaitGroup
	for i, check := range checks {
		wg.Add(1)
		go func(i int, check Check[In]) {
			defer wg.Done()
			v, err := check.Run(ctx, in)
			if err != nil {
				errs[i] = err
				return
			}
			results[i] = v
		}(i, check)
	}
	wg.Wait()

	for i, err := range errs {
		if err != nil {
			return Outcome{}, fmt.Errorf("check %s: %w", checks[i].Name, err)
		}
	}

	outcome := Outcome{Valid: true, Checks: make([]CheckResult, len(checks))}
	for i, v := range results {
		outcome.Checks[i] = CheckResult{Name: checks[i].Name, Verdict: v}
		outcome.Valid = outcome.Valid && v.Valid
	}
	return outcome, nil
}
