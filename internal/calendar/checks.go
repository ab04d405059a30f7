package calendar

import (
	"context"

	"github.com/zapulam/ScratchAgentic/internal/parallel"
	"github.com/zapulam/ScratchAgentic/internal/structured"
)

// Check names, in registration order.
const (
	CheckCalendar = "calendar"
	CheckSecurity = "security"
)

// Validator screens input with independent concurrent checks: relevance
// (is this a calendar request at all) and safety.
type Validator struct {
	caller    *structured.Caller
	threshold float64
}

// NewValidator creates a Validator. The threshold is the inclusive lower
// confidence bound of the calendar relevance check.
func NewValidator(caller *structured.Caller, threshold float64) *Validator {
	return &Validator{caller: caller, threshold: threshold}
}

// Validate fans both checks out against the input and joins their verdicts.
func (v *Validator) Validate(ctx context.Context, input string) (parallel.Outcome, error) {
	checks := []parallel.Check[string]{
		{
			Name: CheckCalendar,
			Run: func(ctx context.Context, in string) (parallel.Verdict, error) {
				c, err := structured.Call[CalendarCheck](ctx, v.caller, structured.Request{
					System:   calendarCheckSystem,
					User:     in,
					Contract: calendarCheckContract,
				})
				if err != nil {
					return parallel.Verdict{}, err
				}
				return parallel.Verdict{
					Valid: c.IsCalendarRequest && c.Confidence >= v.threshold,
					Score: c.Confidence,
				}, nil
			},
		},
		{
			Name: CheckSecurity,
			Run: func(ctx context.Context, in string) (parallel.Verdict, error) {
				c, err := structured.Call[SecurityCheck](ctx, v.caller, structured.Request{
					System:   securityCheckSystem,
					User:     in,
					Contract: securityCheckContract,
				})
				if err != nil {
					return parallel.Verdict{}, err
				}
				return parallel.Verdict{
					Valid:   c.IsSafe,
					Details: c.RiskFlags,
				}, nil
			},
		},
	}

	return parallel.Validate(ctx, input, checks)
}
