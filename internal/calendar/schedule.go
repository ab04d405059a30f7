package calendar

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/zapulam/ScratchAgentic/internal/chain"
	"github.com/zapulam/ScratchAgentic/internal/structured"
)

// Scheduler turns free-text input into a confirmed calendar event through
// a gate-checked chain: extraction, then details, then confirmation. If
// the extraction gate fails, the later calls are never issued.
type Scheduler struct {
	caller *structured.Caller
	policy chain.Policy
	now    func() time.Time
}

// NewScheduler creates a Scheduler. The threshold is the inclusive lower
// confidence bound of the extraction gate.
func NewScheduler(caller *structured.Caller, threshold float64) *Scheduler {
	return &Scheduler{
		caller: caller,
		policy: chain.Policy{Threshold: threshold},
		now:    time.Now,
	}
}

// Schedule runs the scheduling chain on the input.
func (s *Scheduler) Schedule(ctx context.Context, input string) (chain.Outcome[Response], error) {
	return chain.Run(ctx, s.policy,
		func(ctx context.Context) (EventExtraction, error) {
			return structured.Call[EventExtraction](ctx, s.caller, structured.Request{
				System:   extractionSystem(s.now()),
				User:     input,
				Contract: extractionContract,
			})
		},
		func(ctx context.Context, extraction EventExtraction) (Response, error) {
			// Later stages work from the cleaned description, never from
			// the raw input.
			details, err := structured.Call[EventDetails](ctx, s.caller, structured.Request{
				System:   detailsSystem(s.now()),
				User:     extraction.Description,
				Contract: detailsContract,
			})
			if err != nil {
				return Response{}, err
			}

			confirmation, err := structured.Call[EventConfirmation](ctx, s.caller, structured.Request{
				System:   confirmationSystem,
				User:     describeDetails(details),
				Contract: confirmationContract,
			})
			if err != nil {
				return Response{}, err
			}

			return Response{
				Success:      true,
				Message:      confirmation.ConfirmationMessage,
				CalendarLink: confirmation.CalendarLink,
			}, nil
		},
	)
}

func describeDetails(d EventDetails) string {
	return fmt.Sprintf("Event: %s\nDate: %s\nDuration: %d minutes\nParticipants: %s",
		d.Name, d.Date, d.DurationMinutes, strings.Join(d.Participants, ", "))
}
