package calendar

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/zapulam/ScratchAgentic/internal/chain"
	"github.com/zapulam/ScratchAgentic/internal/knowledge"
	"github.com/zapulam/ScratchAgentic/internal/router"
	"github.com/zapulam/ScratchAgentic/internal/structured"
)

// NewRouter builds the calendar request router: one classification call,
// then dispatch to the new-event or modify-event handler. The knowledge
// store is optional; when present, the modify handler folds its corpus
// into the extraction prompt as policy notes.
func NewRouter(caller *structured.Caller, kb *knowledge.Store, threshold float64) (*router.Router[Response], error) {
	classify := func(ctx context.Context, input string) (router.Decision, error) {
		c, err := structured.Call[RequestClassification](ctx, caller, structured.Request{
			System:   classificationSystem,
			User:     input,
			Contract: classificationContract,
		})
		if err != nil {
			return router.Decision{}, err
		}
		return router.Decision{
			Category:    router.Category(c.RequestType),
			Confidence:  c.Confidence,
			Description: c.Description,
		}, nil
	}

	handlers := map[router.Category]router.Handler[Response]{
		router.CategoryNewEvent:    newEventHandler(caller),
		router.CategoryModifyEvent: modifyEventHandler(caller, kb),
	}

	return router.New(classify, handlers, chain.Policy{Threshold: threshold})
}

// newEventHandler extracts new-event details and assembles the response
// deterministically.
func newEventHandler(caller *structured.Caller) router.Handler[Response] {
	return func(ctx context.Context, d router.Decision) (Response, error) {
		details, err := structured.Call[EventDetails](ctx, caller, structured.Request{
			System:   "Extract the details of the new calendar event from the request description.",
			User:     d.Description,
			Contract: detailsContract,
		})
		if err != nil {
			return Response{}, err
		}

		message := fmt.Sprintf("Created event %q on %s for %d minutes", details.Name, details.Date, details.DurationMinutes)
		if len(details.Participants) > 0 {
			message += " with " + strings.Join(details.Participants, ", ")
		}
		message += "."

		return Response{
			Success:      true,
			Message:      message,
			CalendarLink: eventLink("new", details.Name),
		}, nil
	}
}

// modifyEventHandler extracts the requested modification and assembles the
// response deterministically.
func modifyEventHandler(caller *structured.Caller, kb *knowledge.Store) router.Handler[Response] {
	return func(ctx context.Context, d router.Decision) (Response, error) {
		var policyNotes string
		if kb != nil {
			entries, err := kb.Lookup(ctx, d.Description)
			if err != nil {
				return Response{}, fmt.Errorf("knowledge lookup: %w", err)
			}
			var lines []string
			for _, e := range entries {
				lines = append(lines, "- "+e.Content)
			}
			policyNotes = strings.Join(lines, "\n")
		}

		mod, err := structured.Call[EventModification](ctx, caller, structured.Request{
			System:   modificationSystem(policyNotes),
			User:     d.Description,
			Contract: modificationContract,
		})
		if err != nil {
			return Response{}, err
		}

		var parts []string
		for _, c := range mod.Changes {
			parts = append(parts, fmt.Sprintf("%s -> %s", c.Field, c.NewValue))
		}
		if len(mod.ParticipantsToAdd) > 0 {
			parts = append(parts, "adding "+strings.Join(mod.ParticipantsToAdd, ", "))
		}
		if len(mod.ParticipantsToRemove) > 0 {
			parts = append(parts, "removing "+strings.Join(mod.ParticipantsToRemove, ", "))
		}

		message := fmt.Sprintf("Updated event %q", mod.EventIdentifier)
		if len(parts) > 0 {
			message += ": " + strings.Join(parts, "; ")
		}
		message += "."

		return Response{
			Success:      true,
			Message:      message,
			CalendarLink: eventLink("modify", mod.EventIdentifier),
		}, nil
	}
}

func eventLink(action, name string) string {
	slug := url.PathEscape(strings.ToLower(strings.ReplaceAll(strings.TrimSpace(name), " ", "-")))
	if slug == "" {
		return ""
	}
	return fmt.Sprintf("calendar://%s/%s", action, slug)
}
