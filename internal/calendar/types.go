// Package calendar is the calendar assistant built on the orchestration
// primitives: a gate-checked scheduling chain, a parallel request
// validator, and a confidence router over new/modify event requests.
package calendar

import "github.com/zapulam/ScratchAgentic/internal/chain"

// EventExtraction is the scheduling chain's first-stage result. The
// embedded flag and confidence form the chain's gate.
type EventExtraction struct {
	Description     string  `json:"description"`
	IsCalendarEvent bool    `json:"is_calendar_event"`
	Confidence      float64 `json:"confidence"`
}

// Gate exposes the extraction's gate decision to the chain executor.
func (e EventExtraction) Gate() chain.Gate {
	return chain.Gate{Flag: e.IsCalendarEvent, Confidence: e.Confidence}
}

// EventDetails holds the structured fields of a parsed calendar event.
type EventDetails struct {
	Name            string   `json:"name"`
	Date            string   `json:"date"`
	DurationMinutes int      `json:"duration_minutes"`
	Participants    []string `json:"participants"`
}

// EventConfirmation is the scheduling chain's final structured result.
type EventConfirmation struct {
	ConfirmationMessage string `json:"confirmation_message"`
	CalendarLink        string `json:"calendar_link"`
}

// Response is the terminal envelope of the scheduling and routing flows.
type Response struct {
	Success      bool   `json:"success"`
	Message      string `json:"message"`
	CalendarLink string `json:"calendar_link,omitempty"`
}

// CalendarCheck is the validator's relevance verdict.
type CalendarCheck struct {
	IsCalendarRequest bool    `json:"is_calendar_request"`
	Confidence        float64 `json:"confidence"`
}

// SecurityCheck is the validator's safety verdict. RiskFlags names the
// categories that tripped the check (for example "jailbreak").
type SecurityCheck struct {
	IsSafe    bool     `json:"is_safe"`
	RiskFlags []string `json:"risk_flags"`
}

// RequestClassification is the router's classification result.
// Description is a cleaned restatement of the request that handlers work
// from instead of the raw input.
type RequestClassification struct {
	RequestType string  `json:"request_type"`
	Confidence  float64 `json:"confidence"`
	Description string  `json:"description"`
}

// Change is a single field modification of an existing event.
type Change struct {
	Field    string `json:"field"`
	NewValue string `json:"new_value"`
}

// EventModification holds the details extracted for a modify-event request.
type EventModification struct {
	EventIdentifier      string   `json:"event_identifier"`
	Changes              []Change `json:"changes"`
	ParticipantsToAdd    []string `json:"participants_to_add"`
	ParticipantsToRemove []string `json:"participants_to_remove"`
}
