package server

import (
	"encoding/json"
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/zapulam/ScratchAgentic/internal/llm"
	"github.com/zapulam/ScratchAgentic/internal/structured"
)

type inputRequest struct {
	Input string `json:"input"`
}

// outcomeEnvelope is the shape shared by the schedule and route endpoints:
// a request either completed or was rejected with a reason. Rejection is a
// 200, not an error.
type outcomeEnvelope struct {
	Status string `json:"status"` // "done" or "rejected"
	Reason string `json:"reason,omitempty"`
	Result any    `json:"result,omitempty"`
}

func (s *Server) handleSchedule(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readInput(w, r)
	if !ok {
		return
	}

	outcome, err := s.scheduler.Schedule(r.Context(), input)
	if err != nil {
		s.writeError(w, "schedule", err)
		return
	}

	env := outcomeEnvelope{Status: "done", Result: outcome.Value()}
	if outcome.Rejected() {
		env = outcomeEnvelope{Status: "rejected", Reason: outcome.Reason()}
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readInput(w, r)
	if !ok {
		return
	}

	outcome, err := s.validator.Validate(r.Context(), input)
	if err != nil {
		s.writeError(w, "validate", err)
		return
	}

	writeJSON(w, http.StatusOK, outcome)
}

func (s *Server) handleRoute(w http.ResponseWriter, r *http.Request) {
	input, ok := s.readInput(w, r)
	if !ok {
		return
	}

	outcome, err := s.requests.Route(r.Context(), input)
	if err != nil {
		s.writeError(w, "route", err)
		return
	}

	env := outcomeEnvelope{Status: "done", Result: outcome.Value()}
	if outcome.Rejected() {
		env = outcomeEnvelope{Status: "rejected", Reason: outcome.Reason()}
	}
	writeJSON(w, http.StatusOK, env)
}

func (s *Server) readInput(w http.ResponseWriter, r *http.Request) (string, bool) {
	var req inputRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "invalid JSON body", http.StatusBadRequest)
		return "", false
	}
	if req.Input == "" {
		http.Error(w, "input is required", http.StatusBadRequest)
		return "", false
	}
	return req.Input, true
}

// writeError maps provider and parsing failures to HTTP statuses: policy
// refusals are the client's fault, everything upstream is a bad gateway.
func (s *Server) writeError(w http.ResponseWriter, op string, err error) {
	s.log.Warn("request failed", zap.String("op", op), zap.Error(err))

	var policyErr *llm.ContentPolicyError
	var unavailErr *llm.ServiceUnavailableError
	var schemaErr *structured.SchemaViolationError

	status := http.StatusInternalServerError
	switch {
	case errors.As(err, &policyErr):
		status = http.StatusUnprocessableEntity
	case errors.As(err, &unavailErr):
		status = http.StatusServiceUnavailable
	case errors.As(err, &schemaErr):
		status = http.StatusBadGateway
	}

	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}
