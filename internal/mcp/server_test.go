package mcp

import (
	"context"
	"strings"
	"testing"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	"github.com/zapulam/ScratchAgentic/internal/llm"
	"github.com/zapulam/ScratchAgentic/internal/structured"
)

// scriptedProvider answers each request by matching a marker string against
// the system prompt, which carries the response contract's field names.
type scriptedProvider struct {
	scripts []script
}

type script struct {
	marker  string
	content string
}

func (p *scriptedProvider) Complete(_ context.Context, req llm.CompletionRequest) (*llm.CompletionResponse, error) {
	var system string
	for _, m := range req.Messages {
		if m.Role == llm.RoleSystem {
			system = m.Content
		}
	}
	for _, s := range p.scripts {
		if strings.Contains(system, s.marker) {
			return &llm.CompletionResponse{Content: s.content}, nil
		}
	}
	return &llm.CompletionResponse{Content: "{}"}, nil
}

func (p *scriptedProvider) Name() string { return "scripted" }

func newTestMCPServer(t *testing.T, provider llm.Provider) *Server {
	t.Helper()
	caller := structured.NewCaller(provider, "test-model")
	scheduler := calendar.NewScheduler(caller, 0.7)
	validator := calendar.NewValidator(caller, 0.7)
	requests, err := calendar.NewRouter(caller, nil, 0.7)
	if err != nil {
		t.Fatalf("NewRouter: %v", err)
	}
	return NewServer(scheduler, validator, requests)
}

func callTool(input string) mcp.CallToolRequest {
	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{"input": input}
	return req
}

func textContent(t *testing.T, result *mcp.CallToolResult) string {
	t.Helper()
	if len(result.Content) == 0 {
		t.Fatal("expected tool result content")
	}
	text, ok := mcp.AsTextContent(result.Content[0])
	if !ok {
		t.Fatalf("expected text content, got %T", result.Content[0])
	}
	return text.Text
}

func TestScheduleEventTool(t *testing.T) {
	srv := newTestMCPServer(t, &scriptedProvider{scripts: []script{
		{"is_calendar_event", `{"description":"Lunch with Bob Friday noon","is_calendar_event":true,"confidence":0.9}`},
		{"duration_minutes", `{"name":"Lunch with Bob","date":"2026-08-28T12:00:00","duration_minutes":60,"participants":["Bob"]}`},
		{"confirmation_message", `{"confirmation_message":"Lunch with Bob is on the calendar for Friday at noon.","calendar_link":"calendar://new/lunch-with-bob"}`},
	}})

	result, err := srv.handleScheduleEvent(context.Background(), callTool("Lunch with Bob on Friday at noon"))
	if err != nil {
		t.Fatalf("handleScheduleEvent: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Lunch with Bob") {
		t.Errorf("expected confirmation in result, got %q", text)
	}
}

func TestScheduleEventToolRejection(t *testing.T) {
	srv := newTestMCPServer(t, &scriptedProvider{scripts: []script{
		{"is_calendar_event", `{"description":"","is_calendar_event":false,"confidence":0.1}`},
	}})

	result, err := srv.handleScheduleEvent(context.Background(), callTool("What's the weather?"))
	if err != nil {
		t.Fatalf("handleScheduleEvent: %v", err)
	}
	if result.IsError {
		t.Fatal("a rejection must not be a tool error")
	}

	text := textContent(t, result)
	if !strings.Contains(text, "rejected") {
		t.Errorf("expected rejection message, got %q", text)
	}
}

func TestValidateRequestTool(t *testing.T) {
	srv := newTestMCPServer(t, &scriptedProvider{scripts: []script{
		{"is_calendar_request", `{"is_calendar_request":true,"confidence":0.85}`},
		{"risk_flags", `{"is_safe":true,"risk_flags":[]}`},
	}})

	result, err := srv.handleValidateRequest(context.Background(), callTool("Move my standup to 10am"))
	if err != nil {
		t.Fatalf("handleValidateRequest: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}

	text := textContent(t, result)
	if !strings.Contains(text, `"valid": true`) {
		t.Errorf("expected valid aggregate in result, got %q", text)
	}
	if !strings.Contains(text, "security") {
		t.Errorf("expected per-check names in result, got %q", text)
	}
}

func TestRouteRequestTool(t *testing.T) {
	srv := newTestMCPServer(t, &scriptedProvider{scripts: []script{
		{"request_type", `{"request_type":"new_event","confidence":0.9,"description":"Book a review meeting Thursday 3pm for 30 minutes"}`},
		{"duration_minutes", `{"name":"Review","date":"2026-08-27T15:00:00","duration_minutes":30,"participants":[]}`},
	}})

	result, err := srv.handleRouteRequest(context.Background(), callTool("Book a review meeting Thursday at 3pm"))
	if err != nil {
		t.Fatalf("handleRouteRequest: %v", err)
	}
	if result.IsError {
		t.Fatalf("unexpected tool error: %s", textContent(t, result))
	}

	text := textContent(t, result)
	if !strings.Contains(text, "Review") {
		t.Errorf("expected event name in result, got %q", text)
	}
}

func TestMissingInputParameter(t *testing.T) {
	srv := newTestMCPServer(t, &scriptedProvider{})

	req := mcp.CallToolRequest{}
	req.Params.Arguments = map[string]any{}

	result, err := srv.handleScheduleEvent(context.Background(), req)
	if err != nil {
		t.Fatalf("handleScheduleEvent: %v", err)
	}
	if !result.IsError {
		t.Error("expected tool error for missing input")
	}
}
