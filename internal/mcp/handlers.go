package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	"github.com/zapulam/ScratchAgentic/internal/chain"
)

// handleScheduleEvent runs the gate-checked scheduling chain.
func (s *Server) handleScheduleEvent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: input"), nil
	}

	outcome, err := s.scheduler.Schedule(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("schedule failed: %v", err)), nil
	}

	return outcomeResult(outcome)
}

// handleValidateRequest fans the relevance and safety checks out and
// reports every branch verdict.
func (s *Server) handleValidateRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: input"), nil
	}

	outcome, err := s.validator.Validate(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("validate failed: %v", err)), nil
	}

	body, err := json.MarshalIndent(outcome, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}

// handleRouteRequest classifies the request and dispatches the matching
// handler.
func (s *Server) handleRouteRequest(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	input, err := request.RequireString("input")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: input"), nil
	}

	outcome, err := s.requests.Route(ctx, input)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("route failed: %v", err)), nil
	}

	return outcomeResult(outcome)
}

// outcomeResult renders a chain outcome: rejections are ordinary text
// results explaining why, not tool errors.
func outcomeResult(outcome chain.Outcome[calendar.Response]) (*mcp.CallToolResult, error) {
	if outcome.Rejected() {
		return mcp.NewToolResultText("Request rejected: " + outcome.Reason()), nil
	}

	body, err := json.MarshalIndent(outcome.Value(), "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("encode result: %v", err)), nil
	}
	return mcp.NewToolResultText(string(body)), nil
}
