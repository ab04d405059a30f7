package mcp

import "github.com/mark3labs/mcp-go/mcp"

// scheduleEventTool defines the schedule_event MCP tool.
var scheduleEventTool = mcp.NewTool("schedule_event",
	mcp.WithDescription("Turn a free-text request into a confirmed calendar event. Non-calendar requests are rejected with a reason."),
	mcp.WithString("input",
		mcp.Required(),
		mcp.Description("The user's request in natural language"),
	),
)

// validateRequestTool defines the validate_request MCP tool.
var validateRequestTool = mcp.NewTool("validate_request",
	mcp.WithDescription("Screen a request with concurrent relevance and safety checks and report each check's verdict."),
	mcp.WithString("input",
		mcp.Required(),
		mcp.Description("The user's request in natural language"),
	),
)

// routeRequestTool defines the route_request MCP tool.
var routeRequestTool = mcp.NewTool("route_request",
	mcp.WithDescription("Classify a calendar request as new_event or modify_event and dispatch it to the matching handler."),
	mcp.WithString("input",
		mcp.Required(),
		mcp.Description("The user's request in natural language"),
	),
)
