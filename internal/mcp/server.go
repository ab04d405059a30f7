package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/zapulam/ScratchAgentic/internal/calendar"
	"github.com/zapulam/ScratchAgentic/internal/router"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the calendar assistant tools.
type Server struct {
	scheduler *calendar.Scheduler
	validator *calendar.Validator
	requests  *router.Router[calendar.Response]
	mcp       *server.MCPServer
}

// NewServer creates a new MCP server with the given dependencies.
func NewServer(scheduler *calendar.Scheduler, validator *calendar.Validator, requests *router.Router[calendar.Response]) *Server {
	s := &Server{
		scheduler: scheduler,
		validator: validator,
		requests:  requests,
	}

	s.mcp = server.NewMCPServer(
		"agentic",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(scheduleEventTool, s.handleScheduleEvent)
	s.mcp.AddTool(validateRequestTool, s.handleValidateRequest)
	s.mcp.AddTool(routeRequestTool, s.handleRouteRequest)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
