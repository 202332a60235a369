package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
)

// NewSeatbeltMCPServer creates an MCP server exposing the health check of
// projectPath as tools and resources.
func NewSeatbeltMCPServer(svc *application.HealthService, loader domain.ConfigLoader, projectPath, version string) *server.MCPServer {
	s := server.NewMCPServer(
		"seatbelt",
		version,
		server.WithToolCapabilities(true),
		server.WithResourceCapabilities(true, false),
	)

	registerTools(s, svc, projectPath)
	registerResources(s, svc, loader, projectPath)

	return s
}
