package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
)

const (
	reportURI = "seatbelt://report"
	configURI = "seatbelt://config"
)

// registerResources registers all seatbelt MCP resources on the given server.
func registerResources(s *server.MCPServer, svc *application.HealthService, loader domain.ConfigLoader, projectPath string) {
	// 1. seatbelt://report - current health report
	s.AddResource(
		mcplib.NewResource(
			reportURI,
			"Health Report",
			mcplib.WithResourceDescription("Current environment health report for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleReportResource(svc, projectPath),
	)

	// 2. seatbelt://config - effective configuration
	s.AddResource(
		mcplib.NewResource(
			configURI,
			"Effective Config",
			mcplib.WithResourceDescription("Defaults merged with the project's .seatbelt.yaml"),
			mcplib.WithMIMEType("application/json"),
		),
		handleConfigResource(loader, projectPath),
	)
}

func handleReportResource(svc *application.HealthService, projectPath string) server.ResourceHandlerFunc {
	return func(ctx context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		report, err := svc.Check(ctx, projectPath)
		if err != nil {
			return nil, fmt.Errorf("check failed: %w", err)
		}
		return jsonResource(reportURI, report)
	}
}

func handleConfigResource(loader domain.ConfigLoader, projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		cfg, err := loader.Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading config: %w", err)
		}
		return jsonResource(configURI, cfg)
	}
}

func jsonResource(uri string, v interface{}) ([]mcplib.ResourceContents, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling %s: %w", uri, err)
	}
	return []mcplib.ResourceContents{
		mcplib.TextResourceContents{
			URI:      uri,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}
