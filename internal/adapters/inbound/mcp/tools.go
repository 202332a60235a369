package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/seatbelt/seatbelt/internal/domain/advisor"
)

// registerTools registers all seatbelt MCP tools on the given server.
func registerTools(s *server.MCPServer, svc *application.HealthService, projectPath string) {
	// 1. seatbelt_check
	s.AddTool(
		mcplib.NewTool("seatbelt_check",
			mcplib.WithDescription("Runs the environment health check and returns the report as JSON"),
			mcplib.WithBoolean("quick", mcplib.Description("Return only score, grade, verdict and blockers")),
		),
		handleCheck(svc, projectPath),
	)

	// 2. seatbelt_recommendations
	s.AddTool(
		mcplib.NewTool("seatbelt_recommendations",
			mcplib.WithDescription("Returns prioritized optimizations for the development environment"),
			mcplib.WithNumber("limit", mcplib.Description("Maximum number of recommendations (default: display_limit from .seatbelt.yaml)")),
		),
		handleRecommendations(svc, projectPath),
	)
}

// quickResult is the reduced payload of seatbelt_check with quick=true.
type quickResult struct {
	Overall  int            `json:"overall"`
	Grade    string         `json:"grade"`
	Verdict  domain.Verdict `json:"verdict"`
	Message  string         `json:"message"`
	Blockers []string       `json:"blockers,omitempty"`
}

func handleCheck(svc *application.HealthService, projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := svc.Check(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}
		if request.GetBool("quick", false) {
			r := report.Result
			return jsonResult(quickResult{
				Overall:  r.Overall,
				Grade:    r.Grade,
				Verdict:  r.Verdict,
				Message:  r.Message,
				Blockers: r.Blockers,
			})
		}
		return jsonResult(report)
	}
}

func handleRecommendations(svc *application.HealthService, projectPath string) server.ToolHandlerFunc {
	return func(ctx context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		report, err := svc.Check(ctx, projectPath)
		if err != nil {
			return errorResult(fmt.Sprintf("check failed: %v", err)), nil
		}

		limit := request.GetInt("limit", report.DisplayLimit)
		if limit <= 0 {
			return errorResult(fmt.Sprintf("limit must be > 0 (got %d)", limit)), nil
		}
		opts := advisor.Top(report.Optimizations, limit)
		if opts == nil {
			opts = []domain.Optimization{}
		}
		return jsonResult(opts)
	}
}

// jsonResult marshals v as indented JSON text content.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns an error content result.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
