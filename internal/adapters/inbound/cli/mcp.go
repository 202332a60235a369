package cli

import (
	"fmt"
	"path/filepath"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"

	mcpadapter "github.com/seatbelt/seatbelt/internal/adapters/inbound/mcp"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/config"
	"github.com/seatbelt/seatbelt/internal/application"
)

func newMCPCmd(opts *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the seatbelt MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd(opts))
	return cmd
}

func newMCPServeCmd(opts *rootOptions) *cobra.Command {
	var projectPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start seatbelt MCP server (stdio)",
		Long:  "Start the seatbelt MCP server using stdio transport. This lets AI coding assistants run the health check and fetch recommendations.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			absPath, err := filepath.Abs(projectPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			loader := config.New()
			svc := application.NewHealthService(loader, opts.probes(), opts.logger)
			s := mcpadapter.NewSeatbeltMCPServer(svc, loader, absPath, version)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")

	return cmd
}
