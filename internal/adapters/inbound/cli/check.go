package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/config"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/tui"
	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
)

func newCheckCmd(opts *rootOptions) *cobra.Command {
	var (
		quick      bool
		jsonOutput bool
	)

	cmd := &cobra.Command{
		Use:   "check [path]",
		Short: "Check environment health for a project",
		Long:  "Probe the machine and the project directory, score auth, security, MCP health, structure and freshness, and print a ready/warning/blocked verdict. Exits 1 when blocked.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			svc := application.NewHealthService(config.New(), opts.probes(), opts.logger)

			report, err := svc.Check(cmd.Context(), absPath)
			if err != nil {
				return fmt.Errorf("check failed: %w", err)
			}

			switch {
			case jsonOutput:
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				var v any = report
				if quick {
					v = report.Result
				}
				if err := enc.Encode(v); err != nil {
					return err
				}
			case quick:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderQuick(report.Result))
			default:
				fmt.Fprint(cmd.OutOrStdout(), tui.RenderReport(report))
			}

			if report.Result.Verdict == domain.VerdictBlocked {
				return ErrBlocked
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&quick, "quick", false, "One-line score/grade/verdict summary")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output as JSON")

	return cmd
}
