package cli

import (
	"go.uber.org/zap"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/gitinfo"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/mcphosts"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/scanner"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/secrets"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/services"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/sysinfo"
	"github.com/seatbelt/seatbelt/internal/adapters/outbound/toolchain"
	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
)

// DefaultProbes wires the host-backed probe adapters.
func DefaultProbes(logger *zap.Logger) application.ProbeFactory {
	return func(cfg domain.HealthConfig) (application.Probes, error) {
		runner := shell.New(cfg.CommandTimeout)
		repo := gitinfo.New()

		mcp, err := mcphosts.New(cfg.MCP, logger)
		if err != nil {
			return application.Probes{}, err
		}
		files := scanner.New(repo, logger)

		return application.Probes{
			System:       sysinfo.New(runner, logger),
			DevEnv:       toolchain.New(runner),
			UserSettings: gitinfo.NewSettingsProber(logger),
			Auth:         services.New(logger, services.DefaultCheckers(runner)...),
			MCP:          mcp,
			Security:     secrets.New(cfg.Security, repo, logger),
			Structure:    files,
			Freshness:    files,
		}, nil
	}
}
