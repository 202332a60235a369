// Package applicationtest provides canned probes for exercising the
// health pipeline without touching the host.
package applicationtest

import (
	"context"

	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
)

// static answers every probe port from one fixed Facts value.
type static struct{ f domain.Facts }

func (s static) System(context.Context) domain.SystemFacts { return s.f.System }
func (s static) DevEnv(context.Context) domain.DevEnvFacts { return s.f.DevEnv }
func (s static) UserSettings(context.Context) domain.UserSettingsFacts { return s.f.UserSettings }
func (s static) MCP(context.Context) domain.MCPFacts { return s.f.MCP }

func (s static) Auth(context.Context, string, domain.UserSettingsFacts) domain.AuthFacts {
	return s.f.Auth
}

func (s static) Security(context.Context, string) domain.SecurityFacts { return s.f.Security }
func (s static) Structure(context.Context, string) domain.StructureFacts { return s.f.Structure }
func (s static) Freshness(context.Context, string) domain.FreshnessFacts { return s.f.Freshness }

// Probes returns probes that report f.
func Probes(f domain.Facts) application.Probes {
	s := static{f: f}
	return application.Probes{
		System: s, DevEnv: s, UserSettings: s, Auth: s,
		MCP: s, Security: s, Structure: s, Freshness: s,
	}
}

// Factory returns a ProbeFactory that ignores the config and reports f.
func Factory(f domain.Facts) application.ProbeFactory {
	return func(domain.HealthConfig) (application.Probes, error) { return Probes(f), nil }
}

// HealthyFacts describes a fully configured machine and a fresh project.
func HealthyFacts() domain.Facts {
	return domain.Facts{
		System: domain.SystemFacts{OSName: "Ubuntu", OSVersion: "24.04", OSCodename: "noble", Arch: "amd64", Chip: "AMD Ryzen 9", Cores: 16, MemoryGB: 32, DiskFreeGB: 200},
		DevEnv: domain.DevEnvFacts{Shell: "zsh", ShellVersion: "5.9", Terminal: "ghostty", TerminalVersion: "1.1.3", Node: "22.1.0", NPM: "10.7.0", PNPM: "9.1.0", Git: "2.45.0", Docker: "27.0.1", DockerRunning: true},
		UserSettings: domain.UserSettingsFacts{
			GitName: true, GitEmail: true, DefaultBranch: "main", SSHKeys: 1,
			CommitSigning: true, Editor: "nvim", ShellConfigFile: ".zshrc",
		},
		Auth: domain.AuthFacts{
			Services: map[string]domain.AuthState{
				domain.ServiceGitHub:   domain.AuthAuthenticated,
				domain.ServiceSupabase: domain.AuthAuthenticated,
				domain.ServiceGit:      domain.AuthAuthenticated,
				domain.ServiceVercel:   domain.AuthAuthenticated,
				domain.ServiceAWS:      domain.AuthAuthenticated,
			},
			BackendLinked:    true,
			DeploymentLinked: true,
		},
		MCP: domain.MCPFacts{Parity: 100},
		Security: domain.SecurityFacts{
			SecretsFile: ".env.local", SecretsFileExists: true, SecretsFileIgnored: true, DeclaredSecrets: 3,
		},
		Structure: domain.StructureFacts{TrackedMigrations: 2, MigrationsOnDisk: 2, HasAssistantSettings: true, HasClaudeMD: true},
		Freshness: domain.FreshnessFacts{LastCommitDays: 1, ClaudeMDDays: 3, LockfileDays: 5},
	}
}

// BlockedFacts is HealthyFacts with a committed, unignored secrets file.
func BlockedFacts() domain.Facts {
	f := HealthyFacts()
	f.Security.SecretsFileIgnored = false
	f.Security.SecretsFileTracked = true
	return f
}
