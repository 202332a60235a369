package application_test

import (
	"context"
	"errors"
	"sync"

	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
)

type staticLoader struct {
	cfg domain.HealthConfig
	err error
}

func (l staticLoader) Load(string) (domain.HealthConfig, error) { return l.cfg, l.err }

type systemProbe domain.SystemFacts

func (p systemProbe) System(context.Context) domain.SystemFacts { return domain.SystemFacts(p) }

type devEnvProbe domain.DevEnvFacts

func (p devEnvProbe) DevEnv(context.Context) domain.DevEnvFacts { return domain.DevEnvFacts(p) }

type userSettingsProbe domain.UserSettingsFacts

func (p userSettingsProbe) UserSettings(context.Context) domain.UserSettingsFacts {
	return domain.UserSettingsFacts(p)
}

// authProbe records the identity it was handed.
type authProbe struct {
	services map[string]domain.AuthState

	mu   sync.Mutex
	seen []domain.UserSettingsFacts
}

func (p *authProbe) Auth(_ context.Context, _ string, identity domain.UserSettingsFacts) domain.AuthFacts {
	p.mu.Lock()
	p.seen = append(p.seen, identity)
	p.mu.Unlock()

	services := make(map[string]domain.AuthState, len(p.services)+1)
	for k, v := range p.services {
		services[k] = v
	}
	if identity.HasGitIdentity() {
		services[domain.ServiceGit] = domain.AuthAuthenticated
	} else {
		services[domain.ServiceGit] = domain.AuthNotAuthenticated
	}
	return domain.AuthFacts{Services: services, BackendLinked: true, DeploymentLinked: true}
}

type mcpProbe domain.MCPFacts

func (p mcpProbe) MCP(context.Context) domain.MCPFacts { return domain.MCPFacts(p) }

type securityProbe domain.SecurityFacts

func (p securityProbe) Security(context.Context, string) domain.SecurityFacts {
	return domain.SecurityFacts(p)
}

type structureProbe domain.StructureFacts

func (p structureProbe) Structure(context.Context, string) domain.StructureFacts {
	return domain.StructureFacts(p)
}

type freshnessProbe domain.FreshnessFacts

func (p freshnessProbe) Freshness(context.Context, string) domain.FreshnessFacts {
	return domain.FreshnessFacts(p)
}

// healthyProbes describes a fully configured machine with a fresh project.
func healthyProbes() (application.Probes, *authProbe) {
	auth := &authProbe{services: map[string]domain.AuthState{
		domain.ServiceGitHub:   domain.AuthAuthenticated,
		domain.ServiceSupabase: domain.AuthAuthenticated,
		domain.ServiceVercel:   domain.AuthAuthenticated,
		domain.ServiceAWS:      domain.AuthAuthenticated,
	}}
	return application.Probes{
		System: systemProbe{OSName: "Ubuntu", Arch: "amd64", Cores: 8},
		DevEnv: devEnvProbe{Shell: "zsh", Node: "22.1.0", Git: "2.45.0", Docker: "27.0.1", DockerRunning: true},
		UserSettings: userSettingsProbe{
			GitName: true, GitEmail: true, DefaultBranch: "main", SSHKeys: 1, CommitSigning: true,
		},
		Auth:      auth,
		MCP:       mcpProbe{},
		Security:  securityProbe{SecretsFile: ".env.local", SecretsFileExists: true, SecretsFileIgnored: true},
		Structure: structureProbe{TrackedMigrations: 3, MigrationsOnDisk: 3, HasAssistantSettings: true, HasClaudeMD: true},
		Freshness: freshnessProbe{LastCommitDays: 1, ClaudeMDDays: 2, LockfileDays: 3},
	}, auth
}

func factoryOf(p application.Probes) application.ProbeFactory {
	return func(domain.HealthConfig) (application.Probes, error) { return p, nil }
}

var errFactory = errors.New("no home directory")
