package domain

import "context"

// SystemProbe reports host hardware and OS facts.
type SystemProbe interface {
	System(ctx context.Context) SystemFacts
}

// DevEnvProbe reports shell, terminal and developer tool versions.
type DevEnvProbe interface {
	DevEnv(ctx context.Context) DevEnvFacts
}

// UserSettingsProbe reports git identity and local auth settings.
type UserSettingsProbe interface {
	UserSettings(ctx context.Context) UserSettingsFacts
}

// StatusChecker is the capability interface of one integrated service.
// Implementations must honour ctx cancellation; a missing CLI yields
// AuthUnavailable and a failed or timed-out check AuthNotAuthenticated.
type StatusChecker interface {
	Service() string
	Status(ctx context.Context) AuthState
}

// AuthProbe reports authentication state for the integrated services.
type AuthProbe interface {
	Auth(ctx context.Context, projectPath string, identity UserSettingsFacts) AuthFacts
}

// MCPProbe inventories tool servers across host configuration files.
type MCPProbe interface {
	MCP(ctx context.Context) MCPFacts
}

// SecurityProbe inspects the secrets file and ignore rules of a project.
type SecurityProbe interface {
	Security(ctx context.Context, projectPath string) SecurityFacts
}

// StructureProbe reports project layout facts.
type StructureProbe interface {
	Structure(ctx context.Context, projectPath string) StructureFacts
}

// FreshnessProbe reports recency signals of a project.
type FreshnessProbe interface {
	Freshness(ctx context.Context, projectPath string) FreshnessFacts
}

// ConfigLoader loads project-level configuration.
type ConfigLoader interface {
	Load(projectPath string) (HealthConfig, error)
}
