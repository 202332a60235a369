package domain

import (
	"fmt"
	"strings"

	"github.com/fatih/camelcase"
)

// Absent is the sentinel value for a string fact whose subject could not be
// found (tool not installed, file missing, setting unset).
const Absent = "not found"

// Category identifiers. They are CamelCase so the reporter can split them
// into display names.
const (
	CategoryAuthentication = "Authentication"
	CategorySecurity       = "Security"
	CategoryMCPHealth      = "MCPHealth"
	CategoryStructure      = "Structure"
	CategoryFreshness      = "Freshness"
)

// ValidCategories enumerates all scoring categories in display order.
var ValidCategories = []string{
	CategoryAuthentication,
	CategorySecurity,
	CategoryMCPHealth,
	CategoryStructure,
	CategoryFreshness,
}

// DisplayName splits a CamelCase category identifier into words,
// e.g. "MCPHealth" becomes "MCP Health".
func DisplayName(category string) string {
	return strings.Join(camelcase.Split(category), " ")
}

// Facts is everything the probes observed during one run.
type Facts struct {
	System       SystemFacts       `json:"system"`
	DevEnv       DevEnvFacts       `json:"dev_env"`
	UserSettings UserSettingsFacts `json:"user_settings"`
	Auth         AuthFacts         `json:"auth"`
	MCP          MCPFacts          `json:"mcp"`
	Security     SecurityFacts     `json:"security"`
	Structure    StructureFacts    `json:"structure"`
	Freshness    FreshnessFacts    `json:"freshness"`
}

type SystemFacts struct {
	OSName     string  `json:"os_name"`
	OSVersion  string  `json:"os_version"`
	OSCodename string  `json:"os_codename"`
	Arch       string  `json:"arch"`
	Chip       string  `json:"chip"`
	Cores      int     `json:"cores"`
	MemoryGB   float64 `json:"memory_gb"`
	DiskFreeGB float64 `json:"disk_free_gb"`
}

type DevEnvFacts struct {
	Shell           string `json:"shell"`
	ShellVersion    string `json:"shell_version"`
	Terminal        string `json:"terminal"`
	TerminalVersion string `json:"terminal_version"`
	Node            string `json:"node"`
	NPM             string `json:"npm"`
	PNPM            string `json:"pnpm"`
	Git             string `json:"git"`
	Docker          string `json:"docker"`
	DockerRunning   bool   `json:"docker_running"`
}

type UserSettingsFacts struct {
	GitName         bool   `json:"git_name"`
	GitEmail        bool   `json:"git_email"`
	DefaultBranch   string `json:"default_branch"`
	SSHKeys         int    `json:"ssh_keys"`
	CommitSigning   bool   `json:"commit_signing"`
	Editor          string `json:"editor"`
	ShellConfigFile string `json:"shell_config_file"`
}

// HasGitIdentity reports whether both user.name and user.email are set.
func (u UserSettingsFacts) HasGitIdentity() bool {
	return u.GitName && u.GitEmail
}

// AuthState is the tri-state result of a service status check.
type AuthState string

const (
	AuthAuthenticated    AuthState = "authenticated"
	AuthNotAuthenticated AuthState = "not_authenticated"
	AuthUnavailable      AuthState = "unavailable"
)

// Service identifiers used by the auth probe and the scoring points table.
const (
	ServiceGitHub   = "github"
	ServiceSupabase = "supabase"
	ServiceGit      = "git"
	ServiceVercel   = "vercel"
	ServiceAWS      = "aws"
)

type AuthFacts struct {
	Services         map[string]AuthState `json:"services"`
	BackendLinked    bool                 `json:"backend_linked"`
	DeploymentLinked bool                 `json:"deployment_linked"`
}

// State returns the recorded state for a service, or AuthUnavailable.
func (a AuthFacts) State(service string) AuthState {
	if s, ok := a.Services[service]; ok {
		return s
	}
	return AuthUnavailable
}

// MCPHost is the server inventory of one host configuration file.
type MCPHost struct {
	Name      string   `json:"name"`
	Path      string   `json:"path"`
	Found     bool     `json:"found"`
	Malformed bool     `json:"malformed,omitempty"`
	Servers   []string `json:"servers,omitempty"`
}

// Count returns the number of declared servers.
func (h MCPHost) Count() int { return len(h.Servers) }

type MCPFacts struct {
	Hosts          []MCPHost `json:"hosts"`
	Total          int       `json:"total"`
	Unique         int       `json:"unique"`
	Parity         int       `json:"parity"`
	MemoryMB       int       `json:"memory_mb"`
	StartupMs      int       `json:"startup_ms"`
	FailurePercent float64   `json:"failure_percent"`
}

// SecurityFacts describes the secrets file. UnparsableLines counts lines
// that are not NAME=value and were skipped.
type SecurityFacts struct {
	SecretsFile        string   `json:"secrets_file"`
	SecretsFileExists  bool     `json:"secrets_file_exists"`
	SecretsFileIgnored bool     `json:"secrets_file_ignored"`
	SecretsFileTracked bool     `json:"secrets_file_tracked"`
	UnparsableLines    int      `json:"unparsable_lines,omitempty"`
	DeclaredSecrets    int      `json:"declared_secrets"`
	Violations         []string `json:"violations,omitempty"`
}

// Unprotected reports whether the secrets file exists but is not ignored.
func (s SecurityFacts) Unprotected() bool {
	return s.SecretsFileExists && !s.SecretsFileIgnored
}

type StructureFacts struct {
	TrackedMigrations    int  `json:"tracked_migrations"`
	MigrationsOnDisk     int  `json:"migrations_on_disk"`
	HasAssistantSettings bool `json:"has_assistant_settings"`
	HasClaudeMD          bool `json:"has_claude_md"`
	HasAgentsDir         bool `json:"has_agents_dir"`
	HasCommandsDir       bool `json:"has_commands_dir"`
}

// FreshnessFacts carries ages in whole days; -1 means the signal is absent.
type FreshnessFacts struct {
	LastCommitDays int `json:"last_commit_days"`
	ClaudeMDDays   int `json:"claude_md_days"`
	LockfileDays   int `json:"lockfile_days"`
}

// Signals returns the present ages in a fixed order.
func (f FreshnessFacts) Signals() []int {
	var out []int
	for _, d := range []int{f.LastCommitDays, f.ClaudeMDDays, f.LockfileDays} {
		if d >= 0 {
			out = append(out, d)
		}
	}
	return out
}

// CategoryScore is the 0-100 score of one category.
type CategoryScore struct {
	Name       string      `json:"name"`
	Score      int         `json:"score"`
	Weight     float64     `json:"weight"`
	Neutral    bool        `json:"neutral,omitempty"`
	SubMetrics []SubMetric `json:"sub_metrics,omitempty"`
}

type SubMetric struct {
	Name   string `json:"name"`
	Score  int    `json:"score"`
	Points int    `json:"points"`
	Detail string `json:"detail,omitempty"`
}

// Verdict gates whether development should proceed.
type Verdict string

const (
	VerdictReady   Verdict = "ready"
	VerdictWarning Verdict = "warning"
	VerdictBlocked Verdict = "blocked"
)

// PerformanceAdvisory is attached when MCP performance falls below the
// advisory threshold.
type PerformanceAdvisory struct {
	Servers        int     `json:"servers"`
	Score          int     `json:"score"`
	MemoryMB       int     `json:"memory_mb"`
	StartupMs      int     `json:"startup_ms"`
	FailurePercent float64 `json:"failure_percent"`
}

// HealthResult is the terminal, immutable outcome of a run.
type HealthResult struct {
	Overall    int                  `json:"overall"`
	Grade      string               `json:"grade"`
	Descriptor string               `json:"descriptor"`
	Verdict    Verdict              `json:"verdict"`
	Message    string               `json:"message"`
	Categories []CategoryScore      `json:"categories"`
	Blockers   []string             `json:"blockers,omitempty"`
	Advisory   *PerformanceAdvisory `json:"advisory,omitempty"`
	Digest     string               `json:"digest,omitempty"`
}

// Category returns the named category score.
func (r HealthResult) Category(name string) (CategoryScore, bool) {
	for _, c := range r.Categories {
		if c.Name == name {
			return c, true
		}
	}
	return CategoryScore{}, false
}

// Priority orders optimizations. Lower values sort first.
type Priority int

const (
	PriorityHigh Priority = iota
	PriorityMedium
	PriorityLow
)

func (p Priority) String() string {
	switch p {
	case PriorityHigh:
		return "HIGH"
	case PriorityMedium:
		return "MEDIUM"
	default:
		return "LOW"
	}
}

func (p Priority) MarshalText() ([]byte, error) { return []byte(p.String()), nil }

func (p *Priority) UnmarshalText(text []byte) error {
	switch string(text) {
	case "HIGH":
		*p = PriorityHigh
	case "MEDIUM":
		*p = PriorityMedium
	case "LOW":
		*p = PriorityLow
	default:
		return fmt.Errorf("unknown priority %q", text)
	}
	return nil
}

// Optimization is one generated recommendation.
type Optimization struct {
	Priority    Priority `json:"priority"`
	Category    string   `json:"category"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Benefit     string   `json:"benefit"`
}

// Report is the typed model handed to renderers. DisplayLimit is the number
// of optimizations the configuration asks renderers to show.
type Report struct {
	Project       string         `json:"project"`
	Result        HealthResult   `json:"result"`
	Facts         Facts          `json:"facts"`
	Optimizations []Optimization `json:"optimizations"`
	DisplayLimit  int            `json:"display_limit"`
}
