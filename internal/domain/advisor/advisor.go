// Package advisor turns observed facts into prioritized optimization
// suggestions. It is independent of scoring and only reads the same facts.
package advisor

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/seatbelt/seatbelt/internal/domain/scoring"
)

// rule yields at most one optimization.
type rule func(cfg domain.HealthConfig, f domain.Facts, cats []domain.CategoryScore) (domain.Optimization, bool)

// rules run in declaration order; that order breaks ties within a priority.
var rules = []rule{
	unprotectedSecrets,
	trackedSecrets,
	exposedSecrets,
	unparsableSecrets,
	githubAuth,
	gitIdentity,
	mcpOverLimit,
	mcpParity,
	backendAuth,
	trackedMigrations,
	commitSigning,
	assistantSettings,
	deploymentLink,
	containerRuntime,
	staleCommit,
}

// Recommend evaluates every rule and returns the full list ordered HIGH,
// MEDIUM, LOW. Display capping is left to the caller.
func Recommend(cfg domain.HealthConfig, f domain.Facts, cats []domain.CategoryScore) []domain.Optimization {
	var out []domain.Optimization
	for _, r := range rules {
		if opt, ok := r(cfg, f, cats); ok {
			out = append(out, opt)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Priority < out[j].Priority
	})
	return out
}

// Top returns at most n optimizations from an ordered list.
func Top(opts []domain.Optimization, n int) []domain.Optimization {
	if len(opts) <= n {
		return opts
	}
	return opts[:n]
}

func unprotectedSecrets(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if !f.Security.Unprotected() {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityHigh,
		Category:    domain.CategorySecurity,
		Title:       fmt.Sprintf("Ignore %s", f.Security.SecretsFile),
		Description: fmt.Sprintf("Add %s to .gitignore so local secrets cannot be committed.", f.Security.SecretsFile),
		Benefit:     fmt.Sprintf("+%d security points", cfg.Security.UnprotectedSecretsPenalty),
	}, true
}

func trackedSecrets(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if !f.Security.SecretsFileTracked {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityHigh,
		Category:    domain.CategorySecurity,
		Title:       fmt.Sprintf("Untrack %s", f.Security.SecretsFile),
		Description: fmt.Sprintf("Run `git rm --cached %s` and rotate any credentials it contained.", f.Security.SecretsFile),
		Benefit:     fmt.Sprintf("+%d security points", cfg.Security.TrackedSecretsPenalty),
	}, true
}

func exposedSecrets(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	n := len(f.Security.Violations)
	if n == 0 {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityHigh,
		Category:    domain.CategorySecurity,
		Title:       "Stop exposing server secrets to the client",
		Description: fmt.Sprintf("Rename %s without the public prefix and read them server-side only.", strings.Join(f.Security.Violations, ", ")),
		Benefit:     fmt.Sprintf("+%d security points", n*cfg.Security.ExposureViolationPenalty),
	}, true
}

func unparsableSecrets(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.Security.UnparsableLines == 0 || len(f.Security.Violations) > 0 {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityMedium,
		Category:    domain.CategorySecurity,
		Title:       fmt.Sprintf("Fix malformed lines in %s", f.Security.SecretsFile),
		Description: fmt.Sprintf("%d lines are not NAME=value and could not be checked for client exposure.", f.Security.UnparsableLines),
		Benefit:     fmt.Sprintf("+%d security points", cfg.Security.ExposureViolationPenalty),
	}, true
}

func githubAuth(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	switch f.Auth.State(domain.ServiceGitHub) {
	case domain.AuthNotAuthenticated:
		return domain.Optimization{
			Priority:    domain.PriorityHigh,
			Category:    domain.CategoryAuthentication,
			Title:       "Log in to GitHub CLI",
			Description: "Run `gh auth login` so pull requests and issues can be managed from the terminal.",
			Benefit:     fmt.Sprintf("+%d authentication points", cfg.Auth.Points[domain.ServiceGitHub]),
		}, true
	case domain.AuthUnavailable:
		return domain.Optimization{
			Priority:    domain.PriorityHigh,
			Category:    domain.CategoryAuthentication,
			Title:       "Install GitHub CLI",
			Description: "Install `gh` and run `gh auth login`.",
			Benefit:     fmt.Sprintf("+%d authentication points", cfg.Auth.Points[domain.ServiceGitHub]),
		}, true
	}
	return domain.Optimization{}, false
}

func gitIdentity(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.UserSettings.HasGitIdentity() {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityHigh,
		Category:    domain.CategoryAuthentication,
		Title:       "Configure git identity",
		Description: "Set `git config --global user.name` and `user.email`.",
		Benefit:     fmt.Sprintf("+%d authentication points", cfg.Auth.Points[domain.ServiceGit]),
	}, true
}

func mcpOverLimit(cfg domain.HealthConfig, f domain.Facts, cats []domain.CategoryScore) (domain.Optimization, bool) {
	over := f.MCP.Total - cfg.MCP.SoftLimit
	if over <= 0 {
		return domain.Optimization{}, false
	}
	opt := domain.Optimization{
		Priority: domain.PriorityMedium,
		Category: domain.CategoryMCPHealth,
		Title:    fmt.Sprintf("Trim %d MCP servers", over),
		Description: fmt.Sprintf("%d servers are declared across hosts; keep at most %d enabled.",
			f.MCP.Total, cfg.MCP.SoftLimit),
		Benefit: fmt.Sprintf("~%d MB memory and ~%.1fs startup saved, performance %d → 100",
			over*cfg.MCP.PerServerMemoryMB,
			float64(over*cfg.MCP.PerServerStartupMs)/1000,
			scoring.MCPPerformance(cfg, f.MCP.Total)),
	}
	if c, ok := categoryScore(cats, domain.CategoryMCPHealth); ok {
		opt.Benefit += fmt.Sprintf(" (MCP Health currently %d)", c)
	}
	return opt, true
}

func categoryScore(cats []domain.CategoryScore, name string) (int, bool) {
	for _, c := range cats {
		if c.Name == name {
			return c.Score, true
		}
	}
	return 0, false
}

func mcpParity(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	hosts := 0
	for _, h := range f.MCP.Hosts {
		if h.Count() > 0 {
			hosts++
		}
	}
	if hosts < 2 || f.MCP.Parity >= cfg.MCP.ParityThreshold {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityMedium,
		Category:    domain.CategoryMCPHealth,
		Title:       "Align MCP server configuration across hosts",
		Description: fmt.Sprintf("Only %d%% of the %d unique servers are declared on every host.", f.MCP.Parity, f.MCP.Unique),
		Benefit:     "Same tools available whichever assistant is used",
	}, true
}

func backendAuth(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	state := f.Auth.State(domain.ServiceSupabase)
	if state == domain.AuthAuthenticated && f.Auth.BackendLinked {
		return domain.Optimization{}, false
	}
	opt := domain.Optimization{
		Priority: domain.PriorityMedium,
		Category: domain.CategoryAuthentication,
		Title:    "Link the Supabase project",
		Benefit:  "Migrations and type generation run against the right project",
	}
	switch state {
	case domain.AuthUnavailable:
		opt.Title = "Install Supabase CLI"
		opt.Description = "Install `supabase`, then run `supabase login` and `supabase link`."
	case domain.AuthNotAuthenticated:
		opt.Title = "Log in to Supabase CLI"
		opt.Description = "Run `supabase login`, then `supabase link`."
	default:
		opt.Description = "Run `supabase link --project-ref <ref>` in the project root."
	}
	if state != domain.AuthAuthenticated {
		opt.Benefit = fmt.Sprintf("+%d authentication points", cfg.Auth.Points[domain.ServiceSupabase])
	}
	return opt, true
}

func trackedMigrations(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.Structure.TrackedMigrations > 0 {
		return domain.Optimization{}, false
	}
	desc := "Create schema migrations under supabase/migrations and commit them."
	if f.Structure.MigrationsOnDisk > 0 {
		desc = fmt.Sprintf("%d migration files exist but none are committed; `git add supabase/migrations`.", f.Structure.MigrationsOnDisk)
	}
	return domain.Optimization{
		Priority:    domain.PriorityMedium,
		Category:    domain.CategoryStructure,
		Title:       "Track database migrations",
		Description: desc,
		Benefit:     fmt.Sprintf("+%d structure points", cfg.Structure.MigrationsPoints),
	}, true
}

func commitSigning(_ domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.UserSettings.CommitSigning {
		return domain.Optimization{}, false
	}
	desc := "Set `git config --global commit.gpgsign true` with a signing key."
	if f.UserSettings.SSHKeys > 0 {
		desc = "Sign commits with your existing SSH key: `git config --global gpg.format ssh` and `user.signingkey`."
	}
	return domain.Optimization{
		Priority:    domain.PriorityLow,
		Category:    domain.CategorySecurity,
		Title:       "Enable commit signing",
		Description: desc,
		Benefit:     "Verified commits on the source-control host",
	}, true
}

func assistantSettings(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.Structure.HasAssistantSettings {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityLow,
		Category:    domain.CategoryStructure,
		Title:       "Add assistant local settings",
		Description: "Create .claude/settings.local.json with project permissions.",
		Benefit:     fmt.Sprintf("+%d structure points", cfg.Structure.AssistantSettingsPoints),
	}, true
}

func deploymentLink(_ domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.Auth.DeploymentLinked {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityLow,
		Category:    domain.CategoryAuthentication,
		Title:       "Link the Vercel project",
		Description: "Run `vercel link` to connect this directory to its deployment.",
		Benefit:     "Preview deployments and environment pulls work locally",
	}, true
}

func containerRuntime(_ domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	if f.DevEnv.Docker == domain.Absent || f.DevEnv.Docker == "" || f.DevEnv.DockerRunning {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityLow,
		Category:    domain.CategoryStructure,
		Title:       "Start the container runtime",
		Description: "Docker is installed but not running; local backend services need it.",
		Benefit:     "`supabase start` and integration tests can run",
	}, true
}

func staleCommit(cfg domain.HealthConfig, f domain.Facts, _ []domain.CategoryScore) (domain.Optimization, bool) {
	days := f.Freshness.LastCommitDays
	if days < 0 || days <= cfg.Freshness.StaleCommitDays {
		return domain.Optimization{}, false
	}
	return domain.Optimization{
		Priority:    domain.PriorityLow,
		Category:    domain.CategoryFreshness,
		Title:       "Refresh the project",
		Description: fmt.Sprintf("The last commit is %d days old; pull upstream changes before starting.", days),
		Benefit:     "Higher freshness score",
	}, true
}
