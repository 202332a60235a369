package tui

import (
	"fmt"
	"sort"
	"strings"

	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/seatbelt/seatbelt/internal/domain/advisor"
)

func renderSystem(b *strings.Builder, f domain.Facts) {
	s, d := f.System, f.DevEnv
	section(b, "System")

	osLine := s.OSName
	if s.OSVersion != domain.Absent {
		osLine += " " + s.OSVersion
	}
	if s.OSCodename != domain.Absent {
		osLine += " (" + s.OSCodename + ")"
	}
	kv(b, "OS", osLine)
	kv(b, "Chip", fmt.Sprintf("%s  %s, %d cores", s.Chip, s.Arch, s.Cores))
	kv(b, "Memory", fmt.Sprintf("%.1f GB", s.MemoryGB))
	kv(b, "Disk free", fmt.Sprintf("%.1f GB", s.DiskFreeGB))
	kv(b, "Shell", withVersion(d.Shell, d.ShellVersion)+dimStyle.Render("  "+withVersion(d.Terminal, d.TerminalVersion)))

	tools := []struct{ name, version string }{
		{"node", d.Node}, {"npm", d.NPM}, {"pnpm", d.PNPM}, {"git", d.Git}, {"docker", d.Docker},
	}
	for _, t := range tools {
		value := t.version
		if value == domain.Absent {
			value = faintStyle.Render(domain.Absent)
		}
		if t.name == "docker" && t.version != domain.Absent {
			if d.DockerRunning {
				value += "  " + passStyle.Render("running")
			} else {
				value += "  " + warnStyle.Render("stopped")
			}
		}
		kv(b, t.name, value)
	}

	u := f.UserSettings
	kv(b, "Git identity", check(u.HasGitIdentity()))
	kv(b, "Default branch", u.DefaultBranch)
	kv(b, "Signing", check(u.CommitSigning))
	kv(b, "SSH keys", fmt.Sprintf("%d", u.SSHKeys))
	kv(b, "Editor", u.Editor)
	kv(b, "Shell config", u.ShellConfigFile)
}

func withVersion(name, version string) string {
	if name == domain.Absent || version == "" || version == domain.Absent {
		return name
	}
	return name + " " + version
}

func renderAuth(b *strings.Builder, a domain.AuthFacts) {
	section(b, "Authentication")

	names := make([]string, 0, len(a.Services))
	for name := range a.Services {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		var state string
		switch a.Services[name] {
		case domain.AuthAuthenticated:
			state = passStyle.Render("● authenticated")
		case domain.AuthNotAuthenticated:
			state = failStyle.Render("● not authenticated")
		default:
			state = faintStyle.Render("○ unavailable")
		}
		kv(b, name, state)
	}
	kv(b, "Backend linked", check(a.BackendLinked))
	kv(b, "Deploy linked", check(a.DeploymentLinked))
}

func renderMCP(b *strings.Builder, m domain.MCPFacts, adv *domain.PerformanceAdvisory) {
	section(b, "MCP Servers")
	for _, h := range m.Hosts {
		var value string
		switch {
		case !h.Found:
			value = faintStyle.Render("no config")
		case h.Malformed:
			value = failStyle.Render("malformed config")
		default:
			value = fmt.Sprintf("%d", h.Count())
			if h.Count() > 0 {
				value += "  " + faintStyle.Render(strings.Join(h.Servers, ", "))
			}
		}
		kv(b, h.Name, value)
	}
	kv(b, "Total", fmt.Sprintf("%d  %s", m.Total, dimStyle.Render(fmt.Sprintf("%d unique, parity %d%%", m.Unique, m.Parity))))
	kv(b, "Estimated cost", fmt.Sprintf("%d MB, %d ms startup, %.1f%% failure", m.MemoryMB, m.StartupMs, m.FailurePercent))

	if adv != nil {
		b.WriteString("\n")
		fmt.Fprintf(b, "    %s %s\n",
			warnTagStyle.Render("advisory"),
			fmt.Sprintf("%d servers score %d on performance: ~%d MB memory, ~%d ms startup, %.1f%% chance a server fails",
				adv.Servers, adv.Score, adv.MemoryMB, adv.StartupMs, adv.FailurePercent),
		)
	}
}

func renderSecurity(b *strings.Builder, s domain.SecurityFacts) {
	section(b, "Security")
	if !s.SecretsFileExists {
		kv(b, s.SecretsFile, faintStyle.Render("not present"))
		return
	}
	kv(b, s.SecretsFile, fmt.Sprintf("%d variables", s.DeclaredSecrets))
	kv(b, "Ignored", check(s.SecretsFileIgnored))
	kv(b, "Tracked by git", inverseCheck(s.SecretsFileTracked))
	if s.UnparsableLines > 0 {
		kv(b, "Parse", warnStyle.Render(fmt.Sprintf("⚠ %d unparsable lines", s.UnparsableLines)))
	}
	for _, v := range s.Violations {
		fmt.Fprintf(b, "    %s %s\n", errorTagStyle.Render("exposed"), v)
	}
}

func renderStructure(b *strings.Builder, s domain.StructureFacts) {
	section(b, "Project Structure")
	kv(b, "Migrations", fmt.Sprintf("%d tracked  %s", s.TrackedMigrations, dimStyle.Render(fmt.Sprintf("%d on disk", s.MigrationsOnDisk))))
	kv(b, "Local settings", check(s.HasAssistantSettings))
	kv(b, "CLAUDE.md", check(s.HasClaudeMD))
	kv(b, "Agents", check(s.HasAgentsDir))
	kv(b, "Commands", check(s.HasCommandsDir))
}

func renderOptimizations(b *strings.Builder, opts []domain.Optimization, limit int) {
	section(b, "Recommendations")
	if len(opts) == 0 {
		b.WriteString("    " + passStyle.Render("Nothing to improve.") + "\n")
		return
	}

	shown := advisor.Top(opts, limit)
	for _, o := range shown {
		fmt.Fprintf(b, "    %s %s\n", priorityTag(o.Priority), titleStyle.Render(o.Title))
		fmt.Fprintf(b, "         %s\n", dimStyle.Render(o.Description))
		if o.Benefit != "" {
			fmt.Fprintf(b, "         %s\n", hintStyle.Render(o.Benefit))
		}
	}
	if hidden := len(opts) - len(shown); hidden > 0 {
		fmt.Fprintf(b, "    %s\n", faintStyle.Render(fmt.Sprintf("+%d more (use --json for the full list)", hidden)))
	}
}

func priorityTag(p domain.Priority) string {
	switch p {
	case domain.PriorityHigh:
		return errorTagStyle.Render("HIGH  ")
	case domain.PriorityMedium:
		return warnTagStyle.Render("MEDIUM")
	default:
		return infoTagStyle.Render("LOW   ")
	}
}

func kv(b *strings.Builder, key, value string) {
	fmt.Fprintf(b, "    %s %s\n", dimStyle.Render(padRight(key, 16)), value)
}

func check(ok bool) string {
	if ok {
		return passStyle.Render("✓")
	}
	return failStyle.Render("✗")
}

func inverseCheck(bad bool) string {
	if bad {
		return failStyle.Render("yes")
	}
	return passStyle.Render("no")
}
