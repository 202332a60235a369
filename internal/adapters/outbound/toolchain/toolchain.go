// Package toolchain reports the developer tools available on PATH.
package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"regexp"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell"
	"github.com/seatbelt/seatbelt/internal/domain"
)

var versionPattern = regexp.MustCompile(`v?(\d+\.\d+(?:\.\d+)?)`)

// Prober implements domain.DevEnvProbe.
type Prober struct {
	runner shell.Runner
	getenv func(string) string
}

// New creates a Prober that queries tools through runner.
func New(runner shell.Runner) *Prober {
	return &Prober{runner: runner, getenv: os.Getenv}
}

// WithEnv overrides the environment lookup, for tests.
func (p *Prober) WithEnv(getenv func(string) string) *Prober {
	p.getenv = getenv
	return p
}

func (p *Prober) DevEnv(ctx context.Context) domain.DevEnvFacts {
	f := domain.DevEnvFacts{
		Shell:           domain.Absent,
		ShellVersion:    domain.Absent,
		Terminal:        domain.Absent,
		TerminalVersion: domain.Absent,
		Node:            p.version(ctx, "node", "--version"),
		NPM:             p.version(ctx, "npm", "--version"),
		PNPM:            p.version(ctx, "pnpm", "--version"),
		Git:             p.version(ctx, "git", "--version"),
		Docker:          p.version(ctx, "docker", "--version"),
	}
	if sh := p.getenv("SHELL"); sh != "" {
		f.Shell = filepath.Base(sh)
		f.ShellVersion = p.version(ctx, sh, "--version")
	}
	switch {
	case p.getenv("TERM_PROGRAM") != "":
		f.Terminal = p.getenv("TERM_PROGRAM")
		if v := p.getenv("TERM_PROGRAM_VERSION"); v != "" {
			f.TerminalVersion = v
		}
	case p.getenv("TERM") != "":
		f.Terminal = p.getenv("TERM")
	}
	if f.Docker != domain.Absent {
		res, err := p.runner.Run(ctx, "docker", "info", "--format", "{{.ServerVersion}}")
		f.DockerRunning = err == nil && res.OK()
	}
	return f
}

// version returns the first version number printed by the tool, the raw
// first line when none is found, or domain.Absent when it is not installed.
func (p *Prober) version(ctx context.Context, name string, args ...string) string {
	if _, err := p.runner.LookPath(name); err != nil {
		return domain.Absent
	}
	res, err := p.runner.Run(ctx, name, args...)
	if err != nil || !res.OK() {
		return domain.Absent
	}
	line := shell.FirstLine(res.Stdout)
	if m := versionPattern.FindStringSubmatch(line); m != nil {
		return m[1]
	}
	if line == "" {
		return domain.Absent
	}
	return line
}
