// Package services checks authentication state of integrated services
// through each service's own CLI.
package services

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seatbelt/seatbelt/internal/adapters/outbound/shell"
	"github.com/seatbelt/seatbelt/internal/domain"
)

// Project files that record a local link to a remote project.
const (
	BackendRefFile    = "supabase/.temp/project-ref"
	DeploymentRefFile = ".vercel/project.json"
)

// CLIChecker implements domain.StatusChecker by running a read-only status
// command. Exit 0 means authenticated.
type CLIChecker struct {
	service string
	binary  string
	args    []string
	runner  shell.Runner
}

// NewCLIChecker creates a checker for service that runs binary with args.
func NewCLIChecker(runner shell.Runner, service, binary string, args ...string) *CLIChecker {
	return &CLIChecker{service: service, binary: binary, args: args, runner: runner}
}

func (c *CLIChecker) Service() string { return c.service }

func (c *CLIChecker) Status(ctx context.Context) domain.AuthState {
	if _, err := c.runner.LookPath(c.binary); err != nil {
		return domain.AuthUnavailable
	}
	res, err := c.runner.Run(ctx, c.binary, c.args...)
	if errors.Is(err, shell.ErrNotFound) {
		return domain.AuthUnavailable
	}
	if err != nil || !res.OK() {
		return domain.AuthNotAuthenticated
	}
	return domain.AuthAuthenticated
}

// DefaultCheckers returns the status checkers for every CLI-backed service.
func DefaultCheckers(runner shell.Runner) []domain.StatusChecker {
	return []domain.StatusChecker{
		NewCLIChecker(runner, domain.ServiceGitHub, "gh", "auth", "status"),
		NewCLIChecker(runner, domain.ServiceSupabase, "supabase", "projects", "list"),
		NewCLIChecker(runner, domain.ServiceVercel, "vercel", "whoami"),
		NewCLIChecker(runner, domain.ServiceAWS, "aws", "sts", "get-caller-identity"),
	}
}

// Prober implements domain.AuthProbe.
type Prober struct {
	checkers []domain.StatusChecker
	logger   *zap.Logger
}

// New creates a Prober over the given checkers.
func New(logger *zap.Logger, checkers ...domain.StatusChecker) *Prober {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Prober{checkers: checkers, logger: logger}
}

// Auth runs all checkers concurrently. The git entry is derived from the
// configured identity rather than a command.
func (p *Prober) Auth(ctx context.Context, projectPath string, identity domain.UserSettingsFacts) domain.AuthFacts {
	facts := domain.AuthFacts{Services: make(map[string]domain.AuthState, len(p.checkers)+1)}

	var mu sync.Mutex
	var g errgroup.Group
	for _, c := range p.checkers {
		g.Go(func() error {
			state := c.Status(ctx)
			p.logger.Debug("service status", zap.String("service", c.Service()), zap.String("state", string(state)))
			mu.Lock()
			facts.Services[c.Service()] = state
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	if identity.HasGitIdentity() {
		facts.Services[domain.ServiceGit] = domain.AuthAuthenticated
	} else {
		facts.Services[domain.ServiceGit] = domain.AuthNotAuthenticated
	}

	facts.BackendLinked = fileExists(filepath.Join(projectPath, BackendRefFile))
	facts.DeploymentLinked = fileExists(filepath.Join(projectPath, DeploymentRefFile))
	return facts
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
