package application

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/seatbelt/seatbelt/internal/domain/advisor"
	"github.com/seatbelt/seatbelt/internal/domain/scoring"
)

// Probes bundles one implementation of every probe port.
type Probes struct {
	System       domain.SystemProbe
	DevEnv       domain.DevEnvProbe
	UserSettings domain.UserSettingsProbe
	Auth         domain.AuthProbe
	MCP          domain.MCPProbe
	Security     domain.SecurityProbe
	Structure    domain.StructureProbe
	Freshness    domain.FreshnessProbe
}

// ProbeFactory builds the probes for a loaded configuration, so command
// timeouts and file locations follow .seatbelt.yaml.
type ProbeFactory func(cfg domain.HealthConfig) (Probes, error)

// HealthService orchestrates the pipeline:
// load config → probe concurrently → score → aggregate → recommend.
type HealthService struct {
	configLoader domain.ConfigLoader
	probes       ProbeFactory
	logger       *zap.Logger
}

func NewHealthService(configLoader domain.ConfigLoader, probes ProbeFactory, logger *zap.Logger) *HealthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HealthService{configLoader: configLoader, probes: probes, logger: logger}
}

// Check runs every probe against projectPath and returns the full report.
// Only configuration and path problems produce an error.
func (s *HealthService) Check(ctx context.Context, projectPath string) (domain.Report, error) {
	info, err := os.Stat(projectPath)
	if err != nil {
		return domain.Report{}, fmt.Errorf("project path: %w", err)
	}
	if !info.IsDir() {
		return domain.Report{}, fmt.Errorf("project path %s is not a directory", projectPath)
	}

	// 0. Load config
	cfg, err := s.configLoader.Load(projectPath)
	if err != nil {
		return domain.Report{}, fmt.Errorf("loading config: %w", err)
	}

	probes, err := s.probes(cfg)
	if err != nil {
		return domain.Report{}, fmt.Errorf("building probes: %w", err)
	}

	// 1. Gather facts
	facts := s.Gather(ctx, probes, projectPath)

	// 2. Score and aggregate
	result := s.Evaluate(cfg, facts)

	// 3. Recommend
	opts := advisor.Recommend(cfg, facts, result.Categories)
	s.logger.Debug("check complete",
		zap.String("project", projectPath),
		zap.Int("overall", result.Overall),
		zap.String("verdict", string(result.Verdict)),
		zap.Int("optimizations", len(opts)),
	)

	return domain.Report{
		Project:       projectPath,
		Result:        result,
		Facts:         facts,
		Optimizations: opts,
		DisplayLimit:  cfg.DisplayLimit,
	}, nil
}

// Gather runs the probes concurrently. Each goroutine owns one field of
// the returned Facts; auth runs after user settings because git identity
// feeds it.
func (s *HealthService) Gather(ctx context.Context, p Probes, projectPath string) domain.Facts {
	var f domain.Facts
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		f.System = p.System.System(gctx)
		return nil
	})
	g.Go(func() error {
		f.DevEnv = p.DevEnv.DevEnv(gctx)
		return nil
	})
	g.Go(func() error {
		f.UserSettings = p.UserSettings.UserSettings(gctx)
		f.Auth = p.Auth.Auth(gctx, projectPath, f.UserSettings)
		return nil
	})
	g.Go(func() error {
		f.MCP = p.MCP.MCP(gctx)
		return nil
	})
	g.Go(func() error {
		f.Security = p.Security.Security(gctx, projectPath)
		return nil
	})
	g.Go(func() error {
		f.Structure = p.Structure.Structure(gctx, projectPath)
		return nil
	})
	g.Go(func() error {
		f.Freshness = p.Freshness.Freshness(gctx, projectPath)
		return nil
	})

	_ = g.Wait() // probes report absence through facts, never errors
	return f
}

// Evaluate scores the facts and produces the terminal result, including the
// MCP performance advisory and the result digest.
func (s *HealthService) Evaluate(cfg domain.HealthConfig, f domain.Facts) domain.HealthResult {
	categories := scoring.ScoreAll(cfg, f)
	for _, c := range categories {
		s.logger.Debug("category scored", zap.String("category", c.Name), zap.Int("score", c.Score))
	}

	result := scoring.Aggregate(cfg, categories)
	result.Advisory = scoring.MCPAdvisory(cfg, f.MCP)

	digest, err := Digest(result)
	if err != nil {
		s.logger.Warn("computing result digest", zap.Error(err))
	}
	result.Digest = digest
	return result
}
