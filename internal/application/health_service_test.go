package application_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/seatbelt/seatbelt/internal/application"
	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

func newService(t *testing.T, p application.Probes) *application.HealthService {
	t.Helper()
	return application.NewHealthService(
		staticLoader{cfg: domain.DefaultConfig()},
		factoryOf(p),
		zaptest.NewLogger(t),
	)
}

func TestHealthService_HealthyProjectIsReady(t *testing.T) {
	probes, _ := healthyProbes()
	report, err := newService(t, probes).Check(context.Background(), t.TempDir())
	require.NoError(t, err)

	res := report.Result
	assert.Equal(t, 100, res.Overall)
	assert.Equal(t, "A", res.Grade)
	assert.Equal(t, domain.VerdictReady, res.Verdict)
	assert.Empty(t, res.Blockers)
	assert.Nil(t, res.Advisory)
	assert.Len(t, res.Categories, len(domain.ValidCategories))
	assert.Len(t, res.Digest, 64)
	assert.Empty(t, report.Optimizations)
}

func TestHealthService_AuthSeesUserSettings(t *testing.T) {
	probes, auth := healthyProbes()
	report, err := newService(t, probes).Check(context.Background(), t.TempDir())
	require.NoError(t, err)

	require.Len(t, auth.seen, 1)
	assert.True(t, auth.seen[0].HasGitIdentity())
	assert.Equal(t, domain.AuthAuthenticated, report.Facts.Auth.State(domain.ServiceGit))
}

func TestHealthService_SecurityHardFailBlocks(t *testing.T) {
	probes, _ := healthyProbes()
	probes.Security = securityProbe{SecretsFile: ".env.local", SecretsFileExists: true, SecretsFileTracked: true}

	report, err := newService(t, probes).Check(context.Background(), t.TempDir())
	require.NoError(t, err)

	res := report.Result
	assert.Equal(t, domain.VerdictBlocked, res.Verdict)
	require.NotEmpty(t, res.Blockers)
	assert.Contains(t, res.Blockers[0], "Security")
	require.NotEmpty(t, report.Optimizations)
	assert.Equal(t, domain.PriorityHigh, report.Optimizations[0].Priority)
}

func TestHealthService_MCPAdvisoryAttached(t *testing.T) {
	probes, _ := healthyProbes()
	servers := []string{"a", "b", "c", "d", "e", "f", "g", "h", "i", "j", "k", "l"}
	probes.MCP = mcpProbe{
		Hosts:    []domain.MCPHost{{Name: "Claude Code", Found: true, Servers: servers}},
		Total:    12,
		Unique:   12,
		Parity:   100,
		MemoryMB: 600, StartupMs: 4800, FailurePercent: 21.5,
	}

	report, err := newService(t, probes).Check(context.Background(), t.TempDir())
	require.NoError(t, err)

	require.NotNil(t, report.Result.Advisory)
	assert.Equal(t, 12, report.Result.Advisory.Servers)
	assert.Equal(t, 600, report.Result.Advisory.MemoryMB)
}

func TestHealthService_Idempotent(t *testing.T) {
	probes, _ := healthyProbes()
	probes.Security = securityProbe{SecretsFile: ".env.local", SecretsFileExists: true, Violations: []string{"VITE_SECRET"}}
	svc := newService(t, probes)
	dir := t.TempDir()

	first, err := svc.Check(context.Background(), dir)
	require.NoError(t, err)
	second, err := svc.Check(context.Background(), dir)
	require.NoError(t, err)

	if diff := cmp.Diff(first, second); diff != "" {
		t.Errorf("reports differ between runs (-first +second):\n%s", diff)
	}
	assert.Equal(t, first.Result.Digest, second.Result.Digest)
}

func TestHealthService_ConfigErrorIsReturned(t *testing.T) {
	probes, _ := healthyProbes()
	svc := application.NewHealthService(staticLoader{err: assert.AnError}, factoryOf(probes), nil)

	_, err := svc.Check(context.Background(), t.TempDir())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "loading config")
}

func TestHealthService_ProbeFactoryError(t *testing.T) {
	factory := func(domain.HealthConfig) (application.Probes, error) { return application.Probes{}, errFactory }
	svc := application.NewHealthService(staticLoader{cfg: domain.DefaultConfig()}, factory, nil)

	_, err := svc.Check(context.Background(), t.TempDir())
	require.ErrorIs(t, err, errFactory)
}

func TestHealthService_MissingPath(t *testing.T) {
	probes, _ := healthyProbes()
	_, err := newService(t, probes).Check(context.Background(), filepath.Join(t.TempDir(), "nope"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestHealthService_PathIsFile(t *testing.T) {
	probes, _ := healthyProbes()
	f := filepath.Join(t.TempDir(), "file.txt")
	require.NoError(t, os.WriteFile(f, []byte("x"), 0o644))

	_, err := newService(t, probes).Check(context.Background(), f)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestDigest_IgnoresExistingDigest(t *testing.T) {
	r := domain.HealthResult{Overall: 70, Grade: "C", Verdict: domain.VerdictWarning}
	a, err := application.Digest(r)
	require.NoError(t, err)

	r.Digest = "stale"
	b, err := application.Digest(r)
	require.NoError(t, err)
	assert.Equal(t, a, b)

	r.Overall = 71
	c, err := application.Digest(r)
	require.NoError(t, err)
	assert.NotEqual(t, a, c)
}

func TestHealthService_ReportCarriesDisplayLimit(t *testing.T) {
	probes, _ := healthyProbes()
	cfg := domain.DefaultConfig()
	cfg.DisplayLimit = 3
	svc := application.NewHealthService(staticLoader{cfg: cfg}, factoryOf(probes), nil)

	report, err := svc.Check(context.Background(), t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, 3, report.DisplayLimit)
}
