package cli_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/seatbelt/seatbelt/internal/adapters/inbound/cli"
	"github.com/seatbelt/seatbelt/internal/application/applicationtest"
	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runCheck(t *testing.T, facts domain.Facts, args ...string) (string, error) {
	t.Helper()
	cmd := cli.NewRootCmdWithProbes(applicationtest.Factory(facts))
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetArgs(append([]string{"check"}, args...))
	err := cmd.Execute()
	return buf.String(), err
}

func TestCheckCommand_FullReport(t *testing.T) {
	out, err := runCheck(t, applicationtest.HealthyFacts(), t.TempDir())
	require.NoError(t, err)
	assert.Contains(t, out, "100 / 100")
	assert.Contains(t, out, "Score Breakdown")
	assert.Contains(t, out, "READY")
}

func TestCheckCommand_Quick(t *testing.T) {
	out, err := runCheck(t, applicationtest.HealthyFacts(), t.TempDir(), "--quick")
	require.NoError(t, err)
	assert.Contains(t, out, "100/100")
	assert.Equal(t, 1, strings.Count(out, "\n"))
}

func TestCheckCommand_JSON(t *testing.T) {
	out, err := runCheck(t, applicationtest.HealthyFacts(), t.TempDir(), "--json")
	require.NoError(t, err)

	var result map[string]interface{}
	require.NoError(t, json.Unmarshal([]byte(out), &result), "output should be valid JSON")
	assert.Contains(t, result, "result")
	assert.Contains(t, result, "facts")
	assert.Contains(t, result, "optimizations")
}

func TestCheckCommand_QuickJSON(t *testing.T) {
	out, err := runCheck(t, applicationtest.HealthyFacts(), t.TempDir(), "--quick", "--json")
	require.NoError(t, err)

	var res domain.HealthResult
	require.NoError(t, json.Unmarshal([]byte(out), &res))
	assert.Equal(t, domain.VerdictReady, res.Verdict)
	assert.Len(t, res.Digest, 64)
}

func TestCheckCommand_BlockedReturnsErrBlocked(t *testing.T) {
	out, err := runCheck(t, applicationtest.BlockedFacts(), t.TempDir(), "--quick")
	require.ErrorIs(t, err, cli.ErrBlocked)
	assert.Contains(t, out, "BLOCKED")
}

func TestCheckCommand_BlockedStillPrintsJSON(t *testing.T) {
	out, err := runCheck(t, applicationtest.BlockedFacts(), t.TempDir(), "--json")
	require.ErrorIs(t, err, cli.ErrBlocked)

	var report domain.Report
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	assert.Equal(t, domain.VerdictBlocked, report.Result.Verdict)
	assert.NotEmpty(t, report.Optimizations)
}

func TestCheckCommand_DisplayLimitFromConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".seatbelt.yaml"), []byte("display_limit: 1\n"), 0o644))

	f := applicationtest.HealthyFacts()
	f.Structure = domain.StructureFacts{}
	f.UserSettings.CommitSigning = false

	out, err := runCheck(t, f, dir)
	require.NoError(t, err)
	assert.Contains(t, out, "more (use --json for the full list)")
}

func TestCheckCommand_InvalidConfig(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".seatbelt.yaml"), []byte("ready_min: 500\n"), 0o644))

	_, err := runCheck(t, applicationtest.HealthyFacts(), dir)
	require.Error(t, err)
	assert.NotErrorIs(t, err, cli.ErrBlocked)
	assert.Contains(t, err.Error(), "invalid .seatbelt.yaml")
}

func TestCheckCommand_MissingPath(t *testing.T) {
	_, err := runCheck(t, applicationtest.HealthyFacts(), filepath.Join(t.TempDir(), "nope"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "check failed")
}

func TestCheckCommand_VerboseFlag(t *testing.T) {
	_, err := runCheck(t, applicationtest.HealthyFacts(), t.TempDir(), "--quick", "--verbose")
	require.NoError(t, err)
}
