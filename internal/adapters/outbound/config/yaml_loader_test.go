package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	appconfig "github.com/seatbelt/seatbelt/internal/adapters/outbound/config"
	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, dir, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".seatbelt.yaml"), []byte(content), 0644))
}

func TestYAMLLoader_MissingFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	loader := appconfig.New()

	cfg, err := loader.Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_EmptyFileReturnsDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, "")

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, domain.DefaultConfig(), cfg)
}

func TestYAMLLoader_OverlaysScalars(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
ready_min: 85
display_limit: 10
command_timeout: 5s
security:
  secrets_file: .env
mcp:
  soft_limit: 12
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 85, cfg.ReadyMin)
	assert.Equal(t, 60, cfg.WarningMin, "unset values keep defaults")
	assert.Equal(t, 10, cfg.DisplayLimit)
	assert.Equal(t, 5*time.Second, cfg.CommandTimeout)
	assert.Equal(t, ".env", cfg.Security.SecretsFile)
	assert.Equal(t, 40, cfg.Security.UnprotectedSecretsPenalty)
	assert.Equal(t, 12, cfg.MCP.SoftLimit)
	assert.Equal(t, 400, cfg.MCP.PerServerStartupMs)
}

func TestYAMLLoader_MapsMergeKeyByKey(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
hard_fail:
  Structure: 20
auth:
  points:
    aws: 0
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.HardFail[domain.CategorySecurity])
	assert.Equal(t, 20, cfg.HardFail[domain.CategoryStructure])
	assert.Equal(t, 0, cfg.Auth.Points[domain.ServiceAWS])
	assert.Equal(t, 30, cfg.Auth.Points[domain.ServiceGitHub])
}

func TestYAMLLoader_ListsReplaceDefaults(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
security:
  public_prefixes: [NUXT_PUBLIC_]
`)

	cfg, err := appconfig.New().Load(dir)
	require.NoError(t, err)
	assert.Equal(t, []string{"NUXT_PUBLIC_"}, cfg.Security.PublicPrefixes)
}

func TestYAMLLoader_InvalidYAML(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `{{{invalid yaml`)
	loader := appconfig.New()

	_, err := loader.Load(dir)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "parsing .seatbelt.yaml")
}

func TestYAMLLoader_InvalidValues(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
weights:
  Security: 0.90
`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid .seatbelt.yaml")
	assert.Contains(t, err.Error(), "weights sum to")
}

func TestYAMLLoader_UnknownCategory(t *testing.T) {
	dir := t.TempDir()
	writeConfig(t, dir, `
hard_fail:
  Vibes: 10
`)

	_, err := appconfig.New().Load(dir)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unknown category "Vibes"`)
}
