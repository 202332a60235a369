package advisor_test

import (
	"testing"

	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/seatbelt/seatbelt/internal/domain/advisor"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func healthyFacts() domain.Facts {
	return domain.Facts{
		DevEnv:       domain.DevEnvFacts{Docker: "27.0.3", DockerRunning: true},
		UserSettings: domain.UserSettingsFacts{GitName: true, GitEmail: true, CommitSigning: true},
		Auth: domain.AuthFacts{
			Services: map[string]domain.AuthState{
				domain.ServiceGitHub:   domain.AuthAuthenticated,
				domain.ServiceSupabase: domain.AuthAuthenticated,
				domain.ServiceGit:      domain.AuthAuthenticated,
			},
			BackendLinked:    true,
			DeploymentLinked: true,
		},
		Security: domain.SecurityFacts{
			SecretsFile:        ".env.local",
			SecretsFileExists:  true,
			SecretsFileIgnored: true,
		},
		Structure: domain.StructureFacts{TrackedMigrations: 2, HasAssistantSettings: true, HasClaudeMD: true},
		Freshness: domain.FreshnessFacts{LastCommitDays: 1, ClaudeMDDays: 1, LockfileDays: 1},
	}
}

func brokenFacts() domain.Facts {
	names := make([]string, 12)
	for i := range names {
		names[i] = string(rune('a' + i))
	}
	return domain.Facts{
		DevEnv:       domain.DevEnvFacts{Docker: "27.0.3"},
		UserSettings: domain.UserSettingsFacts{SSHKeys: 1},
		Auth: domain.AuthFacts{Services: map[string]domain.AuthState{
			domain.ServiceGitHub:   domain.AuthNotAuthenticated,
			domain.ServiceSupabase: domain.AuthUnavailable,
		}},
		MCP: domain.MCPFacts{
			Hosts: []domain.MCPHost{
				{Name: "claude-code", Servers: names},
				{Name: "cursor", Servers: []string{"z"}},
			},
			Total:  13,
			Unique: 13,
			Parity: 0,
		},
		Security: domain.SecurityFacts{
			SecretsFile:        ".env.local",
			SecretsFileExists:  true,
			SecretsFileTracked: true,
			Violations:         []string{"NEXT_PUBLIC_SERVICE_ROLE_KEY"},
		},
		Freshness: domain.FreshnessFacts{LastCommitDays: 120, ClaudeMDDays: -1, LockfileDays: -1},
	}
}

func TestRecommend_HealthyProjectHasNone(t *testing.T) {
	assert.Empty(t, advisor.Recommend(domain.DefaultConfig(), healthyFacts(), nil))
}

func TestRecommend_SortedByPriority(t *testing.T) {
	opts := advisor.Recommend(domain.DefaultConfig(), brokenFacts(), nil)
	require.NotEmpty(t, opts)
	for i := 1; i < len(opts); i++ {
		assert.LessOrEqual(t, opts[i-1].Priority, opts[i].Priority, "index %d", i)
	}
}

func TestRecommend_StableWithinTier(t *testing.T) {
	cfg := domain.DefaultConfig()
	first := advisor.Recommend(cfg, brokenFacts(), nil)
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, advisor.Recommend(cfg, brokenFacts(), nil))
	}

	var high []string
	for _, o := range first {
		if o.Priority == domain.PriorityHigh {
			high = append(high, o.Title)
		}
	}
	assert.Equal(t, []string{
		"Ignore .env.local",
		"Untrack .env.local",
		"Stop exposing server secrets to the client",
		"Log in to GitHub CLI",
		"Configure git identity",
	}, high)
}

func TestRecommend_FullListRetained(t *testing.T) {
	cfg := domain.DefaultConfig()
	opts := advisor.Recommend(cfg, brokenFacts(), nil)
	assert.Greater(t, len(opts), cfg.DisplayLimit)
	assert.Len(t, advisor.Top(opts, cfg.DisplayLimit), cfg.DisplayLimit)
	assert.Len(t, advisor.Top(opts[:2], cfg.DisplayLimit), 2)
}

func TestRecommend_MCPOverLimitBenefit(t *testing.T) {
	opts := advisor.Recommend(domain.DefaultConfig(), brokenFacts(), nil)
	var found *domain.Optimization
	for i := range opts {
		if opts[i].Title == "Trim 5 MCP servers" {
			found = &opts[i]
		}
	}
	require.NotNil(t, found)
	assert.Equal(t, domain.PriorityMedium, found.Priority)
	assert.Contains(t, found.Benefit, "250 MB")
	assert.Contains(t, found.Description, "13 servers")
}

func TestRecommend_SigningSuggestsSSHKey(t *testing.T) {
	opts := advisor.Recommend(domain.DefaultConfig(), brokenFacts(), nil)
	for _, o := range opts {
		if o.Title == "Enable commit signing" {
			assert.Contains(t, o.Description, "SSH key")
			return
		}
	}
	t.Fatal("commit signing recommendation missing")
}

func TestRecommend_DockerNotInstalledIsSilent(t *testing.T) {
	f := healthyFacts()
	f.DevEnv = domain.DevEnvFacts{Docker: domain.Absent}
	assert.Empty(t, advisor.Recommend(domain.DefaultConfig(), f, nil))
}

func TestRecommend_MCPBenefitQuotesCategoryScore(t *testing.T) {
	cats := []domain.CategoryScore{{Name: domain.CategoryMCPHealth, Score: 58}}
	opts := advisor.Recommend(domain.DefaultConfig(), brokenFacts(), cats)
	for _, o := range opts {
		if o.Category == domain.CategoryMCPHealth && o.Priority == domain.PriorityMedium && o.Title == "Trim 5 MCP servers" {
			assert.Contains(t, o.Benefit, "MCP Health currently 58")
			return
		}
	}
	t.Fatal("MCP trim recommendation missing")
}

func TestRecommend_UnparsableSecretsFile(t *testing.T) {
	f := healthyFacts()
	f.Security.UnparsableLines = 3

	opts := advisor.Recommend(domain.DefaultConfig(), f, nil)
	require.Len(t, opts, 1)
	assert.Equal(t, "Fix malformed lines in .env.local", opts[0].Title)
	assert.Equal(t, domain.PriorityMedium, opts[0].Priority)
}
