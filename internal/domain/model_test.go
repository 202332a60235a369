package domain_test

import (
	"encoding/json"
	"testing"

	"github.com/seatbelt/seatbelt/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFreshnessFacts_SignalsSkipsAbsent(t *testing.T) {
	f := domain.FreshnessFacts{LastCommitDays: 3, ClaudeMDDays: -1, LockfileDays: 0}
	assert.Equal(t, []int{3, 0}, f.Signals())
	assert.Empty(t, domain.FreshnessFacts{LastCommitDays: -1, ClaudeMDDays: -1, LockfileDays: -1}.Signals())
}

func TestAuthFacts_StateDefaultsToUnavailable(t *testing.T) {
	a := domain.AuthFacts{Services: map[string]domain.AuthState{
		domain.ServiceGitHub: domain.AuthAuthenticated,
	}}
	assert.Equal(t, domain.AuthAuthenticated, a.State(domain.ServiceGitHub))
	assert.Equal(t, domain.AuthUnavailable, a.State(domain.ServiceAWS))
}

func TestSecurityFacts_Unprotected(t *testing.T) {
	assert.False(t, domain.SecurityFacts{}.Unprotected())
	assert.True(t, domain.SecurityFacts{SecretsFileExists: true}.Unprotected())
	assert.False(t, domain.SecurityFacts{SecretsFileExists: true, SecretsFileIgnored: true}.Unprotected())
}

func TestUserSettings_HasGitIdentity(t *testing.T) {
	assert.False(t, domain.UserSettingsFacts{GitName: true}.HasGitIdentity())
	assert.True(t, domain.UserSettingsFacts{GitName: true, GitEmail: true}.HasGitIdentity())
}

func TestPriority_String(t *testing.T) {
	assert.Equal(t, "HIGH", domain.PriorityHigh.String())
	assert.Equal(t, "MEDIUM", domain.PriorityMedium.String())
	assert.Equal(t, "LOW", domain.PriorityLow.String())
}

func TestOptimization_JSONPriorityIsText(t *testing.T) {
	data, err := json.Marshal(domain.Optimization{Priority: domain.PriorityMedium, Title: "x"})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"priority":"MEDIUM"`)
}

func TestPriority_UnmarshalText(t *testing.T) {
	var o domain.Optimization
	require.NoError(t, json.Unmarshal([]byte(`{"priority":"LOW"}`), &o))
	assert.Equal(t, domain.PriorityLow, o.Priority)

	assert.Error(t, json.Unmarshal([]byte(`{"priority":"URGENT"}`), &o))
}

func TestHealthResult_Category(t *testing.T) {
	r := domain.HealthResult{Categories: []domain.CategoryScore{{Name: domain.CategorySecurity, Score: 70}}}
	c, ok := r.Category(domain.CategorySecurity)
	require.True(t, ok)
	assert.Equal(t, 70, c.Score)
	_, ok = r.Category(domain.CategoryFreshness)
	assert.False(t, ok)
}

func TestDisplayName(t *testing.T) {
	assert.Equal(t, "MCP Health", domain.DisplayName(domain.CategoryMCPHealth))
	assert.Equal(t, "Security", domain.DisplayName(domain.CategorySecurity))
}
