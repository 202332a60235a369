package scoring_test

import "github.com/seatbelt/seatbelt/internal/domain"

func defaultConfig() domain.HealthConfig {
	return domain.DefaultConfig()
}

func allAuthenticated() domain.AuthFacts {
	return domain.AuthFacts{Services: map[string]domain.AuthState{
		domain.ServiceGitHub:   domain.AuthAuthenticated,
		domain.ServiceSupabase: domain.AuthAuthenticated,
		domain.ServiceGit:      domain.AuthAuthenticated,
		domain.ServiceVercel:   domain.AuthAuthenticated,
		domain.ServiceAWS:      domain.AuthAuthenticated,
	}}
}

func singleHost(n int) domain.MCPFacts {
	names := make([]string, n)
	for i := range names {
		names[i] = string(rune('a'+i)) + "-server"
	}
	return domain.MCPFacts{
		Hosts:  []domain.MCPHost{{Name: "claude-code", Found: true, Servers: names}},
		Total:  n,
		Unique: n,
		Parity: 100,
	}
}
