package scoring

import (
	"fmt"
	"sort"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// ScoreAuthentication is a weighted sum over the services in the points
// table. Optional services cannot carry the category on their own: with no
// core service authenticated the score is 0.
func ScoreAuthentication(cfg domain.HealthConfig, f domain.AuthFacts) domain.CategoryScore {
	cat := domain.CategoryScore{
		Name:   domain.CategoryAuthentication,
		Weight: cfg.Weight(domain.CategoryAuthentication),
	}

	coreAuthed := false
	for _, svc := range serviceOrder(cfg) {
		points := cfg.Auth.Points[svc]
		state := f.State(svc)
		sm := domain.SubMetric{Name: svc, Points: points, Detail: string(state)}
		if state == domain.AuthAuthenticated {
			sm.Score = points
			if cfg.Auth.IsCore(svc) {
				coreAuthed = true
			}
		}
		if cfg.Auth.IsCore(svc) {
			sm.Detail = fmt.Sprintf("%s (core)", state)
		}
		cat.SubMetrics = append(cat.SubMetrics, sm)
	}

	if !coreAuthed {
		cat.Score = 0
		return cat
	}
	cat.Score = sumSubMetrics(cat.SubMetrics)
	return cat
}

// serviceOrder lists core services first (in configured order), then the
// remaining services alphabetically.
func serviceOrder(cfg domain.HealthConfig) []string {
	order := make([]string, 0, len(cfg.Auth.Points))
	seen := make(map[string]bool)
	for _, svc := range cfg.Auth.CoreServices {
		order = append(order, svc)
		seen[svc] = true
	}
	var rest []string
	for svc := range cfg.Auth.Points {
		if !seen[svc] {
			rest = append(rest, svc)
		}
	}
	sort.Strings(rest)
	return append(order, rest...)
}
