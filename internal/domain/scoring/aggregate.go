package scoring

import (
	"fmt"
	"math"
	"strings"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// ScoreAll runs every category scorer in display order.
func ScoreAll(cfg domain.HealthConfig, f domain.Facts) []domain.CategoryScore {
	return []domain.CategoryScore{
		ScoreAuthentication(cfg, f.Auth),
		ScoreSecurity(cfg, f.Security),
		ScoreMCPHealth(cfg, f.MCP),
		ScoreStructure(cfg, f.Structure),
		ScoreFreshness(cfg, f.Freshness),
	}
}

// Overall is the fixed-weight sum of category scores, rounded.
func Overall(cfg domain.HealthConfig, categories []domain.CategoryScore) int {
	var total float64
	for _, c := range categories {
		total += float64(c.Score) * cfg.Weight(c.Name)
	}
	return clamp(int(math.Round(total)))
}

// Aggregate combines category scores into the run's HealthResult.
func Aggregate(cfg domain.HealthConfig, categories []domain.CategoryScore) domain.HealthResult {
	overall := Overall(cfg, categories)
	band := cfg.GradeFor(overall)

	res := domain.HealthResult{
		Overall:    overall,
		Grade:      band.Grade,
		Descriptor: band.Descriptor,
		Categories: categories,
	}

	for _, c := range categories {
		if minimum, ok := cfg.HardFail[c.Name]; ok && c.Score < minimum {
			res.Blockers = append(res.Blockers, blocker(c, minimum))
		}
	}

	switch {
	case len(res.Blockers) > 0:
		res.Verdict = domain.VerdictBlocked
		res.Message = "Blocked: " + strings.Join(res.Blockers, "; ")
	case overall < cfg.WarningMin:
		res.Verdict = domain.VerdictBlocked
		res.Message = fmt.Sprintf("Blocked: overall score %d is below %d", overall, cfg.WarningMin)
	case overall < cfg.ReadyMin:
		res.Verdict = domain.VerdictWarning
		res.Message = fmt.Sprintf("Proceed with caution: overall score %d is below %d", overall, cfg.ReadyMin)
	default:
		res.Verdict = domain.VerdictReady
		res.Message = fmt.Sprintf("Ready to develop: overall score %d (%s)", overall, band.Grade)
	}
	return res
}

func blocker(c domain.CategoryScore, minimum int) string {
	if c.Name == domain.CategoryAuthentication && c.Score == 0 {
		return "no core service is authenticated"
	}
	return fmt.Sprintf("%s score %d is below the hard-fail minimum of %d", domain.DisplayName(c.Name), c.Score, minimum)
}
