package scoring

import (
	"fmt"
	"math"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// ScoreFreshness averages the recency score of every present signal. With no
// signal the category takes the configured neutral score.
func ScoreFreshness(cfg domain.HealthConfig, f domain.FreshnessFacts) domain.CategoryScore {
	cat := domain.CategoryScore{
		Name:   domain.CategoryFreshness,
		Weight: cfg.Weight(domain.CategoryFreshness),
	}

	signals := []struct {
		name string
		days int
	}{
		{"last_commit", f.LastCommitDays},
		{"claude_md", f.ClaudeMDDays},
		{"lockfile", f.LockfileDays},
	}

	var total, present int
	for _, s := range signals {
		sm := domain.SubMetric{Name: s.name, Points: 100}
		if s.days < 0 {
			sm.Detail = "no signal"
			cat.SubMetrics = append(cat.SubMetrics, sm)
			continue
		}
		sm.Score = recencyScore(cfg.Freshness, s.days)
		sm.Detail = fmt.Sprintf("%d days old", s.days)
		cat.SubMetrics = append(cat.SubMetrics, sm)
		total += sm.Score
		present++
	}

	if present == 0 {
		cat.Score = clamp(cfg.Freshness.NeutralScore)
		cat.Neutral = true
		return cat
	}
	cat.Score = clamp(int(math.Round(float64(total) / float64(present))))
	return cat
}

func recencyScore(cfg domain.FreshnessConfig, days int) int {
	for _, b := range cfg.Bands {
		if days <= b.MaxDays {
			return b.Score
		}
	}
	return cfg.StaleScore
}
