package scoring

import (
	"fmt"
	"math"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// MCPPerformance degrades linearly once the declared server count passes
// the soft limit.
func MCPPerformance(cfg domain.HealthConfig, total int) int {
	over := max(0, total-cfg.MCP.SoftLimit)
	return clamp(100 - over*cfg.MCP.OverLimitPenalty)
}

// ScoreMCPHealth blends performance with cross-host parity. Having no
// servers at all is not penalized.
func ScoreMCPHealth(cfg domain.HealthConfig, f domain.MCPFacts) domain.CategoryScore {
	cat := domain.CategoryScore{
		Name:   domain.CategoryMCPHealth,
		Weight: cfg.Weight(domain.CategoryMCPHealth),
	}

	if f.Total == 0 {
		cat.Score = 100
		cat.Neutral = true
		cat.SubMetrics = []domain.SubMetric{
			{Name: "performance", Score: 100, Points: 100, Detail: "no servers configured"},
			{Name: "parity", Score: 100, Points: 100, Detail: "no servers configured"},
		}
		return cat
	}

	perf := MCPPerformance(cfg, f.Total)
	parity := clamp(f.Parity)
	w := cfg.MCP.PerformanceWeight

	cat.SubMetrics = []domain.SubMetric{
		{
			Name: "performance", Score: perf, Points: 100,
			Detail: fmt.Sprintf("%d servers (soft limit %d)", f.Total, cfg.MCP.SoftLimit),
		},
		{
			Name: "parity", Score: parity, Points: 100,
			Detail: fmt.Sprintf("%d unique across %d hosts", f.Unique, configuredHosts(f)),
		},
	}
	cat.Score = clamp(int(math.Round(float64(perf)*w + float64(parity)*(1-w))))
	return cat
}

// MCPAdvisory returns a performance advisory when the performance score
// falls below the advisory threshold, or nil.
func MCPAdvisory(cfg domain.HealthConfig, f domain.MCPFacts) *domain.PerformanceAdvisory {
	if f.Total == 0 {
		return nil
	}
	perf := MCPPerformance(cfg, f.Total)
	if perf >= cfg.MCP.AdvisoryThreshold {
		return nil
	}
	return &domain.PerformanceAdvisory{
		Servers:        f.Total,
		Score:          perf,
		MemoryMB:       f.MemoryMB,
		StartupMs:      f.StartupMs,
		FailurePercent: f.FailurePercent,
	}
}

func configuredHosts(f domain.MCPFacts) int {
	n := 0
	for _, h := range f.Hosts {
		if h.Count() > 0 {
			n++
		}
	}
	return n
}
