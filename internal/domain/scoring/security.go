package scoring

import (
	"fmt"
	"strings"

	"github.com/seatbelt/seatbelt/internal/domain"
)

// ScoreSecurity starts at 100 and subtracts a fixed penalty per finding,
// flooring at 0. A project without a secrets file has nothing to leak and
// keeps the maximum.
func ScoreSecurity(cfg domain.HealthConfig, f domain.SecurityFacts) domain.CategoryScore {
	cat := domain.CategoryScore{
		Name:   domain.CategorySecurity,
		Weight: cfg.Weight(domain.CategorySecurity),
	}
	p := cfg.Security
	score := 100

	protected := domain.SubMetric{Name: "secrets_file_protected", Points: p.UnprotectedSecretsPenalty}
	switch {
	case !f.SecretsFileExists:
		protected.Score = protected.Points
		protected.Detail = fmt.Sprintf("no %s", f.SecretsFile)
	case f.SecretsFileIgnored:
		protected.Score = protected.Points
		protected.Detail = fmt.Sprintf("%s protected by .gitignore", f.SecretsFile)
	default:
		score -= p.UnprotectedSecretsPenalty
		protected.Detail = fmt.Sprintf("%s is not in .gitignore", f.SecretsFile)
	}

	tracked := passFail("secrets_file_untracked", p.TrackedSecretsPenalty, !f.SecretsFileTracked,
		"not committed", fmt.Sprintf("%s is tracked by git", f.SecretsFile))
	if f.SecretsFileTracked {
		score -= p.TrackedSecretsPenalty
	}

	exposure := domain.SubMetric{Name: "client_exposure", Points: p.ExposureViolationPenalty}
	switch n := len(f.Violations); {
	case n > 0:
		score -= n * p.ExposureViolationPenalty
		exposure.Detail = fmt.Sprintf("%d violations: %s", n, strings.Join(f.Violations, ", "))
		if f.UnparsableLines > 0 {
			exposure.Detail += fmt.Sprintf(" (%d unparsable lines)", f.UnparsableLines)
		}
	case f.UnparsableLines > 0:
		// An unreadable line may hide an exposed key.
		score -= p.ExposureViolationPenalty
		exposure.Detail = fmt.Sprintf("%d unparsable lines in %s", f.UnparsableLines, f.SecretsFile)
	default:
		exposure.Score = exposure.Points
		exposure.Detail = "no violations"
	}

	cat.SubMetrics = []domain.SubMetric{protected, tracked, exposure}
	cat.Score = clamp(score)
	return cat
}
