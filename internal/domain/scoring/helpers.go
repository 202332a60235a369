package scoring

import "github.com/seatbelt/seatbelt/internal/domain"

// clamp bounds a score to 0..100.
func clamp(score int) int {
	return max(0, min(score, 100))
}

// sumSubMetrics totals earned points and normalizes them to 0..100 against
// the available points.
func sumSubMetrics(sms []domain.SubMetric) int {
	var earned, total int
	for _, sm := range sms {
		earned += sm.Score
		total += sm.Points
	}
	if total == 0 {
		return 0
	}
	return clamp(earned * 100 / total)
}

func passFail(name string, points int, ok bool, pass, fail string) domain.SubMetric {
	sm := domain.SubMetric{Name: name, Points: points, Detail: fail}
	if ok {
		sm.Score = points
		sm.Detail = pass
	}
	return sm
}
