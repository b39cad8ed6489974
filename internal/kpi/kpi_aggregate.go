package kpi

import "github.com/shopspring/decimal"

const (
	StatusPending    = "PENDING"
	StatusInProgress = "IN_PROGRESS"
	StatusCompleted  = "COMPLETED"
)

// ComputeSummary rolls a participant's assignments up into counts and the
// weighted achievement average.
//
// The weighted average is Σ(weight × achievement) / Σ(weight) over
// assignments with a recorded achievement only; assignments without one
// still count toward the tallies and total weight. When no assignment has
// an achievement the average is 0 rather than a division by zero.
func ComputeSummary(assignments []KpiAssignment) ParticipantSummary {
	summary := ParticipantSummary{TotalKpis: len(assignments)}

	totalWeight := decimal.Zero
	achievedWeight := decimal.Zero
	weightedSum := decimal.Zero

	for _, a := range assignments {
		switch a.Status {
		case StatusCompleted:
			summary.CompletedKpis++
		case StatusInProgress:
			summary.InProgressKpis++
		default:
			summary.PendingKpis++
		}

		totalWeight = totalWeight.Add(a.Weight)

		if a.AchievementPercentage != nil {
			achievedWeight = achievedWeight.Add(a.Weight)
			weightedSum = weightedSum.Add(a.Weight.Mul(*a.AchievementPercentage))
		}
	}

	summary.TotalWeight = totalWeight.InexactFloat64()

	if achievedWeight.IsPositive() {
		summary.WeightedAverageAchievement = weightedSum.
			Div(achievedWeight).
			Round(2).
			InexactFloat64()
	}

	return summary
}
