package kpi

type AssignKpiRequest struct {
	ParticipantID string  `json:"participant_id" binding:"required,uuid"`
	Title         string  `json:"title" binding:"required"`
	Weight        float64 `json:"weight" binding:"required,gt=0"`
}

type RecordProgressRequest struct {
	AchievementPercentage float64 `json:"achievement_percentage" binding:"min=0,max=200"`
	Status                string  `json:"status" binding:"required,oneof=IN_PROGRESS COMPLETED"`
}

type KpiAssignmentResponse struct {
	ID                    string   `json:"id"`
	ParticipantID         string   `json:"participant_id"`
	Title                 string   `json:"title"`
	Weight                float64  `json:"weight"`
	AchievementPercentage *float64 `json:"achievement_percentage,omitempty"`
	Status                string   `json:"status"`
}

// ParticipantSummary is the derived roll-up over a participant's KPI set.
type ParticipantSummary struct {
	TotalKpis                  int     `json:"total_kpis"`
	CompletedKpis              int     `json:"completed_kpis"`
	PendingKpis                int     `json:"pending_kpis"`
	InProgressKpis             int     `json:"in_progress_kpis"`
	TotalWeight                float64 `json:"total_weight"`
	WeightedAverageAchievement float64 `json:"weighted_average_achievement"`
}

type ParticipantSummaryResponse struct {
	ParticipantID string                  `json:"participant_id"`
	Kpis          []KpiAssignmentResponse `json:"kpis"`
	Summary       ParticipantSummary      `json:"summary"`
}
