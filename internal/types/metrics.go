package types

// TrendPoint is one point of the synthetic readiness trend series.
type TrendPoint struct {
	Label string `json:"label"` // e.g. "Mar 2024"
	Score int    `json:"score"`
}

// DerivedMetrics is the dashboard health snapshot computed from a profile
// and task list pair. Recomputed on every read, never authoritative.
type DerivedMetrics struct {
	ProfileStrength int     `json:"profile_strength"` // 0-100
	CompletionRate  int     `json:"completion_rate"`  // 0-100
	CompletedTasks  int     `json:"completed_tasks"`
	TotalTasks      int     `json:"total_tasks"`
	LearningHours   float64 `json:"learning_hours"`
	ReadinessScore  int     `json:"readiness_score"` // 0-100

	// HoursThisWeek is a display placeholder (20% of total hours, floored
	// at 1 when any hours exist). Task completions are not timestamped, so
	// this is not ground truth.
	HoursThisWeek float64 `json:"hours_this_week"`

	Trend []TrendPoint `json:"trend"`
}
