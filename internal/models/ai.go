package models

type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
}

type ChatResponse struct {
	Response string `json:"response"`
	Success  bool   `json:"success"`
	Error    string `json:"error,omitempty"`
}

// PerformanceSummary feeds the recommendation capability.
type PerformanceSummary struct {
	AvgScore     float64
	WeakTopics   []string
	StrongTopics []string
	Streak       int
}

type DashboardResponse struct {
	User            DashboardUser     `json:"user"`
	Progress        DashboardProgress `json:"progress"`
	DailyGoal       DashboardGoal     `json:"daily_goal"`
	Recommendations []string          `json:"recommendations"`
	RecentActivity  []ActivityEntry   `json:"recent_activity"`
}

type DashboardUser struct {
	FullName string `json:"full_name"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
	Streak   int    `json:"streak"`
}

type DashboardProgress struct {
	TotalChapters     int     `json:"total_chapters"`
	CompletedChapters int     `json:"completed_chapters"`
	Percentage        float64 `json:"percentage"`
}

type DashboardGoal struct {
	TargetMinutes    int `json:"target_minutes"`
	CompletedMinutes int `json:"completed_minutes"`
}
