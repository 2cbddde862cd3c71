package models

type ParentLinkRequest struct {
	ParentEmail string `json:"parent_email"`
	StudentID   string `json:"student_id"`
}

type ChildSummary struct {
	StudentID string  `json:"student_id"`
	FullName  string  `json:"full_name"`
	Grade     *string `json:"grade"`
	School    *string `json:"school"`
}

type StudentDashboard struct {
	Student        StudentSummary  `json:"student"`
	WeeklySummary  WeeklySummary   `json:"weekly_summary"`
	RecentActivity []ActivityEntry `json:"recent_activity"`
	Insights       []string        `json:"insights"`
}

type StudentSummary struct {
	FullName string  `json:"full_name"`
	Grade    *string `json:"grade"`
	Streak   int     `json:"streak"`
	XP       int64   `json:"xp"`
	Level    int     `json:"level"`
}

type WeeklySummary struct {
	TotalStudyMinutes int     `json:"total_study_minutes"`
	QuizzesTaken      int     `json:"quizzes_taken"`
	AvgScore          float64 `json:"avg_score"`
	ChaptersCompleted int     `json:"chapters_completed"`
}
