package models

import "time"

// User roles. Role gates the parent-only and student-only endpoints.
const (
	RoleStudent = "student"
	RoleParent  = "parent"
	RoleTeacher = "teacher"
)

type User struct {
	UserID              string     `json:"user_id"`
	Email               string     `json:"email"`
	Mobile              string     `json:"mobile,omitempty"`
	FullName            string     `json:"full_name"`
	Role                string     `json:"role"`
	Password            string     `json:"-"`
	TermsAccepted       bool       `json:"terms_accepted"`
	PrivacyAccepted     bool       `json:"privacy_accepted"`
	EmailVerified       bool       `json:"email_verified"`
	OnboardingCompleted bool       `json:"onboarding_completed"`
	XP                  int64      `json:"xp"`
	Level               int        `json:"level"`
	Streak              int        `json:"streak"`
	LastActiveDate      *time.Time `json:"-"`
	DailyGoalMinutes    int        `json:"daily_goal_minutes"`
	StudyPreferences    []string   `json:"study_preferences"`
	TotalStudyTime      int        `json:"total_study_time"`
	Grade               *string    `json:"grade,omitempty"`
	School              *string    `json:"school,omitempty"`
	Status              string     `json:"status,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}

type SignupRequest struct {
	Email           string `json:"email"`
	Mobile          string `json:"mobile"`
	Password        string `json:"password"`
	FullName        string `json:"full_name"`
	Role            string `json:"role"`
	TermsAccepted   bool   `json:"terms_accepted"`
	PrivacyAccepted bool   `json:"privacy_accepted"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type AuthResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	User        User   `json:"user"`
}

type VerifyOTPRequest struct {
	UserID string `json:"user_id"`
	OTP    string `json:"otp"`
}

type OnboardingAnswer struct {
	QuestionID string `json:"question_id"`
	Answer     string `json:"answer"`
}

type GoalRequest struct {
	DailyGoalMinutes int      `json:"daily_goal_minutes"`
	StudyPreferences []string `json:"study_preferences"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}

type MessageResponse struct {
	Message string `json:"message"`
}
