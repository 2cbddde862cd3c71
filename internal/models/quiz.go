package models

import "time"

type QuizQuestion struct {
	QuestionID    string   `json:"question_id"`
	TopicID       *string  `json:"topic_id,omitempty"`
	SubtopicID    *string  `json:"subtopic_id,omitempty"`
	ChapterID     *string  `json:"chapter_id,omitempty"`
	QuestionText  string   `json:"question_text"`
	Options       []string `json:"options"`
	CorrectAnswer string   `json:"-"`
	Explanation   string   `json:"explanation,omitempty"`
	Difficulty    string   `json:"difficulty"`
	TopicLabel    string   `json:"topic,omitempty"`
}

// QuizQuestionView is the client-facing question shape: no correct answer,
// no explanation.
type QuizQuestionView struct {
	QuestionID   string   `json:"question_id"`
	QuestionText string   `json:"question_text"`
	Options      []string `json:"options"`
	Difficulty   string   `json:"difficulty"`
	Topic        string   `json:"topic,omitempty"`
}

type QuizResponse struct {
	QuizID     string             `json:"quiz_id"`
	Title      string             `json:"title,omitempty"`
	SubtopicID string             `json:"subtopic_id,omitempty"`
	Questions  []QuizQuestionView `json:"questions"`
}

// ── New (subtopic-grained) surface ───────────────────────

type QuizAnswer struct {
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
}

type QuizSubmitRequest struct {
	QuizID     string       `json:"quiz_id"`
	SubtopicID string       `json:"subtopic_id"`
	Answers    []QuizAnswer `json:"answers"`
}

type QuizSubmitResponse struct {
	Score          float64 `json:"score"`
	CorrectCount   int     `json:"correct_count"`
	TotalQuestions int     `json:"total_questions"`
	XPEarned       int     `json:"xp_earned"`
	Message        string  `json:"message"`
}

// ── Legacy (chapter-grained) surface ─────────────────────

type QuizSubmission struct {
	QuizID     string `json:"quiz_id"`
	QuestionID string `json:"question_id"`
	UserAnswer string `json:"user_answer"`
	TimeTaken  *int   `json:"time_taken,omitempty"`
}

type SubmissionResponse struct {
	IsCorrect     bool   `json:"is_correct"`
	CorrectAnswer string `json:"correct_answer"`
	Explanation   string `json:"explanation"`
	XPGained      int    `json:"xp_gained"`
}

type QuizResultsResponse struct {
	QuizID               string        `json:"quiz_id"`
	Score                float64       `json:"score"`
	TotalQuestions       int           `json:"total_questions"`
	CorrectAnswers       int           `json:"correct_answers"`
	XPEarned             int           `json:"xp_earned"`
	Recommendations      []string      `json:"recommendations"`
	PerformanceBreakdown []QuizAttempt `json:"performance_breakdown"`
}

// QuizAttempt is one stored per-question response on the legacy surface.
type QuizAttempt struct {
	UserID        string    `json:"user_id"`
	QuizID        string    `json:"quiz_id"`
	QuestionID    string    `json:"question_id"`
	UserAnswer    string    `json:"user_answer"`
	CorrectAnswer string    `json:"correct_answer"`
	IsCorrect     bool      `json:"is_correct"`
	TimeTaken     *int      `json:"time_taken"`
	CreatedAt     time.Time `json:"created_at"`
}

// QuizResult is the persisted outcome of a batch submission on the new surface.
type QuizResult struct {
	UserID         string    `json:"user_id"`
	QuizID         string    `json:"quiz_id"`
	SubtopicID     string    `json:"subtopic_id"`
	Score          float64   `json:"score"`
	CorrectCount   int       `json:"correct_count"`
	TotalQuestions int       `json:"total_questions"`
	XPEarned       int       `json:"xp_earned"`
	CompletedAt    time.Time `json:"completed_at"`
}
