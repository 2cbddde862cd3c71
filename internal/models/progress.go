package models

import "time"

// TopicCompletionThreshold is the progress percentage at which a topic is
// considered completed. Subtopic completion is caller-supplied instead; the
// two code paths intentionally keep their historical semantics.
const TopicCompletionThreshold = 90.0

// ProgressRecord is one user's progress against a single content node.
// Keyed by (user_id, node_id); created on first update, never deleted.
type ProgressRecord struct {
	UserID    string    `json:"user_id"`
	NodeID    string    `json:"node_id"`
	Progress  float64   `json:"progress"`
	Completed bool      `json:"completed"`
	UpdatedAt time.Time `json:"updated_at"`
}

type TopicProgressRequest struct {
	Progress float64 `json:"progress"`
	Position int     `json:"position"`
}

type SubtopicProgressRequest struct {
	CurrentCard int  `json:"current_card"`
	Completed   bool `json:"completed"`
}

type ProgressUpdateResponse struct {
	Message  string `json:"message"`
	XPEarned int    `json:"xp_earned"`
}

// ActivityEntry is one day of recorded study activity.
type ActivityEntry struct {
	Date    string `json:"date"`
	Minutes int    `json:"minutes"`
}
