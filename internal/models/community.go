package models

import "time"

type StudyGroup struct {
	GroupID     string    `json:"group_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	MaxMembers  int       `json:"max_members"`
	CreatedBy   string    `json:"created_by"`
	CreatedAt   time.Time `json:"created_at"`
}

type CreateGroupRequest struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	MaxMembers  int    `json:"max_members"`
}

type GroupSummary struct {
	GroupID     string `json:"group_id"`
	Name        string `json:"name"`
	Description string `json:"description"`
	MemberCount int    `json:"member_count"`
	MaxMembers  int    `json:"max_members"`
	IsMember    bool   `json:"is_member"`
}

type GroupMessageRequest struct {
	Message string `json:"message"`
}

type GroupMessage struct {
	MessageID string    `json:"message_id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	UserName  string    `json:"user_name"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}

type LeaderboardEntry struct {
	Rank     int    `json:"rank"`
	UserID   string `json:"user_id"`
	FullName string `json:"full_name"`
	XP       int64  `json:"xp"`
	Level    int    `json:"level"`
}

type LeaderboardResponse struct {
	TopUsers        []LeaderboardEntry `json:"top_users"`
	CurrentUserRank int                `json:"current_user_rank"`
	CurrentUserXP   int64              `json:"current_user_xp"`
}
