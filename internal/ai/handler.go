package ai

import (
	"context"
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/gamification"
	"github.com/ailo-learn/backend/internal/models"
)

// PerformanceSource supplies the quiz performance summary that feeds
// recommendations.
type PerformanceSource interface {
	PerformanceSummary(userID string) models.PerformanceSummary
}

type Handler struct {
	client      *Client
	db          *sql.DB
	gam         *gamification.Store
	performance PerformanceSource
}

func NewHandler(client *Client, db *sql.DB, gam *gamification.Store, performance PerformanceSource) *Handler {
	return &Handler{client: client, db: db, gam: gam, performance: performance}
}

func (h *Handler) Chat(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.ChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Message is required"})
		return
	}

	response, err := h.client.Chat(r.Context(), req.Message, req.Context)
	if err != nil {
		writeJSON(w, http.StatusOK, models.ChatResponse{Success: false, Error: "Chat is unavailable right now"})
		return
	}

	if _, err := h.db.Exec(
		`INSERT INTO chat_history (user_id, message, response, context) VALUES ($1, $2, $3, $4)`,
		userID, req.Message, response, req.Context,
	); err != nil {
		log.Printf("[ai] failed to store chat history: %v", err)
	}

	writeJSON(w, http.StatusOK, models.ChatResponse{Response: response, Success: true})
}

// GetRecommendations returns study suggestions for the calling user.
func (h *Handler) GetRecommendations(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	summary := h.performance.PerformanceSummary(userID)
	summary.Streak = h.currentStreak(userID)

	writeJSON(w, http.StatusOK, map[string][]string{
		"recommendations": h.client.Recommend(r.Context(), summary),
	})
}

// GetDashboard assembles the home screen payload.
func (h *Handler) GetDashboard(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := auth.GetUserByID(h.db, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	var totalChapters, completedChapters int
	if err := h.db.QueryRow(`SELECT COUNT(*) FROM chapters`).Scan(&totalChapters); err != nil {
		log.Printf("[ai] chapter count failed: %v", err)
	}
	if err := h.db.QueryRow(
		`SELECT COUNT(*) FROM chapter_progress WHERE user_id = $1 AND completed`,
		userID,
	).Scan(&completedChapters); err != nil {
		log.Printf("[ai] completed chapter count failed: %v", err)
	}

	var pct float64
	if totalChapters > 0 {
		pct = float64(completedChapters) / float64(totalChapters) * 100
	}

	var minutesToday int
	if err := h.db.QueryRow(
		`SELECT COALESCE(minutes, 0) FROM user_activity WHERE user_id = $1 AND activity_date = CURRENT_DATE`,
		userID,
	).Scan(&minutesToday); err != nil && err != sql.ErrNoRows {
		log.Printf("[ai] today's activity lookup failed: %v", err)
	}

	activity, err := h.gam.RecentActivity(userID, 7)
	if err != nil {
		log.Printf("[ai] recent activity failed: %v", err)
		activity = []models.ActivityEntry{}
	}

	summary := h.performance.PerformanceSummary(userID)
	summary.Streak = user.Streak

	// Keep the dashboard fast even when a model provider is slow.
	ctx, cancel := context.WithTimeout(r.Context(), 5*time.Second)
	defer cancel()

	writeJSON(w, http.StatusOK, models.DashboardResponse{
		User: models.DashboardUser{
			FullName: user.FullName,
			XP:       user.XP,
			Level:    user.Level,
			Streak:   user.Streak,
		},
		Progress: models.DashboardProgress{
			TotalChapters:     totalChapters,
			CompletedChapters: completedChapters,
			Percentage:        pct,
		},
		DailyGoal: models.DashboardGoal{
			TargetMinutes:    user.DailyGoalMinutes,
			CompletedMinutes: minutesToday,
		},
		Recommendations: h.client.Recommend(ctx, summary),
		RecentActivity:  activity,
	})
}

func (h *Handler) currentStreak(userID string) int {
	var streak int
	if err := h.db.QueryRow(`SELECT streak FROM users WHERE user_id = $1`, userID).Scan(&streak); err != nil {
		return 0
	}
	return streak
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
