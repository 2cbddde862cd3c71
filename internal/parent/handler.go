package parent

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/gamification"
	"github.com/ailo-learn/backend/internal/models"
	"github.com/gorilla/mux"
)

// InsightSource turns a student's performance summary into short
// natural-language insights for the parent dashboard.
type InsightSource interface {
	Recommend(ctx context.Context, summary models.PerformanceSummary) []string
}

type Handler struct {
	store    *Store
	gam      *gamification.Store
	insights InsightSource
	db       *sql.DB
}

func NewHandler(store *Store, gam *gamification.Store, insights InsightSource, db *sql.DB) *Handler {
	return &Handler{store: store, gam: gam, insights: insights, db: db}
}

// LinkParent connects the calling student to a parent account by email.
func (h *Handler) LinkParent(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.ParentLinkRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.ParentEmail = strings.TrimSpace(strings.ToLower(req.ParentEmail))
	if req.ParentEmail == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "parent_email is required"})
		return
	}
	if req.StudentID == "" {
		req.StudentID = userID
	}

	parentID, err := h.store.LookupParentByEmail(req.ParentEmail)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "No parent account with that email"})
		return
	}
	if err != nil {
		log.Printf("[parent] parent lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to link parent"})
		return
	}

	if err := h.store.CreateLink(parentID, req.StudentID); err != nil {
		log.Printf("[parent] link failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to link parent"})
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Parent linked successfully"})
}

// GetChildren lists the students linked to the calling parent.
func (h *Handler) GetChildren(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	if !h.requireParent(w, userID) {
		return
	}

	children, err := h.store.ListChildren(userID)
	if err != nil {
		log.Printf("[parent] list children failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load children"})
		return
	}

	writeJSON(w, http.StatusOK, children)
}

// GetStudentDashboard returns a linked student's weekly summary for the
// calling parent.
func (h *Handler) GetStudentDashboard(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	studentID := mux.Vars(r)["student_id"]

	if !h.requireParent(w, userID) {
		return
	}

	linked, err := h.store.IsLinked(userID, studentID)
	if err != nil {
		log.Printf("[parent] link check failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}
	if !linked {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not linked to this student"})
		return
	}

	student, err := h.store.GetStudentSummary(studentID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Student not found"})
		return
	}
	if err != nil {
		log.Printf("[parent] student lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load dashboard"})
		return
	}

	weekly, err := h.store.GetWeeklySummary(studentID)
	if err != nil {
		log.Printf("[parent] weekly summary failed: %v", err)
		weekly = &models.WeeklySummary{}
	}

	activity, err := h.gam.RecentActivity(studentID, 7)
	if err != nil {
		log.Printf("[parent] activity lookup failed: %v", err)
		activity = []models.ActivityEntry{}
	}

	writeJSON(w, http.StatusOK, models.StudentDashboard{
		Student:        *student,
		WeeklySummary:  *weekly,
		RecentActivity: activity,
		Insights:       h.studentInsights(r.Context(), student, weekly),
	})
}

// studentInsights asks the AI layer for insights about the student's week
// and falls back to locally derived ones when nothing comes back.
func (h *Handler) studentInsights(ctx context.Context, student *models.StudentSummary, weekly *models.WeeklySummary) []string {
	if h.insights != nil {
		ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
		defer cancel()
		summary := models.PerformanceSummary{
			AvgScore: weekly.AvgScore,
			Streak:   student.Streak,
		}
		if generated := h.insights.Recommend(ctx, summary); len(generated) > 0 {
			return generated
		}
	}
	return buildInsights(student, weekly)
}

func buildInsights(student *models.StudentSummary, weekly *models.WeeklySummary) []string {
	insights := []string{}
	if student.Streak >= 7 {
		insights = append(insights, fmt.Sprintf("%s has kept a %d-day study streak going. Great consistency!", student.FullName, student.Streak))
	} else if student.Streak == 0 {
		insights = append(insights, fmt.Sprintf("%s hasn't studied recently. A gentle nudge might help.", student.FullName))
	}
	if weekly.QuizzesTaken > 0 {
		if weekly.AvgScore >= 80 {
			insights = append(insights, fmt.Sprintf("Quiz scores are strong this week, averaging %.0f%%.", weekly.AvgScore))
		} else if weekly.AvgScore < 50 {
			insights = append(insights, fmt.Sprintf("Quiz scores averaged %.0f%% this week. Some topics may need review.", weekly.AvgScore))
		}
	}
	if weekly.TotalStudyMinutes == 0 {
		insights = append(insights, "No study time was recorded in the last seven days.")
	}
	return insights
}

func (h *Handler) requireParent(w http.ResponseWriter, userID string) bool {
	var role string
	err := h.db.QueryRow(`SELECT role FROM users WHERE user_id = $1`, userID).Scan(&role)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return false
	}
	if role != models.RoleParent {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Parent account required"})
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
