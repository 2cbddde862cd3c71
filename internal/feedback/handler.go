package feedback

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/models"
)

type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

// flagEscalationThreshold is the flag count at which a question is
// surfaced for review.
const flagEscalationThreshold = 3

func (h *Handler) FlagQuestion(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.FlagQuestionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if req.QuestionID == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "question_id is required"})
		return
	}
	if !models.ValidFlagTypes[req.FlagType] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid flag_type"})
		return
	}

	var exists bool
	if err := h.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM quiz_questions WHERE question_id = $1)`,
		req.QuestionID,
	).Scan(&exists); err != nil || !exists {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}

	if _, err := h.db.Exec(
		`INSERT INTO flagged_questions (user_id, question_id, quiz_id, flag_type, feedback)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, req.QuestionID, req.QuizID, req.FlagType, req.Feedback,
	); err != nil {
		log.Printf("[feedback] flag insert failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to flag question"})
		return
	}

	var flagCount int
	if err := h.db.QueryRow(
		`SELECT COUNT(*) FROM flagged_questions WHERE question_id = $1`,
		req.QuestionID,
	).Scan(&flagCount); err == nil && flagCount >= flagEscalationThreshold {
		log.Printf("[feedback] question %s has been flagged %d times, needs review", req.QuestionID, flagCount)
	}

	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Question flagged for review"})
}

func (h *Handler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.FeedbackRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	if strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Message is required"})
		return
	}
	if req.Category == "" {
		req.Category = "other"
	}
	if !models.ValidFeedbackCategories[req.Category] {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid category"})
		return
	}
	if req.Rating != nil && (*req.Rating < 1 || *req.Rating > 5) {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Rating must be between 1 and 5"})
		return
	}

	if _, err := h.db.Exec(
		`INSERT INTO feedback (user_id, category, message, rating, screenshot)
		 VALUES ($1, $2, $3, $4, $5)`,
		userID, req.Category, req.Message, req.Rating, req.Screenshot,
	); err != nil {
		log.Printf("[feedback] insert failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit feedback"})
		return
	}

	writeJSON(w, http.StatusCreated, models.MessageResponse{Message: "Thank you for your feedback"})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
