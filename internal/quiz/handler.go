package quiz

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"

	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/models"
	"github.com/gorilla/mux"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) GetSubtopicQuiz(w http.ResponseWriter, r *http.Request) {
	subtopicID := mux.Vars(r)["subtopic_id"]

	resp, err := h.service.SubtopicQuiz(subtopicID)
	if err != nil {
		log.Printf("[quiz] subtopic quiz failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetChapterQuiz(w http.ResponseWriter, r *http.Request) {
	chapterID := mux.Vars(r)["chapter_id"]

	resp, err := h.service.ChapterQuiz(chapterID)
	if err != nil {
		log.Printf("[quiz] chapter quiz failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetDailyChallenge(w http.ResponseWriter, r *http.Request) {
	resp, err := h.service.DailyChallenge()
	if err != nil {
		log.Printf("[quiz] daily challenge failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load quiz"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitQuiz(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.QuizSubmitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.Submit(userID, req)
	if err != nil {
		log.Printf("[quiz] submit failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit quiz"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) SubmitAnswer(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var sub models.QuizSubmission
	if err := json.NewDecoder(r.Body).Decode(&sub); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.SubmitAnswer(userID, sub)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Question not found"})
		return
	}
	if err != nil {
		log.Printf("[quiz] submit answer failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to submit answer"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) GetResults(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	quizID := mux.Vars(r)["quiz_id"]

	resp, err := h.service.Results(r.Context(), userID, quizID)
	if err != nil {
		log.Printf("[quiz] results failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load results"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
