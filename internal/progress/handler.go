package progress

import (
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

func (h *Handler) UpdateTopicProgress(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	topicID := mux.Vars(r)["topic_id"]

	var req models.TopicProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.UpdateTopicProgress(userID, topicID, req)
	if err == ErrNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Topic not found"})
		return
	}
	if err != nil {
		log.Printf("[progress] topic update failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update progress"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func (h *Handler) UpdateSubtopicProgress(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	subtopicID := mux.Vars(r)["subtopic_id"]

	var req models.SubtopicProgressRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	resp, err := h.service.UpdateSubtopicProgress(userID, subtopicID, req)
	if err == ErrNotFound {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Subtopic not found"})
		return
	}
	if err != nil {
		log.Printf("[progress] subtopic update failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to update progress"})
		return
	}

	writeJSON(w, http.StatusOK, resp)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
