package content

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
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

func (h *Handler) GetChapters(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	chapters, err := h.store.ListChapters(userID)
	if err != nil {
		log.Printf("[content] list chapters failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load chapters"})
		return
	}

	writeJSON(w, http.StatusOK, chapters)
}

func (h *Handler) GetChapterTopics(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	chapterID := mux.Vars(r)["chapter_id"]

	exists, err := h.store.ChapterExists(chapterID)
	if err != nil {
		log.Printf("[content] chapter lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load chapter"})
		return
	}
	if !exists {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Chapter not found"})
		return
	}

	topics, err := h.store.ListTopics(userID, chapterID)
	if err != nil {
		log.Printf("[content] list topics failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load topics"})
		return
	}

	writeJSON(w, http.StatusOK, topics)
}

func (h *Handler) GetTopicSubtopics(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	topicID := mux.Vars(r)["topic_id"]

	topic, err := h.store.GetTopicSummary(topicID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Topic not found"})
		return
	}
	if err != nil {
		log.Printf("[content] topic lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load topic"})
		return
	}

	subtopics, err := h.store.ListSubtopics(userID, topicID)
	if err != nil {
		log.Printf("[content] list subtopics failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load subtopics"})
		return
	}

	writeJSON(w, http.StatusOK, models.TopicSubtopicsResponse{Topic: *topic, Subtopics: subtopics})
}

func (h *Handler) GetSubtopicMicrocontent(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	subtopicID := mux.Vars(r)["subtopic_id"]

	subtopic, err := h.store.GetSubtopicSummary(subtopicID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Subtopic not found"})
		return
	}
	if err != nil {
		log.Printf("[content] subtopic lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load subtopic"})
		return
	}

	cards, err := h.store.ListCards(subtopicID)
	if err != nil {
		log.Printf("[content] list cards failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load content"})
		return
	}

	currentCard, err := h.store.CurrentCard(userID, subtopicID)
	if err != nil {
		log.Printf("[content] card position lookup failed: %v", err)
		currentCard = 0
	}

	writeJSON(w, http.StatusOK, models.MicrocontentResponse{
		Subtopic:   *subtopic,
		Cards:      cards,
		Progress:   currentCard,
		TotalCards: len(cards),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
