package community

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"strings"

	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/gamification"
	"github.com/ailo-learn/backend/internal/models"
	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

const leaderboardSize = 10

type Handler struct {
	store *Store
	gam   *gamification.Store
}

func NewHandler(store *Store, gam *gamification.Store) *Handler {
	return &Handler{store: store, gam: gam}
}

// ── Leaderboard ─────────────────────────────────────────

func (h *Handler) GetLeaderboard(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	top, err := h.gam.TopByXP(leaderboardSize)
	if err != nil {
		log.Printf("[community] leaderboard failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load leaderboard"})
		return
	}

	rank, xp, err := h.gam.UserRank(userID)
	if err != nil {
		log.Printf("[community] rank lookup failed: %v", err)
	}

	writeJSON(w, http.StatusOK, models.LeaderboardResponse{
		TopUsers:        top,
		CurrentUserRank: rank,
		CurrentUserXP:   xp,
	})
}

// ── Study groups ────────────────────────────────────────

func (h *Handler) CreateGroup(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var req models.CreateGroupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Name = strings.TrimSpace(req.Name)
	if req.Name == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Group name is required"})
		return
	}
	if req.MaxMembers <= 0 {
		req.MaxMembers = 10
	}

	group := models.StudyGroup{
		GroupID:     uuid.NewString(),
		Name:        req.Name,
		Description: req.Description,
		MaxMembers:  req.MaxMembers,
		CreatedBy:   userID,
	}

	if err := h.store.CreateGroup(group); err != nil {
		log.Printf("[community] create group failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create group"})
		return
	}

	// Creator joins automatically as owner.
	if err := h.store.AddMember(group.GroupID, userID, "owner"); err != nil {
		log.Printf("[community] failed to add creator to group %s: %v", group.GroupID, err)
	}

	writeJSON(w, http.StatusCreated, group)
}

func (h *Handler) ListGroups(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	groups, err := h.store.ListGroups(userID)
	if err != nil {
		log.Printf("[community] list groups failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load groups"})
		return
	}

	writeJSON(w, http.StatusOK, groups)
}

func (h *Handler) JoinGroup(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	groupID := mux.Vars(r)["group_id"]

	maxMembers, memberCount, err := h.store.GetGroupCapacity(groupID)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "Group not found"})
		return
	}
	if err != nil {
		log.Printf("[community] group lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to join group"})
		return
	}

	member, err := h.store.IsMember(groupID, userID)
	if err == nil && member {
		writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Already a member"})
		return
	}

	if memberCount >= maxMembers {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Group is full"})
		return
	}

	if err := h.store.AddMember(groupID, userID, "member"); err != nil {
		log.Printf("[community] join group failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to join group"})
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Joined group"})
}

func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	groupID := mux.Vars(r)["group_id"]

	member, err := h.store.IsMember(groupID, userID)
	if err != nil {
		log.Printf("[community] membership check failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to post message"})
		return
	}
	if !member {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not a member of this group"})
		return
	}

	var req models.GroupMessageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || strings.TrimSpace(req.Message) == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Message is required"})
		return
	}

	msg, err := h.store.AddMessage(groupID, userID, req.Message)
	if err != nil {
		log.Printf("[community] post message failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to post message"})
		return
	}

	writeJSON(w, http.StatusCreated, msg)
}

func (h *Handler) GetMessages(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())
	groupID := mux.Vars(r)["group_id"]

	member, err := h.store.IsMember(groupID, userID)
	if err != nil {
		log.Printf("[community] membership check failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load messages"})
		return
	}
	if !member {
		writeJSON(w, http.StatusForbidden, models.ErrorResponse{Error: "Not a member of this group"})
		return
	}

	messages, err := h.store.ListMessages(groupID, 50)
	if err != nil {
		log.Printf("[community] list messages failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load messages"})
		return
	}

	writeJSON(w, http.StatusOK, messages)
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
