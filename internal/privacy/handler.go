package privacy

import (
	"database/sql"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/ailo-learn/backend/internal/auth"
	"github.com/ailo-learn/backend/internal/models"
)

// deletionGraceDays is the notice period before a deletion request is
// carried out.
const deletionGraceDays = 30

type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) GetSettings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	var s models.PrivacySettings
	err := h.db.QueryRow(
		`SELECT data_collection, data_sharing, personalized_ads, analytics
		 FROM privacy_settings WHERE user_id = $1`,
		userID,
	).Scan(&s.DataCollection, &s.DataSharing, &s.PersonalizedAds, &s.Analytics)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusOK, models.DefaultPrivacySettings())
		return
	}
	if err != nil {
		log.Printf("[privacy] settings lookup failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to load settings"})
		return
	}

	writeJSON(w, http.StatusOK, s)
}

func (h *Handler) UpdateSettings(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	s := models.DefaultPrivacySettings()
	if err := json.NewDecoder(r.Body).Decode(&s); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	_, err := h.db.Exec(
		`INSERT INTO privacy_settings (user_id, data_collection, data_sharing, personalized_ads, analytics)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id)
		 DO UPDATE SET data_collection = EXCLUDED.data_collection,
		               data_sharing = EXCLUDED.data_sharing,
		               personalized_ads = EXCLUDED.personalized_ads,
		               analytics = EXCLUDED.analytics,
		               updated_at = NOW()`,
		userID, s.DataCollection, s.DataSharing, s.PersonalizedAds, s.Analytics,
	)
	if err != nil {
		log.Printf("[privacy] settings update failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save settings"})
		return
	}

	writeJSON(w, http.StatusOK, s)
}

// ExportData returns everything stored about the calling user.
func (h *Handler) ExportData(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	user, err := auth.GetUserByID(h.db, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	export := map[string]interface{}{
		"user":          user,
		"exported_at":   time.Now().UTC().Format(time.RFC3339),
		"progress":      h.collectRows(userID, `SELECT topic_id, progress, completed, updated_at FROM topic_progress WHERE user_id = $1`, "topic_id", "progress", "completed", "updated_at"),
		"quiz_results":  h.collectRows(userID, `SELECT quiz_id, score, correct_count, total_questions, completed_at FROM quiz_results WHERE user_id = $1`, "quiz_id", "score", "correct_count", "total_questions", "completed_at"),
		"xp_events":     h.collectRows(userID, `SELECT event_type, xp_amount, created_at FROM xp_events WHERE user_id = $1`, "event_type", "xp_amount", "created_at"),
		"study_minutes": h.collectRows(userID, `SELECT activity_date, minutes FROM user_activity WHERE user_id = $1`, "activity_date", "minutes"),
	}

	writeJSON(w, http.StatusOK, export)
}

func (h *Handler) collectRows(userID, query string, cols ...string) []map[string]interface{} {
	out := []map[string]interface{}{}
	rows, err := h.db.Query(query, userID)
	if err != nil {
		log.Printf("[privacy] export query failed: %v", err)
		return out
	}
	defer rows.Close()

	for rows.Next() {
		vals := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range vals {
			ptrs[i] = &vals[i]
		}
		if err := rows.Scan(ptrs...); err != nil {
			continue
		}
		row := make(map[string]interface{}, len(cols))
		for i, c := range cols {
			row[c] = vals[i]
		}
		out = append(out, row)
	}
	return out
}

// DeleteAccount marks the account for deletion after a grace period.
// Data stays in place until the period elapses so the user can change
// their mind by contacting support.
func (h *Handler) DeleteAccount(w http.ResponseWriter, r *http.Request) {
	userID := auth.UserID(r.Context())

	deletionDate := time.Now().UTC().AddDate(0, 0, deletionGraceDays)

	result, err := h.db.Exec(
		`UPDATE users SET status = 'pending_deletion', deleted_at = $2, updated_at = NOW()
		 WHERE user_id = $1 AND status = 'active'`,
		userID, deletionDate,
	)
	if err != nil {
		log.Printf("[privacy] delete request failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to process deletion request"})
		return
	}
	if n, _ := result.RowsAffected(); n == 0 {
		writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Deletion already requested"})
		return
	}

	writeJSON(w, http.StatusOK, models.DeletionResponse{
		Message:      "Your account is scheduled for deletion. Contact support to cancel.",
		DeletionDate: deletionDate.Format("2006-01-02"),
	})
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
