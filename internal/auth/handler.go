package auth

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"log"
	"math/rand"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/ailo-learn/backend/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"
)

// JWTSecret is the HMAC signing key for auth tokens.
// This is a server-side secret — it never leaves the backend.
var JWTSecret = []byte(secretFromEnv())

func secretFromEnv() string {
	if s := os.Getenv("SECRET_KEY"); s != "" {
		return s
	}
	return "ailo-secret-key-change-in-production"
}

const tokenTTL = 7 * 24 * time.Hour

type Handler struct {
	db *sql.DB
}

func NewHandler(db *sql.DB) *Handler {
	return &Handler{db: db}
}

func (h *Handler) Signup(w http.ResponseWriter, r *http.Request) {
	var req models.SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}
	if req.FullName == "" {
		req.FullName = "User"
	}
	if req.Role == "" {
		req.Role = models.RoleStudent
	}
	if req.Role != models.RoleStudent && req.Role != models.RoleParent && req.Role != models.RoleTeacher {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "role must be student, parent, or teacher"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	userID := uuid.NewString()

	var user models.User
	err = h.db.QueryRow(
		`INSERT INTO users (user_id, email, mobile, password, full_name, role, terms_accepted, privacy_accepted)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		 RETURNING user_id, email, mobile, full_name, role, terms_accepted, privacy_accepted,
		           email_verified, onboarding_completed, xp, level, streak,
		           daily_goal_minutes, total_study_time, created_at, updated_at`,
		userID, req.Email, req.Mobile, string(hashedPassword), req.FullName, req.Role,
		req.TermsAccepted, req.PrivacyAccepted,
	).Scan(&user.UserID, &user.Email, &user.Mobile, &user.FullName, &user.Role,
		&user.TermsAccepted, &user.PrivacyAccepted, &user.EmailVerified,
		&user.OnboardingCompleted, &user.XP, &user.Level, &user.Streak,
		&user.DailyGoalMinutes, &user.TotalStudyTime, &user.CreatedAt, &user.UpdatedAt)

	if err != nil {
		if strings.Contains(err.Error(), "duplicate key") {
			writeJSON(w, http.StatusConflict, models.ErrorResponse{Error: "Email already registered"})
			return
		}
		log.Printf("[auth] signup insert failed: %v", err)
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to create account"})
		return
	}
	user.StudyPreferences = []string{}

	// Issue a one-time verification code. Delivery is out of scope; it is
	// logged for now, mirroring the staging setup.
	otp := generateOTP()
	if _, err := h.db.Exec(
		`INSERT INTO otps (user_id, otp, expires_at) VALUES ($1, $2, $3)`,
		userID, otp, time.Now().Add(10*time.Minute),
	); err != nil {
		log.Printf("[auth] failed to store OTP for %s: %v", req.Email, err)
	} else {
		log.Printf("[auth] generated OTP for %s: %s", req.Email, otp)
	}

	token, err := GenerateToken(userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusCreated, models.AuthResponse{AccessToken: token, TokenType: "bearer", User: user})
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if req.Email == "" || req.Password == "" {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Email and password are required"})
		return
	}

	user, hashedPassword, err := h.getUserByEmail(req.Email)
	if err == sql.ErrNoRows {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
		return
	}
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Internal server error"})
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hashedPassword), []byte(req.Password)); err != nil {
		writeJSON(w, http.StatusUnauthorized, models.ErrorResponse{Error: "Invalid credentials"})
		return
	}

	token, err := GenerateToken(user.UserID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to generate token"})
		return
	}

	writeJSON(w, http.StatusOK, models.AuthResponse{AccessToken: token, TokenType: "bearer", User: *user})
}

func (h *Handler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	var otpID int64
	err := h.db.QueryRow(
		`SELECT id FROM otps WHERE user_id = $1 AND otp = $2 AND expires_at > NOW()`,
		req.UserID, req.OTP,
	).Scan(&otpID)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid or expired OTP"})
		return
	}

	if _, err := h.db.Exec(`UPDATE users SET email_verified = TRUE, updated_at = NOW() WHERE user_id = $1`, req.UserID); err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to verify email"})
		return
	}
	h.db.Exec(`DELETE FROM otps WHERE id = $1`, otpID)

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Email verified successfully"})
}

func (h *Handler) GetCurrentUser(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	user, err := GetUserByID(h.db, userID)
	if err != nil {
		writeJSON(w, http.StatusNotFound, models.ErrorResponse{Error: "User not found"})
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// ── Onboarding ──────────────────────────────────────────

func (h *Handler) SubmitOnboardingQuiz(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	var responses []models.OnboardingAnswer
	if err := json.NewDecoder(r.Body).Decode(&responses); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}

	for _, resp := range responses {
		if _, err := h.db.Exec(
			`INSERT INTO onboarding_responses (user_id, question_id, answer) VALUES ($1, $2, $3)`,
			userID, resp.QuestionID, resp.Answer,
		); err != nil {
			log.Printf("[auth] failed to store onboarding response: %v", err)
			writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to save responses"})
			return
		}
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Quiz responses saved"})
}

func (h *Handler) SetGoal(w http.ResponseWriter, r *http.Request) {
	userID := UserID(r.Context())

	var req models.GoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, models.ErrorResponse{Error: "Invalid request body"})
		return
	}
	if req.DailyGoalMinutes <= 0 {
		req.DailyGoalMinutes = 30
	}

	_, err := h.db.Exec(
		`UPDATE users SET daily_goal_minutes = $2, study_preferences = $3,
		        onboarding_completed = TRUE, updated_at = NOW()
		 WHERE user_id = $1`,
		userID, req.DailyGoalMinutes, pq.Array(req.StudyPreferences),
	)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, models.ErrorResponse{Error: "Failed to set goal"})
		return
	}

	writeJSON(w, http.StatusOK, models.MessageResponse{Message: "Goal set successfully"})
}

// ── Helpers ─────────────────────────────────────────────

func (h *Handler) getUserByEmail(email string) (*models.User, string, error) {
	var user models.User
	var hashedPassword string
	var prefs []string
	err := h.db.QueryRow(
		`SELECT user_id, email, mobile, password, full_name, role, terms_accepted, privacy_accepted,
		        email_verified, onboarding_completed, xp, level, streak,
		        daily_goal_minutes, study_preferences, total_study_time, grade, school,
		        created_at, updated_at
		 FROM users WHERE email = $1`,
		email,
	).Scan(&user.UserID, &user.Email, &user.Mobile, &hashedPassword, &user.FullName, &user.Role,
		&user.TermsAccepted, &user.PrivacyAccepted, &user.EmailVerified, &user.OnboardingCompleted,
		&user.XP, &user.Level, &user.Streak, &user.DailyGoalMinutes, pq.Array(&prefs),
		&user.TotalStudyTime, &user.Grade, &user.School, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, "", err
	}
	user.StudyPreferences = prefs
	if user.StudyPreferences == nil {
		user.StudyPreferences = []string{}
	}
	return &user, hashedPassword, nil
}

// GetUserByID loads a user row without the password hash.
func GetUserByID(db *sql.DB, userID string) (*models.User, error) {
	var user models.User
	var prefs []string
	err := db.QueryRow(
		`SELECT user_id, email, mobile, full_name, role, terms_accepted, privacy_accepted,
		        email_verified, onboarding_completed, xp, level, streak,
		        daily_goal_minutes, study_preferences, total_study_time, grade, school,
		        created_at, updated_at
		 FROM users WHERE user_id = $1`,
		userID,
	).Scan(&user.UserID, &user.Email, &user.Mobile, &user.FullName, &user.Role,
		&user.TermsAccepted, &user.PrivacyAccepted, &user.EmailVerified, &user.OnboardingCompleted,
		&user.XP, &user.Level, &user.Streak, &user.DailyGoalMinutes, pq.Array(&prefs),
		&user.TotalStudyTime, &user.Grade, &user.School, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	user.StudyPreferences = prefs
	if user.StudyPreferences == nil {
		user.StudyPreferences = []string{}
	}
	return &user, nil
}

// GenerateToken signs a bearer token for the given user.
func GenerateToken(userID string) (string, error) {
	claims := jwt.MapClaims{
		"sub": userID,
		"exp": time.Now().Add(tokenTTL).Unix(),
		"iat": time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(JWTSecret)
}

var otpRng = rand.New(rand.NewSource(time.Now().UnixNano()))

func generateOTP() string {
	return fmt.Sprintf("%06d", otpRng.Intn(1000000))
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}
