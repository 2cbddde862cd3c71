package gamification

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/ailo-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// AddXP increments the user's XP counter atomically.
func (s *Store) AddXP(userID string, amount int) error {
	_, err := s.db.Exec(
		`UPDATE users SET xp = xp + $2, updated_at = NOW() WHERE user_id = $1`,
		userID, amount,
	)
	return err
}

// LogXPEvent appends an entry to the XP ledger. Logging failures are
// returned but callers treat them as non-fatal.
func (s *Store) LogXPEvent(userID, eventType string, amount int, metadata map[string]interface{}) error {
	var metaJSON []byte
	if metadata != nil {
		metaJSON, _ = json.Marshal(metadata)
	}
	_, err := s.db.Exec(
		`INSERT INTO xp_events (user_id, event_type, xp_amount, metadata) VALUES ($1, $2, $3, $4)`,
		userID, eventType, amount, metaJSON,
	)
	return err
}

func (s *Store) GetStreakState(userID string) (int, *time.Time, error) {
	var streak int
	var lastActive *time.Time
	err := s.db.QueryRow(
		`SELECT streak, last_active_date FROM users WHERE user_id = $1`,
		userID,
	).Scan(&streak, &lastActive)
	return streak, lastActive, err
}

func (s *Store) SetStreak(userID string, streak int, activeDate time.Time) error {
	_, err := s.db.Exec(
		`UPDATE users SET streak = $2, last_active_date = $3, updated_at = NOW() WHERE user_id = $1`,
		userID, streak, activeDate,
	)
	return err
}

// UpsertActivity records study minutes for a day, accumulating across
// calls within the same day.
func (s *Store) UpsertActivity(userID string, date time.Time, minutes int) error {
	_, err := s.db.Exec(
		`INSERT INTO user_activity (user_id, activity_date, minutes)
		 VALUES ($1, $2, $3)
		 ON CONFLICT (user_id, activity_date)
		 DO UPDATE SET minutes = user_activity.minutes + EXCLUDED.minutes`,
		userID, date, minutes,
	)
	return err
}

func (s *Store) AddStudyTime(userID string, minutes int) error {
	_, err := s.db.Exec(
		`UPDATE users SET total_study_time = total_study_time + $2, updated_at = NOW() WHERE user_id = $1`,
		userID, minutes,
	)
	return err
}

// RecentActivity returns the user's per-day study minutes for the last
// `days` days, newest first.
func (s *Store) RecentActivity(userID string, days int) ([]models.ActivityEntry, error) {
	rows, err := s.db.Query(
		`SELECT activity_date, minutes FROM user_activity
		 WHERE user_id = $1 AND activity_date > CURRENT_DATE - $2::int
		 ORDER BY activity_date DESC`,
		userID, days,
	)
	if err != nil {
		return nil, fmt.Errorf("recent activity: %w", err)
	}
	defer rows.Close()

	entries := []models.ActivityEntry{}
	for rows.Next() {
		var e models.ActivityEntry
		var d time.Time
		if err := rows.Scan(&d, &e.Minutes); err != nil {
			return nil, err
		}
		e.Date = d.Format("2006-01-02")
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ── Leaderboard ─────────────────────────────────────────

func (s *Store) TopByXP(limit int) ([]models.LeaderboardEntry, error) {
	rows, err := s.db.Query(
		`SELECT user_id, full_name, xp, level
		 FROM users
		 WHERE role = 'student' AND status = 'active'
		 ORDER BY xp DESC, created_at
		 LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("leaderboard: %w", err)
	}
	defer rows.Close()

	entries := []models.LeaderboardEntry{}
	rank := 1
	for rows.Next() {
		var e models.LeaderboardEntry
		if err := rows.Scan(&e.UserID, &e.FullName, &e.XP, &e.Level); err != nil {
			return nil, err
		}
		e.Rank = rank
		rank++
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// UserRank returns the user's 1-based rank by XP among active students,
// along with their XP total.
func (s *Store) UserRank(userID string) (int, int64, error) {
	var rank int
	var xp int64
	err := s.db.QueryRow(
		`SELECT r.rank, r.xp FROM (
		    SELECT user_id, xp, RANK() OVER (ORDER BY xp DESC) AS rank
		    FROM users WHERE role = 'student' AND status = 'active'
		 ) r WHERE r.user_id = $1`,
		userID,
	).Scan(&rank, &xp)
	if err == sql.ErrNoRows {
		return 0, 0, nil
	}
	return rank, xp, err
}
