package parent

import (
	"database/sql"
	"fmt"

	"github.com/ailo-learn/backend/internal/models"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// LookupParentByEmail returns the user_id of an account with the parent
// role, or sql.ErrNoRows.
func (s *Store) LookupParentByEmail(email string) (string, error) {
	var parentID string
	err := s.db.QueryRow(
		`SELECT user_id FROM users WHERE email = $1 AND role = 'parent'`,
		email,
	).Scan(&parentID)
	return parentID, err
}

func (s *Store) CreateLink(parentID, studentID string) error {
	_, err := s.db.Exec(
		`INSERT INTO parent_links (parent_id, student_id)
		 VALUES ($1, $2)
		 ON CONFLICT (parent_id, student_id) DO NOTHING`,
		parentID, studentID,
	)
	if err != nil {
		return fmt.Errorf("create parent link: %w", err)
	}
	return nil
}

func (s *Store) IsLinked(parentID, studentID string) (bool, error) {
	var linked bool
	err := s.db.QueryRow(
		`SELECT EXISTS(SELECT 1 FROM parent_links WHERE parent_id = $1 AND student_id = $2)`,
		parentID, studentID,
	).Scan(&linked)
	return linked, err
}

func (s *Store) ListChildren(parentID string) ([]models.ChildSummary, error) {
	rows, err := s.db.Query(
		`SELECT u.user_id, u.full_name, u.grade, u.school
		 FROM parent_links pl
		 JOIN users u ON u.user_id = pl.student_id
		 WHERE pl.parent_id = $1
		 ORDER BY u.full_name`,
		parentID,
	)
	if err != nil {
		return nil, fmt.Errorf("list children: %w", err)
	}
	defer rows.Close()

	children := []models.ChildSummary{}
	for rows.Next() {
		var c models.ChildSummary
		if err := rows.Scan(&c.StudentID, &c.FullName, &c.Grade, &c.School); err != nil {
			return nil, err
		}
		children = append(children, c)
	}
	return children, rows.Err()
}

func (s *Store) GetStudentSummary(studentID string) (*models.StudentSummary, error) {
	var sum models.StudentSummary
	err := s.db.QueryRow(
		`SELECT full_name, grade, streak, xp, level FROM users WHERE user_id = $1`,
		studentID,
	).Scan(&sum.FullName, &sum.Grade, &sum.Streak, &sum.XP, &sum.Level)
	if err != nil {
		return nil, err
	}
	return &sum, nil
}

// GetWeeklySummary aggregates the student's last seven days.
func (s *Store) GetWeeklySummary(studentID string) (*models.WeeklySummary, error) {
	var sum models.WeeklySummary

	err := s.db.QueryRow(
		`SELECT COALESCE(SUM(minutes), 0) FROM user_activity
		 WHERE user_id = $1 AND activity_date > CURRENT_DATE - 7`,
		studentID,
	).Scan(&sum.TotalStudyMinutes)
	if err != nil {
		return nil, fmt.Errorf("weekly study time: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*), COALESCE(AVG(score), 0) FROM quiz_results
		 WHERE user_id = $1 AND completed_at > NOW() - INTERVAL '7 days'`,
		studentID,
	).Scan(&sum.QuizzesTaken, &sum.AvgScore)
	if err != nil {
		return nil, fmt.Errorf("weekly quiz stats: %w", err)
	}

	err = s.db.QueryRow(
		`SELECT COUNT(*) FROM chapter_progress WHERE user_id = $1 AND completed`,
		studentID,
	).Scan(&sum.ChaptersCompleted)
	if err != nil {
		return nil, fmt.Errorf("completed chapters: %w", err)
	}

	return &sum, nil
}
