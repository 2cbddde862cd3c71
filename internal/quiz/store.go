package quiz

import (
	"database/sql"
	"fmt"

	"github.com/ailo-learn/backend/internal/models"
	"github.com/lib/pq"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

const questionColumns = `question_id, topic_id, subtopic_id, chapter_id, question_text,
	options, correct_answer, explanation, difficulty, topic_label`

func (s *Store) scanQuestions(rows *sql.Rows) ([]models.QuizQuestion, error) {
	defer rows.Close()
	questions := []models.QuizQuestion{}
	for rows.Next() {
		var q models.QuizQuestion
		var opts []string
		if err := rows.Scan(&q.QuestionID, &q.TopicID, &q.SubtopicID, &q.ChapterID,
			&q.QuestionText, pq.Array(&opts), &q.CorrectAnswer, &q.Explanation,
			&q.Difficulty, &q.TopicLabel); err != nil {
			return nil, fmt.Errorf("scan question: %w", err)
		}
		q.Options = opts
		if q.Options == nil {
			q.Options = []string{}
		}
		questions = append(questions, q)
	}
	return questions, rows.Err()
}

// SampleSubtopicQuestions returns up to limit questions tied to a
// subtopic, in random order.
func (s *Store) SampleSubtopicQuestions(subtopicID string, limit int) ([]models.QuizQuestion, error) {
	rows, err := s.db.Query(
		`SELECT `+questionColumns+` FROM quiz_questions
		 WHERE subtopic_id = $1
		 ORDER BY RANDOM() LIMIT $2`,
		subtopicID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sample subtopic questions: %w", err)
	}
	return s.scanQuestions(rows)
}

// SampleChapterQuestions returns up to limit questions belonging to any
// topic of the chapter, in random order.
func (s *Store) SampleChapterQuestions(chapterID string, limit int) ([]models.QuizQuestion, error) {
	rows, err := s.db.Query(
		`SELECT `+questionColumns+` FROM quiz_questions
		 WHERE chapter_id = $1
		    OR topic_id IN (SELECT topic_id FROM topics WHERE chapter_id = $1)
		 ORDER BY RANDOM() LIMIT $2`,
		chapterID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sample chapter questions: %w", err)
	}
	return s.scanQuestions(rows)
}

// SampleAnyQuestions returns up to limit questions from the whole bank,
// in random order.
func (s *Store) SampleAnyQuestions(limit int) ([]models.QuizQuestion, error) {
	rows, err := s.db.Query(
		`SELECT `+questionColumns+` FROM quiz_questions ORDER BY RANDOM() LIMIT $1`,
		limit,
	)
	if err != nil {
		return nil, fmt.Errorf("sample questions: %w", err)
	}
	return s.scanQuestions(rows)
}

// GetQuestionsByIDs returns the questions matching the given IDs keyed
// by question_id. IDs with no matching row are simply absent.
func (s *Store) GetQuestionsByIDs(ids []string) (map[string]models.QuizQuestion, error) {
	if len(ids) == 0 {
		return map[string]models.QuizQuestion{}, nil
	}
	rows, err := s.db.Query(
		`SELECT `+questionColumns+` FROM quiz_questions WHERE question_id = ANY($1)`,
		pq.Array(ids),
	)
	if err != nil {
		return nil, fmt.Errorf("questions by ids: %w", err)
	}
	questions, err := s.scanQuestions(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]models.QuizQuestion, len(questions))
	for _, q := range questions {
		byID[q.QuestionID] = q
	}
	return byID, nil
}

func (s *Store) GetQuestion(questionID string) (*models.QuizQuestion, error) {
	var q models.QuizQuestion
	var opts []string
	err := s.db.QueryRow(
		`SELECT `+questionColumns+` FROM quiz_questions WHERE question_id = $1`,
		questionID,
	).Scan(&q.QuestionID, &q.TopicID, &q.SubtopicID, &q.ChapterID, &q.QuestionText,
		pq.Array(&opts), &q.CorrectAnswer, &q.Explanation, &q.Difficulty, &q.TopicLabel)
	if err != nil {
		return nil, err
	}
	q.Options = opts
	return &q, nil
}

func (s *Store) InsertResponse(userID, quizID, questionID, userAnswer, correctAnswer string, isCorrect bool, timeTaken *int) error {
	_, err := s.db.Exec(
		`INSERT INTO quiz_responses (user_id, quiz_id, question_id, user_answer, correct_answer, is_correct, time_taken)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		userID, quizID, questionID, userAnswer, correctAnswer, isCorrect, timeTaken,
	)
	return err
}

func (s *Store) InsertResult(r models.QuizResult) error {
	_, err := s.db.Exec(
		`INSERT INTO quiz_results (user_id, quiz_id, subtopic_id, score, correct_count, total_questions, xp_earned)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		r.UserID, r.QuizID, r.SubtopicID, r.Score, r.CorrectCount, r.TotalQuestions, r.XPEarned,
	)
	return err
}

// GetAttempts returns the user's stored per-question responses for a quiz.
func (s *Store) GetAttempts(userID, quizID string) ([]models.QuizAttempt, error) {
	rows, err := s.db.Query(
		`SELECT user_id, quiz_id, question_id, user_answer, correct_answer, is_correct, time_taken, created_at
		 FROM quiz_responses
		 WHERE user_id = $1 AND quiz_id = $2
		 ORDER BY created_at`,
		userID, quizID,
	)
	if err != nil {
		return nil, fmt.Errorf("get attempts: %w", err)
	}
	defer rows.Close()

	attempts := []models.QuizAttempt{}
	for rows.Next() {
		var a models.QuizAttempt
		if err := rows.Scan(&a.UserID, &a.QuizID, &a.QuestionID, &a.UserAnswer,
			&a.CorrectAnswer, &a.IsCorrect, &a.TimeTaken, &a.CreatedAt); err != nil {
			return nil, err
		}
		attempts = append(attempts, a)
	}
	return attempts, rows.Err()
}

// RecentResults returns the user's latest quiz result rows.
func (s *Store) RecentResults(userID string, limit int) ([]models.QuizResult, error) {
	rows, err := s.db.Query(
		`SELECT user_id, quiz_id, subtopic_id, score, correct_count, total_questions, xp_earned, completed_at
		 FROM quiz_results
		 WHERE user_id = $1
		 ORDER BY completed_at DESC
		 LIMIT $2`,
		userID, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("recent results: %w", err)
	}
	defer rows.Close()

	results := []models.QuizResult{}
	for rows.Next() {
		var r models.QuizResult
		if err := rows.Scan(&r.UserID, &r.QuizID, &r.SubtopicID, &r.Score,
			&r.CorrectCount, &r.TotalQuestions, &r.XPEarned, &r.CompletedAt); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
