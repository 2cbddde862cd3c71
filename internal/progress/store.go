package progress

import (
	"database/sql"
	"fmt"
)

type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// rollUp derives a parent node's progress from its children: the
// percentage of completed children, complete only when all of them are.
// A node with no children stays at zero and incomplete.
func rollUp(done, total int) (pct float64, completed bool) {
	if total == 0 {
		return 0, false
	}
	return float64(done) / float64(total) * 100, done == total
}

func (s *Store) GetTopicChapter(topicID string) (string, error) {
	var chapterID string
	err := s.db.QueryRow(`SELECT chapter_id FROM topics WHERE topic_id = $1`, topicID).Scan(&chapterID)
	return chapterID, err
}

func (s *Store) GetSubtopicMeta(subtopicID string) (topicID, chapterID string, cardCount int, err error) {
	err = s.db.QueryRow(
		`SELECT topic_id, chapter_id, microcontent_count FROM subtopics WHERE subtopic_id = $1`,
		subtopicID,
	).Scan(&topicID, &chapterID, &cardCount)
	return
}

// TopicCompleted reports whether the user's topic progress row exists
// and is already marked completed.
func (s *Store) TopicCompleted(userID, topicID string) (bool, error) {
	var completed bool
	err := s.db.QueryRow(
		`SELECT completed FROM topic_progress WHERE user_id = $1 AND topic_id = $2`,
		userID, topicID,
	).Scan(&completed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return completed, err
}

func (s *Store) SubtopicCompleted(userID, subtopicID string) (bool, error) {
	var completed bool
	err := s.db.QueryRow(
		`SELECT completed FROM subtopic_progress WHERE user_id = $1 AND subtopic_id = $2`,
		userID, subtopicID,
	).Scan(&completed)
	if err == sql.ErrNoRows {
		return false, nil
	}
	return completed, err
}

// UpsertTopicProgress writes the user's topic progress. Completion
// follows the reported progress on every write; XP is guarded by the
// completion transition in the service, not here.
func (s *Store) UpsertTopicProgress(userID, topicID, chapterID string, progress float64, position int, completed bool) error {
	_, err := s.db.Exec(
		`INSERT INTO topic_progress (user_id, topic_id, chapter_id, progress, last_position, completed)
		 VALUES ($1, $2, $3, $4, $5, $6)
		 ON CONFLICT (user_id, topic_id)
		 DO UPDATE SET progress = EXCLUDED.progress,
		               last_position = EXCLUDED.last_position,
		               completed = EXCLUDED.completed,
		               updated_at = NOW()`,
		userID, topicID, chapterID, progress, position, completed,
	)
	if err != nil {
		return fmt.Errorf("upsert topic progress: %w", err)
	}
	return nil
}

func (s *Store) UpsertSubtopicProgress(userID, subtopicID, topicID, chapterID string, currentCard int, progress float64, completed bool) error {
	_, err := s.db.Exec(
		`INSERT INTO subtopic_progress (user_id, subtopic_id, topic_id, chapter_id, current_card, progress, completed)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)
		 ON CONFLICT (user_id, subtopic_id)
		 DO UPDATE SET current_card = EXCLUDED.current_card,
		               progress = EXCLUDED.progress,
		               completed = EXCLUDED.completed,
		               updated_at = NOW()`,
		userID, subtopicID, topicID, chapterID, currentCard, progress, completed,
	)
	if err != nil {
		return fmt.Errorf("upsert subtopic progress: %w", err)
	}
	return nil
}

// RecomputeChapterProgress derives the user's chapter progress from the
// fraction of completed topics in that chapter. The chapter is complete
// only when every topic is.
func (s *Store) RecomputeChapterProgress(userID, chapterID, lastTopicID string) error {
	var total, done int
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE tp.completed)
		 FROM topics t
		 LEFT JOIN topic_progress tp ON tp.topic_id = t.topic_id AND tp.user_id = $1
		 WHERE t.chapter_id = $2`,
		userID, chapterID,
	).Scan(&total, &done)
	if err != nil {
		return fmt.Errorf("count chapter topics: %w", err)
	}

	pct, completed := rollUp(done, total)

	_, err = s.db.Exec(
		`INSERT INTO chapter_progress (user_id, chapter_id, progress, completed, last_topic_id)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, chapter_id)
		 DO UPDATE SET progress = EXCLUDED.progress,
		               completed = EXCLUDED.completed,
		               last_topic_id = EXCLUDED.last_topic_id,
		               updated_at = NOW()`,
		userID, chapterID, pct, completed, lastTopicID,
	)
	if err != nil {
		return fmt.Errorf("upsert chapter progress: %w", err)
	}
	return nil
}

// RecomputeTopicFromSubtopics derives the user's topic progress from the
// fraction of completed subtopics. Callers follow it with a chapter
// recompute so completion propagates the whole way up.
func (s *Store) RecomputeTopicFromSubtopics(userID, topicID, chapterID string) error {
	var total, done int
	err := s.db.QueryRow(
		`SELECT COUNT(*),
		        COUNT(*) FILTER (WHERE sp.completed)
		 FROM subtopics st
		 LEFT JOIN subtopic_progress sp ON sp.subtopic_id = st.subtopic_id AND sp.user_id = $1
		 WHERE st.topic_id = $2`,
		userID, topicID,
	).Scan(&total, &done)
	if err != nil {
		return fmt.Errorf("count topic subtopics: %w", err)
	}
	if total == 0 {
		return nil
	}

	pct, completed := rollUp(done, total)

	_, err = s.db.Exec(
		`INSERT INTO topic_progress (user_id, topic_id, chapter_id, progress, completed)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (user_id, topic_id)
		 DO UPDATE SET progress = EXCLUDED.progress,
		               completed = EXCLUDED.completed,
		               updated_at = NOW()`,
		userID, topicID, chapterID, pct, completed,
	)
	if err != nil {
		return fmt.Errorf("upsert derived topic progress: %w", err)
	}
	return nil
}
