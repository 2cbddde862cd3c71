package content

import (
	"database/sql"
	"fmt"

	"github.com/ailo-learn/backend/internal/models"
)

// Store reads the seeded content hierarchy and merges in the caller's
// progress records. Content rows are write-once (seed loader only).
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Sibling ordering is by display_order with the serial key as
// tiebreaker, so rows sharing a display_order keep their insertion
// order across requests.
const (
	listChaptersQuery = `SELECT c.chapter_id, c.title, c.description, c.icon, c.display_order, c.locked,
		        COALESCE(cp.progress, 0), COALESCE(cp.completed, FALSE)
		 FROM chapters c
		 LEFT JOIN chapter_progress cp ON cp.chapter_id = c.chapter_id AND cp.user_id = $1
		 ORDER BY c.display_order, c.id`

	listTopicsQuery = `SELECT t.topic_id, t.chapter_id, t.title, t.topic_title, t.description, t.content, t.display_order,
		        COALESCE(tp.progress, 0), COALESCE(tp.completed, FALSE), COALESCE(tp.last_position, 0)
		 FROM topics t
		 LEFT JOIN topic_progress tp ON tp.topic_id = t.topic_id AND tp.user_id = $1
		 WHERE t.chapter_id = $2
		 ORDER BY t.display_order, t.id`

	listSubtopicsQuery = `SELECT st.subtopic_id, st.topic_id, st.chapter_id, st.title, st.subtopic_title,
		        st.display_order, st.microcontent_count,
		        COALESCE(sp.progress, 0), COALESCE(sp.completed, FALSE)
		 FROM subtopics st
		 LEFT JOIN subtopic_progress sp ON sp.subtopic_id = st.subtopic_id AND sp.user_id = $1
		 WHERE st.topic_id = $2
		 ORDER BY st.display_order, st.id`

	listCardsQuery = `SELECT microcontent_id, display_order, story_explanation, analogy_explanation,
		        core_text, content_type, related_code
		 FROM microcontent
		 WHERE subtopic_id = $1
		 ORDER BY display_order, id`
)

// ListChapters returns all chapters in display order with the user's
// chapter-level progress merged in. Chapters without a progress row
// report 0 / not completed.
func (s *Store) ListChapters(userID string) ([]models.ChapterWithProgress, error) {
	rows, err := s.db.Query(listChaptersQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("list chapters: %w", err)
	}
	defer rows.Close()

	chapters := []models.ChapterWithProgress{}
	for rows.Next() {
		var ch models.ChapterWithProgress
		if err := rows.Scan(&ch.ChapterID, &ch.Title, &ch.Description, &ch.Icon,
			&ch.Order, &ch.Locked, &ch.Progress, &ch.Completed); err != nil {
			return nil, fmt.Errorf("scan chapter: %w", err)
		}
		chapters = append(chapters, ch)
	}
	return chapters, rows.Err()
}

func (s *Store) ChapterExists(chapterID string) (bool, error) {
	var exists bool
	err := s.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM chapters WHERE chapter_id = $1)`, chapterID).Scan(&exists)
	return exists, err
}

// ListTopics returns the topics of a chapter in display order with the
// user's topic-level progress merged in.
func (s *Store) ListTopics(userID, chapterID string) ([]models.TopicWithProgress, error) {
	rows, err := s.db.Query(listTopicsQuery, userID, chapterID)
	if err != nil {
		return nil, fmt.Errorf("list topics: %w", err)
	}
	defer rows.Close()

	topics := []models.TopicWithProgress{}
	for rows.Next() {
		var t models.TopicWithProgress
		if err := rows.Scan(&t.TopicID, &t.ChapterID, &t.Title, &t.TopicTitle, &t.Description,
			&t.Content, &t.Order, &t.Progress, &t.Completed, &t.LastPosition); err != nil {
			return nil, fmt.Errorf("scan topic: %w", err)
		}
		topics = append(topics, t)
	}
	return topics, rows.Err()
}

func (s *Store) GetTopicSummary(topicID string) (*models.TopicSummary, error) {
	var t models.TopicSummary
	err := s.db.QueryRow(
		`SELECT topic_id, title, topic_title, chapter_id FROM topics WHERE topic_id = $1`,
		topicID,
	).Scan(&t.TopicID, &t.Title, &t.TopicTitle, &t.ChapterID)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// ListSubtopics returns a topic's subtopics in display order with the
// user's subtopic-level progress merged in.
func (s *Store) ListSubtopics(userID, topicID string) ([]models.SubtopicWithProgress, error) {
	rows, err := s.db.Query(listSubtopicsQuery, userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("list subtopics: %w", err)
	}
	defer rows.Close()

	subtopics := []models.SubtopicWithProgress{}
	for rows.Next() {
		var st models.SubtopicWithProgress
		if err := rows.Scan(&st.SubtopicID, &st.TopicID, &st.ChapterID, &st.Title, &st.SubtopicTitle,
			&st.Order, &st.MicrocontentCount, &st.Progress, &st.Completed); err != nil {
			return nil, fmt.Errorf("scan subtopic: %w", err)
		}
		subtopics = append(subtopics, st)
	}
	return subtopics, rows.Err()
}

func (s *Store) GetSubtopicSummary(subtopicID string) (*models.SubtopicSummary, error) {
	var st models.SubtopicSummary
	err := s.db.QueryRow(
		`SELECT subtopic_id, title, topic_id, chapter_id FROM subtopics WHERE subtopic_id = $1`,
		subtopicID,
	).Scan(&st.SubtopicID, &st.Title, &st.TopicID, &st.ChapterID)
	if err != nil {
		return nil, err
	}
	return &st, nil
}

// ListCards returns a subtopic's microcontent cards in display order.
func (s *Store) ListCards(subtopicID string) ([]models.MicrocontentCard, error) {
	rows, err := s.db.Query(listCardsQuery, subtopicID)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	defer rows.Close()

	cards := []models.MicrocontentCard{}
	for rows.Next() {
		var c models.MicrocontentCard
		if err := rows.Scan(&c.MicrocontentID, &c.Order, &c.Story, &c.Relate,
			&c.Why, &c.ContentType, &c.RelatedCode); err != nil {
			return nil, fmt.Errorf("scan card: %w", err)
		}
		cards = append(cards, c)
	}
	return cards, rows.Err()
}

// CurrentCard returns the user's saved card position within a subtopic,
// or 0 when no progress record exists.
func (s *Store) CurrentCard(userID, subtopicID string) (int, error) {
	var card int
	err := s.db.QueryRow(
		`SELECT current_card FROM subtopic_progress WHERE user_id = $1 AND subtopic_id = $2`,
		userID, subtopicID,
	).Scan(&card)
	if err == sql.ErrNoRows {
		return 0, nil
	}
	return card, err
}
