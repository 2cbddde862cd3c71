package progress

import (
	"database/sql"
	"fmt"
	"log"

	"github.com/ailo-learn/backend/internal/gamification"
	"github.com/ailo-learn/backend/internal/models"
)

var ErrNotFound = fmt.Errorf("content node not found")

type Service struct {
	store *Store
	gam   *gamification.Service
}

func NewService(store *Store, gam *gamification.Service) *Service {
	return &Service{store: store, gam: gam}
}

// UpdateTopicProgress upserts the user's topic progress, marks the topic
// completed at the threshold, rolls the completion up into the chapter,
// and awards XP on the first completion only.
func (s *Service) UpdateTopicProgress(userID, topicID string, req models.TopicProgressRequest) (*models.ProgressUpdateResponse, error) {
	chapterID, err := s.store.GetTopicChapter(topicID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup topic: %w", err)
	}

	pct := clamp(req.Progress)
	completed := pct >= models.TopicCompletionThreshold

	wasCompleted, err := s.store.TopicCompleted(userID, topicID)
	if err != nil {
		return nil, fmt.Errorf("check topic completion: %w", err)
	}

	if err := s.store.UpsertTopicProgress(userID, topicID, chapterID, pct, req.Position, completed); err != nil {
		return nil, err
	}

	if err := s.store.RecomputeChapterProgress(userID, chapterID, topicID); err != nil {
		log.Printf("[progress] chapter roll-up failed for %s/%s: %v", userID, chapterID, err)
	}

	xpEarned := 0
	if completed && !wasCompleted {
		xpEarned = gamification.XPTopicComplete
		if err := s.gam.Credit(userID, "topic_complete", xpEarned, map[string]interface{}{
			"topic_id": topicID,
		}); err != nil {
			log.Printf("[progress] xp credit failed for %s: %v", userID, err)
		}
	}

	if err := s.gam.RecordActivity(userID, 0); err != nil {
		log.Printf("[progress] streak update failed for %s: %v", userID, err)
	}

	msg := "Progress updated"
	if xpEarned > 0 {
		msg = "Topic completed"
	}
	return &models.ProgressUpdateResponse{Message: msg, XPEarned: xpEarned}, nil
}

// UpdateSubtopicProgress saves the user's card position within a
// subtopic. Unlike topics, completion is supplied by the caller rather
// than derived from a threshold. Completion rolls up into the topic's
// derived progress but no further.
func (s *Service) UpdateSubtopicProgress(userID, subtopicID string, req models.SubtopicProgressRequest) (*models.ProgressUpdateResponse, error) {
	topicID, chapterID, cardCount, err := s.store.GetSubtopicMeta(subtopicID)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lookup subtopic: %w", err)
	}

	var pct float64
	if cardCount > 0 {
		pct = clamp(float64(req.CurrentCard) / float64(cardCount) * 100)
	}
	if req.Completed {
		pct = 100
	}

	wasCompleted, err := s.store.SubtopicCompleted(userID, subtopicID)
	if err != nil {
		return nil, fmt.Errorf("check subtopic completion: %w", err)
	}

	if err := s.store.UpsertSubtopicProgress(userID, subtopicID, topicID, chapterID, req.CurrentCard, pct, req.Completed); err != nil {
		return nil, err
	}

	if req.Completed {
		if err := s.store.RecomputeTopicFromSubtopics(userID, topicID, chapterID); err != nil {
			log.Printf("[progress] topic roll-up failed for %s/%s: %v", userID, topicID, err)
		}
		if err := s.store.RecomputeChapterProgress(userID, chapterID, topicID); err != nil {
			log.Printf("[progress] chapter roll-up failed for %s/%s: %v", userID, chapterID, err)
		}
	}

	xpEarned := 0
	if req.Completed && !wasCompleted {
		xpEarned = gamification.XPSubtopicComplete
		if err := s.gam.Credit(userID, "subtopic_complete", xpEarned, map[string]interface{}{
			"subtopic_id": subtopicID,
		}); err != nil {
			log.Printf("[progress] xp credit failed for %s: %v", userID, err)
		}
	}

	if err := s.gam.RecordActivity(userID, 0); err != nil {
		log.Printf("[progress] streak update failed for %s: %v", userID, err)
	}

	msg := "Progress updated"
	if xpEarned > 0 {
		msg = "Subtopic completed"
	}
	return &models.ProgressUpdateResponse{Message: msg, XPEarned: xpEarned}, nil
}

func clamp(pct float64) float64 {
	if pct < 0 {
		return 0
	}
	if pct > 100 {
		return 100
	}
	return pct
}
