package gamification

import (
	"fmt"
	"log"
	"time"
)

type Service struct {
	store *Store
}

func NewService(store *Store) *Service {
	return &Service{store: store}
}

// Credit awards XP and appends a ledger entry. Ledger failures are
// logged, not returned; the XP increment is the source of truth.
func (s *Service) Credit(userID, eventType string, amount int, metadata map[string]interface{}) error {
	if amount <= 0 {
		return nil
	}
	if err := s.store.AddXP(userID, amount); err != nil {
		return fmt.Errorf("add xp: %w", err)
	}
	if err := s.store.LogXPEvent(userID, eventType, amount, metadata); err != nil {
		log.Printf("[gamification] failed to log xp event for %s: %v", userID, err)
	}
	return nil
}

// RecordActivity logs study minutes for today and advances the daily
// streak. Called on every progress update and quiz submission.
func (s *Service) RecordActivity(userID string, minutes int) error {
	today := time.Now().UTC().Truncate(24 * time.Hour)

	if minutes > 0 {
		if err := s.store.UpsertActivity(userID, today, minutes); err != nil {
			log.Printf("[gamification] failed to record activity for %s: %v", userID, err)
		}
		if err := s.store.AddStudyTime(userID, minutes); err != nil {
			log.Printf("[gamification] failed to add study time for %s: %v", userID, err)
		}
	}

	return s.updateStreak(userID, today)
}

func (s *Service) updateStreak(userID string, today time.Time) error {
	streak, lastActive, err := s.store.GetStreakState(userID)
	if err != nil {
		return fmt.Errorf("get streak state: %w", err)
	}

	next, changed := NextStreak(streak, lastActive, today)
	if !changed {
		return nil
	}
	return s.store.SetStreak(userID, next, today)
}

// NextStreak computes the streak value after activity on `today`.
// Consecutive days extend the streak, a gap resets it to 1, and repeat
// activity within the same day leaves it untouched.
func NextStreak(streak int, lastActive *time.Time, today time.Time) (int, bool) {
	if lastActive == nil {
		return 1, true
	}

	last := lastActive.UTC().Truncate(24 * time.Hour)
	if last.Equal(today) {
		return streak, false
	}
	if today.Sub(last).Hours() <= 24 {
		return streak + 1, true
	}
	return 1, true
}
