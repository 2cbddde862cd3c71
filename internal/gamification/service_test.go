package gamification

import (
	"testing"
	"time"
)

func day(offset int) time.Time {
	base := time.Date(2026, 3, 10, 0, 0, 0, 0, time.UTC)
	return base.AddDate(0, 0, offset)
}

func TestNextStreakFirstActivity(t *testing.T) {
	got, changed := NextStreak(0, nil, day(0))
	if got != 1 || !changed {
		t.Errorf("NextStreak(0, nil) = (%d, %v), want (1, true)", got, changed)
	}
}

func TestNextStreakSameDay(t *testing.T) {
	last := day(0)
	got, changed := NextStreak(4, &last, day(0))
	if got != 4 || changed {
		t.Errorf("same-day activity = (%d, %v), want (4, false)", got, changed)
	}
}

func TestNextStreakConsecutiveDay(t *testing.T) {
	last := day(-1)
	got, changed := NextStreak(4, &last, day(0))
	if got != 5 || !changed {
		t.Errorf("consecutive day = (%d, %v), want (5, true)", got, changed)
	}
}

func TestNextStreakGapResets(t *testing.T) {
	last := day(-3)
	got, changed := NextStreak(10, &last, day(0))
	if got != 1 || !changed {
		t.Errorf("after 3-day gap = (%d, %v), want (1, true)", got, changed)
	}
}

func TestNextStreakIgnoresTimeOfDay(t *testing.T) {
	// last_active stored with a time component should still count as
	// yesterday once truncated.
	last := day(-1).Add(23 * time.Hour)
	got, _ := NextStreak(2, &last, day(0))
	if got != 3 {
		t.Errorf("late-evening yesterday = %d, want 3", got)
	}
}
