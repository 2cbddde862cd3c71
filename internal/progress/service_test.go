package progress

import (
	"testing"

	"github.com/ailo-learn/backend/internal/models"
)

func TestClamp(t *testing.T) {
	tests := []struct {
		in   float64
		want float64
	}{
		{-5, 0},
		{0, 0},
		{42.5, 42.5},
		{100, 100},
		{150, 100},
	}

	for _, tt := range tests {
		if got := clamp(tt.in); got != tt.want {
			t.Errorf("clamp(%f) = %f, want %f", tt.in, got, tt.want)
		}
	}
}

func TestTopicCompletionThreshold(t *testing.T) {
	// Topics complete at the threshold, not at 100.
	if clamp(89.9) >= models.TopicCompletionThreshold {
		t.Error("89.9 should be below the completion threshold")
	}
	if clamp(90) < models.TopicCompletionThreshold {
		t.Error("90 should reach the completion threshold")
	}
	if clamp(150) < models.TopicCompletionThreshold {
		t.Error("over-reported progress should clamp above the threshold")
	}
}
