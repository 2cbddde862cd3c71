package ai

import (
	"fmt"
	"strings"

	"github.com/ailo-learn/backend/internal/models"
)

// Canned responses used when no model provider is configured or the
// provider call fails.

func staticRecommendations(summary models.PerformanceSummary) []string {
	recs := []string{}
	if len(summary.WeakTopics) > 0 {
		recs = append(recs, fmt.Sprintf("Revisit the material you scored lowest on recently (%s).", strings.Join(summary.WeakTopics, ", ")))
	}
	switch {
	case summary.AvgScore == 0:
		recs = append(recs, "Take a short quiz to see where you stand.")
	case summary.AvgScore < 60:
		recs = append(recs, "Reread the lesson cards before retrying a quiz.")
	default:
		recs = append(recs, "Try the daily challenge to keep your knowledge fresh.")
	}
	if summary.Streak == 0 {
		recs = append(recs, "Start a study streak today with just ten minutes.")
	} else {
		recs = append(recs, fmt.Sprintf("Keep your %d-day streak alive with a quick session.", summary.Streak))
	}
	return recs
}

func staticChatResponse(message string) string {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "hello") || strings.Contains(lower, "hi"):
		return "Hi! I'm Nova, your study companion. Ask me anything about what you're learning."
	case strings.Contains(lower, "quiz"):
		return "Quizzes are a great way to check your understanding. Try one after finishing a lesson, and review any questions you miss."
	case strings.Contains(lower, "streak"):
		return "Streaks grow by studying a little every day. Even a single lesson keeps yours going."
	default:
		return "That's a great question! Try breaking the topic into smaller pieces and reviewing the lesson cards. I'm here if you want to talk through any of them."
	}
}
