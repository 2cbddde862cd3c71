package gamification

// XP rewards. Completion rewards fire once per node per user; the
// per-answer reward applies on every quiz submission.
const (
	XPTopicComplete    = 10
	XPSubtopicComplete = 15
	XPPerCorrect       = 5
)
