package quiz

import (
	"context"
	"fmt"
	"log"

	"github.com/ailo-learn/backend/internal/gamification"
	"github.com/ailo-learn/backend/internal/models"
	"github.com/google/uuid"
)

const (
	SubtopicQuizSize   = 5
	ChapterQuizSize    = 10
	DailyChallengeSize = 5
)

// Recommender produces study suggestions from recent performance. The
// implementation may call out to a model provider; it must never fail
// a quiz flow.
type Recommender interface {
	Recommend(ctx context.Context, summary models.PerformanceSummary) []string
}

type Service struct {
	store       *Store
	gam         *gamification.Service
	recommender Recommender
}

func NewService(store *Store, gam *gamification.Service, recommender Recommender) *Service {
	return &Service{store: store, gam: gam, recommender: recommender}
}

// ── Quiz delivery ───────────────────────────────────────

func (s *Service) SubtopicQuiz(subtopicID string) (*models.QuizResponse, error) {
	questions, err := s.store.SampleSubtopicQuestions(subtopicID, SubtopicQuizSize)
	if err != nil {
		return nil, err
	}
	return &models.QuizResponse{
		QuizID:     uuid.NewString(),
		SubtopicID: subtopicID,
		Questions:  views(questions),
	}, nil
}

func (s *Service) ChapterQuiz(chapterID string) (*models.QuizResponse, error) {
	questions, err := s.store.SampleChapterQuestions(chapterID, ChapterQuizSize)
	if err != nil {
		return nil, err
	}
	return &models.QuizResponse{
		QuizID:    uuid.NewString(),
		Questions: views(questions),
	}, nil
}

func (s *Service) DailyChallenge() (*models.QuizResponse, error) {
	questions, err := s.store.SampleAnyQuestions(DailyChallengeSize)
	if err != nil {
		return nil, err
	}
	return &models.QuizResponse{
		QuizID:    uuid.NewString(),
		Title:     "Daily Challenge",
		Questions: views(questions),
	}, nil
}

func views(questions []models.QuizQuestion) []models.QuizQuestionView {
	out := make([]models.QuizQuestionView, 0, len(questions))
	for _, q := range questions {
		out = append(out, models.QuizQuestionView{
			QuestionID:   q.QuestionID,
			QuestionText: q.QuestionText,
			Options:      q.Options,
			Difficulty:   q.Difficulty,
			Topic:        q.TopicLabel,
		})
	}
	return out
}

// ── Batch submission ────────────────────────────────────

// Submit scores a full answer sheet. Answers referencing unknown
// question IDs are dropped before scoring; the score is computed over
// the answers that matched a real question. An empty or fully-unknown
// sheet scores zero and earns nothing.
func (s *Service) Submit(userID string, req models.QuizSubmitRequest) (*models.QuizSubmitResponse, error) {
	if req.QuizID == "" {
		req.QuizID = uuid.NewString()
	}

	ids := make([]string, 0, len(req.Answers))
	for _, a := range req.Answers {
		ids = append(ids, a.QuestionID)
	}

	byID, err := s.store.GetQuestionsByIDs(ids)
	if err != nil {
		return nil, fmt.Errorf("load questions: %w", err)
	}

	correct, total, graded := ScoreAnswers(req.Answers, byID)
	for _, g := range graded {
		if err := s.store.InsertResponse(userID, req.QuizID, g.QuestionID,
			g.UserAnswer, g.CorrectAnswer, g.IsCorrect, nil); err != nil {
			log.Printf("[quiz] failed to store response for %s: %v", userID, err)
		}
	}

	score := Score(correct, total)
	xpEarned := correct * gamification.XPPerCorrect

	if err := s.store.InsertResult(models.QuizResult{
		UserID:         userID,
		QuizID:         req.QuizID,
		SubtopicID:     req.SubtopicID,
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: total,
		XPEarned:       xpEarned,
	}); err != nil {
		log.Printf("[quiz] failed to store result for %s: %v", userID, err)
	}

	if xpEarned > 0 {
		if err := s.gam.Credit(userID, "quiz_correct", xpEarned, map[string]interface{}{
			"quiz_id":       req.QuizID,
			"correct_count": correct,
		}); err != nil {
			log.Printf("[quiz] xp credit failed for %s: %v", userID, err)
		}
	}

	if err := s.gam.RecordActivity(userID, studyMinutes(total, nil)); err != nil {
		log.Printf("[quiz] streak update failed for %s: %v", userID, err)
	}

	return &models.QuizSubmitResponse{
		Score:          score,
		CorrectCount:   correct,
		TotalQuestions: total,
		XPEarned:       xpEarned,
		Message:        resultMessage(score, total),
	}, nil
}

// GradedAnswer is one scored answer from a batch submission.
type GradedAnswer struct {
	QuestionID    string
	UserAnswer    string
	CorrectAnswer string
	IsCorrect     bool
}

// ScoreAnswers grades an answer sheet against the question bank.
// Answers whose question ID is not in byID are ignored entirely.
func ScoreAnswers(answers []models.QuizAnswer, byID map[string]models.QuizQuestion) (correct, total int, graded []GradedAnswer) {
	for _, a := range answers {
		q, ok := byID[a.QuestionID]
		if !ok {
			continue
		}
		total++
		isCorrect := a.UserAnswer == q.CorrectAnswer
		if isCorrect {
			correct++
		}
		graded = append(graded, GradedAnswer{
			QuestionID:    q.QuestionID,
			UserAnswer:    a.UserAnswer,
			CorrectAnswer: q.CorrectAnswer,
			IsCorrect:     isCorrect,
		})
	}
	return correct, total, graded
}

// Score converts a correct count into a percentage, scoring zero when
// nothing was graded.
func Score(correct, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(correct) / float64(total) * 100
}

// studyMinutes estimates how long a submission took, for streak and
// activity tracking. A reported time wins, rounded up to whole minutes;
// otherwise each question counts as a minute. A scored submission never
// records zero.
func studyMinutes(questionCount int, timeTakenSeconds *int) int {
	if timeTakenSeconds != nil && *timeTakenSeconds > 0 {
		minutes := (*timeTakenSeconds + 59) / 60
		if minutes < 1 {
			minutes = 1
		}
		return minutes
	}
	if questionCount < 1 {
		return 0
	}
	return questionCount
}

func resultMessage(score float64, total int) string {
	switch {
	case total == 0:
		return "No answers to score"
	case score >= 90:
		return "Excellent work!"
	case score >= 70:
		return "Good job!"
	case score >= 50:
		return "Keep practicing!"
	default:
		return "Review the material and try again"
	}
}

// ── Per-question submission ─────────────────────────────

// SubmitAnswer grades a single answer immediately and reveals the
// correct answer with its explanation.
func (s *Service) SubmitAnswer(userID string, sub models.QuizSubmission) (*models.SubmissionResponse, error) {
	q, err := s.store.GetQuestion(sub.QuestionID)
	if err != nil {
		return nil, err
	}

	isCorrect := sub.UserAnswer == q.CorrectAnswer
	if err := s.store.InsertResponse(userID, sub.QuizID, q.QuestionID,
		sub.UserAnswer, q.CorrectAnswer, isCorrect, sub.TimeTaken); err != nil {
		log.Printf("[quiz] failed to store response for %s: %v", userID, err)
	}

	xpGained := 0
	if isCorrect {
		xpGained = gamification.XPPerCorrect
		if err := s.gam.Credit(userID, "quiz_correct", xpGained, map[string]interface{}{
			"quiz_id":     sub.QuizID,
			"question_id": sub.QuestionID,
		}); err != nil {
			log.Printf("[quiz] xp credit failed for %s: %v", userID, err)
		}
	}

	if err := s.gam.RecordActivity(userID, studyMinutes(1, sub.TimeTaken)); err != nil {
		log.Printf("[quiz] streak update failed for %s: %v", userID, err)
	}

	return &models.SubmissionResponse{
		IsCorrect:     isCorrect,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		XPGained:      xpGained,
	}, nil
}

// Results aggregates the user's stored responses for a quiz and attaches
// study recommendations.
func (s *Service) Results(ctx context.Context, userID, quizID string) (*models.QuizResultsResponse, error) {
	attempts, err := s.store.GetAttempts(userID, quizID)
	if err != nil {
		return nil, err
	}

	correct := 0
	for _, a := range attempts {
		if a.IsCorrect {
			correct++
		}
	}

	var score float64
	if len(attempts) > 0 {
		score = float64(correct) / float64(len(attempts)) * 100
	}

	recommendations := s.recommender.Recommend(ctx, s.PerformanceSummary(userID))

	return &models.QuizResultsResponse{
		QuizID:               quizID,
		Score:                score,
		TotalQuestions:       len(attempts),
		CorrectAnswers:       correct,
		XPEarned:             correct * gamification.XPPerCorrect,
		Recommendations:      recommendations,
		PerformanceBreakdown: attempts,
	}, nil
}

// PerformanceSummary condenses the user's recent quiz results into the
// shape the recommender consumes.
func (s *Service) PerformanceSummary(userID string) models.PerformanceSummary {
	results, err := s.store.RecentResults(userID, 10)
	if err != nil {
		log.Printf("[quiz] failed to load recent results for %s: %v", userID, err)
		return models.PerformanceSummary{}
	}

	summary := models.PerformanceSummary{
		WeakTopics:   []string{},
		StrongTopics: []string{},
	}
	if len(results) == 0 {
		return summary
	}

	var sum float64
	for _, r := range results {
		sum += r.Score
		if r.SubtopicID == "" {
			continue
		}
		if r.Score < 60 {
			summary.WeakTopics = append(summary.WeakTopics, r.SubtopicID)
		} else if r.Score >= 85 {
			summary.StrongTopics = append(summary.StrongTopics, r.SubtopicID)
		}
	}
	summary.AvgScore = sum / float64(len(results))
	return summary
}
