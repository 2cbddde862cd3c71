package quiz

import (
	"testing"

	"github.com/ailo-learn/backend/internal/models"
)

func question(id, answer string) models.QuizQuestion {
	return models.QuizQuestion{
		QuestionID:    id,
		QuestionText:  "What is " + id + "?",
		Options:       []string{answer, "wrong one", "wrong two"},
		CorrectAnswer: answer,
	}
}

func TestScoreAnswers(t *testing.T) {
	bank := map[string]models.QuizQuestion{
		"q1": question("q1", "A"),
		"q2": question("q2", "B"),
		"q3": question("q3", "C"),
	}

	answers := []models.QuizAnswer{
		{QuestionID: "q1", UserAnswer: "A"},
		{QuestionID: "q2", UserAnswer: "X"},
		{QuestionID: "q3", UserAnswer: "C"},
	}

	correct, total, graded := ScoreAnswers(answers, bank)
	if correct != 2 {
		t.Errorf("correct = %d, want 2", correct)
	}
	if total != 3 {
		t.Errorf("total = %d, want 3", total)
	}
	if len(graded) != 3 {
		t.Fatalf("graded = %d entries, want 3", len(graded))
	}
	if graded[1].IsCorrect {
		t.Error("q2 graded correct, want incorrect")
	}
	if graded[1].CorrectAnswer != "B" {
		t.Errorf("q2 correct answer = %q, want B", graded[1].CorrectAnswer)
	}
}

func TestScoreAnswersIgnoresUnknownQuestions(t *testing.T) {
	bank := map[string]models.QuizQuestion{
		"q1": question("q1", "A"),
	}

	answers := []models.QuizAnswer{
		{QuestionID: "q1", UserAnswer: "A"},
		{QuestionID: "ghost", UserAnswer: "A"},
	}

	correct, total, graded := ScoreAnswers(answers, bank)
	if correct != 1 || total != 1 {
		t.Errorf("got correct=%d total=%d, want 1/1", correct, total)
	}
	if len(graded) != 1 {
		t.Errorf("graded = %d entries, want 1", len(graded))
	}
}

func TestScoreAnswersEmptySheet(t *testing.T) {
	correct, total, graded := ScoreAnswers(nil, map[string]models.QuizQuestion{})
	if correct != 0 || total != 0 || len(graded) != 0 {
		t.Errorf("got correct=%d total=%d graded=%d, want all zero", correct, total, len(graded))
	}
	if Score(correct, total) != 0 {
		t.Errorf("Score(0, 0) = %f, want 0", Score(correct, total))
	}
}

func TestScore(t *testing.T) {
	tests := []struct {
		correct, total int
		want           float64
	}{
		{0, 0, 0},
		{0, 5, 0},
		{5, 5, 100},
		{3, 4, 75},
		{1, 3, 100.0 / 3},
	}

	for _, tt := range tests {
		got := Score(tt.correct, tt.total)
		if got != tt.want {
			t.Errorf("Score(%d, %d) = %f, want %f", tt.correct, tt.total, got, tt.want)
		}
	}
}

func TestResultMessage(t *testing.T) {
	if got := resultMessage(0, 0); got != "No answers to score" {
		t.Errorf("resultMessage(0, 0) = %q", got)
	}
	if got := resultMessage(95, 5); got != "Excellent work!" {
		t.Errorf("resultMessage(95, 5) = %q", got)
	}
	if got := resultMessage(75, 5); got != "Good job!" {
		t.Errorf("resultMessage(75, 5) = %q", got)
	}
	if got := resultMessage(55, 5); got != "Keep practicing!" {
		t.Errorf("resultMessage(55, 5) = %q", got)
	}
	if got := resultMessage(20, 5); got != "Review the material and try again" {
		t.Errorf("resultMessage(20, 5) = %q", got)
	}
}

func TestViewsStripAnswers(t *testing.T) {
	questions := []models.QuizQuestion{
		question("q1", "A"),
		question("q2", "B"),
	}

	got := views(questions)
	if len(got) != 2 {
		t.Fatalf("views returned %d entries, want 2", len(got))
	}
	for i, v := range got {
		if v.QuestionID != questions[i].QuestionID {
			t.Errorf("view %d question_id = %q, want %q", i, v.QuestionID, questions[i].QuestionID)
		}
		if len(v.Options) != 3 {
			t.Errorf("view %d has %d options, want 3", i, len(v.Options))
		}
	}
}

func TestStudyMinutes(t *testing.T) {
	sec := func(n int) *int { return &n }

	tests := []struct {
		name      string
		questions int
		timeTaken *int
		want      int
	}{
		{"reported time rounds up", 1, sec(61), 2},
		{"reported time minimum one minute", 1, sec(10), 1},
		{"exact minute boundary", 1, sec(120), 2},
		{"zero reported falls back to questions", 3, sec(0), 3},
		{"no reported time counts questions", 5, nil, 5},
		{"single question", 1, nil, 1},
		{"empty sheet records nothing", 0, nil, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := studyMinutes(tt.questions, tt.timeTaken); got != tt.want {
				t.Errorf("studyMinutes(%d, %v) = %d, want %d", tt.questions, tt.timeTaken, got, tt.want)
			}
		})
	}
}
