package parent

import (
	"context"
	"strings"
	"testing"

	"github.com/ailo-learn/backend/internal/models"
)

type fakeInsightSource struct {
	insights []string
	summary  models.PerformanceSummary
}

func (f *fakeInsightSource) Recommend(ctx context.Context, summary models.PerformanceSummary) []string {
	f.summary = summary
	return f.insights
}

func TestStudentInsightsPrefersGenerated(t *testing.T) {
	source := &fakeInsightSource{insights: []string{"Asha is doing great in Algebra."}}
	h := &Handler{insights: source}
	student := &models.StudentSummary{FullName: "Asha", Streak: 4}
	weekly := &models.WeeklySummary{QuizzesTaken: 3, AvgScore: 72}

	got := h.studentInsights(context.Background(), student, weekly)
	if len(got) != 1 || got[0] != source.insights[0] {
		t.Fatalf("expected generated insights, got %v", got)
	}
	if source.summary.AvgScore != 72 || source.summary.Streak != 4 {
		t.Errorf("expected summary built from weekly stats, got %+v", source.summary)
	}
}

func TestStudentInsightsFallsBackWhenEmpty(t *testing.T) {
	h := &Handler{insights: &fakeInsightSource{}}
	student := &models.StudentSummary{FullName: "Ben", Streak: 0}
	weekly := &models.WeeklySummary{}

	got := h.studentInsights(context.Background(), student, weekly)
	if len(got) == 0 {
		t.Fatal("expected fallback insights, got none")
	}
	if !strings.Contains(got[0], "hasn't studied") {
		t.Errorf("expected fallback inactivity insight, got %q", got[0])
	}
}

func TestStudentInsightsNilSource(t *testing.T) {
	h := &Handler{}
	student := &models.StudentSummary{FullName: "Cara", Streak: 8}
	weekly := &models.WeeklySummary{TotalStudyMinutes: 90}

	got := h.studentInsights(context.Background(), student, weekly)
	if len(got) == 0 {
		t.Fatal("expected fallback insights with no source configured")
	}
}

func TestBuildInsightsStrongWeek(t *testing.T) {
	student := &models.StudentSummary{FullName: "Asha", Streak: 10}
	weekly := &models.WeeklySummary{TotalStudyMinutes: 120, QuizzesTaken: 4, AvgScore: 88}

	insights := buildInsights(student, weekly)
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2: %v", len(insights), insights)
	}
	if !strings.Contains(insights[0], "10-day") {
		t.Errorf("expected streak insight, got %q", insights[0])
	}
	if !strings.Contains(insights[1], "88%") {
		t.Errorf("expected score insight, got %q", insights[1])
	}
}

func TestBuildInsightsInactiveStudent(t *testing.T) {
	student := &models.StudentSummary{FullName: "Ben", Streak: 0}
	weekly := &models.WeeklySummary{}

	insights := buildInsights(student, weekly)
	if len(insights) != 2 {
		t.Fatalf("got %d insights, want 2: %v", len(insights), insights)
	}
	if !strings.Contains(insights[0], "hasn't studied") {
		t.Errorf("expected inactivity insight, got %q", insights[0])
	}
	if !strings.Contains(insights[1], "No study time") {
		t.Errorf("expected no-study-time insight, got %q", insights[1])
	}
}

func TestBuildInsightsLowScores(t *testing.T) {
	student := &models.StudentSummary{FullName: "Cara", Streak: 3}
	weekly := &models.WeeklySummary{TotalStudyMinutes: 60, QuizzesTaken: 2, AvgScore: 40}

	insights := buildInsights(student, weekly)
	found := false
	for _, in := range insights {
		if strings.Contains(in, "need review") {
			found = true
		}
	}
	if !found {
		t.Errorf("expected a review insight, got %v", insights)
	}
}
