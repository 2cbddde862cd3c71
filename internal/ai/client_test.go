package ai

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/ailo-learn/backend/internal/models"
)

type fakeProvider struct {
	response string
	err      error
	calls    int
}

func (f *fakeProvider) Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error) {
	f.calls++
	return f.response, f.err
}

func TestRecommendParsesProviderLines(t *testing.T) {
	c := &Client{provider: &fakeProvider{
		response: "- Review fractions\n\n* Retake the decimals quiz\nKeep your streak going\nExtra line beyond three",
	}}

	recs := c.Recommend(context.Background(), models.PerformanceSummary{})
	if len(recs) != 3 {
		t.Fatalf("got %d recommendations, want 3", len(recs))
	}
	if recs[0] != "Review fractions" {
		t.Errorf("first recommendation = %q, want bullet stripped", recs[0])
	}
	if recs[1] != "Retake the decimals quiz" {
		t.Errorf("second recommendation = %q", recs[1])
	}
}

func TestRecommendFallsBackOnProviderError(t *testing.T) {
	c := &Client{provider: &fakeProvider{err: fmt.Errorf("provider down")}}

	recs := c.Recommend(context.Background(), models.PerformanceSummary{Streak: 5})
	if len(recs) == 0 {
		t.Fatal("expected static recommendations on provider failure")
	}
}

func TestRecommendWithoutProvider(t *testing.T) {
	c := &Client{}

	recs := c.Recommend(context.Background(), models.PerformanceSummary{
		AvgScore:   45,
		WeakTopics: []string{"algebra-basics"},
	})
	if len(recs) == 0 {
		t.Fatal("expected static recommendations")
	}
	if !strings.Contains(recs[0], "algebra-basics") {
		t.Errorf("expected weak topic in first recommendation, got %q", recs[0])
	}
}

func TestChatFallsBackOnProviderError(t *testing.T) {
	c := &Client{provider: &fakeProvider{err: fmt.Errorf("provider down")}}

	resp, err := c.Chat(context.Background(), "hello there", "")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if resp == "" {
		t.Fatal("expected a fallback response")
	}
}

func TestChatIncludesContext(t *testing.T) {
	fp := &fakeProvider{response: "Here is your answer."}
	c := &Client{provider: fp}

	resp, err := c.Chat(context.Background(), "what is a fraction?", "chapter: numbers")
	if err != nil {
		t.Fatalf("Chat returned error: %v", err)
	}
	if resp != "Here is your answer." {
		t.Errorf("response = %q", resp)
	}
	if fp.calls != 1 {
		t.Errorf("provider called %d times, want 1", fp.calls)
	}
}

func TestStaticRecommendationsAlwaysNonEmpty(t *testing.T) {
	summaries := []models.PerformanceSummary{
		{},
		{AvgScore: 95, Streak: 30},
		{AvgScore: 20, WeakTopics: []string{"a", "b"}},
	}
	for i, s := range summaries {
		if got := staticRecommendations(s); len(got) == 0 {
			t.Errorf("summary %d produced no recommendations", i)
		}
	}
}
