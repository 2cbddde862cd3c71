package ai

import (
	"context"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/ailo-learn/backend/internal/models"
)

// provider is the interface each model backend satisfies.
type provider interface {
	Complete(ctx context.Context, systemPrompt, userPrompt string) (string, error)
}

// Client wraps a model provider with a static fallback. Recommend and
// Chat never return errors to callers; when the provider is down the
// canned responses take over so learning flows keep working.
type Client struct {
	provider provider
	name     string
}

func NewClient() *Client {
	switch os.Getenv("AI_PROVIDER") {
	case "anthropic":
		log.Println("[ai] using Anthropic provider")
		return &Client{provider: newAnthropicProvider(), name: "anthropic"}
	case "openai":
		log.Println("[ai] using OpenAI provider")
		return &Client{provider: newOpenAIProvider(), name: "openai"}
	default:
		if os.Getenv("ANTHROPIC_API_KEY") != "" {
			log.Println("[ai] using Anthropic provider")
			return &Client{provider: newAnthropicProvider(), name: "anthropic"}
		}
		if os.Getenv("OPENAI_API_KEY") != "" {
			log.Println("[ai] using OpenAI provider")
			return &Client{provider: newOpenAIProvider(), name: "openai"}
		}
		log.Println("[ai] no provider configured, using static responses")
		return &Client{name: "static"}
	}
}

const recommendSystemPrompt = `You are a study coach for a learning app. Given a student's recent quiz performance, suggest 3 short, specific study actions. Reply with one suggestion per line, no numbering, no preamble.`

// Recommend produces study suggestions from recent performance.
func (c *Client) Recommend(ctx context.Context, summary models.PerformanceSummary) []string {
	if c.provider == nil {
		return staticRecommendations(summary)
	}

	prompt := fmt.Sprintf(
		"Average quiz score: %.0f%%. Weak areas: %s. Strong areas: %s. Current streak: %d days.",
		summary.AvgScore,
		joinOrNone(summary.WeakTopics),
		joinOrNone(summary.StrongTopics),
		summary.Streak,
	)

	text, err := c.provider.Complete(ctx, recommendSystemPrompt, prompt)
	if err != nil {
		log.Printf("[ai] recommend failed, falling back to static: %v", err)
		return staticRecommendations(summary)
	}

	recs := []string{}
	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSpace(strings.TrimLeft(line, "-*• "))
		if line != "" {
			recs = append(recs, line)
		}
		if len(recs) == 3 {
			break
		}
	}
	if len(recs) == 0 {
		return staticRecommendations(summary)
	}
	return recs
}

const chatSystemPrompt = `You are Nova, a friendly study companion inside a learning app. Answer the student's question clearly and encouragingly in a few sentences. Stay on the topic of learning and studying.`

// Chat answers a free-form student question.
func (c *Client) Chat(ctx context.Context, message, chatContext string) (string, error) {
	if c.provider == nil {
		return staticChatResponse(message), nil
	}

	prompt := message
	if chatContext != "" {
		prompt = fmt.Sprintf("Context: %s\n\nQuestion: %s", chatContext, message)
	}

	text, err := c.provider.Complete(ctx, chatSystemPrompt, prompt)
	if err != nil {
		log.Printf("[ai] chat failed, falling back to static: %v", err)
		return staticChatResponse(message), nil
	}
	return text, nil
}

func joinOrNone(topics []string) string {
	if len(topics) == 0 {
		return "none"
	}
	return strings.Join(topics, ", ")
}
