package quiz

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"math/rand/v2"

	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// Generator produces a quiz question for a topic.
type Generator interface {
	Generate(ctx context.Context, topic topics.Topic) (*Question, error)
}

const systemPrompt = `You write short multiple-choice quizzes on personal
finance for beginners in India. Questions must be factual, unambiguous,
and answerable without the user's personal data.`

// LLMGenerator asks the provider for a fresh question and falls back to
// the static bank when generation fails or returns a malformed object.
type LLMGenerator struct {
	provider llm.Provider
	fallback *BankGenerator
}

// New creates an LLMGenerator over the given provider.
func New(provider llm.Provider) *LLMGenerator {
	return &LLMGenerator{provider: provider, fallback: NewBankGenerator()}
}

// questionOutput is the raw LLM response before validation.
type questionOutput struct {
	Question      string   `json:"question"`
	Options       []string `json:"options"`
	CorrectAnswer int      `json:"correctAnswer"`
	Explanation   string   `json:"explanation"`
}

func (g *LLMGenerator) Generate(ctx context.Context, topic topics.Topic) (*Question, error) {
	q, err := g.generate(ctx, topic)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		slog.Warn("quiz generation failed, using bank", "topic", topic, "error", err)
		return g.fallback.Generate(ctx, topic)
	}
	return q, nil
}

func (g *LLMGenerator) generate(ctx context.Context, topic topics.Topic) (*Question, error) {
	ctx = llm.WithPurpose(ctx, "quiz-gen")

	userMsg := fmt.Sprintf(
		"Write one multiple-choice question about %s. Four options, one correct.",
		topic.DisplayName())

	resp, err := g.provider.Generate(ctx, llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: userMsg},
		},
		Schema:      QuestionSchema,
		MaxTokens:   512,
		Temperature: 0.8,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw questionOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}

	q := &Question{
		Topic:         topic,
		Question:      raw.Question,
		Options:       raw.Options,
		CorrectAnswer: raw.CorrectAnswer,
		Explanation:   raw.Explanation,
	}
	if err := q.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generated question: %w", err)
	}
	return q, nil
}

// BankGenerator serves questions from the static per-topic bank. Topics
// without bank entries fall back to the investment questions. It never
// fails, which makes it the terminal generator in the chain.
type BankGenerator struct {
	// pick selects an index in [0,n). Overridable in tests.
	pick func(n int) int
}

func NewBankGenerator() *BankGenerator {
	return &BankGenerator{pick: rand.IntN}
}

func (g *BankGenerator) Generate(_ context.Context, topic topics.Topic) (*Question, error) {
	bank, ok := questionBank[topic]
	if !ok {
		bank = questionBank[topics.TopicInvestment]
	}
	q := bank[g.pick(len(bank))]
	q.Topic = topic
	return &q, nil
}
