// Package advisor produces the mentor's reply to a user question. The
// generative responder asks an LLM and falls back to deterministic
// per-topic templates when the provider is unreachable, so a reply is
// always produced for a live session.
package advisor

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"

	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
)

// Responder generates mentor advice text for a user question.
type Responder interface {
	Respond(ctx context.Context, question string, fc profile.FinancialContext, transcript []llm.Message) (string, error)
}

const personaPrompt = `You are Maarg, the AI financial mentor inside ArthaMind.
You are empathetic and concise, and your advice is India-specific.
Explain in simple terms a beginner can follow.
Do not include code, images, or links in your reply.`

// transcriptWindow caps how many prior messages are sent with a question.
const transcriptWindow = 10

// LLMResponder asks the configured provider for a reply and falls back
// to the template responder when generation fails.
type LLMResponder struct {
	provider llm.Provider
	fallback *TemplateResponder
}

// NewLLMResponder builds a generative responder over the given provider.
func NewLLMResponder(provider llm.Provider) *LLMResponder {
	return &LLMResponder{
		provider: provider,
		fallback: NewTemplateResponder(),
	}
}

func (r *LLMResponder) Respond(ctx context.Context, question string, fc profile.FinancialContext, transcript []llm.Message) (string, error) {
	ctx = llm.WithPurpose(ctx, "mentor-reply")

	messages := recentWindow(transcript, transcriptWindow)
	messages = append(messages, llm.Message{Role: llm.RoleUser, Content: question})

	resp, err := r.provider.Generate(ctx, llm.Request{
		System:      personaPrompt + "\n\nUser context:\n" + serializeContext(fc),
		Messages:    messages,
		MaxTokens:   1024,
		Temperature: 0.7,
	})
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		slog.Warn("mentor reply generation failed, using template", "error", err)
		return r.fallback.Respond(ctx, question, fc, transcript)
	}

	var text string
	if uerr := json.Unmarshal(resp.Content, &text); uerr != nil {
		// Providers without a schema return plain text.
		text = string(resp.Content)
	}
	text = strings.TrimSpace(text)
	if text == "" {
		slog.Warn("mentor reply empty, using template")
		return r.fallback.Respond(ctx, question, fc, transcript)
	}
	return text, nil
}

func recentWindow(msgs []llm.Message, n int) []llm.Message {
	if len(msgs) <= n {
		return append([]llm.Message(nil), msgs...)
	}
	return append([]llm.Message(nil), msgs[len(msgs)-n:]...)
}

// serializeContext renders the financial context for the prompt. Zero
// onboarding data serializes as zeros, which the persona handles fine.
func serializeContext(fc profile.FinancialContext) string {
	doc := map[string]any{
		"age":              fc.Age,
		"monthlySalary":    fc.MonthlySalary,
		"totalExpenses":    fc.TotalExpenses(),
		"disposableIncome": fc.DisposableIncome(),
		"expenses": map[string]int64{
			"personal": fc.Expenses.Personal,
			"medical":  fc.Expenses.Medical,
			"housing":  fc.Expenses.Housing,
			"loanDebt": fc.Expenses.LoanDebt,
		},
		"savings": map[string]int64{
			"goalAmount":     fc.Savings.GoalAmount,
			"currentSavings": fc.Savings.CurrentSavings,
		},
	}
	b, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Sprintf("%+v", fc)
	}
	return string(b)
}
