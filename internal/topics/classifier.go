package topics

import (
	"context"
	"fmt"
	"strings"

	"github.com/Aditi-N-28/ArthaMind/internal/llm"
)

const classifySystemPrompt = `You classify personal-finance questions into a single topic tag. Reply with exactly one tag from the list, or "none" if no tag fits. No punctuation, no explanation.`

// Classifier maps user input to a topic tag. When a provider is configured
// it asks the language backend first; the keyword table is the
// deterministic fallback. Classify never returns an error: a backend
// failure degrades to keyword matching.
type Classifier struct {
	provider llm.Provider
}

// NewClassifier creates a Classifier. provider may be nil, in which case
// only keyword matching is used.
func NewClassifier(provider llm.Provider) *Classifier {
	return &Classifier{provider: provider}
}

// Classify returns the best-matching topic for text, or ("", false).
func (c *Classifier) Classify(ctx context.Context, text string) (Topic, bool) {
	if c.provider != nil {
		if t, ok := c.classifyGenerative(ctx, text); ok {
			return t, true
		}
	}
	return MatchKeywords(text)
}

func (c *Classifier) classifyGenerative(ctx context.Context, text string) (Topic, bool) {
	ctx = llm.WithPurpose(ctx, "topic-classify")

	tags := make([]string, 0, len(All()))
	for _, t := range All() {
		tags = append(tags, string(t))
	}

	req := llm.Request{
		System: classifySystemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: fmt.Sprintf("Tags: %s\n\nQuestion: %s", strings.Join(tags, ", "), text)},
		},
		MaxTokens: 16,
	}

	resp, err := c.provider.Generate(ctx, req)
	if err != nil {
		return "", false
	}

	return Parse(stripArtifacts(string(resp.Content)))
}

// stripArtifacts removes quoting the backend tends to wrap short answers
// in: whitespace, quotes, backticks, trailing periods.
func stripArtifacts(s string) string {
	s = strings.TrimSpace(s)
	s = strings.Trim(s, "\"'`")
	s = strings.TrimSuffix(s, ".")
	return strings.ToLower(strings.TrimSpace(s))
}

// MatchKeywords runs the deterministic keyword table against text.
// Topics are tried in vocabulary order; the first with a matching
// substring wins.
func MatchKeywords(text string) (Topic, bool) {
	lower := strings.ToLower(text)
	for _, t := range All() {
		for _, kw := range keywords[t] {
			if strings.Contains(lower, kw) {
				return t, true
			}
		}
	}
	return "", false
}
