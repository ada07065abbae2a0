// Package quiz generates multiple-choice questions for a financial
// topic, via the LLM when available with a static per-topic bank as
// fallback.
package quiz

import (
	"fmt"

	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// Question is a single multiple-choice quiz question. CorrectAnswer
// indexes into Options.
type Question struct {
	Topic         topics.Topic `json:"topic"`
	Question      string       `json:"question"`
	Options       []string     `json:"options"`
	CorrectAnswer int          `json:"correctAnswer"`
	Explanation   string       `json:"explanation"`
}

// Correct reports whether the given option index answers the question.
func (q Question) Correct(answer int) bool {
	return answer == q.CorrectAnswer
}

// Validate checks the structural invariants of a generated question.
func (q Question) Validate() error {
	if q.Question == "" {
		return fmt.Errorf("question text is empty")
	}
	if len(q.Options) != 4 {
		return fmt.Errorf("expected 4 options, got %d", len(q.Options))
	}
	for i, opt := range q.Options {
		if opt == "" {
			return fmt.Errorf("option %d is empty", i)
		}
	}
	if q.CorrectAnswer < 0 || q.CorrectAnswer > 3 {
		return fmt.Errorf("correctAnswer %d out of range", q.CorrectAnswer)
	}
	if q.Explanation == "" {
		return fmt.Errorf("explanation is empty")
	}
	return nil
}
