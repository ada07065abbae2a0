package quiz

import "github.com/Aditi-N-28/ArthaMind/internal/llm"

// QuestionSchema defines the JSON schema for LLM quiz generation responses.
var QuestionSchema = &llm.Schema{
	Name:        "quiz-question",
	Description: "A single multiple-choice personal-finance quiz question",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"question": map[string]any{
				"type":        "string",
				"description": "The question shown to the learner, in plain text",
			},
			"options": map[string]any{
				"type": "array",
				"items": map[string]any{
					"type": "string",
				},
				"minItems":    4,
				"maxItems":    4,
				"description": "Exactly 4 answer options",
			},
			"correctAnswer": map[string]any{
				"type":        "integer",
				"minimum":     0,
				"maximum":     3,
				"description": "Zero-based index of the correct option",
			},
			"explanation": map[string]any{
				"type":        "string",
				"description": "One or two sentences explaining why the correct answer is right",
			},
		},
		"required":             []any{"question", "options", "correctAnswer", "explanation"},
		"additionalProperties": false,
	},
}
