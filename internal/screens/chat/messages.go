package chat

import (
	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
	"github.com/Aditi-N-28/ArthaMind/internal/quiz"
)

// replyReadyMsg carries the outcome of one chat exchange.
type replyReadyMsg struct {
	Exchange *mentor.Exchange
	Err      error
}

// quizReadyMsg carries a generated quiz question after the user accepts
// an offer.
type quizReadyMsg struct {
	Question *quiz.Question
	Err      error
}

// answerGradedMsg carries the grading outcome for a submitted answer.
type answerGradedMsg struct {
	Result *mentor.QuizResult
	Err    error
}
