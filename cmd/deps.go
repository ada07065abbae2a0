package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/Aditi-N-28/ArthaMind/internal/advisor"
	"github.com/Aditi-N-28/ArthaMind/internal/config"
	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/quiz"
	"github.com/Aditi-N-28/ArthaMind/internal/rewards"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// buildMentorDeps wires the conversational core over the given store.
// Without a configured AI backend everything degrades to the
// deterministic paths: keyword classification, template replies, and
// the static quiz bank.
func buildMentorDeps(ctx context.Context, cfg *config.Config, st docstore.Store) mentor.Deps {
	deps := mentor.Deps{
		Transcripts: mentor.NewTranscriptRepo(st),
		Profiles:    profile.NewRepo(st),
		Tracker:     progress.NewTracker(st, cfg.QuizThreshold),
		Ledger:      rewards.NewLedger(st, cfg.Rewards),
	}

	if cfg.LLM.Provider != "mock" {
		usage := llm.NewStoreUsageLog(st)
		provider, err := llm.NewProvider(ctx, cfg.LLM, usage)
		if err == nil {
			deps.Classifier = topics.NewClassifier(provider)
			deps.Responder = advisor.NewLLMResponder(provider)
			deps.Quizzes = quiz.New(provider)
			return deps
		}
		fmt.Fprintln(os.Stderr, "AI backend unavailable:", err)
		fmt.Fprintln(os.Stderr, "Maarg will use built-in guidance.")
	}

	deps.Classifier = topics.NewClassifier(nil)
	deps.Responder = advisor.NewTemplateResponder()
	deps.Quizzes = quiz.NewBankGenerator()
	return deps
}
