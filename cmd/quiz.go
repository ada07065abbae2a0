package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/quiz"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

var quizCmd = &cobra.Command{
	Use:   "quiz",
	Short: "Practice quiz questions for a topic (no database)",
	Long: `Generate and interactively answer quiz questions for a finance topic.

This is a stateless practice tool — no profile, no XP, no progress tracking.
Useful for evaluating question quality and brushing up before the real thing.`,
	RunE: runQuiz,
}

func init() {
	quizCmd.Flags().String("topic", "", "Topic tag (required): "+topicList())
	quizCmd.Flags().Int("count", 3, "Number of questions to generate")
	_ = quizCmd.MarkFlagRequired("topic")

	rootCmd.AddCommand(quizCmd)
}

func runQuiz(cmd *cobra.Command, args []string) error {
	topicVal, _ := cmd.Flags().GetString("topic")
	count, _ := cmd.Flags().GetInt("count")

	topic, ok := topics.Parse(topicVal)
	if !ok {
		return fmt.Errorf("unknown topic %q: must be one of %s", topicVal, topicList())
	}

	ctx := context.Background()

	// Generator without usage logging; falls back to the static bank
	// when no AI backend is configured.
	var gen quiz.Generator = quiz.NewBankGenerator()
	if cfg, found := llm.DiscoverConfig(); found {
		provider, err := llm.NewProvider(ctx, cfg, nil)
		if err != nil {
			return fmt.Errorf("LLM provider: %w", err)
		}
		gen = quiz.New(provider)
	}

	scanner := bufio.NewScanner(os.Stdin)

	fmt.Printf("Topic: %s\n", topic.DisplayName())
	fmt.Printf("Generating %d questions...\n\n", count)

	var correct, answered int

	for i := 1; i <= count; i++ {
		q, err := gen.Generate(ctx, topic)
		if err != nil {
			fmt.Printf("Question %d: generation failed: %v\n\n", i, err)
			continue
		}

		fmt.Printf("── Question %d/%d ──\n", i, count)
		fmt.Println(q.Question)
		for j, opt := range q.Options {
			fmt.Printf("  %d) %s\n", j+1, opt)
		}

		fmt.Print("\nYour answer (1-4): ")
		if !scanner.Scan() {
			fmt.Println("\n(input closed)")
			break
		}
		answer := strings.TrimSpace(scanner.Text())
		if answer == "" {
			fmt.Print("(skipped)\n\n")
			continue
		}

		choice, err := strconv.Atoi(answer)
		if err != nil || choice < 1 || choice > len(q.Options) {
			fmt.Print("(not a valid option, skipped)\n\n")
			continue
		}

		answered++
		if q.Correct(choice - 1) {
			correct++
			fmt.Println("\033[32m✓ Correct!\033[0m")
		} else {
			fmt.Printf("\033[31m✗ Wrong.\033[0m Answer: %s\n", q.Options[q.CorrectAnswer])
		}

		if q.Explanation != "" {
			fmt.Printf("Explanation: %s\n", q.Explanation)
		}
		fmt.Println()
	}

	fmt.Printf("── Summary: %d/%d correct ──\n", correct, answered)
	return nil
}

func topicList() string {
	var tags []string
	for _, t := range topics.All() {
		tags = append(tags, string(t))
	}
	return strings.Join(tags, ", ")
}
