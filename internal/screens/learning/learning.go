package learning

import (
	"context"
	"fmt"
	"sort"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/screen"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/components"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/theme"
)

// topicRow pairs a topic with its progress for sorted rendering.
type topicRow struct {
	Topic    topics.Topic
	Progress progress.TopicProgress
}

// LearningScreen shows the user's learning journey: level progress and
// per-topic question counts with quiz status.
type LearningScreen struct {
	xp    int64
	coins int64
	level int64
	rows  []topicRow
}

var _ screen.Screen = (*LearningScreen)(nil)

// New loads the learning data and creates the screen.
func New(userID string, profiles *profile.Repo, tracker *progress.Tracker) *LearningScreen {
	l := &LearningScreen{}

	ctx := context.Background()
	if p, err := profiles.Load(ctx, userID); err == nil {
		l.xp = p.Gamification.XP
		l.coins = p.Gamification.Coins
		l.level = p.Gamification.Level()
	}

	byTopic := tracker.Topics(ctx, userID)
	for topic, tp := range byTopic {
		l.rows = append(l.rows, topicRow{Topic: topic, Progress: tp})
	}
	// Most recently asked topics first.
	sort.Slice(l.rows, func(i, j int) bool {
		return l.rows[i].Progress.LastAsked > l.rows[j].Progress.LastAsked
	})

	return l
}

func (l *LearningScreen) Init() tea.Cmd {
	return nil
}

func (l *LearningScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return l, nil
}

func (l *LearningScreen) Title() string {
	return "Learning Journey"
}

func (l *LearningScreen) View(width, height int) string {
	contentWidth := width - 8
	if contentWidth > 72 {
		contentWidth = 72
	}
	if contentWidth < 24 {
		contentWidth = 24
	}

	// Level bar: 100 XP per level.
	intoLevel := l.xp % 100
	bar := components.NewProgressBar(
		fmt.Sprintf("Level %d", l.level),
		float64(intoLevel)/100,
		false,
		contentWidth,
	)
	bar.Fill = theme.Accent

	var b strings.Builder
	b.WriteString(bar.View() + "\n")
	b.WriteString(theme.Hint.Render(fmt.Sprintf("%d XP · 🪙 %d coins · %d XP to next level",
		l.xp, l.coins, 100-intoLevel)) + "\n\n")

	if len(l.rows) == 0 {
		b.WriteString(theme.Hint.Render("No topics explored yet. Ask Maarg a question to get started!"))
	} else {
		for _, row := range l.rows {
			b.WriteString(renderTopic(row, contentWidth) + "\n")
		}
	}

	panel := lipgloss.NewStyle().Padding(1, 4).Render(b.String())
	return lipgloss.NewStyle().Height(height).Render(panel)
}

func renderTopic(row topicRow, width int) string {
	name := theme.Body.Bold(true).Render(row.Topic.DisplayName())

	count := fmt.Sprintf("%d question", row.Progress.QuestionCount)
	if row.Progress.QuestionCount != 1 {
		count += "s"
	}

	status := theme.Hint.Render("exploring")
	switch {
	case row.Progress.QuizCompleted:
		status = theme.Correct.Render("✓ quiz completed")
	case row.Progress.QuizOffered:
		status = lipgloss.NewStyle().Foreground(theme.Secondary).Render("quiz offered")
	}

	line := fmt.Sprintf("%s   %s  ·  %s", name, count, status)
	return lipgloss.NewStyle().Width(width).Render(line)
}
