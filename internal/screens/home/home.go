package home

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/router"
	"github.com/Aditi-N-28/ArthaMind/internal/screen"
	"github.com/Aditi-N-28/ArthaMind/internal/screens/chat"
	"github.com/Aditi-N-28/ArthaMind/internal/screens/learning"
	"github.com/Aditi-N-28/ArthaMind/internal/screens/market"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/components"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/theme"
)

// HomeScreen is the dashboard: greeting, financial snapshot, and the
// navigation menu.
type HomeScreen struct {
	menu    components.Menu
	name    string
	salary  int64
	savings int64
	goal    int64
	level   int64

	onboarded bool
}

var _ screen.Screen = (*HomeScreen)(nil)

// New creates a new HomeScreen.
func New(userID string, session *mentor.Session, profiles *profile.Repo, tracker *progress.Tracker) *HomeScreen {
	h := &HomeScreen{}

	if p, err := profiles.Load(context.Background(), userID); err == nil {
		h.onboarded = p.OnboardingComplete
		h.level = p.Gamification.Level()
		if p.PersonalData != nil {
			h.name = p.PersonalData.FullName
		}
		if p.FinancialData != nil {
			h.salary = p.FinancialData.MonthlySalary
			h.savings = p.FinancialData.Savings.CurrentSavings
			h.goal = p.FinancialData.Savings.GoalAmount
		}
	}

	items := []components.MenuItem{
		{Label: "CHAT WITH MAARG", Hint: "ask anything about money", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: chat.New(session)}
			}
		}},
		{Label: "LEARNING JOURNEY", Hint: "topics, quizzes, XP", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: learning.New(userID, profiles, tracker)}
			}
		}},
		{Label: "MARKET NEWS", Hint: "today's headlines", Action: func() tea.Cmd {
			return func() tea.Msg {
				return router.PushScreenMsg{Screen: market.New()}
			}
		}},
		{Label: "EXIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	h.menu = components.NewMenu(items)
	return h
}

func (h *HomeScreen) Init() tea.Cmd {
	return nil
}

func (h *HomeScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	var cmd tea.Cmd
	h.menu, cmd = h.menu.Update(msg)
	return h, cmd
}

func (h *HomeScreen) Title() string {
	return "Dashboard"
}

func (h *HomeScreen) View(width, height int) string {
	greeting := "Welcome to ArthaMind"
	if h.name != "" {
		greeting = "Welcome back, " + h.name
	}

	banner := theme.Title.Width(width).Render(greeting) + "\n" +
		theme.Subtitle.Width(width).Render("Your AI financial mentor") + "\n\n"

	var snapshot string
	if h.onboarded {
		rows := []string{
			fmt.Sprintf("Monthly salary   ₹%d", h.salary),
			fmt.Sprintf("Current savings  ₹%d", h.savings),
			fmt.Sprintf("Savings goal     ₹%d", h.goal),
			fmt.Sprintf("Level            %d", h.level),
		}
		card := theme.Card.Render(theme.Body.Render(strings.Join(rows, "\n")))
		snapshot = lipgloss.PlaceHorizontal(width, lipgloss.Center, card) + "\n\n"
	} else {
		snapshot = theme.Hint.Width(width).Align(lipgloss.Center).
			Render("Finish onboarding in the web app to unlock personalised advice.") + "\n\n"
	}

	menu := lipgloss.PlaceHorizontal(width, lipgloss.Center, h.menu.View())

	content := banner + snapshot + menu
	return lipgloss.NewStyle().Height(height).Render(content)
}
