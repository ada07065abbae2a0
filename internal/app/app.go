package app

import (
	"context"
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/router"
	"github.com/Aditi-N-28/ArthaMind/internal/screen"
	"github.com/Aditi-N-28/ArthaMind/internal/screens/home"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/layout"
)

// Options carries the wired services the TUI needs.
type Options struct {
	UserID   string
	Session  *mentor.Session
	Profiles *profile.Repo
	Tracker  *progress.Tracker
}

// statsLoadedMsg refreshes the header's XP/coin display.
type statsLoadedMsg struct {
	Stats layout.HeaderStats
}

// AppModel is the root Bubble Tea model.
type AppModel struct {
	router *router.Router
	opts   Options
	stats  layout.HeaderStats
	width  int
	height int
}

// newAppModel creates a new AppModel with the home screen.
func newAppModel(opts Options) AppModel {
	homeScreen := home.New(opts.UserID, opts.Session, opts.Profiles, opts.Tracker)
	return AppModel{
		router: router.New(homeScreen),
		opts:   opts,
	}
}

func (m AppModel) Init() tea.Cmd {
	return m.loadStats()
}

// loadStats reads the profile's gamification balances off the UI goroutine.
func (m AppModel) loadStats() tea.Cmd {
	profiles := m.opts.Profiles
	userID := m.opts.UserID
	return func() tea.Msg {
		p, err := profiles.Load(context.Background(), userID)
		if err != nil {
			return statsLoadedMsg{}
		}
		return statsLoadedMsg{Stats: layout.HeaderStats{
			Level: int(p.Gamification.Level()),
			XP:    p.Gamification.XP,
			Coins: p.Gamification.Coins,
		}}
	}
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case statsLoadedMsg:
		m.stats = msg.Stats
		return m, nil

	case screen.RefreshHeaderMsg:
		return m, m.loadStats()

	case tea.KeyMsg:
		switch msg.String() {
		case "ctrl+c":
			return m, tea.Quit
		case "esc":
			// Screens with their own key hints also own esc (the chat
			// screen uses it to dismiss a graded quiz). Plain screens
			// just pop.
			if m.router.Depth() > 1 {
				if _, owns := m.router.Active().(screen.KeyHintProvider); !owns {
					return m, func() tea.Msg { return router.PopScreenMsg{} }
				}
			}
		}
	}

	cmd := m.router.Update(msg)
	return m, cmd
}

func (m AppModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.router.Active()
	title := ""
	if active != nil {
		title = active.Title()
	}

	header := layout.RenderHeader(title, m.stats, m.width)

	var footerHints []layout.KeyHint
	if hp, ok := active.(screen.KeyHintProvider); ok {
		footerHints = hp.KeyHints()
	} else if m.router.Depth() > 1 {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	} else {
		footerHints = []layout.KeyHint{
			{Key: "↑↓", Description: "Navigate"},
			{Key: "Enter", Description: "Select"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.router.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	_, err := p.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
