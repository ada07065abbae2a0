package market

import (
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Aditi-N-28/ArthaMind/internal/news"
	"github.com/Aditi-N-28/ArthaMind/internal/screen"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/theme"
)

// MarketScreen lists the dashboard's financial headlines.
type MarketScreen struct {
	articles []news.Article
	now      time.Time
}

var _ screen.Screen = (*MarketScreen)(nil)

// New creates the market news screen.
func New() *MarketScreen {
	now := time.Now()
	return &MarketScreen{
		articles: news.Articles(now),
		now:      now,
	}
}

func (m *MarketScreen) Init() tea.Cmd {
	return nil
}

func (m *MarketScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	return m, nil
}

func (m *MarketScreen) Title() string {
	return "Market News"
}

func (m *MarketScreen) View(width, height int) string {
	contentWidth := width - 8
	if contentWidth > 80 {
		contentWidth = 80
	}
	if contentWidth < 24 {
		contentWidth = 24
	}

	var out string
	for _, a := range m.articles {
		title := lipgloss.NewStyle().
			Foreground(theme.Text).
			Bold(true).
			Width(contentWidth).
			Render(a.Title)

		desc := lipgloss.NewStyle().
			Foreground(theme.TextDim).
			Width(contentWidth).
			Render(a.Description)

		meta := theme.Hint.Render(a.Source + " · " + news.RelativeTime(a.PublishedAt, m.now))

		out += title + "\n" + desc + "\n" + meta + "\n\n"
	}

	panel := lipgloss.NewStyle().Padding(1, 4).Render(out)
	return lipgloss.NewStyle().Height(height).Render(panel)
}
