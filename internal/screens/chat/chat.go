package chat

import (
	"context"
	"strings"
	"time"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
	"github.com/Aditi-N-28/ArthaMind/internal/router"
	"github.com/Aditi-N-28/ArthaMind/internal/screen"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/components"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/layout"
	"github.com/Aditi-N-28/ArthaMind/internal/ui/theme"
)

const sendTimeout = 60 * time.Second

// ChatScreen is the conversation with Maarg: free-form questions, quiz
// offers, and active quizzes all render here. The mentor session owns
// the transcript; the screen only mirrors its state between messages.
type ChatScreen struct {
	session *mentor.Session

	input       components.TextInput
	mc          components.MultiChoice
	mcActive    bool
	mcSubmitted bool

	offer     topics.Topic
	quizTopic topics.Topic
	waiting   bool
	errMsg    string
}

var _ screen.Screen = (*ChatScreen)(nil)

// New creates the chat screen over an already-loaded mentor session.
func New(session *mentor.Session) *ChatScreen {
	return &ChatScreen{
		session: session,
		input:   components.NewTextInput("Ask Maarg about SIPs, loans, taxes…", 500),
	}
}

func (c *ChatScreen) Init() tea.Cmd {
	return c.input.Init()
}

func (c *ChatScreen) Title() string {
	return "Chat with Maarg"
}

// KeyHints returns footer hints for the current interaction mode.
func (c *ChatScreen) KeyHints() []layout.KeyHint {
	switch {
	case c.waiting:
		return []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
		}
	case c.mcActive && c.mcSubmitted:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Continue"},
		}
	case c.mcActive:
		return []layout.KeyHint{
			{Key: "↑↓", Description: "Choose"},
			{Key: "Enter", Description: "Answer"},
		}
	case c.offer != "":
		return []layout.KeyHint{
			{Key: "Y", Description: "Take the quiz"},
			{Key: "N", Description: "Keep chatting"},
		}
	default:
		return []layout.KeyHint{
			{Key: "Enter", Description: "Send"},
			{Key: "Esc", Description: "Back"},
		}
	}
}

func (c *ChatScreen) Update(msg tea.Msg) (screen.Screen, tea.Cmd) {
	switch msg := msg.(type) {
	case replyReadyMsg:
		return c.handleReply(msg)
	case quizReadyMsg:
		return c.handleQuizReady(msg)
	case answerGradedMsg:
		return c.handleGraded(msg)
	case tea.KeyMsg:
		if c.waiting {
			return c, nil
		}
		if c.mcActive {
			return c.updateQuiz(msg)
		}
		if msg.String() == "esc" {
			return c, func() tea.Msg { return router.PopScreenMsg{} }
		}
		if c.offer != "" {
			if handled, cmd := c.updateOffer(msg); handled {
				return c, cmd
			}
		}
		if msg.String() == "enter" {
			return c.submitMessage()
		}
	}

	var cmd tea.Cmd
	c.input, cmd = c.input.Update(msg)
	return c, cmd
}

// submitMessage sends the composed text to the mentor session.
func (c *ChatScreen) submitMessage() (screen.Screen, tea.Cmd) {
	text := strings.TrimSpace(c.input.Value())
	if text == "" {
		return c, nil
	}

	c.input.Reset()
	c.input.SetDisabled(true)
	c.waiting = true
	c.errMsg = ""
	c.offer = "" // session drops a pending offer when the user keeps chatting

	return c, c.sendCmd(text)
}

// updateOffer handles the y/n prompt for a pending quiz offer. Any other
// key falls through to the composer so the user can just keep typing.
func (c *ChatScreen) updateOffer(msg tea.KeyMsg) (bool, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		c.waiting = true
		c.errMsg = ""
		return true, c.acceptCmd()
	case "n", "N":
		_ = c.session.DeclineQuizOffer()
		c.offer = ""
		return true, nil
	}
	return false, nil
}

// updateQuiz forwards keys to the multichoice and submits the chosen
// answer once the user confirms it.
func (c *ChatScreen) updateQuiz(msg tea.KeyMsg) (screen.Screen, tea.Cmd) {
	if c.mcSubmitted {
		if msg.String() == "enter" || msg.String() == "esc" {
			c.mcActive = false
			c.mcSubmitted = false
			c.input.SetDisabled(false)
			return c, c.input.Init()
		}
		return c, nil
	}

	var cmd tea.Cmd
	c.mc, cmd = c.mc.Update(msg)
	if c.mc.Submitted {
		c.waiting = true
		return c, tea.Batch(cmd, c.answerCmd(c.mc.ChosenIndex))
	}
	return c, cmd
}

func (c *ChatScreen) handleReply(msg replyReadyMsg) (screen.Screen, tea.Cmd) {
	c.waiting = false
	c.input.SetDisabled(false)

	if msg.Err != nil {
		c.errMsg = "Maarg could not answer: " + msg.Err.Error()
		return c, nil
	}

	c.offer = msg.Exchange.QuizOffer
	return c, tea.Batch(refreshHeader(), c.input.Init())
}

func (c *ChatScreen) handleQuizReady(msg quizReadyMsg) (screen.Screen, tea.Cmd) {
	c.waiting = false

	if msg.Err != nil {
		// The session un-marks the offer, so the topic stays eligible.
		c.offer = ""
		c.errMsg = "Could not prepare a quiz right now. Keep chatting!"
		c.input.SetDisabled(false)
		return c, c.input.Init()
	}

	c.offer = ""
	c.quizTopic = msg.Question.Topic
	c.mc = components.NewMultiChoice(msg.Question.Question, msg.Question.Options)
	c.mcActive = true
	c.mcSubmitted = false
	c.input.SetDisabled(true)
	return c, nil
}

func (c *ChatScreen) handleGraded(msg answerGradedMsg) (screen.Screen, tea.Cmd) {
	c.waiting = false

	if msg.Err != nil {
		c.errMsg = msg.Err.Error()
		c.mcActive = false
		c.input.SetDisabled(false)
		return c, c.input.Init()
	}

	c.mc.Reveal(msg.Result.CorrectAnswer)
	c.mcSubmitted = true
	return c, refreshHeader()
}

// sendCmd runs one chat exchange off the UI goroutine.
func (c *ChatScreen) sendCmd(text string) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		ex, err := c.session.SendMessage(ctx, text)
		return replyReadyMsg{Exchange: ex, Err: err}
	}
}

func (c *ChatScreen) acceptCmd() tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		q, err := c.session.AcceptQuizOffer(ctx)
		return quizReadyMsg{Question: q, Err: err}
	}
}

func (c *ChatScreen) answerCmd(index int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), sendTimeout)
		defer cancel()

		res, err := c.session.SubmitQuizAnswer(ctx, index)
		return answerGradedMsg{Result: res, Err: err}
	}
}

func refreshHeader() tea.Cmd {
	return func() tea.Msg { return screen.RefreshHeaderMsg{} }
}

func (c *ChatScreen) View(width, height int) string {
	contentWidth := width - 4
	if contentWidth < 20 {
		contentWidth = 20
	}

	var bottom string
	switch {
	case c.mcActive:
		card := theme.Card.Width(contentWidth).Render(
			theme.SpeakerMentor.Render(c.quizTopic.DisplayName()+" quiz") + "\n\n" + c.mc.View(),
		)
		bottom = card
		if c.mcSubmitted {
			bottom += "\n" + theme.Hint.Render("  Press Enter to continue")
		}
	case c.offer != "":
		bottom = theme.Card.Width(contentWidth).Render(
			theme.Body.Render("Ready for a quick "+c.offer.DisplayName()+" quiz? ") +
				theme.Hint.Render("(y/n)"),
		)
	default:
		prompt := "  > " + c.input.View()
		if c.waiting {
			prompt = "  " + theme.Hint.Render("Maarg is thinking…")
		}
		bottom = prompt
	}

	if c.errMsg != "" {
		bottom += "\n  " + theme.Incorrect.Render(c.errMsg)
	}

	bottomHeight := lipgloss.Height(bottom)
	transcriptHeight := height - bottomHeight - 1
	if transcriptHeight < 1 {
		transcriptHeight = 1
	}

	transcript := c.renderTranscript(contentWidth, transcriptHeight)

	return transcript + "\n" + bottom
}

// renderTranscript renders the newest messages that fit in the given
// height, oldest first.
func (c *ChatScreen) renderTranscript(width, height int) string {
	msgs := c.session.Transcript()

	var blocks []string
	for _, m := range msgs {
		blocks = append(blocks, renderMessage(m, width))
	}

	lines := strings.Split(strings.Join(blocks, "\n\n"), "\n")
	if len(lines) > height {
		lines = lines[len(lines)-height:]
	}
	body := strings.Join(lines, "\n")
	return lipgloss.NewStyle().Height(height).Render(body)
}

func renderMessage(m mentor.ChatMessage, width int) string {
	speaker := theme.SpeakerMentor.Render("Maarg")
	if m.Role == mentor.RoleUser {
		speaker = theme.SpeakerUser.Render("You")
	}

	body := lipgloss.NewStyle().
		Foreground(theme.Text).
		Width(width - 4).
		Render(m.Content)

	return "  " + speaker + "\n" + indent(body, 2)
}

func indent(s string, n int) string {
	pad := strings.Repeat(" ", n)
	lines := strings.Split(s, "\n")
	for i := range lines {
		lines[i] = pad + lines[i]
	}
	return strings.Join(lines, "\n")
}
