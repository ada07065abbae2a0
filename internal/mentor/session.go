package mentor

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/Aditi-N-28/ArthaMind/internal/advisor"
	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/quiz"
	"github.com/Aditi-N-28/ArthaMind/internal/rewards"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// State is the session's position in the chat flow. Only one of the
// non-idle states holds at a time.
type State string

const (
	StateIdle          State = "idle"
	StateAwaitingReply State = "awaiting_reply"
	StateQuizOffered   State = "quiz_offered"
	StateQuizActive    State = "quiz_active"
)

// Session guard errors.
var (
	ErrEmptyMessage = errors.New("message is empty")
	ErrBusy         = errors.New("session is busy")
	ErrNoQuizOffer  = errors.New("no quiz offer pending")
	ErrNoActiveQuiz = errors.New("no active quiz")
	ErrBadAnswer    = errors.New("answer index out of range")
)

// Deps are the collaborators a Session sequences. All are required.
type Deps struct {
	Transcripts *TranscriptRepo
	Profiles    *profile.Repo
	Classifier  *topics.Classifier
	Responder   advisor.Responder
	Quizzes     quiz.Generator
	Tracker     *progress.Tracker
	Ledger      *rewards.Ledger
}

// Session is the per-user conversational core. The transcript it holds
// is authoritative for rendering; the store is a best-effort mirror.
type Session struct {
	userID string
	deps   Deps
	now    func() time.Time

	mu           sync.Mutex
	state        State
	transcript   []ChatMessage
	offeredTopic topics.Topic
	activeQuiz   *quiz.Question
}

// NewSession loads the user's transcript and starts the session Idle.
func NewSession(ctx context.Context, userID string, deps Deps) (*Session, error) {
	transcript, err := deps.Transcripts.Load(ctx, userID)
	if err != nil {
		return nil, err
	}
	return &Session{
		userID:     userID,
		deps:       deps,
		now:        time.Now,
		state:      StateIdle,
		transcript: transcript,
	}, nil
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Transcript returns a copy of the in-memory transcript.
func (s *Session) Transcript() []ChatMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]ChatMessage(nil), s.transcript...)
}

// Exchange is the outcome of one successful sendMessage round trip.
type Exchange struct {
	Reply ChatMessage
	// QuizOffer is set when this exchange made a topic quiz-eligible.
	QuizOffer topics.Topic
}

// SendMessage runs one chat exchange: appends the user message,
// concurrently classifies it and generates a reply, appends the
// assistant message, persists the transcript, grants the engagement
// reward, and records topic progress. A pending quiz offer is dropped
// (not marked) when the user keeps chatting instead.
//
// On generation failure the user message stays in the transcript but
// nothing is persisted and the session returns to Idle.
func (s *Session) SendMessage(ctx context.Context, text string) (*Exchange, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrEmptyMessage
	}

	s.mu.Lock()
	if s.state == StateAwaitingReply || s.state == StateQuizActive {
		s.mu.Unlock()
		return nil, ErrBusy
	}
	s.offeredTopic = ""
	prior := toLLMMessages(s.transcript)
	s.transcript = append(s.transcript, newMessage(RoleUser, text, s.now()))
	s.state = StateAwaitingReply
	s.mu.Unlock()

	fc := s.financialContext(ctx)

	var (
		topic    topics.Topic
		hasTopic bool
		reply    string
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		topic, hasTopic = s.deps.Classifier.Classify(gctx, text)
		return nil
	})
	g.Go(func() error {
		var err error
		reply, err = s.deps.Responder.Respond(gctx, text, fc, prior)
		return err
	})
	if err := g.Wait(); err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.mu.Unlock()
		return nil, fmt.Errorf("generating reply: %w", err)
	}

	s.mu.Lock()
	assistant := newMessage(RoleAssistant, reply, s.now())
	assistant.TopicTag = topic
	s.transcript = append(s.transcript, assistant)
	snapshot := append([]ChatMessage(nil), s.transcript...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	s.deps.Ledger.GrantEngagement(ctx, s.userID)

	ex := &Exchange{Reply: assistant}
	offer := false
	if hasTopic {
		offer = s.deps.Tracker.RecordQuestion(ctx, s.userID, topic)
	}

	s.mu.Lock()
	if offer {
		s.state = StateQuizOffered
		s.offeredTopic = topic
		ex.QuizOffer = topic
	} else {
		s.state = StateIdle
	}
	s.mu.Unlock()

	return ex, nil
}

// AcceptQuizOffer generates a quiz for the offered topic and activates
// it. The topic is marked offered only on success, so a transient
// generation failure never locks the user out of future offers.
func (s *Session) AcceptQuizOffer(ctx context.Context) (*quiz.Question, error) {
	s.mu.Lock()
	if s.state != StateQuizOffered {
		s.mu.Unlock()
		return nil, ErrNoQuizOffer
	}
	topic := s.offeredTopic
	s.state = StateAwaitingReply
	s.mu.Unlock()

	q, err := s.deps.Quizzes.Generate(ctx, topic)
	if err != nil {
		s.mu.Lock()
		s.state = StateIdle
		s.offeredTopic = ""
		s.mu.Unlock()
		return nil, fmt.Errorf("generating quiz: %w", err)
	}

	s.mu.Lock()
	s.transcript = append(s.transcript, newMessage(RoleAssistant, quizIntro(topic, q), s.now()))
	snapshot := append([]ChatMessage(nil), s.transcript...)
	s.activeQuiz = q
	s.offeredTopic = ""
	s.state = StateQuizActive
	s.mu.Unlock()

	s.deps.Tracker.MarkQuizOffered(ctx, s.userID, topic)
	s.persist(ctx, snapshot)

	return q, nil
}

// DeclineQuizOffer drops the pending offer without marking the topic,
// so the same topic may trigger a fresh offer later.
func (s *Session) DeclineQuizOffer() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.state != StateQuizOffered {
		return ErrNoQuizOffer
	}
	s.state = StateIdle
	s.offeredTopic = ""
	return nil
}

// QuizResult is the graded outcome of a quiz answer.
type QuizResult struct {
	Correct       bool
	CorrectAnswer int
	Explanation   string
	Reward        rewards.Grant
	Feedback      ChatMessage
}

// SubmitQuizAnswer grades the active quiz, appends the chosen option
// and the feedback message to the transcript, grants the quiz reward,
// marks the topic completed, and returns the session to Idle. The quiz
// clears immediately; feedback renders from the transcript.
func (s *Session) SubmitQuizAnswer(ctx context.Context, index int) (*QuizResult, error) {
	s.mu.Lock()
	if s.state != StateQuizActive || s.activeQuiz == nil {
		s.mu.Unlock()
		return nil, ErrNoActiveQuiz
	}
	q := s.activeQuiz
	if index < 0 || index >= len(q.Options) {
		s.mu.Unlock()
		return nil, ErrBadAnswer
	}

	correct := q.Correct(index)
	s.transcript = append(s.transcript, newMessage(RoleUser, q.Options[index], s.now()))
	feedback := newMessage(RoleAssistant, quizFeedback(q, correct), s.now())
	s.transcript = append(s.transcript, feedback)
	snapshot := append([]ChatMessage(nil), s.transcript...)
	s.activeQuiz = nil
	s.state = StateIdle
	topic := q.Topic
	s.mu.Unlock()

	grant := s.deps.Ledger.GrantQuizResult(ctx, s.userID, correct)
	s.deps.Tracker.MarkQuizCompleted(ctx, s.userID, topic)
	s.persist(ctx, snapshot)

	return &QuizResult{
		Correct:       correct,
		CorrectAnswer: q.CorrectAnswer,
		Explanation:   q.Explanation,
		Reward:        grant,
		Feedback:      feedback,
	}, nil
}

// persist mirrors the transcript to the store. Failures are logged and
// swallowed; the in-memory transcript stays authoritative.
func (s *Session) persist(ctx context.Context, snapshot []ChatMessage) {
	if err := s.deps.Transcripts.Save(ctx, s.userID, snapshot); err != nil {
		slog.Warn("failed to persist transcript", "user", s.userID, "error", err)
	}
}

// financialContext loads the user's fresh profile context; missing or
// unreadable profiles degrade to a zero context.
func (s *Session) financialContext(ctx context.Context) profile.FinancialContext {
	p, err := s.deps.Profiles.Load(ctx, s.userID)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			slog.Warn("failed to load profile", "user", s.userID, "error", err)
		}
		return profile.FinancialContext{}
	}
	return p.FinancialContext()
}

func toLLMMessages(msgs []ChatMessage) []llm.Message {
	out := make([]llm.Message, len(msgs))
	for i, m := range msgs {
		role := llm.RoleUser
		if m.Role == RoleAssistant {
			role = llm.RoleAssistant
		}
		out[i] = llm.Message{Role: role, Content: m.Content}
	}
	return out
}

func quizIntro(topic topics.Topic, q *quiz.Question) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Great! Let's test your knowledge on %s. Here's a quick quiz:\n\n", topic.DisplayName())
	b.WriteString(q.Question)
	b.WriteString("\n")
	for i, opt := range q.Options {
		fmt.Fprintf(&b, "\n%d. %s", i+1, opt)
	}
	return b.String()
}

func quizFeedback(q *quiz.Question, correct bool) string {
	if correct {
		return fmt.Sprintf("🎉 Correct! %s\n\n✨ +20 XP  🪙 +10 Coins\n\nKeep learning and growing your financial knowledge!", q.Explanation)
	}
	return fmt.Sprintf("Not quite — the right answer is %q. %s\n\n✨ +5 XP for trying!", q.Options[q.CorrectAnswer], q.Explanation)
}
