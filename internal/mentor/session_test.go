package mentor

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/Aditi-N-28/ArthaMind/internal/advisor"
	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
	"github.com/Aditi-N-28/ArthaMind/internal/quiz"
	"github.com/Aditi-N-28/ArthaMind/internal/rewards"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

const user = "u1"

// stubQuizzes serves a fixed question so grading is deterministic.
type stubQuizzes struct {
	err error
}

func (s stubQuizzes) Generate(_ context.Context, topic topics.Topic) (*quiz.Question, error) {
	if s.err != nil {
		return nil, s.err
	}
	return &quiz.Question{
		Topic:         topic,
		Question:      "Which repayment method targets the highest interest rate first?",
		Options:       []string{"Snowball", "Avalanche", "Consolidation", "Minimum payment"},
		CorrectAnswer: 1,
		Explanation:   "The Avalanche method saves the most interest.",
	}, nil
}

// failingResponder simulates an unrecoverable generation failure.
type failingResponder struct{}

func (failingResponder) Respond(context.Context, string, profile.FinancialContext, []llm.Message) (string, error) {
	return "", errors.New("generation failed")
}

func seedProfile(t *testing.T, mem *docstore.Memory) {
	t.Helper()
	repo := profile.NewRepo(mem)
	p, err := repo.LoadOrInit(context.Background(), user)
	if err != nil {
		t.Fatal(err)
	}
	p.PersonalData = &profile.PersonalData{FullName: "Asha", Age: 25}
	p.FinancialData = &profile.FinancialData{
		MonthlySalary: 50000,
		Expenses:      profile.Expenses{Personal: 5000, Medical: 2000, Housing: 15000, LoanDebt: 3000},
	}
	if err := repo.Save(context.Background(), user, p); err != nil {
		t.Fatal(err)
	}
}

func newTestSession(t *testing.T, mem *docstore.Memory, gen quiz.Generator) *Session {
	t.Helper()
	s, err := NewSession(context.Background(), user, Deps{
		Transcripts: NewTranscriptRepo(mem),
		Profiles:    profile.NewRepo(mem),
		Classifier:  topics.NewClassifier(nil),
		Responder:   advisor.NewTemplateResponder(),
		Quizzes:     gen,
		Tracker:     progress.NewTracker(mem, 2),
		Ledger:      rewards.NewLedger(mem, rewards.Config{}),
	})
	if err != nil {
		t.Fatal(err)
	}
	return s
}

func balances(t *testing.T, mem *docstore.Memory) profile.Gamification {
	t.Helper()
	raw, err := mem.Get(context.Background(), user, docstore.PathProfile)
	if err != nil {
		t.Fatal(err)
	}
	var doc struct {
		Gamification profile.Gamification `json:"gamification"`
	}
	if err := json.Unmarshal(raw, &doc); err != nil {
		t.Fatal(err)
	}
	return doc.Gamification
}

func TestNewSession_SeedsWelcome(t *testing.T) {
	s := newTestSession(t, docstore.NewMemory(), stubQuizzes{})

	msgs := s.Transcript()
	if len(msgs) != 1 {
		t.Fatalf("expected 1 message, got %d", len(msgs))
	}
	if msgs[0].Role != RoleAssistant || !strings.Contains(msgs[0].Content, "Maarg") {
		t.Errorf("unexpected welcome message: %+v", msgs[0])
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}
}

func TestSendMessage_EmptyRejected(t *testing.T) {
	s := newTestSession(t, docstore.NewMemory(), stubQuizzes{})
	if _, err := s.SendMessage(context.Background(), "   "); !errors.Is(err, ErrEmptyMessage) {
		t.Fatalf("expected ErrEmptyMessage, got %v", err)
	}
}

func TestSendMessage_RoundTrip(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	ex, err := s.SendMessage(ctx, "should I repay my loan faster?")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ex.Reply.Role != RoleAssistant || ex.Reply.TopicTag != topics.TopicLoan {
		t.Errorf("unexpected reply: %+v", ex.Reply)
	}
	if ex.QuizOffer != "" {
		t.Errorf("first mention must not offer a quiz, got %q", ex.QuizOffer)
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}

	// Welcome + user + assistant.
	msgs := s.Transcript()
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages, got %d", len(msgs))
	}

	// Engagement reward granted.
	if got := balances(t, mem); got.XP != 5 {
		t.Errorf("expected 5 XP, got %d", got.XP)
	}

	// Persisted transcript matches the in-memory one.
	reloaded, err := NewTranscriptRepo(mem).Load(ctx, user)
	if err != nil {
		t.Fatal(err)
	}
	if len(reloaded) != len(msgs) {
		t.Fatalf("persisted %d messages, expected %d", len(reloaded), len(msgs))
	}
	for i := range msgs {
		if reloaded[i] != msgs[i] {
			t.Errorf("message %d differs after reload: %+v vs %+v", i, reloaded[i], msgs[i])
		}
	}
}

func TestSendMessage_LoanScenarioOffersQuiz(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	if _, err := s.SendMessage(ctx, "how do I handle my loan?"); err != nil {
		t.Fatal(err)
	}
	ex, err := s.SendMessage(ctx, "what about my debt repayment?")
	if err != nil {
		t.Fatal(err)
	}

	// salary 50000, loanDebt 3000 → ratio 6.0%
	if !strings.Contains(ex.Reply.Content, "6.0%") {
		t.Errorf("expected debt-to-income ratio in reply, got: %q", ex.Reply.Content)
	}
	if ex.QuizOffer != topics.TopicLoan {
		t.Errorf("expected loan quiz offer, got %q", ex.QuizOffer)
	}
	if s.State() != StateQuizOffered {
		t.Errorf("expected quiz_offered, got %s", s.State())
	}
}

func TestSendMessage_FailureKeepsUserMessageUnpersisted(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	s, err := NewSession(ctx, user, Deps{
		Transcripts: NewTranscriptRepo(mem),
		Profiles:    profile.NewRepo(mem),
		Classifier:  topics.NewClassifier(nil),
		Responder:   failingResponder{},
		Quizzes:     stubQuizzes{},
		Tracker:     progress.NewTracker(mem, 2),
		Ledger:      rewards.NewLedger(mem, rewards.Config{}),
	})
	if err != nil {
		t.Fatal(err)
	}

	if _, err := s.SendMessage(ctx, "hello"); err == nil {
		t.Fatal("expected error from failing responder")
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle after failure, got %s", s.State())
	}

	// The optimistic user message stays in memory...
	msgs := s.Transcript()
	if msgs[len(msgs)-1].Role != RoleUser {
		t.Error("user message missing from transcript")
	}
	// ...but nothing was persisted.
	if _, err := mem.Get(ctx, user, docstore.PathChatHistory); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("transcript must not be persisted on failure, got err=%v", err)
	}
}

func TestSendMessage_BusyWhileQuizActive(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)
	if _, err := s.AcceptQuizOffer(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SendMessage(ctx, "another question"); !errors.Is(err, ErrBusy) {
		t.Fatalf("expected ErrBusy, got %v", err)
	}
}

func TestSendMessage_WhileOfferedDropsOffer(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)

	// Keep chatting instead of answering the offer: allowed, offer dropped.
	ex, err := s.SendMessage(ctx, "actually, tell me about tax deductions")
	if err != nil {
		t.Fatal(err)
	}
	if ex.Reply.TopicTag != topics.TopicTax {
		t.Errorf("expected tax tag, got %q", ex.Reply.TopicTag)
	}
	if _, err := s.AcceptQuizOffer(ctx); !errors.Is(err, ErrNoQuizOffer) {
		t.Fatalf("expected offer to be dropped, got %v", err)
	}
}

// offerQuiz drives the session to StateQuizOffered for the loan topic.
func offerQuiz(ctx context.Context, t *testing.T, s *Session) {
	t.Helper()
	if _, err := s.SendMessage(ctx, "loan question one"); err != nil {
		t.Fatal(err)
	}
	ex, err := s.SendMessage(ctx, "loan question two")
	if err != nil {
		t.Fatal(err)
	}
	if ex.QuizOffer != topics.TopicLoan {
		t.Fatalf("expected loan offer, got %q", ex.QuizOffer)
	}
}

func TestAcceptQuizOffer(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)

	q, err := s.AcceptQuizOffer(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if q.Topic != topics.TopicLoan {
		t.Errorf("expected loan quiz, got %q", q.Topic)
	}
	if s.State() != StateQuizActive {
		t.Errorf("expected quiz_active, got %s", s.State())
	}

	// Intro message appended with the question text.
	msgs := s.Transcript()
	last := msgs[len(msgs)-1]
	if last.Role != RoleAssistant || !strings.Contains(last.Content, q.Question) {
		t.Errorf("expected quiz intro, got: %+v", last)
	}

	// Topic is now marked offered: a further loan exchange must not re-offer.
	if _, err := s.SubmitQuizAnswer(ctx, 0); err != nil {
		t.Fatal(err)
	}
	ex, err := s.SendMessage(ctx, "one more loan question")
	if err != nil {
		t.Fatal(err)
	}
	if ex.QuizOffer != "" {
		t.Errorf("quiz must not be re-offered once marked, got %q", ex.QuizOffer)
	}
}

func TestAcceptQuizOffer_GenerationFailureAllowsReoffer(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{err: errors.New("generator down")})

	offerQuiz(ctx, t, s)

	if _, err := s.AcceptQuizOffer(ctx); err == nil {
		t.Fatal("expected generation error")
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle after failure, got %s", s.State())
	}

	// Topic not marked offered, so the next loan exchange offers again.
	ex, err := s.SendMessage(ctx, "loan question three")
	if err != nil {
		t.Fatal(err)
	}
	if ex.QuizOffer != topics.TopicLoan {
		t.Errorf("expected fresh offer after failed accept, got %q", ex.QuizOffer)
	}
}

func TestDeclineQuizOffer_AllowsReoffer(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)

	if err := s.DeclineQuizOffer(); err != nil {
		t.Fatal(err)
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}

	ex, err := s.SendMessage(ctx, "loan question three")
	if err != nil {
		t.Fatal(err)
	}
	if ex.QuizOffer != topics.TopicLoan {
		t.Errorf("expected fresh offer after decline, got %q", ex.QuizOffer)
	}
}

func TestSubmitQuizAnswer_Correct(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)
	if _, err := s.AcceptQuizOffer(ctx); err != nil {
		t.Fatal(err)
	}

	before := balances(t, mem)
	res, err := s.SubmitQuizAnswer(ctx, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !res.Correct || res.Reward.XP != 20 || res.Reward.Coins != 10 {
		t.Errorf("unexpected result: %+v", res)
	}
	after := balances(t, mem)
	if after.XP != before.XP+20 || after.Coins != before.Coins+10 {
		t.Errorf("balances %+v → %+v, expected +20/+10", before, after)
	}
	if s.State() != StateIdle {
		t.Errorf("expected idle, got %s", s.State())
	}

	msgs := s.Transcript()
	chosen, feedback := msgs[len(msgs)-2], msgs[len(msgs)-1]
	if chosen.Role != RoleUser || chosen.Content != "Avalanche" {
		t.Errorf("expected chosen option message, got: %+v", chosen)
	}
	if feedback.Role != RoleAssistant || !strings.Contains(feedback.Content, res.Explanation) {
		t.Errorf("expected explanation in feedback, got: %+v", feedback)
	}
}

func TestSubmitQuizAnswer_Incorrect(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)
	if _, err := s.AcceptQuizOffer(ctx); err != nil {
		t.Fatal(err)
	}

	before := balances(t, mem)
	res, err := s.SubmitQuizAnswer(ctx, 0)
	if err != nil {
		t.Fatal(err)
	}
	if res.Correct || res.Reward.XP != 5 || res.Reward.Coins != 0 {
		t.Errorf("unexpected result: %+v", res)
	}
	after := balances(t, mem)
	if after.XP != before.XP+5 || after.Coins != before.Coins {
		t.Errorf("balances %+v → %+v, expected +5/+0", before, after)
	}

	// Feedback reveals the correct option.
	msgs := s.Transcript()
	if !strings.Contains(msgs[len(msgs)-1].Content, "Avalanche") {
		t.Errorf("expected correct option in feedback, got: %q", msgs[len(msgs)-1].Content)
	}
}

func TestSubmitQuizAnswer_MarksCompleted(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	offerQuiz(ctx, t, s)
	if _, err := s.AcceptQuizOffer(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitQuizAnswer(ctx, 1); err != nil {
		t.Fatal(err)
	}

	tracker := progress.NewTracker(mem, 2)
	p := tracker.Topics(ctx, user)[topics.TopicLoan]
	if !p.QuizOffered || !p.QuizCompleted {
		t.Errorf("expected offered+completed, got %+v", p)
	}
}

func TestGuards(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	if _, err := s.AcceptQuizOffer(ctx); !errors.Is(err, ErrNoQuizOffer) {
		t.Errorf("expected ErrNoQuizOffer, got %v", err)
	}
	if err := s.DeclineQuizOffer(); !errors.Is(err, ErrNoQuizOffer) {
		t.Errorf("expected ErrNoQuizOffer, got %v", err)
	}
	if _, err := s.SubmitQuizAnswer(ctx, 0); !errors.Is(err, ErrNoActiveQuiz) {
		t.Errorf("expected ErrNoActiveQuiz, got %v", err)
	}

	offerQuiz(ctx, t, s)
	if _, err := s.AcceptQuizOffer(ctx); err != nil {
		t.Fatal(err)
	}
	if _, err := s.SubmitQuizAnswer(ctx, 7); !errors.Is(err, ErrBadAnswer) {
		t.Errorf("expected ErrBadAnswer, got %v", err)
	}
	// A bad index leaves the quiz active.
	if s.State() != StateQuizActive {
		t.Errorf("expected quiz_active, got %s", s.State())
	}
}

func TestTranscript_RoundTripAcrossSessions(t *testing.T) {
	ctx := context.Background()
	mem := docstore.NewMemory()
	seedProfile(t, mem)
	s := newTestSession(t, mem, stubQuizzes{})

	inputs := []string{"tell me about sip", "how do I budget?", "what about tax?"}
	for _, in := range inputs {
		if _, err := s.SendMessage(ctx, in); err != nil {
			t.Fatal(err)
		}
	}
	want := s.Transcript()

	s2 := newTestSession(t, mem, stubQuizzes{})
	got := s2.Transcript()
	if len(got) != len(want) {
		t.Fatalf("reloaded %d messages, expected %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d differs: %+v vs %+v", i, got[i], want[i])
		}
	}
}
