// Package progress tracks per-topic learning activity: how often a user
// asks about a topic, and whether a quiz was offered or completed for
// it. The in-memory map is authoritative for the session; the store is
// a best-effort mirror updated by merge-write after every mutation.
package progress

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// DefaultQuizThreshold is how many questions on a topic trigger a quiz
// offer. Tunable, not derived.
const DefaultQuizThreshold = 2

// TopicProgress is the per-topic learning record.
type TopicProgress struct {
	QuestionCount int   `json:"questionCount"`
	QuizOffered   bool  `json:"quizOffered"`
	QuizCompleted bool  `json:"quizCompleted"`
	LastAsked     int64 `json:"lastAsked"` // unix millis
}

// learningDoc is the users/{uid}/learning/history document.
type learningDoc struct {
	Topics map[topics.Topic]TopicProgress `json:"topics"`
}

// Tracker records questions per topic and signals quiz eligibility.
type Tracker struct {
	store     docstore.Store
	threshold int
	now       func() time.Time

	mu    sync.Mutex
	cache map[string]map[topics.Topic]TopicProgress // userID → topic → progress
}

// NewTracker creates a Tracker with the given quiz-offer threshold.
// A threshold of 0 or less uses DefaultQuizThreshold.
func NewTracker(store docstore.Store, threshold int) *Tracker {
	if threshold <= 0 {
		threshold = DefaultQuizThreshold
	}
	return &Tracker{
		store:     store,
		threshold: threshold,
		now:       time.Now,
		cache:     make(map[string]map[topics.Topic]TopicProgress),
	}
}

// RecordQuestion increments the topic's question count and updates
// lastAsked. It reports whether a quiz should be offered: true iff the
// count has reached the threshold and no quiz was offered for the topic
// yet.
func (t *Tracker) RecordQuestion(ctx context.Context, userID string, topic topics.Topic) bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.load(ctx, userID)
	p := m[topic]
	p.QuestionCount++
	p.LastAsked = t.now().UnixMilli()
	m[topic] = p

	t.persist(ctx, userID, m)

	return p.QuestionCount >= t.threshold && !p.QuizOffered
}

// MarkQuizOffered flags the topic so it is not offered again. Idempotent.
func (t *Tracker) MarkQuizOffered(ctx context.Context, userID string, topic topics.Topic) {
	t.setFlag(ctx, userID, topic, func(p *TopicProgress) { p.QuizOffered = true })
}

// MarkQuizCompleted flags the topic's quiz as completed. Idempotent.
// A completed quiz implies an offered one, so the offered flag is set
// too even if callers skipped MarkQuizOffered.
func (t *Tracker) MarkQuizCompleted(ctx context.Context, userID string, topic topics.Topic) {
	t.setFlag(ctx, userID, topic, func(p *TopicProgress) {
		p.QuizOffered = true
		p.QuizCompleted = true
	})
}

// Topics returns a copy of the user's per-topic progress map.
func (t *Tracker) Topics(ctx context.Context, userID string) map[topics.Topic]TopicProgress {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.load(ctx, userID)
	out := make(map[topics.Topic]TopicProgress, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (t *Tracker) setFlag(ctx context.Context, userID string, topic topics.Topic, set func(*TopicProgress)) {
	t.mu.Lock()
	defer t.mu.Unlock()

	m := t.load(ctx, userID)
	p := m[topic]
	set(&p)
	m[topic] = p

	t.persist(ctx, userID, m)
}

// load returns the user's cached topic map, reading it from the store
// on first access. A read failure starts an empty map; the merge-write
// on the next mutation reconciles with whatever the store holds.
func (t *Tracker) load(ctx context.Context, userID string) map[topics.Topic]TopicProgress {
	if m, ok := t.cache[userID]; ok {
		return m
	}

	m := make(map[topics.Topic]TopicProgress)
	raw, err := t.store.Get(ctx, userID, docstore.PathLearningHistory)
	if err != nil {
		if !errors.Is(err, docstore.ErrNotFound) {
			slog.Warn("failed to load learning history", "user", userID, "error", err)
		}
	} else {
		var doc learningDoc
		if err := json.Unmarshal(raw, &doc); err != nil {
			slog.Warn("malformed learning history", "user", userID, "error", err)
		} else if doc.Topics != nil {
			m = doc.Topics
		}
	}

	t.cache[userID] = m
	return m
}

// persist merge-writes the full topic map. Failures are logged and
// swallowed: the in-memory state stays authoritative for the session.
func (t *Tracker) persist(ctx context.Context, userID string, m map[topics.Topic]TopicProgress) {
	doc := learningDoc{Topics: m}
	if err := t.store.Set(ctx, userID, docstore.PathLearningHistory, doc, docstore.SetOptions{Merge: true}); err != nil {
		slog.Warn("failed to persist learning history", "user", userID, "error", err)
	}
}
