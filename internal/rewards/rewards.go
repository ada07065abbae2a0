// Package rewards grants XP and coins for chat engagement and quiz
// results. Grants are atomic store-side increments, never local
// read-modify-writes, so concurrent sessions cannot lose updates.
// Grants are best-effort: a store failure is logged and swallowed and
// must never block the chat flow.
package rewards

import (
	"context"
	"log/slog"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
)

// Config holds the reward amounts. Hardcoded product constants in
// spirit, but carried as configuration.
type Config struct {
	EngagementXP     int64
	QuizCorrectXP    int64
	QuizCorrectCoins int64
	QuizIncorrectXP  int64
}

// DefaultConfig returns the stock reward amounts.
func DefaultConfig() Config {
	return Config{
		EngagementXP:     5,
		QuizCorrectXP:    20,
		QuizCorrectCoins: 10,
		QuizIncorrectXP:  5,
	}
}

// Grant is one XP/coin award. Amounts are never negative.
type Grant struct {
	XP    int64
	Coins int64
}

// Ledger applies grants against the user profile's gamification fields.
type Ledger struct {
	store docstore.Store
	cfg   Config
}

// NewLedger creates a Ledger with the given amounts. A zero Config is
// replaced with DefaultConfig.
func NewLedger(store docstore.Store, cfg Config) *Ledger {
	if cfg == (Config{}) {
		cfg = DefaultConfig()
	}
	return &Ledger{store: store, cfg: cfg}
}

// Grant applies the award as atomic increments. Zero fields are omitted
// from the write; a fully zero grant is a no-op.
func (l *Ledger) Grant(ctx context.Context, userID string, g Grant) {
	deltas := make(map[string]int64, 2)
	if g.XP > 0 {
		deltas["gamification.xp"] = g.XP
	}
	if g.Coins > 0 {
		deltas["gamification.coins"] = g.Coins
	}
	if len(deltas) == 0 {
		return
	}
	if err := l.store.Increment(ctx, userID, docstore.PathProfile, deltas); err != nil {
		slog.Warn("reward grant dropped", "user", userID, "xp", g.XP, "coins", g.Coins, "error", err)
	}
}

// GrantEngagement awards the fixed per-exchange XP.
func (l *Ledger) GrantEngagement(ctx context.Context, userID string) {
	l.Grant(ctx, userID, Grant{XP: l.cfg.EngagementXP})
}

// GrantQuizResult awards the quiz reward for a correct or incorrect answer.
func (l *Ledger) GrantQuizResult(ctx context.Context, userID string, correct bool) Grant {
	g := Grant{XP: l.cfg.QuizIncorrectXP}
	if correct {
		g = Grant{XP: l.cfg.QuizCorrectXP, Coins: l.cfg.QuizCorrectCoins}
	}
	l.Grant(ctx, userID, g)
	return g
}
