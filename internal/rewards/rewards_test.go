package rewards

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
)

const user = "u1"

func balances(t *testing.T, mem *docstore.Memory) profile.Gamification {
	t.Helper()
	raw, err := mem.Get(context.Background(), user, docstore.PathProfile)
	if err != nil {
		if errors.Is(err, docstore.ErrNotFound) {
			return profile.Gamification{}
		}
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

func TestGrantEngagement(t *testing.T) {
	mem := docstore.NewMemory()
	l := NewLedger(mem, Config{})

	l.GrantEngagement(context.Background(), user)
	l.GrantEngagement(context.Background(), user)

	got := balances(t, mem)
	if got.XP != 10 || got.Coins != 0 {
		t.Errorf("unexpected balances: %+v", got)
	}
}

func TestGrantQuizResult(t *testing.T) {
	mem := docstore.NewMemory()
	l := NewLedger(mem, Config{})
	ctx := context.Background()

	g := l.GrantQuizResult(ctx, user, true)
	if g.XP != 20 || g.Coins != 10 {
		t.Errorf("unexpected correct grant: %+v", g)
	}

	g = l.GrantQuizResult(ctx, user, false)
	if g.XP != 5 || g.Coins != 0 {
		t.Errorf("unexpected incorrect grant: %+v", g)
	}

	got := balances(t, mem)
	if got.XP != 25 || got.Coins != 10 {
		t.Errorf("unexpected balances: %+v", got)
	}
}

func TestGrant_FailureLeavesBalancesUnchanged(t *testing.T) {
	mem := docstore.NewMemory()
	l := NewLedger(mem, Config{})
	ctx := context.Background()

	l.GrantEngagement(ctx, user)

	mem.FailIncrement = errors.New("store down")
	l.GrantQuizResult(ctx, user, true) // dropped, not partially applied

	got := balances(t, mem)
	if got.XP != 5 || got.Coins != 0 {
		t.Errorf("failed grant must leave balances unchanged: %+v", got)
	}
}

func TestGrant_ZeroGrantWritesNothing(t *testing.T) {
	mem := docstore.NewMemory()
	l := NewLedger(mem, Config{})

	l.Grant(context.Background(), user, Grant{})

	if _, err := mem.Get(context.Background(), user, docstore.PathProfile); !errors.Is(err, docstore.ErrNotFound) {
		t.Errorf("expected no document, got err=%v", err)
	}
}

func TestGrant_CustomAmounts(t *testing.T) {
	mem := docstore.NewMemory()
	l := NewLedger(mem, Config{EngagementXP: 1, QuizCorrectXP: 2, QuizCorrectCoins: 3, QuizIncorrectXP: 4})
	ctx := context.Background()

	l.GrantEngagement(ctx, user)
	l.GrantQuizResult(ctx, user, true)
	l.GrantQuizResult(ctx, user, false)

	got := balances(t, mem)
	if got.XP != 7 || got.Coins != 3 {
		t.Errorf("unexpected balances: %+v", got)
	}
}
