package docstore

import (
	"context"
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openTestStore(t *testing.T) *SQLite {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteGetMissing(t *testing.T) {
	s := openTestStore(t)

	_, err := s.Get(context.Background(), "u1", PathProfile)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSQLiteSetGetRoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	doc := map[string]any{"email": "a@example.com", "onboardingComplete": false}
	require.NoError(t, s.Set(ctx, "u1", PathProfile, doc, SetOptions{}))

	raw, err := s.Get(ctx, "u1", PathProfile)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	assert.Equal(t, "a@example.com", got["email"])
	assert.Equal(t, false, got["onboardingComplete"])
}

func TestSQLiteMergePreservesSiblings(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", PathProfile, map[string]any{
		"email":        "a@example.com",
		"gamification": map[string]any{"xp": 10, "coins": 2},
	}, SetOptions{}))

	require.NoError(t, s.Set(ctx, "u1", PathProfile, map[string]any{
		"gamification": map[string]any{"xp": 15},
	}, SetOptions{Merge: true}))

	raw, err := s.Get(ctx, "u1", PathProfile)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	gam := got["gamification"].(map[string]any)
	assert.Equal(t, float64(15), gam["xp"])
	assert.Equal(t, float64(2), gam["coins"], "sibling field must survive merge")
	assert.Equal(t, "a@example.com", got["email"])
}

func TestSQLiteMergeCreatesDocument(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", PathChatHistory, map[string]any{
		"messages": []string{"hi"},
	}, SetOptions{Merge: true}))

	raw, err := s.Get(ctx, "u1", PathChatHistory)
	require.NoError(t, err)
	assert.JSONEq(t, `{"messages":["hi"]}`, string(raw))
}

func TestSQLiteIncrement(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	// Increments on an absent document create it.
	require.NoError(t, s.Increment(ctx, "u1", PathProfile, map[string]int64{
		"gamification.xp":    5,
		"gamification.coins": 10,
	}))
	require.NoError(t, s.Increment(ctx, "u1", PathProfile, map[string]int64{
		"gamification.xp": 20,
	}))

	raw, err := s.Get(ctx, "u1", PathProfile)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	gam := got["gamification"].(map[string]any)
	assert.Equal(t, float64(25), gam["xp"])
	assert.Equal(t, float64(10), gam["coins"])
}

func TestSQLiteIncrementFailureLeavesValueUnchanged(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", PathProfile, map[string]any{
		"gamification": map[string]any{"xp": 10, "coins": "broken"},
	}, SetOptions{}))

	// coins is not numeric, so the whole increment must fail atomically.
	err := s.Increment(ctx, "u1", PathProfile, map[string]int64{
		"gamification.xp":    5,
		"gamification.coins": 1,
	})
	require.Error(t, err)

	raw, err := s.Get(ctx, "u1", PathProfile)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(raw, &got))
	gam := got["gamification"].(map[string]any)
	assert.Equal(t, float64(10), gam["xp"], "no partial increment on failure")
}

func TestSQLiteUsersAreIsolated(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", PathProfile, map[string]any{"email": "a@x.com"}, SetOptions{}))
	require.NoError(t, s.Set(ctx, "u2", PathProfile, map[string]any{"email": "b@x.com"}, SetOptions{}))

	raw, err := s.Get(ctx, "u2", PathProfile)
	require.NoError(t, err)
	assert.JSONEq(t, `{"email":"b@x.com"}`, string(raw))
}

func TestSQLiteDeleteUser(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "u1", PathProfile, map[string]any{"a": 1}, SetOptions{}))
	require.NoError(t, s.Set(ctx, "u1", PathChatHistory, map[string]any{"b": 2}, SetOptions{}))

	n, err := s.DeleteUser(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = s.Get(ctx, "u1", PathProfile)
	assert.ErrorIs(t, err, ErrNotFound)
}
