package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
)

// Repo reads and writes user profiles through the document store.
type Repo struct {
	store docstore.Store
}

// NewRepo creates a profile repository.
func NewRepo(store docstore.Store) *Repo {
	return &Repo{store: store}
}

// Load returns the stored profile, or docstore.ErrNotFound.
func (r *Repo) Load(ctx context.Context, userID string) (*UserProfile, error) {
	raw, err := r.store.Get(ctx, userID, docstore.PathProfile)
	if err != nil {
		return nil, err
	}
	var p UserProfile
	if err := json.Unmarshal(raw, &p); err != nil {
		return nil, fmt.Errorf("parse profile for %s: %w", userID, err)
	}
	return &p, nil
}

// LoadOrInit returns the stored profile, creating a fresh one with zeroed
// gamification balances if none exists yet.
func (r *Repo) LoadOrInit(ctx context.Context, userID string) (*UserProfile, error) {
	p, err := r.Load(ctx, userID)
	if err == nil {
		return p, nil
	}
	if !errors.Is(err, docstore.ErrNotFound) {
		return nil, err
	}

	p = &UserProfile{
		UID:       userID,
		CreatedAt: time.Now().UnixMilli(),
	}
	if err := r.Save(ctx, userID, p); err != nil {
		return nil, err
	}
	return p, nil
}

// Save merge-writes the profile document. Gamification balances are only
// ever changed through store-side increments, so Save strips them from the
// payload: merging a possibly stale balance would clobber grants issued by
// a concurrent session.
func (r *Repo) Save(ctx context.Context, userID string, p *UserProfile) error {
	body, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	var doc map[string]any
	if err := json.Unmarshal(body, &doc); err != nil {
		return fmt.Errorf("encode profile: %w", err)
	}
	delete(doc, "gamification")
	return r.store.Set(ctx, userID, docstore.PathProfile, doc, docstore.SetOptions{Merge: true})
}

// SavePersonalData merge-writes only the personal onboarding section.
func (r *Repo) SavePersonalData(ctx context.Context, userID string, pd PersonalData) error {
	return r.store.Set(ctx, userID, docstore.PathProfile, map[string]any{
		"personalData": pd,
	}, docstore.SetOptions{Merge: true})
}

// SaveFinancialData merge-writes only the financial onboarding section and
// flips onboardingComplete.
func (r *Repo) SaveFinancialData(ctx context.Context, userID string, fd FinancialData) error {
	return r.store.Set(ctx, userID, docstore.PathProfile, map[string]any{
		"financialData":      fd,
		"onboardingComplete": true,
	}, docstore.SetOptions{Merge: true})
}
