package profile

import (
	"context"
	"testing"

	"github.com/Aditi-N-28/ArthaMind/internal/docstore"
)

func TestGamificationLevel(t *testing.T) {
	tests := []struct {
		xp   int64
		want int64
	}{
		{0, 1},
		{99, 1},
		{100, 2},
		{250, 3},
		{1000, 11},
	}

	for _, tt := range tests {
		got := Gamification{XP: tt.xp}.Level()
		if got != tt.want {
			t.Errorf("Level(xp=%d) = %d, want %d", tt.xp, got, tt.want)
		}
	}
}

func TestFinancialContextDerivedValues(t *testing.T) {
	fc := FinancialContext{
		MonthlySalary: 50000,
		Expenses:      Expenses{Personal: 5000, Medical: 2000, Housing: 15000, LoanDebt: 3000},
	}

	if got := fc.TotalExpenses(); got != 25000 {
		t.Errorf("TotalExpenses = %d, want 25000", got)
	}
	if got := fc.DisposableIncome(); got != 25000 {
		t.Errorf("DisposableIncome = %d, want 25000", got)
	}
}

func TestFinancialContextFromIncompleteProfile(t *testing.T) {
	p := &UserProfile{UID: "u1"}
	fc := p.FinancialContext()

	if fc.Age != 0 || fc.MonthlySalary != 0 {
		t.Errorf("expected zero context for un-onboarded profile, got %+v", fc)
	}
}

func TestRepoLoadOrInitCreatesProfile(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewRepo(store)
	ctx := context.Background()

	p, err := repo.LoadOrInit(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.UID != "u1" {
		t.Errorf("UID = %q, want u1", p.UID)
	}
	if p.Gamification.XP != 0 || p.Gamification.Coins != 0 {
		t.Errorf("fresh profile balances = %+v, want zero", p.Gamification)
	}

	again, err := repo.LoadOrInit(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if again.CreatedAt != p.CreatedAt {
		t.Error("second LoadOrInit must return the stored profile, not recreate it")
	}
}

func TestRepoSaveDoesNotClobberBalances(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewRepo(store)
	ctx := context.Background()

	p, err := repo.LoadOrInit(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// A reward lands between load and save.
	if err := store.Increment(ctx, "u1", docstore.PathProfile, map[string]int64{
		"gamification.xp": 25,
	}); err != nil {
		t.Fatalf("increment: %v", err)
	}

	p.Email = "a@example.com"
	if err := repo.Save(ctx, "u1", p); err != nil {
		t.Fatalf("save: %v", err)
	}

	got, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if got.Gamification.XP != 25 {
		t.Errorf("xp = %d, want 25 (save must not overwrite balances)", got.Gamification.XP)
	}
	if got.Email != "a@example.com" {
		t.Errorf("email = %q, want saved value", got.Email)
	}
}

func TestRepoSaveOnboardingSections(t *testing.T) {
	store := docstore.NewMemory()
	repo := NewRepo(store)
	ctx := context.Background()

	if _, err := repo.LoadOrInit(ctx, "u1"); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := repo.SavePersonalData(ctx, "u1", PersonalData{FullName: "Asha", Age: 28, Gender: "female"}); err != nil {
		t.Fatalf("save personal: %v", err)
	}
	if err := repo.SaveFinancialData(ctx, "u1", FinancialData{
		MonthlySalary: 50000,
		Expenses:      Expenses{Housing: 15000},
	}); err != nil {
		t.Fatalf("save financial: %v", err)
	}

	p, err := repo.Load(ctx, "u1")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if p.PersonalData == nil || p.PersonalData.FullName != "Asha" {
		t.Errorf("personalData = %+v, want Asha", p.PersonalData)
	}
	if p.FinancialData == nil || p.FinancialData.MonthlySalary != 50000 {
		t.Errorf("financialData = %+v, want salary 50000", p.FinancialData)
	}
	if !p.OnboardingComplete {
		t.Error("onboardingComplete must be set after financial data is saved")
	}
}
