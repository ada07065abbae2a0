// Package profile holds the per-user onboarding record: personal details,
// financial details, and gamification balances. The financial portion feeds
// the mentor's generators as read-only context.
package profile

// PersonalData is collected during onboarding.
type PersonalData struct {
	FullName    string `json:"fullName"`
	DateOfBirth string `json:"dateOfBirth"`
	Age         int    `json:"age"`
	Gender      string `json:"gender"`
}

// Expenses is the monthly expense breakdown, in whole rupees.
type Expenses struct {
	Personal int64 `json:"personal"`
	Medical  int64 `json:"medical"`
	Housing  int64 `json:"housing"`
	LoanDebt int64 `json:"loanDebt"`
}

// Total returns the sum of all expense categories.
func (e Expenses) Total() int64 {
	return e.Personal + e.Medical + e.Housing + e.LoanDebt
}

// Savings tracks the user's savings goal.
type Savings struct {
	GoalAmount     int64 `json:"goalAmount"`
	CurrentSavings int64 `json:"currentSavings"`
}

// FinancialData is collected during onboarding.
type FinancialData struct {
	MonthlySalary int64    `json:"monthlySalary"`
	Expenses      Expenses `json:"expenses"`
	Savings       Savings  `json:"savings"`
}

// Gamification is the XP/coin balance. It is mutated only through atomic
// store-side increments (rewards.Ledger), never read-modify-written here.
type Gamification struct {
	XP    int64 `json:"xp"`
	Coins int64 `json:"coins"`
}

// Level derives the user's level from XP.
func (g Gamification) Level() int64 {
	return g.XP/100 + 1
}

// UserProfile is the users/{uid} document.
type UserProfile struct {
	UID                string         `json:"uid"`
	Email              string         `json:"email"`
	PersonalData       *PersonalData  `json:"personalData,omitempty"`
	FinancialData      *FinancialData `json:"financialData,omitempty"`
	Gamification       Gamification   `json:"gamification"`
	CreatedAt          int64          `json:"createdAt"`
	OnboardingComplete bool           `json:"onboardingComplete"`
}

// FinancialContext is the read-only slice of the profile the generators
// see. Zero values stand in for missing onboarding data.
type FinancialContext struct {
	Age           int
	MonthlySalary int64
	Expenses      Expenses
	Savings       Savings
}

// TotalExpenses is the sum of all monthly expense categories.
func (c FinancialContext) TotalExpenses() int64 {
	return c.Expenses.Total()
}

// DisposableIncome is monthly salary minus total expenses. May be negative.
func (c FinancialContext) DisposableIncome() int64 {
	return c.MonthlySalary - c.TotalExpenses()
}

// FinancialContext extracts the generator-facing view of the profile.
func (p *UserProfile) FinancialContext() FinancialContext {
	var fc FinancialContext
	if p.PersonalData != nil {
		fc.Age = p.PersonalData.Age
	}
	if p.FinancialData != nil {
		fc.MonthlySalary = p.FinancialData.MonthlySalary
		fc.Expenses = p.FinancialData.Expenses
		fc.Savings = p.FinancialData.Savings
	}
	return fc
}
