package advisor

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/Aditi-N-28/ArthaMind/internal/llm"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/topics"
)

// TemplateResponder produces deterministic per-topic advice by
// substituting the user's numbers into fixed templates. It never fails,
// which makes it the terminal fallback in the responder chain.
type TemplateResponder struct{}

func NewTemplateResponder() *TemplateResponder {
	return &TemplateResponder{}
}

func (r *TemplateResponder) Respond(_ context.Context, question string, fc profile.FinancialContext, _ []llm.Message) (string, error) {
	topic, ok := topics.MatchKeywords(question)
	if !ok {
		return genericResponse(fc), nil
	}
	switch topic {
	case topics.TopicSIP:
		return sipResponse(fc), nil
	case topics.TopicLoan:
		return loanResponse(fc), nil
	case topics.TopicTax:
		return taxResponse(), nil
	case topics.TopicInvestment:
		return investmentResponse(fc), nil
	case topics.TopicInsurance:
		return insuranceResponse(fc), nil
	case topics.TopicSavings:
		return savingsResponse(fc), nil
	case topics.TopicRetirement:
		return retirementResponse(fc), nil
	case topics.TopicBudget:
		return budgetResponse(fc), nil
	default:
		return genericResponse(fc), nil
	}
}

// recommendedSIP is 30% of monthly disposable income, rounded down.
func recommendedSIP(fc profile.FinancialContext) int64 {
	return decimal.NewFromInt(fc.DisposableIncome()).
		Mul(decimal.New(3, -1)).
		Floor().
		IntPart()
}

// debtToIncomeRatio is loanDebt/salary as a percentage with one decimal.
// A zero salary yields "0.0" rather than a division error.
func debtToIncomeRatio(fc profile.FinancialContext) decimal.Decimal {
	if fc.MonthlySalary == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(fc.Expenses.LoanDebt).
		Div(decimal.NewFromInt(fc.MonthlySalary)).
		Mul(decimal.NewFromInt(100))
}

// savingsRate is disposableIncome/salary as a percentage.
func savingsRate(fc profile.FinancialContext) decimal.Decimal {
	if fc.MonthlySalary == 0 {
		return decimal.Zero
	}
	return decimal.NewFromInt(fc.DisposableIncome()).
		Div(decimal.NewFromInt(fc.MonthlySalary)).
		Mul(decimal.NewFromInt(100))
}

func sipResponse(fc profile.FinancialContext) string {
	return fmt.Sprintf(`**SIP (Systematic Investment Plan) — Simplified!**

• Your disposable income: ₹%s
• Recommended SIP: ₹%s (30%% of disposable income)

**Why SIP?**
• Rupee cost averaging
• Long-term compounding
• Perfect for beginners

Want fund suggestions too?`,
		formatINR(fc.DisposableIncome()), formatINR(recommendedSIP(fc)))
}

func loanResponse(fc profile.FinancialContext) string {
	ratio := debtToIncomeRatio(fc)

	verdict := "✓ Your debt levels seem manageable."
	if ratio.GreaterThan(decimal.NewFromInt(30)) {
		verdict = "⚠️ Focus on debt reduction using the Avalanche or Snowball method."
	}

	return fmt.Sprintf(`**Loan / Debt Strategy**

Your debt-to-income ratio: **%s%%**
Ideal is below 30%%.

%s

Want me to calculate EMI or compare repayment plans?`,
		ratio.StringFixed(1), verdict)
}

func taxResponse() string {
	return `**Tax Saving Guide (India)**

Top deductions:
• 80C: ELSS, PPF, Life Insurance
• 80D: Health insurance
• NPS: Extra ₹50,000 deduction

Want a personalised tax calculation?`
}

func investmentResponse(fc profile.FinancialContext) string {
	return fmt.Sprintf(`**Investment Strategy Based on Age %d**

Recommended equity exposure: **%d%%**

Long-term wealth = SIP + Diversification + Discipline

Want me to suggest a portfolio mix?`,
		fc.Age, 100-fc.Age)
}

func insuranceResponse(fc profile.FinancialContext) string {
	cover := fc.MonthlySalary * 12 * 10

	return fmt.Sprintf(`**Insurance Guidance**

Term insurance recommended:
→ ₹%s (10× annual income)

Health insurance:
→ Minimum ₹5–10 lakh cover.

I can help compare policies too!`,
		formatINR(cover))
}

func savingsResponse(fc profile.FinancialContext) string {
	return fmt.Sprintf(`**Savings Gameplan**

• Monthly disposable: ₹%s
• Emergency fund target: ₹%s (6× monthly expenses)

Short-term → FD / Liquid funds
Long-term → PPF / NPS / SIP

Want me to calculate how much you need monthly?`,
		formatINR(fc.DisposableIncome()), formatINR(fc.TotalExpenses()*6))
}

func retirementResponse(fc profile.FinancialContext) string {
	years := 60 - fc.Age

	return fmt.Sprintf(`**Retirement Planning**

You have **%d years** to build your retirement corpus.

General rule:
→ Invest **30%% of disposable income**
→ Equity = 100 − age

Want a retirement calculator?`,
		years)
}

func budgetResponse(fc profile.FinancialContext) string {
	return fmt.Sprintf(`**Budget Overview**

Savings rate: **%s%%**
Goal: **20%% or more**

50-30-20 Rule:
• 50%% Needs
• 30%% Wants
• 20%% Savings

Want me to optimize your expenses?`,
		savingsRate(fc).StringFixed(1))
}

func genericResponse(fc profile.FinancialContext) string {
	return fmt.Sprintf(`I got your question! Based on your profile:

• Age: %d
• Income: ₹%s
• Savings: ₹%s per month

Ask me anything:
→ "How do I start investing?"
→ "Which SIP is good?"
→ "How much tax will I pay?"
→ "Help me make a budget."

I'm here for all your finance questions!`,
		fc.Age, formatINR(fc.MonthlySalary), formatINR(fc.DisposableIncome()))
}

// formatINR groups digits Indian-style: the last three, then pairs
// (12,34,567). Negative amounts keep the sign in front.
func formatINR(amount int64) string {
	neg := amount < 0
	if neg {
		amount = -amount
	}
	s := fmt.Sprintf("%d", amount)
	if len(s) > 3 {
		head, tail := s[:len(s)-3], s[len(s)-3:]
		var groups []string
		for len(head) > 2 {
			groups = append([]string{head[len(head)-2:]}, groups...)
			head = head[:len(head)-2]
		}
		if head != "" {
			groups = append([]string{head}, groups...)
		}
		s = strings.Join(append(groups, tail), ",")
	}
	if neg {
		return "-" + s
	}
	return s
}
