// Package topics maps free-text user questions to financial topic tags.
package topics

// Topic is a short tag classifying a message into a financial subject area.
type Topic string

const (
	TopicSIP        Topic = "sip"
	TopicLoan       Topic = "loan"
	TopicTax        Topic = "tax"
	TopicInvestment Topic = "investment"
	TopicInsurance  Topic = "insurance"
	TopicSavings    Topic = "savings"
	TopicRetirement Topic = "retirement"
	TopicBudget     Topic = "budget"
)

// All returns the topic vocabulary in matching priority order.
func All() []Topic {
	return []Topic{
		TopicSIP,
		TopicLoan,
		TopicTax,
		TopicInvestment,
		TopicInsurance,
		TopicSavings,
		TopicRetirement,
		TopicBudget,
	}
}

// DisplayName returns a human-readable label for the topic.
func (t Topic) DisplayName() string {
	switch t {
	case TopicSIP:
		return "SIP & Mutual Funds"
	case TopicLoan:
		return "Loans & Debt"
	case TopicTax:
		return "Tax Planning"
	case TopicInvestment:
		return "Investments"
	case TopicInsurance:
		return "Insurance"
	case TopicSavings:
		return "Savings"
	case TopicRetirement:
		return "Retirement Planning"
	case TopicBudget:
		return "Budgeting"
	default:
		return string(t)
	}
}

// Parse validates s against the vocabulary.
func Parse(s string) (Topic, bool) {
	for _, t := range All() {
		if string(t) == s {
			return t, true
		}
	}
	return "", false
}

// keywords maps each topic to the substrings that identify it.
var keywords = map[Topic][]string{
	TopicSIP:        {"sip", "systematic investment", "mutual fund"},
	TopicLoan:       {"loan", "debt", "borrow", "repayment", "avalanche", "snowball"},
	TopicTax:        {"tax", "deduction", "exemption", "80c"},
	TopicInvestment: {"invest", "stock", "equity", "bond", "portfolio"},
	TopicInsurance:  {"insurance", "health insurance", "term insurance", "cover"},
	TopicSavings:    {"save", "saving", "deposit", "fd", "fixed deposit"},
	TopicRetirement: {"retirement", "pension", "nps", "provident fund"},
	TopicBudget:     {"budget", "expense", "spending", "track"},
}
