package quiz

import "github.com/Aditi-N-28/ArthaMind/internal/topics"

// questionBank holds the static fallback questions per topic.
var questionBank = map[topics.Topic][]Question{
	topics.TopicSIP: {
		{
			Question: "What is the primary benefit of investing through a Systematic Investment Plan (SIP)?",
			Options: []string{
				"Guaranteed returns on investment",
				"Rupee cost averaging and disciplined investing",
				"No market risk involved",
				"Instant withdrawal without penalties",
			},
			CorrectAnswer: 1,
			Explanation:   "SIP helps with rupee cost averaging, which means you buy more units when prices are low and fewer when prices are high. This disciplined approach reduces the impact of market volatility.",
		},
		{
			Question: "What is the recommended minimum investment period for a SIP in equity mutual funds?",
			Options: []string{
				"6 months to 1 year",
				"1-2 years",
				"3-5 years or more",
				"Less than 6 months",
			},
			CorrectAnswer: 2,
			Explanation:   "For equity mutual funds, a minimum investment horizon of 3-5 years is recommended to ride out market volatility and benefit from compounding.",
		},
	},
	topics.TopicLoan: {
		{
			Question: "Which debt repayment strategy focuses on paying off loans with the highest interest rates first?",
			Options: []string{
				"Snowball method",
				"Avalanche method",
				"Consolidation method",
				"Minimum payment method",
			},
			CorrectAnswer: 1,
			Explanation:   "The Avalanche method prioritizes paying off debts with the highest interest rates first, which saves the most money on interest over time.",
		},
		{
			Question: "What is a healthy debt-to-income ratio to maintain?",
			Options: []string{
				"More than 50%",
				"Between 40-50%",
				"Below 36%",
				"Above 60%",
			},
			CorrectAnswer: 2,
			Explanation:   "A debt-to-income ratio below 36% is considered healthy, meaning your total monthly debt payments should not exceed 36% of your gross monthly income.",
		},
	},
	topics.TopicTax: {
		{
			Question: "What is the maximum deduction allowed under Section 80C of the Income Tax Act?",
			Options: []string{
				"₹1,00,000",
				"₹1,50,000",
				"₹2,00,000",
				"₹50,000",
			},
			CorrectAnswer: 1,
			Explanation:   "Section 80C allows a maximum deduction of ₹1,50,000 per financial year for investments in specified instruments like PPF, ELSS, NSC, etc.",
		},
	},
	topics.TopicInvestment: {
		{
			Question: "What is diversification in investment?",
			Options: []string{
				"Investing all money in one stock",
				"Spreading investments across different asset classes",
				"Only investing in fixed deposits",
				"Investing only in real estate",
			},
			CorrectAnswer: 1,
			Explanation:   "Diversification means spreading investments across different asset classes (stocks, bonds, gold, real estate) to reduce risk and optimize returns.",
		},
	},
	topics.TopicInsurance: {
		{
			Question: "What is the recommended life insurance coverage amount?",
			Options: []string{
				"Equal to annual income",
				"2-3 times annual income",
				"10-15 times annual income",
				"Equal to savings",
			},
			CorrectAnswer: 2,
			Explanation:   "Financial experts recommend life insurance coverage of 10-15 times your annual income to ensure your family's financial security.",
		},
	},
	topics.TopicSavings: {
		{
			Question: "What should be the ideal size of an emergency fund?",
			Options: []string{
				"1 month's expenses",
				"2-3 months' expenses",
				"6-12 months' expenses",
				"1 year's salary",
			},
			CorrectAnswer: 2,
			Explanation:   "An emergency fund should cover 6-12 months of living expenses to handle unexpected situations like job loss or medical emergencies.",
		},
	},
	topics.TopicRetirement: {
		{
			Question: "At what age can you start withdrawing from NPS (National Pension System)?",
			Options: []string{
				"50 years",
				"55 years",
				"60 years",
				"65 years",
			},
			CorrectAnswer: 2,
			Explanation:   "You can start withdrawing from NPS at age 60. At least 40% of the corpus must be used to purchase an annuity.",
		},
	},
	topics.TopicBudget: {
		{
			Question: "What is the 50/30/20 budgeting rule?",
			Options: []string{
				"50% savings, 30% needs, 20% wants",
				"50% needs, 30% wants, 20% savings",
				"50% wants, 30% savings, 20% needs",
				"50% investments, 30% expenses, 20% emergency fund",
			},
			CorrectAnswer: 1,
			Explanation:   "The 50/30/20 rule suggests allocating 50% of income to needs, 30% to wants, and 20% to savings and debt repayment.",
		},
	},
}
