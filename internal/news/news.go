// Package news serves the dashboard's mock financial headlines.
package news

import (
	"fmt"
	"time"
)

// Article is one news item on the dashboard.
type Article struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"publishedAt"`
	URL         string    `json:"url"`
}

// Articles returns the mock headline set, dated relative to now so the
// feed always looks current.
func Articles(now time.Time) []Article {
	return []Article{
		{
			ID:          "1",
			Title:       "Stock Market Hits New High Amid Economic Recovery",
			Description: "Major indices reach record levels as investor confidence grows with improving economic indicators.",
			Source:      "Financial Times",
			PublishedAt: now,
			URL:         "#",
		},
		{
			ID:          "2",
			Title:       "RBI Keeps Interest Rates Unchanged",
			Description: "Reserve Bank maintains status quo on policy rates, focusing on inflation management and growth support.",
			Source:      "Economic Times",
			PublishedAt: now.Add(-24 * time.Hour),
			URL:         "#",
		},
		{
			ID:          "3",
			Title:       "Gold Prices Surge on Global Uncertainty",
			Description: "Precious metals see increased demand as investors seek safe-haven assets amid market volatility.",
			Source:      "Bloomberg",
			PublishedAt: now.Add(-48 * time.Hour),
			URL:         "#",
		},
		{
			ID:          "4",
			Title:       "New Tax Benefits for Savings Accounts Announced",
			Description: "Government introduces additional deductions for long-term savings in approved investment schemes.",
			Source:      "Mint",
			PublishedAt: now.Add(-72 * time.Hour),
			URL:         "#",
		},
	}
}

// RelativeTime renders an article age as "3h ago" or "2d ago".
func RelativeTime(publishedAt, now time.Time) string {
	hours := int(now.Sub(publishedAt).Hours())
	if hours < 0 {
		hours = 0
	}
	if hours < 24 {
		return fmt.Sprintf("%dh ago", hours)
	}
	return fmt.Sprintf("%dd ago", hours/24)
}
