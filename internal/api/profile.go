package api

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/Aditi-N-28/ArthaMind/internal/identity"
	"github.com/Aditi-N-28/ArthaMind/internal/news"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
)

// GetProfile returns the user's profile with derived values.
func (h *Handler) GetProfile(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	p, err := h.profiles.LoadOrInit(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load profile")
		return
	}

	fc := p.FinancialContext()
	JSON(w, http.StatusOK, map[string]any{
		"profile":          p,
		"level":            p.Gamification.Level(),
		"totalExpenses":    fc.TotalExpenses(),
		"disposableIncome": fc.DisposableIncome(),
	})
}

// PutPersonalData stores the personal onboarding section.
func (h *Handler) PutPersonalData(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var pd profile.PersonalData
	if err := json.NewDecoder(r.Body).Decode(&pd); err != nil {
		Error(w, http.StatusBadRequest, "invalid personal data")
		return
	}
	if err := h.profiles.SavePersonalData(r.Context(), userID, pd); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save personal data")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// PutFinancialData stores the financial onboarding section and marks
// onboarding complete.
func (h *Handler) PutFinancialData(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}

	var fd profile.FinancialData
	if err := json.NewDecoder(r.Body).Decode(&fd); err != nil {
		Error(w, http.StatusBadRequest, "invalid financial data")
		return
	}
	if err := h.profiles.SaveFinancialData(r.Context(), userID, fd); err != nil {
		Error(w, http.StatusInternalServerError, "failed to save financial data")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// GetProgress returns the user's per-topic learning progress.
func (h *Handler) GetProgress(w http.ResponseWriter, r *http.Request) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"topics": h.tracker.Topics(r.Context(), userID),
	})
}

// GetNews returns the mock headline feed.
func (h *Handler) GetNews(w http.ResponseWriter, r *http.Request) {
	now := time.Now()
	articles := news.Articles(now)

	type item struct {
		news.Article
		Age string `json:"age"`
	}
	out := make([]item, len(articles))
	for i, a := range articles {
		out[i] = item{Article: a, Age: news.RelativeTime(a.PublishedAt, now)}
	}
	JSON(w, http.StatusOK, map[string]any{"articles": out})
}
