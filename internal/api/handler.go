// Package api implements the HTTP surface: profile onboarding, the chat
// endpoints driving the mentor session, mock news, and learning
// progress.
package api

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
	"github.com/Aditi-N-28/ArthaMind/internal/profile"
	"github.com/Aditi-N-28/ArthaMind/internal/progress"
)

// Handler holds the API's collaborators.
type Handler struct {
	profiles *profile.Repo
	tracker  *progress.Tracker
	sessions *mentor.Manager
}

func NewHandler(profiles *profile.Repo, tracker *progress.Tracker, sessions *mentor.Manager) *Handler {
	return &Handler{profiles: profiles, tracker: tracker, sessions: sessions}
}

// RegisterRoutes mounts all API routes.
func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Route("/api", func(r chi.Router) {
		r.Get("/news", h.GetNews)

		r.Get("/profile", h.GetProfile)
		r.Put("/profile/personal", h.PutPersonalData)
		r.Put("/profile/financial", h.PutFinancialData)

		r.Get("/progress", h.GetProgress)

		r.Route("/chat", func(r chi.Router) {
			r.Get("/history", h.GetChatHistory)
			r.Post("/message", h.PostMessage)
			r.Post("/quiz/accept", h.AcceptQuiz)
			r.Post("/quiz/decline", h.DeclineQuiz)
			r.Post("/quiz/answer", h.AnswerQuiz)
		})
	})
}

// JSON writes a JSON response with the given status code.
func JSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		http.Error(w, `{"error": "failed to encode response"}`, http.StatusInternalServerError)
	}
}

// Error writes a JSON error response.
func Error(w http.ResponseWriter, status int, message string) {
	JSON(w, status, map[string]string{"error": message})
}
