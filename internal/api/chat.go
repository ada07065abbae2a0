package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/Aditi-N-28/ArthaMind/internal/identity"
	"github.com/Aditi-N-28/ArthaMind/internal/mentor"
)

func (h *Handler) session(w http.ResponseWriter, r *http.Request) (*mentor.Session, bool) {
	userID := identity.UserIDFromContext(r.Context())
	if userID == "" {
		Error(w, http.StatusUnauthorized, "unauthorized")
		return nil, false
	}
	s, err := h.sessions.Get(r.Context(), userID)
	if err != nil {
		Error(w, http.StatusInternalServerError, "failed to load chat session")
		return nil, false
	}
	return s, true
}

// GetChatHistory returns the session transcript.
func (h *Handler) GetChatHistory(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	JSON(w, http.StatusOK, map[string]any{
		"messages": s.Transcript(),
		"state":    s.State(),
	})
}

// PostMessage runs one chat exchange.
func (h *Handler) PostMessage(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	ex, err := s.SendMessage(r.Context(), req.Text)
	if err != nil {
		switch {
		case errors.Is(err, mentor.ErrEmptyMessage):
			Error(w, http.StatusBadRequest, "message is empty")
		case errors.Is(err, mentor.ErrBusy):
			Error(w, http.StatusConflict, "session is busy")
		default:
			Error(w, http.StatusBadGateway, "failed to get response")
		}
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"reply":     ex.Reply,
		"quizOffer": ex.QuizOffer,
	})
}

// AcceptQuiz generates and activates the offered quiz. The correct
// answer and explanation stay server-side until the answer comes in.
func (h *Handler) AcceptQuiz(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	q, err := s.AcceptQuizOffer(r.Context())
	if err != nil {
		if errors.Is(err, mentor.ErrNoQuizOffer) {
			Error(w, http.StatusConflict, "no quiz offer pending")
			return
		}
		Error(w, http.StatusBadGateway, "failed to generate quiz")
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"topic":    q.Topic,
		"question": q.Question,
		"options":  q.Options,
	})
}

// DeclineQuiz drops the pending offer.
func (h *Handler) DeclineQuiz(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}
	if err := s.DeclineQuizOffer(); err != nil {
		Error(w, http.StatusConflict, "no quiz offer pending")
		return
	}
	JSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// AnswerQuiz grades the submitted option index.
func (h *Handler) AnswerQuiz(w http.ResponseWriter, r *http.Request) {
	s, ok := h.session(w, r)
	if !ok {
		return
	}

	var req struct {
		Index int `json:"index"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		Error(w, http.StatusBadRequest, "invalid request body")
		return
	}

	res, err := s.SubmitQuizAnswer(r.Context(), req.Index)
	if err != nil {
		switch {
		case errors.Is(err, mentor.ErrNoActiveQuiz):
			Error(w, http.StatusConflict, "no active quiz")
		case errors.Is(err, mentor.ErrBadAnswer):
			Error(w, http.StatusBadRequest, "answer index out of range")
		default:
			Error(w, http.StatusInternalServerError, "failed to grade answer")
		}
		return
	}

	JSON(w, http.StatusOK, map[string]any{
		"correct":       res.Correct,
		"correctAnswer": res.CorrectAnswer,
		"explanation":   res.Explanation,
		"reward":        map[string]int64{"xp": res.Reward.XP, "coins": res.Reward.Coins},
		"feedback":      res.Feedback,
	})
}
