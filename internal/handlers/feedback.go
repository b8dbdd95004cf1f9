package handlers

import (
	"context"
	"log"
	"net/http"
	"time"

	"trustledger-backend/internal/models"
	"trustledger-backend/internal/notify"
	"trustledger-backend/internal/reputation"

	"github.com/go-chi/chi/v5"
)

type FeedbackHandler struct {
	store    *reputation.Store
	notifier notify.Notifier
}

func NewFeedbackHandler(store *reputation.Store, notifier notify.Notifier) *FeedbackHandler {
	return &FeedbackHandler{
		store:    store,
		notifier: notifier,
	}
}

// SubmitFeedbackRequest has no sentiment field: it is always derived from
// the rating.
type SubmitFeedbackRequest struct {
	RaterName string `json:"rater_name" validate:"required,min=2,max=50"`
	Rating    int    `json:"rating" validate:"required,min=1,max=5"`
	Comment   string `json:"comment" validate:"required,min=10,max=500"`
}

// --- POST /users/{id}/feedback ---

func (h *FeedbackHandler) SubmitFeedback(w http.ResponseWriter, r *http.Request) {
	userID := chi.URLParam(r, "id")

	var req SubmitFeedbackRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.store.AddFeedback(r.Context(), userID, reputation.FeedbackInput{
		RaterName: req.RaterName,
		Rating:    req.Rating,
		Comment:   req.Comment,
	})
	if err != nil {
		writeError(w, err)
		return
	}

	// Notify the profile owner in the background (non-blocking)
	go h.publish(user.Clone(), user.Feedback[0])

	writeJSON(w, http.StatusCreated, user)
}

func (h *FeedbackHandler) publish(owner *models.UserProfile, entry models.FeedbackEntry) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := h.notifier.Publish(ctx, notify.FeedbackReceived(owner, entry)); err != nil {
		log.Printf("Error publishing feedback notification: %v", err)
	}
}
