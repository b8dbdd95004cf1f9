package handlers

import (
	"net/http"

	"trustledger-backend/internal/middleware"
	"trustledger-backend/internal/reputation"

	"github.com/go-chi/chi/v5"
)

type UserHandler struct {
	store *reputation.Store
}

func NewUserHandler(store *reputation.Store) *UserHandler {
	return &UserHandler{
		store: store,
	}
}

type UpdateProfileRequest struct {
	Name      *string `json:"name,omitempty" validate:"omitempty,min=2,max=50"`
	Bio       *string `json:"bio,omitempty" validate:"omitempty,max=300"`
	AvatarURL *string `json:"avatar_url,omitempty" validate:"omitempty,url"`
}

// --- GET /users/search?q= ---

func (h *UserHandler) Search(w http.ResponseWriter, r *http.Request) {
	users, err := h.store.SearchByName(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, users)
}

// --- GET /users/{id} ---

func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, err := h.store.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// --- GET /me ---

func (h *UserHandler) GetMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	user, err := h.store.FindByID(r.Context(), userID)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}

// --- PATCH /me ---

func (h *UserHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID := middleware.GetUserID(r.Context())
	if userID == "" {
		writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
		return
	}

	var req UpdateProfileRequest
	if err := decodeAndValidate(r, &req); err != nil {
		writeError(w, err)
		return
	}

	user, err := h.store.UpdateProfile(r.Context(), userID, reputation.ProfileUpdate{
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
	})
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, user)
}
