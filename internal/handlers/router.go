package handlers

import (
	"net/http"
	"time"

	customMiddleware "trustledger-backend/internal/middleware"
	"trustledger-backend/internal/notify"
	"trustledger-backend/internal/reputation"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

type RouterConfig struct {
	Store       *reputation.Store
	Notifier    notify.Notifier
	JWTSecret   string
	TokenTTL    time.Duration
	CORSOrigins []string
}

func NewRouter(cfg RouterConfig) http.Handler {
	authHandler := NewAuthHandler(cfg.Store, cfg.JWTSecret, cfg.TokenTTL)
	userHandler := NewUserHandler(cfg.Store)
	feedbackHandler := NewFeedbackHandler(cfg.Store, cfg.Notifier)

	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RealIP)
	r.Use(middleware.RequestID)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PATCH", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// Health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		count, err := cfg.Store.Count(r.Context())
		if err != nil {
			writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "service": "trustledger-backend"})
			return
		}
		writeJSON(w, http.StatusOK, map[string]interface{}{"status": "ok", "service": "trustledger-backend", "profiles": count})
	})

	// Public routes (no auth required)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)
	r.Get("/users/search", userHandler.Search)
	r.Get("/users/{id}", userHandler.GetProfile)
	r.Post("/users/{id}/feedback", feedbackHandler.SubmitFeedback)

	// Protected routes (JWT required)
	r.Group(func(r chi.Router) {
		r.Use(customMiddleware.JWTAuth(cfg.JWTSecret))

		r.Get("/me", userHandler.GetMe)
		r.Patch("/me", userHandler.UpdateMe)
	})

	return r
}
