package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"trustledger-backend/internal/config"
	"trustledger-backend/internal/database"
	"trustledger-backend/internal/handlers"
	"trustledger-backend/internal/notify"
	"trustledger-backend/internal/repository"
	"trustledger-backend/internal/reputation"
	"trustledger-backend/internal/seed"

	"github.com/joho/godotenv"
)

func main() {
	// Load .env (ignore error in production — env vars set directly)
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("❌ %v", err)
	}

	repo, cleanup := openRepository(cfg)
	defer cleanup()

	store := reputation.NewStore(repo)

	if cfg.SeedDemo {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		if _, err := seed.Demo(ctx, store); err != nil {
			log.Printf("⚠️  Warning: failed to seed demo profiles: %v", err)
		}
		cancel()
	}

	var notifier notify.Notifier
	if cfg.ResendAPIKey != "" {
		notifier = notify.NewResendNotifier(cfg.ResendAPIKey, cfg.FromEmail)
	} else {
		log.Println("⚠️  RESEND_API_KEY not set, feedback notifications will only be logged")
		notifier = notify.NewMockNotifier()
	}

	router := handlers.NewRouter(handlers.RouterConfig{
		Store:       store,
		Notifier:    notifier,
		JWTSecret:   cfg.JWTSecret,
		TokenTTL:    cfg.JWTTTL,
		CORSOrigins: cfg.CORSOrigins,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Printf("🚀 trustledger backend starting on port %s (store=%s)", cfg.Port, cfg.StoreBackend)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("❌ Server failed: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("🛑 Shutting down")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Printf("⚠️  Warning: graceful shutdown failed: %v", err)
	}
}

// openRepository returns the configured profile repository and a func that
// releases its resources.
func openRepository(cfg *config.Config) (reputation.Repository, func()) {
	if cfg.StoreBackend != config.BackendMongo {
		log.Println("⚠️  Using in-memory store, data is lost on restart")
		return repository.NewMemoryProfileRepo(), func() {}
	}

	if err := database.Connect(cfg.MongoURI, cfg.DBName); err != nil {
		log.Fatalf("❌ Failed to connect to MongoDB: %v", err)
	}

	profileRepo := repository.NewProfileRepo()

	// Ensure indexes
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := profileRepo.EnsureIndexes(ctx); err != nil {
		log.Printf("⚠️  Warning: failed to create profile indexes: %v", err)
	}

	return profileRepo, func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := database.Disconnect(ctx); err != nil {
			log.Printf("⚠️  Warning: failed to disconnect from MongoDB: %v", err)
		}
	}
}
