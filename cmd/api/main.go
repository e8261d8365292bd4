package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"trainer-backend/cmd"
	"trainer-backend/internal/api"
	"trainer-backend/internal/database"
	"trainer-backend/internal/store"
	"trainer-backend/internal/trainer"
)

type APIConfig struct {
	DatabaseURL    string        `env:"DATABASE_URL" envDefault:""`
	APIPort        string        `env:"API_PORT" envDefault:"5001"`
	OpenAIAPIKey   string        `env:"OPENAI_API_KEY" envDefault:""`
	OpenAIModel    string        `env:"OPENAI_MODEL" envDefault:"gpt-4o-mini"`
	ChatRateLimit  int           `env:"CHAT_RATE_LIMIT" envDefault:"20"`
	ChatRateWindow time.Duration `env:"CHAT_RATE_WINDOW" envDefault:"60s"`
}

func createStore(databaseURL string) store.Store {
	if databaseURL == "" {
		slog.Info("no DATABASE_URL configured, using in-memory store")
		return store.NewMemoryStore()
	}

	db, err := database.NewDatabase(databaseURL)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	return store.NewGormStore(db)
}

func createResponder(cfg APIConfig, s store.Store) trainer.Responder {
	if cfg.OpenAIAPIKey == "" {
		slog.Info("no OPENAI_API_KEY configured, using canned trainer responses")
		return trainer.NewCannedResponder()
	}
	slog.Info("using OpenAI-backed trainer responses", "model", cfg.OpenAIModel)
	return trainer.NewOpenAIResponder(cfg.OpenAIAPIKey, cfg.OpenAIModel, s)
}

func main() {
	log.Println("Starting API Server...")

	cmd.LoadEnvFile()

	var cfg APIConfig
	if err := env.Parse(&cfg); err != nil {
		log.Fatalf("error parsing config: %v", err)
	}

	recordStore := createStore(cfg.DatabaseURL)
	responder := createResponder(cfg, recordStore)
	limiter := trainer.NewRateLimiter(cfg.ChatRateLimit, cfg.ChatRateWindow)

	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{"*"},
		AllowCredentials: true,
		MaxAge:           300,
	}))
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)                    // Log requests
	r.Use(middleware.Recoverer)                 // Recover from panics
	r.Use(middleware.Timeout(60 * time.Second)) // Set request timeout

	api.AddRootRoutes(r)

	punchHandler := api.NewPunchService(recordStore)
	trainerHandler := api.NewTrainerService(trainer.New(recordStore, limiter, responder))
	activityHandler := api.NewActivityService(recordStore)

	r.Route("/api", func(r chi.Router) {
		punchHandler.AddRoutes(r)
		trainerHandler.AddRoutes(r)
		activityHandler.AddRoutes(r)
	})

	server := &http.Server{
		Addr:    ":" + cfg.APIPort,
		Handler: r,
	}

	// Goroutine for graceful shutdown
	go func() {
		quit := make(chan os.Signal, 1)
		signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
		<-quit
		log.Println("Shutting down server...")

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := server.Shutdown(ctx); err != nil {
			log.Fatalf("Server forced to shutdown: %v", err)
		}
	}()

	log.Printf("API server listening on port %s", cfg.APIPort)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Fatalf("Could not listen on %s: %v\n", cfg.APIPort, err)
	}

	log.Println("Server stopped.")
}
