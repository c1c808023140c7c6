// cmd/main.go
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"math/rand"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/lmittmann/tint"
	"github.com/rs/cors"

	"go_5_quiz_keep/internal/config"
	"go_5_quiz_keep/internal/handlers"
	"go_5_quiz_keep/internal/middleware"
	"go_5_quiz_keep/internal/repository"
	"go_5_quiz_keep/internal/service"
	"go_5_quiz_keep/internal/session"
	"go_5_quiz_keep/internal/srs"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
)

func main() {
	// 設定ファイル読み込み用の一時的なロガー設定
	tempLogger := slog.New(slog.NewTextHandler(os.Stderr, nil))
	slog.SetDefault(tempLogger)
	log.Println("Log Config Loading...")

	// Configを読み込み
	if err := config.LoadConfig("./configs"); err != nil {
		slog.Error("Error loading configuration", slog.Any("error", err))
		os.Exit(1)
	}

	// === 設定に基づいて slog ロガーを初期化 ===
	logLevel := new(slog.LevelVar)
	switch strings.ToLower(config.Cfg.Log.Level) {
	case "debug":
		logLevel.Set(slog.LevelDebug)
	case "info":
		logLevel.Set(slog.LevelInfo)
	case "warn", "warning":
		logLevel.Set(slog.LevelWarn)
	case "error":
		logLevel.Set(slog.LevelError)
	default:
		logLevel.Set(slog.LevelInfo)
		slog.Warn("Unknown log level specified in config, defaulting to INFO", slog.String("level", config.Cfg.Log.Level))
	}

	var handler slog.Handler
	appEnv := os.Getenv("APP_ENV")
	if strings.ToLower(appEnv) == "dev" {
		// 開発環境は色付きのテキストログ
		tintOpts := &tint.Options{
			Level:      logLevel,
			TimeFormat: time.RFC3339,
		}
		handler = tint.NewHandler(os.Stderr, tintOpts)
		tempLogger.Info("Using TINT log handler", slog.String("APP_ENV", appEnv))
	} else {
		jsonOpts := &slog.HandlerOptions{
			Level:     logLevel,
			AddSource: true,
		}
		handler = slog.NewJSONHandler(os.Stderr, jsonOpts)
		tempLogger.Info("Using JSON log handler", slog.String("APP_ENV", appEnv))
	}
	logger := slog.New(handler)
	slog.SetDefault(logger)

	slog.Info("Application starting...",
		slog.String("app", config.AppName),
		slog.String("version", config.AppVersion),
	)

	// Initialize Database Connection (GORM)
	db, err := repository.NewDB(config.Cfg.Database.URL, logger)
	if err != nil {
		slog.Error("Error initializing database", slog.Any("error", err))
		os.Exit(1)
	}
	sqlDB, err := db.DB()
	if err != nil {
		slog.Error("Error getting underlying sql.DB from GORM", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := sqlDB.Close(); err != nil {
			slog.Error("Error closing database connection", slog.Any("error", err))
		} else {
			slog.Info("Database connection closed.")
		}
	}()

	// Dependency Injection
	testRepo := repository.NewGormTestRepository()
	vocabRepo := repository.NewGormVocabularyRepository()
	resultRepo := repository.NewGormResultRepository()

	sessionStore := session.NewMemoryStore()
	scheduler := srs.NewSchedulerWithSteps(config.Cfg.App.LearningStepsMinutes, config.Cfg.App.MaxLearningStage)
	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	testService := service.NewTestService(db, testRepo, resultRepo, sessionStore, rng)
	vocabService := service.NewVocabularyService(db, vocabRepo)
	reviewService := service.NewReviewService(db, vocabRepo, sessionStore, scheduler, &config.Cfg, rng)

	testHandler := handlers.NewTestHandler(testService, logger)
	vocabHandler := handlers.NewVocabularyHandler(vocabService, logger)
	reviewHandler := handlers.NewReviewHandler(reviewService, logger)

	// Setup Router
	r := chi.NewRouter()

	// Middleware
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.LoggingMiddleware(logger))

	corsOptions := cors.Options{
		AllowedOrigins:   config.Cfg.CORS.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", middleware.UserIDHeader},
		AllowCredentials: false,
		MaxAge:           300,
	}
	corsHandler := cors.New(corsOptions)
	r.Use(corsHandler.Handler)

	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(60 * time.Second))

	// API Routes
	r.Route("/api/v1", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(middleware.UserAuthMiddleware())

			// Book / Test routes
			r.Route("/books", func(r chi.Router) {
				r.Get("/", testHandler.GetBooks)
				r.Get("/{book_id}/tests", testHandler.GetBookTests)
			})
			r.Route("/tests", func(r chi.Router) {
				r.Post("/", testHandler.PostTest)
				r.Get("/search", testHandler.SearchTests)
				r.Get("/{test_id}", testHandler.GetTest)
				r.Put("/{test_id}", testHandler.PutTest)
				r.Delete("/{test_id}", testHandler.DeleteTest)
				r.Post("/{test_id}/start", testHandler.StartTest)
				r.Post("/{test_id}/submit", testHandler.SubmitTest)
			})
			r.Get("/results", testHandler.GetResults)

			// Vocabulary routes
			r.Route("/vocabularies", func(r chi.Router) {
				r.Post("/", vocabHandler.PostVocabulary)
				r.Get("/", vocabHandler.GetVocabularies)
				r.Get("/{vocabulary_id}", vocabHandler.GetVocabulary)
				r.Patch("/{vocabulary_id}", vocabHandler.PatchVocabulary)
				r.Delete("/{vocabulary_id}", vocabHandler.DeleteVocabulary)
			})

			// Review routes
			r.Route("/review", func(r chi.Router) {
				r.Post("/session", reviewHandler.StartSession)
				r.Get("/question", reviewHandler.GetQuestion)
				r.Post("/answer", reviewHandler.SubmitAnswer)
			})
		})
	})

	// Health Check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if err := sqlDB.PingContext(ctx); err != nil {
			slog.ErrorContext(ctx, "Health check failed: could not ping DB", slog.Any("error", err))
			http.Error(w, "Health check failed", http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Start Server
	server := &http.Server{
		Addr:         config.Cfg.Server.Port,
		Handler:      r,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		slog.Info("Server listening", slog.String("port", config.Cfg.Server.Port))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			slog.Error("Could not listen on port", slog.String("port", config.Cfg.Server.Port), slog.Any("error", err))
			os.Exit(1)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	slog.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		slog.Error("Server forced to shutdown", slog.Any("error", err))
	}

	log.Println("Server exiting")
}
