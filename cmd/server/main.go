package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/siscolar/registro-backend/internal/config"
	"github.com/siscolar/registro-backend/internal/database"
	"github.com/siscolar/registro-backend/internal/docstore"
	"github.com/siscolar/registro-backend/internal/handler"
	"github.com/siscolar/registro-backend/internal/logger"
	"github.com/siscolar/registro-backend/internal/repository"
	"github.com/siscolar/registro-backend/internal/router"
	"github.com/siscolar/registro-backend/internal/service"
	"github.com/siscolar/registro-backend/internal/validator"
	"github.com/siscolar/registro-backend/internal/worker"
)

func main() {
	// ─── Load Configuration ────────────────────────────────────────────
	cfg := config.Load()

	// ─── Initialize Logger ─────────────────────────────────────────────
	log := logger.Setup(cfg.LogLevel, cfg.LogFormat)
	log.Info().
		Str("port", cfg.ServerPort).
		Str("mode", cfg.GinMode).
		Str("log_level", cfg.LogLevel).
		Msg("Starting Registro Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to DynamoDB ───────────────────────────────────────────
	dynamoClient, err := database.NewDynamoClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to DynamoDB")
	}
	store := docstore.NewDynamo(dynamoClient, cfg.DynamoTable)

	// ─── Connect to Redis (optional cache) ─────────────────────────────
	var rdb *redis.Client
	if cfg.RedisURL != "" {
		rdb, err = database.NewRedisClient(ctx, cfg, log)
		if err != nil {
			log.Warn().Err(err).Msg("Redis unavailable, cache disabled")
			rdb = nil
		} else {
			defer rdb.Close()
		}
	}

	// ─── Initialize Repositories ───────────────────────────────────────
	studentRepo := repository.NewStudentRepository(store)
	subjectRepo := repository.NewSubjectRepository(store)

	// ─── Initialize Services ──────────────────────────────────────────
	studentService := service.NewStudentService(studentRepo, rdb, cfg, log)
	subjectService := service.NewSubjectService(subjectRepo, rdb, cfg, log)
	gradeService := service.NewGradeService(studentRepo, rdb, log)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Student: handler.NewStudentHandler(studentService),
		Subject: handler.NewSubjectHandler(subjectService),
		Grade:   handler.NewGradeHandler(gradeService),
	}

	// ─── Start Background Workers ─────────────────────────────────────
	workerCtx, workerCancel := context.WithCancel(context.Background())

	consistencyWorker := worker.NewConsistencyWorker(store, cfg.SweepInterval, log)
	go consistencyWorker.Start(workerCtx)

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(handlers, cfg)

	// ─── Create HTTP Server ────────────────────────────────────────────
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// ─── Start Server in Goroutine ─────────────────────────────────────
	go func() {
		log.Info().Str("addr", ":"+cfg.ServerPort).Msg("Server listening")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("Server error")
		}
	}()

	// ─── Graceful Shutdown ─────────────────────────────────────────────
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	sig := <-quit

	log.Info().Str("signal", sig.String()).Msg("Shutting down gracefully...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("HTTP server shutdown error")
	}

	workerCancel()

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
