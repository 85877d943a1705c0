package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/kdkce/examreg-backend/internal/config"
	"github.com/kdkce/examreg-backend/internal/database"
	"github.com/kdkce/examreg-backend/internal/gateway"
	"github.com/kdkce/examreg-backend/internal/handler"
	"github.com/kdkce/examreg-backend/internal/logger"
	"github.com/kdkce/examreg-backend/internal/mailer"
	"github.com/kdkce/examreg-backend/internal/repository"
	"github.com/kdkce/examreg-backend/internal/router"
	"github.com/kdkce/examreg-backend/internal/service"
	"github.com/kdkce/examreg-backend/internal/validator"
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
		Msg("Starting Exam Registration Backend")

	// ─── Initialize Validator ──────────────────────────────────────────
	validator.Setup()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// ─── Connect to PostgreSQL ─────────────────────────────────────────
	pool, err := database.NewPostgresPool(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer pool.Close()

	// ─── Connect to Redis ──────────────────────────────────────────────
	rdb, err := database.NewRedisClient(ctx, cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer rdb.Close()

	// ─── Initialize Repositories ───────────────────────────────────────
	userRepo := repository.NewUserRepository(pool)
	formRepo := repository.NewExamFormRepository(pool)
	attendanceRepo := repository.NewAttendanceRepository(pool)

	// ─── Payment Gateway ───────────────────────────────────────────────
	var gw gateway.Gateway
	if cfg.GatewayMock {
		log.Warn().Msg("Using MOCK payment gateway; do not run this in production")
		gw = gateway.NewMock(cfg.RazorpayKeySecret)
	} else {
		gw = gateway.NewRazorpay(cfg.RazorpayKeyID, cfg.RazorpayKeySecret, cfg.GatewayTimeoutSeconds, log)
	}

	// ─── Mail Transport ────────────────────────────────────────────────
	var sender mailer.Sender
	if cfg.SendgridAPIKey != "" {
		sender = mailer.NewSendgridSender(cfg.SendgridAPIKey, cfg.FromEmail, cfg.FromName)
	} else {
		log.Warn().Msg("SENDGRID_API_KEY not set; notifications go to the log only")
		sender = mailer.NewConsoleSender(log)
	}
	dispatcher := mailer.NewDispatcher(sender, log)

	// ─── Initialize Services ──────────────────────────────────────────
	authService := service.NewAuthService(cfg, rdb, userRepo, dispatcher)
	userService := service.NewUserService(cfg, userRepo, authService)
	stagingService := service.NewStagingService(rdb, cfg.StagedFormTTL)
	formService := service.NewExamFormService(cfg, formRepo, stagingService, gw, userRepo, dispatcher, log)
	attendanceService := service.NewAttendanceService(attendanceRepo, userRepo)

	// ─── Initialize Handlers ──────────────────────────────────────────
	handlers := &router.Handlers{
		Auth:     handler.NewAuthHandler(authService, userService, stagingService),
		Profile:  handler.NewProfileHandler(userService),
		Subject:  handler.NewSubjectHandler(),
		ExamForm: handler.NewExamFormHandler(formService, attendanceService),
		Admin:    handler.NewAdminHandler(userService, formService, attendanceService),
	}

	// ─── Setup Router ──────────────────────────────────────────────────
	r := router.SetupRouter(authService, handlers, cfg)

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

	log.Info().Msg("Shutdown complete")
}

// init sets zerolog global defaults before main runs.
func init() {
	zerolog.TimeFieldFormat = time.RFC3339
}
