package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/todo-app/config"
	"github.com/ErlanBelekov/todo-app/internal/email"
	"github.com/ErlanBelekov/todo-app/internal/health"
	"github.com/ErlanBelekov/todo-app/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/todo-app/internal/log"
	"github.com/ErlanBelekov/todo-app/internal/metrics"
	"github.com/ErlanBelekov/todo-app/internal/otp"
	"github.com/ErlanBelekov/todo-app/internal/password"
	"github.com/ErlanBelekov/todo-app/internal/token"
	httptransport "github.com/ErlanBelekov/todo-app/internal/transport/http"
	"github.com/ErlanBelekov/todo-app/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-app/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/lmittmann/tint"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := newLogger(cfg.Env, cfg.SlogLevel())

	if cfg.Env != "local" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if cfg.RunMigrations {
		if err := postgres.Migrate(ctx, pool); err != nil {
			stop()
			log.Fatalf("migrate: %v", err)
		}
		logger.Info("migrations applied")
	}

	codes, err := otp.NewGenerator(cfg.OTPSecret)
	if err != nil {
		stop()
		log.Fatalf("otp: %v", err)
	}
	issuer := token.NewIssuer([]byte(cfg.JWTSecret))

	sender := email.NewSender(email.SenderConfig{
		Provider:     cfg.MailProvider,
		From:         cfg.MailFrom,
		ResendAPIKey: cfg.ResendAPIKey,
		SMTPHost:     cfg.SMTPHost,
		SMTPPort:     cfg.SMTPPort,
		SMTPUsername: cfg.SMTPUsername,
		SMTPPassword: cfg.SMTPPassword,
	}, logger)

	// Auth
	userRepo := postgres.NewUserRepository(pool)
	authUsecase := usecase.NewAuthUsecase(
		userRepo,
		password.NewHasher(cfg.BcryptCost),
		codes,
		issuer,
		email.NewNotifier(sender),
		cfg.ResetPasswordURL,
		logger,
	)
	authHandler := handler.NewAuthHandler(authUsecase, logger)

	metrics.Register(prometheus.DefaultRegisterer)
	checker := health.NewChecker(pool, logger, prometheus.DefaultRegisterer)
	probe, err := checker.Schedule(ctx, cfg.HealthProbeSchedule)
	if err != nil {
		stop()
		log.Fatalf("health probe: %v", err)
	}

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, authHandler, handler.NewHealthHandler(checker), issuer),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":" + cfg.MetricsPort)

	go func() {
		logger.Info("server started", "port", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	<-probe.Stop().Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}

func newLogger(env string, level slog.Level) *slog.Logger {
	var inner slog.Handler
	if env == "local" {
		inner = tint.NewHandler(os.Stdout, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		})
	} else {
		inner = slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
			Level: level,
		})
	}
	return slog.New(ctxlog.NewContextHandler(inner))
}
