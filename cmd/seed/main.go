// seed creates a demo account in the local dev database through the same
// signup path the API uses.
// Run: go run ./cmd/seed
package main

import (
	"context"
	"errors"
	"log"
	"log/slog"
	"os"

	"github.com/ErlanBelekov/todo-app/internal/domain"
	"github.com/ErlanBelekov/todo-app/internal/email"
	"github.com/ErlanBelekov/todo-app/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/todo-app/internal/otp"
	"github.com/ErlanBelekov/todo-app/internal/password"
	"github.com/ErlanBelekov/todo-app/internal/token"
	"github.com/ErlanBelekov/todo-app/internal/usecase"
	"github.com/lmittmann/tint"
)

const (
	seedEmail    = "seed@test.local"
	seedUsername = "seed"
	seedPassword = "seed-password"

	// Only used to satisfy the usecase; the seed never issues tokens or codes.
	seedJWTKey    = "seed-only-jwt-key-not-for-real-use"
	seedOTPSecret = "JBSWY3DPEHPK3PXP"
)

func main() {
	ctx := context.Background()
	logger := slog.New(tint.NewHandler(os.Stdout, nil))

	dbURL := os.Getenv("DATABASE_URL")
	if dbURL == "" {
		log.Fatal("DATABASE_URL is not set — run: direnv allow")
	}

	pool, err := postgres.NewPool(ctx, dbURL)
	if err != nil {
		log.Fatalf("db connect: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		log.Fatalf("migrate: %v", err)
	}

	codes, err := otp.NewGenerator(seedOTPSecret)
	if err != nil {
		log.Fatalf("otp: %v", err)
	}

	uc := usecase.NewAuthUsecase(
		postgres.NewUserRepository(pool),
		password.NewHasher(password.DefaultCost),
		codes,
		token.NewIssuer([]byte(seedJWTKey)),
		email.NewNotifier(email.NewSender(email.SenderConfig{Provider: "log"}, logger)),
		"",
		logger,
	)

	err = uc.Signup(ctx, usecase.SignupInput{
		Email:    seedEmail,
		Password: seedPassword,
		Username: seedUsername,
	})
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		logger.Info("seed user already exists", "email", seedEmail)
	case err != nil:
		log.Fatalf("seed user: %v", err)
	default:
		logger.Info("seed user created", "email", seedEmail, "password", seedPassword)
	}
}
