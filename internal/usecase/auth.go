package usecase

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/ErlanBelekov/todo-app/internal/domain"
	"github.com/ErlanBelekov/todo-app/internal/metrics"
	"github.com/ErlanBelekov/todo-app/internal/repository"
)

type PasswordHasher interface {
	Hash(plain string) (string, error)
	Verify(plain, hash string) bool
}

type CodeGenerator interface {
	Generate() (string, error)
	Verify(code string) bool
}

type TokenIssuer interface {
	Issue(userID, email string) (string, time.Time, error)
}

type Notifier interface {
	SendSignupConfirmation(ctx context.Context, to string) error
	SendResetPassword(ctx context.Context, to, url, code string) error
}

type AuthUsecase struct {
	users    repository.UserRepository
	hasher   PasswordHasher
	codes    CodeGenerator
	tokens   TokenIssuer
	notifier Notifier
	resetURL string
	logger   *slog.Logger
}

func NewAuthUsecase(
	users repository.UserRepository,
	hasher PasswordHasher,
	codes CodeGenerator,
	tokens TokenIssuer,
	notifier Notifier,
	resetURL string,
	logger *slog.Logger,
) *AuthUsecase {
	return &AuthUsecase{
		users:    users,
		hasher:   hasher,
		codes:    codes,
		tokens:   tokens,
		notifier: notifier,
		resetURL: resetURL,
		logger:   logger.With("component", "auth_usecase"),
	}
}

type SignupInput struct {
	Email    string
	Password string
	Username string
}

type SigninInput struct {
	Email    string
	Password string
}

// UserView is the part of a user that is safe to hand back to clients.
type UserView struct {
	Username string
	Email    string
}

type SigninResult struct {
	Token     string
	ExpiresAt time.Time
	User      UserView
}

type ResetPasswordConfirmationInput struct {
	Email    string
	Code     string
	Password string
}

// Signup registers a new account and emails a confirmation. The account is
// active immediately. A failed email is returned as an error but the user
// row is kept.
func (u *AuthUsecase) Signup(ctx context.Context, input SignupInput) (err error) {
	defer observe("signup", &err)

	_, err = u.users.FindByEmail(ctx, input.Email)
	switch {
	case err == nil:
		return domain.ErrUserAlreadyExists
	case !errors.Is(err, domain.ErrUserNotFound):
		return fmt.Errorf("find user: %w", err)
	}

	hash, err := u.hash(input.Password)
	if err != nil {
		return err
	}

	// Create still reports ErrUserAlreadyExists if a concurrent signup won the race.
	user, err := u.users.Create(ctx, &domain.User{
		Email:        input.Email,
		Username:     input.Username,
		PasswordHash: hash,
	})
	if err != nil {
		if errors.Is(err, domain.ErrUserAlreadyExists) {
			return err
		}
		return fmt.Errorf("create user: %w", err)
	}
	u.logger.InfoContext(ctx, "user signed up", "user_id", user.ID)

	if err = u.notifier.SendSignupConfirmation(ctx, input.Email); err != nil {
		return fmt.Errorf("send signup confirmation: %w", err)
	}
	return nil
}

// Signin checks the password and issues a bearer token for the user.
func (u *AuthUsecase) Signin(ctx context.Context, input SigninInput) (res *SigninResult, err error) {
	defer observe("signin", &err)

	user, err := u.findByEmail(ctx, input.Email)
	if err != nil {
		return nil, err
	}

	if !u.hasher.Verify(input.Password, user.PasswordHash) {
		return nil, domain.ErrPasswordMismatch
	}

	signed, exp, err := u.tokens.Issue(user.ID, user.Email)
	if err != nil {
		return nil, fmt.Errorf("issue token: %w", err)
	}

	return &SigninResult{
		Token:     signed,
		ExpiresAt: exp,
		User:      UserView{Username: user.Username, Email: user.Email},
	}, nil
}

// ResetPasswordDemand emails the current reset code to a known user.
// An unknown email is reported as domain.ErrResetUserNotFound.
func (u *AuthUsecase) ResetPasswordDemand(ctx context.Context, email string) (err error) {
	defer observe("reset_password_demand", &err)

	if _, err = u.users.FindByEmail(ctx, email); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return domain.ErrResetUserNotFound
		}
		return fmt.Errorf("find user: %w", err)
	}

	code, err := u.codes.Generate()
	if err != nil {
		return err
	}

	if err = u.notifier.SendResetPassword(ctx, email, u.resetURL, code); err != nil {
		return fmt.Errorf("send reset password: %w", err)
	}
	return nil
}

// ResetPasswordConfirmation sets a new password when code matches the
// current window. A rejected code leaves the stored hash untouched.
func (u *AuthUsecase) ResetPasswordConfirmation(ctx context.Context, input ResetPasswordConfirmationInput) (err error) {
	defer observe("reset_password_confirmation", &err)

	if _, err = u.findByEmail(ctx, input.Email); err != nil {
		return err
	}

	if !u.codes.Verify(input.Code) {
		return domain.ErrCodeInvalid
	}

	hash, err := u.hash(input.Password)
	if err != nil {
		return err
	}

	if err = u.users.UpdatePassword(ctx, input.Email, hash); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("update password: %w", err)
	}
	u.logger.InfoContext(ctx, "password reset", "email", input.Email)
	return nil
}

// DeleteAccount removes the account of an authenticated user after
// re-checking the password. userID must come from a verified bearer token.
func (u *AuthUsecase) DeleteAccount(ctx context.Context, userID, password string) (err error) {
	defer observe("delete_account", &err)

	user, err := u.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("find user: %w", err)
	}

	if !u.hasher.Verify(password, user.PasswordHash) {
		return domain.ErrPasswordMismatch
	}

	if err = u.users.Delete(ctx, user.ID); err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return err
		}
		return fmt.Errorf("delete user: %w", err)
	}
	u.logger.InfoContext(ctx, "account deleted", "user_id", user.ID)
	return nil
}

func (u *AuthUsecase) findByEmail(ctx context.Context, email string) (*domain.User, error) {
	user, err := u.users.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

func (u *AuthUsecase) hash(plain string) (string, error) {
	start := time.Now()
	hash, err := u.hasher.Hash(plain)
	metrics.PasswordHashDuration.Observe(time.Since(start).Seconds())
	if err != nil {
		return "", err
	}
	return hash, nil
}

// observe records the outcome of an operation. errp is read after the
// operation returns.
func observe(operation string, errp *error) {
	metrics.AuthOperationsTotal.WithLabelValues(operation, outcome(*errp)).Inc()
}

func outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	default:
		return "error"
	}
}
