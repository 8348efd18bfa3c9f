package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/ErlanBelekov/todo-app/internal/transport/http/middleware"
	"github.com/ErlanBelekov/todo-app/internal/usecase"
	"github.com/gin-gonic/gin"
)

// authUsecaser is the subset of AuthUsecase the handler needs.
// Defined here (point of use) so tests can inject a fake.
type authUsecaser interface {
	Signup(ctx context.Context, input usecase.SignupInput) error
	Signin(ctx context.Context, input usecase.SigninInput) (*usecase.SigninResult, error)
	ResetPasswordDemand(ctx context.Context, email string) error
	ResetPasswordConfirmation(ctx context.Context, input usecase.ResetPasswordConfirmationInput) error
	DeleteAccount(ctx context.Context, userID, password string) error
}

type AuthHandler struct {
	authUsecase authUsecaser
	logger      *slog.Logger
}

func NewAuthHandler(authUsecase authUsecaser, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		logger:      logger.With("component", "auth_handler"),
	}
}

type signupRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,maxbytes=72"`
	Username string `json:"username" validate:"required"`
}

type signinRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type resetPasswordDemandRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type resetPasswordConfirmationRequest struct {
	Email    string `json:"email"    validate:"required,email"`
	Code     string `json:"code"     validate:"required,len=5,numeric"`
	Password string `json:"password" validate:"required,maxbytes=72"`
}

type deleteAccountRequest struct {
	Password string `json:"password" validate:"required"`
}

type userResponse struct {
	Username string `json:"username"`
	Email    string `json:"email"`
}

type signinResponse struct {
	Token     string       `json:"token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      userResponse `json:"user"`
}

// POST /auth/signup
func (h *AuthHandler) Signup(c *gin.Context) {
	var req signupRequest
	if !bind(c, &req) {
		return
	}

	err := h.authUsecase.Signup(c.Request.Context(), usecase.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
	})
	if err != nil {
		writeError(c, h.logger, "signup", err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"data": "User successfully created"})
}

// POST /auth/signin
func (h *AuthHandler) Signin(c *gin.Context) {
	var req signinRequest
	if !bind(c, &req) {
		return
	}

	res, err := h.authUsecase.Signin(c.Request.Context(), usecase.SigninInput{
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, "signin", err)
		return
	}

	c.JSON(http.StatusOK, signinResponse{
		Token:     res.Token,
		ExpiresAt: res.ExpiresAt,
		User:      userResponse{Username: res.User.Username, Email: res.User.Email},
	})
}

// POST /auth/reset-password
func (h *AuthHandler) ResetPasswordDemand(c *gin.Context) {
	var req resetPasswordDemandRequest
	if !bind(c, &req) {
		return
	}

	if err := h.authUsecase.ResetPasswordDemand(c.Request.Context(), req.Email); err != nil {
		writeError(c, h.logger, "reset password demand", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "Reset password has been sent"})
}

// POST /auth/reset-password-confirmation
func (h *AuthHandler) ResetPasswordConfirmation(c *gin.Context) {
	var req resetPasswordConfirmationRequest
	if !bind(c, &req) {
		return
	}

	err := h.authUsecase.ResetPasswordConfirmation(c.Request.Context(), usecase.ResetPasswordConfirmationInput{
		Email:    req.Email,
		Code:     req.Code,
		Password: req.Password,
	})
	if err != nil {
		writeError(c, h.logger, "reset password confirmation", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "Password updated"})
}

// DELETE /auth/delete — behind middleware.Auth, which supplies the user ID.
func (h *AuthHandler) DeleteAccount(c *gin.Context) {
	userID := c.GetString(middleware.UserIDKey)
	if userID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": errUnauthorized})
		return
	}

	var req deleteAccountRequest
	if !bind(c, &req) {
		return
	}

	if err := h.authUsecase.DeleteAccount(c.Request.Context(), userID, req.Password); err != nil {
		writeError(c, h.logger, "delete account", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"data": "Account deleted"})
}

// GET /auth/me — echoes the identity resolved from the bearer token.
func (h *AuthHandler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"user_id": c.GetString(middleware.UserIDKey),
		"email":   c.GetString(middleware.EmailKey),
	})
}
