package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/ErlanBelekov/todo-app/internal/domain"
	"github.com/gin-gonic/gin"
)

const (
	errInternalServer    = "Internal server error"
	errUserAlreadyExists = "User already exists"
	errUserNotFound      = "User not found"
	errPasswordMismatch  = "Password does not match"
	errCodeInvalid       = "Invalid or expired code"
	errUnauthorized      = "Unauthorized"
	errValidation        = "Validation failed"
)

// writeError maps a usecase error onto a status code by kind. Anything
// unclassified is logged and hidden behind a 500.
func writeError(c *gin.Context, logger *slog.Logger, op string, err error) {
	var (
		status int
		msg    string
	)
	switch {
	case errors.Is(err, domain.ErrUserAlreadyExists):
		status, msg = http.StatusConflict, errUserAlreadyExists
	case errors.Is(err, domain.ErrResetUserNotFound):
		status, msg = http.StatusConflict, errUserNotFound
	case errors.Is(err, domain.ErrUserNotFound):
		status, msg = http.StatusNotFound, errUserNotFound
	case errors.Is(err, domain.ErrPasswordMismatch):
		status, msg = http.StatusUnauthorized, errPasswordMismatch
	case errors.Is(err, domain.ErrCodeInvalid):
		status, msg = http.StatusUnauthorized, errCodeInvalid
	case errors.Is(err, domain.ErrUnauthorized):
		status, msg = http.StatusUnauthorized, errUnauthorized
	default:
		logger.ErrorContext(c.Request.Context(), op, "error", err)
		status, msg = http.StatusInternalServerError, errInternalServer
	}
	c.JSON(status, gin.H{"error": msg})
}
