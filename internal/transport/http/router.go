package httptransport

import (
	"log/slog"

	"github.com/ErlanBelekov/todo-app/internal/transport/http/handler"
	"github.com/ErlanBelekov/todo-app/internal/transport/http/middleware"
	"github.com/gin-gonic/gin"

	sloggin "github.com/samber/slog-gin"
)

func NewRouter(logger *slog.Logger, authHandler *handler.AuthHandler, healthHandler *handler.HealthHandler, verifier middleware.TokenVerifier) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(middleware.RequestID())
	r.Use(middleware.Security())
	r.Use(sloggin.NewWithConfig(logger, sloggin.Config{
		DefaultLevel:     slog.LevelInfo,
		ClientErrorLevel: slog.LevelWarn,
		ServerErrorLevel: slog.LevelError,
		// request_id comes from our own middleware via the context handler.
		WithRequestID: false,
		// Request bodies carry passwords.
		WithRequestBody: false,
	}))
	r.Use(middleware.Metrics())

	r.GET("/healthz", healthHandler.Liveness)
	r.GET("/readyz", healthHandler.Readiness)

	auth := r.Group("/auth")
	auth.POST("/signup", authHandler.Signup)
	auth.POST("/signin", authHandler.Signin)
	auth.POST("/reset-password", authHandler.ResetPasswordDemand)
	auth.POST("/reset-password-confirmation", authHandler.ResetPasswordConfirmation)

	// Protected routes
	protected := auth.Group("", middleware.Auth(verifier))
	protected.DELETE("/delete", authHandler.DeleteAccount)
	protected.GET("/me", authHandler.Me)

	return r
}
