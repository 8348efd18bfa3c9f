package config

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/go-playground/validator/v10"
)

type Config struct {
	Env      string `env:"ENV" envDefault:"local" validate:"required,oneof=local staging production"`
	Port     string `env:"PORT" envDefault:"8080" validate:"required"`
	LogLevel string `env:"LOG_LEVEL" envDefault:"info" validate:"oneof=debug info warn error"`

	DatabaseURL   string `env:"DATABASE_URL,required" validate:"required"`
	RunMigrations bool   `env:"RUN_MIGRATIONS" envDefault:"true"`

	MetricsPort         string `env:"METRICS_PORT" envDefault:"9090"`
	HealthProbeSchedule string `env:"HEALTH_PROBE_SCHEDULE" envDefault:"@every 15s" validate:"required"`

	JWTSecret  string `env:"JWT_SECRET,required" validate:"required,min=32"`
	OTPSecret  string `env:"OTP_SECRET,required" validate:"required,base32"`
	BcryptCost int    `env:"BCRYPT_COST" envDefault:"10" validate:"min=4,max=31"`

	ResetPasswordURL string `env:"RESET_PASSWORD_URL" envDefault:"http://localhost:3000/auth/reset-password-confirmation" validate:"required,url"`

	MailProvider string `env:"MAIL_PROVIDER" envDefault:"log" validate:"oneof=log resend smtp"`
	MailFrom     string `env:"MAIL_FROM"      validate:"required_unless=MailProvider log"`
	ResendAPIKey string `env:"RESEND_API_KEY" validate:"required_if=MailProvider resend"`
	SMTPHost     string `env:"SMTP_HOST"      validate:"required_if=MailProvider smtp"`
	SMTPPort     string `env:"SMTP_PORT" envDefault:"587"`
	SMTPUsername string `env:"SMTP_USERNAME"`
	SMTPPassword string `env:"SMTP_PASSWORD"`
}

func Load() (*Config, error) {
	cfg := &Config{}

	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}

	if err := validator.New().Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	return cfg, nil
}

// SlogLevel maps LOG_LEVEL onto a slog.Level, defaulting to Info.
func (c *Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
