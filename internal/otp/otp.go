// Package otp issues and checks the time-based codes that prove control of an
// email address during password reset. Nothing is persisted: a code is a pure
// function of the shared secret and the current time window, so it stays valid
// for whoever holds it until the window rolls over.
package otp

import (
	"fmt"
	"time"

	pqotp "github.com/pquerna/otp"
	"github.com/pquerna/otp/totp"
)

const (
	DefaultStep   = 15 * time.Minute
	DefaultDigits = 5
)

type Option func(*Generator)

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) { g.now = now }
}

// WithStep sets the window length. Sub-second steps are rounded up to 1s.
func WithStep(step time.Duration) Option {
	return func(g *Generator) {
		period := uint(step / time.Second)
		if period == 0 {
			period = 1
		}
		g.opts.Period = period
	}
}

func WithDigits(digits int) Option {
	return func(g *Generator) { g.opts.Digits = pqotp.Digits(digits) }
}

type Generator struct {
	secret string
	opts   totp.ValidateOpts
	now    func() time.Time
}

// NewGenerator builds a generator for the base32 secret. Only the current
// window is accepted; there is no drift tolerance.
func NewGenerator(secret string, options ...Option) (*Generator, error) {
	g := &Generator{
		secret: secret,
		opts: totp.ValidateOpts{
			Period:    uint(DefaultStep / time.Second),
			Skew:      0,
			Digits:    pqotp.Digits(DefaultDigits),
			Algorithm: pqotp.AlgorithmSHA1,
		},
		now: time.Now,
	}
	for _, o := range options {
		o(g)
	}

	if _, err := totp.GenerateCodeCustom(g.secret, g.now(), g.opts); err != nil {
		return nil, fmt.Errorf("invalid otp secret: %w", err)
	}
	return g, nil
}

// Generate returns the code for the current window.
func (g *Generator) Generate() (string, error) {
	code, err := totp.GenerateCodeCustom(g.secret, g.now(), g.opts)
	if err != nil {
		return "", fmt.Errorf("generate otp: %w", err)
	}
	return code, nil
}

// Verify reports whether code matches the current window. Codes of the wrong
// length or containing non-digits never match.
func (g *Generator) Verify(code string) bool {
	ok, err := totp.ValidateCustom(code, g.secret, g.now(), g.opts)
	return err == nil && ok
}
