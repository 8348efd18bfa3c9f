package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/ErlanBelekov/todo-app/internal/domain"
	"github.com/golang-jwt/jwt/v5"
)

// DefaultTTL is how long an issued bearer token stays valid.
const DefaultTTL = 2 * time.Hour

type Option func(*Issuer)

func WithTTL(ttl time.Duration) Option {
	return func(i *Issuer) { i.ttl = ttl }
}

func WithClock(now func() time.Time) Option {
	return func(i *Issuer) { i.now = now }
}

type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 bearer tokens with a process-wide key.
type Issuer struct {
	key []byte
	ttl time.Duration
	now func() time.Time
}

func NewIssuer(key []byte, opts ...Option) *Issuer {
	i := &Issuer{key: key, ttl: DefaultTTL, now: time.Now}
	for _, o := range opts {
		o(i)
	}
	return i
}

// Issue signs a token for the user. Expiry is exactly issuance + TTL,
// truncated to whole seconds as JWT NumericDate requires.
func (i *Issuer) Issue(userID, email string) (string, time.Time, error) {
	now := i.now().Truncate(time.Second)
	exp := now.Add(i.ttl)

	c := claims{
		Email: email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, c).SignedString(i.key)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("sign jwt: %w", err)
	}
	return signed, exp, nil
}

// Verify checks signature, algorithm and expiry. Any failure is
// domain.ErrTokenInvalid.
func (i *Issuer) Verify(raw string) (*domain.Claims, error) {
	var c claims
	tok, err := jwt.ParseWithClaims(raw, &c, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return i.key, nil
	},
		jwt.WithTimeFunc(i.now),
		jwt.WithExpirationRequired(),
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !tok.Valid {
		return nil, domain.ErrTokenInvalid
	}
	if c.Subject == "" {
		return nil, domain.ErrTokenInvalid
	}

	out := &domain.Claims{
		UserID:    c.Subject,
		Email:     c.Email,
		ExpiresAt: c.ExpiresAt.Time,
	}
	if c.IssuedAt != nil {
		out.IssuedAt = c.IssuedAt.Time
	}
	return out, nil
}
