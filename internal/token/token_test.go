package token_test

import (
	"errors"
	"testing"
	"time"

	"github.com/ErlanBelekov/todo-app/internal/domain"
	"github.com/ErlanBelekov/todo-app/internal/token"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testKey = "token-test-secret-at-least-32-chars!"

var issuedAt = time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)

func fixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

func TestIssue_ClaimsAndTwoHourExpiry(t *testing.T) {
	iss := token.NewIssuer([]byte(testKey), token.WithClock(fixedClock(issuedAt)))

	raw, exp, err := iss.Issue("user-1", "a@example.com")
	require.NoError(t, err)
	assert.Equal(t, issuedAt.Add(2*time.Hour), exp)

	c, err := iss.Verify(raw)
	require.NoError(t, err)
	assert.Equal(t, "user-1", c.UserID)
	assert.Equal(t, "a@example.com", c.Email)
	assert.True(t, c.IssuedAt.Equal(issuedAt))
	assert.True(t, c.ExpiresAt.Equal(issuedAt.Add(token.DefaultTTL)))
}

func TestIssue_RawClaimsAreStandardJWT(t *testing.T) {
	iss := token.NewIssuer([]byte(testKey), token.WithClock(fixedClock(issuedAt)))
	raw, _, err := iss.Issue("user-1", "a@example.com")
	require.NoError(t, err)

	parsed, _, err := jwt.NewParser().ParseUnverified(raw, jwt.MapClaims{})
	require.NoError(t, err)
	mc := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", mc["sub"])
	assert.Equal(t, "a@example.com", mc["email"])
	assert.EqualValues(t, issuedAt.Add(2*time.Hour).Unix(), mc["exp"])
}

func TestVerify_Expired(t *testing.T) {
	iss := token.NewIssuer([]byte(testKey), token.WithClock(fixedClock(issuedAt)))
	raw, _, err := iss.Issue("user-1", "a@example.com")
	require.NoError(t, err)

	later := token.NewIssuer([]byte(testKey), token.WithClock(fixedClock(issuedAt.Add(2*time.Hour+time.Second))))
	_, err = later.Verify(raw)
	assert.True(t, errors.Is(err, domain.ErrTokenInvalid))
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestVerify_WrongKey(t *testing.T) {
	raw, _, err := token.NewIssuer([]byte("another-key-that-is-32-characters")).Issue("user-1", "a@example.com")
	require.NoError(t, err)

	_, err = token.NewIssuer([]byte(testKey)).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_RejectsNoneAlgorithm(t *testing.T) {
	unsigned := jwt.NewWithClaims(jwt.SigningMethodNone, jwt.MapClaims{
		"sub": "user-1",
		"exp": time.Now().Add(time.Hour).Unix(),
	})
	raw, err := unsigned.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = token.NewIssuer([]byte(testKey)).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_MissingSubject(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": "a@example.com",
		"exp":   time.Now().Add(time.Hour).Unix(),
	})
	raw, err := tok.SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = token.NewIssuer([]byte(testKey)).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_MissingExpiry(t *testing.T) {
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"sub": "user-1"})
	raw, err := tok.SignedString([]byte(testKey))
	require.NoError(t, err)

	_, err = token.NewIssuer([]byte(testKey)).Verify(raw)
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}

func TestVerify_Garbage(t *testing.T) {
	_, err := token.NewIssuer([]byte(testKey)).Verify("not.a.jwt")
	assert.ErrorIs(t, err, domain.ErrTokenInvalid)
}
