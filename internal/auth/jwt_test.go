package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-that-is-long-enough-for-hs256"

func TestJWT_SignVerifyRoundTrip(t *testing.T) {
	t.Parallel()

	j := NewJWT(testSecret, "notesd", time.Hour)
	id := uuid.New()

	token, err := j.Sign(id)
	require.NoError(t, err)

	got, err := j.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestJWT_RejectsWrongSecret(t *testing.T) {
	t.Parallel()

	token, err := NewJWT("another-secret-another-secret-xx", "notesd", time.Hour).Sign(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT(testSecret, "notesd", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWT_RejectsWrongIssuer(t *testing.T) {
	t.Parallel()

	token, err := NewJWT(testSecret, "someone-else", time.Hour).Sign(uuid.New())
	require.NoError(t, err)

	_, err = NewJWT(testSecret, "notesd", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWT_RejectsExpired(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   uuid.NewString(),
		Issuer:    "notesd",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWT(testSecret, "notesd", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWT_RejectsNonUUIDSubject(t *testing.T) {
	t.Parallel()

	claims := jwt.RegisteredClaims{
		Subject:   "42",
		Issuer:    "notesd",
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Minute)),
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = NewJWT(testSecret, "notesd", time.Hour).Verify(token)
	assert.Error(t, err)
}

func TestJWT_RejectsEmpty(t *testing.T) {
	t.Parallel()

	_, err := NewJWT(testSecret, "notesd", time.Hour).Verify("")
	assert.Error(t, err)
}
