package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) *Service {
	t.Helper()
	return NewService(NewMemoryStore(), NewJWT(testSecret, "notesd", time.Hour), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestSignUp_ReturnsVerifiableSession(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)

	s, err := svc.SignUp(context.Background(), "  Ada@Example.com ", "correct horse", "Ada")
	require.NoError(t, err)

	assert.Equal(t, "ada@example.com", s.User.Email)
	assert.Equal(t, "Ada", s.User.Name)

	id, err := svc.jwt.Verify(s.Token)
	require.NoError(t, err)
	assert.Equal(t, s.User.ID, id)
}

func TestSignUp_DuplicateEmail(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	_, err = svc.SignUp(ctx, "ADA@example.com", "another one", "Ada 2")
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignUp_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"bad email", "not-an-email", "correct horse"},
		{"empty email", "", "correct horse"},
		{"short password", "ada@example.com", "short"},
		{"password over bcrypt limit", "ada@example.com", strings.Repeat("p", 73)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := newTestService(t).SignUp(context.Background(), tt.email, tt.password, "")
			assert.ErrorIs(t, err, ErrInvalidInput)
		})
	}
}

func TestSignUp_ReportsFieldsByJSONName(t *testing.T) {
	t.Parallel()

	_, err := newTestService(t).SignUp(context.Background(), "nope", "short", strings.Repeat("é", 101))

	var ie *InputError
	require.ErrorAs(t, err, &ie)
	assert.Equal(t, map[string]string{"email": "email", "password": "min", "name": "max"}, ie.Fields)
	assert.Equal(t, "invalid input: email: email, name: max, password: min", ie.Error())
}

func TestSignUp_NameLimitCountsRunes(t *testing.T) {
	t.Parallel()

	_, err := newTestService(t).SignUp(context.Background(), "ada@example.com", "correct horse", strings.Repeat("é", 100))
	assert.NoError(t, err)
}

func TestSignIn(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.SignUp(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	s, err := svc.SignIn(ctx, "ADA@example.com", "correct horse")
	require.NoError(t, err)
	assert.Equal(t, reg.User.ID, s.User.ID)

	_, err = svc.SignIn(ctx, "ada@example.com", "wrong horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.SignIn(ctx, "nobody@example.com", "correct horse")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestUser(t *testing.T) {
	t.Parallel()

	svc := newTestService(t)
	ctx := context.Background()

	reg, err := svc.SignUp(ctx, "ada@example.com", "correct horse", "Ada")
	require.NoError(t, err)

	id, err := svc.User(ctx, reg.User.ID)
	require.NoError(t, err)
	assert.Equal(t, reg.User, id)

	_, err = svc.User(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrUnknownUser)
}

func TestIsUniqueViolation(t *testing.T) {
	t.Parallel()

	assert.True(t, isUniqueViolation(gorm.ErrDuplicatedKey))
	assert.True(t, isUniqueViolation(&pgconn.PgError{Code: "23505"}))
	assert.True(t, isUniqueViolation(&pq.Error{Code: "23505"}))
	assert.False(t, isUniqueViolation(&pq.Error{Code: "23503"}))
	assert.False(t, isUniqueViolation(errors.New("boom")))
}
