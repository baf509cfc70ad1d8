package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var (
	ErrEmailTaken         = errors.New("email already used")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidInput       = errors.New("invalid input")
	ErrUnknownUser        = errors.New("unknown user")
)

// Session is the result of a successful sign-up or sign-in.
type Session struct {
	Token string
	User  Identity
}

type Service struct {
	users    UserRepository
	jwt      *JWT
	log      *slog.Logger
	validate *validator.Validate
}

func NewService(users UserRepository, jwtSvc *JWT, log *slog.Logger) *Service {
	return &Service{users: users, jwt: jwtSvc, log: log, validate: newValidator()}
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *Service) SignUp(ctx context.Context, email, password, name string) (Session, error) {
	email = normalizeEmail(email)
	name = strings.TrimSpace(name)

	in := signUpInput{Email: email, Password: password, Name: name}
	if err := s.validate.Struct(in); err != nil {
		return Session{}, inputError(err)
	}

	hash, err := HashPassword(password)
	if err != nil {
		return Session{}, fmt.Errorf("hash password: %w", err)
	}

	u := User{
		ID:           uuid.New(),
		Email:        email,
		Name:         name,
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}
	if err := s.users.Create(ctx, &u); err != nil {
		if errors.Is(err, ErrEmailTaken) {
			return Session{}, ErrEmailTaken
		}
		return Session{}, fmt.Errorf("create user: %w", err)
	}

	s.log.InfoContext(ctx, "user registered", slog.String("user_id", u.ID.String()))
	return s.session(u)
}

func (s *Service) SignIn(ctx context.Context, email, password string) (Session, error) {
	email = normalizeEmail(email)
	if email == "" || password == "" {
		return Session{}, ErrInvalidCredentials
	}

	u, err := s.users.ByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			return Session{}, ErrInvalidCredentials
		}
		return Session{}, fmt.Errorf("find user: %w", err)
	}
	if !ComparePassword(u.PasswordHash, password) {
		return Session{}, ErrInvalidCredentials
	}
	return s.session(u)
}

// User looks up the identity behind an authenticated user id.
func (s *Service) User(ctx context.Context, id uuid.UUID) (Identity, error) {
	u, err := s.users.ByID(ctx, id)
	if err != nil {
		if errors.Is(err, errUserNotFound) {
			return Identity{}, ErrUnknownUser
		}
		return Identity{}, fmt.Errorf("find user: %w", err)
	}
	return u.Identity(), nil
}

func (s *Service) session(u User) (Session, error) {
	token, err := s.jwt.Sign(u.ID)
	if err != nil {
		return Session{}, fmt.Errorf("sign token: %w", err)
	}
	return Session{Token: token, User: u.Identity()}, nil
}
