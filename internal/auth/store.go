package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

var errUserNotFound = errors.New("user not found")

// UserRepository persists accounts.
type UserRepository interface {
	// Create fails with ErrEmailTaken when the email is already registered.
	Create(ctx context.Context, u *User) error
	ByEmail(ctx context.Context, email string) (User, error)
	ByID(ctx context.Context, id uuid.UUID) (User, error)
}

// Store is the Postgres-backed UserRepository.
type Store struct {
	DB *gorm.DB
}

func (s *Store) Create(ctx context.Context, u *User) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	if err := s.DB.WithContext(ctx).Create(u).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrEmailTaken
		}
		return err
	}
	return nil
}

func (s *Store) ByEmail(ctx context.Context, email string) (User, error) {
	return s.first(ctx, "email = ?", email)
}

func (s *Store) ByID(ctx context.Context, id uuid.UUID) (User, error) {
	return s.first(ctx, "id = ?", id)
}

func (s *Store) first(ctx context.Context, cond string, arg any) (User, error) {
	var u User
	if err := s.DB.WithContext(ctx).Where(cond, arg).First(&u).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return User{}, errUserNotFound
		}
		return User{}, err
	}
	return u, nil
}

// isUniqueViolation recognizes SQLSTATE 23505 from either database/sql driver
// and gorm's translated form.
func isUniqueViolation(err error) bool {
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code == "23505"
	}
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return pqErr.Code == "23505"
	}
	return false
}

// MemoryStore is an in-process UserRepository.
type MemoryStore struct {
	mu      sync.RWMutex
	byID    map[uuid.UUID]User
	byEmail map[string]uuid.UUID
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		byID:    map[uuid.UUID]User{},
		byEmail: map[string]uuid.UUID{},
	}
}

func (m *MemoryStore) Create(ctx context.Context, u *User) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	key := strings.ToLower(u.Email)
	if _, ok := m.byEmail[key]; ok {
		return ErrEmailTaken
	}
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	m.byID[u.ID] = *u
	m.byEmail[key] = u.ID
	return nil
}

func (m *MemoryStore) ByEmail(ctx context.Context, email string) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	id, ok := m.byEmail[strings.ToLower(email)]
	if !ok {
		return User{}, errUserNotFound
	}
	return m.byID[id], nil
}

func (m *MemoryStore) ByID(ctx context.Context, id uuid.UUID) (User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	u, ok := m.byID[id]
	if !ok {
		return User{}, errUserNotFound
	}
	return u, nil
}
