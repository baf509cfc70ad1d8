package note

import (
	"context"
	"database/sql"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Repository is the record store capability the service needs. Every method
// is scoped to a single owner.
type Repository interface {
	// Search returns the filter's window and the count of all rows matching
	// the same predicate.
	Search(ctx context.Context, f Filter) ([]Note, int64, error)
	Get(ctx context.Context, owner, id uuid.UUID) (Note, error)
	Insert(ctx context.Context, n *Note) error
	Update(ctx context.Context, owner, id uuid.UUID, d Draft, at time.Time) (Note, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

// Store is the Postgres-backed Repository.
type Store struct {
	DB *gorm.DB
}

var likeEscaper = strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)

func (s *Store) Search(ctx context.Context, f Filter) ([]Note, int64, error) {
	var (
		rows  []Note
		total int64
	)

	// count and page read the same snapshot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := scoped(tx, f).Count(&total).Error; err != nil {
			return err
		}
		if total == 0 {
			return nil
		}
		return window(scoped(tx, f), f).Find(&rows).Error
	}, &sql.TxOptions{Isolation: sql.LevelRepeatableRead, ReadOnly: true})
	if err != nil {
		return nil, 0, err
	}
	return rows, total, nil
}

// scoped restricts tx to the owner's notes and applies the text filter.
func scoped(tx *gorm.DB, f Filter) *gorm.DB {
	q := tx.Model(&Note{}).Where("owner_id = ?", f.OwnerID)

	if text := strings.TrimSpace(f.Search); text != "" {
		pattern := "%" + likeEscaper.Replace(text) + "%"
		q = q.Where("(title ILIKE ? OR content ILIKE ?)", pattern, pattern)
	}
	return q
}

func window(q *gorm.DB, f Filter) *gorm.DB {
	return q.Order(clause.OrderBy{Columns: []clause.OrderByColumn{
		{Column: clause.Column{Name: string(f.Sort)}, Desc: f.Order != OrderAsc},
		{Column: clause.Column{Name: "id"}},
	}}).Offset(f.Offset).Limit(f.Limit)
}

func (s *Store) Get(ctx context.Context, owner, id uuid.UUID) (Note, error) {
	var n Note
	if err := s.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).First(&n).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return Note{}, ErrNotFound
		}
		return Note{}, err
	}
	return n, nil
}

func (s *Store) Insert(ctx context.Context, n *Note) error {
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}
	return s.DB.WithContext(ctx).Create(n).Error
}

func (s *Store) Update(ctx context.Context, owner, id uuid.UUID, d Draft, at time.Time) (Note, error) {
	var n Note
	res := s.DB.WithContext(ctx).
		Model(&n).
		Clauses(clause.Returning{}).
		Where("id = ? AND owner_id = ?", id, owner).
		Updates(map[string]any{
			"title":      d.Title,
			"content":    d.Content,
			"updated_at": at,
		})
	if res.Error != nil {
		return Note{}, res.Error
	}
	if res.RowsAffected == 0 {
		return Note{}, ErrNotFound
	}
	return n, nil
}

func (s *Store) Delete(ctx context.Context, owner, id uuid.UUID) error {
	res := s.DB.WithContext(ctx).Where("id = ? AND owner_id = ?", id, owner).Delete(&Note{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
