package note

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"notes/internal/paging"
)

const maxTitleLen = 200

// Service applies the owner-scoped rules on top of a Repository.
type Service struct {
	repo Repository
	log  *slog.Logger
	now  func() time.Time
}

func NewService(repo Repository, log *slog.Logger) *Service {
	return &Service{repo: repo, log: log, now: time.Now}
}

// Search returns one page of the owner's notes matching q, most recently
// updated first unless q says otherwise.
func (s *Service) Search(ctx context.Context, owner uuid.UUID, q Query) (Page, error) {
	q = q.Normalize()

	rows, total, err := s.repo.Search(ctx, q.Filter(owner))
	if err != nil {
		return Page{}, fmt.Errorf("search notes: %w", err)
	}
	if rows == nil {
		rows = []Note{}
	}

	return Page{
		Notes:      rows,
		TotalCount: total,
		Page:       q.Page,
		PageSize:   q.PageSize,
		TotalPages: paging.TotalPages(total, q.PageSize),
	}, nil
}

func (s *Service) Get(ctx context.Context, owner, id uuid.UUID) (Note, error) {
	n, err := s.repo.Get(ctx, owner, id)
	if err != nil {
		return Note{}, fmt.Errorf("get note: %w", err)
	}
	return n, nil
}

func (s *Service) Create(ctx context.Context, owner uuid.UUID, d Draft) (Note, error) {
	d, err := validateDraft(d)
	if err != nil {
		return Note{}, err
	}

	now := s.now().UTC()
	n := Note{
		OwnerID:   owner,
		Title:     d.Title,
		Content:   d.Content,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Insert(ctx, &n); err != nil {
		return Note{}, fmt.Errorf("insert note: %w", err)
	}

	s.log.DebugContext(ctx, "note created", slog.String("note_id", n.ID.String()))
	return n, nil
}

// Update rewrites title and content and refreshes UpdatedAt.
func (s *Service) Update(ctx context.Context, owner, id uuid.UUID, d Draft) (Note, error) {
	d, err := validateDraft(d)
	if err != nil {
		return Note{}, err
	}

	n, err := s.repo.Update(ctx, owner, id, d, s.now().UTC())
	if err != nil {
		return Note{}, fmt.Errorf("update note: %w", err)
	}
	return n, nil
}

func (s *Service) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := s.repo.Delete(ctx, owner, id); err != nil {
		return fmt.Errorf("delete note: %w", err)
	}
	s.log.DebugContext(ctx, "note deleted", slog.String("note_id", id.String()))
	return nil
}

func validateDraft(d Draft) (Draft, error) {
	d.Title = strings.TrimSpace(d.Title)
	if d.Title == "" {
		return d, newValidationError("title", "required")
	}
	if utf8.RuneCountInString(d.Title) > maxTitleLen {
		return d, newValidationError("title", fmt.Sprintf("must be at most %d characters", maxTitleLen))
	}
	return d, nil
}
