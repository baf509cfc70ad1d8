// Package view holds the client-side state of a notes list: debounced search
// input, the committed query, the cached page and the mutations that keep it
// in sync with the backend.
package view

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"notes/internal/auth"
	"notes/internal/note"
	"notes/internal/paging"
)

var (
	// ErrUnauthenticated means there is no current user; nothing was sent.
	ErrUnauthenticated = errors.New("not signed in")
	// ErrValidation means the input was rejected before any backend call.
	ErrValidation = errors.New("title is required")
)

// maxClampReloads bounds the reloads issued when a page shrinks out from
// under the current page number.
const maxClampReloads = 2

// Identity supplies the signed-in user, if any.
type Identity interface {
	CurrentUser() (auth.Identity, bool)
}

// Backend is the owner-scoped persistence the store reads and writes.
type Backend interface {
	Search(ctx context.Context, owner uuid.UUID, q note.Query) (note.Page, error)
	Create(ctx context.Context, owner uuid.UUID, d note.Draft) (note.Note, error)
	Update(ctx context.Context, owner, id uuid.UUID, d note.Draft) (note.Note, error)
	Delete(ctx context.Context, owner, id uuid.UUID) error
}

type Options struct {
	PageSize int
	Debounce time.Duration
	Notifier Notifier
	Log      *slog.Logger
	// OnChange, when set, receives a snapshot after every state change.
	OnChange func(Snapshot)
}

// Snapshot is a consistent copy of the store's state.
type Snapshot struct {
	Notes           []note.Note
	TotalCount      int64
	Page            int
	PageSize        int
	TotalPages      int
	RawSearch       string
	CommittedSearch string
	Loading         bool
	Loaded          bool
	Err             error
}

// queryKey identifies the parameters a load was issued for.
type queryKey struct {
	search   string
	page     int
	pageSize int
}

type Store struct {
	backend  Backend
	ident    Identity
	notifier Notifier
	log      *slog.Logger
	onChange func(Snapshot)
	debounce *Debouncer

	ctx    context.Context
	cancel context.CancelFunc

	mu        sync.Mutex
	raw       string
	committed string
	page      int
	pageSize  int
	notes     []note.Note
	total     int64
	loaded    bool
	loadErr   error
	issued    uint64
	applied   uint64 // newest generation whose data the cache reflects
	pending   map[uint64]queryKey
	closed    bool
}

func NewStore(backend Backend, ident Identity, opts Options) *Store {
	if opts.PageSize < 1 {
		opts.PageSize = note.DefaultPageSize
	}
	// the server caps larger pages; paging math must use the size it serves
	if opts.PageSize > note.MaxPageSize {
		opts.PageSize = note.MaxPageSize
	}
	if opts.Notifier == nil {
		opts.Notifier = NotifierFunc(func(Notice) {})
	}
	if opts.Log == nil {
		opts.Log = slog.Default()
	}

	ctx, cancel := context.WithCancel(context.Background())
	s := &Store{
		backend:  backend,
		ident:    ident,
		notifier: opts.Notifier,
		log:      opts.Log,
		onChange: opts.OnChange,
		ctx:      ctx,
		cancel:   cancel,
		page:     1,
		pageSize: opts.PageSize,
		pending:  map[uint64]queryKey{},
	}
	s.debounce = NewDebouncer(opts.Debounce, func(v string) {
		if err := s.Commit(s.ctx, v); err != nil && !errors.Is(err, ErrUnauthenticated) {
			s.log.Debug("debounced load failed", slog.Any("error", err))
		}
	})
	return s
}

// Close stops the debouncer and cancels loads started by it.
func (s *Store) Close() {
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()

	s.debounce.Stop()
	s.cancel()
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

func (s *Store) snapshotLocked() Snapshot {
	notes := make([]note.Note, len(s.notes))
	copy(notes, s.notes)

	key := s.keyLocked()
	loading := false
	for _, k := range s.pending {
		if k == key {
			loading = true
			break
		}
	}

	return Snapshot{
		Notes:           notes,
		TotalCount:      s.total,
		Page:            s.page,
		PageSize:        s.pageSize,
		TotalPages:      paging.TotalPages(s.total, s.pageSize),
		RawSearch:       s.raw,
		CommittedSearch: s.committed,
		Loading:         loading,
		Loaded:          s.loaded,
		Err:             s.loadErr,
	}
}

func (s *Store) keyLocked() queryKey {
	return queryKey{search: s.committed, page: s.page, pageSize: s.pageSize}
}

func (s *Store) changed() {
	if s.onChange == nil {
		return
	}
	s.onChange(s.Snapshot())
}

// SetSearch records the text being typed and schedules its commit.
func (s *Store) SetSearch(raw string) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.raw = raw
	s.mu.Unlock()

	s.changed()
	s.debounce.Push(raw)
}

// Commit makes text the committed search, resets to page 1 in the same step,
// and loads. An unchanged text is a no-op.
func (s *Store) Commit(ctx context.Context, text string) error {
	s.mu.Lock()
	if s.closed || text == s.committed {
		s.mu.Unlock()
		return nil
	}
	s.committed = text
	s.page = 1
	s.mu.Unlock()

	s.changed()
	return s.Load(ctx)
}

// GoToPage clamps n to the known page range and loads it.
func (s *Store) GoToPage(ctx context.Context, n int) error {
	s.mu.Lock()
	n = paging.Clamp(n, paging.TotalPages(s.total, s.pageSize))
	if n == s.page {
		s.mu.Unlock()
		return nil
	}
	s.page = n
	s.mu.Unlock()

	s.changed()
	return s.Load(ctx)
}

func (s *Store) NextPage(ctx context.Context) error {
	return s.GoToPage(ctx, s.Snapshot().Page+1)
}

func (s *Store) PrevPage(ctx context.Context) error {
	return s.GoToPage(ctx, s.Snapshot().Page-1)
}

// Load fetches the current query's page. Results for parameters that are no
// longer current, or older than an already applied result, are dropped.
func (s *Store) Load(ctx context.Context) error {
	user, ok := s.ident.CurrentUser()
	if !ok {
		return ErrUnauthenticated
	}

	for i := 0; i <= maxClampReloads; i++ {
		reload, err := s.loadOnce(ctx, user.ID)
		if err != nil || !reload {
			return err
		}
	}
	return nil
}

func (s *Store) loadOnce(ctx context.Context, owner uuid.UUID) (reload bool, err error) {
	s.mu.Lock()
	key := s.keyLocked()
	s.issued++
	gen := s.issued
	s.pending[gen] = key
	s.mu.Unlock()

	s.changed()

	page, err := s.backend.Search(ctx, owner, note.Query{
		Search:   key.search,
		Page:     key.page,
		PageSize: key.pageSize,
		Sort:     note.SortUpdatedAt,
		Order:    note.OrderDesc,
	})

	s.mu.Lock()
	delete(s.pending, gen)

	if key != s.keyLocked() || gen <= s.applied {
		s.mu.Unlock()
		s.log.Debug("stale load discarded",
			slog.String("search", key.search), slog.Int("page", key.page), slog.Uint64("gen", gen))
		s.changed()
		return false, nil
	}

	if err != nil {
		s.loadErr = err
		s.mu.Unlock()
		s.changed()
		s.fail("Failed to load notes", err)
		return false, fmt.Errorf("load notes: %w", err)
	}

	s.applied = gen
	s.notes = page.Notes
	s.total = page.TotalCount
	s.loaded = true
	s.loadErr = nil

	clamped := paging.Clamp(s.page, paging.TotalPages(s.total, s.pageSize))
	reload = clamped != s.page
	s.page = clamped
	s.mu.Unlock()

	s.changed()
	return reload, nil
}

// Create adds a note and reloads so it lands at its sorted position.
func (s *Store) Create(ctx context.Context, title, content string) (note.Note, error) {
	user, ok := s.ident.CurrentUser()
	if !ok {
		return note.Note{}, ErrUnauthenticated
	}
	if strings.TrimSpace(title) == "" {
		s.fail("Title is required", ErrValidation)
		return note.Note{}, ErrValidation
	}

	n, err := s.backend.Create(ctx, user.ID, note.Draft{Title: title, Content: content})
	if err != nil {
		s.fail("Failed to create note", err)
		return note.Note{}, fmt.Errorf("create note: %w", err)
	}
	s.succeed("Note created successfully")

	s.reloadAfter(ctx, "create")
	return n, nil
}

// Update rewrites a note and patches the cached entry in place.
func (s *Store) Update(ctx context.Context, id uuid.UUID, title, content string) (note.Note, error) {
	user, ok := s.ident.CurrentUser()
	if !ok {
		return note.Note{}, ErrUnauthenticated
	}
	if strings.TrimSpace(title) == "" {
		s.fail("Title is required", ErrValidation)
		return note.Note{}, ErrValidation
	}

	n, err := s.backend.Update(ctx, user.ID, id, note.Draft{Title: title, Content: content})
	if err != nil {
		s.fail("Failed to update note", err)
		return note.Note{}, fmt.Errorf("update note: %w", err)
	}

	s.mu.Lock()
	for i := range s.notes {
		if s.notes[i].ID == id {
			s.notes[i] = n
			break
		}
	}
	// loads issued before the write may still carry the old row
	s.applied = s.issued
	s.mu.Unlock()

	s.changed()
	s.succeed("Note updated successfully")
	return n, nil
}

// Delete removes a note and reloads to refill the current page.
func (s *Store) Delete(ctx context.Context, id uuid.UUID) error {
	user, ok := s.ident.CurrentUser()
	if !ok {
		return ErrUnauthenticated
	}

	if err := s.backend.Delete(ctx, user.ID, id); err != nil {
		s.fail("Failed to delete note", err)
		return fmt.Errorf("delete note: %w", err)
	}
	s.succeed("Note deleted successfully")

	s.reloadAfter(ctx, "delete")
	return nil
}

// reloadAfter refreshes the page after a successful mutation. A failed
// reload is reported by Load itself and does not fail the mutation.
func (s *Store) reloadAfter(ctx context.Context, op string) {
	if err := s.Load(ctx); err != nil {
		s.log.Debug("reload failed", slog.String("op", op), slog.Any("error", err))
	}
}

func (s *Store) succeed(msg string) {
	s.notifier.Notify(Notice{Level: Success, Title: "Success", Message: msg})
}

func (s *Store) fail(msg string, err error) {
	s.log.Warn(msg, slog.Any("error", err))
	s.notifier.Notify(Notice{Level: Failure, Title: "Error", Message: msg})
}
