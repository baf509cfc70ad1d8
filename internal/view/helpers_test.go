package view

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"

	"notes/internal/auth"
	"notes/internal/logging"
	"notes/internal/note"
)

type staticIdentity struct {
	user auth.Identity
	ok   bool
}

func (s staticIdentity) CurrentUser() (auth.Identity, bool) { return s.user, s.ok }

func signedIn() staticIdentity {
	return staticIdentity{user: auth.Identity{ID: uuid.New(), Email: "ada@example.com"}, ok: true}
}

// recorder collects notices.
type recorder struct {
	mu      sync.Mutex
	notices []Notice
}

func (r *recorder) Notify(n Notice) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.notices = append(r.notices, n)
}

func (r *recorder) all() []Notice {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Notice(nil), r.notices...)
}

// recordingBackend wraps a real backend, recording queries and injecting
// errors.
type recordingBackend struct {
	Backend

	mu        sync.Mutex
	queries   []note.Query
	mutations int
	searchErr error
	writeErr  error
}

func (b *recordingBackend) Search(ctx context.Context, owner uuid.UUID, q note.Query) (note.Page, error) {
	b.mu.Lock()
	b.queries = append(b.queries, q)
	err := b.searchErr
	b.mu.Unlock()

	if err != nil {
		return note.Page{}, err
	}
	return b.Backend.Search(ctx, owner, q)
}

func (b *recordingBackend) Create(ctx context.Context, owner uuid.UUID, d note.Draft) (note.Note, error) {
	if err := b.mutation(); err != nil {
		return note.Note{}, err
	}
	return b.Backend.Create(ctx, owner, d)
}

func (b *recordingBackend) Update(ctx context.Context, owner, id uuid.UUID, d note.Draft) (note.Note, error) {
	if err := b.mutation(); err != nil {
		return note.Note{}, err
	}
	return b.Backend.Update(ctx, owner, id, d)
}

func (b *recordingBackend) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := b.mutation(); err != nil {
		return err
	}
	return b.Backend.Delete(ctx, owner, id)
}

func (b *recordingBackend) mutation() error {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.mutations++
	return b.writeErr
}

func (b *recordingBackend) searches() []note.Query {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]note.Query(nil), b.queries...)
}

func (b *recordingBackend) failSearch(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.searchErr = err
}

func (b *recordingBackend) failWrites(err error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.writeErr = err
}

func (b *recordingBackend) mutationCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.mutations
}

type fixture struct {
	mem     *note.MemoryStore
	backend *recordingBackend
	ident   staticIdentity
	notices *recorder
	store   *Store
}

func newFixture(t *testing.T, opts Options) *fixture {
	t.Helper()

	mem := note.NewMemoryStore()
	f := &fixture{
		mem:     mem,
		backend: &recordingBackend{Backend: note.NewService(mem, logging.Discard())},
		ident:   signedIn(),
		notices: &recorder{},
	}
	opts.Notifier = f.notices
	opts.Log = logging.Discard()
	f.store = NewStore(f.backend, f.ident, opts)
	t.Cleanup(f.store.Close)
	return f
}

// seed inserts n notes for the signed-in user; note i is updated i minutes
// after a fixed base time, so the newest has the highest index.
func (f *fixture) seed(t *testing.T, n int) []note.Note {
	t.Helper()

	base := time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC)
	out := make([]note.Note, 0, n)
	for i := 0; i < n; i++ {
		at := base.Add(time.Duration(i) * time.Minute)
		nt := note.Note{
			OwnerID:   f.ident.user.ID,
			Title:     fmt.Sprintf("note %02d", i),
			CreatedAt: at,
			UpdatedAt: at,
		}
		require.NoError(t, f.mem.Insert(context.Background(), &nt))
		out = append(out, nt)
	}
	return out
}

func titles(notes []note.Note) []string {
	out := make([]string, 0, len(notes))
	for _, n := range notes {
		out = append(out, n.Title)
	}
	return out
}
