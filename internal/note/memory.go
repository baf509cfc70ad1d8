package note

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"
	"unicode"

	"github.com/google/uuid"
)

// MemoryStore is an in-process Repository for development and tests.
type MemoryStore struct {
	mu   sync.RWMutex
	seq  uint64
	rows map[uuid.UUID]memoryRow
}

type memoryRow struct {
	note Note
	seq  uint64
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{rows: map[uuid.UUID]memoryRow{}}
}

func (m *MemoryStore) Search(ctx context.Context, f Filter) ([]Note, int64, error) {
	if err := ctx.Err(); err != nil {
		return nil, 0, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	text := fold(strings.TrimSpace(f.Search))
	matched := make([]memoryRow, 0, len(m.rows))
	for _, r := range m.rows {
		if r.note.OwnerID != f.OwnerID {
			continue
		}
		if text != "" &&
			!strings.Contains(fold(r.note.Title), text) &&
			!strings.Contains(fold(r.note.Content), text) {
			continue
		}
		matched = append(matched, r)
	}

	sort.SliceStable(matched, func(i, j int) bool {
		a, b := matched[i], matched[j]
		c := compareBy(f.Sort, a.note, b.note)
		if c == 0 {
			return a.seq < b.seq
		}
		if f.Order == OrderAsc {
			return c < 0
		}
		return c > 0
	})

	total := int64(len(matched))
	if f.Offset >= len(matched) {
		return []Note{}, total, nil
	}
	end := len(matched)
	if f.Limit > 0 && f.Offset+f.Limit < end {
		end = f.Offset + f.Limit
	}

	out := make([]Note, 0, end-f.Offset)
	for _, r := range matched[f.Offset:end] {
		out = append(out, r.note)
	}
	return out, total, nil
}

// fold maps every rune to one representative of its simple case-fold orbit,
// so "ſ", "s" and "S" compare equal. Like ILIKE it works rune by rune:
// multi-rune foldings such as "ß" to "ss" do not match.
func fold(s string) string {
	return strings.Map(foldRune, s)
}

func foldRune(r rune) rune {
	low := r
	for f := unicode.SimpleFold(r); f != r; f = unicode.SimpleFold(f) {
		if f < low {
			low = f
		}
	}
	return low
}

func compareBy(s Sort, a, b Note) int {
	switch s {
	case SortTitle:
		return strings.Compare(strings.ToLower(a.Title), strings.ToLower(b.Title))
	case SortCreatedAt:
		return a.CreatedAt.Compare(b.CreatedAt)
	default:
		return a.UpdatedAt.Compare(b.UpdatedAt)
	}
}

func (m *MemoryStore) Get(ctx context.Context, owner, id uuid.UUID) (Note, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	r, ok := m.rows[id]
	if !ok || r.note.OwnerID != owner {
		return Note{}, ErrNotFound
	}
	return r.note, nil
}

func (m *MemoryStore) Insert(ctx context.Context, n *Note) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if n.ID == uuid.Nil {
		n.ID = uuid.New()
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.seq++
	m.rows[n.ID] = memoryRow{note: *n, seq: m.seq}
	return nil
}

func (m *MemoryStore) Update(ctx context.Context, owner, id uuid.UUID, d Draft, at time.Time) (Note, error) {
	if err := ctx.Err(); err != nil {
		return Note{}, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok || r.note.OwnerID != owner {
		return Note{}, ErrNotFound
	}
	r.note.Title = d.Title
	r.note.Content = d.Content
	r.note.UpdatedAt = at
	m.rows[id] = r
	return r.note, nil
}

func (m *MemoryStore) Delete(ctx context.Context, owner, id uuid.UUID) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	r, ok := m.rows[id]
	if !ok || r.note.OwnerID != owner {
		return ErrNotFound
	}
	delete(m.rows, id)
	return nil
}
