package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"

	"notes/internal/note"
	"notes/internal/view"
)

var (
	_ view.Backend  = (*Client)(nil)
	_ view.Identity = (*Client)(nil)
)

type noteWire struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (w noteWire) note() (note.Note, error) {
	id, err := uuid.Parse(w.ID)
	if err != nil {
		return note.Note{}, fmt.Errorf("bad note id %q: %w", w.ID, err)
	}
	owner, err := uuid.Parse(w.OwnerID)
	if err != nil {
		return note.Note{}, fmt.Errorf("bad owner id %q: %w", w.OwnerID, err)
	}
	return note.Note{
		ID:        id,
		OwnerID:   owner,
		Title:     w.Title,
		Content:   w.Content,
		CreatedAt: w.CreatedAt,
		UpdatedAt: w.UpdatedAt,
	}, nil
}

type pageWire struct {
	Notes      []noteWire `json:"notes"`
	TotalCount int64      `json:"total_count"`
	Page       int        `json:"page"`
	PageSize   int        `json:"page_size"`
	TotalPages int        `json:"total_pages"`
}

type draftWire struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Search lists the signed-in user's notes. The server scopes by token, so
// owner only has to match the session's user.
func (c *Client) Search(ctx context.Context, owner uuid.UUID, q note.Query) (note.Page, error) {
	v := url.Values{}
	if q.Search != "" {
		v.Set("q", q.Search)
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	if q.PageSize > 0 {
		v.Set("page_size", strconv.Itoa(q.PageSize))
	}
	if q.Sort != "" {
		v.Set("sort", string(q.Sort))
	}
	if q.Order != "" {
		v.Set("order", string(q.Order))
	}

	path := "/notes"
	if enc := v.Encode(); enc != "" {
		path += "?" + enc
	}

	var out pageWire
	if err := c.do(ctx, http.MethodGet, path, nil, &out); err != nil {
		return note.Page{}, err
	}

	page := note.Page{
		Notes:      make([]note.Note, 0, len(out.Notes)),
		TotalCount: out.TotalCount,
		Page:       out.Page,
		PageSize:   out.PageSize,
		TotalPages: out.TotalPages,
	}
	for _, w := range out.Notes {
		n, err := w.note()
		if err != nil {
			return note.Page{}, err
		}
		page.Notes = append(page.Notes, n)
	}
	return page, nil
}

func (c *Client) Get(ctx context.Context, owner, id uuid.UUID) (note.Note, error) {
	return c.noteCall(ctx, http.MethodGet, "/notes/"+id.String(), nil)
}

func (c *Client) Create(ctx context.Context, owner uuid.UUID, d note.Draft) (note.Note, error) {
	return c.noteCall(ctx, http.MethodPost, "/notes", draftWire{Title: d.Title, Content: d.Content})
}

func (c *Client) Update(ctx context.Context, owner, id uuid.UUID, d note.Draft) (note.Note, error) {
	return c.noteCall(ctx, http.MethodPut, "/notes/"+id.String(), draftWire{Title: d.Title, Content: d.Content})
}

func (c *Client) Delete(ctx context.Context, owner, id uuid.UUID) error {
	return c.do(ctx, http.MethodDelete, "/notes/"+id.String(), nil, nil)
}

func (c *Client) noteCall(ctx context.Context, method, path string, body any) (note.Note, error) {
	var out noteWire
	if err := c.do(ctx, method, path, body, &out); err != nil {
		return note.Note{}, err
	}
	return out.note()
}
