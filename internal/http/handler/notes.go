package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"notes/internal/auth"
	"notes/internal/note"
)

type NoteHandler struct {
	Svc             *note.Service
	Log             *slog.Logger
	DefaultPageSize int
}

type noteDTO struct {
	ID        string    `json:"id"`
	OwnerID   string    `json:"owner_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type pageDTO struct {
	Notes      []noteDTO `json:"notes"`
	TotalCount int64     `json:"total_count"`
	Page       int       `json:"page"`
	PageSize   int       `json:"page_size"`
	TotalPages int       `json:"total_pages"`
}

type draftReq struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

func toNoteDTO(n note.Note) noteDTO {
	return noteDTO{
		ID:        n.ID.String(),
		OwnerID:   n.OwnerID.String(),
		Title:     n.Title,
		Content:   n.Content,
		CreatedAt: n.CreatedAt,
		UpdatedAt: n.UpdatedAt,
	}
}

func (h *NoteHandler) List(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())
	v := r.URL.Query()

	q := note.Query{
		Search:   v.Get("q"),
		Page:     atoiOr(v.Get("page"), 1),
		PageSize: atoiOr(v.Get("page_size"), h.DefaultPageSize),
		Sort:     note.Sort(strings.ToLower(strings.TrimSpace(v.Get("sort")))),
		Order:    note.Order(strings.ToLower(strings.TrimSpace(v.Get("order")))),
	}

	page, err := h.Svc.Search(r.Context(), uid, q)
	if err != nil {
		h.fail(w, r, err)
		return
	}

	out := pageDTO{
		Notes:      make([]noteDTO, 0, len(page.Notes)),
		TotalCount: page.TotalCount,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
	for _, n := range page.Notes {
		out.Notes = append(out.Notes, toNoteDTO(n))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *NoteHandler) Create(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	n, err := h.Svc.Create(r.Context(), uid, note.Draft{Title: req.Title, Content: req.Content})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toNoteDTO(n))
}

func (h *NoteHandler) Get(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	n, err := h.Svc.Get(r.Context(), uid, id)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(n))
}

func (h *NoteHandler) Update(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	var req draftReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	n, err := h.Svc.Update(r.Context(), uid, id, note.Draft{Title: req.Title, Content: req.Content})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toNoteDTO(n))
}

func (h *NoteHandler) Delete(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, ok := noteID(w, r)
	if !ok {
		return
	}

	if err := h.Svc.Delete(r.Context(), uid, id); err != nil {
		h.fail(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *NoteHandler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var ve *note.ValidationError
	switch {
	case errors.As(err, &ve):
		fields := make(map[string]string, len(ve.Fields))
		for _, f := range ve.Fields {
			fields[f.Field] = f.Message
		}
		writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid input", Fields: fields})
	case errors.Is(err, note.ErrNotFound):
		writeError(w, http.StatusNotFound, "not found")
	default:
		h.Log.ErrorContext(r.Context(), "notes request failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
	}
}

func noteID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid id")
		return uuid.Nil, false
	}
	return id, true
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return def
	}
	return n
}
