package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"notes/internal/auth"
)

type MeHandler struct {
	Svc *auth.Service
	Log *slog.Logger
}

func (h *MeHandler) Me(w http.ResponseWriter, r *http.Request) {
	uid, _ := auth.UserIDFromContext(r.Context())

	id, err := h.Svc.User(r.Context(), uid)
	if err != nil {
		if errors.Is(err, auth.ErrUnknownUser) {
			writeError(w, http.StatusUnauthorized, "unauthorized")
			return
		}
		h.Log.ErrorContext(r.Context(), "load user failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, toUserDTO(id))
}
