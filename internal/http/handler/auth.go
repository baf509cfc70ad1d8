package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"notes/internal/auth"
)

type AuthHandler struct {
	Svc *auth.Service
	Log *slog.Logger
}

type registerReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginReq struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type userDTO struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

type sessionDTO struct {
	Token string  `json:"token"`
	User  userDTO `json:"user"`
}

func toUserDTO(id auth.Identity) userDTO {
	return userDTO{ID: id.ID.String(), Email: id.Email, Name: id.Name}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s, err := h.Svc.SignUp(r.Context(), req.Email, req.Password, req.Name)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrEmailTaken):
		writeError(w, http.StatusConflict, "email already used")
		return
	case errors.Is(err, auth.ErrInvalidInput):
		writeValidation(w, err)
		return
	default:
		h.Log.ErrorContext(r.Context(), "register failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusCreated, sessionDTO{Token: s.Token, User: toUserDTO(s.User)})
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginReq
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "bad json")
		return
	}

	s, err := h.Svc.SignIn(r.Context(), req.Email, req.Password)
	switch {
	case err == nil:
	case errors.Is(err, auth.ErrInvalidCredentials):
		writeError(w, http.StatusUnauthorized, "invalid credentials")
		return
	default:
		h.Log.ErrorContext(r.Context(), "login failed", slog.Any("error", err))
		writeError(w, http.StatusInternalServerError, "server error")
		return
	}

	writeJSON(w, http.StatusOK, sessionDTO{Token: s.Token, User: toUserDTO(s.User)})
}

// writeValidation reports rejected sign-up fields by JSON name.
func writeValidation(w http.ResponseWriter, err error) {
	var ie *auth.InputError
	if !errors.As(err, &ie) {
		writeError(w, http.StatusBadRequest, "invalid input")
		return
	}
	writeJSON(w, http.StatusBadRequest, errorBody{Error: "invalid input", Fields: ie.Fields})
}
