package httpserver

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	domain "userhub/backend/internal/domain/user"
	userusecase "userhub/backend/internal/usecase/user"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		writeMethodNotAllowed(w, http.MethodGet)
		return
	}

	dbStatus := map[string]string{"status": "up"}
	if err := s.db.Ping(r.Context()); err != nil {
		dbStatus["status"] = "down"
		dbStatus["message"] = err.Error()
		writeJSON(w, http.StatusServiceUnavailable, map[string]any{
			"status":  "error",
			"error":   map[string]any{"database": dbStatus},
			"details": map[string]any{"database": dbStatus},
		})
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"info":    map[string]any{"database": dbStatus},
		"details": map[string]any{"database": dbStatus},
	})
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeMethodNotAllowed(w, http.MethodPost)
		return
	}

	var payload struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON payload")
		return
	}

	accessToken, err := s.authService.SignIn(r.Context(), domain.Credentials{
		Email:    payload.Email,
		Password: payload.Password,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			writeError(w, http.StatusUnauthorized, "Provided login data is incorrect")
		} else {
			writeServerError(w, err)
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"accessToken": accessToken})
}

func (s *Server) handleUsers(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	switch r.Method {
	case http.MethodGet:
		items, err := s.userService.List(ctx)
		if err != nil {
			writeServerError(w, err)
			return
		}
		if items == nil {
			items = []*domain.User{}
		}
		writeJSON(w, http.StatusOK, items)
	case http.MethodPost:
		var payload struct {
			Email    string `json:"email"`
			Password string `json:"password"`
			Name     string `json:"name"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		created, err := s.userService.Create(ctx, userusecase.CreateInput{
			Email:    payload.Email,
			Name:     payload.Name,
			Password: payload.Password,
		})
		if err != nil {
			if errors.Is(err, domain.ErrEmailExists) {
				writeError(w, http.StatusConflict, "User already exists")
			} else {
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusCreated, created)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPost)
	}
}

func (s *Server) handleUserByID(w http.ResponseWriter, r *http.Request) {
	id := strings.Trim(strings.TrimPrefix(r.URL.Path, "/users/"), "/")
	if id == "" || strings.Contains(id, "/") {
		writeError(w, http.StatusNotFound, "resource not found")
		return
	}

	ctx := r.Context()

	// "me" resolves to the authenticated caller.
	if id == "me" {
		identity, ok := identityFromContext(ctx)
		if !ok {
			writeError(w, http.StatusUnauthorized, "authentication required")
			return
		}
		id = identity.Subject
	}

	switch r.Method {
	case http.MethodGet:
		item, err := s.userService.Get(ctx, id)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "User was not found")
			} else {
				writeServerError(w, err)
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodPatch:
		var payload struct {
			Email    *string `json:"email"`
			Name     *string `json:"name"`
			Password *string `json:"password"`
		}
		if err := json.NewDecoder(r.Body).Decode(&payload); err != nil {
			writeError(w, http.StatusBadRequest, "invalid JSON payload")
			return
		}

		item, err := s.userService.Update(ctx, id, userusecase.UpdateInput{
			Email:    payload.Email,
			Name:     payload.Name,
			Password: payload.Password,
		})
		if err != nil {
			switch {
			case errors.Is(err, domain.ErrNotFound):
				writeError(w, http.StatusNotFound, "User was not found")
			case errors.Is(err, domain.ErrEmailExists):
				writeError(w, http.StatusConflict, "Email is already in use")
			default:
				writeError(w, http.StatusBadRequest, err.Error())
			}
			return
		}
		writeJSON(w, http.StatusOK, item)
	case http.MethodDelete:
		if err := s.userService.Delete(ctx, id); err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				writeError(w, http.StatusNotFound, "User was not found")
			} else {
				writeServerError(w, err)
			}
			return
		}
		w.WriteHeader(http.StatusNoContent)
	default:
		writeMethodNotAllowed(w, http.MethodGet, http.MethodPatch, http.MethodDelete)
	}
}
