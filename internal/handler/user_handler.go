package handler

import (
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/service"
)

// UserHandler работает с учётными записями. id в пути - ключ сотрудника.
type UserHandler struct {
	base
	service service.UserService
}

func NewUserHandler(svc service.UserService, conv *converter.Converter, logger *slog.Logger) *UserHandler {
	return &UserHandler{base: newBase(conv, logger), service: svc}
}

func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	users, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Users(users))
}

func (h *UserHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	user, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.User(user))
}

// Create создаёт учётную запись для сотрудника из пути /employees/{id}/user
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	var req dto.UserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.Create(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, h.converter.User(user))
}

func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	var req dto.UserRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.User(user))
}

func (h *UserHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	if err := h.service.Delete(r.Context(), id); err != nil {
		h.handleServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
