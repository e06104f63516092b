package handler

import (
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/service"
)

type AuthHandler struct {
	base
	service service.AuthService
}

func NewAuthHandler(svc service.AuthService, conv *converter.Converter, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{base: newBase(conv, logger), service: svc}
}

// Login проверяет логин и пароль и возвращает пользователя с токеном
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if !h.decode(w, r, &req) {
		return
	}

	user, err := h.service.Login(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.User(user))
}
