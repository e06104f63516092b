package handler

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/dto"
)

// HealthHandler отвечает на проверки состояния
type HealthHandler struct {
	base
	ping func(ctx context.Context) error
}

func NewHealthHandler(ping func(ctx context.Context) error, logger *slog.Logger) *HealthHandler {
	return &HealthHandler{base: newBase(nil, logger), ping: ping}
}

func (h *HealthHandler) Check(w http.ResponseWriter, r *http.Request) {
	if err := h.ping(r.Context()); err != nil {
		h.logger.Error("database ping failed", slog.Any("error", err))
		h.respondJSON(w, http.StatusServiceUnavailable, dto.HealthResponse{Status: "unavailable", Database: "down"})
		return
	}
	h.respondJSON(w, http.StatusOK, dto.HealthResponse{Status: "ok", Database: "up"})
}
