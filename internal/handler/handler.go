package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/validation"
)

// base содержит общие для всех обработчиков зависимости и ответы
type base struct {
	validator *validation.Validator
	converter *converter.Converter
	logger    *slog.Logger
}

func newBase(conv *converter.Converter, logger *slog.Logger) base {
	return base{
		validator: validation.New(),
		converter: conv,
		logger:    logger,
	}
}

// decode читает тело запроса и проверяет его. При ошибке ответ уже отправлен.
func (h *base) decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		h.respondError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		h.handleServiceError(w, err)
		return false
	}
	return true
}

func (h *base) extractID(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(r.PathValue("id"), 10, 64)
	if err != nil || id <= 0 {
		h.respondError(w, http.StatusBadRequest, "invalid id", fmt.Sprintf("%q is not a valid id", r.PathValue("id")))
		return 0, false
	}
	return id, true
}

func (h *base) handleServiceError(w http.ResponseWriter, err error) {
	var verr *domain.ValidationError
	if errors.As(err, &verr) {
		h.respondJSON(w, http.StatusBadRequest, dto.ErrorResponse{Error: "validation error", Fields: verr.Fields})
		return
	}

	switch {
	case errors.Is(err, domain.ErrCompanyNotFound):
		h.respondError(w, http.StatusNotFound, "company not found", "")
	case errors.Is(err, domain.ErrDepartmentNotFound):
		h.respondError(w, http.StatusNotFound, "department not found", "")
	case errors.Is(err, domain.ErrEmployeeNotFound):
		h.respondError(w, http.StatusNotFound, "employee not found", "")
	case errors.Is(err, domain.ErrUserNotFound):
		h.respondError(w, http.StatusNotFound, "user not found", "")
	case errors.Is(err, domain.ErrEntityDoesNotExist):
		h.respondError(w, http.StatusNotFound, "not found", "")
	case errors.Is(err, domain.ErrDepartmentCompanyMismatch):
		h.respondError(w, http.StatusBadRequest, "department belongs to another company", "")
	case errors.Is(err, domain.ErrEntityKeyMissing):
		h.respondError(w, http.StatusBadRequest, "id is required", "")
	case errors.Is(err, domain.ErrUsernameTaken):
		h.respondError(w, http.StatusConflict, "username is already taken", "")
	case errors.Is(err, domain.ErrUserAlreadyExists):
		h.respondError(w, http.StatusConflict, "employee already has a user", "")
	case errors.Is(err, domain.ErrInvalidCredentials):
		h.respondError(w, http.StatusUnauthorized, "invalid username or password", "")
	default:
		h.logger.Error("internal error", slog.Any("error", err))
		h.respondError(w, http.StatusInternalServerError, "internal server error", "")
	}
}

func (h *base) respondJSON(w http.ResponseWriter, status int, data any) {
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		h.logger.Error("failed to encode response", slog.Any("error", err))
	}
}

func (h *base) respondError(w http.ResponseWriter, status int, errMsg, details string) {
	h.respondJSON(w, status, dto.ErrorResponse{Error: errMsg, Message: details})
}
