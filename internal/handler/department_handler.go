package handler

import (
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/service"
)

type DepartmentHandler struct {
	base
	service service.DepartmentService
}

func NewDepartmentHandler(svc service.DepartmentService, conv *converter.Converter, logger *slog.Logger) *DepartmentHandler {
	return &DepartmentHandler{base: newBase(conv, logger), service: svc}
}

func (h *DepartmentHandler) List(w http.ResponseWriter, r *http.Request) {
	departments, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Departments(departments))
}

func (h *DepartmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	dept, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Department(dept))
}

func (h *DepartmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.DepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, h.converter.Department(dept))
}

func (h *DepartmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	var req dto.DepartmentRequest
	if !h.decode(w, r, &req) {
		return
	}

	dept, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Department(dept))
}

func (h *DepartmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
