package handler

import (
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/service"
)

type CompanyHandler struct {
	base
	service service.CompanyService
}

func NewCompanyHandler(svc service.CompanyService, conv *converter.Converter, logger *slog.Logger) *CompanyHandler {
	return &CompanyHandler{base: newBase(conv, logger), service: svc}
}

func (h *CompanyHandler) List(w http.ResponseWriter, r *http.Request) {
	companies, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Companies(companies))
}

func (h *CompanyHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	company, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Company(company))
}

func (h *CompanyHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CompanyRequest
	if !h.decode(w, r, &req) {
		return
	}

	company, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, h.converter.Company(company))
}

func (h *CompanyHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	var req dto.CompanyRequest
	if !h.decode(w, r, &req) {
		return
	}

	company, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Company(company))
}

func (h *CompanyHandler) Delete(w http.ResponseWriter, r *http.Request) {
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
