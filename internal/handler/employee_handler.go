package handler

import (
	"log/slog"
	"net/http"

	"github.com/company-directory-api/internal/converter"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/service"
)

type EmployeeHandler struct {
	base
	service service.EmployeeService
}

func NewEmployeeHandler(svc service.EmployeeService, conv *converter.Converter, logger *slog.Logger) *EmployeeHandler {
	return &EmployeeHandler{base: newBase(conv, logger), service: svc}
}

func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employees, err := h.service.List(r.Context())
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Employees(employees))
}

// Search ищет сотрудников по параметрам строки запроса, все условия объединяются через И
func (h *EmployeeHandler) Search(w http.ResponseWriter, r *http.Request) {
	query := h.parseSearchQuery(r)
	if err := h.validator.Struct(&query); err != nil {
		h.handleServiceError(w, err)
		return
	}

	employees, err := h.service.Search(r.Context(), &query)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Employees(employees))
}

func (h *EmployeeHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	emp, err := h.service.GetByID(r.Context(), id)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Employee(emp))
}

func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.EmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.service.Create(r.Context(), &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusCreated, h.converter.Employee(emp))
}

func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.extractID(w, r)
	if !ok {
		return
	}

	var req dto.EmployeeRequest
	if !h.decode(w, r, &req) {
		return
	}

	emp, err := h.service.Update(r.Context(), id, &req)
	if err != nil {
		h.handleServiceError(w, err)
		return
	}
	h.respondJSON(w, http.StatusOK, h.converter.Employee(emp))
}

func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
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

func (h *EmployeeHandler) parseSearchQuery(r *http.Request) dto.EmployeeSearchQuery {
	q := r.URL.Query()
	query := dto.EmployeeSearchQuery{
		FirstName:  q.Get("first_name"),
		LastName:   q.Get("last_name"),
		Department: q.Get("department"),
		Username:   q.Get("username"),
	}

	if birthDate := q.Get("birth_date"); birthDate != "" {
		query.BirthDate = &birthDate
	}

	return query
}
