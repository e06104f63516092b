package converter

import (
	"strings"
	"time"

	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
)

// Converter превращает загруженные графы сущностей в DTO ответов
type Converter struct {
	now func() time.Time
}

// New создаёт конвертер. Часы нужны для расчёта возраста сотрудника.
func New(now func() time.Time) *Converter {
	if now == nil {
		now = time.Now
	}
	return &Converter{now: now}
}

// EmployeeSummary возвращает строку вида
// "John Whyne, Address: Kentucky, USA, Department: Logistics, Username: johnw".
// Отсутствующие части пропускаются.
func EmployeeSummary(e *domain.Employee) string {
	var b strings.Builder
	b.WriteString(e.FullName())
	if e.Address != nil {
		b.WriteString(", Address: ")
		b.WriteString(e.Address.Address)
	}
	if e.Department != nil {
		b.WriteString(", Department: ")
		b.WriteString(e.Department.Name)
	}
	if e.User != nil {
		b.WriteString(", Username: ")
		b.WriteString(e.User.Username)
	}
	return b.String()
}

func summaries(employees []domain.Employee) []string {
	out := make([]string, len(employees))
	for i := range employees {
		out[i] = EmployeeSummary(&employees[i])
	}
	return out
}

func (c *Converter) Company(company *domain.Company) dto.CompanyResponse {
	resp := dto.CompanyResponse{
		ID:          company.ID,
		Name:        company.Name,
		Departments: make([]dto.DepartmentResponse, len(company.Departments)),
		Employees:   summaries(company.Employees),
		Created:     company.Created,
		Modified:    company.Modified,
	}
	for i := range company.Departments {
		d := &company.Departments[i]
		resp.Departments[i] = dto.DepartmentResponse{
			ID:        d.ID,
			Name:      d.Name,
			CompanyID: d.CompanyID,
			Created:   d.Created,
			Modified:  d.Modified,
		}
	}
	return resp
}

func (c *Converter) Companies(companies []*domain.Company) []dto.CompanyResponse {
	out := make([]dto.CompanyResponse, len(companies))
	for i, company := range companies {
		out[i] = c.Company(company)
	}
	return out
}

func (c *Converter) Department(d *domain.Department) dto.DepartmentResponse {
	resp := dto.DepartmentResponse{
		ID:        d.ID,
		Name:      d.Name,
		CompanyID: d.CompanyID,
		Employees: summaries(d.Employees),
		Created:   d.Created,
		Modified:  d.Modified,
	}
	if d.Company != nil {
		resp.CompanyName = d.Company.Name
	}
	return resp
}

func (c *Converter) Departments(departments []*domain.Department) []dto.DepartmentResponse {
	out := make([]dto.DepartmentResponse, len(departments))
	for i, d := range departments {
		out[i] = c.Department(d)
	}
	return out
}

func (c *Converter) Employee(e *domain.Employee) dto.EmployeeResponse {
	resp := dto.EmployeeResponse{
		ID:           e.ID,
		FirstName:    e.FirstName,
		LastName:     e.LastName,
		FullName:     e.FullName(),
		CompanyID:    e.CompanyID,
		DepartmentID: e.DepartmentID,
		Summary:      EmployeeSummary(e),
		Created:      e.Created,
		Modified:     e.Modified,
	}

	if e.BirthDate != nil {
		birthDate := e.BirthDate.Format(dto.DateLayout)
		age := e.Age(c.now())
		resp.BirthDate = &birthDate
		resp.Age = &age
	}
	if e.Company != nil {
		resp.CompanyName = e.Company.Name
	}
	if e.Department != nil {
		resp.DepartmentName = e.Department.Name
	}
	if e.Address != nil {
		resp.Address = e.Address.Address
	}
	if e.User != nil {
		resp.Username = e.User.Username
	}
	return resp
}

func (c *Converter) Employees(employees []*domain.Employee) []dto.EmployeeResponse {
	out := make([]dto.EmployeeResponse, len(employees))
	for i, e := range employees {
		out[i] = c.Employee(e)
	}
	return out
}

func (c *Converter) User(u *domain.User) dto.UserResponse {
	resp := dto.UserResponse{
		EmployeeID: u.EmployeeID,
		Username:   u.Username,
		Token:      u.Token,
		Created:    u.Created,
		Modified:   u.Modified,
	}
	if e := u.Employee; e != nil {
		resp.EmployeeName = e.FullName()
		if e.Department != nil {
			resp.Department = e.Department.Name
		}
		if e.Address != nil {
			resp.Address = e.Address.Address
		}
	}
	return resp
}

func (c *Converter) Users(users []*domain.User) []dto.UserResponse {
	out := make([]dto.UserResponse, len(users))
	for i, u := range users {
		out[i] = c.User(u)
	}
	return out
}
