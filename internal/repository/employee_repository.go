package repository

import (
	"context"
	"strings"
	"time"

	"github.com/company-directory-api/internal/domain"
)

// EmployeeRepository - репозиторий сотрудников
type EmployeeRepository struct {
	*Repository[*domain.Employee]
}

// NewEmployeeRepository создаёт новый экземпляр репозитория
func NewEmployeeRepository(uow *UnitOfWork) *EmployeeRepository {
	return &EmployeeRepository{Repository: NewRepository[*domain.Employee](uow)}
}

func employeeGraph() []QueryOption {
	return []QueryOption{
		Include("Company"),
		Include("Department"),
		Include("Address"),
		Include("User"),
	}
}

// EmployeeSearch - критерии поиска сотрудников. Пустые критерии не применяются.
type EmployeeSearch struct {
	FirstName  string
	LastName   string
	Department string
	Username   string
	BirthDate  *time.Time
}

// Matches проверяет сотрудника по всем заданным критериям одновременно
func (s EmployeeSearch) Matches(e *domain.Employee) bool {
	if !containsFold(e.FirstName, s.FirstName) || !containsFold(e.LastName, s.LastName) {
		return false
	}

	if strings.TrimSpace(s.Department) != "" {
		if e.Department == nil || !containsFold(e.Department.Name, s.Department) {
			return false
		}
	}

	if strings.TrimSpace(s.Username) != "" {
		if e.User == nil || !containsFold(e.User.Username, s.Username) {
			return false
		}
	}

	if s.BirthDate != nil {
		if e.BirthDate == nil || !sameDay(*e.BirthDate, *s.BirthDate) {
			return false
		}
	}

	return true
}

func containsFold(value, fragment string) bool {
	fragment = strings.TrimSpace(fragment)
	if fragment == "" {
		return true
	}
	return strings.Contains(strings.ToLower(value), strings.ToLower(fragment))
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// AddEmployee сохраняет сотрудника вместе с адресом и пользователем и перечитывает его
func (r *EmployeeRepository) AddEmployee(ctx context.Context, emp *domain.Employee, opts ...QueryOption) (*domain.Employee, error) {
	r.Add(emp)
	if err := r.Save(ctx); err != nil {
		return nil, err
	}
	return r.GetEmployee(ctx, emp.ID, opts...)
}

// GetEmployee возвращает сотрудника по ключу или nil
func (r *EmployeeRepository) GetEmployee(ctx context.Context, id int64, opts ...QueryOption) (*domain.Employee, error) {
	return r.GetSingle(ctx, append(with(employeeGraph(), opts...), Where("employees.id = ?", id))...)
}

// GetEmployees возвращает сотрудников, отсортированных по фамилии и имени
func (r *EmployeeRepository) GetEmployees(ctx context.Context, opts ...QueryOption) ([]*domain.Employee, error) {
	return r.GetAll(ctx, append(with(employeeGraph(), opts...),
		OrderBy("employees.last_name ASC"),
		OrderBy("employees.first_name ASC"),
		OrderBy("employees.id ASC"),
	)...)
}

// SearchEmployees фильтрует полный набор сотрудников по критериям
func (r *EmployeeRepository) SearchEmployees(ctx context.Context, criteria EmployeeSearch) ([]*domain.Employee, error) {
	all, err := r.GetEmployees(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]*domain.Employee, 0, len(all))
	for _, emp := range all {
		if criteria.Matches(emp) {
			result = append(result, emp)
		}
	}
	return result, nil
}
