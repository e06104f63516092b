package repository

import (
	"context"

	"github.com/company-directory-api/internal/domain"
)

// DepartmentRepository - репозиторий отделов
type DepartmentRepository struct {
	*Repository[*domain.Department]
}

// NewDepartmentRepository создаёт новый экземпляр репозитория
func NewDepartmentRepository(uow *UnitOfWork) *DepartmentRepository {
	return &DepartmentRepository{Repository: NewRepository[*domain.Department](uow)}
}

func departmentGraph() []QueryOption {
	return []QueryOption{
		Include("Company"),
		Include("Employees", ordered("last_name ASC, first_name ASC, id ASC")),
		Include("Employees.Address"),
		Include("Employees.User"),
	}
}

// AddDepartment сохраняет отдел и перечитывает его с полным графом
func (r *DepartmentRepository) AddDepartment(ctx context.Context, dept *domain.Department, opts ...QueryOption) (*domain.Department, error) {
	r.Add(dept)
	if err := r.Save(ctx); err != nil {
		return nil, err
	}
	return r.GetDepartment(ctx, dept.ID, opts...)
}

// GetDepartment возвращает отдел по ключу или nil
func (r *DepartmentRepository) GetDepartment(ctx context.Context, id int64, opts ...QueryOption) (*domain.Department, error) {
	return r.GetSingle(ctx, append(with(departmentGraph(), opts...), Where("departments.id = ?", id))...)
}

// GetDepartments возвращает все отделы по возрастанию ключа
func (r *DepartmentRepository) GetDepartments(ctx context.Context, opts ...QueryOption) ([]*domain.Department, error) {
	return r.GetAll(ctx, append(with(departmentGraph(), opts...), OrderBy("departments.id ASC"))...)
}
