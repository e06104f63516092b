package service

import (
	"context"
	"strings"

	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/repository"
)

// DepartmentService определяет интерфейс бизнес-логики для отделов
type DepartmentService interface {
	List(ctx context.Context) ([]*domain.Department, error)
	GetByID(ctx context.Context, id int64) (*domain.Department, error)
	Create(ctx context.Context, req *dto.DepartmentRequest) (*domain.Department, error)
	Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*domain.Department, error)
	Delete(ctx context.Context, id int64) error
}

type departmentService struct {
	newFactory FactoryFunc
}

// NewDepartmentService создаёт новый экземпляр сервиса
func NewDepartmentService(newFactory FactoryFunc) DepartmentService {
	return &departmentService{newFactory: newFactory}
}

func (s *departmentService) List(ctx context.Context) ([]*domain.Department, error) {
	return s.newFactory().Departments().GetDepartments(ctx)
}

func (s *departmentService) GetByID(ctx context.Context, id int64) (*domain.Department, error) {
	dept, err := s.newFactory().Departments().GetDepartment(ctx, id)
	if err != nil {
		return nil, err
	}
	if dept == nil {
		return nil, domain.ErrDepartmentNotFound
	}
	return dept, nil
}

func (s *departmentService) Create(ctx context.Context, req *dto.DepartmentRequest) (*domain.Department, error) {
	f := s.newFactory()

	// Проверяем существование компании
	if err := companyExists(ctx, f, req.CompanyID); err != nil {
		return nil, err
	}

	return f.Departments().AddDepartment(ctx, &domain.Department{
		Name:      strings.TrimSpace(req.Name),
		CompanyID: req.CompanyID,
	})
}

func (s *departmentService) Update(ctx context.Context, id int64, req *dto.DepartmentRequest) (*domain.Department, error) {
	f := s.newFactory()

	if err := companyExists(ctx, f, req.CompanyID); err != nil {
		return nil, err
	}

	err := f.Departments().Update(ctx, &domain.Department{
		ID:        id,
		Name:      strings.TrimSpace(req.Name),
		CompanyID: req.CompanyID,
	})
	if err != nil {
		return nil, notFound(err, domain.ErrDepartmentNotFound)
	}
	if err := s.moveEmployees(ctx, f, id, req.CompanyID); err != nil {
		return nil, err
	}
	if err := f.Save(ctx); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// moveEmployees переводит сотрудников отдела в его новую компанию в той же единице работы
func (s *departmentService) moveEmployees(ctx context.Context, f *repository.Factory, departmentID, companyID int64) error {
	employees, err := f.Employees().GetAll(ctx,
		repository.Where("department_id = ?", departmentID),
		repository.Where("company_id <> ?", companyID),
		repository.AsTracking(),
	)
	if err != nil {
		return err
	}

	for _, emp := range employees {
		emp.CompanyID = companyID
		if err := f.Employees().Update(ctx, emp); err != nil {
			return err
		}
	}
	return nil
}

// Delete удаляет отдел вместе с его сотрудниками
func (s *departmentService) Delete(ctx context.Context, id int64) error {
	f := s.newFactory()
	if err := f.Departments().Remove(ctx, &domain.Department{ID: id}); err != nil {
		return notFound(err, domain.ErrDepartmentNotFound)
	}
	return f.Save(ctx)
}
