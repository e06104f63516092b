package service

import (
	"context"
	"strings"

	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/repository"
)

// EmployeeService определяет интерфейс бизнес-логики для сотрудников
type EmployeeService interface {
	List(ctx context.Context) ([]*domain.Employee, error)
	GetByID(ctx context.Context, id int64) (*domain.Employee, error)
	Search(ctx context.Context, query *dto.EmployeeSearchQuery) ([]*domain.Employee, error)
	Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error)
	Update(ctx context.Context, id int64, req *dto.EmployeeRequest) (*domain.Employee, error)
	Delete(ctx context.Context, id int64) error
}

type employeeService struct {
	newFactory FactoryFunc
}

// NewEmployeeService создаёт новый экземпляр сервиса
func NewEmployeeService(newFactory FactoryFunc) EmployeeService {
	return &employeeService{newFactory: newFactory}
}

func (s *employeeService) List(ctx context.Context) ([]*domain.Employee, error) {
	return s.newFactory().Employees().GetEmployees(ctx)
}

func (s *employeeService) GetByID(ctx context.Context, id int64) (*domain.Employee, error) {
	emp, err := s.newFactory().Employees().GetEmployee(ctx, id)
	if err != nil {
		return nil, err
	}
	if emp == nil {
		return nil, domain.ErrEmployeeNotFound
	}
	return emp, nil
}

func (s *employeeService) Search(ctx context.Context, query *dto.EmployeeSearchQuery) ([]*domain.Employee, error) {
	birthDate, err := parseDate("birth_date", query.BirthDate)
	if err != nil {
		return nil, err
	}
	return s.newFactory().Employees().SearchEmployees(ctx, repository.EmployeeSearch{
		FirstName:  query.FirstName,
		LastName:   query.LastName,
		Department: query.Department,
		Username:   query.Username,
		BirthDate:  birthDate,
	})
}

func (s *employeeService) Create(ctx context.Context, req *dto.EmployeeRequest) (*domain.Employee, error) {
	f := s.newFactory()

	emp, err := s.build(ctx, f, 0, req)
	if err != nil {
		return nil, err
	}
	if req.Address != nil && strings.TrimSpace(*req.Address) != "" {
		emp.Address = &domain.EmployeeAddress{Address: strings.TrimSpace(*req.Address)}
	}

	return f.Employees().AddEmployee(ctx, emp)
}

// Update меняет данные сотрудника. Адрес меняется, только если он передан в запросе.
func (s *employeeService) Update(ctx context.Context, id int64, req *dto.EmployeeRequest) (*domain.Employee, error) {
	f := s.newFactory()

	emp, err := s.build(ctx, f, id, req)
	if err != nil {
		return nil, err
	}
	if err := f.Employees().Update(ctx, emp); err != nil {
		return nil, notFound(err, domain.ErrEmployeeNotFound)
	}

	if req.Address != nil {
		if err := s.stageAddress(ctx, f, id, strings.TrimSpace(*req.Address)); err != nil {
			return nil, err
		}
	}

	if err := f.Save(ctx); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete удаляет сотрудника вместе с адресом и пользователем
func (s *employeeService) Delete(ctx context.Context, id int64) error {
	f := s.newFactory()
	if err := f.Employees().Remove(ctx, &domain.Employee{ID: id}); err != nil {
		return notFound(err, domain.ErrEmployeeNotFound)
	}
	return f.Save(ctx)
}

// build проверяет ссылки на компанию и отдел и собирает сущность из запроса
func (s *employeeService) build(ctx context.Context, f *repository.Factory, id int64, req *dto.EmployeeRequest) (*domain.Employee, error) {
	birthDate, err := parseDate("birth_date", req.BirthDate)
	if err != nil {
		return nil, err
	}

	if err := companyExists(ctx, f, req.CompanyID); err != nil {
		return nil, err
	}

	if req.DepartmentID != nil {
		dept, err := f.Departments().GetSingle(ctx, repository.Where("id = ?", *req.DepartmentID))
		if err != nil {
			return nil, err
		}
		if dept == nil {
			return nil, domain.ErrDepartmentNotFound
		}
		if dept.CompanyID != req.CompanyID {
			return nil, domain.ErrDepartmentCompanyMismatch
		}
	}

	return &domain.Employee{
		ID:           id,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		BirthDate:    birthDate,
		CompanyID:    req.CompanyID,
		DepartmentID: req.DepartmentID,
	}, nil
}

// stageAddress добавляет, меняет или удаляет адрес. Пустой адрес удаляет запись.
func (s *employeeService) stageAddress(ctx context.Context, f *repository.Factory, employeeID int64, address string) error {
	addresses := f.Addresses()

	current, err := addresses.GetSingle(ctx, repository.Where("employee_id = ?", employeeID), repository.AsTracking())
	if err != nil {
		return err
	}

	switch {
	case current == nil && address == "":
		return nil
	case current == nil:
		addresses.Add(&domain.EmployeeAddress{EmployeeID: employeeID, Address: address})
		return nil
	case address == "":
		return addresses.Remove(ctx, current)
	default:
		return addresses.Update(ctx, &domain.EmployeeAddress{EmployeeID: employeeID, Address: address})
	}
}
