package repository

import (
	"context"

	"github.com/company-directory-api/internal/domain"
	"gorm.io/gorm"
)

// Factory выдаёт репозитории, привязанные к одной единице работы.
// Всё, что поставлено в очередь через любой из них, фиксируется одним Save.
type Factory struct {
	uow         *UnitOfWork
	companies   *CompanyRepository
	departments *DepartmentRepository
	employees   *EmployeeRepository
	addresses   *Repository[*domain.EmployeeAddress]
	users       *UserRepository
}

// NewFactory создаёт единицу работы и все репозитории поверх неё
func NewFactory(db *gorm.DB, opts ...Option) *Factory {
	uow := NewUnitOfWork(db, opts...)
	return &Factory{
		uow:         uow,
		companies:   NewCompanyRepository(uow),
		departments: NewDepartmentRepository(uow),
		employees:   NewEmployeeRepository(uow),
		addresses:   NewRepository[*domain.EmployeeAddress](uow),
		users:       NewUserRepository(uow),
	}
}

func (f *Factory) Companies() *CompanyRepository                   { return f.companies }
func (f *Factory) Departments() *DepartmentRepository              { return f.departments }
func (f *Factory) Employees() *EmployeeRepository                  { return f.employees }
func (f *Factory) Addresses() *Repository[*domain.EmployeeAddress] { return f.addresses }
func (f *Factory) Users() *UserRepository                          { return f.users }

// Save фиксирует изменения всех репозиториев фабрики
func (f *Factory) Save(ctx context.Context) error {
	return f.uow.Save(ctx)
}

// HasChanges сообщает, есть ли несохранённые изменения
func (f *Factory) HasChanges() bool {
	return f.uow.HasChanges()
}
