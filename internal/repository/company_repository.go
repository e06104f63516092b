package repository

import (
	"context"

	"github.com/company-directory-api/internal/domain"
)

// CompanyRepository - репозиторий компаний с графом отделы -> сотрудники -> адрес/пользователь
type CompanyRepository struct {
	*Repository[*domain.Company]
}

// NewCompanyRepository создаёт новый экземпляр репозитория
func NewCompanyRepository(uow *UnitOfWork) *CompanyRepository {
	return &CompanyRepository{Repository: NewRepository[*domain.Company](uow)}
}

func companyGraph() []QueryOption {
	return []QueryOption{
		Include("Departments", ordered("id ASC")),
		Include("Employees", ordered("last_name ASC, first_name ASC, id ASC")),
		Include("Employees.Department"),
		Include("Employees.Address"),
		Include("Employees.User"),
	}
}

// AddCompany сохраняет компанию и перечитывает её с полным графом
func (r *CompanyRepository) AddCompany(ctx context.Context, company *domain.Company, opts ...QueryOption) (*domain.Company, error) {
	r.Add(company)
	if err := r.Save(ctx); err != nil {
		return nil, err
	}
	return r.GetCompany(ctx, company.ID, opts...)
}

// GetCompany возвращает компанию по ключу или nil
func (r *CompanyRepository) GetCompany(ctx context.Context, id int64, opts ...QueryOption) (*domain.Company, error) {
	return r.GetSingle(ctx, append(with(companyGraph(), opts...), Where("companies.id = ?", id))...)
}

// GetCompanies возвращает все компании по возрастанию ключа
func (r *CompanyRepository) GetCompanies(ctx context.Context, opts ...QueryOption) ([]*domain.Company, error) {
	return r.GetAll(ctx, append(with(companyGraph(), opts...), OrderBy("companies.id ASC"))...)
}
