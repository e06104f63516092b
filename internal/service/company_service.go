package service

import (
	"context"
	"strings"

	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
)

// CompanyService определяет интерфейс бизнес-логики для компаний
type CompanyService interface {
	List(ctx context.Context) ([]*domain.Company, error)
	GetByID(ctx context.Context, id int64) (*domain.Company, error)
	Create(ctx context.Context, req *dto.CompanyRequest) (*domain.Company, error)
	Update(ctx context.Context, id int64, req *dto.CompanyRequest) (*domain.Company, error)
	Delete(ctx context.Context, id int64) error
}

type companyService struct {
	newFactory FactoryFunc
}

// NewCompanyService создаёт новый экземпляр сервиса
func NewCompanyService(newFactory FactoryFunc) CompanyService {
	return &companyService{newFactory: newFactory}
}

func (s *companyService) List(ctx context.Context) ([]*domain.Company, error) {
	return s.newFactory().Companies().GetCompanies(ctx)
}

func (s *companyService) GetByID(ctx context.Context, id int64) (*domain.Company, error) {
	company, err := s.newFactory().Companies().GetCompany(ctx, id)
	if err != nil {
		return nil, err
	}
	if company == nil {
		return nil, domain.ErrCompanyNotFound
	}
	return company, nil
}

func (s *companyService) Create(ctx context.Context, req *dto.CompanyRequest) (*domain.Company, error) {
	return s.newFactory().Companies().AddCompany(ctx, &domain.Company{
		Name: strings.TrimSpace(req.Name),
	})
}

func (s *companyService) Update(ctx context.Context, id int64, req *dto.CompanyRequest) (*domain.Company, error) {
	f := s.newFactory()
	if err := f.Companies().Update(ctx, &domain.Company{ID: id, Name: strings.TrimSpace(req.Name)}); err != nil {
		return nil, notFound(err, domain.ErrCompanyNotFound)
	}
	if err := f.Save(ctx); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// Delete удаляет компанию вместе с отделами и сотрудниками
func (s *companyService) Delete(ctx context.Context, id int64) error {
	f := s.newFactory()
	if err := f.Companies().Remove(ctx, &domain.Company{ID: id}); err != nil {
		return notFound(err, domain.ErrCompanyNotFound)
	}
	return f.Save(ctx)
}
