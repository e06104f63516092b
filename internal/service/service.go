package service

import (
	"context"
	"errors"
	"time"

	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/repository"
)

// FactoryFunc создаёт фабрику репозиториев на одну операцию
type FactoryFunc func() *repository.Factory

// notFound подменяет отсутствие записи доменной ошибкой ресурса
func notFound(err, target error) error {
	if errors.Is(err, domain.ErrEntityDoesNotExist) {
		return target
	}
	return err
}

func companyExists(ctx context.Context, f *repository.Factory, id int64) error {
	ok, err := f.Companies().Exists(ctx, repository.Where("id = ?", id))
	if err != nil {
		return err
	}
	if !ok {
		return domain.ErrCompanyNotFound
	}
	return nil
}

func parseDate(field string, value *string) (*time.Time, error) {
	if value == nil || *value == "" {
		return nil, nil
	}
	t, err := time.Parse(dto.DateLayout, *value)
	if err != nil {
		return nil, &domain.ValidationError{Fields: []domain.FieldError{
			{Field: field, Message: field + " must be a date in format " + dto.DateLayout},
		}}
	}
	return &t, nil
}
