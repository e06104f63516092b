package database

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/company-directory-api/internal/auth"
	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/repository"
	"gorm.io/gorm"
)

// Seed заполняет пустую БД начальными данными. Если компании уже есть, ничего не делает.
func Seed(ctx context.Context, db *gorm.DB, logger *slog.Logger) error {
	f := repository.NewFactory(db, repository.WithLogger(logger))

	exists, err := f.Companies().Exists(ctx)
	if err != nil {
		return fmt.Errorf("check seed data: %w", err)
	}
	if exists {
		logger.Info("seed skipped, database is not empty")
		return nil
	}

	company, err := f.Companies().AddCompany(ctx, &domain.Company{
		Name:        "Company One",
		Departments: []domain.Department{{Name: "Logistics"}},
	})
	if err != nil {
		return fmt.Errorf("seed company: %w", err)
	}

	password, err := auth.HashPassword("test")
	if err != nil {
		return err
	}

	deptID := company.Departments[0].ID
	f.Employees().Add(&domain.Employee{
		FirstName:    "John",
		LastName:     "Whyne",
		CompanyID:    company.ID,
		DepartmentID: &deptID,
		Address:      &domain.EmployeeAddress{Address: "Kentucky, USA"},
		User:         &domain.User{Username: "johnw", Password: password},
	})
	if err := f.Save(ctx); err != nil {
		return fmt.Errorf("seed employee: %w", err)
	}

	logger.Info("seed data created", slog.Int64("company_id", company.ID))
	return nil
}
