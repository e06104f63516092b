package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/company-directory-api/internal/auth"
	"github.com/company-directory-api/internal/config"
	"github.com/company-directory-api/internal/database"
	"github.com/company-directory-api/internal/database/databasetest"
	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/repository"
	"github.com/company-directory-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func intPtr(i int64) *int64   { return &i }

func newFactory(t *testing.T) service.FactoryFunc {
	t.Helper()
	db := databasetest.New(t)
	require.NoError(t, database.Seed(context.Background(), db, databasetest.Logger()))
	return func() *repository.Factory {
		return repository.NewFactory(db, repository.WithLogger(databasetest.Logger()))
	}
}

func TestCompanyService(t *testing.T) {
	ctx := context.Background()
	svc := service.NewCompanyService(newFactory(t))

	created, err := svc.Create(ctx, &dto.CompanyRequest{Name: "  Company Two "})
	require.NoError(t, err)
	assert.Equal(t, "Company Two", created.Name)
	assert.Empty(t, created.Departments)

	updated, err := svc.Update(ctx, created.ID, &dto.CompanyRequest{Name: "Company 2"})
	require.NoError(t, err)
	assert.Equal(t, "Company 2", updated.Name)
	assert.True(t, created.Created.Equal(updated.Created))

	_, err = svc.Update(ctx, 999, &dto.CompanyRequest{Name: "Ghost"})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	all, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	require.NoError(t, svc.Delete(ctx, 1))
	_, err = svc.GetByID(ctx, 1)
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)
	assert.ErrorIs(t, svc.Delete(ctx, 1), domain.ErrCompanyNotFound)
}

func TestDepartmentService(t *testing.T) {
	ctx := context.Background()
	svc := service.NewDepartmentService(newFactory(t))

	_, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Sales", CompanyID: 42})
	assert.ErrorIs(t, err, domain.ErrCompanyNotFound)

	dept, err := svc.Create(ctx, &dto.DepartmentRequest{Name: "Sales", CompanyID: 1})
	require.NoError(t, err)
	require.NotNil(t, dept.Company)
	assert.Equal(t, "Company One", dept.Company.Name)

	dept, err = svc.Update(ctx, dept.ID, &dto.DepartmentRequest{Name: "Marketing", CompanyID: 1})
	require.NoError(t, err)
	assert.Equal(t, "Marketing", dept.Name)

	logistics, err := svc.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, logistics.Employees, 1)

	require.NoError(t, svc.Delete(ctx, dept.ID))
	_, err = svc.GetByID(ctx, dept.ID)
	assert.ErrorIs(t, err, domain.ErrDepartmentNotFound)
}

func TestDepartmentService_MoveToAnotherCompany(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	companies := service.NewCompanyService(factory)
	departments := service.NewDepartmentService(factory)
	employees := service.NewEmployeeService(factory)

	acme, err := companies.Create(ctx, &dto.CompanyRequest{Name: "Acme"})
	require.NoError(t, err)

	dept, err := departments.Update(ctx, 1, &dto.DepartmentRequest{Name: "Logistics", CompanyID: acme.ID})
	require.NoError(t, err)
	assert.Equal(t, acme.ID, dept.CompanyID)

	john, err := employees.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, acme.ID, john.CompanyID, "employees follow their department")
	require.NotNil(t, john.DepartmentID)
	assert.EqualValues(t, 1, *john.DepartmentID)

	require.NoError(t, companies.Delete(ctx, 1))

	john, err = employees.GetByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Acme", john.Company.Name)
}

func TestEmployeeService_CreateAndUpdate(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	svc := service.NewEmployeeService(factory)

	emp, err := svc.Create(ctx, &dto.EmployeeRequest{
		FirstName:    "Jane",
		LastName:     "Doe",
		BirthDate:    strPtr("1985-07-01"),
		CompanyID:    1,
		DepartmentID: intPtr(1),
		Address:      strPtr("Ohio, USA"),
	})
	require.NoError(t, err)
	require.NotNil(t, emp.Address)
	assert.Equal(t, "Ohio, USA", emp.Address.Address)
	require.NotNil(t, emp.BirthDate)
	assert.Equal(t, time.July, emp.BirthDate.Month())
	require.NotNil(t, emp.Department)
	assert.Equal(t, "Logistics", emp.Department.Name)

	emp, err = svc.Update(ctx, emp.ID, &dto.EmployeeRequest{
		FirstName: "Janet",
		LastName:  "Doe",
		CompanyID: 1,
		Address:   strPtr("Texas, USA"),
	})
	require.NoError(t, err)
	assert.Equal(t, "Janet", emp.FirstName)
	assert.Nil(t, emp.DepartmentID)
	require.NotNil(t, emp.Address)
	assert.Equal(t, "Texas, USA", emp.Address.Address)

	// без адреса в запросе адрес не меняется
	emp, err = svc.Update(ctx, emp.ID, &dto.EmployeeRequest{FirstName: "Janet", LastName: "Doe", CompanyID: 1})
	require.NoError(t, err)
	require.NotNil(t, emp.Address)

	emp, err = svc.Update(ctx, emp.ID, &dto.EmployeeRequest{FirstName: "Janet", LastName: "Doe", CompanyID: 1, Address: strPtr("")})
	require.NoError(t, err)
	assert.Nil(t, emp.Address)

	n, err := factory().Addresses().Count(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 1, n, "only the seeded address is left")
}

func TestEmployeeService_References(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	svc := service.NewEmployeeService(factory)

	other, err := service.NewCompanyService(factory).Create(ctx, &dto.CompanyRequest{Name: "Other"})
	require.NoError(t, err)

	tests := []struct {
		name string
		req  dto.EmployeeRequest
		want error
	}{
		{"unknown company", dto.EmployeeRequest{FirstName: "A", LastName: "B", CompanyID: 42}, domain.ErrCompanyNotFound},
		{"unknown department", dto.EmployeeRequest{FirstName: "A", LastName: "B", CompanyID: 1, DepartmentID: intPtr(42)}, domain.ErrDepartmentNotFound},
		{"foreign department", dto.EmployeeRequest{FirstName: "A", LastName: "B", CompanyID: other.ID, DepartmentID: intPtr(1)}, domain.ErrDepartmentCompanyMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	_, err = svc.Update(ctx, 999, &dto.EmployeeRequest{FirstName: "A", LastName: "B", CompanyID: 1})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = svc.Search(ctx, &dto.EmployeeSearchQuery{BirthDate: strPtr("01/02/2000")})
	var verr *domain.ValidationError
	assert.ErrorAs(t, err, &verr)
}

func TestEmployeeService_SearchAndDelete(t *testing.T) {
	ctx := context.Background()
	svc := service.NewEmployeeService(newFactory(t))

	found, err := svc.Search(ctx, &dto.EmployeeSearchQuery{FirstName: "jo", Username: "JOHN"})
	require.NoError(t, err)
	require.Len(t, found, 1)
	assert.Equal(t, "Whyne", found[0].LastName)

	found, err = svc.Search(ctx, &dto.EmployeeSearchQuery{Department: "sales"})
	require.NoError(t, err)
	assert.Empty(t, found)

	require.NoError(t, svc.Delete(ctx, 1))
	assert.ErrorIs(t, svc.Delete(ctx, 1), domain.ErrEmployeeNotFound)
}

func TestUserService(t *testing.T) {
	ctx := context.Background()
	factory := newFactory(t)
	svc := service.NewUserService(factory)

	emp, err := service.NewEmployeeService(factory).Create(ctx, &dto.EmployeeRequest{
		FirstName: "Jane", LastName: "Doe", CompanyID: 1,
	})
	require.NoError(t, err)

	_, err = svc.Create(ctx, 999, &dto.UserRequest{Username: "ghost", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrEmployeeNotFound)

	_, err = svc.Create(ctx, 1, &dto.UserRequest{Username: "other", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUserAlreadyExists)

	_, err = svc.Create(ctx, emp.ID, &dto.UserRequest{Username: "johnw", Password: "secret"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	user, err := svc.Create(ctx, emp.ID, &dto.UserRequest{Username: "janed", Password: "secret"})
	require.NoError(t, err)
	assert.Equal(t, "janed", user.Username)
	assert.True(t, auth.CheckPassword(user.Password, "secret"))
	require.NotNil(t, user.Employee)
	assert.Equal(t, "Jane Doe", user.Employee.FullName())

	// свой логин можно оставить при смене пароля
	user, err = svc.Update(ctx, emp.ID, &dto.UserRequest{Username: "janed", Password: "changed"})
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(user.Password, "changed"))

	_, err = svc.Update(ctx, emp.ID, &dto.UserRequest{Username: "johnw", Password: "changed"})
	assert.ErrorIs(t, err, domain.ErrUsernameTaken)

	_, err = svc.Update(ctx, 999, &dto.UserRequest{Username: "ghost", Password: "changed"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	require.NoError(t, svc.Delete(ctx, emp.ID))
	_, err = svc.GetByID(ctx, emp.ID)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
}

func TestAuthService_Login(t *testing.T) {
	ctx := context.Background()
	cfg := config.JWTConfig{Issuer: "directory", Audience: "clients", SecretKey: "secret", ValidFor: time.Hour}
	svc := service.NewAuthService(newFactory(t), auth.NewIssuer(cfg), databasetest.Logger())

	user, err := svc.Login(ctx, &dto.LoginRequest{Username: "johnw", Password: "test"})
	require.NoError(t, err)
	require.NotEmpty(t, user.Token)

	p := auth.NewValidator(databasetest.Logger()).ValidateToken(user.Token, auth.ParamsFromConfig(cfg))
	require.NotNil(t, p)
	assert.Equal(t, "johnw", p.Subject)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "johnw", Password: "wrong"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Login(ctx, &dto.LoginRequest{Username: "nobody", Password: "test"})
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
