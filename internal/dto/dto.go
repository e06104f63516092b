package dto

import (
	"time"

	"github.com/company-directory-api/internal/domain"
)

// DateLayout - формат дат в запросах и ответах
const DateLayout = "2006-01-02"

// CompanyRequest - запрос на создание или изменение компании
type CompanyRequest struct {
	Name string `json:"name" validate:"required,notblank,max=255"`
}

// DepartmentRequest - запрос на создание или изменение отдела
type DepartmentRequest struct {
	Name      string `json:"name" validate:"required,notblank,max=255"`
	CompanyID int64  `json:"company_id" validate:"gt=0"`
}

// EmployeeRequest - запрос на создание или изменение сотрудника.
// Адрес необязателен, пустая строка удаляет его при изменении.
type EmployeeRequest struct {
	FirstName    string  `json:"first_name" validate:"required,notblank,max=100"`
	LastName     string  `json:"last_name" validate:"required,notblank,max=100"`
	BirthDate    *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	CompanyID    int64   `json:"company_id" validate:"gt=0"`
	DepartmentID *int64  `json:"department_id" validate:"omitempty,gt=0"`
	Address      *string `json:"address" validate:"omitempty,max=500"`
}

// UserRequest - запрос на создание или изменение пользователя
type UserRequest struct {
	Username string `json:"username" validate:"required,min=3,max=100,alphanum"`
	Password string `json:"password" validate:"required,min=4,max=72"`
}

// LoginRequest - запрос на получение токена
type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

// EmployeeSearchQuery - параметры поиска сотрудников
type EmployeeSearchQuery struct {
	FirstName  string  `json:"first_name" validate:"max=100"`
	LastName   string  `json:"last_name" validate:"max=100"`
	Department string  `json:"department" validate:"max=255"`
	Username   string  `json:"username" validate:"max=100"`
	BirthDate  *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
}

// CompanyResponse - компания с отделами и сводкой по сотрудникам
type CompanyResponse struct {
	ID          int64                `json:"id"`
	Name        string               `json:"name"`
	Departments []DepartmentResponse `json:"departments"`
	Employees   []string             `json:"employees"`
	Created     time.Time            `json:"created"`
	Modified    time.Time            `json:"modified"`
}

// DepartmentResponse - отдел со сводкой по сотрудникам
type DepartmentResponse struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	CompanyID   int64     `json:"company_id"`
	CompanyName string    `json:"company_name,omitempty"`
	Employees   []string  `json:"employees,omitempty"`
	Created     time.Time `json:"created"`
	Modified    time.Time `json:"modified"`
}

// EmployeeResponse - сотрудник с адресом, отделом и логином
type EmployeeResponse struct {
	ID             int64     `json:"id"`
	FirstName      string    `json:"first_name"`
	LastName       string    `json:"last_name"`
	FullName       string    `json:"full_name"`
	BirthDate      *string   `json:"birth_date"`
	Age            *int      `json:"age"`
	CompanyID      int64     `json:"company_id"`
	CompanyName    string    `json:"company_name,omitempty"`
	DepartmentID   *int64    `json:"department_id"`
	DepartmentName string    `json:"department_name,omitempty"`
	Address        string    `json:"address,omitempty"`
	Username       string    `json:"username,omitempty"`
	Summary        string    `json:"summary"`
	Created        time.Time `json:"created"`
	Modified       time.Time `json:"modified"`
}

// UserResponse - пользователь. Токен заполняется только при входе.
type UserResponse struct {
	EmployeeID   int64     `json:"employee_id"`
	Username     string    `json:"username"`
	EmployeeName string    `json:"employee_name,omitempty"`
	Department   string    `json:"department,omitempty"`
	Address      string    `json:"address,omitempty"`
	Token        string    `json:"token,omitempty"`
	Created      time.Time `json:"created"`
	Modified     time.Time `json:"modified"`
}

// ErrorResponse - стандартный ответ с ошибкой
type ErrorResponse struct {
	Error   string              `json:"error"`
	Message string              `json:"message,omitempty"`
	Fields  []domain.FieldError `json:"fields,omitempty"`
}

// HealthResponse - ответ проверки состояния
type HealthResponse struct {
	Status   string `json:"status"`
	Database string `json:"database"`
}
