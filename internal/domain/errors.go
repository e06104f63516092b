package domain

import (
	"errors"
	"fmt"
	"strings"
)

// Определение бизнес-ошибок
var (
	ErrCompanyNotFound           = errors.New("company not found")
	ErrDepartmentNotFound        = errors.New("department not found")
	ErrEmployeeNotFound          = errors.New("employee not found")
	ErrUserNotFound              = errors.New("user not found")
	ErrDepartmentCompanyMismatch = errors.New("department belongs to another company")
	ErrUsernameTaken             = errors.New("username is already taken")
	ErrUserAlreadyExists         = errors.New("employee already has a user")
	ErrInvalidCredentials        = errors.New("invalid username or password")
)

// Ошибки слоя хранения
var (
	// ErrEntityKeyMissing - у сущности не задан ключ, найти запись для обновления нельзя
	ErrEntityKeyMissing = errors.New("entity key is not set")

	// ErrEntityDoesNotExist - записи с таким ключом нет
	ErrEntityDoesNotExist = errors.New("entity does not exist")

	// ErrAmbiguousResult - выборка одной записи вернула больше одной
	ErrAmbiguousResult = errors.New("query returned more than one entity")
)

// PersistenceError оборачивает отказ хранилища при сохранении
type PersistenceError struct {
	Entity string
	Op     string
	Err    error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("persist %s %s: %v", e.Op, e.Entity, e.Err)
}

func (e *PersistenceError) Unwrap() error {
	return e.Err
}

// FieldError - ошибка валидации одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError содержит список ошибок по полям запроса
type ValidationError struct {
	Fields []FieldError
}

func (e *ValidationError) Error() string {
	msgs := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		msgs[i] = f.Message
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}
