package repository

import (
	"context"

	"github.com/company-directory-api/internal/domain"
)

// UserRepository - репозиторий учётных записей
type UserRepository struct {
	*Repository[*domain.User]
}

// NewUserRepository создаёт новый экземпляр репозитория
func NewUserRepository(uow *UnitOfWork) *UserRepository {
	return &UserRepository{Repository: NewRepository[*domain.User](uow)}
}

func userGraph() []QueryOption {
	return []QueryOption{
		Include("Employee"),
		Include("Employee.Department"),
		Include("Employee.Address"),
	}
}

// AddUser сохраняет пользователя и перечитывает его
func (r *UserRepository) AddUser(ctx context.Context, user *domain.User, opts ...QueryOption) (*domain.User, error) {
	r.Add(user)
	if err := r.Save(ctx); err != nil {
		return nil, err
	}
	return r.GetUser(ctx, user.EmployeeID, opts...)
}

// GetUser возвращает пользователя по ключу сотрудника или nil
func (r *UserRepository) GetUser(ctx context.Context, employeeID int64, opts ...QueryOption) (*domain.User, error) {
	return r.GetSingle(ctx, append(with(userGraph(), opts...), Where("users.employee_id = ?", employeeID))...)
}

// GetUserByUsername возвращает пользователя по логину или nil
func (r *UserRepository) GetUserByUsername(ctx context.Context, username string, opts ...QueryOption) (*domain.User, error) {
	return r.GetSingle(ctx, append(with(userGraph(), opts...), Where("users.username = ?", username))...)
}

// GetUsers возвращает всех пользователей по возрастанию ключа
func (r *UserRepository) GetUsers(ctx context.Context, opts ...QueryOption) ([]*domain.User, error) {
	return r.GetAll(ctx, append(with(userGraph(), opts...), OrderBy("users.employee_id ASC"))...)
}
