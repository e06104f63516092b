package service

import (
	"context"

	"github.com/company-directory-api/internal/auth"
	"github.com/company-directory-api/internal/domain"
	"github.com/company-directory-api/internal/dto"
	"github.com/company-directory-api/internal/repository"
)

// UserService определяет интерфейс бизнес-логики для учётных записей
type UserService interface {
	List(ctx context.Context) ([]*domain.User, error)
	GetByID(ctx context.Context, employeeID int64) (*domain.User, error)
	Create(ctx context.Context, employeeID int64, req *dto.UserRequest) (*domain.User, error)
	Update(ctx context.Context, employeeID int64, req *dto.UserRequest) (*domain.User, error)
	Delete(ctx context.Context, employeeID int64) error
}

type userService struct {
	newFactory FactoryFunc
}

// NewUserService создаёт новый экземпляр сервиса
func NewUserService(newFactory FactoryFunc) UserService {
	return &userService{newFactory: newFactory}
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	return s.newFactory().Users().GetUsers(ctx)
}

func (s *userService) GetByID(ctx context.Context, employeeID int64) (*domain.User, error) {
	user, err := s.newFactory().Users().GetUser(ctx, employeeID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	return user, nil
}

func (s *userService) Create(ctx context.Context, employeeID int64, req *dto.UserRequest) (*domain.User, error) {
	f := s.newFactory()

	ok, err := f.Employees().Exists(ctx, repository.Where("id = ?", employeeID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrEmployeeNotFound
	}

	ok, err = f.Users().Exists(ctx, repository.Where("employee_id = ?", employeeID))
	if err != nil {
		return nil, err
	}
	if ok {
		return nil, domain.ErrUserAlreadyExists
	}

	if err := usernameFree(ctx, f, req.Username, 0); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	return f.Users().AddUser(ctx, &domain.User{
		EmployeeID: employeeID,
		Username:   req.Username,
		Password:   hash,
	})
}

func (s *userService) Update(ctx context.Context, employeeID int64, req *dto.UserRequest) (*domain.User, error) {
	f := s.newFactory()

	if err := usernameFree(ctx, f, req.Username, employeeID); err != nil {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	err = f.Users().Update(ctx, &domain.User{
		EmployeeID: employeeID,
		Username:   req.Username,
		Password:   hash,
	})
	if err != nil {
		return nil, notFound(err, domain.ErrUserNotFound)
	}
	if err := f.Save(ctx); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, employeeID)
}

func (s *userService) Delete(ctx context.Context, employeeID int64) error {
	f := s.newFactory()
	if err := f.Users().Remove(ctx, &domain.User{EmployeeID: employeeID}); err != nil {
		return notFound(err, domain.ErrUserNotFound)
	}
	return f.Save(ctx)
}

// usernameFree проверяет, что логин не занят другим сотрудником
func usernameFree(ctx context.Context, f *repository.Factory, username string, employeeID int64) error {
	taken, err := f.Users().Exists(ctx,
		repository.Where("username = ?", username),
		repository.Where("employee_id <> ?", employeeID),
	)
	if err != nil {
		return err
	}
	if taken {
		return domain.ErrUsernameTaken
	}
	return nil
}
