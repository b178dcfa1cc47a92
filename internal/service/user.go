package service

import (
	"context"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

var (
	ErrUserNotFound = repository.ErrUserNotFound
)

const maxPageSize = 100

type UserRepository interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]domain.User, error)
	SearchByUsername(ctx context.Context, query string, limit, offset int) ([]domain.User, error)
	Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetDisabled(ctx context.Context, id uint, disabled bool) error
	Delete(ctx context.Context, id uint) error
}

type UserService struct {
	repo UserRepository
}

func NewUserService(repo UserRepository) *UserService {
	return &UserService{
		repo: repo,
	}
}

func (s *UserService) GetUser(ctx context.Context, id uint) (domain.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return user, nil
}

// ListUsers returns one page of users. Pages start at 1.
func (s *UserService) ListUsers(ctx context.Context, page, pageSize int) ([]domain.User, error) {
	limit, offset := paginate(page, pageSize)

	users, err := s.repo.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return users, nil
}

func (s *UserService) SearchUsers(ctx context.Context, query string, page, pageSize int) ([]domain.User, error) {
	limit, offset := paginate(page, pageSize)

	users, err := s.repo.SearchByUsername(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("s.repo.SearchByUsername -> %w", err)
	}

	return users, nil
}

func (s *UserService) UpdateInfo(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	user, err := s.repo.Update(ctx, id, update)
	if err != nil {
		return domain.User{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return user, nil
}

func (s *UserService) ChangePassword(ctx context.Context, id uint, current, next string) error {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return fmt.Errorf("s.repo.FindByID -> %w", err)
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(current)); err != nil {
		return ErrWrongPassword
	}

	hash, err := hashPassword(next)
	if err != nil {
		return err
	}
	if err := s.repo.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("s.repo.UpdatePassword -> %w", err)
	}

	return nil
}

func (s *UserService) Ban(ctx context.Context, id uint) error {
	if err := s.repo.SetDisabled(ctx, id, true); err != nil {
		return fmt.Errorf("s.repo.SetDisabled -> %w", err)
	}

	return nil
}

// DeleteAccount removes the user and all of their data.
func (s *UserService) DeleteAccount(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

func paginate(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > maxPageSize {
		pageSize = maxPageSize
	}

	return pageSize, (page - 1) * pageSize
}
