package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

var (
	ErrUserEmailExists = dao.ErrUserEmailExists
	ErrUsernameExists  = dao.ErrUsernameExists
	ErrUserNotFound    = dao.ErrUserNotFound
)

type UserDAO interface {
	Insert(ctx context.Context, user dao.User) (dao.User, error)
	FindByID(ctx context.Context, id uint) (dao.User, error)
	FindByEmail(ctx context.Context, email string) (dao.User, error)
	FindAll(ctx context.Context, limit, offset int) ([]dao.User, error)
	SearchByUsername(ctx context.Context, query string, limit, offset int) ([]dao.User, error)
	FindActiveIDs(ctx context.Context) ([]uint, error)
	Update(ctx context.Context, id uint, fields map[string]any) (dao.User, error)
	UpdatePassword(ctx context.Context, id uint, hash string) error
	SetDisabled(ctx context.Context, id uint, disabled bool) error
	Delete(ctx context.Context, id uint) error
}

type UserRepository struct {
	dao UserDAO
}

func NewUserRepository(dao UserDAO) *UserRepository {
	return &UserRepository{
		dao: dao,
	}
}

func (r *UserRepository) Create(ctx context.Context, user domain.User) (domain.User, error) {
	created, err := r.dao.Insert(ctx, dao.User{
		Username:    user.Username,
		Email:       user.Email,
		Password:    user.Password,
		Telephone:   user.Telephone,
		Nom:         user.Nom,
		Prenom:      user.Prenom,
		Tshirt:      user.Tshirt,
		Vegan:       user.Vegan,
		Hebergement: user.Hebergement,
		Association: user.Association,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (domain.User, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (domain.User, error) {
	found, err := r.dao.FindByEmail(ctx, email)
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.FindByEmail -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *UserRepository) FindAll(ctx context.Context, limit, offset int) ([]domain.User, error) {
	found, err := r.dao.FindAll(ctx, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) SearchByUsername(ctx context.Context, query string, limit, offset int) ([]domain.User, error) {
	found, err := r.dao.SearchByUsername(ctx, query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("r.dao.SearchByUsername -> %w", err)
	}

	return r.daosToDomain(found), nil
}

func (r *UserRepository) FindActiveIDs(ctx context.Context) ([]uint, error) {
	ids, err := r.dao.FindActiveIDs(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActiveIDs -> %w", err)
	}

	return ids, nil
}

func (r *UserRepository) Update(ctx context.Context, id uint, update domain.UserUpdate) (domain.User, error) {
	updated, err := r.dao.Update(ctx, id, map[string]any{
		"username":    update.Username,
		"email":       update.Email,
		"telephone":   update.Telephone,
		"nom":         update.Nom,
		"prenom":      update.Prenom,
		"tshirt":      update.Tshirt,
		"vegan":       update.Vegan,
		"hebergement": update.Hebergement,
		"association": update.Association,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return r.daoToDomain(updated), nil
}

func (r *UserRepository) UpdatePassword(ctx context.Context, id uint, hash string) error {
	if err := r.dao.UpdatePassword(ctx, id, hash); err != nil {
		return fmt.Errorf("r.dao.UpdatePassword -> %w", err)
	}

	return nil
}

func (r *UserRepository) SetDisabled(ctx context.Context, id uint, disabled bool) error {
	if err := r.dao.SetDisabled(ctx, id, disabled); err != nil {
		return fmt.Errorf("r.dao.SetDisabled -> %w", err)
	}

	return nil
}

func (r *UserRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *UserRepository) daosToDomain(users []dao.User) []domain.User {
	out := make([]domain.User, 0, len(users))
	for _, u := range users {
		out = append(out, r.daoToDomain(u))
	}

	return out
}

func (r *UserRepository) daoToDomain(u dao.User) domain.User {
	roles := make([]string, 0, len(u.Roles))
	for _, role := range u.Roles {
		roles = append(roles, role.Name)
	}

	return domain.User{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Password:    u.Password,
		Telephone:   u.Telephone,
		Nom:         u.Nom,
		Prenom:      u.Prenom,
		Tshirt:      u.Tshirt,
		Vegan:       u.Vegan,
		Hebergement: u.Hebergement,
		Association: u.Association,
		Disabled:    u.Disabled,
		Roles:       roles,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}
