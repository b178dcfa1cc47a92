package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

var (
	ErrFestivalNotFound           = dao.ErrFestivalNotFound
	ErrFestivalNameExists         = dao.ErrFestivalNameExists
	ErrNoActiveFestival           = dao.ErrNoActiveFestival
	ErrFestivalActivationConflict = dao.ErrFestivalActivationConflict
)

type FestivalDAO interface {
	Insert(ctx context.Context, festival dao.Festival) (dao.Festival, error)
	FindAll(ctx context.Context) ([]dao.Festival, error)
	FindByID(ctx context.Context, id uint) (dao.Festival, error)
	FindActive(ctx context.Context) (dao.Festival, error)
	Activate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type FestivalRepository struct {
	dao FestivalDAO
}

func NewFestivalRepository(dao FestivalDAO) *FestivalRepository {
	return &FestivalRepository{
		dao: dao,
	}
}

func (r *FestivalRepository) Create(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	created, err := r.dao.Insert(ctx, dao.Festival{
		Name:        festival.Name,
		Description: festival.Description,
	})
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return r.daoToDomain(created), nil
}

func (r *FestivalRepository) FindAll(ctx context.Context) ([]domain.Festival, error) {
	found, err := r.dao.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAll -> %w", err)
	}

	festivals := make([]domain.Festival, 0, len(found))
	for _, f := range found {
		festivals = append(festivals, r.daoToDomain(f))
	}

	return festivals, nil
}

func (r *FestivalRepository) FindByID(ctx context.Context, id uint) (domain.Festival, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FestivalRepository) FindActive(ctx context.Context) (domain.Festival, error) {
	found, err := r.dao.FindActive(ctx)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return r.daoToDomain(found), nil
}

func (r *FestivalRepository) Activate(ctx context.Context, id uint) error {
	if err := r.dao.Activate(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Activate -> %w", err)
	}

	return nil
}

func (r *FestivalRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func (r *FestivalRepository) daoToDomain(f dao.Festival) domain.Festival {
	return domain.Festival{
		ID:          f.ID,
		Name:        f.Name,
		Description: f.Description,
		IsActive:    f.IsActive,
		CreatedAt:   f.CreatedAt,
		UpdatedAt:   f.UpdatedAt,
	}
}
