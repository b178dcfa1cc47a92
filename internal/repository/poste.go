package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

var (
	ErrPosteNotFound   = dao.ErrPosteNotFound
	ErrPosteNameExists = dao.ErrPosteNameExists
	ErrReservedPoste   = dao.ErrReservedPoste
)

type PosteDAO interface {
	Insert(ctx context.Context, poste dao.Poste) (dao.Poste, error)
	FindByFestival(ctx context.Context, festivalID uint) ([]dao.PosteWithReferents, error)
	FindByID(ctx context.Context, id uint) (dao.Poste, error)
	FindByName(ctx context.Context, festivalID uint, name string) (dao.Poste, error)
	Update(ctx context.Context, id uint, description string, maxCapacity int) (dao.Poste, error)
	Delete(ctx context.Context, id uint) error
}

type PosteRepository struct {
	dao PosteDAO
}

func NewPosteRepository(dao PosteDAO) *PosteRepository {
	return &PosteRepository{
		dao: dao,
	}
}

func (r *PosteRepository) Create(ctx context.Context, poste domain.Poste) (domain.Poste, error) {
	created, err := r.dao.Insert(ctx, dao.Poste{
		FestivalID:  poste.FestivalID,
		Name:        poste.Name,
		Description: poste.Description,
		MaxCapacity: poste.MaxCapacity,
	})
	if err != nil {
		return domain.Poste{}, fmt.Errorf("r.dao.Insert -> %w", err)
	}

	return posteToDomain(created), nil
}

func (r *PosteRepository) FindByFestival(ctx context.Context, festivalID uint) ([]domain.PosteWithReferents, error) {
	found, err := r.dao.FindByFestival(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByFestival -> %w", err)
	}

	postes := make([]domain.PosteWithReferents, 0, len(found))
	for _, p := range found {
		ids := make([]uint, 0, len(p.ReferentIDs))
		for _, id := range p.ReferentIDs {
			ids = append(ids, uint(id))
		}
		usernames := []string(p.ReferentUsernames)
		if usernames == nil {
			usernames = []string{}
		}

		postes = append(postes, domain.PosteWithReferents{
			Poste:             posteToDomain(p.Poste),
			ReferentIDs:       ids,
			ReferentUsernames: usernames,
		})
	}

	return postes, nil
}

func (r *PosteRepository) FindByID(ctx context.Context, id uint) (domain.Poste, error) {
	found, err := r.dao.FindByID(ctx, id)
	if err != nil {
		return domain.Poste{}, fmt.Errorf("r.dao.FindByID -> %w", err)
	}

	return posteToDomain(found), nil
}

func (r *PosteRepository) FindByName(ctx context.Context, festivalID uint, name string) (domain.Poste, error) {
	found, err := r.dao.FindByName(ctx, festivalID, name)
	if err != nil {
		return domain.Poste{}, fmt.Errorf("r.dao.FindByName -> %w", err)
	}

	return posteToDomain(found), nil
}

func (r *PosteRepository) Update(ctx context.Context, id uint, description string, maxCapacity int) (domain.Poste, error) {
	updated, err := r.dao.Update(ctx, id, description, maxCapacity)
	if err != nil {
		return domain.Poste{}, fmt.Errorf("r.dao.Update -> %w", err)
	}

	return posteToDomain(updated), nil
}

func (r *PosteRepository) Delete(ctx context.Context, id uint) error {
	if err := r.dao.Delete(ctx, id); err != nil {
		return fmt.Errorf("r.dao.Delete -> %w", err)
	}

	return nil
}

func posteToDomain(p dao.Poste) domain.Poste {
	return domain.Poste{
		ID:          p.ID,
		FestivalID:  p.FestivalID,
		Name:        p.Name,
		Description: p.Description,
		MaxCapacity: p.MaxCapacity,
		IsActive:    p.IsActive,
	}
}
