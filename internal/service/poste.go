package service

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

var (
	ErrPosteNotFound   = repository.ErrPosteNotFound
	ErrPosteNameExists = repository.ErrPosteNameExists
	ErrReservedPoste   = repository.ErrReservedPoste
)

type PosteRepository interface {
	Create(ctx context.Context, poste domain.Poste) (domain.Poste, error)
	FindByFestival(ctx context.Context, festivalID uint) ([]domain.PosteWithReferents, error)
	FindByID(ctx context.Context, id uint) (domain.Poste, error)
	FindByName(ctx context.Context, festivalID uint, name string) (domain.Poste, error)
	Update(ctx context.Context, id uint, description string, maxCapacity int) (domain.Poste, error)
	Delete(ctx context.Context, id uint) error
}

type PosteService struct {
	repo PosteRepository
}

func NewPosteService(repo PosteRepository) *PosteService {
	return &PosteService{
		repo: repo,
	}
}

func (s *PosteService) Create(ctx context.Context, poste domain.Poste) (domain.Poste, error) {
	created, err := s.repo.Create(ctx, poste)
	if err != nil {
		return domain.Poste{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *PosteService) List(ctx context.Context, festivalID uint) ([]domain.PosteWithReferents, error) {
	postes, err := s.repo.FindByFestival(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByFestival -> %w", err)
	}

	return postes, nil
}

func (s *PosteService) Get(ctx context.Context, id uint) (domain.Poste, error) {
	poste, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Poste{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return poste, nil
}

func (s *PosteService) Update(ctx context.Context, id uint, description string, maxCapacity int) (domain.Poste, error) {
	poste, err := s.repo.Update(ctx, id, description, maxCapacity)
	if err != nil {
		return domain.Poste{}, fmt.Errorf("s.repo.Update -> %w", err)
	}

	return poste, nil
}

// Delete refuses the Animation poste and cascades to sign-ups and referents otherwise.
func (s *PosteService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}
