package service

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

var (
	ErrFestivalNotFound           = repository.ErrFestivalNotFound
	ErrFestivalNameExists         = repository.ErrFestivalNameExists
	ErrNoActiveFestival           = repository.ErrNoActiveFestival
	ErrFestivalActivationConflict = repository.ErrFestivalActivationConflict
)

type FestivalRepository interface {
	Create(ctx context.Context, festival domain.Festival) (domain.Festival, error)
	FindAll(ctx context.Context) ([]domain.Festival, error)
	FindByID(ctx context.Context, id uint) (domain.Festival, error)
	FindActive(ctx context.Context) (domain.Festival, error)
	Activate(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

type FestivalService struct {
	repo FestivalRepository
}

func NewFestivalService(repo FestivalRepository) *FestivalService {
	return &FestivalService{
		repo: repo,
	}
}

// Create also creates the festival's Animation poste.
func (s *FestivalService) Create(ctx context.Context, festival domain.Festival) (domain.Festival, error) {
	created, err := s.repo.Create(ctx, festival)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.Create -> %w", err)
	}

	return created, nil
}

func (s *FestivalService) List(ctx context.Context) ([]domain.Festival, error) {
	festivals, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAll -> %w", err)
	}

	return festivals, nil
}

func (s *FestivalService) Get(ctx context.Context, id uint) (domain.Festival, error) {
	festival, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.FindByID -> %w", err)
	}

	return festival, nil
}

// Active resolves the festival every festival-scoped operation defaults to.
func (s *FestivalService) Active(ctx context.Context) (domain.Festival, error) {
	festival, err := s.repo.FindActive(ctx)
	if err != nil {
		return domain.Festival{}, fmt.Errorf("s.repo.FindActive -> %w", err)
	}

	return festival, nil
}

func (s *FestivalService) Activate(ctx context.Context, id uint) error {
	if err := s.repo.Activate(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Activate -> %w", err)
	}

	return nil
}

func (s *FestivalService) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("s.repo.Delete -> %w", err)
	}

	return nil
}

// ActiveFestivalResolver is the part of FestivalService other services depend on.
type ActiveFestivalResolver interface {
	Active(ctx context.Context) (domain.Festival, error)
}

// resolveFestival returns festivalID, or the active festival when it is zero.
func resolveFestival(ctx context.Context, festivals ActiveFestivalResolver, festivalID uint) (uint, error) {
	if festivalID != 0 {
		return festivalID, nil
	}

	active, err := festivals.Active(ctx)
	if err != nil {
		return 0, fmt.Errorf("festivals.Active -> %w", err)
	}

	return active.ID, nil
}
