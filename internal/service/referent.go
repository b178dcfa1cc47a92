package service

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

var ErrReferentNotFound = repository.ErrReferentNotFound

type ReferentRepository interface {
	Assign(ctx context.Context, userID, posteID uint) (domain.Referent, error)
	Unassign(ctx context.Context, userID, posteID uint) error
	FindByPoste(ctx context.Context, posteID uint) ([]domain.ReferentUser, error)
	FindPostesByUser(ctx context.Context, userID, festivalID uint) ([]domain.Poste, error)
	FindVolunteers(ctx context.Context, userID, festivalID uint) ([]domain.PosteVolunteers, error)
}

type ReferentService struct {
	repo ReferentRepository
}

func NewReferentService(repo ReferentRepository) *ReferentService {
	return &ReferentService{
		repo: repo,
	}
}

// Assign is idempotent and grants the Referent role.
func (s *ReferentService) Assign(ctx context.Context, userID, posteID uint) (domain.Referent, error) {
	ref, err := s.repo.Assign(ctx, userID, posteID)
	if err != nil {
		return domain.Referent{}, fmt.Errorf("s.repo.Assign -> %w", err)
	}

	return ref, nil
}

// Unassign revokes the Referent role when the user has no poste left.
func (s *ReferentService) Unassign(ctx context.Context, userID, posteID uint) error {
	if err := s.repo.Unassign(ctx, userID, posteID); err != nil {
		return fmt.Errorf("s.repo.Unassign -> %w", err)
	}

	return nil
}

func (s *ReferentService) ListByPoste(ctx context.Context, posteID uint) ([]domain.ReferentUser, error) {
	users, err := s.repo.FindByPoste(ctx, posteID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByPoste -> %w", err)
	}

	return users, nil
}

func (s *ReferentService) MyPostes(ctx context.Context, userID, festivalID uint) ([]domain.Poste, error) {
	postes, err := s.repo.FindPostesByUser(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindPostesByUser -> %w", err)
	}

	return postes, nil
}

func (s *ReferentService) MyVolunteers(ctx context.Context, userID, festivalID uint) ([]domain.PosteVolunteers, error) {
	groups, err := s.repo.FindVolunteers(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindVolunteers -> %w", err)
	}

	return groups, nil
}
