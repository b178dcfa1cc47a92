package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

type InscriptionDAO interface {
	Apply(ctx context.Context, festivalID uint, inserts, withdrawals []dao.Inscription) (int64, int64, error)
	FindActive(ctx context.Context, festivalID uint) ([]dao.Inscription, error)
	FindByUser(ctx context.Context, userID, festivalID uint) ([]dao.Inscription, error)
	FindUserIDsByPoste(ctx context.Context, festivalID uint, poste string) ([]uint, error)
	Resolve(ctx context.Context, festivalID uint, resolve dao.Resolver) (int64, error)
}

type InscriptionRepository struct {
	dao InscriptionDAO
}

func NewInscriptionRepository(dao InscriptionDAO) *InscriptionRepository {
	return &InscriptionRepository{
		dao: dao,
	}
}

// Apply returns the number of inserted and withdrawn rows.
func (r *InscriptionRepository) Apply(ctx context.Context, festivalID uint, inserts, withdrawals []domain.Inscription) (int64, int64, error) {
	inserted, deleted, err := r.dao.Apply(ctx, festivalID, inscriptionsToDao(inserts), inscriptionsToDao(withdrawals))
	if err != nil {
		return 0, 0, fmt.Errorf("r.dao.Apply -> %w", err)
	}

	return inserted, deleted, nil
}

func (r *InscriptionRepository) FindActive(ctx context.Context, festivalID uint) ([]domain.Inscription, error) {
	found, err := r.dao.FindActive(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindActive -> %w", err)
	}

	return inscriptionsToDomain(found), nil
}

func (r *InscriptionRepository) FindByUser(ctx context.Context, userID, festivalID uint) ([]domain.Inscription, error) {
	found, err := r.dao.FindByUser(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByUser -> %w", err)
	}

	return inscriptionsToDomain(found), nil
}

func (r *InscriptionRepository) FindUserIDsByPoste(ctx context.Context, festivalID uint, poste string) ([]uint, error) {
	ids, err := r.dao.FindUserIDsByPoste(ctx, festivalID, poste)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindUserIDsByPoste -> %w", err)
	}

	return ids, nil
}

// Resolve hands the active poste-level and zone-level sign-ups of the festival to
// resolve and deletes what it decides, atomically.
func (r *InscriptionRepository) Resolve(
	ctx context.Context,
	festivalID uint,
	resolve func(postes, zones []domain.Inscription) domain.Resolution,
) (domain.Resolution, error) {
	var res domain.Resolution

	_, err := r.dao.Resolve(ctx, festivalID, func(rows []dao.Inscription) ([]uint, error) {
		var postes, zones []domain.Inscription
		for _, s := range inscriptionsToDomain(rows) {
			if s.IsPoste() {
				postes = append(postes, s)
			} else {
				zones = append(zones, s)
			}
		}

		res = resolve(postes, zones)
		return res.IDs(), nil
	})
	if err != nil {
		return domain.Resolution{}, fmt.Errorf("r.dao.Resolve -> %w", err)
	}

	return res, nil
}

func inscriptionsToDomain(rows []dao.Inscription) []domain.Inscription {
	out := make([]domain.Inscription, 0, len(rows))
	for _, row := range rows {
		out = append(out, inscriptionToDomain(row))
	}

	return out
}

func inscriptionToDomain(row dao.Inscription) domain.Inscription {
	var c domain.Commitment = domain.PosteCommitment{Poste: row.Poste}
	if !row.IsPoste {
		c = domain.ZoneCommitment{
			Poste: row.Poste,
			Zone:  domain.Zone{Plan: row.ZonePlan, ID: row.ZoneBenevoleID, Name: row.ZoneBenevoleName},
		}
	}

	return domain.Inscription{
		ID:         row.ID,
		UserID:     row.UserID,
		FestivalID: row.FestivalID,
		Commitment: c,
		Slot:       domain.Slot{Jour: row.Jour, Creneau: row.Creneau},
		IsActive:   row.IsActive,
	}
}

func inscriptionsToDao(signups []domain.Inscription) []dao.Inscription {
	out := make([]dao.Inscription, 0, len(signups))
	for _, s := range signups {
		row := dao.Inscription{
			ID:         s.ID,
			UserID:     s.UserID,
			FestivalID: s.FestivalID,
			Poste:      s.Poste(),
			IsPoste:    s.IsPoste(),
			Jour:       s.Slot.Jour,
			Creneau:    s.Slot.Creneau,
			IsActive:   s.IsActive,
		}
		if z, ok := s.Zone(); ok {
			row.ZonePlan = z.Plan
			row.ZoneBenevoleID = z.ID
			row.ZoneBenevoleName = z.Name
		}
		out = append(out, row)
	}

	return out
}
