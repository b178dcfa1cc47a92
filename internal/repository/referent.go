package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

var ErrReferentNotFound = dao.ErrReferentNotFound

type ReferentDAO interface {
	Assign(ctx context.Context, userID, posteID uint) (dao.Referent, error)
	Unassign(ctx context.Context, userID, posteID uint) error
	FindByPoste(ctx context.Context, posteID uint) ([]dao.ReferentUser, error)
	FindPostesByUser(ctx context.Context, userID, festivalID uint) ([]dao.Poste, error)
	FindVolunteers(ctx context.Context, userID, festivalID uint) ([]dao.PosteVolunteer, error)
}

type ReferentRepository struct {
	dao ReferentDAO
}

func NewReferentRepository(dao ReferentDAO) *ReferentRepository {
	return &ReferentRepository{
		dao: dao,
	}
}

func (r *ReferentRepository) Assign(ctx context.Context, userID, posteID uint) (domain.Referent, error) {
	ref, err := r.dao.Assign(ctx, userID, posteID)
	if err != nil {
		return domain.Referent{}, fmt.Errorf("r.dao.Assign -> %w", err)
	}

	return domain.Referent{UserID: ref.UserID, PosteID: ref.PosteID, FestivalID: ref.FestivalID}, nil
}

func (r *ReferentRepository) Unassign(ctx context.Context, userID, posteID uint) error {
	if err := r.dao.Unassign(ctx, userID, posteID); err != nil {
		return fmt.Errorf("r.dao.Unassign -> %w", err)
	}

	return nil
}

func (r *ReferentRepository) FindByPoste(ctx context.Context, posteID uint) ([]domain.ReferentUser, error) {
	found, err := r.dao.FindByPoste(ctx, posteID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByPoste -> %w", err)
	}

	users := make([]domain.ReferentUser, 0, len(found))
	for _, u := range found {
		users = append(users, domain.ReferentUser{UserID: u.UserID, Username: u.Username, Email: u.Email})
	}

	return users, nil
}

func (r *ReferentRepository) FindPostesByUser(ctx context.Context, userID, festivalID uint) ([]domain.Poste, error) {
	found, err := r.dao.FindPostesByUser(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindPostesByUser -> %w", err)
	}

	postes := make([]domain.Poste, 0, len(found))
	for _, p := range found {
		postes = append(postes, posteToDomain(p))
	}

	return postes, nil
}

// FindVolunteers groups the rows by poste, keeping the query order.
func (r *ReferentRepository) FindVolunteers(ctx context.Context, userID, festivalID uint) ([]domain.PosteVolunteers, error) {
	rows, err := r.dao.FindVolunteers(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindVolunteers -> %w", err)
	}

	var groups []domain.PosteVolunteers
	for _, row := range rows {
		if len(groups) == 0 || groups[len(groups)-1].PosteID != row.PosteID {
			groups = append(groups, domain.PosteVolunteers{PosteID: row.PosteID, Poste: row.Poste})
		}
		last := &groups[len(groups)-1]
		last.Inscriptions = append(last.Inscriptions, domain.PosteVolunteer{
			UserID:   row.UserID,
			Username: row.Username,
			Jour:     row.Jour,
			Creneau:  row.Creneau,
		})
	}

	return groups, nil
}
