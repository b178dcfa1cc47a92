package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

var ErrGameNotFound = dao.ErrGameNotFound

type CatalogDAO interface {
	Replace(ctx context.Context, festivalID uint, entries []dao.CatalogEntry, reconcile dao.Reconciler) error
	FindByFestival(ctx context.Context, festivalID uint) ([]dao.CatalogEntry, error)
	FindGame(ctx context.Context, festivalID uint, jeuID int) (dao.CatalogEntry, error)
	FindAnimatableZones(ctx context.Context, festivalID uint, truthy []string) ([]dao.AnimatableZone, error)
}

type CatalogRepository struct {
	dao CatalogDAO
}

func NewCatalogRepository(dao CatalogDAO) *CatalogRepository {
	return &CatalogRepository{
		dao: dao,
	}
}

// Replace stores games as the festival catalog and applies the plan reconcile builds
// from the existing zone-level Animation sign-ups, in one transaction.
func (r *CatalogRepository) Replace(
	ctx context.Context,
	festivalID uint,
	games []domain.Game,
	reconcile func(signups []domain.Inscription) domain.ReconciliationPlan,
) (domain.ReconciliationPlan, error) {
	entries := make([]dao.CatalogEntry, 0, len(games))
	for _, g := range games {
		entries = append(entries, gameToDao(g))
	}

	var plan domain.ReconciliationPlan
	err := r.dao.Replace(ctx, festivalID, entries, func(rows []dao.Inscription) (dao.ReconciliationPlan, error) {
		plan = reconcile(inscriptionsToDomain(rows))

		out := dao.ReconciliationPlan{Deletes: plan.Deletes}
		for _, rename := range plan.Renames {
			out.Renames = append(out.Renames, dao.ZoneRename{Name: rename.Name, IDs: rename.IDs})
		}
		return out, nil
	})
	if err != nil {
		return domain.ReconciliationPlan{}, fmt.Errorf("r.dao.Replace -> %w", err)
	}

	return plan, nil
}

func (r *CatalogRepository) FindGames(ctx context.Context, festivalID uint) ([]domain.Game, error) {
	found, err := r.dao.FindByFestival(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindByFestival -> %w", err)
	}

	games := make([]domain.Game, 0, len(found))
	for _, e := range found {
		games = append(games, gameToDomain(e))
	}

	return games, nil
}

func (r *CatalogRepository) FindGame(ctx context.Context, festivalID uint, jeuID int) (domain.Game, error) {
	found, err := r.dao.FindGame(ctx, festivalID, jeuID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("r.dao.FindGame -> %w", err)
	}

	return gameToDomain(found), nil
}

func (r *CatalogRepository) FindAnimatableZones(ctx context.Context, festivalID uint) ([]domain.Zone, error) {
	found, err := r.dao.FindAnimatableZones(ctx, festivalID, domain.TruthyValues)
	if err != nil {
		return nil, fmt.Errorf("r.dao.FindAnimatableZones -> %w", err)
	}

	zones := make([]domain.Zone, 0, len(found))
	for _, z := range found {
		zones = append(zones, domain.Zone{Plan: z.ZonePlan, ID: z.ZoneBenevoleID, Name: z.ZoneBenevole})
	}

	return zones, nil
}

func gameToDao(g domain.Game) dao.CatalogEntry {
	return dao.CatalogEntry{
		JeuID:          g.JeuID,
		NomDuJeu:       g.NomDuJeu,
		Auteur:         g.Auteur,
		Editeur:        g.Editeur,
		NbJoueurs:      g.NbJoueurs,
		AgeMin:         g.AgeMin,
		Duree:          g.Duree,
		TypeJeu:        g.TypeJeu,
		Notice:         g.Notice,
		ZonePlan:       g.ZonePlan,
		ZoneBenevole:   g.ZoneBenevole,
		ZoneBenevoleID: g.ZoneBenevoleID,
		AAnimer:        g.AAnimer,
		Recu:           g.Recu,
		Mecanismes:     g.Mecanismes,
		Themes:         g.Themes,
		Tags:           g.Tags,
		Description:    g.Description,
		ImageJeu:       g.ImageJeu,
		Logo:           g.Logo,
		Video:          g.Video,
	}
}

func gameToDomain(e dao.CatalogEntry) domain.Game {
	return domain.Game{
		FestivalID:     e.FestivalID,
		JeuID:          e.JeuID,
		NomDuJeu:       e.NomDuJeu,
		Auteur:         e.Auteur,
		Editeur:        e.Editeur,
		NbJoueurs:      e.NbJoueurs,
		AgeMin:         e.AgeMin,
		Duree:          e.Duree,
		TypeJeu:        e.TypeJeu,
		Notice:         e.Notice,
		ZonePlan:       e.ZonePlan,
		ZoneBenevole:   e.ZoneBenevole,
		ZoneBenevoleID: e.ZoneBenevoleID,
		AAnimer:        e.AAnimer,
		Recu:           e.Recu,
		Mecanismes:     e.Mecanismes,
		Themes:         e.Themes,
		Tags:           e.Tags,
		Description:    e.Description,
		ImageJeu:       e.ImageJeu,
		Logo:           e.Logo,
		Video:          e.Video,
	}
}
