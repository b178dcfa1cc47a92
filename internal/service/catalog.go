package service

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

var (
	ErrGameNotFound   = repository.ErrGameNotFound
	ErrInvalidCatalog = errors.New("invalid catalog file")
)

const catalogDelimiter = ';'

type CatalogRepository interface {
	Replace(
		ctx context.Context,
		festivalID uint,
		games []domain.Game,
		reconcile func(signups []domain.Inscription) domain.ReconciliationPlan,
	) (domain.ReconciliationPlan, error)
	FindGames(ctx context.Context, festivalID uint) ([]domain.Game, error)
	FindGame(ctx context.Context, festivalID uint, jeuID int) (domain.Game, error)
	FindAnimatableZones(ctx context.Context, festivalID uint) ([]domain.Zone, error)
}

// ImportReport summarizes a catalog replacement.
type ImportReport struct {
	FestivalID uint `json:"festival_id"`
	Games      int  `json:"games"`
	Retained   int  `json:"retained"`
	Renamed    int  `json:"renamed"`
	Deleted    int  `json:"deleted"`
}

type CatalogService struct {
	repo      CatalogRepository
	festivals ActiveFestivalResolver
}

func NewCatalogService(repo CatalogRepository, festivals ActiveFestivalResolver) *CatalogService {
	return &CatalogService{
		repo:      repo,
		festivals: festivals,
	}
}

// ParseCatalog reads a semicolon separated catalog and drops its header row.
func ParseCatalog(r io.Reader) ([]domain.Game, error) {
	reader := csv.NewReader(r)
	reader.Comma = catalogDelimiter
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidCatalog, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: empty file", ErrInvalidCatalog)
	}

	games := make([]domain.Game, 0, len(records)-1)
	for i, record := range records[1:] {
		game, err := domain.GameFromRow(record)
		if err != nil {
			// Line numbers count the header.
			return nil, fmt.Errorf("%w: line %d: %w", ErrInvalidCatalog, i+2, err)
		}
		games = append(games, game)
	}

	return games, nil
}

// Import replaces the catalog of the festival, or of the active one when festivalID
// is zero, and reconciles existing zone sign-ups against it.
func (s *CatalogService) Import(ctx context.Context, festivalID uint, games []domain.Game) (ImportReport, error) {
	festivalID, err := resolveFestival(ctx, s.festivals, festivalID)
	if err != nil {
		return ImportReport{}, err
	}

	names := domain.CatalogZoneNames(games)
	plan, err := s.repo.Replace(ctx, festivalID, games, func(signups []domain.Inscription) domain.ReconciliationPlan {
		return domain.PlanReconciliation(signups, names)
	})
	if err != nil {
		return ImportReport{}, fmt.Errorf("s.repo.Replace -> %w", err)
	}

	report := ImportReport{
		FestivalID: festivalID,
		Games:      len(games),
		Retained:   plan.Retained,
		Renamed:    plan.Renamed(),
		Deleted:    len(plan.Deletes),
	}
	zap.L().Info("catalog replaced",
		zap.Uint("festival_id", festivalID),
		zap.Int("games", report.Games),
		zap.Int("retained", report.Retained),
		zap.Int("renamed", report.Renamed),
		zap.Int("deleted", report.Deleted),
	)

	return report, nil
}

func (s *CatalogService) ListGames(ctx context.Context, festivalID uint) ([]domain.Game, error) {
	games, err := s.repo.FindGames(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindGames -> %w", err)
	}

	return games, nil
}

func (s *CatalogService) GetGame(ctx context.Context, festivalID uint, jeuID int) (domain.Game, error) {
	game, err := s.repo.FindGame(ctx, festivalID, jeuID)
	if err != nil {
		return domain.Game{}, fmt.Errorf("s.repo.FindGame -> %w", err)
	}

	return game, nil
}

func (s *CatalogService) ListAnimatableZones(ctx context.Context, festivalID uint) ([]domain.Zone, error) {
	zones, err := s.repo.FindAnimatableZones(ctx, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindAnimatableZones -> %w", err)
	}

	return zones, nil
}
