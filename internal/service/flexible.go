package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/festival-benevoles/api/internal/domain"
)

type FlexibleRepository interface {
	Resolve(
		ctx context.Context,
		festivalID uint,
		resolve func(postes, zones []domain.Inscription) domain.Resolution,
	) (domain.Resolution, error)
}

// ResolutionReport summarizes one flexible-resolution run.
type ResolutionReport struct {
	RunID              string `json:"run_id"`
	FestivalID         uint   `json:"festival_id"`
	PosteDeleted       int    `json:"poste_deleted"`
	ZoneCascadeDeleted int    `json:"zone_cascade_deleted"`
	ZoneDeleted        int    `json:"zone_deleted"`
}

// FlexibleService keeps at most one poste-level and one zone-level sign-up per user
// and slot, choosing the survivor with its Picker.
type FlexibleService struct {
	repo      FlexibleRepository
	festivals ActiveFestivalResolver
	picker    domain.Picker
}

func NewFlexibleService(repo FlexibleRepository, festivals ActiveFestivalResolver, picker domain.Picker) *FlexibleService {
	return &FlexibleService{
		repo:      repo,
		festivals: festivals,
		picker:    picker,
	}
}

// Resolve runs on festivalID, or on the active festival when it is zero. The zone-level
// pass only runs when withZones is set; the poste-level pass always does.
func (s *FlexibleService) Resolve(ctx context.Context, festivalID uint, withZones bool) (ResolutionReport, error) {
	festivalID, err := resolveFestival(ctx, s.festivals, festivalID)
	if err != nil {
		return ResolutionReport{}, err
	}

	runID := uuid.NewString()
	log := zap.L().With(zap.String("run_id", runID), zap.Uint("festival_id", festivalID))

	res, err := s.repo.Resolve(ctx, festivalID, func(postes, zones []domain.Inscription) domain.Resolution {
		return domain.ResolveFlexibles(postes, zones, s.picker, withZones)
	})
	if err != nil {
		log.Error("flexible resolution failed", zap.Error(err))
		return ResolutionReport{}, fmt.Errorf("s.repo.Resolve -> %w", err)
	}

	report := ResolutionReport{
		RunID:              runID,
		FestivalID:         festivalID,
		PosteDeleted:       len(res.PosteDeleted),
		ZoneCascadeDeleted: len(res.ZoneCascadeDeleted),
		ZoneDeleted:        len(res.ZoneDeleted),
	}
	log.Info("flexible resolution done",
		zap.Bool("with_zones", withZones),
		zap.Int("poste_deleted", report.PosteDeleted),
		zap.Int("zone_cascade_deleted", report.ZoneCascadeDeleted),
		zap.Int("zone_deleted", report.ZoneDeleted),
	)

	return report, nil
}
