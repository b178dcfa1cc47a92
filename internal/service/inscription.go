package service

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/festival-benevoles/api/internal/domain"
)

var (
	ErrUnknownJour    = domain.ErrUnknownJour
	ErrUnknownCreneau = domain.ErrUnknownCreneau
	ErrNotAZoneSignup = errors.New("zone sign-ups belong to the Animation poste")
)

type InscriptionRepository interface {
	Apply(ctx context.Context, festivalID uint, inserts, withdrawals []domain.Inscription) (int64, int64, error)
	FindActive(ctx context.Context, festivalID uint) ([]domain.Inscription, error)
	FindByUser(ctx context.Context, userID, festivalID uint) ([]domain.Inscription, error)
}

type PosteFinder interface {
	FindByFestival(ctx context.Context, festivalID uint) ([]domain.PosteWithReferents, error)
	FindByName(ctx context.Context, festivalID uint, name string) (domain.Poste, error)
}

type ZoneFinder interface {
	FindAnimatableZones(ctx context.Context, festivalID uint) ([]domain.Zone, error)
}

// BatchResult counts the rows a sign-up operation changed. Duplicate sign-ups are
// not counted.
type BatchResult struct {
	Inserted int64 `json:"inserted"`
	Deleted  int64 `json:"deleted"`
}

type InscriptionService struct {
	repo     InscriptionRepository
	postes   PosteFinder
	zones    ZoneFinder
	schedule domain.Schedule
}

func NewInscriptionService(repo InscriptionRepository, postes PosteFinder, zones ZoneFinder, schedule domain.Schedule) *InscriptionService {
	return &InscriptionService{
		repo:     repo,
		postes:   postes,
		zones:    zones,
		schedule: schedule,
	}
}

func (s *InscriptionService) Schedule() domain.Schedule {
	return s.schedule
}

func (s *InscriptionService) SignupPoste(ctx context.Context, userID, festivalID uint, poste string, slot domain.Slot) (BatchResult, error) {
	return s.Batch(ctx, festivalID, []domain.Inscription{posteSignup(userID, poste, slot)}, nil)
}

func (s *InscriptionService) SignupZone(ctx context.Context, userID, festivalID uint, zone domain.Zone, slot domain.Slot) (BatchResult, error) {
	return s.Batch(ctx, festivalID, []domain.Inscription{zoneSignup(userID, zone, slot)}, nil)
}

// WithdrawPoste also withdraws the user's zone sign-ups in the slot when poste is Animation.
func (s *InscriptionService) WithdrawPoste(ctx context.Context, userID, festivalID uint, poste string, slot domain.Slot) (BatchResult, error) {
	return s.Batch(ctx, festivalID, nil, []domain.Inscription{posteSignup(userID, poste, slot)})
}

func (s *InscriptionService) WithdrawZone(ctx context.Context, userID, festivalID uint, zone domain.Zone, slot domain.Slot) (BatchResult, error) {
	return s.Batch(ctx, festivalID, nil, []domain.Inscription{zoneSignup(userID, zone, slot)})
}

// Batch validates every row first, then applies withdrawals and sign-ups in one transaction.
func (s *InscriptionService) Batch(ctx context.Context, festivalID uint, signups, withdrawals []domain.Inscription) (BatchResult, error) {
	checked := make(map[string]struct{})
	for _, group := range [][]domain.Inscription{signups, withdrawals} {
		for _, row := range group {
			if err := s.check(ctx, festivalID, row, checked); err != nil {
				return BatchResult{}, err
			}
		}
	}

	inserted, deleted, err := s.repo.Apply(ctx, festivalID, signups, withdrawals)
	if err != nil {
		return BatchResult{}, fmt.Errorf("s.repo.Apply -> %w", err)
	}

	return BatchResult{Inserted: inserted, Deleted: deleted}, nil
}

func (s *InscriptionService) check(ctx context.Context, festivalID uint, row domain.Inscription, checked map[string]struct{}) error {
	if err := s.schedule.Validate(row.Slot); err != nil {
		return err
	}
	if !row.IsPoste() && row.Poste() != domain.AnimationPoste {
		return ErrNotAZoneSignup
	}
	if _, ok := checked[row.Poste()]; ok {
		return nil
	}

	if _, err := s.postes.FindByName(ctx, festivalID, row.Poste()); err != nil {
		return fmt.Errorf("s.postes.FindByName -> %w", err)
	}
	checked[row.Poste()] = struct{}{}

	return nil
}

// PosteOccupancy returns a cell for every poste × jour × créneau of the festival.
func (s *InscriptionService) PosteOccupancy(ctx context.Context, festivalID uint) ([]domain.PosteOccupancy, error) {
	var (
		postes  []domain.PosteWithReferents
		signups []domain.Inscription
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		postes, err = s.postes.FindByFestival(gctx, festivalID)
		if err != nil {
			return fmt.Errorf("s.postes.FindByFestival -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		signups, err = s.repo.FindActive(gctx, festivalID)
		if err != nil {
			return fmt.Errorf("s.repo.FindActive -> %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	plain := make([]domain.Poste, 0, len(postes))
	for _, p := range postes {
		plain = append(plain, p.Poste)
	}

	return domain.BuildPosteOccupancy(s.schedule, plain, signups), nil
}

// ZoneOccupancy returns a cell for every animatable zone × jour × créneau of the festival.
func (s *InscriptionService) ZoneOccupancy(ctx context.Context, festivalID uint) ([]domain.ZoneOccupancy, error) {
	var (
		zones   []domain.Zone
		signups []domain.Inscription
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		zones, err = s.zones.FindAnimatableZones(gctx, festivalID)
		if err != nil {
			return fmt.Errorf("s.zones.FindAnimatableZones -> %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		signups, err = s.repo.FindActive(gctx, festivalID)
		if err != nil {
			return fmt.Errorf("s.repo.FindActive -> %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return domain.BuildZoneOccupancy(s.schedule, zones, signups), nil
}

func (s *InscriptionService) MySignups(ctx context.Context, userID, festivalID uint) ([]domain.Inscription, error) {
	signups, err := s.repo.FindByUser(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.FindByUser -> %w", err)
	}

	return signups, nil
}

func posteSignup(userID uint, poste string, slot domain.Slot) domain.Inscription {
	return domain.Inscription{UserID: userID, Commitment: domain.PosteCommitment{Poste: poste}, Slot: slot}
}

func zoneSignup(userID uint, zone domain.Zone, slot domain.Slot) domain.Inscription {
	return domain.Inscription{
		UserID:     userID,
		Commitment: domain.ZoneCommitment{Poste: domain.AnimationPoste, Zone: zone},
		Slot:       slot,
	}
}
