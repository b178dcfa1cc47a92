package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/festival-benevoles/api/internal/domain"
)

type InscriptionServiceSuite struct {
	suite.Suite

	store *memInscriptions
	svc   *InscriptionService
	ctx   context.Context
}

func TestInscriptionService(t *testing.T) {
	suite.Run(t, new(InscriptionServiceSuite))
}

var (
	lundiMatin = domain.Slot{Jour: "Lundi", Creneau: "10h-12h"}
	zoneA      = domain.Zone{Plan: "Antigone-Sud 4", ID: "1", Name: "ZoneTest1a"}
)

func (s *InscriptionServiceSuite) SetupTest() {
	s.ctx = context.Background()
	s.store = &memInscriptions{}
	postes := fakePostes{postes: []domain.Poste{
		{ID: 1, FestivalID: 1, Name: domain.AnimationPoste, MaxCapacity: 10},
		{ID: 2, FestivalID: 1, Name: "Buvette", MaxCapacity: 2},
	}}
	s.svc = NewInscriptionService(s.store, postes, fakeZones{zoneA}, testSchedule)
}

func (s *InscriptionServiceSuite) TestSignupPosteIsIdempotent() {
	res, err := s.svc.SignupPoste(s.ctx, 7, 1, "Buvette", lundiMatin)
	s.Require().NoError(err)
	s.Equal(int64(1), res.Inserted)

	res, err = s.svc.SignupPoste(s.ctx, 7, 1, "Buvette", lundiMatin)
	s.Require().NoError(err)
	s.Zero(res.Inserted)

	mine, err := s.svc.MySignups(s.ctx, 7, 1)
	s.Require().NoError(err)
	s.Len(mine, 1)
}

func (s *InscriptionServiceSuite) TestSignupRejectsUnknownSlotAndPoste() {
	_, err := s.svc.SignupPoste(s.ctx, 7, 1, "Buvette", domain.Slot{Jour: "Dimanche", Creneau: "10h-12h"})
	s.ErrorIs(err, ErrUnknownJour)

	_, err = s.svc.SignupPoste(s.ctx, 7, 1, "Buvette", domain.Slot{Jour: "Lundi", Creneau: "6h-8h"})
	s.ErrorIs(err, ErrUnknownCreneau)

	_, err = s.svc.SignupPoste(s.ctx, 7, 1, "Cuisine", lundiMatin)
	s.ErrorIs(err, ErrPosteNotFound)

	s.Empty(s.store.rows)
}

func (s *InscriptionServiceSuite) TestWithdrawAnimationCascades() {
	_, err := s.svc.Batch(s.ctx, 1, []domain.Inscription{
		posteSignup(7, domain.AnimationPoste, lundiMatin),
		zoneSignup(7, zoneA, lundiMatin),
	}, nil)
	s.Require().NoError(err)

	res, err := s.svc.WithdrawPoste(s.ctx, 7, 1, domain.AnimationPoste, lundiMatin)
	s.Require().NoError(err)
	s.Equal(int64(2), res.Deleted)
	s.Empty(s.store.rows)
}

func (s *InscriptionServiceSuite) TestZoneSignupMustBeAnimation() {
	row := domain.Inscription{
		UserID:     7,
		Commitment: domain.ZoneCommitment{Poste: "Buvette", Zone: zoneA},
		Slot:       lundiMatin,
	}

	_, err := s.svc.Batch(s.ctx, 1, []domain.Inscription{row}, nil)
	s.ErrorIs(err, ErrNotAZoneSignup)
}

func (s *InscriptionServiceSuite) TestOccupancy() {
	_, err := s.svc.Batch(s.ctx, 1, []domain.Inscription{
		posteSignup(7, "Buvette", lundiMatin),
		posteSignup(8, "Buvette", lundiMatin),
		zoneSignup(7, zoneA, lundiMatin),
	}, nil)
	s.Require().NoError(err)

	postes, err := s.svc.PosteOccupancy(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(postes, 2)
	s.Len(postes[1].Slots, 4)
	s.Equal(2, postes[1].Slots[0].Count)
	s.True(postes[1].Slots[0].Registered(8))

	zones, err := s.svc.ZoneOccupancy(s.ctx, 1)
	s.Require().NoError(err)
	s.Require().Len(zones, 1)
	s.Equal(domain.DefaultZoneCapacity, zones[0].Capacity)
	s.Equal(1, zones[0].Slots[0].Count)
}
