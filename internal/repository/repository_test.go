package repository

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

type fakeInscriptionDAO struct {
	InscriptionDAO
	rows    []dao.Inscription
	deleted []uint
}

func (f *fakeInscriptionDAO) Resolve(_ context.Context, _ uint, resolve dao.Resolver) (int64, error) {
	ids, err := resolve(f.rows)
	f.deleted = ids
	return int64(len(ids)), err
}

func TestInscriptionRepository_ResolveSplitsRows(t *testing.T) {
	fake := &fakeInscriptionDAO{rows: []dao.Inscription{
		{ID: 1, UserID: 7, Poste: "Buvette", IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"},
		{ID: 2, UserID: 7, Poste: "Animation", ZonePlan: "Z", ZoneBenevoleID: "1", ZoneBenevoleName: "A", Jour: "Lundi", Creneau: "10h-12h"},
	}}
	repo := NewInscriptionRepository(fake)

	res, err := repo.Resolve(context.Background(), 1, func(postes, zones []domain.Inscription) domain.Resolution {
		require.Len(t, postes, 1)
		require.Len(t, zones, 1)
		zone, ok := zones[0].Zone()
		require.True(t, ok)
		assert.Equal(t, domain.Zone{Plan: "Z", ID: "1", Name: "A"}, zone)

		return domain.Resolution{ZoneDeleted: zones}
	})
	require.NoError(t, err)
	assert.Len(t, res.ZoneDeleted, 1)
	assert.Equal(t, []uint{2}, fake.deleted)
}

func TestInscriptionMapping_RoundTrip(t *testing.T) {
	signups := []domain.Inscription{
		{ID: 1, UserID: 7, FestivalID: 3, Commitment: domain.PosteCommitment{Poste: "Buvette"}, Slot: domain.Slot{Jour: "Lundi", Creneau: "10h-12h"}},
		{ID: 2, UserID: 7, FestivalID: 3, Commitment: domain.ZoneCommitment{Poste: domain.AnimationPoste, Zone: domain.Zone{Plan: "Z", ID: "1", Name: "A"}}, Slot: domain.Slot{Jour: "Mardi", Creneau: "12h-14h"}, IsActive: true},
	}

	assert.Equal(t, signups, inscriptionsToDomain(inscriptionsToDao(signups)))
}

type fakeReferentDAO struct {
	ReferentDAO
	rows []dao.PosteVolunteer
}

func (f *fakeReferentDAO) FindVolunteers(context.Context, uint, uint) ([]dao.PosteVolunteer, error) {
	return f.rows, nil
}

func TestReferentRepository_FindVolunteersGroupsByPoste(t *testing.T) {
	repo := NewReferentRepository(&fakeReferentDAO{rows: []dao.PosteVolunteer{
		{PosteID: 1, Poste: "Buvette", UserID: 7, Username: "alice", Jour: "Lundi", Creneau: "10h-12h"},
		{PosteID: 1, Poste: "Buvette", UserID: 8, Username: "bob", Jour: "Lundi", Creneau: "10h-12h"},
		{PosteID: 2, Poste: "Accueil", UserID: 7, Username: "alice", Jour: "Mardi", Creneau: "8h-10h"},
	}})

	groups, err := repo.FindVolunteers(context.Background(), 9, 1)
	require.NoError(t, err)
	require.Len(t, groups, 2)
	assert.Len(t, groups[0].Inscriptions, 2)
	assert.Equal(t, "Accueil", groups[1].Poste)
}
