package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func zoneRow(userID uint, plan, id, name, jour, creneau string) Inscription {
	return Inscription{
		UserID:           userID,
		Poste:            animationPoste,
		ZonePlan:         plan,
		ZoneBenevoleID:   id,
		ZoneBenevoleName: name,
		Jour:             jour,
		Creneau:          creneau,
	}
}

func TestInscriptionDAO_ApplyIgnoresDuplicates(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewInscriptionDAO(db)

	festival := seedFestival(t, db, "FJM 2025", true)
	user := seedUser(t, db, "alice")
	row := Inscription{UserID: user.ID, Poste: "Buvette", IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"}

	inserted, _, err := d.Apply(ctx, festival.ID, []Inscription{row, row}, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), inserted)

	rows, err := d.FindByUser(ctx, user.ID, festival.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.True(t, rows[0].IsActive)

	_, _, err = d.Apply(ctx, 999, []Inscription{row}, nil)
	assert.ErrorIs(t, err, ErrFestivalNotFound)
}

func TestInscriptionDAO_WithdrawAnimationCascades(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewInscriptionDAO(db)

	festival := seedFestival(t, db, "FJM 2025", true)
	user := seedUser(t, db, "alice")
	animation := Inscription{UserID: user.ID, Poste: animationPoste, IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"}

	_, _, err := d.Apply(ctx, festival.ID, []Inscription{
		animation,
		zoneRow(user.ID, "Antigone-Sud 4", "1", "ZoneTest1a", "Lundi", "10h-12h"),
		zoneRow(user.ID, "Antigone-Sud 4", "2", "ZoneTest1b", "Lundi", "10h-12h"),
		zoneRow(user.ID, "Antigone-Sud 4", "1", "ZoneTest1a", "Lundi", "12h-14h"),
	}, nil)
	require.NoError(t, err)

	_, deleted, err := d.Apply(ctx, festival.ID, nil, []Inscription{animation})
	require.NoError(t, err)
	assert.Equal(t, int64(3), deleted)

	rows, err := d.FindByUser(ctx, user.ID, festival.ID)
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, "12h-14h", rows[0].Creneau)
}

func TestInscriptionDAO_Resolve(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewInscriptionDAO(db)

	festival := seedFestival(t, db, "FJM 2025", true)
	user := seedUser(t, db, "alice")
	_, _, err := d.Apply(ctx, festival.ID, []Inscription{
		{UserID: user.ID, Poste: "Buvette", IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"},
		{UserID: user.ID, Poste: "Accueil", IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"},
	}, nil)
	require.NoError(t, err)

	var seen int
	deleted, err := d.Resolve(ctx, festival.ID, func(signups []Inscription) ([]uint, error) {
		seen = len(signups)
		return []uint{signups[0].ID}, nil
	})
	require.NoError(t, err)
	assert.Equal(t, 2, seen)
	assert.Equal(t, int64(1), deleted)

	rows, err := d.FindActive(ctx, festival.ID)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
