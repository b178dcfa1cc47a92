package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalogDAO_ReplaceAppliesPlan(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewCatalogDAO(db)

	festival := seedFestival(t, db, "FJM 2025", true)
	user := seedUser(t, db, "alice")
	_, _, err := NewInscriptionDAO(db).Apply(ctx, festival.ID, []Inscription{
		zoneRow(user.ID, "Z", "5", "Old", "Lundi", "10h-12h"),
		zoneRow(user.ID, "Z", "6", "Gone", "Lundi", "10h-12h"),
		{UserID: user.ID, Poste: animationPoste, IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"},
	}, nil)
	require.NoError(t, err)

	entries := []CatalogEntry{
		{JeuID: 1, NomDuJeu: "Azul", ZonePlan: "Z", ZoneBenevoleID: "5", ZoneBenevole: "New", AAnimer: "oui"},
		{JeuID: 2, NomDuJeu: "Catan", ZonePlan: "Z", ZoneBenevoleID: "7", ZoneBenevole: "Other", AAnimer: "non"},
	}

	var handed []Inscription
	err = d.Replace(ctx, festival.ID, entries, func(signups []Inscription) (ReconciliationPlan, error) {
		handed = signups
		return ReconciliationPlan{
			Renames: []ZoneRename{{Name: "New", IDs: []uint{signups[0].ID}}},
			Deletes: []uint{signups[1].ID},
		}, nil
	})
	require.NoError(t, err)
	assert.Len(t, handed, 2, "poste-level rows are not reconciled")

	rows, err := NewInscriptionDAO(db).FindByUser(ctx, user.ID, festival.ID)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	names := []string{rows[0].ZoneBenevoleName, rows[1].ZoneBenevoleName}
	assert.ElementsMatch(t, []string{"", "New"}, names)

	games, err := d.FindByFestival(ctx, festival.ID)
	require.NoError(t, err)
	require.Len(t, games, 2)
	assert.Equal(t, "Azul", games[0].NomDuJeu)
	assert.True(t, games[0].IsActive)

	zones, err := d.FindAnimatableZones(ctx, festival.ID, []string{"oui"})
	require.NoError(t, err)
	assert.Equal(t, []AnimatableZone{{ZonePlan: "Z", ZoneBenevoleID: "5", ZoneBenevole: "New"}}, zones)

	_, err = d.FindGame(ctx, festival.ID, 42)
	assert.ErrorIs(t, err, ErrGameNotFound)
}

func TestCatalogDAO_ReplaceUnknownFestival(t *testing.T) {
	db := setupDB(t)

	err := NewCatalogDAO(db).Replace(context.Background(), 999, nil, func([]Inscription) (ReconciliationPlan, error) {
		return ReconciliationPlan{}, nil
	})
	assert.ErrorIs(t, err, ErrFestivalNotFound)
}
