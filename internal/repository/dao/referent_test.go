package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func hasRole(u User, name string) bool {
	for _, r := range u.Roles {
		if r.Name == name {
			return true
		}
	}
	return false
}

func TestReferentDAO_AssignAndUnassign(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewReferentDAO(db)
	users := NewUserDAO(db)

	festival := seedFestival(t, db, "FJM 2025", true)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")
	poste, err := NewPosteDAO(db).Insert(ctx, Poste{FestivalID: festival.ID, Name: "Buvette", MaxCapacity: 3})
	require.NoError(t, err)

	_, err = d.Assign(ctx, alice.ID, poste.ID)
	require.NoError(t, err)
	_, err = d.Assign(ctx, alice.ID, poste.ID)
	require.NoError(t, err)

	reloaded, err := users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.True(t, hasRole(reloaded, roleReferent))

	postes, err := NewPosteDAO(db).FindByFestival(ctx, festival.ID)
	require.NoError(t, err)
	require.Len(t, postes, 2)
	for _, p := range postes {
		if p.Name == "Buvette" {
			assert.Equal(t, []int64{int64(alice.ID)}, []int64(p.ReferentIDs))
			assert.Equal(t, []string{"alice"}, []string(p.ReferentUsernames))
		} else {
			assert.Empty(t, p.ReferentIDs)
		}
	}

	_, _, err = NewInscriptionDAO(db).Apply(ctx, festival.ID, []Inscription{
		{UserID: bob.ID, Poste: "Buvette", IsPoste: true, Jour: "Lundi", Creneau: "10h-12h"},
	}, nil)
	require.NoError(t, err)
	volunteers, err := d.FindVolunteers(ctx, alice.ID, festival.ID)
	require.NoError(t, err)
	require.Len(t, volunteers, 1)
	assert.Equal(t, "bob", volunteers[0].Username)

	require.NoError(t, d.Unassign(ctx, alice.ID, poste.ID))
	reloaded, err = users.FindByID(ctx, alice.ID)
	require.NoError(t, err)
	assert.False(t, hasRole(reloaded, roleReferent))

	assert.ErrorIs(t, d.Unassign(ctx, alice.ID, poste.ID), ErrReferentNotFound)
}

func TestPosteDAO_AnimationIsReserved(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()

	festival := seedFestival(t, db, "FJM 2025", true)
	animation, err := NewPosteDAO(db).FindByName(ctx, festival.ID, animationPoste)
	require.NoError(t, err)

	assert.ErrorIs(t, NewPosteDAO(db).Delete(ctx, animation.ID), ErrReservedPoste)

	_, err = NewPosteDAO(db).Insert(ctx, Poste{FestivalID: festival.ID, Name: animationPoste})
	assert.ErrorIs(t, err, ErrPosteNameExists)
}
