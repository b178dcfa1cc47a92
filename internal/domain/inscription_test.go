package domain

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testSchedule = Schedule{
	Jours:    []string{"Lundi", "Mardi"},
	Creneaux: []string{"10h-12h", "12h-14h", "15h-17h"},
}

func TestSchedule_Validate(t *testing.T) {
	assert.NoError(t, testSchedule.Validate(Slot{Jour: "Lundi", Creneau: "15h-17h"}))
	assert.ErrorIs(t, testSchedule.Validate(Slot{Jour: "Dimanche", Creneau: "10h-12h"}), ErrUnknownJour)
	assert.ErrorIs(t, testSchedule.Validate(Slot{Jour: "Lundi", Creneau: "9h-10h"}), ErrUnknownCreneau)
}

func TestSchedule_Slots(t *testing.T) {
	slots := testSchedule.Slots()

	require.Len(t, slots, 6)
	assert.Equal(t, Slot{Jour: "Lundi", Creneau: "10h-12h"}, slots[0])
	assert.Equal(t, Slot{Jour: "Mardi", Creneau: "15h-17h"}, slots[5])
}

func TestInscription_Variants(t *testing.T) {
	poste := Inscription{UserID: 1, Commitment: PosteCommitment{Poste: "Buvette"}}
	zone := Inscription{UserID: 1, Commitment: ZoneCommitment{
		Poste: AnimationPoste,
		Zone:  Zone{Plan: "Z", ID: "5", Name: "Old"},
	}}

	assert.True(t, poste.IsPoste())
	assert.False(t, zone.IsPoste())
	assert.Equal(t, "Buvette", poste.Poste())
	assert.Equal(t, AnimationPoste, zone.Poste())

	_, ok := poste.Zone()
	assert.False(t, ok)
	z, ok := zone.Zone()
	assert.True(t, ok)
	assert.Equal(t, ZoneKey{Plan: "Z", ID: "5"}, z.Key())
}

func TestInscription_MarshalJSON(t *testing.T) {
	i := Inscription{
		ID:         3,
		UserID:     7,
		FestivalID: 1,
		Commitment: ZoneCommitment{Poste: AnimationPoste, Zone: Zone{Plan: "Z", ID: "5", Name: "Nom"}},
		Slot:       Slot{Jour: "Lundi", Creneau: "10h-12h"},
		IsActive:   true,
	}

	b, err := json.Marshal(i)
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal(b, &got))
	assert.Equal(t, "Animation", got["poste"])
	assert.Equal(t, false, got["is_poste"])
	assert.Equal(t, "5", got["zone_benevole_id"])
	assert.Equal(t, "Lundi", got["jour"])
}
