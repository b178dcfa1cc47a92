package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildPosteOccupancy(t *testing.T) {
	postes := []Poste{
		{ID: 1, Name: "P", MaxCapacity: 4},
		{ID: 2, Name: AnimationPoste, MaxCapacity: 2},
	}
	signups := []Inscription{
		posteSignup(1, 10, "P", lundiMatin),
		posteSignup(2, 11, "P", lundiMatin),
		posteSignup(3, 12, "P", lundiMatin),
		posteSignup(4, 10, "Unknown", lundiMatin),
		zoneSignup(5, 10, "Z", "1", "A", lundiMatin),
	}

	occ := BuildPosteOccupancy(testSchedule, postes, signups)

	require.Len(t, occ, 2)
	require.Len(t, occ[0].Slots, len(testSchedule.Jours)*len(testSchedule.Creneaux))
	assert.Equal(t, 4, occ[0].Capacity)

	for _, cell := range occ[0].Slots {
		if cell.Slot == lundiMatin {
			assert.Equal(t, 3, cell.Count)
			assert.True(t, cell.Registered(11))
			assert.False(t, cell.Registered(99))
		} else {
			assert.Zero(t, cell.Count)
			assert.NotNil(t, cell.UserIDs)
		}
	}
	for _, cell := range occ[1].Slots {
		assert.Zero(t, cell.Count)
	}
}

func TestBuildZoneOccupancy_Capacity(t *testing.T) {
	zones := []Zone{
		{Plan: "Z", ID: "1", Name: "A"},
		{Plan: "Z", ID: "2", Name: "B"},
	}
	signups := []Inscription{
		zoneSignup(1, 10, "Z", "1", "A", lundiMatin),
		zoneSignup(2, 11, "Z", "1", "stale name", lundiMatin),
		zoneSignup(3, 12, "Z", "1", "A", lundiMatin),
		zoneSignup(4, 10, "Z", "2", "B", lundiMidi),
		posteSignup(5, 10, AnimationPoste, lundiMatin),
	}

	occ := BuildZoneOccupancy(testSchedule, zones, signups)

	require.Len(t, occ, 2)
	assert.Equal(t, 3, occ[0].Capacity)
	assert.Equal(t, DefaultZoneCapacity, occ[1].Capacity)

	for _, cell := range occ[0].Slots {
		if cell.Slot == lundiMatin {
			assert.Equal(t, 3, cell.Count)
			assert.ElementsMatch(t, []uint{10, 11, 12}, cell.UserIDs)
		}
	}
}

func TestBuildZoneOccupancy_SameKeyTwoNames(t *testing.T) {
	zones := []Zone{
		{Plan: "Z", ID: "1", Name: "Ancien"},
		{Plan: "Z", ID: "1", Name: "Nouveau"},
	}
	signups := []Inscription{zoneSignup(1, 10, "Z", "1", "Nouveau", lundiMatin)}

	occ := BuildZoneOccupancy(testSchedule, zones, signups)

	require.Len(t, occ, 1)
	assert.Equal(t, "Ancien", occ[0].Zone.Name)
	for _, cell := range occ[0].Slots {
		if cell.Slot == lundiMatin {
			assert.Equal(t, 1, cell.Count)
		}
	}
}
