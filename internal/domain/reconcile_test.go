package domain

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func zoneSignup(id, userID uint, plan, zoneID, name string, slot Slot) Inscription {
	return Inscription{
		ID:         id,
		UserID:     userID,
		FestivalID: 1,
		Commitment: ZoneCommitment{Poste: AnimationPoste, Zone: Zone{Plan: plan, ID: zoneID, Name: name}},
		Slot:       slot,
		IsActive:   true,
	}
}

func posteSignup(id, userID uint, poste string, slot Slot) Inscription {
	return Inscription{
		ID:         id,
		UserID:     userID,
		FestivalID: 1,
		Commitment: PosteCommitment{Poste: poste},
		Slot:       slot,
		IsActive:   true,
	}
}

var (
	lundiMatin = Slot{Jour: "Lundi", Creneau: "10h-12h"}
	lundiMidi  = Slot{Jour: "Lundi", Creneau: "12h-14h"}
)

func TestPlanReconciliation_Rename(t *testing.T) {
	signups := []Inscription{zoneSignup(1, 10, "Z", "5", "Old", lundiMatin)}
	catalog := map[ZoneKey]string{{Plan: "Z", ID: "5"}: "New"}

	plan := PlanReconciliation(signups, catalog)

	assert.Equal(t, 1, plan.Retained)
	assert.Empty(t, plan.Deletes)
	want := []ZoneRename{{Key: ZoneKey{Plan: "Z", ID: "5"}, Name: "New", IDs: []uint{1}}}
	if diff := cmp.Diff(want, plan.Renames); diff != "" {
		t.Errorf("renames mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 1, plan.Renamed())
}

func TestPlanReconciliation_Deletion(t *testing.T) {
	signups := []Inscription{
		zoneSignup(1, 10, "Z", "5", "Gone", lundiMatin),
		zoneSignup(2, 10, "Z", "6", "Kept", lundiMatin),
	}
	catalog := map[ZoneKey]string{{Plan: "Z", ID: "6"}: "Kept"}

	plan := PlanReconciliation(signups, catalog)

	assert.Equal(t, []uint{1}, plan.Deletes)
	assert.Empty(t, plan.Renames)
	assert.Equal(t, 1, plan.Retained)
}

func TestPlanReconciliation_IdentityIsScopedToZonePlan(t *testing.T) {
	// Id 1 is reused under another plan; the old plan no longer has it.
	signups := []Inscription{zoneSignup(1, 10, "Antigone-Sud 3", "1", "MauvaiseZoneBenevole", Slot{Jour: "Lundi", Creneau: "15h-17h"})}
	catalog := map[ZoneKey]string{{Plan: "Antigone-Sud 4", ID: "1"}: "ZoneTest1a"}

	plan := PlanReconciliation(signups, catalog)

	assert.Equal(t, []uint{1}, plan.Deletes)
	assert.Zero(t, plan.Retained)
}

func TestPlanReconciliation_SplitZonePlan(t *testing.T) {
	// The plan used to be a single zone with id 123; it is now split into new ids.
	signups := []Inscription{
		zoneSignup(1, 10, "Esplanade-Ouest 3", "123", "", lundiMatin),
		zoneSignup(2, 10, "Esplanade-Ouest 3", "123", "", lundiMidi),
	}
	catalog := map[ZoneKey]string{
		{Plan: "Esplanade-Ouest 3", ID: "124"}: "Esplanade-Ouest 3a",
		{Plan: "Esplanade-Ouest 3", ID: "125"}: "Esplanade-Ouest 3b",
	}

	plan := PlanReconciliation(signups, catalog)

	assert.Equal(t, []uint{1, 2}, plan.Deletes)
}

func TestPlanReconciliation_IgnoresPosteLevelAndOtherPostes(t *testing.T) {
	other := zoneSignup(2, 10, "Z", "9", "X", lundiMatin)
	other.Commitment = ZoneCommitment{Poste: "Buvette", Zone: Zone{Plan: "Z", ID: "9", Name: "X"}}
	signups := []Inscription{
		posteSignup(1, 10, AnimationPoste, lundiMatin),
		other,
	}

	plan := PlanReconciliation(signups, map[ZoneKey]string{})

	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.Renames)
	assert.Zero(t, plan.Retained)
}

func TestPlanReconciliation_RenameCollision(t *testing.T) {
	// The user already holds the new name; the stale row must go rather than duplicate it.
	signups := []Inscription{
		zoneSignup(1, 10, "Z", "5", "Old", lundiMatin),
		zoneSignup(2, 10, "Z", "5", "New", lundiMatin),
		zoneSignup(3, 11, "Z", "5", "Old", lundiMatin),
	}
	catalog := map[ZoneKey]string{{Plan: "Z", ID: "5"}: "New"}

	plan := PlanReconciliation(signups, catalog)

	assert.Equal(t, []uint{1}, plan.Deletes)
	assert.Equal(t, 2, plan.Retained)
	assert.Equal(t, []ZoneRename{{Key: ZoneKey{Plan: "Z", ID: "5"}, Name: "New", IDs: []uint{3}}}, plan.Renames)
}

func TestPlanReconciliation_NothingToDo(t *testing.T) {
	signups := []Inscription{
		zoneSignup(1, 10, "Antigone-Nord 1", "229", "Antigone-Nord 1a", lundiMatin),
		zoneSignup(2, 10, "Esplanade-Est 1", "179", "", lundiMatin),
	}
	catalog := map[ZoneKey]string{
		{Plan: "Antigone-Nord 1", ID: "229"}: "Antigone-Nord 1a",
		{Plan: "Esplanade-Est 1", ID: "179"}: "",
		{Plan: "Nouveau", ID: "1"}:           "Nouvelle zone",
	}

	plan := PlanReconciliation(signups, catalog)

	assert.Equal(t, 2, plan.Retained)
	assert.Empty(t, plan.Deletes)
	assert.Empty(t, plan.Renames)
}
