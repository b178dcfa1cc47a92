package domain

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fixedPicker int

func (p fixedPicker) Pick(n int) int {
	if int(p) >= n {
		return n - 1
	}
	return int(p)
}

type seededPicker struct{ r *rand.Rand }

func (p seededPicker) Pick(n int) int { return p.r.Intn(n) }

// flexibleFixture is the "4 postes including Animation + 3 zones" case for one slot.
func flexibleFixture() (postes, zones []Inscription) {
	postes = []Inscription{
		posteSignup(1, 10, "PosteTest1", lundiMatin),
		posteSignup(2, 10, "PosteTest2", lundiMatin),
		posteSignup(3, 10, "PosteTest3", lundiMatin),
		posteSignup(4, 10, AnimationPoste, lundiMatin),
	}
	zones = []Inscription{
		zoneSignup(5, 10, "Antigone-Sud 4", "1", "ZoneTest1a", lundiMatin),
		zoneSignup(6, 10, "Antigone-Sud 4", "2", "ZoneTest1b", lundiMatin),
		zoneSignup(7, 10, "Antigone-Sud 4", "3", "ZoneTest1c", lundiMatin),
	}
	return postes, zones
}

func remove(rows []Inscription, deleted []uint) []Inscription {
	gone := make(map[uint]bool, len(deleted))
	for _, id := range deleted {
		gone[id] = true
	}
	var out []Inscription
	for _, r := range rows {
		if !gone[r.ID] {
			out = append(out, r)
		}
	}
	return out
}

func TestResolveFlexibles_KeepAnimation(t *testing.T) {
	postes, zones := flexibleFixture()

	res := ResolveFlexibles(postes, zones, fixedPicker(3), true)

	require.Len(t, res.PosteDeleted, 3)
	for _, s := range res.PosteDeleted {
		assert.NotEqual(t, AnimationPoste, s.Poste())
	}
	assert.Empty(t, res.ZoneCascadeDeleted)
	assert.Len(t, res.ZoneDeleted, 2)
}

func TestResolveFlexibles_CascadeOnAnimationLoss(t *testing.T) {
	postes, zones := flexibleFixture()

	res := ResolveFlexibles(postes, zones, fixedPicker(0), true)

	require.Len(t, res.PosteDeleted, 3)
	assert.Len(t, res.ZoneCascadeDeleted, 3)
	assert.Empty(t, res.ZoneDeleted)
}

func TestResolveFlexibles_PosteOnlyStillCascades(t *testing.T) {
	postes, zones := flexibleFixture()

	res := ResolveFlexibles(postes, zones, fixedPicker(1), false)

	assert.Len(t, res.PosteDeleted, 3)
	assert.Len(t, res.ZoneCascadeDeleted, 3)
	assert.Empty(t, res.ZoneDeleted)
}

func TestResolveFlexibles_CascadeIsSlotScoped(t *testing.T) {
	postes, zones := flexibleFixture()
	zones = append(zones, zoneSignup(8, 10, "Antigone-Sud 4", "1", "ZoneTest1a", lundiMidi))

	res := ResolveFlexibles(postes, zones, fixedPicker(0), true)

	for _, s := range res.ZoneCascadeDeleted {
		assert.Equal(t, lundiMatin, s.Slot)
	}
	assert.NotContains(t, res.IDs(), uint(8))
}

func TestResolveFlexibles_ConvergesAndIsIdempotent(t *testing.T) {
	for seed := int64(0); seed < 50; seed++ {
		picker := seededPicker{r: rand.New(rand.NewSource(seed))}
		postes, zones := flexibleFixture()
		postes = append(postes,
			posteSignup(20, 11, "PosteTest1", lundiMatin),
			posteSignup(21, 11, "PosteTest1", lundiMidi),
			posteSignup(22, 11, AnimationPoste, lundiMidi),
		)
		zones = append(zones, zoneSignup(23, 11, "Esplanade-Est 1", "179", "", lundiMidi))

		res := ResolveFlexibles(postes, zones, picker, true)
		postes = remove(postes, res.IDs())
		zones = remove(zones, res.IDs())

		perSlot := map[UserSlot]int{}
		for _, s := range postes {
			perSlot[s.UserSlot()]++
		}
		for k, n := range perSlot {
			assert.Equal(t, 1, n, "poste-level rows for %+v", k)
		}
		zonePerSlot := map[UserSlot]int{}
		for _, s := range zones {
			zonePerSlot[s.UserSlot()]++
		}
		for k, n := range zonePerSlot {
			assert.LessOrEqual(t, n, 1, "zone-level rows for %+v", k)
		}

		again := ResolveFlexibles(postes, zones, picker, true)
		assert.Empty(t, again.IDs(), "seed %d", seed)
	}
}

func TestResolveFlexibles_ZoneIdentityIsNameSensitive(t *testing.T) {
	// Same zone key under two names counts as two candidates.
	zones := []Inscription{
		zoneSignup(1, 10, "Z", "5", "Old", lundiMatin),
		zoneSignup(2, 10, "Z", "5", "New", lundiMatin),
	}

	res := ResolveFlexibles(nil, zones, fixedPicker(0), true)

	require.Len(t, res.ZoneDeleted, 1)
	assert.Equal(t, uint(2), res.ZoneDeleted[0].ID)
}

func TestResolveFlexibles_NoConflict(t *testing.T) {
	postes := []Inscription{
		posteSignup(1, 10, "PosteTest1", lundiMatin),
		posteSignup(2, 10, "PosteTest1", lundiMidi),
		posteSignup(3, 11, "PosteTest1", lundiMatin),
	}

	res := ResolveFlexibles(postes, nil, RandomPicker{}, true)

	assert.Empty(t, res.IDs())
}

func TestRandomPicker_InRange(t *testing.T) {
	for i := 0; i < 100; i++ {
		n := RandomPicker{}.Pick(3)
		assert.GreaterOrEqual(t, n, 0)
		assert.Less(t, n, 3)
	}
}
