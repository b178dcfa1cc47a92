package domain

import (
	"math/rand"
	"sort"
)

// Picker selects one index in [0, n) uniformly at random.
type Picker interface {
	Pick(n int) int
}

type RandomPicker struct{}

func (RandomPicker) Pick(n int) int {
	return rand.Intn(n)
}

// Resolution lists the sign-ups a flexible-resolution run removes.
type Resolution struct {
	PosteDeleted       []Inscription
	ZoneCascadeDeleted []Inscription
	ZoneDeleted        []Inscription
}

func (r Resolution) IDs() []uint {
	ids := make([]uint, 0, len(r.PosteDeleted)+len(r.ZoneCascadeDeleted)+len(r.ZoneDeleted))
	for _, group := range [][]Inscription{r.PosteDeleted, r.ZoneCascadeDeleted, r.ZoneDeleted} {
		for _, s := range group {
			ids = append(ids, s.ID)
		}
	}
	return ids
}

// ResolveFlexibles collapses over-commitment to one sign-up per user and slot.
//
// The poste-level pass always runs: one poste-level sign-up is kept per user and slot,
// and losing the Animation poste drops the user's zone-level sign-ups in that slot.
// When withZones is set, the zone-level pass then keeps one Animation zone per user and
// slot among what the poste-level pass left.
func ResolveFlexibles(postes, zones []Inscription, picker Picker, withZones bool) Resolution {
	var res Resolution

	cascade := make(map[UserSlot]struct{})
	for _, group := range partition(postes, func(s Inscription) bool { return s.IsPoste() }) {
		keep := picker.Pick(len(group))
		for i, s := range group {
			if i == keep {
				continue
			}
			res.PosteDeleted = append(res.PosteDeleted, s)
			if s.Poste() == AnimationPoste {
				cascade[s.UserSlot()] = struct{}{}
			}
		}
	}

	remaining := make([]Inscription, 0, len(zones))
	for _, s := range sortedByID(zones) {
		if s.IsPoste() {
			continue
		}
		if _, drop := cascade[s.UserSlot()]; drop {
			res.ZoneCascadeDeleted = append(res.ZoneCascadeDeleted, s)
			continue
		}
		remaining = append(remaining, s)
	}

	if !withZones {
		return res
	}

	isAnimationZone := func(s Inscription) bool { return !s.IsPoste() && s.Poste() == AnimationPoste }
	for _, group := range partition(remaining, isAnimationZone) {
		// Identity is the whole (poste, zone plan, zone id, zone name) tuple.
		tuples := make([]ZoneCommitment, 0, len(group))
		index := make(map[ZoneCommitment]struct{}, len(group))
		for _, s := range group {
			c := s.Commitment.(ZoneCommitment)
			if _, ok := index[c]; !ok {
				index[c] = struct{}{}
				tuples = append(tuples, c)
			}
		}
		if len(tuples) < 2 {
			continue
		}

		keep := tuples[picker.Pick(len(tuples))]
		for _, s := range group {
			if s.Commitment.(ZoneCommitment) != keep {
				res.ZoneDeleted = append(res.ZoneDeleted, s)
			}
		}
	}

	return res
}

// partition groups the matching sign-ups by user and slot, keeping only groups
// with more than one row. Groups and their rows come out in a stable order.
func partition(signups []Inscription, match func(Inscription) bool) [][]Inscription {
	groups := make(map[UserSlot][]Inscription)
	for _, s := range sortedByID(signups) {
		if !match(s) {
			continue
		}
		groups[s.UserSlot()] = append(groups[s.UserSlot()], s)
	}

	keys := make([]UserSlot, 0, len(groups))
	for k, g := range groups {
		if len(g) > 1 {
			keys = append(keys, k)
		}
	}
	sort.Slice(keys, func(i, j int) bool {
		a, b := keys[i], keys[j]
		if a.UserID != b.UserID {
			return a.UserID < b.UserID
		}
		if a.Slot.Jour != b.Slot.Jour {
			return a.Slot.Jour < b.Slot.Jour
		}
		return a.Slot.Creneau < b.Slot.Creneau
	})

	out := make([][]Inscription, 0, len(keys))
	for _, k := range keys {
		out = append(out, groups[k])
	}
	return out
}

func sortedByID(signups []Inscription) []Inscription {
	out := make([]Inscription, len(signups))
	copy(out, signups)
	sort.SliceStable(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}
