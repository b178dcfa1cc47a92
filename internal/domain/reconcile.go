package domain

import "sort"

// ZoneRename refreshes the stored name of the listed sign-ups.
type ZoneRename struct {
	Key  ZoneKey
	Name string
	IDs  []uint
}

type ReconciliationPlan struct {
	Retained int
	Renames  []ZoneRename
	Deletes  []uint
}

func (p ReconciliationPlan) Renamed() int {
	n := 0
	for _, r := range p.Renames {
		n += len(r.IDs)
	}
	return n
}

type inscriptionIdentity struct {
	UserID     uint
	FestivalID uint
	Poste      string
	Zone       Zone
	Slot       Slot
}

// PlanReconciliation decides what happens to existing zone-level Animation sign-ups
// once the catalog has been replaced. catalog maps every zone key of the new catalog
// to its current name. Poste-level sign-ups and other postes are left alone.
//
// A sign-up whose key is still in the catalog is kept and renamed if needed. Any other
// sign-up is deleted. A rename that would make a sign-up identical to another one
// deletes it instead.
func PlanReconciliation(signups []Inscription, catalog map[ZoneKey]string) ReconciliationPlan {
	rows := make([]Inscription, 0, len(signups))
	for _, s := range signups {
		if _, ok := s.Zone(); ok && s.Poste() == AnimationPoste {
			rows = append(rows, s)
		}
	}
	// Rows that already carry the right name are processed first so they survive a collision.
	sort.SliceStable(rows, func(i, j int) bool {
		ui, uj := upToDate(rows[i], catalog), upToDate(rows[j], catalog)
		if ui != uj {
			return ui
		}
		return rows[i].ID < rows[j].ID
	})

	var plan ReconciliationPlan
	seen := make(map[inscriptionIdentity]struct{}, len(rows))
	renames := make(map[Zone][]uint)

	for _, s := range rows {
		zone, _ := s.Zone()
		name, ok := catalog[zone.Key()]
		if !ok {
			plan.Deletes = append(plan.Deletes, s.ID)
			continue
		}

		target := Zone{Plan: zone.Plan, ID: zone.ID, Name: name}
		id := inscriptionIdentity{UserID: s.UserID, FestivalID: s.FestivalID, Poste: s.Poste(), Zone: target, Slot: s.Slot}
		if _, dup := seen[id]; dup {
			plan.Deletes = append(plan.Deletes, s.ID)
			continue
		}
		seen[id] = struct{}{}
		plan.Retained++

		if zone.Name != name {
			renames[target] = append(renames[target], s.ID)
		}
	}

	for zone, ids := range renames {
		plan.Renames = append(plan.Renames, ZoneRename{Key: zone.Key(), Name: zone.Name, IDs: ids})
	}
	sort.Slice(plan.Renames, func(i, j int) bool {
		a, b := plan.Renames[i].Key, plan.Renames[j].Key
		if a.Plan != b.Plan {
			return a.Plan < b.Plan
		}
		return a.ID < b.ID
	})
	sort.Slice(plan.Deletes, func(i, j int) bool { return plan.Deletes[i] < plan.Deletes[j] })

	return plan
}

func upToDate(s Inscription, catalog map[ZoneKey]string) bool {
	zone, _ := s.Zone()
	name, ok := catalog[zone.Key()]
	return ok && name == zone.Name
}
