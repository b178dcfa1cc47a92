package domain

import "slices"

// DefaultZoneCapacity applies to zones, which have no configured maximum.
const DefaultZoneCapacity = 2

type SlotOccupancy struct {
	Slot
	Count   int    `json:"nb_inscriptions"`
	UserIDs []uint `json:"user_ids"`
}

func (o SlotOccupancy) Registered(userID uint) bool {
	return slices.Contains(o.UserIDs, userID)
}

type PosteOccupancy struct {
	PosteID  uint            `json:"poste_id"`
	Poste    string          `json:"poste"`
	Capacity int             `json:"max_capacity"`
	Slots    []SlotOccupancy `json:"slots"`
}

type ZoneOccupancy struct {
	Zone
	Capacity int             `json:"max_capacity"`
	Slots    []SlotOccupancy `json:"slots"`
}

type slotUsers map[Slot][]uint

func (s slotUsers) add(slot Slot, userID uint) {
	if !slices.Contains(s[slot], userID) {
		s[slot] = append(s[slot], userID)
	}
}

func (s slotUsers) cells(schedule Schedule) []SlotOccupancy {
	cells := make([]SlotOccupancy, 0, len(schedule.Jours)*len(schedule.Creneaux))
	for _, slot := range schedule.Slots() {
		users := s[slot]
		if users == nil {
			users = []uint{}
		}
		cells = append(cells, SlotOccupancy{Slot: slot, Count: len(users), UserIDs: users})
	}
	return cells
}

// BuildPosteOccupancy returns one cell per poste × jour × créneau, empty cells included.
func BuildPosteOccupancy(schedule Schedule, postes []Poste, signups []Inscription) []PosteOccupancy {
	byPoste := make(map[string]slotUsers, len(postes))
	for _, p := range postes {
		byPoste[p.Name] = slotUsers{}
	}
	for _, s := range signups {
		if !s.IsPoste() {
			continue
		}
		if users, ok := byPoste[s.Poste()]; ok {
			users.add(s.Slot, s.UserID)
		}
	}

	out := make([]PosteOccupancy, 0, len(postes))
	for _, p := range postes {
		out = append(out, PosteOccupancy{
			PosteID:  p.ID,
			Poste:    p.Name,
			Capacity: p.MaxCapacity,
			Slots:    byPoste[p.Name].cells(schedule),
		})
	}
	return out
}

// BuildZoneOccupancy returns one cell per animatable zone × jour × créneau. Sign-ups
// are matched on the zone key so a pending rename still counts. Capacity is
// DefaultZoneCapacity, or the busiest cell of the zone when that is higher.
// A zone listed under several names appears once, under its first name.
func BuildZoneOccupancy(schedule Schedule, zones []Zone, signups []Inscription) []ZoneOccupancy {
	byZone := make(map[ZoneKey]slotUsers, len(zones))
	unique := make([]Zone, 0, len(zones))
	for _, z := range zones {
		if _, seen := byZone[z.Key()]; seen {
			continue
		}
		byZone[z.Key()] = slotUsers{}
		unique = append(unique, z)
	}
	for _, s := range signups {
		z, ok := s.Zone()
		if !ok {
			continue
		}
		if users, ok := byZone[z.Key()]; ok {
			users.add(s.Slot, s.UserID)
		}
	}

	out := make([]ZoneOccupancy, 0, len(unique))
	for _, z := range unique {
		cells := byZone[z.Key()].cells(schedule)
		capacity := DefaultZoneCapacity
		for _, c := range cells {
			if c.Count > capacity {
				capacity = c.Count
			}
		}
		out = append(out, ZoneOccupancy{Zone: z, Capacity: capacity, Slots: cells})
	}
	return out
}
