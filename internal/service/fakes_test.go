package service

import (
	"context"

	"github.com/festival-benevoles/api/internal/domain"
)

var testSchedule = domain.Schedule{
	Jours:    []string{"Lundi", "Mardi"},
	Creneaux: []string{"10h-12h", "12h-14h"},
}

type fakeFestivals struct {
	active domain.Festival
	err    error
}

func (f fakeFestivals) Active(context.Context) (domain.Festival, error) {
	return f.active, f.err
}

// memInscriptions is an in-memory sign-up store with the same duplicate and cascade rules as the database.
type memInscriptions struct {
	rows   []domain.Inscription
	nextID uint
}

func sameIdentity(a, b domain.Inscription) bool {
	return a.UserID == b.UserID && a.FestivalID == b.FestivalID && a.Commitment == b.Commitment && a.Slot == b.Slot
}

func (m *memInscriptions) Apply(_ context.Context, festivalID uint, inserts, withdrawals []domain.Inscription) (int64, int64, error) {
	var inserted, deleted int64
	for _, w := range withdrawals {
		w.FestivalID = festivalID
		kept := m.rows[:0]
		for _, r := range m.rows {
			cascade := w.IsPoste() && w.Poste() == domain.AnimationPoste &&
				!r.IsPoste() && r.UserSlot() == w.UserSlot() && r.FestivalID == festivalID
			if sameIdentity(r, w) || cascade {
				deleted++
				continue
			}
			kept = append(kept, r)
		}
		m.rows = kept
	}

next:
	for _, s := range inserts {
		s.FestivalID = festivalID
		s.IsActive = true
		for _, r := range m.rows {
			if sameIdentity(r, s) {
				continue next
			}
		}
		m.nextID++
		s.ID = m.nextID
		m.rows = append(m.rows, s)
		inserted++
	}

	return inserted, deleted, nil
}

func (m *memInscriptions) FindActive(_ context.Context, festivalID uint) ([]domain.Inscription, error) {
	var out []domain.Inscription
	for _, r := range m.rows {
		if r.FestivalID == festivalID && r.IsActive {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memInscriptions) FindByUser(_ context.Context, userID, festivalID uint) ([]domain.Inscription, error) {
	var out []domain.Inscription
	for _, r := range m.rows {
		if r.FestivalID == festivalID && r.UserID == userID {
			out = append(out, r)
		}
	}
	return out, nil
}

func (m *memInscriptions) FindUserIDsByPoste(_ context.Context, festivalID uint, poste string) ([]uint, error) {
	seen := map[uint]bool{}
	var out []uint
	for _, r := range m.rows {
		if r.FestivalID == festivalID && r.Poste() == poste && !seen[r.UserID] {
			seen[r.UserID] = true
			out = append(out, r.UserID)
		}
	}
	return out, nil
}

func (m *memInscriptions) Resolve(
	ctx context.Context,
	festivalID uint,
	resolve func(postes, zones []domain.Inscription) domain.Resolution,
) (domain.Resolution, error) {
	active, _ := m.FindActive(ctx, festivalID)
	var postes, zones []domain.Inscription
	for _, r := range active {
		if r.IsPoste() {
			postes = append(postes, r)
		} else {
			zones = append(zones, r)
		}
	}

	res := resolve(postes, zones)
	gone := map[uint]bool{}
	for _, id := range res.IDs() {
		gone[id] = true
	}
	kept := m.rows[:0]
	for _, r := range m.rows {
		if !gone[r.ID] {
			kept = append(kept, r)
		}
	}
	m.rows = kept

	return res, nil
}

type fakePostes struct {
	postes []domain.Poste
}

func (f fakePostes) FindByFestival(_ context.Context, festivalID uint) ([]domain.PosteWithReferents, error) {
	var out []domain.PosteWithReferents
	for _, p := range f.postes {
		if p.FestivalID == festivalID {
			out = append(out, domain.PosteWithReferents{Poste: p})
		}
	}
	return out, nil
}

func (f fakePostes) FindByName(_ context.Context, festivalID uint, name string) (domain.Poste, error) {
	for _, p := range f.postes {
		if p.FestivalID == festivalID && p.Name == name {
			return p, nil
		}
	}
	return domain.Poste{}, ErrPosteNotFound
}

func (f fakePostes) FindByID(_ context.Context, id uint) (domain.Poste, error) {
	for _, p := range f.postes {
		if p.ID == id {
			return p, nil
		}
	}
	return domain.Poste{}, ErrPosteNotFound
}

type fakeZones []domain.Zone

func (f fakeZones) FindAnimatableZones(context.Context, uint) ([]domain.Zone, error) {
	return f, nil
}

type firstPicker struct{}

func (firstPicker) Pick(int) int { return 0 }
