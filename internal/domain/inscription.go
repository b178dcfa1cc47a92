package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"slices"
)

var (
	ErrUnknownJour    = errors.New("unknown jour")
	ErrUnknownCreneau = errors.New("unknown creneau")
)

// Slot is one schedule cell: a day and a time window.
type Slot struct {
	Jour    string `json:"jour"`
	Creneau string `json:"creneau"`
}

// Schedule is the fixed, ordered enumeration of jours and créneaux.
type Schedule struct {
	Jours    []string
	Creneaux []string
}

func (s Schedule) Validate(slot Slot) error {
	if !slices.Contains(s.Jours, slot.Jour) {
		return fmt.Errorf("%w: %q", ErrUnknownJour, slot.Jour)
	}
	if !slices.Contains(s.Creneaux, slot.Creneau) {
		return fmt.Errorf("%w: %q", ErrUnknownCreneau, slot.Creneau)
	}

	return nil
}

// Slots returns the cartesian product of jours and créneaux, jours major.
func (s Schedule) Slots() []Slot {
	slots := make([]Slot, 0, len(s.Jours)*len(s.Creneaux))
	for _, jour := range s.Jours {
		for _, creneau := range s.Creneaux {
			slots = append(slots, Slot{Jour: jour, Creneau: creneau})
		}
	}

	return slots
}

// Commitment is what a sign-up commits a volunteer to: either a whole poste
// or one zone bénévole under a poste.
type Commitment interface {
	PosteName() string
	isCommitment()
}

type PosteCommitment struct {
	Poste string
}

func (c PosteCommitment) PosteName() string { return c.Poste }
func (PosteCommitment) isCommitment()       {}

type ZoneCommitment struct {
	Poste string
	Zone  Zone
}

func (c ZoneCommitment) PosteName() string { return c.Poste }
func (ZoneCommitment) isCommitment()       {}

// Inscription is one volunteer sign-up row.
type Inscription struct {
	ID         uint
	UserID     uint
	FestivalID uint
	Commitment Commitment
	Slot       Slot
	IsActive   bool
}

func (i Inscription) IsPoste() bool {
	_, ok := i.Commitment.(PosteCommitment)
	return ok
}

// Zone returns the zone of a zone-level sign-up.
func (i Inscription) Zone() (Zone, bool) {
	c, ok := i.Commitment.(ZoneCommitment)
	if !ok {
		return Zone{}, false
	}
	return c.Zone, true
}

func (i Inscription) Poste() string {
	if i.Commitment == nil {
		return ""
	}
	return i.Commitment.PosteName()
}

// UserSlot groups sign-ups of one user in one slot.
type UserSlot struct {
	UserID uint
	Slot   Slot
}

func (i Inscription) UserSlot() UserSlot {
	return UserSlot{UserID: i.UserID, Slot: i.Slot}
}

// InscriptionRecord is the flat wire shape of an Inscription.
type InscriptionRecord struct {
	ID               uint   `json:"inscription_id,omitempty"`
	UserID           uint   `json:"user_id"`
	FestivalID       uint   `json:"festival_id"`
	Poste            string `json:"poste"`
	IsPoste          bool   `json:"is_poste"`
	ZonePlan         string `json:"zone_plan,omitempty"`
	ZoneBenevoleID   string `json:"zone_benevole_id,omitempty"`
	ZoneBenevoleName string `json:"zone_benevole_name,omitempty"`
	Jour             string `json:"jour"`
	Creneau          string `json:"creneau"`
	IsActive         bool   `json:"is_active"`
}

func (i Inscription) Record() InscriptionRecord {
	r := InscriptionRecord{
		ID:         i.ID,
		UserID:     i.UserID,
		FestivalID: i.FestivalID,
		Poste:      i.Poste(),
		IsPoste:    i.IsPoste(),
		Jour:       i.Slot.Jour,
		Creneau:    i.Slot.Creneau,
		IsActive:   i.IsActive,
	}
	if z, ok := i.Zone(); ok {
		r.ZonePlan = z.Plan
		r.ZoneBenevoleID = z.ID
		r.ZoneBenevoleName = z.Name
	}

	return r
}

func (i Inscription) MarshalJSON() ([]byte, error) {
	return json.Marshal(i.Record())
}
