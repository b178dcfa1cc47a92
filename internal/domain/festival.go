package domain

import "time"

// AnimationPoste is the reserved poste under which every zone-level sign-up lives.
const AnimationPoste = "Animation"

type Festival struct {
	ID          uint      `json:"festival_id"`
	Name        string    `json:"festival_name"`
	Description string    `json:"festival_description"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type Poste struct {
	ID          uint   `json:"poste_id"`
	FestivalID  uint   `json:"festival_id"`
	Name        string `json:"poste"`
	Description string `json:"description_poste"`
	MaxCapacity int    `json:"max_capacity"`
	IsActive    bool   `json:"is_active"`
}

func (p Poste) IsAnimation() bool {
	return p.Name == AnimationPoste
}

type PosteWithReferents struct {
	Poste
	ReferentIDs       []uint   `json:"user_ids"`
	ReferentUsernames []string `json:"usernames"`
}
