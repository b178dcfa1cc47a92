package domain

type Referent struct {
	UserID     uint `json:"user_id"`
	PosteID    uint `json:"poste_id"`
	FestivalID uint `json:"festival_id"`
}

type ReferentUser struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PosteVolunteer is one sign-up seen from the referent of its poste.
type PosteVolunteer struct {
	UserID   uint   `json:"user_id"`
	Username string `json:"username"`
	Jour     string `json:"jour"`
	Creneau  string `json:"creneau"`
}

type PosteVolunteers struct {
	PosteID      uint             `json:"poste_id"`
	Poste        string           `json:"poste"`
	Inscriptions []PosteVolunteer `json:"inscriptions"`
}
