package domain

import (
	"slices"
	"time"
)

const (
	RoleUser     = "User"
	RoleReferent = "Referent"
	RoleAdmin    = "Admin"
)

type User struct {
	ID          uint      `json:"user_id"`
	Username    string    `json:"username"`
	Email       string    `json:"email"`
	Password    string    `json:"-"`
	Telephone   string    `json:"telephone"`
	Nom         string    `json:"nom"`
	Prenom      string    `json:"prenom"`
	Tshirt      string    `json:"tshirt"`
	Vegan       bool      `json:"vegan"`
	Hebergement string    `json:"hebergement"`
	Association string    `json:"association"`
	Disabled    bool      `json:"disabled"`
	Roles       []string  `json:"roles"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (u User) HasRole(role string) bool {
	return slices.Contains(u.Roles, role)
}

func (u User) IsAdmin() bool {
	return u.HasRole(RoleAdmin)
}

// SenderRole is the label stamped on messages: Admin wins over Referent, which wins over User.
func (u User) SenderRole() string {
	switch {
	case u.HasRole(RoleAdmin):
		return RoleAdmin
	case u.HasRole(RoleReferent):
		return RoleReferent
	default:
		return RoleUser
	}
}

type UserUpdate struct {
	Username    string
	Email       string
	Telephone   string
	Nom         string
	Prenom      string
	Tshirt      string
	Vegan       bool
	Hebergement string
	Association string
}
