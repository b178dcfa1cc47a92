package request

import (
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/festival-benevoles/api/internal/domain"
)

type UpdateUserRequest struct {
	Username    string `json:"username"`
	Email       string `json:"email"`
	Telephone   string `json:"telephone"`
	Nom         string `json:"nom"`
	Prenom      string `json:"prenom"`
	Tshirt      string `json:"tshirt"`
	Vegan       bool   `json:"vegan"`
	Hebergement string `json:"hebergement"`
	Association string `json:"association"`
}

func (req *UpdateUserRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(2, 64)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Nom, validation.Required),
		validation.Field(&req.Prenom, validation.Required),
		validation.Field(&req.Telephone, validation.Length(0, 32)),
	)
}

func (req *UpdateUserRequest) ToUpdate() domain.UserUpdate {
	return domain.UserUpdate{
		Username:    req.Username,
		Email:       req.Email,
		Telephone:   req.Telephone,
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Tshirt:      req.Tshirt,
		Vegan:       req.Vegan,
		Hebergement: req.Hebergement,
		Association: req.Association,
	}
}

type ChangePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
	ConfirmPassword string `json:"confirm_password"`
}

func (req *ChangePasswordRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.CurrentPassword, validation.Required),
		validation.Field(&req.NewPassword, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.NewPassword, req.ConfirmPassword)
}
