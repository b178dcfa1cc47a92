package request

import (
	"errors"

	"github.com/dlclark/regexp2"
	validation "github.com/go-ozzo/ozzo-validation"
	"github.com/go-ozzo/ozzo-validation/is"

	"github.com/festival-benevoles/api/internal/domain"
)

const (
	passwordRegexPattern = `^(?=.*[A-Za-z])(?=.*\d).{8,}$`
)

var (
	errInvalidPassword         = errors.New("the password must be at least 8 characters and contain 1 letter and 1 number")
	errConfirmPasswordMismatch = errors.New("confirm password doesn't match the password")

	passwordExp = regexp2.MustCompile(passwordRegexPattern, regexp2.None)
)

func validatePassword(password, confirm string) error {
	ok, err := passwordExp.MatchString(password)
	if err != nil || !ok {
		return errInvalidPassword
	}
	if password != confirm {
		return errConfirmPasswordMismatch
	}

	return nil
}

type SignupRequest struct {
	Username        string `json:"username"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Telephone       string `json:"telephone"`
	Nom             string `json:"nom"`
	Prenom          string `json:"prenom"`
	Tshirt          string `json:"tshirt"`
	Vegan           bool   `json:"vegan"`
	Hebergement     string `json:"hebergement"`
	Association     string `json:"association"`
}

func (req *SignupRequest) Validate() error {
	err := validation.ValidateStruct(
		req,
		validation.Field(&req.Username, validation.Required, validation.Length(2, 64)),
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
		validation.Field(&req.ConfirmPassword, validation.Required),
		validation.Field(&req.Nom, validation.Required),
		validation.Field(&req.Prenom, validation.Required),
		validation.Field(&req.Telephone, validation.Length(0, 32)),
	)
	if err != nil {
		return err
	}

	return validatePassword(req.Password, req.ConfirmPassword)
}

func (req *SignupRequest) ToUser() domain.User {
	return domain.User{
		Username:    req.Username,
		Email:       req.Email,
		Password:    req.Password,
		Telephone:   req.Telephone,
		Nom:         req.Nom,
		Prenom:      req.Prenom,
		Tshirt:      req.Tshirt,
		Vegan:       req.Vegan,
		Hebergement: req.Hebergement,
		Association: req.Association,
	}
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (req *LoginRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Email, validation.Required, is.Email),
		validation.Field(&req.Password, validation.Required),
	)
}
