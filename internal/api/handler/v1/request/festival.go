package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/festival-benevoles/api/internal/domain"
)

var errReservedPoste = errors.New("the Animation poste is created with the festival")

func notAnimation(value interface{}) error {
	if name, _ := value.(string); name == domain.AnimationPoste {
		return errReservedPoste
	}
	return nil
}

type CreateFestivalRequest struct {
	Name        string `json:"festival_name"`
	Description string `json:"festival_description"`
}

func (req *CreateFestivalRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255)),
	)
}

func (req *CreateFestivalRequest) ToFestival() domain.Festival {
	return domain.Festival{
		Name:        req.Name,
		Description: req.Description,
	}
}

type CreatePosteRequest struct {
	Name        string `json:"poste"`
	Description string `json:"description_poste"`
	MaxCapacity int    `json:"max_capacity"`
}

func (req *CreatePosteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Name, validation.Required, validation.Length(1, 255), validation.By(notAnimation)),
		validation.Field(&req.MaxCapacity, validation.Min(0)),
	)
}

func (req *CreatePosteRequest) ToPoste(festivalID uint) domain.Poste {
	return domain.Poste{
		FestivalID:  festivalID,
		Name:        req.Name,
		Description: req.Description,
		MaxCapacity: req.MaxCapacity,
	}
}

type UpdatePosteRequest struct {
	Description string `json:"description_poste"`
	MaxCapacity int    `json:"max_capacity"`
}

func (req *UpdatePosteRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.MaxCapacity, validation.Min(0)),
	)
}
