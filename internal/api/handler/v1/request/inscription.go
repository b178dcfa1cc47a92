package request

import (
	"errors"

	validation "github.com/go-ozzo/ozzo-validation"

	"github.com/festival-benevoles/api/internal/domain"
)

var errEmptyBatch = errors.New("the batch holds no sign-up and no withdrawal")

type SlotRequest struct {
	Jour    string `json:"jour"`
	Creneau string `json:"creneau"`
}

func (req SlotRequest) Slot() domain.Slot {
	return domain.Slot{Jour: req.Jour, Creneau: req.Creneau}
}

type PosteSignupRequest struct {
	SlotRequest
	Poste string `json:"poste"`
}

func (req *PosteSignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.Poste, validation.Required),
		validation.Field(&req.Jour, validation.Required),
		validation.Field(&req.Creneau, validation.Required),
	)
}

type ZoneSignupRequest struct {
	SlotRequest
	ZonePlan         string `json:"zone_plan"`
	ZoneBenevoleID   string `json:"zone_benevole_id"`
	ZoneBenevoleName string `json:"zone_benevole_name"`
}

func (req *ZoneSignupRequest) Validate() error {
	return validation.ValidateStruct(
		req,
		validation.Field(&req.ZonePlan, validation.Required),
		validation.Field(&req.ZoneBenevoleID, validation.Required),
		validation.Field(&req.Jour, validation.Required),
		validation.Field(&req.Creneau, validation.Required),
	)
}

func (req *ZoneSignupRequest) Zone() domain.Zone {
	return domain.Zone{Plan: req.ZonePlan, ID: req.ZoneBenevoleID, Name: req.ZoneBenevoleName}
}

// BatchItem is a poste-level entry when the zone fields are empty, a zone-level one otherwise.
type BatchItem struct {
	SlotRequest
	Poste            string `json:"poste"`
	ZonePlan         string `json:"zone_plan,omitempty"`
	ZoneBenevoleID   string `json:"zone_benevole_id,omitempty"`
	ZoneBenevoleName string `json:"zone_benevole_name,omitempty"`
}

func (item BatchItem) isZone() bool {
	return item.ZonePlan != "" || item.ZoneBenevoleID != ""
}

func (item BatchItem) Validate() error {
	var posteRules, zoneRules []validation.Rule
	if item.isZone() {
		zoneRules = append(zoneRules, validation.Required)
	} else {
		posteRules = append(posteRules, validation.Required)
	}

	return validation.ValidateStruct(
		&item,
		validation.Field(&item.Poste, posteRules...),
		validation.Field(&item.ZonePlan, zoneRules...),
		validation.Field(&item.ZoneBenevoleID, zoneRules...),
		validation.Field(&item.Jour, validation.Required),
		validation.Field(&item.Creneau, validation.Required),
	)
}

func (item BatchItem) ToInscription(userID, festivalID uint) domain.Inscription {
	var commitment domain.Commitment = domain.PosteCommitment{Poste: item.Poste}
	if item.isZone() {
		poste := item.Poste
		if poste == "" {
			poste = domain.AnimationPoste
		}
		commitment = domain.ZoneCommitment{
			Poste: poste,
			Zone:  domain.Zone{Plan: item.ZonePlan, ID: item.ZoneBenevoleID, Name: item.ZoneBenevoleName},
		}
	}

	return domain.Inscription{
		UserID:     userID,
		FestivalID: festivalID,
		Commitment: commitment,
		Slot:       item.Slot(),
	}
}

type BatchRequest struct {
	Signups     []BatchItem `json:"signups"`
	Withdrawals []BatchItem `json:"withdrawals"`
}

func (req *BatchRequest) Validate() error {
	if len(req.Signups) == 0 && len(req.Withdrawals) == 0 {
		return errEmptyBatch
	}

	return validation.ValidateStruct(
		req,
		validation.Field(&req.Signups),
		validation.Field(&req.Withdrawals),
	)
}

func (req *BatchRequest) Inscriptions(userID, festivalID uint) (signups, withdrawals []domain.Inscription) {
	for _, item := range req.Signups {
		signups = append(signups, item.ToInscription(userID, festivalID))
	}
	for _, item := range req.Withdrawals {
		withdrawals = append(withdrawals, item.ToInscription(userID, festivalID))
	}

	return signups, withdrawals
}
