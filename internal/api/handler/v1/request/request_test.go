package request

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-benevoles/api/internal/domain"
)

func validSignup() SignupRequest {
	return SignupRequest{
		Username:        "camille",
		Email:           "camille@example.org",
		Password:        "jeux2024",
		ConfirmPassword: "jeux2024",
		Nom:             "Martin",
		Prenom:          "Camille",
	}
}

func TestSignupRequest_Validate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SignupRequest)
		wantErr error
	}{
		{name: "valid", mutate: func(*SignupRequest) {}},
		{name: "no digit", mutate: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "jeuxjeux", "jeuxjeux" }, wantErr: errInvalidPassword},
		{name: "too short", mutate: func(r *SignupRequest) { r.Password, r.ConfirmPassword = "jeu1", "jeu1" }, wantErr: errInvalidPassword},
		{name: "mismatch", mutate: func(r *SignupRequest) { r.ConfirmPassword = "jeux2025" }, wantErr: errConfirmPasswordMismatch},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validSignup()
			tt.mutate(&req)

			err := req.Validate()
			if tt.wantErr == nil {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	t.Run("bad email", func(t *testing.T) {
		req := validSignup()
		req.Email = "not-an-email"
		assert.Error(t, req.Validate())
	})
}

func TestCreatePosteRequest_RejectsAnimation(t *testing.T) {
	req := CreatePosteRequest{Name: domain.AnimationPoste}
	assert.Error(t, req.Validate())

	req.Name = "Buvette"
	assert.NoError(t, req.Validate())
}

func TestBatchRequest(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		req := BatchRequest{}
		assert.ErrorIs(t, req.Validate(), errEmptyBatch)
	})

	t.Run("zone item needs its id", func(t *testing.T) {
		req := BatchRequest{Signups: []BatchItem{{
			SlotRequest: SlotRequest{Jour: "Lundi", Creneau: "10h-12h"},
			ZonePlan:    "Plan A",
		}}}
		assert.Error(t, req.Validate())
	})

	t.Run("poste and zone items", func(t *testing.T) {
		slot := SlotRequest{Jour: "Lundi", Creneau: "10h-12h"}
		req := BatchRequest{
			Signups: []BatchItem{
				{SlotRequest: slot, Poste: "Buvette"},
				{SlotRequest: slot, ZonePlan: "Plan A", ZoneBenevoleID: "3", ZoneBenevoleName: "Jeux de cartes"},
			},
			Withdrawals: []BatchItem{{SlotRequest: slot, Poste: "Accueil"}},
		}
		require.NoError(t, req.Validate())

		signups, withdrawals := req.Inscriptions(4, 9)
		require.Len(t, signups, 2)
		require.Len(t, withdrawals, 1)

		assert.True(t, signups[0].IsPoste())
		assert.Equal(t, "Buvette", signups[0].Poste())

		zone, ok := signups[1].Zone()
		require.True(t, ok)
		assert.Equal(t, domain.AnimationPoste, signups[1].Poste())
		assert.Equal(t, domain.Zone{Plan: "Plan A", ID: "3", Name: "Jeux de cartes"}, zone)
		assert.Equal(t, uint(4), signups[1].UserID)
		assert.Equal(t, uint(9), signups[1].FestivalID)
	})
}
