package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrReferentNotFound = errors.New("referent not found")

type Referent struct {
	ID         uint `gorm:"primaryKey"`
	UserID     uint `gorm:"not null;uniqueIndex:idx_referents_identity"`
	PosteID    uint `gorm:"not null;uniqueIndex:idx_referents_identity"`
	FestivalID uint `gorm:"not null;uniqueIndex:idx_referents_identity;index"`
}

type ReferentUser struct {
	UserID   uint
	Username string
	Email    string
}

// PosteVolunteer is one sign-up row under a poste the referent is in charge of.
type PosteVolunteer struct {
	PosteID  uint
	Poste    string
	UserID   uint
	Username string
	Jour     string
	Creneau  string
}

type ReferentDAO struct {
	db *gorm.DB
}

func NewReferentDAO(db *gorm.DB) *ReferentDAO {
	return &ReferentDAO{
		db: db,
	}
}

// Assign makes the user a referent of the poste and grants the Referent role.
func (d *ReferentDAO) Assign(ctx context.Context, userID, posteID uint) (Referent, error) {
	var referent Referent

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poste Poste
		if err := tx.First(&poste, posteID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPosteNotFound
			}
			return err
		}
		if err := tx.First(&User{}, userID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrUserNotFound
			}
			return err
		}

		referent = Referent{UserID: userID, PosteID: posteID, FestivalID: poste.FestivalID}
		if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&referent).Error; err != nil {
			return err
		}

		return grantRole(tx, userID, roleReferent)
	})
	if err != nil {
		return Referent{}, err
	}

	return referent, nil
}

// Unassign removes the referent row and revokes the role once the user has none left.
func (d *ReferentDAO) Unassign(ctx context.Context, userID, posteID uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Where("user_id = ? AND poste_id = ?", userID, posteID).Delete(&Referent{})
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrReferentNotFound
		}

		return revokeOrphanReferents(tx)
	})
}

func (d *ReferentDAO) FindByPoste(ctx context.Context, posteID uint) ([]ReferentUser, error) {
	var users []ReferentUser

	result := d.db.WithContext(ctx).
		Table("referents").
		Select("users.id AS user_id, users.username, users.email").
		Joins("JOIN users ON users.id = referents.user_id").
		Where("referents.poste_id = ?", posteID).
		Order("users.username").
		Scan(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *ReferentDAO) FindPostesByUser(ctx context.Context, userID, festivalID uint) ([]Poste, error) {
	var postes []Poste

	result := d.db.WithContext(ctx).
		Joins("JOIN referents ON referents.poste_id = postes.id").
		Where("referents.user_id = ? AND referents.festival_id = ?", userID, festivalID).
		Order("postes.id").
		Find(&postes)
	if result.Error != nil {
		return nil, result.Error
	}

	return postes, nil
}

// FindVolunteers lists the active poste-level sign-ups under every poste the user is referent of.
func (d *ReferentDAO) FindVolunteers(ctx context.Context, userID, festivalID uint) ([]PosteVolunteer, error) {
	var rows []PosteVolunteer

	result := d.db.WithContext(ctx).
		Table("referents").
		Select(`postes.id AS poste_id, postes.name AS poste, users.id AS user_id, users.username,
			inscriptions.jour, inscriptions.creneau`).
		Joins("JOIN postes ON postes.id = referents.poste_id").
		Joins(`JOIN inscriptions ON inscriptions.festival_id = referents.festival_id
			AND inscriptions.poste = postes.name AND inscriptions.is_poste AND inscriptions.is_active`).
		Joins("JOIN users ON users.id = inscriptions.user_id").
		Where("referents.user_id = ? AND referents.festival_id = ?", userID, festivalID).
		Order("postes.id, inscriptions.jour, inscriptions.creneau, users.username").
		Scan(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// revokeOrphanReferents drops the Referent role from users that no longer referee any poste.
func revokeOrphanReferents(tx *gorm.DB) error {
	return tx.Exec(`DELETE FROM user_roles
		WHERE role_id = (SELECT id FROM roles WHERE name = ?)
		AND NOT EXISTS (SELECT 1 FROM referents WHERE referents.user_id = user_roles.user_id)`, roleReferent).Error
}
