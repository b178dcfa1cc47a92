package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var ErrInscriptionNotFound = errors.New("inscription not found")

// Inscription is one sign-up. Poste-level rows leave the zone columns empty.
type Inscription struct {
	ID               uint   `gorm:"primaryKey"`
	UserID           uint   `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	FestivalID       uint   `gorm:"not null;uniqueIndex:idx_inscriptions_identity;index"`
	Poste            string `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	ZonePlan         string `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	ZoneBenevoleID   string `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	ZoneBenevoleName string `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	Jour             string `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	Creneau          string `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	IsPoste          bool   `gorm:"not null;uniqueIndex:idx_inscriptions_identity"`
	IsActive         bool   `gorm:"not null"`
	CreatedAt        time.Time
}

// Resolver picks the ids to delete among the active sign-ups of a festival.
type Resolver func(signups []Inscription) ([]uint, error)

type InscriptionDAO struct {
	db *gorm.DB
}

func NewInscriptionDAO(db *gorm.DB) *InscriptionDAO {
	return &InscriptionDAO{
		db: db,
	}
}

// Apply inserts and withdraws sign-ups of one festival in a single transaction.
// Duplicate inserts are ignored. Withdrawing a poste-level Animation sign-up also
// withdraws the user's zone-level sign-ups in that slot. It returns how many rows
// were inserted and deleted.
func (d *InscriptionDAO) Apply(ctx context.Context, festivalID uint, inserts, withdrawals []Inscription) (int64, int64, error) {
	var inserted, deleted int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var festival Festival
		if err := tx.First(&festival, festivalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFestivalNotFound
			}
			return err
		}

		for _, w := range withdrawals {
			n, err := withdraw(tx, festivalID, w)
			if err != nil {
				return err
			}
			deleted += n
		}

		for _, row := range inserts {
			row.ID = 0
			row.FestivalID = festivalID
			row.IsActive = festival.IsActive

			result := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&row)
			if result.Error != nil {
				return result.Error
			}
			inserted += result.RowsAffected
		}

		return nil
	})
	if err != nil {
		return 0, 0, err
	}

	return inserted, deleted, nil
}

func withdraw(tx *gorm.DB, festivalID uint, w Inscription) (int64, error) {
	result := tx.Where(`user_id = ? AND festival_id = ? AND poste = ? AND is_poste = ?
		AND zone_plan = ? AND zone_benevole_id = ? AND zone_benevole_name = ?
		AND jour = ? AND creneau = ?`,
		w.UserID, festivalID, w.Poste, w.IsPoste,
		w.ZonePlan, w.ZoneBenevoleID, w.ZoneBenevoleName,
		w.Jour, w.Creneau).
		Delete(&Inscription{})
	if result.Error != nil {
		return 0, result.Error
	}
	deleted := result.RowsAffected

	if w.IsPoste && w.Poste == animationPoste {
		n, err := cascadeZones(tx, festivalID, w)
		if err != nil {
			return 0, err
		}
		deleted += n
	}

	return deleted, nil
}

// cascadeZones deletes the zone-level Animation sign-ups sharing user and slot with r.
func cascadeZones(tx *gorm.DB, festivalID uint, r Inscription) (int64, error) {
	result := tx.Where("user_id = ? AND festival_id = ? AND poste = ? AND NOT is_poste AND jour = ? AND creneau = ?",
		r.UserID, festivalID, animationPoste, r.Jour, r.Creneau).
		Delete(&Inscription{})

	return result.RowsAffected, result.Error
}

func (d *InscriptionDAO) FindActive(ctx context.Context, festivalID uint) ([]Inscription, error) {
	var rows []Inscription

	result := d.db.WithContext(ctx).Where("festival_id = ? AND is_active", festivalID).Order("id").Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

func (d *InscriptionDAO) FindByUser(ctx context.Context, userID, festivalID uint) ([]Inscription, error) {
	var rows []Inscription

	result := d.db.WithContext(ctx).
		Where("user_id = ? AND festival_id = ?", userID, festivalID).
		Order("jour, creneau, id").
		Find(&rows)
	if result.Error != nil {
		return nil, result.Error
	}

	return rows, nil
}

// FindUserIDsByPoste returns the distinct users signed up under the poste.
func (d *InscriptionDAO) FindUserIDsByPoste(ctx context.Context, festivalID uint, poste string) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).
		Model(&Inscription{}).
		Distinct().
		Where("festival_id = ? AND poste = ?", festivalID, poste).
		Order("user_id").
		Pluck("user_id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

// Resolve runs resolve over the active sign-ups of the festival and deletes what it
// returns, in one transaction under the festival batch lock.
func (d *InscriptionDAO) Resolve(ctx context.Context, festivalID uint, resolve Resolver) (int64, error) {
	var deleted int64

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := lockFestival(tx, festivalID); err != nil {
			return err
		}

		var rows []Inscription
		if err := tx.Where("festival_id = ? AND is_active", festivalID).Order("id").Find(&rows).Error; err != nil {
			return err
		}

		ids, err := resolve(rows)
		if err != nil {
			return err
		}
		if len(ids) == 0 {
			return nil
		}

		result := tx.Where("id IN ?", ids).Delete(&Inscription{})
		if result.Error != nil {
			return result.Error
		}
		deleted = result.RowsAffected

		return nil
	})
	if err != nil {
		return 0, err
	}

	return deleted, nil
}
