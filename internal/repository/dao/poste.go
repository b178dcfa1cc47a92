package dao

import (
	"context"
	"errors"
	"time"

	"github.com/lib/pq"
	"gorm.io/gorm"
)

var (
	ErrPosteNotFound   = errors.New("poste not found")
	ErrPosteNameExists = errors.New("poste already exists in this festival")
	ErrReservedPoste   = errors.New("the Animation poste cannot be deleted")
)

type Poste struct {
	ID          uint   `gorm:"primaryKey"`
	FestivalID  uint   `gorm:"not null;uniqueIndex:idx_postes_festival_name"`
	Name        string `gorm:"not null;uniqueIndex:idx_postes_festival_name"`
	Description string
	MaxCapacity int  `gorm:"not null"`
	IsActive    bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// PosteWithReferents is a poste row with its referents aggregated into arrays.
type PosteWithReferents struct {
	Poste
	ReferentIDs       pq.Int64Array  `gorm:"column:referent_ids"`
	ReferentUsernames pq.StringArray `gorm:"column:referent_usernames"`
}

type PosteDAO struct {
	db *gorm.DB
}

func NewPosteDAO(db *gorm.DB) *PosteDAO {
	return &PosteDAO{
		db: db,
	}
}

func (d *PosteDAO) Insert(ctx context.Context, poste Poste) (Poste, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var festival Festival
		if err := tx.First(&festival, poste.FestivalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFestivalNotFound
			}
			return err
		}
		poste.IsActive = festival.IsActive

		return tx.Create(&poste).Error
	})
	if err != nil {
		if isUniqueViolation(err, "idx_postes_festival_name") {
			return Poste{}, ErrPosteNameExists
		}

		return Poste{}, err
	}

	return poste, nil
}

func (d *PosteDAO) FindByFestival(ctx context.Context, festivalID uint) ([]PosteWithReferents, error) {
	var postes []PosteWithReferents

	result := d.db.WithContext(ctx).
		Table("postes").
		Select(`postes.*,
			COALESCE(ARRAY_AGG(referents.user_id ORDER BY referents.user_id) FILTER (WHERE referents.user_id IS NOT NULL), '{}') AS referent_ids,
			COALESCE(ARRAY_AGG(users.username ORDER BY referents.user_id) FILTER (WHERE users.id IS NOT NULL), '{}') AS referent_usernames`).
		Joins("LEFT JOIN referents ON referents.poste_id = postes.id").
		Joins("LEFT JOIN users ON users.id = referents.user_id").
		Where("postes.festival_id = ?", festivalID).
		Group("postes.id").
		Order("postes.id").
		Scan(&postes)
	if result.Error != nil {
		return nil, result.Error
	}

	return postes, nil
}

func (d *PosteDAO) FindByID(ctx context.Context, id uint) (Poste, error) {
	var poste Poste

	result := d.db.WithContext(ctx).First(&poste, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Poste{}, ErrPosteNotFound
		}

		return Poste{}, result.Error
	}

	return poste, nil
}

func (d *PosteDAO) FindByName(ctx context.Context, festivalID uint, name string) (Poste, error) {
	var poste Poste

	result := d.db.WithContext(ctx).Where("festival_id = ? AND name = ?", festivalID, name).First(&poste)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Poste{}, ErrPosteNotFound
		}

		return Poste{}, result.Error
	}

	return poste, nil
}

func (d *PosteDAO) Update(ctx context.Context, id uint, description string, maxCapacity int) (Poste, error) {
	result := d.db.WithContext(ctx).Model(&Poste{ID: id}).Updates(map[string]any{
		"description":  description,
		"max_capacity": maxCapacity,
	})
	if result.Error != nil {
		return Poste{}, result.Error
	}
	if result.RowsAffected == 0 {
		return Poste{}, ErrPosteNotFound
	}

	return d.FindByID(ctx, id)
}

// Delete removes the poste with its sign-ups and referents.
func (d *PosteDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var poste Poste
		if err := tx.First(&poste, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrPosteNotFound
			}
			return err
		}
		if poste.Name == animationPoste {
			return ErrReservedPoste
		}

		err := tx.Where("festival_id = ? AND poste = ?", poste.FestivalID, poste.Name).Delete(&Inscription{}).Error
		if err != nil {
			return err
		}
		if err := tx.Where("poste_id = ?", id).Delete(&Referent{}).Error; err != nil {
			return err
		}
		if err := revokeOrphanReferents(tx); err != nil {
			return err
		}

		return tx.Delete(&poste).Error
	})
}
