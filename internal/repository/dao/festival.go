package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrFestivalNotFound           = errors.New("festival not found")
	ErrFestivalNameExists         = errors.New("festival name already exists")
	ErrNoActiveFestival           = errors.New("no active festival")
	ErrFestivalActivationConflict = errors.New("more than one festival is active")
)

const animationPoste = "Animation"

type Festival struct {
	ID          uint   `gorm:"primaryKey"`
	Name        string `gorm:"unique;not null"`
	Description string
	IsActive    bool `gorm:"not null"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

type FestivalDAO struct {
	db *gorm.DB
}

func NewFestivalDAO(db *gorm.DB) *FestivalDAO {
	return &FestivalDAO{
		db: db,
	}
}

// Insert creates the festival and its reserved Animation poste.
func (d *FestivalDAO) Insert(ctx context.Context, festival Festival) (Festival, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&festival).Error; err != nil {
			return err
		}

		return tx.Create(&Poste{
			FestivalID:  festival.ID,
			Name:        animationPoste,
			Description: "Animation des jeux",
			IsActive:    festival.IsActive,
		}).Error
	})
	if err != nil {
		if isUniqueViolation(err, "uni_festivals_name") {
			return Festival{}, ErrFestivalNameExists
		}
		if isUniqueViolation(err, "idx_festivals_single_active") {
			return Festival{}, ErrFestivalActivationConflict
		}

		return Festival{}, err
	}

	return festival, nil
}

func (d *FestivalDAO) FindAll(ctx context.Context) ([]Festival, error) {
	var festivals []Festival

	result := d.db.WithContext(ctx).Order("id").Find(&festivals)
	if result.Error != nil {
		return nil, result.Error
	}

	return festivals, nil
}

func (d *FestivalDAO) FindByID(ctx context.Context, id uint) (Festival, error) {
	var festival Festival

	result := d.db.WithContext(ctx).First(&festival, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Festival{}, ErrFestivalNotFound
		}

		return Festival{}, result.Error
	}

	return festival, nil
}

func (d *FestivalDAO) FindActive(ctx context.Context) (Festival, error) {
	var festival Festival

	result := d.db.WithContext(ctx).Where("is_active").First(&festival)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return Festival{}, ErrNoActiveFestival
		}

		return Festival{}, result.Error
	}

	return festival, nil
}

// Activate makes id the only active festival and carries the flag over to every
// row that belongs to a festival.
func (d *FestivalDAO) Activate(ctx context.Context, id uint) error {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var festival Festival
		if err := tx.First(&festival, id).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFestivalNotFound
			}
			return err
		}

		// Deactivate first so the single-active index never sees two rows.
		if err := tx.Model(&Festival{}).Where("is_active AND id <> ?", id).Update("is_active", false).Error; err != nil {
			return err
		}
		if err := tx.Model(&Festival{}).Where("id = ?", id).Update("is_active", true).Error; err != nil {
			return err
		}

		for _, model := range []any{&Poste{}, &Inscription{}, &CatalogEntry{}, &Message{}} {
			err := tx.Model(model).
				Where("is_active <> (festival_id = ?)", id).
				Update("is_active", gorm.Expr("festival_id = ?", id)).Error
			if err != nil {
				return err
			}
		}

		var active int64
		if err := tx.Model(&Festival{}).Where("is_active").Count(&active).Error; err != nil {
			return err
		}
		if active != 1 {
			return ErrFestivalActivationConflict
		}

		return nil
	})
	if isUniqueViolation(err, "idx_festivals_single_active") {
		return ErrFestivalActivationConflict
	}

	return err
}

// Delete removes the festival and every row that belongs to it.
func (d *FestivalDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, model := range []any{&Inscription{}, &Referent{}, &Message{}, &CatalogEntry{}, &Poste{}} {
			if err := tx.Where("festival_id = ?", id).Delete(model).Error; err != nil {
				return err
			}
		}
		if err := revokeOrphanReferents(tx); err != nil {
			return err
		}

		result := tx.Delete(&Festival{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrFestivalNotFound
		}

		return nil
	})
}
