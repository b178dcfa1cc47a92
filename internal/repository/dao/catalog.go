package dao

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

var ErrGameNotFound = errors.New("game not found")

const catalogBatchSize = 500

type CatalogEntry struct {
	ID             uint `gorm:"primaryKey"`
	FestivalID     uint `gorm:"not null;index"`
	JeuID          int  `gorm:"not null"`
	NomDuJeu       string
	Auteur         string
	Editeur        string
	NbJoueurs      string
	AgeMin         string
	Duree          string
	TypeJeu        string
	Notice         string
	ZonePlan       string `gorm:"index:idx_csv_zone"`
	ZoneBenevole   string
	ZoneBenevoleID string `gorm:"index:idx_csv_zone"`
	AAnimer        string
	Recu           string
	Mecanismes     string
	Themes         string
	Tags           string
	Description    string
	ImageJeu       string
	Logo           string
	Video          string
	IsActive       bool `gorm:"not null"`
}

func (CatalogEntry) TableName() string {
	return "csv"
}

// AnimatableZone is one distinct zone of entries flagged a_animer.
type AnimatableZone struct {
	ZonePlan       string
	ZoneBenevoleID string
	ZoneBenevole   string
}

// ZoneRename sets zone_benevole_name on the listed sign-ups.
type ZoneRename struct {
	Name string
	IDs  []uint
}

// ReconciliationPlan is what to apply to existing sign-ups after a catalog replacement.
type ReconciliationPlan struct {
	Renames []ZoneRename
	Deletes []uint
}

// Reconciler computes a plan from the zone-level Animation sign-ups of the festival.
type Reconciler func(signups []Inscription) (ReconciliationPlan, error)

type CatalogDAO struct {
	db *gorm.DB
}

func NewCatalogDAO(db *gorm.DB) *CatalogDAO {
	return &CatalogDAO{
		db: db,
	}
}

// Replace swaps the festival catalog for entries and reconciles sign-ups against it in
// the same transaction, under the festival batch lock.
func (d *CatalogDAO) Replace(ctx context.Context, festivalID uint, entries []CatalogEntry, reconcile Reconciler) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var festival Festival
		if err := tx.First(&festival, festivalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFestivalNotFound
			}
			return err
		}
		if err := lockFestival(tx, festivalID); err != nil {
			return err
		}

		if err := tx.Where("festival_id = ?", festivalID).Delete(&CatalogEntry{}).Error; err != nil {
			return err
		}
		for i := range entries {
			entries[i].ID = 0
			entries[i].FestivalID = festivalID
			entries[i].IsActive = festival.IsActive
		}
		if len(entries) > 0 {
			if err := tx.CreateInBatches(entries, catalogBatchSize).Error; err != nil {
				return err
			}
		}

		var signups []Inscription
		err := tx.Where("festival_id = ? AND poste = ? AND NOT is_poste", festivalID, animationPoste).
			Order("id").
			Find(&signups).Error
		if err != nil {
			return err
		}

		plan, err := reconcile(signups)
		if err != nil {
			return err
		}

		for _, r := range plan.Renames {
			err := tx.Model(&Inscription{}).Where("id IN ?", r.IDs).Update("zone_benevole_name", r.Name).Error
			if err != nil {
				return err
			}
		}
		if len(plan.Deletes) > 0 {
			if err := tx.Where("id IN ?", plan.Deletes).Delete(&Inscription{}).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// FindByFestival returns the catalog in upload order.
func (d *CatalogDAO) FindByFestival(ctx context.Context, festivalID uint) ([]CatalogEntry, error) {
	var entries []CatalogEntry

	result := d.db.WithContext(ctx).Where("festival_id = ?", festivalID).Order("id").Find(&entries)
	if result.Error != nil {
		return nil, result.Error
	}

	return entries, nil
}

func (d *CatalogDAO) FindGame(ctx context.Context, festivalID uint, jeuID int) (CatalogEntry, error) {
	var entry CatalogEntry

	result := d.db.WithContext(ctx).Where("festival_id = ? AND jeu_id = ?", festivalID, jeuID).Order("id").First(&entry)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return CatalogEntry{}, ErrGameNotFound
		}

		return CatalogEntry{}, result.Error
	}

	return entry, nil
}

// FindAnimatableZones returns the distinct zones of entries whose a_animer is truthy.
func (d *CatalogDAO) FindAnimatableZones(ctx context.Context, festivalID uint, truthy []string) ([]AnimatableZone, error) {
	var zones []AnimatableZone

	result := d.db.WithContext(ctx).
		Model(&CatalogEntry{}).
		Distinct("zone_plan", "zone_benevole_id", "zone_benevole").
		Where("festival_id = ? AND LOWER(TRIM(a_animer)) IN ?", festivalID, truthy).
		Order("zone_plan, zone_benevole_id, zone_benevole").
		Scan(&zones)
	if result.Error != nil {
		return nil, result.Error
	}

	return zones, nil
}
