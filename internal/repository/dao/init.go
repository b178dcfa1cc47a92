package dao

import (
	"errors"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// batchLockClass namespaces the advisory locks taken by catalog replacement and
// flexible resolution. The second key is the festival id.
const batchLockClass = 4207

var defaultRoles = []string{"User", "Referent", "Admin"}

func InitTables(db *gorm.DB) error {
	err := db.AutoMigrate(
		&Role{},
		&User{},
		&Festival{},
		&Poste{},
		&CatalogEntry{},
		&Inscription{},
		&Referent{},
		&Message{},
	)
	if err != nil {
		return err
	}

	// At most one festival is active at a time.
	err = db.Exec(`CREATE UNIQUE INDEX IF NOT EXISTS idx_festivals_single_active ON festivals (is_active) WHERE is_active`).Error
	if err != nil {
		return err
	}

	roles := make([]Role, 0, len(defaultRoles))
	for _, name := range defaultRoles {
		roles = append(roles, Role{Name: name})
	}

	return db.Clauses(clause.OnConflict{DoNothing: true}).Create(&roles).Error
}

// lockFestival serializes batch operations on one festival until tx ends.
func lockFestival(tx *gorm.DB, festivalID uint) error {
	return tx.Exec("SELECT pg_advisory_xact_lock(?, ?)", batchLockClass, festivalID).Error
}

// isUniqueViolation reports whether err is a unique violation on the named constraint.
func isUniqueViolation(err error, constraint string) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) &&
		pgErr.Code == pgerrcode.UniqueViolation &&
		pgErr.ConstraintName == constraint
}
