package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var (
	ErrUserEmailExists = errors.New("user already exists")
	ErrUsernameExists  = errors.New("username already taken")
	ErrUserNotFound    = errors.New("user not found")
	ErrRoleNotFound    = errors.New("role not found")
)

const (
	roleUser     = "User"
	roleReferent = "Referent"
)

type Role struct {
	ID   uint   `gorm:"primaryKey"`
	Name string `gorm:"unique;not null"`
}

type User struct {
	ID uint `gorm:"primaryKey"`

	Username string `gorm:"unique;not null"`
	Email    string `gorm:"unique;not null"`
	Password string `gorm:"not null"`

	Telephone   string
	Nom         string
	Prenom      string
	Tshirt      string
	Vegan       bool `gorm:"not null"`
	Hebergement string
	Association string
	Disabled    bool `gorm:"not null"`

	Roles []Role `gorm:"many2many:user_roles;"`

	CreatedAt time.Time `gorm:"not null"`
	UpdatedAt time.Time `gorm:"not null"`
}

type UserDAO struct {
	db *gorm.DB
}

func NewUserDAO(db *gorm.DB) *UserDAO {
	return &UserDAO{
		db: db,
	}
}

func (d *UserDAO) Insert(ctx context.Context, user User) (User, error) {
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var role Role
		if err := tx.Where("name = ?", roleUser).First(&role).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrRoleNotFound
			}
			return err
		}
		user.Roles = []Role{role}

		return tx.Omit("Roles.*").Create(&user).Error
	})
	if err != nil {
		return User{}, mapUserErr(err)
	}

	return user, nil
}

func (d *UserDAO) FindByID(ctx context.Context, id uint) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Roles").First(&user, id)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindByEmail(ctx context.Context, email string) (User, error) {
	var user User

	result := d.db.WithContext(ctx).Preload("Roles").First(&user, "email = ?", email)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return User{}, ErrUserNotFound
		}

		return User{}, result.Error
	}

	return user, nil
}

func (d *UserDAO) FindAll(ctx context.Context, limit, offset int) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).Preload("Roles").Order("id").Limit(limit).Offset(offset).Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (d *UserDAO) SearchByUsername(ctx context.Context, query string, limit, offset int) ([]User, error) {
	var users []User

	result := d.db.WithContext(ctx).
		Preload("Roles").
		Where("username ILIKE ?", "%"+query+"%").
		Order("username").
		Limit(limit).
		Offset(offset).
		Find(&users)
	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

// FindActiveIDs returns the ids of every user that is not banned.
func (d *UserDAO) FindActiveIDs(ctx context.Context) ([]uint, error) {
	var ids []uint

	result := d.db.WithContext(ctx).Model(&User{}).Where("NOT disabled").Order("id").Pluck("id", &ids)
	if result.Error != nil {
		return nil, result.Error
	}

	return ids, nil
}

func (d *UserDAO) Update(ctx context.Context, id uint, fields map[string]any) (User, error) {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Updates(fields)
	if result.Error != nil {
		return User{}, mapUserErr(result.Error)
	}
	if result.RowsAffected == 0 {
		return User{}, ErrUserNotFound
	}

	return d.FindByID(ctx, id)
}

func (d *UserDAO) UpdatePassword(ctx context.Context, id uint, hash string) error {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Update("password", hash)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (d *UserDAO) SetDisabled(ctx context.Context, id uint, disabled bool) error {
	result := d.db.WithContext(ctx).Model(&User{ID: id}).Update("disabled", disabled)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}

	return nil
}

// Delete removes the user together with everything that references it.
func (d *UserDAO) Delete(ctx context.Context, id uint) error {
	return d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", id).Delete(&Inscription{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_id = ?", id).Delete(&Referent{}).Error; err != nil {
			return err
		}
		if err := tx.Where("user_from = ? OR user_to = ?", id, id).Delete(&Message{}).Error; err != nil {
			return err
		}
		if err := tx.Model(&User{ID: id}).Association("Roles").Clear(); err != nil {
			return err
		}

		result := tx.Delete(&User{}, id)
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return ErrUserNotFound
		}

		return nil
	})
}

// grantRole runs inside the caller's transaction.
func grantRole(tx *gorm.DB, userID uint, name string) error {
	return tx.Exec(`INSERT INTO user_roles (user_id, role_id)
		SELECT ?, id FROM roles WHERE name = ?
		ON CONFLICT DO NOTHING`, userID, name).Error
}

func mapUserErr(err error) error {
	switch {
	case isUniqueViolation(err, "uni_users_email"):
		return ErrUserEmailExists
	case isUniqueViolation(err, "uni_users_username"):
		return ErrUsernameExists
	default:
		return err
	}
}
