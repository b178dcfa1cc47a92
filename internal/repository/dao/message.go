package dao

import (
	"context"
	"errors"
	"time"

	"gorm.io/gorm"
)

var ErrMessageNotFound = errors.New("message not found")

const messageBatchSize = 200

type Message struct {
	ID               uint   `gorm:"primaryKey"`
	FestivalID       uint   `gorm:"not null;index"`
	UserFrom         uint   `gorm:"not null"`
	UserFromUsername string `gorm:"not null"`
	UserFromRole     string `gorm:"not null"`
	UserTo           uint   `gorm:"not null;index"`
	Msg              string `gorm:"not null"`
	IsRead           bool   `gorm:"not null"`
	IsActive         bool   `gorm:"not null"`
	CreatedAt        time.Time
}

type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{
		db: db,
	}
}

func (d *MessageDAO) InsertMany(ctx context.Context, festivalID uint, messages []Message) (int64, error) {
	if len(messages) == 0 {
		return 0, nil
	}

	var inserted int64
	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var festival Festival
		if err := tx.First(&festival, festivalID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrFestivalNotFound
			}
			return err
		}
		for i := range messages {
			messages[i].FestivalID = festivalID
			messages[i].IsActive = festival.IsActive
		}

		result := tx.CreateInBatches(messages, messageBatchSize)
		inserted = result.RowsAffected

		return result.Error
	})
	if err != nil {
		return 0, err
	}

	return inserted, nil
}

// Inbox returns the user's messages newest first and marks them read.
func (d *MessageDAO) Inbox(ctx context.Context, userID, festivalID uint) ([]Message, error) {
	var messages []Message

	err := d.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		err := tx.Where("user_to = ? AND festival_id = ?", userID, festivalID).
			Order("created_at DESC, id DESC").
			Find(&messages).Error
		if err != nil {
			return err
		}

		return tx.Model(&Message{}).
			Where("user_to = ? AND festival_id = ? AND NOT is_read", userID, festivalID).
			Update("is_read", true).Error
	})
	if err != nil {
		return nil, err
	}

	return messages, nil
}

func (d *MessageDAO) CountUnread(ctx context.Context, userID, festivalID uint) (int64, error) {
	var count int64

	result := d.db.WithContext(ctx).
		Model(&Message{}).
		Where("user_to = ? AND festival_id = ? AND NOT is_read", userID, festivalID).
		Count(&count)
	if result.Error != nil {
		return 0, result.Error
	}

	return count, nil
}

// DeleteSent deletes a message only when sender sent it.
func (d *MessageDAO) DeleteSent(ctx context.Context, id, sender uint) error {
	result := d.db.WithContext(ctx).Where("id = ? AND user_from = ?", id, sender).Delete(&Message{})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrMessageNotFound
	}

	return nil
}

func (d *MessageDAO) DeleteInbox(ctx context.Context, userID, festivalID uint) (int64, error) {
	result := d.db.WithContext(ctx).Where("user_to = ? AND festival_id = ?", userID, festivalID).Delete(&Message{})
	if result.Error != nil {
		return 0, result.Error
	}

	return result.RowsAffected, nil
}
