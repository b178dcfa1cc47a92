package repository

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository/dao"
)

var ErrMessageNotFound = dao.ErrMessageNotFound

type MessageDAO interface {
	InsertMany(ctx context.Context, festivalID uint, messages []dao.Message) (int64, error)
	Inbox(ctx context.Context, userID, festivalID uint) ([]dao.Message, error)
	CountUnread(ctx context.Context, userID, festivalID uint) (int64, error)
	DeleteSent(ctx context.Context, id, sender uint) error
	DeleteInbox(ctx context.Context, userID, festivalID uint) (int64, error)
}

type MessageRepository struct {
	dao MessageDAO
}

func NewMessageRepository(dao MessageDAO) *MessageRepository {
	return &MessageRepository{
		dao: dao,
	}
}

func (r *MessageRepository) CreateMany(ctx context.Context, festivalID uint, messages []domain.Message) (int64, error) {
	rows := make([]dao.Message, 0, len(messages))
	for _, m := range messages {
		rows = append(rows, dao.Message{
			UserFrom:         m.UserFrom,
			UserFromUsername: m.UserFromUsername,
			UserFromRole:     m.UserFromRole,
			UserTo:           m.UserTo,
			Msg:              m.Msg,
		})
	}

	n, err := r.dao.InsertMany(ctx, festivalID, rows)
	if err != nil {
		return 0, fmt.Errorf("r.dao.InsertMany -> %w", err)
	}

	return n, nil
}

func (r *MessageRepository) Inbox(ctx context.Context, userID, festivalID uint) ([]domain.Message, error) {
	found, err := r.dao.Inbox(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("r.dao.Inbox -> %w", err)
	}

	messages := make([]domain.Message, 0, len(found))
	for _, m := range found {
		messages = append(messages, domain.Message{
			ID:               m.ID,
			FestivalID:       m.FestivalID,
			UserFrom:         m.UserFrom,
			UserFromUsername: m.UserFromUsername,
			UserFromRole:     m.UserFromRole,
			UserTo:           m.UserTo,
			Msg:              m.Msg,
			IsRead:           m.IsRead,
			CreatedAt:        m.CreatedAt,
		})
	}

	return messages, nil
}

func (r *MessageRepository) CountUnread(ctx context.Context, userID, festivalID uint) (int64, error) {
	n, err := r.dao.CountUnread(ctx, userID, festivalID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.CountUnread -> %w", err)
	}

	return n, nil
}

func (r *MessageRepository) DeleteSent(ctx context.Context, id, sender uint) error {
	if err := r.dao.DeleteSent(ctx, id, sender); err != nil {
		return fmt.Errorf("r.dao.DeleteSent -> %w", err)
	}

	return nil
}

func (r *MessageRepository) DeleteInbox(ctx context.Context, userID, festivalID uint) (int64, error) {
	n, err := r.dao.DeleteInbox(ctx, userID, festivalID)
	if err != nil {
		return 0, fmt.Errorf("r.dao.DeleteInbox -> %w", err)
	}

	return n, nil
}
