package service

import (
	"context"
	"fmt"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

var ErrMessageNotFound = repository.ErrMessageNotFound

type MessageRepository interface {
	CreateMany(ctx context.Context, festivalID uint, messages []domain.Message) (int64, error)
	Inbox(ctx context.Context, userID, festivalID uint) ([]domain.Message, error)
	CountUnread(ctx context.Context, userID, festivalID uint) (int64, error)
	DeleteSent(ctx context.Context, id, sender uint) error
	DeleteInbox(ctx context.Context, userID, festivalID uint) (int64, error)
}

type RecipientFinder interface {
	FindByID(ctx context.Context, id uint) (domain.User, error)
	FindActiveIDs(ctx context.Context) ([]uint, error)
}

type PosteSignupFinder interface {
	FindUserIDsByPoste(ctx context.Context, festivalID uint, poste string) ([]uint, error)
}

type PosteGetter interface {
	FindByID(ctx context.Context, id uint) (domain.Poste, error)
}

type MessageService struct {
	repo         MessageRepository
	users        RecipientFinder
	postes       PosteGetter
	inscriptions PosteSignupFinder
}

func NewMessageService(repo MessageRepository, users RecipientFinder, postes PosteGetter, inscriptions PosteSignupFinder) *MessageService {
	return &MessageService{
		repo:         repo,
		users:        users,
		postes:       postes,
		inscriptions: inscriptions,
	}
}

func (s *MessageService) SendToUser(ctx context.Context, sender domain.User, festivalID, to uint, text string) (int64, error) {
	if _, err := s.users.FindByID(ctx, to); err != nil {
		return 0, fmt.Errorf("s.users.FindByID -> %w", err)
	}

	return s.send(ctx, sender, festivalID, []uint{to}, text)
}

// SendToAll messages every user that is not banned, the sender excepted.
func (s *MessageService) SendToAll(ctx context.Context, sender domain.User, festivalID uint, text string) (int64, error) {
	ids, err := s.users.FindActiveIDs(ctx)
	if err != nil {
		return 0, fmt.Errorf("s.users.FindActiveIDs -> %w", err)
	}

	return s.send(ctx, sender, festivalID, without(ids, sender.ID), text)
}

// SendToPoste messages every user signed up under the poste.
func (s *MessageService) SendToPoste(ctx context.Context, sender domain.User, festivalID, posteID uint, text string) (int64, error) {
	poste, err := s.postes.FindByID(ctx, posteID)
	if err != nil {
		return 0, fmt.Errorf("s.postes.FindByID -> %w", err)
	}
	if poste.FestivalID != festivalID {
		return 0, ErrPosteNotFound
	}

	ids, err := s.inscriptions.FindUserIDsByPoste(ctx, festivalID, poste.Name)
	if err != nil {
		return 0, fmt.Errorf("s.inscriptions.FindUserIDsByPoste -> %w", err)
	}

	return s.send(ctx, sender, festivalID, without(ids, sender.ID), text)
}

func (s *MessageService) send(ctx context.Context, sender domain.User, festivalID uint, to []uint, text string) (int64, error) {
	n, err := s.repo.CreateMany(ctx, festivalID, domain.NewMessages(sender, festivalID, to, text))
	if err != nil {
		return 0, fmt.Errorf("s.repo.CreateMany -> %w", err)
	}

	return n, nil
}

// Inbox returns the user's messages and marks them read.
func (s *MessageService) Inbox(ctx context.Context, userID, festivalID uint) ([]domain.Message, error) {
	messages, err := s.repo.Inbox(ctx, userID, festivalID)
	if err != nil {
		return nil, fmt.Errorf("s.repo.Inbox -> %w", err)
	}

	return messages, nil
}

func (s *MessageService) UnreadCount(ctx context.Context, userID, festivalID uint) (int64, error) {
	n, err := s.repo.CountUnread(ctx, userID, festivalID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.CountUnread -> %w", err)
	}

	return n, nil
}

func (s *MessageService) DeleteSent(ctx context.Context, sender, id uint) error {
	if err := s.repo.DeleteSent(ctx, id, sender); err != nil {
		return fmt.Errorf("s.repo.DeleteSent -> %w", err)
	}

	return nil
}

func (s *MessageService) DeleteInbox(ctx context.Context, userID, festivalID uint) (int64, error) {
	n, err := s.repo.DeleteInbox(ctx, userID, festivalID)
	if err != nil {
		return 0, fmt.Errorf("s.repo.DeleteInbox -> %w", err)
	}

	return n, nil
}

func without(ids []uint, id uint) []uint {
	out := make([]uint, 0, len(ids))
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}

	return out
}
