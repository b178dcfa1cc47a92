package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-benevoles/api/internal/domain"
)

type memMessages struct {
	MessageRepository
	sent []domain.Message
}

func (m *memMessages) CreateMany(_ context.Context, _ uint, messages []domain.Message) (int64, error) {
	m.sent = append(m.sent, messages...)
	return int64(len(messages)), nil
}

type fakeUsers struct {
	RecipientFinder
	ids []uint
}

func (f fakeUsers) FindActiveIDs(context.Context) ([]uint, error) {
	return f.ids, nil
}

func TestMessageService_SendToAllSkipsSender(t *testing.T) {
	repo := &memMessages{}
	svc := NewMessageService(repo, fakeUsers{ids: []uint{1, 2, 3}}, fakePostes{}, &memInscriptions{})
	sender := domain.User{ID: 2, Username: "ref", Roles: []string{domain.RoleUser, domain.RoleReferent}}

	n, err := svc.SendToAll(context.Background(), sender, 1, "briefing à 9h")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	for _, m := range repo.sent {
		assert.NotEqual(t, sender.ID, m.UserTo)
		assert.Equal(t, domain.RoleReferent, m.UserFromRole)
	}
}

func TestMessageService_SendToPoste(t *testing.T) {
	ctx := context.Background()
	store := &memInscriptions{}
	_, _, err := store.Apply(ctx, 1, []domain.Inscription{
		posteSignup(7, "Buvette", lundiMatin),
		posteSignup(8, "Buvette", domain.Slot{Jour: "Mardi", Creneau: "10h-12h"}),
		posteSignup(7, "Buvette", domain.Slot{Jour: "Mardi", Creneau: "12h-14h"}),
	}, nil)
	require.NoError(t, err)

	repo := &memMessages{}
	postes := fakePostes{postes: []domain.Poste{{ID: 2, FestivalID: 1, Name: "Buvette"}}}
	svc := NewMessageService(repo, fakeUsers{}, postes, store)
	admin := domain.User{ID: 1, Username: "admin", Roles: []string{domain.RoleAdmin, domain.RoleReferent}}

	n, err := svc.SendToPoste(ctx, admin, 1, 2, "merci")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, domain.RoleAdmin, repo.sent[0].UserFromRole)

	_, err = svc.SendToPoste(ctx, admin, 5, 2, "merci")
	assert.ErrorIs(t, err, ErrPosteNotFound)
}
