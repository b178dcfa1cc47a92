package dao

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserDAO_InsertUniqueness(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewUserDAO(db)

	alice := seedUser(t, db, "alice")
	assert.True(t, hasRole(alice, roleUser))

	_, err := d.Insert(ctx, User{Username: "other", Email: alice.Email, Password: "hash"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	_, err = d.Insert(ctx, User{Username: "alice", Email: "new@festival.test", Password: "hash"})
	assert.ErrorIs(t, err, ErrUsernameExists)

	bob := seedUser(t, db, "bob")
	_, err = d.Update(ctx, bob.ID, map[string]any{"username": "alice"})
	assert.ErrorIs(t, err, ErrUsernameExists)
}

func TestUserDAO_SearchAndBan(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewUserDAO(db)

	alice := seedUser(t, db, "alice")
	seedUser(t, db, "alicia")
	seedUser(t, db, "bob")

	found, err := d.SearchByUsername(ctx, "ALI", 10, 0)
	require.NoError(t, err)
	assert.Len(t, found, 2)

	require.NoError(t, d.SetDisabled(ctx, alice.ID, true))
	ids, err := d.FindActiveIDs(ctx)
	require.NoError(t, err)
	assert.NotContains(t, ids, alice.ID)

	require.NoError(t, d.Delete(ctx, alice.ID))
	_, err = d.FindByID(ctx, alice.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestMessageDAO_InboxMarksRead(t *testing.T) {
	db := setupDB(t)
	ctx := context.Background()
	d := NewMessageDAO(db)

	festival := seedFestival(t, db, "FJM 2025", true)
	alice := seedUser(t, db, "alice")
	bob := seedUser(t, db, "bob")

	n, err := d.InsertMany(ctx, festival.ID, []Message{
		{UserFrom: alice.ID, UserFromUsername: "alice", UserFromRole: "User", UserTo: bob.ID, Msg: "salut"},
		{UserFrom: alice.ID, UserFromUsername: "alice", UserFromRole: "User", UserTo: bob.ID, Msg: "ça va ?"},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	unread, err := d.CountUnread(ctx, bob.ID, festival.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)

	inbox, err := d.Inbox(ctx, bob.ID, festival.ID)
	require.NoError(t, err)
	assert.Len(t, inbox, 2)

	unread, err = d.CountUnread(ctx, bob.ID, festival.ID)
	require.NoError(t, err)
	assert.Zero(t, unread)

	assert.ErrorIs(t, d.DeleteSent(ctx, inbox[0].ID, bob.ID), ErrMessageNotFound)
	require.NoError(t, d.DeleteSent(ctx, inbox[0].ID, alice.ID))
}
