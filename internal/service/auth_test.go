package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/festival-benevoles/api/internal/domain"
	"github.com/festival-benevoles/api/internal/repository"
)

type memUsers struct {
	byEmail map[string]domain.User
}

func (m *memUsers) Create(_ context.Context, user domain.User) (domain.User, error) {
	if _, ok := m.byEmail[user.Email]; ok {
		return domain.User{}, repository.ErrUserEmailExists
	}
	user.ID = uint(len(m.byEmail) + 1)
	user.Roles = []string{domain.RoleUser}
	m.byEmail[user.Email] = user
	return user, nil
}

func (m *memUsers) FindByEmail(_ context.Context, email string) (domain.User, error) {
	user, ok := m.byEmail[email]
	if !ok {
		return domain.User{}, repository.ErrUserNotFound
	}
	return user, nil
}

func TestAuthService_SignupAndLogin(t *testing.T) {
	ctx := context.Background()
	repo := &memUsers{byEmail: map[string]domain.User{}}
	svc := NewAuthService(repo)

	created, err := svc.Signup(ctx, domain.User{Username: "alice", Email: "alice@festival.test", Password: "secret123"})
	require.NoError(t, err)
	assert.NotEqual(t, "secret123", created.Password)

	_, err = svc.Signup(ctx, domain.User{Username: "alice2", Email: "alice@festival.test", Password: "secret123"})
	assert.ErrorIs(t, err, ErrUserEmailExists)

	user, err := svc.Login(ctx, "alice@festival.test", "secret123")
	require.NoError(t, err)
	assert.Equal(t, created.ID, user.ID)

	_, err = svc.Login(ctx, "alice@festival.test", "wrong")
	assert.ErrorIs(t, err, ErrWrongPassword)

	_, err = svc.Login(ctx, "bob@festival.test", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)

	banned := repo.byEmail["alice@festival.test"]
	banned.Disabled = true
	repo.byEmail["alice@festival.test"] = banned
	_, err = svc.Login(ctx, "alice@festival.test", "secret123")
	assert.ErrorIs(t, err, ErrUserDisabled)
}

func TestPaginate(t *testing.T) {
	limit, offset := paginate(3, 20)
	assert.Equal(t, 20, limit)
	assert.Equal(t, 40, offset)

	limit, offset = paginate(0, 0)
	assert.Equal(t, maxPageSize, limit)
	assert.Zero(t, offset)
}
