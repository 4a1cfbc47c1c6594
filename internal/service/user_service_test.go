package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/uoyyy/salon-krasotok/internal/model"
	"go.uber.org/zap"
)

func TestUserServiceRegistration(t *testing.T) {
	ctx := context.Background()
	s := NewUserService(newMemUserStore(), zap.NewNop())

	user, err := s.EnsureUser(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationStateNew, user.RegistrationState())

	// повторный вызов не создаёт дубликат и не сбрасывает данные
	require.NoError(t, s.SetName(ctx, 42, "Анна"))

	user, err = s.EnsureUser(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, user.Name)
	assert.Equal(t, "Анна", *user.Name)
	assert.Equal(t, model.RegistrationStateAwaitingPhone, user.RegistrationState())

	require.NoError(t, s.SetPhone(ctx, 42, "+79990001122"))

	user, err = s.GetByID(ctx, 42)
	require.NoError(t, err)
	assert.Equal(t, model.RegistrationStateComplete, user.RegistrationState())

	require.NoError(t, s.SetCity(ctx, 42, 1))
	user, err = s.GetByID(ctx, 42)
	require.NoError(t, err)
	require.NotNil(t, user.CityID)
	assert.Equal(t, int64(1), *user.CityID)
}

func TestUserServiceSetNameUnknownUser(t *testing.T) {
	s := NewUserService(newMemUserStore(), zap.NewNop())
	assert.Error(t, s.SetName(context.Background(), 99, "Анна"))
}
