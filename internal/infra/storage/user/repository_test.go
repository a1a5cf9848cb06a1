package user

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/storage/database"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

func TestRepository(t *testing.T) {
	repo := NewRepository(database.NewTestDB(t), psqlbuilder.New(psqlbuilder.SQLite))
	ctx := context.Background()

	created, err := repo.Create(ctx, &domain.User{Name: "Alice", Email: "alice@example.com"})
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := repo.GetByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, *created, *got)

	exists, err := repo.Exists(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, exists)

	exists, err = repo.Exists(ctx, created.ID+1)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = repo.GetByID(ctx, created.ID+1)
	assert.ErrorIs(t, err, ErrUserNotFound)

	_, err = repo.Create(ctx, &domain.User{Name: "Alice 2", Email: "alice@example.com"})
	assert.ErrorIs(t, err, ErrEmailAlreadyExists)
}
