package item

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/storage/database"
	userRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/user"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
	"github.com/m04kA/ShareIt-BookingService/pkg/ptr"
)

func TestRepository(t *testing.T) {
	db := database.NewTestDB(t)
	qb := psqlbuilder.New(psqlbuilder.SQLite)
	ctx := context.Background()

	owner, err := userRepo.NewRepository(db, qb).Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com"})
	require.NoError(t, err)

	repo := NewRepository(db, qb)

	second, err := repo.Create(ctx, &domain.Item{Name: "tent", Description: "2 person", Available: false, OwnerID: owner.ID, RequestID: ptr.Ptr(int64(7))})
	require.NoError(t, err)
	first, err := repo.Create(ctx, &domain.Item{Name: "bike", Description: "city bike", Available: true, OwnerID: owner.ID})
	require.NoError(t, err)

	got, err := repo.GetByIDForUpdate(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "tent", got.Name)
	assert.False(t, got.Available)
	require.NotNil(t, got.RequestID)
	assert.Equal(t, int64(7), *got.RequestID)

	first.Available = false
	first.Name = "road bike"
	require.NoError(t, repo.Update(ctx, first))

	list, err := repo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Less(t, list[0].ID, list[1].ID)
	assert.Equal(t, "road bike", list[1].Name)
	assert.False(t, list[1].Available)

	_, err = repo.GetByID(ctx, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)
	assert.ErrorIs(t, repo.Update(ctx, &domain.Item{ID: 999}), ErrItemNotFound)

	_, err = repo.Create(ctx, &domain.Item{Name: "x", Description: "y", OwnerID: 12345})
	assert.ErrorIs(t, err, ErrOwnerNotFound)
}
