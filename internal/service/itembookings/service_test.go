package itembookings

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/ShareIt-BookingService/internal/domain"
	bookingRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/booking"
	"github.com/m04kA/ShareIt-BookingService/internal/infra/storage/database"
	itemRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/item"
	userRepo "github.com/m04kA/ShareIt-BookingService/internal/infra/storage/user"
	"github.com/m04kA/ShareIt-BookingService/pkg/psqlbuilder"
)

var now = time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)

type fixedTime struct{ t time.Time }

func (f fixedTime) Now() time.Time { return f.t }

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type stubRepo struct {
	latest, next []*domain.Booking
	calls        int
	err          error
}

func (s *stubRepo) LatestApprovedByItems(context.Context, []int64, time.Time) ([]*domain.Booking, error) {
	s.calls++
	return s.latest, s.err
}

func (s *stubRepo) NextApprovedByItems(context.Context, []int64, time.Time) ([]*domain.Booking, error) {
	s.calls++
	return s.next, s.err
}

func TestEmptyInputSkipsQuery(t *testing.T) {
	repo := &stubRepo{}
	svc := NewService(repo, fixedTime{now}, nopLogger{})

	got, err := svc.LatestApprovedPerItem(context.Background(), nil)
	require.NoError(t, err)
	assert.Empty(t, got)
	assert.Zero(t, repo.calls)
}

func TestTieResolvesToSmallerID(t *testing.T) {
	repo := &stubRepo{latest: []*domain.Booking{
		{ID: 9, ItemID: 1, Start: now.Add(-time.Hour)},
		{ID: 4, ItemID: 1, Start: now.Add(-time.Hour)},
		{ID: 7, ItemID: 2, Start: now.Add(-2 * time.Hour)},
	}}
	svc := NewService(repo, fixedTime{now}, nopLogger{})

	got, err := svc.LatestApprovedPerItem(context.Background(), []int64{1, 2, 3, 1})
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, int64(4), got[1].ID)
	assert.Equal(t, int64(7), got[2].ID)
	assert.NotContains(t, got, int64(3))
	assert.Equal(t, 1, repo.calls)
}

func TestRepositoryError(t *testing.T) {
	svc := NewService(&stubRepo{err: errors.New("db down")}, fixedTime{now}, nopLogger{})
	_, err := svc.NextApprovedPerItem(context.Background(), []int64{1})
	assert.ErrorIs(t, err, ErrInternal)
}

// одно бронирование вчера, одно завтра: вчерашнее последнее, завтрашнее ближайшее
func TestYesterdayAndTomorrow(t *testing.T) {
	db := database.NewTestDB(t)
	qb := psqlbuilder.New(psqlbuilder.SQLite)
	ctx := context.Background()

	owner, err := userRepo.NewRepository(db, qb).Create(ctx, &domain.User{Name: "owner", Email: "o@example.com"})
	require.NoError(t, err)
	booker, err := userRepo.NewRepository(db, qb).Create(ctx, &domain.User{Name: "booker", Email: "b@example.com"})
	require.NoError(t, err)
	item, err := itemRepo.NewRepository(db, qb).Create(ctx, &domain.Item{Name: "kayak", Description: "single", Available: true, OwnerID: owner.ID})
	require.NoError(t, err)

	bookings := bookingRepo.NewRepository(db, qb)
	create := func(start, end time.Time) *domain.Booking {
		b, err := bookings.Create(ctx, &domain.Booking{
			Start: start, End: end, ItemID: item.ID, BookerID: booker.ID,
			Status: domain.StatusApproved, CreatedAt: now, UpdatedAt: now,
		})
		require.NoError(t, err)
		return b
	}
	day := 24 * time.Hour
	yesterday := create(now.Add(-day-2*time.Hour), now.Add(-day))
	tomorrow := create(now.Add(day), now.Add(day+2*time.Hour))

	svc := NewService(bookings, fixedTime{now}, nopLogger{})

	latest, err := svc.LatestApprovedPerItem(ctx, []int64{item.ID})
	require.NoError(t, err)
	require.Contains(t, latest, item.ID)
	assert.Equal(t, yesterday.ID, latest[item.ID].ID)

	next, err := svc.NextApprovedPerItem(ctx, []int64{item.ID})
	require.NoError(t, err)
	require.Contains(t, next, item.ID)
	assert.Equal(t, tomorrow.ID, next[item.ID].ID)
}
