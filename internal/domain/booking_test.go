package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeDateTime(t *testing.T) {
	in := time.Date(2024, 6, 1, 12, 30, 0, 900_000_000, time.FixedZone("MSK", 3*3600))
	got := NormalizeDateTime(in)

	assert.Equal(t, time.Date(2024, 6, 1, 9, 30, 0, 0, time.UTC), got)
	assert.Equal(t, time.UTC, got.Location())
}

func TestBookingStatus_IsValid(t *testing.T) {
	for _, s := range []BookingStatus{StatusWaiting, StatusApproved, StatusRejected, StatusCanceled} {
		assert.True(t, s.IsValid(), s)
	}
	assert.False(t, BookingStatus("PENDING").IsValid())
	assert.False(t, BookingStatus("").IsValid())
}

func TestBookingDetails_IsVisibleTo(t *testing.T) {
	d := &BookingDetails{
		Booking: Booking{BookerID: 1},
		Item:    Item{OwnerID: 2},
	}
	assert.True(t, d.IsVisibleTo(1))
	assert.True(t, d.IsVisibleTo(2))
	assert.False(t, d.IsVisibleTo(3))
}

func TestParseDateTime(t *testing.T) {
	got, err := ParseDateTime("2024-06-01T10:30:00")
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC), got)

	got, err = ParseDateTime("2024-06-01T12:30:00+02:00")
	require.NoError(t, err)
	assert.True(t, got.Equal(time.Date(2024, 6, 1, 10, 30, 0, 0, time.UTC)))
	assert.Equal(t, time.UTC, got.Location())

	_, err = ParseDateTime("01.06.2024 10:30")
	assert.Error(t, err)

	assert.Equal(t, "2024-06-01T10:30:00", FormatDateTime(got))
}
