package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var allStates = []BookingState{StateAll, StateCurrent, StatePast, StateFuture, StateWaiting, StateRejected}

func TestParseBookingState(t *testing.T) {
	for _, s := range allStates {
		got, err := ParseBookingState(string(s))
		require.NoError(t, err)
		assert.Equal(t, s, got)
	}

	got, err := ParseBookingState("current")
	require.NoError(t, err)
	assert.Equal(t, StateCurrent, got)

	got, err = ParseBookingState("")
	require.NoError(t, err)
	assert.Equal(t, StateAll, got)

	_, err = ParseBookingState("UNSUPPORTED_STATUS")
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestEveryStateHasCondition(t *testing.T) {
	now := time.Now()
	for _, s := range allStates {
		_, err := s.Condition(now)
		assert.NoError(t, err, s)
	}
	_, err := BookingState("SOMEDAY").Condition(now)
	assert.ErrorIs(t, err, ErrUnknownState)
}

func TestConditionMatches(t *testing.T) {
	now := time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)
	h := time.Hour

	past := &Booking{ID: 1, Start: now.Add(-3 * h), End: now.Add(-h), Status: StatusApproved}
	current := &Booking{ID: 2, Start: now.Add(-h), End: now.Add(h), Status: StatusWaiting}
	future := &Booking{ID: 3, Start: now.Add(h), End: now.Add(2 * h), Status: StatusRejected}
	startsNow := &Booking{ID: 4, Start: now, End: now.Add(h), Status: StatusWaiting}
	endsNow := &Booking{ID: 5, Start: now.Add(-h), End: now, Status: StatusWaiting}
	all := []*Booking{past, current, future, startsNow, endsNow}

	cases := []struct {
		state BookingState
		want  []int64
	}{
		{StateAll, []int64{1, 2, 3, 4, 5}},
		{StatePast, []int64{1}},
		{StateFuture, []int64{3}},
		// строгие границы: начало или конец ровно в now не считаются текущими
		{StateCurrent, []int64{2}},
		{StateWaiting, []int64{2, 4, 5}},
		{StateRejected, []int64{3}},
	}

	for _, tc := range cases {
		t.Run(string(tc.state), func(t *testing.T) {
			cond, err := tc.state.Condition(now)
			require.NoError(t, err)

			var got []int64
			for _, b := range all {
				if cond.Matches(b) {
					got = append(got, b.ID)
				}
			}
			assert.Equal(t, tc.want, got)
		})
	}
}
