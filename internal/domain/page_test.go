package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPage_Invalid(t *testing.T) {
	for _, tc := range []struct{ from, size int }{{-1, 10}, {0, 0}, {0, -5}, {-3, 0}} {
		_, err := NewPage(tc.from, tc.size)
		assert.ErrorIs(t, err, ErrInvalidPagination, "from=%d size=%d", tc.from, tc.size)
	}
}

func TestPage_OffsetRoundsDownToPage(t *testing.T) {
	cases := []struct {
		from, size, index, offset int
	}{
		{0, 10, 0, 0},
		{10, 10, 1, 10},
		{15, 10, 1, 10},
		{9, 10, 0, 0},
		{4, 2, 2, 4},
		{5, 2, 2, 4},
	}
	for _, tc := range cases {
		p, err := NewPage(tc.from, tc.size)
		require.NoError(t, err)
		assert.Equal(t, tc.index, p.Index(), "from=%d size=%d", tc.from, tc.size)
		assert.Equal(t, tc.offset, p.Offset(), "from=%d size=%d", tc.from, tc.size)
		assert.Equal(t, tc.size, p.Limit())
	}
}
