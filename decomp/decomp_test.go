package decomp

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRejectsIndivisible(t *testing.T) {
	cases := []struct{ n, p int }{
		{5, 2}, {7, 3}, {10, 4}, {3, 4}, {1, 2},
	}
	for _, tc := range cases {
		_, err := New(tc.n, tc.p)
		require.Error(t, err)
		assert.Equal(t, ErrShapeMismatch, errors.Cause(err), "n=%d p=%d", tc.n, tc.p)
	}
}

func TestNewRejectsNonPositive(t *testing.T) {
	for _, tc := range []struct{ n, p int }{{0, 1}, {-4, 2}, {4, 0}, {4, -1}} {
		_, err := New(tc.n, tc.p)
		assert.Equal(t, ErrInvalidInput, errors.Cause(err))
	}
}

func TestSlicesCoverRowsExactlyOnce(t *testing.T) {
	for n := 1; n <= 48; n++ {
		for p := 1; p <= n; p++ {
			plan, err := New(n, p)
			if n%p != 0 {
				require.Error(t, err)
				continue
			}
			require.NoError(t, err)

			owner := make([]int, n)
			for i := range owner {
				owner[i] = -1
			}
			for _, s := range plan.Slices() {
				assert.Equal(t, plan.S, s.Rows())
				for i := s.Lo; i < s.Hi; i++ {
					require.Equal(t, -1, owner[i], "row %d owned twice (n=%d p=%d)", i, n, p)
					owner[i] = s.Rank
				}
			}
			for i, r := range owner {
				require.NotEqual(t, -1, r, "row %d unowned (n=%d p=%d)", i, n, p)
			}
		}
	}
}

func TestOffsets(t *testing.T) {
	plan, err := New(4, 2)
	require.NoError(t, err)
	assert.Equal(t, 2, plan.S)
	assert.Equal(t, 8, plan.BlockLen())
	assert.Equal(t, Slice{Rank: 1, Lo: 2, Hi: 4}, plan.Slice(1))
	assert.Equal(t, 8, plan.Offset(1))
}
