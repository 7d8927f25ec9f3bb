package matrix

import (
	"math"

	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

var ErrOverflow = errors.New("product leaves int32 range")

// Verify recomputes a×b through gonum in float64 and compares it with c.
// For non-negative inputs every partial sum is bounded by the result, so the
// float64 reference is exact whenever the result fits in int32. Outside that
// range c carries wrapped values and ErrOverflow is returned instead.
func Verify(a, b, c *Matrix) error {
	n := a.n
	if b.n != n || c.n != n {
		return errors.Wrapf(ErrInvalidInput, "sizes %d, %d, %d differ", a.n, b.n, c.n)
	}
	var ref mat.Dense
	ref.Mul(toDense(a), toDense(b))
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			want := ref.At(i, j)
			if want > math.MaxInt32 || want < math.MinInt32 {
				return errors.Wrapf(ErrOverflow, "element (%d,%d) = %.0f", i, j, want)
			}
			if got := c.At(i, j); int32(want) != got {
				return errors.Errorf("element (%d,%d) = %d, want %d", i, j, got, int32(want))
			}
		}
	}
	return nil
}

func toDense(m *Matrix) *mat.Dense {
	data := make([]float64, len(m.data))
	for i, v := range m.data {
		data[i] = float64(v)
	}
	return mat.NewDense(m.n, m.n, data)
}
