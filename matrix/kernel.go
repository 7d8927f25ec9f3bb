package matrix

import "github.com/pkg/errors"

// MultiplyBlock computes the rows of C owned by the caller. a holds those
// rows of A (rows*N elements), c receives the same rows of C. Accumulation
// stays in int32 and wraps on overflow.
func MultiplyBlock(a []int32, b *Matrix, c []int32) error {
	n := b.n
	if len(a)%n != 0 || len(c) != len(a) {
		return errors.Wrapf(ErrInvalidInput, "block of %d elements against %d result elements for N=%d", len(a), len(c), n)
	}
	rows := len(a) / n
	for i := 0; i < rows; i++ {
		rowA := a[i*n : (i+1)*n]
		rowC := c[i*n : (i+1)*n]
		for j := 0; j < n; j++ {
			var sum int32
			for k, v := range rowA {
				sum += v * b.data[k*n+j]
			}
			rowC[j] = sum
		}
	}
	return nil
}

// Multiply is the serial product a×b.
func Multiply(a, b *Matrix) (*Matrix, error) {
	if a.n != b.n {
		return nil, errors.Wrapf(ErrInvalidInput, "size %d against %d", a.n, b.n)
	}
	c, err := New(a.n)
	if err != nil {
		return nil, err
	}
	if err := MultiplyBlock(a.data, b, c.data); err != nil {
		return nil, err
	}
	return c, nil
}
