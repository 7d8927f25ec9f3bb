// Package matrix holds the square integer matrices exchanged between ranks:
// contiguous row-major storage, the deterministic initializer and the local
// multiply kernel.
package matrix

import (
	"math"

	"github.com/pkg/errors"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrAllocation   = errors.New("allocation failure")
)

// Matrix is an N×N grid of int32 stored in one row-major block,
// element (i,j) at offset i*N+j.
type Matrix struct {
	n    int
	data []int32
}

func New(n int) (*Matrix, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	return &Matrix{n: n, data: make([]int32, n*n)}, nil
}

// FromRows wraps data without copying it.
func FromRows(n int, data []int32) (*Matrix, error) {
	if err := checkSize(n); err != nil {
		return nil, err
	}
	if len(data) != n*n {
		return nil, errors.Wrapf(ErrInvalidInput, "buffer holds %d elements, want %d", len(data), n*n)
	}
	return &Matrix{n: n, data: data}, nil
}

func checkSize(n int) error {
	if n <= 0 {
		return errors.Wrapf(ErrInvalidInput, "matrix size %d must be positive", n)
	}
	if n > int(math.Sqrt(float64(math.MaxInt32))) {
		return errors.Wrapf(ErrAllocation, "%dx%d elements exceed the int32 element count of one message", n, n)
	}
	return nil
}

func (m *Matrix) N() int { return m.n }

func (m *Matrix) At(i, j int) int32 { return m.data[i*m.n+j] }

func (m *Matrix) Set(i, j int, v int32) { m.data[i*m.n+j] = v }

// Row returns a view of row i.
func (m *Matrix) Row(i int) []int32 {
	return m.data[i*m.n : (i+1)*m.n]
}

// Rows returns a view of the contiguous block holding rows [lo, hi).
func (m *Matrix) Rows(lo, hi int) []int32 {
	return m.data[lo*m.n : hi*m.n]
}

func (m *Matrix) Data() []int32 { return m.data }

func (m *Matrix) Clone() *Matrix {
	data := make([]int32, len(m.data))
	copy(data, m.data)
	return &Matrix{n: m.n, data: data}
}

func (m *Matrix) Equal(o *Matrix) bool {
	if m == nil || o == nil {
		return m == o
	}
	if m.n != o.n {
		return false
	}
	for i, v := range m.data {
		if o.data[i] != v {
			return false
		}
	}
	return true
}
