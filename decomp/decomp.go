// Package decomp splits the rows of an N×N matrix into equal contiguous
// slices, one per rank.
package decomp

import "github.com/pkg/errors"

var (
	ErrShapeMismatch = errors.New("size of matrices must be divisible by the number of processors")
	ErrInvalidInput  = errors.New("invalid decomposition input")
)

// Plan is the row decomposition of an N×N matrix over P ranks, S rows each.
type Plan struct {
	N int
	P int
	S int
}

// Slice is the half-open row range [Lo, Hi) owned by Rank.
type Slice struct {
	Rank int
	Lo   int
	Hi   int
}

// New derives the plan from n and p alone. Every rank holds both values
// before any message is exchanged, so all ranks agree on the verdict.
func New(n, p int) (Plan, error) {
	if n <= 0 || p <= 0 {
		return Plan{}, errors.Wrapf(ErrInvalidInput, "n=%d p=%d", n, p)
	}
	if n%p != 0 {
		return Plan{}, errors.Wrapf(ErrShapeMismatch, "n=%d p=%d", n, p)
	}
	return Plan{N: n, P: p, S: n / p}, nil
}

func (p Plan) Slice(rank int) Slice {
	return Slice{Rank: rank, Lo: rank * p.S, Hi: (rank + 1) * p.S}
}

func (p Plan) Slices() []Slice {
	out := make([]Slice, p.P)
	for r := range out {
		out[r] = p.Slice(r)
	}
	return out
}

// BlockLen is the number of elements in one rank's row block.
func (p Plan) BlockLen() int { return p.S * p.N }

// Offset is the element offset of rank's block in a full matrix buffer.
func (p Plan) Offset(rank int) int { return rank * p.BlockLen() }

func (s Slice) Rows() int { return s.Hi - s.Lo }
