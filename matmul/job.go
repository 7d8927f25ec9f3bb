// Package matmul runs the distributed product C = A×B: the coordinator
// scatters row blocks of A, broadcasts B, every rank multiplies its own
// rows and the coordinator gathers the blocks of C back in rank order.
package matmul

import (
	"time"

	"github.com/pkg/errors"

	"github.com/RobbieSeven/Matrix-Multiplication-MPI/decomp"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/matrix"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/monitor"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/mpi"
)

// Coordinator is the rank that owns the inputs and assembles the result.
const Coordinator = 0

type Options struct {
	Size int
	// ModA and ModB are the initializer moduli; zero means the group size.
	ModA int
	ModB int
}

func (o *Options) setDefaults(p int) {
	if o.ModA == 0 {
		o.ModA = p
	}
	if o.ModB == 0 {
		o.ModB = p
	}
}

// Kernel computes the C rows for the A rows in a.
type Kernel func(a []int32, b *matrix.Matrix, c []int32) error

// Job is one rank's share of a multiplication. Workers hold only their
// row blocks of A and C; the coordinator also holds the full A and C.
type Job struct {
	Group  mpi.Group
	Plan   decomp.Plan
	Opts   Options
	Kernel Kernel
	Logf   func(format string, args ...interface{})

	A *matrix.Matrix // coordinator only
	B *matrix.Matrix
	C *matrix.Matrix // coordinator only

	blockA []int32
	blockC []int32
}

type Result struct {
	Plan decomp.Plan
	// C is the assembled product, nil on every rank but the coordinator.
	C *matrix.Matrix
	// Elapsed covers distribute through collect on this rank, nothing
	// before or after.
	Elapsed time.Duration
	Seconds float64
}

// NewJob validates the decomposition and allocates this rank's buffers. The
// check depends only on the size and the group size, so a mismatch makes
// every rank fail here before any collective is entered.
func NewJob(g mpi.Group, opts Options) (*Job, error) {
	opts.setDefaults(g.Size())
	plan, err := decomp.New(opts.Size, g.Size())
	if err != nil {
		return nil, err
	}
	b, err := matrix.New(plan.N)
	if err != nil {
		return nil, err
	}
	j := &Job{
		Group:  g,
		Plan:   plan,
		Opts:   opts,
		Kernel: matrix.MultiplyBlock,
		Logf:   func(string, ...interface{}) {},
		B:      b,
		blockA: make([]int32, plan.BlockLen()),
		blockC: make([]int32, plan.BlockLen()),
	}
	if g.Rank() == Coordinator {
		if j.A, err = matrix.Generate(plan.N, opts.ModA); err != nil {
			return nil, errors.Wrap(err, "first matrix")
		}
		if err = matrix.Init(j.B, opts.ModB); err != nil {
			return nil, errors.Wrap(err, "second matrix")
		}
		if j.C, err = matrix.New(plan.N); err != nil {
			return nil, err
		}
	}
	return j, nil
}

func (j *Job) IsCoordinator() bool { return j.Group.Rank() == Coordinator }

// Run executes distribute, replicate, compute and collect in that order and
// times them on this rank.
func (j *Job) Run() (*Result, error) {
	var sw monitor.Stopwatch
	sw.Start()
	if err := j.distribute(); err != nil {
		return nil, err
	}
	if err := j.replicate(); err != nil {
		return nil, err
	}
	if err := j.compute(); err != nil {
		return nil, err
	}
	if err := j.collect(); err != nil {
		return nil, err
	}
	sw.Stop()
	res := &Result{Plan: j.Plan, Elapsed: sw.Elapsed(), Seconds: sw.Seconds()}
	if j.IsCoordinator() {
		res.C = j.C
	}
	return res, nil
}
