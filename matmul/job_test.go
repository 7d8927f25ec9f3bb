package matmul

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RobbieSeven/Matrix-Multiplication-MPI/decomp"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/matrix"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/mpi"
)

// runGroup runs a job on p local ranks and returns the coordinator's result.
func runGroup(t *testing.T, p int, opts Options, setup func(*Job)) (*Result, error) {
	t.Helper()
	var res *Result
	err := mpi.RunLocal(context.Background(), p, func(g mpi.Group) error {
		j, err := NewJob(g, opts)
		if err != nil {
			return err
		}
		if setup != nil {
			setup(j)
		}
		r, err := j.Run()
		if err != nil {
			return err
		}
		if g.Rank() == Coordinator {
			res = r
		} else if r.C != nil {
			return errors.Errorf("rank %d returned a result matrix", g.Rank())
		}
		return nil
	})
	return res, err
}

func TestConcreteScenario(t *testing.T) {
	res, err := runGroup(t, 2, Options{Size: 4}, nil)
	require.NoError(t, err)
	assert.Equal(t, decomp.Plan{N: 4, P: 2, S: 2}, res.Plan)
	assert.Equal(t, []int32{
		10, 8, 10, 8,
		8, 10, 8, 10,
		10, 8, 10, 8,
		8, 10, 8, 10,
	}, res.C.Data())
}

func TestMatchesSerialProduct(t *testing.T) {
	cases := []struct {
		n, p, modA, modB int
	}{
		{1, 1, 0, 0},
		{6, 1, 3, 5},
		{6, 2, 0, 0},
		{6, 3, 4, 2},
		{12, 4, 7, 3},
		{16, 8, 0, 5},
		{15, 5, 9, 9},
	}
	for _, tc := range cases {
		res, err := runGroup(t, tc.p, Options{Size: tc.n, ModA: tc.modA, ModB: tc.modB}, nil)
		require.NoError(t, err, "n=%d p=%d", tc.n, tc.p)

		modA, modB := tc.modA, tc.modB
		if modA == 0 {
			modA = tc.p
		}
		if modB == 0 {
			modB = tc.p
		}
		a, err := matrix.Generate(tc.n, modA)
		require.NoError(t, err)
		b, err := matrix.Generate(tc.n, modB)
		require.NoError(t, err)
		want, err := matrix.Multiply(a, b)
		require.NoError(t, err)

		assert.True(t, want.Equal(res.C), "n=%d p=%d", tc.n, tc.p)
		assert.NoError(t, matrix.Verify(a, b, res.C))
	}
}

func TestShapeMismatchSkipsAllWork(t *testing.T) {
	var kernels int32
	done := make(chan error, 1)
	go func() {
		done <- mpi.RunLocal(context.Background(), 3, func(g mpi.Group) error {
			j, err := NewJob(g, Options{Size: 4})
			if err != nil {
				return err
			}
			j.Kernel = func(a []int32, b *matrix.Matrix, c []int32) error {
				atomic.AddInt32(&kernels, 1)
				return nil
			}
			_, err = j.Run()
			return err
		})
	}()

	select {
	case err := <-done:
		assert.Equal(t, decomp.ErrShapeMismatch, errors.Cause(err))
	case <-time.After(5 * time.Second):
		t.Fatal("ranks did not return")
	}
	assert.Zero(t, atomic.LoadInt32(&kernels))
}

func TestIdentityKernelRoundTrip(t *testing.T) {
	identity := func(a []int32, _ *matrix.Matrix, c []int32) error {
		copy(c, a)
		return nil
	}
	for _, p := range []int{1, 2, 4, 8} {
		res, err := runGroup(t, p, Options{Size: 8, ModA: 5}, func(j *Job) { j.Kernel = identity })
		require.NoError(t, err)

		a, err := matrix.Generate(8, 5)
		require.NoError(t, err)
		assert.True(t, a.Equal(res.C), "p=%d", p)
	}
}

func TestRunIsDeterministic(t *testing.T) {
	first, err := runGroup(t, 4, Options{Size: 12}, nil)
	require.NoError(t, err)
	second, err := runGroup(t, 4, Options{Size: 12}, nil)
	require.NoError(t, err)
	assert.Equal(t, first.C.Data(), second.C.Data())
}

func TestKernelErrorPropagates(t *testing.T) {
	boom := errors.New("boom")
	_, err := runGroup(t, 2, Options{Size: 4}, func(j *Job) {
		if j.Group.Rank() == 1 {
			j.Kernel = func([]int32, *matrix.Matrix, []int32) error { return boom }
		}
	})
	assert.Equal(t, boom, errors.Cause(err))
}

func TestWorkersHoldOnlyTheirBlocks(t *testing.T) {
	err := mpi.RunLocal(context.Background(), 4, func(g mpi.Group) error {
		j, err := NewJob(g, Options{Size: 8})
		if err != nil {
			return err
		}
		if g.Rank() != Coordinator && (j.A != nil || j.C != nil) {
			return errors.Errorf("rank %d allocated full matrices", g.Rank())
		}
		if len(j.blockA) != 16 || len(j.blockC) != 16 {
			return errors.Errorf("rank %d blocks of %d/%d", g.Rank(), len(j.blockA), len(j.blockC))
		}
		_, err = j.Run()
		return err
	})
	require.NoError(t, err)
}

func TestElapsedCoversOnlyThePipeline(t *testing.T) {
	const (
		kernelDelay = 20 * time.Millisecond
		setupDelay  = 200 * time.Millisecond
	)
	var res *Result
	err := mpi.RunLocal(context.Background(), 2, func(g mpi.Group) error {
		j, err := NewJob(g, Options{Size: 4})
		if err != nil {
			return err
		}
		j.Kernel = func(a []int32, b *matrix.Matrix, c []int32) error {
			time.Sleep(kernelDelay)
			return matrix.MultiplyBlock(a, b, c)
		}
		if g.Rank() == Coordinator {
			time.Sleep(setupDelay)
		}
		r, err := j.Run()
		if err != nil {
			return err
		}
		if g.Rank() == Coordinator {
			res = r
		}
		return nil
	})
	require.NoError(t, err)
	assert.GreaterOrEqual(t, res.Elapsed, kernelDelay)
	assert.Less(t, res.Elapsed, setupDelay)
	assert.InDelta(t, res.Elapsed.Seconds(), res.Seconds, 1e-9)
}
