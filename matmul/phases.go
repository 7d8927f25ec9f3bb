package matmul

import "github.com/pkg/errors"

func (j *Job) fullA() []int32 {
	if j.A == nil {
		return nil
	}
	return j.A.Data()
}

func (j *Job) fullC() []int32 {
	if j.C == nil {
		return nil
	}
	return j.C.Data()
}

// distribute scatters one block of A rows to every rank.
func (j *Job) distribute() error {
	s := j.Plan.Slice(j.Group.Rank())
	j.Logf("rank %d: receiving rows [%d,%d) of the first matrix", s.Rank, s.Lo, s.Hi)
	return errors.Wrap(j.Group.Scatter(j.fullA(), j.blockA, Coordinator), "distribute")
}

// replicate broadcasts the whole of B.
func (j *Job) replicate() error {
	j.Logf("rank %d: receiving the second matrix", j.Group.Rank())
	return errors.Wrap(j.Group.Bcast(j.B.Data(), Coordinator), "replicate")
}

func (j *Job) compute() error {
	s := j.Plan.Slice(j.Group.Rank())
	j.Logf("rank %d: computing rows [%d,%d)", s.Rank, s.Lo, s.Hi)
	return errors.Wrap(j.Kernel(j.blockA, j.B, j.blockC), "compute")
}

// collect gathers the C blocks into the coordinator's result in rank order.
func (j *Job) collect() error {
	j.Logf("rank %d: sending result rows", j.Group.Rank())
	return errors.Wrap(j.Group.Gather(j.blockC, j.fullC(), Coordinator), "collect")
}
