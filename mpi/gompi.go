//go:build mpi

package mpi

import (
	"context"
	"os"

	"github.com/pkg/errors"
	gompi "github.com/sbromberger/gompi"
)

// Transport names the backend compiled into this binary.
const Transport = "mpi"

// mpiTransport maps the point-to-point layer onto MPI_COMM_WORLD.
type mpiTransport struct {
	comm *gompi.Communicator
}

func (t *mpiTransport) rank() int { return t.comm.Rank() }
func (t *mpiTransport) size() int { return t.comm.Size() }

func (t *mpiTransport) send(buf []int32, to, tag int) error {
	t.comm.SendInt32s(buf, to, tag)
	return nil
}

func (t *mpiTransport) recv(buf []int32, from, tag int) error {
	vals, _ := t.comm.RecvInt32s(from, tag)
	if len(vals) != len(buf) {
		return errors.Wrapf(ErrBufferSize, "rank %d got %d elements from %d, want %d", t.rank(), len(vals), from, len(buf))
	}
	copy(buf, vals)
	return nil
}

func (t *mpiTransport) bcast(buf []int32, root int) error {
	t.comm.BcastInt32s(buf, root)
	return nil
}

// Launch starts MPI and runs fn once for this process. The group size comes
// from mpirun, so procs is ignored.
func Launch(ctx context.Context, procs int, fn func(Group) error) error {
	gompi.Start(true)
	defer gompi.Stop()
	host, _ := os.Hostname()
	return fn(&comm{t: &mpiTransport{comm: gompi.NewCommunicator(nil)}, host: host})
}
