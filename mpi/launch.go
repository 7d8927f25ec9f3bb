//go:build !mpi

package mpi

import "context"

// Transport names the backend compiled into this binary.
const Transport = "local"

// Launch runs fn as procs ranks inside this process. Build with -tags mpi to
// run one rank per MPI process instead.
func Launch(ctx context.Context, procs int, fn func(Group) error) error {
	return RunLocal(ctx, procs, fn)
}
