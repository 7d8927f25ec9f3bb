// Command mpimatmul multiplies two generated N×N integer matrices across a
// group of ranks and reports the result and the time the distributed
// pipeline took.
//
// Built plainly it runs -np ranks inside one process. Built with -tags mpi
// every MPI process is one rank:
//
//	go build -tags mpi ./cmd/mpimatmul && mpirun -np 4 ./mpimatmul 1024
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/pkg/errors"

	"github.com/RobbieSeven/Matrix-Multiplication-MPI/config"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/decomp"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/matmul"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/matrix"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/monitor"
	"github.com/RobbieSeven/Matrix-Multiplication-MPI/mpi"
)

const memInterval = 100 * time.Millisecond

func main() {
	cfg, err := config.Load(filepath.Base(os.Args[0]), ".env", os.Args[1:], os.Stderr)
	if err == flag.ErrHelp {
		os.Exit(0)
	}
	if err != nil {
		fatal("%v", err)
	}
	if cfg.Verbose {
		info("transport %s, %d local ranks", mpi.Transport, cfg.Procs)
	}

	out := &syncWriter{w: os.Stdout}
	err = mpi.Launch(context.Background(), cfg.Procs, func(g mpi.Group) error {
		return runRank(g, cfg, out)
	})
	switch {
	case err == nil:
	case errors.Cause(err) == decomp.ErrShapeMismatch:
		// every rank stopped before communicating; nothing left to report
	default:
		fatal("%v", err)
	}
}

// runRank is the program every rank executes.
func runRank(g mpi.Group, cfg *config.Config, out io.Writer) error {
	fmt.Fprintf(out, "Hello from processor %s, rank %d out of %d processors\n", g.Host(), g.Rank(), g.Size())

	job, err := matmul.NewJob(g, matmul.Options{Size: cfg.Size, ModA: cfg.ModA, ModB: cfg.ModB})
	if err != nil {
		if errors.Cause(err) == decomp.ErrShapeMismatch && g.Rank() == matmul.Coordinator {
			fmt.Fprintln(out, "Size of matrices must be divisible by the number of processors")
		}
		return err
	}
	if cfg.Verbose {
		job.Logf = tracef
	}

	if !job.IsCoordinator() {
		_, err := job.Run()
		return err
	}

	if !cfg.Quiet {
		matrix.Fprint(out, job.A, "First matrix")
		matrix.Fprint(out, job.B, "Second matrix")
	}

	res, err := runMonitored(job, cfg)
	if err != nil {
		return err
	}

	if !cfg.Quiet {
		matrix.Fprint(out, res.C, "Result matrix")
	}
	fmt.Fprintf(out, "The operation took %f seconds\n", res.Seconds)

	if cfg.Verify {
		switch err := matrix.Verify(job.A, job.B, res.C); errors.Cause(err) {
		case nil:
			info("result matches the serial product")
		case matrix.ErrOverflow:
			warn("not verified: %v", err)
		default:
			return errors.Wrap(err, "verify")
		}
	}
	return nil
}

// runMonitored runs the job under the profiler and memory recorder the
// configuration asks for.
func runMonitored(job *matmul.Job, cfg *config.Config) (*matmul.Result, error) {
	prof, err := monitor.StartProfile(cfg.Profile, cfg.ProfileDir)
	if err != nil {
		return nil, err
	}
	defer prof.Stop()

	if cfg.MemLog != "" {
		mem := monitor.NewMemRecorder(cfg.MemLog, memInterval)
		mem.Start()
		defer func() {
			if err := mem.Stop(); err != nil {
				warn("%v", err)
			}
		}()
	}
	return job.Run()
}
