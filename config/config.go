// Package config reads the run settings from an optional .env file, the
// environment and the command line, in increasing order of precedence.
package config

import (
	"flag"
	"io"
	"os"
	"runtime"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/pkg/errors"
)

var ErrInvalidInput = errors.New("invalid input")

type Config struct {
	// Size is N, the single positional argument.
	Size int
	// Procs is the number of local ranks; under mpirun the group size
	// comes from the launcher instead.
	Procs int
	ModA  int
	ModB  int

	Verify     bool
	Quiet      bool
	Verbose    bool
	Profile    string
	ProfileDir string
	MemLog     string
}

func defaults() Config {
	return Config{Procs: runtime.NumCPU(), ProfileDir: "."}
}

// Load reads envFile (a missing file is fine), then the MATMUL_* variables,
// then parses args. name is used in usage messages. -h prints the usage and
// returns flag.ErrHelp.
func Load(name, envFile string, args []string, stderr io.Writer) (*Config, error) {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "loading %s", envFile)
		}
	}
	cfg := defaults()
	if err := cfg.fromEnv(); err != nil {
		return nil, err
	}

	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.IntVar(&cfg.Procs, "np", cfg.Procs, "Number of local ranks (ignored when built with -tags mpi)")
	fs.IntVar(&cfg.ModA, "moda", cfg.ModA, "Modulus for the first matrix, 0 for the number of ranks")
	fs.IntVar(&cfg.ModB, "modb", cfg.ModB, "Modulus for the second matrix, 0 for the number of ranks")
	fs.BoolVar(&cfg.Verify, "verify", cfg.Verify, "Check the result against a serial gonum product")
	fs.BoolVar(&cfg.Quiet, "quiet", cfg.Quiet, "Do not print the matrices")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "Trace every communication phase")
	fs.StringVar(&cfg.Profile, "profile", cfg.Profile, "Profile the run: cpu or mem")
	fs.StringVar(&cfg.ProfileDir, "profiledir", cfg.ProfileDir, "The dir where profiles are written")
	fs.StringVar(&cfg.MemLog, "memlog", cfg.MemLog, "Write heap samples of the run to this file")
	fs.Usage = func() {
		io.WriteString(fs.Output(), "usage: "+name+" [flags] N\n")
		fs.PrintDefaults()
	}
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil, err
		}
		return nil, errors.Wrap(ErrInvalidInput, err.Error())
	}

	if fs.NArg() != 1 {
		return nil, errors.Wrapf(ErrInvalidInput, "expected one matrix size argument, got %d", fs.NArg())
	}
	size, err := strconv.Atoi(fs.Arg(0))
	if err != nil {
		return nil, errors.Wrapf(ErrInvalidInput, "matrix size %q is not a number", fs.Arg(0))
	}
	cfg.Size = size
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) fromEnv() error {
	ints := []struct {
		key string
		dst *int
	}{
		{"MATMUL_PROCS", &c.Procs},
		{"MATMUL_MOD_A", &c.ModA},
		{"MATMUL_MOD_B", &c.ModB},
	}
	for _, e := range ints {
		if v := os.Getenv(e.key); v != "" {
			n, err := strconv.Atoi(v)
			if err != nil {
				return errors.Wrapf(ErrInvalidInput, "%s=%q", e.key, v)
			}
			*e.dst = n
		}
	}
	bools := []struct {
		key string
		dst *bool
	}{
		{"MATMUL_VERIFY", &c.Verify},
		{"MATMUL_QUIET", &c.Quiet},
		{"MATMUL_VERBOSE", &c.Verbose},
	}
	for _, e := range bools {
		if v := os.Getenv(e.key); v != "" {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return errors.Wrapf(ErrInvalidInput, "%s=%q", e.key, v)
			}
			*e.dst = b
		}
	}
	if v := os.Getenv("MATMUL_PROFILE"); v != "" {
		c.Profile = v
	}
	if v := os.Getenv("MATMUL_PROFILE_DIR"); v != "" {
		c.ProfileDir = v
	}
	if v := os.Getenv("MATMUL_MEMLOG"); v != "" {
		c.MemLog = v
	}
	return nil
}

func (c *Config) validate() error {
	switch {
	case c.Size <= 0:
		return errors.Wrapf(ErrInvalidInput, "matrix size %d must be positive", c.Size)
	case c.Procs <= 0:
		return errors.Wrapf(ErrInvalidInput, "rank count %d must be positive", c.Procs)
	case c.ModA < 0 || c.ModB < 0:
		return errors.Wrapf(ErrInvalidInput, "moduli %d, %d must not be negative", c.ModA, c.ModB)
	case c.Profile != "" && c.Profile != "cpu" && c.Profile != "mem":
		return errors.Wrapf(ErrInvalidInput, "profile mode %q, want cpu or mem", c.Profile)
	}
	return nil
}
