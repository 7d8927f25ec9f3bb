package monitor

import (
	"github.com/pkg/errors"
	"github.com/pkg/profile"
)

var ErrProfileMode = errors.New("unknown profile mode")

// Stopper ends a profile and flushes it to disk.
type Stopper interface {
	Stop()
}

type noop struct{}

func (noop) Stop() {}

// StartProfile starts a "cpu" or "mem" profile written under dir. An empty
// mode profiles nothing.
func StartProfile(mode, dir string) (Stopper, error) {
	var opt func(*profile.Profile)
	switch mode {
	case "":
		return noop{}, nil
	case "cpu":
		opt = profile.CPUProfile
	case "mem":
		opt = profile.MemProfile
	default:
		return nil, errors.Wrapf(ErrProfileMode, "%q", mode)
	}
	if dir == "" {
		dir = "."
	}
	return profile.Start(opt, profile.ProfilePath(dir), profile.Quiet, profile.NoShutdownHook), nil
}
