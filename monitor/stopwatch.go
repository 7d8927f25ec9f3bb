// Package monitor measures a multiplication run: wall-clock time of the
// distributed pipeline, optional memory sampling and profiling.
package monitor

import "time"

// Stopwatch brackets one interval with monotonic readings taken on the
// same process.
type Stopwatch struct {
	start   time.Time
	elapsed time.Duration
	running bool
}

func (s *Stopwatch) Start() {
	s.start = time.Now()
	s.elapsed = 0
	s.running = true
}

func (s *Stopwatch) Stop() time.Duration {
	if s.running {
		s.elapsed = time.Since(s.start)
		s.running = false
	}
	return s.elapsed
}

func (s *Stopwatch) Elapsed() time.Duration {
	if s.running {
		return time.Since(s.start)
	}
	return s.elapsed
}

func (s *Stopwatch) Seconds() float64 { return s.Elapsed().Seconds() }
