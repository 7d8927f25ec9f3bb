package monitor

import (
	"fmt"
	"os"
	"runtime"
	"strconv"
	"time"

	"github.com/pkg/errors"
)

// MemRecorder samples the Go heap every interval between Start and Stop and
// writes the samples as a markdown table.
type MemRecorder struct {
	path     string
	interval time.Duration
	start    chan struct{}
	stop     chan struct{}
	done     chan error
}

func NewMemRecorder(path string, interval time.Duration) *MemRecorder {
	r := &MemRecorder{
		path:     path,
		interval: interval,
		start:    make(chan struct{}),
		stop:     make(chan struct{}),
		done:     make(chan error, 1),
	}
	go r.loop()
	return r
}

func (r *MemRecorder) loop() {
	select {
	case <-r.start:
	case <-r.stop:
		r.done <- nil
		return
	}

	records := "|seconds|mem|Heap|GC|"
	var memStats runtime.MemStats
	count := 1
	tick := time.NewTicker(r.interval)
	defer tick.Stop()

	sample := func() {
		runtime.ReadMemStats(&memStats)
		records += "\n|" + strconv.Itoa(count) +
			"|" + strconv.FormatUint(memStats.Alloc/1024/1024, 10) +
			"|" + strconv.FormatUint(memStats.HeapAlloc/1024/1024, 10) +
			"|" + strconv.Itoa(int(memStats.NumGC)) + "|"
		count++
	}
	sample()

	for {
		select {
		case <-r.stop:
			sample()
			r.done <- r.flush(records)
			return
		case <-tick.C:
			sample()
		}
	}
}

func (r *MemRecorder) flush(records string) error {
	h, err := os.Create(r.path)
	if err != nil {
		return errors.Wrap(err, "memory log")
	}
	defer h.Close()
	if _, err := fmt.Fprintln(h, records); err != nil {
		return errors.Wrap(err, "memory log")
	}
	return nil
}

func (r *MemRecorder) Start() { close(r.start) }

// Stop ends sampling and waits for the table to be written. A recorder
// that was never started writes nothing.
func (r *MemRecorder) Stop() error {
	close(r.stop)
	return <-r.done
}
