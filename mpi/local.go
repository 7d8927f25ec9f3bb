package mpi

import (
	"context"
	"os"

	"github.com/pkg/errors"
	"golang.org/x/sync/errgroup"
)

// linkDepth is how many messages may sit unreceived on one rank pair.
const linkDepth = 4

type message struct {
	tag  int
	data []int32
}

// hub links every ordered pair of local ranks with its own channel.
type hub struct {
	links [][]chan message
}

func newHub(size int) *hub {
	h := &hub{links: make([][]chan message, size)}
	for from := range h.links {
		h.links[from] = make([]chan message, size)
		for to := range h.links[from] {
			h.links[from][to] = make(chan message, linkDepth)
		}
	}
	return h
}

// localTransport runs a rank as a goroutine of the current process. Payloads
// are copied on send so ranks never share a buffer.
type localTransport struct {
	ctx context.Context
	hub *hub
	me  int
}

func (t *localTransport) rank() int { return t.me }
func (t *localTransport) size() int { return len(t.hub.links) }

func (t *localTransport) send(buf []int32, to, tag int) error {
	if to < 0 || to >= t.size() {
		return errors.Wrapf(ErrRank, "send to %d", to)
	}
	msg := message{tag: tag, data: append([]int32(nil), buf...)}
	select {
	case t.hub.links[t.me][to] <- msg:
		return nil
	case <-t.ctx.Done():
		return errors.Wrapf(t.ctx.Err(), "rank %d send to %d", t.me, to)
	}
}

func (t *localTransport) recv(buf []int32, from, tag int) error {
	if from < 0 || from >= t.size() {
		return errors.Wrapf(ErrRank, "recv from %d", from)
	}
	select {
	case msg := <-t.hub.links[from][t.me]:
		if msg.tag != tag {
			return errors.Wrapf(ErrProtocol, "rank %d got tag %d from %d, want %d", t.me, msg.tag, from, tag)
		}
		if len(msg.data) != len(buf) {
			return errors.Wrapf(ErrBufferSize, "rank %d got %d elements from %d, want %d", t.me, len(msg.data), from, len(buf))
		}
		copy(buf, msg.data)
		return nil
	case <-t.ctx.Done():
		return errors.Wrapf(t.ctx.Err(), "rank %d recv from %d", t.me, from)
	}
}

// RunLocal runs fn once per rank of a size-rank group, each rank in its own
// goroutine, and returns the first error. A failing rank cancels the group
// so the others return instead of blocking in a collective.
func RunLocal(ctx context.Context, size int, fn func(Group) error) error {
	if size <= 0 {
		return errors.Wrapf(ErrGroupSize, "%d", size)
	}
	host, _ := os.Hostname()
	h := newHub(size)
	eg, ctx := errgroup.WithContext(ctx)
	for r := 0; r < size; r++ {
		t := &localTransport{ctx: ctx, hub: h, me: r}
		eg.Go(func() error {
			return fn(&comm{t: t, host: host})
		})
	}
	return eg.Wait()
}

// Self is a single-rank group; every collective is a local copy.
func Self() Group {
	host, _ := os.Hostname()
	return &comm{t: &localTransport{ctx: context.Background(), hub: newHub(1)}, host: host}
}
