// Package mpi provides the process group the ranks of a multiplication
// communicate through. Collectives are blocking and every rank of the group
// must enter them in the same order; a rank that skips one leaves the others
// waiting.
package mpi

import "github.com/pkg/errors"

var (
	ErrBufferSize = errors.New("buffer size does not match the collective")
	ErrRank       = errors.New("rank out of range")
	ErrProtocol   = errors.New("unexpected message")
	ErrGroupSize  = errors.New("process group size must be positive")
)

const (
	tagScatter = iota + 1
	tagBcast
	tagGather
)

// Group is one rank's handle on the process group.
type Group interface {
	Rank() int
	Size() int
	// Host names the processor this rank runs on.
	Host() string
	// Scatter cuts root's send buffer into Size() equal blocks and delivers
	// block r into rank r's recv.
	Scatter(send, recv []int32, root int) error
	// Bcast copies root's buf into buf on every rank.
	Bcast(buf []int32, root int) error
	// Gather places every rank's send block into root's recv at offset
	// rank*len(send).
	Gather(send, recv []int32, root int) error
}

// transport is the point-to-point layer collectives are built on.
type transport interface {
	rank() int
	size() int
	send(buf []int32, to, tag int) error
	recv(buf []int32, from, tag int) error
}

// broadcaster is implemented by transports with a native broadcast.
type broadcaster interface {
	bcast(buf []int32, root int) error
}

type comm struct {
	t    transport
	host string
}

func (c *comm) Rank() int    { return c.t.rank() }
func (c *comm) Size() int    { return c.t.size() }
func (c *comm) Host() string { return c.host }
