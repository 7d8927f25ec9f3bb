package mpi

import "github.com/pkg/errors"

func (c *comm) checkRoot(root int) error {
	if root < 0 || root >= c.Size() {
		return errors.Wrapf(ErrRank, "root %d in group of %d", root, c.Size())
	}
	return nil
}

// Scatter never aliases send and recv on the root: its own block is copied
// like any other rank would receive it.
func (c *comm) Scatter(send, recv []int32, root int) error {
	if err := c.checkRoot(root); err != nil {
		return err
	}
	n := len(recv)
	if c.Rank() != root {
		return errors.Wrap(c.t.recv(recv, root, tagScatter), "scatter")
	}
	if len(send) != n*c.Size() {
		return errors.Wrapf(ErrBufferSize, "scatter of %d elements into %d blocks of %d", len(send), c.Size(), n)
	}
	for r := 0; r < c.Size(); r++ {
		block := send[r*n : (r+1)*n]
		if r == root {
			copy(recv, block)
			continue
		}
		if err := c.t.send(block, r, tagScatter); err != nil {
			return errors.Wrapf(err, "scatter to rank %d", r)
		}
	}
	return nil
}

func (c *comm) Bcast(buf []int32, root int) error {
	if err := c.checkRoot(root); err != nil {
		return err
	}
	if b, ok := c.t.(broadcaster); ok {
		return errors.Wrap(b.bcast(buf, root), "bcast")
	}
	if c.Rank() != root {
		return errors.Wrap(c.t.recv(buf, root, tagBcast), "bcast")
	}
	for r := 0; r < c.Size(); r++ {
		if r == root {
			continue
		}
		if err := c.t.send(buf, r, tagBcast); err != nil {
			return errors.Wrapf(err, "bcast to rank %d", r)
		}
	}
	return nil
}

func (c *comm) Gather(send, recv []int32, root int) error {
	if err := c.checkRoot(root); err != nil {
		return err
	}
	n := len(send)
	if c.Rank() != root {
		return errors.Wrap(c.t.send(send, root, tagGather), "gather")
	}
	if len(recv) != n*c.Size() {
		return errors.Wrapf(ErrBufferSize, "gather of %d blocks of %d into %d elements", c.Size(), n, len(recv))
	}
	for r := 0; r < c.Size(); r++ {
		block := recv[r*n : (r+1)*n]
		if r == root {
			copy(block, send)
			continue
		}
		if err := c.t.recv(block, r, tagGather); err != nil {
			return errors.Wrapf(err, "gather from rank %d", r)
		}
	}
	return nil
}
