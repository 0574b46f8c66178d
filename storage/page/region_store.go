package page

import (
	"github.com/juju/errors"
	"github.com/zhukovaskychina/xcolstore/logger"
	"github.com/zhukovaskychina/xcolstore/storage/memory"
)

// regionStore keeps the page buffer in a region obtained from a
// task-accounted memory manager. Growth allocates a new region, copies the
// entire previous capacity across, then frees the old region. A failed
// allocation leaves the store untouched.
type regionStore struct {
	taskID   uint64
	manager  *memory.Manager
	block    *memory.Block
	capacity int
	released bool
}

func newRegionStore(taskID uint64, manager *memory.Manager, capacity int) (*regionStore, error) {
	block, err := manager.Allocate(taskID, capacity)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &regionStore{
		taskID:   taskID,
		manager:  manager,
		block:    block,
		capacity: capacity,
	}, nil
}

// ensure grows the region so that at least minCapacity bytes are addressable
func (s *regionStore) ensure(minCapacity int) error {
	if minCapacity <= s.capacity {
		return nil
	}

	newCapacity := 2 * s.capacity
	if newCapacity < minCapacity {
		newCapacity = minCapacity
	}

	grown, err := s.manager.Allocate(s.taskID, newCapacity)
	if err != nil {
		// bookkeeping must stay intact on a failed growth
		return errors.Annotatef(err, "growing region store from %d to %d bytes", s.capacity, newCapacity)
	}
	if err := s.manager.Copy(s.block, 0, grown, 0, s.capacity); err != nil {
		s.manager.Free(s.taskID, grown)
		return errors.Trace(err)
	}
	if err := s.manager.Free(s.taskID, s.block); err != nil {
		return errors.Trace(err)
	}

	logger.Debugf("region store grown from %d to %d bytes for task %d", s.capacity, newCapacity, s.taskID)

	s.block = grown
	s.capacity = newCapacity
	return nil
}

func (s *regionStore) WriteAt(offset int, data []byte) error {
	if s.released {
		return errors.Trace(ErrStoreReleased)
	}
	if offset < 0 {
		return errors.Annotatef(ErrInvalidOffset, "offset %d", offset)
	}

	if err := s.ensure(offset + len(data)); err != nil {
		return errors.Trace(err)
	}
	copy(s.block.Bytes()[offset:], data)
	return nil
}

func (s *regionStore) ReadAt(offset int, length int) ([]byte, error) {
	if s.released {
		return nil, errors.Trace(ErrStoreReleased)
	}
	if offset < 0 || length < 0 || offset+length > s.capacity {
		return nil, errors.Annotatef(ErrReadOutOfRange, "offset %d length %d capacity %d", offset, length, s.capacity)
	}

	out := make([]byte, length)
	copy(out, s.block.Bytes()[offset:offset+length])
	return out, nil
}

func (s *regionStore) CopyTo(offset int, dst []byte, dstOffset int, length int) error {
	if s.released {
		return errors.Trace(ErrStoreReleased)
	}
	if offset < 0 || length < 0 || offset+length > s.capacity {
		return errors.Annotatef(ErrReadOutOfRange, "offset %d length %d capacity %d", offset, length, s.capacity)
	}

	copy(dst[dstOffset:dstOffset+length], s.block.Bytes()[offset:offset+length])
	return nil
}

func (s *regionStore) Capacity() int {
	return s.capacity
}

func (s *regionStore) Release() error {
	if s.released {
		return errors.Trace(ErrStoreReleased)
	}
	s.released = true
	return errors.Trace(s.manager.Free(s.taskID, s.block))
}
