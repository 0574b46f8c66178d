package page

import (
	"github.com/juju/errors"
	"github.com/zhukovaskychina/xcolstore/logger"
)

// heapStore keeps the page buffer in a page-private Go slice. Growth follows
// the same double-and-copy policy as the region store: the entire previous
// capacity is copied, slack bytes included.
type heapStore struct {
	taskID   uint64
	data     []byte
	capacity int
	released bool
}

func newHeapStore(taskID uint64, capacity int) *heapStore {
	return &heapStore{
		taskID:   taskID,
		data:     make([]byte, capacity),
		capacity: capacity,
	}
}

// ensure grows the buffer so that at least minCapacity bytes are addressable
func (s *heapStore) ensure(minCapacity int) {
	if minCapacity <= s.capacity {
		return
	}

	newCapacity := 2 * s.capacity
	if newCapacity < minCapacity {
		newCapacity = minCapacity
	}

	grown := make([]byte, newCapacity)
	copy(grown, s.data[:s.capacity])
	s.data = grown

	logger.Debugf("heap store grown from %d to %d bytes for task %d", s.capacity, newCapacity, s.taskID)
	s.capacity = newCapacity
}

func (s *heapStore) WriteAt(offset int, data []byte) error {
	if s.released {
		return errors.Trace(ErrStoreReleased)
	}
	if offset < 0 {
		return errors.Annotatef(ErrInvalidOffset, "offset %d", offset)
	}

	s.ensure(offset + len(data))
	copy(s.data[offset:], data)
	return nil
}

func (s *heapStore) ReadAt(offset int, length int) ([]byte, error) {
	if s.released {
		return nil, errors.Trace(ErrStoreReleased)
	}
	if offset < 0 || length < 0 || offset+length > s.capacity {
		return nil, errors.Annotatef(ErrReadOutOfRange, "offset %d length %d capacity %d", offset, length, s.capacity)
	}

	out := make([]byte, length)
	copy(out, s.data[offset:offset+length])
	return out, nil
}

func (s *heapStore) CopyTo(offset int, dst []byte, dstOffset int, length int) error {
	if s.released {
		return errors.Trace(ErrStoreReleased)
	}
	if offset < 0 || length < 0 || offset+length > s.capacity {
		return errors.Annotatef(ErrReadOutOfRange, "offset %d length %d capacity %d", offset, length, s.capacity)
	}

	copy(dst[dstOffset:dstOffset+length], s.data[offset:offset+length])
	return nil
}

func (s *heapStore) Capacity() int {
	return s.capacity
}

func (s *heapStore) Release() error {
	if s.released {
		return errors.Trace(ErrStoreReleased)
	}
	s.released = true
	s.data = nil
	return nil
}
