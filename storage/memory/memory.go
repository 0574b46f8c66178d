package memory

import (
	"errors"
	"sync"

	"github.com/zhukovaskychina/xcolstore/logger"
)

var (
	ErrOutOfMemory    = errors.New("memory limit exceeded")
	ErrBlockFreed     = errors.New("memory block already freed")
	ErrForeignBlock   = errors.New("block was not allocated for this task")
	ErrInvalidSize    = errors.New("invalid allocation size")
	ErrCopyOutOfRange = errors.New("copy range beyond block bounds")
)

// Block is a contiguous memory region handed out by a Manager. The owning
// page addresses it by absolute byte offset for its whole lifetime.
type Block struct {
	buf    []byte
	taskID uint64
	freed  bool
}

// Size returns the block size in bytes
func (b *Block) Size() int {
	return len(b.buf)
}

// Bytes exposes the backing buffer. Callers must not retain the slice past
// Free.
func (b *Block) Bytes() []byte {
	return b.buf
}

// IsFreed reports whether the block has been returned to the manager
func (b *Block) IsFreed() bool {
	return b.freed
}

// Manager allocates memory regions and accounts every byte against the task
// that requested it. A zero limit means unlimited.
type Manager struct {
	mu      sync.Mutex
	limit   int64
	used    int64
	taskUse map[uint64]int64
}

// NewManager creates a manager with the given global byte limit (0 = unlimited)
func NewManager(limit int64) *Manager {
	return &Manager{
		limit:   limit,
		taskUse: make(map[uint64]int64),
	}
}

var defaultManager = NewManager(0)

// Default returns the process-wide unlimited manager
func Default() *Manager {
	return defaultManager
}

// Allocate obtains a region of size bytes accounted to taskID
func (m *Manager) Allocate(taskID uint64, size int) (*Block, error) {
	if size <= 0 {
		return nil, ErrInvalidSize
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.limit > 0 && m.used+int64(size) > m.limit {
		return nil, ErrOutOfMemory
	}

	m.used += int64(size)
	m.taskUse[taskID] += int64(size)

	logger.Debugf("allocated %d bytes for task %d, task total %d", size, taskID, m.taskUse[taskID])

	return &Block{
		buf:    make([]byte, size),
		taskID: taskID,
	}, nil
}

// Free returns a block to the manager. Freeing twice or freeing a block
// allocated for another task is a contract violation.
func (m *Manager) Free(taskID uint64, block *Block) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if block.freed {
		return ErrBlockFreed
	}
	if block.taskID != taskID {
		return ErrForeignBlock
	}

	m.used -= int64(block.Size())
	m.taskUse[taskID] -= int64(block.Size())
	if m.taskUse[taskID] == 0 {
		delete(m.taskUse, taskID)
	}

	logger.Debugf("freed %d bytes for task %d", block.Size(), taskID)

	block.freed = true
	block.buf = nil
	return nil
}

// Copy moves length bytes between blocks at absolute offsets
func (m *Manager) Copy(src *Block, srcOffset int, dst *Block, dstOffset int, length int) error {
	if src.freed || dst.freed {
		return ErrBlockFreed
	}
	if srcOffset < 0 || dstOffset < 0 || length < 0 ||
		srcOffset+length > src.Size() || dstOffset+length > dst.Size() {
		return ErrCopyOutOfRange
	}
	copy(dst.buf[dstOffset:dstOffset+length], src.buf[srcOffset:srcOffset+length])
	return nil
}

// UsedBytes returns the total bytes currently allocated
func (m *Manager) UsedBytes() int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.used
}

// TaskUsedBytes returns the bytes currently allocated for one task
func (m *Manager) TaskUsedBytes(taskID uint64) int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.taskUse[taskID]
}
