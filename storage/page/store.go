package page

import (
	"github.com/zhukovaskychina/xcolstore/storage/memory"
)

// StoreKind selects the backing buffer strategy for a page. The choice is
// made once at page construction and never mixed within a page.
type StoreKind int

const (
	// StoreHeap keeps page bytes in a page-private Go slice
	StoreHeap StoreKind = iota
	// StoreRegion keeps page bytes in a region obtained from a task-accounted
	// memory manager
	StoreRegion
)

func (k StoreKind) String() string {
	switch k {
	case StoreHeap:
		return "heap"
	case StoreRegion:
		return "region"
	default:
		return "unknown"
	}
}

// ByteStore is the growable byte buffer behind a column page. Writes past the
// current capacity grow the buffer; reads copy bytes out. A store is released
// exactly once by the owning page.
type ByteStore interface {
	// WriteAt copies data to the absolute offset, growing the buffer first if
	// the write would exceed the current capacity
	WriteAt(offset int, data []byte) error

	// ReadAt copies out length bytes starting at the absolute offset
	ReadAt(offset int, length int) ([]byte, error)

	// CopyTo copies length bytes starting at offset into dst at dstOffset
	CopyTo(offset int, dst []byte, dstOffset int, length int) error

	// Capacity returns the current buffer size in bytes
	Capacity() int

	// Release returns the buffer to its allocator
	Release() error
}

// PageConfig carries the storage strategy choice and allocation identity into
// page constructors. TaskID threads through to the memory manager for
// accounting.
type PageConfig struct {
	Strategy StoreKind
	TaskID   uint64
	Manager  *memory.Manager
}

// DefaultPageConfig is the heap strategy with no region manager
func DefaultPageConfig() PageConfig {
	return PageConfig{Strategy: StoreHeap}
}

func (c PageConfig) newStore(capacity int) (ByteStore, error) {
	switch c.Strategy {
	case StoreRegion:
		mgr := c.Manager
		if mgr == nil {
			mgr = memory.Default()
		}
		return newRegionStore(c.TaskID, mgr, capacity)
	default:
		return newHeapStore(c.TaskID, capacity), nil
	}
}
