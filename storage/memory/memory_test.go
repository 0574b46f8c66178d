package memory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllocateAccountsPerTask(t *testing.T) {
	m := NewManager(0)

	b1, err := m.Allocate(1, 64)
	require.NoError(t, err)
	b2, err := m.Allocate(2, 32)
	require.NoError(t, err)

	assert.Equal(t, int64(96), m.UsedBytes())
	assert.Equal(t, int64(64), m.TaskUsedBytes(1))
	assert.Equal(t, int64(32), m.TaskUsedBytes(2))

	require.NoError(t, m.Free(1, b1))
	assert.Equal(t, int64(32), m.UsedBytes())
	assert.Equal(t, int64(0), m.TaskUsedBytes(1))

	require.NoError(t, m.Free(2, b2))
	assert.Equal(t, int64(0), m.UsedBytes())
}

func TestAllocateRespectsLimit(t *testing.T) {
	m := NewManager(100)

	b, err := m.Allocate(1, 80)
	require.NoError(t, err)

	_, err = m.Allocate(1, 40)
	assert.Equal(t, ErrOutOfMemory, err)

	// accounting untouched by the failed allocation
	assert.Equal(t, int64(80), m.UsedBytes())

	require.NoError(t, m.Free(1, b))
	_, err = m.Allocate(1, 40)
	assert.NoError(t, err)
}

func TestAllocateRejectsInvalidSize(t *testing.T) {
	m := NewManager(0)

	_, err := m.Allocate(1, 0)
	assert.Equal(t, ErrInvalidSize, err)

	_, err = m.Allocate(1, -8)
	assert.Equal(t, ErrInvalidSize, err)
}

func TestDoubleFreeRejected(t *testing.T) {
	m := NewManager(0)

	b, err := m.Allocate(7, 16)
	require.NoError(t, err)

	require.NoError(t, m.Free(7, b))
	assert.Equal(t, ErrBlockFreed, m.Free(7, b))
	assert.Equal(t, int64(0), m.UsedBytes())
}

func TestFreeForeignBlockRejected(t *testing.T) {
	m := NewManager(0)

	b, err := m.Allocate(1, 16)
	require.NoError(t, err)

	assert.Equal(t, ErrForeignBlock, m.Free(2, b))
	require.NoError(t, m.Free(1, b))
}

func TestCopyBetweenBlocks(t *testing.T) {
	m := NewManager(0)

	src, err := m.Allocate(1, 8)
	require.NoError(t, err)
	dst, err := m.Allocate(1, 16)
	require.NoError(t, err)

	copy(src.Bytes(), []byte{1, 2, 3, 4, 5, 6, 7, 8})
	require.NoError(t, m.Copy(src, 2, dst, 4, 4))
	assert.Equal(t, []byte{3, 4, 5, 6}, dst.Bytes()[4:8])

	assert.Equal(t, ErrCopyOutOfRange, m.Copy(src, 6, dst, 0, 4))

	require.NoError(t, m.Free(1, src))
	assert.Equal(t, ErrBlockFreed, m.Copy(src, 0, dst, 0, 1))
	require.NoError(t, m.Free(1, dst))
}
