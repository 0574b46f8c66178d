package page

import (
	"math"
	"testing"

	"github.com/juju/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zhukovaskychina/xcolstore/meta"
	"github.com/zhukovaskychina/xcolstore/storage/memory"
)

func testPageConfigs() map[string]PageConfig {
	return map[string]PageConfig{
		"heap":   {Strategy: StoreHeap, TaskID: 1},
		"region": {Strategy: StoreRegion, TaskID: 1, Manager: memory.NewManager(0)},
	}
}

func TestAppendAndGetBytes(t *testing.T) {
	for name, cfg := range testPageConfigs() {
		t.Run(name, func(t *testing.T) {
			spec := meta.NewColumnSpec("name", meta.DataTypeString)
			p, err := NewVarLengthColumnPage(spec, meta.DataTypeString, 3, cfg)
			require.NoError(t, err)

			rows := [][]byte{[]byte("alpha"), {}, []byte("gamma")}
			for i, row := range rows {
				require.NoError(t, p.AppendBytes(i, row))
			}

			assert.Equal(t, 3, p.RowCount())
			assert.Equal(t, 10, p.TotalLength())

			for i, row := range rows {
				got, err := p.GetBytes(i)
				require.NoError(t, err)
				assert.Equal(t, row, append([]byte{}, got...))
			}

			require.NoError(t, p.Release())
		})
	}
}

func TestAppendOutOfOrderRejected(t *testing.T) {
	spec := meta.NewColumnSpec("name", meta.DataTypeString)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeString, 4, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.AppendBytes(0, []byte("a")))

	// skipping a row
	err = p.AppendBytes(2, []byte("c"))
	assert.Equal(t, ErrRowOutOfOrder, errors.Cause(err))

	// overwriting an existing row
	err = p.AppendBytes(0, []byte("again"))
	assert.Equal(t, ErrRowOutOfOrder, errors.Cause(err))

	// the failed appends left nothing behind
	assert.Equal(t, 1, p.RowCount())
	assert.Equal(t, 1, p.TotalLength())
}

func TestAppendOversizeRejected(t *testing.T) {
	spec := meta.NewColumnSpec("blob", meta.DataTypeByteArray)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeByteArray, 1, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	// simulate a page already holding nearly 2GB of value bytes
	p.totalLength = math.MaxInt32 - 3

	before := p.store.Capacity()
	err = p.AppendBytes(0, []byte{1, 2, 3, 4})
	assert.Equal(t, ErrPageSizeOverflow, errors.Cause(err))

	// rejected before any byte was written
	assert.Equal(t, 0, p.RowCount())
	assert.Equal(t, before, p.store.Capacity())
}

func TestAppendGrowthKeepsRows(t *testing.T) {
	for name, cfg := range testPageConfigs() {
		t.Run(name, func(t *testing.T) {
			spec := meta.NewColumnSpec("v", meta.DataTypeString)
			// capacity below 10 bytes so two 5-byte rows force a growth
			p, err := newVarLengthColumnPageWithCapacity(spec, meta.DataTypeString, 2, 8, cfg)
			require.NoError(t, err)

			require.NoError(t, p.AppendBytes(0, []byte("first")))
			require.NoError(t, p.AppendBytes(1, []byte("secnd")))
			assert.Greater(t, p.store.Capacity(), 8)

			got, err := p.GetBytes(0)
			require.NoError(t, err)
			assert.Equal(t, []byte("first"), got)

			got, err = p.GetBytes(1)
			require.NoError(t, err)
			assert.Equal(t, []byte("secnd"), got)

			require.NoError(t, p.Release())
		})
	}
}

func TestManyAppendsAcrossGrowths(t *testing.T) {
	for name, cfg := range testPageConfigs() {
		t.Run(name, func(t *testing.T) {
			spec := meta.NewColumnSpec("v", meta.DataTypeString)
			p, err := newVarLengthColumnPageWithCapacity(spec, meta.DataTypeString, 256, 4, cfg)
			require.NoError(t, err)

			var rows [][]byte
			for i := 0; i < 256; i++ {
				row := make([]byte, i%17)
				for j := range row {
					row[j] = byte(i)
				}
				rows = append(rows, row)
				require.NoError(t, p.AppendBytes(i, row))
			}

			for i, row := range rows {
				got, err := p.GetBytes(i)
				require.NoError(t, err)
				assert.Equal(t, row, append([]byte{}, got...), "row %d", i)
			}

			require.NoError(t, p.Release())
		})
	}
}

func TestOffsetIndexMatchesAppends(t *testing.T) {
	spec := meta.NewColumnSpec("v", meta.DataTypeString)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeString, 5, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	lengths := []int{4, 0, 9, 1, 2}
	for i, l := range lengths {
		require.NoError(t, p.AppendBytes(i, make([]byte, l)))
	}

	assert.Equal(t, int32(0), p.index.OffsetOf(0))
	for i, l := range lengths {
		assert.Equal(t, int32(l), p.index.LengthOf(i))
	}
	assert.Equal(t, int32(p.totalLength), p.index.TotalLength())
}

func TestLVFlattenedBytes(t *testing.T) {
	spec := meta.NewColumnSpec("v", meta.DataTypeString)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeString, 2, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.AppendBytes(0, []byte("abc")))
	require.NoError(t, p.AppendBytes(1, []byte("xy")))

	flat, err := p.LVFlattenedBytes()
	require.NoError(t, err)
	expected := []byte{
		0x00, 0x00, 0x00, 0x03, 'a', 'b', 'c',
		0x00, 0x00, 0x00, 0x02, 'x', 'y',
	}
	assert.Equal(t, expected, flat)
	assert.Len(t, flat, p.TotalLength()+4*p.RowCount())
}

func TestComplexChildrenLVFlattenedBytes(t *testing.T) {
	spec := meta.NewColumnSpec("child", meta.DataTypeByteArray)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeByteArray, 2, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.AppendBytes(0, []byte("abc")))
	require.NoError(t, p.AppendBytes(1, []byte("xy")))

	flat, err := p.ComplexChildrenLVFlattenedBytes()
	require.NoError(t, err)
	expected := []byte{
		0x00, 0x03, 'a', 'b', 'c',
		0x00, 0x02, 'x', 'y',
	}
	assert.Equal(t, expected, flat)
	assert.Len(t, flat, p.TotalLength()+2*p.RowCount())
}

func TestComplexChildrenFlattenRejectsLongRow(t *testing.T) {
	spec := meta.NewColumnSpec("child", meta.DataTypeByteArray)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeByteArray, 1, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.AppendBytes(0, make([]byte, math.MaxUint16+1)))

	_, err = p.ComplexChildrenLVFlattenedBytes()
	assert.Equal(t, ErrRowLengthOverflow, errors.Cause(err))
}

func TestComplexParentFlattenedBytes(t *testing.T) {
	spec := meta.NewColumnSpec("parent", meta.DataTypeByteArray)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeByteArray, 3, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	require.NoError(t, p.AppendBytes(0, []byte("ab")))
	require.NoError(t, p.AppendBytes(1, []byte{}))
	require.NoError(t, p.AppendBytes(2, []byte("cdef")))

	flat, err := p.ComplexParentFlattenedBytes()
	require.NoError(t, err)
	assert.Equal(t, []byte("abcdef"), flat)
	assert.Len(t, flat, p.TotalLength())
}

func TestFixedWidthOperationsRejected(t *testing.T) {
	spec := meta.NewDecimalColumnSpec("amount", 10, 2)
	p, err := NewVarLengthColumnPage(spec, meta.DataTypeDecimal, 1, DefaultPageConfig())
	require.NoError(t, err)
	defer p.Release()

	ops := []func() error{
		func() error { return p.SetBytePage(nil) },
		func() error { return p.SetShortPage(nil) },
		func() error { return p.SetShortIntPage(nil) },
		func() error { return p.SetIntPage(nil) },
		func() error { return p.SetLongPage(nil) },
		func() error { return p.SetFloatPage(nil) },
		func() error { return p.SetDoublePage(nil) },
		func() error { return p.PutByte(0, 0) },
		func() error { return p.PutShort(0, 0) },
		func() error { return p.PutShortInt(0, 0) },
		func() error { return p.PutInt(0, 0) },
		func() error { return p.PutLong(0, 0) },
		func() error { return p.PutDouble(0, 0) },
		func() error { _, err := p.GetByte(0); return err },
		func() error { _, err := p.GetShort(0); return err },
		func() error { _, err := p.GetShortInt(0); return err },
		func() error { _, err := p.GetInt(0); return err },
		func() error { _, err := p.GetLong(0); return err },
		func() error { _, err := p.GetFloat(0); return err },
		func() error { _, err := p.GetDouble(0); return err },
		func() error { _, err := p.GetBytePage(); return err },
		func() error { _, err := p.GetShortPage(); return err },
		func() error { _, err := p.GetShortIntPage(); return err },
		func() error { _, err := p.GetIntPage(); return err },
		func() error { _, err := p.GetLongPage(); return err },
		func() error { _, err := p.GetFloatPage(); return err },
		func() error { _, err := p.GetDoublePage(); return err },
		func() error { return p.ConvertValue(nil) },
	}

	for i, op := range ops {
		err := op()
		require.Error(t, err, "op %d", i)
		assert.Equal(t, ErrUnsupportedOperation, errors.Cause(err), "op %d", i)
		assert.Contains(t, err.Error(), "DECIMAL", "op %d", i)
	}
}

func TestPageDoubleReleaseRejected(t *testing.T) {
	for name, cfg := range testPageConfigs() {
		t.Run(name, func(t *testing.T) {
			spec := meta.NewColumnSpec("v", meta.DataTypeString)
			p, err := NewVarLengthColumnPage(spec, meta.DataTypeString, 1, cfg)
			require.NoError(t, err)

			require.NoError(t, p.Release())
			assert.Equal(t, ErrStoreReleased, errors.Cause(p.Release()))
		})
	}
}
