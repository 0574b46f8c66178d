package page

import (
	"math"

	"github.com/juju/errors"
	"github.com/zhukovaskychina/xcolstore/meta"
	"github.com/zhukovaskychina/xcolstore/util"
)

// defaultRowSize is the average row size heuristic used to size the store of
// append-path pages, in bytes per row. The store grows as needed.
const defaultRowSize = 8

// VarLengthColumnPage stores variable length byte values (strings, raw
// decimal digits, complex type children) for a bounded batch of rows. Row i
// occupies [offset[i], offset[i+1]) inside one growable byte buffer.
type VarLengthColumnPage struct {
	spec        meta.ColumnSpec
	dataType    meta.DataType
	pageSize    int
	index       *OffsetIndex
	store       ByteStore
	totalLength int
	taskID      uint64
	released    bool
}

var _ ColumnPage = (*VarLengthColumnPage)(nil)

// NewVarLengthColumnPage creates an empty page for the incremental append
// path. The store starts at defaultRowSize bytes per row of declared
// capacity and grows as rows arrive.
func NewVarLengthColumnPage(spec meta.ColumnSpec, dataType meta.DataType, pageSize int, cfg PageConfig) (*VarLengthColumnPage, error) {
	return newVarLengthColumnPageWithCapacity(spec, dataType, pageSize, defaultRowSize*pageSize, cfg)
}

// newVarLengthColumnPageWithCapacity creates a page whose store is sized
// exactly to capacity. Bulk decoders use it to allocate once, at the known
// final length.
func newVarLengthColumnPageWithCapacity(spec meta.ColumnSpec, dataType meta.DataType, pageSize int, capacity int, cfg PageConfig) (*VarLengthColumnPage, error) {
	if capacity < 1 {
		capacity = 1
	}
	store, err := cfg.newStore(capacity)
	if err != nil {
		return nil, errors.Trace(err)
	}
	return &VarLengthColumnPage{
		spec:     spec,
		dataType: dataType,
		pageSize: pageSize,
		index:    NewOffsetIndex(pageSize),
		store:    store,
		taskID:   cfg.TaskID,
	}, nil
}

// ColumnSpec returns the column spec this page was built for
func (p *VarLengthColumnPage) ColumnSpec() meta.ColumnSpec {
	return p.spec
}

// DataType returns the page's declared data type
func (p *VarLengthColumnPage) DataType() meta.DataType {
	return p.dataType
}

// PageSize returns the declared row capacity
func (p *VarLengthColumnPage) PageSize() int {
	return p.pageSize
}

// RowCount returns the number of rows appended so far
func (p *VarLengthColumnPage) RowCount() int {
	return p.index.RowCount()
}

// TotalLength returns the number of value bytes stored so far
func (p *VarLengthColumnPage) TotalLength() int {
	return p.totalLength
}

// AppendBytes stores value as row rowID. Rows must arrive in strict order
// starting at 0; rowID*4 reserves length prefix overhead against the 2GB
// serialization ceiling.
func (p *VarLengthColumnPage) AppendBytes(rowID int, value []byte) error {
	if rowID != p.index.RowCount() {
		return errors.Annotatef(ErrRowOutOfOrder, "expected row %d, got row %d", p.index.RowCount(), rowID)
	}
	if len(value) > math.MaxInt32-p.totalLength-rowID*4 {
		return errors.Annotatef(ErrPageSizeOverflow, "exceed limit at rowId %d", rowID)
	}

	// write before recording the offset so a failed growth leaves the page
	// in its last known good state
	if err := p.store.WriteAt(p.totalLength, value); err != nil {
		return errors.Trace(err)
	}
	p.index.Append(len(value))
	p.totalLength += len(value)
	return nil
}

// GetBytes returns the raw bytes of row rowID
func (p *VarLengthColumnPage) GetBytes(rowID int) ([]byte, error) {
	if rowID < 0 || rowID >= p.index.RowCount() {
		return nil, errors.Annotatef(ErrReadOutOfRange, "rowId %d, page has %d rows", rowID, p.index.RowCount())
	}
	return p.store.ReadAt(int(p.index.OffsetOf(rowID)), int(p.index.LengthOf(rowID)))
}

// copyBytes copies row rowID into dst starting at dstOffset
func (p *VarLengthColumnPage) copyBytes(rowID int, dst []byte, dstOffset int, length int) error {
	return p.store.CopyTo(int(p.index.OffsetOf(rowID)), dst, dstOffset, length)
}

// DecimalFlattenedBytes concatenates all rows' raw bytes with no prefix.
// Valid for fixed-size decimal pages only; iterates the full declared row
// capacity.
func (p *VarLengthColumnPage) DecimalFlattenedBytes() ([]byte, error) {
	if p.pageSize > p.index.RowCount() {
		return nil, errors.Annotatef(ErrReadOutOfRange, "page declares %d rows but holds %d", p.pageSize, p.index.RowCount())
	}

	offset := 0
	data := make([]byte, p.totalLength)
	for rowID := 0; rowID < p.pageSize; rowID++ {
		length := int(p.index.LengthOf(rowID))
		if err := p.copyBytes(rowID, data, offset, length); err != nil {
			return nil, errors.Trace(err)
		}
		offset += length
	}
	return data, nil
}

// LVFlattenedBytes emits every row as a 4-byte big-endian length followed by
// the row bytes
func (p *VarLengthColumnPage) LVFlattenedBytes() ([]byte, error) {
	rows := p.index.RowCount()
	offset := 0
	data := make([]byte, p.totalLength+rows*4)
	for rowID := 0; rowID < rows; rowID++ {
		length := int(p.index.LengthOf(rowID))
		util.SetUB4(data, offset, uint32(length))
		if err := p.copyBytes(rowID, data, offset+4, length); err != nil {
			return nil, errors.Trace(err)
		}
		offset += 4 + length
	}
	return data, nil
}

// ComplexChildrenLVFlattenedBytes emits every row as a 2-byte big-endian
// length followed by the row bytes. Rows longer than 65535 bytes do not fit
// the prefix and are rejected.
func (p *VarLengthColumnPage) ComplexChildrenLVFlattenedBytes() ([]byte, error) {
	rows := p.index.RowCount()
	offset := 0
	data := make([]byte, p.totalLength+rows*2)
	for rowID := 0; rowID < rows; rowID++ {
		length := int(p.index.LengthOf(rowID))
		if length > math.MaxUint16 {
			return nil, errors.Annotatef(ErrRowLengthOverflow, "row %d is %d bytes", rowID, length)
		}
		util.SetUB2(data, offset, uint16(length))
		if err := p.copyBytes(rowID, data, offset+2, length); err != nil {
			return nil, errors.Trace(err)
		}
		offset += 2 + length
	}
	return data, nil
}

// ComplexParentFlattenedBytes concatenates all rows' raw bytes with no
// prefix; row boundaries are recoverable only through this page's offset
// index.
func (p *VarLengthColumnPage) ComplexParentFlattenedBytes() ([]byte, error) {
	rows := p.index.RowCount()
	offset := 0
	data := make([]byte, p.totalLength)
	for rowID := 0; rowID < rows; rowID++ {
		length := int(p.index.LengthOf(rowID))
		if err := p.copyBytes(rowID, data, offset, length); err != nil {
			return nil, errors.Trace(err)
		}
		offset += length
	}
	return data, nil
}

// Release returns the page buffer to its allocator. Exactly once per page.
func (p *VarLengthColumnPage) Release() error {
	if p.released {
		return errors.Trace(ErrStoreReleased)
	}
	p.released = true
	return errors.Trace(p.store.Release())
}

func (p *VarLengthColumnPage) unsupported() error {
	return errors.Annotatef(ErrUnsupportedOperation, "invalid data type: %s", p.dataType)
}

// 固定宽度页面契约：变长页面一律拒绝，调用方必须按列类型路由

func (p *VarLengthColumnPage) SetBytePage(data []byte) error { return p.unsupported() }
func (p *VarLengthColumnPage) SetShortPage(data []int16) error { return p.unsupported() }
func (p *VarLengthColumnPage) SetShortIntPage(data []byte) error { return p.unsupported() }
func (p *VarLengthColumnPage) SetIntPage(data []int32) error { return p.unsupported() }
func (p *VarLengthColumnPage) SetLongPage(data []int64) error { return p.unsupported() }
func (p *VarLengthColumnPage) SetFloatPage(data []float32) error { return p.unsupported() }
func (p *VarLengthColumnPage) SetDoublePage(data []float64) error { return p.unsupported() }

func (p *VarLengthColumnPage) PutByte(rowID int, value byte) error { return p.unsupported() }
func (p *VarLengthColumnPage) PutShort(rowID int, value int16) error { return p.unsupported() }
func (p *VarLengthColumnPage) PutShortInt(rowID int, value int32) error { return p.unsupported() }
func (p *VarLengthColumnPage) PutInt(rowID int, value int32) error { return p.unsupported() }
func (p *VarLengthColumnPage) PutLong(rowID int, value int64) error { return p.unsupported() }
func (p *VarLengthColumnPage) PutDouble(rowID int, value float64) error { return p.unsupported() }

func (p *VarLengthColumnPage) GetByte(rowID int) (byte, error) { return 0, p.unsupported() }
func (p *VarLengthColumnPage) GetShort(rowID int) (int16, error) { return 0, p.unsupported() }
func (p *VarLengthColumnPage) GetShortInt(rowID int) (int32, error) { return 0, p.unsupported() }
func (p *VarLengthColumnPage) GetInt(rowID int) (int32, error) { return 0, p.unsupported() }
func (p *VarLengthColumnPage) GetLong(rowID int) (int64, error) { return 0, p.unsupported() }
func (p *VarLengthColumnPage) GetFloat(rowID int) (float32, error) { return 0, p.unsupported() }
func (p *VarLengthColumnPage) GetDouble(rowID int) (float64, error) { return 0, p.unsupported() }

func (p *VarLengthColumnPage) GetBytePage() ([]byte, error) { return nil, p.unsupported() }
func (p *VarLengthColumnPage) GetShortPage() ([]int16, error) { return nil, p.unsupported() }
func (p *VarLengthColumnPage) GetShortIntPage() ([]byte, error) { return nil, p.unsupported() }
func (p *VarLengthColumnPage) GetIntPage() ([]int32, error) { return nil, p.unsupported() }
func (p *VarLengthColumnPage) GetLongPage() ([]int64, error) { return nil, p.unsupported() }
func (p *VarLengthColumnPage) GetFloatPage() ([]float32, error) { return nil, p.unsupported() }
func (p *VarLengthColumnPage) GetDoublePage() ([]float64, error) { return nil, p.unsupported() }

func (p *VarLengthColumnPage) ConvertValue(converter ValueConverter) error {
	return p.unsupported()
}
