package page

import (
	"github.com/zhukovaskychina/xcolstore/meta"
)

// ValueConverter rewrites fixed-width values during encoding. Variable
// length pages reject it unconditionally.
type ValueConverter interface {
	EncodeByte(rowID int, value byte)
	EncodeShort(rowID int, value int16)
	EncodeInt(rowID int, value int32)
	EncodeLong(rowID int, value int64)
	EncodeFloat(rowID int, value float32)
	EncodeDouble(rowID int, value float64)
}

// ColumnPage is one column's values for a bounded batch of rows. A page is
// populated exactly once, by one bulk decode or one strictly sequential
// append sequence, then flattened any number of times.
//
// The fixed-width portion of the contract exists so callers route by column
// type: a variable length page fails every fixed-width operation with
// ErrUnsupportedOperation naming its declared data type.
type ColumnPage interface {
	ColumnSpec() meta.ColumnSpec
	DataType() meta.DataType
	PageSize() int
	RowCount() int
	TotalLength() int

	// variable length contract
	AppendBytes(rowID int, value []byte) error
	GetBytes(rowID int) ([]byte, error)

	// flatten encodings
	DecimalFlattenedBytes() ([]byte, error)
	LVFlattenedBytes() ([]byte, error)
	ComplexChildrenLVFlattenedBytes() ([]byte, error)
	ComplexParentFlattenedBytes() ([]byte, error)

	// fixed-width contract, rejected by variable length pages
	SetBytePage(data []byte) error
	SetShortPage(data []int16) error
	SetShortIntPage(data []byte) error
	SetIntPage(data []int32) error
	SetLongPage(data []int64) error
	SetFloatPage(data []float32) error
	SetDoublePage(data []float64) error

	PutByte(rowID int, value byte) error
	PutShort(rowID int, value int16) error
	PutShortInt(rowID int, value int32) error
	PutInt(rowID int, value int32) error
	PutLong(rowID int, value int64) error
	PutDouble(rowID int, value float64) error

	GetByte(rowID int) (byte, error)
	GetShort(rowID int) (int16, error)
	GetShortInt(rowID int) (int32, error)
	GetInt(rowID int) (int32, error)
	GetLong(rowID int) (int64, error)
	GetFloat(rowID int) (float32, error)
	GetDouble(rowID int) (float64, error)

	GetBytePage() ([]byte, error)
	GetShortPage() ([]int16, error)
	GetShortIntPage() ([]byte, error)
	GetIntPage() ([]int32, error)
	GetLongPage() ([]int64, error)
	GetFloatPage() ([]float32, error)
	GetDoublePage() ([]float64, error)

	ConvertValue(converter ValueConverter) error

	Release() error
}
