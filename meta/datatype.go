package meta

// DataType identifies the schema type carried by a column page
type DataType int

const (
	DataTypeByte DataType = iota
	DataTypeShort
	DataTypeShortInt
	DataTypeInt
	DataTypeLong
	DataTypeFloat
	DataTypeDouble
	DataTypeDecimal
	DataTypeByteArray
	DataTypeString
)

func (t DataType) String() string {
	switch t {
	case DataTypeByte:
		return "BYTE"
	case DataTypeShort:
		return "SHORT"
	case DataTypeShortInt:
		return "SHORT_INT"
	case DataTypeInt:
		return "INT"
	case DataTypeLong:
		return "LONG"
	case DataTypeFloat:
		return "FLOAT"
	case DataTypeDouble:
		return "DOUBLE"
	case DataTypeDecimal:
		return "DECIMAL"
	case DataTypeByteArray:
		return "BYTE_ARRAY"
	case DataTypeString:
		return "STRING"
	default:
		return "UNKNOWN"
	}
}

// SizeInBytes returns the storage width of a fixed-width type, -1 for
// variable-width types
func (t DataType) SizeInBytes() int {
	switch t {
	case DataTypeByte:
		return 1
	case DataTypeShort:
		return 2
	case DataTypeShortInt:
		return 3
	case DataTypeInt, DataTypeFloat:
		return 4
	case DataTypeLong, DataTypeDouble:
		return 8
	default:
		return -1
	}
}

// IsFixedWidth reports whether values of this type have a schema-fixed width
func (t DataType) IsFixedWidth() bool {
	return t.SizeInBytes() > 0
}
