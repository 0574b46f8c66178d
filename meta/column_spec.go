package meta

// ColumnSpec describes one column of a table: its name, schema data type and,
// for decimal columns, precision and scale.
type ColumnSpec struct {
	FieldName      string
	SchemaDataType DataType
	Precision      int
	Scale          int
}

// NewColumnSpec creates a spec for a non-decimal column
func NewColumnSpec(fieldName string, dataType DataType) ColumnSpec {
	return ColumnSpec{
		FieldName:      fieldName,
		SchemaDataType: dataType,
	}
}

// NewDecimalColumnSpec creates a spec for a decimal column
func NewDecimalColumnSpec(fieldName string, precision, scale int) ColumnSpec {
	return ColumnSpec{
		FieldName:      fieldName,
		SchemaDataType: DataTypeDecimal,
		Precision:      precision,
		Scale:          scale,
	}
}
