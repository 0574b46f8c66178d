package page

// OffsetIndex is the ordered sequence of cumulative byte offsets for a page.
// Once any row is recorded it holds one entry more than the row count:
// row i occupies [offset[i], offset[i+1]). Append-only, never shrunk.
type OffsetIndex struct {
	offsets []int32
}

// NewOffsetIndex creates an index sized for rowCapacity rows
func NewOffsetIndex(rowCapacity int) *OffsetIndex {
	capacity := rowCapacity + 1
	if rowCapacity < 0 {
		capacity = 1
	}
	return &OffsetIndex{
		offsets: make([]int32, 0, capacity),
	}
}

// Append records the end offset of the next row and returns its start offset
func (x *OffsetIndex) Append(length int) int32 {
	if len(x.offsets) == 0 {
		x.offsets = append(x.offsets, 0)
	}
	start := x.offsets[len(x.offsets)-1]
	x.offsets = append(x.offsets, start+int32(length))
	return start
}

// RowCount returns the number of rows recorded so far
func (x *OffsetIndex) RowCount() int {
	if len(x.offsets) == 0 {
		return 0
	}
	return len(x.offsets) - 1
}

// OffsetOf returns the start offset of rowID
func (x *OffsetIndex) OffsetOf(rowID int) int32 {
	return x.offsets[rowID]
}

// LengthOf returns the stored byte length of rowID
func (x *OffsetIndex) LengthOf(rowID int) int32 {
	return x.offsets[rowID+1] - x.offsets[rowID]
}

// TotalLength returns the cumulative length of all recorded rows
func (x *OffsetIndex) TotalLength() int32 {
	if len(x.offsets) == 0 {
		return 0
	}
	return x.offsets[len(x.offsets)-1]
}
