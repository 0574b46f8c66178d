package page

import (
	"github.com/juju/errors"
	"github.com/zhukovaskychina/xcolstore/meta"
	"github.com/zhukovaskychina/xcolstore/util"
)

// Length prefix widths of the two LV stream shapes
const (
	lvPrefixSize        = 4
	complexLVPrefixSize = 2
)

// NewDecimalColumnPage builds a page for a decimal column from its encoded
// stream. The precision/scale resolver decides the shape: a fixed width
// means a flat concatenation of equally sized values, a variable width means
// a standard 4-byte LV stream.
func NewDecimalColumnPage(spec meta.ColumnSpec, input []byte, cfg PageConfig) (*VarLengthColumnPage, error) {
	converter := meta.NewDecimalConverter(spec.Precision, spec.Scale)
	if size := converter.Size(); size != meta.VariableDecimalSize {
		return newFixedSizePage(spec, meta.DataTypeDecimal, input, size, cfg)
	}
	return decodeLVBytes(spec, meta.DataTypeDecimal, input, lvPrefixSize, cfg)
}

// NewLVBytesColumnPage builds a page from a standard LV stream: repeated
// 4-byte big-endian length followed by that many value bytes.
func NewLVBytesColumnPage(spec meta.ColumnSpec, input []byte, cfg PageConfig) (*VarLengthColumnPage, error) {
	return decodeLVBytes(spec, meta.DataTypeByteArray, input, lvPrefixSize, cfg)
}

// NewComplexLVBytesColumnPage builds a page from a compact LV stream:
// repeated 2-byte big-endian length followed by that many value bytes. Used
// for nested and complex type children.
func NewComplexLVBytesColumnPage(spec meta.ColumnSpec, input []byte, cfg PageConfig) (*VarLengthColumnPage, error) {
	return decodeLVBytes(spec, meta.DataTypeByteArray, input, complexLVPrefixSize, cfg)
}

// newFixedSizePage cuts input into rows of exactly size bytes each
func newFixedSizePage(spec meta.ColumnSpec, dataType meta.DataType, input []byte, size int, cfg PageConfig) (*VarLengthColumnPage, error) {
	if size <= 0 {
		return nil, errors.Annotatef(ErrMalformedInput, "invalid fixed value size %d", size)
	}
	if len(input)%size != 0 {
		return nil, errors.Annotatef(ErrMalformedInput, "input length %d is not a multiple of value size %d", len(input), size)
	}

	rows := len(input) / size
	page, err := newVarLengthColumnPageWithCapacity(spec, dataType, rows, len(input), cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}

	for rowID := 0; rowID < rows; rowID++ {
		if err := page.AppendBytes(rowID, input[rowID*size:(rowID+1)*size]); err != nil {
			page.Release()
			return nil, errors.Trace(err)
		}
	}
	return page, nil
}

// decodeLVBytes scans the whole stream first to learn every row's length and
// the total value size, allocates the store exactly once at that size, then
// copies the rows into place through the append path. The page only becomes
// visible on full success.
func decodeLVBytes(spec meta.ColumnSpec, dataType meta.DataType, input []byte, prefixSize int, cfg PageConfig) (*VarLengthColumnPage, error) {
	rowLengths := make([]int, 0)
	total := 0

	for cursor := 0; cursor < len(input); {
		if cursor+prefixSize > len(input) {
			return nil, errors.Annotatef(ErrMalformedInput, "length prefix at %d runs past input end %d", cursor, len(input))
		}
		length := readLVPrefix(input, cursor, prefixSize)
		if cursor+prefixSize+length > len(input) {
			return nil, errors.Annotatef(ErrMalformedInput, "row of %d bytes at %d runs past input end %d", length, cursor, len(input))
		}
		rowLengths = append(rowLengths, length)
		total += length
		cursor += prefixSize + length
	}

	page, err := newVarLengthColumnPageWithCapacity(spec, dataType, len(rowLengths), total, cfg)
	if err != nil {
		return nil, errors.Trace(err)
	}

	cursor := 0
	for rowID, length := range rowLengths {
		if err := page.AppendBytes(rowID, input[cursor+prefixSize:cursor+prefixSize+length]); err != nil {
			page.Release()
			return nil, errors.Trace(err)
		}
		cursor += prefixSize + length
	}
	return page, nil
}

func readLVPrefix(input []byte, cursor int, prefixSize int) int {
	if prefixSize == complexLVPrefixSize {
		_, length := util.ReadUB2(input, cursor)
		return int(length)
	}
	_, length := util.ReadUB4(input, cursor)
	return int(length)
}
