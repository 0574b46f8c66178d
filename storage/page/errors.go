package page

import "errors"

// 页面操作相关错误
var (
	ErrUnsupportedOperation = errors.New("unsupported operation for variable length page")
	ErrRowOutOfOrder        = errors.New("row appended out of order")
	ErrReadOutOfRange       = errors.New("read range beyond page data")
)

// 编码解码相关错误
var (
	ErrPageSizeOverflow  = errors.New("column page exceeds maximum 2GB size")
	ErrMalformedInput    = errors.New("malformed length-value encoded input")
	ErrRowLengthOverflow = errors.New("row length exceeds 2-byte length prefix range")
)

// 存储相关错误
var (
	ErrStoreReleased = errors.New("byte store already released")
	ErrInvalidOffset = errors.New("invalid store offset")
)
