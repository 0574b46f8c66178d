package page

import (
	"github.com/golang/snappy"
	"github.com/juju/errors"
	"github.com/pierrec/lz4/v4"
	"github.com/zhukovaskychina/xcolstore/util"
)

// Compressor compresses flattened page bytes before they are written out
type Compressor interface {
	Name() string
	Compress(data []byte) ([]byte, error)
	Decompress(data []byte) ([]byte, error)
}

// SnappyCompressor compresses with snappy block encoding
type SnappyCompressor struct{}

func (SnappyCompressor) Name() string {
	return "snappy"
}

func (SnappyCompressor) Compress(data []byte) ([]byte, error) {
	return snappy.Encode(nil, data), nil
}

func (SnappyCompressor) Decompress(data []byte) ([]byte, error) {
	out, err := snappy.Decode(nil, data)
	if err != nil {
		return nil, errors.Annotate(err, "snappy decompress")
	}
	return out, nil
}

// LZ4Compressor compresses with lz4 block encoding. The block format does
// not record the original size, so a 4-byte big-endian size header is
// prepended.
type LZ4Compressor struct{}

func (LZ4Compressor) Name() string {
	return "lz4"
}

func (LZ4Compressor) Compress(data []byte) ([]byte, error) {
	var c lz4.Compressor
	dst := make([]byte, 4+lz4.CompressBlockBound(len(data)))
	util.SetUB4(dst, 0, uint32(len(data)))

	n, err := c.CompressBlock(data, dst[4:])
	if err != nil {
		return nil, errors.Annotate(err, "lz4 compress")
	}
	if n == 0 {
		// incompressible input is stored raw after the size header
		dst = append(dst[:4], data...)
		return dst, nil
	}
	return dst[:4+n], nil
}

func (LZ4Compressor) Decompress(data []byte) ([]byte, error) {
	if len(data) < 4 {
		return nil, errors.Annotatef(ErrMalformedInput, "lz4 block of %d bytes lacks a size header", len(data))
	}
	_, originalSize := util.ReadUB4(data, 0)

	out := make([]byte, originalSize)
	if int(originalSize) == len(data)-4 {
		// stored raw
		copy(out, data[4:])
		return out, nil
	}
	n, err := lz4.UncompressBlock(data[4:], out)
	if err != nil {
		return nil, errors.Annotate(err, "lz4 decompress")
	}
	return out[:n], nil
}

// CompressedLVFlattenedBytes flattens the page in standard LV form and
// compresses the result
func CompressedLVFlattenedBytes(p ColumnPage, c Compressor) ([]byte, error) {
	flat, err := p.LVFlattenedBytes()
	if err != nil {
		return nil, errors.Trace(err)
	}
	return c.Compress(flat)
}
