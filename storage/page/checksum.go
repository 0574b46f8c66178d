package page

import (
	"github.com/juju/errors"
	"github.com/zhukovaskychina/xcolstore/util"
)

// Checksum returns the xxhash64 digest of the page's raw row bytes in
// ascending row order. Downstream index consumers use it to verify a fully
// built page.
func Checksum(p ColumnPage) (uint64, error) {
	raw, err := p.ComplexParentFlattenedBytes()
	if err != nil {
		return 0, errors.Trace(err)
	}
	return util.HashCode(raw), nil
}
