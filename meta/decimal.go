package meta

import (
	"math/big"

	"github.com/shopspring/decimal"
)

// VariableDecimalSize is the sentinel width returned for decimal columns
// whose precision does not fit a fixed integer width.
const VariableDecimalSize = -1

// DecimalSizeInBytes resolves the storage width for a decimal column from
// its precision: the unscaled value is stored as a 1/2/4/8 byte two's
// complement integer, or as variable-size bytes past 18 digits.
func DecimalSizeInBytes(precision int) int {
	switch {
	case precision <= 0:
		return VariableDecimalSize
	case precision <= 2:
		return 1
	case precision <= 4:
		return 2
	case precision <= 9:
		return 4
	case precision <= 18:
		return 8
	default:
		return VariableDecimalSize
	}
}

// DecimalConverter encodes decimal values as unscaled two's complement
// big-endian bytes, fixed-width when precision allows.
type DecimalConverter struct {
	precision int
	scale     int
	size      int
}

// NewDecimalConverter creates a converter for the given precision and scale
func NewDecimalConverter(precision, scale int) *DecimalConverter {
	return &DecimalConverter{
		precision: precision,
		scale:     scale,
		size:      DecimalSizeInBytes(precision),
	}
}

// Size returns the fixed value width, or VariableDecimalSize
func (c *DecimalConverter) Size() int {
	return c.size
}

// EncodeValue encodes one decimal value
func (c *DecimalConverter) EncodeValue(v decimal.Decimal) []byte {
	unscaled := v.Shift(int32(c.scale)).BigInt()
	if c.size == VariableDecimalSize {
		return twosComplementBytes(unscaled)
	}

	buf := make([]byte, c.size)
	u := unscaled.Int64()
	for i := c.size - 1; i >= 0; i-- {
		buf[i] = byte(u)
		u >>= 8
	}
	return buf
}

// DecodeValue decodes one stored value back into a decimal
func (c *DecimalConverter) DecodeValue(b []byte) decimal.Decimal {
	if c.size == VariableDecimalSize {
		return decimal.NewFromBigInt(bigIntFromTwosComplement(b), -int32(c.scale))
	}

	var u int64
	if len(b) > 0 && b[0]&0x80 != 0 {
		u = -1 // sign extend
	}
	for _, x := range b {
		u = u<<8 | int64(x)
	}
	return decimal.New(u, -int32(c.scale))
}

// twosComplementBytes returns the minimal big-endian two's complement
// representation of v, sign bit included.
func twosComplementBytes(v *big.Int) []byte {
	if v.Sign() >= 0 {
		b := v.Bytes()
		if len(b) == 0 || b[0]&0x80 != 0 {
			b = append([]byte{0}, b...)
		}
		return b
	}

	n := (v.BitLen() + 8) / 8
	mod := new(big.Int).Lsh(big.NewInt(1), uint(n*8))
	b := new(big.Int).Add(mod, v).Bytes()

	out := make([]byte, n)
	copy(out[n-len(b):], b)
	return out
}

func bigIntFromTwosComplement(b []byte) *big.Int {
	if len(b) == 0 {
		return new(big.Int)
	}
	v := new(big.Int).SetBytes(b)
	if b[0]&0x80 != 0 {
		mod := new(big.Int).Lsh(big.NewInt(1), uint(len(b)*8))
		v.Sub(v, mod)
	}
	return v
}
