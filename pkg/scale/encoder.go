// Package scale is a small SCALE codec covering the primitives used by call encoding:
// fixed-width little-endian integers, compact integers, byte vectors and options.
package scale

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var (
	ErrNegative = errors.New("scale: negative value")
	ErrOverflow = errors.New("scale: value overflows target width")
)

var (
	maxU128 = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 128), big.NewInt(1))
	single  = big.NewInt(1 << 6)
	two     = big.NewInt(1 << 14)
	four    = big.NewInt(1 << 30)
)

// Encoder appends SCALE encoded values to an internal buffer.
// The first error sticks; later writes become no-ops.
type Encoder struct {
	buf []byte
	err error
}

func NewEncoder() *Encoder {
	return &Encoder{}
}

func (e *Encoder) Bytes() []byte {
	return e.buf
}

func (e *Encoder) Err() error {
	return e.err
}

func (e *Encoder) PushByte(b byte) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, b)
}

// Raw appends bytes without a length prefix (fixed arrays, nested calls).
func (e *Encoder) Raw(b []byte) {
	if e.err != nil {
		return
	}
	e.buf = append(e.buf, b...)
}

func (e *Encoder) U16(v uint16) {
	if e.err != nil {
		return
	}
	e.buf = binary.LittleEndian.AppendUint16(e.buf, v)
}

func (e *Encoder) U32(v uint32) {
	if e.err != nil {
		return
	}
	e.buf = binary.LittleEndian.AppendUint32(e.buf, v)
}

func (e *Encoder) Bool(v bool) {
	if v {
		e.PushByte(1)
		return
	}
	e.PushByte(0)
}

// U128 writes a 16 byte little-endian integer.
func (e *Encoder) U128(v *big.Int) {
	if e.err != nil {
		return
	}
	if v.Sign() < 0 {
		e.err = ErrNegative
		return
	}
	if v.Cmp(maxU128) > 0 {
		e.err = ErrOverflow
		return
	}
	var out [16]byte
	be := v.Bytes()
	for i := range be {
		out[i] = be[len(be)-1-i]
	}
	e.buf = append(e.buf, out[:]...)
}

func (e *Encoder) CompactUint(v uint64) {
	e.Compact(new(big.Int).SetUint64(v))
}

// Compact writes the variable length compact encoding.
func (e *Encoder) Compact(v *big.Int) {
	if e.err != nil {
		return
	}
	if v.Sign() < 0 {
		e.err = ErrNegative
		return
	}

	switch {
	case v.Cmp(single) < 0:
		e.buf = append(e.buf, byte(v.Uint64()<<2))
	case v.Cmp(two) < 0:
		e.buf = binary.LittleEndian.AppendUint16(e.buf, uint16(v.Uint64()<<2)|0b01)
	case v.Cmp(four) < 0:
		e.buf = binary.LittleEndian.AppendUint32(e.buf, uint32(v.Uint64()<<2)|0b10)
	default:
		be := v.Bytes()
		if len(be) > 67 {
			e.err = ErrOverflow
			return
		}
		e.buf = append(e.buf, byte(len(be)-4)<<2|0b11)
		for i := len(be) - 1; i >= 0; i-- {
			e.buf = append(e.buf, be[i])
		}
	}
}

// ByteVec writes a compact length prefix followed by the bytes.
func (e *Encoder) ByteVec(b []byte) {
	e.CompactUint(uint64(len(b)))
	e.Raw(b)
}

// Option writes None (0x00) or Some (0x01) followed by fn's output.
func (e *Encoder) Option(some bool, fn func(*Encoder)) {
	if !some {
		e.PushByte(0)
		return
	}
	e.PushByte(1)
	fn(e)
}
