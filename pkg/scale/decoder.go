package scale

import (
	"encoding/binary"
	"errors"
	"math/big"
)

var ErrUnexpectedEOF = errors.New("scale: unexpected end of input")

// Decoder reads SCALE values from a byte slice.
type Decoder struct {
	data []byte
	pos  int
}

func NewDecoder(data []byte) *Decoder {
	return &Decoder{data: data}
}

func (d *Decoder) Remaining() int {
	return len(d.data) - d.pos
}

func (d *Decoder) take(n int) ([]byte, error) {
	if d.Remaining() < n {
		return nil, ErrUnexpectedEOF
	}
	out := d.data[d.pos : d.pos+n]
	d.pos += n
	return out, nil
}

func (d *Decoder) Byte() (byte, error) {
	b, err := d.take(1)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

func (d *Decoder) U32() (uint32, error) {
	b, err := d.take(4)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

func (d *Decoder) U64() (uint64, error) {
	b, err := d.take(8)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

func (d *Decoder) U128() (*big.Int, error) {
	b, err := d.take(16)
	if err != nil {
		return nil, err
	}
	return littleEndianInt(b), nil
}

func (d *Decoder) Compact() (*big.Int, error) {
	first, err := d.Byte()
	if err != nil {
		return nil, err
	}

	switch first & 0b11 {
	case 0b00:
		return big.NewInt(int64(first >> 2)), nil
	case 0b01:
		next, err := d.Byte()
		if err != nil {
			return nil, err
		}
		v := uint16(first) | uint16(next)<<8
		return big.NewInt(int64(v >> 2)), nil
	case 0b10:
		rest, err := d.take(3)
		if err != nil {
			return nil, err
		}
		v := uint32(first) | uint32(rest[0])<<8 | uint32(rest[1])<<16 | uint32(rest[2])<<24
		return big.NewInt(int64(v >> 2)), nil
	default:
		n := int(first>>2) + 4
		b, err := d.take(n)
		if err != nil {
			return nil, err
		}
		return littleEndianInt(b), nil
	}
}

func littleEndianInt(le []byte) *big.Int {
	be := make([]byte, len(le))
	for i := range le {
		be[len(le)-1-i] = le[i]
	}
	return new(big.Int).SetBytes(be)
}
