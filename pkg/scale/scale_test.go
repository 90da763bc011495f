package scale

import (
	"encoding/hex"
	"math/big"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompact(t *testing.T) {
	tests := []struct {
		value uint64
		want  string
	}{
		{0, "00"},
		{1, "04"},
		{63, "fc"},
		{64, "0101"},
		{16383, "fdff"},
		{16384, "02000100"},
		{1073741823, "feffffff"},
		{1073741824, "0300000040"},
		{100000000000, "0700e8764817"},
	}

	for _, tt := range tests {
		e := NewEncoder()
		e.CompactUint(tt.value)
		require.NoError(t, e.Err())
		assert.Equal(t, tt.want, hex.EncodeToString(e.Bytes()), "value %d", tt.value)

		got, err := NewDecoder(e.Bytes()).Compact()
		require.NoError(t, err)
		assert.Equal(t, tt.value, got.Uint64())
	}
}

func TestU128(t *testing.T) {
	e := NewEncoder()
	e.U128(big.NewInt(1))
	require.NoError(t, e.Err())
	assert.Equal(t, "01000000000000000000000000000000", hex.EncodeToString(e.Bytes()))

	v, err := NewDecoder(e.Bytes()).U128()
	require.NoError(t, err)
	assert.Equal(t, int64(1), v.Int64())

	tooBig := new(big.Int).Lsh(big.NewInt(1), 128)
	e = NewEncoder()
	e.U128(tooBig)
	assert.ErrorIs(t, e.Err(), ErrOverflow)
}

func TestStickyError(t *testing.T) {
	e := NewEncoder()
	e.Compact(big.NewInt(-1))
	e.PushByte(1)
	assert.ErrorIs(t, e.Err(), ErrNegative)
	assert.Empty(t, e.Bytes())
}

func TestOptionAndVec(t *testing.T) {
	e := NewEncoder()
	e.Option(false, nil)
	e.Option(true, func(e *Encoder) { e.U32(1) })
	e.ByteVec([]byte{0xaa, 0xbb})
	assert.Equal(t, "00010100000008aabb", hex.EncodeToString(e.Bytes()))
}

func TestDecoderEOF(t *testing.T) {
	_, err := NewDecoder([]byte{0x01}).Compact()
	assert.ErrorIs(t, err, ErrUnexpectedEOF)
}
