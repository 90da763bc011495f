package fee

import (
	"testing"

	"wallet-txflow/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTotalFee(t *testing.T) {
	tests := []struct {
		fee   string
		count int
		want  string
	}{
		{"0", 5, "0"},
		{"156000000", 1, "156000000"},
		{"156000000", 3, "468000000"},
		{"156000000", 0, "0"},
		// 超过 uint64
		{"340282366920938463463374607431768211455", 2, "680564733841876926926749214863536422910"},
	}
	for _, tt := range tests {
		got, err := TotalFee(tt.fee, tt.count)
		require.NoError(t, err)
		assert.Equal(t, tt.want, got, "%s x %d", tt.fee, tt.count)
	}

	_, err := TotalFee("1.5", 2)
	assert.ErrorIs(t, err, errno.ErrInvalidAmount)
	_, err = TotalFee("1", -1)
	assert.ErrorIs(t, err, errno.ErrInvalidAmount)
}

func TestMultisigDeposit(t *testing.T) {
	got, err := MultisigDeposit("200880000000", "320000000", 2)
	require.NoError(t, err)
	assert.Equal(t, "201520000000", got)

	_, err = MultisigDeposit("x", "1", 2)
	assert.ErrorIs(t, err, errno.ErrInvalidAmount)
}

func TestFormatBalance(t *testing.T) {
	got, err := FormatBalance("15600000000", 10)
	require.NoError(t, err)
	assert.Equal(t, "1.56", got)

	got, err = FormatBalanceRounded("19999999999", 10, 5)
	require.NoError(t, err)
	assert.Equal(t, "1.99999", got)

	_, err = FormatBalance("abc", 10)
	assert.ErrorIs(t, err, errno.ErrInvalidAmount)
}

func TestValidateBalanceForFee(t *testing.T) {
	ok, err := ValidateBalanceForFee("100", "100")
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = ValidateBalanceForFee("101", "100")
	require.NoError(t, err)
	assert.False(t, ok)

	_, err = ValidateBalanceForFee("-1", "100")
	assert.ErrorIs(t, err, errno.ErrInvalidAmount)
}
