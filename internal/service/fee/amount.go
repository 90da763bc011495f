package fee

import (
	"fmt"
	"math/big"

	"github.com/shopspring/decimal"

	"wallet-txflow/pkg/errno"
)

// TotalFee returns fee × count. All shards pay the same fee, so one quote is
// multiplied instead of querying each transaction.
func TotalFee(fee string, count int) (string, error) {
	f, err := parseAmount(fee)
	if err != nil {
		return "0", err
	}
	if count < 0 {
		return "0", fmt.Errorf("%w: negative transaction count %d", errno.ErrInvalidAmount, count)
	}
	return new(big.Int).Mul(f, big.NewInt(int64(count))).String(), nil
}

// MultisigDeposit = base + factor × threshold
func MultisigDeposit(base, factor string, threshold int) (string, error) {
	b, err := parseAmount(base)
	if err != nil {
		return "0", err
	}
	f, err := parseAmount(factor)
	if err != nil {
		return "0", err
	}
	if threshold < 1 {
		return "0", fmt.Errorf("%w: threshold %d", errno.ErrInvalidAmount, threshold)
	}
	d := new(big.Int).Mul(f, big.NewInt(int64(threshold)))
	return d.Add(d, b).String(), nil
}

// FormatBalance converts plancks into whole units, e.g. ("15600000000", 10) -> "1.56".
func FormatBalance(value string, precision int32) (string, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return "0", fmt.Errorf("%w: %q", errno.ErrInvalidAmount, value)
	}
	return v.Shift(-precision).String(), nil
}

// FormatBalanceRounded is FormatBalance truncated (never rounded up) to places decimals.
func FormatBalanceRounded(value string, precision, places int32) (string, error) {
	v, err := decimal.NewFromString(value)
	if err != nil {
		return "0", fmt.Errorf("%w: %q", errno.ErrInvalidAmount, value)
	}
	return v.Shift(-precision).RoundDown(places).String(), nil
}

// ValidateBalanceForFee reports whether transferable covers fee.
func ValidateBalanceForFee(fee, transferable string) (bool, error) {
	f, err := parseAmount(fee)
	if err != nil {
		return false, err
	}
	t, err := parseAmount(transferable)
	if err != nil {
		return false, err
	}
	return f.Cmp(t) <= 0, nil
}

func parseAmount(value string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok || v.Sign() < 0 {
		return nil, fmt.Errorf("%w: %q", errno.ErrInvalidAmount, value)
	}
	return v, nil
}
