package fee

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/logger"
	"wallet-txflow/pkg/monitor"
)

// Quoter aggregates the fee of a batch of identical transactions.
//
// Quote failures never abort the flow: the result is zero and the returned error
// (wrapping errno.ErrFeeQuote) is only a notice.
type Quoter struct {
	fees     FeeOracle
	deposits DepositOracle
	timeout  time.Duration
}

func NewQuoter(fees FeeOracle, deposits DepositOracle, timeout time.Duration) *Quoter {
	if deposits == nil {
		deposits = ChainDepositOracle{}
	}
	return &Quoter{fees: fees, deposits: deposits, timeout: timeout}
}

// Quote prices tx once and multiplies by count. A transaction without a signing
// address has nothing to price and costs zero.
func (q *Quoter) Quote(ctx context.Context, tx model.Transaction, chain model.Chain, count int) (model.FeeData, error) {
	data := model.ZeroFeeData()
	if tx.Address == "" || count == 0 {
		return data, nil
	}

	if q.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, q.timeout)
		defer cancel()
	}

	start := time.Now()
	fee, err := q.fees.Fee(ctx, chain, tx)
	if err != nil {
		monitor.ObserveFeeQuote("fee", string(chain.ChainID), "error", time.Since(start))
		logger.Warn("Fee quote failed, using zero",
			zap.String("chain_id", string(chain.ChainID)),
			zap.String("tx_type", string(tx.Type)),
			zap.Error(err),
		)
		return data, fmt.Errorf("%w: %v", errno.ErrFeeQuote, err)
	}
	monitor.ObserveFeeQuote("fee", string(chain.ChainID), "success", time.Since(start))

	total, err := TotalFee(fee, count)
	if err != nil {
		return data, fmt.Errorf("%w: %v", errno.ErrFeeQuote, err)
	}
	data.Fee = fee
	data.TotalFee = total
	return data, nil
}

// Deposit does not depend on the number of shards.
func (q *Quoter) Deposit(ctx context.Context, threshold int, chain model.Chain) (string, error) {
	deposit, err := q.deposits.Deposit(ctx, chain, threshold)
	if err != nil {
		monitor.ObserveFeeQuote("deposit", string(chain.ChainID), "error", 0)
		logger.Warn("Deposit quote failed, using zero",
			zap.String("chain_id", string(chain.ChainID)),
			zap.Int("threshold", threshold),
			zap.Error(err),
		)
		return "0", fmt.Errorf("%w: %v", errno.ErrDepositQuote, err)
	}
	monitor.ObserveFeeQuote("deposit", string(chain.ChainID), "success", 0)
	return deposit, nil
}
