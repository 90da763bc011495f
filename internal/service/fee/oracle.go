package fee

import (
	"context"

	"wallet-txflow/internal/model"
)

// FeeOracle prices a single (wrapped) transaction in plancks.
type FeeOracle interface {
	Fee(ctx context.Context, chain model.Chain, tx model.Transaction) (string, error)
}

// DepositOracle returns the multisig deposit reserved from the first signer.
type DepositOracle interface {
	Deposit(ctx context.Context, chain model.Chain, threshold int) (string, error)
}

// ChainDepositOracle computes the deposit from the chain's multisig constants.
type ChainDepositOracle struct{}

func (ChainDepositOracle) Deposit(_ context.Context, chain model.Chain, threshold int) (string, error) {
	return MultisigDeposit(chain.Multisig.DepositBase, chain.Multisig.DepositFactor, threshold)
}
