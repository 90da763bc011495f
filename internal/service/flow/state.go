// Package flow drives an operation wizard: NONE → (WARNING) → INIT → CONFIRM → SIGN → SUBMIT → NONE.
//
// Reduce is pure; Store owns the state, runs the effects Reduce asks for and feeds
// their results back in as events.
package flow

import (
	"time"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/builder"
	"wallet-txflow/pkg/errno"
)

// Env is the configuration the reducer reads.
type Env struct {
	// SettleDelay is how long the SUBMIT step stays visible before the flow closes.
	SettleDelay time.Duration
}

func DefaultEnv() Env {
	return Env{SettleDelay: 2 * time.Second}
}

type State struct {
	Step       model.Step
	HasWarning bool
	FlowGen    uint64 // bumped every time the flow is reset

	Chain    model.Chain
	Wallet   model.Wallet
	Wallets  []model.Wallet
	Accounts []model.Account

	// form
	Account     model.Account
	Signatory   *model.Account
	Shards      []string // one pure transaction per address; empty means Account only
	Intent      builder.IntentFunc
	Description string

	// derived
	TxWrappers   []model.TxWrapper
	WrapperErr   error
	CoreTxs      []model.Transaction
	Transactions []model.WrappedTransaction
	BuildErr     error

	FeeData        model.FeeData
	FeeLoading     bool
	FeeGen         uint64
	FeeErr         error
	DepositLoading bool
	DepositGen     uint64
	DepositErr     error

	Signatures []string
	SubmitErr  error

	// Err is why the last event was refused, cleared by the next event.
	Err error
}

func initialState() State {
	return State{FeeData: model.ZeroFeeData()}
}

// Ready reports whether the form can move on to CONFIRM.
func (s State) Ready() error {
	switch {
	case s.WrapperErr != nil:
		return s.WrapperErr
	case s.BuildErr != nil:
		return s.BuildErr
	case s.FeeLoading || s.DepositLoading:
		return errno.ErrFeeLoading
	case len(s.Transactions) == 0:
		return errno.ErrFlowNotReady
	}
	return nil
}

func (s State) WrappedTxs() []model.Transaction {
	out := make([]model.Transaction, 0, len(s.Transactions))
	for _, t := range s.Transactions {
		out = append(out, t.WrappedTx)
	}
	return out
}

func (s State) MultisigTxs() []model.MultisigTxRecord {
	var out []model.MultisigTxRecord
	for _, t := range s.Transactions {
		if t.MultisigTx != nil {
			out = append(out, *t.MultisigTx)
		}
	}
	return out
}

func (s State) Submission() model.Submission {
	return model.Submission{
		ChainID:     s.Chain.ChainID,
		Account:     s.Account,
		Signatory:   s.Signatory,
		Description: s.Description,
		Signatures:  s.Signatures,
		CoreTxs:     s.CoreTxs,
		WrappedTxs:  s.WrappedTxs(),
		MultisigTxs: s.MultisigTxs(),
	}
}
