package flow

import (
	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/composer"
	"wallet-txflow/internal/service/wrapper"
	"wallet-txflow/pkg/errno"
)

// Reduce applies ev to s. It never blocks and never fails: refused events leave
// the state unchanged apart from State.Err.
func Reduce(s State, ev Event, env Env) (State, []Effect) {
	s.Err = nil

	switch e := ev.(type) {
	case FlowStarted:
		next := reset(s)
		next.Step = model.StepInit
		if e.Warning {
			next.Step = model.StepWarning
		}
		next.HasWarning = e.Warning
		next.Chain, next.Wallet, next.Wallets, next.Accounts = e.Chain, e.Wallet, e.Wallets, e.Accounts
		next.Account, next.Signatory, next.Shards = e.Account, e.Signatory, e.Shards
		next.Intent, next.Description = e.Intent, e.Description
		return derive(next)

	case FormChanged:
		if s.Step != model.StepInit && s.Step != model.StepWarning {
			return refuse(s, errno.ErrInvalidStep)
		}
		s.Account, s.Signatory, s.Shards = e.Account, e.Signatory, e.Shards
		s.Intent, s.Description = e.Intent, e.Description
		return derive(s)

	case FormSubmitted:
		if s.Step != model.StepInit {
			return refuse(s, errno.ErrInvalidStep)
		}
		if err := s.Ready(); err != nil {
			return refuse(s, err)
		}
		s.Step = model.StepConfirm
		return s, nil

	case ConfirmSubmitted:
		if s.Step != model.StepConfirm {
			return refuse(s, errno.ErrInvalidStep)
		}
		if err := s.Ready(); err != nil {
			return refuse(s, err)
		}
		s.Step = model.StepSign
		return s, nil

	case SignSubmitted:
		if s.Step != model.StepSign {
			return refuse(s, errno.ErrInvalidStep)
		}
		if err := s.Ready(); err != nil {
			return refuse(s, err)
		}
		s.Signatures = e.Signatures
		s.Step = model.StepSubmit
		return s, []Effect{Submit{Submission: s.Submission()}}

	case SubmitFinished:
		if s.Step != model.StepSubmit {
			return refuse(s, errno.ErrInvalidStep)
		}
		s.SubmitErr = e.Err
		return s, []Effect{After{Delay: env.SettleDelay, Event: FlowFinished{Gen: s.FlowGen}}}

	case FlowFinished:
		return reset(s), nil

	case StepChanged:
		if e.Step == model.StepNone {
			return reset(s), nil
		}
		switch {
		case s.Step == model.StepNone || s.Step == model.StepSubmit || e.Step == model.StepSubmit:
			return refuse(s, errno.ErrInvalidStep)
		case e.Step == model.StepWarning && !s.HasWarning:
			return refuse(s, errno.ErrInvalidStep)
		}
		// 向前跳到 CONFIRM / SIGN 与 FormSubmitted 同样需要表单就绪
		if e.Step > s.Step && (e.Step == model.StepConfirm || e.Step == model.StepSign) {
			if err := s.Ready(); err != nil {
				return refuse(s, err)
			}
		}
		s.Step = e.Step
		return s, nil

	case Back:
		switch s.Step {
		case model.StepConfirm:
			s.Step = model.StepInit
		case model.StepSign:
			s.Step = model.StepConfirm
		case model.StepInit:
			if s.HasWarning {
				s.Step = model.StepWarning
			} else {
				return reset(s), nil
			}
		case model.StepWarning:
			return reset(s), nil
		}
		return s, nil

	case FeeQuoted:
		if Stale(s, ev) {
			return s, nil
		}
		s.FeeLoading = false
		s.FeeErr = e.Err
		s.FeeData.Fee = amountOrZero(e.Data.Fee, e.Err)
		s.FeeData.TotalFee = amountOrZero(e.Data.TotalFee, e.Err)
		return s, nil

	case DepositQuoted:
		if Stale(s, ev) {
			return s, nil
		}
		s.DepositLoading = false
		s.DepositErr = e.Err
		s.FeeData.MultisigDeposit = amountOrZero(e.Deposit, e.Err)
		return s, nil
	}

	return s, nil
}

// Stale reports whether ev is an async result superseded by a newer request.
func Stale(s State, ev Event) bool {
	switch e := ev.(type) {
	case FeeQuoted:
		return e.Gen != s.FeeGen
	case DepositQuoted:
		return e.Gen != s.DepositGen
	case FlowFinished:
		return e.Gen != s.FlowGen
	}
	return false
}

func refuse(s State, err error) (State, []Effect) {
	s.Err = err
	return s, nil
}

// reset 回到 NONE，保留 generation 使在途结果与延迟关闭失效
func reset(s State) State {
	next := initialState()
	next.FlowGen = s.FlowGen + 1
	next.FeeGen = s.FeeGen + 1
	next.DepositGen = s.DepositGen + 1
	return next
}

func amountOrZero(v string, err error) string {
	if err != nil || v == "" {
		return "0"
	}
	return v
}

// derive recomputes wrappers, transactions and fee requests from the form.
// wrappers ← account/signatory, transactions ← wrappers + intent, fee ← transactions.
func derive(s State) (State, []Effect) {
	var effects []Effect

	var signatories []model.Account
	if s.Signatory != nil {
		signatories = []model.Account{*s.Signatory}
	}
	s.TxWrappers, s.WrapperErr = wrapper.GetTxWrappers(wrapper.ResolveParams{
		Chain:       s.Chain,
		Wallet:      s.Wallet,
		Wallets:     s.Wallets,
		Account:     s.Account,
		Accounts:    s.Accounts,
		Signatories: signatories,
	})

	s.CoreTxs, s.Transactions, s.BuildErr = nil, nil, nil
	if s.Intent != nil {
		for _, addr := range s.shardAddresses() {
			tx, err := s.Intent(s.Chain, addr)
			if err != nil {
				s.CoreTxs, s.BuildErr = nil, err
				break
			}
			s.CoreTxs = append(s.CoreTxs, tx)
		}
	}
	// 无法签名时不组合，避免向 composer 传入不完整的 wrapper
	if s.WrapperErr == nil && s.BuildErr == nil && len(s.CoreTxs) > 0 {
		s.Transactions, s.BuildErr = composer.GetWrappedTransactions(s.Chain, s.CoreTxs, s.TxWrappers)
	}

	s.FeeGen++
	s.FeeErr = nil
	if len(s.Transactions) > 0 {
		s.FeeLoading = true
		effects = append(effects, QuoteFee{
			Gen:   s.FeeGen,
			Chain: s.Chain,
			Tx:    s.Transactions[0].WrappedTx,
			Count: len(s.Transactions),
		})
	} else {
		s.FeeLoading = false
		s.FeeData.Fee, s.FeeData.TotalFee = "0", "0"
	}

	s.DepositGen++
	s.DepositErr = nil
	if m, ok := wrapper.FindMultisig(s.TxWrappers); ok && s.WrapperErr == nil {
		s.DepositLoading = true
		effects = append(effects, QuoteDeposit{
			Gen:       s.DepositGen,
			Chain:     s.Chain,
			Threshold: m.MultisigAccount.Threshold,
		})
	} else {
		s.DepositLoading = false
		s.FeeData.MultisigDeposit = "0"
	}

	return s, effects
}

func (s State) shardAddresses() []string {
	if len(s.Shards) > 0 {
		return s.Shards
	}
	return []string{s.Account.AccountID}
}
