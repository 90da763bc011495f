// Package composer turns a pure transaction plus its wrappers into the call that is
// actually signed and submitted.
package composer

import (
	"encoding/hex"
	"fmt"
	"sort"

	"go.uber.org/multierr"
	"go.uber.org/zap"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/logger"
	"wallet-txflow/pkg/monitor"
	"wallet-txflow/pkg/ss58"
)

type WrapParams struct {
	Chain       model.Chain
	Transaction model.Transaction
	TxWrappers  []model.TxWrapper
}

// GetWrappedTransaction applies the wrappers to p.Transaction.
// Proxy is always applied before multisig, whatever the order of p.TxWrappers,
// so multisig ends up outermost. Without wrappers WrappedTx equals CoreTx.
func GetWrappedTransaction(p WrapParams) (model.WrappedTransaction, error) {
	result := model.WrappedTransaction{
		CoreTx:    p.Transaction,
		WrappedTx: p.Transaction,
	}

	proxy, multisig, err := splitWrappers(p.TxWrappers)
	if err != nil {
		logger.DPanic("invalid transaction wrappers",
			zap.String("chain_id", string(p.Chain.ChainID)),
			zap.String("tx_type", string(p.Transaction.Type)),
			zap.Error(err),
		)
		return model.WrappedTransaction{}, err
	}

	tx := p.Transaction
	if proxy != nil {
		if tx, err = wrapAsProxy(tx, *proxy, p.Chain); err != nil {
			return model.WrappedTransaction{}, err
		}
		monitor.IncWrapped(string(model.WrapperKindProxy))
	}
	if multisig != nil {
		var rec model.MultisigTxRecord
		if tx, rec, err = wrapAsMulti(tx, *multisig, p.Chain); err != nil {
			return model.WrappedTransaction{}, err
		}
		result.MultisigTx = &rec
		monitor.IncWrapped(string(model.WrapperKindMultisig))
	}

	result.WrappedTx = tx
	return result, nil
}

// GetWrappedTransactions wraps one transaction per shard with the same wrappers.
func GetWrappedTransactions(chain model.Chain, txs []model.Transaction, wrappers []model.TxWrapper) ([]model.WrappedTransaction, error) {
	out := make([]model.WrappedTransaction, 0, len(txs))
	for i, tx := range txs {
		w, err := GetWrappedTransaction(WrapParams{Chain: chain, Transaction: tx, TxWrappers: wrappers})
		if err != nil {
			return nil, fmt.Errorf("wrap transaction %d: %w", i, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// splitWrappers validates the wrapper list and picks out each kind.
// All precondition violations are reported together.
func splitWrappers(wrappers []model.TxWrapper) (*model.ProxyTxWrapper, *model.MultisigTxWrapper, error) {
	var (
		proxy    *model.ProxyTxWrapper
		multisig *model.MultisigTxWrapper
		errs     error
	)

	for _, w := range wrappers {
		switch v := w.(type) {
		case model.ProxyTxWrapper:
			if proxy != nil {
				errs = multierr.Append(errs, invalid("duplicate proxy wrapper"))
				continue
			}
			errs = multierr.Append(errs, validateProxy(v))
			proxy = &v
		case model.MultisigTxWrapper:
			if multisig != nil {
				errs = multierr.Append(errs, invalid("duplicate multisig wrapper"))
				continue
			}
			errs = multierr.Append(errs, validateMultisig(v))
			multisig = &v
		default:
			errs = multierr.Append(errs, invalid(fmt.Sprintf("unknown wrapper %T", w)))
		}
	}

	if errs != nil {
		return nil, nil, errs
	}
	return proxy, multisig, nil
}

func validateProxy(w model.ProxyTxWrapper) error {
	var errs error
	if w.ProxyAccount.AccountID == "" {
		errs = multierr.Append(errs, invalid("proxy wrapper without proxy account"))
	}
	if w.ProxiedAccount.AccountID == "" {
		errs = multierr.Append(errs, invalid("proxy wrapper without proxied account"))
	}
	return errs
}

func validateMultisig(w model.MultisigTxWrapper) error {
	var errs error
	if w.MultisigAccount.Threshold < 2 {
		errs = multierr.Append(errs, invalid(fmt.Sprintf("multisig threshold %d", w.MultisigAccount.Threshold)))
	}
	if len(w.MultisigAccount.Signatories) == 0 {
		errs = multierr.Append(errs, invalid("multisig wrapper without signatories"))
	}
	if w.Signer.AccountID == "" {
		errs = multierr.Append(errs, invalid("multisig wrapper without signer"))
	}
	return errs
}

func invalid(reason string) error {
	return fmt.Errorf("%w: %s", errno.ErrInvalidWrapper, reason)
}

func wrapAsProxy(tx model.Transaction, w model.ProxyTxWrapper, chain model.Chain) (model.Transaction, error) {
	proxyAddr, err := ss58.ToAddress(w.ProxyAccount.AccountID, chain.AddressPrefix)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: proxy account: %v", errno.ErrInvalidAddress, err)
	}
	realAddr, err := ss58.ToAddress(w.ProxiedAccount.AccountID, chain.AddressPrefix)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("%w: proxied account: %v", errno.ErrInvalidAddress, err)
	}

	inner := tx
	return model.Transaction{
		ChainID: chain.ChainID,
		Address: proxyAddr,
		Type:    model.TransactionTypeProxy,
		Args: model.ProxyArgs{
			Real:           realAddr,
			ForceProxyType: w.ProxiedAccount.ProxyType,
			Transaction:    &inner,
		},
	}, nil
}

func wrapAsMulti(tx model.Transaction, w model.MultisigTxWrapper, chain model.Chain) (model.Transaction, model.MultisigTxRecord, error) {
	call, err := callcodec.Encode(tx, chain)
	if err != nil {
		logger.Error("encode call for multisig failed",
			zap.String("tx_type", string(tx.Type)),
			zap.Error(err),
		)
		return model.Transaction{}, model.MultisigTxRecord{}, err
	}
	callData := "0x" + hex.EncodeToString(call)
	callHash := callcodec.CallHash(call)

	signerAddr, err := ss58.ToAddress(w.Signer.AccountID, chain.AddressPrefix)
	if err != nil {
		return model.Transaction{}, model.MultisigTxRecord{}, fmt.Errorf("%w: signer: %v", errno.ErrInvalidAddress, err)
	}
	multisigID, err := ss58.ToHex(w.MultisigAccount.AccountID)
	if err != nil {
		return model.Transaction{}, model.MultisigTxRecord{}, fmt.Errorf("%w: multisig account: %v", errno.ErrInvalidAddress, err)
	}
	signerID, err := ss58.ToHex(w.Signer.AccountID)
	if err != nil {
		return model.Transaction{}, model.MultisigTxRecord{}, fmt.Errorf("%w: signer: %v", errno.ErrInvalidAddress, err)
	}

	members := make([]string, 0, len(w.MultisigAccount.Signatories))
	for _, s := range w.MultisigAccount.Signatories {
		members = append(members, s.AccountID)
	}
	others, err := OtherSignatories(members, w.Signer.AccountID, chain.AddressPrefix)
	if err != nil {
		return model.Transaction{}, model.MultisigTxRecord{}, err
	}

	threshold := w.MultisigAccount.Threshold
	inner := tx
	wrapped := model.Transaction{
		ChainID: chain.ChainID,
		Address: signerAddr,
		Type:    model.TransactionTypeMultisigAsMulti,
		Args: model.AsMultiArgs{
			Threshold:        threshold,
			OtherSignatories: others,
			MaybeTimepoint:   nil,
			MaxWeight:        chain.MaxWeight,
			CallData:         callData,
			CallHash:         callHash,
			Transaction:      &inner,
		},
	}

	rec := model.MultisigTxRecord{
		ChainID:          chain.ChainID,
		AccountID:        multisigID,
		Signer:           signerID,
		Threshold:        threshold,
		OtherSignatories: others,
		CallHash:         callHash,
		CallData:         callData,
		Transaction:      tx,
	}
	return wrapped, rec, nil
}

// OtherSignatories normalises members to the chain prefix, removes the signer and
// duplicates, and sorts the result. The runtime rejects unsorted lists.
func OtherSignatories(members []string, signer string, prefix uint16) ([]string, error) {
	signerAddr, err := ss58.ToAddress(signer, prefix)
	if err != nil {
		return nil, fmt.Errorf("%w: signer: %v", errno.ErrInvalidAddress, err)
	}

	seen := map[string]struct{}{signerAddr: {}}
	out := make([]string, 0, len(members))
	for _, m := range members {
		addr, err := ss58.ToAddress(m, prefix)
		if err != nil {
			return nil, fmt.Errorf("%w: signatory: %v", errno.ErrInvalidAddress, err)
		}
		if _, dup := seen[addr]; dup {
			continue
		}
		seen[addr] = struct{}{}
		out = append(out, addr)
	}
	sort.Strings(out)
	return out, nil
}
