// Package wrapper decides which wrappers (proxy, multisig) an operation needs.
package wrapper

import (
	"fmt"
	"strings"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/ss58"
)

// ResolveParams 解析参数
// Account 为发起操作的账户；Signatories 为用户显式选择的签名人 (可选)
// Wallet 为 Account 所属钱包，为空时按 Account.WalletID 在 Wallets 中查找
type ResolveParams struct {
	Chain       model.Chain
	Wallet      model.Wallet
	Wallets     []model.Wallet
	Account     model.Account
	Accounts    []model.Account
	Signatories []model.Account
}

// GetTxWrappers returns the wrappers for p.Account in application order:
// proxy first (if the account is proxied), then multisig (if the signing account is a multisig).
//
// The wrappers are returned even when an error is reported, so callers can still show
// what would be needed; the error means the flow cannot be signed.
func GetTxWrappers(p ResolveParams) ([]model.TxWrapper, error) {
	var wrappers []model.TxWrapper

	if w, ok := ownWallet(p); ok && !w.CanSign() && !p.Account.IsProxied() && !p.Account.IsMultisig() {
		return wrappers, fmt.Errorf("%w: wallet %s is watch-only", errno.ErrCannotSign, w.ID)
	}

	signing := p.Account
	if signing.IsProxied() {
		proxy, ok := findAccount(p.Accounts, signing.ProxyAccountID, p.Chain.ChainID)
		if !ok {
			return wrappers, fmt.Errorf("%w: %s", errno.ErrProxyNotFound, signing.ProxyAccountID)
		}
		wrappers = append(wrappers, model.ProxyTxWrapper{
			ProxyAccount:   proxy,
			ProxiedAccount: signing,
		})
		signing = proxy
	}

	if signing.IsMultisig() {
		w, err := multisigWrapper(p, signing)
		wrappers = append(wrappers, w)
		if err != nil {
			return wrappers, err
		}
	}

	return wrappers, nil
}

func multisigWrapper(p ResolveParams, multisig model.Account) (model.MultisigTxWrapper, error) {
	w := model.MultisigTxWrapper{MultisigAccount: multisig}
	if err := validateMultisig(multisig); err != nil {
		return w, err
	}
	signers := signableSignatories(p, multisig)
	w.Signatories = signers

	// 1. 用户显式选择了签名人
	if len(p.Signatories) > 0 {
		chosen := p.Signatories[0]
		for _, s := range signers {
			if sameAccount(s.AccountID, chosen.AccountID) {
				w.Signer = s
				return w, nil
			}
		}
		return w, fmt.Errorf("%w: %s", errno.ErrSignerMismatch, chosen.AccountID)
	}

	// 2. 默认使用第一个可签名的账户
	if len(signers) == 0 {
		return w, fmt.Errorf("%w: %s", errno.ErrCannotSign, multisig.AccountID)
	}
	w.Signer = signers[0]
	return w, nil
}

// signableSignatories returns the user's accounts that are signatories of multisig,
// unique by account id, skipping watch-only wallets and the multisig itself.
func signableSignatories(p ResolveParams, multisig model.Account) []model.Account {
	members := make(map[string]struct{}, len(multisig.Signatories))
	for _, s := range multisig.Signatories {
		members[canonical(s.AccountID)] = struct{}{}
	}
	self := canonical(multisig.AccountID)

	walletByID := make(map[string]model.Wallet, len(p.Wallets))
	for _, w := range p.Wallets {
		walletByID[w.ID] = w
	}

	seen := make(map[string]struct{})
	var out []model.Account
	for _, a := range p.Accounts {
		id := canonical(a.AccountID)
		if id == self || !a.IsOnChain(p.Chain.ChainID) {
			continue
		}
		if _, ok := members[id]; !ok {
			continue
		}
		if w, ok := walletByID[a.WalletID]; ok && !w.CanSign() {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, a)
	}
	return out
}

func findAccount(accounts []model.Account, accountID string, chainID model.ChainID) (model.Account, bool) {
	for _, a := range accounts {
		if sameAccount(a.AccountID, accountID) && a.IsOnChain(chainID) {
			return a, true
		}
	}
	return model.Account{}, false
}

// validateMultisig 客户端传入的 multisig 账户必须是链上可能存在的配置
func validateMultisig(m model.Account) error {
	unique := make(map[string]struct{}, len(m.Signatories))
	for _, s := range m.Signatories {
		unique[canonical(s.AccountID)] = struct{}{}
	}
	switch {
	case len(unique) == 0:
		return fmt.Errorf("%w: %s has no signatories", errno.ErrInvalidMultisig, m.AccountID)
	case m.Threshold < 2:
		return fmt.Errorf("%w: threshold %d of %s is below 2", errno.ErrInvalidMultisig, m.Threshold, m.AccountID)
	case m.Threshold > len(unique):
		return fmt.Errorf("%w: threshold %d exceeds %d signatories", errno.ErrInvalidMultisig, m.Threshold, len(unique))
	}
	return nil
}

func ownWallet(p ResolveParams) (model.Wallet, bool) {
	if p.Wallet.ID != "" {
		return p.Wallet, true
	}
	for _, w := range p.Wallets {
		if w.ID == p.Account.WalletID {
			return w, true
		}
	}
	return model.Wallet{}, false
}

// canonical 统一为小写 0x 公钥，SS58 地址或大写十六进制都指向同一账户
func canonical(id string) string {
	if hexID, err := ss58.ToHex(id); err == nil {
		return hexID
	}
	return strings.ToLower(id)
}

func sameAccount(a, b string) bool {
	return canonical(a) == canonical(b)
}

func HasMultisig(wrappers []model.TxWrapper) bool {
	_, ok := FindMultisig(wrappers)
	return ok
}

func HasProxy(wrappers []model.TxWrapper) bool {
	_, ok := FindProxy(wrappers)
	return ok
}

func FindMultisig(wrappers []model.TxWrapper) (model.MultisigTxWrapper, bool) {
	for _, w := range wrappers {
		if m, ok := w.(model.MultisigTxWrapper); ok {
			return m, true
		}
	}
	return model.MultisigTxWrapper{}, false
}

func FindProxy(wrappers []model.TxWrapper) (model.ProxyTxWrapper, bool) {
	for _, w := range wrappers {
		if p, ok := w.(model.ProxyTxWrapper); ok {
			return p, true
		}
	}
	return model.ProxyTxWrapper{}, false
}
