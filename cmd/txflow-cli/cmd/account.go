package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/wrapper"
	"wallet-txflow/pkg/ss58"
)

const (
	selectedWallet = "w-selected"
	localWallet    = "w-local"
)

// accountFlags 描述所选账户以及本地可签名的账户
type accountFlags struct {
	account     string
	kind        string
	threshold   int
	signatories []string
	signer      string
	proxy       string
	proxyType   string
	shards      []string
}

func (f *accountFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVarP(&f.account, "account", "a", "", "所选账户地址或 0x 公钥")
	fl.StringVar(&f.kind, "type", string(model.AccountTypeBase), "账户类型: base, multisig, proxied")
	fl.IntVar(&f.threshold, "threshold", 2, "multisig 门限")
	fl.StringSliceVar(&f.signatories, "signatories", nil, "multisig 全部签名人")
	fl.StringVar(&f.signer, "signer", "", "本地可签名的 multisig 签名人")
	fl.StringVar(&f.proxy, "proxy", "", "proxied 账户的代理账户")
	fl.StringVar(&f.proxyType, "proxy-type", string(model.ProxyTypeAny), "proxied 账户的代理类型")
	fl.StringSliceVar(&f.shards, "shards", nil, "多分片钱包的地址，每个地址一笔交易")
	_ = cmd.MarkFlagRequired("account")
}

// resolveParams 把命令行参数转换成钱包/账户集合
func (f *accountFlags) resolveParams(chain model.Chain) (wrapper.ResolveParams, error) {
	accountID, err := ss58.ToHex(f.account)
	if err != nil {
		return wrapper.ResolveParams{}, fmt.Errorf("account: %w", err)
	}

	selected := model.Account{ID: "selected", WalletID: selectedWallet, AccountID: accountID, Type: model.AccountType(f.kind)}
	wallet := model.Wallet{ID: selectedWallet, Type: model.WalletTypePolkadotVault}
	local := model.Wallet{ID: localWallet, Type: model.WalletTypePolkadotVault}
	p := wrapper.ResolveParams{Chain: chain, Wallets: []model.Wallet{wallet, local}}

	switch selected.Type {
	case model.AccountTypeMultisig:
		p.Wallets[0].Type = model.WalletTypeMultisig
		selected.Threshold = f.threshold
		for _, s := range f.signatories {
			id, err := ss58.ToHex(s)
			if err != nil {
				return p, fmt.Errorf("signatory %q: %w", s, err)
			}
			selected.Signatories = append(selected.Signatories, model.Signatory{AccountID: id})
		}
		if f.signer != "" {
			id, err := ss58.ToHex(f.signer)
			if err != nil {
				return p, fmt.Errorf("signer: %w", err)
			}
			signer := model.Account{ID: "signer", WalletID: localWallet, AccountID: id, Type: model.AccountTypeBase}
			p.Accounts = append(p.Accounts, signer)
			p.Signatories = []model.Account{signer}
		}
	case model.AccountTypeProxied:
		p.Wallets[0].Type = model.WalletTypeProxied
		id, err := ss58.ToHex(f.proxy)
		if err != nil {
			return p, fmt.Errorf("proxy: %w", err)
		}
		selected.ProxyAccountID = id
		selected.ProxyType = model.ProxyType(f.proxyType)
		p.Accounts = append(p.Accounts, model.Account{ID: "proxy", WalletID: localWallet, AccountID: id, Type: model.AccountTypeBase})
	}

	p.Wallet = p.Wallets[0]
	p.Account = selected
	p.Accounts = append([]model.Account{selected}, p.Accounts...)
	return p, nil
}

// addresses 返回每笔纯交易的签名地址
func (f *accountFlags) addresses(chain model.Chain, account model.Account) ([]string, error) {
	if len(f.shards) == 0 {
		addr, err := ss58.ToAddress(account.AccountID, chain.AddressPrefix)
		if err != nil {
			return nil, err
		}
		return []string{addr}, nil
	}
	out := make([]string, 0, len(f.shards))
	for _, s := range f.shards {
		addr, err := ss58.ToAddress(s, chain.AddressPrefix)
		if err != nil {
			return nil, fmt.Errorf("shard %q: %w", s, err)
		}
		out = append(out, addr)
	}
	return out, nil
}
