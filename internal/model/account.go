package model

type WalletType string

const (
	WalletTypeWatchOnly     WalletType = "watch_only"
	WalletTypePolkadotVault WalletType = "polkadot_vault"
	WalletTypeMultishard    WalletType = "multishard"
	WalletTypeMultisig      WalletType = "multisig"
	WalletTypeProxied       WalletType = "proxied"
	WalletTypeWalletConnect WalletType = "wallet_connect"
	WalletTypeNovaWallet    WalletType = "nova_wallet"
)

type Wallet struct {
	ID   string     `json:"id"`
	Name string     `json:"name"`
	Type WalletType `json:"type"`
}

// CanSign 观察钱包不能签名
func (w Wallet) CanSign() bool {
	return w.Type != WalletTypeWatchOnly
}

type AccountType string

const (
	AccountTypeBase          AccountType = "base"
	AccountTypeChain         AccountType = "chain"
	AccountTypeShard         AccountType = "shard"
	AccountTypeMultisig      AccountType = "multisig"
	AccountTypeProxied       AccountType = "proxied"
	AccountTypeWalletConnect AccountType = "wallet_connect"
)

type Signatory struct {
	AccountID string `json:"accountId"`
	Name      string `json:"name,omitempty"`
}

// Account 钱包下的账户
// AccountID 为 0x 十六进制公钥；ChainID 为空表示该账户对所有链有效
type Account struct {
	ID        string      `json:"id"`
	WalletID  string      `json:"walletId"`
	AccountID string      `json:"accountId" binding:"required"`
	Name      string      `json:"name,omitempty"`
	Type      AccountType `json:"type" binding:"required"`
	ChainID   ChainID     `json:"chainId,omitempty"`

	// multisig
	Threshold   int         `json:"threshold,omitempty"`
	Signatories []Signatory `json:"signatories,omitempty"`

	// proxied
	ProxyAccountID string    `json:"proxyAccountId,omitempty"`
	ProxyType      ProxyType `json:"proxyType,omitempty"`
}

func (a Account) IsMultisig() bool {
	return a.Type == AccountTypeMultisig
}

func (a Account) IsProxied() bool {
	return a.Type == AccountTypeProxied
}

// IsOnChain reports whether the account is usable on chainID.
func (a Account) IsOnChain(chainID ChainID) bool {
	return a.ChainID == "" || a.ChainID == chainID
}

// ProxyType 代理类型，对应链上的 ProxyType 枚举
type ProxyType string

const (
	ProxyTypeAny             ProxyType = "Any"
	ProxyTypeNonTransfer     ProxyType = "NonTransfer"
	ProxyTypeGovernance      ProxyType = "Governance"
	ProxyTypeStaking         ProxyType = "Staking"
	ProxyTypeCancelProxy     ProxyType = "CancelProxy"
	ProxyTypeAuction         ProxyType = "Auction"
	ProxyTypeNominationPools ProxyType = "NominationPools"
)

// proxyTypeIndex 为 Polkadot runtime 中的枚举下标 (4 已废弃)
var proxyTypeIndex = map[ProxyType]uint8{
	ProxyTypeAny:             0,
	ProxyTypeNonTransfer:     1,
	ProxyTypeGovernance:      2,
	ProxyTypeStaking:         3,
	ProxyTypeCancelProxy:     6,
	ProxyTypeAuction:         7,
	ProxyTypeNominationPools: 8,
}

func (p ProxyType) Index() (uint8, bool) {
	idx, ok := proxyTypeIndex[p]
	return idx, ok
}
