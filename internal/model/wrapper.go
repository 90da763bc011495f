package model

import "encoding/json"

type WrapperKind string

const (
	WrapperKindMultisig WrapperKind = "multisig"
	WrapperKindProxy    WrapperKind = "proxy"
)

// TxWrapper is one layer of indirection around a call.
// The set is closed: MultisigTxWrapper and ProxyTxWrapper.
type TxWrapper interface {
	Kind() WrapperKind
	isTxWrapper()
}

// MultisigTxWrapper wraps a call into multisig.as_multi.
// Signatories are the current user's accounts that belong to the multisig,
// Signer is the one that will sign.
type MultisigTxWrapper struct {
	MultisigAccount Account   `json:"multisigAccount"`
	Signatories     []Account `json:"signatories"`
	Signer          Account   `json:"signer"`
}

// ProxyTxWrapper wraps a call into proxy.proxy on behalf of ProxiedAccount.
type ProxyTxWrapper struct {
	ProxyAccount   Account `json:"proxyAccount"`
	ProxiedAccount Account `json:"proxiedAccount"`
}

func (MultisigTxWrapper) Kind() WrapperKind { return WrapperKindMultisig }
func (ProxyTxWrapper) Kind() WrapperKind    { return WrapperKindProxy }

func (MultisigTxWrapper) isTxWrapper() {}
func (ProxyTxWrapper) isTxWrapper()    {}

func (w MultisigTxWrapper) MarshalJSON() ([]byte, error) {
	type plain MultisigTxWrapper
	return json.Marshal(struct {
		Kind WrapperKind `json:"kind"`
		plain
	}{WrapperKindMultisig, plain(w)})
}

func (w ProxyTxWrapper) MarshalJSON() ([]byte, error) {
	type plain ProxyTxWrapper
	return json.Marshal(struct {
		Kind WrapperKind `json:"kind"`
		plain
	}{WrapperKindProxy, plain(w)})
}
