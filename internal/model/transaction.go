package model

import (
	"encoding/json"
	"fmt"
)

type TransactionType string

const (
	TransactionTypeTransfer               TransactionType = "transfer"
	TransactionTypeSetPayee               TransactionType = "set_payee"
	TransactionTypeBondExtra              TransactionType = "bond_extra"
	TransactionTypeChill                  TransactionType = "chill"
	TransactionTypeAddProxy               TransactionType = "add_proxy"
	TransactionTypeRemoveProxy            TransactionType = "remove_proxy"
	TransactionTypeRemovePureProxy        TransactionType = "remove_pure_proxy"
	TransactionTypeProxy                  TransactionType = "proxy"
	TransactionTypeMultisigAsMulti        TransactionType = "multisig_as_multi"
	TransactionTypeMultisigApproveAsMulti TransactionType = "multisig_approve_as_multi"
	TransactionTypeMultisigCancelAsMulti  TransactionType = "multisig_cancel_as_multi"
)

// Transaction is an on-chain call plus the address expected to sign it.
// Wrapper transactions (proxy, multisig) embed the call they wrap in their Args.
type Transaction struct {
	ChainID ChainID         `json:"chainId"`
	Address string          `json:"address"`
	Type    TransactionType `json:"type"`
	Args    Args            `json:"args"`
}

// Args is the closed set of per-type argument structs.
type Args interface {
	TxType() TransactionType
}

type TransferArgs struct {
	Dest      string `json:"dest"`
	Value     string `json:"value"`
	KeepAlive bool   `json:"keepAlive,omitempty"`
}

// SetPayeeArgs: empty Destination means rewards are re-staked.
type SetPayeeArgs struct {
	Destination string `json:"destination,omitempty"`
}

type BondExtraArgs struct {
	MaxAdditional string `json:"maxAdditional"`
}

type ChillArgs struct{}

// ProxyDelegateArgs serve both add_proxy and remove_proxy.
type ProxyDelegateArgs struct {
	Delegate  string    `json:"delegate"`
	ProxyType ProxyType `json:"proxyType"`
	Delay     uint32    `json:"delay"`
}

type RemovePureProxyArgs struct {
	Spawner   string    `json:"spawner"`
	ProxyType ProxyType `json:"proxyType"`
	Index     uint16    `json:"index"`
	Height    uint32    `json:"height"`
	ExtIndex  uint32    `json:"extIndex"`
}

type ProxyArgs struct {
	Real           string       `json:"real"`
	ForceProxyType ProxyType    `json:"forceProxyType,omitempty"`
	Transaction    *Transaction `json:"transaction"`
}

type AsMultiArgs struct {
	Threshold        int          `json:"threshold"`
	OtherSignatories []string     `json:"otherSignatories"`
	MaybeTimepoint   *Timepoint   `json:"maybeTimepoint"`
	MaxWeight        Weight       `json:"maxWeight"`
	CallData         string       `json:"callData"`
	CallHash         string       `json:"callHash"`
	Transaction      *Transaction `json:"transaction"`
}

type ApproveAsMultiArgs struct {
	Threshold        int        `json:"threshold"`
	OtherSignatories []string   `json:"otherSignatories"`
	MaybeTimepoint   *Timepoint `json:"maybeTimepoint"`
	MaxWeight        Weight     `json:"maxWeight"`
	CallHash         string     `json:"callHash"`
}

type CancelAsMultiArgs struct {
	Threshold        int       `json:"threshold"`
	OtherSignatories []string  `json:"otherSignatories"`
	Timepoint        Timepoint `json:"timepoint"`
	CallHash         string    `json:"callHash"`
}

func (TransferArgs) TxType() TransactionType        { return TransactionTypeTransfer }
func (SetPayeeArgs) TxType() TransactionType        { return TransactionTypeSetPayee }
func (BondExtraArgs) TxType() TransactionType       { return TransactionTypeBondExtra }
func (ChillArgs) TxType() TransactionType           { return TransactionTypeChill }
func (RemovePureProxyArgs) TxType() TransactionType { return TransactionTypeRemovePureProxy }
func (ProxyArgs) TxType() TransactionType           { return TransactionTypeProxy }
func (AsMultiArgs) TxType() TransactionType         { return TransactionTypeMultisigAsMulti }
func (ApproveAsMultiArgs) TxType() TransactionType  { return TransactionTypeMultisigApproveAsMulti }
func (CancelAsMultiArgs) TxType() TransactionType   { return TransactionTypeMultisigCancelAsMulti }

// TxType of ProxyDelegateArgs is ambiguous; the owning Transaction.Type decides.
func (ProxyDelegateArgs) TxType() TransactionType { return TransactionTypeAddProxy }

// newArgs 根据交易类型返回对应的参数结构体指针
func newArgs(t TransactionType) (Args, error) {
	switch t {
	case TransactionTypeTransfer:
		return &TransferArgs{}, nil
	case TransactionTypeSetPayee:
		return &SetPayeeArgs{}, nil
	case TransactionTypeBondExtra:
		return &BondExtraArgs{}, nil
	case TransactionTypeChill:
		return &ChillArgs{}, nil
	case TransactionTypeAddProxy, TransactionTypeRemoveProxy:
		return &ProxyDelegateArgs{}, nil
	case TransactionTypeRemovePureProxy:
		return &RemovePureProxyArgs{}, nil
	case TransactionTypeProxy:
		return &ProxyArgs{}, nil
	case TransactionTypeMultisigAsMulti:
		return &AsMultiArgs{}, nil
	case TransactionTypeMultisigApproveAsMulti:
		return &ApproveAsMultiArgs{}, nil
	case TransactionTypeMultisigCancelAsMulti:
		return &CancelAsMultiArgs{}, nil
	default:
		return nil, fmt.Errorf("unknown transaction type %q", t)
	}
}

// UnmarshalJSON decodes Args into the struct matching Type.
// Args are stored as values, never pointers.
func (t *Transaction) UnmarshalJSON(data []byte) error {
	var aux struct {
		ChainID ChainID         `json:"chainId"`
		Address string          `json:"address"`
		Type    TransactionType `json:"type"`
		Args    json.RawMessage `json:"args"`
	}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	ptr, err := newArgs(aux.Type)
	if err != nil {
		return err
	}
	if len(aux.Args) > 0 && string(aux.Args) != "null" {
		if err := json.Unmarshal(aux.Args, ptr); err != nil {
			return fmt.Errorf("decode %s args: %w", aux.Type, err)
		}
	}

	t.ChainID = aux.ChainID
	t.Address = aux.Address
	t.Type = aux.Type
	t.Args = deref(ptr)
	return nil
}

func deref(a Args) Args {
	switch v := a.(type) {
	case *TransferArgs:
		return *v
	case *SetPayeeArgs:
		return *v
	case *BondExtraArgs:
		return *v
	case *ChillArgs:
		return *v
	case *ProxyDelegateArgs:
		return *v
	case *RemovePureProxyArgs:
		return *v
	case *ProxyArgs:
		return *v
	case *AsMultiArgs:
		return *v
	case *ApproveAsMultiArgs:
		return *v
	case *CancelAsMultiArgs:
		return *v
	}
	return a
}

// Timepoint 标识链上 multisig 操作首次出现的区块高度与 extrinsic 下标
type Timepoint struct {
	Height uint32 `json:"height"`
	Index  uint32 `json:"index"`
}
