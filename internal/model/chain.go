package model

// ChainID is the genesis hash of a chain (0x hex).
type ChainID string

// CallIndex 是 call 在 runtime 中的 [pallet, call] 下标
type CallIndex [2]uint8

// Call names used as keys of Chain.CallIndices.
const (
	CallTransferAllowDeath = "balances.transfer_allow_death"
	CallTransferKeepAlive  = "balances.transfer_keep_alive"
	CallBondExtra          = "staking.bond_extra"
	CallChill              = "staking.chill"
	CallSetPayee           = "staking.set_payee"
	CallProxy              = "proxy.proxy"
	CallAddProxy           = "proxy.add_proxy"
	CallRemoveProxy        = "proxy.remove_proxy"
	CallKillPure           = "proxy.kill_pure"
	CallAsMulti            = "multisig.as_multi"
	CallApproveAsMulti     = "multisig.approve_as_multi"
	CallCancelAsMulti      = "multisig.cancel_as_multi"
)

// DefaultCallIndices follow the Polkadot relay chain runtime.
var DefaultCallIndices = map[string]CallIndex{
	CallTransferAllowDeath: {5, 0},
	CallTransferKeepAlive:  {5, 3},
	CallBondExtra:          {7, 1},
	CallChill:              {7, 6},
	CallSetPayee:           {7, 7},
	CallProxy:              {29, 0},
	CallAddProxy:           {29, 1},
	CallRemoveProxy:        {29, 2},
	CallKillPure:           {29, 5},
	CallAsMulti:            {30, 1},
	CallApproveAsMulti:     {30, 2},
	CallCancelAsMulti:      {30, 3},
}

type Asset struct {
	Symbol    string `json:"symbol"`
	Precision int32  `json:"precision"`
}

// MultisigConstants mirror the multisig pallet constants used for the deposit.
type MultisigConstants struct {
	DepositBase   string `json:"depositBase"`
	DepositFactor string `json:"depositFactor"`
}

type Weight struct {
	RefTime   uint64 `json:"refTime"`
	ProofSize uint64 `json:"proofSize"`
}

// Chain 链元数据，只读
type Chain struct {
	ChainID       ChainID              `json:"chainId"`
	Name          string               `json:"name"`
	AddressPrefix uint16               `json:"addressPrefix"`
	Asset         Asset                `json:"asset"`
	Multisig      MultisigConstants    `json:"multisig"`
	MaxWeight     Weight               `json:"maxWeight"`
	CallIndices   map[string]CallIndex `json:"callIndices,omitempty"`
}

// CallIndex looks up a call, falling back to DefaultCallIndices.
func (c Chain) CallIndex(name string) (CallIndex, bool) {
	if idx, ok := c.CallIndices[name]; ok {
		return idx, true
	}
	idx, ok := DefaultCallIndices[name]
	return idx, ok
}
