package model

// WrappedTransaction 组合结果
// CoreTx 用于本地展示与历史记录，WrappedTx 用于估算手续费与签名
type WrappedTransaction struct {
	CoreTx     Transaction       `json:"coreTx"`
	WrappedTx  Transaction       `json:"wrappedTx"`
	MultisigTx *MultisigTxRecord `json:"multisigTx,omitempty"`
}

// MultisigTxRecord is the bookkeeping data other signatories need to find and
// approve the same operation.
type MultisigTxRecord struct {
	ChainID          ChainID     `json:"chainId"`
	AccountID        string      `json:"accountId"` // multisig account
	Signer           string      `json:"signer"`
	Threshold        int         `json:"threshold"`
	OtherSignatories []string    `json:"otherSignatories"`
	CallHash         string      `json:"callHash"`
	CallData         string      `json:"callData"`
	Timepoint        *Timepoint  `json:"timepoint,omitempty"`
	Transaction      Transaction `json:"transaction"` // the call being approved
}
