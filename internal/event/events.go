package event

import "time"

// Topics
const (
	TopicTxSubmitted    = "wallet_events_tx_submitted"
	TopicMultisigStatus = "wallet_events_multisig_status"
)

// TxSubmittedEvent 交易提交事件
// Topic: wallet_events_tx_submitted, key = chain id
type TxSubmittedEvent struct {
	ChainID     string            `json:"chain_id"`
	Account     string            `json:"account"`
	Signer      string            `json:"signer,omitempty"`
	Description string            `json:"description,omitempty"`
	TxTypes     []string          `json:"tx_types"`
	Multisig    []MultisigPending `json:"multisig,omitempty"`
	SubmittedAt time.Time         `json:"submitted_at"`
}

// MultisigPending 等待其他签名人批准的 multisig 操作
type MultisigPending struct {
	AccountID        string   `json:"account_id"`
	CallHash         string   `json:"call_hash"`
	Threshold        int      `json:"threshold"`
	OtherSignatories []string `json:"other_signatories"`
}

// MultisigStatusEvent 链上 multisig 状态变化 (已执行 / 已取消)
// Topic: wallet_events_multisig_status
type MultisigStatusEvent struct {
	ChainID  string `json:"chain_id"`
	CallHash string `json:"call_hash"`
	Status   string `json:"status"`
}
