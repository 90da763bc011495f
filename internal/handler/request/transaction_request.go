package request

import "wallet-txflow/internal/model"

// ComposeRequest 组合交易请求
// Accounts/Wallets 为用户本地的账户与钱包，用于寻找可签名的 multisig 签名人或 proxy 账户
type ComposeRequest struct {
	ChainID      string              `json:"chain_id" binding:"required"`
	Account      model.Account       `json:"account" binding:"required"`
	Signatory    *model.Account      `json:"signatory"`
	Accounts     []model.Account     `json:"accounts"`
	Wallets      []model.Wallet      `json:"wallets"`
	Transactions []model.Transaction `json:"transactions" binding:"required,min=1,max=100"`
	WithFee      bool                `json:"with_fee"`
}

type FeeRequest struct {
	ChainID     string            `json:"chain_id" binding:"required"`
	Transaction model.Transaction `json:"transaction" binding:"required"`
	Count       int               `json:"count" binding:"min=0,max=100"`
	Threshold   int               `json:"threshold" binding:"omitempty,min=2"`
}

type MultisigAccountRequest struct {
	ChainID     string   `json:"chain_id"`
	Signatories []string `json:"signatories" binding:"required,min=2,dive,ss58"`
	Threshold   int      `json:"threshold" binding:"required,min=2"`
}

type PendingRequest struct {
	ChainID string `form:"chain_id" binding:"required"`
	Account string `form:"account" binding:"required"`
}
