package handler

import (
	"context"
	"errors"
	"fmt"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"wallet-txflow/internal/handler/request"
	"wallet-txflow/internal/handler/response"
	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/composer"
	"wallet-txflow/internal/service/wrapper"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/logger"
	"wallet-txflow/pkg/validator"
)

// ChainLookup 由 chain.Registry 实现
type ChainLookup interface {
	Get(idOrName string) (model.Chain, error)
}

// FeeQuoter 由 fee.Quoter 实现
type FeeQuoter interface {
	Quote(ctx context.Context, tx model.Transaction, chain model.Chain, count int) (model.FeeData, error)
	Deposit(ctx context.Context, threshold int, chain model.Chain) (string, error)
}

type TransactionHandler struct {
	chains ChainLookup
	fees   FeeQuoter
}

func NewTransactionHandler(chains ChainLookup, fees FeeQuoter) *TransactionHandler {
	return &TransactionHandler{chains: chains, fees: fees}
}

type ComposeResponse struct {
	TxWrappers   []model.TxWrapper          `json:"tx_wrappers"`
	Transactions []model.WrappedTransaction `json:"transactions"`
	Fee          *model.FeeData             `json:"fee,omitempty"`
	FeeError     string                     `json:"fee_error,omitempty"`
}

// Compose 解析 wrapper 并组合交易
// POST /api/v1/transactions/compose
func (h *TransactionHandler) Compose(c *gin.Context) {
	var req request.ComposeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", errno.ErrBind, validator.GetErrorMsg(err)))
		return
	}

	chain, err := h.chains.Get(req.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var signatories []model.Account
	if req.Signatory != nil {
		signatories = []model.Account{*req.Signatory}
	}
	wrappers, err := wrapper.GetTxWrappers(wrapper.ResolveParams{
		Chain:       chain,
		Account:     req.Account,
		Accounts:    req.Accounts,
		Wallets:     req.Wallets,
		Signatories: signatories,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	txs, err := composer.GetWrappedTransactions(chain, req.Transactions, wrappers)
	if err != nil {
		response.Error(c, err)
		return
	}

	resp := ComposeResponse{TxWrappers: wrappers, Transactions: txs}
	if req.WithFee && len(txs) > 0 {
		data, err := h.quote(c.Request.Context(), chain, txs[0].WrappedTx, len(txs), wrappers)
		resp.Fee = &data
		if err != nil {
			resp.FeeError = err.Error()
		}
	}
	response.Success(c, resp)
}

// Fee 查询单笔交易手续费，按 count 聚合
// POST /api/v1/transactions/fee
func (h *TransactionHandler) Fee(c *gin.Context) {
	var req request.FeeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", errno.ErrBind, validator.GetErrorMsg(err)))
		return
	}
	chain, err := h.chains.Get(req.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	count := req.Count
	if count == 0 {
		count = 1
	}

	data, err := h.fees.Quote(c.Request.Context(), req.Transaction, chain, count)
	if req.Threshold > 0 {
		deposit, derr := h.fees.Deposit(c.Request.Context(), req.Threshold, chain)
		data.MultisigDeposit = deposit
		err = errors.Join(err, derr)
	}
	if err != nil {
		logger.Warn("fee endpoint degraded", zap.String("chain_id", string(chain.ChainID)), zap.Error(err))
		response.Success(c, gin.H{"fee": data, "fee_error": err.Error()})
		return
	}
	response.Success(c, gin.H{"fee": data})
}

// quote 失败时返回 0 费用并附带错误说明，不阻塞组合结果
func (h *TransactionHandler) quote(ctx context.Context, chain model.Chain, tx model.Transaction, count int, wrappers []model.TxWrapper) (model.FeeData, error) {
	data, err := h.fees.Quote(ctx, tx, chain, count)
	if m, ok := wrapper.FindMultisig(wrappers); ok {
		deposit, derr := h.fees.Deposit(ctx, m.MultisigAccount.Threshold, chain)
		data.MultisigDeposit = deposit
		err = errors.Join(err, derr)
	}
	return data, err
}
