package handler

import (
	"context"
	"fmt"

	"github.com/gin-gonic/gin"

	"wallet-txflow/internal/handler/request"
	"wallet-txflow/internal/handler/response"
	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/ss58"
	"wallet-txflow/pkg/validator"
)

// Recorder 由 submission.Service 实现
type Recorder interface {
	Submit(ctx context.Context, sub model.Submission) error
}

// PendingLister 由 submission.MultisigRepository 实现
type PendingLister interface {
	ListPending(ctx context.Context, chainID, accountID string) ([]model.MultisigTransaction, error)
}

type SubmissionHandler struct {
	chains   ChainLookup
	recorder Recorder
	pending  PendingLister
}

func NewSubmissionHandler(chains ChainLookup, recorder Recorder, pending PendingLister) *SubmissionHandler {
	return &SubmissionHandler{chains: chains, recorder: recorder, pending: pending}
}

// Submit 记录已签名提交的操作 (multisig 记账 + 事件)
// POST /api/v1/transactions/submit
func (h *SubmissionHandler) Submit(c *gin.Context) {
	var sub model.Submission
	if err := c.ShouldBindJSON(&sub); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", errno.ErrBind, validator.GetErrorMsg(err)))
		return
	}
	chain, err := h.chains.Get(string(sub.ChainID))
	if err != nil {
		response.Error(c, err)
		return
	}
	sub.ChainID = chain.ChainID

	if err := h.recorder.Submit(c.Request.Context(), sub); err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"recorded": len(sub.MultisigTxs)})
}

// Pending 查询 multisig 账户下尚未执行的操作
// GET /api/v1/multisig/pending?chain_id=...&account=...
func (h *SubmissionHandler) Pending(c *gin.Context) {
	var req request.PendingRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", errno.ErrBind, validator.GetErrorMsg(err)))
		return
	}
	chain, err := h.chains.Get(req.ChainID)
	if err != nil {
		response.Error(c, err)
		return
	}
	accountID, err := ss58.ToHex(req.Account)
	if err != nil {
		response.Error(c, fmt.Errorf("%w: %v", errno.ErrInvalidAddress, err))
		return
	}

	rows, err := h.pending.ListPending(c.Request.Context(), string(chain.ChainID), accountID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Success(c, gin.H{"items": rows})
}
