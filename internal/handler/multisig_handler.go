package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"wallet-txflow/internal/handler/request"
	"wallet-txflow/internal/handler/response"
	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/ss58"
	"wallet-txflow/pkg/validator"
)

type MultisigHandler struct {
	chains ChainLookup
}

func NewMultisigHandler(chains ChainLookup) *MultisigHandler {
	return &MultisigHandler{chains: chains}
}

// Account 计算 multisig 账户地址
// POST /api/v1/multisig/account
func (h *MultisigHandler) Account(c *gin.Context) {
	var req request.MultisigAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", errno.ErrBind, validator.GetErrorMsg(err)))
		return
	}
	if req.Threshold > len(req.Signatories) {
		response.Error(c, fmt.Errorf("%w: threshold %d exceeds %d signatories", errno.ErrBind, req.Threshold, len(req.Signatories)))
		return
	}

	accountID, err := callcodec.MultisigAccountID(req.Signatories, req.Threshold)
	if err != nil {
		response.Error(c, err)
		return
	}

	data := gin.H{"account_id": accountID}
	if req.ChainID != "" {
		chain, err := h.chains.Get(req.ChainID)
		if err != nil {
			response.Error(c, err)
			return
		}
		addr, err := ss58.ToAddress(accountID, chain.AddressPrefix)
		if err != nil {
			response.Error(c, err)
			return
		}
		data["address"] = addr
	}
	response.Success(c, data)
}
