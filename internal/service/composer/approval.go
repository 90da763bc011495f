package composer

import (
	"fmt"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/ss58"
)

// BuildCancelAsMulti builds the call that cancels a pending multisig operation.
// Only the depositor can cancel on chain; signer is normally rec.Signer.
func BuildCancelAsMulti(chain model.Chain, rec model.MultisigTxRecord, signer string, timepoint model.Timepoint) (model.Transaction, error) {
	others, signerAddr, err := approvers(chain, rec, signer)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ChainID: chain.ChainID,
		Address: signerAddr,
		Type:    model.TransactionTypeMultisigCancelAsMulti,
		Args: model.CancelAsMultiArgs{
			Threshold:        rec.Threshold,
			OtherSignatories: others,
			Timepoint:        timepoint,
			CallHash:         rec.CallHash,
		},
	}, nil
}

// BuildApproveAsMulti builds an approval by another signatory for an operation
// already started on chain at timepoint.
func BuildApproveAsMulti(chain model.Chain, rec model.MultisigTxRecord, signer string, timepoint *model.Timepoint) (model.Transaction, error) {
	others, signerAddr, err := approvers(chain, rec, signer)
	if err != nil {
		return model.Transaction{}, err
	}
	return model.Transaction{
		ChainID: chain.ChainID,
		Address: signerAddr,
		Type:    model.TransactionTypeMultisigApproveAsMulti,
		Args: model.ApproveAsMultiArgs{
			Threshold:        rec.Threshold,
			OtherSignatories: others,
			MaybeTimepoint:   timepoint,
			MaxWeight:        chain.MaxWeight,
			CallHash:         rec.CallHash,
		},
	}, nil
}

// approvers rebuilds the full signatory set from the record and removes signer.
func approvers(chain model.Chain, rec model.MultisigTxRecord, signer string) ([]string, string, error) {
	if rec.Threshold < 2 || rec.CallHash == "" {
		return nil, "", fmt.Errorf("%w: incomplete multisig record", errno.ErrInvalidWrapper)
	}
	signerAddr, err := ss58.ToAddress(signer, chain.AddressPrefix)
	if err != nil {
		return nil, "", fmt.Errorf("%w: signer: %v", errno.ErrInvalidAddress, err)
	}

	members := append([]string{rec.Signer}, rec.OtherSignatories...)
	found := false
	for _, m := range members {
		if addr, err := ss58.ToAddress(m, chain.AddressPrefix); err == nil && addr == signerAddr {
			found = true
			break
		}
	}
	if !found {
		return nil, "", fmt.Errorf("%w: %s", errno.ErrSignerMismatch, signer)
	}

	others, err := OtherSignatories(members, signer, chain.AddressPrefix)
	if err != nil {
		return nil, "", err
	}
	return others, signerAddr, nil
}
