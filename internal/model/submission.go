package model

// Submission is what the wizard hands to the submit collaborator once signing is done.
type Submission struct {
	ChainID     ChainID            `json:"chainId"`
	Account     Account            `json:"account"`
	Signatory   *Account           `json:"signatory,omitempty"`
	Description string             `json:"description,omitempty"`
	Signatures  []string           `json:"signatures,omitempty"`
	CoreTxs     []Transaction      `json:"coreTxs"`
	WrappedTxs  []Transaction      `json:"wrappedTxs"`
	MultisigTxs []MultisigTxRecord `json:"multisigTxs,omitempty"`
}
