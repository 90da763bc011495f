package flow

import (
	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/builder"
)

const (
	alice   = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	bob     = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	charlie = "0x90b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22"
	msig    = "0x1111111111111111111111111111111111111111111111111111111111111111"
)

var polkadot = model.Chain{
	ChainID:   "0x91b171bb158e2d3848fa23a9f1c25182fb8e20313b2c1eb49219da7a70ce90c3",
	Name:      "Polkadot",
	Asset:     model.Asset{Symbol: "DOT", Precision: 10},
	Multisig:  model.MultisigConstants{DepositBase: "200880000000", DepositFactor: "320000000"},
	MaxWeight: model.Weight{RefTime: 1000, ProofSize: 2000},
}

var multisigAccount = model.Account{
	ID: "m", WalletID: "w-msig", AccountID: msig, Type: model.AccountTypeMultisig, Threshold: 2,
	Signatories: []model.Signatory{{AccountID: alice}, {AccountID: bob}, {AccountID: charlie}},
}

func started(intent builder.IntentFunc) FlowStarted {
	return FlowStarted{
		Chain:  polkadot,
		Wallet: model.Wallet{ID: "w-msig", Type: model.WalletTypeMultisig},
		Wallets: []model.Wallet{
			{ID: "w-msig", Type: model.WalletTypeMultisig},
			{ID: "w-vault", Type: model.WalletTypePolkadotVault},
		},
		Accounts: []model.Account{
			multisigAccount,
			{ID: "b", WalletID: "w-vault", AccountID: bob, Type: model.AccountTypeBase},
		},
		Account:     multisigAccount,
		Intent:      intent,
		Description: "set payee",
	}
}
