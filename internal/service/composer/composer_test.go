package composer

import (
	"sort"
	"testing"

	"go.uber.org/multierr"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/ss58"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice   = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	bob     = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	charlie = "0x90b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22"
	msig    = "0x1111111111111111111111111111111111111111111111111111111111111111"
	stash   = "0x2222222222222222222222222222222222222222222222222222222222222222"
)

var polkadot = model.Chain{
	ChainID:       "0x91b171bb158e2d3848fa23a9f1c25182fb8e20313b2c1eb49219da7a70ce90c3",
	AddressPrefix: 0,
	MaxWeight:     model.Weight{RefTime: 1000, ProofSize: 2000},
}

func addr(t *testing.T, v string) string {
	t.Helper()
	a, err := ss58.ToAddress(v, polkadot.AddressPrefix)
	require.NoError(t, err)
	return a
}

func setPayee() model.Transaction {
	return model.Transaction{
		ChainID: polkadot.ChainID,
		Address: msig,
		Type:    model.TransactionTypeSetPayee,
		Args:    model.SetPayeeArgs{},
	}
}

func multisigWrapper(signer string) model.MultisigTxWrapper {
	return model.MultisigTxWrapper{
		MultisigAccount: model.Account{
			AccountID: msig,
			Type:      model.AccountTypeMultisig,
			Threshold: 2,
			Signatories: []model.Signatory{
				{AccountID: charlie}, {AccountID: bob}, {AccountID: alice},
			},
		},
		Signatories: []model.Account{{AccountID: signer}},
		Signer:      model.Account{AccountID: signer},
	}
}

func proxyWrapper() model.ProxyTxWrapper {
	return model.ProxyTxWrapper{
		ProxyAccount:   model.Account{AccountID: msig, Type: model.AccountTypeMultisig},
		ProxiedAccount: model.Account{AccountID: stash, Type: model.AccountTypeProxied, ProxyType: model.ProxyTypeStaking},
	}
}

func TestGetWrappedTransaction_NoWrappers(t *testing.T) {
	tx := setPayee()
	got, err := GetWrappedTransaction(WrapParams{Chain: polkadot, Transaction: tx})
	require.NoError(t, err)

	assert.Equal(t, tx, got.CoreTx)
	assert.Equal(t, tx, got.WrappedTx)
	assert.Nil(t, got.MultisigTx)
}

func TestGetWrappedTransaction_SetPayeeMultisig(t *testing.T) {
	got, err := GetWrappedTransaction(WrapParams{
		Chain:       polkadot,
		Transaction: setPayee(),
		TxWrappers:  []model.TxWrapper{multisigWrapper(bob)},
	})
	require.NoError(t, err)

	assert.Equal(t, setPayee(), got.CoreTx)
	assert.Equal(t, model.TransactionTypeMultisigAsMulti, got.WrappedTx.Type)
	assert.Equal(t, addr(t, bob), got.WrappedTx.Address)

	args, ok := got.WrappedTx.Args.(model.AsMultiArgs)
	require.True(t, ok)
	assert.Equal(t, 2, args.Threshold)
	assert.Nil(t, args.MaybeTimepoint)
	assert.Equal(t, polkadot.MaxWeight, args.MaxWeight)
	assert.Equal(t, "0x070700", args.CallData)
	assert.Equal(t, callcodec.CallHash([]byte{0x07, 0x07, 0x00}), args.CallHash)

	expected := []string{addr(t, alice), addr(t, charlie)}
	sort.Strings(expected)
	assert.Equal(t, expected, args.OtherSignatories)

	require.NotNil(t, got.MultisigTx)
	rec := got.MultisigTx
	assert.Equal(t, msig, rec.AccountID)
	assert.Equal(t, bob, rec.Signer)
	assert.Equal(t, args.CallHash, rec.CallHash)
	assert.Equal(t, args.CallData, rec.CallData)
	assert.Equal(t, expected, rec.OtherSignatories)
	assert.Equal(t, setPayee(), rec.Transaction)
}

func TestGetWrappedTransaction_MultisigOutermost(t *testing.T) {
	// 输入顺序不影响结果
	for _, wrappers := range [][]model.TxWrapper{
		{proxyWrapper(), multisigWrapper(alice)},
		{multisigWrapper(alice), proxyWrapper()},
	} {
		got, err := GetWrappedTransaction(WrapParams{Chain: polkadot, Transaction: setPayee(), TxWrappers: wrappers})
		require.NoError(t, err)

		outer, ok := got.WrappedTx.Args.(model.AsMultiArgs)
		require.True(t, ok, "multisig must be outermost")
		require.NotNil(t, outer.Transaction)
		assert.Equal(t, model.TransactionTypeProxy, outer.Transaction.Type)
		assert.Equal(t, addr(t, msig), outer.Transaction.Address)

		proxy := outer.Transaction.Args.(model.ProxyArgs)
		assert.Equal(t, addr(t, stash), proxy.Real)
		assert.Equal(t, model.ProxyTypeStaking, proxy.ForceProxyType)
		assert.Equal(t, setPayee(), *proxy.Transaction)

		// multisig 记录里的 call 是 proxy 调用
		assert.Equal(t, model.TransactionTypeProxy, got.MultisigTx.Transaction.Type)
		call, err := callcodec.Encode(*outer.Transaction, polkadot)
		require.NoError(t, err)
		assert.Equal(t, callcodec.CallHash(call), got.MultisigTx.CallHash)
	}
}

func TestGetWrappedTransaction_ProxyOnly(t *testing.T) {
	got, err := GetWrappedTransaction(WrapParams{
		Chain:       polkadot,
		Transaction: setPayee(),
		TxWrappers:  []model.TxWrapper{proxyWrapper()},
	})
	require.NoError(t, err)
	assert.Equal(t, model.TransactionTypeProxy, got.WrappedTx.Type)
	assert.Equal(t, addr(t, msig), got.WrappedTx.Address)
	assert.Nil(t, got.MultisigTx)
}

func TestGetWrappedTransaction_Deterministic(t *testing.T) {
	p := WrapParams{
		Chain:       polkadot,
		Transaction: setPayee(),
		TxWrappers:  []model.TxWrapper{proxyWrapper(), multisigWrapper(bob)},
	}
	first, err := GetWrappedTransaction(p)
	require.NoError(t, err)
	second, err := GetWrappedTransaction(p)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	a, _ := callcodec.Encode(first.WrappedTx, polkadot)
	b, _ := callcodec.Encode(second.WrappedTx, polkadot)
	assert.Equal(t, a, b)
}

func TestGetWrappedTransaction_InvalidWrappers(t *testing.T) {
	tests := []struct {
		name     string
		wrappers []model.TxWrapper
		count    int
	}{
		{
			name: "threshold too low",
			wrappers: []model.TxWrapper{func() model.TxWrapper {
				w := multisigWrapper(bob)
				w.MultisigAccount.Threshold = 1
				return w
			}()},
			count: 1,
		},
		{
			name:     "missing signer and signatories",
			wrappers: []model.TxWrapper{model.MultisigTxWrapper{MultisigAccount: model.Account{Threshold: 2}}},
			count:    2,
		},
		{
			name:     "duplicate proxy",
			wrappers: []model.TxWrapper{proxyWrapper(), proxyWrapper()},
			count:    1,
		},
		{
			name:     "empty proxy",
			wrappers: []model.TxWrapper{model.ProxyTxWrapper{}},
			count:    2,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := GetWrappedTransaction(WrapParams{Chain: polkadot, Transaction: setPayee(), TxWrappers: tt.wrappers})
			require.Error(t, err)
			assert.ErrorIs(t, err, errno.ErrInvalidWrapper)
			assert.Len(t, multierr.Errors(err), tt.count)
			assert.Equal(t, model.WrappedTransaction{}, got)
		})
	}
}

func TestGetWrappedTransactions(t *testing.T) {
	txs := []model.Transaction{setPayee(), setPayee(), setPayee()}
	got, err := GetWrappedTransactions(polkadot, txs, []model.TxWrapper{multisigWrapper(bob)})
	require.NoError(t, err)
	require.Len(t, got, 3)
	for _, w := range got {
		assert.Equal(t, model.TransactionTypeMultisigAsMulti, w.WrappedTx.Type)
	}

	bad := []model.Transaction{setPayee(), {Type: model.TransactionTypeTransfer, Args: model.TransferArgs{Dest: "x", Value: "1"}}}
	_, err = GetWrappedTransactions(polkadot, bad, []model.TxWrapper{multisigWrapper(bob)})
	assert.ErrorIs(t, err, errno.ErrInvalidAddress)
}

func TestOtherSignatories(t *testing.T) {
	generic, err := ss58.ToAddress(alice, 42)
	require.NoError(t, err)

	orders := [][]string{
		{alice, bob, charlie},
		{charlie, alice, bob},
		{bob, charlie, generic, alice}, // 同一账户的不同表示只保留一个
	}

	var first []string
	for _, members := range orders {
		got, err := OtherSignatories(members, bob, polkadot.AddressPrefix)
		require.NoError(t, err)
		assert.True(t, sort.StringsAreSorted(got))
		assert.NotContains(t, got, addr(t, bob))
		assert.Len(t, got, 2)
		if first == nil {
			first = got
		}
		assert.Equal(t, first, got)
	}

	_, err = OtherSignatories([]string{"bogus"}, bob, 0)
	assert.ErrorIs(t, err, errno.ErrInvalidAddress)
}

func TestGetWrappedTransaction_SignerEncoding(t *testing.T) {
	// SS58 签名人记录为十六进制公钥
	got, err := GetWrappedTransaction(WrapParams{
		Chain:       polkadot,
		Transaction: setPayee(),
		TxWrappers:  []model.TxWrapper{multisigWrapper(addr(t, bob))},
	})
	require.NoError(t, err)
	require.NotNil(t, got.MultisigTx)
	assert.Equal(t, bob, got.MultisigTx.Signer)

	_, err = GetWrappedTransaction(WrapParams{
		Chain:       polkadot,
		Transaction: setPayee(),
		TxWrappers:  []model.TxWrapper{multisigWrapper("not-an-address")},
	})
	assert.ErrorIs(t, err, errno.ErrInvalidAddress)
}
