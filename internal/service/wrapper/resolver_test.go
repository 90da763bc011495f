package wrapper

import (
	"strings"
	"testing"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	alice   = "0xd43593c715fdd31c61141abd04a99fd6822c8558854ccde39a5684e7a56da27d"
	bob     = "0x8eaf04151687736326c9fea17e25fc5287613693c912909cb226aa4794f26a48"
	charlie = "0x90b5ab205c6974c9ea841be688864633dc9ca8a357843eeacf2314649965fe22"
	msig    = "0x1111111111111111111111111111111111111111111111111111111111111111"
	proxied = "0x2222222222222222222222222222222222222222222222222222222222222222"
)

var chain = model.Chain{ChainID: "0x91b1"}

func fixture() ResolveParams {
	multisig := model.Account{
		ID: "m", WalletID: "w-msig", AccountID: msig, Type: model.AccountTypeMultisig, Threshold: 2,
		Signatories: []model.Signatory{{AccountID: alice}, {AccountID: bob}, {AccountID: charlie}},
	}
	return ResolveParams{
		Chain:   chain,
		Wallet:  model.Wallet{ID: "w-msig", Type: model.WalletTypeMultisig},
		Account: multisig,
		Wallets: []model.Wallet{
			{ID: "w-msig", Type: model.WalletTypeMultisig},
			{ID: "w-watch", Type: model.WalletTypeWatchOnly},
			{ID: "w-vault", Type: model.WalletTypePolkadotVault},
		},
		Accounts: []model.Account{
			multisig,
			{ID: "a", WalletID: "w-watch", AccountID: alice, Type: model.AccountTypeBase},
			{ID: "b", WalletID: "w-vault", AccountID: bob, Type: model.AccountTypeBase},
			{ID: "b2", WalletID: "w-vault", AccountID: bob, Type: model.AccountTypeChain, ChainID: chain.ChainID},
			{ID: "c", WalletID: "w-vault", AccountID: charlie, Type: model.AccountTypeChain, ChainID: "0xother"},
		},
	}
}

func TestGetTxWrappers_PlainAccount(t *testing.T) {
	p := fixture()
	p.Account = model.Account{AccountID: bob, Type: model.AccountTypeBase}

	wrappers, err := GetTxWrappers(p)
	require.NoError(t, err)
	assert.Empty(t, wrappers)
}

func TestGetTxWrappers_Multisig(t *testing.T) {
	wrappers, err := GetTxWrappers(fixture())
	require.NoError(t, err)
	require.Len(t, wrappers, 1)

	m, ok := FindMultisig(wrappers)
	require.True(t, ok)
	assert.Equal(t, msig, m.MultisigAccount.AccountID)
	// alice 是观察钱包, charlie 在其他链上, bob 只保留一次
	require.Len(t, m.Signatories, 1)
	assert.Equal(t, bob, m.Signatories[0].AccountID)
	assert.Equal(t, bob, m.Signer.AccountID)
	assert.False(t, HasProxy(wrappers))
}

func TestGetTxWrappers_ExplicitSignatory(t *testing.T) {
	p := fixture()
	p.Signatories = []model.Account{{AccountID: bob}}
	wrappers, err := GetTxWrappers(p)
	require.NoError(t, err)
	m, _ := FindMultisig(wrappers)
	assert.Equal(t, "b", m.Signer.ID)

	p.Signatories = []model.Account{{AccountID: alice}}
	_, err = GetTxWrappers(p)
	assert.ErrorIs(t, err, errno.ErrSignerMismatch)
}

func TestGetTxWrappers_CannotSign(t *testing.T) {
	p := fixture()
	p.Accounts = p.Accounts[:2] // 只剩 multisig 与观察钱包

	wrappers, err := GetTxWrappers(p)
	assert.ErrorIs(t, err, errno.ErrCannotSign)
	// 仍然返回 wrapper 用于展示
	assert.True(t, HasMultisig(wrappers))
}

func TestGetTxWrappers_ProxiedMultisig(t *testing.T) {
	p := fixture()
	p.Account = model.Account{
		ID: "p", AccountID: proxied, Type: model.AccountTypeProxied,
		ProxyAccountID: msig, ProxyType: model.ProxyTypeStaking,
	}

	wrappers, err := GetTxWrappers(p)
	require.NoError(t, err)
	require.Len(t, wrappers, 2)
	assert.Equal(t, model.WrapperKindProxy, wrappers[0].Kind())
	assert.Equal(t, model.WrapperKindMultisig, wrappers[1].Kind())

	proxy, ok := FindProxy(wrappers)
	require.True(t, ok)
	assert.Equal(t, msig, proxy.ProxyAccount.AccountID)
	assert.Equal(t, proxied, proxy.ProxiedAccount.AccountID)
}

func TestGetTxWrappers_ProxyNotFound(t *testing.T) {
	p := fixture()
	p.Account = model.Account{
		AccountID: proxied, Type: model.AccountTypeProxied,
		ProxyAccountID: charlie, ProxyType: model.ProxyTypeAny,
	}

	wrappers, err := GetTxWrappers(p)
	assert.ErrorIs(t, err, errno.ErrProxyNotFound)
	assert.Empty(t, wrappers)
}

func TestGetTxWrappers_MatchesAnyAccountEncoding(t *testing.T) {
	const bobSS58 = "5FHneW46xGXgs5mUiveU4sbTyGBzmstUspZC92UhjJM694ty"

	for name, member := range map[string]string{
		"upper hex": "0x" + strings.ToUpper(bob[2:]),
		"ss58":      bobSS58,
	} {
		t.Run(name, func(t *testing.T) {
			p := fixture()
			p.Account.Signatories = []model.Signatory{{AccountID: alice}, {AccountID: member}, {AccountID: charlie}}
			p.Accounts[0] = p.Account

			wrappers, err := GetTxWrappers(p)
			require.NoError(t, err)
			m, _ := FindMultisig(wrappers)
			assert.Equal(t, "b", m.Signer.ID)
			require.Len(t, m.Signatories, 1)

			p.Signatories = []model.Account{{AccountID: bobSS58}}
			wrappers, err = GetTxWrappers(p)
			require.NoError(t, err)
			m, _ = FindMultisig(wrappers)
			assert.Equal(t, "b", m.Signer.ID)
		})
	}
}

func TestGetTxWrappers_ProxyMatchesUpperHex(t *testing.T) {
	p := fixture()
	p.Account = model.Account{
		AccountID: proxied, Type: model.AccountTypeProxied,
		ProxyAccountID: "0x" + strings.ToUpper(bob[2:]), ProxyType: model.ProxyTypeStaking,
	}

	wrappers, err := GetTxWrappers(p)
	require.NoError(t, err)
	proxy, ok := FindProxy(wrappers)
	require.True(t, ok)
	assert.Equal(t, bob, proxy.ProxyAccount.AccountID)
}

func TestGetTxWrappers_InvalidMultisig(t *testing.T) {
	tests := []struct {
		name        string
		threshold   int
		signatories []model.Signatory
	}{
		{"threshold one", 1, []model.Signatory{{AccountID: alice}, {AccountID: bob}}},
		{"threshold zero", 0, []model.Signatory{{AccountID: alice}, {AccountID: bob}}},
		{"no signatories", 2, nil},
		{"threshold above members", 3, []model.Signatory{{AccountID: alice}, {AccountID: bob}}},
		{"duplicates do not count", 2, []model.Signatory{{AccountID: bob}, {AccountID: "0x" + strings.ToUpper(bob[2:])}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := fixture()
			p.Account.Threshold = tt.threshold
			p.Account.Signatories = tt.signatories

			wrappers, err := GetTxWrappers(p)
			assert.ErrorIs(t, err, errno.ErrInvalidMultisig)
			m, ok := FindMultisig(wrappers)
			require.True(t, ok)
			assert.Empty(t, m.Signer.AccountID)
		})
	}
}

func TestGetTxWrappers_WatchOnlyAccount(t *testing.T) {
	p := fixture()
	p.Wallet = model.Wallet{}
	p.Account = model.Account{ID: "a", WalletID: "w-watch", AccountID: alice, Type: model.AccountTypeBase}

	_, err := GetTxWrappers(p)
	assert.ErrorIs(t, err, errno.ErrCannotSign)

	p.Wallet = model.Wallet{ID: "w-watch", Type: model.WalletTypeWatchOnly}
	p.Account.WalletID = ""
	_, err = GetTxWrappers(p)
	assert.ErrorIs(t, err, errno.ErrCannotSign)
}
