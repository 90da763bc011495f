package chain

import (
	"testing"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegistry(t *testing.T) {
	r, err := NewRegistry([]config.ChainConfig{
		{
			ChainID:        config.PolkadotChainID,
			Name:           "Polkadot",
			RpcUrl:         "wss://rpc.polkadot.io",
			AssetSymbol:    "DOT",
			AssetPrecision: 10,
			MaxRefTime:     100,
		},
		{
			ChainID:       "0xB0A8D493285C2DF73290DFB7E61F870F17B41801197A149CA93654499EA3DAFE",
			Name:          "Kusama",
			AddressPrefix: 2,
			CallIndices:   map[string][]uint8{model.CallSetPayee: {6, 7}},
		},
	})
	require.NoError(t, err)

	dot, err := r.Get("polkadot")
	require.NoError(t, err)
	assert.Equal(t, model.ChainID(config.PolkadotChainID), dot.ChainID)
	assert.Equal(t, int32(10), dot.Asset.Precision)
	assert.Equal(t, uint64(100), dot.MaxWeight.RefTime)

	ksm, err := r.Get("0xb0a8d493285c2df73290dfb7e61f870f17b41801197a149ca93654499ea3dafe")
	require.NoError(t, err)
	idx, ok := ksm.CallIndex(model.CallSetPayee)
	require.True(t, ok)
	assert.Equal(t, model.CallIndex{6, 7}, idx)

	_, err = r.Get("westend")
	assert.ErrorIs(t, err, errno.ErrChainNotFound)

	assert.Equal(t, "wss://rpc.polkadot.io", r.Endpoints()[dot.ChainID])
	require.Len(t, r.List(), 2)
	assert.Equal(t, "Kusama", r.List()[0].Name)
}

func TestRegistryRejectsBadConfig(t *testing.T) {
	_, err := NewRegistry([]config.ChainConfig{{ChainID: "polkadot", Name: "Polkadot"}})
	assert.Error(t, err)

	_, err = NewRegistry([]config.ChainConfig{{ChainID: "0x01", Name: "X", CallIndices: map[string][]uint8{"a.b": {1}}}})
	assert.Error(t, err)

	_, err = NewRegistry([]config.ChainConfig{{ChainID: "0x01", Name: "X"}, {ChainID: "0x01", Name: "Y"}})
	assert.Error(t, err)
}
