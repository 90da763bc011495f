package model

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTransactionDecodesNestedArgs(t *testing.T) {
	raw := `{
		"chainId": "0x91b1",
		"address": "13UVJyLnbVp9RBZYFwFGyDvVd1y27Tt8tkntv6Q7JVPhFsTB",
		"type": "multisig_as_multi",
		"args": {
			"threshold": 2,
			"otherSignatories": ["14E5nqKAp3oAJcmzgZhUD2RcptBeUBScxKHgJKU4HPNcKVf3"],
			"callHash": "0xab",
			"transaction": {
				"address": "13UVJyLnbVp9RBZYFwFGyDvVd1y27Tt8tkntv6Q7JVPhFsTB",
				"type": "proxy",
				"args": {
					"real": "15oF4uVJwmo4TdGW7VfQxNLavjCXviqxT9S1MgbjMNHr6Sp5",
					"forceProxyType": "Staking",
					"transaction": {"type": "chill", "args": {}}
				}
			}
		}
	}`

	var tx Transaction
	require.NoError(t, json.Unmarshal([]byte(raw), &tx))

	multi, ok := tx.Args.(AsMultiArgs)
	require.True(t, ok, "args is %T", tx.Args)
	assert.Equal(t, 2, multi.Threshold)
	require.NotNil(t, multi.Transaction)

	proxy, ok := multi.Transaction.Args.(ProxyArgs)
	require.True(t, ok, "inner args is %T", multi.Transaction.Args)
	assert.Equal(t, ProxyTypeStaking, proxy.ForceProxyType)
	require.NotNil(t, proxy.Transaction)
	assert.Equal(t, TransactionTypeChill, proxy.Transaction.Type)
	assert.IsType(t, ChillArgs{}, proxy.Transaction.Args)
}

func TestTransactionRejectsUnknownType(t *testing.T) {
	var tx Transaction
	err := json.Unmarshal([]byte(`{"type":"batch_all","args":{}}`), &tx)
	assert.Error(t, err)
}

func TestMultisigTransactionRecord(t *testing.T) {
	rec := MultisigTxRecord{
		ChainID:          "0x91b1",
		AccountID:        "0x11",
		Signer:           "0x22",
		Threshold:        2,
		OtherSignatories: []string{"a", "b"},
		CallHash:         "0xcc",
		CallData:         "0x070700",
		Timepoint:        &Timepoint{Height: 100, Index: 3},
		Transaction:      Transaction{Type: TransactionTypeSetPayee},
	}

	row := NewMultisigTransaction(rec, "set payee")
	assert.Equal(t, "a,b", row.OtherSignatories)
	assert.Equal(t, MultisigStatusSigning, row.Status)

	back := row.Record()
	assert.Equal(t, rec.OtherSignatories, back.OtherSignatories)
	assert.Equal(t, rec.Timepoint, back.Timepoint)
	assert.Equal(t, rec.CallHash, back.CallHash)
	assert.Equal(t, TransactionTypeSetPayee, back.Transaction.Type)

	row.BlockCreated, row.IndexCreated = nil, nil
	assert.Nil(t, row.Record().Timepoint)
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "WARNING", StepWarning.String())
	assert.Equal(t, "UNKNOWN", Step(42).String())
}
