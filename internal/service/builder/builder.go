// Package builder constructs pure transaction intents from form input.
// Addresses are normalised to the chain's SS58 prefix; amounts are plancks.
package builder

import (
	"fmt"
	"math/big"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/ss58"
)

// IntentFunc builds the intent for one signing address (one per shard).
type IntentFunc func(chain model.Chain, address string) (model.Transaction, error)

func BuildTransfer(chain model.Chain, address, dest, value string, keepAlive bool) (model.Transaction, error) {
	d, err := normalise(chain, dest)
	if err != nil {
		return model.Transaction{}, err
	}
	v, err := amount(value)
	if err != nil {
		return model.Transaction{}, err
	}
	return newTx(chain, address, model.TransactionTypeTransfer, model.TransferArgs{Dest: d, Value: v, KeepAlive: keepAlive})
}

// BuildSetPayee 目标为空表示收益复投 (Staked)
func BuildSetPayee(chain model.Chain, address, destination string) (model.Transaction, error) {
	args := model.SetPayeeArgs{}
	if destination != "" {
		d, err := normalise(chain, destination)
		if err != nil {
			return model.Transaction{}, err
		}
		args.Destination = d
	}
	return newTx(chain, address, model.TransactionTypeSetPayee, args)
}

func BuildBondExtra(chain model.Chain, address, maxAdditional string) (model.Transaction, error) {
	v, err := amount(maxAdditional)
	if err != nil {
		return model.Transaction{}, err
	}
	return newTx(chain, address, model.TransactionTypeBondExtra, model.BondExtraArgs{MaxAdditional: v})
}

func BuildChill(chain model.Chain, address string) (model.Transaction, error) {
	return newTx(chain, address, model.TransactionTypeChill, model.ChillArgs{})
}

func BuildAddProxy(chain model.Chain, address, delegate string, proxyType model.ProxyType, delay uint32) (model.Transaction, error) {
	return buildProxyDelegate(chain, address, model.TransactionTypeAddProxy, delegate, proxyType, delay)
}

func BuildRemoveProxy(chain model.Chain, address, delegate string, proxyType model.ProxyType, delay uint32) (model.Transaction, error) {
	return buildProxyDelegate(chain, address, model.TransactionTypeRemoveProxy, delegate, proxyType, delay)
}

func buildProxyDelegate(chain model.Chain, address string, t model.TransactionType, delegate string, proxyType model.ProxyType, delay uint32) (model.Transaction, error) {
	d, err := normalise(chain, delegate)
	if err != nil {
		return model.Transaction{}, err
	}
	if _, ok := proxyType.Index(); !ok {
		return model.Transaction{}, fmt.Errorf("%w: unknown proxy type %q", errno.ErrUnsupportedTx, proxyType)
	}
	return newTx(chain, address, t, model.ProxyDelegateArgs{Delegate: d, ProxyType: proxyType, Delay: delay})
}

// BuildRemovePureProxy kills a pure proxy. It must be sent by the pure proxy itself
// (address), normally through a proxy wrapper; spawner/index/height/extIndex identify
// the create_pure call that spawned it.
func BuildRemovePureProxy(chain model.Chain, address, spawner string, proxyType model.ProxyType, index uint16, height, extIndex uint32) (model.Transaction, error) {
	s, err := normalise(chain, spawner)
	if err != nil {
		return model.Transaction{}, err
	}
	if _, ok := proxyType.Index(); !ok {
		return model.Transaction{}, fmt.Errorf("%w: unknown proxy type %q", errno.ErrUnsupportedTx, proxyType)
	}
	return newTx(chain, address, model.TransactionTypeRemovePureProxy, model.RemovePureProxyArgs{
		Spawner:   s,
		ProxyType: proxyType,
		Index:     index,
		Height:    height,
		ExtIndex:  extIndex,
	})
}

func Transfer(dest, value string, keepAlive bool) IntentFunc {
	return func(chain model.Chain, address string) (model.Transaction, error) {
		return BuildTransfer(chain, address, dest, value, keepAlive)
	}
}

func SetPayee(destination string) IntentFunc {
	return func(chain model.Chain, address string) (model.Transaction, error) {
		return BuildSetPayee(chain, address, destination)
	}
}

func BondExtra(maxAdditional string) IntentFunc {
	return func(chain model.Chain, address string) (model.Transaction, error) {
		return BuildBondExtra(chain, address, maxAdditional)
	}
}

func Chill() IntentFunc {
	return BuildChill
}

func AddProxy(delegate string, proxyType model.ProxyType, delay uint32) IntentFunc {
	return func(chain model.Chain, address string) (model.Transaction, error) {
		return BuildAddProxy(chain, address, delegate, proxyType, delay)
	}
}

func RemoveProxy(delegate string, proxyType model.ProxyType, delay uint32) IntentFunc {
	return func(chain model.Chain, address string) (model.Transaction, error) {
		return BuildRemoveProxy(chain, address, delegate, proxyType, delay)
	}
}

func RemovePureProxy(spawner string, proxyType model.ProxyType, index uint16, height, extIndex uint32) IntentFunc {
	return func(chain model.Chain, address string) (model.Transaction, error) {
		return BuildRemovePureProxy(chain, address, spawner, proxyType, index, height, extIndex)
	}
}

// newTx 构造交易，签名地址为空时保留为空 (手续费按 0 处理)
func newTx(chain model.Chain, address string, t model.TransactionType, args model.Args) (model.Transaction, error) {
	from := ""
	if address != "" {
		a, err := normalise(chain, address)
		if err != nil {
			return model.Transaction{}, err
		}
		from = a
	}
	return model.Transaction{
		ChainID: chain.ChainID,
		Address: from,
		Type:    t,
		Args:    args,
	}, nil
}

func normalise(chain model.Chain, value string) (string, error) {
	a, err := ss58.ToAddress(value, chain.AddressPrefix)
	if err != nil {
		return "", fmt.Errorf("%w: %s", errno.ErrInvalidAddress, value)
	}
	return a, nil
}

func amount(value string) (string, error) {
	v, ok := new(big.Int).SetString(value, 10)
	if !ok || v.Sign() < 0 {
		return "", fmt.Errorf("%w: %q", errno.ErrInvalidAmount, value)
	}
	return v.String(), nil
}
