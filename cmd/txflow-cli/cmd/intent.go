package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/builder"
)

// intentFlags 描述要构造的纯交易
type intentFlags struct {
	txType    string
	dest      string
	value     string
	keepAlive bool
	payee     string
	delegate  string
	proxyType string
	delay     uint32
	spawner   string
	index     uint16
	height    uint32
	extIndex  uint32
}

func (f *intentFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.txType, "tx", string(model.TransactionTypeSetPayee), "交易类型: transfer, set_payee, bond_extra, chill, add_proxy, remove_proxy, remove_pure_proxy")
	fl.StringVar(&f.dest, "dest", "", "transfer 收款地址")
	fl.StringVar(&f.value, "value", "0", "transfer / bond_extra 金额 (plank)")
	fl.BoolVar(&f.keepAlive, "keep-alive", true, "transfer 使用 transfer_keep_alive")
	fl.StringVar(&f.payee, "payee", "", "set_payee 收益地址，为空表示 Staked")
	fl.StringVar(&f.delegate, "delegate", "", "add_proxy / remove_proxy 代理地址")
	fl.StringVar(&f.proxyType, "proxy-kind", string(model.ProxyTypeAny), "add_proxy / remove_proxy / remove_pure_proxy 的代理类型")
	fl.Uint32Var(&f.delay, "delay", 0, "代理延迟区块数")
	fl.StringVar(&f.spawner, "spawner", "", "remove_pure_proxy 创建者地址")
	fl.Uint16Var(&f.index, "pure-index", 0, "pure proxy 创建时的 index")
	fl.Uint32Var(&f.height, "pure-height", 0, "pure proxy 创建区块高度")
	fl.Uint32Var(&f.extIndex, "pure-ext-index", 0, "pure proxy 创建交易在区块中的序号")
}

func (f *intentFlags) intent() (builder.IntentFunc, error) {
	switch model.TransactionType(f.txType) {
	case model.TransactionTypeTransfer:
		return builder.Transfer(f.dest, f.value, f.keepAlive), nil
	case model.TransactionTypeSetPayee:
		return builder.SetPayee(f.payee), nil
	case model.TransactionTypeBondExtra:
		return builder.BondExtra(f.value), nil
	case model.TransactionTypeChill:
		return builder.Chill(), nil
	case model.TransactionTypeAddProxy:
		return builder.AddProxy(f.delegate, model.ProxyType(f.proxyType), f.delay), nil
	case model.TransactionTypeRemoveProxy:
		return builder.RemoveProxy(f.delegate, model.ProxyType(f.proxyType), f.delay), nil
	case model.TransactionTypeRemovePureProxy:
		return builder.RemovePureProxy(f.spawner, model.ProxyType(f.proxyType), f.index, f.height, f.extIndex), nil
	}
	return nil, fmt.Errorf("unsupported transaction type %q", f.txType)
}

// build 为每个地址生成一笔纯交易
func (f *intentFlags) build(chain model.Chain, addresses []string) ([]model.Transaction, error) {
	intent, err := f.intent()
	if err != nil {
		return nil, err
	}
	txs := make([]model.Transaction, 0, len(addresses))
	for _, addr := range addresses {
		tx, err := intent(chain, addr)
		if err != nil {
			return nil, err
		}
		txs = append(txs, tx)
	}
	return txs, nil
}
