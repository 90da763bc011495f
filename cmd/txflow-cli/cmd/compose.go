package cmd

import (
	"github.com/spf13/cobra"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/composer"
	"wallet-txflow/internal/service/wrapper"
)

var (
	composeAccount accountFlags
	composeIntent  intentFlags
)

var composeCmd = &cobra.Command{
	Use:   "compose",
	Short: "组合 multisig / proxy 包装后的交易",
	Example: `  txflow-cli compose -a 0x1111... --type multisig --threshold 2 \
    --signatories 5Grw...,5FHn... --signer 5FHn... --tx set_payee`,
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := currentChain()
		if err != nil {
			return err
		}
		wrappers, txs, err := compose(chain, composeAccount, composeIntent)
		if err != nil {
			return err
		}
		return printJSON(map[string]interface{}{
			"tx_wrappers":  wrappers,
			"transactions": txs,
		})
	},
}

func init() {
	composeAccount.register(composeCmd)
	composeIntent.register(composeCmd)
	rootCmd.AddCommand(composeCmd)
}

func compose(chain model.Chain, af accountFlags, inf intentFlags) ([]model.TxWrapper, []model.WrappedTransaction, error) {
	p, err := af.resolveParams(chain)
	if err != nil {
		return nil, nil, err
	}
	wrappers, err := wrapper.GetTxWrappers(p)
	if err != nil {
		return wrappers, nil, err
	}
	addrs, err := af.addresses(chain, p.Account)
	if err != nil {
		return wrappers, nil, err
	}
	core, err := inf.build(chain, addrs)
	if err != nil {
		return wrappers, nil, err
	}
	txs, err := composer.GetWrappedTransactions(chain, core, wrappers)
	return wrappers, txs, err
}
