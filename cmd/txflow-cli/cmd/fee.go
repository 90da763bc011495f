package cmd

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/fee"
	"wallet-txflow/internal/service/wrapper"
	"wallet-txflow/pkg/config"
)

var (
	feeAccount accountFlags
	feeIntent  intentFlags
	feeRPC     string
)

var feeCmd = &cobra.Command{
	Use:   "fee",
	Short: "查询组合后交易的手续费与多签押金",
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := currentChain()
		if err != nil {
			return err
		}
		wrappers, txs, err := compose(chain, feeAccount, feeIntent)
		if err != nil {
			return err
		}

		endpoints := registry.Endpoints()
		if feeRPC != "" {
			endpoints[chain.ChainID] = feeRPC
		}
		oracle := fee.NewRPCOracle(endpoints, config.Global.Flow.FeeRetryAttempts)
		defer oracle.Close()
		quoter := fee.NewQuoter(oracle, nil, config.Global.Flow.FeeTimeout)

		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		data := model.ZeroFeeData()
		var quoteErr error
		if len(txs) > 0 {
			data, quoteErr = quoter.Quote(ctx, txs[0].WrappedTx, chain, len(txs))
		}
		if m, ok := wrapper.FindMultisig(wrappers); ok {
			if data.MultisigDeposit, err = quoter.Deposit(ctx, m.MultisigAccount.Threshold, chain); err != nil {
				return err
			}
		}

		out := map[string]interface{}{"raw": data}
		if total, err := fee.FormatBalance(data.TotalFee, chain.Asset.Precision); err == nil {
			out["total_fee"] = total + " " + chain.Asset.Symbol
		}
		if deposit, err := fee.FormatBalance(data.MultisigDeposit, chain.Asset.Precision); err == nil {
			out["multisig_deposit"] = deposit + " " + chain.Asset.Symbol
		}
		if quoteErr != nil {
			out["fee_error"] = quoteErr.Error()
		}
		return printJSON(out)
	},
}

func init() {
	feeAccount.register(feeCmd)
	feeIntent.register(feeCmd)
	feeCmd.Flags().StringVar(&feeRPC, "rpc", "", "覆盖配置中的节点地址")
	rootCmd.AddCommand(feeCmd)
}
