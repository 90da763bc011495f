package cmd

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/chain"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/logger"
)

var (
	chainName string
	registry  *chain.Registry
)

// rootCmd 代表基础命令，没有子命令时直接调用
var rootCmd = &cobra.Command{
	Use:   "txflow-cli",
	Short: "Substrate 多签/代理交易组合工具",
	Long: `组合 multisig / proxy 包装后的交易，查询手续费与多签押金，
并可以在命令行中走完一次完整的 INIT → CONFIRM → SIGN → SUBMIT 流程。`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		config.Init()
		logger.Init(config.Global.App.Env)

		var err error
		registry, err = chain.NewRegistry(config.Global.Chains)
		return err
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute 将所有子命令添加到根命令并设置标志
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&chainName, "chain", "c", "polkadot", "链名称或 genesis hash")
}

func currentChain() (model.Chain, error) {
	return registry.Get(chainName)
}

func printJSON(v interface{}) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
