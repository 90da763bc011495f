package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-txflow/pkg/ss58"
)

var addressPrefix int

var addressCmd = &cobra.Command{
	Use:   "address [address or 0x account id]",
	Short: "转换 SS58 地址的网络前缀",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		prefix := uint16(addressPrefix)
		if addressPrefix < 0 {
			chain, err := currentChain()
			if err != nil {
				return err
			}
			prefix = chain.AddressPrefix
		}

		hexID, err := ss58.ToHex(args[0])
		if err != nil {
			return err
		}
		addr, err := ss58.ToAddress(args[0], prefix)
		if err != nil {
			return err
		}
		fmt.Printf("Account ID: %s\n", hexID)
		fmt.Printf("Address (prefix %d): %s\n", prefix, addr)
		return nil
	},
}

func init() {
	addressCmd.Flags().IntVarP(&addressPrefix, "prefix", "p", -1, "目标网络前缀，默认使用 --chain 的前缀")
	rootCmd.AddCommand(addressCmd)
}
