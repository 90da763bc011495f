package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/pkg/ss58"
)

var (
	msigSignatories []string
	msigThreshold   int
)

var multisigAccountCmd = &cobra.Command{
	Use:   "multisig-account",
	Short: "由签名人与门限计算 multisig 账户",
	RunE: func(cmd *cobra.Command, args []string) error {
		if msigThreshold < 2 || msigThreshold > len(msigSignatories) {
			return fmt.Errorf("threshold must be between 2 and %d", len(msigSignatories))
		}
		chain, err := currentChain()
		if err != nil {
			return err
		}

		accountID, err := callcodec.MultisigAccountID(msigSignatories, msigThreshold)
		if err != nil {
			return err
		}
		addr, err := ss58.ToAddress(accountID, chain.AddressPrefix)
		if err != nil {
			return err
		}
		fmt.Printf("Account ID: %s\n", accountID)
		fmt.Printf("Address (%s): %s\n", chain.Name, addr)
		return nil
	},
}

func init() {
	multisigAccountCmd.Flags().StringSliceVarP(&msigSignatories, "signatories", "s", nil, "签名人地址，逗号分隔")
	multisigAccountCmd.Flags().IntVarP(&msigThreshold, "threshold", "t", 2, "门限")
	_ = multisigAccountCmd.MarkFlagRequired("signatories")
	rootCmd.AddCommand(multisigAccountCmd)
}
