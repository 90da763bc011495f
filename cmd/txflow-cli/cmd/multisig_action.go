package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/callcodec"
	"wallet-txflow/internal/service/composer"
	"wallet-txflow/internal/service/submission"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/database"
)

var (
	actionName     string
	actionCallHash string
	actionSigner   string
	actionHeight   uint32
	actionIndex    uint32
)

// multisigActionCmd 为已记录的多签操作构造 approve_as_multi 或 cancel_as_multi
var multisigActionCmd = &cobra.Command{
	Use:   "multisig-action",
	Short: "为待签名的多签操作构造批准或取消交易",
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := currentChain()
		if err != nil {
			return err
		}
		db, err := database.ConnectPostgres(database.DSN(config.Global.DB), false)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), 10*time.Second)
		defer cancel()

		rows, err := submission.NewMultisigRepository(db).FindByCallHash(ctx, string(chain.ChainID), actionCallHash)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			return fmt.Errorf("no multisig operation with call hash %s", actionCallHash)
		}
		rec := rows[0].Record()

		var timepoint *model.Timepoint
		if actionHeight > 0 {
			timepoint = &model.Timepoint{Height: actionHeight, Index: actionIndex}
		} else {
			timepoint = rec.Timepoint
		}

		var tx model.Transaction
		switch actionName {
		case "approve":
			tx, err = composer.BuildApproveAsMulti(chain, rec, actionSigner, timepoint)
		case "cancel":
			if timepoint == nil {
				return fmt.Errorf("cancel needs the timepoint of the operation (--height, --index)")
			}
			signer := actionSigner
			if signer == "" {
				signer = rec.Signer
			}
			tx, err = composer.BuildCancelAsMulti(chain, rec, signer, *timepoint)
		default:
			return fmt.Errorf("unknown action %q", actionName)
		}
		if err != nil {
			return err
		}

		call, err := callcodec.EncodeHex(tx, chain)
		if err != nil {
			return err
		}
		return printJSON(map[string]interface{}{"transaction": tx, "call": call})
	},
}

func init() {
	fl := multisigActionCmd.Flags()
	fl.StringVar(&actionName, "action", "approve", "approve 或 cancel")
	fl.StringVar(&actionCallHash, "call-hash", "", "多签操作的 call hash")
	fl.StringVar(&actionSigner, "signer", "", "本次签名的签名人")
	fl.Uint32Var(&actionHeight, "height", 0, "操作所在区块高度")
	fl.Uint32Var(&actionIndex, "index", 0, "操作在区块中的 extrinsic 下标")
	_ = multisigActionCmd.MarkFlagRequired("call-hash")
	rootCmd.AddCommand(multisigActionCmd)
}
