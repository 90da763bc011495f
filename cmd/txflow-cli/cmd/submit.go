package cmd

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/fee"
	"wallet-txflow/internal/service/flow"
	"wallet-txflow/internal/service/submission"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/database"
	"wallet-txflow/pkg/logger"
)

var (
	submitAccount     accountFlags
	submitIntent      intentFlags
	submitSignatures  []string
	submitDescription string
	submitPersist     bool
	submitWarning     bool
)

// submitCmd 在命令行中走完整个向导流程，签名由外部提供
var submitCmd = &cobra.Command{
	Use:   "submit",
	Short: "走完 INIT → CONFIRM → SIGN → SUBMIT 流程并记录多签操作",
	RunE: func(cmd *cobra.Command, args []string) error {
		chain, err := currentChain()
		if err != nil {
			return err
		}
		p, err := submitAccount.resolveParams(chain)
		if err != nil {
			return err
		}
		intent, err := submitIntent.intent()
		if err != nil {
			return err
		}

		oracle := fee.NewRPCOracle(registry.Endpoints(), config.Global.Flow.FeeRetryAttempts)
		defer oracle.Close()
		quoter := fee.NewQuoter(oracle, nil, config.Global.Flow.FeeTimeout)

		var submitter flow.Submitter = printSubmitter{}
		if submitPersist {
			db, err := database.ConnectPostgres(database.DSN(config.Global.DB), false)
			if err != nil {
				return err
			}
			submitter = submission.NewService(db, submission.NewMultisigRepository(db), config.Global.Flow.SubmitTopic)
		}
		rec := &resultSubmitter{next: submitter}

		ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
		defer cancel()

		env := flow.DefaultEnv()
		if config.Global.Flow.SettleDelay > 0 {
			env.SettleDelay = config.Global.Flow.SettleDelay
		}
		store := flow.NewStore(env, quoter, rec)
		go store.Run(ctx)

		var shards []string
		if len(submitAccount.shards) > 0 {
			if shards, err = submitAccount.addresses(chain, p.Account); err != nil {
				return err
			}
		}
		var signatory *model.Account
		if len(p.Signatories) > 0 {
			signatory = &p.Signatories[0]
		}

		store.Dispatch(flow.FlowStarted{
			Chain:       chain,
			Wallet:      p.Wallet,
			Wallets:     p.Wallets,
			Accounts:    p.Accounts,
			Account:     p.Account,
			Signatory:   signatory,
			Shards:      shards,
			Intent:      intent,
			Description: submitDescription,
			Warning:     submitWarning,
		})
		if submitWarning {
			if _, err := store.WaitFor(ctx, func(s flow.State) bool { return s.Step == model.StepWarning }); err != nil {
				return err
			}
			store.Dispatch(flow.StepChanged{Step: model.StepInit})
		}

		s, err := store.WaitFor(ctx, func(s flow.State) bool {
			return s.Step == model.StepInit && !s.FeeLoading && !s.DepositLoading
		})
		if err != nil {
			return err
		}
		if err := s.Ready(); err != nil {
			return err
		}
		if s.FeeErr != nil {
			logger.Warn("fee unavailable, continuing with zero fee", zap.Error(s.FeeErr))
		}
		fmt.Printf("Fee: %s (total %s), multisig deposit: %s\n", s.FeeData.Fee, s.FeeData.TotalFee, s.FeeData.MultisigDeposit)

		steps := []struct {
			ev   flow.Event
			want model.Step
		}{
			{flow.FormSubmitted{}, model.StepConfirm},
			{flow.ConfirmSubmitted{}, model.StepSign},
		}
		for _, st := range steps {
			store.Dispatch(st.ev)
			s, err := store.WaitFor(ctx, func(s flow.State) bool { return s.Step == st.want || s.Err != nil })
			if err != nil {
				return err
			}
			if s.Err != nil {
				return s.Err
			}
		}

		store.Dispatch(flow.SignSubmitted{Signatures: submitSignatures})
		if _, err := store.WaitFor(ctx, func(s flow.State) bool { return s.Step == model.StepNone }); err != nil {
			return err
		}
		return rec.result()
	},
}

func init() {
	submitAccount.register(submitCmd)
	submitIntent.register(submitCmd)
	fl := submitCmd.Flags()
	fl.StringSliceVar(&submitSignatures, "signature", nil, "外部签名结果 (0x hex)，每笔交易一个")
	fl.StringVar(&submitDescription, "description", "", "操作说明，写入多签记账")
	fl.BoolVar(&submitPersist, "persist", false, "写入数据库与 outbox，而不是打印")
	fl.BoolVar(&submitWarning, "warning", false, "先经过 WARNING 步骤")
	rootCmd.AddCommand(submitCmd)
}

type printSubmitter struct{}

func (printSubmitter) Submit(_ context.Context, sub model.Submission) error {
	return printJSON(sub)
}

// resultSubmitter 记录提交结果，流程结束后状态会被清空
type resultSubmitter struct {
	next flow.Submitter

	mu   sync.Mutex
	done bool
	err  error
}

func (r *resultSubmitter) Submit(ctx context.Context, sub model.Submission) error {
	err := r.next.Submit(ctx, sub)
	r.mu.Lock()
	defer r.mu.Unlock()
	r.err, r.done = err, true
	return err
}

func (r *resultSubmitter) result() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.done {
		return errors.New("flow closed without submitting")
	}
	return r.err
}
