package flow

import (
	"context"
	"errors"
	"math/big"
	"sync"
	"testing"
	"time"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/builder"
	"wallet-txflow/pkg/errno"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeQuoter struct {
	fee string
	err error
}

func (q *fakeQuoter) Quote(_ context.Context, _ model.Transaction, _ model.Chain, count int) (model.FeeData, error) {
	if q.err != nil {
		return model.ZeroFeeData(), q.err
	}
	f, _ := new(big.Int).SetString(q.fee, 10)
	total := new(big.Int).Mul(f, big.NewInt(int64(count)))
	return model.FeeData{Fee: q.fee, TotalFee: total.String(), MultisigDeposit: "0"}, nil
}

func (q *fakeQuoter) Deposit(context.Context, int, model.Chain) (string, error) {
	return "201520000000", nil
}

type recordingSubmitter struct {
	mu   sync.Mutex
	subs []model.Submission
}

func (r *recordingSubmitter) Submit(_ context.Context, sub model.Submission) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.subs = append(r.subs, sub)
	return nil
}

func startStore(t *testing.T, q Quoter, sub Submitter) *Store {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStore(Env{SettleDelay: 20 * time.Millisecond}, q, sub)
	go s.Run(ctx)
	t.Cleanup(cancel)
	return s
}

func waitFor(t *testing.T, s *Store, pred func(State) bool) State {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	st, err := s.WaitFor(ctx, pred)
	require.NoError(t, err)
	return st
}

func quoted(st State) bool { return !st.FeeLoading && !st.DepositLoading }

func TestStoreSetPayeeMultisigEndToEnd(t *testing.T) {
	sub := &recordingSubmitter{}
	s := startStore(t, &fakeQuoter{fee: "156000000"}, sub)

	ev := started(builder.SetPayee(""))
	ev.Shards = []string{msig, msig}
	require.True(t, s.Dispatch(ev))

	st := waitFor(t, s, func(st State) bool { return st.Step == model.StepInit && quoted(st) })
	assert.Equal(t, model.FeeData{Fee: "156000000", TotalFee: "312000000", MultisigDeposit: "201520000000"}, st.FeeData)

	s.Dispatch(FormSubmitted{})
	s.Dispatch(ConfirmSubmitted{})
	s.Dispatch(SignSubmitted{Signatures: []string{"0x01", "0x02"}})

	// SUBMIT 之后经过 SettleDelay 回到 NONE
	st = waitFor(t, s, func(st State) bool { return st.Step == model.StepNone })
	assert.Empty(t, st.Transactions)

	sub.mu.Lock()
	defer sub.mu.Unlock()
	require.Len(t, sub.subs, 1)
	got := sub.subs[0]
	require.Len(t, got.CoreTxs, 2)
	require.Len(t, got.WrappedTxs, 2)
	require.Len(t, got.MultisigTxs, 2)
	assert.Equal(t, model.TransactionTypeSetPayee, got.CoreTxs[0].Type)
	assert.Equal(t, model.TransactionTypeMultisigAsMulti, got.WrappedTxs[0].Type)
	assert.Equal(t, "0x070700", got.MultisigTxs[0].CallData)
	assert.Equal(t, bob, got.MultisigTxs[0].Signer)
	assert.Equal(t, "set payee", got.Description)
}

func TestStoreFeeFailure(t *testing.T) {
	s := startStore(t, &fakeQuoter{err: errors.Join(errno.ErrFeeQuote, errors.New("timeout"))}, &recordingSubmitter{})

	s.Dispatch(started(builder.Chill()))
	st := waitFor(t, s, func(st State) bool { return st.Step == model.StepInit && quoted(st) })

	assert.Equal(t, "0", st.FeeData.Fee)
	assert.Equal(t, "0", st.FeeData.TotalFee)
	assert.ErrorIs(t, st.FeeErr, errno.ErrFeeQuote)
}

func TestStoreRestartDuringSettleDelay(t *testing.T) {
	sub := &recordingSubmitter{}
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	s := NewStore(Env{SettleDelay: 200 * time.Millisecond}, &fakeQuoter{fee: "1"}, sub)
	go s.Run(ctx)

	s.Dispatch(started(builder.SetPayee("")))
	waitFor(t, s, func(st State) bool { return st.Step == model.StepInit && quoted(st) })
	s.Dispatch(FormSubmitted{})
	s.Dispatch(ConfirmSubmitted{})
	s.Dispatch(SignSubmitted{})
	waitFor(t, s, func(st State) bool { return st.Step == model.StepSubmit })

	require.Eventually(t, func() bool {
		sub.mu.Lock()
		defer sub.mu.Unlock()
		return len(sub.subs) == 1
	}, time.Second, 5*time.Millisecond)
	time.Sleep(20 * time.Millisecond) // SubmitFinished 已处理，关闭计时中

	s.Dispatch(StepChanged{Step: model.StepNone})
	s.Dispatch(started(builder.Chill()))
	waitFor(t, s, func(st State) bool { return st.Step == model.StepInit && quoted(st) })

	time.Sleep(300 * time.Millisecond)
	st := s.State()
	assert.Equal(t, model.StepInit, st.Step)
	assert.Len(t, st.Transactions, 1)
}

func TestStoreDispatchAfterStop(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	s := NewStore(DefaultEnv(), &fakeQuoter{fee: "1"}, &recordingSubmitter{})
	stopped := make(chan struct{})
	go func() {
		s.Run(ctx)
		close(stopped)
	}()
	cancel()
	<-stopped

	// 缓冲区满之前 Dispatch 仍可能成功，之后一定返回 false
	for i := 0; i < 100; i++ {
		if !s.Dispatch(Back{}) {
			return
		}
	}
	t.Fatal("dispatch kept succeeding after stop")
}
