package flow

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	"go.uber.org/zap"

	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/logger"
	"wallet-txflow/pkg/monitor"
)

// Quoter prices transactions; fee.Quoter implements it.
type Quoter interface {
	Quote(ctx context.Context, tx model.Transaction, chain model.Chain, count int) (model.FeeData, error)
	Deposit(ctx context.Context, threshold int, chain model.Chain) (string, error)
}

// Submitter receives the signed operation; submission.Service implements it.
type Submitter interface {
	Submit(ctx context.Context, sub model.Submission) error
}

// Store serialises all events through one goroutine (Run).
// Effects run on their own goroutines and report back through Dispatch.
type Store struct {
	env       Env
	quoter    Quoter
	submitter Submitter
	log       *zap.Logger

	events chan Event
	done   chan struct{}
	state  atomic.Pointer[State]

	mu      sync.Mutex
	changed chan struct{} // 每次状态更新时关闭并替换
}

func NewStore(env Env, quoter Quoter, submitter Submitter) *Store {
	s := &Store{
		env:       env,
		quoter:    quoter,
		submitter: submitter,
		log:       logger.Named("flow"),
		events:    make(chan Event, 64),
		done:      make(chan struct{}),
		changed:   make(chan struct{}),
	}
	initial := initialState()
	s.state.Store(&initial)
	return s
}

// Run 处理事件直到 ctx 结束
func (s *Store) Run(ctx context.Context) {
	defer close(s.done)

	for {
		select {
		case <-ctx.Done():
			s.log.Debug("flow store stopped")
			return
		case ev := <-s.events:
			s.apply(ctx, ev)
		}
	}
}

// Dispatch queues ev. It returns false if the store has stopped.
func (s *Store) Dispatch(ev Event) bool {
	select {
	case s.events <- ev:
		return true
	case <-s.done:
		return false
	}
}

// State returns a snapshot; safe from any goroutine.
func (s *Store) State() State {
	return *s.state.Load()
}

// WaitFor blocks until pred holds for the current state.
func (s *Store) WaitFor(ctx context.Context, pred func(State) bool) (State, error) {
	for {
		s.mu.Lock()
		ch := s.changed
		s.mu.Unlock()

		st := s.State()
		if pred(st) {
			return st, nil
		}
		select {
		case <-ch:
		case <-ctx.Done():
			return st, ctx.Err()
		}
	}
}

func (s *Store) apply(ctx context.Context, ev Event) {
	prev := s.State()
	if Stale(prev, ev) {
		s.log.Debug("dropping stale result", zap.String("event", eventName(ev)))
		monitor.IncStale(eventName(ev))
		return
	}

	next, effects := Reduce(prev, ev, s.env)
	if next.Err != nil {
		s.log.Info("event refused",
			zap.String("event", eventName(ev)),
			zap.Stringer("step", next.Step),
			zap.Error(next.Err),
		)
	}
	if next.Step != prev.Step {
		s.log.Debug("step changed", zap.Stringer("from", prev.Step), zap.Stringer("to", next.Step))
		monitor.IncStep(next.Step.String())
	}

	s.state.Store(&next)
	s.mu.Lock()
	close(s.changed)
	s.changed = make(chan struct{})
	s.mu.Unlock()

	for _, eff := range effects {
		s.run(ctx, eff)
	}
}

func (s *Store) run(ctx context.Context, eff Effect) {
	switch e := eff.(type) {
	case QuoteFee:
		go func() {
			data, err := s.quoter.Quote(ctx, e.Tx, e.Chain, e.Count)
			s.Dispatch(FeeQuoted{Gen: e.Gen, Data: data, Err: err})
		}()

	case QuoteDeposit:
		go func() {
			deposit, err := s.quoter.Deposit(ctx, e.Threshold, e.Chain)
			s.Dispatch(DepositQuoted{Gen: e.Gen, Deposit: deposit, Err: err})
		}()

	case Submit:
		go func() {
			err := s.submitter.Submit(ctx, e.Submission)
			if err != nil {
				monitor.IncSubmission("error")
				s.log.Error("submit failed", zap.String("chain_id", string(e.Submission.ChainID)), zap.Error(err))
			} else {
				monitor.IncSubmission("success")
			}
			s.Dispatch(SubmitFinished{Err: err})
		}()

	case After:
		go func() {
			timer := time.NewTimer(e.Delay)
			defer timer.Stop()
			select {
			case <-timer.C:
				s.Dispatch(e.Event)
			case <-ctx.Done():
			}
		}()
	}
}

func eventName(ev Event) string {
	switch ev.(type) {
	case FlowStarted:
		return "flow_started"
	case FormChanged:
		return "form_changed"
	case FormSubmitted:
		return "form_submitted"
	case ConfirmSubmitted:
		return "confirm_submitted"
	case SignSubmitted:
		return "sign_submitted"
	case SubmitFinished:
		return "submit_finished"
	case FlowFinished:
		return "flow_finished"
	case StepChanged:
		return "step_changed"
	case Back:
		return "back"
	case FeeQuoted:
		return "fee"
	case DepositQuoted:
		return "deposit"
	}
	return "unknown"
}
