package flow

import (
	"time"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/builder"
)

type Event interface {
	isEvent()
}

// FlowStarted opens the wizard. Warning adds a WARNING step before INIT.
type FlowStarted struct {
	Chain    model.Chain
	Wallet   model.Wallet
	Wallets  []model.Wallet
	Accounts []model.Account

	Account     model.Account
	Signatory   *model.Account
	Shards      []string
	Intent      builder.IntentFunc
	Description string
	Warning     bool
}

// FormChanged replaces the whole form.
type FormChanged struct {
	Account     model.Account
	Signatory   *model.Account
	Shards      []string
	Intent      builder.IntentFunc
	Description string
}

type FormSubmitted struct{}

type ConfirmSubmitted struct{}

type SignSubmitted struct {
	Signatures []string
}

type SubmitFinished struct {
	Err error
}

// FlowFinished closes the wizard and clears the form.
// Gen is the State.FlowGen it was scheduled for; a flow restarted since then ignores it.
type FlowFinished struct {
	Gen uint64
}

type StepChanged struct {
	Step model.Step
}

type Back struct{}

type FeeQuoted struct {
	Gen  uint64
	Data model.FeeData
	Err  error
}

type DepositQuoted struct {
	Gen     uint64
	Deposit string
	Err     error
}

func (FlowStarted) isEvent()      {}
func (FormChanged) isEvent()      {}
func (FormSubmitted) isEvent()    {}
func (ConfirmSubmitted) isEvent() {}
func (SignSubmitted) isEvent()    {}
func (SubmitFinished) isEvent()   {}
func (FlowFinished) isEvent()     {}
func (StepChanged) isEvent()      {}
func (Back) isEvent()             {}
func (FeeQuoted) isEvent()        {}
func (DepositQuoted) isEvent()    {}

// Effect is work Reduce asks the Store to do outside the reducer.
type Effect interface {
	isEffect()
}

type QuoteFee struct {
	Gen   uint64
	Chain model.Chain
	Tx    model.Transaction
	Count int
}

type QuoteDeposit struct {
	Gen       uint64
	Chain     model.Chain
	Threshold int
}

type Submit struct {
	Submission model.Submission
}

// After dispatches Event once Delay has passed.
type After struct {
	Delay time.Duration
	Event Event
}

func (QuoteFee) isEffect()     {}
func (QuoteDeposit) isEffect() {}
func (Submit) isEffect()       {}
func (After) isEffect()        {}
