// Package submission records submitted operations: multisig bookkeeping rows plus a
// TxSubmittedEvent, written in one database transaction through the outbox table.
package submission

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"wallet-txflow/internal/event"
	"wallet-txflow/internal/model"
	"wallet-txflow/pkg/errno"
	"wallet-txflow/pkg/logger"
)

type Service struct {
	db    *gorm.DB
	repo  *MultisigRepository
	topic string
	now   func() time.Time
}

func NewService(db *gorm.DB, repo *MultisigRepository, topic string) *Service {
	if topic == "" {
		topic = event.TopicTxSubmitted
	}
	return &Service{db: db, repo: repo, topic: topic, now: time.Now}
}

// Submit implements flow.Submitter.
func (s *Service) Submit(ctx context.Context, sub model.Submission) error {
	if len(sub.WrappedTxs) == 0 {
		return errno.ErrFlowNotReady
	}
	ev := NewSubmittedEvent(sub, s.now())

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		for _, rec := range sub.MultisigTxs {
			row := model.NewMultisigTransaction(rec, sub.Description)
			if err := repo.Save(ctx, &row); err != nil {
				return err
			}
		}
		return model.CreateOutboxMessage(tx, s.topic, ev.ChainID, ev)
	})
	if err != nil {
		logger.Error("save submission failed", zap.String("chain_id", ev.ChainID), zap.Error(err))
		return fmt.Errorf("%w: %v", errno.ErrDatabase, err)
	}

	logger.Info("submission recorded",
		zap.String("chain_id", ev.ChainID),
		zap.Int("transactions", len(sub.WrappedTxs)),
		zap.Int("multisig", len(sub.MultisigTxs)),
	)
	return nil
}

// NewSubmittedEvent 由 Submission 构造事件
func NewSubmittedEvent(sub model.Submission, at time.Time) event.TxSubmittedEvent {
	ev := event.TxSubmittedEvent{
		ChainID:     string(sub.ChainID),
		Account:     sub.Account.AccountID,
		Description: sub.Description,
		SubmittedAt: at.UTC(),
	}
	if sub.Signatory != nil {
		ev.Signer = sub.Signatory.AccountID
	}
	for _, tx := range sub.CoreTxs {
		ev.TxTypes = append(ev.TxTypes, string(tx.Type))
	}
	for _, rec := range sub.MultisigTxs {
		if ev.Signer == "" {
			ev.Signer = rec.Signer
		}
		ev.Multisig = append(ev.Multisig, event.MultisigPending{
			AccountID:        rec.AccountID,
			CallHash:         rec.CallHash,
			Threshold:        rec.Threshold,
			OtherSignatories: rec.OtherSignatories,
		})
	}
	return ev
}
