package submission

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"wallet-txflow/internal/event"
	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/mq"
	"wallet-txflow/pkg/logger"
)

// StatusListener applies MultisigStatusEvent messages to the bookkeeping rows.
type StatusListener struct {
	consumer mq.Consumer
	repo     *MultisigRepository
}

func NewStatusListener(consumer mq.Consumer, repo *MultisigRepository) *StatusListener {
	return &StatusListener{consumer: consumer, repo: repo}
}

// Start 阻塞直到 ctx 结束
func (l *StatusListener) Start(ctx context.Context) error {
	return l.consumer.Subscribe(ctx, event.TopicMultisigStatus, func(msg *mq.Message) error {
		return l.handle(ctx, msg)
	})
}

func (l *StatusListener) handle(ctx context.Context, msg *mq.Message) error {
	ev, err := ParseStatusEvent(msg.Payload)
	if err != nil {
		// 格式错误的消息无法重试成功，直接确认
		logger.Warn("drop malformed status event", zap.String("id", msg.ID), zap.Error(err))
		return nil
	}

	n, err := l.repo.UpdateStatus(ctx, ev.ChainID, ev.CallHash, ev.Status)
	if err != nil {
		return err
	}
	logger.Info("multisig status updated",
		zap.String("call_hash", ev.CallHash),
		zap.String("status", ev.Status),
		zap.Int64("rows", n),
	)
	return nil
}

func ParseStatusEvent(payload []byte) (event.MultisigStatusEvent, error) {
	var ev event.MultisigStatusEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return ev, err
	}
	switch ev.Status {
	case model.MultisigStatusExecuted, model.MultisigStatusCancelled:
	default:
		return ev, fmt.Errorf("unexpected status %q", ev.Status)
	}
	if ev.ChainID == "" || ev.CallHash == "" {
		return ev, fmt.Errorf("missing chain id or call hash")
	}
	return ev, nil
}
