package submission

import (
	"context"
	"time"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"wallet-txflow/internal/model"
	"wallet-txflow/internal/service/mq"
	"wallet-txflow/pkg/logger"
)

// RelayService 负责将本地消息表的消息搬运到 MQ
type RelayService struct {
	db        *gorm.DB
	producer  mq.Producer
	interval  time.Duration
	batchSize int
}

func NewRelayService(db *gorm.DB, producer mq.Producer) *RelayService {
	return &RelayService{
		db:        db,
		producer:  producer,
		interval:  500 * time.Millisecond,
		batchSize: 50,
	}
}

func (s *RelayService) Start(ctx context.Context) {
	logger.Info("[Relay] outbox relay started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("[Relay] stopped")
			return
		case <-ticker.C:
			s.processPendingMessages(ctx)
		}
	}
}

// processPendingMessages 至少一次投递：先发送，成功后再标记 SENT，消费方需幂等
func (s *RelayService) processPendingMessages(ctx context.Context) int {
	var messages []model.OutboxMessage
	if err := s.db.WithContext(ctx).
		Where("status = ?", "PENDING").
		Order("id").
		Limit(s.batchSize).
		Find(&messages).Error; err != nil {
		logger.Error("[Relay] query outbox failed", zap.Error(err))
		return 0
	}

	sent := 0
	for _, msg := range messages {
		if err := s.producer.Publish(ctx, msg.Topic, msg.Key, msg.Payload); err != nil {
			logger.Warn("[Relay] publish failed", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}
		if err := s.db.WithContext(ctx).Model(&msg).Update("status", "SENT").Error; err != nil {
			logger.Error("[Relay] mark sent failed", zap.Uint64("id", msg.ID), zap.Error(err))
			continue
		}
		sent++
	}
	if sent > 0 {
		logger.Debug("[Relay] messages delivered", zap.Int("count", sent))
	}
	return sent
}
