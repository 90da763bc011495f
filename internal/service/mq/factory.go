package mq

import (
	"github.com/redis/go-redis/v9"

	"wallet-txflow/pkg/config"
)

// NewProducer 按配置选择 Redis Streams 或 Kafka
func NewProducer(cfg config.Config, rdb *redis.Client) Producer {
	if cfg.Redis.MQType == "kafka" {
		return NewKafkaProducer(cfg.Kafka.Brokers)
	}
	return NewRedisProducer(rdb, 10000)
}

func NewConsumer(cfg config.Config, rdb *redis.Client, group, name string) Consumer {
	if cfg.Redis.MQType == "kafka" {
		return NewKafkaConsumer(cfg.Kafka.Brokers, group)
	}
	return NewRedisConsumer(rdb, group, name)
}
