package main

import (
	"context"
	"os"
	"time"

	"go.uber.org/zap"

	"wallet-txflow/internal/handler"
	"wallet-txflow/internal/model"
	"wallet-txflow/internal/server"
	"wallet-txflow/internal/service/chain"
	"wallet-txflow/internal/service/fee"
	"wallet-txflow/internal/service/mq"
	"wallet-txflow/internal/service/submission"
	"wallet-txflow/pkg/cache"
	"wallet-txflow/pkg/config"
	"wallet-txflow/pkg/database"
	"wallet-txflow/pkg/logger"
	"wallet-txflow/pkg/monitor"
	"wallet-txflow/pkg/validator"
)

func main() {
	// 0. 初始化 Config
	config.Init()

	// 1. 初始化 Logger
	logger.Init(config.Global.App.Env)
	defer logger.Sync()

	// 初始化 Validator
	if err := validator.Init(); err != nil {
		logger.Fatal("注册校验规则失败", zap.Error(err))
	}

	monitor.Init()

	// 2. 链元数据
	registry, err := chain.NewRegistry(config.Global.Chains)
	if err != nil {
		logger.Fatal("加载链配置失败", zap.Error(err))
	}
	for _, c := range registry.List() {
		logger.Info("chain loaded", zap.String("name", c.Name), zap.String("chain_id", string(c.ChainID)), zap.Uint16("prefix", c.AddressPrefix))
	}

	isDev := config.Global.App.Env == "development"

	// 3. 连接数据库
	db, err := database.ConnectPostgres(database.DSN(config.Global.DB), isDev)
	if err != nil {
		logger.Fatal("数据库连接失败", zap.Error(err))
	}
	if isDev || os.Getenv("AUTO_MIGRATE") == "true" {
		if err := db.AutoMigrate(model.AllModels()...); err != nil {
			logger.Fatal("AutoMigrate 失败", zap.Error(err))
		}
	}

	// 4. 连接 Redis
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	rdb, err := database.ConnectRedis(ctx, config.Global.Redis.Addr, config.Global.Redis.Password, config.Global.Redis.DB)
	cancel()
	if err != nil {
		logger.Fatal("Redis 连接失败", zap.Error(err))
	}
	defer rdb.Close()

	// 5. 手续费查询
	// L1: Memory (TTL 1m), L2: Redis (TTL from Set)
	localCache := cache.NewMemoryCache(1*time.Minute, 5*time.Minute)
	redisCache := cache.NewRedisCache(rdb, "txflow:")
	multiCache := cache.NewMultiLevelCache(localCache, redisCache)

	rpcOracle := fee.NewRPCOracle(registry.Endpoints(), config.Global.Flow.FeeRetryAttempts)
	defer rpcOracle.Close()
	quoter := fee.NewQuoter(
		fee.NewCachedOracle(rpcOracle, multiCache, config.Global.Flow.FeeCacheTTL),
		fee.ChainDepositOracle{},
		config.Global.Flow.FeeTimeout,
	)

	// 6. 消息队列 & 记账
	producer := mq.NewProducer(config.Global, rdb)
	defer producer.Close()
	consumer := mq.NewConsumer(config.Global, rdb, "txflow_multisig_group", "txflow-server")
	defer consumer.Close()

	repo := submission.NewMultisigRepository(db)
	recorder := submission.NewService(db, repo, config.Global.Flow.SubmitTopic)
	relay := submission.NewRelayService(db, producer)
	listener := submission.NewStatusListener(consumer, repo)

	// 7. HTTP
	r := server.NewHTTPRouter(server.Handlers{
		Transaction: handler.NewTransactionHandler(registry, quoter),
		Multisig:    handler.NewMultisigHandler(registry),
		Submission:  handler.NewSubmissionHandler(registry, recorder, repo),
	})

	app := server.New(server.Config{HttpPort: config.Global.App.HttpPort}, r,
		relay.Start,
		func(ctx context.Context) {
			if err := listener.Start(ctx); err != nil && ctx.Err() == nil {
				logger.Error("multisig status listener stopped", zap.Error(err))
			}
		},
	)
	app.Run()
}
