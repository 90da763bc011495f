package config

import (
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	App    AppConfig     `mapstructure:"app"`
	DB     DBConfig      `mapstructure:"db"`
	Redis  RedisConfig   `mapstructure:"redis"`
	Kafka  KafkaConfig   `mapstructure:"kafka"`
	Flow   FlowConfig    `mapstructure:"flow"`
	Chains []ChainConfig `mapstructure:"chains"`
}

type AppConfig struct {
	Env      string `mapstructure:"env"`
	HttpPort string `mapstructure:"http_port"`
}

type DBConfig struct {
	Host     string `mapstructure:"host"`
	Port     string `mapstructure:"port"`
	User     string `mapstructure:"user"`
	Password string `mapstructure:"password"`
	Name     string `mapstructure:"name"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
	MQType   string `mapstructure:"mq_type"` // "redis" or "kafka"
}

type KafkaConfig struct {
	Brokers []string `mapstructure:"brokers"`
}

// FlowConfig 控制向导流程与手续费查询
type FlowConfig struct {
	SettleDelay      time.Duration `mapstructure:"settle_delay"`       // SUBMIT 完成后回到 NONE 的延迟
	FeeTimeout       time.Duration `mapstructure:"fee_timeout"`        // 单次手续费查询超时
	FeeRetryAttempts uint          `mapstructure:"fee_retry_attempts"` // 手续费查询重试次数
	FeeCacheTTL      time.Duration `mapstructure:"fee_cache_ttl"`
	SubmitTopic      string        `mapstructure:"submit_topic"`
}

// ChainConfig is the static chain metadata the composer reads.
type ChainConfig struct {
	ChainID       string `mapstructure:"chain_id"`
	Name          string `mapstructure:"name"`
	AddressPrefix uint16 `mapstructure:"address_prefix"`
	RpcUrl        string `mapstructure:"rpc_url"`

	AssetSymbol    string `mapstructure:"asset_symbol"`
	AssetPrecision int32  `mapstructure:"asset_precision"`

	// multisig 押金 = deposit_base + deposit_factor * threshold
	DepositBase   string `mapstructure:"deposit_base"`
	DepositFactor string `mapstructure:"deposit_factor"`

	MaxRefTime   uint64 `mapstructure:"max_ref_time"`
	MaxProofSize uint64 `mapstructure:"max_proof_size"`

	// transaction type -> [pallet, call]，为空时使用 Polkadot 默认值
	CallIndices map[string][]uint8 `mapstructure:"call_indices"`
}

var Global Config

func Init() {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")

	// 环境变量设置
	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			log.Printf("Warning: Config file not found, using defaults and environment variables")
		} else {
			log.Fatalf("Fatal error config file: %s \n", err)
		}
	}

	if err := viper.Unmarshal(&Global); err != nil {
		log.Fatalf("Unable to decode into struct, %v", err)
	}

	log.Printf("Configuration loaded successfully. Env: %s, Chains: %d", Global.App.Env, len(Global.Chains))
}

func setDefaults() {
	viper.SetDefault("app.env", "development")
	viper.SetDefault("app.http_port", "8080")

	viper.SetDefault("db.host", "localhost")
	viper.SetDefault("db.port", "5432")
	viper.SetDefault("db.user", "wallet_user")
	viper.SetDefault("db.password", "wallet_password")
	viper.SetDefault("db.name", "wallet_db")

	viper.SetDefault("redis.addr", "localhost:6379")
	viper.SetDefault("redis.db", 0)
	viper.SetDefault("redis.mq_type", "redis")

	viper.SetDefault("kafka.brokers", []string{"localhost:9092"})

	viper.SetDefault("flow.settle_delay", 2*time.Second)
	viper.SetDefault("flow.fee_timeout", 10*time.Second)
	viper.SetDefault("flow.fee_retry_attempts", 3)
	viper.SetDefault("flow.fee_cache_ttl", 30*time.Second)
	viper.SetDefault("flow.submit_topic", "wallet_events_tx_submitted")

	viper.SetDefault("chains", []map[string]interface{}{
		{
			"chain_id":        PolkadotChainID,
			"name":            "Polkadot",
			"address_prefix":  0,
			"rpc_url":         "https://rpc.polkadot.io",
			"asset_symbol":    "DOT",
			"asset_precision": 10,
			"deposit_base":    "200880000000",
			"deposit_factor":  "320000000",
			"max_ref_time":    1479900000000,
			"max_proof_size":  3932160,
		},
	})
}

const PolkadotChainID = "0x91b171bb158e2d3848fa23a9f1c25182fb8e20313b2c1eb49219da7a70ce90c3"
