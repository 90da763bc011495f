package server

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"wallet-txflow/internal/handler"
	"wallet-txflow/internal/handler/response"
	"wallet-txflow/pkg/monitor"
)

type Handlers struct {
	Transaction *handler.TransactionHandler
	Multisig    *handler.MultisigHandler
	// Submission 需要数据库，为空时不注册相关路由
	Submission *handler.SubmissionHandler
}

// NewHTTPRouter 初始化并返回一个 Gin Engine
// 监控指标需要在此之前通过 monitor.Init 注册
func NewHTTPRouter(h Handlers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), monitor.PrometheusMiddleware())

	r.GET("/health", handler.HealthCheck)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api/v1")
	{
		api.GET("/ping", func(c *gin.Context) {
			response.Success(c, gin.H{"pong": true})
		})

		tx := api.Group("/transactions")
		tx.POST("/compose", h.Transaction.Compose)
		tx.POST("/fee", h.Transaction.Fee)

		api.POST("/multisig/account", h.Multisig.Account)

		if h.Submission != nil {
			tx.POST("/submit", h.Submission.Submit)
			api.GET("/multisig/pending", h.Submission.Pending)
		}
	}

	return r
}
