package handler

import (
	"github.com/gin-gonic/gin"

	"wallet-txflow/internal/handler/response"
)

func HealthCheck(c *gin.Context) {
	response.Success(c, gin.H{
		"status":  "UP",
		"version": "1.0.0",
		"service": "txflow-server",
	})
}
