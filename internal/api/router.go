// Package api は電文の受信・照会を行う HTTP インタフェースを提供する。
//
// 上流の病院情報システムは電文をファイルアップロードまたは生バイナリで
// POST し、本パッケージが解析・保存・下流転送までを1リクエストで行う。
package api

import (
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// SetupRouter は Gin ルーターを構成する
func SetupRouter(mode string, h *TelegramHandler) *gin.Engine {
	if mode != "" {
		gin.SetMode(mode)
	}
	r := gin.New()
	r.Use(gin.Recovery())

	// CORS 設定。院内ネットワーク内での利用を想定し全オリジンを許可する
	config := cors.DefaultConfig()
	config.AllowOrigins = []string{"*"}
	config.AllowMethods = []string{"GET", "POST", "OPTIONS"}
	config.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization"}
	r.Use(cors.New(config))

	// Prometheus 指標
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	apiV1 := r.Group("/api/v1")
	{
		apiV1.GET("/health", h.Health)

		telegrams := apiV1.Group("/telegrams")
		{
			telegrams.POST("", h.IngestRaw)     // POST /api/v1/telegrams (生バイナリ)
			telegrams.POST("/upload", h.Upload) // POST /api/v1/telegrams/upload (multipart)
			telegrams.GET("", h.List)           // GET /api/v1/telegrams
			telegrams.GET("/:id", h.GetByID)    // GET /api/v1/telegrams/:id
		}
	}

	// 互換用: ルート直下の health も残す
	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	return r
}
