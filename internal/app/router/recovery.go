package router

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"movie_backend/internal/api"
)

// Recovery はハンドラーのpanicを捕捉し、統一エラーエンベロープで500を返すミドルウェアです。
// 内部エラーの詳細はレスポンスに漏らさず、ログにのみ出力します。
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		slog.Error("panic recovered", "error", recovered, "path", c.Request.URL.Path)
		c.AbortWithStatusJSON(http.StatusInternalServerError, api.ErrorEnvelope{
			Error: api.ErrorDetail{
				Message:   "Internal Server Error",
				ErrorCode: "INTERNAL_ERROR",
				Details:   nil,
			},
		})
	})
}
