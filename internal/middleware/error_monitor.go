package middleware

import (
	"github.com/springboardmentor4545/Brag-Board-Team6/internal/errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorMonitorMiddleware 把请求中收集到的错误记录进错误分析器
func ErrorMonitorMiddleware(analytics *errors.ErrorAnalytics) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 {
			return
		}

		ctx := errors.ErrorContext{
			UserID: c.GetInt("user_id"),
			Path:   c.Request.URL.Path,
			Method: c.Request.Method,
		}

		for _, e := range c.Errors {
			traced := errors.NewTracedError(e.Err, ctx)
			analytics.Record(traced)

			zap.L().Error("请求处理错误",
				zap.Int("error_code", int(traced.Code)),
				zap.String("error_message", traced.Message),
				zap.Error(traced.Err),
				zap.String("path", ctx.Path),
				zap.String("method", ctx.Method))
		}
	}
}
