package middleware

//go:generate go run go.uber.org/mock/mockgen -source=ratelimit_middleware.go -destination=../mocks/mock_message_limiter.go -package=mocks

import (
	"context"
	"net/http"
	"strconv"

	"clinic-chat/internal/redis"
	"clinic-chat/internal/services"
	"clinic-chat/internal/transport/httpdto"
	"clinic-chat/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type MessageLimiter interface {
	AllowMessage(ctx context.Context, actor string) (*redis.RateLimitResult, error)
}

// MessageRateLimitMiddleware limits message sends per authenticated user, or
// per client IP when auth is off. If Redis is unreachable the request goes
// through.
func MessageRateLimitMiddleware(limiter MessageLimiter, l *logger.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		actor := c.ClientIP()
		if userID, ok := services.UserIDFromContext(c.Request.Context()); ok {
			actor = userID.String()
		}

		result, err := limiter.AllowMessage(c.Request.Context(), actor)
		if err != nil {
			if l != nil {
				l.ErrorCtx(c.Request.Context(), "rate limit check failed", zap.Error(err))
			}
			c.Next()
			return
		}

		setRateLimitHeaders(c, result)

		if !result.Allowed {
			c.AbortWithStatusJSON(http.StatusTooManyRequests, httpdto.NewErrorResponse("message rate limit exceeded", "RATE_LIMITED"))
			return
		}

		c.Next()
	}
}

// setRateLimitHeaders sets standard rate limit response headers
func setRateLimitHeaders(c *gin.Context, result *redis.RateLimitResult) {
	c.Header("X-RateLimit-Limit", strconv.Itoa(result.Limit))
	c.Header("X-RateLimit-Remaining", strconv.Itoa(result.Remaining))
	c.Header("X-RateLimit-Reset", strconv.FormatInt(int64(result.ResetIn.Seconds()), 10))
}
