package middleware

import (
	"context"
	"fmt"
	"strconv"
	"sync"
	"time"

	"smart-kitchen/internal/infrastructure/config"
	"smart-kitchen/internal/pkg/common"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Limiter 判斷某個鍵的請求是否放行
type Limiter interface {
	Allow(ctx context.Context, key string) (bool, error)
}

// tokenBucket 單一鍵的令牌桶
type tokenBucket struct {
	tokens   int
	lastTime time.Time
}

// MemoryLimiter 行程內令牌桶，依鍵分桶
type MemoryLimiter struct {
	mu       sync.Mutex
	buckets  map[string]*tokenBucket
	capacity int
	rate     float64
	now      func() time.Time
}

// NewMemoryLimiter 創建記憶體限流器
func NewMemoryLimiter(requests int, window time.Duration) *MemoryLimiter {
	return &MemoryLimiter{
		buckets:  make(map[string]*tokenBucket),
		capacity: requests,
		rate:     float64(requests) / window.Seconds(),
		now:      time.Now,
	}
}

// Allow 檢查是否允許請求
func (l *MemoryLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := l.now()
	b, ok := l.buckets[key]
	if !ok {
		b = &tokenBucket{tokens: l.capacity, lastTime: now}
		l.buckets[key] = b
	}

	// 補充令牌；不足一枚時不推進時間，避免高頻請求永遠補不到
	newTokens := int(now.Sub(b.lastTime).Seconds() * l.rate)
	if newTokens > 0 {
		b.tokens = min(l.capacity, b.tokens+newTokens)
		b.lastTime = now
	}

	if b.tokens > 0 {
		b.tokens--
		return true, nil
	}
	return false, nil
}

// RedisLimiter 以 Redis 固定視窗計數，多個實例共用額度
type RedisLimiter struct {
	client    *redis.Client
	limit     int
	window    time.Duration
	keyPrefix string
}

// NewRedisLimiter 創建 Redis 限流器
func NewRedisLimiter(client *redis.Client, requests int, window time.Duration, keyPrefix string) *RedisLimiter {
	return &RedisLimiter{
		client:    client,
		limit:     requests,
		window:    window,
		keyPrefix: keyPrefix,
	}
}

// Allow INCR 後設定 TTL，計數超過上限即拒絕
func (l *RedisLimiter) Allow(ctx context.Context, key string) (bool, error) {
	windowStart := time.Now().Truncate(l.window)
	redisKey := fmt.Sprintf("%s:%s:%d", l.keyPrefix, key, windowStart.Unix())

	pipe := l.client.TxPipeline()
	incr := pipe.Incr(ctx, redisKey)
	pipe.Expire(ctx, redisKey, l.window)
	if _, err := pipe.Exec(ctx); err != nil {
		return false, err
	}
	return int(incr.Val()) <= l.limit, nil
}

// fallbackLimiter 主要限流器出錯時改用備援
type fallbackLimiter struct {
	primary  Limiter
	fallback Limiter
}

func (l *fallbackLimiter) Allow(ctx context.Context, key string) (bool, error) {
	ok, err := l.primary.Allow(ctx, key)
	if err == nil {
		return ok, nil
	}
	common.LogWarn("限流後端失敗，改用記憶體限流", zap.Error(err))
	return l.fallback.Allow(ctx, key)
}

// NewLimiter 有 Redis 時使用共享計數，否則使用記憶體令牌桶
func NewLimiter(cfg config.RateLimitConfig, client *redis.Client, keyPrefix string) Limiter {
	memory := NewMemoryLimiter(cfg.Requests, cfg.Window)
	if client == nil {
		return memory
	}
	return &fallbackLimiter{
		primary:  NewRedisLimiter(client, cfg.Requests, cfg.Window, keyPrefix),
		fallback: memory,
	}
}

// RateLimit 以用戶端 IP 為鍵的限流中間件
func RateLimit(limiter Limiter, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		allowed, err := limiter.Allow(c.Request.Context(), c.ClientIP())
		if err != nil {
			// 限流失敗不阻擋請求
			common.LogError("Rate limit check failed", zap.Error(err))
			c.Next()
			return
		}
		if !allowed {
			common.LogInfo("Rate limit exceeded",
				zap.String("ip", c.ClientIP()),
				zap.String("path", c.Request.URL.Path),
			)
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			abortWithError(c, common.TooManyRequestsError("too many requests"))
			return
		}

		c.Next()
	}
}
