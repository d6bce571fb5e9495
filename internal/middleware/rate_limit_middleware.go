package middleware

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
)

// RateLimitConfig описывает один HTTP-лимит: окно, потолок запросов
// и префикс ключей в Redis
type RateLimitConfig struct {
	MaxRequests int
	Window      time.Duration
	KeyPrefix   string
}

// AuthRateLimitConfig строит общий лимит для группы auth-эндпоинтов.
// Значения приходят из конфигурации приложения.
func AuthRateLimitConfig(maxRequests, windowSeconds int) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      time.Duration(windowSeconds) * time.Second,
		KeyPrefix:   "rl:auth",
	}
}

// StrictAuthRateLimitConfig строит строгий лимит для login и register
func StrictAuthRateLimitConfig(maxRequests, windowSeconds int) RateLimitConfig {
	return RateLimitConfig{
		MaxRequests: maxRequests,
		Window:      time.Duration(windowSeconds) * time.Second,
		KeyPrefix:   "rl:auth:strict",
	}
}

// HTTPRateLimiter ограничивает частоту HTTP-запросов по IP через Redis.
// Это внешний слой защиты эндпоинтов; учет неудачных входов и блокировка
// аккаунта живут отдельно в сервисном слое.
type HTTPRateLimiter struct {
	redisClient redis.UniversalClient
}

// NewHTTPRateLimiter создает новый HTTPRateLimiter
func NewHTTPRateLimiter(redisClient redis.UniversalClient) *HTTPRateLimiter {
	return &HTTPRateLimiter{redisClient: redisClient}
}

// Limit возвращает middleware с лимитом на пару IP + маршрут
func (rl *HTTPRateLimiter) Limit(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.FullPath()
		if path == "" {
			path = c.Request.URL.Path
		}
		rl.enforce(c, cfg, fmt.Sprintf("%s:%s:%s", cfg.KeyPrefix, c.ClientIP(), path))
	}
}

// LimitByIP возвращает middleware с общим лимитом на IP для всей группы
func (rl *HTTPRateLimiter) LimitByIP(cfg RateLimitConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		rl.enforce(c, cfg, fmt.Sprintf("%s:%s", cfg.KeyPrefix, c.ClientIP()))
	}
}

// enforce инкрементирует счетчик окна и отклоняет запрос сверх лимита.
// При недоступности Redis запрос пропускается: лимитер вспомогательный
// и не должен ронять вход целиком.
func (rl *HTTPRateLimiter) enforce(c *gin.Context, cfg RateLimitConfig, key string) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	count, err := rl.redisClient.Incr(ctx, key).Result()
	if err != nil {
		log.Printf("[HTTPRateLimiter] Ошибка Redis для ключа %s: %v, запрос пропущен", key, err)
		c.Next()
		return
	}

	// Первый запрос открывает окно
	if count == 1 {
		if err := rl.redisClient.Expire(ctx, key, cfg.Window).Err(); err != nil {
			log.Printf("[HTTPRateLimiter] Не удалось установить TTL ключа %s: %v", key, err)
		}
	}

	remaining := cfg.MaxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}

	ttl, _ := rl.redisClient.TTL(ctx, key).Result()
	retryAfter := int(ttl.Seconds())
	if retryAfter < 0 {
		retryAfter = int(cfg.Window.Seconds())
	}

	c.Header("X-RateLimit-Limit", fmt.Sprintf("%d", cfg.MaxRequests))
	c.Header("X-RateLimit-Remaining", fmt.Sprintf("%d", remaining))
	c.Header("X-RateLimit-Reset", fmt.Sprintf("%d", retryAfter))

	if int(count) > cfg.MaxRequests {
		log.Printf("[HTTPRateLimiter] Превышен лимит: IP=%s key=%s count=%d limit=%d",
			c.ClientIP(), key, count, cfg.MaxRequests)

		c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
		c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
			"error":       "Too many requests. Please try again later.",
			"retry_after": retryAfter,
		})
		return
	}

	c.Next()
}
