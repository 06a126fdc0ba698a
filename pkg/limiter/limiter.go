// Package limiter provides token-bucket rate limiting for HTTP routes
// Package limiter 提供基于令牌桶的 HTTP 路由限流
package limiter

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/juju/ratelimit"
)

// Face 限流器接口
type Face interface {
	Key(c *gin.Context) string
	GetBucket(key string) (*ratelimit.Bucket, bool)
	AddBuckets(rules ...BucketRule) Face
}

// Limiter 限流器基础结构，按 key 保存令牌桶
type Limiter struct {
	limiterBuckets map[string]*ratelimit.Bucket
}

// BucketRule 令牌桶规则
type BucketRule struct {
	// Key 桶标识
	Key string
	// FillInterval 放入令牌的时间间隔
	FillInterval time.Duration
	// Capacity 桶容量
	Capacity int64
	// Quantum 每次放入的令牌数量
	Quantum int64
}
