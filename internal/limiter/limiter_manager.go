package limiter

import (
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/conf"
	"github.com/Sahilu-Mikiyas/campus-fin-bloom/internal/provider"
)

const defaultPolicyName = "default"

// Manager holds the named rate limiters built from configuration.
type Manager struct {
	limiters map[string]*RedisRateLimiter
}

func NewManager(cfg *conf.RateLimiterConfig, redisClient *redis.Client, ns provider.RedisNamespace) (*Manager, error) {
	if cfg == nil {
		return nil, fmt.Errorf("rate limiter config is nil")
	}

	limiters := make(map[string]*RedisRateLimiter)

	createLimiter := func(policy conf.RateLimiterPolicy) (*RedisRateLimiter, error) {
		if policy.Limit <= 0 {
			return nil, fmt.Errorf("policy limit must be positive")
		}
		duration, err := time.ParseDuration(policy.Interval)
		if err != nil {
			return nil, fmt.Errorf("invalid policy interval format: %w", err)
		}
		if duration <= 0 {
			return nil, fmt.Errorf("policy interval must be positive")
		}

		rate := float64(policy.Limit) / duration.Seconds()
		size := float64(policy.Limit)
		expiration := duration * 2

		return NewRedisRateLimiter(redisClient, ns, rate, size, expiration), nil
	}

	defaultLimiter, err := createLimiter(cfg.Default)
	if err != nil {
		return nil, fmt.Errorf("failed to create default rate limiter: %w", err)
	}
	limiters[defaultPolicyName] = defaultLimiter

	for name, policy := range cfg.Policies {
		limiter, err := createLimiter(policy)
		if err != nil {
			return nil, fmt.Errorf("failed to create policy '%s': %w", name, err)
		}
		limiters[name] = limiter
	}

	return &Manager{limiters: limiters}, nil
}

// Get retrieves a named rate limiter, falling back to the default policy when
// the name is unknown.
func (m *Manager) Get(name string) *RedisRateLimiter {
	if limiter, ok := m.limiters[name]; ok {
		return limiter
	}
	return m.limiters[defaultPolicyName]
}
