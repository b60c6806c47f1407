package services

import (
	"context"
	"crypto/rand"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/MonkyMars/gecho"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"kalini_server/config"
	"kalini_server/structs"
	"kalini_server/structs/tables"
)

var (
	redisClient *redis.Client
	redisOnce   sync.Once
	redisCtx    = context.Background()
)

// CacheService provides Redis caching functionality with connection pooling
// and retry logic. Besides read-through caches it owns the session-scoped
// cart and wishlist lists and the token blacklist.
type CacheService struct {
	logger *gecho.Logger
	config *structs.Config
	client *redis.Client
}

func NewCacheService(logger *gecho.Logger, cfg *structs.Config) *CacheService {
	return &CacheService{
		logger: logger,
		config: cfg,
		client: getRedisClient(),
	}
}

// getRedisClient returns a singleton Redis client with proper connection pooling
func getRedisClient() *redis.Client {
	redisOnce.Do(func() {
		cfg := config.GetConfig()
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Cache.Address,
			Username: cfg.Cache.Username,
			Password: cfg.Cache.Password,
			DB:       cfg.Cache.DB,

			PoolSize:        cfg.Cache.PoolSize,
			MinIdleConns:    cfg.Cache.MinIdleConns,
			MaxIdleConns:    cfg.Cache.MaxIdleConns,
			PoolTimeout:     cfg.Cache.PoolTimeout,
			ConnMaxIdleTime: cfg.Cache.IdleTimeout,

			DialTimeout:  cfg.Cache.DialTimeout,
			ReadTimeout:  cfg.Cache.ReadTimeout,
			WriteTimeout: cfg.Cache.WriteTimeout,

			MaxRetries:      cfg.Cache.MaxRetries,
			MinRetryBackoff: cfg.Cache.MinRetryBackoff,
			MaxRetryBackoff: cfg.Cache.MaxRetryBackoff,
		})
	})
	return redisClient
}

// Close closes the Redis connection pool
func (cs *CacheService) Close() error {
	if redisClient != nil {
		return redisClient.Close()
	}
	return nil
}

// withRetry executes a Redis operation with exponential backoff retry logic
func (cs *CacheService) withRetry(operation func() error, maxRetries int) error {
	var lastErr error

	for attempt := 0; attempt <= maxRetries; attempt++ {
		err := operation()
		if err == nil {
			return nil
		}

		lastErr = err

		if attempt == maxRetries {
			break
		}

		// Only retry on network/connection errors, not on logical errors like key not found
		if !isRetryableCacheError(err) {
			return err
		}

		maxBackoff := 2000 // max 2000ms = 2s
		base := 100        // 100ms base

		backoff := base * (1 << attempt)
		backoff = min(backoff, maxBackoff)

		// add jitter ±50%
		jitterBytes := make([]byte, 4)
		if _, err := rand.Read(jitterBytes); err != nil {
			time.Sleep(time.Duration(backoff) * time.Millisecond)
			continue
		}
		jitter := int(uint32(jitterBytes[0])<<24 | uint32(jitterBytes[1])<<16 | uint32(jitterBytes[2])<<8 | uint32(jitterBytes[3]))
		jitter = jitter % (backoff/2 + 1)

		time.Sleep(time.Duration(backoff/2+jitter) * time.Millisecond)
	}

	return fmt.Errorf("redis operation failed after %d retries: %w", maxRetries, lastErr)
}

// isRetryableCacheError determines if an error is worth retrying
func isRetryableCacheError(err error) bool {
	if err == nil {
		return false
	}

	if err == redis.Nil {
		return false
	}

	errStr := err.Error()
	retryableErrors := []string{
		"connection refused",
		"connection reset",
		"timeout",
		"broken pipe",
		"no such host",
		"network is unreachable",
	}

	for _, retryableErr := range retryableErrors {
		if strings.Contains(errStr, retryableErr) {
			return true
		}
	}

	return false
}

// Set sets a key with TTL and automatic retry logic
func (cs *CacheService) Set(key string, value any, ttl time.Duration) error {
	return cs.withRetry(func() error {
		return cs.client.Set(redisCtx, key, value, ttl).Err()
	}, 3)
}

// Get retrieves a key with automatic retry logic. A missing key yields an
// empty string, not an error.
func (cs *CacheService) Get(key string) (string, error) {
	var result string

	err := cs.withRetry(func() error {
		val, err := cs.client.Get(redisCtx, key).Result()
		if err == redis.Nil {
			result = ""
			return nil
		}
		if err != nil {
			return err
		}
		result = val
		return nil
	}, 3)

	if err != nil {
		return "", err
	}

	return result, nil
}

// Delete removes a key with automatic retry logic
func (cs *CacheService) Delete(key string) error {
	return cs.withRetry(func() error {
		return cs.client.Del(redisCtx, key).Err()
	}, 3)
}

// Exists checks if a key exists with automatic retry logic
func (cs *CacheService) Exists(key string) (bool, error) {
	var result bool

	err := cs.withRetry(func() error {
		count, err := cs.client.Exists(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = count > 0
		return nil
	}, 3)

	return result, err
}

// getJSON retrieves and unmarshals a cached JSON value, nil when absent
func getJSON[T any](cs *CacheService, key string) (*T, error) {
	val, err := cs.Get(key)
	if err != nil {
		return nil, err
	}
	if val == "" {
		return nil, nil
	}

	out := new(T)
	if err := json.Unmarshal([]byte(val), out); err != nil {
		return nil, err
	}
	return out, nil
}

// setJSON marshals and stores a value with TTL
func setJSON[T any](cs *CacheService, key string, value *T, ttl time.Duration) error {
	data, err := json.Marshal(value)
	if err != nil {
		return err
	}
	return cs.Set(key, data, ttl)
}

// BlacklistToken adds a token's jti to the blacklist until the token expires
func (cs *CacheService) BlacklistToken(jti uuid.UUID, exp time.Time) error {
	ttl := cs.config.Auth.BlacklistCacheTTL
	if exp.After(time.Now()) {
		ttl = time.Until(exp)
	}

	key := fmt.Sprintf("blacklist:%s", jti)
	return cs.Set(key, "true", ttl)
}

// IsTokenBlacklisted checks if a JTI exists in Redis
func (cs *CacheService) IsTokenBlacklisted(jti uuid.UUID) (bool, error) {
	val, err := cs.Get(fmt.Sprintf("blacklist:%s", jti.String()))
	if err != nil {
		return false, err
	}

	return val == "true", nil
}

// GetUserFromCache retrieves a user object from cache using userID
func (cs *CacheService) GetUserFromCache(userID uuid.UUID) (*tables.User, error) {
	return getJSON[tables.User](cs, fmt.Sprintf("user:%s", userID.String()))
}

// SetUserInCache stores a user object in cache with TTL
func (cs *CacheService) SetUserInCache(user *tables.User) error {
	if user == nil {
		return nil
	}
	return setJSON(cs, fmt.Sprintf("user:%s", user.Id.String()), user, cs.config.Auth.CacheUserTTL)
}

// DeleteUserFromCache removes a user object from cache
func (cs *CacheService) DeleteUserFromCache(userID uuid.UUID) error {
	return cs.Delete(fmt.Sprintf("user:%s", userID.String()))
}

// GetRateLimit retrieves the current rate limit count for an IP/endpoint
func (cs *CacheService) GetRateLimit(ip, endpoint string) (int, error) {
	val, err := cs.Get(fmt.Sprintf("ratelimit:%s:%s", ip, endpoint))
	if err != nil {
		return 0, err
	}

	if val == "" {
		return 0, nil
	}

	count, err := strconv.Atoi(val)
	if err != nil {
		return 0, fmt.Errorf("invalid rate limit value: %w", err)
	}

	return count, nil
}

// IncrementRateLimit atomically increments a rate limit counter
func (cs *CacheService) IncrementRateLimit(ip, endpoint string, ttl time.Duration) (int, error) {
	key := fmt.Sprintf("ratelimit:%s:%s", ip, endpoint)

	var result int64
	err := cs.withRetry(func() error {
		val, err := cs.client.Incr(redisCtx, key).Result()
		if err != nil {
			return err
		}
		result = val

		// Set expiration only on first increment
		if val == 1 {
			return cs.client.Expire(redisCtx, key, ttl).Err()
		}

		return nil
	}, 3)

	return int(result), err
}

// Ping tests the Redis connection
func (cs *CacheService) Ping() error {
	return cs.withRetry(func() error {
		return cs.client.Ping(redisCtx).Err()
	}, 3)
}

// GetConnectionStats returns Redis connection pool statistics
func (cs *CacheService) GetConnectionStats() map[string]any {
	stats := cs.client.PoolStats()

	return map[string]any{
		"hits":        stats.Hits,
		"misses":      stats.Misses,
		"timeouts":    stats.Timeouts,
		"total_conns": stats.TotalConns,
		"idle_conns":  stats.IdleConns,
		"stale_conns": stats.StaleConns,
	}
}

// ============================================================================
// Product Caching
// ============================================================================

// GetProductList retrieves a cached product listing by its options key
func (cs *CacheService) GetProductList(optsKey string) ([]tables.Product, error) {
	list, err := getJSON[[]tables.Product](cs, fmt.Sprintf("products:list:%s", optsKey))
	if err != nil || list == nil {
		return nil, err
	}
	return *list, nil
}

// SetProductList caches a product listing under its options key
func (cs *CacheService) SetProductList(optsKey string, products []tables.Product) error {
	return setJSON(cs, fmt.Sprintf("products:list:%s", optsKey), &products, cs.config.Cache.ProductListTTL)
}

// GetProductBySlug retrieves a cached product detail
func (cs *CacheService) GetProductBySlug(slug string) (*tables.Product, error) {
	return getJSON[tables.Product](cs, fmt.Sprintf("products:slug:%s", slug))
}

// SetProductBySlug caches a product detail keyed by slug
func (cs *CacheService) SetProductBySlug(slug string, product *tables.Product) error {
	return setJSON(cs, fmt.Sprintf("products:slug:%s", slug), product, cs.config.Cache.ProductListTTL)
}

// InvalidateProducts drops all cached product listings and details. Called
// after any catalog mutation so stale stock never reaches the resolver.
func (cs *CacheService) InvalidateProducts() error {
	return cs.deletePattern("products:*")
}

// deletePattern removes all keys matching a pattern using SCAN (non-blocking)
func (cs *CacheService) deletePattern(pattern string) error {
	return cs.withRetry(func() error {
		var cursor uint64
		for {
			keys, next, err := cs.client.Scan(redisCtx, cursor, pattern, 100).Result()
			if err != nil {
				return err
			}

			if len(keys) > 0 {
				if err := cs.client.Del(redisCtx, keys...).Err(); err != nil {
					return err
				}
			}

			cursor = next
			if cursor == 0 {
				return nil
			}
		}
	}, 3)
}

// ============================================================================
// Session Lists (cart and wishlist)
// ============================================================================

// GetSessionCart reads the whole cart list for a session, empty when absent
func (cs *CacheService) GetSessionCart(sessionID string) (structs.Cart, error) {
	cart, err := getJSON[structs.Cart](cs, fmt.Sprintf("cart:%s", sessionID))
	if err != nil || cart == nil {
		return structs.Cart{}, err
	}
	return *cart, nil
}

// SetSessionCart replaces the whole cart list for a session
func (cs *CacheService) SetSessionCart(sessionID string, cart structs.Cart) error {
	return setJSON(cs, fmt.Sprintf("cart:%s", sessionID), &cart, cs.config.Cache.SessionListTTL)
}

// DeleteSessionCart drops the cart list for a session
func (cs *CacheService) DeleteSessionCart(sessionID string) error {
	return cs.Delete(fmt.Sprintf("cart:%s", sessionID))
}

// GetSessionWishlist reads the whole wishlist for a session, empty when absent
func (cs *CacheService) GetSessionWishlist(sessionID string) (structs.Wishlist, error) {
	list, err := getJSON[structs.Wishlist](cs, fmt.Sprintf("wishlist:%s", sessionID))
	if err != nil || list == nil {
		return structs.Wishlist{}, err
	}
	return *list, nil
}

// SetSessionWishlist replaces the whole wishlist for a session
func (cs *CacheService) SetSessionWishlist(sessionID string, list structs.Wishlist) error {
	return setJSON(cs, fmt.Sprintf("wishlist:%s", sessionID), &list, cs.config.Cache.SessionListTTL)
}
