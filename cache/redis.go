package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

var (
	RedisClient *redis.Client
	ctx         = context.Background()
)

// InitRedis connects to redis. The cache is optional; callers check
// IsRedisAvailable before every cache operation and fall through to
// the database when it fails.
func InitRedis() error {
	addr := os.Getenv("REDIS_URL")
	if addr == "" {
		addr = "localhost:6379"
	}

	RedisClient = redis.NewClient(&redis.Options{
		Addr:         addr,
		Password:     os.Getenv("REDIS_PASSWORD"),
		DB:           0,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
		PoolSize:     10,
		MinIdleConns: 5,
	})

	pingCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if _, err := RedisClient.Ping(pingCtx).Result(); err != nil {
		return fmt.Errorf("failed to connect to redis: %w", err)
	}
	return nil
}

// CloseRedis closes the connection.
func CloseRedis() error {
	if RedisClient != nil {
		return RedisClient.Close()
	}
	return nil
}

// IsRedisAvailable reports whether the cache can be used right now.
func IsRedisAvailable() bool {
	if RedisClient == nil {
		return false
	}
	_, err := RedisClient.Ping(ctx).Result()
	return err == nil
}

// ==================== CACHE KEYS ====================

const (
	GameCachePrefix      = "game:"           // game:123
	GamesListCachePrefix = "games:list:"     // games:list:<query>
	CategoriesCacheKey   = "games:categories"
	RatingCachePrefix    = "rating:game:"    // rating:game:123
	CommentsCachePrefix  = "comments:game:"  // comments:game:123
	RateLimitPrefix      = "ratelimit:ip:"   // ratelimit:ip:1.2.3.4
)

// ==================== GENERIC CACHE OPERATIONS ====================

// Set stores a value with TTL.
func Set(key string, value interface{}, ttl time.Duration) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value: %w", err)
	}
	return RedisClient.Set(ctx, key, data, ttl).Err()
}

// Get retrieves a value into dest.
func Get(key string, dest interface{}) error {
	if !IsRedisAvailable() {
		return fmt.Errorf("redis not available")
	}
	val, err := RedisClient.Get(ctx, key).Result()
	if err == redis.Nil {
		return fmt.Errorf("cache miss")
	}
	if err != nil {
		return fmt.Errorf("failed to get value: %w", err)
	}
	if err := json.Unmarshal([]byte(val), dest); err != nil {
		return fmt.Errorf("failed to unmarshal value: %w", err)
	}
	return nil
}

// Delete removes a key.
func Delete(key string) error {
	if !IsRedisAvailable() {
		return nil
	}
	return RedisClient.Del(ctx, key).Err()
}

// DeletePattern removes all keys matching pattern.
func DeletePattern(pattern string) error {
	if !IsRedisAvailable() {
		return nil
	}
	iter := RedisClient.Scan(ctx, 0, pattern, 0).Iterator()
	for iter.Next(ctx) {
		if err := RedisClient.Del(ctx, iter.Val()).Err(); err != nil {
			return err
		}
	}
	return iter.Err()
}

// ==================== GAME CACHING ====================

// GameListKey builds the cache key for one list-query combination.
func GameListKey(category, search, sortBy string, skip, limit int) string {
	return fmt.Sprintf("%s%s:%s:%s:%d:%d", GamesListCachePrefix, category, search, sortBy, skip, limit)
}

// SetGameList caches one page of the games listing for 5 minutes.
func SetGameList(key string, response interface{}) error {
	return Set(key, response, 5*time.Minute)
}

// GetGameList returns a cached listing page.
func GetGameList(key string, dest interface{}) error {
	return Get(key, dest)
}

// InvalidateGames drops every cached listing page, the per-game
// entries and the category counts. Called on any game write.
func InvalidateGames() error {
	if err := DeletePattern(GamesListCachePrefix + "*"); err != nil {
		return err
	}
	if err := DeletePattern(GameCachePrefix + "*"); err != nil {
		return err
	}
	return Delete(CategoriesCacheKey)
}

// SetGame caches a single game for 1 hour.
func SetGame(gameID uint, game interface{}) error {
	return Set(fmt.Sprintf("%s%d", GameCachePrefix, gameID), game, time.Hour)
}

// GetGame returns a cached game.
func GetGame(gameID uint, dest interface{}) error {
	return Get(fmt.Sprintf("%s%d", GameCachePrefix, gameID), dest)
}

// InvalidateGame removes one game from the cache.
func InvalidateGame(gameID uint) error {
	return Delete(fmt.Sprintf("%s%d", GameCachePrefix, gameID))
}

// ==================== CATEGORY CACHING ====================

// SetCategories caches the category counts for 10 minutes.
func SetCategories(categories interface{}) error {
	return Set(CategoriesCacheKey, categories, 10*time.Minute)
}

// GetCategories returns the cached category counts.
func GetCategories(dest interface{}) error {
	return Get(CategoriesCacheKey, dest)
}

// ==================== RATING CACHING ====================

// Rating summaries are cached without the per-visitor score; handlers
// only consult the cache for anonymous summary requests.

// SetRatingSummary caches a game's aggregate rating for 5 minutes.
func SetRatingSummary(gameID uint, summary interface{}) error {
	return Set(fmt.Sprintf("%s%d", RatingCachePrefix, gameID), summary, 5*time.Minute)
}

// GetRatingSummary returns a cached aggregate rating.
func GetRatingSummary(gameID uint, dest interface{}) error {
	return Get(fmt.Sprintf("%s%d", RatingCachePrefix, gameID), dest)
}

// InvalidateRatingSummary removes a game's aggregate from the cache.
func InvalidateRatingSummary(gameID uint) error {
	return Delete(fmt.Sprintf("%s%d", RatingCachePrefix, gameID))
}

// ==================== COMMENT CACHING ====================

// SetComments caches the first comments page of a game for 2 minutes.
func SetComments(gameID uint, response interface{}) error {
	return Set(fmt.Sprintf("%s%d", CommentsCachePrefix, gameID), response, 2*time.Minute)
}

// GetComments returns a cached first comments page.
func GetComments(gameID uint, dest interface{}) error {
	return Get(fmt.Sprintf("%s%d", CommentsCachePrefix, gameID), dest)
}

// InvalidateComments removes a game's cached comments.
func InvalidateComments(gameID uint) error {
	return Delete(fmt.Sprintf("%s%d", CommentsCachePrefix, gameID))
}

// ==================== RATE LIMITING ====================

// CheckRateLimit counts requests per key in a fixed window and reports
// whether the current request is allowed and how many remain.
func CheckRateLimit(key string, maxRequests int, window time.Duration) (bool, int, error) {
	if !IsRedisAvailable() {
		return true, maxRequests, nil
	}

	fullKey := RateLimitPrefix + key
	count, err := RedisClient.Incr(ctx, fullKey).Result()
	if err != nil {
		return true, maxRequests, err
	}
	if count == 1 {
		RedisClient.Expire(ctx, fullKey, window)
	}

	remaining := maxRequests - int(count)
	if remaining < 0 {
		remaining = 0
	}
	return count <= int64(maxRequests), remaining, nil
}
