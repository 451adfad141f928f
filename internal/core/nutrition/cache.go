package nutrition

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"recipe-nutrition/internal/pkg/common"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// Store 營養成分快取介面
// 鍵為正規化後的查詢字串，值為每 100 公克的營養成分
type Store interface {
	Get(ctx context.Context, key string) (common.NutrientProfile, bool)
	Set(ctx context.Context, key string, profile common.NutrientProfile, ttl time.Duration)
}

// memoryEntry 記憶體快取條目
type memoryEntry struct {
	profile   common.NutrientProfile
	expiresAt time.Time
}

// MemoryStore 行程內的記憶體快取，過期條目在下次讀取時才淘汰
type MemoryStore struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	now     func() time.Time
}

// NewMemoryStore 創建記憶體快取
func NewMemoryStore() *MemoryStore {
	return NewMemoryStoreWithClock(time.Now)
}

// NewMemoryStoreWithClock 創建記憶體快取並注入時鐘（測試用）
func NewMemoryStoreWithClock(now func() time.Time) *MemoryStore {
	return &MemoryStore{
		entries: make(map[string]memoryEntry),
		now:     now,
	}
}

// Get 獲取快取值，過期視為不存在並順手刪除
func (s *MemoryStore) Get(ctx context.Context, key string) (common.NutrientProfile, bool) {
	s.mu.RLock()
	entry, exists := s.entries[key]
	s.mu.RUnlock()

	if !exists {
		return common.NutrientProfile{}, false
	}

	if s.now().After(entry.expiresAt) {
		// 取得寫鎖後重驗過期時間，避免淘汰掉期間剛寫入的新條目
		s.mu.Lock()
		if current, ok := s.entries[key]; ok && s.now().After(current.expiresAt) {
			delete(s.entries, key)
		}
		s.mu.Unlock()
		common.LogDebug("快取已過期", zap.String("鍵", key))
		return common.NutrientProfile{}, false
	}

	return entry.profile, true
}

// Set 設置快取值
func (s *MemoryStore) Set(ctx context.Context, key string, profile common.NutrientProfile, ttl time.Duration) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.entries[key] = memoryEntry{
		profile:   profile,
		expiresAt: s.now().Add(ttl),
	}
}

// Len 目前快取條目數
func (s *MemoryStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.entries)
}

// RedisStore Redis 後端的營養快取，多副本部署時共用查詢結果
type RedisStore struct {
	client *redis.Client
}

// NewRedisStore 創建 Redis 快取
func NewRedisStore(addr string) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
	})

	// 測試連接
	if err := client.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &RedisStore{client: client}, nil
}

// Get 獲取快取值
func (s *RedisStore) Get(ctx context.Context, key string) (common.NutrientProfile, bool) {
	data, err := s.client.Get(ctx, s.redisKey(key)).Bytes()
	if err != nil {
		if err != redis.Nil {
			common.LogWarn("Redis 快取讀取失敗", zap.String("鍵", key), zap.Error(err))
		}
		return common.NutrientProfile{}, false
	}

	var profile common.NutrientProfile
	if err := json.Unmarshal(data, &profile); err != nil {
		common.LogWarn("Redis 快取解析失敗", zap.String("鍵", key), zap.Error(err))
		return common.NutrientProfile{}, false
	}
	return profile, true
}

// Set 設置快取值，過期交由 Redis 處理
func (s *RedisStore) Set(ctx context.Context, key string, profile common.NutrientProfile, ttl time.Duration) {
	data, err := json.Marshal(profile)
	if err != nil {
		common.LogWarn("Redis 快取序列化失敗", zap.String("鍵", key), zap.Error(err))
		return
	}

	if err := s.client.Set(ctx, s.redisKey(key), data, ttl).Err(); err != nil {
		common.LogWarn("Redis 快取寫入失敗", zap.String("鍵", key), zap.Error(err))
	}
}

// redisKey 生成帶命名空間的快取鍵
func (s *RedisStore) redisKey(key string) string {
	return "nutrition:profile:" + key
}

// Close 關閉 Redis 連接
func (s *RedisStore) Close() error {
	return s.client.Close()
}
