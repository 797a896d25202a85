package cache

import (
	"context"
	"errors"

	"recipe-viewer/internal/infrastructure/config"
	"recipe-viewer/internal/pkg/common"

	"go.uber.org/zap"
)

// ErrMiss 快取未命中
var ErrMiss = errors.New("cache miss")

// Store 快取儲存介面
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Close() error
}

// New 依設定建立快取：設定 redis_addr 時使用 Redis，否則使用記憶體快取。
// 快取關閉時回傳 nil。
func New(cfg *config.Config) (Store, error) {
	if !cfg.Cache.Enabled {
		common.LogInfo("Cache disabled")
		return nil, nil
	}

	if cfg.Cache.RedisAddr != "" {
		store, err := NewRedisStore(context.Background(), &cfg.Cache)
		if err != nil {
			return nil, err
		}
		common.LogInfo("使用 Redis 快取", zap.String("addr", cfg.Cache.RedisAddr))
		return store, nil
	}

	return NewManager(&cfg.Cache), nil
}
