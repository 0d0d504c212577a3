package cache

import (
	"context"
	"fmt"
	"time"
)

// VersionedKey 返回带版本号的列表缓存键
// 版本号未命中时视为 1，列表写操作通过 BumpVersion 递增使旧键整体失效
func VersionedKey(ctx context.Context, provider Provider, versionBuilder, listBuilder *KeyBuilder, variant string) string {
	var version int64
	if err := provider.Get(ctx, versionBuilder.Build(), &version); err != nil {
		version = 1
	}
	return listBuilder.Build(fmt.Sprintf("v%d", version), variant)
}

// BumpVersion 递增列表版本号，使该前缀下的全部列表缓存失效
func BumpVersion(ctx context.Context, provider Provider, versionBuilder *KeyBuilder) {
	key := versionBuilder.Build()

	var version int64
	if err := provider.Get(ctx, key, &version); err != nil {
		version = 1
	}
	// 版本键不设过期，失效由版本推进保证
	_ = provider.Set(ctx, key, version+1, 0)
}

// GetOrLoad 读缓存，未命中时执行 load 并回填
func GetOrLoad[T any](ctx context.Context, provider Provider, key string, ttl time.Duration, load func() (T, error)) (T, error) {
	var cached T
	if err := provider.Get(ctx, key, &cached); err == nil {
		return cached, nil
	}

	loaded, err := load()
	if err != nil {
		return loaded, err
	}

	_ = provider.Set(ctx, key, loaded, ttl)
	return loaded, nil
}
