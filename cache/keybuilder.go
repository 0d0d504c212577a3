package cache

import (
	"fmt"
	"strings"
)

// KeyBuilder 缓存键构建器
type KeyBuilder struct {
	prefix string
	sep    string
}

// NewKeyBuilder 创建新的键构建器
func NewKeyBuilder(prefix string) *KeyBuilder {
	return &KeyBuilder{
		prefix: prefix,
		sep:    ":",
	}
}

// Build 构建缓存键
func (kb *KeyBuilder) Build(parts ...string) string {
	if len(parts) == 0 {
		return kb.prefix
	}
	return kb.prefix + kb.sep + strings.Join(parts, kb.sep)
}

// BuildID 构建带 ID 的缓存键
func (kb *KeyBuilder) BuildID(id interface{}) string {
	return fmt.Sprintf("%s%s%v", kb.prefix, kb.sep, id)
}

// 预定义的 KeyBuilder 实例
var (
	// Painting 画作详情缓存
	Painting = NewKeyBuilder("painting")

	// PaintingList 画作列表缓存（按查询参数区分）
	PaintingList = NewKeyBuilder("painting_list")

	// PaintingListVersion 画作列表版本号，写操作时递增使全部列表键失效
	PaintingListVersion = NewKeyBuilder("painting_list_version")

	// Exhibition 展览缓存
	Exhibition = NewKeyBuilder("exhibition")

	// ExhibitionList 展览列表缓存
	ExhibitionList = NewKeyBuilder("exhibition_list")

	// ExhibitionListVersion 展览列表版本号
	ExhibitionListVersion = NewKeyBuilder("exhibition_list_version")
)
