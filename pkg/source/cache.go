package source

import (
	"time"

	"github.com/patrickmn/go-cache"
)

// NewMemoryCache は go-cache を使ったインメモリの ImageCacher を生成します。
// 期限切れアイテムの掃除は ttl の2倍の間隔で行われます。
func NewMemoryCache(ttl time.Duration) ImageCacher {
	return cache.New(ttl, 2*ttl)
}
