package source

import (
	"context"
	"time"

	"github.com/shouni/go-http-kit/pkg/httpkit"
)

// HTTPClient は、URLから画像データを取得するためのインターフェースです。
type HTTPClient interface {
	FetchBytes(ctx context.Context, url string) ([]byte, error)
}

// go-http-kit のクライアントをそのまま注入できる
var _ HTTPClient = httpkit.ClientInterface(nil)

// ImageCacher は、取得済みの画像データをキャッシュするためのインターフェースです。
type ImageCacher interface {
	// Get は、指定されたキーに紐づくアイテムを取得します。
	Get(key string) (any, bool)
	// Set は、指定されたキーと値、有効期限でアイテムを保存します。
	Set(key string, value any, d time.Duration)
}
