package source

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/shouni/go-remote-io/pkg/remoteio"

	"github.com/shouni/stego-image-kit/pkg/domain"
	"github.com/shouni/stego-image-kit/pkg/imgutil"
)

const cacheKeyImageData = "image_data:"

// Loader はローカルファイル、HTTP(S)、リモートストレージ (gs:// など) から画像を取得し、
// 保存処理に渡せるビットマップへ変換します。
type Loader struct {
	reader     remoteio.InputReader
	httpClient HTTPClient
	cache      ImageCacher
	expiration time.Duration
}

// NewLoader は依存関係を注入して Loader を初期化します。
// reader と httpClient は nil を許容し、その場合は該当するスキームの取得がエラーになります。
// cache も nil を許容します（キャッシュなし動作）。
func NewLoader(reader remoteio.InputReader, httpClient HTTPClient, cache ImageCacher, cacheTTL time.Duration) *Loader {
	return &Loader{
		reader:     reader,
		httpClient: httpClient,
		cache:      cache,
		expiration: cacheTTL,
	}
}

// Load は uri の画像を取得してデコードし、StegoImage として返します。
func (l *Loader) Load(ctx context.Context, uri string) (*domain.StegoImage, error) {
	encoded, err := l.Fetch(ctx, uri)
	if err != nil {
		return nil, err
	}

	img, format, err := imgutil.DecodeImage(encoded.Data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", uri, err)
	}

	slog.DebugContext(ctx, "画像を読み込みました", "uri", uri, "format", format, "bounds", img.Bounds().String())
	return domain.NewStegoImage(img, uri), nil
}

// Fetch は uri の画像データを取得します。取得結果は画像であることを確認してからキャッシュします。
func (l *Loader) Fetch(ctx context.Context, uri string) (*domain.EncodedImage, error) {
	if uri == "" {
		return nil, fmt.Errorf("uri is required")
	}

	if data, ok := l.cached(ctx, uri); ok {
		return l.toEncoded(uri, bytes.Clone(data))
	}

	data, err := l.fetchImageData(ctx, uri)
	if err != nil {
		return nil, err
	}

	encoded, err := l.toEncoded(uri, data)
	if err != nil {
		return nil, err
	}

	// 呼び出し元が Data を書き換えてもキャッシュが壊れないよう複製を保存する
	if l.cache != nil {
		l.cache.Set(cacheKeyImageData+uri, bytes.Clone(data), l.expiration)
	}
	return encoded, nil
}

func (l *Loader) cached(ctx context.Context, uri string) ([]byte, bool) {
	if l.cache == nil {
		return nil, false
	}
	val, found := l.cache.Get(cacheKeyImageData + uri)
	if !found {
		return nil, false
	}
	data, ok := val.([]byte)
	if !ok {
		slog.WarnContext(ctx, "キャッシュデータが不正な型です", "uri", uri, "type", fmt.Sprintf("%T", val))
		return nil, false
	}
	return data, true
}

func (l *Loader) toEncoded(uri string, data []byte) (*domain.EncodedImage, error) {
	mimeType, ok := imgutil.DetectImageMIME(data)
	if !ok {
		return nil, fmt.Errorf("画像ではないデータです (uri: %s, mime: %s)", uri, mimeType)
	}
	return &domain.EncodedImage{Data: data, MimeType: mimeType, SourceURI: uri}, nil
}

func (l *Loader) fetchImageData(ctx context.Context, uri string) ([]byte, error) {
	switch {
	case strings.HasPrefix(uri, "http://"), strings.HasPrefix(uri, "https://"):
		if l.httpClient == nil {
			return nil, fmt.Errorf("httpClient is required to fetch %s", uri)
		}
		if safe, err := IsSafeURL(uri); err != nil || !safe {
			return nil, fmt.Errorf("安全ではないURLが指定されました: %w", err)
		}
		data, err := l.httpClient.FetchBytes(ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("画像のダウンロードに失敗しました (uri: %s): %w", uri, err)
		}
		return data, nil

	case strings.Contains(uri, "://"):
		if l.reader == nil {
			return nil, fmt.Errorf("reader is required to fetch %s", uri)
		}
		rc, err := l.reader.Open(ctx, uri)
		if err != nil {
			return nil, fmt.Errorf("リモートファイルを開けませんでした (uri: %s): %w", uri, err)
		}
		defer rc.Close()
		data, err := io.ReadAll(rc)
		if err != nil {
			return nil, fmt.Errorf("リモートファイルの読み込みに失敗しました (uri: %s): %w", uri, err)
		}
		return data, nil

	default:
		data, err := os.ReadFile(uri)
		if err != nil {
			return nil, fmt.Errorf("ローカルファイルの読み込みに失敗しました: %w", err)
		}
		return data, nil
	}
}
