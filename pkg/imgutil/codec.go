package imgutil

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	"image/png"
	"io"
	"net/http"
	"sync"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"
)

// DefaultCompressionLevel は保存時の既定の PNG 圧縮レベルです。
const DefaultCompressionLevel = png.DefaultCompression

// encoderBufferPool は png.Encoder の作業バッファを再利用するためのプールです。
type encoderBufferPool struct {
	pool sync.Pool
}

func (p *encoderBufferPool) Get() *png.EncoderBuffer {
	buf, _ := p.pool.Get().(*png.EncoderBuffer)
	return buf
}

func (p *encoderBufferPool) Put(buf *png.EncoderBuffer) {
	p.pool.Put(buf)
}

var sharedBufferPool = &encoderBufferPool{}

// EncodePNG は img を PNG として w に書き出します。
func EncodePNG(w io.Writer, img image.Image, level png.CompressionLevel) error {
	if img == nil {
		return fmt.Errorf("image is required")
	}
	enc := &png.Encoder{
		CompressionLevel: level,
		BufferPool:       sharedBufferPool,
	}
	return enc.Encode(w, img)
}

// DecodeImage は画像データ（PNG, JPEG, GIF, BMP, TIFF, WebP）をデコードし、形式名とともに返します。
func DecodeImage(data []byte) (image.Image, string, error) {
	if len(data) == 0 {
		return nil, "", fmt.Errorf("画像データが空です")
	}
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("画像のデコードに失敗しました: %w", err)
	}
	return img, format, nil
}

// ConvertToPNG は image.Decode が扱える任意の形式の画像データを PNG に変換します。
func ConvertToPNG(data []byte, level png.CompressionLevel) ([]byte, error) {
	img, _, err := DecodeImage(data)
	if err != nil {
		return nil, err
	}

	buf := new(bytes.Buffer)
	if err := EncodePNG(buf, img, level); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// DetectImageMIME はデータの MIME タイプを判定し、登録済みのデコーダで読める画像である場合のみ true を返します。
// http.DetectContentType は TIFF を判別できないため、image.DecodeConfig の形式名から決定します。
func DetectImageMIME(data []byte) (string, bool) {
	_, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return http.DetectContentType(data), false
	}
	return "image/" + format, true
}
