package domain

import "image"

// BitmapSource はビットマップを取り出せることだけを表すケイパビリティです。
// 保存処理はこのインターフェース越しに画像を読み取り専用で借用し、所有権は持ちません。
type BitmapSource interface {
	Image() image.Image
}

// StegoImage はメッセージを埋め込むキャリア画像です。
// 埋め込みの方式には関与せず、保持しているビットマップを返すだけです。
type StegoImage struct {
	Label  string // ログ出力用の識別子（元のファイル名やURIなど）
	bitmap image.Image
}

// NewStegoImage は既存のビットマップから StegoImage を生成します。
func NewStegoImage(img image.Image, label string) *StegoImage {
	return &StegoImage{Label: label, bitmap: img}
}

// Image は保持しているビットマップを返します。nil レシーバでは nil を返します。
func (s *StegoImage) Image() image.Image {
	if s == nil {
		return nil
	}
	return s.bitmap
}

// Bounds はビットマップの範囲を返します。画像が無い場合はゼロ値です。
func (s *StegoImage) Bounds() image.Rectangle {
	img := s.Image()
	if img == nil {
		return image.Rectangle{}
	}
	return img.Bounds()
}

// EncodedImage は取得・生成された直後のエンコード済み画像データです。
type EncodedImage struct {
	Data      []byte
	MimeType  string
	SourceURI string
}
