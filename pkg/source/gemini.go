package source

import (
	"fmt"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"google.golang.org/genai"

	"github.com/shouni/stego-image-kit/pkg/domain"
	"github.com/shouni/stego-image-kit/pkg/imgutil"
)

// ExtractImage は Gemini のレスポンスから最初のインライン画像を取り出します。
// 最初の候補 (Candidate) のみを利用します。
func ExtractImage(resp *gemini.Response) (*domain.EncodedImage, error) {
	if resp == nil || resp.RawResponse == nil || len(resp.RawResponse.Candidates) == 0 {
		return nil, fmt.Errorf("Geminiからの有効な応答がありませんでした")
	}
	candidate := resp.RawResponse.Candidates[0]

	if candidate.Content != nil {
		for _, part := range candidate.Content.Parts {
			if part == nil || part.InlineData == nil || len(part.InlineData.Data) == 0 {
				continue
			}
			return &domain.EncodedImage{
				Data:     part.InlineData.Data,
				MimeType: part.InlineData.MIMEType,
			}, nil
		}
	}

	// 安全フィルター等によるブロックの確認
	if candidate.FinishReason != genai.FinishReasonUnspecified && candidate.FinishReason != genai.FinishReasonStop {
		return nil, fmt.Errorf("画像生成が異常終了しました (FinishReason: %s)", candidate.FinishReason)
	}
	return nil, fmt.Errorf("画像データが見つかりませんでした")
}

// FromGeminiResponse は Gemini が生成した画像をデコードし、保存可能な StegoImage にします。
func FromGeminiResponse(resp *gemini.Response) (*domain.StegoImage, error) {
	encoded, err := ExtractImage(resp)
	if err != nil {
		return nil, err
	}
	img, _, err := imgutil.DecodeImage(encoded.Data)
	if err != nil {
		return nil, fmt.Errorf("生成画像 (%s) のデコードに失敗しました: %w", encoded.MimeType, err)
	}
	return domain.NewStegoImage(img, "gemini:"+encoded.MimeType), nil
}
