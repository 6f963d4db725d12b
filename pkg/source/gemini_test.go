package source

import (
	"image"
	"testing"

	"github.com/shouni/go-gemini-client/pkg/gemini"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/genai"
)

func responseWithParts(parts ...*genai.Part) *gemini.Response {
	return &gemini.Response{
		RawResponse: &genai.GenerateContentResponse{
			Candidates: []*genai.Candidate{{
				Content: &genai.Content{Parts: parts},
			}},
		},
	}
}

func TestFromGeminiResponse(t *testing.T) {
	t.Run("正常系: インライン画像をデコードできるのだ", func(t *testing.T) {
		resp := responseWithParts(
			&genai.Part{Text: "here is your image"},
			&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: pngBytes(t, 2, 2, red)}},
		)

		img, err := FromGeminiResponse(resp)

		require.NoError(t, err)
		assert.Equal(t, image.Rect(0, 0, 2, 2), img.Bounds())
		assert.Equal(t, "gemini:image/png", img.Label)
	})

	t.Run("異常系: レスポンスが空", func(t *testing.T) {
		_, err := FromGeminiResponse(nil)
		assert.Error(t, err)

		_, err = FromGeminiResponse(&gemini.Response{RawResponse: &genai.GenerateContentResponse{}})
		assert.Error(t, err)
	})

	t.Run("異常系: FinishReason が異常（SAFETY等）な場合", func(t *testing.T) {
		resp := &gemini.Response{
			RawResponse: &genai.GenerateContentResponse{
				Candidates: []*genai.Candidate{{FinishReason: genai.FinishReasonSafety}},
			},
		}

		_, err := FromGeminiResponse(resp)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "FinishReason")
	})

	t.Run("異常系: 画像パーツが無い", func(t *testing.T) {
		_, err := ExtractImage(responseWithParts(&genai.Part{Text: "no image"}))
		assert.Error(t, err)
	})

	t.Run("異常系: デコードできない画像データ", func(t *testing.T) {
		resp := responseWithParts(&genai.Part{InlineData: &genai.Blob{MIMEType: "image/png", Data: []byte("broken")}})

		_, err := FromGeminiResponse(resp)
		assert.Error(t, err)
	})
}
