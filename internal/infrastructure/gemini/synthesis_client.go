package gemini

import (
	"context"
	"encoding/base64"
	"fmt"
	"math"
	"net/http"
	"strings"

	"sdrelay/internal/domain"
	"sdrelay/internal/infrastructure/config"
	"sdrelay/pkg/logger"

	"google.golang.org/genai"
)

// contentGenerator は、genai.Models のうち画像生成で使うメソッドだけを抜き出したインターフェースです
type contentGenerator interface {
	GenerateContent(ctx context.Context, model string, contents []*genai.Content, config *genai.GenerateContentConfig) (*genai.GenerateContentResponse, error)
}

// SynthesisClient は、Gemini の画像モデルで img2img を行うクライアントです
type SynthesisClient struct {
	models contentGenerator
	config *config.GeminiConfig
}

// NewSynthesisClient は新しいSynthesisClientインスタンスを作成します
func NewSynthesisClient(ctx context.Context, geminiConfig *config.GeminiConfig) (*SynthesisClient, error) {
	if geminiConfig == nil || geminiConfig.APIKey == "" {
		return nil, fmt.Errorf("Gemini APIキーが設定されていません")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  geminiConfig.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("Gemini APIクライアントの作成に失敗: %w", err)
	}

	return &SynthesisClient{
		models: client.Models,
		config: geminiConfig,
	}, nil
}

// Img2Img は、プロンプトと参照画像を Gemini に送り、生成された画像を返します
// Gemini APIのシードは32bit整数のため、範囲外のシードはAPIを呼ぶ前に拒否します
func (c *SynthesisClient) Img2Img(ctx context.Context, input domain.SynthesisInput) (*domain.SynthesisResult, error) {
	if input.Seed < math.MinInt32 || input.Seed > math.MaxInt32 {
		return nil, fmt.Errorf("%w: Geminiのシードは32bit整数の範囲である必要があります: %d", domain.ErrSynthesisRequest, input.Seed)
	}

	reference, err := base64.StdEncoding.DecodeString(input.ReferenceImage)
	if err != nil {
		return nil, fmt.Errorf("参照画像のデコードに失敗: %w", err)
	}

	contents := []*genai.Content{
		genai.NewContentFromParts([]*genai.Part{
			genai.NewPartFromText(input.Prompt),
			genai.NewPartFromBytes(reference, http.DetectContentType(reference)),
		}, genai.RoleUser),
	}

	logger.Infof("Gemini APIに画像生成をリクエスト中: model=%s", c.config.ImageModelName)

	resp, err := c.models.GenerateContent(ctx, c.config.ImageModelName, contents, c.createImageConfig(input.Seed))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisRequest, err)
	}

	return processImageResponse(resp, c.config.ImageModelName)
}

// createImageConfig は、画像生成設定を作成します
func (c *SynthesisClient) createImageConfig(seed int64) *genai.GenerateContentConfig {
	s := int32(seed)
	return &genai.GenerateContentConfig{
		ResponseModalities: []string{"TEXT", "IMAGE"},
		Seed:               &s,
		SafetySettings: []*genai.SafetySetting{
			{Category: genai.HarmCategoryHarassment, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryHateSpeech, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategorySexuallyExplicit, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
			{Category: genai.HarmCategoryDangerousContent, Threshold: genai.HarmBlockThresholdBlockMediumAndAbove},
		},
	}
}

// processImageResponse は、画像生成レスポンスから画像部分を取り出します
// 画像はsdapiの応答と同じくbase64文字列として返します
func processImageResponse(resp *genai.GenerateContentResponse, modelName string) (*domain.SynthesisResult, error) {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil, fmt.Errorf("%w: Gemini APIから有効な応答が得られませんでした", domain.ErrSynthesisRequest)
	}

	candidate := resp.Candidates[0]

	if candidate.FinishReason == genai.FinishReasonSafety {
		return nil, fmt.Errorf("%w: 安全フィルターにより生成がブロックされました: %s", domain.ErrSynthesisRequest, formatSafetyRatings(candidate.SafetyRatings))
	}

	if candidate.Content == nil {
		return nil, fmt.Errorf("%w: 応答にContentが含まれていません。FinishReason: %s", domain.ErrSynthesisRequest, candidate.FinishReason)
	}

	var images []string
	var texts []string
	for _, part := range candidate.Content.Parts {
		if part == nil {
			continue
		}
		if part.InlineData != nil && strings.HasPrefix(part.InlineData.MIMEType, "image/") {
			images = append(images, base64.StdEncoding.EncodeToString(part.InlineData.Data))
			continue
		}
		if part.Text != "" {
			texts = append(texts, part.Text)
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("%w: 画像データが取得できませんでした: %s", domain.ErrSynthesisRequest, strings.Join(texts, " "))
	}

	logger.Debugf("Gemini APIから画像を生成: %d枚", len(images))

	return &domain.SynthesisResult{
		Images: images,
		Parameters: map[string]interface{}{
			"model":         modelName,
			"finish_reason": string(candidate.FinishReason),
		},
		Info: strings.Join(texts, "\n"),
	}, nil
}

// formatSafetyRatings は、安全性評価を読みやすい文字列に整形します
func formatSafetyRatings(ratings []*genai.SafetyRating) string {
	if len(ratings) == 0 {
		return "詳細なし"
	}

	details := make([]string, 0, len(ratings))
	for _, rating := range ratings {
		if rating == nil {
			continue
		}
		details = append(details, fmt.Sprintf("%s=%s", rating.Category, rating.Probability))
	}
	return strings.Join(details, ", ")
}
