package sdapi

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"sdrelay/internal/domain"
	"sdrelay/internal/infrastructure/config"
	"sdrelay/pkg/logger"
)

// Client は、Stable Diffusion WebUI の sdapi と通信するクライアントです
type Client struct {
	httpClient *http.Client
	baseURL    string
}

// NewClient は新しいClientインスタンスを作成します
// RequestTimeoutが0の場合はタイムアウトを設定しません
func NewClient(synthesisConfig *config.SynthesisConfig) *Client {
	if synthesisConfig == nil {
		synthesisConfig = config.DefaultSynthesisConfig()
	}

	return &Client{
		httpClient: &http.Client{Timeout: synthesisConfig.RequestTimeout},
		baseURL:    strings.TrimRight(synthesisConfig.BaseURL, "/"),
	}
}

// BuildImg2ImgPayload は、入力値からimg2imgのリクエストボディを組み立てます
// 参照画像は初期画像とFaceID用のControlNet画像の両方に使用します
func BuildImg2ImgPayload(input domain.SynthesisInput) Img2ImgPayload {
	return Img2ImgPayload{
		InitImages:        []string{input.ReferenceImage},
		Prompt:            input.Prompt,
		BatchSize:         1,
		Steps:             DefaultSteps,
		DenoisingStrength: input.DenoisingStrength,
		CFGScale:          DefaultCFGScale,
		Width:             DefaultWidth,
		Height:            DefaultHeight,
		Seed:              input.Seed,
		RestoreFaces:      true,
		ModelCheckpoint:   DefaultModelCheckpoint,
		NegativePrompt:    DefaultNegativePrompt,
		AlwaysOnScripts: AlwaysOnScript{
			ControlNet: ControlNet{
				Args: []ControlNetUnit{
					{
						Enabled:      true,
						PixelPerfect: true,
						Module:       FaceIDModule,
						Model:        FaceIDModel,
						Weight:       1,
						Image:        input.ReferenceImage,
					},
				},
			},
		},
	}
}

// Img2Img は、img2img エンドポイントにリクエストを1回送信します
func (c *Client) Img2Img(ctx context.Context, input domain.SynthesisInput) (*domain.SynthesisResult, error) {
	payload := BuildImg2ImgPayload(input)

	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("リクエストのエンコードに失敗: %w", err)
	}

	endpoint := c.baseURL + Img2ImgPath
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	logger.Infof("Stable Diffusion APIにリクエストを送信中: %s", endpoint)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrSynthesisRequest, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("レスポンスの読み込みに失敗: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: %s", domain.ErrSynthesisRequest, string(respBody))
	}

	var result domain.SynthesisResult
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("レスポンスのデコードに失敗: %w", err)
	}

	logger.Debugf("Stable Diffusion APIから応答を取得: 画像数=%d", len(result.Images))
	return &result, nil
}
