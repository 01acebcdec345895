package relay

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

// GatewayRelay は、OpenClaw ゲートウェイのHTTP APIへ直接メッセージを送信するRelayです
type GatewayRelay struct {
	httpClient *http.Client
	baseURL    string
	token      string
}

// NewGatewayRelay は新しいGatewayRelayインスタンスを作成します
// URLとトークンは環境変数ではなく設定から受け取ります
func NewGatewayRelay(relayConfig *config.RelayConfig) *GatewayRelay {
	if relayConfig == nil {
		relayConfig = config.DefaultRelayConfig()
	}

	return &GatewayRelay{
		httpClient: &http.Client{},
		baseURL:    strings.TrimRight(relayConfig.GatewayURL, "/"),
		token:      relayConfig.GatewayToken,
	}
}

// Send は、`{ゲートウェイURL}/message` にメッセージをPOSTします
func (r *GatewayRelay) Send(ctx context.Context, message domain.RelayMessage) error {
	body, err := json.Marshal(message)
	if err != nil {
		return fmt.Errorf("メッセージのエンコードに失敗: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, r.baseURL+"/message", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("リクエストの作成に失敗: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if r.token != "" {
		req.Header.Set("Authorization", "Bearer "+r.token)
	}

	logger.Debugf("OpenClawゲートウェイへ送信中: %s", req.URL.String())

	resp, err := r.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrRelay, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		respBody, err := io.ReadAll(resp.Body)
		if err != nil {
			return fmt.Errorf("%w: status %d, レスポンスの読み込みに失敗: %v", domain.ErrRelay, resp.StatusCode, err)
		}
		return fmt.Errorf("%w: %s", domain.ErrRelay, string(respBody))
	}

	return nil
}
