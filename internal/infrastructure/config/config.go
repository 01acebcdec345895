package config

import "time"

// 画像生成バックエンドの種類
const (
	BackendSDWebUI = "sdwebui"
	BackendGemini  = "gemini"
)

// 中継方式の種類
const (
	RelayModeCLI     = "cli"
	RelayModeHTTP    = "http"
	RelayModeDiscord = "discord"
)

// SynthesisConfig は、画像生成サービス関連の設定を定義します
type SynthesisConfig struct {
	Backend        string
	BaseURL        string
	RequestTimeout time.Duration // 0の場合はタイムアウトなし
}

// GeminiConfig は、Gemini APIを画像生成に使う場合の設定を定義します
type GeminiConfig struct {
	APIKey         string
	ImageModelName string
}

// StorageConfig は、入出力ファイルの配置を定義します
type StorageConfig struct {
	WorkspaceRoot      string
	ReferenceImagePath string
	OutputDir          string
}

// RelayConfig は、チャンネルへの中継に関する設定を定義します
type RelayConfig struct {
	Mode         string
	CLIPath      string
	GatewayURL   string
	GatewayToken string
}

// DiscordConfig は、Discord関連の設定を定義します
type DiscordConfig struct {
	BotToken string
}

// LogConfig は、ログ出力の設定を定義します
type LogConfig struct {
	Level  string
	Format string
}

// DefaultSynthesisConfig は、デフォルトの画像生成サービス設定を返します
func DefaultSynthesisConfig() *SynthesisConfig {
	return &SynthesisConfig{
		Backend: BackendSDWebUI,
		BaseURL: "http://127.0.0.1:7860",
	}
}

// DefaultRelayConfig は、デフォルトの中継設定を返します
func DefaultRelayConfig() *RelayConfig {
	return &RelayConfig{
		Mode:       RelayModeCLI,
		CLIPath:    "openclaw",
		GatewayURL: "http://localhost:18789",
	}
}
