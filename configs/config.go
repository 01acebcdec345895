package configs

import (
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"sdrelay/internal/infrastructure/config"

	"github.com/joho/godotenv"
)

// Config は、アプリケーション全体の設定を定義します
type Config struct {
	Synthesis config.SynthesisConfig
	Gemini    config.GeminiConfig
	Storage   config.StorageConfig
	Relay     config.RelayConfig
	Discord   config.DiscordConfig
	Log       config.LogConfig
}

// LoadConfig は、.envファイルと環境変数から設定を読み込みます
// envFileが空の場合はカレントディレクトリの.envを読み込み、存在しなければ無視します
func LoadConfig(envFile string) (*Config, error) {
	if err := loadEnvFile(envFile); err != nil {
		return nil, err
	}

	synthesisDefaults := config.DefaultSynthesisConfig()
	relayDefaults := config.DefaultRelayConfig()

	workspaceRoot := getEnvOrDefault("WORKSPACE_ROOT", defaultWorkspaceRoot())

	cfg := &Config{
		Synthesis: config.SynthesisConfig{
			Backend:        strings.ToLower(getEnvOrDefault("SYNTHESIS_BACKEND", synthesisDefaults.Backend)),
			BaseURL:        strings.TrimRight(getEnvOrDefault("SD_API_URL", synthesisDefaults.BaseURL), "/"),
			RequestTimeout: getEnvAsDurationOrDefault("SD_REQUEST_TIMEOUT", 0),
		},
		Gemini: config.GeminiConfig{
			APIKey:         getEnvOrDefault("GEMINI_API_KEY", ""),
			ImageModelName: getEnvOrDefault("GEMINI_IMAGE_MODEL", "gemini-2.5-flash-image"),
		},
		Storage: config.StorageConfig{
			WorkspaceRoot:      workspaceRoot,
			ReferenceImagePath: getEnvOrDefault("REFERENCE_IMAGE", filepath.Join(workspaceRoot, "assets", "clawra.png")),
			OutputDir:          getEnvOrDefault("OUTPUT_DIR", "FramesNew"),
		},
		Relay: config.RelayConfig{
			Mode:         strings.ToLower(getEnvOrDefault("RELAY_MODE", relayDefaults.Mode)),
			CLIPath:      getEnvOrDefault("OPENCLAW_CLI", relayDefaults.CLIPath),
			GatewayURL:   strings.TrimRight(getEnvOrDefault("OPENCLAW_GATEWAY_URL", relayDefaults.GatewayURL), "/"),
			GatewayToken: getEnvOrDefault("OPENCLAW_GATEWAY_TOKEN", ""),
		},
		Discord: config.DiscordConfig{
			BotToken: getEnvOrDefault("DISCORD_BOT_TOKEN", ""),
		},
		Log: config.LogConfig{
			Level:  getEnvOrDefault("LOG_LEVEL", "info"),
			Format: getEnvOrDefault("LOG_FORMAT", "text"),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate は、設定の妥当性を検証します
func (c *Config) Validate() error {
	switch c.Synthesis.Backend {
	case config.BackendSDWebUI:
		if err := validateURL("SD_API_URL", c.Synthesis.BaseURL); err != nil {
			return err
		}
	case config.BackendGemini:
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("SYNTHESIS_BACKEND=gemini の場合は GEMINI_API_KEY が必要です")
		}
		if c.Gemini.ImageModelName == "" {
			return fmt.Errorf("GEMINI_IMAGE_MODEL が設定されていません")
		}
	default:
		return fmt.Errorf("SYNTHESIS_BACKEND は %s または %s である必要があります: %s", config.BackendSDWebUI, config.BackendGemini, c.Synthesis.Backend)
	}

	if c.Synthesis.RequestTimeout < 0 {
		return fmt.Errorf("SD_REQUEST_TIMEOUT は0以上である必要があります")
	}

	if c.Storage.ReferenceImagePath == "" {
		return fmt.Errorf("REFERENCE_IMAGE が設定されていません")
	}

	if c.Storage.OutputDir == "" {
		return fmt.Errorf("OUTPUT_DIR が設定されていません")
	}

	if err := c.ValidateRelayMode(c.Relay.Mode); err != nil {
		return err
	}

	return nil
}

// ValidateRelayMode は、指定された中継方式に必要な設定が揃っているかを検証します
// コマンドラインで中継方式を上書きした場合にも使用します
func (c *Config) ValidateRelayMode(mode string) error {
	switch mode {
	case config.RelayModeCLI:
		if c.Relay.CLIPath == "" {
			return fmt.Errorf("OPENCLAW_CLI が設定されていません")
		}
	case config.RelayModeHTTP:
		if err := validateURL("OPENCLAW_GATEWAY_URL", c.Relay.GatewayURL); err != nil {
			return err
		}
	case config.RelayModeDiscord:
		if c.Discord.BotToken == "" {
			return fmt.Errorf("RELAY_MODE=discord の場合は DISCORD_BOT_TOKEN が必要です")
		}
	default:
		return fmt.Errorf("RELAY_MODE は cli, http, discord のいずれかである必要があります: %s", mode)
	}
	return nil
}

// loadEnvFile は、.envファイルを読み込みます
func loadEnvFile(envFile string) error {
	if envFile != "" {
		if err := godotenv.Load(envFile); err != nil {
			return fmt.Errorf(".envファイルの読み込みに失敗しました: %w", err)
		}
		return nil
	}

	// デフォルトの.envは存在しなくてもエラーにしない
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf(".envファイルの読み込みに失敗しました: %w", err)
	}
	return nil
}

// defaultWorkspaceRoot は、実行ファイルのあるディレクトリの親を返します
func defaultWorkspaceRoot() string {
	exe, err := os.Executable()
	if err != nil {
		return "."
	}
	return filepath.Join(filepath.Dir(exe), "..")
}

// validateURL は、http(s)のURLとして解釈できるかを検証します
func validateURL(key, raw string) error {
	if raw == "" {
		return fmt.Errorf("%s が設定されていません", key)
	}
	parsed, err := url.Parse(raw)
	if err != nil || (parsed.Scheme != "http" && parsed.Scheme != "https") || parsed.Host == "" {
		return fmt.Errorf("%s は http(s) のURLである必要があります: %s", key, raw)
	}
	return nil
}

// getEnvOrDefault は、環境変数を取得し、存在しない場合はデフォルト値を返します
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvAsDurationOrDefault は、環境変数を時間として取得し、存在しない場合はデフォルト値を返します
func getEnvAsDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

