package cli

import (
	"context"
	"testing"

	"sdrelay/configs"
	"sdrelay/internal/infrastructure/config"
)

func baseConfig() *configs.Config {
	return &configs.Config{
		Synthesis: config.SynthesisConfig{Backend: config.BackendSDWebUI, BaseURL: "http://127.0.0.1:7860"},
		Storage:   config.StorageConfig{ReferenceImagePath: "assets/clawra.png", OutputDir: "FramesNew"},
		Relay:     *config.DefaultRelayConfig(),
		Log:       config.LogConfig{Level: "info", Format: "text"},
	}
}

func TestBuildGenerator(t *testing.T) {
	tests := []struct {
		name      string
		modify    func(*configs.Config)
		relayMode string
		expectErr bool
	}{
		{
			name:      "中継なし",
			modify:    func(c *configs.Config) {},
			relayMode: "",
		},
		{
			name:      "CLI経由の中継",
			modify:    func(c *configs.Config) {},
			relayMode: config.RelayModeCLI,
		},
		{
			name:      "ゲートウェイ経由の中継",
			modify:    func(c *configs.Config) {},
			relayMode: config.RelayModeHTTP,
		},
		{
			name:      "Discordへの直接送信",
			modify:    func(c *configs.Config) { c.Discord.BotToken = "token" },
			relayMode: config.RelayModeDiscord,
		},
		{
			name:      "Discordトークンなし",
			modify:    func(c *configs.Config) {},
			relayMode: config.RelayModeDiscord,
			expectErr: true,
		},
		{
			name:      "不明な中継方式",
			modify:    func(c *configs.Config) {},
			relayMode: "smtp",
			expectErr: true,
		},
		{
			name:      "不明なバックエンド",
			modify:    func(c *configs.Config) { c.Synthesis.Backend = "dalle" },
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := baseConfig()
			tt.modify(cfg)

			generator, err := BuildGenerator(context.Background(), cfg, tt.relayMode)

			if tt.expectErr {
				if err == nil {
					t.Error("エラーが期待されましたが、nilが返されました")
				}
				return
			}
			if err != nil {
				t.Fatalf("予期しないエラー: %v", err)
			}
			if generator == nil {
				t.Error("Generatorがnilです")
			}
		})
	}
}
