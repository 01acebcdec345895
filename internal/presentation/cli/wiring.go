package cli

import (
	"context"
	"fmt"

	"sdrelay/configs"
	"sdrelay/internal/application"
	"sdrelay/internal/domain"
	"sdrelay/internal/infrastructure/config"
	"sdrelay/internal/infrastructure/discord"
	"sdrelay/internal/infrastructure/gemini"
	"sdrelay/internal/infrastructure/relay"
	"sdrelay/internal/infrastructure/sdapi"
	"sdrelay/internal/infrastructure/storage"
)

// Generator は、生成処理を実行するサービスのインターフェースです
type Generator interface {
	Generate(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationOutput, error)
}

// BuildGenerator は、設定から各コンポーネントを組み立ててGenerationServiceを作成します
// relayModeが空の場合は中継を行わないサービスを作成します
func BuildGenerator(ctx context.Context, cfg *configs.Config, relayMode string) (Generator, error) {
	synthesis, err := newSynthesisClient(ctx, cfg)
	if err != nil {
		return nil, err
	}

	var r domain.Relay
	if relayMode != "" {
		r, err = newRelay(cfg, relayMode)
		if err != nil {
			return nil, err
		}
	}

	return application.NewGenerationService(
		storage.NewReferenceImageLoader(),
		synthesis,
		storage.NewImageStore(cfg.Storage.OutputDir),
		r,
	), nil
}

func newSynthesisClient(ctx context.Context, cfg *configs.Config) (domain.SynthesisClient, error) {
	switch cfg.Synthesis.Backend {
	case config.BackendSDWebUI:
		return sdapi.NewClient(&cfg.Synthesis), nil
	case config.BackendGemini:
		return gemini.NewSynthesisClient(ctx, &cfg.Gemini)
	default:
		return nil, fmt.Errorf("不明な画像生成バックエンドです: %s", cfg.Synthesis.Backend)
	}
}

func newRelay(cfg *configs.Config, mode string) (domain.Relay, error) {
	if err := cfg.ValidateRelayMode(mode); err != nil {
		return nil, err
	}

	switch mode {
	case config.RelayModeCLI:
		return relay.NewCLIRelay(cfg.Relay.CLIPath), nil
	case config.RelayModeHTTP:
		return relay.NewGatewayRelay(&cfg.Relay), nil
	case config.RelayModeDiscord:
		return discord.NewRelay(cfg.Discord.BotToken)
	default:
		return nil, fmt.Errorf("不明な中継方式です: %s", mode)
	}
}
