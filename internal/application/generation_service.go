package application

import (
	"context"
	"fmt"

	"sdrelay/internal/domain"
	"sdrelay/pkg/logger"
)

// GenerationService は、参照画像の読み込みから保存、チャンネルへの中継までを順に実行するサービスです
type GenerationService struct {
	loader    domain.ReferenceImageLoader
	synthesis domain.SynthesisClient
	store     domain.ImageStore
	relay     domain.Relay
}

// NewGenerationService は新しいGenerationServiceインスタンスを作成します
// relayはチャンネルを指定しない運用であればnilでも構いません
func NewGenerationService(loader domain.ReferenceImageLoader, synthesis domain.SynthesisClient, store domain.ImageStore, relay domain.Relay) *GenerationService {
	return &GenerationService{
		loader:    loader,
		synthesis: synthesis,
		store:     store,
		relay:     relay,
	}
}

// Generate は、リクエストに従って画像を1枚生成して保存し、チャンネルが指定されていれば中継します
// 中継に失敗した場合も保存済みの画像は削除せず、保存先を含む結果とエラーの両方を返します
func (s *GenerationService) Generate(ctx context.Context, request domain.GenerationRequest) (*domain.GenerationOutput, error) {
	log := logger.WithField("request_id", request.ID())

	// 参照画像がなければネットワークにアクセスする前に中断する
	encoded, err := s.loader.Load(request.ReferenceImagePath())
	if err != nil {
		return nil, err
	}

	log.Infof("スタイルタグ: %s", request.StyleTags().String())
	log.Infof("画像生成を開始: seed=%d, strength=%.2f", request.Seed(), request.DenoisingStrength())

	result, err := s.synthesis.Img2Img(ctx, domain.NewSynthesisInput(request, encoded))
	if err != nil {
		return nil, err
	}

	image, err := result.FirstImage()
	if err != nil {
		return nil, err
	}

	path, err := s.store.SaveEncoded(image, request.OutputIndex())
	if err != nil {
		return nil, err
	}

	log.Infof("画像を生成し、%s に保存しました", path)

	output := &domain.GenerationOutput{
		Path: path,
		Seed: request.Seed(),
		Info: result.Info,
	}

	if !request.HasChannel() {
		return output, nil
	}

	if s.relay == nil {
		return output, fmt.Errorf("%w: 中継方式が設定されていません", domain.ErrRelay)
	}

	log.Infof("チャンネルへ画像を送信中: %s", request.Channel())

	message := domain.NewRelayMessage(request.Channel(), request.Caption(), path)
	if err := s.relay.Send(ctx, message); err != nil {
		return output, err
	}

	log.Infof("%s へ画像を送信しました", request.Channel())
	return output, nil
}
