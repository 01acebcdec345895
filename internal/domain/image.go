package domain

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/google/uuid"
)

// DefaultDenoisingStrength は、デノイズ強度が指定されない場合の値です
const DefaultDenoisingStrength = 0.8

// MaxRandomSeed は、ランダムに決めるシードの上限（この値を含まない）です
const MaxRandomSeed = 10000000

// GenerationParams は、GenerationRequestを組み立てるための入力値です
type GenerationParams struct {
	Prompt             string
	StyleTags          StyleTagSet
	DenoisingStrength  float64
	Seed               *int64
	ReferenceImagePath string
	OutputIndex        int
	Channel            string
}

// GenerationRequest は、1回の実行で行う画像生成リクエストを表すドメインオブジェクトです
// 作成後は変更できません
type GenerationRequest struct {
	id                 string
	prompt             string
	styleTags          StyleTagSet
	denoisingStrength  float64
	seed               int64
	referenceImagePath string
	outputIndex        int
	channel            string
}

// NewGenerationRequest は、入力値を検証してGenerationRequestを作成します
// シードが指定されない場合はランダムに決定します
func NewGenerationRequest(params GenerationParams) (GenerationRequest, error) {
	if strings.TrimSpace(params.Prompt) == "" {
		return GenerationRequest{}, fmt.Errorf("%w: プロンプトが空です", ErrInvalidPrompt)
	}

	if math.IsNaN(params.DenoisingStrength) || params.DenoisingStrength < 0 || params.DenoisingStrength > 1 {
		return GenerationRequest{}, fmt.Errorf("%w: %v", ErrInvalidStrength, params.DenoisingStrength)
	}

	if params.OutputIndex < 0 {
		return GenerationRequest{}, fmt.Errorf("%w: %d", ErrInvalidOutputIndex, params.OutputIndex)
	}

	var seed int64
	if params.Seed != nil {
		seed = *params.Seed
	} else {
		seed = rand.Int64N(MaxRandomSeed)
	}

	return GenerationRequest{
		id:                 uuid.NewString(),
		prompt:             params.Prompt,
		styleTags:          params.StyleTags,
		denoisingStrength:  params.DenoisingStrength,
		seed:               seed,
		referenceImagePath: params.ReferenceImagePath,
		outputIndex:        params.OutputIndex,
		channel:            params.Channel,
	}, nil
}

func (r GenerationRequest) ID() string                 { return r.id }
func (r GenerationRequest) Prompt() string             { return r.prompt }
func (r GenerationRequest) StyleTags() StyleTagSet     { return r.styleTags }
func (r GenerationRequest) DenoisingStrength() float64 { return r.denoisingStrength }
func (r GenerationRequest) Seed() int64                { return r.seed }
func (r GenerationRequest) ReferenceImagePath() string { return r.referenceImagePath }
func (r GenerationRequest) OutputIndex() int           { return r.outputIndex }
func (r GenerationRequest) Channel() string            { return r.channel }

// HasChannel は、送信先チャンネルが指定されているかを判定します
func (r GenerationRequest) HasChannel() bool {
	return r.channel != ""
}

// ComposedPrompt は、プロンプト本文にスタイルタグを連結した文字列を返します
func (r GenerationRequest) ComposedPrompt() string {
	return r.prompt + r.styleTags.String()
}

// Caption は、チャンネルへ送信する際の本文を返します
func (r GenerationRequest) Caption() string {
	return "Generated image: " + r.prompt
}

// GenerationOutput は、生成処理の結果を表します
type GenerationOutput struct {
	Path string
	Seed int64
	Info string
}
