package domain

import (
	"errors"
	"math"
	"testing"
)

func int64Ptr(v int64) *int64 { return &v }

func TestNewGenerationRequest(t *testing.T) {
	tags, _ := NewStyleTagSet(StyleTag{Name: "detail", Weight: 0.6})

	request, err := NewGenerationRequest(GenerationParams{
		Prompt:             "red dress",
		StyleTags:          tags,
		DenoisingStrength:  0.8,
		Seed:               int64Ptr(12345),
		ReferenceImagePath: "/tmp/ref.png",
		OutputIndex:        2,
		Channel:            "general",
	})
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if request.ID() == "" {
		t.Error("IDが設定されていません")
	}
	if request.Seed() != 12345 {
		t.Errorf("期待されるSeed: 12345, 実際: %d", request.Seed())
	}
	if request.ComposedPrompt() != "red dress<lora:detail:0.6>" {
		t.Errorf("合成プロンプトが不正です: %q", request.ComposedPrompt())
	}
	if request.Caption() != "Generated image: red dress" {
		t.Errorf("キャプションが不正です: %q", request.Caption())
	}
	if !request.HasChannel() {
		t.Error("チャンネルが指定されているはずです")
	}
	if request.OutputIndex() != 2 {
		t.Errorf("期待されるOutputIndex: 2, 実際: %d", request.OutputIndex())
	}
}

func TestNewGenerationRequest_RandomSeed(t *testing.T) {
	for i := 0; i < 20; i++ {
		request, err := NewGenerationRequest(GenerationParams{Prompt: "cat", DenoisingStrength: 0.5})
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if request.Seed() < 0 || request.Seed() >= MaxRandomSeed {
			t.Errorf("シードが範囲外です: %d", request.Seed())
		}
		if request.HasChannel() {
			t.Error("チャンネルは指定されていません")
		}
	}
}

func TestNewGenerationRequest_Validation(t *testing.T) {
	tests := []struct {
		name    string
		params  GenerationParams
		wantErr error
	}{
		{"空のプロンプト", GenerationParams{Prompt: "  ", DenoisingStrength: 0.5}, ErrInvalidPrompt},
		{"強度が負", GenerationParams{Prompt: "cat", DenoisingStrength: -0.1}, ErrInvalidStrength},
		{"強度が1超", GenerationParams{Prompt: "cat", DenoisingStrength: 1.1}, ErrInvalidStrength},
		{"強度がNaN", GenerationParams{Prompt: "cat", DenoisingStrength: math.NaN()}, ErrInvalidStrength},
		{"出力番号が負", GenerationParams{Prompt: "cat", DenoisingStrength: 0.5, OutputIndex: -1}, ErrInvalidOutputIndex},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewGenerationRequest(tt.params)
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("期待されるエラー: %v, 実際: %v", tt.wantErr, err)
			}
		})
	}
}

func TestSynthesisResult_FirstImage(t *testing.T) {
	result := &SynthesisResult{Images: []string{"first", "second"}}
	image, err := result.FirstImage()
	if err != nil || image != "first" {
		t.Errorf("先頭の画像が返されるべきです: %q, %v", image, err)
	}

	empty := &SynthesisResult{}
	if _, err := empty.FirstImage(); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("ErrEmptyResultが期待されましたが、実際: %v", err)
	}

	var nilResult *SynthesisResult
	if _, err := nilResult.FirstImage(); !errors.Is(err, ErrEmptyResult) {
		t.Errorf("nilの場合もErrEmptyResultが期待されましたが、実際: %v", err)
	}
}

func TestNewRelayMessage(t *testing.T) {
	message := NewRelayMessage("general", "Generated image: cat", "FramesNew/0.png")
	if message.Action != RelayActionSend {
		t.Errorf("期待されるAction: send, 実際: %s", message.Action)
	}
	if !message.HasMedia() {
		t.Error("メディアが指定されているはずです")
	}

	if NewRelayMessage("general", "hello", "").HasMedia() {
		t.Error("メディアは指定されていません")
	}
}
