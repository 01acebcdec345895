package domain

import "context"

// ReferenceImageLoader は、参照画像を読み込んでbase64文字列として返すインターフェースです
type ReferenceImageLoader interface {
	// Load は、指定されたパスの画像を読み込みます。存在しない場合はErrReferenceImageNotFoundを返します
	Load(path string) (string, error)
}

// SynthesisClient は、画像生成サービスとの通信を行うクライアントのインターフェースです
type SynthesisClient interface {
	// Img2Img は、参照画像とプロンプトから画像を生成します
	Img2Img(ctx context.Context, input SynthesisInput) (*SynthesisResult, error)
}

// ImageStore は、生成された画像を保存するインターフェースです
type ImageStore interface {
	// SaveEncoded は、base64文字列をデコードして出力番号に対応するファイルへ書き込み、そのパスを返します
	SaveEncoded(encoded string, index int) (string, error)
}

// Relay は、生成した画像をチャンネルへ中継するインターフェースです
type Relay interface {
	Send(ctx context.Context, message RelayMessage) error
}
