package domain

import "errors"

// ドメイン固有のエラー型を定義
var (
	// ErrInvalidPrompt は、無効なプロンプトの場合のエラーです
	ErrInvalidPrompt = errors.New("無効なプロンプトです")

	// ErrInvalidStrength は、デノイズ強度が0〜1の範囲外の場合のエラーです
	ErrInvalidStrength = errors.New("デノイズ強度は0以上1以下である必要があります")

	// ErrInvalidOutputIndex は、出力番号が負の場合のエラーです
	ErrInvalidOutputIndex = errors.New("出力番号は0以上である必要があります")

	// ErrInvalidStyleTag は、スタイルタグを解釈できない場合のエラーです
	ErrInvalidStyleTag = errors.New("無効なスタイルタグです")

	// ErrTooManyStyleTags は、スタイルタグが多すぎる場合のエラーです
	ErrTooManyStyleTags = errors.New("スタイルタグが多すぎます")

	// ErrReferenceImageNotFound は、参照画像が存在しない場合のエラーです
	ErrReferenceImageNotFound = errors.New("参照画像が見つかりません")

	// ErrSynthesisRequest は、画像生成サービスへのリクエストが失敗した場合のエラーです
	ErrSynthesisRequest = errors.New("画像生成リクエストに失敗しました")

	// ErrEmptyResult は、画像生成サービスが画像を1枚も返さなかった場合のエラーです
	ErrEmptyResult = errors.New("画像生成結果に画像が含まれていません")

	// ErrRelay は、チャンネルへの中継に失敗した場合のエラーです
	ErrRelay = errors.New("チャンネルへの送信に失敗しました")
)
