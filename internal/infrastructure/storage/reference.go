package storage

import (
	"encoding/base64"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"sdrelay/internal/domain"
)

// ReferenceImageLoader は、ローカルの参照画像を読み込むローダーです
type ReferenceImageLoader struct{}

// NewReferenceImageLoader は新しいReferenceImageLoaderインスタンスを作成します
func NewReferenceImageLoader() *ReferenceImageLoader {
	return &ReferenceImageLoader{}
}

// Load は、画像ファイルを読み込みbase64文字列にエンコードして返します
func (l *ReferenceImageLoader) Load(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%w: %s", domain.ErrReferenceImageNotFound, path)
		}
		return "", fmt.Errorf("参照画像の読み込みに失敗: %w", err)
	}

	return EncodeImage(data), nil
}

// EncodeImage は、画像データを標準のbase64文字列にエンコードします
func EncodeImage(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}
