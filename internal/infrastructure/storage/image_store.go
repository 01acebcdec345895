package storage

import (
	"encoding/base64"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
)

// ImageStore は、生成画像を出力ディレクトリへ保存します
// 書き込みはアトミックではなく、途中で失敗した場合は不完全なファイルが残ります
type ImageStore struct {
	outputDir string
}

// NewImageStore は新しいImageStoreインスタンスを作成します
func NewImageStore(outputDir string) *ImageStore {
	return &ImageStore{outputDir: outputDir}
}

// PathFor は、出力番号に対応するファイルパスを返します
func (s *ImageStore) PathFor(index int) string {
	return filepath.Join(s.outputDir, strconv.Itoa(index)+".png")
}

// SaveEncoded は、base64文字列をデコードして `{出力ディレクトリ}/{番号}.png` に書き込みます
func (s *ImageStore) SaveEncoded(encoded string, index int) (string, error) {
	path := s.PathFor(index)
	if err := SaveEncodedImage(encoded, path); err != nil {
		return "", err
	}
	return path, nil
}

// SaveEncodedImage は、base64文字列をデコードして指定パスに書き込みます
// 親ディレクトリが存在しない場合は作成します
func SaveEncodedImage(encoded string, outputPath string) error {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return fmt.Errorf("画像データのデコードに失敗: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(outputPath), 0755); err != nil {
		return fmt.Errorf("出力ディレクトリの作成に失敗: %w", err)
	}

	if err := os.WriteFile(outputPath, data, 0644); err != nil {
		return fmt.Errorf("画像の書き込みに失敗: %w", err)
	}

	return nil
}
