package domain

// SynthesisInput は、画像生成サービスに渡す入力値です
// 参照画像はbase64でエンコード済みの文字列です
type SynthesisInput struct {
	Prompt            string
	DenoisingStrength float64
	Seed              int64
	ReferenceImage    string
}

// NewSynthesisInput は、リクエストとエンコード済み参照画像からSynthesisInputを作成します
func NewSynthesisInput(request GenerationRequest, encodedReference string) SynthesisInput {
	return SynthesisInput{
		Prompt:            request.ComposedPrompt(),
		DenoisingStrength: request.DenoisingStrength(),
		Seed:              request.Seed(),
		ReferenceImage:    encodedReference,
	}
}

// SynthesisResult は、画像生成サービスからの応答です
type SynthesisResult struct {
	Images     []string               `json:"images"`
	Parameters map[string]interface{} `json:"parameters"`
	Info       string                 `json:"info"`
}

// FirstImage は、先頭の画像を返します
// 画像が1枚もない場合はErrEmptyResultを返します
func (r *SynthesisResult) FirstImage() (string, error) {
	if r == nil || len(r.Images) == 0 {
		return "", ErrEmptyResult
	}
	return r.Images[0], nil
}
