package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// MaxStyleTags は、1リクエストに含められるスタイルタグの最大数です
const MaxStyleTags = 3

// DefaultStyleTagWeight は、重みが省略されたスタイルタグに使う値です
const DefaultStyleTagWeight = 1.0

// StyleTag は、プロンプトに埋め込むLoRAタグ（名前と重み）を表す値オブジェクトです
type StyleTag struct {
	Name   string
	Weight float64
}

// String は、`<lora:名前:重み>` 形式の文字列を返します
// 名前が空の場合は重みに関係なく空文字列を返します
func (t StyleTag) String() string {
	if t.Name == "" {
		return ""
	}
	return fmt.Sprintf("<lora:%s:%.1f>", t.Name, roundWeight(t.Weight))
}

// roundWeight は、小数第2位がちょうど5の重み（x.25, x.75）を0から遠い方へ丸めます
// それ以外はfmtの丸めに任せます
func roundWeight(weight float64) float64 {
	quarters := weight * 4
	if quarters == math.Trunc(quarters) && math.Mod(math.Abs(quarters), 2) == 1 {
		return math.Round(weight*10) / 10
	}
	return weight
}

// ParseStyleTag は、`名前:重み` 形式の文字列からStyleTagを作成します
// 名前にコロンが含まれる場合を考慮し、最後のコロンで分割します
func ParseStyleTag(value string) (StyleTag, error) {
	idx := strings.LastIndex(value, ":")
	if idx < 0 {
		return StyleTag{Name: value, Weight: DefaultStyleTagWeight}, nil
	}

	name := value[:idx]
	weight, err := strconv.ParseFloat(value[idx+1:], 64)
	if err != nil {
		return StyleTag{}, fmt.Errorf("%w: %q の重みを解釈できません", ErrInvalidStyleTag, value)
	}

	return StyleTag{Name: name, Weight: weight}, nil
}

// StyleTagSet は、入力順を保持したスタイルタグの集合です
type StyleTagSet struct {
	tags []StyleTag
}

// NewStyleTagSet は、最大3つまでのタグからStyleTagSetを作成します
// 重複や重みの範囲は検証しません
func NewStyleTagSet(tags ...StyleTag) (StyleTagSet, error) {
	if len(tags) > MaxStyleTags {
		return StyleTagSet{}, fmt.Errorf("%w: %d個指定されました (最大%d個)", ErrTooManyStyleTags, len(tags), MaxStyleTags)
	}

	copied := make([]StyleTag, len(tags))
	copy(copied, tags)
	return StyleTagSet{tags: copied}, nil
}

// Tags は、タグのコピーを返します
func (s StyleTagSet) Tags() []StyleTag {
	copied := make([]StyleTag, len(s.tags))
	copy(copied, s.tags)
	return copied
}

// String は、各タグを区切りなしで連結した文字列を返します
func (s StyleTagSet) String() string {
	var builder strings.Builder
	for _, tag := range s.tags {
		builder.WriteString(tag.String())
	}
	return builder.String()
}

// ComposeStyleTags は、3組の名前と重みからタグ文字列を組み立てます
func ComposeStyleTags(name1 string, weight1 float64, name2 string, weight2 float64, name3 string, weight3 float64) string {
	set := StyleTagSet{tags: []StyleTag{
		{Name: name1, Weight: weight1},
		{Name: name2, Weight: weight2},
		{Name: name3, Weight: weight3},
	}}
	return set.String()
}
