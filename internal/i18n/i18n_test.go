package i18n

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	langs := c.Languages()
	assert.Contains(t, langs, "en")
	assert.Contains(t, langs, "ja")
}

func TestCatalog_Translate(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name string
		lang string
		key  string
		want string
	}{
		{"正常系: 英語", "en", "circle", "circle"},
		{"正常系: 日本語", "ja", "circle", "円"},
		{"正常系: 未対応言語は英語にフォールバック", "fr", "circle", "circle"},
		{"正常系: 未知のキーは可読化して返す", "en", "some_new_shape", "some new shape"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Translate(tt.lang, tt.key))
		})
	}
}

func TestCatalog_Prompt(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	tests := []struct {
		name     string
		lang     string
		typeName string
		want     string
	}{
		{
			name:     "正常系: 英語プロンプト",
			lang:     "en",
			typeName: "circle",
			want:     "Please click on a shape of type: circle",
		},
		{
			name:     "正常系: 日本語プロンプト",
			lang:     "ja",
			typeName: "cube",
			want:     "次の種類の図形をクリックしてください: 立方体",
		},
		{
			name:     "正常系: 未対応言語は英語で返す",
			lang:     "de",
			typeName: "star5",
			want:     "Please click on a shape of type: five-pointed star",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Prompt(tt.lang, tt.typeName))
		})
	}
}

func TestCatalog_AllShapeNamesTranslated(t *testing.T) {
	c, err := Load()
	require.NoError(t, err)

	families := []string{
		"square", "rectangle", "circle", "equilateral_triangle", "rhombus",
		"trapezoid", "hexagon", "star5", "cross",
		"cube", "sphere", "cylinder", "cone", "pyramid",
	}

	for _, lang := range []string{"en", "ja"} {
		for _, name := range families {
			got := c.Translate(lang, name)
			assert.NotEmpty(t, got)
			// フォールバックの機械変換ではなく明示的な翻訳がある
			if lang == "ja" {
				assert.NotEqual(t, name, got, "%s/%s", lang, name)
			}
		}
	}
}
