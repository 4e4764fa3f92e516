package shape

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseHex(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want color.RGBA
	}{
		{"正常系: 赤", "#FF0000", color.RGBA{R: 255, A: 255}},
		{"正常系: 小文字", "#00bfff", color.RGBA{G: 191, B: 255, A: 255}},
		{"正常系: プレフィックスなし", "008000", color.RGBA{G: 128, A: 255}},
		{"異常系: 不正な文字列はグレーにフォールバック", "not-a-color", color.RGBA{R: 128, G: 128, B: 128, A: 255}},
		{"異常系: 空文字列", "", color.RGBA{R: 128, G: 128, B: 128, A: 255}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseHex(tt.in))
		})
	}
}

func TestHexString_RoundTrip(t *testing.T) {
	for _, hex := range Palette {
		assert.Equal(t, hex, HexString(ParseHex(hex)))
	}
}

func TestAdjustBrightness(t *testing.T) {
	red := color.RGBA{R: 255, A: 255}

	darker := AdjustBrightness(red, 0.7)
	_, _, l0 := rgbToHSL(red)
	_, _, l1 := rgbToHSL(darker)
	assert.Less(t, l1, l0)

	brighter := AdjustBrightness(red, 1.45)
	_, _, l2 := rgbToHSL(brighter)
	assert.Greater(t, l2, l0)
}

func TestAdjustBrightness_Clamps(t *testing.T) {
	// 暗い色を暗くしても真っ黒にはならない
	dark := color.RGBA{R: 10, G: 10, B: 10, A: 255}
	out := AdjustBrightness(dark, 0.1)
	assert.NotEqual(t, color.RGBA{A: 255}, out)

	// 明るい色を明るくしても真っ白にはならない
	light := color.RGBA{R: 250, G: 250, B: 250, A: 255}
	out = AdjustBrightness(light, 2.0)
	assert.NotEqual(t, color.RGBA{R: 255, G: 255, B: 255, A: 255}, out)
}

func TestOutlineFor(t *testing.T) {
	// 明るい塗りには暗い輪郭
	pink := ParseHex("#FFC0CB")
	_, _, fillL := rgbToHSL(pink)
	_, _, outL := rgbToHSL(OutlineFor(pink, 0.4))
	assert.Less(t, outL, fillL)

	// 暗い塗りには明るい輪郭
	navy := color.RGBA{B: 80, A: 255}
	_, _, fillL = rgbToHSL(navy)
	_, _, outL = rgbToHSL(OutlineFor(navy, 0.4))
	assert.Greater(t, outL, fillL)
}

func TestEdgeColorFor_NearGrey(t *testing.T) {
	// ほぼ白には固定のダークグレー
	white := color.RGBA{R: 250, G: 250, B: 250, A: 255}
	assert.Equal(t, color.RGBA{R: 80, G: 80, B: 80, A: 255}, EdgeColorFor(white))

	// ほぼ黒には固定のライトグレー
	black := color.RGBA{R: 5, G: 5, B: 5, A: 255}
	assert.Equal(t, color.RGBA{R: 170, G: 170, B: 170, A: 255}, EdgeColorFor(black))
}

func TestPalette(t *testing.T) {
	assert.Len(t, Palette, 20)

	seen := make(map[string]bool)
	for _, hex := range Palette {
		assert.False(t, seen[hex], "パレットに重複色: %s", hex)
		seen[hex] = true
	}
}

func TestBackgrounds_AreLight(t *testing.T) {
	assert.Len(t, Backgrounds, 11)

	for _, hex := range Backgrounds {
		_, _, l := rgbToHSL(ParseHex(hex))
		assert.Greater(t, l, 0.85, "背景色は明るい: %s", hex)
	}
}
