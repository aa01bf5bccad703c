package render

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/edgard/morningbot/internal/config"
)

var background = color.RGBA{R: 40, G: 60, B: 90, A: 255}

func measureBasic(s string) fixed.Int26_6 {
	return font.MeasureString(basicfont.Face7x13, s)
}

func writeBackground(t *testing.T, w, h int, encode func(io.Writer, image.Image) error, name string) string {
	t.Helper()

	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, background)
		}
	}

	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))

	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
	return path
}

func encodeJPEG(w io.Writer, img image.Image) error {
	return jpeg.Encode(w, img, &jpeg.Options{Quality: 95})
}

func newComposer(t *testing.T, backgroundPath string, fonts ...string) *Composer {
	t.Helper()

	return NewComposer(config.ImageConfig{
		Enabled:        true,
		BackgroundPath: backgroundPath,
		FontPaths:      fonts,
		Quality:        90,
	}, slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestWrap(t *testing.T) {
	t.Parallel()

	// Each basicfont rune advances 7px, so "a b" is 21px wide.
	tests := []struct {
		name     string
		text     string
		maxWidth int
		want     []string
	}{
		{name: "one word per line", text: "a b c d", maxWidth: 20, want: []string{"a", "b", "c", "d"}},
		{name: "single line", text: "a b c d", maxWidth: 100, want: []string{"a b c d"}},
		{name: "exact fit", text: "a b c d", maxWidth: 21, want: []string{"a b", "c d"}},
		{name: "collapses whitespace", text: "  a \n b\t", maxWidth: 100, want: []string{"a b"}},
		{name: "empty", text: "   ", maxWidth: 100, want: nil},
		{name: "long word broken", text: "abcdefgh", maxWidth: 28, want: []string{"abcd", "efgh"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, Wrap(tt.text, fixed.I(tt.maxWidth), measureBasic))
		})
	}
}

func TestWrap_LinesStayWithinWidth(t *testing.T) {
	t.Parallel()

	text := "Если закрыть глаза, становится темно. Never give up on a dream just because of the time it will take to accomplish it."
	maxWidth := fixed.I(120)

	lines := Wrap(text, maxWidth, measureBasic)
	require.NotEmpty(t, lines)
	for _, line := range lines {
		assert.LessOrEqual(t, measureBasic(line), maxWidth, "line %q", line)
	}
	assert.Equal(t, strings.Join(strings.Fields(text), " "), strings.Join(lines, " "))
}

func TestLimit(t *testing.T) {
	t.Parallel()

	maxWidth := fixed.I(70)
	lines := []string{"one", "two", "three", "four", "five", "six", "seven", "eight"}

	got := Limit(lines, MaxLines, maxWidth, measureBasic)

	require.Len(t, got, MaxLines)
	assert.Equal(t, lines[:MaxLines-1], got[:MaxLines-1])
	assert.True(t, strings.HasSuffix(got[MaxLines-1], Ellipsis))
	for _, line := range got {
		assert.LessOrEqual(t, measureBasic(line), maxWidth)
	}

	assert.Equal(t, lines[:3], Limit(lines[:3], MaxLines, maxWidth, measureBasic))
}

func TestLimit_TrimsLastLineToFitEllipsis(t *testing.T) {
	t.Parallel()

	maxWidth := fixed.I(70) // 10 runes
	lines := []string{"aaaaaaaaaa", "bbbbbbbbbb", "cccccccccc"}

	got := Limit(lines, 2, maxWidth, measureBasic)
	assert.Equal(t, []string{"aaaaaaaaaa", "bbbbbbb..."}, got)
}

func TestCompose_RendersJPEG(t *testing.T) {
	t.Parallel()

	path := writeBackground(t, 400, 300, encodeJPEG, "background.jpg")
	img := newComposer(t, path).Compose("Keep calm and carry on")

	require.NoError(t, img.Err)
	require.True(t, img.Rendered)
	require.NotEmpty(t, img.Data)

	decoded, format, err := image.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
	assert.Equal(t, image.Rect(0, 0, 400, 300), decoded.Bounds())
	assert.True(t, hasBrightPixel(decoded), "expected light text pixels on the dark background")
}

func TestCompose_AcceptsPNGAndLongQuotes(t *testing.T) {
	t.Parallel()

	path := writeBackground(t, 200, 120, png.Encode, "background.png")
	quote := strings.Repeat("word ", 200)

	img := newComposer(t, path).Compose(quote)

	require.True(t, img.Rendered)
	_, format, err := image.Decode(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, "jpeg", format)
}

func TestCompose_ScalesHugeBackground(t *testing.T) {
	t.Parallel()

	path := writeBackground(t, 3000, 60, png.Encode, "wide.png")
	img := newComposer(t, path).Compose("wide")

	require.True(t, img.Rendered)
	cfg, _, err := image.DecodeConfig(bytes.NewReader(img.Data))
	require.NoError(t, err)
	assert.Equal(t, maxCanvasSide, cfg.Width)
	assert.Equal(t, 51, cfg.Height)
}

func TestCompose_FallsBackThroughFonts(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	notAFont := filepath.Join(dir, "broken.ttf")
	require.NoError(t, os.WriteFile(notAFont, []byte("not a font"), 0o600))

	path := writeBackground(t, 300, 200, encodeJPEG, "background.jpg")
	img := newComposer(t, path, filepath.Join(dir, "missing.ttf"), notAFont).Compose("fallback face")

	require.NoError(t, img.Err)
	assert.True(t, img.Rendered)
}

func TestCompose_CorruptBackgroundReturnsRawBytes(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "background.jpg")
	require.NoError(t, os.WriteFile(path, []byte("definitely not a jpeg"), 0o600))

	img := newComposer(t, path).Compose("quote")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, img.Rendered)
	assert.Error(t, img.Err)
	assert.Equal(t, raw, img.Data)
}

func TestCompose_MissingBackground(t *testing.T) {
	t.Parallel()

	path := filepath.Join(t.TempDir(), "missing.jpg")
	img := newComposer(t, path).Compose("quote")

	raw, readErr := os.ReadFile(path)
	require.Error(t, readErr)
	assert.False(t, img.Rendered)
	assert.Error(t, img.Err)
	assert.Equal(t, raw, img.Data)
	assert.Empty(t, img.Data)
}

func TestCompose_EmptyQuoteFallsBack(t *testing.T) {
	t.Parallel()

	path := writeBackground(t, 100, 100, encodeJPEG, "background.jpg")
	img := newComposer(t, path).Compose("   ")

	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.False(t, img.Rendered)
	assert.Equal(t, raw, img.Data)
}

func hasBrightPixel(img image.Image) bool {
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bl, _ := img.At(x, y).RGBA()
			if r>>8 > 150 && g>>8 > 150 && bl>>8 > 150 {
				return true
			}
		}
	}
	return false
}
