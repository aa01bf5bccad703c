// Package render overlays the quote of the day on a background picture.
package render

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	"image/color"
	"image/jpeg"
	_ "image/png" // backgrounds may be PNG
	"log/slog"
	"os"

	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
	_ "golang.org/x/image/webp" // backgrounds may be WebP

	"github.com/edgard/morningbot/internal/config"
)

// Layout constants of the vertically centred text block.
const (
	MaxLines      = 6
	widthRatio    = 0.8
	lineSpacing   = 1.25
	fontDivisor   = 18
	minFontSize   = 14
	maxCanvasSide = 2560
	fontDPI       = 72
)

var (
	shadowColor = color.RGBA{R: 0, G: 0, B: 0, A: 255}
	textColor   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Image is the outcome of Compose. When Rendered is false, Data holds the
// background file exactly as stored on disk, or nothing when it could not be read.
type Image struct {
	Data     []byte
	Rendered bool
	Err      error
}

// Composer draws text onto the configured background.
type Composer struct {
	background string
	fonts      []string
	quality    int
	log        *slog.Logger
}

// NewComposer creates a Composer from image settings.
func NewComposer(cfg config.ImageConfig, logger *slog.Logger) *Composer {
	if logger == nil {
		logger = slog.Default()
	}
	quality := cfg.Quality
	if quality <= 0 {
		quality = jpeg.DefaultQuality
	}
	return &Composer{
		background: cfg.BackgroundPath,
		fonts:      cfg.FontPaths,
		quality:    quality,
		log:        logger.With("component", "image_composer"),
	}
}

// Compose renders quote onto the background and returns a JPEG. Any failure
// falls back to the raw background bytes; Compose itself never fails.
func (c *Composer) Compose(quote string) Image {
	data, err := c.render(quote)
	if err == nil {
		c.log.Info("Composed image", "bytes", len(data))
		return Image{Data: data, Rendered: true}
	}

	c.log.Warn("Image rendering failed, using plain background", "error", err)
	raw, readErr := os.ReadFile(c.background)
	if readErr != nil {
		return Image{Err: errors.Join(err, readErr)}
	}
	return Image{Data: raw, Err: err}
}

func (c *Composer) render(quote string) ([]byte, error) {
	raw, err := os.ReadFile(c.background)
	if err != nil {
		return nil, fmt.Errorf("failed to read background: %w", err)
	}

	src, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, fmt.Errorf("failed to decode background: %w", err)
	}
	c.log.Debug("Decoded background", "format", format, "bounds", src.Bounds().String())

	canvas := fitCanvas(src)
	width := canvas.Bounds().Dx()

	size := max(float64(width)/fontDivisor, minFontSize)
	face := c.loadFace(size)
	defer func() { _ = face.Close() }()

	maxWidth := fixed.I(int(float64(width) * widthRatio))
	measure := func(s string) fixed.Int26_6 { return font.MeasureString(face, s) }

	lines := Limit(Wrap(quote, maxWidth, measure), MaxLines, maxWidth, measure)
	if len(lines) == 0 {
		return nil, errors.New("nothing to draw")
	}
	drawCentered(canvas, face, lines, max(2, int(size)/16))

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, canvas, &jpeg.Options{Quality: c.quality}); err != nil {
		return nil, fmt.Errorf("failed to encode image: %w", err)
	}
	return buf.Bytes(), nil
}

// loadFace tries each configured font file in order and falls back to the
// built-in bitmap face, which only covers Latin glyphs.
func (c *Composer) loadFace(size float64) font.Face {
	for _, path := range c.fonts {
		face, err := openFace(path, size)
		if err != nil {
			c.log.Debug("Font unavailable", "path", path, "error", err)
			continue
		}
		c.log.Debug("Using font", "path", path, "size", size)
		return face
	}
	c.log.Warn("No font file usable, falling back to built-in face")
	return basicfont.Face7x13
}

func openFace(path string, size float64) (font.Face, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, fmt.Errorf("failed to parse font: %w", err)
	}
	return opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    size,
		DPI:     fontDPI,
		Hinting: font.HintingFull,
	})
}

// fitCanvas copies src into an RGBA canvas anchored at the origin, scaling it
// down when its longest side exceeds maxCanvasSide.
func fitCanvas(src image.Image) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()

	if longest := max(w, h); longest > maxCanvasSide {
		w = w * maxCanvasSide / longest
		h = h * maxCanvasSide / longest
		canvas := image.NewRGBA(image.Rect(0, 0, max(w, 1), max(h, 1)))
		draw.CatmullRom.Scale(canvas, canvas.Bounds(), src, b, draw.Src, nil)
		return canvas
	}

	canvas := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.Draw(canvas, canvas.Bounds(), src, b.Min, draw.Src)
	return canvas
}

// drawCentered draws lines as a block centred on the canvas, each line centred
// horizontally, first in the shadow colour shifted by offset and then in the text colour.
func drawCentered(canvas *image.RGBA, face font.Face, lines []string, offset int) {
	bounds := canvas.Bounds()
	metrics := face.Metrics()
	ascent := metrics.Ascent.Ceil()
	lineHeight := int(float64(metrics.Height.Ceil()) * lineSpacing)
	blockHeight := lineHeight*(len(lines)-1) + ascent + metrics.Descent.Ceil()
	top := (bounds.Dy() - blockHeight) / 2

	for i, line := range lines {
		x := (fixed.I(bounds.Dx()) - font.MeasureString(face, line)) / 2
		y := fixed.I(top + ascent + i*lineHeight)

		for _, pass := range []struct {
			col   color.Color
			shift fixed.Int26_6
		}{
			{shadowColor, fixed.I(offset)},
			{textColor, 0},
		} {
			d := &font.Drawer{
				Dst:  canvas,
				Src:  image.NewUniform(pass.col),
				Face: face,
				Dot:  fixed.Point26_6{X: x + pass.shift, Y: y + pass.shift},
			}
			d.DrawString(line)
		}
	}
}
