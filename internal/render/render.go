// Package render rasterizes a shape layout into a PNG image.
package render

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math/rand"

	"github.com/fogleman/gg"
	xdraw "golang.org/x/image/draw"

	"github.com/kyiku/shape-captcha-go/internal/layout"
	"github.com/kyiku/shape-captcha-go/internal/shape"
)

// Options controls rasterization quality and obfuscation noise.
type Options struct {
	// ScaleFactor supersamples: shapes are drawn at ScaleFactor times the
	// final resolution and downscaled for antialiasing.
	ScaleFactor int
	// OutlineWidth is the shape outline stroke width in canvas units.
	OutlineWidth float64
	// OutlineDarkFactor darkens light fills to derive outline colors.
	OutlineDarkFactor float64
	// NoiseLines draws this many translucent grey lines over the shapes.
	NoiseLines int
	// PointNoiseDensity speckles this fraction of pixels with grey noise.
	PointNoiseDensity float64
}

// DefaultOptions returns the production rendering defaults.
func DefaultOptions() Options {
	return Options{
		ScaleFactor:       3,
		OutlineWidth:      1.2,
		OutlineDarkFactor: 0.4,
	}
}

// Renderer draws layouts using the shape definitions of a registry. The
// drawn silhouette of every shape is exactly the region its definition
// hit-tests, so rendering and verification always agree.
type Renderer struct {
	reg  *shape.Registry
	opts Options
}

// New creates a Renderer.
func New(reg *shape.Registry, opts Options) *Renderer {
	if opts.ScaleFactor < 1 {
		opts.ScaleFactor = 1
	}
	if opts.OutlineWidth <= 0 {
		opts.OutlineWidth = 1.2
	}
	return &Renderer{reg: reg, opts: opts}
}

// Render rasterizes the layout to an image of the layout's dimensions.
func (r *Renderer) Render(rng *rand.Rand, l *layout.Layout) (image.Image, error) {
	f := r.opts.ScaleFactor
	uw, uh := l.Width*f, l.Height*f

	dc := gg.NewContext(uw, uh)
	dc.SetColor(shape.ParseHex(l.Background))
	dc.Clear()

	// All geometry is in final canvas coordinates; the transform does the
	// supersampling.
	dc.Scale(float64(f), float64(f))

	style := shape.DrawStyle{
		OutlineWidth:      r.opts.OutlineWidth,
		OutlineDarkFactor: r.opts.OutlineDarkFactor,
	}
	for i := range l.Instances {
		in := &l.Instances[i]
		def, err := r.reg.Get(in.Type)
		if err != nil {
			return nil, fmt.Errorf("render: %w", err)
		}
		def.Draw(in, dc, style)
	}

	if r.opts.NoiseLines > 0 {
		drawNoiseLines(dc, rng, l.Width, l.Height, r.opts.NoiseLines)
	}

	img := dc.Image()
	if r.opts.PointNoiseDensity > 0 {
		img = addPointNoise(img, rng, r.opts.PointNoiseDensity)
	}

	if f == 1 {
		return img, nil
	}
	return downscale(img, l.Width, l.Height), nil
}

// RenderPNG rasterizes the layout and encodes it as PNG.
func (r *Renderer) RenderPNG(rng *rand.Rand, l *layout.Layout) ([]byte, error) {
	img, err := r.Render(rng, l)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("render: encode png: %w", err)
	}
	return buf.Bytes(), nil
}

func drawNoiseLines(dc *gg.Context, rng *rand.Rand, w, h, count int) {
	for i := 0; i < count; i++ {
		grey := 120 + rng.Intn(81)
		dc.SetRGBA255(grey, grey, grey, 50)
		dc.SetLineWidth(1)
		dc.DrawLine(
			rng.Float64()*float64(w), rng.Float64()*float64(h),
			rng.Float64()*float64(w), rng.Float64()*float64(h),
		)
		dc.Stroke()
	}
}

func addPointNoise(img image.Image, rng *rand.Rand, density float64) image.Image {
	bounds := img.Bounds()
	rgba, ok := img.(*image.RGBA)
	if !ok {
		rgba = image.NewRGBA(bounds)
		xdraw.Copy(rgba, bounds.Min, img, bounds, xdraw.Src, nil)
	}
	n := int(float64(bounds.Dx()*bounds.Dy()) * density)
	for i := 0; i < n; i++ {
		x := bounds.Min.X + rng.Intn(bounds.Dx())
		y := bounds.Min.Y + rng.Intn(bounds.Dy())
		v := uint8(rng.Intn(256))
		rgba.SetRGBA(x, y, color.RGBA{R: v, G: v, B: v, A: 255})
	}
	return rgba
}

func downscale(img image.Image, w, h int) image.Image {
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Over, nil)
	return dst
}
