package shape

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
)

// randBetween draws a uniform value in [min, max], degrading to min when the
// range is empty.
func randBetween(rng *rand.Rand, min, max float64) float64 {
	if max <= min {
		return min
	}
	return min + rng.Float64()*(max-min)
}

// fullRotation is the rotation policy for flat polygon families.
func fullRotation(rng *rand.Rand) float64 {
	return rng.Float64() * 2 * math.Pi
}

// tracePolygon appends the closed polygon path to the context.
func tracePolygon(dc *gg.Context, verts []Point) {
	if len(verts) == 0 {
		return
	}
	dc.NewSubPath()
	dc.MoveTo(verts[0].X, verts[0].Y)
	for _, v := range verts[1:] {
		dc.LineTo(v.X, v.Y)
	}
	dc.ClosePath()
}

// fillStrokePolygon fills the polygon and strokes a contrasting outline.
func fillStrokePolygon(dc *gg.Context, verts []Point, fill color.RGBA, style DrawStyle) {
	tracePolygon(dc, verts)
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(OutlineFor(fill, style.OutlineDarkFactor))
	dc.SetLineWidth(style.OutlineWidth)
	dc.Stroke()
}

// Square is the axis square family, drawn with an arbitrary rotation.
type Square struct{}

func (Square) TypeName() string { return "square" }

func (Square) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{"side": randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)}
}

func (Square) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Square) vertices(in *Instance) []Point {
	h := in.Param("side") / 2
	base := []Point{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
	return rotateTranslate(base, in.Rotation, in.CX, in.CY)
}

func (s Square) Bounds(in *Instance) Rect { return polygonBounds(s.vertices(in)) }

func (s Square) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, s.vertices(in))
}

func (s Square) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, s.vertices(in), ParseHex(in.Color), style)
}

// Rectangle has independent width and height.
type Rectangle struct{}

func (Rectangle) TypeName() string { return "rectangle" }

func (Rectangle) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{
		"width":  randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary),
		"height": randBetween(rng, sizes.MinSecondary, sizes.MaxSecondary),
	}
}

func (Rectangle) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Rectangle) vertices(in *Instance) []Point {
	w := in.Param("width") / 2
	h := in.Param("height") / 2
	base := []Point{{-w, -h}, {w, -h}, {w, h}, {-w, h}}
	return rotateTranslate(base, in.Rotation, in.CX, in.CY)
}

func (r Rectangle) Bounds(in *Instance) Rect { return polygonBounds(r.vertices(in)) }

func (r Rectangle) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, r.vertices(in))
}

func (r Rectangle) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, r.vertices(in), ParseHex(in.Color), style)
}

// Circle interprets the primary size as its radius. Rotation is always 0.
type Circle struct{}

func (Circle) TypeName() string { return "circle" }

func (Circle) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{"radius": randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)}
}

func (Circle) Rotation(*rand.Rand) float64 { return 0 }

func (Circle) Bounds(in *Instance) Rect {
	r := in.Param("radius")
	return Rect{MinX: in.CX - r, MinY: in.CY - r, MaxX: in.CX + r, MaxY: in.CY + r}
}

func (Circle) Contains(in *Instance, x, y float64) bool {
	return pointInCircle(x, y, in.CX, in.CY, in.Param("radius"))
}

func (Circle) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fill := ParseHex(in.Color)
	dc.DrawCircle(in.CX, in.CY, in.Param("radius"))
	dc.SetColor(fill)
	dc.FillPreserve()
	dc.SetColor(OutlineFor(fill, style.OutlineDarkFactor))
	dc.SetLineWidth(style.OutlineWidth)
	dc.Stroke()
}

// EquilateralTriangle interprets the primary size as its side length.
type EquilateralTriangle struct{}

func (EquilateralTriangle) TypeName() string { return "equilateral_triangle" }

func (EquilateralTriangle) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{"side": randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)}
}

func (EquilateralTriangle) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (EquilateralTriangle) vertices(in *Instance) []Point {
	circumradius := in.Param("side") / math.Sqrt(3)
	return rotateTranslate(regularVertices(circumradius, 3), in.Rotation, in.CX, in.CY)
}

func (t EquilateralTriangle) Bounds(in *Instance) Rect { return polygonBounds(t.vertices(in)) }

func (t EquilateralTriangle) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, t.vertices(in))
}

func (t EquilateralTriangle) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, t.vertices(in), ParseHex(in.Color), style)
}

// Rhombus is parameterized by its two diagonals.
type Rhombus struct{}

func (Rhombus) TypeName() string { return "rhombus" }

func (Rhombus) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{
		"d1": randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary),
		"d2": randBetween(rng, sizes.MinSecondary, sizes.MaxSecondary),
	}
}

func (Rhombus) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Rhombus) vertices(in *Instance) []Point {
	h1 := in.Param("d1") / 2
	h2 := in.Param("d2") / 2
	base := []Point{{0, -h2}, {h1, 0}, {0, h2}, {-h1, 0}}
	return rotateTranslate(base, in.Rotation, in.CX, in.CY)
}

func (r Rhombus) Bounds(in *Instance) Rect { return polygonBounds(r.vertices(in)) }

func (r Rhombus) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, r.vertices(in))
}

func (r Rhombus) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, r.vertices(in), ParseHex(in.Color), style)
}

// Trapezoid is an isosceles trapezoid: full-width bottom edge, narrower top.
type Trapezoid struct{}

func (Trapezoid) TypeName() string { return "trapezoid" }

func (Trapezoid) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	bottom := randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)
	return map[string]float64{
		"bottom": bottom,
		"top":    bottom * randBetween(rng, 0.4, 0.7),
		"height": randBetween(rng, sizes.MinSecondary, sizes.MaxSecondary),
	}
}

func (Trapezoid) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Trapezoid) vertices(in *Instance) []Point {
	hb := in.Param("bottom") / 2
	ht := in.Param("top") / 2
	hh := in.Param("height") / 2
	base := []Point{{-ht, -hh}, {ht, -hh}, {hb, hh}, {-hb, hh}}
	return rotateTranslate(base, in.Rotation, in.CX, in.CY)
}

func (t Trapezoid) Bounds(in *Instance) Rect { return polygonBounds(t.vertices(in)) }

func (t Trapezoid) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, t.vertices(in))
}

func (t Trapezoid) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, t.vertices(in), ParseHex(in.Color), style)
}

// Hexagon is a regular hexagon; the primary size is its circumradius.
type Hexagon struct{}

func (Hexagon) TypeName() string { return "hexagon" }

func (Hexagon) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{"radius": randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)}
}

func (Hexagon) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Hexagon) vertices(in *Instance) []Point {
	return rotateTranslate(regularVertices(in.Param("radius"), 6), in.Rotation, in.CX, in.CY)
}

func (h Hexagon) Bounds(in *Instance) Rect { return polygonBounds(h.vertices(in)) }

func (h Hexagon) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, h.vertices(in))
}

func (h Hexagon) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, h.vertices(in), ParseHex(in.Color), style)
}

// Star5 is a five-pointed star; the primary size is the outer radius.
type Star5 struct{}

func (Star5) TypeName() string { return "star5" }

func (Star5) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	outer := randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)
	return map[string]float64{
		"outer": outer,
		"inner": outer * randBetween(rng, 0.38, 0.5),
	}
}

func (Star5) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Star5) vertices(in *Instance) []Point {
	return rotateTranslate(starVertices(in.Param("outer"), in.Param("inner"), 5), in.Rotation, in.CX, in.CY)
}

func (s Star5) Bounds(in *Instance) Rect { return polygonBounds(s.vertices(in)) }

func (s Star5) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, s.vertices(in))
}

func (s Star5) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, s.vertices(in), ParseHex(in.Color), style)
}

// Cross is a plus sign; the primary size is its overall extent.
type Cross struct{}

func (Cross) TypeName() string { return "cross" }

func (Cross) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	size := randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)
	return map[string]float64{
		"size":      size,
		"thickness": size * randBetween(rng, 0.3, 0.42),
	}
}

func (Cross) Rotation(rng *rand.Rand) float64 { return fullRotation(rng) }

func (Cross) vertices(in *Instance) []Point {
	h := in.Param("size") / 2
	t := in.Param("thickness") / 2
	base := []Point{
		{-t, -h}, {t, -h}, {t, -t}, {h, -t}, {h, t}, {t, t},
		{t, h}, {-t, h}, {-t, t}, {-h, t}, {-h, -t}, {-t, -t},
	}
	return rotateTranslate(base, in.Rotation, in.CX, in.CY)
}

func (c Cross) Bounds(in *Instance) Rect { return polygonBounds(c.vertices(in)) }

func (c Cross) Contains(in *Instance, x, y float64) bool {
	return pointInPolygon(x, y, c.vertices(in))
}

func (c Cross) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fillStrokePolygon(dc, c.vertices(in), ParseHex(in.Color), style)
}
