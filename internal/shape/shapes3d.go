package shape

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/fogleman/gg"
)

// Face brightness factors shared by the pseudo-3D solids: top faces catch
// the light, side faces fall into shadow.
const (
	topFaceBrightness  = 1.45
	sideFaceBrightness = 0.7
)

// cubeTiltDenominators are the allowed small tilt angles for the cube so
// its depth projection stays readable.
var cubeTiltDenominators = []float64{12, 16, 20, 24, 28, 32}

func fillPolygon(dc *gg.Context, verts []Point, fill color.RGBA) {
	tracePolygon(dc, verts)
	dc.SetColor(fill)
	dc.Fill()
}

func strokeEdge(dc *gg.Context, a, b Point, edge color.RGBA, width float64) {
	dc.SetColor(edge)
	dc.SetLineWidth(width)
	dc.DrawLine(a.X, a.Y, b.X, b.Y)
	dc.Stroke()
}

// Cube is drawn as a front square plus projected top and right faces. Its
// hit region is the union of the three visible faces.
type Cube struct{}

func (Cube) TypeName() string { return "cube" }

func (Cube) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{
		"side":         randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary),
		"depth_factor": randBetween(rng, 0.4, 0.6),
	}
}

func (Cube) Rotation(rng *rand.Rand) float64 {
	denom := cubeTiltDenominators[rng.Intn(len(cubeTiltDenominators))]
	angle := math.Pi / denom
	if rng.Intn(2) == 0 {
		return -angle
	}
	return angle
}

// faces returns the front, top and side face polygons plus the back square,
// all in canvas coordinates.
func (Cube) faces(in *Instance) (front, top, side, back []Point) {
	h := in.Param("side") / 2
	base := []Point{{-h, -h}, {h, -h}, {h, h}, {-h, h}}
	front = rotateTranslate(base, in.Rotation, in.CX, in.CY)

	depthAngle := -math.Pi/4 + in.Rotation
	sin, cos := math.Sincos(depthAngle)
	dx := in.Param("side") * in.Param("depth_factor") * cos
	dy := in.Param("side") * in.Param("depth_factor") * sin

	back = make([]Point, 4)
	for i, v := range front {
		back[i] = Point{X: v.X + dx, Y: v.Y + dy}
	}
	top = []Point{front[0], front[1], back[1], back[0]}
	side = []Point{front[1], back[1], back[2], front[2]}
	return front, top, side, back
}

func (c Cube) Bounds(in *Instance) Rect {
	front, _, _, back := c.faces(in)
	return mergeRects(polygonBounds(front), polygonBounds(back))
}

func (c Cube) Contains(in *Instance, x, y float64) bool {
	front, top, side, _ := c.faces(in)
	return pointInPolygon(x, y, front) ||
		pointInPolygon(x, y, top) ||
		pointInPolygon(x, y, side)
}

func (c Cube) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	front, top, side, back := c.faces(in)
	fill := ParseHex(in.Color)

	fillPolygon(dc, side, AdjustBrightness(fill, sideFaceBrightness))
	fillPolygon(dc, top, AdjustBrightness(fill, topFaceBrightness))
	fillPolygon(dc, front, fill)

	edge := EdgeColorFor(fill)
	for i := 0; i < 4; i++ {
		strokeEdge(dc, front[i], front[(i+1)%4], edge, style.OutlineWidth)
		strokeEdge(dc, back[i], back[(i+1)%4], edge, style.OutlineWidth)
		strokeEdge(dc, front[i], back[i], edge, style.OutlineWidth)
	}
}

// Sphere renders as a shaded disk; the hit region is the disk itself.
type Sphere struct{}

func (Sphere) TypeName() string { return "sphere" }

func (Sphere) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{"radius": randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary)}
}

func (Sphere) Rotation(*rand.Rand) float64 { return 0 }

func (Sphere) Bounds(in *Instance) Rect {
	r := in.Param("radius")
	return Rect{MinX: in.CX - r, MinY: in.CY - r, MaxX: in.CX + r, MaxY: in.CY + r}
}

func (Sphere) Contains(in *Instance, x, y float64) bool {
	return pointInCircle(x, y, in.CX, in.CY, in.Param("radius"))
}

func (Sphere) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fill := ParseHex(in.Color)
	r := in.Param("radius")

	dc.DrawCircle(in.CX, in.CY, r)
	dc.SetColor(fill)
	dc.Fill()

	// Specular highlight up-left of center suggests the volume.
	dc.DrawEllipse(in.CX-r*0.3, in.CY-r*0.35, r*0.35, r*0.25)
	dc.SetColor(AdjustBrightness(fill, topFaceBrightness))
	dc.Fill()

	dc.DrawCircle(in.CX, in.CY, r)
	dc.SetColor(EdgeColorFor(fill))
	dc.SetLineWidth(style.OutlineWidth)
	dc.Stroke()
}

// Cylinder stands upright: a rectangular body capped by two ellipses. The
// hit region is body plus both caps. Rotation is always 0.
type Cylinder struct{}

func (Cylinder) TypeName() string { return "cylinder" }

func (Cylinder) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	radius := randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary) / 2
	height := randBetween(rng, math.Max(sizes.MinSecondary, radius*1.2), math.Max(sizes.MaxSecondary, radius*1.4))
	return map[string]float64{"radius": radius, "height": height}
}

func (Cylinder) Rotation(*rand.Rand) float64 { return 0 }

func (Cylinder) geometry(in *Instance) (body Rect, capRY, topY, bottomY float64) {
	r := in.Param("radius")
	h := in.Param("height")
	capRY = r * 0.35
	topY = in.CY - h/2
	bottomY = in.CY + h/2
	body = Rect{MinX: in.CX - r, MinY: topY, MaxX: in.CX + r, MaxY: bottomY}
	return body, capRY, topY, bottomY
}

func (c Cylinder) Bounds(in *Instance) Rect {
	body, capRY, _, _ := c.geometry(in)
	return Rect{MinX: body.MinX, MinY: body.MinY - capRY, MaxX: body.MaxX, MaxY: body.MaxY + capRY}
}

func (c Cylinder) Contains(in *Instance, x, y float64) bool {
	body, capRY, topY, bottomY := c.geometry(in)
	r := in.Param("radius")
	return body.Contains(x, y) ||
		pointInEllipse(x, y, in.CX, topY, r, capRY) ||
		pointInEllipse(x, y, in.CX, bottomY, r, capRY)
}

func (c Cylinder) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fill := ParseHex(in.Color)
	body, capRY, topY, bottomY := c.geometry(in)
	r := in.Param("radius")
	edge := EdgeColorFor(fill)

	dc.DrawRectangle(body.MinX, body.MinY, body.Width(), body.Height())
	dc.SetColor(fill)
	dc.Fill()

	dc.DrawEllipse(in.CX, bottomY, r, capRY)
	dc.SetColor(AdjustBrightness(fill, sideFaceBrightness))
	dc.Fill()

	dc.DrawEllipse(in.CX, topY, r, capRY)
	dc.SetColor(AdjustBrightness(fill, topFaceBrightness))
	dc.FillPreserve()
	dc.SetColor(edge)
	dc.SetLineWidth(style.OutlineWidth)
	dc.Stroke()

	strokeEdge(dc, Point{X: body.MinX, Y: topY}, Point{X: body.MinX, Y: bottomY}, edge, style.OutlineWidth)
	strokeEdge(dc, Point{X: body.MaxX, Y: topY}, Point{X: body.MaxX, Y: bottomY}, edge, style.OutlineWidth)
	dc.DrawEllipticalArc(in.CX, bottomY, r, capRY, 0, math.Pi)
	dc.SetColor(edge)
	dc.Stroke()
}

// Cone points up from an elliptical base. The hit region is the flank
// triangle plus the base ellipse. Rotation is always 0.
type Cone struct{}

func (Cone) TypeName() string { return "cone" }

func (Cone) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	radius := randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary) / 2
	height := randBetween(rng, math.Max(sizes.MinSecondary, radius*1.5), math.Max(sizes.MaxSecondary, radius*1.8))
	return map[string]float64{"radius": radius, "height": height}
}

func (Cone) Rotation(*rand.Rand) float64 { return 0 }

func (Cone) geometry(in *Instance) (apex, baseL, baseR Point, baseY, capRY float64) {
	r := in.Param("radius")
	h := in.Param("height")
	capRY = r * 0.3
	baseY = in.CY + h/2
	apex = Point{X: in.CX, Y: in.CY - h/2}
	baseL = Point{X: in.CX - r, Y: baseY}
	baseR = Point{X: in.CX + r, Y: baseY}
	return apex, baseL, baseR, baseY, capRY
}

func (c Cone) Bounds(in *Instance) Rect {
	apex, baseL, baseR, baseY, capRY := c.geometry(in)
	return Rect{MinX: baseL.X, MinY: apex.Y, MaxX: baseR.X, MaxY: baseY + capRY}
}

func (c Cone) Contains(in *Instance, x, y float64) bool {
	apex, baseL, baseR, baseY, capRY := c.geometry(in)
	return pointInPolygon(x, y, []Point{apex, baseL, baseR}) ||
		pointInEllipse(x, y, in.CX, baseY, in.Param("radius"), capRY)
}

func (c Cone) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fill := ParseHex(in.Color)
	apex, baseL, baseR, baseY, capRY := c.geometry(in)
	edge := EdgeColorFor(fill)

	dc.DrawEllipse(in.CX, baseY, in.Param("radius"), capRY)
	dc.SetColor(AdjustBrightness(fill, sideFaceBrightness))
	dc.Fill()

	fillPolygon(dc, []Point{apex, baseL, baseR}, fill)

	strokeEdge(dc, apex, baseL, edge, style.OutlineWidth)
	strokeEdge(dc, apex, baseR, edge, style.OutlineWidth)
	dc.DrawEllipticalArc(in.CX, baseY, in.Param("radius"), capRY, 0, math.Pi)
	dc.SetColor(edge)
	dc.SetLineWidth(style.OutlineWidth)
	dc.Stroke()
}

// Pyramid shows a front face and a shaded right face receding toward an
// up-right vanishing offset. The hit region is the union of the two faces.
type Pyramid struct{}

func (Pyramid) TypeName() string { return "pyramid" }

func (Pyramid) GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64 {
	return map[string]float64{
		"base":   randBetween(rng, sizes.MinPrimary, sizes.MaxPrimary),
		"height": randBetween(rng, math.Max(sizes.MinSecondary, sizes.MinPrimary*0.8), math.Max(sizes.MaxSecondary, sizes.MaxPrimary*0.9)),
	}
}

func (Pyramid) Rotation(*rand.Rand) float64 { return 0 }

func (Pyramid) geometry(in *Instance) (apex, baseL, baseR, backR Point) {
	b := in.Param("base")
	h := in.Param("height")
	apex = Point{X: in.CX, Y: in.CY - h/2}
	baseL = Point{X: in.CX - b/2, Y: in.CY + h/2}
	baseR = Point{X: in.CX + b/2, Y: in.CY + h/2}
	backR = Point{X: baseR.X + b*0.35, Y: baseR.Y - b*0.2}
	return apex, baseL, baseR, backR
}

func (p Pyramid) Bounds(in *Instance) Rect {
	apex, baseL, baseR, backR := p.geometry(in)
	return polygonBounds([]Point{apex, baseL, baseR, backR})
}

func (p Pyramid) Contains(in *Instance, x, y float64) bool {
	apex, baseL, baseR, backR := p.geometry(in)
	return pointInPolygon(x, y, []Point{apex, baseL, baseR}) ||
		pointInPolygon(x, y, []Point{apex, baseR, backR})
}

func (p Pyramid) Draw(in *Instance, dc *gg.Context, style DrawStyle) {
	fill := ParseHex(in.Color)
	apex, baseL, baseR, backR := p.geometry(in)
	edge := EdgeColorFor(fill)

	fillPolygon(dc, []Point{apex, baseR, backR}, AdjustBrightness(fill, sideFaceBrightness))
	fillPolygon(dc, []Point{apex, baseL, baseR}, fill)

	strokeEdge(dc, apex, baseL, edge, style.OutlineWidth)
	strokeEdge(dc, apex, baseR, edge, style.OutlineWidth)
	strokeEdge(dc, apex, backR, edge, style.OutlineWidth)
	strokeEdge(dc, baseL, baseR, edge, style.OutlineWidth)
	strokeEdge(dc, baseR, backR, edge, style.OutlineWidth)
}
