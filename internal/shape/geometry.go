package shape

import "math"

// Point is a 2D canvas coordinate.
type Point struct {
	X float64
	Y float64
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	MinX float64
	MinY float64
	MaxX float64
	MaxY float64
}

// Width returns the horizontal extent.
func (r Rect) Width() float64 { return r.MaxX - r.MinX }

// Height returns the vertical extent.
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// Expand grows the rect by m on every side.
func (r Rect) Expand(m float64) Rect {
	return Rect{MinX: r.MinX - m, MinY: r.MinY - m, MaxX: r.MaxX + m, MaxY: r.MaxY + m}
}

// Intersects reports whether the two rects overlap or touch.
func (r Rect) Intersects(o Rect) bool {
	return !(r.MaxX < o.MinX || r.MinX > o.MaxX || r.MaxY < o.MinY || r.MinY > o.MaxY)
}

// Contains reports whether the point lies inside the rect, boundary included.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// rotateTranslate rotates vertices given relative to (0,0) by angle and
// shifts them so their center lands on (cx, cy).
func rotateTranslate(verts []Point, angle, cx, cy float64) []Point {
	sin, cos := math.Sincos(angle)
	out := make([]Point, len(verts))
	for i, v := range verts {
		out[i] = Point{
			X: cx + v.X*cos - v.Y*sin,
			Y: cy + v.X*sin + v.Y*cos,
		}
	}
	return out
}

// regularVertices returns the vertices of a regular polygon centered on
// (0,0) with the first vertex pointing up.
func regularVertices(radius float64, n int) []Point {
	verts := make([]Point, n)
	step := 2 * math.Pi / float64(n)
	start := -math.Pi / 2
	for i := range verts {
		sin, cos := math.Sincos(start + float64(i)*step)
		verts[i] = Point{X: radius * cos, Y: radius * sin}
	}
	return verts
}

// starVertices returns the 2*points vertices of a star centered on (0,0),
// alternating between the outer and inner radius, first ray pointing up.
func starVertices(outer, inner float64, points int) []Point {
	verts := make([]Point, 2*points)
	step := math.Pi / float64(points)
	start := -math.Pi / 2
	for i := range verts {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		sin, cos := math.Sincos(start + float64(i)*step)
		verts[i] = Point{X: r * cos, Y: r * sin}
	}
	return verts
}

// boundaryEps is the tolerance for treating a point on a polygon edge as
// inside. The hit region is a closed set so clicks landing exactly on a
// drawn edge are never rejected.
const boundaryEps = 1e-7

// pointInPolygon tests point membership with the ray-casting algorithm
// (W. Randolph Franklin's pnpoly), extended to count boundary points as
// inside.
func pointInPolygon(x, y float64, verts []Point) bool {
	n := len(verts)
	if n < 3 {
		return false
	}
	inside := false
	j := n - 1
	for i := 0; i < n; i++ {
		pi, pj := verts[i], verts[j]
		if pointOnSegment(x, y, pi, pj) {
			return true
		}
		if (pi.Y > y) != (pj.Y > y) &&
			x < (pj.X-pi.X)*(y-pi.Y)/(pj.Y-pi.Y)+pi.X {
			inside = !inside
		}
		j = i
	}
	return inside
}

// pointOnSegment reports whether (x, y) lies on the segment a-b within
// boundaryEps.
func pointOnSegment(x, y float64, a, b Point) bool {
	dx, dy := b.X-a.X, b.Y-a.Y
	lenSq := dx*dx + dy*dy
	if lenSq == 0 {
		return math.Abs(x-a.X) <= boundaryEps && math.Abs(y-a.Y) <= boundaryEps
	}
	t := ((x-a.X)*dx + (y-a.Y)*dy) / lenSq
	if t < 0 || t > 1 {
		return false
	}
	px, py := a.X+t*dx, a.Y+t*dy
	ddx, ddy := x-px, y-py
	return ddx*ddx+ddy*ddy <= boundaryEps*boundaryEps
}

// pointInCircle tests closed-disk membership.
func pointInCircle(x, y, cx, cy, r float64) bool {
	if r <= 0 {
		return false
	}
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}

// pointInEllipse tests closed axis-aligned ellipse membership.
func pointInEllipse(x, y, cx, cy, rx, ry float64) bool {
	if rx <= 0 || ry <= 0 {
		return false
	}
	nx := (x - cx) / rx
	ny := (y - cy) / ry
	return nx*nx+ny*ny <= 1.0
}

// polygonBounds returns the axis-aligned bounding box of the vertex list.
func polygonBounds(verts []Point) Rect {
	if len(verts) == 0 {
		return Rect{}
	}
	r := Rect{MinX: verts[0].X, MinY: verts[0].Y, MaxX: verts[0].X, MaxY: verts[0].Y}
	for _, v := range verts[1:] {
		r.MinX = math.Min(r.MinX, v.X)
		r.MinY = math.Min(r.MinY, v.Y)
		r.MaxX = math.Max(r.MaxX, v.X)
		r.MaxY = math.Max(r.MaxY, v.Y)
	}
	return r
}

// mergeRects returns the smallest rect covering both inputs.
func mergeRects(a, b Rect) Rect {
	return Rect{
		MinX: math.Min(a.MinX, b.MinX),
		MinY: math.Min(a.MinY, b.MinY),
		MaxX: math.Max(a.MaxX, b.MaxX),
		MaxY: math.Max(a.MaxY, b.MaxY),
	}
}
