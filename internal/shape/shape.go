// Package shape defines the shape families used by the CAPTCHA engine:
// randomized parameter generation, exact hit-test geometry, and raster
// drawing for each family.
package shape

import (
	"math/rand"

	"github.com/fogleman/gg"
)

// Instance is one concrete shape placed on a challenge canvas. It is plain
// data so a challenge record can round-trip through a store as JSON and be
// re-verified against exactly the geometry that was drawn. An Instance is
// never mutated after creation.
type Instance struct {
	Type     string             `json:"type"`
	CX       float64            `json:"cx"`
	CY       float64            `json:"cy"`
	Rotation float64            `json:"rotation"`
	Color    string             `json:"color"`
	Params   map[string]float64 `json:"params"`
}

// Param returns a named size parameter, or 0 if absent.
func (in *Instance) Param(key string) float64 {
	return in.Params[key]
}

// SizeRange bounds the randomized size parameters handed to a Definition.
// Primary is the family's main dimension (radius, side length); Secondary
// bounds auxiliary dimensions such as a rectangle's height.
type SizeRange struct {
	MinPrimary   float64
	MaxPrimary   float64
	MinSecondary float64
	MaxSecondary float64
}

// DrawStyle carries rendering knobs shared by all families.
type DrawStyle struct {
	// OutlineWidth is the stroke width in canvas units.
	OutlineWidth float64
	// OutlineDarkFactor darkens light fills to derive the outline color.
	OutlineDarkFactor float64
}

// Definition describes one shape family. Bounds, Contains and Draw must be
// deterministic functions of the Instance so that the rendered pixels and
// the verification geometry never drift apart.
type Definition interface {
	// TypeName is the unique family identifier, also used as the
	// localization key for prompts.
	TypeName() string

	// GenerateParams draws randomized size parameters within the range.
	GenerateParams(rng *rand.Rand, sizes SizeRange) map[string]float64

	// Rotation draws a rotation angle in radians following the family's
	// policy. Rotationally symmetric families return 0.
	Rotation(rng *rand.Rand) float64

	// Bounds returns the axis-aligned bounding box of the instance,
	// used by the placement algorithm for fast overlap rejection.
	Bounds(in *Instance) Rect

	// Contains reports whether the point lies inside the instance's
	// drawn silhouette. The region is closed: boundary points count
	// as inside.
	Contains(in *Instance, x, y float64) bool

	// Draw rasterizes the instance onto the context.
	Draw(in *Instance, dc *gg.Context, style DrawStyle)
}
