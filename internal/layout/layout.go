// Package layout places uniquely-typed, uniquely-colored shape instances on
// a canvas without overlap.
package layout

import (
	"errors"
	"fmt"
	"math/rand"

	"github.com/kyiku/shape-captcha-go/internal/shape"
)

// Generation failures. The first two indicate a configuration mismatch the
// caller must fix; ErrRetryExhausted is transient and worth retrying with a
// fresh random draw.
var (
	ErrInsufficientShapeTypes = errors.New("not enough shape types registered")
	ErrInsufficientColors     = errors.New("not enough colors in palette")
	ErrRetryExhausted         = errors.New("shape placement retries exhausted")
)

// Params configures one layout generation.
type Params struct {
	Width      int
	Height     int
	ShapeCount int
	// MinSize and MaxSize bound each shape's primary dimension.
	MinSize float64
	MaxSize float64
	// Margin is the minimum separation between expanded bounding boxes,
	// and between a shape and the canvas edge.
	Margin float64
	// MaxAttemptsPerShape caps placement retries for a single shape
	// before the whole layout attempt fails.
	MaxAttemptsPerShape int
	// SizeReductionRounds splits the retry budget into rounds; each round
	// after the first shrinks the maximum size by 10% so crowded layouts
	// still converge.
	SizeReductionRounds int
	// Palette overrides shape.Palette when non-empty.
	Palette []string
}

// DefaultParams mirrors the production defaults: a 400x250 canvas with ten
// shapes of 30-50px primary dimension.
func DefaultParams() Params {
	return Params{
		Width:               400,
		Height:              250,
		ShapeCount:          10,
		MinSize:             30,
		MaxSize:             50,
		Margin:              4,
		MaxAttemptsPerShape: 300,
		SizeReductionRounds: 4,
	}
}

// Layout is the full set of placed instances for one challenge, in draw
// order. TargetIndex selects the instance the user must click.
type Layout struct {
	Width       int              `json:"width"`
	Height      int              `json:"height"`
	Instances   []shape.Instance `json:"instances"`
	TargetIndex int              `json:"target_index"`
	Background  string           `json:"background"`
}

// Target returns the target instance.
func (l *Layout) Target() *shape.Instance {
	return &l.Instances[l.TargetIndex]
}

// Generate produces a layout of exactly p.ShapeCount instances with
// distinct types, distinct fill colors, and pairwise non-intersecting
// margin-expanded bounding boxes. It fails with ErrRetryExhausted when a
// shape cannot be placed within the retry budget; callers may retry the
// whole generation a bounded number of times.
func Generate(rng *rand.Rand, reg *shape.Registry, p Params) (*Layout, error) {
	if p.ShapeCount <= 0 {
		return nil, fmt.Errorf("layout: shape count %d: %w", p.ShapeCount, ErrInsufficientShapeTypes)
	}
	names := reg.TypeNames()
	if len(names) < p.ShapeCount {
		return nil, fmt.Errorf("layout: %d types registered, %d required: %w",
			len(names), p.ShapeCount, ErrInsufficientShapeTypes)
	}
	palette := p.Palette
	if len(palette) == 0 {
		palette = shape.Palette
	}
	if len(palette) < p.ShapeCount {
		return nil, fmt.Errorf("layout: %d colors available, %d required: %w",
			len(palette), p.ShapeCount, ErrInsufficientColors)
	}
	if p.MaxAttemptsPerShape <= 0 {
		p.MaxAttemptsPerShape = 300
	}
	if p.SizeReductionRounds <= 0 {
		p.SizeReductionRounds = 1
	}

	// Sample types and colors without replacement.
	types := sampleStrings(rng, names, p.ShapeCount)
	colors := sampleStrings(rng, palette, p.ShapeCount)

	sizes := shape.SizeRange{
		MinPrimary:   p.MinSize,
		MaxPrimary:   p.MaxSize,
		MinSecondary: p.MinSize * 0.5,
		MaxSecondary: p.MaxSize * 0.8,
	}

	l := &Layout{
		Width:      p.Width,
		Height:     p.Height,
		Instances:  make([]shape.Instance, 0, p.ShapeCount),
		Background: shape.Backgrounds[rng.Intn(len(shape.Backgrounds))],
	}
	placed := make([]shape.Rect, 0, p.ShapeCount)

	for i, typeName := range types {
		def, err := reg.Get(typeName)
		if err != nil {
			return nil, err
		}
		inst, bounds, ok := placeShape(rng, def, typeName, colors[i], sizes, p, placed)
		if !ok {
			return nil, fmt.Errorf("layout: shape %q: %w", typeName, ErrRetryExhausted)
		}
		l.Instances = append(l.Instances, inst)
		placed = append(placed, bounds)
	}

	l.TargetIndex = rng.Intn(len(l.Instances))
	return l, nil
}

// placeShape retries randomized positions and sizes until the candidate's
// margin-expanded bounding box clears every already-placed one. The size
// ceiling shrinks between rounds.
func placeShape(
	rng *rand.Rand,
	def shape.Definition,
	typeName, fill string,
	sizes shape.SizeRange,
	p Params,
	placed []shape.Rect,
) (shape.Instance, shape.Rect, bool) {
	attemptsPerRound := p.MaxAttemptsPerShape / p.SizeReductionRounds
	if attemptsPerRound < 1 {
		attemptsPerRound = 1
	}

	round := sizes
	for r := 0; r < p.SizeReductionRounds; r++ {
		if r > 0 {
			round.MaxPrimary *= 0.9
			round.MaxSecondary *= 0.9
			if round.MaxPrimary < round.MinPrimary {
				break
			}
		}

		for attempt := 0; attempt < attemptsPerRound; attempt++ {
			inst := shape.Instance{
				Type:     typeName,
				Color:    fill,
				Rotation: def.Rotation(rng),
				Params:   def.GenerateParams(rng, round),
			}

			// Bounding box relative to the origin tells us where the
			// center may go so the shape stays inside the canvas.
			atOrigin := def.Bounds(&inst)
			minCX := p.Margin - atOrigin.MinX
			maxCX := float64(p.Width) - p.Margin - atOrigin.MaxX
			minCY := p.Margin - atOrigin.MinY
			maxCY := float64(p.Height) - p.Margin - atOrigin.MaxY
			if minCX >= maxCX || minCY >= maxCY {
				// Too large for the canvas at this size; shrink.
				break
			}

			inst.CX = minCX + rng.Float64()*(maxCX-minCX)
			inst.CY = minCY + rng.Float64()*(maxCY-minCY)

			bounds := def.Bounds(&inst)
			expanded := bounds.Expand(p.Margin)
			collision := false
			for _, other := range placed {
				if expanded.Intersects(other.Expand(p.Margin)) {
					collision = true
					break
				}
			}
			if !collision {
				return inst, bounds, true
			}
		}
	}
	return shape.Instance{}, shape.Rect{}, false
}

// sampleStrings draws n distinct elements uniformly at random.
func sampleStrings(rng *rand.Rand, pool []string, n int) []string {
	idx := rng.Perm(len(pool))[:n]
	out := make([]string, n)
	for i, j := range idx {
		out[i] = pool[j]
	}
	return out
}
