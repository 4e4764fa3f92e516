package shape

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// instanceFor builds a deterministic instance of the family centered on
// (cx, cy).
func instanceFor(t *testing.T, def Definition, cx, cy float64) *Instance {
	t.Helper()
	rng := rand.New(rand.NewSource(42))
	sizes := SizeRange{MinPrimary: 30, MaxPrimary: 50, MinSecondary: 15, MaxSecondary: 40}
	return &Instance{
		Type:     def.TypeName(),
		CX:       cx,
		CY:       cy,
		Rotation: def.Rotation(rng),
		Color:    "#FF0000",
		Params:   def.GenerateParams(rng, sizes),
	}
}

func TestDefinitions_ContainsCenter(t *testing.T) {
	reg := Default()

	for _, name := range reg.TypeNames() {
		t.Run(name, func(t *testing.T) {
			def, err := reg.Get(name)
			require.NoError(t, err)

			in := instanceFor(t, def, 100, 100)
			assert.True(t, def.Contains(in, 100, 100), "中心は必ず内側")
		})
	}
}

func TestDefinitions_FarPointOutside(t *testing.T) {
	reg := Default()

	for _, name := range reg.TypeNames() {
		t.Run(name, func(t *testing.T) {
			def, err := reg.Get(name)
			require.NoError(t, err)

			in := instanceFor(t, def, 100, 100)
			assert.False(t, def.Contains(in, 350, 350), "図形から遠い点は外側")
			assert.False(t, def.Contains(in, -50, 100))
		})
	}
}

func TestDefinitions_BoundsCoverHits(t *testing.T) {
	reg := Default()
	rng := rand.New(rand.NewSource(7))

	// バウンディングボックス外の点がContainsでtrueになることはない
	for _, name := range reg.TypeNames() {
		t.Run(name, func(t *testing.T) {
			def, err := reg.Get(name)
			require.NoError(t, err)

			in := instanceFor(t, def, 150, 120)
			bounds := def.Bounds(in)
			require.Greater(t, bounds.Width(), 0.0)
			require.Greater(t, bounds.Height(), 0.0)

			for i := 0; i < 200; i++ {
				x := 150 + (rng.Float64()-0.5)*200
				y := 120 + (rng.Float64()-0.5)*200
				if def.Contains(in, x, y) {
					assert.True(t, bounds.Contains(x, y),
						"(%f, %f)がヒットなのにバウンディングボックス外", x, y)
				}
			}
		})
	}
}

func TestDefinitions_GenerateParamsWithinRange(t *testing.T) {
	reg := Default()
	rng := rand.New(rand.NewSource(99))
	sizes := SizeRange{MinPrimary: 30, MaxPrimary: 50, MinSecondary: 15, MaxSecondary: 40}

	for _, name := range reg.TypeNames() {
		t.Run(name, func(t *testing.T) {
			def, err := reg.Get(name)
			require.NoError(t, err)

			for i := 0; i < 50; i++ {
				params := def.GenerateParams(rng, sizes)
				assert.NotEmpty(t, params)
				for key, v := range params {
					assert.Greater(t, v, 0.0, "パラメータ%sは正", key)
				}
			}
		})
	}
}

func TestRotationPolicies(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("正常系: 回転対称な図形は常に0", func(t *testing.T) {
		for i := 0; i < 20; i++ {
			assert.Zero(t, Circle{}.Rotation(rng))
			assert.Zero(t, Sphere{}.Rotation(rng))
			assert.Zero(t, Cylinder{}.Rotation(rng))
			assert.Zero(t, Cone{}.Rotation(rng))
			assert.Zero(t, Pyramid{}.Rotation(rng))
		}
	})

	t.Run("正常系: 立方体は小さな傾きのみ", func(t *testing.T) {
		maxTilt := math.Pi / 12
		minTilt := math.Pi / 32
		for i := 0; i < 100; i++ {
			r := Cube{}.Rotation(rng)
			abs := math.Abs(r)
			assert.LessOrEqual(t, abs, maxTilt+1e-9)
			assert.GreaterOrEqual(t, abs, minTilt-1e-9)
		}
	})

	t.Run("正常系: 平面図形は全範囲", func(t *testing.T) {
		for i := 0; i < 100; i++ {
			r := Square{}.Rotation(rng)
			assert.GreaterOrEqual(t, r, 0.0)
			assert.Less(t, r, 2*math.Pi)
		}
	})
}

func TestSquare_RotationInvariance(t *testing.T) {
	// 90度回転した正方形は同じ領域を覆う
	base := &Instance{Type: "square", CX: 50, CY: 50, Rotation: 0,
		Params: map[string]float64{"side": 40}}
	rotated := &Instance{Type: "square", CX: 50, CY: 50, Rotation: math.Pi / 2,
		Params: map[string]float64{"side": 40}}

	sq := Square{}
	points := [][2]float64{{50, 50}, {35, 35}, {65, 65}, {50, 69}, {50, 71}, {80, 80}}
	for _, p := range points {
		assert.Equal(t, sq.Contains(base, p[0], p[1]), sq.Contains(rotated, p[0], p[1]),
			"point (%f, %f)", p[0], p[1])
	}
}

func TestSquare_RotatedContains(t *testing.T) {
	// 45度回転した正方形: 角は領域外、辺の中点方向は内側
	in := &Instance{Type: "square", CX: 0, CY: 0, Rotation: math.Pi / 4,
		Params: map[string]float64{"side": 20}}
	sq := Square{}

	// 回転後の頂点は軸上、距離 10*sqrt(2)
	assert.True(t, sq.Contains(in, 14.1, 0))
	assert.False(t, sq.Contains(in, 14.2, 0.5))
	// 元の角の位置(10,10)は回転後は外
	assert.False(t, sq.Contains(in, 10, 10))
	assert.True(t, sq.Contains(in, 5, 5))
}

func TestCross_ContainsArms(t *testing.T) {
	in := &Instance{Type: "cross", CX: 0, CY: 0, Rotation: 0,
		Params: map[string]float64{"size": 40, "thickness": 12}}
	c := Cross{}

	assert.True(t, c.Contains(in, 0, 0))
	assert.True(t, c.Contains(in, 18, 0), "横腕")
	assert.True(t, c.Contains(in, 0, -18), "縦腕")
	assert.False(t, c.Contains(in, 15, 15), "腕の間の角")
}

func TestStar5_ContainsBetweenRays(t *testing.T) {
	in := &Instance{Type: "star5", CX: 0, CY: 0, Rotation: 0,
		Params: map[string]float64{"outer": 20, "inner": 8}}
	s := Star5{}

	// 真上の光条の先端付近
	assert.True(t, s.Contains(in, 0, -19))
	// 光条の間、内径より外
	assert.False(t, s.Contains(in, 0, 15))
	assert.True(t, s.Contains(in, 0, 5))
}

func TestCylinder_ContainsCaps(t *testing.T) {
	in := &Instance{Type: "cylinder", CX: 0, CY: 0, Rotation: 0,
		Params: map[string]float64{"radius": 15, "height": 40}}
	c := Cylinder{}

	assert.True(t, c.Contains(in, 0, 0), "胴体")
	assert.True(t, c.Contains(in, 0, -24), "上面キャップ")
	assert.True(t, c.Contains(in, 0, 24), "底面キャップ")
	assert.False(t, c.Contains(in, 0, -26))
	assert.False(t, c.Contains(in, 16, 0))
}

func TestCone_ContainsFlankAndBase(t *testing.T) {
	in := &Instance{Type: "cone", CX: 0, CY: 0, Rotation: 0,
		Params: map[string]float64{"radius": 15, "height": 40}}
	c := Cone{}

	assert.True(t, c.Contains(in, 0, -19), "頂点付近")
	assert.True(t, c.Contains(in, 0, 22), "底面の楕円")
	assert.False(t, c.Contains(in, 14, -15), "頂点横の空白")
}

func TestCube_ContainsProjectedFaces(t *testing.T) {
	in := &Instance{Type: "cube", CX: 0, CY: 0, Rotation: 0,
		Params: map[string]float64{"side": 30, "depth_factor": 0.5}}
	c := Cube{}

	assert.True(t, c.Contains(in, 0, 0), "正面")
	// 奥行きは -45度方向(右上)へ side*0.5 ずれる
	assert.True(t, c.Contains(in, 18, -18), "投影面")
	assert.False(t, c.Contains(in, -18, -18), "左上は面の外")
}

func TestInstance_Param(t *testing.T) {
	in := &Instance{Params: map[string]float64{"side": 12}}

	assert.Equal(t, 12.0, in.Param("side"))
	assert.Zero(t, in.Param("missing"))
}
