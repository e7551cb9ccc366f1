package structure_test

import (
	"testing"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/structure"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

func regenerate(t *testing.T, m structure.Mode) (*polykernel.Kernel, *structure.Result) {
	t.Helper()
	k, geo := testWing(t)
	res, err := structure.NewGenerator(k, nil).Regenerate(geo, structure.ParameterSet{Mode: m})
	require.NoError(t, err)
	return k, res
}

func chordExtent(t *testing.T, k *polykernel.Kernel, res *structure.Result) (lo, hi float64) {
	t.Helper()
	lo, hi, err := k.Extent(kernel.Entities(res.Bodies...), r3.Vec{X: 1})
	require.NoError(t, err)
	return lo, hi
}

func resultVolume(t *testing.T, k *polykernel.Kernel, res *structure.Result) float64 {
	t.Helper()
	v, err := k.Volume(kernel.Entities(res.Bodies...))
	require.NoError(t, err)
	return v
}

func contains(t *testing.T, k *polykernel.Kernel, res *structure.Result, x r3.Vec) bool {
	t.Helper()
	ok, err := k.Contains(kernel.Entities(res.Bodies...), x)
	require.NoError(t, err)
	return ok
}

func TestSolidSparByPosition(t *testing.T) {
	k, res := regenerate(t, structure.Stiffener{Member: structure.SparByPosition{
		Width: 0.2, BasePos: 0.25, TipPos: 0.25, Section: structure.SolidSpar{},
	}})

	require.Len(t, res.Bodies, 1)
	lo, hi := chordExtent(t, k, res)
	assert.InDelta(t, 0.4, lo, 1e-9)
	assert.InDelta(t, 0.6, hi, 1e-9)
	assert.InDelta(t, depthIntegral(0.4, 0.6)*testSpan, resultVolume(t, k, res), 1e-9)
	assert.Equal(t, "solid spar from position", res.Mode)
}

func TestSparAtLeadingEdge(t *testing.T) {
	k, res := regenerate(t, structure.Stiffener{Member: structure.SparByPosition{
		Width: 0.2, Section: structure.SolidSpar{},
	}})

	// The forward bounding plane misses the wing, so the slab is bounded by
	// the leading edge and still touches the centre plane.
	require.Len(t, res.Bodies, 1)
	lo, hi := chordExtent(t, k, res)
	assert.InDelta(t, 0, lo, 1e-9)
	assert.InDelta(t, 0.1, hi, 1e-9)
	assert.InDelta(t, depthIntegral(0, 0.1)*testSpan, resultVolume(t, k, res), 1e-9)

	var steps []string
	for _, d := range res.Diagnostics {
		steps = append(steps, d.Step)
		if d.Step == "spar split 2" {
			assert.ErrorIs(t, d.Err, kernel.ErrNoIntersection)
		}
	}
	assert.Contains(t, steps, "spar split 2")
}

func TestSparByPlane(t *testing.T) {
	tests := []struct {
		name   string
		flip   bool
		lo, hi float64
	}{
		{"aft", false, 0.5, 0.7},
		{"forward", true, 0.3, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, geo := testWing(t)
			face := addFace(t, k, "sparFace", kernel.NewPlane(r3.Vec{X: 0.5, Z: 2}, r3.Vec{X: 1}))
			res, err := structure.NewGenerator(k, nil).Regenerate(geo, structure.ParameterSet{
				Mode: structure.Stiffener{Member: structure.SparByPlane{
					Face: face, Width: 0.2, Flip: tt.flip, Section: structure.SolidSpar{},
				}},
			})
			require.NoError(t, err)

			require.Len(t, res.Bodies, 1)
			lo, hi := chordExtent(t, k, res)
			assert.InDelta(t, tt.lo, lo, 1e-9)
			assert.InDelta(t, tt.hi, hi, 1e-9)
			assert.InDelta(t, depthIntegral(tt.lo, tt.hi)*testSpan, resultVolume(t, k, res), 1e-9)
		})
	}
}

func TestIBeamSpar(t *testing.T) {
	k, res := regenerate(t, structure.Stiffener{Member: structure.SparByPosition{
		Width: 0.2, BasePos: 0.4, TipPos: 0.4, Section: structure.IBeam{Wall: 0.01},
	}})

	require.Len(t, res.Bodies, 1, "the halves are joined back into one body")
	solid := depthIntegral(0.7, 0.9) * testSpan
	v := resultVolume(t, k, res)
	assert.Greater(t, v, 0.0)
	assert.Less(t, v, solid)

	assert.True(t, contains(t, k, res, r3.Vec{X: 0.8, Z: 2}), "web at the centre plane")
	assert.False(t, contains(t, k, res, r3.Vec{X: 0.75, Z: 2}), "open between the flanges")
	assert.Equal(t, "I-beam spar from position", res.Mode)
}

func TestBoxSpar(t *testing.T) {
	for _, radius := range []float64{0, 0.002} {
		k, res := regenerate(t, structure.Stiffener{Member: structure.SparByPosition{
			Width: 0.2, BasePos: 0.4, TipPos: 0.4, Section: structure.Box{Wall: 0.01, FilletRadius: radius},
		}})

		require.Len(t, res.Bodies, 1)
		solid := depthIntegral(0.7, 0.9) * testSpan
		v := resultVolume(t, k, res)
		assert.Greater(t, v, 0.0)
		assert.Less(t, v, solid, "box with fillet %g is hollow", radius)
		assert.False(t, contains(t, k, res, r3.Vec{X: 0.8, Z: 2}))
		assert.True(t, contains(t, k, res, r3.Vec{X: 0.895, Z: 2}), "wall at the aft face")

		for _, d := range res.Diagnostics {
			assert.NotEqual(t, "box fillet", d.Step, "fillet %g: %v", radius, d.Err)
		}
	}
}

func TestIBeamWallTooThickRollsBack(t *testing.T) {
	k, geo := testWing(t)
	before := k.Bodies()

	_, err := structure.NewGenerator(k, nil).Regenerate(geo, structure.ParameterSet{
		Mode: structure.Stiffener{Member: structure.SparByPosition{
			Width: 0.2, BasePos: 0.4, TipPos: 0.4, Section: structure.IBeam{Wall: 0.15},
		}},
	})
	require.ErrorIs(t, err, structure.ErrStructuralGenerationFailed)
	assert.ErrorIs(t, err, kernel.ErrEmptyResult)

	var se *structure.Error
	require.ErrorAs(t, err, &se)
	assert.NotEmpty(t, se.HighlightIDs, "the spar halves are highlighted before rollback")
	assert.Equal(t, before, k.Bodies())
}
