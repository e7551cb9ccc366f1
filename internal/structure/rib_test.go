package structure_test

import (
	"sort"
	"testing"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/structure"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/spatial/r3"
)

type slab struct {
	From, To, Volume float64
}

// slabs lists the result bodies by spanwise extent.
func slabs(t *testing.T, k *polykernel.Kernel, ids []kernel.EntityID) []slab {
	t.Helper()
	var out []slab
	for _, id := range ids {
		lo, hi, err := k.Extent(kernel.Entities(id), r3.Vec{Z: 1})
		require.NoError(t, err)
		v, err := k.Volume(kernel.Entities(id))
		require.NoError(t, err)
		out = append(out, slab{From: lo, To: hi, Volume: v})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].From < out[j].From })
	return out
}

func TestMultiRib(t *testing.T) {
	k, geo := testWing(t)
	p := structure.ParameterSet{Mode: structure.Rib{Width: 0.1, Layout: structure.MultiRib{Count: 3}}}

	res, err := structure.NewGenerator(k, nil).Regenerate(geo, p)
	require.NoError(t, err)

	want := []slab{
		{From: 0.95, To: 1.05, Volume: 0.02},
		{From: 1.95, To: 2.05, Volume: 0.02},
		{From: 2.95, To: 3.05, Volume: 0.02},
	}
	got := slabs(t, k, res.Bodies)
	assert.Empty(t, cmp.Diff(want, got, cmpopts.EquateApprox(0, 1e-9)))
	assert.Equal(t, "multi-rib", res.Mode)

	// The source wing is untouched.
	v, err := k.Volume(geo.Body)
	require.NoError(t, err)
	assert.InDelta(t, 0.8, v, 1e-9)
}

func TestMultiRibWithoutRibs(t *testing.T) {
	for _, n := range []int{0, -2} {
		k, geo := testWing(t)
		p := structure.ParameterSet{Mode: structure.Rib{Width: 0.1, Layout: structure.MultiRib{Count: n}}}

		res, err := structure.NewGenerator(k, nil).Regenerate(geo, p)
		require.NoError(t, err)
		got := slabs(t, k, res.Bodies)
		assert.Empty(t, cmp.Diff([]slab{{From: 0, To: testSpan, Volume: 0.8}}, got, cmpopts.EquateApprox(0, 1e-9)),
			"count %d keeps the isolated wing", n)
	}
}

func TestRibOnPlane(t *testing.T) {
	tests := []struct {
		name string
		flip bool
		want slab
	}{
		{"forward", false, slab{From: 2.5, To: 2.7, Volume: 0.04}},
		{"flipped", true, slab{From: 1.3, To: 1.5, Volume: 0.04}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, geo := testWing(t)
			face := addFace(t, k, "ribFace", kernel.NewPlane(r3.Vec{X: 1, Z: 2}, r3.Vec{Z: 1}))
			p := structure.ParameterSet{Mode: structure.Rib{
				Width:  0.2,
				Flip:   tt.flip,
				Layout: structure.OnPlane{Face: face, Offset: 0.5},
			}}

			res, err := structure.NewGenerator(k, nil).Regenerate(geo, p)
			require.NoError(t, err)
			got := slabs(t, k, res.Bodies)
			assert.Empty(t, cmp.Diff([]slab{tt.want}, got, cmpopts.EquateApprox(0, 1e-9)))
		})
	}
}

func TestRibOnPlaneOutsideWingLeavesNothing(t *testing.T) {
	k, geo := testWing(t)
	face := addFace(t, k, "ribFace", kernel.NewPlane(r3.Vec{X: 1, Z: 2}, r3.Vec{Z: 1}))
	p := structure.ParameterSet{Mode: structure.Rib{
		Width:  0.2,
		Layout: structure.OnPlane{Face: face, Offset: 10},
	}}

	res, err := structure.NewGenerator(k, nil).Regenerate(geo, p)
	require.NoError(t, err, "rib splits are best effort")
	assert.Empty(t, res.Bodies)

	var steps []string
	for _, d := range res.Diagnostics {
		steps = append(steps, d.Step)
	}
	assert.Contains(t, steps, "rib split 1")
	assert.Contains(t, steps, "rib split 2")
}

func TestRegenerationIsDeterministic(t *testing.T) {
	p := structure.ParameterSet{Mode: structure.Rib{Width: 0.05, Layout: structure.MultiRib{Count: 5}}}

	var runs [2][]slab
	var ids [2]kernel.OpID
	for i := range runs {
		k, geo := testWing(t)
		res, err := structure.NewGenerator(k, nil).Regenerate(geo, p)
		require.NoError(t, err)
		runs[i] = slabs(t, k, res.Bodies)
		ids[i] = res.ID
	}
	require.Len(t, runs[0], 5)
	assert.Empty(t, cmp.Diff(runs[0], runs[1], cmpopts.EquateApprox(0, 1e-12)))
	assert.NotEqual(t, ids[0], ids[1], "every regeneration gets its own feature id")
}
