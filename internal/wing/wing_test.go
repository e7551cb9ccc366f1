package wing_test

import (
	"errors"
	"testing"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
	"gonum.org/v1/gonum/spatial/r3"
)

var approx = cmpopts.EquateApprox(0, 1e-12)

// diamondLoft lofts a diamond section of the given chord and leading edge
// at each end.
func diamondLoft(t *testing.T, k *polykernel.Kernel, id kernel.OpID, baseLE r3.Vec, baseChord float64, tipLE r3.Vec, tipChord float64) {
	t.Helper()
	section := func(le r3.Vec, c float64) []r3.Vec {
		return []r3.Vec{
			le,
			r3.Add(le, r3.Vec{X: c / 2, Y: 0.05 * c}),
			r3.Add(le, r3.Vec{X: c}),
			r3.Add(le, r3.Vec{X: c / 2, Y: -0.05 * c}),
		}
	}
	require.NoError(t, k.Loft(id, section(baseLE, baseChord), section(tipLE, tipChord)))
}

func vertexAt(t *testing.T, k *polykernel.Kernel, op kernel.OpID, want r3.Vec) kernel.Query {
	t.Helper()
	ids, err := k.Evaluate(kernel.CreatedBy(op, kernel.Vertex))
	require.NoError(t, err)
	for _, id := range ids {
		p, err := k.VertexPoint(kernel.Entities(id))
		require.NoError(t, err)
		if r3.Norm(r3.Sub(p, want)) < 1e-9 {
			return kernel.Entities(id)
		}
	}
	t.Fatalf("no vertex at %v", want)
	return nil
}

// sweptWing is a tapered, swept wing: root chord 2, tip chord 1 with its
// leading edge 0.5 aft, span 4 along +z.
func sweptWing(t *testing.T) (*polykernel.Kernel, wing.ReferenceGeometry) {
	t.Helper()
	k := polykernel.New()
	diamondLoft(t, k, "wing", r3.Vec{}, 2, r3.Vec{X: 0.5, Z: 4}, 1)
	require.NoError(t, k.ConstructionPlane("reference", kernel.PlaneDef{
		Plane: kernel.NewPlane(r3.Vec{X: 1}, r3.Vec{Z: 3}), Width: 1, Height: 1,
	}))
	geo := wing.ReferenceGeometry{
		ReferenceFace: kernel.CreatedBy("reference", kernel.Face),
		Body:          kernel.CreatedBy("wing", kernel.Body),
	}
	for _, p := range []r3.Vec{{}, {X: 2}, {X: 1.5, Z: 4}, {X: 0.5, Z: 4}} {
		geo.Corners = append(geo.Corners, vertexAt(t, k, "wing", p))
	}
	return k, geo
}

func TestBuildFrame(t *testing.T) {
	k, geo := sweptWing(t)
	f, err := wing.BuildFrame(k, geo)
	require.NoError(t, err)

	want := &wing.LocalFrame{
		Points:                [4]r3.Vec{{}, {X: 2}, {X: 1.5, Z: 4}, {X: 0.5, Z: 4}},
		Normal:                r3.Vec{Z: 1},
		BaseChordVector:       r3.Vec{X: -2},
		TipChordVector:        r3.Vec{X: -2},
		TipDirection:          r3.Vec{X: -1},
		BaseNormalInPlane:     r3.Vec{X: 1},
		TipNormalInPlane:      r3.Vec{X: 1},
		VerticalDirectionBase: r3.Vec{Y: -2},
		VerticalDirectionTip:  r3.Vec{Y: -2},
		BaseChordLength:       2,
		TipChordLength:        1,
	}
	assert.Empty(t, cmp.Diff(want, f, approx))

	assert.InDelta(t, 4.0, f.Span(), 1e-12)
	assert.InDelta(t, f.BaseChordLength, r3.Norm(f.VerticalDirectionBase), 1e-12)

	base := f.BaseChordPlane()
	assert.True(t, cmp.Equal(r3.Vec{Z: -1}, base.Normal, approx), "base normal %v", base.Normal)
	assert.True(t, cmp.Equal(r3.Vec{}, base.Origin, approx))
	tip := f.TipChordPlane()
	assert.True(t, cmp.Equal(r3.Vec{X: 0.5, Z: 4}, tip.Origin, approx))
	assert.InDelta(t, 0, tip.SignedDistance(r3.Vec{X: 1.5, Z: 4}), 1e-12)

	w, h := f.SheetSize()
	assert.InDelta(t, 2.0, w, 1e-12)
	assert.InDelta(t, 0.2, h, 1e-12)
}

func TestBuildFrameIsDeterministic(t *testing.T) {
	k, geo := sweptWing(t)
	a, err := wing.BuildFrame(k, geo)
	require.NoError(t, err)
	b, err := wing.BuildFrame(k, geo)
	require.NoError(t, err)
	assert.Equal(t, a, b)
	assert.Len(t, k.Bodies(), 1, "building the frame does not touch the model")
}

func TestBuildFrameRejectsBadReference(t *testing.T) {
	tests := []struct {
		name  string
		alter func(g *wing.ReferenceGeometry)
	}{
		{"three corners", func(g *wing.ReferenceGeometry) { g.Corners = g.Corners[:3] }},
		{"five corners", func(g *wing.ReferenceGeometry) { g.Corners = append(g.Corners, g.Corners[0]) }},
		{"coincident corners", func(g *wing.ReferenceGeometry) { g.Corners[2] = g.Corners[1] }},
		{"corner selects nothing", func(g *wing.ReferenceGeometry) { g.Corners[0] = kernel.Nothing() }},
		{"corner selects many", func(g *wing.ReferenceGeometry) {
			g.Corners[3] = kernel.CreatedBy("wing", kernel.Vertex)
		}},
		{"no reference face", func(g *wing.ReferenceGeometry) { g.ReferenceFace = kernel.Nothing() }},
		{"reference along the chord", func(g *wing.ReferenceGeometry) {
			g.ReferenceFace = kernel.CreatedBy("chordwise", kernel.Face)
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			k, geo := sweptWing(t)
			require.NoError(t, k.ConstructionPlane("chordwise", kernel.PlaneDef{
				Plane: kernel.NewPlane(r3.Vec{}, r3.Vec{X: 1}), Width: 1, Height: 1,
			}))
			tt.alter(&geo)
			_, err := wing.BuildFrame(k, geo)
			require.ErrorIs(t, err, wing.ErrInsufficientReferenceGeometry)
		})
	}
}

func TestPlanes(t *testing.T) {
	k, geo := sweptWing(t)
	f, err := wing.BuildFrame(k, geo)
	require.NoError(t, err)

	var planes wing.Planes
	i, err := planes.Add(k, "a", f, kernel.NewPlane(r3.Vec{Z: 1}, r3.Vec{Z: 5}))
	require.NoError(t, err)
	j, err := planes.Add(k, "b", f, kernel.NewPlane(r3.Vec{Z: 2}, r3.Vec{Z: 1}))
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1}, []int{i, j})
	assert.Equal(t, 2, planes.Len())
	assert.True(t, cmp.Equal(r3.Vec{Z: 1}, planes.Plane(i).Normal, approx))

	_, err = planes.Add(k, "bad", f, kernel.NewPlane(r3.Vec{}, r3.Vec{}))
	require.ErrorIs(t, err, kernel.ErrInvalidInput)
	assert.Equal(t, 2, planes.Len())

	require.NoError(t, k.Split("cut", geo.Body, planes.Tool(j)))
	assert.Len(t, k.Bodies(), 2)

	ids, err := k.Evaluate(planes.All())
	require.NoError(t, err)
	assert.Len(t, ids, 2)

	require.NoError(t, planes.Remove(k, "cleanup"))
	assert.Equal(t, 0, planes.Len())
	for _, op := range []kernel.OpID{"a", "b"} {
		ids, err := k.Evaluate(kernel.PlaneTool(op))
		require.NoError(t, err)
		assert.Empty(t, ids)
	}
	require.NoError(t, planes.Remove(k, "again"))
}

func TestIsolateTrimsToTheChordSections(t *testing.T) {
	k := polykernel.New()
	// The corners come from a marker body; the wing body runs past both
	// ends of the marked span.
	diamondLoft(t, k, "marker", r3.Vec{}, 2, r3.Vec{Z: 4}, 2)
	diamondLoft(t, k, "wing", r3.Vec{Z: -1}, 2, r3.Vec{Z: 5}, 2)
	require.NoError(t, k.ConstructionPlane("reference", kernel.PlaneDef{
		Plane: kernel.NewPlane(r3.Vec{X: 1}, r3.Vec{Z: 1}), Width: 1, Height: 1,
	}))
	geo := wing.ReferenceGeometry{
		ReferenceFace: kernel.CreatedBy("reference", kernel.Face),
		Body:          kernel.CreatedBy("wing", kernel.Body),
	}
	for _, p := range []r3.Vec{{}, {X: 2}, {X: 2, Z: 4}, {Z: 4}} {
		geo.Corners = append(geo.Corners, vertexAt(t, k, "marker", p))
	}
	f, err := wing.BuildFrame(k, geo)
	require.NoError(t, err)

	var planes wing.Planes
	ws, diags, err := wing.Isolate(k, "feature", geo, f, &planes, nil)
	require.NoError(t, err)
	assert.Empty(t, diags)
	assert.Equal(t, 2, planes.Len())

	ids, err := k.Evaluate(ws.Query)
	require.NoError(t, err)
	require.Len(t, ids, 1)
	lo, hi, err := k.Extent(ws.Query, r3.Vec{Z: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, lo, 1e-9)
	assert.InDelta(t, 4, hi, 1e-9)

	// Trimmed ends are gone; the source wing is untouched.
	all, err := k.Evaluate(ws.All())
	require.NoError(t, err)
	assert.Equal(t, ids, all)
	v, err := k.Volume(geo.Body)
	require.NoError(t, err)
	assert.InDelta(t, 0.2*6, v, 1e-9)
}

func TestIsolateFailsWithoutBody(t *testing.T) {
	k, geo := sweptWing(t)
	f, err := wing.BuildFrame(k, geo)
	require.NoError(t, err)

	geo.Body = kernel.Nothing()
	var planes wing.Planes
	_, _, err = wing.Isolate(k, "feature", geo, f, &planes, nil)
	require.ErrorIs(t, err, kernel.ErrNotFound)
}

func TestAttempt(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	log := zap.New(core)
	boom := errors.New("boom")

	assert.Nil(t, wing.Attempt(log, "split", "f/split", func() error { return nil }))
	d := wing.Attempt(log, "delete", "f/delete", func() error { return boom })
	require.NotNil(t, d)
	assert.Equal(t, "delete (f/delete): boom", d.String())

	var ds wing.Diagnostics
	ds.Add(nil)
	ds.Add(d)
	assert.Len(t, ds, 1)

	assert.Equal(t, 1, logs.FilterMessage("split successful").Len())
	warn := logs.FilterMessage("best-effort step skipped").All()
	require.Len(t, warn, 1)
	assert.Equal(t, zapcore.WarnLevel, warn[0].Level)
	assert.Equal(t, "delete", warn[0].ContextMap()["step"])
}
