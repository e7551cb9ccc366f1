package structure_test

import (
	"math"
	"testing"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

// The test wing is a straight prism with a diamond section: chord 2 along
// +x, thickness 0.2 along y, span 4 along +z. Its volume is 0.8 and its
// depth at chord position x <= 1 is 0.2x.
const (
	testChord = 2.0
	testSpan  = 4.0
	wingOp    = kernel.OpID("wing")
	refOp     = kernel.OpID("reference")
)

var diamond = []r3.Vec{{X: 0}, {X: 1, Y: 0.1}, {X: 2}, {X: 1, Y: -0.1}}

func testWing(t *testing.T) (*polykernel.Kernel, wing.ReferenceGeometry) {
	t.Helper()
	k := polykernel.New()
	tip := make([]r3.Vec, len(diamond))
	for i, p := range diamond {
		tip[i] = r3.Vec{X: p.X, Y: p.Y, Z: testSpan}
	}
	require.NoError(t, k.Loft(wingOp, diamond, tip))
	face := addFace(t, k, refOp, kernel.NewPlane(r3.Vec{X: 1}, r3.Vec{Z: 1}))

	geo := wing.ReferenceGeometry{
		ReferenceFace: face,
		Body:          kernel.CreatedBy(wingOp, kernel.Body),
	}
	for _, p := range []r3.Vec{{}, {X: testChord}, {X: testChord, Z: testSpan}, {Z: testSpan}} {
		geo.Corners = append(geo.Corners, vertexAt(t, k, p))
	}
	return k, geo
}

func addFace(t *testing.T, k *polykernel.Kernel, op kernel.OpID, p kernel.Plane) kernel.Query {
	t.Helper()
	require.NoError(t, k.ConstructionPlane(op, kernel.PlaneDef{Plane: p, Width: 1, Height: 1}))
	return kernel.EntityFilter(kernel.CreatedBy(op, kernel.Face), kernel.Face)
}

func vertexAt(t *testing.T, k *polykernel.Kernel, want r3.Vec) kernel.Query {
	t.Helper()
	ids, err := k.Evaluate(kernel.CreatedBy(wingOp, kernel.Vertex))
	require.NoError(t, err)
	for _, id := range ids {
		p, err := k.VertexPoint(kernel.Entities(id))
		require.NoError(t, err)
		if r3.Norm(r3.Sub(p, want)) < 1e-9 {
			return kernel.Entities(id)
		}
	}
	t.Fatalf("no wing vertex at %v", want)
	return nil
}

// depthIntegral is the section area of the test wing between chord
// positions a and b, both on the forward half.
func depthIntegral(a, b float64) float64 {
	return 0.1 * (b*b - a*a)
}

func prismArea(r float64) float64 {
	n := float64(polykernel.CylinderSegments)
	return n * r * r * math.Tan(math.Pi/n)
}
