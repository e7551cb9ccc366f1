package kernel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"gonum.org/v1/gonum/spatial/r3"
)

func TestOpIDHierarchy(t *testing.T) {
	root := OpID("wingStructure-1")
	loop := root.Child("multiRibLoop").Index(2).Child("ribSplit1")

	assert.Equal(t, OpID("wingStructure-1/multiRibLoop/2/ribSplit1"), loop)
	assert.True(t, loop.HasPrefix(root))
	assert.True(t, loop.HasPrefix(root.Child("multiRibLoop")))
	assert.True(t, root.HasPrefix(root))
	assert.False(t, OpID("wingStructure-10").HasPrefix(root))
	assert.False(t, root.HasPrefix(loop))
}

func TestPlane(t *testing.T) {
	p := NewPlane(r3.Vec{Z: 1}, r3.Vec{Z: 4})
	assert.True(t, p.Valid())
	assert.InDelta(t, 2.0, p.SignedDistance(r3.Vec{X: 5, Z: 3}), 1e-12)
	assert.InDelta(t, -1.0, p.SignedDistance(r3.Vec{}), 1e-12)
	assert.InDelta(t, 1.0, r3.Norm(p.Unit().Normal), 1e-12)

	assert.False(t, NewPlane(r3.Vec{}, r3.Vec{}).Valid())
}

func TestOpErrorUnwraps(t *testing.T) {
	err := error(&OpError{Op: "split", ID: "a/b", Err: ErrNoIntersection})
	assert.ErrorIs(t, err, ErrNoIntersection)
	assert.Equal(t, "split a/b: tool does not intersect target", err.Error())
}

func TestBooleanOpString(t *testing.T) {
	assert.Equal(t, "union", BooleanUnion.String())
	assert.Equal(t, "subtraction", BooleanSubtraction.String())
	assert.Equal(t, "intersection", BooleanIntersection.String())
	assert.Equal(t, "BooleanOp(7)", BooleanOp(7).String())

	// Query combinators share the package namespace with the op constants.
	q := Union(CreatedBy("a", Body), Subtraction(CreatedBy("b", Body), Nothing()))
	assert.NotNil(t, q)
}
