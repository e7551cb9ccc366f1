package kernel

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/spatial/r3"
)

// Tolerance is the length (m) below which two points or a point and a plane
// are treated as coincident.
const Tolerance = 1e-7

// EntityType selects the topological level of an entity query.
type EntityType int

const (
	Body EntityType = iota
	Face
	Edge
	Vertex
)

func (t EntityType) String() string {
	switch t {
	case Body:
		return "body"
	case Face:
		return "face"
	case Edge:
		return "edge"
	case Vertex:
		return "vertex"
	}
	return fmt.Sprintf("EntityType(%d)", int(t))
}

// EntityID is an opaque kernel handle. IDs are only valid until the next
// topology-changing call; callers should hold queries, not IDs.
type EntityID string

// OpID names one kernel operation. IDs are hierarchical so that a
// CreatedBy query on a parent id matches everything created beneath it.
type OpID string

// Child returns the id of a named sub-operation.
func (id OpID) Child(name string) OpID {
	return OpID(string(id) + "/" + name)
}

// Index returns the id of the i-th element of an operation array.
func (id OpID) Index(i int) OpID {
	return OpID(fmt.Sprintf("%s/%d", id, i))
}

// HasPrefix reports whether id equals parent or lives beneath it.
func (id OpID) HasPrefix(parent OpID) bool {
	if id == parent {
		return true
	}
	n := len(parent)
	return len(id) > n && id[:n] == parent && id[n] == '/'
}

// Plane is an oriented infinite plane. XDir is optional and only orients
// finite construction planes.
type Plane struct {
	Origin r3.Vec
	Normal r3.Vec
	XDir   r3.Vec
}

// NewPlane returns a plane through origin with the given normal.
func NewPlane(origin, normal r3.Vec) Plane {
	return Plane{Origin: origin, Normal: normal}
}

// Unit returns the plane with a unit normal.
func (p Plane) Unit() Plane {
	n := r3.Norm(p.Normal)
	if n == 0 {
		return p
	}
	p.Normal = r3.Scale(1/n, p.Normal)
	return p
}

// Valid reports whether the plane has a usable normal.
func (p Plane) Valid() bool {
	n := r3.Norm(p.Normal)
	return n > 0 && !math.IsNaN(n) && !math.IsInf(n, 0)
}

// SignedDistance returns the distance from the plane to x, positive on the
// side the normal points to.
func (p Plane) SignedDistance(x r3.Vec) float64 {
	u := p.Unit()
	return r3.Dot(u.Normal, r3.Sub(x, u.Origin))
}

// PlaneDef describes a finite construction plane. Width runs along XDir and
// Height along Normal x XDir.
type PlaneDef struct {
	Plane  Plane
	Width  float64
	Height float64
}

// BooleanOp selects the boolean combination.
type BooleanOp int

const (
	BooleanUnion BooleanOp = iota
	BooleanSubtraction
	BooleanIntersection
)

func (op BooleanOp) String() string {
	switch op {
	case BooleanUnion:
		return "union"
	case BooleanSubtraction:
		return "subtraction"
	case BooleanIntersection:
		return "intersection"
	}
	return fmt.Sprintf("BooleanOp(%d)", int(op))
}

// BooleanDef is the input of a boolean operation. Union and Intersection
// combine all Tools into one body; Subtraction removes Tools from Targets.
type BooleanDef struct {
	Tools   Query
	Targets Query
	Op      BooleanOp
}
