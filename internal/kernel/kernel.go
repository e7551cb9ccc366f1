// Package kernel defines the narrow contract through which wing structure
// generation drives a solid-modeling kernel: construction planes, split,
// boolean, shell, fillet, delete, read-only evaluation, and a lazy query
// algebra for re-selecting entities after topology changes.
package kernel

import "gonum.org/v1/gonum/spatial/r3"

// Kernel is a solid-modeling kernel. Every mutating call either completes
// or leaves the model unchanged. Calls are synchronous and must be made in
// order; a Kernel is not safe for concurrent use.
type Kernel interface {
	// ConstructionPlane creates a finite planar sheet body usable as a tool.
	ConstructionPlane(id OpID, def PlaneDef) error
	// Copy duplicates bodies in place. Copies are created by id.
	Copy(id OpID, bodies Query) error
	// Split partitions targets along the surface of tool. A tool that
	// crosses none of the targets fails with ErrNoIntersection.
	Split(id OpID, targets, tool Query) error
	Boolean(id OpID, def BooleanDef) error
	// Shell hollows bodies, removing the selected faces. Negative
	// thickness hollows inward.
	Shell(id OpID, entities Query, thickness float64) error
	Fillet(id OpID, edges Query, radius float64) error
	// Cylinder creates a solid cylinder between two cap centres.
	Cylinder(id OpID, top, bottom r3.Vec, radius float64) error
	DeleteBodies(id OpID, entities Query) error

	Evaluate(q Query) ([]EntityID, error)
	VertexPoint(vertex Query) (r3.Vec, error)
	FaceTangentPlane(face Query, u, v float64) (Plane, error)
	ApproximateCentroid(entities Query) (r3.Vec, error)
}
