package wing

import (
	"github.com/alexiusacademia/wingstruct/internal/kernel"
)

// Planes is an index-addressed arena of the construction planes built
// during one regeneration. Planes are referenced by index, and the arena
// removes them all once the structure is complete.
type Planes struct {
	ops    []kernel.OpID
	planes []kernel.Plane
}

// Add builds a construction plane sized for the wing and returns its index.
func (a *Planes) Add(k kernel.Kernel, id kernel.OpID, f *LocalFrame, p kernel.Plane) (int, error) {
	if err := k.ConstructionPlane(id, f.Sheet(p)); err != nil {
		return -1, err
	}
	a.ops = append(a.ops, id)
	a.planes = append(a.planes, p.Unit())
	return len(a.ops) - 1, nil
}

// Tool selects the sheet body of plane i for use as a split tool.
func (a *Planes) Tool(i int) kernel.Query {
	return kernel.PlaneTool(a.ops[i])
}

// Plane returns the geometry of plane i.
func (a *Planes) Plane(i int) kernel.Plane {
	return a.planes[i]
}

// Len returns the number of planes built.
func (a *Planes) Len() int {
	return len(a.ops)
}

// All selects every plane in the arena.
func (a *Planes) All() kernel.Query {
	qs := make([]kernel.Query, len(a.ops))
	for i := range a.ops {
		qs[i] = a.Tool(i)
	}
	return kernel.Union(qs...)
}

// Remove deletes every plane in the arena.
func (a *Planes) Remove(k kernel.Kernel, id kernel.OpID) error {
	if len(a.ops) == 0 {
		return nil
	}
	if err := k.DeleteBodies(id, a.All()); err != nil {
		return err
	}
	a.ops, a.planes = nil, nil
	return nil
}
