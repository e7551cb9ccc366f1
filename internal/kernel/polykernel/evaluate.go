package polykernel

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// VertexPoint returns the position of the single vertex selected by q.
func (k *Kernel) VertexPoint(q kernel.Query) (r3.Vec, error) {
	refs, err := k.eval(q)
	if err != nil {
		return r3.Vec{}, opErr("evVertexPoint", "", err)
	}
	var verts []ref
	for _, r := range refs {
		if r.typ == kernel.Vertex {
			verts = append(verts, r)
		}
	}
	switch len(verts) {
	case 0:
		return r3.Vec{}, opErr("evVertexPoint", "", kernel.ErrNotFound)
	case 1:
		return k.points(verts[0])[0], nil
	}
	return r3.Vec{}, opErr("evVertexPoint", "", fmt.Errorf("%d vertices selected: %w", len(verts), kernel.ErrInvalidInput))
}

// FaceTangentPlane returns the plane of the first face in q. For sheets the
// origin is placed at the (u, v) parameter; solid facets are evaluated at
// their centroid.
func (k *Kernel) FaceTangentPlane(q kernel.Query, u, v float64) (kernel.Plane, error) {
	refs, err := k.eval(q)
	if err != nil {
		return kernel.Plane{}, opErr("evFaceTangentPlane", "", err)
	}
	for _, r := range refs {
		if r.typ != kernel.Face {
			continue
		}
		if isSheet(r.owner) {
			def := k.sheet(r.owner).def
			x, y := sheetAxes(def)
			o := r3.Add(def.Plane.Origin, r3.Add(
				r3.Scale((u-0.5)*def.Width, x),
				r3.Scale((v-0.5)*def.Height, y)))
			return kernel.Plane{Origin: o, Normal: def.Plane.Normal, XDir: x}, nil
		}
		_, c, err := k.lookup(r)
		if err != nil {
			return kernel.Plane{}, opErr("evFaceTangentPlane", "", err)
		}
		f := c.faces[r.i]
		x := r3.Unit(r3.Sub(c.verts[f.loop[1]], c.verts[f.loop[0]]))
		return kernel.Plane{Origin: c.facetCentroid(r.i), Normal: c.hs[f.h].n, XDir: x}, nil
	}
	return kernel.Plane{}, opErr("evFaceTangentPlane", "", kernel.ErrNotFound)
}

// ApproximateCentroid averages the centroids of the selected entities.
func (k *Kernel) ApproximateCentroid(q kernel.Query) (r3.Vec, error) {
	refs, err := k.eval(q)
	if err != nil {
		return r3.Vec{}, opErr("evApproximateCentroid", "", err)
	}
	if len(refs) == 0 {
		return r3.Vec{}, opErr("evApproximateCentroid", "", kernel.ErrNotFound)
	}
	var sum r3.Vec
	for _, r := range refs {
		sum = r3.Add(sum, k.centroid(r))
	}
	return r3.Scale(1/float64(len(refs)), sum), nil
}

func (k *Kernel) centroid(r ref) r3.Vec {
	if isSheet(r.owner) {
		return k.sheet(r.owner).def.Plane.Origin
	}
	if r.typ == kernel.Body {
		b := k.body(r.owner)
		var vol float64
		var m r3.Vec
		for _, c := range b.cells {
			vol += c.volume
			m = r3.Add(m, r3.Scale(c.volume, c.centroid))
		}
		return r3.Scale(1/vol, m)
	}
	return mean(k.points(r))
}

// Bodies returns the ids of all solid bodies in creation order.
func (k *Kernel) Bodies() []kernel.EntityID {
	ids := make([]kernel.EntityID, len(k.bodies))
	for i, b := range k.bodies {
		ids[i] = b.id
	}
	return ids
}

// Volume returns the total volume of the solid bodies selected by q.
func (k *Kernel) Volume(q kernel.Query) (float64, error) {
	bodies, err := k.solids(q)
	if err != nil {
		return 0, err
	}
	var v float64
	for _, b := range bodies {
		v += b.volume()
	}
	return v, nil
}

// Extent returns the range of the selected bodies projected on dir.
func (k *Kernel) Extent(q kernel.Query, dir r3.Vec) (lo, hi float64, err error) {
	pts, err := k.Vertices(q)
	if err != nil {
		return 0, 0, err
	}
	if len(pts) == 0 {
		return 0, 0, kernel.ErrNotFound
	}
	u := r3.Unit(dir)
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, p := range pts {
		d := r3.Dot(u, p)
		lo, hi = math.Min(lo, d), math.Max(hi, d)
	}
	return lo, hi, nil
}

// Vertices returns every cell vertex of the selected bodies.
func (k *Kernel) Vertices(q kernel.Query) ([]r3.Vec, error) {
	bodies, err := k.solids(q)
	if err != nil {
		return nil, err
	}
	var pts []r3.Vec
	for _, b := range bodies {
		for _, c := range b.cells {
			pts = append(pts, c.verts...)
		}
	}
	return pts, nil
}

// Contains reports whether x lies in the material of the selected bodies.
func (k *Kernel) Contains(q kernel.Query, x r3.Vec) (bool, error) {
	bodies, err := k.solids(q)
	if err != nil {
		return false, err
	}
	for _, b := range bodies {
		for _, c := range b.cells {
			if c.contains(x) {
				return true, nil
			}
		}
	}
	return false, nil
}
