package polykernel

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// Evaluate resolves q against the current model.
func (k *Kernel) Evaluate(q kernel.Query) ([]kernel.EntityID, error) {
	refs, err := k.eval(q)
	if err != nil {
		return nil, err
	}
	ids := make([]kernel.EntityID, len(refs))
	for i, r := range refs {
		ids[i] = r.id()
	}
	return ids, nil
}

type selection struct {
	refs []ref
	seen map[kernel.EntityID]bool
}

func (s *selection) add(rs ...ref) {
	if s.seen == nil {
		s.seen = make(map[kernel.EntityID]bool)
	}
	for _, r := range rs {
		id := r.id()
		if s.seen[id] {
			continue
		}
		s.seen[id] = true
		s.refs = append(s.refs, r)
	}
}

func (k *Kernel) eval(q kernel.Query) ([]ref, error) {
	var s selection
	switch q := q.(type) {
	case nil, kernel.QNothing:
		return nil, nil

	case kernel.QEntities:
		for _, id := range q.IDs {
			r, err := parseRef(id)
			if err != nil {
				return nil, err
			}
			// Stale handles resolve to nothing.
			if _, _, err := k.lookup(r); err == nil {
				s.add(r)
			}
		}

	case kernel.QCreatedBy:
		for _, sh := range k.sheets {
			if sh.op.HasPrefix(q.Op) {
				s.add(k.subEntities(sh.id, q.Type)...)
			}
		}
		for _, b := range k.bodies {
			if b.createdBy(q.Op) {
				s.add(k.subEntities(b.id, q.Type)...)
			}
		}

	case kernel.QOwnedByBody:
		of, err := k.eval(q.Of)
		if err != nil {
			return nil, err
		}
		for _, r := range of {
			s.add(k.subEntities(r.owner, q.Type)...)
		}

	case kernel.QOwnerBody:
		of, err := k.eval(q.Of)
		if err != nil {
			return nil, err
		}
		for _, r := range of {
			s.add(r.ownerRef())
		}

	case kernel.QEntityFilter:
		of, err := k.eval(q.Of)
		if err != nil {
			return nil, err
		}
		for _, r := range of {
			if r.typ == q.Type {
				s.add(r)
			}
		}

	case kernel.QIntersectsPlane:
		of, err := k.eval(q.Of)
		if err != nil {
			return nil, err
		}
		p := q.Plane.Unit()
		for _, r := range of {
			lo, hi := math.Inf(1), math.Inf(-1)
			for _, x := range k.points(r) {
				d := p.SignedDistance(x)
				lo, hi = math.Min(lo, d), math.Max(hi, d)
			}
			// Touching counts: a slab bounded by the plane still meets it.
			if lo <= onTol && hi >= -onTol {
				s.add(r)
			}
		}

	case kernel.QCoincidesWithPlane:
		of, err := k.eval(q.Of)
		if err != nil {
			return nil, err
		}
		p := q.Plane.Unit()
		for _, r := range of {
			if r.typ == kernel.Body {
				continue
			}
			pts := k.points(r)
			on := len(pts) > 0
			for _, x := range pts {
				if math.Abs(p.SignedDistance(x)) > onTol {
					on = false
					break
				}
			}
			if on {
				s.add(r)
			}
		}

	case kernel.QUnion:
		for _, sub := range q.Of {
			rs, err := k.eval(sub)
			if err != nil {
				return nil, err
			}
			s.add(rs...)
		}

	case kernel.QSubtraction:
		from, err := k.eval(q.From)
		if err != nil {
			return nil, err
		}
		minus, err := k.eval(q.Minus)
		if err != nil {
			return nil, err
		}
		drop := make(map[kernel.EntityID]bool, len(minus))
		for _, r := range minus {
			drop[r.id()] = true
		}
		for _, r := range from {
			if !drop[r.id()] {
				s.add(r)
			}
		}

	default:
		return nil, fmt.Errorf("unsupported query %T: %w", q, kernel.ErrInvalidInput)
	}
	return s.refs, nil
}

// lookup returns the body and cell addressed by r; sheets yield nil for both.
func (k *Kernel) lookup(r ref) (*body, *cell, error) {
	if isSheet(r.owner) {
		if k.sheet(r.owner) == nil {
			return nil, nil, fmt.Errorf("sheet %s: %w", r.owner, kernel.ErrNotFound)
		}
		return nil, nil, nil
	}
	b := k.body(r.owner)
	if b == nil {
		return nil, nil, fmt.Errorf("body %s: %w", r.owner, kernel.ErrNotFound)
	}
	if r.typ == kernel.Body {
		return b, nil, nil
	}
	if r.cell < 0 || r.cell >= len(b.cells) {
		return nil, nil, fmt.Errorf("entity %s: %w", r.id(), kernel.ErrNotFound)
	}
	c := b.cells[r.cell]
	switch r.typ {
	case kernel.Face:
		if r.i < 0 || r.i >= len(c.faces) {
			return nil, nil, fmt.Errorf("face %s: %w", r.id(), kernel.ErrNotFound)
		}
	case kernel.Edge:
		if _, ok := findEdge(c, r.i, r.j); !ok {
			return nil, nil, fmt.Errorf("edge %s: %w", r.id(), kernel.ErrNotFound)
		}
	case kernel.Vertex:
		if r.i < 0 || r.i >= len(c.verts) {
			return nil, nil, fmt.Errorf("vertex %s: %w", r.id(), kernel.ErrNotFound)
		}
	}
	return b, c, nil
}

func (k *Kernel) subEntities(owner kernel.EntityID, t kernel.EntityType) []ref {
	if isSheet(owner) {
		switch t {
		case kernel.Body:
			return []ref{{owner: owner, typ: kernel.Body}}
		case kernel.Face:
			return []ref{{owner: owner, typ: kernel.Face}}
		}
		return nil
	}
	b := k.body(owner)
	if b == nil {
		return nil
	}
	if t == kernel.Body {
		return []ref{{owner: owner, typ: kernel.Body}}
	}
	var out []ref
	for ci, c := range b.cells {
		switch t {
		case kernel.Face:
			for fi := range c.faces {
				out = append(out, ref{owner: owner, typ: kernel.Face, cell: ci, i: fi})
			}
		case kernel.Edge:
			for _, e := range c.edges {
				out = append(out, ref{owner: owner, typ: kernel.Edge, cell: ci, i: e.a, j: e.b})
			}
		case kernel.Vertex:
			for vi := range c.verts {
				out = append(out, ref{owner: owner, typ: kernel.Vertex, cell: ci, i: vi})
			}
		}
	}
	return out
}

// points returns the vertices bounding an entity.
func (k *Kernel) points(r ref) []r3.Vec {
	if isSheet(r.owner) {
		s := k.sheet(r.owner)
		if s == nil {
			return nil
		}
		return sheetCorners(s.def)
	}
	b, c, err := k.lookup(r)
	if err != nil {
		return nil
	}
	switch r.typ {
	case kernel.Body:
		var pts []r3.Vec
		for _, c := range b.cells {
			pts = append(pts, c.verts...)
		}
		return pts
	case kernel.Face:
		f := c.faces[r.i]
		pts := make([]r3.Vec, len(f.loop))
		for i, vi := range f.loop {
			pts[i] = c.verts[vi]
		}
		return pts
	case kernel.Edge:
		e, _ := findEdge(c, r.i, r.j)
		return []r3.Vec{c.verts[e.v0], c.verts[e.v1]}
	case kernel.Vertex:
		return []r3.Vec{c.verts[r.i]}
	}
	return nil
}

func sheetAxes(def kernel.PlaneDef) (x, y r3.Vec) {
	n := def.Plane.Normal
	x = def.Plane.XDir
	// Project XDir into the plane; fall back to any in-plane direction.
	x = r3.Sub(x, r3.Scale(r3.Dot(x, n), n))
	if r3.Norm(x) < 1e-12 {
		ref := r3.Vec{X: 1}
		if math.Abs(n.X) > 0.9 {
			ref = r3.Vec{Y: 1}
		}
		x = r3.Cross(ref, n)
	}
	x = r3.Unit(x)
	return x, r3.Cross(n, x)
}

func sheetCorners(def kernel.PlaneDef) []r3.Vec {
	x, y := sheetAxes(def)
	hx := r3.Scale(def.Width/2, x)
	hy := r3.Scale(def.Height/2, y)
	o := def.Plane.Origin
	return []r3.Vec{
		r3.Sub(r3.Sub(o, hx), hy),
		r3.Sub(r3.Add(o, hx), hy),
		r3.Add(r3.Add(o, hx), hy),
		r3.Add(r3.Sub(o, hx), hy),
	}
}

// solids resolves q to the distinct solid bodies owning its entities.
func (k *Kernel) solids(q kernel.Query) ([]*body, error) {
	refs, err := k.eval(q)
	if err != nil {
		return nil, err
	}
	var out []*body
	seen := make(map[kernel.EntityID]bool)
	for _, r := range refs {
		if isSheet(r.owner) || seen[r.owner] {
			continue
		}
		seen[r.owner] = true
		if b := k.body(r.owner); b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

// toolPlane returns the cutting halfspace of the first planar entity in q.
func (k *Kernel) toolPlane(q kernel.Query) (halfspace, error) {
	refs, err := k.eval(q)
	if err != nil {
		return halfspace{}, err
	}
	for _, r := range refs {
		if isSheet(r.owner) {
			s := k.sheet(r.owner)
			return newHalfspace(s.def.Plane.Normal, s.def.Plane.Origin), nil
		}
		if r.typ == kernel.Face {
			_, c, err := k.lookup(r)
			if err != nil {
				return halfspace{}, err
			}
			return c.hs[c.faces[r.i].h], nil
		}
	}
	return halfspace{}, fmt.Errorf("tool has no planar face: %w", kernel.ErrInvalidInput)
}
