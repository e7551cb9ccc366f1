// Package polykernel is an in-memory solid-modeling kernel whose bodies are
// unions of convex cells held in halfspace form. It implements the full
// kernel contract exactly for planar geometry; cylinders are regular prisms
// and fillets are tangent bevels. It backs the CLI preview and the tests.
package polykernel

import (
	"fmt"
	"math"
	"slices"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"gonum.org/v1/gonum/spatial/r3"
)

// CylinderSegments is the number of side facets of a cylinder prism.
const CylinderSegments = 24

type body struct {
	id      kernel.EntityID
	lineage []kernel.OpID
	cells   []*cell
}

type sheet struct {
	id  kernel.EntityID
	op  kernel.OpID
	def kernel.PlaneDef
}

// Kernel holds the model. The zero value is not usable; call New.
type Kernel struct {
	seq    int
	bodies []*body
	sheets []*sheet
}

var _ kernel.Kernel = (*Kernel)(nil)

// New returns an empty model.
func New() *Kernel {
	return &Kernel{}
}

func (k *Kernel) nextID(prefix string) kernel.EntityID {
	k.seq++
	return kernel.EntityID(fmt.Sprintf("%s%d", prefix, k.seq))
}

func (k *Kernel) newBody(lineage []kernel.OpID, cells []*cell) *body {
	return &body{id: k.nextID("b"), lineage: lineage, cells: cells}
}

func (k *Kernel) body(id kernel.EntityID) *body {
	for _, b := range k.bodies {
		if b.id == id {
			return b
		}
	}
	return nil
}

func (k *Kernel) sheet(id kernel.EntityID) *sheet {
	for _, s := range k.sheets {
		if s.id == id {
			return s
		}
	}
	return nil
}

func (k *Kernel) remove(ids map[kernel.EntityID]bool) {
	k.bodies = slices.DeleteFunc(k.bodies, func(b *body) bool { return ids[b.id] })
	k.sheets = slices.DeleteFunc(k.sheets, func(s *sheet) bool { return ids[s.id] })
}

// replace swaps a body for its rebuilt version at the same position.
func (k *Kernel) replace(old, nb *body) {
	for i, b := range k.bodies {
		if b == old {
			k.bodies[i] = nb
			return
		}
	}
}

func (b *body) createdBy(op kernel.OpID) bool {
	for _, l := range b.lineage {
		if l.HasPrefix(op) {
			return true
		}
	}
	return false
}

func (b *body) volume() float64 {
	var v float64
	for _, c := range b.cells {
		v += c.volume
	}
	return v
}

func extend(lineage []kernel.OpID, op kernel.OpID) []kernel.OpID {
	out := slices.Clone(lineage)
	if !slices.Contains(out, op) {
		out = append(out, op)
	}
	return out
}

func merge(lineages ...[]kernel.OpID) []kernel.OpID {
	var out []kernel.OpID
	for _, l := range lineages {
		for _, op := range l {
			if !slices.Contains(out, op) {
				out = append(out, op)
			}
		}
	}
	return out
}

func opErr(op string, id kernel.OpID, err error) error {
	return &kernel.OpError{Op: op, ID: id, Err: err}
}

// ConstructionPlane creates a finite sheet body.
func (k *Kernel) ConstructionPlane(id kernel.OpID, def kernel.PlaneDef) error {
	if !def.Plane.Valid() || def.Width <= 0 || def.Height <= 0 {
		return opErr("plane", id, fmt.Errorf("degenerate plane definition: %w", kernel.ErrInvalidInput))
	}
	def.Plane = def.Plane.Unit()
	k.sheets = append(k.sheets, &sheet{id: k.nextID("s"), op: id, def: def})
	return nil
}

// Loft creates a solid between two convex, homothetic sections given with
// corresponding vertices in the same order.
func (k *Kernel) Loft(id kernel.OpID, base, tip []r3.Vec) error {
	if len(base) < 3 || len(base) != len(tip) {
		return opErr("loft", id, fmt.Errorf("sections need the same number (>= 3) of vertices: %w", kernel.ErrInvalidInput))
	}
	all := append(slices.Clone(base), tip...)
	centre := mean(all)

	var hs []halfspace
	add := func(n, through r3.Vec) {
		if r3.Norm(n) < 1e-12 {
			return
		}
		h := newHalfspace(n, through)
		if h.dist(centre) > 0 {
			h = h.flip()
		}
		hs = append(hs, h)
	}
	add(newell(base), base[0])
	add(newell(tip), tip[0])
	for i := range base {
		j := (i + 1) % len(base)
		n := r3.Cross(r3.Sub(base[j], base[i]), r3.Sub(tip[i], base[i]))
		if r3.Norm(n) < 1e-12 {
			n = r3.Cross(r3.Sub(base[j], base[i]), r3.Sub(tip[j], base[i]))
		}
		add(n, base[i])
	}
	for _, h := range hs {
		for _, p := range all {
			if h.dist(p) > onTol {
				return opErr("loft", id, fmt.Errorf("sections are not convex and homothetic: %w", kernel.ErrInvalidInput))
			}
		}
	}
	c := newCell(hs)
	if c == nil {
		return opErr("loft", id, kernel.ErrEmptyResult)
	}
	k.bodies = append(k.bodies, k.newBody([]kernel.OpID{id}, []*cell{c}))
	return nil
}

func newell(pts []r3.Vec) r3.Vec {
	var n r3.Vec
	for i := range pts {
		a, b := pts[i], pts[(i+1)%len(pts)]
		n.X += (a.Y - b.Y) * (a.Z + b.Z)
		n.Y += (a.Z - b.Z) * (a.X + b.X)
		n.Z += (a.X - b.X) * (a.Y + b.Y)
	}
	return n
}

// Copy duplicates the solid bodies selected by q.
func (k *Kernel) Copy(id kernel.OpID, q kernel.Query) error {
	bodies, err := k.solids(q)
	if err != nil {
		return opErr("copy", id, err)
	}
	if len(bodies) == 0 {
		return opErr("copy", id, kernel.ErrNotFound)
	}
	for _, b := range bodies {
		k.bodies = append(k.bodies, k.newBody([]kernel.OpID{id}, slices.Clone(b.cells)))
	}
	return nil
}

// Cylinder creates a regular prism circumscribing the given cylinder.
func (k *Kernel) Cylinder(id kernel.OpID, top, bottom r3.Vec, radius float64) error {
	axis := r3.Sub(top, bottom)
	if r3.Norm(axis) <= kernel.Tolerance || radius <= 0 || math.IsNaN(radius) {
		return opErr("cylinder", id, fmt.Errorf("degenerate cylinder: %w", kernel.ErrInvalidInput))
	}
	n := r3.Unit(axis)
	ref := r3.Vec{X: 1}
	if math.Abs(n.X) > 0.9 {
		ref = r3.Vec{Y: 1}
	}
	u := r3.Unit(r3.Cross(n, ref))
	w := r3.Cross(n, u)

	hs := []halfspace{newHalfspace(n, top), newHalfspace(r3.Scale(-1, n), bottom)}
	for i := 0; i < CylinderSegments; i++ {
		theta := 2 * math.Pi * float64(i) / CylinderSegments
		dir := r3.Add(r3.Scale(math.Cos(theta), u), r3.Scale(math.Sin(theta), w))
		hs = append(hs, halfspace{n: dir, d: r3.Dot(dir, bottom) + radius})
	}
	c := newCell(hs)
	if c == nil {
		return opErr("cylinder", id, kernel.ErrEmptyResult)
	}
	k.bodies = append(k.bodies, k.newBody([]kernel.OpID{id}, []*cell{c}))
	return nil
}

// Split partitions every target body crossed by the tool's plane into a
// piece on each side. The tool surface is taken as unbounded.
func (k *Kernel) Split(id kernel.OpID, targets, tool kernel.Query) error {
	h, err := k.toolPlane(tool)
	if err != nil {
		return opErr("split", id, err)
	}
	bodies, err := k.solids(targets)
	if err != nil {
		return opErr("split", id, err)
	}
	if len(bodies) == 0 {
		return opErr("split", id, fmt.Errorf("no target bodies: %w", kernel.ErrNotFound))
	}

	type cut struct {
		parent       *body
		below, above []*cell
	}
	var cuts []cut
	for _, b := range bodies {
		var below, above []*cell
		crossed := false
		for _, c := range b.cells {
			if lo, hi, ok := c.split(h); ok {
				below = append(below, lo)
				above = append(above, hi)
				crossed = true
				continue
			}
			if _, hi := c.span(h); hi <= onTol {
				below = append(below, c)
			} else {
				above = append(above, c)
			}
		}
		if crossed {
			cuts = append(cuts, cut{parent: b, below: below, above: above})
		}
	}
	if len(cuts) == 0 {
		return opErr("split", id, kernel.ErrNoIntersection)
	}

	gone := make(map[kernel.EntityID]bool)
	for _, c := range cuts {
		gone[c.parent.id] = true
	}
	k.remove(gone)
	for _, c := range cuts {
		lineage := extend(c.parent.lineage, id)
		k.bodies = append(k.bodies, k.newBody(lineage, c.below), k.newBody(lineage, c.above))
	}
	return nil
}

// Boolean combines bodies. Tool bodies are consumed.
func (k *Kernel) Boolean(id kernel.OpID, def kernel.BooleanDef) error {
	tools, err := k.solids(def.Tools)
	if err != nil {
		return opErr("boolean", id, err)
	}
	if len(tools) == 0 {
		return opErr("boolean", id, fmt.Errorf("no tool bodies: %w", kernel.ErrNotFound))
	}

	switch def.Op {
	case kernel.BooleanUnion:
		var cells []*cell
		var lineages [][]kernel.OpID
		gone := make(map[kernel.EntityID]bool)
		for _, b := range tools {
			cells = append(cells, b.cells...)
			lineages = append(lineages, b.lineage)
			gone[b.id] = true
		}
		k.remove(gone)
		k.bodies = append(k.bodies, k.newBody(extend(merge(lineages...), id), cells))
		return nil

	case kernel.BooleanIntersection:
		if len(tools) < 2 {
			return opErr("boolean", id, fmt.Errorf("intersection needs two bodies: %w", kernel.ErrInvalidInput))
		}
		cells := tools[0].cells
		lineages := [][]kernel.OpID{tools[0].lineage}
		for _, b := range tools[1:] {
			var next []*cell
			for _, a := range cells {
				for _, c := range b.cells {
					if x := intersect(a, c); x != nil {
						next = append(next, x)
					}
				}
			}
			cells = next
			lineages = append(lineages, b.lineage)
		}
		if len(cells) == 0 {
			return opErr("boolean", id, kernel.ErrEmptyResult)
		}
		gone := make(map[kernel.EntityID]bool)
		for _, b := range tools {
			gone[b.id] = true
		}
		k.remove(gone)
		k.bodies = append(k.bodies, k.newBody(extend(merge(lineages...), id), cells))
		return nil

	case kernel.BooleanSubtraction:
		targets, err := k.solids(def.Targets)
		if err != nil {
			return opErr("boolean", id, err)
		}
		if len(targets) == 0 {
			return opErr("boolean", id, fmt.Errorf("no target bodies: %w", kernel.ErrNotFound))
		}
		rebuilt := make([]*body, len(targets))
		for i, t := range targets {
			cells := t.cells
			for _, tool := range tools {
				for _, tc := range tool.cells {
					var next []*cell
					for _, c := range cells {
						next = append(next, subtract(c, tc.hs)...)
					}
					cells = next
				}
			}
			if len(cells) == 0 {
				return opErr("boolean", id, kernel.ErrEmptyResult)
			}
			rebuilt[i] = &body{id: t.id, lineage: extend(t.lineage, id), cells: cells}
		}
		for i, t := range targets {
			k.replace(t, rebuilt[i])
		}
		gone := make(map[kernel.EntityID]bool)
		for _, b := range tools {
			gone[b.id] = true
		}
		k.remove(gone)
		return nil
	}
	return opErr("boolean", id, fmt.Errorf("unknown operation %v: %w", def.Op, kernel.ErrInvalidInput))
}

// Shell hollows the selected bodies inward, leaving the selected faces open.
func (k *Kernel) Shell(id kernel.OpID, entities kernel.Query, thickness float64) error {
	if thickness >= 0 {
		return opErr("shell", id, fmt.Errorf("only inward shells are supported: %w", kernel.ErrInvalidInput))
	}
	t := -thickness
	refs, err := k.eval(entities)
	if err != nil {
		return opErr("shell", id, err)
	}

	open := make(map[kernel.EntityID]map[[2]int]bool)
	var order []kernel.EntityID
	for _, r := range refs {
		if isSheet(r.owner) {
			continue
		}
		if _, seen := open[r.owner]; !seen {
			open[r.owner] = make(map[[2]int]bool)
			order = append(order, r.owner)
		}
		if r.typ == kernel.Face {
			open[r.owner][[2]int{r.cell, r.i}] = true
		}
	}
	if len(order) == 0 {
		return opErr("shell", id, fmt.Errorf("no bodies to shell: %w", kernel.ErrNotFound))
	}

	type rebuild struct{ old, nb *body }
	var out []rebuild
	for _, bid := range order {
		b := k.body(bid)
		var cells []*cell
		for ci, c := range b.cells {
			var inner []halfspace
			for fi := range c.faces {
				if !open[bid][[2]int{ci, fi}] {
					inner = append(inner, c.hs[c.faces[fi].h].offset(-t))
				}
			}
			if newCell(with(c.hs, inner...)) == nil {
				return opErr("shell", id, fmt.Errorf("wall thickness %.4g consumes body %s: %w", t, bid, kernel.ErrEmptyResult))
			}
			cells = append(cells, subtract(c, inner)...)
		}
		if len(cells) == 0 {
			return opErr("shell", id, kernel.ErrEmptyResult)
		}
		out = append(out, rebuild{old: b, nb: &body{id: b.id, lineage: extend(b.lineage, id), cells: cells}})
	}
	for _, r := range out {
		k.replace(r.old, r.nb)
	}
	return nil
}

// Fillet rounds convex edges. Each round is approximated by the plane
// tangent to the fillet arc at its midpoint.
func (k *Kernel) Fillet(id kernel.OpID, edges kernel.Query, radius float64) error {
	if radius <= 0 {
		return opErr("fillet", id, fmt.Errorf("radius must be positive: %w", kernel.ErrInvalidInput))
	}
	refs, err := k.eval(edges)
	if err != nil {
		return opErr("fillet", id, err)
	}

	bevels := make(map[kernel.EntityID]map[int][]halfspace)
	var order []kernel.EntityID
	for _, r := range refs {
		if r.typ != kernel.Edge {
			continue
		}
		b, c, err := k.lookup(r)
		if err != nil {
			return opErr("fillet", id, err)
		}
		e, ok := findEdge(c, r.i, r.j)
		if !ok {
			return opErr("fillet", id, fmt.Errorf("edge %s: %w", r.id(), kernel.ErrNotFound))
		}
		n1, n2 := c.hs[e.a].n, c.hs[e.b].n
		denom := 1 + r3.Dot(n1, n2)
		if denom < 1e-9 {
			return opErr("fillet", id, fmt.Errorf("edge %s is flat: %w", r.id(), kernel.ErrInvalidInput))
		}
		p := c.verts[e.v0]
		sum := r3.Add(n1, n2)
		centre := r3.Sub(p, r3.Scale(radius/denom, sum))
		t1 := r3.Add(centre, r3.Scale(radius, n1))
		t2 := r3.Add(centre, r3.Scale(radius, n2))
		if !c.contains(centre) || !c.contains(t1) || !c.contains(t2) {
			return opErr("fillet", id, fmt.Errorf("radius %.4g too large for edge %s: %w", radius, r.id(), kernel.ErrInvalidInput))
		}
		m := r3.Unit(sum)
		if _, seen := bevels[b.id]; !seen {
			bevels[b.id] = make(map[int][]halfspace)
			order = append(order, b.id)
		}
		bevels[b.id][r.cell] = append(bevels[b.id][r.cell], halfspace{n: m, d: r3.Dot(m, centre) + radius})
	}
	if len(order) == 0 {
		return opErr("fillet", id, fmt.Errorf("no edges selected: %w", kernel.ErrNotFound))
	}

	type rebuild struct{ old, nb *body }
	var out []rebuild
	for _, bid := range order {
		b := k.body(bid)
		cells := slices.Clone(b.cells)
		for ci, extra := range bevels[bid] {
			c := newCell(with(cells[ci].hs, extra...))
			if c == nil {
				return opErr("fillet", id, kernel.ErrEmptyResult)
			}
			cells[ci] = c
		}
		out = append(out, rebuild{old: b, nb: &body{id: b.id, lineage: extend(b.lineage, id), cells: cells}})
	}
	for _, r := range out {
		k.replace(r.old, r.nb)
	}
	return nil
}

func findEdge(c *cell, a, b int) (edge, bool) {
	for _, e := range c.edges {
		if e.a == a && e.b == b {
			return e, true
		}
	}
	return edge{}, false
}

// DeleteBodies removes the bodies and sheets owning the selected entities.
// An empty selection is not an error.
func (k *Kernel) DeleteBodies(id kernel.OpID, entities kernel.Query) error {
	refs, err := k.eval(entities)
	if err != nil {
		return opErr("delete", id, err)
	}
	gone := make(map[kernel.EntityID]bool)
	for _, r := range refs {
		gone[r.owner] = true
	}
	k.remove(gone)
	return nil
}
