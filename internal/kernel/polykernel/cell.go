package polykernel

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

const (
	// onTol decides incidence of a vertex on a facet plane.
	onTol = 1e-6
	// mergeTol merges enumerated vertices that are numerically the same.
	mergeTol = 1e-6
	// minVolume below which a cell is treated as empty (m³).
	minVolume = 1e-15
)

// halfspace is the closed set n·x <= d with n a unit vector pointing out of
// the material.
type halfspace struct {
	n r3.Vec
	d float64
}

func newHalfspace(normal, through r3.Vec) halfspace {
	n := r3.Unit(normal)
	return halfspace{n: n, d: r3.Dot(n, through)}
}

func (h halfspace) dist(x r3.Vec) float64 {
	return r3.Dot(h.n, x) - h.d
}

func (h halfspace) flip() halfspace {
	return halfspace{n: r3.Scale(-1, h.n), d: -h.d}
}

func (h halfspace) offset(by float64) halfspace {
	return halfspace{n: h.n, d: h.d + by}
}

type facet struct {
	h    int
	loop []int
}

type edge struct {
	a, b   int // facet halfspace indices, a < b
	v0, v1 int
}

// cell is a bounded convex polytope in halfspace form with its boundary
// representation precomputed. Cells are immutable once built.
type cell struct {
	hs       []halfspace
	verts    []r3.Vec
	on       [][]int
	faces    []facet
	edges    []edge
	volume   float64
	centroid r3.Vec
}

// newCell builds the polytope bounded by hs. It returns nil when the
// intersection is empty, unbounded or flat.
func newCell(hs []halfspace) *cell {
	hs = dedupe(hs)
	verts := enumerate(hs)
	if len(verts) < 4 {
		return nil
	}

	// Keep only halfspaces that carry a facet.
	var kept []halfspace
	for _, h := range hs {
		var pts []r3.Vec
		for _, v := range verts {
			if math.Abs(h.dist(v)) <= onTol {
				pts = append(pts, v)
			}
		}
		if len(pts) >= 3 && !collinear(pts) {
			kept = append(kept, h)
		}
	}
	if len(kept) < 4 {
		return nil
	}

	c := &cell{hs: kept, verts: verts}
	c.on = make([][]int, len(verts))
	for vi, v := range verts {
		for hi, h := range kept {
			if math.Abs(h.dist(v)) <= onTol {
				c.on[vi] = append(c.on[vi], hi)
			}
		}
	}
	for hi := range kept {
		c.faces = append(c.faces, facet{h: hi, loop: c.orderLoop(hi)})
	}
	for a := 0; a < len(kept); a++ {
		for b := a + 1; b < len(kept); b++ {
			if e, ok := c.sharedEdge(a, b); ok {
				c.edges = append(c.edges, e)
			}
		}
	}
	c.measure()
	if c.volume < minVolume {
		return nil
	}
	return c
}

func dedupe(hs []halfspace) []halfspace {
	out := make([]halfspace, 0, len(hs))
	for _, h := range hs {
		merged := false
		for i, g := range out {
			if r3.Norm(r3.Sub(g.n, h.n)) < 1e-9 {
				if h.d < g.d {
					out[i].d = h.d
				}
				merged = true
				break
			}
		}
		if !merged {
			out = append(out, h)
		}
	}
	return out
}

// enumerate returns the feasible intersection points of every plane triple.
func enumerate(hs []halfspace) []r3.Vec {
	var verts []r3.Vec
	n := len(hs)
	for i := 0; i < n; i++ {
		for j := i + 1; j < n; j++ {
			for k := j + 1; k < n; k++ {
				ni, nj, nk := hs[i].n, hs[j].n, hs[k].n
				jk := r3.Cross(nj, nk)
				det := r3.Dot(ni, jk)
				if math.Abs(det) < 1e-12 {
					continue
				}
				x := r3.Add(r3.Add(
					r3.Scale(hs[i].d, jk),
					r3.Scale(hs[j].d, r3.Cross(nk, ni))),
					r3.Scale(hs[k].d, r3.Cross(ni, nj)))
				x = r3.Scale(1/det, x)
				if !feasible(hs, x) {
					continue
				}
				verts = appendUnique(verts, x)
			}
		}
	}
	return verts
}

func feasible(hs []halfspace, x r3.Vec) bool {
	for _, h := range hs {
		if h.dist(x) > onTol {
			return false
		}
	}
	return true
}

func appendUnique(verts []r3.Vec, x r3.Vec) []r3.Vec {
	for _, v := range verts {
		if r3.Norm(r3.Sub(v, x)) <= mergeTol {
			return verts
		}
	}
	return append(verts, x)
}

func collinear(pts []r3.Vec) bool {
	a := pts[0]
	for i := 1; i < len(pts); i++ {
		for j := i + 1; j < len(pts); j++ {
			if r3.Norm(r3.Cross(r3.Sub(pts[i], a), r3.Sub(pts[j], a))) > 1e-12 {
				return false
			}
		}
	}
	return true
}

func mean(pts []r3.Vec) r3.Vec {
	var c r3.Vec
	for _, p := range pts {
		c = r3.Add(c, p)
	}
	if len(pts) == 0 {
		return c
	}
	return r3.Scale(1/float64(len(pts)), c)
}

func (c *cell) facetVerts(h int) []int {
	var idx []int
	for vi, planes := range c.on {
		for _, p := range planes {
			if p == h {
				idx = append(idx, vi)
				break
			}
		}
	}
	return idx
}

// orderLoop sorts the vertices of facet h counter-clockwise about its normal.
func (c *cell) orderLoop(h int) []int {
	idx := c.facetVerts(h)
	pts := make([]r3.Vec, len(idx))
	for i, vi := range idx {
		pts[i] = c.verts[vi]
	}
	centre := mean(pts)
	n := c.hs[h].n
	u := r3.Unit(r3.Sub(pts[0], centre))
	w := r3.Cross(n, u)
	angle := make(map[int]float64, len(idx))
	for i, vi := range idx {
		d := r3.Sub(pts[i], centre)
		angle[vi] = math.Atan2(r3.Dot(d, w), r3.Dot(d, u))
	}
	sort.Slice(idx, func(i, j int) bool { return angle[idx[i]] < angle[idx[j]] })
	return idx
}

func (c *cell) sharedEdge(a, b int) (edge, bool) {
	var common []int
	for vi, planes := range c.on {
		hasA, hasB := false, false
		for _, p := range planes {
			hasA = hasA || p == a
			hasB = hasB || p == b
		}
		if hasA && hasB {
			common = append(common, vi)
		}
	}
	if len(common) < 2 {
		return edge{}, false
	}
	best := edge{a: a, b: b, v0: common[0], v1: common[1]}
	bestLen := -1.0
	for i := 0; i < len(common); i++ {
		for j := i + 1; j < len(common); j++ {
			l := r3.Norm(r3.Sub(c.verts[common[i]], c.verts[common[j]]))
			if l > bestLen {
				bestLen = l
				best.v0, best.v1 = common[i], common[j]
			}
		}
	}
	if bestLen <= mergeTol {
		return edge{}, false
	}
	return best, true
}

// measure computes volume and centroid by fanning tetrahedra from an
// interior point.
func (c *cell) measure() {
	c0 := mean(c.verts)
	var vol float64
	var moment r3.Vec
	for _, f := range c.faces {
		l := f.loop
		for i := 1; i+1 < len(l); i++ {
			a, b, d := c.verts[l[0]], c.verts[l[i]], c.verts[l[i+1]]
			v := math.Abs(r3.Dot(r3.Sub(a, c0), r3.Cross(r3.Sub(b, c0), r3.Sub(d, c0)))) / 6
			vol += v
			tc := r3.Scale(0.25, r3.Add(r3.Add(c0, a), r3.Add(b, d)))
			moment = r3.Add(moment, r3.Scale(v, tc))
		}
	}
	c.volume = vol
	if vol > 0 {
		c.centroid = r3.Scale(1/vol, moment)
	} else {
		c.centroid = c0
	}
}

func (c *cell) contains(x r3.Vec) bool {
	return feasible(c.hs, x)
}

func (c *cell) facetCentroid(fi int) r3.Vec {
	f := c.faces[fi]
	pts := make([]r3.Vec, len(f.loop))
	for i, vi := range f.loop {
		pts[i] = c.verts[vi]
	}
	return mean(pts)
}

// span returns the extreme signed distances of the cell from h's plane.
func (c *cell) span(h halfspace) (lo, hi float64) {
	lo, hi = math.Inf(1), math.Inf(-1)
	for _, v := range c.verts {
		d := h.dist(v)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

func with(hs []halfspace, extra ...halfspace) []halfspace {
	out := make([]halfspace, 0, len(hs)+len(extra))
	out = append(out, hs...)
	return append(out, extra...)
}

// split cuts c by the plane of h. ok is false when the plane does not pass
// through the interior.
func (c *cell) split(h halfspace) (below, above *cell, ok bool) {
	lo, hi := c.span(h)
	if lo >= -onTol || hi <= onTol {
		return nil, nil, false
	}
	below = newCell(with(c.hs, h))
	above = newCell(with(c.hs, h.flip()))
	if below == nil || above == nil {
		return nil, nil, false
	}
	return below, above, true
}

func intersect(a, b *cell) *cell {
	return newCell(with(a.hs, b.hs...))
}

// subtract returns a convex decomposition of a minus the region bounded by
// cutter. The cutter need not be bounded.
func subtract(a *cell, cutter []halfspace) []*cell {
	if newCell(with(a.hs, cutter...)) == nil {
		return []*cell{a}
	}
	var pieces []*cell
	acc := with(a.hs)
	for _, h := range cutter {
		if p := newCell(with(acc, h.flip())); p != nil {
			pieces = append(pieces, p)
		}
		acc = append(acc, h)
	}
	return pieces
}
