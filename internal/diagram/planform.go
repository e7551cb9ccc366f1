package diagram

import (
	"math"
	"sort"

	"gonum.org/v1/gonum/spatial/r3"
)

// Point is a planform coordinate: X chordwise from the root leading edge,
// Y spanwise.
type Point struct {
	X float64
	Y float64
}

// Outline is the projected hull of one generated body.
type Outline struct {
	Name string
	Hull []Point
}

// PlanformData holds the wing outline and the generated bodies to draw.
type PlanformData struct {
	Title string
	// Wing is LE-Base, TE-Base, TE-Tip, LE-Tip.
	Wing   [4]Point
	Bodies []Outline
}

// Projection maps model points into the planform view.
type Projection struct {
	Origin    r3.Vec
	Chordwise r3.Vec
	Spanwise  r3.Vec
}

// NewProjection returns the view through origin with unit axes along the
// given directions.
func NewProjection(origin, chordwise, spanwise r3.Vec) Projection {
	return Projection{Origin: origin, Chordwise: r3.Unit(chordwise), Spanwise: r3.Unit(spanwise)}
}

// Point projects x.
func (p Projection) Point(x r3.Vec) Point {
	d := r3.Sub(x, p.Origin)
	return Point{X: r3.Dot(d, p.Chordwise), Y: r3.Dot(d, p.Spanwise)}
}

// Hull projects pts and returns their convex hull, counter-clockwise.
func (p Projection) Hull(pts []r3.Vec) []Point {
	flat := make([]Point, len(pts))
	for i, x := range pts {
		flat[i] = p.Point(x)
	}
	return ConvexHull(flat)
}

// ConvexHull returns the hull of pts, counter-clockwise, using the
// monotone chain method.
func ConvexHull(pts []Point) []Point {
	ps := append([]Point(nil), pts...)
	sort.Slice(ps, func(i, j int) bool {
		if ps[i].X != ps[j].X {
			return ps[i].X < ps[j].X
		}
		return ps[i].Y < ps[j].Y
	})
	if len(ps) < 3 {
		return ps
	}
	cross := func(o, a, b Point) float64 {
		return (a.X-o.X)*(b.Y-o.Y) - (a.Y-o.Y)*(b.X-o.X)
	}
	hull := make([]Point, 0, 2*len(ps))
	for _, p := range ps {
		for len(hull) >= 2 && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 1e-12 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	lower := len(hull) + 1
	for i := len(ps) - 2; i >= 0; i-- {
		p := ps[i]
		for len(hull) >= lower && cross(hull[len(hull)-2], hull[len(hull)-1], p) <= 1e-12 {
			hull = hull[:len(hull)-1]
		}
		hull = append(hull, p)
	}
	return hull[:len(hull)-1]
}

// bounds returns the extent of the wing and every body.
func (d PlanformData) bounds() (minX, maxX, minY, maxY float64) {
	minX, minY = math.Inf(1), math.Inf(1)
	maxX, maxY = math.Inf(-1), math.Inf(-1)
	add := func(p Point) {
		minX, maxX = math.Min(minX, p.X), math.Max(maxX, p.X)
		minY, maxY = math.Min(minY, p.Y), math.Max(maxY, p.Y)
	}
	for _, p := range d.Wing {
		add(p)
	}
	for _, b := range d.Bodies {
		for _, p := range b.Hull {
			add(p)
		}
	}
	return minX, maxX, minY, maxY
}

// inside reports whether p lies in the convex polygon poly.
func inside(poly []Point, p Point) bool {
	if len(poly) < 3 {
		return false
	}
	var sign float64
	for i := range poly {
		a, b := poly[i], poly[(i+1)%len(poly)]
		c := (b.X-a.X)*(p.Y-a.Y) - (b.Y-a.Y)*(p.X-a.X)
		if math.Abs(c) < 1e-12 {
			continue
		}
		if sign == 0 {
			sign = c
		} else if (c > 0) != (sign > 0) {
			return false
		}
	}
	return true
}
