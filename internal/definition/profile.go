package definition

import (
	"fmt"
	"math"
)

// Point is a 2D section coordinate as a fraction of chord. X runs from the
// leading edge (0) to the trailing edge (1), Y is thickness.
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Profile is a convex aerofoil section given as a closed polygon.
type Profile []Point

// DefaultProfile is a symmetric hexagonal section of 12% thickness.
var DefaultProfile = Profile{
	{0, 0},
	{0.25, 0.06},
	{0.6, 0.045},
	{1, 0},
	{0.6, -0.045},
	{0.25, -0.06},
}

// defaultThickness is the thickness ratio of DefaultProfile.
const defaultThickness = 0.12

// ProfileProperties holds section properties per unit chord.
type ProfileProperties struct {
	Area      float64
	CentroidX float64
	CentroidY float64

	MinX, MaxX float64
	MinY, MaxY float64

	// Thickness is the maximum depth as a fraction of chord.
	Thickness float64
}

// Scaled returns the profile with its thickness scaled to t.
func (p Profile) Scaled(t float64) Profile {
	props := p.CalculateProperties()
	if props.Thickness == 0 {
		return p
	}
	f := t / props.Thickness
	out := make(Profile, len(p))
	for i, v := range p {
		out[i] = Point{X: v.X, Y: v.Y * f}
	}
	return out
}

// CalculateProperties computes the bounding box, area and centroid.
func (p Profile) CalculateProperties() ProfileProperties {
	var props ProfileProperties
	if len(p) < 3 {
		return props
	}

	props.MinX, props.MaxX = p[0].X, p[0].X
	props.MinY, props.MaxY = p[0].Y, p[0].Y
	for _, v := range p {
		props.MinX = math.Min(props.MinX, v.X)
		props.MaxX = math.Max(props.MaxX, v.X)
		props.MinY = math.Min(props.MinY, v.Y)
		props.MaxY = math.Max(props.MaxY, v.Y)
	}
	props.Thickness = props.MaxY - props.MinY

	// Shoelace formula
	var signedArea, sumX, sumY float64
	n := len(p)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		cross := p[i].X*p[j].Y - p[j].X*p[i].Y
		signedArea += cross
		sumX += (p[i].X + p[j].X) * cross
		sumY += (p[i].Y + p[j].Y) * cross
	}
	signedArea /= 2
	props.Area = math.Abs(signedArea)
	if props.Area > 0 {
		props.CentroidX = sumX / (6 * signedArea)
		props.CentroidY = sumY / (6 * signedArea)
	}
	return props
}

// Validate checks that the profile is a convex polygon spanning the chord
// from 0 to 1 with a single leading and trailing edge vertex.
func (p Profile) Validate() error {
	if len(p) < 3 {
		return &ValidationError{"section must have at least 3 vertices"}
	}
	props := p.CalculateProperties()
	if props.Area <= 0 {
		return &ValidationError{"section has no area"}
	}
	if props.MinX != 0 || props.MaxX != 1 {
		return &ValidationError{fmt.Sprintf("section must span x = 0 to 1, got %g to %g", props.MinX, props.MaxX)}
	}
	if _, err := p.edgeIndex(0); err != nil {
		return err
	}
	if _, err := p.edgeIndex(1); err != nil {
		return err
	}

	// Convex: every turn has the same sense.
	n := len(p)
	var turn float64
	for i := 0; i < n; i++ {
		a, b, c := p[i], p[(i+1)%n], p[(i+2)%n]
		cross := (b.X-a.X)*(c.Y-b.Y) - (b.Y-a.Y)*(c.X-b.X)
		if math.Abs(cross) < 1e-12 {
			return &ValidationError{fmt.Sprintf("section vertex %d is collinear with its neighbours", (i+1)%n+1)}
		}
		if turn != 0 && math.Signbit(cross) != math.Signbit(turn) {
			return &ValidationError{fmt.Sprintf("section is not convex at vertex %d", (i+1)%n+1)}
		}
		turn = cross
	}
	return nil
}

// edgeIndex returns the single vertex at chord fraction x.
func (p Profile) edgeIndex(x float64) (int, error) {
	idx := -1
	for i, v := range p {
		if v.X == x {
			if idx >= 0 {
				return -1, &ValidationError{fmt.Sprintf("section has more than one vertex at x = %g", x)}
			}
			idx = i
		}
	}
	if idx < 0 {
		return -1, &ValidationError{fmt.Sprintf("section has no vertex at x = %g", x)}
	}
	return idx, nil
}
