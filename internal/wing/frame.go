// Package wing derives the working coordinate frame of a wing from a
// reference face and four picked corner points, and isolates the span of
// the wing body that structure is generated in.
package wing

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"gonum.org/v1/gonum/spatial/r3"
)

// Corner indices, in the order the points are picked.
const (
	LEBase = iota
	TEBase
	TETip
	LETip
)

// CornerNames labels the picked corners for reports and errors.
var CornerNames = [4]string{"LE-Base", "TE-Base", "TE-Tip", "LE-Tip"}

// ErrInsufficientReferenceGeometry is returned when the reference input is
// not exactly four distinct points and a usable face.
var ErrInsufficientReferenceGeometry = errors.New("not enough points are defined")

// ReferenceGeometry is the user-picked input of one regeneration.
type ReferenceGeometry struct {
	// ReferenceFace supplies the spanwise normal.
	ReferenceFace kernel.Query
	// Body is the wing solid.
	Body kernel.Query
	// Corners are single-vertex queries ordered LE-Base, TE-Base, TE-Tip,
	// LE-Tip.
	Corners []kernel.Query
}

// LocalFrame is the frame every generator works in. It is computed once per
// regeneration and never mutated.
type LocalFrame struct {
	Points [4]r3.Vec

	// Normal is the unit spanwise direction, taken from the reference face.
	Normal r3.Vec

	// BaseChordVector is LE-Base - TE-Base. TipChordVector is computed from
	// the same two base points; TipDirection is the actual LE-Tip - TE-Tip.
	BaseChordVector r3.Vec
	TipChordVector  r3.Vec
	TipDirection    r3.Vec

	// NormalInPlane vectors are unit vectors from leading toward trailing
	// edge.
	BaseNormalInPlane r3.Vec
	TipNormalInPlane  r3.Vec

	// VerticalDirection = Normal x chord vector. Not normalized.
	VerticalDirectionBase r3.Vec
	VerticalDirectionTip  r3.Vec

	BaseChordLength float64
	TipChordLength  float64
}

// BuildFrame evaluates the reference geometry and derives the local frame.
// It does not modify the model.
func BuildFrame(k kernel.Kernel, g ReferenceGeometry) (*LocalFrame, error) {
	if len(g.Corners) != 4 {
		return nil, fmt.Errorf("%d points picked, need 4 [LE-Base, TE-Base, TE-Tip, LE-Tip]: %w",
			len(g.Corners), ErrInsufficientReferenceGeometry)
	}

	f := &LocalFrame{}
	for i, q := range g.Corners {
		p, err := k.VertexPoint(q)
		if err != nil {
			return nil, fmt.Errorf("evaluating %s: %v: %w", CornerNames[i], err, ErrInsufficientReferenceGeometry)
		}
		f.Points[i] = p
	}
	for i := 0; i < 4; i++ {
		for j := i + 1; j < 4; j++ {
			if r3.Norm(r3.Sub(f.Points[i], f.Points[j])) <= kernel.Tolerance {
				return nil, fmt.Errorf("%s and %s coincide: %w", CornerNames[i], CornerNames[j], ErrInsufficientReferenceGeometry)
			}
		}
	}

	tp, err := k.FaceTangentPlane(g.ReferenceFace, 0.5, 0.5)
	if err != nil {
		return nil, fmt.Errorf("evaluating reference face: %v: %w", err, ErrInsufficientReferenceGeometry)
	}
	if !tp.Valid() {
		return nil, fmt.Errorf("reference face has no normal: %w", ErrInsufficientReferenceGeometry)
	}
	f.Normal = r3.Unit(tp.Normal)

	p := f.Points
	f.BaseChordVector = r3.Sub(p[LEBase], p[TEBase])
	f.TipChordVector = r3.Sub(p[LEBase], p[TEBase])
	f.TipDirection = r3.Sub(p[LETip], p[TETip])

	f.VerticalDirectionBase = r3.Cross(f.Normal, f.BaseChordVector)
	f.VerticalDirectionTip = r3.Cross(f.Normal, f.TipChordVector)
	if r3.Norm(f.VerticalDirectionBase) <= kernel.Tolerance {
		return nil, fmt.Errorf("base chord is parallel to the reference normal: %w", ErrInsufficientReferenceGeometry)
	}

	f.BaseChordLength = r3.Norm(f.BaseChordVector)
	f.TipChordLength = r3.Norm(f.TipDirection)

	f.BaseNormalInPlane = r3.Scale(-1/f.BaseChordLength, f.BaseChordVector)
	f.TipNormalInPlane = r3.Scale(-1/f.TipChordLength, f.TipDirection)
	return f, nil
}

// BaseChordPlane is the root cross-section plane through LE-Base.
func (f *LocalFrame) BaseChordPlane() kernel.Plane {
	return kernel.Plane{
		Origin: f.Points[LEBase],
		Normal: r3.Cross(f.BaseNormalInPlane, f.VerticalDirectionBase),
		XDir:   f.BaseChordVector,
	}.Unit()
}

// TipChordPlane is the tip cross-section plane through LE-Tip. It is
// oriented with the base vertical direction.
func (f *LocalFrame) TipChordPlane() kernel.Plane {
	return kernel.Plane{
		Origin: f.Points[LETip],
		Normal: r3.Cross(f.TipNormalInPlane, f.VerticalDirectionBase),
		XDir:   f.TipDirection,
	}.Unit()
}

// Span is the signed spanwise distance from TE-Base to TE-Tip.
func (f *LocalFrame) Span() float64 {
	return r3.Dot(r3.Sub(f.Points[TETip], f.Points[TEBase]), f.Normal)
}

// SheetSize returns the width and height of construction planes: the base
// chord and a tenth of it, or a conservative size when the chord is
// degenerate.
func (f *LocalFrame) SheetSize() (width, height float64) {
	w := f.BaseChordLength
	if !(w > kernel.Tolerance) {
		w = max(f.TipChordLength, r3.Norm(r3.Sub(f.Points[LETip], f.Points[LEBase])), 1)
	}
	return w, limits.SheetHeightRatio * w
}

// Sheet returns a construction plane definition sized for this wing.
func (f *LocalFrame) Sheet(p kernel.Plane) kernel.PlaneDef {
	w, h := f.SheetSize()
	return kernel.PlaneDef{Plane: p, Width: w, Height: h}
}
