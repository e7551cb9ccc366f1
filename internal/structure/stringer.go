package structure

import (
	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// StringerAxis returns the stringer end points before the overrun is
// added. Vertical fractions scale the thickness direction, which is as long
// as the chord, so they reach v times the chord squared.
func StringerAxis(f *wing.LocalFrame, s Stringer) (base, tip r3.Vec) {
	base = r3.Add(f.Points[wing.LEBase], r3.Scale(s.BaseHorizontal*f.BaseChordLength, f.BaseNormalInPlane))
	base = r3.Sub(base, r3.Scale(s.BaseVertical*f.BaseChordLength, f.VerticalDirectionBase))
	tip = r3.Add(f.Points[wing.LETip], r3.Scale(s.TipHorizontal*f.TipChordLength, f.TipNormalInPlane))
	tip = r3.Sub(tip, r3.Scale(s.TipVertical*f.TipChordLength, f.VerticalDirectionTip))
	return base, tip
}

// stringer intersects a cylinder along the stringer axis with the working
// solid, then bores it out for a tube.
func (r *run) stringer(s Stringer) error {
	base, tip := StringerAxis(r.frame, s)
	dir := r3.Sub(base, tip)
	if r3.Norm(dir) <= kernel.Tolerance {
		return failf(ErrStructuralGenerationFailed, nil, nil, "stringer base and tip points coincide")
	}
	x := r3.Unit(dir)
	tip = r3.Sub(tip, r3.Scale(limits.StringerOverrun, x))
	base = r3.Add(base, r3.Scale(limits.StringerOverrun, x))

	cyl1 := r.id.Child("cylinder1")
	if err := r.k.Cylinder(cyl1, tip, base, s.OuterDiameter/2); err != nil {
		return failf(ErrStructuralGenerationFailed, nil, err, "building stringer cylinder")
	}

	r.solid = r.solid.Reacquired()
	rod := r.id.Child("boolean1")
	err := r.k.Boolean(rod, kernel.BooleanDef{
		Tools: kernel.Union(r.solid.Query, kernel.CreatedBy(cyl1, kernel.Body)),
		Op:    kernel.BooleanIntersection,
	})
	if err != nil {
		return failf(ErrStringerOutsideWing, kernel.CreatedBy(cyl1, kernel.Body), err,
			"diameter %.4g m", s.OuterDiameter)
	}
	r.solid = wing.WorkingSolid{CopyOp: r.solid.CopyOp, Query: kernel.CreatedBy(rod, kernel.Body)}
	r.log.Debug("stringer rod cut", zap.Float64("diameter", s.OuterDiameter))

	t, ok := s.Section.(Tube)
	if !ok {
		return nil
	}

	cyl2 := r.id.Child("cylinder2")
	bore := kernel.Union(kernel.CreatedBy(rod, kernel.Body), kernel.CreatedBy(cyl2, kernel.Body))
	if err := r.k.Cylinder(cyl2, tip, base, (s.OuterDiameter-2*t.Wall)/2); err != nil {
		return failf(ErrStringerHollowFailed, bore, err, "building bore")
	}
	err = r.k.Boolean(r.id.Child("boolean2"), kernel.BooleanDef{
		Tools:   kernel.CreatedBy(cyl2, kernel.Body),
		Targets: kernel.CreatedBy(rod, kernel.Body),
		Op:      kernel.BooleanSubtraction,
	})
	if err != nil {
		return failf(ErrStringerHollowFailed, bore, err, "wall %.4g m", t.Wall)
	}
	return nil
}
