package structure

import (
	"errors"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// sparPlanes bound a spar slab. Centre lies halfway between One and Two.
type sparPlanes struct {
	One, Two, Centre kernel.Plane
}

func (r *run) sparByPosition(s SparByPosition) error {
	f := r.frame
	base := r3.Add(f.Points[wing.LEBase], r3.Scale(s.BasePos*f.BaseChordLength, f.BaseNormalInPlane))
	tip := r3.Add(f.Points[wing.LETip], r3.Scale(s.TipPos*f.TipChordLength, f.TipNormalInPlane))

	dir := r3.Sub(base, tip)
	if r3.Norm(dir) <= kernel.Tolerance {
		return failf(ErrStructuralGenerationFailed, nil, nil, "spar base and tip points coincide")
	}
	x := r3.Unit(dir)
	n := r3.Cross(f.VerticalDirectionBase, x)
	if r3.Norm(n) <= kernel.Tolerance {
		return failf(ErrStructuralGenerationFailed, nil, nil, "spar runs along the thickness direction")
	}
	n = r3.Unit(n)

	off := r3.Scale(s.Width/2, n)
	return r.buildSpar(sparPlanes{
		One:    kernel.Plane{Origin: r3.Add(base, off), Normal: n, XDir: x},
		Two:    kernel.Plane{Origin: r3.Sub(base, off), Normal: n, XDir: x},
		Centre: kernel.Plane{Origin: base, Normal: n, XDir: x},
	}, s.Section)
}

func (r *run) sparByPlane(s SparByPlane) error {
	tp, err := r.k.FaceTangentPlane(s.Face, 0.5, 0.5)
	if err != nil {
		return failf(ErrStructuralGenerationFailed, s.Face, err, "evaluating spar face")
	}
	centre, err := r.k.ApproximateCentroid(s.Face)
	if err != nil {
		return failf(ErrStructuralGenerationFailed, s.Face, err, "evaluating spar face")
	}
	n := r3.Unit(tp.Normal)
	dir := r3.Scale(sign(s.Flip), n)

	return r.buildSpar(sparPlanes{
		One:    kernel.NewPlane(centre, n),
		Two:    kernel.NewPlane(r3.Add(centre, r3.Scale(s.Width, dir)), n),
		Centre: kernel.NewPlane(r3.Add(centre, r3.Scale(s.Width/2, dir)), n),
	}, s.Section)
}

// buildSpar cuts the slab between the spar planes out of the working solid
// and applies the cross-section.
func (r *run) buildSpar(p sparPlanes, sec SparSection) error {
	one, err := r.plane(r.id.Child("sparPlane1"), p.One)
	if err != nil {
		return err
	}
	two, err := r.plane(r.id.Child("sparPlane2"), p.Two)
	if err != nil {
		return err
	}

	if err := r.boundingSplit("spar split 1", r.id.Child("sparSplit1"), r.solid.Query, r.planes.Tool(one)); err != nil {
		return err
	}
	r.solid = r.solid.Reacquired()
	if err := r.boundingSplit("spar split 2", r.id.Child("sparSplit2"), r.solid.Query, r.planes.Tool(two)); err != nil {
		return err
	}
	r.solid = r.solid.Reacquired()
	if err := r.keep(r.id.Child("deleteNonSpar"), r.solid.Crossing(p.Centre)); err != nil {
		return err
	}
	r.solid = r.solid.Reacquired()

	switch sec := sec.(type) {
	case SolidSpar:
		return nil
	case IBeam:
		return r.iBeam(p, sec)
	case Box:
		return r.box(p, sec)
	}
	return failf(ErrInvalidParameters, nil, nil, "unknown spar section %T", sec)
}

// iBeam splits the slab at its centre, opens each half on its outer face
// and the chord sections, hollows both halves and joins them back together.
func (r *run) iBeam(p sparPlanes, sec IBeam) error {
	f := r.frame
	centre, err := r.plane(r.id.Child("centrePlane"), p.Centre)
	if err != nil {
		return err
	}
	if err := r.boundingSplit("centre split", r.id.Child("splitSpar"), r.solid.Query, r.planes.Tool(centre)); err != nil {
		return err
	}
	r.solid = r.solid.Reacquired()

	faces := kernel.OwnedByBody(r.solid.Query, kernel.Face)
	side := kernel.Union(
		kernel.CoincidesWithPlane(faces, p.One),
		kernel.CoincidesWithPlane(faces, p.Two),
		kernel.CoincidesWithPlane(faces, f.BaseChordPlane()),
		kernel.CoincidesWithPlane(faces, f.TipChordPlane()),
	)
	if err := r.k.Shell(r.id.Child("shell1"), kernel.Union(r.solid.Query, side), -sec.Wall); err != nil {
		return failf(ErrStructuralGenerationFailed, r.solid.Query, err, "hollowing I-beam spar")
	}
	if err := r.k.Boolean(r.id.Child("rejoinBeam"), kernel.BooleanDef{Tools: r.solid.Query, Op: kernel.BooleanUnion}); err != nil {
		return failf(ErrStructuralGenerationFailed, r.solid.Query, err, "joining I-beam spar")
	}
	r.solid = r.solid.Reacquired()
	return nil
}

// box rounds the spanwise edges of the slab when a radius is given and
// hollows it, open at the chord sections.
func (r *run) box(p sparPlanes, sec Box) error {
	f := r.frame
	faces := kernel.OwnedByBody(r.solid.Query, kernel.Face)
	edges := kernel.OwnedByBody(r.solid.Query, kernel.Edge)
	side := kernel.Union(
		kernel.CoincidesWithPlane(faces, f.BaseChordPlane()),
		kernel.CoincidesWithPlane(faces, f.TipChordPlane()),
	)
	all := kernel.Union(
		kernel.CoincidesWithPlane(edges, p.One),
		kernel.CoincidesWithPlane(edges, p.Two),
	)
	ends := kernel.Union(
		kernel.CoincidesWithPlane(edges, f.BaseChordPlane()),
		kernel.CoincidesWithPlane(edges, f.TipChordPlane()),
	)

	if sec.FilletRadius > 0 {
		r.attempt("box fillet", r.id.Child("fillet1"), func() error {
			return r.k.Fillet(r.id.Child("fillet1"), kernel.Subtraction(all, ends), sec.FilletRadius)
		})
	}
	if err := r.k.Shell(r.id.Child("shell1"), kernel.Union(r.solid.Query, side), -sec.Wall); err != nil {
		return failf(ErrStructuralGenerationFailed, r.solid.Query, err, "hollowing box spar")
	}
	return nil
}

// boundingSplit splits the working solid along a spar plane. A plane that
// misses the wing leaves the skin as that side's boundary and is recorded
// as a diagnostic; any other kernel failure is fatal.
func (r *run) boundingSplit(step string, op kernel.OpID, targets, tool kernel.Query) error {
	err := r.k.Split(op, targets, tool)
	switch {
	case err == nil:
		r.log.Debug(step+" successful", zap.String("op", string(op)))
		return nil
	case errors.Is(err, kernel.ErrNoIntersection):
		r.log.Warn("plane misses the wing", zap.String("step", step), zap.String("op", string(op)))
		r.diags = append(r.diags, wing.Diagnostic{Step: step, Op: op, Err: err})
		return nil
	}
	return failf(ErrStructuralGenerationFailed, tool, err, "%s", step)
}
