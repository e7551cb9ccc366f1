package structure

import (
	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// ribOnPlane cuts one rib of width m.Width, offset from the reference face
// along its normal (against it when flipped).
func (r *run) ribOnPlane(m Rib, l OnPlane) error {
	tp, err := r.k.FaceTangentPlane(l.Face, 0.5, 0.5)
	if err != nil {
		return failf(ErrStructuralGenerationFailed, l.Face, err, "evaluating rib face")
	}
	centre, err := r.k.ApproximateCentroid(l.Face)
	if err != nil {
		return failf(ErrStructuralGenerationFailed, l.Face, err, "evaluating rib face")
	}
	n := r3.Scale(sign(m.Flip), r3.Unit(tp.Normal))
	at := func(d float64) r3.Vec { return r3.Add(centre, r3.Scale(d, n)) }

	plane1, err := r.plane(r.id.Child("ribPlane1"), kernel.NewPlane(at(l.Offset), tp.Normal))
	if err != nil {
		return err
	}
	plane2, err := r.plane(r.id.Child("ribPlane2"), kernel.NewPlane(at(l.Offset+m.Width), tp.Normal))
	if err != nil {
		return err
	}
	mid := kernel.NewPlane(at(l.Offset+m.Width/2), tp.Normal)

	r.attempt("rib split 1", r.id.Child("ribSplit1"), func() error {
		return r.k.Split(r.id.Child("ribSplit1"), r.solid.Query, r.planes.Tool(plane1))
	})
	r.solid = r.solid.Reacquired()
	r.attempt("rib split 2", r.id.Child("ribSplit2"), func() error {
		return r.k.Split(r.id.Child("ribSplit2"), r.solid.Query, r.planes.Tool(plane2))
	})
	r.solid = r.solid.Reacquired()

	return r.keep(r.id.Child("deleteNonRib"), r.solid.Crossing(mid))
}

// multiRib cuts m.Count ribs at even stations along the span. The station
// bound is half-open, so no rib is placed on the tip boundary.
func (r *run) multiRib(m Rib, l MultiRib) error {
	f := r.frame
	span := f.Span()
	if l.Count <= 0 || span <= kernel.Tolerance {
		r.log.Debug("no rib stations", zap.Int("count", l.Count), zap.Float64("span", span))
		return nil
	}
	interval := span / float64(l.Count+1)
	origin := r3.Scale(0.5, r3.Add(f.Points[wing.LEBase], f.Points[wing.TEBase]))
	at := func(d float64) r3.Vec { return r3.Add(origin, r3.Scale(d, f.Normal)) }
	loop := r.id.Child("multiRibLoop")

	var ribs []kernel.Query
	for i := 0; ; i++ {
		s := float64(i+1) * interval
		if s >= span*(1-1e-9) {
			break
		}
		r.log.Debug("rib station", zap.Int("index", i), zap.Float64("station", s))
		op := loop.Index(i)
		plane1, err := r.plane(op.Child("ribPlane1"), kernel.NewPlane(at(s-m.Width/2), f.Normal))
		if err != nil {
			return err
		}
		plane2, err := r.plane(op.Child("ribPlane2"), kernel.NewPlane(at(s+m.Width/2), f.Normal))
		if err != nil {
			return err
		}
		station := kernel.NewPlane(at(s), f.Normal)

		r.solid = r.solid.Reacquired()
		r.attempt("rib split 1", op.Child("ribSplit1"), func() error {
			return r.k.Split(op.Child("ribSplit1"), r.solid.Crossing(station), r.planes.Tool(plane1))
		})
		r.solid = r.solid.Reacquired()
		r.attempt("rib split 2", op.Child("ribSplit2"), func() error {
			return r.k.Split(op.Child("ribSplit2"), r.solid.Crossing(station), r.planes.Tool(plane2))
		})
		ribs = append(ribs, r.solid.Crossing(station))
	}
	if len(ribs) == 0 {
		return nil
	}

	r.solid = r.solid.Reacquired()
	return r.keep(r.id.Child("deleteNonRib"), kernel.Union(ribs...))
}

// keep deletes every piece of the working solid outside selection.
func (r *run) keep(op kernel.OpID, selection kernel.Query) error {
	if err := r.k.DeleteBodies(op, kernel.Subtraction(r.solid.Query, selection)); err != nil {
		return failf(ErrStructuralGenerationFailed, r.solid.Query, err, "removing material outside the structure")
	}
	r.solid = wing.WorkingSolid{CopyOp: r.solid.CopyOp, Query: selection}
	r.log.Debug("material removed", zap.String("op", string(op)))
	return nil
}

// sign returns -1 when flipped.
func sign(flip bool) float64 {
	if flip {
		return -1
	}
	return 1
}
