package wing

import (
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/spatial/r3"
)

// WorkingSolid selects the isolated copy of the wing. It is a value: every
// topology change yields a new WorkingSolid through Reacquired, and the
// previous one must not be reused.
type WorkingSolid struct {
	// CopyOp is the operation that duplicated the wing body.
	CopyOp kernel.OpID
	Query  kernel.Query
}

// All selects every body descending from the wing copy.
func (w WorkingSolid) All() kernel.Query {
	return kernel.OwnedByBody(kernel.CreatedBy(w.CopyOp, kernel.Body), kernel.Body)
}

// Reacquired re-derives the working solid from body ownership after a
// topology-changing call.
func (w WorkingSolid) Reacquired() WorkingSolid {
	return WorkingSolid{CopyOp: w.CopyOp, Query: w.All()}
}

// Crossing selects the bodies of the working solid that cross p.
func (w WorkingSolid) Crossing(p kernel.Plane) kernel.Query {
	return kernel.IntersectsPlane(kernel.OwnerBody(w.Query), p)
}

// Isolate duplicates the wing body and trims the copy to the span between
// the base and tip chord sections. The trim splits and the cleanup delete
// are best effort; only a failed copy or plane construction is fatal. The
// trim planes are added to planes.
func Isolate(k kernel.Kernel, id kernel.OpID, g ReferenceGeometry, f *LocalFrame, planes *Planes, log *zap.Logger) (WorkingSolid, Diagnostics, error) {
	if log == nil {
		log = zap.NewNop()
	}
	var diags Diagnostics

	copyOp := id.Child("transform")
	if err := k.Copy(copyOp, kernel.OwnerBody(g.Body)); err != nil {
		return WorkingSolid{}, nil, fmt.Errorf("duplicating wing body: %w", err)
	}
	ws := WorkingSolid{CopyOp: copyOp, Query: kernel.CreatedBy(copyOp, kernel.Body)}

	basePlane, err := planes.Add(k, id.Child("basePlane"), f, f.BaseChordPlane())
	if err != nil {
		return WorkingSolid{}, nil, fmt.Errorf("base plane: %w", err)
	}
	tipPlane, err := planes.Add(k, id.Child("tipPlane"), f, f.TipChordPlane())
	if err != nil {
		return WorkingSolid{}, nil, fmt.Errorf("tip plane: %w", err)
	}

	diags.Add(Attempt(log, "base split", id.Child("baseSplit"), func() error {
		return k.Split(id.Child("baseSplit"), ws.Query, planes.Tool(basePlane))
	}))
	diags.Add(Attempt(log, "tip split", id.Child("tipSplit"), func() error {
		return k.Split(id.Child("tipSplit"), ws.Query, planes.Tool(tipPlane))
	}))

	mid := kernel.NewPlane(r3.Scale(0.5, r3.Add(f.Points[LETip], f.Points[TEBase])), f.Normal)
	ws = WorkingSolid{CopyOp: copyOp, Query: kernel.IntersectsPlane(kernel.OwnerBody(ws.All()), mid)}

	diags.Add(Attempt(log, "trim delete", id.Child("highLevelDelete"), func() error {
		return k.DeleteBodies(id.Child("highLevelDelete"), kernel.Subtraction(ws.All(), ws.Query))
	}))

	log.Debug("wing isolated", zap.Int("skipped", len(diags)))
	return ws, diags, nil
}
