package definition

import (
	"fmt"
	"math"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/structure"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"gonum.org/v1/gonum/spatial/r3"
)

// Operation ids of the scene geometry.
const (
	WingOp      kernel.OpID = "wing"
	ReferenceOp kernel.OpID = "reference"
	RibFaceOp   kernel.OpID = "ribFace"
	SparFaceOp  kernel.OpID = "sparFace"
)

// Scene is a wing lofted into a kernel with its reference geometry picked
// the way a user would pick it.
type Scene struct {
	Geometry wing.ReferenceGeometry
	// RibFace and SparFace are set for the plane modes.
	RibFace  kernel.Query
	SparFace kernel.Query
}

// Profile returns the section scaled to the planform thickness.
func (p Planform) Profile() Profile {
	prof := p.Section
	if len(prof) == 0 {
		prof = DefaultProfile
	}
	return prof.Scaled(p.Thickness)
}

// SweepOffset is the chordwise offset of the tip leading edge.
func (p Planform) SweepOffset() float64 {
	return p.Span * math.Tan(p.SweepDeg*math.Pi/180)
}

// Sections returns the root and tip sections. The span runs along +z, the
// chord along +x from the leading edge, thickness along y.
func (p Planform) Sections() (base, tip []r3.Vec) {
	off := p.SweepOffset()
	for _, v := range p.Profile() {
		base = append(base, r3.Vec{X: p.RootChord * v.X, Y: p.RootChord * v.Y})
		tip = append(tip, r3.Vec{X: off + p.TipChord*v.X, Y: p.TipChord * v.Y, Z: p.Span})
	}
	return base, tip
}

// Corners returns the LE-Base, TE-Base, TE-Tip and LE-Tip points.
func (p Planform) Corners() [4]r3.Vec {
	base, tip := p.Sections()
	prof := p.Profile()
	le, _ := prof.edgeIndex(0)
	te, _ := prof.edgeIndex(1)
	var c [4]r3.Vec
	c[wing.LEBase] = base[le]
	c[wing.TEBase] = base[te]
	c[wing.TETip] = tip[te]
	c[wing.LETip] = tip[le]
	return c
}

// ChordAt returns the leading edge point and chord at span fraction s.
func (p Planform) ChordAt(s float64) (le r3.Vec, chord float64) {
	c := p.Corners()
	le = r3.Add(c[wing.LEBase], r3.Scale(s, r3.Sub(c[wing.LETip], c[wing.LEBase])))
	return le, p.RootChord + s*(p.TipChord-p.RootChord)
}

// Scene lofts the wing into k and builds the reference faces.
func (d *Definition) Scene(k *polykernel.Kernel) (*Scene, error) {
	w := d.Wing
	if err := w.Profile().Validate(); err != nil {
		return nil, err
	}
	base, tip := w.Sections()
	if err := k.Loft(WingOp, base, tip); err != nil {
		return nil, fmt.Errorf("building wing: %w", err)
	}

	z := r3.Vec{Z: 1}
	x := r3.Vec{X: 1}
	ref := kernel.PlaneDef{
		Plane:  kernel.Plane{Origin: r3.Vec{X: w.RootChord / 2}, Normal: z, XDir: x},
		Width:  w.RootChord,
		Height: w.RootChord / 10,
	}
	if err := k.ConstructionPlane(ReferenceOp, ref); err != nil {
		return nil, fmt.Errorf("building reference face: %w", err)
	}

	corners, err := pickCorners(k, w.Corners())
	if err != nil {
		return nil, err
	}
	sc := &Scene{Geometry: wing.ReferenceGeometry{
		ReferenceFace: faceOf(ReferenceOp),
		Body:          kernel.CreatedBy(WingOp, kernel.Body),
		Corners:       corners,
	}}

	switch d.Mode {
	case ModeRibOnPlane:
		le, chord := w.ChordAt(d.Rib.Station)
		def := kernel.PlaneDef{
			Plane:  kernel.Plane{Origin: r3.Add(le, r3.Vec{X: chord / 2}), Normal: z, XDir: x},
			Width:  chord,
			Height: chord / 10,
		}
		if err := k.ConstructionPlane(RibFaceOp, def); err != nil {
			return nil, fmt.Errorf("building rib face: %w", err)
		}
		sc.RibFace = faceOf(RibFaceOp)

	case ModeSparPlane:
		c := w.Corners()
		root := r3.Add(c[wing.LEBase], r3.Scale(d.Spar.Station*w.RootChord, x))
		end := r3.Add(c[wing.LETip], r3.Scale(d.Spar.Station*w.TipChord, x))
		along := r3.Sub(end, root)
		def := kernel.PlaneDef{
			Plane: kernel.Plane{
				Origin: r3.Scale(0.5, r3.Add(root, end)),
				Normal: r3.Cross(r3.Vec{Y: 1}, along),
				XDir:   along,
			},
			Width:  r3.Norm(along),
			Height: w.RootChord / 10,
		}
		if err := k.ConstructionPlane(SparFaceOp, def); err != nil {
			return nil, fmt.Errorf("building spar face: %w", err)
		}
		sc.SparFace = faceOf(SparFaceOp)
	}
	return sc, nil
}

func faceOf(op kernel.OpID) kernel.Query {
	return kernel.EntityFilter(kernel.CreatedBy(op, kernel.Face), kernel.Face)
}

// pickCorners finds the wing vertex at each corner.
func pickCorners(k *polykernel.Kernel, pts [4]r3.Vec) ([]kernel.Query, error) {
	ids, err := k.Evaluate(kernel.OwnedByBody(kernel.CreatedBy(WingOp, kernel.Body), kernel.Vertex))
	if err != nil {
		return nil, err
	}
	out := make([]kernel.Query, len(pts))
	for i, want := range pts {
		best, bestDist := kernel.EntityID(""), math.Inf(1)
		for _, id := range ids {
			p, err := k.VertexPoint(kernel.Entities(id))
			if err != nil {
				return nil, err
			}
			if d := r3.Norm(r3.Sub(p, want)); d < bestDist {
				best, bestDist = id, d
			}
		}
		if bestDist > 1e-6 {
			return nil, fmt.Errorf("no wing vertex at %s %v", wing.CornerNames[i], want)
		}
		out[i] = kernel.Entities(best)
	}
	return out, nil
}

// Parameters converts the definition into the generator's parameter set.
func (d *Definition) Parameters(sc *Scene) (structure.ParameterSet, error) {
	switch d.Mode {
	case ModeRibOnPlane:
		return structure.ParameterSet{Mode: structure.Rib{
			Width:  d.Rib.Width,
			Flip:   d.Rib.Flip,
			Layout: structure.OnPlane{Face: sc.RibFace, Offset: d.Rib.Offset},
		}}, nil
	case ModeRibMulti:
		return structure.ParameterSet{Mode: structure.Rib{
			Width:  d.Rib.Width,
			Flip:   d.Rib.Flip,
			Layout: structure.MultiRib{Count: d.Rib.Count},
		}}, nil
	case ModeSparPosition:
		return structure.ParameterSet{Mode: structure.Stiffener{Member: structure.SparByPosition{
			Width:   d.Spar.Width,
			BasePos: d.Spar.BasePos,
			TipPos:  d.Spar.TipPos,
			Section: d.Spar.section(),
		}}}, nil
	case ModeSparPlane:
		return structure.ParameterSet{Mode: structure.Stiffener{Member: structure.SparByPlane{
			Face:    sc.SparFace,
			Width:   d.Spar.Width,
			Flip:    d.Spar.Flip,
			Section: d.Spar.section(),
		}}}, nil
	case ModeStringer:
		s := d.Stringer
		var sec structure.StringerSection = structure.SolidRod{}
		if s.Section == SectionTube {
			sec = structure.Tube{Wall: s.Wall}
		}
		return structure.ParameterSet{Mode: structure.Stiffener{Member: structure.Stringer{
			OuterDiameter:  s.OuterDiameter,
			BaseHorizontal: s.BaseHorizontal,
			TipHorizontal:  s.TipHorizontal,
			BaseVertical:   s.BaseVertical,
			TipVertical:    s.TipVertical,
			Section:        sec,
		}}}, nil
	}
	return structure.ParameterSet{}, &ValidationError{fmt.Sprintf("unknown mode %q", d.Mode)}
}

func (s *SparDef) section() structure.SparSection {
	switch s.Section {
	case SectionIBeam:
		return structure.IBeam{Wall: s.Wall}
	case SectionBox:
		return structure.Box{Wall: s.Wall, FilletRadius: s.FilletRadius}
	}
	return structure.SolidSpar{}
}
