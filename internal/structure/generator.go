// Package structure generates the internal structure of a wing: ribs,
// spars and stringers cut from an isolated copy of the wing body.
package structure

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Result is the outcome of one successful regeneration.
type Result struct {
	// ID is the root operation; every body created is CreatedBy(ID).
	ID          kernel.OpID
	Mode        string
	Frame       *wing.LocalFrame
	Bodies      []kernel.EntityID
	Diagnostics wing.Diagnostics
}

// Generator drives one kernel. It holds no state between regenerations.
type Generator struct {
	k   kernel.Kernel
	log *zap.Logger
}

// NewGenerator returns a generator for k. A nil logger discards output.
func NewGenerator(k kernel.Kernel, log *zap.Logger) *Generator {
	if log == nil {
		log = zap.NewNop()
	}
	return &Generator{k: k, log: log}
}

// run is the state of a single regeneration.
type run struct {
	k      kernel.Kernel
	log    *zap.Logger
	id     kernel.OpID
	frame  *wing.LocalFrame
	solid  wing.WorkingSolid
	planes *wing.Planes
	diags  wing.Diagnostics
}

// Regenerate builds the structure selected by p into the kernel. On a fatal
// error everything created so far is removed and a *Error is returned.
func (g *Generator) Regenerate(geo wing.ReferenceGeometry, p ParameterSet) (*Result, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}

	frame, err := wing.BuildFrame(g.k, geo)
	if err != nil {
		corners := kernel.Union(geo.Corners...)
		return nil, g.resolve(failf(ErrInsufficientReferenceGeometry, corners, err, "select %s", cornerList()))
	}

	r := &run{
		k:      g.k,
		log:    g.log,
		id:     kernel.OpID("wingStructure-" + uuid.NewString()),
		frame:  frame,
		planes: &wing.Planes{},
	}
	r.log = r.log.With(zap.String("feature", string(r.id)), zap.String("mode", p.Mode.Name()))
	r.log.Debug("local frame",
		zap.Float64("baseChord", frame.BaseChordLength),
		zap.Float64("tipChord", frame.TipChordLength),
		zap.Float64("span", frame.Span()))

	if err := r.build(geo, p.Mode); err != nil {
		var fe *Error
		if !errors.As(err, &fe) {
			fe = failf(ErrStructuralGenerationFailed, nil, err, "%s", p.Mode.Name())
		}
		g.resolve(fe)
		r.rollback()
		return nil, fe
	}

	r.attempt("plane cleanup", r.id.Child("cleanup"), func() error {
		return r.planes.Remove(r.k, r.id.Child("cleanup"))
	})

	bodies, err := g.k.Evaluate(kernel.CreatedBy(r.id, kernel.Body))
	if err != nil {
		return nil, fmt.Errorf("evaluating result: %w", err)
	}
	r.log.Info("structure generated", zap.Int("bodies", len(bodies)), zap.Int("skipped", len(r.diags)))
	return &Result{
		ID:          r.id,
		Mode:        p.Mode.Name(),
		Frame:       frame,
		Bodies:      bodies,
		Diagnostics: r.diags,
	}, nil
}

func (r *run) build(geo wing.ReferenceGeometry, m Mode) error {
	solid, diags, err := wing.Isolate(r.k, r.id, geo, r.frame, r.planes, r.log)
	r.diags = append(r.diags, diags...)
	if err != nil {
		return failf(ErrStructuralGenerationFailed, geo.Body, err, "isolating wing body")
	}
	r.solid = solid

	switch m := m.(type) {
	case Rib:
		switch l := m.Layout.(type) {
		case OnPlane:
			return r.ribOnPlane(m, l)
		case MultiRib:
			return r.multiRib(m, l)
		}
	case Stiffener:
		switch s := m.Member.(type) {
		case SparByPosition:
			return r.sparByPosition(s)
		case SparByPlane:
			return r.sparByPlane(s)
		case Stringer:
			return r.stringer(s)
		}
	}
	return failf(ErrInvalidParameters, nil, nil, "unhandled mode %T", m)
}

// resolve evaluates the highlight query while the offending geometry still
// exists.
func (g *Generator) resolve(e *Error) *Error {
	if e.Highlight == nil {
		return e
	}
	ids, err := g.k.Evaluate(e.Highlight)
	if err != nil {
		g.log.Debug("highlight not resolved", zap.Error(err))
		return e
	}
	e.HighlightIDs = ids
	return e
}

func (r *run) rollback() {
	id := r.id.Child("rollback")
	if err := r.k.DeleteBodies(id, kernel.CreatedBy(r.id, kernel.Body)); err != nil {
		r.log.Warn("rollback incomplete", zap.Error(err))
	}
}

// attempt runs a best-effort step and records its diagnostic.
func (r *run) attempt(step string, op kernel.OpID, fn func() error) {
	r.diags.Add(wing.Attempt(r.log, step, op, fn))
}

// plane adds a construction plane to the arena.
func (r *run) plane(op kernel.OpID, p kernel.Plane) (int, error) {
	i, err := r.planes.Add(r.k, op, r.frame, p)
	if err != nil {
		return -1, failf(ErrStructuralGenerationFailed, nil, err, "building %s", op)
	}
	return i, nil
}

func cornerList() string {
	return strings.Join(wing.CornerNames[:], ", ")
}
