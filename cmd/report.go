package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/diagram"
	"github.com/alexiusacademia/wingstruct/internal/kernel"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/structure"
	"github.com/alexiusacademia/wingstruct/internal/wing"
	"gonum.org/v1/gonum/spatial/r3"
)

type bodyRow struct {
	id       kernel.EntityID
	volume   float64
	from, to float64
	hull     []diagram.Point
}

// report is the printable outcome of one regeneration.
type report struct {
	def        *definition.Definition
	result     *structure.Result
	wingVolume float64
	bodies     []bodyRow
	view       diagram.Projection
}

func newReport(def *definition.Definition, k *polykernel.Kernel, scene *definition.Scene, res *structure.Result) (*report, error) {
	f := res.Frame
	r := &report{
		def:    def,
		result: res,
		view:   diagram.NewProjection(f.Points[wing.LEBase], f.BaseNormalInPlane, f.Normal),
	}
	var err error
	if r.wingVolume, err = k.Volume(scene.Geometry.Body); err != nil {
		return nil, err
	}
	for _, id := range res.Bodies {
		q := kernel.Entities(id)
		v, err := k.Volume(q)
		if err != nil {
			return nil, err
		}
		lo, hi, err := k.Extent(q, f.Normal)
		if err != nil {
			return nil, err
		}
		pts, err := k.Vertices(q)
		if err != nil {
			return nil, err
		}
		base := r3.Dot(f.Points[wing.LEBase], f.Normal)
		r.bodies = append(r.bodies, bodyRow{id: id, volume: v, from: lo - base, to: hi - base, hull: r.view.Hull(pts)})
	}
	return r, nil
}

func (r *report) print() {
	def, res, f := r.def, r.result, r.result.Frame

	fmt.Println()
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Printf("     WING STRUCTURE - %s\n", strings.ToUpper(res.Mode))
	fmt.Println("═══════════════════════════════════════════════════════════════")
	fmt.Println()
	if def.Name != "" {
		fmt.Printf("  Definition: %s\n", def.Name)
	}
	if def.Description != "" {
		fmt.Printf("  Description: %s\n", def.Description)
	}
	fmt.Printf("  Feature: %s\n", res.ID)
	fmt.Println()

	fmt.Println("WING PLANFORM:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	if p, ok := definition.LookupPreset(def.Wing.Preset); ok {
		fmt.Fprintf(w, "  Preset:\t%s\n", p.Aircraft)
	}
	fmt.Fprintf(w, "  Half span:\t%.3f m\n", def.Wing.Span)
	fmt.Fprintf(w, "  Root chord:\t%.3f m\n", def.Wing.RootChord)
	fmt.Fprintf(w, "  Tip chord:\t%.3f m\n", def.Wing.TipChord)
	fmt.Fprintf(w, "  LE sweep:\t%.3f°\n", def.Wing.SweepDeg)
	fmt.Fprintf(w, "  Thickness:\t%.1f%% of chord\n", def.Wing.Thickness*100)
	fmt.Fprintf(w, "  Wing volume:\t%.6f m³\n", r.wingVolume)
	w.Flush()
	fmt.Println()

	fmt.Println("LOCAL FRAME:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for i, name := range wing.CornerNames {
		fmt.Fprintf(w, "  %s:\t%s\n", name, vec(f.Points[i]))
	}
	fmt.Fprintf(w, "  Spanwise normal:\t%s\n", vec(f.Normal))
	fmt.Fprintf(w, "  Chord direction (base):\t%s\n", vec(f.BaseNormalInPlane))
	fmt.Fprintf(w, "  Chord direction (tip):\t%s\n", vec(f.TipNormalInPlane))
	fmt.Fprintf(w, "  Base chord:\t%.4f m\n", f.BaseChordLength)
	fmt.Fprintf(w, "  Tip chord:\t%.4f m\n", f.TipChordLength)
	fmt.Fprintf(w, "  Span (TE):\t%.4f m\n", f.Span())
	w.Flush()
	fmt.Println()

	fmt.Println("PARAMETERS:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, kv := range parameterLines(def) {
		fmt.Fprintf(w, "  %s:\t%s\n", kv[0], kv[1])
	}
	w.Flush()
	fmt.Println()

	fmt.Println("GENERATED BODIES:")
	fmt.Println("───────────────────────────────────────────────────────────────")
	var total float64
	if len(r.bodies) == 0 {
		fmt.Println("  (none)")
	} else {
		w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "  #\tBody\tVolume (cm³)\tSpan from (m)\tSpan to (m)\n")
		fmt.Fprintf(w, "  ─\t────\t────────────\t─────────────\t───────────\n")
		for i, b := range r.bodies {
			fmt.Fprintf(w, "  %d\t%s\t%.2f\t%.4f\t%.4f\n", i+1, b.id, b.volume*1e6, b.from, b.to)
			total += b.volume
		}
		w.Flush()
	}
	fmt.Println()

	if len(res.Diagnostics) > 0 {
		fmt.Println("SKIPPED STEPS:")
		fmt.Println("───────────────────────────────────────────────────────────────")
		for _, d := range res.Diagnostics {
			fmt.Printf("  ⚠ %s\n", d)
		}
		fmt.Println()
	}

	lines := []string{
		fmt.Sprintf("Bodies: %d", len(r.bodies)),
		fmt.Sprintf("Structure volume: %.2f cm³", total*1e6),
	}
	if r.wingVolume > 0 {
		lines = append(lines, fmt.Sprintf("Fraction of wing: %.3f%%", 100*total/r.wingVolume))
	}
	fmt.Print(diagram.DrawSummaryBox(strings.ToUpper(res.Mode), lines))
	fmt.Println()
}

func parameterLines(def *definition.Definition) [][2]string {
	m := func(v float64) string { return fmt.Sprintf("%.4f m", v) }
	frac := func(v float64) string { return fmt.Sprintf("%.3f", v) }
	switch def.Mode {
	case definition.ModeRibOnPlane:
		return [][2]string{
			{"Rib width", m(def.Rib.Width)},
			{"Offset", m(def.Rib.Offset)},
			{"Reference station", frac(def.Rib.Station)},
			{"Flipped", fmt.Sprint(def.Rib.Flip)},
		}
	case definition.ModeRibMulti:
		return [][2]string{
			{"Rib width", m(def.Rib.Width)},
			{"Number of ribs", fmt.Sprint(def.Rib.Count)},
			{"Interval", m(def.Wing.Span / float64(def.Rib.Count+1))},
		}
	case definition.ModeSparPosition, definition.ModeSparPlane:
		out := [][2]string{
			{"Spar width", m(def.Spar.Width)},
			{"Section", def.Spar.Section},
		}
		if def.Mode == definition.ModeSparPosition {
			out = append(out, [2]string{"Base position", frac(def.Spar.BasePos)}, [2]string{"Tip position", frac(def.Spar.TipPos)})
		} else {
			out = append(out, [2]string{"Reference station", frac(def.Spar.Station)}, [2]string{"Flipped", fmt.Sprint(def.Spar.Flip)})
		}
		if def.Spar.Section != definition.SectionSolid {
			out = append(out, [2]string{"Wall", m(def.Spar.Wall)})
		}
		if def.Spar.Section == definition.SectionBox {
			out = append(out, [2]string{"Fillet radius", m(def.Spar.FilletRadius)})
		}
		return out
	case definition.ModeStringer:
		s := def.Stringer
		out := [][2]string{
			{"Outer diameter", m(s.OuterDiameter)},
			{"Section", s.Section},
			{"Base (horizontal, vertical)", frac(s.BaseHorizontal) + ", " + frac(s.BaseVertical)},
			{"Tip (horizontal, vertical)", frac(s.TipHorizontal) + ", " + frac(s.TipVertical)},
		}
		if s.Section == definition.SectionTube {
			out = append(out, [2]string{"Wall", m(s.Wall)})
		}
		return out
	}
	return nil
}

func vec(v r3.Vec) string {
	return fmt.Sprintf("(%.4f, %.4f, %.4f)", v.X, v.Y, v.Z)
}

func (r *report) planformData() diagram.PlanformData {
	f := r.result.Frame
	data := diagram.PlanformData{Title: "Wing Structure - " + r.result.Mode}
	for i := range f.Points {
		data.Wing[i] = r.view.Point(f.Points[i])
	}
	for _, b := range r.bodies {
		data.Bodies = append(data.Bodies, diagram.Outline{Name: string(b.id), Hull: b.hull})
	}
	return data
}

func (r *report) asciiPlanform() string {
	return diagram.DrawASCIIPlanform(r.planformData())
}

func (r *report) exportPlanform(filename string) error {
	return diagram.ExportPlanform(r.planformData(), filename)
}
