package cmd

import (
	"errors"
	"fmt"

	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/kernel/polykernel"
	"github.com/alexiusacademia/wingstruct/internal/structure"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	// Wing planform inputs shared by the generator commands
	wingPreset    string
	wingSpan      float64
	wingRootChord float64
	wingTipChord  float64
	wingSweep     float64
	wingThickness float64

	// Output options
	showDiagram bool
	exportFile  string
)

// addWingFlags registers the planform and output flags on a command group.
func addWingFlags(c *cobra.Command) {
	f := c.PersistentFlags()
	f.StringVarP(&wingPreset, "preset", "p", "", "Aircraft preset (see 'wingstruct presets')")
	f.Float64Var(&wingSpan, "span", 0, "Half span, root to tip (m)")
	f.Float64Var(&wingRootChord, "root-chord", 0, "Root chord (m)")
	f.Float64Var(&wingTipChord, "tip-chord", 0, "Tip chord (m)")
	f.Float64Var(&wingSweep, "sweep", 0, "Leading edge sweep (deg)")
	f.Float64Var(&wingThickness, "thickness", 0.12, "Section thickness as a fraction of chord")

	f.BoolVar(&showDiagram, "diagram", false, "Show ASCII planform diagram")
	f.StringVarP(&exportFile, "output", "o", "", "Export planform diagram to file (png, svg, pdf)")
}

func planformFromFlags() definition.Planform {
	return definition.Planform{
		Preset:    wingPreset,
		Span:      wingSpan,
		RootChord: wingRootChord,
		TipChord:  wingTipChord,
		SweepDeg:  wingSweep,
		Thickness: wingThickness,
	}
}

// generate builds the wing of def into a fresh kernel, regenerates the
// structure and prints the report.
func generate(def *definition.Definition) error {
	if err := def.Complete(); err != nil {
		return err
	}
	if err := def.Validate(); err != nil {
		return err
	}

	k := polykernel.New()
	scene, err := def.Scene(k)
	if err != nil {
		return err
	}
	params, err := def.Parameters(scene)
	if err != nil {
		return err
	}

	logger.Debug("regenerating", zap.String("definition", def.Name), zap.String("mode", def.Mode))
	gen := structure.NewGenerator(k, logger.Named("structure"))
	result, err := gen.Regenerate(scene.Geometry, params)
	if err != nil {
		return err
	}

	rep, err := newReport(def, k, scene, result)
	if err != nil {
		return err
	}
	rep.print()

	if showDiagram {
		fmt.Println(rep.asciiPlanform())
	}
	if exportFile != "" {
		if err := rep.exportPlanform(exportFile); err != nil {
			return fmt.Errorf("exporting diagram: %w", err)
		}
		fmt.Printf("  Diagram exported to: %s\n\n", exportFile)
	}
	return nil
}

// printError reports a failed command the way every command does.
func printError(err error) {
	fmt.Printf("Error: %v\n", err)
	var se *structure.Error
	if errors.As(err, &se) && len(se.HighlightIDs) > 0 {
		fmt.Printf("  Check: %v\n", se.HighlightIDs)
	}
}
