package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/spf13/cobra"
)

var (
	// Shared by both spar subcommands
	sparWidth   float64
	sparSection string
	sparWall    float64
	sparFillet  float64
)

var sparCmd = &cobra.Command{
	Use:   "spar",
	Short: "Generate a wing spar",
	Long: `Generate a spanwise spar inside the wing body.

Subcommands:
  position  - Spar placed by chord fractions at the base and the tip
  plane     - Spar offset from a chordwise reference face

Sections (--section):
  solid  - Full slab between the two bounding planes
  ibeam  - Hollowed through the side faces, flanges rejoined
  box    - Closed tube with --wall thickness, optional --fillet`,
}

func init() {
	rootCmd.AddCommand(sparCmd)
	addWingFlags(sparCmd)

	f := sparCmd.PersistentFlags()
	f.Float64VarP(&sparWidth, "width", "w", limits.LengthDefault, "Spar width (m)")
	f.StringVarP(&sparSection, "section", "s", definition.SectionSolid, "Spar section: solid, ibeam or box")
	f.Float64Var(&sparWall, "wall", limits.WallDefault, "Wall thickness for ibeam and box sections (m)")
	f.Float64Var(&sparFillet, "fillet", 0, "Box edge fillet radius (m), 0 for none")
}

func sparFromFlags() *definition.SparDef {
	return &definition.SparDef{
		Width:        sparWidth,
		Section:      sparSection,
		Wall:         sparWall,
		FilletRadius: sparFillet,
	}
}
