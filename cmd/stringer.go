package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/spf13/cobra"
)

var (
	stringerDiameter float64
	stringerBaseH    float64
	stringerTipH     float64
	stringerBaseV    float64
	stringerTipV     float64
	stringerSection  string
	stringerWall     float64
)

var stringerCmd = &cobra.Command{
	Use:   "stringer",
	Short: "Generate a spanwise stringer",
	Long: `Generate a round stringer between a base and a tip point. Each point
is given as a horizontal chord fraction from the leading edge and a
vertical fraction. The vertical offset above the chord line is the
fraction times the square of the local chord.

The stringer is trimmed to the wing; it fails if the rod misses the
wing entirely. A tube needs a wall thinner than half the diameter.

Examples:
  # 20 mm rod along the 40% chord line
  wingstruct stringer -p p51-mustang -d 0.02 --base-h 0.4 --tip-h 0.4

  # Tube with 2 mm walls near the upper skin
  wingstruct stringer -p p51-mustang -d 0.02 --base-h 0.3 --tip-h 0.3 --base-v 0.01 --tip-v 0.01 -s tube --wall 0.002`,
	Run: runStringer,
}

func init() {
	rootCmd.AddCommand(stringerCmd)
	addWingFlags(stringerCmd)

	stringerCmd.Flags().Float64VarP(&stringerDiameter, "diameter", "d", limits.LengthDefault, "Outer diameter (m)")
	stringerCmd.Flags().Float64Var(&stringerBaseH, "base-h", limits.PosDefault, "Base horizontal position (fraction of chord)")
	stringerCmd.Flags().Float64Var(&stringerTipH, "tip-h", limits.PosDefault, "Tip horizontal position (fraction of chord)")
	stringerCmd.Flags().Float64Var(&stringerBaseV, "base-v", limits.PosDefault, "Base vertical position (offset = fraction x chord²)")
	stringerCmd.Flags().Float64Var(&stringerTipV, "tip-v", limits.PosDefault, "Tip vertical position (offset = fraction x chord²)")
	stringerCmd.Flags().StringVarP(&stringerSection, "section", "s", definition.SectionSolid, "Stringer section: solid or tube")
	stringerCmd.Flags().Float64Var(&stringerWall, "wall", limits.WallDefault, "Tube wall thickness (m)")
}

func runStringer(cmd *cobra.Command, args []string) {
	def := &definition.Definition{
		Name: "stringer",
		Wing: planformFromFlags(),
		Mode: definition.ModeStringer,
		Stringer: &definition.StringerDef{
			OuterDiameter:  stringerDiameter,
			BaseHorizontal: stringerBaseH,
			TipHorizontal:  stringerTipH,
			BaseVertical:   stringerBaseV,
			TipVertical:    stringerTipV,
			Section:        stringerSection,
			Wall:           stringerWall,
		},
	}
	if err := generate(def); err != nil {
		printError(err)
		return
	}
}
