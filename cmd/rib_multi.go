package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/alexiusacademia/wingstruct/internal/limits"
	"github.com/spf13/cobra"
)

var (
	multiWidth float64
	multiCount int
)

var ribMultiCmd = &cobra.Command{
	Use:   "multi",
	Short: "Generate evenly spaced ribs along the span",
	Long: `Generate --count ribs spaced span/(count+1) apart, measured from the
root along the trailing edge. The root and tip themselves get no rib.

Examples:
  # Three ribs in a J-22 wing half
  wingstruct rib multi --preset j22-orao --count 3

  # Explicit planform
  wingstruct rib multi --span 4 --root-chord 2 --tip-chord 1 --sweep 5 -n 6 -w 0.02`,
	Run: runRibMulti,
}

func init() {
	ribCmd.AddCommand(ribMultiCmd)

	ribMultiCmd.Flags().Float64VarP(&multiWidth, "width", "w", limits.LengthDefault, "Rib width (m)")
	ribMultiCmd.Flags().IntVarP(&multiCount, "count", "n", limits.CountDefault, "Number of ribs")
}

func runRibMulti(cmd *cobra.Command, args []string) {
	def := &definition.Definition{
		Name: "multiple ribs",
		Wing: planformFromFlags(),
		Mode: definition.ModeRibMulti,
		Rib: &definition.RibDef{
			Width: multiWidth,
			Count: multiCount,
		},
	}
	if err := generate(def); err != nil {
		printError(err)
		return
	}
}
