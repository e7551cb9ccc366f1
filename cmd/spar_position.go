package cmd

import (
	"github.com/alexiusacademia/wingstruct/internal/definition"
	"github.com/spf13/cobra"
)

var (
	sparBasePos float64
	sparTipPos  float64
)

var sparPositionCmd = &cobra.Command{
	Use:   "position",
	Short: "Generate a spar from chord positions",
	Long: `Generate a spar centred on the line joining --base-pos of the base
chord and --tip-pos of the tip chord. Positions are fractions of chord
measured from the leading edge.

Examples:
  # Main spar at 25% chord
  wingstruct spar position -p p51-mustang --base-pos 0.25 --tip-pos 0.25

  # Box spar with 3 mm walls and 5 mm fillets
  wingstruct spar position -p p51-mustang --base-pos 0.3 --tip-pos 0.35 -s box --wall 0.003 --fillet 0.005`,
	Run: runSparPosition,
}

func init() {
	sparCmd.AddCommand(sparPositionCmd)

	sparPositionCmd.Flags().Float64Var(&sparBasePos, "base-pos", 0, "Base chord position (fraction of chord)")
	sparPositionCmd.Flags().Float64Var(&sparTipPos, "tip-pos", 0, "Tip chord position (fraction of chord)")
}

func runSparPosition(cmd *cobra.Command, args []string) {
	s := sparFromFlags()
	s.BasePos = sparBasePos
	s.TipPos = sparTipPos

	def := &definition.Definition{
		Name: "spar by position",
		Wing: planformFromFlags(),
		Mode: definition.ModeSparPosition,
		Spar: s,
	}
	if err := generate(def); err != nil {
		printError(err)
		return
	}
}
